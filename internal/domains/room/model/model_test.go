package model_test

import (
	"testing"

	"hostel/internal/domains/room/model"

	"github.com/stretchr/testify/assert"
)

func TestRoomStatus(t *testing.T) {
	tests := []struct {
		name     string
		room     model.Room
		expected model.Status
	}{
		{
			name:     "empty room is available",
			room:     model.Room{Capacity: 4, Occupied: 0},
			expected: model.StatusAvailable,
		},
		{
			name:     "partially filled room is occupied",
			room:     model.Room{Capacity: 4, Occupied: 2},
			expected: model.StatusOccupied,
		},
		{
			name:     "room at capacity is full",
			room:     model.Room{Capacity: 4, Occupied: 4},
			expected: model.StatusFull,
		},
		{
			name:     "maintenance overrides occupancy",
			room:     model.Room{Capacity: 4, Occupied: 4, Maintenance: true},
			expected: model.StatusMaintenance,
		},
		{
			name:     "maintenance overrides empty",
			room:     model.Room{Capacity: 4, Occupied: 0, Maintenance: true},
			expected: model.StatusMaintenance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.room.Status())
		})
	}
}

func TestTypeValid(t *testing.T) {
	assert.True(t, model.TypeDorm.Valid())
	assert.True(t, model.TypePrivate.Valid())
	assert.True(t, model.TypeEnsuite.Valid())
	assert.False(t, model.Type("penthouse").Valid())
	assert.False(t, model.Type("").Valid())
}
