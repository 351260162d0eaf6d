package model_test

import (
	"testing"
	"time"

	"hostel/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return t
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		aStart   string
		aEnd     string
		bStart   string
		bEnd     string
		expected bool
	}{
		{
			name:   "partial overlap at the end",
			aStart: "2025-01-01", aEnd: "2025-01-05",
			bStart: "2025-01-04", bEnd: "2025-01-06",
			expected: true,
		},
		{
			name:   "adjacent ranges do not overlap",
			aStart: "2025-01-01", aEnd: "2025-01-05",
			bStart: "2025-01-05", bEnd: "2025-01-06",
			expected: false,
		},
		{
			name:   "contained range overlaps",
			aStart: "2025-01-01", aEnd: "2025-01-10",
			bStart: "2025-01-03", bEnd: "2025-01-04",
			expected: true,
		},
		{
			name:   "identical ranges overlap",
			aStart: "2025-01-01", aEnd: "2025-01-05",
			bStart: "2025-01-01", bEnd: "2025-01-05",
			expected: true,
		},
		{
			name:   "disjoint ranges",
			aStart: "2025-01-01", aEnd: "2025-01-03",
			bStart: "2025-02-01", bEnd: "2025-02-03",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.Overlaps(date(tt.aStart), date(tt.aEnd), date(tt.bStart), date(tt.bEnd))
			assert.Equal(t, tt.expected, got)

			// The relation is symmetric.
			mirrored := model.Overlaps(date(tt.bStart), date(tt.bEnd), date(tt.aStart), date(tt.aEnd))
			assert.Equal(t, tt.expected, mirrored)
		})
	}
}

func TestOccupiesRoom(t *testing.T) {
	booking := model.Booking{
		RoomID:   "101",
		CheckIn:  date("2025-01-01"),
		CheckOut: date("2025-01-05"),
		Status:   model.StatusConfirmed,
	}

	assert.True(t, booking.OccupiesRoom("101", date("2025-01-04"), date("2025-01-06")))
	assert.False(t, booking.OccupiesRoom("101", date("2025-01-05"), date("2025-01-06")))
	assert.False(t, booking.OccupiesRoom("102", date("2025-01-04"), date("2025-01-06")))

	booking.Status = model.StatusCancelled
	assert.False(t, booking.OccupiesRoom("101", date("2025-01-04"), date("2025-01-06")))
}

func TestOccupiesRoomAt(t *testing.T) {
	booking := model.Booking{
		RoomID:   "101",
		CheckIn:  date("2025-01-01"),
		CheckOut: date("2025-01-05"),
		Status:   model.StatusConfirmed,
	}

	assert.True(t, booking.OccupiesRoomAt("101", date("2025-01-01")))
	assert.True(t, booking.OccupiesRoomAt("101", date("2025-01-04")))

	// The check-out morning frees the bed for that night.
	assert.False(t, booking.OccupiesRoomAt("101", date("2025-01-05")))
	assert.False(t, booking.OccupiesRoomAt("101", date("2024-12-31")))
	assert.False(t, booking.OccupiesRoomAt("102", date("2025-01-02")))

	booking.Status = model.StatusCancelled
	assert.False(t, booking.OccupiesRoomAt("101", date("2025-01-02")))
}
