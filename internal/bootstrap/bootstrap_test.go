package bootstrap_test

import (
	"context"
	"testing"
	"time"

	"hostel/infras/memstore"
	otelMocks "hostel/infras/otel/mocks"
	archiveMocks "hostel/internal/archive/mocks"
	"hostel/internal/bootstrap"
	bookingModel "hostel/internal/domains/booking/model"
	bookingRepository "hostel/internal/domains/booking/repository"
	roomModel "hostel/internal/domains/room/model"
	roomRepository "hostel/internal/domains/room/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	archive  *archiveMocks.MockArchive
	bookings bookingRepository.Booking
	rooms    roomRepository.Room
	boot     *bootstrap.Bootstrap
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := memstore.New()
	otel := otelMocks.NewOtel()

	f := &fixture{
		archive:  archiveMocks.NewMockArchive(ctrl),
		bookings: bookingRepository.New(store, otel),
		rooms:    roomRepository.New(store, otel),
	}
	f.boot = bootstrap.New(f.archive, f.bookings, f.rooms)

	return f
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds default catalog when archive is disabled", func(t *testing.T) {
		f := newFixture(t)
		f.archive.EXPECT().Enabled().Return(false)

		require.NoError(t, f.boot.Run(ctx))

		rooms, err := f.rooms.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, rooms, 5)
		assert.Equal(t, "101", rooms[0].ID)
		assert.Equal(t, roomModel.TypeEnsuite, rooms[4].Type)
	})

	t.Run("restores archived state", func(t *testing.T) {
		f := newFixture(t)

		archivedRooms := []roomModel.Room{
			{ID: "101", Type: roomModel.TypeDorm, Capacity: 8, Price: 1000, Occupied: 3},
		}
		archivedBookings := []bookingModel.Booking{
			{
				ID:       "b1",
				RoomType: roomModel.TypeDorm,
				RoomID:   "101",
				CheckIn:  time.Now(),
				CheckOut: time.Now().Add(48 * time.Hour),
				Guests:   3,
				Status:   bookingModel.StatusCheckedIn,
				Total:    2000,
			},
		}

		f.archive.EXPECT().Enabled().Return(true)
		f.archive.EXPECT().LoadRooms(ctx).Return(archivedRooms, nil)
		f.archive.EXPECT().LoadBookings(ctx).Return(archivedBookings, nil)

		require.NoError(t, f.boot.Run(ctx))

		rooms, err := f.rooms.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, rooms, 1)
		assert.Equal(t, 3, rooms[0].Occupied)

		booking, found, err := f.bookings.Get(ctx, "b1")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, bookingModel.StatusCheckedIn, booking.Status)
	})

	t.Run("seeds and mirrors when archive is empty", func(t *testing.T) {
		f := newFixture(t)

		f.archive.EXPECT().Enabled().Return(true)
		f.archive.EXPECT().LoadRooms(ctx).Return(nil, nil)
		f.archive.EXPECT().SaveRoom(ctx, gomock.Any()).Return(nil).Times(5)

		require.NoError(t, f.boot.Run(ctx))

		rooms, err := f.rooms.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, rooms, 5)
	})
}
