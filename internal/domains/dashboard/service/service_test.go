package service_test

import (
	"context"
	"testing"
	"time"

	"hostel/infras/memstore"
	otelMocks "hostel/infras/otel/mocks"
	bookingModel "hostel/internal/domains/booking/model"
	bookingRepository "hostel/internal/domains/booking/repository"
	"hostel/internal/domains/dashboard/service"
	roomModel "hostel/internal/domains/room/model"
	roomRepository "hostel/internal/domains/room/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return t
}

func booking(id string, status bookingModel.Status, guests int, total int64) bookingModel.Booking {
	return bookingModel.Booking{
		ID:       id,
		RoomType: roomModel.TypeDorm,
		RoomID:   "101",
		CheckIn:  date("2025-06-01"),
		CheckOut: date("2025-06-03"),
		Guests:   guests,
		Status:   status,
		Total:    total,
	}
}

func newService(t *testing.T, rooms []roomModel.Room, bookings []bookingModel.Booking) service.Dashboard {
	t.Helper()

	store := memstore.New()
	otel := otelMocks.NewOtel()
	roomRepo := roomRepository.New(store, otel)
	bookingRepo := bookingRepository.New(store, otel)

	require.NoError(t, roomRepo.Load(context.Background(), rooms))
	require.NoError(t, bookingRepo.Load(context.Background(), bookings))

	return service.New(store, bookingRepo, roomRepo, otel)
}

func TestStats(t *testing.T) {
	t.Run("empty ledger with rooms reports zeros", func(t *testing.T) {
		svc := newService(t, []roomModel.Room{
			{ID: "101", Type: roomModel.TypeDorm, Capacity: 8, Price: 1000},
		}, nil)

		res, err := svc.Stats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, res.TotalBookings)
		assert.Equal(t, 0, res.OccupancyRate)
		assert.Equal(t, 0, res.ActiveGuests)
		assert.Equal(t, int64(0), res.Revenue)
	})

	t.Run("empty catalog does not divide by zero", func(t *testing.T) {
		svc := newService(t, nil, nil)

		res, err := svc.Stats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, res.OccupancyRate)
	})

	t.Run("aggregates across statuses", func(t *testing.T) {
		svc := newService(t,
			[]roomModel.Room{
				{ID: "101", Type: roomModel.TypeDorm, Capacity: 8, Price: 1000, Occupied: 3},
				{ID: "201", Type: roomModel.TypePrivate, Capacity: 2, Price: 2000, Occupied: 2},
			},
			[]bookingModel.Booking{
				booking("b1", bookingModel.StatusCheckedIn, 3, 2000),
				booking("b2", bookingModel.StatusConfirmed, 2, 4000),
				booking("b3", bookingModel.StatusCancelled, 1, 8000),
				booking("b4", bookingModel.StatusCheckedOut, 2, 1000),
			},
		)

		res, err := svc.Stats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 4, res.TotalBookings)
		// 5 occupied of 10 beds.
		assert.Equal(t, 50, res.OccupancyRate)
		assert.Equal(t, 3, res.ActiveGuests)
		// Cancelled bookings earn nothing; everything else counts.
		assert.Equal(t, int64(7000), res.Revenue)
	})

	t.Run("occupancy rate rounds to nearest whole percent", func(t *testing.T) {
		svc := newService(t, []roomModel.Room{
			{ID: "101", Type: roomModel.TypeDorm, Capacity: 3, Price: 1000, Occupied: 1},
		}, nil)

		res, err := svc.Stats(context.Background())

		require.NoError(t, err)
		// 1/3 of beds occupied rounds to 33.
		assert.Equal(t, 33, res.OccupancyRate)
	})
}
