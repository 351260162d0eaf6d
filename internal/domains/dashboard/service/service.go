package service

import (
	"context"
	"fmt"
	"math"

	"hostel/infras/memstore"
	"hostel/infras/otel"
	bookingModel "hostel/internal/domains/booking/model"
	bookingRepository "hostel/internal/domains/booking/repository"
	"hostel/internal/domains/dashboard/model/dto"
	roomRepository "hostel/internal/domains/room/repository"
	"hostel/shared/constant"
	"hostel/shared/failure"
)

// Dashboard aggregates ledger and catalog figures for the admin overview.
type Dashboard interface {
	Stats(ctx context.Context) (dto.StatsResponse, error)
}

type serviceImpl struct {
	store    *memstore.Store
	bookings bookingRepository.Booking
	rooms    roomRepository.Room
	otel     otel.Otel
}

func New(store *memstore.Store, bookings bookingRepository.Booking, rooms roomRepository.Room, otel otel.Otel) Dashboard {
	return &serviceImpl{
		store:    store,
		bookings: bookings,
		rooms:    rooms,
		otel:     otel,
	}
}

// Stats reads bookings and rooms from one snapshot so the figures agree with
// each other. The occupancy rate is a whole percentage across all beds, and
// an empty catalog reports zero rather than dividing by nothing. Revenue
// counts every non-cancelled booking; checked-out stays keep earning their
// place in the total.
func (s *serviceImpl) Stats(ctx context.Context) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, fmt.Sprintf("%s.dashboard.Stats", constant.OtelServiceScopeName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.store.View(ctx, func(tx *memstore.Tx) error {
		bookings := s.bookings.AllTx(tx)
		rooms := s.rooms.AllTx(tx)

		res.TotalBookings = len(bookings)

		for _, booking := range bookings {
			if booking.Status == bookingModel.StatusCheckedIn {
				res.ActiveGuests += booking.Guests
			}

			if booking.Status != bookingModel.StatusCancelled {
				res.Revenue += booking.Total
			}
		}

		occupied, capacity := 0, 0
		for _, room := range rooms {
			occupied += room.Occupied
			capacity += room.Capacity
		}

		if capacity > 0 {
			res.OccupancyRate = int(math.Round(float64(occupied) / float64(capacity) * 100))
		}

		return nil
	})
	if err != nil {
		return dto.StatsResponse{}, failure.InternalError(err)
	}

	return res, nil
}
