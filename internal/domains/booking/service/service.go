package service

import (
	"context"
	"fmt"
	"time"

	"hostel/infras/memstore"
	"hostel/infras/otel"
	"hostel/internal/archive"
	"hostel/internal/domains/booking/model"
	"hostel/internal/domains/booking/model/dto"
	"hostel/internal/domains/booking/repository"
	rateService "hostel/internal/domains/rate/service"
	roomModel "hostel/internal/domains/room/model"
	roomRepository "hostel/internal/domains/room/repository"
	"hostel/internal/events"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"
	"hostel/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Booking is the ledger service. Every mutation runs the full
// validate-then-apply cycle inside one store transaction, so a booking is
// only ever written together with the availability check that admitted it.
type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest, user string) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, filter dto.ListBookingsFilter, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	Transition(ctx context.Context, id string, action model.Action, user string) (dto.BookingResponse, error)
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	store     *memstore.Store
	bookings  repository.Booking
	rooms     roomRepository.Room
	rate      rateService.Rate
	archive   archive.Archive
	publisher events.Publisher
	otel      otel.Otel
}

func New(
	store *memstore.Store,
	bookings repository.Booking,
	rooms roomRepository.Room,
	rate rateService.Rate,
	archive archive.Archive,
	publisher events.Publisher,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		store:     store,
		bookings:  bookings,
		rooms:     rooms,
		rate:      rate,
		archive:   archive,
		publisher: publisher,
		otel:      otel,
	}
}

// Create prices the stay, then assigns the first room of the requested type
// with enough free beds for every night of the range. The availability scan
// and the ledger write share one transaction, so two concurrent requests can
// never both claim the last bed.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest, user string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, fmt.Sprintf("%s.%s.Create", constant.OtelServiceScopeName, model.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := req.ToModel(user)
	if err != nil {
		return dto.BookingResponse{}, failure.BadRequest(err)
	}

	quote, err := s.rate.Quote(ctx, booking.RoomType, booking.CheckIn, booking.CheckOut)
	if err != nil {
		return dto.BookingResponse{}, err
	}

	booking.Total = quote.Total

	err = s.store.Update(ctx, func(tx *memstore.Tx) error {
		ledger := s.bookings.AllTx(tx)

		for _, room := range s.rooms.AllTx(tx) {
			if room.Type != booking.RoomType {
				continue
			}

			if !roomHasCapacity(room, ledger, booking.CheckIn, booking.CheckOut, booking.Guests) {
				continue
			}

			booking.RoomID = room.ID
			s.bookings.PutTx(tx, booking)

			return nil
		}

		return failure.Conflict(fmt.Sprintf("no %s room available for the requested dates", booking.RoomType))
	})
	if err != nil {
		return dto.BookingResponse{}, err
	}

	s.mirror(ctx, booking, func(ctx context.Context) error {
		return s.publisher.BookingCreated(ctx, booking)
	})

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, fmt.Sprintf("%s.%s.Get", constant.OtelServiceScopeName, model.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, found, err := s.bookings.Get(ctx, id)
	if err != nil {
		return dto.BookingResponse{}, failure.InternalError(err)
	}

	if !found {
		return dto.BookingResponse{}, failure.NotFound(model.EntityName)
	}

	res.FromModel(booking)

	return res, nil
}

// GetAll returns a filtered page of the ledger in creation order.
func (s *serviceImpl) GetAll(ctx context.Context, filter dto.ListBookingsFilter, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelServiceScopeName, model.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := s.bookings.GetAll(ctx)
	if err != nil {
		return dto.GetBookingsResponse{}, failure.InternalError(err)
	}

	matched := make([]model.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if filter.Matches(booking) {
			matched = append(matched, booking)
		}
	}

	from, to := params.Window(len(matched))
	res.FromModels(matched[from:to], len(matched), params.Limit)

	return res, nil
}

// Transition applies a lifecycle action. The status machine decides legality;
// on check-in the assigned room's bed count follows the booking, and leaving
// the checked-in state for any reason releases those beds again.
func (s *serviceImpl) Transition(ctx context.Context, id string, action model.Action, user string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, fmt.Sprintf("%s.%s.Transition", constant.OtelServiceScopeName, model.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var booking model.Booking

	err = s.store.Update(ctx, func(tx *memstore.Tx) error {
		current, found := s.bookings.GetTx(tx, id)
		if !found {
			return failure.NotFound(model.EntityName)
		}

		next, err := current.Status.Apply(action)
		if err != nil {
			return failure.Conflict(err.Error())
		}

		if err := s.moveOccupancy(tx, current, current.Status, next, user); err != nil {
			return err
		}

		current.Status = next
		current.ModifiedAt = timezone.Now()
		current.ModifiedBy = user
		s.bookings.PutTx(tx, current)

		booking = current

		return nil
	})
	if err != nil {
		return dto.BookingResponse{}, err
	}

	s.mirror(ctx, booking, func(ctx context.Context) error {
		return s.publisher.BookingStatusChanged(ctx, booking, action)
	})

	res.FromModel(booking)

	return res, nil
}

// CheckAvailability answers whether a specific room can take the requested
// party for every night of the range. It reads a consistent snapshot but
// reserves nothing; only Create holds beds.
func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, fmt.Sprintf("%s.%s.CheckAvailability", constant.OtelServiceScopeName, model.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn, err := timezone.Parse(constant.CalendarFormat, req.CheckIn)
	if err != nil {
		return dto.AvailabilityResponse{}, failure.BadRequest(err)
	}

	checkOut, err := timezone.Parse(constant.CalendarFormat, req.CheckOut)
	if err != nil {
		return dto.AvailabilityResponse{}, failure.BadRequest(err)
	}

	if _, err = s.rate.Nights(ctx, checkIn, checkOut); err != nil {
		return dto.AvailabilityResponse{}, err
	}

	available := false

	err = s.store.View(ctx, func(tx *memstore.Tx) error {
		room, found := s.rooms.GetTx(tx, req.RoomID)
		if !found {
			return failure.NotFound(roomModel.EntityName)
		}

		available = roomHasCapacity(room, s.bookings.AllTx(tx), checkIn, checkOut, req.Guests)

		return nil
	})
	if err != nil {
		return dto.AvailabilityResponse{}, err
	}

	return dto.AvailabilityResponse{
		RoomID:    req.RoomID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Guests:    req.Guests,
		Available: available,
	}, nil
}

// moveOccupancy keeps the room's bed count in sync with the booking's state.
func (s *serviceImpl) moveOccupancy(tx *memstore.Tx, booking model.Booking, from, to model.Status, user string) error {
	checkingIn := to == model.StatusCheckedIn
	checkingOutOfBeds := from == model.StatusCheckedIn && to != model.StatusCheckedIn

	if !checkingIn && !checkingOutOfBeds {
		return nil
	}

	room, found := s.rooms.GetTx(tx, booking.RoomID)
	if !found {
		return failure.NotFound(roomModel.EntityName)
	}

	if checkingIn {
		if room.Occupied+booking.Guests > room.Capacity {
			return failure.InvalidState(fmt.Sprintf("room %s cannot take %d more guests", room.ID, booking.Guests))
		}

		room.Occupied += booking.Guests
	} else {
		room.Occupied -= booking.Guests
		if room.Occupied < 0 {
			room.Occupied = 0
		}
	}

	room.ModifiedAt = timezone.Now()
	room.ModifiedBy = user
	s.rooms.PutTx(tx, room)

	s.mirrorRoom(context.Background(), room)

	return nil
}

// roomHasCapacity reports whether the room can host `guests` more people for
// every night of [checkIn, checkOut). Held beds vary night by night, and two
// stays that never coexist must not be counted together, so the check walks
// the nights where occupancy can peak: the window start and every check-in
// inside the window. Bookings count against capacity unless cancelled; rooms
// under maintenance take nobody.
func roomHasCapacity(room roomModel.Room, ledger []model.Booking, checkIn, checkOut time.Time, guests int) bool {
	if room.Maintenance {
		return false
	}

	nights := []time.Time{checkIn}

	for i := range ledger {
		if ledger[i].OccupiesRoom(room.ID, checkIn, checkOut) && ledger[i].CheckIn.After(checkIn) {
			nights = append(nights, ledger[i].CheckIn)
		}
	}

	for _, night := range nights {
		held := 0

		for i := range ledger {
			if ledger[i].OccupiesRoomAt(room.ID, night) {
				held += ledger[i].Guests
			}
		}

		if held+guests > room.Capacity {
			return false
		}
	}

	return true
}

// mirror pushes the booking to the archive and emits its event without
// blocking the request. The detached context survives the caller returning.
func (s *serviceImpl) mirror(ctx context.Context, booking model.Booking, publish func(ctx context.Context) error) {
	detached := context.WithoutCancel(ctx)

	go func() {
		if err := s.archive.SaveBooking(detached, booking); err != nil {
			log.Error().Err(err).Str("bookingID", booking.ID).Msg("Failed to archive booking")
		}

		if err := publish(detached); err != nil {
			log.Error().Err(err).Str("bookingID", booking.ID).Msg("Failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) mirrorRoom(ctx context.Context, room roomModel.Room) {
	detached := context.WithoutCancel(ctx)

	go func() {
		if err := s.archive.SaveRoom(detached, room); err != nil {
			log.Error().Err(err).Str("roomID", room.ID).Msg("Failed to archive room")
		}
	}()
}
