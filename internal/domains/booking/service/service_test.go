package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"hostel/config"
	"hostel/infras/memstore"
	otelMocks "hostel/infras/otel/mocks"
	"hostel/infras/postgres"
	"hostel/internal/archive"
	bookingModel "hostel/internal/domains/booking/model"
	"hostel/internal/domains/booking/model/dto"
	bookingRepository "hostel/internal/domains/booking/repository"
	"hostel/internal/domains/booking/service"
	rateService "hostel/internal/domains/rate/service"
	roomModel "hostel/internal/domains/room/model"
	roomRepository "hostel/internal/domains/room/repository"
	"hostel/internal/events"
	eventsMocks "hostel/internal/events/mocks"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc   service.Booking
	rooms roomRepository.Room
}

func newFixture(t *testing.T, rooms ...roomModel.Room) *fixture {
	t.Helper()

	store := memstore.New()
	otel := otelMocks.NewOtel()
	roomRepo := roomRepository.New(store, otel)
	bookingRepo := bookingRepository.New(store, otel)

	require.NoError(t, roomRepo.Load(context.Background(), rooms))

	svc := service.New(
		store,
		bookingRepo,
		roomRepo,
		rateService.New(otel),
		archive.New(&postgres.Connection{}, otel),
		events.New(config.Get(), nil, otel),
		otel,
	)

	return &fixture{svc: svc, rooms: roomRepo}
}

func dormRoom(id string, capacity int) roomModel.Room {
	return roomModel.Room{ID: id, Type: roomModel.TypeDorm, Capacity: capacity, Price: 1000}
}

func createRequest(guests int, checkIn, checkOut string) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		GuestName: "Ada Lovelace",
		Email:     "ada@example.com",
		RoomType:  "dorm",
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Guests:    guests,
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("books the first room with capacity", func(t *testing.T) {
		f := newFixture(t, dormRoom("101", 4))

		created, err := f.svc.Create(ctx, createRequest(2, "2025-06-01", "2025-06-04"), "guest")

		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "pending", created.Status)
		assert.Equal(t, "101", created.RoomID)
		assert.Equal(t, int64(3000), created.Total)

		fetched, err := f.svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, fetched.ID)
	})

	t.Run("skips full rooms and takes the next one", func(t *testing.T) {
		f := newFixture(t, dormRoom("101", 2), dormRoom("102", 6))

		first, err := f.svc.Create(ctx, createRequest(2, "2025-06-01", "2025-06-04"), "guest")
		require.NoError(t, err)
		assert.Equal(t, "101", first.RoomID)

		second, err := f.svc.Create(ctx, createRequest(2, "2025-06-02", "2025-06-05"), "guest")
		require.NoError(t, err)
		assert.Equal(t, "102", second.RoomID)
	})

	t.Run("rejects when no room has capacity", func(t *testing.T) {
		f := newFixture(t, dormRoom("101", 2))

		_, err := f.svc.Create(ctx, createRequest(2, "2025-06-01", "2025-06-04"), "guest")
		require.NoError(t, err)

		_, err = f.svc.Create(ctx, createRequest(1, "2025-06-03", "2025-06-05"), "guest")
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("back to back stays share a bed", func(t *testing.T) {
		f := newFixture(t, dormRoom("101", 1))

		_, err := f.svc.Create(ctx, createRequest(1, "2025-06-01", "2025-06-04"), "guest")
		require.NoError(t, err)

		_, err = f.svc.Create(ctx, createRequest(1, "2025-06-04", "2025-06-06"), "guest")
		require.NoError(t, err)
	})

	t.Run("cancelled bookings release capacity", func(t *testing.T) {
		f := newFixture(t, dormRoom("101", 1))

		first, err := f.svc.Create(ctx, createRequest(1, "2025-06-01", "2025-06-04"), "guest")
		require.NoError(t, err)

		_, err = f.svc.Transition(ctx, first.ID, bookingModel.ActionCancel, "admin")
		require.NoError(t, err)

		_, err = f.svc.Create(ctx, createRequest(1, "2025-06-01", "2025-06-04"), "guest")
		require.NoError(t, err)
	})

	t.Run("stays that never coexist are not counted together", func(t *testing.T) {
		f := newFixture(t, dormRoom("101", 2))

		_, err := f.svc.Create(ctx, createRequest(1, "2025-06-01", "2025-06-03"), "guest")
		require.NoError(t, err)

		_, err = f.svc.Create(ctx, createRequest(1, "2025-06-03", "2025-06-05"), "guest")
		require.NoError(t, err)

		// One bed is free every night of [Jun 1, Jun 5); the two existing
		// one-guest stays hand over on Jun 3.
		created, err := f.svc.Create(ctx, createRequest(1, "2025-06-01", "2025-06-05"), "guest")
		require.NoError(t, err)
		assert.Equal(t, "101", created.RoomID)
	})

	t.Run("busiest night binds the whole range", func(t *testing.T) {
		f := newFixture(t, dormRoom("101", 2))

		_, err := f.svc.Create(ctx, createRequest(1, "2025-06-01", "2025-06-03"), "guest")
		require.NoError(t, err)

		_, err = f.svc.Create(ctx, createRequest(1, "2025-06-02", "2025-06-04"), "guest")
		require.NoError(t, err)

		// Both stays share the night of Jun 2, so no bed is left then.
		_, err = f.svc.Create(ctx, createRequest(1, "2025-06-01", "2025-06-04"), "guest")
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("skips rooms under maintenance", func(t *testing.T) {
		room := dormRoom("101", 4)
		room.Maintenance = true
		f := newFixture(t, room)

		_, err := f.svc.Create(ctx, createRequest(1, "2025-06-01", "2025-06-04"), "guest")
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("rejects an inverted date range", func(t *testing.T) {
		f := newFixture(t, dormRoom("101", 4))

		_, err := f.svc.Create(ctx, createRequest(1, "2025-06-04", "2025-06-01"), "guest")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestGet(t *testing.T) {
	f := newFixture(t, dormRoom("101", 4))

	_, err := f.svc.Get(context.Background(), "missing")

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestGetAll(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dormRoom("101", 8))

	first, err := f.svc.Create(ctx, createRequest(1, "2025-06-01", "2025-06-02"), "guest")
	require.NoError(t, err)

	second := createRequest(1, "2025-06-01", "2025-06-02")
	second.GuestName = "Grace Hopper"
	second.Email = "grace@example.com"
	createdSecond, err := f.svc.Create(ctx, second, "guest")
	require.NoError(t, err)

	_, err = f.svc.Transition(ctx, createdSecond.ID, bookingModel.ActionConfirm, "admin")
	require.NoError(t, err)

	t.Run("returns everything in creation order", func(t *testing.T) {
		res, err := f.svc.GetAll(ctx, dto.ListBookingsFilter{}, gDto.QueryParams{})

		require.NoError(t, err)
		require.Len(t, res.Bookings, 2)
		assert.Equal(t, 2, res.TotalData)
		assert.Equal(t, first.ID, res.Bookings[0].ID)
		assert.Equal(t, createdSecond.ID, res.Bookings[1].ID)
	})

	t.Run("search matches guest name case-insensitively", func(t *testing.T) {
		res, err := f.svc.GetAll(ctx, dto.ListBookingsFilter{Search: "grace"}, gDto.QueryParams{})

		require.NoError(t, err)
		require.Len(t, res.Bookings, 1)
		assert.Equal(t, "Grace Hopper", res.Bookings[0].GuestName)
	})

	t.Run("status filter narrows the list", func(t *testing.T) {
		res, err := f.svc.GetAll(ctx, dto.ListBookingsFilter{Status: "confirmed"}, gDto.QueryParams{})

		require.NoError(t, err)
		require.Len(t, res.Bookings, 1)
		assert.Equal(t, createdSecond.ID, res.Bookings[0].ID)
	})

	t.Run("status all is a no-op filter", func(t *testing.T) {
		res, err := f.svc.GetAll(ctx, dto.ListBookingsFilter{Status: "all"}, gDto.QueryParams{})

		require.NoError(t, err)
		assert.Len(t, res.Bookings, 2)
	})

	t.Run("pagination windows the result", func(t *testing.T) {
		res, err := f.svc.GetAll(ctx, dto.ListBookingsFilter{}, gDto.QueryParams{Page: 2, Limit: 1})

		require.NoError(t, err)
		require.Len(t, res.Bookings, 1)
		assert.Equal(t, createdSecond.ID, res.Bookings[0].ID)
		assert.Equal(t, 2, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)
	})
}

func TestTransition(t *testing.T) {
	ctx := context.Background()

	t.Run("walks the full lifecycle and moves occupancy", func(t *testing.T) {
		f := newFixture(t, dormRoom("101", 4))

		created, err := f.svc.Create(ctx, createRequest(2, "2025-06-01", "2025-06-04"), "guest")
		require.NoError(t, err)

		confirmed, err := f.svc.Transition(ctx, created.ID, bookingModel.ActionConfirm, "admin")
		require.NoError(t, err)
		assert.Equal(t, "confirmed", confirmed.Status)

		checkedIn, err := f.svc.Transition(ctx, created.ID, bookingModel.ActionCheckIn, "admin")
		require.NoError(t, err)
		assert.Equal(t, "checked-in", checkedIn.Status)

		room, found, err := f.rooms.Get(ctx, "101")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, 2, room.Occupied)

		checkedOut, err := f.svc.Transition(ctx, created.ID, bookingModel.ActionCheckOut, "admin")
		require.NoError(t, err)
		assert.Equal(t, "checked-out", checkedOut.Status)

		room, _, err = f.rooms.Get(ctx, "101")
		require.NoError(t, err)
		assert.Equal(t, 0, room.Occupied)
	})

	t.Run("confirming twice is rejected", func(t *testing.T) {
		f := newFixture(t, dormRoom("101", 4))

		created, err := f.svc.Create(ctx, createRequest(1, "2025-06-01", "2025-06-04"), "guest")
		require.NoError(t, err)

		_, err = f.svc.Transition(ctx, created.ID, bookingModel.ActionConfirm, "admin")
		require.NoError(t, err)

		_, err = f.svc.Transition(ctx, created.ID, bookingModel.ActionConfirm, "admin")
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))

		fetched, err := f.svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "confirmed", fetched.Status)
	})

	t.Run("cancelled bookings accept nothing further", func(t *testing.T) {
		f := newFixture(t, dormRoom("101", 4))

		created, err := f.svc.Create(ctx, createRequest(1, "2025-06-01", "2025-06-04"), "guest")
		require.NoError(t, err)

		_, err = f.svc.Transition(ctx, created.ID, bookingModel.ActionCancel, "admin")
		require.NoError(t, err)

		_, err = f.svc.Transition(ctx, created.ID, bookingModel.ActionConfirm, "admin")
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("cancelling after check-in releases beds", func(t *testing.T) {
		f := newFixture(t, dormRoom("101", 4))

		created, err := f.svc.Create(ctx, createRequest(3, "2025-06-01", "2025-06-04"), "guest")
		require.NoError(t, err)

		_, err = f.svc.Transition(ctx, created.ID, bookingModel.ActionConfirm, "admin")
		require.NoError(t, err)
		_, err = f.svc.Transition(ctx, created.ID, bookingModel.ActionCheckIn, "admin")
		require.NoError(t, err)

		_, err = f.svc.Transition(ctx, created.ID, bookingModel.ActionCancel, "admin")
		require.NoError(t, err)

		room, _, err := f.rooms.Get(ctx, "101")
		require.NoError(t, err)
		assert.Equal(t, 0, room.Occupied)
	})

	t.Run("check-in beyond capacity is rejected", func(t *testing.T) {
		f := newFixture(t, dormRoom("101", 4))

		created, err := f.svc.Create(ctx, createRequest(3, "2025-06-01", "2025-06-04"), "guest")
		require.NoError(t, err)

		_, err = f.svc.Transition(ctx, created.ID, bookingModel.ActionConfirm, "admin")
		require.NoError(t, err)

		// Walk-ins took beds after the booking was made.
		room, found, err := f.rooms.Get(ctx, "101")
		require.NoError(t, err)
		require.True(t, found)
		room.Occupied = 2
		require.NoError(t, f.rooms.Save(ctx, room))

		_, err = f.svc.Transition(ctx, created.ID, bookingModel.ActionCheckIn, "admin")
		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))

		fetched, err := f.svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "confirmed", fetched.Status)
	})

	t.Run("unknown booking returns not found", func(t *testing.T) {
		f := newFixture(t, dormRoom("101", 4))

		_, err := f.svc.Transition(ctx, "missing", bookingModel.ActionConfirm, "admin")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()

	request := func(roomID string, guests int, checkIn, checkOut string) dto.AvailabilityRequest {
		return dto.AvailabilityRequest{RoomID: roomID, CheckIn: checkIn, CheckOut: checkOut, Guests: guests}
	}

	t.Run("free room is available", func(t *testing.T) {
		f := newFixture(t, dormRoom("101", 4))

		res, err := f.svc.CheckAvailability(ctx, request("101", 4, "2025-06-01", "2025-06-04"))

		require.NoError(t, err)
		assert.True(t, res.Available)
	})

	t.Run("overlapping bookings consume beds", func(t *testing.T) {
		f := newFixture(t, dormRoom("101", 4))

		_, err := f.svc.Create(ctx, createRequest(3, "2025-06-01", "2025-06-04"), "guest")
		require.NoError(t, err)

		res, err := f.svc.CheckAvailability(ctx, request("101", 2, "2025-06-03", "2025-06-05"))
		require.NoError(t, err)
		assert.False(t, res.Available)

		res, err = f.svc.CheckAvailability(ctx, request("101", 1, "2025-06-03", "2025-06-05"))
		require.NoError(t, err)
		assert.True(t, res.Available)
	})

	t.Run("back to back stays leave the bed free", func(t *testing.T) {
		f := newFixture(t, dormRoom("101", 2))

		_, err := f.svc.Create(ctx, createRequest(1, "2025-06-01", "2025-06-03"), "guest")
		require.NoError(t, err)

		_, err = f.svc.Create(ctx, createRequest(1, "2025-06-03", "2025-06-05"), "guest")
		require.NoError(t, err)

		res, err := f.svc.CheckAvailability(ctx, request("101", 1, "2025-06-01", "2025-06-05"))
		require.NoError(t, err)
		assert.True(t, res.Available)
	})

	t.Run("adjacent range does not count", func(t *testing.T) {
		f := newFixture(t, dormRoom("101", 1))

		_, err := f.svc.Create(ctx, createRequest(1, "2025-06-01", "2025-06-04"), "guest")
		require.NoError(t, err)

		res, err := f.svc.CheckAvailability(ctx, request("101", 1, "2025-06-04", "2025-06-06"))
		require.NoError(t, err)
		assert.True(t, res.Available)
	})

	t.Run("unknown room returns not found", func(t *testing.T) {
		f := newFixture(t, dormRoom("101", 4))

		_, err := f.svc.CheckAvailability(ctx, request("999", 1, "2025-06-01", "2025-06-04"))
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("empty range is rejected", func(t *testing.T) {
		f := newFixture(t, dormRoom("101", 4))

		_, err := f.svc.CheckAvailability(ctx, request("101", 1, "2025-06-01", "2025-06-01"))
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestConcurrentCreate(t *testing.T) {
	f := newFixture(t, dormRoom("101", 1))

	const attempts = 20

	results := make(chan error, attempts)

	for range attempts {
		go func() {
			_, err := f.svc.Create(context.Background(), createRequest(1, "2025-06-01", "2025-06-04"), "guest")
			results <- err
		}()
	}

	succeeded := 0

	for range attempts {
		select {
		case err := <-results:
			if err == nil {
				succeeded++
			} else {
				assert.Equal(t, http.StatusConflict, failure.GetCode(err))
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for concurrent creates")
		}
	}

	// Exactly one create may claim the last bed.
	assert.Equal(t, 1, succeeded)
}

func TestLifecycleEventsPublished(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	mockPublisher := eventsMocks.NewMockPublisher(ctrl)

	store := memstore.New()
	otel := otelMocks.NewOtel()
	roomRepo := roomRepository.New(store, otel)
	bookingRepo := bookingRepository.New(store, otel)
	require.NoError(t, roomRepo.Load(ctx, []roomModel.Room{dormRoom("101", 4)}))

	svc := service.New(
		store,
		bookingRepo,
		roomRepo,
		rateService.New(otel),
		archive.New(&postgres.Connection{}, otel),
		mockPublisher,
		otel,
	)

	// Publishes happen on detached goroutines, so the expectations signal
	// completion back to the test before the controller verifies them.
	published := make(chan string, 2)

	mockPublisher.EXPECT().
		BookingCreated(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, booking bookingModel.Booking) error {
			published <- "created:" + string(booking.Status)

			return nil
		})
	mockPublisher.EXPECT().
		BookingStatusChanged(gomock.Any(), gomock.Any(), bookingModel.ActionConfirm).
		DoAndReturn(func(_ context.Context, booking bookingModel.Booking, _ bookingModel.Action) error {
			published <- "changed:" + string(booking.Status)

			return nil
		})

	waitEvent := func() string {
		select {
		case event := <-published:
			return event
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for a published event")

			return ""
		}
	}

	created, err := svc.Create(ctx, createRequest(1, "2025-06-01", "2025-06-04"), "guest")
	require.NoError(t, err)
	assert.Equal(t, "created:pending", waitEvent())

	_, err = svc.Transition(ctx, created.ID, bookingModel.ActionConfirm, "admin")
	require.NoError(t, err)
	assert.Equal(t, "changed:confirmed", waitEvent())
}
