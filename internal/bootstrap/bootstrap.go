package bootstrap

import (
	"context"
	"fmt"

	"hostel/internal/archive"
	bookingRepository "hostel/internal/domains/booking/repository"
	roomModel "hostel/internal/domains/room/model"
	roomRepository "hostel/internal/domains/room/repository"
	gModel "hostel/shared/model"
	"hostel/shared/timezone"

	"github.com/rs/zerolog/log"
)

const seedUser = "system"

// Bootstrap fills the in-memory store at startup. With an archive configured
// it restores the last known state; otherwise, and on the very first run, the
// house gets its default catalog.
type Bootstrap struct {
	archive  archive.Archive
	bookings bookingRepository.Booking
	rooms    roomRepository.Room
}

func New(archive archive.Archive, bookings bookingRepository.Booking, rooms roomRepository.Room) *Bootstrap {
	return &Bootstrap{
		archive:  archive,
		bookings: bookings,
		rooms:    rooms,
	}
}

func (b *Bootstrap) Run(ctx context.Context) error {
	if !b.archive.Enabled() {
		log.Info().Msg("Archive disabled, seeding default room catalog")

		return b.seed(ctx)
	}

	rooms, err := b.archive.LoadRooms(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore rooms from archive: %w", err)
	}

	if len(rooms) == 0 {
		log.Info().Msg("Archive is empty, seeding default room catalog")

		if err := b.seed(ctx); err != nil {
			return err
		}

		return b.mirrorSeed(ctx)
	}

	if err := b.rooms.Load(ctx, rooms); err != nil {
		return fmt.Errorf("failed to load rooms: %w", err)
	}

	bookings, err := b.archive.LoadBookings(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore bookings from archive: %w", err)
	}

	if err := b.bookings.Load(ctx, bookings); err != nil {
		return fmt.Errorf("failed to load bookings: %w", err)
	}

	log.Info().
		Int("rooms", len(rooms)).
		Int("bookings", len(bookings)).
		Msg("Restored state from archive")

	return nil
}

func (b *Bootstrap) seed(ctx context.Context) error {
	if err := b.rooms.Load(ctx, DefaultCatalog()); err != nil {
		return fmt.Errorf("failed to seed room catalog: %w", err)
	}

	return nil
}

func (b *Bootstrap) mirrorSeed(ctx context.Context) error {
	for _, room := range DefaultCatalog() {
		if err := b.archive.SaveRoom(ctx, room); err != nil {
			return fmt.Errorf("failed to archive seeded room %s: %w", room.ID, err)
		}
	}

	return nil
}

// DefaultCatalog is the physical layout of the house.
func DefaultCatalog() []roomModel.Room {
	now := timezone.Now()
	metadata := gModel.Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  seedUser,
		ModifiedBy: seedUser,
	}

	return []roomModel.Room{
		{ID: "101", Type: roomModel.TypeDorm, Capacity: 8, Price: roomModel.NightlyRates[roomModel.TypeDorm], Metadata: metadata},
		{ID: "102", Type: roomModel.TypeDorm, Capacity: 6, Price: roomModel.NightlyRates[roomModel.TypeDorm], Metadata: metadata},
		{ID: "201", Type: roomModel.TypePrivate, Capacity: 2, Price: roomModel.NightlyRates[roomModel.TypePrivate], Metadata: metadata},
		{ID: "202", Type: roomModel.TypePrivate, Capacity: 2, Price: roomModel.NightlyRates[roomModel.TypePrivate], Metadata: metadata},
		{ID: "301", Type: roomModel.TypeEnsuite, Capacity: 4, Price: roomModel.NightlyRates[roomModel.TypeEnsuite], Metadata: metadata},
	}
}
