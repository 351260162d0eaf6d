package repository

import (
	"context"
	"fmt"

	"hostel/infras/memstore"
	"hostel/infras/otel"
	"hostel/internal/domains/booking/model"
	"hostel/shared/constant"
)

// Booking is the ledger of every booking ever created. Records are only
// appended or replaced, never removed; a cancellation is a status change.
// The Tx methods compose into a caller-owned store transaction.
type Booking interface {
	GetAll(ctx context.Context) ([]model.Booking, error)
	Get(ctx context.Context, id string) (model.Booking, bool, error)
	Count(ctx context.Context) (int, error)
	Load(ctx context.Context, bookings []model.Booking) error

	GetTx(tx *memstore.Tx, id string) (model.Booking, bool)
	AllTx(tx *memstore.Tx) []model.Booking
	PutTx(tx *memstore.Tx, booking model.Booking)
}

type repositoryImpl struct {
	store    *memstore.Store
	bookings *memstore.Collection[model.Booking]
	otel     otel.Otel
}

func New(store *memstore.Store, otel otel.Otel) Booking {
	return &repositoryImpl{
		store:    store,
		bookings: memstore.NewCollection[model.Booking](),
		otel:     otel,
	}
}

func (repo *repositoryImpl) GetAll(ctx context.Context) (bookings []model.Booking, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = repo.store.View(ctx, func(tx *memstore.Tx) error {
		bookings = repo.bookings.All(tx)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get all data (%s): %w", model.EntityName, err)
	}

	return bookings, nil
}

func (repo *repositoryImpl) Get(ctx context.Context, id string) (booking model.Booking, found bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Get", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = repo.store.View(ctx, func(tx *memstore.Tx) error {
		booking, found = repo.bookings.Get(tx, id)

		return nil
	})
	if err != nil {
		return model.Booking{}, false, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return booking, found, nil
}

func (repo *repositoryImpl) Count(ctx context.Context) (count int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Count", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = repo.store.View(ctx, func(tx *memstore.Tx) error {
		count = repo.bookings.Len(tx)

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count data (%s): %w", model.EntityName, err)
	}

	return count, nil
}

// Load restores archived bookings at startup, preserving their order.
func (repo *repositoryImpl) Load(ctx context.Context, bookings []model.Booking) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Load", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = repo.store.Update(ctx, func(tx *memstore.Tx) error {
		for _, booking := range bookings {
			repo.bookings.Put(tx, booking.ID, booking)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to load data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) GetTx(tx *memstore.Tx, id string) (model.Booking, bool) {
	return repo.bookings.Get(tx, id)
}

func (repo *repositoryImpl) AllTx(tx *memstore.Tx) []model.Booking {
	return repo.bookings.All(tx)
}

func (repo *repositoryImpl) PutTx(tx *memstore.Tx, booking model.Booking) {
	repo.bookings.Put(tx, booking.ID, booking)
}
