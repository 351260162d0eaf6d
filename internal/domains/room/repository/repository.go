package repository

import (
	"context"
	"fmt"

	"hostel/infras/memstore"
	"hostel/infras/otel"
	"hostel/internal/domains/room/model"
	"hostel/shared/constant"
)

// Room is the catalog of physical rooms. The plain methods run their own
// store transaction; the Tx methods compose into a caller-owned transaction
// so the booking ledger can check rooms and write bookings atomically.
type Room interface {
	GetAll(ctx context.Context) ([]model.Room, error)
	Get(ctx context.Context, id string) (model.Room, bool, error)
	Save(ctx context.Context, room model.Room) error
	Load(ctx context.Context, rooms []model.Room) error

	GetTx(tx *memstore.Tx, id string) (model.Room, bool)
	AllTx(tx *memstore.Tx) []model.Room
	PutTx(tx *memstore.Tx, room model.Room)
}

type repositoryImpl struct {
	store *memstore.Store
	rooms *memstore.Collection[model.Room]
	otel  otel.Otel
}

func New(store *memstore.Store, otel otel.Otel) Room {
	return &repositoryImpl{
		store: store,
		rooms: memstore.NewCollection[model.Room](),
		otel:  otel,
	}
}

func (repo *repositoryImpl) GetAll(ctx context.Context) (rooms []model.Room, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = repo.store.View(ctx, func(tx *memstore.Tx) error {
		rooms = repo.rooms.All(tx)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get all data (%s): %w", model.EntityName, err)
	}

	return rooms, nil
}

func (repo *repositoryImpl) Get(ctx context.Context, id string) (room model.Room, found bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Get", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = repo.store.View(ctx, func(tx *memstore.Tx) error {
		room, found = repo.rooms.Get(tx, id)

		return nil
	})
	if err != nil {
		return model.Room{}, false, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return room, found, nil
}

func (repo *repositoryImpl) Save(ctx context.Context, room model.Room) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Save", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = repo.store.Update(ctx, func(tx *memstore.Tx) error {
		repo.rooms.Put(tx, room.ID, room)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save data (%s): %w", model.EntityName, err)
	}

	return nil
}

// Load replaces nothing; it inserts the given rooms in order. Used once at
// startup with either the archived catalog or the default seed.
func (repo *repositoryImpl) Load(ctx context.Context, rooms []model.Room) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Load", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = repo.store.Update(ctx, func(tx *memstore.Tx) error {
		for _, room := range rooms {
			repo.rooms.Put(tx, room.ID, room)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to load data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) GetTx(tx *memstore.Tx, id string) (model.Room, bool) {
	return repo.rooms.Get(tx, id)
}

func (repo *repositoryImpl) AllTx(tx *memstore.Tx) []model.Room {
	return repo.rooms.All(tx)
}

func (repo *repositoryImpl) PutTx(tx *memstore.Tx, room model.Room) {
	repo.rooms.Put(tx, room.ID, room)
}
