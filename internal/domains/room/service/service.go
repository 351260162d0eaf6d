package service

import (
	"context"
	"fmt"

	"hostel/infras/memstore"
	"hostel/infras/otel"
	"hostel/internal/archive"
	"hostel/internal/domains/room/model"
	"hostel/internal/domains/room/model/dto"
	"hostel/internal/domains/room/repository"
	"hostel/shared/constant"
	"hostel/shared/failure"
	"hostel/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Room manages the physical catalog. Occupancy and maintenance are staff
// overrides for what the booking lifecycle does not cover, walk-ins and
// broken plumbing mostly.
type Room interface {
	GetAll(ctx context.Context) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	SetOccupancy(ctx context.Context, id string, occupied int, user string) (dto.RoomResponse, error)
	SetMaintenance(ctx context.Context, id string, maintenance bool, user string) (dto.RoomResponse, error)
}

type serviceImpl struct {
	store   *memstore.Store
	rooms   repository.Room
	archive archive.Archive
	otel    otel.Otel
}

func New(store *memstore.Store, rooms repository.Room, archive archive.Archive, otel otel.Otel) Room {
	return &serviceImpl{
		store:   store,
		rooms:   rooms,
		archive: archive,
		otel:    otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelServiceScopeName, model.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rooms, err := s.rooms.GetAll(ctx)
	if err != nil {
		return dto.GetRoomsResponse{}, failure.InternalError(err)
	}

	res.FromModels(rooms)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, fmt.Sprintf("%s.%s.Get", constant.OtelServiceScopeName, model.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, found, err := s.rooms.Get(ctx, id)
	if err != nil {
		return dto.RoomResponse{}, failure.InternalError(err)
	}

	if !found {
		return dto.RoomResponse{}, failure.NotFound(model.EntityName)
	}

	res.FromModel(room)

	return res, nil
}

// SetOccupancy overrides the occupied bed count, bounded by capacity. Zero is
// legal; negative counts never reach here thanks to request validation.
func (s *serviceImpl) SetOccupancy(ctx context.Context, id string, occupied int, user string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, fmt.Sprintf("%s.%s.SetOccupancy", constant.OtelServiceScopeName, model.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.update(ctx, id, user, func(room *model.Room) error {
		if occupied < 0 || occupied > room.Capacity {
			return failure.InvalidState(fmt.Sprintf("occupancy %d is out of range for room %s with capacity %d", occupied, room.ID, room.Capacity))
		}

		room.Occupied = occupied

		return nil
	})
	if err != nil {
		return dto.RoomResponse{}, err
	}

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) SetMaintenance(ctx context.Context, id string, maintenance bool, user string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, fmt.Sprintf("%s.%s.SetMaintenance", constant.OtelServiceScopeName, model.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.update(ctx, id, user, func(room *model.Room) error {
		room.Maintenance = maintenance

		return nil
	})
	if err != nil {
		return dto.RoomResponse{}, err
	}

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) update(ctx context.Context, id, user string, mutate func(room *model.Room) error) (room model.Room, err error) {
	err = s.store.Update(ctx, func(tx *memstore.Tx) error {
		current, found := s.rooms.GetTx(tx, id)
		if !found {
			return failure.NotFound(model.EntityName)
		}

		if err := mutate(&current); err != nil {
			return err
		}

		current.ModifiedAt = timezone.Now()
		current.ModifiedBy = user
		s.rooms.PutTx(tx, current)

		room = current

		return nil
	})
	if err != nil {
		return model.Room{}, err
	}

	detached := context.WithoutCancel(ctx)

	go func() {
		if err := s.archive.SaveRoom(detached, room); err != nil {
			log.Error().Err(err).Str("roomID", room.ID).Msg("Failed to archive room")
		}
	}()

	return room, nil
}
