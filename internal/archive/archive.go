package archive

//go:generate go run go.uber.org/mock/mockgen -source=./archive.go -destination=./mocks/archive_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hostel/infras/otel"
	"hostel/infras/postgres"
	bookingModel "hostel/internal/domains/booking/model"
	roomModel "hostel/internal/domains/room/model"
	"hostel/shared/constant"
)

// Archive is the write-behind durability layer. The in-memory store stays
// authoritative; every mutation is mirrored here asynchronously and the
// archived state is replayed once at startup. A failed archive write never
// fails the request that caused it.
type Archive interface {
	Enabled() bool
	SaveBooking(ctx context.Context, booking bookingModel.Booking) error
	SaveRoom(ctx context.Context, room roomModel.Room) error
	LoadBookings(ctx context.Context) ([]bookingModel.Booking, error)
	LoadRooms(ctx context.Context) ([]roomModel.Room, error)
}

const upsertBookingQuery = `
	INSERT INTO bookings (
		id, guest_name, email, phone, special_requests, room_type, room_id,
		check_in, check_out, guests, status, total,
		created_at, modified_at, created_by, modified_by
	) VALUES (
		:id, :guest_name, :email, :phone, :special_requests, :room_type, :room_id,
		:check_in, :check_out, :guests, :status, :total,
		:created_at, :modified_at, :created_by, :modified_by
	)
	ON CONFLICT (id) DO UPDATE SET
		status = EXCLUDED.status,
		total = EXCLUDED.total,
		room_id = EXCLUDED.room_id,
		modified_at = EXCLUDED.modified_at,
		modified_by = EXCLUDED.modified_by`

const upsertRoomQuery = `
	INSERT INTO rooms (
		id, room_type, capacity, price, occupied, maintenance,
		created_at, modified_at, created_by, modified_by
	) VALUES (
		:id, :room_type, :capacity, :price, :occupied, :maintenance,
		:created_at, :modified_at, :created_by, :modified_by
	)
	ON CONFLICT (id) DO UPDATE SET
		occupied = EXCLUDED.occupied,
		maintenance = EXCLUDED.maintenance,
		modified_at = EXCLUDED.modified_at,
		modified_by = EXCLUDED.modified_by`

type postgresArchive struct {
	conn *postgres.Connection
	otel otel.Otel
}

func New(conn *postgres.Connection, otel otel.Otel) Archive {
	if !conn.Enabled() {
		return &noopArchive{}
	}

	return &postgresArchive{
		conn: conn,
		otel: otel,
	}
}

func (a *postgresArchive) Enabled() bool {
	return true
}

func (a *postgresArchive) SaveBooking(ctx context.Context, booking bookingModel.Booking) (err error) {
	ctx, scope := a.otel.NewScope(ctx, constant.OtelArchiveScopeName, fmt.Sprintf("%s.%s.Save", constant.OtelArchiveScopeName, bookingModel.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = a.conn.DB.NamedExecContext(ctx, upsertBookingQuery, booking); err != nil {
		return fmt.Errorf("failed to archive data (%s): %w", bookingModel.EntityName, err)
	}

	return nil
}

func (a *postgresArchive) SaveRoom(ctx context.Context, room roomModel.Room) (err error) {
	ctx, scope := a.otel.NewScope(ctx, constant.OtelArchiveScopeName, fmt.Sprintf("%s.%s.Save", constant.OtelArchiveScopeName, roomModel.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = a.conn.DB.NamedExecContext(ctx, upsertRoomQuery, room); err != nil {
		return fmt.Errorf("failed to archive data (%s): %w", roomModel.EntityName, err)
	}

	return nil
}

func (a *postgresArchive) LoadBookings(ctx context.Context) (bookings []bookingModel.Booking, err error) {
	ctx, scope := a.otel.NewScope(ctx, constant.OtelArchiveScopeName, fmt.Sprintf("%s.%s.Load", constant.OtelArchiveScopeName, bookingModel.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := fmt.Sprintf("SELECT * FROM %s ORDER BY created_at ASC", bookingModel.TableName)
	if err = a.conn.DB.SelectContext(ctx, &bookings, query); err != nil {
		return nil, fmt.Errorf("failed to load archived data (%s): %w", bookingModel.EntityName, err)
	}

	return bookings, nil
}

func (a *postgresArchive) LoadRooms(ctx context.Context) (rooms []roomModel.Room, err error) {
	ctx, scope := a.otel.NewScope(ctx, constant.OtelArchiveScopeName, fmt.Sprintf("%s.%s.Load", constant.OtelArchiveScopeName, roomModel.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := fmt.Sprintf("SELECT * FROM %s ORDER BY id ASC", roomModel.TableName)
	if err = a.conn.DB.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("failed to load archived data (%s): %w", roomModel.EntityName, err)
	}

	return rooms, nil
}

type noopArchive struct{}

func (a *noopArchive) Enabled() bool {
	return false
}

func (a *noopArchive) SaveBooking(_ context.Context, _ bookingModel.Booking) error {
	return nil
}

func (a *noopArchive) SaveRoom(_ context.Context, _ roomModel.Room) error {
	return nil
}

func (a *noopArchive) LoadBookings(_ context.Context) ([]bookingModel.Booking, error) {
	return nil, nil
}

func (a *noopArchive) LoadRooms(_ context.Context) ([]roomModel.Room, error) {
	return nil, nil
}
