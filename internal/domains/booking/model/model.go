package model

import (
	"time"

	roomModel "hostel/internal/domains/room/model"
	"hostel/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"
)

type Booking struct {
	ID              string         `db:"id"`
	GuestName       string         `db:"guest_name"`
	Email           string         `db:"email"`
	Phone           string         `db:"phone"`
	SpecialRequests string         `db:"special_requests"`
	RoomType        roomModel.Type `db:"room_type"`
	RoomID          string         `db:"room_id"`
	CheckIn         time.Time      `db:"check_in"`
	CheckOut        time.Time      `db:"check_out"`
	Guests          int            `db:"guests"`
	Status          Status         `db:"status"`
	Total           int64          `db:"total"`
	model.Metadata
}

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) share at least one night. Adjacent ranges do not overlap:
// a check-out morning frees the bed for that night's check-in.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// OccupiesRoom reports whether this booking holds beds in the given room for
// any night of [from, to). Cancelled bookings hold nothing.
func (b *Booking) OccupiesRoom(roomID string, from, to time.Time) bool {
	if b.Status == StatusCancelled {
		return false
	}

	if b.RoomID != roomID {
		return false
	}

	return Overlaps(b.CheckIn, b.CheckOut, from, to)
}

// OccupiesRoomAt reports whether this booking holds beds in the given room on
// the single night starting at the given instant.
func (b *Booking) OccupiesRoomAt(roomID string, night time.Time) bool {
	if b.Status == StatusCancelled {
		return false
	}

	if b.RoomID != roomID {
		return false
	}

	return !night.Before(b.CheckIn) && night.Before(b.CheckOut)
}
