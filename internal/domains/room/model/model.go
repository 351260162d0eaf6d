package model

import (
	"hostel/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"
)

// Type is the normalized room category. The marketing site historically sent
// free-text labels ("Shared Dorm", "Private Room"); everything behind the API
// boundary works with these enums only.
type Type string

const (
	TypeDorm    Type = "dorm"
	TypePrivate Type = "private"
	TypeEnsuite Type = "ensuite"
)

// NightlyRates is the house tariff per room type. Seeded rooms inherit these
// prices; quotes are computed from this table so a quote never depends on
// which concrete room ends up assigned.
var NightlyRates = map[Type]int64{
	TypeDorm:    1000,
	TypePrivate: 2000,
	TypeEnsuite: 4000,
}

func (t Type) Valid() bool {
	_, ok := NightlyRates[t]

	return ok
}

func (t Type) String() string {
	return string(t)
}

// Status is derived from occupancy, except maintenance which is an explicit
// override set by staff.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusFull        Status = "full"
	StatusMaintenance Status = "maintenance"
)

type Room struct {
	ID          string `db:"id"`
	Type        Type   `db:"room_type"`
	Capacity    int    `db:"capacity"`
	Price       int64  `db:"price"`
	Occupied    int    `db:"occupied"`
	Maintenance bool   `db:"maintenance"`
	model.Metadata
}

// Status derives the room status. Maintenance wins over everything; a room
// is full exactly when occupancy has reached capacity.
func (r *Room) Status() Status {
	switch {
	case r.Maintenance:
		return StatusMaintenance
	case r.Capacity > 0 && r.Occupied >= r.Capacity:
		return StatusFull
	case r.Occupied > 0:
		return StatusOccupied
	default:
		return StatusAvailable
	}
}
