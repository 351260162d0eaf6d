package dto

import (
	"hostel/internal/domains/booking/model"
	roomModel "hostel/internal/domains/room/model"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	gModel "hostel/shared/model"
	"hostel/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	GuestName       string `json:"guest_name"       validate:"required,max=100"`
	Email           string `json:"email"            validate:"required,email,max=100"`
	Phone           string `json:"phone"            validate:"omitempty,max=20"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=500"`
	RoomType        string `json:"room_type"        validate:"required,oneof=dorm private ensuite"`
	CheckIn         string `json:"check_in"         validate:"required,bookdate"`
	CheckOut        string `json:"check_out"        validate:"required,bookdate"`
	Guests          int    `json:"guests"           validate:"required,min=1"`
}

// ToModel builds a pending booking with a fresh unique id. The ledger used
// to derive ids from the collection length, which collides under concurrent
// creation; UUIDs close that hole. Room assignment and total price are
// filled in by the service once availability is settled.
func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	checkIn, err := timezone.Parse(constant.CalendarFormat, c.CheckIn)
	if err != nil {
		return model.Booking{}, err
	}

	checkOut, err := timezone.Parse(constant.CalendarFormat, c.CheckOut)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		ID:              uuid.NewString(),
		GuestName:       c.GuestName,
		Email:           c.Email,
		Phone:           c.Phone,
		SpecialRequests: c.SpecialRequests,
		RoomType:        roomModel.Type(c.RoomType),
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          c.Guests,
		Status:          model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type TransitionRequest struct {
	Action string `json:"action" validate:"required,oneof=confirm check-in check-out cancel"`
}

// ListBookingsFilter narrows the admin booking list. Search matches
// case-insensitively against guest name, email, or booking id; an empty or
// "all" status means no status filter.
type ListBookingsFilter struct {
	Search string
	Status string
}

func (f *ListBookingsFilter) Matches(booking model.Booking) bool {
	if f.Search != "" {
		matchesSearch := shared.ContainsFold(booking.GuestName, f.Search) ||
			shared.ContainsFold(booking.Email, f.Search) ||
			shared.ContainsFold(booking.ID, f.Search)
		if !matchesSearch {
			return false
		}
	}

	if f.Status != "" && f.Status != constant.StatusFilterAll {
		if booking.Status.String() != f.Status {
			return false
		}
	}

	return true
}

type AvailabilityRequest struct {
	RoomID   string `json:"room_id"   validate:"required"`
	CheckIn  string `json:"check_in"  validate:"required,bookdate"`
	CheckOut string `json:"check_out" validate:"required,bookdate"`
	Guests   int    `json:"guests"    validate:"required,min=1"`
}

type AvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Guests    int    `json:"guests"`
	Available bool   `json:"available"`
}

type BookingResponse struct {
	ID              string `json:"id"`
	GuestName       string `json:"guest_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	SpecialRequests string `json:"special_requests,omitempty"`
	RoomType        string `json:"room_type"`
	RoomID          string `json:"room_id"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	Guests          int    `json:"guests"`
	Status          string `json:"status"`
	Total           int64  `json:"total"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.GuestName = model.GuestName
	r.Email = model.Email
	r.Phone = model.Phone
	r.SpecialRequests = model.SpecialRequests
	r.RoomType = model.RoomType.String()
	r.RoomID = model.RoomID
	r.CheckIn = model.CheckIn.Format(constant.CalendarFormat)
	r.CheckOut = model.CheckOut.Format(constant.CalendarFormat)
	r.Guests = model.Guests
	r.Status = model.Status.String()
	r.Total = model.Total
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
