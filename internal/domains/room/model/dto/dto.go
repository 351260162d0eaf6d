package dto

import (
	"hostel/internal/domains/room/model"
	gDto "hostel/shared/dto"
)

type SetOccupancyRequest struct {
	Occupied *int `json:"occupied" validate:"required,min=0"`
}

type SetMaintenanceRequest struct {
	Maintenance *bool `json:"maintenance" validate:"required"`
}

type RoomResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Capacity    int    `json:"capacity"`
	Price       int64  `json:"price"`
	Occupied    int    `json:"occupied"`
	Status      string `json:"status"`
	Maintenance bool   `json:"maintenance"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Type = model.Type.String()
	r.Capacity = model.Capacity
	r.Price = model.Price
	r.Occupied = model.Occupied
	r.Status = string(model.Status())
	r.Maintenance = model.Maintenance
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room) {
	r.TotalData = len(models)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
