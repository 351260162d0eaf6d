package room

import (
	"net/http"

	"hostel/infras/otel"
	"hostel/internal/domains/room/model/dto"
	"hostel/internal/domains/room/service"
	"hostel/shared/constant"
	"hostel/shared/validator"
	"hostel/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Patch("/{id}/occupancy", handler.SetOccupancy)
		routerGroup.Patch("/{id}/maintenance", handler.SetMaintenance)
	})
}

// GetRooms retrieves the full room catalog.
// @Summary Get all rooms
// @Description Retrieve the room catalog with derived status per room.
// @Tags Room
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	rooms, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Description Retrieve a room by its unique identifier.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room retrieved successfully")

	response.WithJSON(w, http.StatusOK, room)
}

// SetOccupancy overrides a room's occupied bed count.
// @Summary Set room occupancy
// @Description Override the occupied bed count of a room, for walk-ins and manual corrections.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.SetOccupancyRequest true "Set Occupancy Request"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/occupancy [patch]
// @Security BearerAuth
func (handler *Handler) SetOccupancy(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetOccupancy")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.SetOccupancyRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room, err := handler.service.SetOccupancy(ctx, id, *req.Occupied, user)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set room occupancy")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room occupancy updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, room)
}

// SetMaintenance flips a room's maintenance flag.
// @Summary Set room maintenance
// @Description Put a room into or take it out of maintenance; rooms under maintenance take no bookings.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.SetMaintenanceRequest true "Set Maintenance Request"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/maintenance [patch]
// @Security BearerAuth
func (handler *Handler) SetMaintenance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetMaintenance")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.SetMaintenanceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room, err := handler.service.SetMaintenance(ctx, id, *req.Maintenance, user)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set room maintenance")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room maintenance updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, room)
}
