package rate

import (
	"net/http"

	"hostel/infras/otel"
	"hostel/internal/domains/rate/model/dto"
	"hostel/internal/domains/rate/service"
	roomModel "hostel/internal/domains/room/model"
	"hostel/shared/constant"
	"hostel/shared/timezone"
	"hostel/shared/validator"
	"hostel/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Rate
	otel    otel.Otel
}

func New(service service.Rate, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rates", func(routerGroup chi.Router) {
		routerGroup.Get("/quote", handler.GetQuote)
	})
}

// GetQuote prices a stay for a room type and date range.
// @Summary Get a price quote
// @Description Price a stay for a room type and date range without creating a booking.
// @Tags Rate
// @Accept json
// @Produce json
// @Param room_type query string true "Room type (dorm, private, ensuite)"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.QuoteResponse] "Price quote"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rates/quote [get]
func (handler *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetQuote")
	defer scope.End()

	query := r.URL.Query()

	req := dto.QuoteRequest{
		RoomType: query.Get(constant.RequestParamRoomType),
		CheckIn:  query.Get(constant.RequestParamCheckIn),
		CheckOut: query.Get(constant.RequestParamCheckOut),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate query parameters")

		response.WithError(w, err)

		return
	}

	// Both dates already passed bookdate validation.
	checkIn, _ := timezone.Parse(constant.CalendarFormat, req.CheckIn)
	checkOut, _ := timezone.Parse(constant.CalendarFormat, req.CheckOut)

	quote, err := handler.service.Quote(ctx, roomModel.Type(req.RoomType), checkIn, checkOut)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to compute quote")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Quote computed successfully")

	response.WithJSON(w, http.StatusOK, quote)
}
