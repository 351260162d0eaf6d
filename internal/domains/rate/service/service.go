package service

import (
	"context"
	"fmt"
	"time"

	"hostel/infras/otel"
	"hostel/internal/domains/rate/model/dto"
	roomModel "hostel/internal/domains/room/model"
	"hostel/shared/constant"
	"hostel/shared/failure"
)

const day = 24 * time.Hour

// Rate prices stays. Quotes depend only on room type and date range, never on
// which concrete room ends up assigned, so the same quote can be shown before
// and after booking.
type Rate interface {
	Nights(ctx context.Context, checkIn, checkOut time.Time) (int, error)
	Quote(ctx context.Context, roomType roomModel.Type, checkIn, checkOut time.Time) (dto.QuoteResponse, error)
}

type serviceImpl struct {
	otel otel.Otel
}

func New(otel otel.Otel) Rate {
	return &serviceImpl{
		otel: otel,
	}
}

// Nights counts billable nights in the half-open range [checkIn, checkOut).
// Partial days round up, so a range that is not an exact multiple of 24 hours
// still bills the final night.
func (s *serviceImpl) Nights(ctx context.Context, checkIn, checkOut time.Time) (nights int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, fmt.Sprintf("%s.rate.Nights", constant.OtelServiceScopeName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !checkOut.After(checkIn) {
		return 0, failure.BadRequestFromString("check-out date must be after check-in date")
	}

	stay := checkOut.Sub(checkIn)

	nights = int(stay / day)
	if stay%day != 0 {
		nights++
	}

	return nights, nil
}

func (s *serviceImpl) Quote(ctx context.Context, roomType roomModel.Type, checkIn, checkOut time.Time) (quote dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, fmt.Sprintf("%s.rate.Quote", constant.OtelServiceScopeName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rate, ok := roomModel.NightlyRates[roomType]
	if !ok {
		return dto.QuoteResponse{}, failure.BadRequestFromString(fmt.Sprintf("unknown room type: %s", roomType))
	}

	nights, err := s.Nights(ctx, checkIn, checkOut)
	if err != nil {
		return dto.QuoteResponse{}, err
	}

	return dto.QuoteResponse{
		RoomType:    roomType.String(),
		CheckIn:     checkIn.Format(constant.CalendarFormat),
		CheckOut:    checkOut.Format(constant.CalendarFormat),
		Nights:      nights,
		NightlyRate: rate,
		Total:       rate * int64(nights),
	}, nil
}
