package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hostel/config"
	"hostel/infras/kafka"
	"hostel/infras/otel"
	"hostel/internal/domains/booking/model"
	"hostel/shared/constant"
	"hostel/shared/timezone"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

// BookingEvent is the wire payload consumed by downstream systems, currently
// the guest notification service. The payload carries enough state that
// consumers never need to call back into the API.
type BookingEvent struct {
	Event     string `json:"event"`
	BookingID string `json:"booking_id"`
	GuestName string `json:"guest_name"`
	Email     string `json:"email"`
	RoomType  string `json:"room_type"`
	RoomID    string `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Status    string `json:"status"`
	Action    string `json:"action,omitempty"`
	Total     int64  `json:"total"`
	EmittedAt string `json:"emitted_at"`
}

// Publisher emits booking lifecycle events. Publishing is best effort; a
// broker outage must never fail the booking operation that triggered it.
type Publisher interface {
	BookingCreated(ctx context.Context, booking model.Booking) error
	BookingStatusChanged(ctx context.Context, booking model.Booking, action model.Action) error
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func New(config *config.Config, client kafka.Client, otel otel.Otel) Publisher {
	if !config.Events.Enable {
		return &noopPublisher{}
	}

	return &kafkaPublisher{
		client: client,
		topic:  config.Events.Kafka.Topic,
		otel:   otel,
	}
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, fmt.Sprintf("%s.%s.Created", constant.OtelEventScopeName, model.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return p.publish(ctx, payload(EventBookingCreated, booking, ""))
}

func (p *kafkaPublisher) BookingStatusChanged(ctx context.Context, booking model.Booking, action model.Action) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, fmt.Sprintf("%s.%s.StatusChanged", constant.OtelEventScopeName, model.EntityName))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return p.publish(ctx, payload(EventBookingStatusChanged, booking, action))
}

func (p *kafkaPublisher) publish(ctx context.Context, event BookingEvent) error {
	message := kafka.Message{
		Key:   event.BookingID,
		Value: event,
	}

	if err := p.client.SendMessages(ctx, p.topic, message); err != nil {
		return fmt.Errorf("failed to publish event (%s): %w", event.Event, err)
	}

	return nil
}

func payload(event string, booking model.Booking, action model.Action) BookingEvent {
	return BookingEvent{
		Event:     event,
		BookingID: booking.ID,
		GuestName: booking.GuestName,
		Email:     booking.Email,
		RoomType:  booking.RoomType.String(),
		RoomID:    booking.RoomID,
		CheckIn:   booking.CheckIn.Format(constant.CalendarFormat),
		CheckOut:  booking.CheckOut.Format(constant.CalendarFormat),
		Status:    booking.Status.String(),
		Action:    action.String(),
		Total:     booking.Total,
		EmittedAt: timezone.Now().Format(constant.DateFormat),
	}
}

type noopPublisher struct{}

func (p *noopPublisher) BookingCreated(_ context.Context, _ model.Booking) error {
	return nil
}

func (p *noopPublisher) BookingStatusChanged(_ context.Context, _ model.Booking, _ model.Action) error {
	return nil
}
