// Package notify delivers booking side effects to the outside world:
// client email, the studio calendar and the event broker.
package notify

import (
	"context"
	"time"

	"lashdiary/internal/usecase/shared"
)

type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

type Message struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Mailer sends one composed message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// CalendarSink mirrors bookings onto the studio calendar.
type CalendarSink interface {
	CreateEvent(ctx context.Context, p shared.BookingPayload) (string, error)
	UpdateEvent(ctx context.Context, eventID string, p shared.BookingPayload) error
	DeleteEvent(ctx context.Context, eventID string) error
}

// EventPublisher fans domain events out under a routing key.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

func eventWindow(p shared.BookingPayload) (time.Time, time.Time) {
	end := p.EndsAt
	if end.IsZero() || !end.After(p.TimeSlot) {
		end = p.TimeSlot.Add(2 * time.Hour)
	}
	return p.TimeSlot, end
}
