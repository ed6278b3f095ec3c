package shared

import (
	"time"

	"github.com/google/uuid"
)

// Outbox job kinds, used by the dispatcher for routing.
const (
	JobKindEmail    = "email"
	JobKindCalendar = "calendar"
	JobKindEvent    = "event"
)

const (
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusDone       = "done"
	JobStatusFailed     = "failed"
)

// Outbox topics
const (
	TopicCalendarCreate     = "calendar.create"
	TopicCalendarUpdate     = "calendar.update"
	TopicCalendarDelete     = "calendar.delete"
	TopicEmailConfirmation  = "email.booking_confirmation"
	TopicEmailTransfer      = "email.booking_transfer"
	TopicEmailCancellation  = "email.booking_cancellation"
	TopicBookingCreated     = "booking.created"
	TopicBookingRescheduled = "booking.rescheduled"
	TopicBookingTransferred = "booking.transferred"
	TopicBookingCancelled   = "booking.cancelled"
	TopicFullyBooked        = "availability.fully_booked"
)

type Job struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Topic     string    `json:"topic"`
	Payload   []byte    `json:"payload"`
	RunAt     time.Time `json:"runAt"`
	Attempts  int       `json:"attempts"`
	Status    string    `json:"status"`
	LastError *string   `json:"lastError,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingPayload is carried by every booking-related job. ManageToken is only
// set on email jobs whose recipient needs the self-service link.
type BookingPayload struct {
	BookingID       uuid.UUID  `json:"bookingId"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Date            string     `json:"date"`
	TimeSlot        time.Time  `json:"timeSlot"`
	EndsAt          time.Time  `json:"endsAt"`
	Services        []string   `json:"services"`
	FinalCents      int64      `json:"finalCents"`
	DepositCents    int64      `json:"depositCents"`
	CalendarEventID string     `json:"calendarEventId,omitempty"`
	ManageToken     string     `json:"manageToken,omitempty"`
	ManageURL       string     `json:"manageUrl,omitempty"`
	PreviousName    string     `json:"previousName,omitempty"`
	PreviousEmail   string     `json:"previousEmail,omitempty"`
	PreviousSlot    *time.Time `json:"previousSlot,omitempty"`
	Reason          string     `json:"reason,omitempty"`
}

type FullyBookedPayload struct {
	Date string `json:"date"`
}
