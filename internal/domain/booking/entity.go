package booking

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"lashdiary/internal/domain/schedule"

	"github.com/google/uuid"
)

var (
	ErrMissingContact            = errors.New("name, email and phone are required")
	ErrInvalidEmail              = errors.New("invalid email address")
	ErrInvalidTransferee         = errors.New("transfer requires a name of at least 2 characters, a valid email and a phone number of at least 7 digits")
	ErrInvalidCancellationWindow = errors.New("cancellation window cannot be negative")
	ErrInvalidDuration           = errors.New("booking duration must be positive")
	ErrBookingCancelled          = errors.New("booking has been cancelled")
	ErrAppointmentPassed         = errors.New("appointment time has already passed")
	ErrWithinCutoff              = errors.New("changes are not allowed within the cancellation window")
	ErrManageDisabled            = errors.New("self-service changes are disabled for this booking")
	ErrSameSlot                  = errors.New("new time slot must differ from the current one")
	ErrTokenGeneration           = errors.New("failed to generate manage token")
)

const (
	DefaultCancellationWindowHours = 72
	DefaultDuration                = 2 * time.Hour
)

type Booking struct {
	id                       uuid.UUID
	manageTokenHash          string
	contact                  Contact
	date                     string
	timeSlot                 time.Time
	duration                 time.Duration
	services                 []ServiceLine
	pricing                  Pricing
	status                   Status
	cancellationWindowHours  int
	clientManageDisabled     bool
	lastClientManageActionAt *time.Time
	rescheduleHistory        []RescheduleEntry
	notes                    string
	calendarEventID          string
	paymentTrackingID        string
	cancelledAt              *time.Time
	cancelReason             string
	createdAt                time.Time
	updatedAt                time.Time
}

type NewParams struct {
	Contact                 Contact
	Date                    string
	TimeSlot                time.Time
	Services                []ServiceLine
	DefaultDuration         time.Duration
	Pricing                 Pricing
	CancellationWindowHours int
	Notes                   string
	PaymentTrackingID       string
}

// NewBooking creates a confirmed booking and returns the plaintext manage token.
// The token is not kept on the aggregate; only its hash is.
func NewBooking(p NewParams, now time.Time) (*Booking, string, error) {
	if p.Contact == (Contact{}) {
		return nil, "", ErrMissingContact
	}
	if p.TimeSlot.IsZero() {
		return nil, "", schedule.ErrInvalidTimeSlot
	}
	if p.Date == "" {
		return nil, "", schedule.ErrInvalidDate
	}

	window := p.CancellationWindowHours
	if window < 0 {
		return nil, "", ErrInvalidCancellationWindow
	}
	if window == 0 {
		window = DefaultCancellationWindowHours
	}

	duration := totalDuration(p.Services, p.DefaultDuration)
	if duration <= 0 {
		return nil, "", ErrInvalidDuration
	}

	token, hash, err := GenerateManageToken()
	if err != nil {
		return nil, "", errors.Join(ErrTokenGeneration, err)
	}

	now = now.UTC()
	return &Booking{
		id:                      uuid.New(),
		manageTokenHash:         hash,
		contact:                 p.Contact,
		date:                    p.Date,
		timeSlot:                p.TimeSlot.UTC(),
		duration:                duration,
		services:                slices.Clone(p.Services),
		pricing:                 p.Pricing,
		status:                  StatusConfirmed,
		cancellationWindowHours: window,
		notes:                   strings.TrimSpace(p.Notes),
		paymentTrackingID:       strings.TrimSpace(p.PaymentTrackingID),
		rescheduleHistory:       []RescheduleEntry{},
		createdAt:               now,
		updatedAt:               now,
	}, token, nil
}

type ReconstructParams struct {
	ID                       uuid.UUID
	ManageTokenHash          string
	Contact                  Contact
	Date                     string
	TimeSlot                 time.Time
	Duration                 time.Duration
	Services                 []ServiceLine
	Pricing                  Pricing
	Status                   Status
	CancellationWindowHours  int
	ClientManageDisabled     bool
	LastClientManageActionAt *time.Time
	RescheduleHistory        []RescheduleEntry
	Notes                    string
	CalendarEventID          string
	PaymentTrackingID        string
	CancelledAt              *time.Time
	CancelReason             string
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

func Reconstruct(p ReconstructParams) *Booking {
	history := p.RescheduleHistory
	if history == nil {
		history = []RescheduleEntry{}
	}
	return &Booking{
		id:                       p.ID,
		manageTokenHash:          p.ManageTokenHash,
		contact:                  p.Contact,
		date:                     p.Date,
		timeSlot:                 p.TimeSlot.UTC(),
		duration:                 p.Duration,
		services:                 p.Services,
		pricing:                  p.Pricing,
		status:                   p.Status,
		cancellationWindowHours:  p.CancellationWindowHours,
		clientManageDisabled:     p.ClientManageDisabled,
		lastClientManageActionAt: p.LastClientManageActionAt,
		rescheduleHistory:        history,
		notes:                    p.Notes,
		calendarEventID:          p.CalendarEventID,
		paymentTrackingID:        p.PaymentTrackingID,
		cancelledAt:              p.CancelledAt,
		cancelReason:             p.CancelReason,
		createdAt:                p.CreatedAt,
		updatedAt:                p.UpdatedAt,
	}
}

func totalDuration(lines []ServiceLine, fallback time.Duration) time.Duration {
	var total time.Duration
	for _, l := range lines {
		total += time.Duration(l.DurationMin) * time.Minute
	}
	if total > 0 {
		return total
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultDuration
}

func (b *Booking) ID() uuid.UUID                        { return b.id }
func (b *Booking) ManageTokenHash() string              { return b.manageTokenHash }
func (b *Booking) Contact() Contact                     { return b.contact }
func (b *Booking) Date() string                         { return b.date }
func (b *Booking) TimeSlot() time.Time                  { return b.timeSlot }
func (b *Booking) Duration() time.Duration              { return b.duration }
func (b *Booking) End() time.Time                       { return b.timeSlot.Add(b.duration) }
func (b *Booking) Services() []ServiceLine              { return slices.Clone(b.services) }
func (b *Booking) Pricing() Pricing                     { return b.pricing }
func (b *Booking) Status() Status                       { return b.status }
func (b *Booking) CancellationWindowHours() int         { return b.cancellationWindowHours }
func (b *Booking) ClientManageDisabled() bool           { return b.clientManageDisabled }
func (b *Booking) LastClientManageActionAt() *time.Time { return b.lastClientManageActionAt }
func (b *Booking) Notes() string                        { return b.notes }
func (b *Booking) CalendarEventID() string              { return b.calendarEventID }
func (b *Booking) PaymentTrackingID() string            { return b.paymentTrackingID }
func (b *Booking) CancelledAt() *time.Time              { return b.cancelledAt }
func (b *Booking) CancelReason() string                 { return b.cancelReason }
func (b *Booking) CreatedAt() time.Time                 { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time                 { return b.updatedAt }

func (b *Booking) RescheduleHistory() []RescheduleEntry {
	return slices.Clone(b.rescheduleHistory)
}

func (b *Booking) IsActive() bool {
	return b.status == StatusConfirmed
}

func (b *Booking) CancellationCutoffAt() time.Time {
	return b.timeSlot.Add(-time.Duration(b.cancellationWindowHours) * time.Hour)
}

func (b *Booking) HoursUntilStart(now time.Time) float64 {
	return b.timeSlot.Sub(now).Hours()
}

func (b *Booking) MatchesManageToken(token string) bool {
	return token != "" && HashManageToken(token) == b.manageTokenHash
}

func (b *Booking) SetClientManageDisabled(disabled bool, now time.Time) {
	b.clientManageDisabled = disabled
	b.updatedAt = now.UTC()
}

func (b *Booking) AttachCalendarEvent(eventID string, now time.Time) {
	b.calendarEventID = eventID
	b.updatedAt = now.UTC()
}

func defaultNote(action Action, actor Actor, from, to time.Time) string {
	if action == ActionTransfer {
		if from.Equal(to) {
			return fmt.Sprintf("Transferred by %s", actor)
		}
		return fmt.Sprintf("Transferred by %s and moved from %s to %s", actor, from.Format(time.RFC3339), to.Format(time.RFC3339))
	}
	return fmt.Sprintf("Rescheduled by %s from %s to %s", actor, from.Format(time.RFC3339), to.Format(time.RFC3339))
}
