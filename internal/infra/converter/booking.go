package converter

import (
	"time"

	"lashdiary/internal/domain/booking"

	"github.com/google/uuid"
)

// BookingRecord is the persisted shape of a booking, shared by the JSON
// document store and the jsonb columns of the PostgreSQL store.
type BookingRecord struct {
	ID                       uuid.UUID                 `json:"id"`
	ManageTokenHash          string                    `json:"manageTokenHash"`
	Name                     string                    `json:"name"`
	Email                    string                    `json:"email"`
	Phone                    string                    `json:"phone"`
	Date                     string                    `json:"date"`
	TimeSlot                 time.Time                 `json:"timeSlot"`
	DurationMin              int                       `json:"durationMin"`
	Services                 []booking.ServiceLine     `json:"services"`
	Pricing                  booking.Pricing           `json:"pricing"`
	Status                   string                    `json:"status"`
	CancellationWindowHours  int                       `json:"cancellationWindowHours"`
	ClientManageDisabled     bool                      `json:"clientManageDisabled"`
	LastClientManageActionAt *time.Time                `json:"lastClientManageActionAt,omitempty"`
	RescheduleHistory        []booking.RescheduleEntry `json:"rescheduleHistory"`
	Notes                    string                    `json:"notes,omitempty"`
	CalendarEventID          string                    `json:"calendarEventId,omitempty"`
	PaymentTrackingID        string                    `json:"paymentTrackingId,omitempty"`
	CancelledAt              *time.Time                `json:"cancelledAt,omitempty"`
	CancelReason             string                    `json:"cancelReason,omitempty"`
	CreatedAt                time.Time                 `json:"createdAt"`
	UpdatedAt                time.Time                 `json:"updatedAt"`
}

func BookingToRecord(b *booking.Booking) BookingRecord {
	contact := b.Contact()
	return BookingRecord{
		ID:                       b.ID(),
		ManageTokenHash:          b.ManageTokenHash(),
		Name:                     contact.Name(),
		Email:                    contact.Email(),
		Phone:                    contact.Phone(),
		Date:                     b.Date(),
		TimeSlot:                 b.TimeSlot().UTC(),
		DurationMin:              int(b.Duration() / time.Minute),
		Services:                 b.Services(),
		Pricing:                  b.Pricing(),
		Status:                   b.Status().String(),
		CancellationWindowHours:  b.CancellationWindowHours(),
		ClientManageDisabled:     b.ClientManageDisabled(),
		LastClientManageActionAt: b.LastClientManageActionAt(),
		RescheduleHistory:        b.RescheduleHistory(),
		Notes:                    b.Notes(),
		CalendarEventID:          b.CalendarEventID(),
		PaymentTrackingID:        b.PaymentTrackingID(),
		CancelledAt:              b.CancelledAt(),
		CancelReason:             b.CancelReason(),
		CreatedAt:                b.CreatedAt(),
		UpdatedAt:                b.UpdatedAt(),
	}
}

func BookingFromRecord(r BookingRecord) *booking.Booking {
	return booking.Reconstruct(booking.ReconstructParams{
		ID:                       r.ID,
		ManageTokenHash:          r.ManageTokenHash,
		Contact:                  booking.ReconstructContact(r.Name, r.Email, r.Phone),
		Date:                     r.Date,
		TimeSlot:                 r.TimeSlot,
		Duration:                 time.Duration(r.DurationMin) * time.Minute,
		Services:                 r.Services,
		Pricing:                  r.Pricing,
		Status:                   booking.Status(r.Status),
		CancellationWindowHours:  r.CancellationWindowHours,
		ClientManageDisabled:     r.ClientManageDisabled,
		LastClientManageActionAt: r.LastClientManageActionAt,
		RescheduleHistory:        r.RescheduleHistory,
		Notes:                    r.Notes,
		CalendarEventID:          r.CalendarEventID,
		PaymentTrackingID:        r.PaymentTrackingID,
		CancelledAt:              r.CancelledAt,
		CancelReason:             r.CancelReason,
		CreatedAt:                r.CreatedAt,
		UpdatedAt:                r.UpdatedAt,
	})
}
