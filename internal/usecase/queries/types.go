package queries

import (
	"time"

	"github.com/google/uuid"
)

type SlotView struct {
	TimeSlot time.Time `json:"timeSlot"`
	Label    string    `json:"label"`
}

// AvailabilityView.Slots leaves out slots that have already started.
// FullyBooked reflects bookings only: a day whose remaining open slots are
// all in the past has no Slots and is still not fully booked.
type AvailabilityView struct {
	Date        string     `json:"date"`
	Slots       []SlotView `json:"slots"`
	FullyBooked bool       `json:"fullyBooked"`
}

type ServiceLineView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"priceCents"`
	DurationMin int    `json:"durationMin"`
}

type PricingView struct {
	OriginalCents int64  `json:"originalCents"`
	DiscountCents int64  `json:"discountCents"`
	FinalCents    int64  `json:"finalCents"`
	DepositCents  int64  `json:"depositCents"`
	PromoCode     string `json:"promoCode,omitempty"`
}

type HistoryEntryView struct {
	Action       string    `json:"action"`
	FromDate     string    `json:"fromDate"`
	FromTimeSlot time.Time `json:"fromTimeSlot"`
	ToDate       string    `json:"toDate"`
	ToTimeSlot   time.Time `json:"toTimeSlot"`
	Actor        string    `json:"actor"`
	At           time.Time `json:"at"`
	Notes        string    `json:"notes"`
}

// BookingView is safe to show the booking holder. It never carries the
// manage token or its hash.
type BookingView struct {
	ID                      uuid.UUID          `json:"id"`
	Name                    string             `json:"name"`
	Email                   string             `json:"email"`
	Phone                   string             `json:"phone"`
	Date                    string             `json:"date"`
	TimeSlot                time.Time          `json:"timeSlot"`
	EndsAt                  time.Time          `json:"endsAt"`
	Status                  string             `json:"status"`
	Services                []ServiceLineView  `json:"services"`
	Pricing                 PricingView        `json:"pricing"`
	CancellationWindowHours int                `json:"cancellationWindowHours"`
	CancellationCutoffAt    time.Time          `json:"cancellationCutoffAt"`
	RescheduleHistory       []HistoryEntryView `json:"rescheduleHistory"`
	Notes                   string             `json:"notes,omitempty"`
	CreatedAt               time.Time          `json:"createdAt"`
	UpdatedAt               time.Time          `json:"updatedAt"`
}

type PolicyView struct {
	CanReschedule      bool      `json:"canReschedule"`
	CanTransfer        bool      `json:"canTransfer"`
	WithinPolicyWindow bool      `json:"withinPolicyWindow"`
	HoursUntilStart    float64   `json:"hoursUntilStart"`
	CutoffAt           time.Time `json:"cutoffAt"`
	Reason             string    `json:"reason,omitempty"`
}

type ManageView struct {
	Booking BookingView `json:"booking"`
	Policy  PolicyView  `json:"policy"`
}

// AdminBookingView adds the internal fields only the studio console sees.
type AdminBookingView struct {
	BookingView
	ClientManageDisabled     bool       `json:"clientManageDisabled"`
	LastClientManageActionAt *time.Time `json:"lastClientManageActionAt,omitempty"`
	CalendarEventID          string     `json:"calendarEventId,omitempty"`
	PaymentTrackingID        string     `json:"paymentTrackingId,omitempty"`
	CancelledAt              *time.Time `json:"cancelledAt,omitempty"`
	CancelReason             string     `json:"cancelReason,omitempty"`
}

type AuthorizedUserView struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}
