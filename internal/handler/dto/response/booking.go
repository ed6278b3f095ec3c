package response

import (
	"time"

	"lashdiary/internal/usecase/commands"
	"lashdiary/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ServiceLineResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"priceCents"`
	DurationMin int    `json:"durationMin"`
}

type PricingResponse struct {
	OriginalCents int64  `json:"originalCents"`
	DiscountCents int64  `json:"discountCents"`
	FinalCents    int64  `json:"finalCents"`
	DepositCents  int64  `json:"depositCents"`
	PromoCode     string `json:"promoCode,omitempty"`
}

type HistoryEntryResponse struct {
	Action       string    `json:"action"`
	FromDate     string    `json:"fromDate"`
	FromTimeSlot time.Time `json:"fromTimeSlot"`
	ToDate       string    `json:"toDate"`
	ToTimeSlot   time.Time `json:"toTimeSlot"`
	Actor        string    `json:"actor"`
	At           time.Time `json:"at"`
	Notes        string    `json:"notes,omitempty"`
}

type BookingResponse struct {
	ID                      uuid.UUID              `json:"id"`
	Name                    string                 `json:"name"`
	Email                   string                 `json:"email"`
	Phone                   string                 `json:"phone"`
	Date                    string                 `json:"date"`
	TimeSlot                time.Time              `json:"timeSlot"`
	EndsAt                  time.Time              `json:"endsAt"`
	Status                  string                 `json:"status"`
	Services                []ServiceLineResponse  `json:"services"`
	Pricing                 PricingResponse        `json:"pricing"`
	CancellationWindowHours int                    `json:"cancellationWindowHours"`
	CancellationCutoffAt    time.Time              `json:"cancellationCutoffAt"`
	RescheduleHistory       []HistoryEntryResponse `json:"rescheduleHistory"`
	Notes                   string                 `json:"notes,omitempty"`
	CreatedAt               time.Time              `json:"createdAt"`
	UpdatedAt               time.Time              `json:"updatedAt"`
}

type CreateBookingResponse struct {
	BookingID   uuid.UUID        `json:"bookingId"`
	ManageToken string           `json:"manageToken"`
	ManageURL   string           `json:"manageUrl"`
	Booking     *BookingResponse `json:"booking"`
}

type PolicyResponse struct {
	CanReschedule      bool      `json:"canReschedule"`
	CanTransfer        bool      `json:"canTransfer"`
	WithinPolicyWindow bool      `json:"withinPolicyWindow"`
	HoursUntilStart    float64   `json:"hoursUntilStart"`
	CutoffAt           time.Time `json:"cutoffAt"`
	Reason             string    `json:"reason,omitempty"`
}

type ManageBookingResponse struct {
	Booking BookingResponse `json:"booking"`
	Policy  PolicyResponse  `json:"policy"`
}

type AdminBookingResponse struct {
	BookingResponse
	ClientManageDisabled     bool       `json:"clientManageDisabled"`
	LastClientManageActionAt *time.Time `json:"lastClientManageActionAt,omitempty"`
	CalendarEventID          string     `json:"calendarEventId,omitempty"`
	PaymentTrackingID        string     `json:"paymentTrackingId,omitempty"`
	CancelledAt              *time.Time `json:"cancelledAt,omitempty"`
	CancelReason             string     `json:"cancelReason,omitempty"`
}

type AdminBookingListResponse struct {
	Items      []*AdminBookingResponse `json:"items"`
	NextCursor string                  `json:"nextCursor,omitempty"`
}

var deepCopy = copier.Option{DeepCopy: true}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	out := &BookingResponse{}
	if err := copier.CopyWithOption(out, v, deepCopy); err != nil {
		return nil, err
	}
	return out, nil
}

func FromCreateResult(r *commands.CreateBookingResult) (*CreateBookingResponse, error) {
	b, err := FromBookingView(r.Booking)
	if err != nil {
		return nil, err
	}
	return &CreateBookingResponse{
		BookingID:   r.BookingID,
		ManageToken: r.ManageToken,
		ManageURL:   r.ManageURL,
		Booking:     b,
	}, nil
}

func FromManageView(v *queries.ManageView) (*ManageBookingResponse, error) {
	out := &ManageBookingResponse{}
	if err := copier.CopyWithOption(out, v, deepCopy); err != nil {
		return nil, err
	}
	return out, nil
}

func FromAdminBookingView(v *queries.AdminBookingView) (*AdminBookingResponse, error) {
	out := &AdminBookingResponse{}
	if err := copier.CopyWithOption(out, v, deepCopy); err != nil {
		return nil, err
	}
	return out, nil
}

func FromBookingPage(p *queries.BookingPage) (*AdminBookingListResponse, error) {
	out := &AdminBookingListResponse{Items: make([]*AdminBookingResponse, len(p.Items))}
	for i, v := range p.Items {
		item, err := FromAdminBookingView(v)
		if err != nil {
			return nil, err
		}
		out.Items[i] = item
	}
	if p.Next != nil {
		out.NextCursor = p.Next.After
	}
	return out, nil
}
