package queries

import (
	"time"

	"lashdiary/internal/domain/booking"
)

func ToBookingView(b *booking.Booking) *BookingView {
	lines := b.Services()
	services := make([]ServiceLineView, len(lines))
	for i, l := range lines {
		services[i] = ServiceLineView(l)
	}

	entries := b.RescheduleHistory()
	history := make([]HistoryEntryView, len(entries))
	for i, e := range entries {
		history[i] = HistoryEntryView{
			Action:       string(e.Action),
			FromDate:     e.FromDate,
			FromTimeSlot: e.FromTimeSlot,
			ToDate:       e.ToDate,
			ToTimeSlot:   e.ToTimeSlot,
			Actor:        string(e.Actor),
			At:           e.At,
			Notes:        e.Notes,
		}
	}

	contact := b.Contact()
	return &BookingView{
		ID:                      b.ID(),
		Name:                    contact.Name(),
		Email:                   contact.Email(),
		Phone:                   contact.Phone(),
		Date:                    b.Date(),
		TimeSlot:                b.TimeSlot(),
		EndsAt:                  b.End(),
		Status:                  b.Status().String(),
		Services:                services,
		Pricing:                 PricingView(b.Pricing()),
		CancellationWindowHours: b.CancellationWindowHours(),
		CancellationCutoffAt:    b.CancellationCutoffAt(),
		RescheduleHistory:       history,
		Notes:                   b.Notes(),
		CreatedAt:               b.CreatedAt(),
		UpdatedAt:               b.UpdatedAt(),
	}
}

func ToManageView(b *booking.Booking, now time.Time) *ManageView {
	d := b.Evaluate(now, booking.ActorClient)
	return &ManageView{
		Booking: *ToBookingView(b),
		Policy: PolicyView{
			CanReschedule:      d.CanReschedule,
			CanTransfer:        d.CanTransfer,
			WithinPolicyWindow: d.WithinPolicyWindow,
			HoursUntilStart:    d.HoursUntilStart,
			CutoffAt:           d.CutoffAt,
			Reason:             d.Reason,
		},
	}
}

func ToAdminBookingView(b *booking.Booking) *AdminBookingView {
	return &AdminBookingView{
		BookingView:              *ToBookingView(b),
		ClientManageDisabled:     b.ClientManageDisabled(),
		LastClientManageActionAt: b.LastClientManageActionAt(),
		CalendarEventID:          b.CalendarEventID(),
		PaymentTrackingID:        b.PaymentTrackingID(),
		CancelledAt:              b.CancelledAt(),
		CancelReason:             b.CancelReason(),
	}
}
