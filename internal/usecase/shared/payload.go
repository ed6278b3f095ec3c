package shared

import (
	"net/url"
	"strings"

	"lashdiary/internal/domain/booking"
)

// Links builds client-facing URLs.
type Links struct {
	BaseURL string
}

func (l Links) ManageURL(token string) string {
	return strings.TrimRight(l.BaseURL, "/") + "/booking/manage/" + url.PathEscape(token)
}

func NewBookingPayload(b *booking.Booking) BookingPayload {
	lines := b.Services()
	names := make([]string, len(lines))
	for i, l := range lines {
		names[i] = l.Name
	}
	contact := b.Contact()
	pricing := b.Pricing()
	return BookingPayload{
		BookingID:       b.ID(),
		Name:            contact.Name(),
		Email:           contact.Email(),
		Phone:           contact.Phone(),
		Date:            b.Date(),
		TimeSlot:        b.TimeSlot(),
		EndsAt:          b.End(),
		Services:        names,
		FinalCents:      pricing.FinalCents,
		DepositCents:    pricing.DepositCents,
		CalendarEventID: b.CalendarEventID(),
	}
}

// WithManageLink returns a copy carrying the self-service link. Only email
// payloads should carry it.
func (p BookingPayload) WithManageLink(links Links, token string) BookingPayload {
	p.ManageToken = token
	p.ManageURL = links.ManageURL(token)
	return p
}
