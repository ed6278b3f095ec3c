//go:build unit || e2e

package builder

import (
	"testing"
	"time"

	"lashdiary/internal/domain/booking"
	reqdto "lashdiary/internal/handler/dto/request"
	"lashdiary/internal/usecase/queries"

	"github.com/stretchr/testify/require"
)

type BookingBuilder struct {
	Name              string
	Email             string
	Phone             string
	Date              string
	TimeSlot          time.Time
	Services          []booking.ServiceLine
	WindowHours       int
	Notes             string
	PaymentTrackingID string
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		Name:     "Amani Wanjiru",
		Email:    "amani@example.com",
		Phone:    "0712345678",
		Date:     "2025-03-10",
		TimeSlot: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		Services: []booking.ServiceLine{
			{ID: "classic-full-set", Name: "Classic Full Set", PriceCents: 650000, DurationMin: 120},
		},
		WindowHours: 72,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain(now time.Time) (*booking.Booking, string, error) {
	contact, err := booking.NewContact(b.Name, b.Email, b.Phone)
	if err != nil {
		return nil, "", err
	}
	return booking.NewBooking(booking.NewParams{
		Contact:                 contact,
		Date:                    b.Date,
		TimeSlot:                b.TimeSlot,
		Services:                b.Services,
		Pricing:                 booking.NewPricing(b.Services, nil, 0),
		CancellationWindowHours: b.WindowHours,
		Notes:                   b.Notes,
		PaymentTrackingID:       b.PaymentTrackingID,
	}, now)
}

func (b *BookingBuilder) MustBuild(t *testing.T, now time.Time) *booking.Booking {
	t.Helper()
	bk, _, err := b.BuildDomain(now)
	require.NoError(t, err)
	return bk
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	ids := make([]string, len(b.Services))
	for i, s := range b.Services {
		ids[i] = s.ID
	}
	return reqdto.CreateBookingRequest{
		Name:              b.Name,
		Email:             b.Email,
		Phone:             b.Phone,
		Date:              b.Date,
		TimeSlot:          b.TimeSlot.Format(time.RFC3339),
		Services:          ids,
		Notes:             b.Notes,
		PaymentTrackingID: b.PaymentTrackingID,
	}
}

func (b *BookingBuilder) BuildView(t *testing.T, now time.Time) *queries.BookingView {
	t.Helper()
	return queries.ToBookingView(b.MustBuild(t, now))
}

func (b *BookingBuilder) BuildAdminView(t *testing.T, now time.Time) *queries.AdminBookingView {
	t.Helper()
	return queries.ToAdminBookingView(b.MustBuild(t, now))
}

func (b *BookingBuilder) BuildManageView(t *testing.T, now time.Time) *queries.ManageView {
	t.Helper()
	return queries.ToManageView(b.MustBuild(t, now), now)
}

// Fluent builder methods
func (b *BookingBuilder) WithContact(name, email, phone string) *BookingBuilder {
	b.Name, b.Email, b.Phone = name, email, phone
	return b
}

func (b *BookingBuilder) WithSlot(date string, slot time.Time) *BookingBuilder {
	b.Date, b.TimeSlot = date, slot
	return b
}

func (b *BookingBuilder) WithWindowHours(h int) *BookingBuilder {
	b.WindowHours = h
	return b
}

func (b *BookingBuilder) WithoutServices() *BookingBuilder {
	b.Services = nil
	return b
}
