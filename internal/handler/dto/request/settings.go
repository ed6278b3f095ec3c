package request

import (
	"time"

	"lashdiary/internal/domain/catalog"
	"lashdiary/internal/domain/schedule"
	"lashdiary/internal/domain/studio"
	"lashdiary/internal/pkg/patch"
)

type SlotTemplateRequest struct {
	Hour   int    `json:"hour" binding:"min=0,max=23"`
	Minute int    `json:"minute" binding:"min=0,max=59"`
	Label  string `json:"label" binding:"max=64"`
}

type ServiceRequest struct {
	ID          string `json:"id" binding:"required,max=64"`
	Name        string `json:"name" binding:"required,max=255"`
	PriceCents  int64  `json:"priceCents" binding:"min=0"`
	DurationMin int    `json:"durationMin" binding:"required,min=1"`
}

type PromoRequest struct {
	Code           string     `json:"code" binding:"required"`
	AmountOffCents *int64     `json:"amountOffCents" binding:"omitempty,min=0"`
	PercentOff     *float64   `json:"percentOff" binding:"omitempty,min=0,max=100"`
	ValidFrom      *time.Time `json:"validFrom"`
	ValidTo        *time.Time `json:"validTo"`
}

type BookingWindowRequest struct {
	Start string `json:"start" binding:"omitempty,datetime=2006-01-02"`
	End   string `json:"end" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateSettingsRequest replaces the fields that are present and keeps the
// rest of the saved settings.
type UpdateSettingsRequest struct {
	BookingWindow           *BookingWindowRequest            `json:"bookingWindow"`
	Slots                   map[string][]SlotTemplateRequest `json:"slots" binding:"omitempty,dive,dive"`
	BlockedDates            []string                         `json:"blockedDates" binding:"omitempty,dive,datetime=2006-01-02"`
	Services                []ServiceRequest                 `json:"services" binding:"omitempty,dive"`
	Promos                  []PromoRequest                   `json:"promos" binding:"omitempty,dive"`
	DepositPercent          *int                             `json:"depositPercent" binding:"omitempty,min=0,max=100"`
	CancellationWindowHours *int                             `json:"cancellationWindowHours" binding:"omitempty,min=1"`
	DefaultDurationMin      *int                             `json:"defaultDurationMin" binding:"omitempty,min=1"`
}

func (r UpdateSettingsRequest) ToDomain(existing studio.Settings) studio.Settings {
	out := existing
	if r.BookingWindow != nil {
		out.BookingWindow = schedule.BookingWindow{Start: r.BookingWindow.Start, End: r.BookingWindow.End}
	}
	if r.Slots != nil {
		out.Slots = make(schedule.SlotConfig, len(r.Slots))
		for day, templates := range r.Slots {
			converted := make([]schedule.SlotTemplate, len(templates))
			for i, t := range templates {
				converted[i] = schedule.SlotTemplate(t)
			}
			out.Slots[schedule.DayType(day)] = converted
		}
	}
	out.BlockedDates = patch.CoalesceSlice(r.BlockedDates, existing.BlockedDates)
	if r.Services != nil {
		out.Services = make(catalog.Catalog, len(r.Services))
		for i, s := range r.Services {
			out.Services[i] = catalog.Service(s)
		}
	}
	if r.Promos != nil {
		out.Promos = make(catalog.Promos, len(r.Promos))
		for i, p := range r.Promos {
			out.Promos[i] = catalog.Promo(p)
		}
	}
	out.DepositPercent = patch.Coalesce(r.DepositPercent, existing.DepositPercent)
	out.CancellationWindowHours = patch.Coalesce(r.CancellationWindowHours, existing.CancellationWindowHours)
	out.DefaultDurationMin = patch.Coalesce(r.DefaultDurationMin, existing.DefaultDurationMin)
	return out
}
