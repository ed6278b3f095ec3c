package response

import (
	"time"

	"lashdiary/internal/domain/catalog"
	"lashdiary/internal/domain/schedule"
	"lashdiary/internal/domain/studio"
	"lashdiary/internal/pkg/ptr"
)

type SettingsResponse struct {
	BookingWindow           schedule.BookingWindow `json:"bookingWindow"`
	Slots                   schedule.SlotConfig    `json:"slots"`
	BlockedDates            []string               `json:"blockedDates"`
	Services                catalog.Catalog        `json:"services"`
	Promos                  catalog.Promos         `json:"promos"`
	DepositPercent          int                    `json:"depositPercent"`
	CancellationWindowHours int                    `json:"cancellationWindowHours"`
	DefaultDurationMin      int                    `json:"defaultDurationMin"`
	UpdatedAt               *time.Time             `json:"updatedAt,omitempty"`
}

func FromSettings(s studio.Settings) *SettingsResponse {
	out := &SettingsResponse{
		BookingWindow:           s.BookingWindow,
		Slots:                   s.Slots,
		BlockedDates:            s.BlockedDates,
		Services:                s.Services,
		Promos:                  s.Promos,
		DepositPercent:          s.DepositPercent,
		CancellationWindowHours: s.CancellationWindowHours,
		DefaultDurationMin:      s.DefaultDurationMin,
	}
	// never saved yet
	if !s.UpdatedAt.IsZero() {
		out.UpdatedAt = ptr.To(s.UpdatedAt)
	}
	return out
}
