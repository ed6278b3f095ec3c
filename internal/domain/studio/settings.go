package studio

import (
	"errors"
	"slices"
	"time"

	"lashdiary/internal/domain/catalog"
	"lashdiary/internal/domain/schedule"
)

var (
	ErrInvalidDepositPercent  = errors.New("deposit percent must be between 0 and 100")
	ErrInvalidCancellationWin = errors.New("cancellation window hours must be positive")
	ErrInvalidBlockedDate     = errors.New("blocked dates must use YYYY-MM-DD")
	ErrOutsideBookingWindow   = errors.New("date is outside the booking window")
)

// Settings is the admin-editable studio configuration.
type Settings struct {
	BookingWindow           schedule.BookingWindow `json:"bookingWindow"`
	Slots                   schedule.SlotConfig    `json:"slots"`
	BlockedDates            []string               `json:"blockedDates"`
	Services                catalog.Catalog        `json:"services"`
	Promos                  catalog.Promos         `json:"promos"`
	DepositPercent          int                    `json:"depositPercent"`
	CancellationWindowHours int                    `json:"cancellationWindowHours"`
	DefaultDurationMin      int                    `json:"defaultDurationMin"`
	UpdatedAt               time.Time              `json:"updatedAt"`
}

func (s Settings) Validate() error {
	if err := s.BookingWindow.Validate(); err != nil {
		return err
	}
	if err := s.Slots.Validate(); err != nil {
		return err
	}
	for _, d := range s.BlockedDates {
		if _, err := time.Parse(schedule.DateLayout, d); err != nil {
			return ErrInvalidBlockedDate
		}
	}
	if err := s.Services.Validate(); err != nil {
		return err
	}
	for _, p := range s.Promos {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	if s.DepositPercent < 0 || s.DepositPercent > 100 {
		return ErrInvalidDepositPercent
	}
	if s.CancellationWindowHours <= 0 {
		return ErrInvalidCancellationWin
	}
	return nil
}

func (s Settings) DefaultDuration() time.Duration {
	return time.Duration(s.DefaultDurationMin) * time.Minute
}

// CheckBookable reports whether new bookings may land on date.
func (s Settings) CheckBookable(date string) error {
	if !s.BookingWindow.Contains(date) {
		return ErrOutsideBookingWindow
	}
	return nil
}

func (s Settings) IsBlocked(date string) bool {
	return slices.Contains(s.BlockedDates, date)
}

// Defaults returns the settings used before an admin has saved any.
func Defaults(cancellationWindowHours, defaultDurationMin int) Settings {
	return Settings{
		Slots: schedule.SlotConfig{
			schedule.DayWeekday: {
				{Hour: 9, Minute: 0},
				{Hour: 12, Minute: 0},
				{Hour: 15, Minute: 0},
			},
			schedule.DayFriday: {
				{Hour: 9, Minute: 0},
				{Hour: 12, Minute: 0},
			},
			schedule.DaySaturday: {
				{Hour: 10, Minute: 0},
				{Hour: 13, Minute: 0},
			},
		},
		BlockedDates:            []string{},
		Services:                catalog.Catalog{},
		Promos:                  catalog.Promos{},
		CancellationWindowHours: cancellationWindowHours,
		DefaultDurationMin:      defaultDurationMin,
	}
}
