package schedule

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTimeSlot = errors.New("invalid time slot")
	ErrInvalidTemplate = errors.New("invalid slot template")
	ErrInvalidWindow   = errors.New("invalid booking window")
)

type DayType string

const (
	DayWeekday  DayType = "weekday"
	DayFriday   DayType = "friday"
	DaySaturday DayType = "saturday"
	DaySunday   DayType = "sunday"
)

func (d DayType) IsValid() bool {
	switch d {
	case DayWeekday, DayFriday, DaySaturday, DaySunday:
		return true
	default:
		return false
	}
}

// Monday through Thursday share the weekday template.
func DayTypeOf(wd time.Weekday) DayType {
	switch wd {
	case time.Friday:
		return DayFriday
	case time.Saturday:
		return DaySaturday
	case time.Sunday:
		return DaySunday
	default:
		return DayWeekday
	}
}

type SlotTemplate struct {
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Label  string `json:"label"`
}

func (t SlotTemplate) Validate() error {
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return ErrInvalidTemplate
	}
	return nil
}

type SlotConfig map[DayType][]SlotTemplate

func (c SlotConfig) Validate() error {
	for day, templates := range c {
		if !day.IsValid() {
			return ErrInvalidTemplate
		}
		for _, t := range templates {
			if err := t.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// BookingWindow bounds the dates open for booking. Empty bounds are open-ended.
type BookingWindow struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

func (w BookingWindow) Validate() error {
	if w.Start != "" {
		if _, err := time.Parse(DateLayout, w.Start); err != nil {
			return ErrInvalidWindow
		}
	}
	if w.End != "" {
		if _, err := time.Parse(DateLayout, w.End); err != nil {
			return ErrInvalidWindow
		}
	}
	if w.Start != "" && w.End != "" && w.End < w.Start {
		return ErrInvalidWindow
	}
	return nil
}

// Contains compares YYYY-MM-DD strings, which order the same way as the dates they encode.
func (w BookingWindow) Contains(date string) bool {
	if w.Start != "" && date < w.Start {
		return false
	}
	if w.End != "" && date > w.End {
		return false
	}
	return true
}
