package shared

import (
	"context"
	"encoding/json"
	"time"

	"lashdiary/internal/domain/availability"
	"lashdiary/internal/domain/booking"
	"lashdiary/internal/domain/schedule"
	"lashdiary/internal/domain/studio"
	"lashdiary/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrSlotNotOffered  = errs.New("time slot is not offered on this date")
	ErrSlotUnavailable = errs.New("time slot is no longer available")
	ErrSlotInPast      = errs.New("time slot has already started")
)

// DaySlots is a snapshot of one studio-local day: the generated candidates
// and the slots held by active bookings.
type DaySlots struct {
	Date       string
	Candidates []schedule.Slot
	Booked     []availability.BookedSlot
}

func LoadDaySlots(ctx context.Context, tx Tx, gen *schedule.Generator, settings studio.Settings, date string) (*DaySlots, error) {
	candidates, err := gen.Generate(date, settings.Slots, settings.BlockedDates)
	if err != nil {
		return nil, err
	}

	active, err := tx.Bookings().ListActiveByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	return &DaySlots{
		Date:       date,
		Candidates: candidates,
		Booked:     BookedSlots(active),
	}, nil
}

func BookedSlots(bookings []*booking.Booking) []availability.BookedSlot {
	out := make([]availability.BookedSlot, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		out = append(out, availability.BookedSlot{BookingID: b.ID(), Start: b.TimeSlot()})
	}
	return out
}

func (d *DaySlots) Open(exclude *uuid.UUID) []schedule.Slot {
	return availability.Available(d.Candidates, d.Booked, exclude)
}

// Check verifies that at is a generated slot for the day and is not held by
// any active booking other than exclude.
func (d *DaySlots) Check(at time.Time, exclude *uuid.UUID) error {
	if _, ok := schedule.Find(d.Candidates, at); !ok {
		return ErrSlotNotOffered
	}
	if !availability.IsAvailable(at, d.Booked, exclude) {
		return ErrSlotUnavailable
	}
	return nil
}

// SyncFullyBooked records or clears date in the fully-booked registry. A newly
// recorded date also queues an availability event.
func SyncFullyBooked(ctx context.Context, tx Tx, gen *schedule.Generator, settings studio.Settings, date string, now time.Time) (bool, error) {
	day, err := LoadDaySlots(ctx, tx, gen, settings, date)
	if err != nil {
		return false, err
	}

	full := availability.IsFullyBooked(day.Open(nil))
	if !full {
		return false, tx.FullyBooked().Remove(ctx, date)
	}

	added, err := tx.FullyBooked().Add(ctx, date)
	if err != nil {
		return true, err
	}
	if added {
		if err := Enqueue(ctx, tx, JobKindEvent, TopicFullyBooked, FullyBookedPayload{Date: date}, now); err != nil {
			return true, err
		}
	}
	return true, nil
}

func Enqueue(ctx context.Context, tx Tx, kind, topic string, payload any, runAt time.Time) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "marshal job payload")
	}
	return tx.Outbox().CreateJob(ctx, kind, topic, body, runAt)
}
