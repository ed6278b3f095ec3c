package availability

import (
	"time"

	"lashdiary/internal/domain/schedule"

	"github.com/google/uuid"
)

// BookedSlot is the part of an active booking that consumes a slot.
type BookedSlot struct {
	BookingID uuid.UUID
	Start     time.Time
}

// Available returns the candidates not held by any booked slot. A non-nil
// exclude skips that booking so it can move within its own day.
func Available(candidates []schedule.Slot, booked []BookedSlot, exclude *uuid.UUID) []schedule.Slot {
	taken := takenKeys(booked, exclude)
	out := make([]schedule.Slot, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := taken[c.Key()]; ok {
			continue
		}
		out = append(out, c)
	}
	return out
}

func IsAvailable(at time.Time, booked []BookedSlot, exclude *uuid.UUID) bool {
	_, ok := takenKeys(booked, exclude)[schedule.NormalizeSlot(at)]
	return !ok
}

func IsFullyBooked(available []schedule.Slot) bool {
	return len(available) == 0
}

func takenKeys(booked []BookedSlot, exclude *uuid.UUID) map[int64]struct{} {
	taken := make(map[int64]struct{}, len(booked))
	for _, b := range booked {
		if exclude != nil && b.BookingID == *exclude {
			continue
		}
		taken[schedule.NormalizeSlot(b.Start)] = struct{}{}
	}
	return taken
}
