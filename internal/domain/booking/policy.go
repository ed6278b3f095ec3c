package booking

import (
	"errors"
	"strings"
	"time"

	"lashdiary/internal/domain/schedule"
)

var ErrAlreadyCancelled = errors.New("booking is already cancelled")

// Reason codes surfaced to clients alongside policy refusals.
const (
	ReasonNone              = ""
	ReasonCancelled         = "cancelled"
	ReasonManageDisabled    = "manage_disabled"
	ReasonAppointmentPassed = "appointment_passed"
	ReasonWithinCutoff      = "within_cutoff"
)

type PolicyDecision struct {
	CanReschedule bool
	CanTransfer   bool
	// WithinPolicyWindow is true while the start is still further away than the
	// cancellation window, i.e. self-service is permitted by time.
	WithinPolicyWindow bool
	HoursUntilStart    float64
	CutoffAt           time.Time
	Reason             string
}

func ReasonCode(err error) string {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, ErrBookingCancelled):
		return ReasonCancelled
	case errors.Is(err, ErrManageDisabled):
		return ReasonManageDisabled
	case errors.Is(err, ErrAppointmentPassed):
		return ReasonAppointmentPassed
	case errors.Is(err, ErrWithinCutoff):
		return ReasonWithinCutoff
	default:
		return ReasonNone
	}
}

// Evaluate reports what the actor may do right now.
func (b *Booking) Evaluate(now time.Time, actor Actor) PolicyDecision {
	hours := b.HoursUntilStart(now)
	err := b.CheckManageable(now, actor)
	return PolicyDecision{
		CanReschedule:      err == nil,
		CanTransfer:        err == nil,
		WithinPolicyWindow: now.Before(b.timeSlot) && hours >= float64(b.cancellationWindowHours),
		HoursUntilStart:    hours,
		CutoffAt:           b.CancellationCutoffAt(),
		Reason:             ReasonCode(err),
	}
}

// CheckManageable applies the self-service policy. Admins bypass the time
// policy and the manage-disabled flag, but cancelled bookings stay frozen.
func (b *Booking) CheckManageable(now time.Time, actor Actor) error {
	if b.status == StatusCancelled {
		return ErrBookingCancelled
	}
	if actor == ActorAdmin {
		return nil
	}
	if b.clientManageDisabled {
		return ErrManageDisabled
	}
	if !now.Before(b.timeSlot) {
		return ErrAppointmentPassed
	}
	if b.HoursUntilStart(now) < float64(b.cancellationWindowHours) {
		return ErrWithinCutoff
	}
	return nil
}

// Reschedule moves the booking to a slot the caller has already verified as free.
func (b *Booking) Reschedule(now time.Time, actor Actor, date string, slot time.Time, notes string) error {
	if err := b.CheckManageable(now, actor); err != nil {
		return err
	}
	if schedule.SameSlot(slot, b.timeSlot) {
		return ErrSameSlot
	}
	b.move(now, actor, ActionReschedule, date, slot.UTC(), notes)
	return nil
}

// Transfer hands the booking to a new holder, optionally moving it. A nil slot,
// or one equal to the current slot, keeps the appointment time.
func (b *Booking) Transfer(now time.Time, actor Actor, to Contact, date string, slot *time.Time, notes string) error {
	if err := b.CheckManageable(now, actor); err != nil {
		return err
	}
	if to == (Contact{}) {
		return ErrInvalidTransferee
	}

	targetDate, targetSlot := b.date, b.timeSlot
	if slot != nil && !schedule.SameSlot(*slot, b.timeSlot) {
		targetDate, targetSlot = date, slot.UTC()
	}

	b.contact = to
	b.move(now, actor, ActionTransfer, targetDate, targetSlot, notes)
	return nil
}

func (b *Booking) Cancel(now time.Time, actor Actor, reason string) error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	now = now.UTC()
	b.status = StatusCancelled
	b.cancelledAt = &now
	b.cancelReason = strings.TrimSpace(reason)
	b.updatedAt = now
	if actor == ActorClient {
		b.lastClientManageActionAt = &now
	}
	return nil
}

func (b *Booking) move(now time.Time, actor Actor, action Action, date string, slot time.Time, notes string) {
	now = now.UTC()
	notes = strings.TrimSpace(notes)
	if notes == "" {
		notes = defaultNote(action, actor, b.timeSlot, slot)
	}

	b.rescheduleHistory = append(b.rescheduleHistory, RescheduleEntry{
		Action:       action,
		FromDate:     b.date,
		FromTimeSlot: b.timeSlot,
		ToDate:       date,
		ToTimeSlot:   slot,
		Actor:        actor,
		At:           now,
		Notes:        notes,
	})
	b.date = date
	b.timeSlot = slot
	b.updatedAt = now
	if actor == ActorClient {
		b.lastClientManageActionAt = &now
	}
}
