//go:build unit

package booking_test

import (
	"testing"
	"time"

	"lashdiary/internal/domain/booking"
	"lashdiary/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestEvaluate(t *testing.T) {
	// appointment 2025-03-10T09:00Z with the default 72h window
	bk := builder.NewBookingBuilder().MustBuild(t, createdAt)

	t.Run("47 hours before start is inside the window", func(t *testing.T) {
		d := bk.Evaluate(utc(2025, 3, 8, 10), booking.ActorClient)
		assert.False(t, d.CanReschedule)
		assert.False(t, d.CanTransfer)
		assert.False(t, d.WithinPolicyWindow)
		assert.InDelta(t, 47.0, d.HoursUntilStart, 0.001)
		assert.Equal(t, booking.ReasonWithinCutoff, d.Reason)
		assert.Equal(t, utc(2025, 3, 7, 9), d.CutoffAt)
	})

	t.Run("97 hours before start is allowed", func(t *testing.T) {
		d := bk.Evaluate(utc(2025, 3, 6, 8), booking.ActorClient)
		assert.True(t, d.CanReschedule)
		assert.True(t, d.CanTransfer)
		assert.True(t, d.WithinPolicyWindow)
		assert.Equal(t, booking.ReasonNone, d.Reason)
	})

	t.Run("exactly at the cutoff is still allowed", func(t *testing.T) {
		d := bk.Evaluate(utc(2025, 3, 7, 9), booking.ActorClient)
		assert.True(t, d.CanReschedule)
	})

	t.Run("after start reports appointment passed", func(t *testing.T) {
		d := bk.Evaluate(utc(2025, 3, 10, 10), booking.ActorClient)
		assert.False(t, d.CanReschedule)
		assert.Equal(t, booking.ReasonAppointmentPassed, d.Reason)
	})

	t.Run("admin bypasses the time policy", func(t *testing.T) {
		d := bk.Evaluate(utc(2025, 3, 9, 10), booking.ActorAdmin)
		assert.True(t, d.CanReschedule)
		assert.False(t, d.WithinPolicyWindow)
	})
}

func TestCheckManageable(t *testing.T) {
	allowed := utc(2025, 3, 1, 9)

	t.Run("manage disabled blocks client but not admin", func(t *testing.T) {
		bk := builder.NewBookingBuilder().MustBuild(t, createdAt)
		bk.SetClientManageDisabled(true, allowed)

		require.ErrorIs(t, bk.CheckManageable(allowed, booking.ActorClient), booking.ErrManageDisabled)
		require.NoError(t, bk.CheckManageable(allowed, booking.ActorAdmin))
	})

	t.Run("cancelled blocks everyone", func(t *testing.T) {
		bk := builder.NewBookingBuilder().MustBuild(t, createdAt)
		require.NoError(t, bk.Cancel(allowed, booking.ActorAdmin, "client request"))

		require.ErrorIs(t, bk.CheckManageable(allowed, booking.ActorClient), booking.ErrBookingCancelled)
		require.ErrorIs(t, bk.CheckManageable(allowed, booking.ActorAdmin), booking.ErrBookingCancelled)
		require.ErrorIs(t, bk.Cancel(allowed, booking.ActorAdmin, ""), booking.ErrAlreadyCancelled)
	})
}

func TestReschedule(t *testing.T) {
	now := utc(2025, 3, 1, 9)

	t.Run("same slot is rejected without mutation", func(t *testing.T) {
		bk := builder.NewBookingBuilder().MustBuild(t, createdAt)
		sameInstantOtherZone := bk.TimeSlot().In(time.FixedZone("EAT", 3*60*60))

		err := bk.Reschedule(now, booking.ActorClient, bk.Date(), sameInstantOtherZone, "")
		require.ErrorIs(t, err, booking.ErrSameSlot)
		assert.Empty(t, bk.RescheduleHistory())
		assert.Nil(t, bk.LastClientManageActionAt())
	})

	t.Run("within cutoff is rejected", func(t *testing.T) {
		bk := builder.NewBookingBuilder().MustBuild(t, createdAt)
		err := bk.Reschedule(utc(2025, 3, 8, 10), booking.ActorClient, "2025-03-20", utc(2025, 3, 20, 9), "")
		require.ErrorIs(t, err, booking.ErrWithinCutoff)
		assert.Equal(t, utc(2025, 3, 10, 9), bk.TimeSlot())
	})

	t.Run("history chains across repeated moves", func(t *testing.T) {
		bk := builder.NewBookingBuilder().MustBuild(t, createdAt)
		targets := []time.Time{utc(2025, 3, 12, 9), utc(2025, 3, 14, 12), utc(2025, 3, 18, 15)}

		for i, target := range targets {
			at := now.Add(time.Duration(i) * time.Hour)
			require.NoError(t, bk.Reschedule(at, booking.ActorClient, target.Format("2006-01-02"), target, ""))
		}

		history := bk.RescheduleHistory()
		require.Len(t, history, len(targets))
		assert.Equal(t, utc(2025, 3, 10, 9), history[0].FromTimeSlot)
		for i := 1; i < len(history); i++ {
			assert.Equal(t, history[i-1].ToTimeSlot, history[i].FromTimeSlot)
			assert.Equal(t, history[i-1].ToDate, history[i].FromDate)
		}
		last := history[len(history)-1]
		assert.Equal(t, bk.TimeSlot(), last.ToTimeSlot)
		assert.Equal(t, booking.ActionReschedule, last.Action)
		assert.Equal(t, booking.ActorClient, last.Actor)
		assert.Contains(t, last.Notes, "Rescheduled by client")

		require.NotNil(t, bk.LastClientManageActionAt())
		assert.Equal(t, now.Add(2*time.Hour), *bk.LastClientManageActionAt())
		assert.Equal(t, utc(2025, 3, 15, 15), bk.CancellationCutoffAt())
	})

	t.Run("admin move keeps last client action untouched", func(t *testing.T) {
		bk := builder.NewBookingBuilder().MustBuild(t, createdAt)
		require.NoError(t, bk.Reschedule(now, booking.ActorAdmin, "2025-03-11", utc(2025, 3, 11, 9), "phoned in"))
		assert.Nil(t, bk.LastClientManageActionAt())
		assert.Equal(t, "phoned in", bk.RescheduleHistory()[0].Notes)
	})
}

func TestTransfer(t *testing.T) {
	now := utc(2025, 3, 1, 9)
	to, err := booking.NewTransferContact("Jo", "jo@example.com", "0799999999")
	require.NoError(t, err)

	t.Run("same slot keeps the appointment and records history", func(t *testing.T) {
		bk := builder.NewBookingBuilder().MustBuild(t, createdAt)
		slot := bk.TimeSlot()

		require.NoError(t, bk.Transfer(now, booking.ActorClient, to, bk.Date(), &slot, ""))

		assert.Equal(t, slot, bk.TimeSlot())
		assert.Equal(t, "Jo", bk.Contact().Name())
		history := bk.RescheduleHistory()
		require.Len(t, history, 1)
		assert.Equal(t, booking.ActionTransfer, history[0].Action)
		assert.Equal(t, slot, history[0].ToTimeSlot)
		assert.Equal(t, "Transferred by client", history[0].Notes)
	})

	t.Run("transfer can move the slot", func(t *testing.T) {
		bk := builder.NewBookingBuilder().MustBuild(t, createdAt)
		target := utc(2025, 3, 21, 12)

		require.NoError(t, bk.Transfer(now, booking.ActorClient, to, "2025-03-21", &target, ""))
		assert.Equal(t, target, bk.TimeSlot())
		assert.Equal(t, "2025-03-21", bk.Date())
	})

	t.Run("within cutoff is rejected", func(t *testing.T) {
		bk := builder.NewBookingBuilder().MustBuild(t, createdAt)
		err := bk.Transfer(utc(2025, 3, 8, 10), booking.ActorClient, to, "", nil, "")
		require.ErrorIs(t, err, booking.ErrWithinCutoff)
		assert.Equal(t, "Amani Wanjiru", bk.Contact().Name())
	})
}
