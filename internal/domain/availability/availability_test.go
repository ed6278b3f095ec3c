//go:build unit

package availability_test

import (
	"testing"
	"time"

	"lashdiary/internal/domain/availability"
	"lashdiary/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h, m int) time.Time {
	return time.Date(2025, 4, 1, h, m, 0, 0, time.UTC)
}

func candidates(t *testing.T) []schedule.Slot {
	t.Helper()
	cfg := schedule.SlotConfig{schedule.DayWeekday: {{Hour: 9}, {Hour: 10, Minute: 30}, {Hour: 12}}}
	slots, err := schedule.NewGenerator(time.UTC).Generate("2025-04-01", cfg, nil)
	require.NoError(t, err)
	return slots
}

func TestAvailable(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	booked := []availability.BookedSlot{
		{BookingID: first, Start: at(9, 0)},
		{BookingID: second, Start: at(10, 30).In(time.FixedZone("EAT", 3*60*60))},
	}

	t.Run("booked slots are removed", func(t *testing.T) {
		got := availability.Available(candidates(t), booked, nil)
		require.Len(t, got, 1)
		assert.Equal(t, at(12, 0), got[0].Start)
		assert.False(t, availability.IsFullyBooked(got))
	})

	t.Run("excluded booking frees its own slot", func(t *testing.T) {
		got := availability.Available(candidates(t), booked, &first)
		require.Len(t, got, 2)
		assert.Equal(t, at(9, 0), got[0].Start)
	})

	t.Run("all taken is fully booked", func(t *testing.T) {
		all := append(booked, availability.BookedSlot{BookingID: uuid.New(), Start: at(12, 0)})
		got := availability.Available(candidates(t), all, nil)
		assert.Empty(t, got)
		assert.True(t, availability.IsFullyBooked(got))
	})
}

func TestIsAvailable(t *testing.T) {
	id := uuid.New()
	booked := []availability.BookedSlot{{BookingID: id, Start: at(9, 0)}}

	assert.False(t, availability.IsAvailable(at(9, 0), booked, nil))
	assert.False(t, availability.IsAvailable(at(9, 0).In(time.FixedZone("X", -5*60*60)), booked, nil))
	assert.True(t, availability.IsAvailable(at(9, 0), booked, &id))
	assert.True(t, availability.IsAvailable(at(12, 0), booked, nil))
	assert.True(t, availability.IsAvailable(at(12, 0), nil, nil))
}
