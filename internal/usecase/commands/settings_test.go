//go:build unit

package commands_test

import (
	"context"
	"testing"

	"lashdiary/internal/domain/schedule"
	"lashdiary/internal/domain/studio"
	"lashdiary/internal/pkg/errs"
	"lashdiary/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps, dedupes and re-evaluates recorded dates", func(t *testing.T) {
		f := newFixture(t)
		for _, slot := range []string{"09:00", "12:00", "15:00"} {
			_, err := f.bookings.Create(ctx, input("2025-03-10T"+slot+":00+03:00"))
			require.NoError(t, err)
		}
		dates, err := f.avail.FullyBookedDates(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"2025-03-10"}, dates)

		s := studio.Defaults(72, 120)
		s.Slots[schedule.DayWeekday] = append(s.Slots[schedule.DayWeekday], schedule.SlotTemplate{Hour: 17})
		s.BlockedDates = []string{"2025-03-20", "2025-03-18", "2025-03-20"}

		saved, err := f.settings.Update(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, []string{"2025-03-18", "2025-03-20"}, saved.BlockedDates)
		assert.True(t, saved.UpdatedAt.Equal(start))

		dates, err = f.avail.FullyBookedDates(ctx)
		require.NoError(t, err)
		assert.Empty(t, dates, "a new template reopens the date")
	})

	t.Run("invalid settings are not saved", func(t *testing.T) {
		f := newFixture(t)
		s := studio.Defaults(0, 120)

		_, err := f.settings.Update(ctx, s)
		assert.True(t, errs.Is(err, commands.ErrDomainValidation))
		assert.True(t, errs.Is(err, studio.ErrInvalidCancellationWin))
	})
}
