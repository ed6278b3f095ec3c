//go:build unit

package booking_test

import (
	"testing"
	"time"

	"lashdiary/internal/domain/booking"
	"lashdiary/internal/domain/catalog"
	"lashdiary/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestBooking(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		actual, token, err := builder.NewBookingBuilder().BuildDomain(createdAt)
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusConfirmed, actual.Status())
		assert.Equal(t, 72, actual.CancellationWindowHours())
		assert.Equal(t, time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC), actual.CancellationCutoffAt())
		assert.Equal(t, 2*time.Hour, actual.Duration())
		assert.Equal(t, time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC), actual.End())
		assert.Empty(t, actual.RescheduleHistory())
		assert.Nil(t, actual.LastClientManageActionAt())

		assert.NotEmpty(t, token)
		assert.NotEqual(t, token, actual.ManageTokenHash())
		assert.True(t, actual.MatchesManageToken(token))
		assert.False(t, actual.MatchesManageToken(token+"x"))
		assert.False(t, actual.MatchesManageToken(""))
	})

	t.Run("manage tokens are unique", func(t *testing.T) {
		seen := map[string]struct{}{}
		for range 50 {
			_, token, err := builder.NewBookingBuilder().BuildDomain(createdAt)
			require.NoError(t, err)
			_, dup := seen[token]
			require.False(t, dup)
			seen[token] = struct{}{}
			assert.GreaterOrEqual(t, len(token), 43)
		}
	})

	t.Run("連絡先検証", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "名前なしNG",
				mutate: func(b *builder.BookingBuilder) { b.Name = "   " },
				errIs:  booking.ErrMissingContact,
			},
			{
				name:   "メールなしNG",
				mutate: func(b *builder.BookingBuilder) { b.Email = "" },
				errIs:  booking.ErrMissingContact,
			},
			{
				name:   "電話なしNG",
				mutate: func(b *builder.BookingBuilder) { b.Phone = "" },
				errIs:  booking.ErrMissingContact,
			},
			{
				name:   "@なしNG",
				mutate: func(b *builder.BookingBuilder) { b.Email = "amani.example.com" },
				errIs:  booking.ErrInvalidEmail,
			},
			{
				name:   "前後空白はトリムOK",
				mutate: func(b *builder.BookingBuilder) { b.Name = "  Amani  " },
			},
		})
	})

	t.Run("キャンセル期限", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "0時間はデフォルト72時間OK",
				mutate: func(b *builder.BookingBuilder) { b.WithWindowHours(0) },
			},
			{
				name:   "24時間OK",
				mutate: func(b *builder.BookingBuilder) { b.WithWindowHours(24) },
			},
			{
				name:   "負の値NG",
				mutate: func(b *builder.BookingBuilder) { b.WithWindowHours(-1) },
				errIs:  booking.ErrInvalidCancellationWindow,
			},
		})
	})

	t.Run("duration falls back to default without services", func(t *testing.T) {
		actual, _, err := builder.NewBookingBuilder().WithoutServices().BuildDomain(createdAt)
		require.NoError(t, err)
		assert.Equal(t, booking.DefaultDuration, actual.Duration())
	})

	t.Run("duration sums service lines", func(t *testing.T) {
		actual, _, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Services = []booking.ServiceLine{
				{ID: "classic", Name: "Classic", PriceCents: 100, DurationMin: 90},
				{ID: "brow-tint", Name: "Brow Tint", PriceCents: 50, DurationMin: 30},
			}
		}).BuildDomain(createdAt)
		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour, actual.Duration())
	})
}

func TestNewTransferContact(t *testing.T) {
	cases := []struct {
		name                string
		cName, email, phone string
		errIs               error
	}{
		{name: "two character name is accepted", cName: "Jo", email: "jo@example.com", phone: "0712345"},
		{name: "empty name is rejected", cName: "", email: "jo@example.com", phone: "0712345", errIs: booking.ErrInvalidTransferee},
		{name: "single character name is rejected", cName: "J", email: "jo@example.com", phone: "0712345", errIs: booking.ErrInvalidTransferee},
		{name: "email without at sign is rejected", cName: "Jo", email: "jo.example.com", phone: "0712345", errIs: booking.ErrInvalidTransferee},
		{name: "six digit phone is rejected", cName: "Jo", email: "jo@example.com", phone: "071234", errIs: booking.ErrInvalidTransferee},
		{name: "whitespace is trimmed before length checks", cName: " J ", email: "jo@example.com", phone: "0712345", errIs: booking.ErrInvalidTransferee},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := booking.NewTransferContact(tc.cName, tc.email, tc.phone)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.cName, c.Name())
		})
	}
}

func TestNewPricing(t *testing.T) {
	lines := []booking.ServiceLine{
		{ID: "classic", PriceCents: 650000, DurationMin: 120},
		{ID: "removal", PriceCents: 100001, DurationMin: 30},
	}
	percent := 10.0
	amount := int64(2_000_000)

	cases := []struct {
		name    string
		promo   *catalog.Promo
		deposit int
		want    booking.Pricing
	}{
		{
			name:    "no promo, deposit rounds up",
			deposit: 30,
			want:    booking.Pricing{OriginalCents: 750001, FinalCents: 750001, DepositCents: 225001},
		},
		{
			name:    "percent promo",
			promo:   &catalog.Promo{Code: "LASH10", PercentOff: &percent},
			deposit: 0,
			want:    booking.Pricing{OriginalCents: 750001, DiscountCents: 75000, FinalCents: 675001, PromoCode: "LASH10"},
		},
		{
			name:    "fixed promo larger than price is capped",
			promo:   &catalog.Promo{Code: "FREEBIE", AmountOffCents: &amount},
			deposit: 50,
			want:    booking.Pricing{OriginalCents: 750001, DiscountCents: 750001, FinalCents: 0, PromoCode: "FREEBIE"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := booking.NewPricing(lines, tc.promo, tc.deposit)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Pricing mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, _, err := builder.NewBookingBuilder().With(c.mutate).BuildDomain(createdAt)

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
