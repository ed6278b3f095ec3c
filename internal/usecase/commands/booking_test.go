//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"lashdiary/internal/domain/booking"
	"lashdiary/internal/domain/catalog"
	"lashdiary/internal/domain/schedule"
	"lashdiary/internal/domain/studio"
	"lashdiary/internal/infra/jsonstore"
	"lashdiary/internal/pkg/clock"
	"lashdiary/internal/pkg/errs"
	"lashdiary/internal/pkg/ptr"
	"lashdiary/internal/usecase/commands"
	"lashdiary/internal/usecase/queries"
	"lashdiary/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	eat   = time.FixedZone("EAT", 3*60*60)
	start = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
)

type fixture struct {
	store    *jsonstore.Store
	clock    *clock.MockClock
	bookings commands.BookingCommands
	settings commands.SettingsCommands
	avail    queries.AvailabilityQueries
	reads    queries.BookingQueries
}

func newFixture(t *testing.T, mutate ...func(*studio.Settings)) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewMockClock(start)

	s := studio.Defaults(72, 120)
	s.Services = catalog.Catalog{
		{ID: "classic", Name: "Classic Full Set", PriceCents: 650000, DurationMin: 120},
		{ID: "refill", Name: "Refill", PriceCents: 300000, DurationMin: 60},
	}
	s.Promos = catalog.Promos{{Code: "WELCOME10", PercentOff: ptr.To(10.0)}}
	for _, m := range mutate {
		m(&s)
	}

	store, err := jsonstore.New(t.TempDir(), s, clk, logger)
	require.NoError(t, err)

	gen := schedule.NewGenerator(eat)
	return &fixture{
		store:    store,
		clock:    clk,
		bookings: commands.NewBookingCommands(store, gen, shared.Links{BaseURL: "https://lashdiary.test/"}, clk, logger),
		settings: commands.NewSettingsCommands(store, gen, clk, logger),
		avail:    queries.NewAvailabilityQueries(store, gen, clk, logger),
		reads:    queries.NewBookingQueries(store, clk),
	}
}

func input(slot string) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		Name:       "Amani Wanjiru",
		Email:      "amani@example.com",
		Phone:      "0712345678",
		TimeSlot:   slot,
		ServiceIDs: []string{"classic"},
	}
}

// drain claims every queued job, in creation order.
func (f *fixture) drain(t *testing.T) []shared.Job {
	t.Helper()
	var jobs []shared.Job
	err := f.store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		jobs, err = tx.Outbox().ClaimDue(ctx, f.clock.Now().Add(24*time.Hour), 0, 100)
		return err
	})
	require.NoError(t, err)
	return jobs
}

func topics(jobs []shared.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.Topic
	}
	return out
}

func payloadOf(t *testing.T, j shared.Job) shared.BookingPayload {
	t.Helper()
	var p shared.BookingPayload
	require.NoError(t, json.Unmarshal(j.Payload, &p))
	return p
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a booking and queues its side effects", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.bookings.Create(ctx, input("2025-03-10T09:00:00+03:00"))
		require.NoError(t, err)

		assert.NotEmpty(t, res.ManageToken)
		assert.Equal(t, "https://lashdiary.test/booking/manage/"+res.ManageToken, res.ManageURL)
		assert.Equal(t, "2025-03-10", res.Booking.Date)
		assert.Equal(t, "confirmed", res.Booking.Status)
		assert.True(t, res.Booking.TimeSlot.Equal(time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)))
		assert.True(t, res.Booking.EndsAt.Equal(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)))

		jobs := f.drain(t)
		assert.Equal(t, []string{
			shared.TopicCalendarCreate,
			shared.TopicEmailConfirmation,
			shared.TopicBookingCreated,
		}, topics(jobs))
		for _, j := range jobs {
			p := payloadOf(t, j)
			if j.Kind == shared.JobKindEmail {
				assert.Equal(t, res.ManageToken, p.ManageToken)
			} else {
				assert.Empty(t, p.ManageToken, "only email payloads carry the token")
			}
		}
	})

	t.Run("the date is derived from the slot when omitted", func(t *testing.T) {
		f := newFixture(t)
		// 22:30 UTC on the 9th is 01:30 on the 10th in Nairobi, which is not a slot
		_, err := f.bookings.Create(ctx, input("2025-03-09T22:30:00Z"))
		assert.True(t, errs.Is(err, shared.ErrSlotNotOffered))

		res, err := f.bookings.Create(ctx, input("2025-03-10T06:00:00Z"))
		require.NoError(t, err)
		assert.Equal(t, "2025-03-10", res.Booking.Date)
	})

	t.Run("promo and deposit are priced at booking time", func(t *testing.T) {
		f := newFixture(t, func(s *studio.Settings) { s.DepositPercent = 30 })
		in := input("2025-03-10T09:00:00+03:00")
		in.PromoCode = "welcome10"
		in.ServiceIDs = []string{"classic", "refill"}

		res, err := f.bookings.Create(ctx, in)
		require.NoError(t, err)
		assert.EqualValues(t, 950000, res.Booking.Pricing.OriginalCents)
		assert.EqualValues(t, 95000, res.Booking.Pricing.DiscountCents)
		assert.EqualValues(t, 855000, res.Booking.Pricing.FinalCents)
		assert.EqualValues(t, 256500, res.Booking.Pricing.DepositCents)
		assert.Equal(t, "WELCOME10", res.Booking.Pricing.PromoCode)
		// the booking lasts as long as its services combined
		assert.True(t, res.Booking.EndsAt.Equal(res.Booking.TimeSlot.Add(3*time.Hour)))
	})

	t.Run("rejections", func(t *testing.T) {
		f := newFixture(t, func(s *studio.Settings) {
			s.BookingWindow = schedule.BookingWindow{Start: "2025-03-01", End: "2025-03-31"}
			s.BlockedDates = []string{"2025-03-12"}
		})
		_, err := f.bookings.Create(ctx, input("2025-03-10T09:00:00+03:00"))
		require.NoError(t, err)

		cases := []struct {
			name   string
			mutate func(*commands.CreateBookingInput)
			target error
		}{
			{"同じ枠は予約できない", func(in *commands.CreateBookingInput) {}, shared.ErrSlotUnavailable},
			{"過去の枠", func(in *commands.CreateBookingInput) { in.TimeSlot = "2025-02-28T09:00:00+03:00" }, shared.ErrSlotInPast},
			{"生成されない時刻", func(in *commands.CreateBookingInput) { in.TimeSlot = "2025-03-10T10:00:00+03:00" }, shared.ErrSlotNotOffered},
			{"ブロック日", func(in *commands.CreateBookingInput) { in.TimeSlot = "2025-03-12T09:00:00+03:00" }, shared.ErrSlotNotOffered},
			{"日付と枠の不一致", func(in *commands.CreateBookingInput) { in.Date = "2025-03-11" }, shared.ErrSlotNotOffered},
			{"予約期間外", func(in *commands.CreateBookingInput) { in.TimeSlot = "2025-04-01T09:00:00+03:00" }, studio.ErrOutsideBookingWindow},
			{"不明なサービス", func(in *commands.CreateBookingInput) { in.ServiceIDs = []string{"volume"} }, catalog.ErrUnknownService},
			{"不明なプロモコード", func(in *commands.CreateBookingInput) { in.PromoCode = "NOPE123" }, commands.ErrInvalidPromo},
			{"連絡先なし", func(in *commands.CreateBookingInput) { in.Email, in.Phone = "", "" }, commands.ErrDomainValidation},
			{"不正な時刻形式", func(in *commands.CreateBookingInput) { in.TimeSlot = "tomorrow" }, commands.ErrDomainValidation},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				in := input("2025-03-10T09:00:00+03:00")
				tc.mutate(&in)
				_, err := f.bookings.Create(ctx, in)
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.target), "got %v", err)
			})
		}
	})

	t.Run("the last free slot marks the date fully booked", func(t *testing.T) {
		f := newFixture(t)
		for _, slot := range []string{"09:00", "12:00", "15:00"} {
			_, err := f.bookings.Create(ctx, input("2025-03-10T"+slot+":00+03:00"))
			require.NoError(t, err)
		}

		dates, err := f.avail.FullyBookedDates(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"2025-03-10"}, dates)

		view, err := f.avail.AvailableSlots(ctx, "2025-03-10")
		require.NoError(t, err)
		assert.Empty(t, view.Slots)
		assert.True(t, view.FullyBooked)

		assert.Contains(t, topics(f.drain(t)), shared.TopicFullyBooked)
	})
}

func TestManage(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *commands.CreateBookingResult) {
		f := newFixture(t)
		res, err := f.bookings.Create(ctx, input("2025-03-10T09:00:00+03:00"))
		require.NoError(t, err)
		f.drain(t)
		return f, res
	}

	t.Run("reschedule moves the booking and frees the old slot", func(t *testing.T) {
		f, res := setup(t)
		view, err := f.bookings.Manage(ctx, res.ManageToken, commands.ManageInput{
			Action:      "reschedule",
			NewTimeSlot: "2025-03-11T12:00:00+03:00",
		})
		require.NoError(t, err)
		assert.Equal(t, "2025-03-11", view.Booking.Date)
		require.Len(t, view.Booking.RescheduleHistory, 1)
		assert.Equal(t, "reschedule", view.Booking.RescheduleHistory[0].Action)
		assert.Equal(t, "client", view.Booking.RescheduleHistory[0].Actor)
		assert.NotEmpty(t, view.Booking.RescheduleHistory[0].Notes)

		day, err := f.avail.AvailableSlots(ctx, "2025-03-10")
		require.NoError(t, err)
		assert.Len(t, day.Slots, 3)

		jobs := f.drain(t)
		assert.Equal(t, []string{shared.TopicCalendarUpdate, shared.TopicBookingRescheduled}, topics(jobs))
		p := payloadOf(t, jobs[0])
		require.NotNil(t, p.PreviousSlot)
		assert.True(t, p.PreviousSlot.Equal(time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)))
	})

	t.Run("transfer changes the holder and keeps the token", func(t *testing.T) {
		f, res := setup(t)
		view, err := f.bookings.Manage(ctx, res.ManageToken, commands.ManageInput{
			Action:   "transfer",
			NewName:  "Wanjiku Njeri",
			NewEmail: "wanjiku@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "Wanjiku Njeri", view.Booking.Name)
		assert.Equal(t, "wanjiku@example.com", view.Booking.Email)
		assert.Equal(t, "2025-03-10", view.Booking.Date)

		jobs := f.drain(t)
		assert.Equal(t, []string{shared.TopicCalendarUpdate, shared.TopicEmailTransfer, shared.TopicBookingTransferred}, topics(jobs))
		mail := payloadOf(t, jobs[1])
		assert.Equal(t, "wanjiku@example.com", mail.Email)
		assert.Equal(t, "amani@example.com", mail.PreviousEmail)
		assert.Equal(t, res.ManageToken, mail.ManageToken)

		_, err = f.reads.GetByManageToken(ctx, res.ManageToken)
		assert.NoError(t, err)
	})

	t.Run("refusals", func(t *testing.T) {
		f, res := setup(t)
		move := commands.ManageInput{Action: "reschedule", NewTimeSlot: "2025-03-11T12:00:00+03:00"}

		_, err := f.bookings.Manage(ctx, "unknown-token", move)
		assert.True(t, errs.Is(err, commands.ErrBookingNotFound))

		_, err = f.bookings.Manage(ctx, res.ManageToken, commands.ManageInput{Action: "cancel"})
		assert.True(t, errs.Is(err, commands.ErrInvalidAction))

		_, err = f.bookings.Manage(ctx, res.ManageToken, commands.ManageInput{Action: "reschedule", NewTimeSlot: "2025-03-10T09:00:00+03:00"})
		assert.True(t, errs.Is(err, booking.ErrSameSlot))

		_, err = f.bookings.Manage(ctx, res.ManageToken, commands.ManageInput{Action: "transfer", NewName: "No Contact"})
		assert.True(t, errs.Is(err, commands.ErrDomainValidation))

		_, err = f.bookings.Manage(ctx, res.ManageToken, commands.ManageInput{
			Action:   "transfer",
			NewName:  "Wanjiku Njeri",
			NewEmail: "wanjiku@example.com",
			NewDate:  "2025-03-11",
		})
		assert.True(t, errs.Is(err, commands.ErrDomainValidation))
		assert.True(t, errs.Is(err, commands.ErrDateWithoutTimeSlot))
		view, err := f.reads.GetByManageToken(ctx, res.ManageToken)
		require.NoError(t, err)
		assert.Equal(t, "Amani Wanjiru", view.Booking.Name, "a rejected transfer leaves the booking alone")

		_, err = f.bookings.SetManageAccess(ctx, res.BookingID, true)
		require.NoError(t, err)
		_, err = f.bookings.Manage(ctx, res.ManageToken, move)
		assert.True(t, errs.Is(err, booking.ErrManageDisabled))

		_, err = f.bookings.SetManageAccess(ctx, res.BookingID, false)
		require.NoError(t, err)
		f.clock.Set(time.Date(2025, 3, 8, 6, 0, 1, 0, time.UTC))
		_, err = f.bookings.Manage(ctx, res.ManageToken, move)
		assert.True(t, errs.Is(err, booking.ErrWithinCutoff))
	})

	t.Run("a slot held by another booking conflicts", func(t *testing.T) {
		f, res := setup(t)
		_, err := f.bookings.Create(ctx, input("2025-03-11T12:00:00+03:00"))
		require.NoError(t, err)

		_, err = f.bookings.Manage(ctx, res.ManageToken, commands.ManageInput{
			Action:      "reschedule",
			NewTimeSlot: "2025-03-11T12:00:00+03:00",
		})
		assert.True(t, errs.Is(err, shared.ErrSlotUnavailable))
	})
}

func TestAdminCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("admin may reschedule inside the cutoff", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.bookings.Create(ctx, input("2025-03-10T09:00:00+03:00"))
		require.NoError(t, err)

		f.clock.Set(time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC))
		view, err := f.bookings.AdminReschedule(ctx, res.BookingID, commands.RescheduleInput{
			NewTimeSlot: "2025-03-10T15:00:00+03:00",
			Notes:       "client called",
		})
		require.NoError(t, err)
		assert.Equal(t, "admin", view.RescheduleHistory[0].Actor)
		assert.Equal(t, "client called", view.RescheduleHistory[0].Notes)
		assert.Nil(t, view.LastClientManageActionAt)
	})

	t.Run("cancel frees the slot and clears the fully-booked mark", func(t *testing.T) {
		f := newFixture(t)
		var last *commands.CreateBookingResult
		for _, slot := range []string{"09:00", "12:00", "15:00"} {
			var err error
			last, err = f.bookings.Create(ctx, input("2025-03-10T"+slot+":00+03:00"))
			require.NoError(t, err)
		}
		f.drain(t)

		view, err := f.bookings.AdminCancel(ctx, last.BookingID, "  sick  ")
		require.NoError(t, err)
		assert.Equal(t, "cancelled", view.Status)
		assert.Equal(t, "sick", view.CancelReason)
		assert.NotNil(t, view.CancelledAt)

		dates, err := f.avail.FullyBookedDates(ctx)
		require.NoError(t, err)
		assert.Empty(t, dates)

		assert.Equal(t, []string{
			shared.TopicCalendarDelete,
			shared.TopicEmailCancellation,
			shared.TopicBookingCancelled,
		}, topics(f.drain(t)))

		_, err = f.bookings.AdminCancel(ctx, last.BookingID, "")
		assert.True(t, errs.Is(err, booking.ErrAlreadyCancelled))

		_, err = f.bookings.AdminReschedule(ctx, last.BookingID, commands.RescheduleInput{NewTimeSlot: "2025-03-11T09:00:00+03:00"})
		assert.True(t, errs.Is(err, booking.ErrBookingCancelled))

		_, err = f.bookings.Create(ctx, input("2025-03-10T15:00:00+03:00"))
		assert.NoError(t, err, "a cancelled booking no longer holds its slot")
	})

	t.Run("attach calendar event", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.bookings.Create(ctx, input("2025-03-10T09:00:00+03:00"))
		require.NoError(t, err)

		require.NoError(t, f.bookings.AttachCalendarEvent(ctx, res.BookingID, "evt-1"))
		view, err := f.reads.GetForAdmin(ctx, res.BookingID)
		require.NoError(t, err)
		assert.Equal(t, "evt-1", view.CalendarEventID)
	})
}
