//go:build unit

package worker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"lashdiary/internal/domain/catalog"
	"lashdiary/internal/domain/schedule"
	"lashdiary/internal/domain/studio"
	"lashdiary/internal/infra/jsonstore"
	"lashdiary/internal/infra/notify"
	"lashdiary/internal/pkg/clock"
	"lashdiary/internal/pkg/config"
	"lashdiary/internal/usecase/commands"
	"lashdiary/internal/usecase/queries"
	"lashdiary/internal/usecase/shared"
	"lashdiary/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	eat   = time.FixedZone("EAT", 3*60*60)
	start = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []notify.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fakeCalendar struct {
	created, updated, deleted []string
}

func (c *fakeCalendar) CreateEvent(_ context.Context, p shared.BookingPayload) (string, error) {
	id := "evt-" + p.BookingID.String()[:8]
	c.created = append(c.created, id)
	return id, nil
}

func (c *fakeCalendar) UpdateEvent(_ context.Context, eventID string, _ shared.BookingPayload) error {
	c.updated = append(c.updated, eventID)
	return nil
}

func (c *fakeCalendar) DeleteEvent(_ context.Context, eventID string) error {
	c.deleted = append(c.deleted, eventID)
	return nil
}

type fakePublisher struct {
	keys []string
}

func (p *fakePublisher) Publish(_ context.Context, routingKey string, _ []byte) error {
	p.keys = append(p.keys, routingKey)
	return nil
}

type fixture struct {
	clock     *clock.MockClock
	store     *jsonstore.Store
	bookings  commands.BookingCommands
	queries   queries.BookingQueries
	mailer    *fakeMailer
	calendar  *fakeCalendar
	publisher *fakePublisher
	worker    *worker.Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewMockClock(start)
	settings := studio.Defaults(72, 120)
	settings.Services = catalog.Catalog{{ID: "classic", Name: "Classic Full Set", PriceCents: 650000, DurationMin: 120}}
	store, err := jsonstore.New(t.TempDir(), settings, clk, logger)
	require.NoError(t, err)

	gen := schedule.NewGenerator(eat)
	f := &fixture{
		clock:     clk,
		store:     store,
		bookings:  commands.NewBookingCommands(store, gen, shared.Links{BaseURL: "https://lashdiary.test"}, clk, logger),
		queries:   queries.NewBookingQueries(store, clk),
		mailer:    &fakeMailer{},
		calendar:  &fakeCalendar{},
		publisher: &fakePublisher{},
	}
	f.worker = worker.NewDispatcher(store, worker.Sinks{
		Composer:  notify.NewComposer("LashDiary", eat),
		Mailer:    f.mailer,
		Calendar:  f.calendar,
		Publisher: f.publisher,
	}, f.queries, f.bookings, clk, config.WorkerConfig{
		BatchSize:   10,
		MaxAttempts: 3,
		BaseBackoff: time.Minute,
		JobTimeout:  time.Second,
	}, logger)
	return f
}

func (f *fixture) createBooking(t *testing.T) *commands.CreateBookingResult {
	t.Helper()
	res, err := f.bookings.Create(context.Background(), commands.CreateBookingInput{
		Name:       "Amani Wanjiru",
		Email:      "amani@example.com",
		Phone:      "0712345678",
		Date:       "2025-03-10",
		TimeSlot:   "2025-03-10T09:00:00+03:00",
		ServiceIDs: []string{"classic"},
	})
	require.NoError(t, err)
	return res
}

func TestDispatcher_DeliversCreateJobs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	res := f.createBooking(t)

	delivered, err := f.worker.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, delivered)

	require.Len(t, f.mailer.sent, 1)
	assert.Contains(t, f.mailer.sent[0].Body, res.ManageURL)
	assert.Len(t, f.mailer.sent[0].Attachments, 1)
	assert.Equal(t, []string{shared.TopicBookingCreated}, f.publisher.keys)
	require.Len(t, f.calendar.created, 1)

	view, err := f.queries.GetForAdmin(ctx, res.BookingID)
	require.NoError(t, err)
	assert.Equal(t, f.calendar.created[0], view.CalendarEventID)

	delivered, err = f.worker.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, delivered, "delivered jobs are not picked up again")
}

func TestDispatcher_UsesAttachedEventForLaterJobs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	res := f.createBooking(t)
	_, err := f.worker.RunOnce(ctx)
	require.NoError(t, err)

	_, err = f.bookings.AdminReschedule(ctx, res.BookingID, commands.RescheduleInput{
		NewTimeSlot: "2025-03-10T12:00:00+03:00",
	})
	require.NoError(t, err)
	_, err = f.bookings.AdminCancel(ctx, res.BookingID, "client unwell")
	require.NoError(t, err)

	_, err = f.worker.RunOnce(ctx)
	require.NoError(t, err)

	eventID := f.calendar.created[0]
	assert.Equal(t, []string{eventID}, f.calendar.updated)
	assert.Equal(t, []string{eventID}, f.calendar.deleted)
	assert.Equal(t, []string{
		shared.TopicBookingCreated,
		shared.TopicBookingRescheduled,
		shared.TopicBookingCancelled,
	}, f.publisher.keys)
	require.Len(t, f.mailer.sent, 2)
	assert.Contains(t, f.mailer.sent[1].Subject, "cancelled")
}

func TestDispatcher_RetriesWithBackoffThenFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createBooking(t)
	f.mailer.err = errors.New("smtp unavailable")

	delivered, err := f.worker.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, delivered, "calendar and event jobs still go out")

	t.Run("バックオフ期間中は再送しない", func(t *testing.T) {
		f.clock.Add(30 * time.Second)
		delivered, err := f.worker.RunOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, delivered)
	})

	t.Run("最大試行回数に達すると失敗として残る", func(t *testing.T) {
		// attempt 2 after 1m, attempt 3 after a further 2m
		f.clock.Add(time.Minute)
		_, err := f.worker.RunOnce(ctx)
		require.NoError(t, err)
		f.clock.Add(2 * time.Minute)
		_, err = f.worker.RunOnce(ctx)
		require.NoError(t, err)

		f.mailer.err = nil
		f.clock.Add(time.Hour)
		delivered, err := f.worker.RunOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, delivered)
		assert.Empty(t, f.mailer.sent)
	})
}

func TestDispatcher_RecoversJobsStrandedInProcessing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createBooking(t)

	// a dispatcher that claimed the batch and died before recording results
	require.NoError(t, f.store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		jobs, err := tx.Outbox().ClaimDue(ctx, f.clock.Now(), time.Minute, 10)
		require.Len(t, jobs, 3)
		return err
	}))

	delivered, err := f.worker.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, delivered, "claimed jobs wait out the lease")

	// lease defaults to twice JobTimeout
	f.clock.Add(2 * time.Second)
	delivered, err = f.worker.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, delivered)
	assert.Len(t, f.mailer.sent, 1)
	assert.Len(t, f.calendar.created, 1)
	assert.Equal(t, []string{shared.TopicBookingCreated}, f.publisher.keys)
}

func TestBackoff(t *testing.T) {
	base := 30 * time.Second
	assert.Equal(t, 30*time.Second, worker.Backoff(1, base))
	assert.Equal(t, time.Minute, worker.Backoff(2, base))
	assert.Equal(t, 4*time.Minute, worker.Backoff(4, base))
	assert.Equal(t, time.Hour, worker.Backoff(20, base))
}
