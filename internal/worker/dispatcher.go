// Package worker drains the outbox: every side effect of a booking change is
// queued in the same unit of work as the change and delivered here.
package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"lashdiary/internal/infra/notify"
	"lashdiary/internal/pkg/clock"
	"lashdiary/internal/pkg/config"
	"lashdiary/internal/pkg/errs"
	"lashdiary/internal/usecase/queries"
	"lashdiary/internal/usecase/shared"

	"github.com/google/uuid"
)

const maxBackoff = time.Hour

var (
	ErrUnknownJobKind       = errs.New("unknown job kind")
	ErrUnknownJobTopic      = errs.New("unknown job topic")
	ErrCalendarEventPending = errs.New("calendar event not created yet")
)

type BookingReader interface {
	GetForAdmin(ctx context.Context, id uuid.UUID) (*queries.AdminBookingView, error)
}

type CalendarLinker interface {
	AttachCalendarEvent(ctx context.Context, id uuid.UUID, eventID string) error
}

type Sinks struct {
	Composer  *notify.Composer
	Mailer    notify.Mailer
	Calendar  notify.CalendarSink
	Publisher notify.EventPublisher
}

type Dispatcher struct {
	uow      shared.UnitOfWork
	sinks    Sinks
	bookings BookingReader
	linker   CalendarLinker
	clock    clock.Clock
	cfg      config.WorkerConfig
	logger   *slog.Logger

	stop chan struct{}
	wg   sync.WaitGroup
}

func NewDispatcher(
	uow shared.UnitOfWork,
	sinks Sinks,
	bookings BookingReader,
	linker CalendarLinker,
	clock clock.Clock,
	cfg config.WorkerConfig,
	logger *slog.Logger,
) *Dispatcher {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 30 * time.Second
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 20 * time.Second
	}
	if cfg.ClaimLease <= 0 {
		cfg.ClaimLease = 2 * cfg.JobTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	return &Dispatcher{
		uow:      uow,
		sinks:    sinks,
		bookings: bookings,
		linker:   linker,
		clock:    clock,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start polls the outbox in the background until Stop is called.
func (d *Dispatcher) Start() {
	d.stop = make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()

		ticker := time.NewTicker(d.cfg.PollInterval)
		defer ticker.Stop()
		for {
			if _, err := d.RunOnce(ctx); err != nil && ctx.Err() == nil {
				d.logger.Error("outbox dispatch failed", "error", err.Error())
			}
			select {
			case <-d.stop:
				return
			case <-ticker.C:
			}
		}
	}()
}

func (d *Dispatcher) Stop(ctx context.Context) error {
	if d.stop == nil {
		return nil
	}
	close(d.stop)

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce claims one batch of due jobs and delivers them. It returns how many
// jobs were delivered successfully.
func (d *Dispatcher) RunOnce(ctx context.Context) (int, error) {
	var jobs []shared.Job
	err := d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		jobs, err = tx.Outbox().ClaimDue(ctx, d.clock.Now(), d.cfg.ClaimLease, d.cfg.BatchSize)
		return err
	})
	if err != nil {
		return 0, err
	}

	// A job whose result cannot be recorded stays in processing and is
	// claimed again once its lease runs out.
	var recordErr error
	delivered := 0
	for _, job := range jobs {
		jobCtx, cancel := context.WithTimeout(ctx, d.cfg.JobTimeout)
		handleErr := d.handle(jobCtx, job)
		cancel()

		if err := d.record(ctx, job, handleErr); err != nil {
			d.logger.Error("failed to record outbox job result", "job_id", job.ID, "topic", job.Topic, "error", err.Error())
			if recordErr == nil {
				recordErr = errs.Wrap(err, "record outbox job")
			}
			continue
		}
		if handleErr == nil {
			delivered++
		}
	}
	return delivered, recordErr
}

func (d *Dispatcher) record(ctx context.Context, job shared.Job, handleErr error) error {
	now := d.clock.Now()
	return d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if handleErr == nil {
			return tx.Outbox().MarkDone(ctx, job.ID, now)
		}

		attempts := job.Attempts + 1
		if attempts >= d.cfg.MaxAttempts {
			d.logger.Error("outbox job failed permanently",
				"job_id", job.ID, "topic", job.Topic, "attempts", attempts, "error", handleErr.Error())
			return tx.Outbox().MarkFailed(ctx, job.ID, attempts, handleErr.Error(), now)
		}

		runAt := now.Add(Backoff(attempts, d.cfg.BaseBackoff))
		d.logger.Warn("outbox job will be retried",
			"job_id", job.ID, "topic", job.Topic, "attempts", attempts, "run_at", runAt, "error", handleErr.Error())
		return tx.Outbox().Retry(ctx, job.ID, attempts, runAt, handleErr.Error())
	})
}

// Backoff doubles per attempt, capped at one hour.
func Backoff(attempts int, base time.Duration) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	wait := base
	for i := 1; i < attempts; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}

func (d *Dispatcher) handle(ctx context.Context, job shared.Job) error {
	switch job.Kind {
	case shared.JobKindEvent:
		return d.sinks.Publisher.Publish(ctx, job.Topic, job.Payload)
	case shared.JobKindEmail:
		return d.sendEmail(ctx, job)
	case shared.JobKindCalendar:
		return d.syncCalendar(ctx, job)
	default:
		return errs.Wrap(ErrUnknownJobKind, job.Kind)
	}
}

func (d *Dispatcher) sendEmail(ctx context.Context, job shared.Job) error {
	var p shared.BookingPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		return errs.Wrap(err, "decode email payload")
	}
	msg, err := d.sinks.Composer.Compose(job.Topic, p)
	if err != nil {
		return err
	}
	return d.sinks.Mailer.Send(ctx, msg)
}

// syncCalendar works from the booking as it is at delivery time: the create
// job may finish after later jobs were queued, and the slot may have moved
// since the job was written.
func (d *Dispatcher) syncCalendar(ctx context.Context, job shared.Job) error {
	var p shared.BookingPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		return errs.Wrap(err, "decode calendar payload")
	}
	current, err := d.bookings.GetForAdmin(ctx, p.BookingID)
	if err != nil {
		return errs.Wrap(err, "load booking for calendar sync")
	}

	p = withCurrent(p, current)

	switch job.Topic {
	case shared.TopicCalendarCreate:
		if current.CalendarEventID != "" || current.Status == "cancelled" {
			return nil
		}
		eventID, err := d.sinks.Calendar.CreateEvent(ctx, p)
		if err != nil {
			return err
		}
		return d.linker.AttachCalendarEvent(ctx, p.BookingID, eventID)
	case shared.TopicCalendarUpdate:
		if current.CalendarEventID == "" {
			return ErrCalendarEventPending
		}
		return d.sinks.Calendar.UpdateEvent(ctx, current.CalendarEventID, p)
	case shared.TopicCalendarDelete:
		// a create that has not run yet is skipped once the booking is cancelled
		if current.CalendarEventID == "" {
			return nil
		}
		return d.sinks.Calendar.DeleteEvent(ctx, current.CalendarEventID)
	default:
		return errs.Wrap(ErrUnknownJobTopic, job.Topic)
	}
}

func withCurrent(p shared.BookingPayload, v *queries.AdminBookingView) shared.BookingPayload {
	p.Name = v.Name
	p.Email = v.Email
	p.Phone = v.Phone
	p.Date = v.Date
	p.TimeSlot = v.TimeSlot
	p.EndsAt = v.EndsAt
	return p
}
