package queries

import (
	"context"
	"log/slog"

	"lashdiary/internal/domain/schedule"
	"lashdiary/internal/pkg/clock"
	"lashdiary/internal/pkg/errs"
	"lashdiary/internal/usecase/shared"
)

var ErrAvailabilityRead = errs.New("failed to read availability")

type AvailabilityQueries interface {
	// AvailableSlots lists the open slots of a studio-local date. Read
	// failures are returned as errors and never reported as free slots.
	AvailableSlots(ctx context.Context, date string) (*AvailabilityView, error)
	FullyBookedDates(ctx context.Context) ([]string, error)
}

type availabilityQueriesImpl struct {
	uow    shared.UnitOfWork
	gen    *schedule.Generator
	clock  clock.Clock
	logger *slog.Logger
}

func NewAvailabilityQueries(uow shared.UnitOfWork, gen *schedule.Generator, clock clock.Clock, logger *slog.Logger) AvailabilityQueries {
	return &availabilityQueriesImpl{
		uow:    uow,
		gen:    gen,
		clock:  clock,
		logger: logger,
	}
}

func (q *availabilityQueriesImpl) AvailableSlots(ctx context.Context, date string) (*AvailabilityView, error) {
	day, err := q.gen.ParseDate(date)
	if err != nil {
		return nil, err
	}
	date = day.Format(schedule.DateLayout)
	now := q.clock.Now()

	var view *AvailabilityView
	// runs as a write unit so the fully-booked registry follows what clients see
	err = q.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		settings, err := tx.Settings().Get(ctx)
		if err != nil {
			return err
		}
		slots, err := shared.LoadDaySlots(ctx, tx, q.gen, settings, date)
		if err != nil {
			return err
		}
		open := slots.Open(nil)

		full, err := shared.SyncFullyBooked(ctx, tx, q.gen, settings, date, now)
		if err != nil {
			return err
		}

		out := make([]SlotView, 0, len(open))
		for _, s := range open {
			if !s.Start.After(now) {
				continue
			}
			out = append(out, SlotView{TimeSlot: s.Start, Label: s.Label})
		}
		view = &AvailabilityView{
			Date:        date,
			Slots:       out,
			FullyBooked: full,
		}
		return nil
	})
	if err != nil {
		q.logger.Error("availability read failed", "date", date, "error", err.Error())
		return nil, errs.Mark(err, ErrAvailabilityRead)
	}
	return view, nil
}

func (q *availabilityQueriesImpl) FullyBookedDates(ctx context.Context) ([]string, error) {
	var dates []string
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		dates, err = tx.FullyBooked().List(ctx)
		return err
	})
	if err != nil {
		return nil, errs.Mark(err, ErrAvailabilityRead)
	}
	if dates == nil {
		dates = []string{}
	}
	return dates, nil
}
