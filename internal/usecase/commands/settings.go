package commands

import (
	"context"
	"log/slog"
	"slices"

	"lashdiary/internal/domain/schedule"
	"lashdiary/internal/domain/studio"
	"lashdiary/internal/pkg/clock"
	"lashdiary/internal/pkg/errs"
	"lashdiary/internal/usecase/shared"
)

type SettingsCommands interface {
	// Update replaces the studio settings and resyncs the fully-booked registry
	// for the affected dates.
	Update(ctx context.Context, s studio.Settings) (studio.Settings, error)
}

type settingsCommandsImpl struct {
	uow    shared.UnitOfWork
	gen    *schedule.Generator
	clock  clock.Clock
	logger *slog.Logger
}

func NewSettingsCommands(uow shared.UnitOfWork, gen *schedule.Generator, clock clock.Clock, logger *slog.Logger) SettingsCommands {
	return &settingsCommandsImpl{
		uow:    uow,
		gen:    gen,
		clock:  clock,
		logger: logger,
	}
}

func (c *settingsCommandsImpl) Update(ctx context.Context, s studio.Settings) (studio.Settings, error) {
	if err := s.Validate(); err != nil {
		return studio.Settings{}, errs.Mark(err, ErrDomainValidation)
	}

	now := c.clock.Now()
	s.UpdatedAt = now.UTC()
	slices.Sort(s.BlockedDates)
	s.BlockedDates = slices.Compact(s.BlockedDates)

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Settings().Save(ctx, s); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		// slot templates may have changed, so every recorded date is re-evaluated
		dates, err := tx.FullyBooked().List(ctx)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		for _, d := range dates {
			if _, err := shared.SyncFullyBooked(ctx, tx, c.gen, s, d, now); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return studio.Settings{}, err
	}

	c.logger.Info("studio settings updated", "services", len(s.Services), "blocked_dates", len(s.BlockedDates))
	return s, nil
}
