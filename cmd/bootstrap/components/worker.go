package components

import (
	"context"
	"log/slog"

	"lashdiary/internal/pkg/clock"
	"lashdiary/internal/pkg/config"
	"lashdiary/internal/usecase/commands"
	"lashdiary/internal/usecase/queries"
	"lashdiary/internal/usecase/shared"
	"lashdiary/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(NewDispatcher),
	fx.Invoke(startDispatcher),
)

type DispatcherParams struct {
	fx.In

	UoW      shared.UnitOfWork
	Sinks    worker.Sinks
	Bookings queries.BookingQueries
	Commands commands.BookingCommands
	Clock    clock.Clock
	Config   config.Config
	Logger   *slog.Logger
}

func NewDispatcher(p DispatcherParams) *worker.Dispatcher {
	return worker.NewDispatcher(p.UoW, p.Sinks, p.Bookings, p.Commands, p.Clock, p.Config.Worker, p.Logger)
}

func startDispatcher(lc fx.Lifecycle, d *worker.Dispatcher, cfg config.Config, logger *slog.Logger) {
	if !cfg.Worker.Enabled {
		logger.Warn("outbox worker disabled, queued side effects will not be delivered")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			d.Start()
			return nil
		},
		OnStop: d.Stop,
	})
}
