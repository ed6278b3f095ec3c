package components

import (
	"context"
	"log/slog"
	"time"

	"lashdiary/internal/infra/notify"
	"lashdiary/internal/pkg/config"
	"lashdiary/internal/worker"

	"go.uber.org/fx"
)

// SinkModule picks the real delivery targets when they are configured and
// falls back to log sinks otherwise.
var SinkModule = fx.Module("sink",
	fx.Provide(
		NewComposer,
		NewMailer,
		NewCalendarSink,
		NewEventPublisher,
		NewSinks,
	),
)

func NewComposer(cfg config.Config, loc *time.Location) *notify.Composer {
	return notify.NewComposer(cfg.Studio.Name, loc)
}

func NewMailer(cfg config.Config, logger *slog.Logger) (notify.Mailer, error) {
	if cfg.Mail.Host == "" {
		logger.Warn("MAIL_HOST not set, emails will be logged only")
		return notify.NewLogMailer(logger), nil
	}
	return notify.NewSMTPMailer(cfg.Mail)
}

func NewCalendarSink(cfg config.Config, loc *time.Location, logger *slog.Logger) (notify.CalendarSink, error) {
	if cfg.Calendar.CalendarID == "" {
		logger.Warn("GOOGLE_CALENDAR_ID not set, calendar sync will be logged only")
		return notify.NewLogCalendar(logger), nil
	}
	return notify.NewGoogleCalendar(
		context.Background(),
		cfg.Calendar.CredentialsFile,
		cfg.Calendar.CalendarID,
		cfg.Studio.Name,
		loc,
	)
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) notify.EventPublisher {
	if cfg.Rabbit.URL == "" {
		return notify.NewLogPublisher(logger)
	}
	p := notify.NewAMQPPublisher(cfg.Rabbit.URL, cfg.Rabbit.Exchange, logger)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return p.Close()
		},
	})
	return p
}

type SinkParams struct {
	fx.In

	Composer  *notify.Composer
	Mailer    notify.Mailer
	Calendar  notify.CalendarSink
	Publisher notify.EventPublisher
}

func NewSinks(p SinkParams) worker.Sinks {
	return worker.Sinks{
		Composer:  p.Composer,
		Mailer:    p.Mailer,
		Calendar:  p.Calendar,
		Publisher: p.Publisher,
	}
}
