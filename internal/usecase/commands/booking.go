package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"lashdiary/internal/domain/booking"
	"lashdiary/internal/domain/catalog"
	"lashdiary/internal/domain/schedule"
	"lashdiary/internal/domain/studio"
	"lashdiary/internal/infra"
	"lashdiary/internal/pkg/clock"
	"lashdiary/internal/pkg/errs"
	"lashdiary/internal/usecase/queries"
	"lashdiary/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound         = errs.New("booking not found")
	ErrInvalidAction           = errs.New("action must be reschedule or transfer")
	ErrInvalidPromo            = errs.New("invalid or expired promo code")
	ErrDateWithoutTimeSlot     = errs.New("newDate requires newTimeSlot")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingInput struct {
	Name              string
	Email             string
	Phone             string
	Date              string
	TimeSlot          string
	ServiceIDs        []string
	PromoCode         string
	Notes             string
	PaymentTrackingID string
}

type CreateBookingResult struct {
	BookingID   uuid.UUID
	ManageToken string
	ManageURL   string
	Booking     *queries.BookingView
}

type ManageInput struct {
	Action      string
	NewDate     string
	NewTimeSlot string
	NewName     string
	NewEmail    string
	NewPhone    string
	Notes       string
}

type RescheduleInput struct {
	NewDate     string
	NewTimeSlot string
	Notes       string
}

type BookingCommands interface {
	Create(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error)
	// Manage applies a client self-service action authorized by the manage token.
	Manage(ctx context.Context, token string, in ManageInput) (*queries.ManageView, error)
	AdminReschedule(ctx context.Context, id uuid.UUID, in RescheduleInput) (*queries.AdminBookingView, error)
	AdminCancel(ctx context.Context, id uuid.UUID, reason string) (*queries.AdminBookingView, error)
	SetManageAccess(ctx context.Context, id uuid.UUID, disabled bool) (*queries.AdminBookingView, error)
	AttachCalendarEvent(ctx context.Context, id uuid.UUID, eventID string) error
}

type bookingCommandsImpl struct {
	uow    shared.UnitOfWork
	gen    *schedule.Generator
	links  shared.Links
	clock  clock.Clock
	logger *slog.Logger
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	gen *schedule.Generator,
	links shared.Links,
	clock clock.Clock,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:    uow,
		gen:    gen,
		links:  links,
		clock:  clock,
		logger: logger,
	}
}

type outboxJob struct {
	kind    string
	topic   string
	payload any
}

func (c *bookingCommandsImpl) Create(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error) {
	contact, err := booking.NewContact(in.Name, in.Email, in.Phone)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	slot, err := schedule.ParseSlot(in.TimeSlot)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	date, err := c.targetDate(in.Date, slot)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	if !slot.After(now) {
		return nil, shared.ErrSlotInPast
	}

	var (
		created *booking.Booking
		token   string
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		settings, err := tx.Settings().Get(ctx)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := settings.CheckBookable(date); err != nil {
			return err
		}

		lines, pricing, err := c.price(settings, in.ServiceIDs, in.PromoCode, now)
		if err != nil {
			return err
		}

		day, err := shared.LoadDaySlots(ctx, tx, c.gen, settings, date)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := day.Check(slot, nil); err != nil {
			return err
		}

		b, tok, err := booking.NewBooking(booking.NewParams{
			Contact:                 contact,
			Date:                    date,
			TimeSlot:                slot,
			Services:                lines,
			DefaultDuration:         settings.DefaultDuration(),
			Pricing:                 pricing,
			CancellationWindowHours: settings.CancellationWindowHours,
			Notes:                   in.Notes,
			PaymentTrackingID:       in.PaymentTrackingID,
		}, now)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Bookings().Create(ctx, b); err != nil {
			return mapRepoErr(err)
		}
		if err := c.syncDates(ctx, tx, settings, now, date); err != nil {
			return err
		}

		payload := shared.NewBookingPayload(b)
		if err := c.enqueue(ctx, tx, now,
			outboxJob{shared.JobKindCalendar, shared.TopicCalendarCreate, payload},
			outboxJob{shared.JobKindEmail, shared.TopicEmailConfirmation, payload.WithManageLink(c.links, tok)},
			outboxJob{shared.JobKindEvent, shared.TopicBookingCreated, payload},
		); err != nil {
			return err
		}

		created, token = b, tok
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("booking created", "booking_id", created.ID(), "date", date, "time_slot", slot)
	return &CreateBookingResult{
		BookingID:   created.ID(),
		ManageToken: token,
		ManageURL:   c.links.ManageURL(token),
		Booking:     queries.ToBookingView(created),
	}, nil
}

func (c *bookingCommandsImpl) Manage(ctx context.Context, token string, in ManageInput) (*queries.ManageView, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrBookingNotFound
	}
	action := booking.Action(strings.ToLower(strings.TrimSpace(in.Action)))
	if !action.IsValid() {
		return nil, ErrInvalidAction
	}

	now := c.clock.Now()
	var updated *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByManageTokenHash(ctx, booking.HashManageToken(token))
		if err != nil {
			return mapRepoErr(err)
		}

		if action == booking.ActionTransfer {
			err = c.transfer(ctx, tx, b, token, in, now)
		} else {
			err = c.reschedule(ctx, tx, b, booking.ActorClient, RescheduleInput{
				NewDate:     in.NewDate,
				NewTimeSlot: in.NewTimeSlot,
				Notes:       in.Notes,
			}, now)
		}
		if err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("booking managed by client", "booking_id", updated.ID(), "action", action)
	return queries.ToManageView(updated, now), nil
}

func (c *bookingCommandsImpl) AdminReschedule(ctx context.Context, id uuid.UUID, in RescheduleInput) (*queries.AdminBookingView, error) {
	now := c.clock.Now()
	b, err := c.mutateByID(ctx, id, func(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
		return c.reschedule(ctx, tx, b, booking.ActorAdmin, in, now)
	})
	if err != nil {
		return nil, err
	}
	c.logger.Info("booking rescheduled by admin", "booking_id", id, "time_slot", b.TimeSlot())
	return queries.ToAdminBookingView(b), nil
}

func (c *bookingCommandsImpl) AdminCancel(ctx context.Context, id uuid.UUID, reason string) (*queries.AdminBookingView, error) {
	now := c.clock.Now()
	b, err := c.mutateByID(ctx, id, func(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
		if err := b.Cancel(now, booking.ActorAdmin, reason); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return mapRepoErr(err)
		}

		settings, err := tx.Settings().Get(ctx)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := c.syncDates(ctx, tx, settings, now, b.Date()); err != nil {
			return err
		}

		payload := shared.NewBookingPayload(b)
		payload.Reason = b.CancelReason()
		return c.enqueue(ctx, tx, now,
			outboxJob{shared.JobKindCalendar, shared.TopicCalendarDelete, payload},
			outboxJob{shared.JobKindEmail, shared.TopicEmailCancellation, payload},
			outboxJob{shared.JobKindEvent, shared.TopicBookingCancelled, payload},
		)
	})
	if err != nil {
		return nil, err
	}
	c.logger.Info("booking cancelled by admin", "booking_id", id)
	return queries.ToAdminBookingView(b), nil
}

func (c *bookingCommandsImpl) SetManageAccess(ctx context.Context, id uuid.UUID, disabled bool) (*queries.AdminBookingView, error) {
	now := c.clock.Now()
	b, err := c.mutateByID(ctx, id, func(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
		b.SetClientManageDisabled(disabled, now)
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return mapRepoErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return queries.ToAdminBookingView(b), nil
}

func (c *bookingCommandsImpl) AttachCalendarEvent(ctx context.Context, id uuid.UUID, eventID string) error {
	now := c.clock.Now()
	_, err := c.mutateByID(ctx, id, func(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
		b.AttachCalendarEvent(eventID, now)
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return mapRepoErr(err)
		}
		return nil
	})
	return err
}

func (c *bookingCommandsImpl) mutateByID(
	ctx context.Context,
	id uuid.UUID,
	fn func(ctx context.Context, tx shared.Tx, b *booking.Booking) error,
) (*booking.Booking, error) {
	var updated *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, id)
		if err != nil {
			return mapRepoErr(err)
		}
		if err := fn(ctx, tx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *bookingCommandsImpl) reschedule(
	ctx context.Context,
	tx shared.Tx,
	b *booking.Booking,
	actor booking.Actor,
	in RescheduleInput,
	now time.Time,
) error {
	if err := b.CheckManageable(now, actor); err != nil {
		return err
	}
	slot, err := schedule.ParseSlot(in.NewTimeSlot)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}
	if schedule.SameSlot(slot, b.TimeSlot()) {
		return booking.ErrSameSlot
	}
	date, err := c.targetDate(in.NewDate, slot)
	if err != nil {
		return err
	}

	settings, err := tx.Settings().Get(ctx)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := c.checkTarget(ctx, tx, settings, b, actor, date, slot, now); err != nil {
		return err
	}

	fromDate, from := b.Date(), b.TimeSlot()
	if err := b.Reschedule(now, actor, date, slot, in.Notes); err != nil {
		return err
	}
	if err := tx.Bookings().Update(ctx, b); err != nil {
		return mapRepoErr(err)
	}
	if err := c.syncDates(ctx, tx, settings, now, fromDate, date); err != nil {
		return err
	}

	payload := shared.NewBookingPayload(b)
	payload.PreviousSlot = &from
	// no email on a plain reschedule; the holder already has the link
	return c.enqueue(ctx, tx, now,
		outboxJob{shared.JobKindCalendar, shared.TopicCalendarUpdate, payload},
		outboxJob{shared.JobKindEvent, shared.TopicBookingRescheduled, payload},
	)
}

func (c *bookingCommandsImpl) transfer(
	ctx context.Context,
	tx shared.Tx,
	b *booking.Booking,
	token string,
	in ManageInput,
	now time.Time,
) error {
	if err := b.CheckManageable(now, booking.ActorClient); err != nil {
		return err
	}
	to, err := booking.NewTransferContact(in.NewName, in.NewEmail, in.NewPhone)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}
	if strings.TrimSpace(in.NewDate) != "" && strings.TrimSpace(in.NewTimeSlot) == "" {
		return errs.Mark(ErrDateWithoutTimeSlot, ErrDomainValidation)
	}

	previous := b.Contact()
	fromDate, from := b.Date(), b.TimeSlot()

	var (
		settings studio.Settings
		target   *time.Time
		date     string
	)
	if strings.TrimSpace(in.NewTimeSlot) != "" {
		slot, err := schedule.ParseSlot(in.NewTimeSlot)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if !schedule.SameSlot(slot, from) {
			if date, err = c.targetDate(in.NewDate, slot); err != nil {
				return err
			}
			if settings, err = tx.Settings().Get(ctx); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if err := c.checkTarget(ctx, tx, settings, b, booking.ActorClient, date, slot, now); err != nil {
				return err
			}
			target = &slot
		}
	}

	if err := b.Transfer(now, booking.ActorClient, to, date, target, in.Notes); err != nil {
		return err
	}
	if err := tx.Bookings().Update(ctx, b); err != nil {
		return mapRepoErr(err)
	}

	payload := shared.NewBookingPayload(b)
	payload.PreviousName = previous.Name()
	payload.PreviousEmail = previous.Email()
	if target != nil {
		payload.PreviousSlot = &from
		if err := c.syncDates(ctx, tx, settings, now, fromDate, date); err != nil {
			return err
		}
	}

	return c.enqueue(ctx, tx, now,
		outboxJob{shared.JobKindCalendar, shared.TopicCalendarUpdate, payload},
		outboxJob{shared.JobKindEmail, shared.TopicEmailTransfer, payload.WithManageLink(c.links, token)},
		outboxJob{shared.JobKindEvent, shared.TopicBookingTransferred, payload},
	)
}

// checkTarget validates a new slot for an existing booking. Admins may place
// bookings outside the public booking window.
func (c *bookingCommandsImpl) checkTarget(
	ctx context.Context,
	tx shared.Tx,
	settings studio.Settings,
	b *booking.Booking,
	actor booking.Actor,
	date string,
	slot time.Time,
	now time.Time,
) error {
	if !slot.After(now) {
		return shared.ErrSlotInPast
	}
	if actor == booking.ActorClient {
		if err := settings.CheckBookable(date); err != nil {
			return err
		}
	}

	day, err := shared.LoadDaySlots(ctx, tx, c.gen, settings, date)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	self := b.ID()
	return day.Check(slot, &self)
}

// targetDate derives the studio-local date of slot. A caller-supplied date
// must agree with it.
func (c *bookingCommandsImpl) targetDate(date string, slot time.Time) (string, error) {
	actual := c.gen.DateOf(slot)
	if strings.TrimSpace(date) == "" {
		return actual, nil
	}
	day, err := c.gen.ParseDate(date)
	if err != nil {
		return "", errs.Mark(err, ErrDomainValidation)
	}
	if day.Format(schedule.DateLayout) != actual {
		return "", shared.ErrSlotNotOffered
	}
	return actual, nil
}

func (c *bookingCommandsImpl) price(
	settings studio.Settings,
	serviceIDs []string,
	promoCode string,
	now time.Time,
) ([]booking.ServiceLine, booking.Pricing, error) {
	services, err := settings.Services.Lookup(serviceIDs)
	if err != nil {
		return nil, booking.Pricing{}, errs.Mark(err, ErrDomainValidation)
	}
	lines := booking.LinesFromCatalog(services)

	var promo *catalog.Promo
	if strings.TrimSpace(promoCode) != "" {
		p, err := settings.Promos.Find(promoCode)
		if err != nil {
			return nil, booking.Pricing{}, errs.Mark(err, ErrInvalidPromo)
		}
		if err := p.ValidateUsage(now); err != nil {
			return nil, booking.Pricing{}, errs.Mark(err, ErrInvalidPromo)
		}
		promo = &p
	}

	return lines, booking.NewPricing(lines, promo, settings.DepositPercent), nil
}

func (c *bookingCommandsImpl) syncDates(ctx context.Context, tx shared.Tx, settings studio.Settings, now time.Time, dates ...string) error {
	seen := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		full, err := shared.SyncFullyBooked(ctx, tx, c.gen, settings, d, now)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if full {
			c.logger.Info("date is fully booked", "date", d)
		}
	}
	return nil
}

func (c *bookingCommandsImpl) enqueue(ctx context.Context, tx shared.Tx, now time.Time, jobs ...outboxJob) error {
	for _, j := range jobs {
		if err := shared.Enqueue(ctx, tx, j.kind, j.topic, j.payload, now); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	return nil
}

func mapRepoErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrBookingNotFound)
	case infra.IsKind(err, infra.KindConflict), infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, shared.ErrSlotUnavailable)
	default:
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
}
