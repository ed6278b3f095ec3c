package shared

import (
	"context"
	"time"

	"lashdiary/internal/domain/booking"
	"lashdiary/internal/domain/studio"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: serialized read-modify-write with retry on transient conflicts
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: consistent snapshot for multi-collection reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Settings() SettingsRepository
	FullyBooked() FullyBookedRepository
	Outbox() OutboxRepository
}

type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindByManageTokenHash(ctx context.Context, hash string) (*booking.Booking, error)
	// ListActiveByDate returns non-cancelled bookings on a studio-local date.
	ListActiveByDate(ctx context.Context, date string) ([]*booking.Booking, error)
	// ListByRange returns bookings with from <= date <= to; empty bounds are open.
	ListByRange(ctx context.Context, from, to string) ([]*booking.Booking, error)
	Create(ctx context.Context, b *booking.Booking) error
	Update(ctx context.Context, b *booking.Booking) error
}

type SettingsRepository interface {
	Get(ctx context.Context) (studio.Settings, error)
	Save(ctx context.Context, s studio.Settings) error
}

type FullyBookedRepository interface {
	// Add reports whether the date was newly recorded.
	Add(ctx context.Context, date string) (bool, error)
	Remove(ctx context.Context, date string) error
	List(ctx context.Context) ([]string, error)
}

type OutboxRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
	// ClaimDue moves up to limit queued jobs with run_at <= now to processing.
	// A processing job untouched for longer than lease is claimed again; its
	// previous claimer is presumed dead. A lease <= 0 never reclaims.
	ClaimDue(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]Job, error)
	MarkDone(ctx context.Context, id uuid.UUID, now time.Time) error
	Retry(ctx context.Context, id uuid.UUID, attempts int, runAt time.Time, lastError string) error
	MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastError string, now time.Time) error
}
