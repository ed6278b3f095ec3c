package pgstore

import (
	"context"
	"encoding/json"
	"log/slog"

	"lashdiary/internal/domain/booking"
	"lashdiary/internal/infra"
	"lashdiary/internal/infra/converter"
	"lashdiary/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const activeSlotConstraint = "bookings_active_time_slot_key"

const bookingColumns = `
	id, manage_token_hash, name, email, phone, to_char(booking_date, 'YYYY-MM-DD'), time_slot,
	duration_min, services, pricing, status, cancellation_window_hours, client_manage_disabled,
	last_client_manage_action_at, reschedule_history, notes, calendar_event_id, payment_tracking_id,
	cancelled_at, cancel_reason, created_at, updated_at`

const insertBookingSQL = `
INSERT INTO bookings (
	id, manage_token_hash, name, email, phone, booking_date, time_slot,
	duration_min, services, pricing, status, cancellation_window_hours, client_manage_disabled,
	last_client_manage_action_at, reschedule_history, notes, calendar_event_id, payment_tracking_id,
	cancelled_at, cancel_reason, created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6::date, $7,
	$8, $9, $10, $11, $12, $13,
	$14, $15, $16, $17, $18,
	$19, $20, $21, $22
)`

const updateBookingSQL = `
UPDATE bookings SET
	manage_token_hash = $2, name = $3, email = $4, phone = $5, booking_date = $6::date, time_slot = $7,
	duration_min = $8, services = $9, pricing = $10, status = $11, cancellation_window_hours = $12,
	client_manage_disabled = $13, last_client_manage_action_at = $14, reschedule_history = $15,
	notes = $16, calendar_event_id = $17, payment_tracking_id = $18,
	cancelled_at = $19, cancel_reason = $20, created_at = $21, updated_at = $22
WHERE id = $1`

type BookingRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewBookingRepository(db DBTX, logger *slog.Logger) *BookingRepository {
	return &BookingRepository{db: db, logger: logger}
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	return r.scanOne(row)
}

func (r *BookingRepository) FindByManageTokenHash(ctx context.Context, hash string) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE manage_token_hash = $1`, hash)
	return r.scanOne(row)
}

func (r *BookingRepository) ListActiveByDate(ctx context.Context, date string) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+`
		FROM bookings
		WHERE booking_date = $1::date AND status <> 'cancelled'
		ORDER BY time_slot`, date)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list bookings by date", err)
	}
	return r.scanAll(rows)
}

func (r *BookingRepository) ListByRange(ctx context.Context, from, to string) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+`
		FROM bookings
		WHERE ($1::text IS NULL OR booking_date >= $1::date)
		  AND ($2::text IS NULL OR booking_date <= $2::date)
		ORDER BY time_slot, id`, pgconv.TextOrNull(from), pgconv.TextOrNull(to))
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list bookings", err)
	}
	return r.scanAll(rows)
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	args, err := bookingArgs(converter.BookingToRecord(b))
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode booking", err)
	}
	if _, err := r.db.Exec(ctx, insertBookingSQL, args...); err != nil {
		return r.writeErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	args, err := bookingArgs(converter.BookingToRecord(b))
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode booking", err)
	}
	tag, err := r.db.Exec(ctx, updateBookingSQL, args...)
	if err != nil {
		return r.writeErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", nil)
	}
	return nil
}

func (r *BookingRepository) writeErr(msg string, err error) error {
	if constraint, ok := pgconv.UniqueViolation(err); ok {
		if constraint == activeSlotConstraint {
			return infra.WrapRepoErr(r.logger, infra.KindConflict, "time slot already booked", err)
		}
		return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, msg, err)
	}
	return infra.WrapRepoErr(r.logger, infra.KindDBFailure, msg, err)
}

func bookingArgs(rec converter.BookingRecord) ([]any, error) {
	services, err := json.Marshal(rec.Services)
	if err != nil {
		return nil, err
	}
	pricing, err := json.Marshal(rec.Pricing)
	if err != nil {
		return nil, err
	}
	history, err := json.Marshal(rec.RescheduleHistory)
	if err != nil {
		return nil, err
	}
	return []any{
		rec.ID,
		rec.ManageTokenHash,
		rec.Name,
		rec.Email,
		rec.Phone,
		rec.Date,
		pgconv.TimeToPgtype(rec.TimeSlot),
		rec.DurationMin,
		services,
		pricing,
		rec.Status,
		rec.CancellationWindowHours,
		rec.ClientManageDisabled,
		pgconv.TimePtrToPgtype(rec.LastClientManageActionAt),
		history,
		pgconv.TextOrNull(rec.Notes),
		pgconv.TextOrNull(rec.CalendarEventID),
		pgconv.TextOrNull(rec.PaymentTrackingID),
		pgconv.TimePtrToPgtype(rec.CancelledAt),
		pgconv.TextOrNull(rec.CancelReason),
		pgconv.TimeToPgtype(rec.CreatedAt),
		pgconv.TimeToPgtype(rec.UpdatedAt),
	}, nil
}

func (r *BookingRepository) scanOne(row pgx.Row) (*booking.Booking, error) {
	b, err := scanBooking(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to read booking", err)
	}
	return b, nil
}

func (r *BookingRepository) scanAll(rows pgx.Rows) ([]*booking.Booking, error) {
	defer rows.Close()

	out := []*booking.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan booking", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate bookings", err)
	}
	return out, nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		rec                        converter.BookingRecord
		services, pricing, history []byte
		lastAction, cancelledAt    pgtype.Timestamptz
		timeSlot, createdAt, updAt pgtype.Timestamptz
		notes, eventID, paymentID  pgtype.Text
		cancelReason               pgtype.Text
	)
	err := row.Scan(
		&rec.ID, &rec.ManageTokenHash, &rec.Name, &rec.Email, &rec.Phone, &rec.Date, &timeSlot,
		&rec.DurationMin, &services, &pricing, &rec.Status, &rec.CancellationWindowHours, &rec.ClientManageDisabled,
		&lastAction, &history, &notes, &eventID, &paymentID,
		&cancelledAt, &cancelReason, &createdAt, &updAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(services, &rec.Services); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(pricing, &rec.Pricing); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(history, &rec.RescheduleHistory); err != nil {
		return nil, err
	}

	rec.TimeSlot = timeSlot.Time.UTC()
	rec.CreatedAt = createdAt.Time.UTC()
	rec.UpdatedAt = updAt.Time.UTC()
	rec.LastClientManageActionAt = pgconv.TimePtrFromPgtype(lastAction)
	rec.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	rec.Notes = pgconv.StringFromPgtype(notes)
	rec.CalendarEventID = pgconv.StringFromPgtype(eventID)
	rec.PaymentTrackingID = pgconv.StringFromPgtype(paymentID)
	rec.CancelReason = pgconv.StringFromPgtype(cancelReason)
	return converter.BookingFromRecord(rec), nil
}
