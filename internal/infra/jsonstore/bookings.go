package jsonstore

import (
	"context"

	"lashdiary/internal/domain/booking"
	"lashdiary/internal/domain/schedule"
	"lashdiary/internal/infra"
	"lashdiary/internal/infra/converter"

	"github.com/google/uuid"
)

type bookingRepo struct {
	tx *docTx
}

func (r *bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	doc, err := r.tx.loadBookings()
	if err != nil {
		return nil, err
	}
	for _, rec := range doc.Bookings {
		if rec.ID == id {
			return converter.BookingFromRecord(rec), nil
		}
	}
	return nil, infra.WrapRepoErr(r.tx.store.logger, infra.KindNotFound, "booking not found", nil)
}

func (r *bookingRepo) FindByManageTokenHash(_ context.Context, hash string) (*booking.Booking, error) {
	doc, err := r.tx.loadBookings()
	if err != nil {
		return nil, err
	}
	for _, rec := range doc.Bookings {
		if rec.ManageTokenHash == hash {
			return converter.BookingFromRecord(rec), nil
		}
	}
	return nil, infra.WrapRepoErr(r.tx.store.logger, infra.KindNotFound, "booking not found", nil)
}

func (r *bookingRepo) ListActiveByDate(_ context.Context, date string) ([]*booking.Booking, error) {
	doc, err := r.tx.loadBookings()
	if err != nil {
		return nil, err
	}
	out := []*booking.Booking{}
	for _, rec := range doc.Bookings {
		if rec.Date == date && rec.Status != booking.StatusCancelled.String() {
			out = append(out, converter.BookingFromRecord(rec))
		}
	}
	return out, nil
}

func (r *bookingRepo) ListByRange(_ context.Context, from, to string) ([]*booking.Booking, error) {
	doc, err := r.tx.loadBookings()
	if err != nil {
		return nil, err
	}
	window := schedule.BookingWindow{Start: from, End: to}
	out := []*booking.Booking{}
	for _, rec := range doc.Bookings {
		if window.Contains(rec.Date) {
			out = append(out, converter.BookingFromRecord(rec))
		}
	}
	return out, nil
}

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	doc, err := r.tx.loadBookings()
	if err != nil {
		return err
	}
	rec := converter.BookingToRecord(b)
	for _, existing := range doc.Bookings {
		if existing.ID == rec.ID {
			return infra.WrapRepoErr(r.tx.store.logger, infra.KindDuplicateKey, "booking already exists", nil)
		}
		if holdsSameSlot(existing, rec) {
			return infra.WrapRepoErr(r.tx.store.logger, infra.KindConflict, "time slot already booked", nil)
		}
	}
	if err := r.tx.markDirty(&r.tx.dirtyBookings); err != nil {
		return err
	}
	doc.Bookings = append(doc.Bookings, rec)
	return nil
}

func (r *bookingRepo) Update(_ context.Context, b *booking.Booking) error {
	doc, err := r.tx.loadBookings()
	if err != nil {
		return err
	}
	rec := converter.BookingToRecord(b)
	idx := -1
	for i, existing := range doc.Bookings {
		if existing.ID == rec.ID {
			idx = i
			continue
		}
		if holdsSameSlot(existing, rec) {
			return infra.WrapRepoErr(r.tx.store.logger, infra.KindConflict, "time slot already booked", nil)
		}
	}
	if idx < 0 {
		return infra.WrapRepoErr(r.tx.store.logger, infra.KindNotFound, "booking not found", nil)
	}
	if err := r.tx.markDirty(&r.tx.dirtyBookings); err != nil {
		return err
	}
	doc.Bookings[idx] = rec
	return nil
}

// holdsSameSlot mirrors the partial unique index on active time slots.
func holdsSameSlot(a, b converter.BookingRecord) bool {
	cancelled := booking.StatusCancelled.String()
	if a.Status == cancelled || b.Status == cancelled {
		return false
	}
	return schedule.SameSlot(a.TimeSlot, b.TimeSlot)
}
