package queries

import (
	"context"
	"sort"
	"strings"

	"lashdiary/internal/domain/booking"
	"lashdiary/internal/domain/schedule"
	"lashdiary/internal/infra"
	"lashdiary/internal/pkg/clock"
	"lashdiary/internal/pkg/errs"
	"lashdiary/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrInvalidRange    = errs.New("invalid date range")
)

type BookingPage struct {
	Items []*AdminBookingView `json:"items"`
	Next  *Cursor             `json:"next,omitempty"`
}

type ListFilter struct {
	From  string
	To    string
	After *Cursor
	Limit int
}

type BookingQueries interface {
	GetByManageToken(ctx context.Context, token string) (*ManageView, error)
	GetForAdmin(ctx context.Context, id uuid.UUID) (*AdminBookingView, error)
	List(ctx context.Context, f ListFilter) (*BookingPage, error)
}

type bookingQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookingQueries(uow shared.UnitOfWork, clock clock.Clock) BookingQueries {
	return &bookingQueriesImpl{uow: uow, clock: clock}
}

func (q *bookingQueriesImpl) GetByManageToken(ctx context.Context, token string) (*ManageView, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrBookingNotFound
	}
	var b *booking.Booking
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		b, err = tx.Bookings().FindByManageTokenHash(ctx, booking.HashManageToken(token))
		return err
	})
	if err != nil {
		return nil, notFoundOr(err)
	}
	return ToManageView(b, q.clock.Now()), nil
}

func (q *bookingQueriesImpl) GetForAdmin(ctx context.Context, id uuid.UUID) (*AdminBookingView, error) {
	var b *booking.Booking
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		b, err = tx.Bookings().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, notFoundOr(err)
	}
	return ToAdminBookingView(b), nil
}

// List pages through bookings ordered by time slot, then id.
func (q *bookingQueriesImpl) List(ctx context.Context, f ListFilter) (*BookingPage, error) {
	if err := (schedule.BookingWindow{Start: f.From, End: f.To}).Validate(); err != nil {
		return nil, errs.Mark(err, ErrInvalidRange)
	}
	limit := ValidateLimit(f.Limit)

	var rows []*booking.Booking
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		rows, err = tx.Bookings().ListByRange(ctx, f.From, f.To)
		return err
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].TimeSlot().Equal(rows[j].TimeSlot()) {
			return rows[i].TimeSlot().Before(rows[j].TimeSlot())
		}
		return rows[i].ID().String() < rows[j].ID().String()
	})

	if f.After != nil && f.After.After != "" {
		at, id, err := DecodeAfterCursor(f.After.After)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidRange)
		}
		idx := sort.Search(len(rows), func(i int) bool {
			ts := rows[i].TimeSlot()
			return ts.After(at) || (ts.Equal(at) && rows[i].ID().String() > id.String())
		})
		rows = rows[idx:]
	}

	page := &BookingPage{Items: make([]*AdminBookingView, 0, min(limit, len(rows)))}
	for i, b := range rows {
		if i == limit {
			last := rows[i-1]
			page.Next = &Cursor{After: EncodeAfterCursor(last.TimeSlot(), last.ID())}
			break
		}
		page.Items = append(page.Items, ToAdminBookingView(b))
	}
	return page, nil
}

func notFoundOr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, ErrBookingNotFound)
	}
	return err
}
