package pgstore

import (
	"context"
	"log/slog"

	"lashdiary/internal/infra"

	"github.com/jackc/pgx/v5"
)

type FullyBookedRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewFullyBookedRepository(db DBTX, logger *slog.Logger) *FullyBookedRepository {
	return &FullyBookedRepository{db: db, logger: logger}
}

func (r *FullyBookedRepository) Add(ctx context.Context, date string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO fully_booked_dates (booking_date) VALUES ($1::date) ON CONFLICT DO NOTHING`, date)
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to record fully booked date", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *FullyBookedRepository) Remove(ctx context.Context, date string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM fully_booked_dates WHERE booking_date = $1::date`, date); err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to clear fully booked date", err)
	}
	return nil
}

func (r *FullyBookedRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT to_char(booking_date, 'YYYY-MM-DD') FROM fully_booked_dates ORDER BY booking_date`)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list fully booked dates", err)
	}
	dates, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan fully booked dates", err)
	}
	return dates, nil
}
