package pgstore

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"lashdiary/internal/infra"
	"lashdiary/internal/pkg/clock"
	"lashdiary/internal/pkg/pgconv"
	"lashdiary/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type OutboxRepository struct {
	db     DBTX
	clock  clock.Clock
	logger *slog.Logger
}

func NewOutboxRepository(db DBTX, clock clock.Clock, logger *slog.Logger) *OutboxRepository {
	return &OutboxRepository{db: db, clock: clock, logger: logger}
}

func (r *OutboxRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	now := r.clock.Now().UTC()
	_, err := r.db.Exec(ctx, `
		INSERT INTO outbox_jobs (id, kind, topic, payload, run_at, attempts, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $7)`,
		uuid.New(), kind, topic, payload, pgconv.TimeToPgtype(runAt), shared.JobStatusQueued, pgconv.TimeToPgtype(now))
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to create outbox job", err)
	}
	return nil
}

// ClaimDue skips rows locked by another dispatcher.
func (r *OutboxRepository) ClaimDue(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]shared.Job, error) {
	var staleBefore pgtype.Timestamptz
	if lease > 0 {
		staleBefore = pgconv.TimeToPgtype(now.Add(-lease))
	}
	rows, err := r.db.Query(ctx, `
		UPDATE outbox_jobs SET status = 'processing', updated_at = $1
		WHERE id IN (
			SELECT id FROM outbox_jobs
			WHERE (status = 'queued' AND run_at <= $1)
			   OR (status = 'processing' AND $3::timestamptz IS NOT NULL AND updated_at <= $3)
			ORDER BY run_at, created_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, kind, topic, payload, run_at, attempts, status, last_error, created_at, updated_at`,
		pgconv.TimeToPgtype(now), limit, staleBefore)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to claim outbox jobs", err)
	}

	jobs, err := pgx.CollectRows(rows, scanJob)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan outbox jobs", err)
	}
	// RETURNING does not preserve the subquery order
	sort.SliceStable(jobs, func(i, j int) bool {
		if !jobs[i].RunAt.Equal(jobs[j].RunAt) {
			return jobs[i].RunAt.Before(jobs[j].RunAt)
		}
		return jobs[i].CreatedAt.Before(jobs[j].CreatedAt)
	})
	return jobs, nil
}

func (r *OutboxRepository) MarkDone(ctx context.Context, id uuid.UUID, now time.Time) error {
	return r.exec(ctx, "failed to complete outbox job",
		`UPDATE outbox_jobs SET status = 'done', updated_at = $2 WHERE id = $1`,
		id, pgconv.TimeToPgtype(now))
}

func (r *OutboxRepository) Retry(ctx context.Context, id uuid.UUID, attempts int, runAt time.Time, lastError string) error {
	return r.exec(ctx, "failed to reschedule outbox job",
		`UPDATE outbox_jobs SET status = 'queued', attempts = $2, run_at = $3, last_error = $4, updated_at = $5 WHERE id = $1`,
		id, attempts, pgconv.TimeToPgtype(runAt), lastError, pgconv.TimeToPgtype(r.clock.Now()))
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastError string, now time.Time) error {
	return r.exec(ctx, "failed to fail outbox job",
		`UPDATE outbox_jobs SET status = 'failed', attempts = $2, last_error = $3, updated_at = $4 WHERE id = $1`,
		id, attempts, lastError, pgconv.TimeToPgtype(now))
}

func (r *OutboxRepository) exec(ctx context.Context, msg, sql string, args ...any) error {
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, msg, err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "outbox job not found", nil)
	}
	return nil
}

func scanJob(row pgx.CollectableRow) (shared.Job, error) {
	var (
		job                     shared.Job
		runAt, created, updated pgtype.Timestamptz
		lastError               pgtype.Text
	)
	err := row.Scan(&job.ID, &job.Kind, &job.Topic, &job.Payload, &runAt, &job.Attempts,
		&job.Status, &lastError, &created, &updated)
	if err != nil {
		return shared.Job{}, err
	}
	job.RunAt = runAt.Time.UTC()
	job.CreatedAt = created.Time.UTC()
	job.UpdatedAt = updated.Time.UTC()
	job.LastError = pgconv.StringPtrFromPgtype(lastError)
	return job, nil
}
