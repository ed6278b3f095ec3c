package jsonstore

import (
	"context"
	"time"

	"lashdiary/internal/infra"
	"lashdiary/internal/pkg/ptr"
	"lashdiary/internal/usecase/shared"

	"github.com/google/uuid"
)

type outboxRepo struct {
	tx *docTx
}

func (r *outboxRepo) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	doc, err := r.tx.loadOutbox()
	if err != nil {
		return err
	}
	if err := r.tx.markDirty(&r.tx.dirtyOutbox); err != nil {
		return err
	}
	now := r.tx.store.clock.Now().UTC()
	doc.Jobs = append(doc.Jobs, shared.Job{
		ID:        uuid.New(),
		Kind:      kind,
		Topic:     topic,
		Payload:   payload,
		RunAt:     runAt.UTC(),
		Status:    shared.JobStatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return nil
}

// ClaimDue returns jobs in insertion order.
func (r *outboxRepo) ClaimDue(_ context.Context, now time.Time, lease time.Duration, limit int) ([]shared.Job, error) {
	doc, err := r.tx.loadOutbox()
	if err != nil {
		return nil, err
	}
	claimed := []shared.Job{}
	for i := range doc.Jobs {
		if len(claimed) >= limit {
			break
		}
		job := &doc.Jobs[i]
		if !claimable(job, now, lease) {
			continue
		}
		if err := r.tx.markDirty(&r.tx.dirtyOutbox); err != nil {
			return nil, err
		}
		job.Status = shared.JobStatusProcessing
		job.UpdatedAt = now.UTC()
		claimed = append(claimed, *job)
	}
	return claimed, nil
}

func claimable(job *shared.Job, now time.Time, lease time.Duration) bool {
	switch job.Status {
	case shared.JobStatusQueued:
		return !job.RunAt.After(now)
	case shared.JobStatusProcessing:
		return lease > 0 && !job.UpdatedAt.After(now.Add(-lease))
	default:
		return false
	}
}

func (r *outboxRepo) MarkDone(_ context.Context, id uuid.UUID, now time.Time) error {
	return r.update(id, func(job *shared.Job) {
		job.Status = shared.JobStatusDone
		job.UpdatedAt = now.UTC()
	})
}

func (r *outboxRepo) Retry(_ context.Context, id uuid.UUID, attempts int, runAt time.Time, lastError string) error {
	return r.update(id, func(job *shared.Job) {
		job.Status = shared.JobStatusQueued
		job.Attempts = attempts
		job.RunAt = runAt.UTC()
		job.LastError = ptr.To(lastError)
		job.UpdatedAt = r.tx.store.clock.Now().UTC()
	})
}

func (r *outboxRepo) MarkFailed(_ context.Context, id uuid.UUID, attempts int, lastError string, now time.Time) error {
	return r.update(id, func(job *shared.Job) {
		job.Status = shared.JobStatusFailed
		job.Attempts = attempts
		job.LastError = ptr.To(lastError)
		job.UpdatedAt = now.UTC()
	})
}

func (r *outboxRepo) update(id uuid.UUID, apply func(job *shared.Job)) error {
	doc, err := r.tx.loadOutbox()
	if err != nil {
		return err
	}
	for i := range doc.Jobs {
		if doc.Jobs[i].ID == id {
			if err := r.tx.markDirty(&r.tx.dirtyOutbox); err != nil {
				return err
			}
			apply(&doc.Jobs[i])
			return nil
		}
	}
	return infra.WrapRepoErr(r.tx.store.logger, infra.KindNotFound, "job not found", nil)
}
