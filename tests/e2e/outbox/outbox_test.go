//go:build e2e

package outbox_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"lashdiary/internal/domain/studio"
	"lashdiary/internal/infra/pgstore"
	"lashdiary/internal/pkg/clock"
	"lashdiary/internal/usecase/shared"
	"lashdiary/tests/common/dbtest"
	"lashdiary/tests/e2e"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type outboxSuite struct {
	e2e.SharedSuite
	clock *clock.MockClock
	uow   *pgstore.PostgresUoW
}

func TestOutboxSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(outboxSuite))
}

func (s *outboxSuite) SetupTest() {
	s.SharedSuite.SetupTest()
	s.clock = clock.NewMockClock(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.uow = pgstore.NewPostgresUoW(s.DB, studio.Defaults(72, 120), s.clock, logger)
}

func (s *outboxSuite) claim(lease time.Duration) []shared.Job {
	var jobs []shared.Job
	require.NoError(s.T(), s.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		jobs, err = tx.Outbox().ClaimDue(ctx, s.clock.Now(), lease, 10)
		return err
	}))
	return jobs
}

func (s *outboxSuite) TestClaimDueReclaimsExpiredLease() {
	ctx := context.Background()
	lease := 40 * time.Second

	require.NoError(s.T(), s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Outbox().CreateJob(ctx, shared.JobKindEmail, shared.TopicEmailConfirmation, []byte(`{}`), s.clock.Now())
	}))

	first := s.claim(lease)
	require.Len(s.T(), first, 1)
	assert.Equal(s.T(), 1, dbtest.CountJobsByStatus(s.T(), s.DB, shared.JobStatusProcessing))

	s.Run("リース期間内は再取得しない", func() {
		s.clock.Add(lease - time.Second)
		assert.Empty(s.T(), s.claim(lease))
		assert.Empty(s.T(), s.claim(0))
	})

	s.Run("結果が記録されないままリースが切れると再取得される", func() {
		s.clock.Add(time.Second)
		again := s.claim(lease)
		require.Len(s.T(), again, 1)
		assert.Equal(s.T(), first[0].ID, again[0].ID)
		assert.Equal(s.T(), first[0].Attempts, again[0].Attempts)
		assert.Empty(s.T(), s.claim(lease), "a reclaim renews the lease")

		require.NoError(s.T(), s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Outbox().MarkDone(ctx, again[0].ID, s.clock.Now())
		}))
		s.clock.Add(time.Hour)
		assert.Empty(s.T(), s.claim(lease), "finished jobs are never reclaimed")
	})
}
