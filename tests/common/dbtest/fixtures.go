//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CountJobs returns the number of outbox jobs queued under topic.
func CountJobs(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT COUNT(*) FROM outbox_jobs WHERE topic = $1", topic).Scan(&n)
	require.NoError(t, err)
	return n
}

// CountJobsByStatus returns the number of outbox jobs in status.
func CountJobsByStatus(t *testing.T, db DBLike, status string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT COUNT(*) FROM outbox_jobs WHERE status = $1", status).Scan(&n)
	require.NoError(t, err)
	return n
}

func IsFullyBooked(t *testing.T, db DBLike, date string) bool {
	t.Helper()

	var exists bool
	err := db.QueryRow(context.Background(),
		"SELECT EXISTS (SELECT 1 FROM fully_booked_dates WHERE booking_date = $1::date)", date).Scan(&exists)
	require.NoError(t, err)
	return exists
}

// ManageTokenHash reads the stored hash so tests can assert the raw token
// never reaches the database.
func ManageTokenHash(t *testing.T, db DBLike, bookingID string) string {
	t.Helper()

	var hash string
	err := db.QueryRow(context.Background(), "SELECT manage_token_hash FROM bookings WHERE id = $1", bookingID).Scan(&hash)
	require.NoError(t, err)
	return hash
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables; settings fall back to the configured defaults
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
