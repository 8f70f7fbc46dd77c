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

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// TrackReminder writes a registry entry directly, bypassing the substrate.
func TrackReminder(t *testing.T, db DBLike, userID string, runID uuid.UUID, message string, scheduledFor time.Time) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, "INSERT INTO user_reminders (user_id, run_id) VALUES ($1, $2) ON CONFLICT DO NOTHING", userID, runID)
	require.NoError(t, err)
	_, err = db.Exec(ctx, `INSERT INTO reminders (run_id, user_id, message, scheduled_for, created_at, expires_at)
		VALUES ($1, $2, $3, $4, now(), now() + interval '1 day')`,
		runID, userID, message, scheduledFor)
	require.NoError(t, err)
}

func IsTracked(t *testing.T, db DBLike, userID string, runID uuid.UUID) bool {
	t.Helper()

	var exists bool
	err := db.QueryRow(context.Background(),
		"SELECT EXISTS (SELECT 1 FROM user_reminders WHERE user_id = $1 AND run_id = $2)", userID, runID).Scan(&exists)
	require.NoError(t, err)
	return exists
}

// RunStatus returns the empty string for an unknown run.
func RunStatus(t *testing.T, db DBLike, runID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM workflow_runs WHERE id = $1", runID).Scan(&status)
	if err != nil {
		return ""
	}
	return status
}

func CountRuns(t *testing.T, db DBLike, kind, status string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM workflow_runs WHERE kind = $1 AND status = $2", kind, status).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
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
