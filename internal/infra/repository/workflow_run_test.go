//go:build unit

package repository_test

import (
	"context"
	"testing"
	"time"

	"forget-bot/internal/infra"
	"forget-bot/internal/infra/repository"
	sqlc "forget-bot/internal/infra/sqlc/generated"
	"forget-bot/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowRunRepository_Cancel(t *testing.T) {
	runID := uuid.New()

	testCases := []struct {
		name     string
		affected int64
		expected bool
	}{
		{name: "success: active run cancelled", affected: 1, expected: true},
		{name: "success: finished or leased run left alone", affected: 0, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pool := newPool(t)
			pool.ExpectExec("UPDATE workflow_runs\\s+SET status = 'cancelled'").WithArgs(runID).
				WillReturnResult(pgxmock.NewResult("UPDATE", tc.affected))
			repo := repository.NewWorkflowRunRepository(sqlc.New(), pool)

			ok, err := repo.Cancel(context.Background(), runID)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, ok)
		})
	}
}

func TestWorkflowRunRepository_CancelIgnoresLeaseInStartPhase(t *testing.T) {
	runID := uuid.New()
	pool := newPool(t)
	pool.ExpectExec(`AND \(locked_until IS NULL OR locked_until <= now\(\) OR phase = 'start'\)`).WithArgs(runID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	repo := repository.NewWorkflowRunRepository(sqlc.New(), pool)

	ok, err := repo.Cancel(context.Background(), runID)

	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, pool.ExpectationsWereMet())
}

func TestWorkflowRunRepository_Status(t *testing.T) {
	runID := uuid.New()

	t.Run("success: status read", func(t *testing.T) {
		pool := newPool(t)
		pool.ExpectQuery("SELECT status").WithArgs(runID).
			WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow("running"))
		repo := repository.NewWorkflowRunRepository(sqlc.New(), pool)

		status, err := repo.Status(context.Background(), runID)

		require.NoError(t, err)
		assert.Equal(t, shared.RunRunning, status)
	})

	t.Run("error: unknown run is NOT_FOUND", func(t *testing.T) {
		pool := newPool(t)
		pool.ExpectQuery("SELECT status").WithArgs(runID).WillReturnRows(pgxmock.NewRows([]string{"status"}))
		repo := repository.NewWorkflowRunRepository(sqlc.New(), pool)

		_, err := repo.Status(context.Background(), runID)

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestWorkflowRunRepository_ClaimDue(t *testing.T) {
	now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	runID := uuid.New()
	pool := newPool(t)
	pool.ExpectQuery("UPDATE workflow_runs\\s+SET status = 'running'").
		WithArgs(
			pgtype.Timestamptz{Time: now.Add(time.Minute), Valid: true},
			pgtype.Timestamptz{Time: now, Valid: true},
			int32(5),
		).
		WillReturnRows(pgxmock.NewRows([]string{"id", "kind", "phase", "state", "attempts"}).
			AddRow(runID, "reminder", "deliver", []byte(`{"userId":"42"}`), int32(2)))
	repo := repository.NewWorkflowRunRepository(sqlc.New(), pool)

	runs, err := repo.ClaimDue(context.Background(), now, now.Add(time.Minute), 5)

	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, "deliver", runs[0].Phase)
	assert.Equal(t, 2, runs[0].Attempt)
	assert.JSONEq(t, `{"userId":"42"}`, string(runs[0].State))
}

func TestWorkflowRunRepository_CompleteAfterLeaseLost(t *testing.T) {
	runID := uuid.New()
	pool := newPool(t)
	pool.ExpectExec("UPDATE workflow_runs\\s+SET status = \\$2").
		WithArgs(runID, "completed", []byte(`{}`), pgtype.Text{}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	repo := repository.NewWorkflowRunRepository(sqlc.New(), pool)

	err := repo.Complete(context.Background(), nil, runID, shared.RunCompleted, []byte(`{}`), "")

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestWorkflowRunRepository_RescheduleUsesGivenTx(t *testing.T) {
	runID := uuid.New()
	wake := time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)
	pool := newPool(t)
	tx := newPool(t)
	tx.ExpectExec("UPDATE workflow_runs\\s+SET phase = \\$2").
		WithArgs(runID, "check", []byte(`{"round":1}`), pgtype.Timestamptz{Time: wake, Valid: true}, int32(0), pgtype.Text{}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	repo := repository.NewWorkflowRunRepository(sqlc.New(), pool)

	err := repo.Reschedule(context.Background(), tx, runID, "check", []byte(`{"round":1}`), wake, 0, "")

	require.NoError(t, err)
	assert.NoError(t, tx.ExpectationsWereMet())
	assert.NoError(t, pool.ExpectationsWereMet())
}
