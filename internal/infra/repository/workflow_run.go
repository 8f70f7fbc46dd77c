package repository

import (
	"context"
	"time"

	"forget-bot/internal/infra"
	sqlc "forget-bot/internal/infra/sqlc/generated"
	"forget-bot/internal/pkg/errs"
	"forget-bot/internal/pkg/pgconv"
	"forget-bot/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type WorkflowRunQueries interface {
	CreateWorkflowRun(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateWorkflowRunParams) error
	GetWorkflowRunStatus(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (string, error)
	CancelWorkflowRun(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
	ClaimDueWorkflowRuns(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimDueWorkflowRunsParams) ([]sqlc.ClaimDueWorkflowRunsRow, error)
	ScheduleWorkflowRun(ctx context.Context, db sqlc.DBTX, arg sqlc.ScheduleWorkflowRunParams) (int64, error)
	FinishWorkflowRun(ctx context.Context, db sqlc.DBTX, arg sqlc.FinishWorkflowRunParams) (int64, error)
	DeleteFinishedWorkflowRuns(ctx context.Context, db sqlc.DBTX, updatedAt pgtype.Timestamptz) (int64, error)
}

var errLeaseLost = errs.New("workflow run is no longer running")

type WorkflowRunRepository struct {
	queries WorkflowRunQueries
	db      sqlc.DBTX
}

func NewWorkflowRunRepository(queries WorkflowRunQueries, db sqlc.DBTX) *WorkflowRunRepository {
	return &WorkflowRunRepository{
		queries: queries,
		db:      db,
	}
}

var _ shared.RunStore = (*WorkflowRunRepository)(nil)

func (r *WorkflowRunRepository) Create(ctx context.Context, tx sqlc.DBTX, run shared.NewRun) error {
	arg := sqlc.CreateWorkflowRunParams{
		ID:     run.ID,
		Kind:   run.Kind,
		Phase:  run.Phase,
		State:  run.State,
		WakeAt: pgconv.TimeToPgtype(run.WakeAt),
	}
	if err := r.queries.CreateWorkflowRun(ctx, r.conn(tx), arg); err != nil {
		return infra.WrapRepoErr("failed to create workflow run", err)
	}
	return nil
}

func (r *WorkflowRunRepository) Status(ctx context.Context, runID uuid.UUID) (shared.RunStatus, error) {
	status, err := r.queries.GetWorkflowRunStatus(ctx, r.db, runID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return "", infra.WrapRepoErr("workflow run not found", err, infra.KindNotFound)
		}
		return "", infra.WrapRepoErr("failed to get workflow run status", err)
	}
	return shared.RunStatus(status), nil
}

func (r *WorkflowRunRepository) Cancel(ctx context.Context, runID uuid.UUID) (bool, error) {
	n, err := r.queries.CancelWorkflowRun(ctx, r.db, runID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to cancel workflow run", err)
	}
	return n == 1, nil
}

func (r *WorkflowRunRepository) ClaimDue(ctx context.Context, now, lockedUntil time.Time, limit int) ([]shared.Run, error) {
	arg := sqlc.ClaimDueWorkflowRunsParams{
		LockedUntil: pgconv.TimeToPgtype(lockedUntil),
		Now:         pgconv.TimeToPgtype(now),
		BatchSize:   int32(limit), // #nosec G115 -- bounded by config
	}
	rows, err := r.queries.ClaimDueWorkflowRuns(ctx, r.db, arg)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim due workflow runs", err)
	}

	runs := make([]shared.Run, 0, len(rows))
	for _, row := range rows {
		runs = append(runs, shared.Run{
			ID:      row.ID,
			Kind:    row.Kind,
			Phase:   row.Phase,
			State:   row.State,
			Attempt: int(row.Attempts),
		})
	}
	return runs, nil
}

func (r *WorkflowRunRepository) Reschedule(ctx context.Context, tx sqlc.DBTX, runID uuid.UUID, phase string, state []byte, wakeAt time.Time, attempts int, lastErr string) error {
	arg := sqlc.ScheduleWorkflowRunParams{
		ID:        runID,
		Phase:     phase,
		State:     state,
		WakeAt:    pgconv.TimeToPgtype(wakeAt),
		Attempts:  int32(attempts), // #nosec G115 -- bounded by max attempts
		LastError: pgconv.OptionalText(lastErr),
	}
	n, err := r.queries.ScheduleWorkflowRun(ctx, r.conn(tx), arg)
	if err != nil {
		return infra.WrapRepoErr("failed to reschedule workflow run", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("workflow run not running", errLeaseLost, infra.KindNotFound)
	}
	return nil
}

func (r *WorkflowRunRepository) Complete(ctx context.Context, tx sqlc.DBTX, runID uuid.UUID, status shared.RunStatus, result []byte, lastErr string) error {
	arg := sqlc.FinishWorkflowRunParams{
		ID:        runID,
		Status:    string(status),
		Result:    result,
		LastError: pgconv.OptionalText(lastErr),
	}
	n, err := r.queries.FinishWorkflowRun(ctx, r.conn(tx), arg)
	if err != nil {
		return infra.WrapRepoErr("failed to finish workflow run", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("workflow run not running", errLeaseLost, infra.KindNotFound)
	}
	return nil
}

func (r *WorkflowRunRepository) PurgeFinished(ctx context.Context, before time.Time) (int64, error) {
	n, err := r.queries.DeleteFinishedWorkflowRuns(ctx, r.db, pgconv.TimeToPgtype(before))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to purge finished workflow runs", err)
	}
	return n, nil
}

func (r *WorkflowRunRepository) conn(tx sqlc.DBTX) sqlc.DBTX {
	if tx != nil {
		return tx
	}
	return r.db
}
