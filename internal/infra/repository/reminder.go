package repository

import (
	"context"
	"time"

	"forget-bot/internal/infra"
	sqlc "forget-bot/internal/infra/sqlc/generated"
	"forget-bot/internal/pkg/pgconv"
	"forget-bot/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReminderQueries interface {
	AddUserReminder(ctx context.Context, db sqlc.DBTX, arg sqlc.AddUserReminderParams) error
	ListUserReminderRunIDs(ctx context.Context, db sqlc.DBTX, userID string) ([]uuid.UUID, error)
	RemoveUserReminder(ctx context.Context, db sqlc.DBTX, arg sqlc.RemoveUserReminderParams) error
	UpsertReminder(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertReminderParams) error
	GetReminder(ctx context.Context, db sqlc.DBTX, runID uuid.UUID) (sqlc.Reminders, error)
	DeleteReminder(ctx context.Context, db sqlc.DBTX, runID uuid.UUID) error
	DeleteExpiredReminders(ctx context.Context, db sqlc.DBTX) (int64, error)
}

// ReminderRepository keeps the per-user index and per-run display metadata.
type ReminderRepository struct {
	queries ReminderQueries
	db      sqlc.DBTX
}

func NewReminderRepository(queries ReminderQueries, db sqlc.DBTX) *ReminderRepository {
	return &ReminderRepository{
		queries: queries,
		db:      db,
	}
}

var _ shared.ReminderRegistry = (*ReminderRepository)(nil)

// Track writes metadata before the index entry so a listed id always has
// something to resolve to until it expires.
func (r *ReminderRepository) Track(ctx context.Context, rec shared.ReminderRecord, ttl time.Duration) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	params := sqlc.UpsertReminderParams{
		RunID:          rec.RunID,
		UserID:         rec.UserID,
		Message:        rec.Message,
		ScheduledFor:   pgconv.TimeToPgtype(rec.ScheduledFor),
		CreatedAt:      pgconv.TimeToPgtype(createdAt),
		Ephemeral:      rec.Ephemeral,
		MessageLink:    pgconv.OptionalText(rec.MessageLink),
		MessagePreview: pgconv.OptionalText(rec.MessagePreview),
		ExpiresAt:      pgconv.TimeToPgtype(createdAt.Add(ttl)),
	}
	if err := r.queries.UpsertReminder(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to store reminder metadata", err)
	}

	index := sqlc.AddUserReminderParams{UserID: rec.UserID, RunID: rec.RunID}
	if err := r.queries.AddUserReminder(ctx, r.db, index); err != nil {
		return infra.WrapRepoErr("failed to index reminder", err)
	}
	return nil
}

func (r *ReminderRepository) RunIDs(ctx context.Context, userID string) ([]uuid.UUID, error) {
	ids, err := r.queries.ListUserReminderRunIDs(ctx, r.db, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reminder ids", err)
	}
	return ids, nil
}

func (r *ReminderRepository) Get(ctx context.Context, runID uuid.UUID) (*shared.ReminderRecord, error) {
	row, err := r.queries.GetReminder(ctx, r.db, runID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reminder metadata not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get reminder metadata", err)
	}
	return toReminderRecord(row), nil
}

// Remove drops the index entry first; metadata left behind only costs space.
func (r *ReminderRepository) Remove(ctx context.Context, userID string, runID uuid.UUID) error {
	arg := sqlc.RemoveUserReminderParams{UserID: userID, RunID: runID}
	if err := r.queries.RemoveUserReminder(ctx, r.db, arg); err != nil {
		return infra.WrapRepoErr("failed to remove reminder from index", err)
	}
	if err := r.queries.DeleteReminder(ctx, r.db, runID); err != nil {
		return infra.WrapRepoErr("failed to delete reminder metadata", err)
	}
	return nil
}

func (r *ReminderRepository) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := r.queries.DeleteExpiredReminders(ctx, r.db)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to purge expired reminders", err)
	}
	return n, nil
}

func toReminderRecord(row sqlc.Reminders) *shared.ReminderRecord {
	return &shared.ReminderRecord{
		RunID:          row.RunID,
		UserID:         row.UserID,
		Message:        row.Message,
		ScheduledFor:   pgconv.TimeFromPgtype(row.ScheduledFor),
		CreatedAt:      pgconv.TimeFromPgtype(row.CreatedAt),
		Ephemeral:      row.Ephemeral,
		MessageLink:    pgconv.StringFromPgtype(row.MessageLink),
		MessagePreview: pgconv.StringFromPgtype(row.MessagePreview),
	}
}
