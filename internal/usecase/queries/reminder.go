package queries

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"forget-bot/internal/domain/timeexpr"
	"forget-bot/internal/infra"
	"forget-bot/internal/pkg/clock"
	"forget-bot/internal/pkg/config"
	"forget-bot/internal/pkg/errs"
	"forget-bot/internal/pkg/metrics"
	"forget-bot/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const statusLookupConcurrency = 8

// Read models (DTO for read side)
type ReminderView struct {
	RunID          uuid.UUID `json:"run_id"`
	Message        string    `json:"message"`
	ScheduledFor   time.Time `json:"scheduled_for"`
	CreatedAt      time.Time `json:"created_at"`
	TimeRemaining  string    `json:"time_remaining"`
	Ephemeral      bool      `json:"ephemeral"`
	MessageLink    string    `json:"message_link,omitempty"`
	MessagePreview string    `json:"message_preview,omitempty"`
}

// ReminderList holds at most the display limit of items, soonest first.
// Total counts every active reminder found.
type ReminderList struct {
	Items []ReminderView `json:"items"`
	Total int            `json:"total"`
}

func (l *ReminderList) Truncated() bool {
	return l.Total > len(l.Items)
}

type ReminderQueries interface {
	// List reconciles the registry with the substrate: entries whose run is
	// no longer active are reaped, entries without metadata are skipped.
	List(ctx context.Context, userID string) (*ReminderList, error)
}

type reminderQueriesImpl struct {
	runner   shared.WorkflowRunner
	registry shared.ReminderRegistry
	clock    clock.Clock
	limit    int
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewReminderQueries(
	runner shared.WorkflowRunner,
	registry shared.ReminderRegistry,
	clock clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
	m *metrics.Metrics,
) ReminderQueries {
	return &reminderQueriesImpl{
		runner:   runner,
		registry: registry,
		clock:    clock,
		limit:    cfg.Reminder.ListLimit,
		logger:   logger,
		metrics:  m,
	}
}

func (q *reminderQueriesImpl) List(ctx context.Context, userID string) (*ReminderList, error) {
	runIDs, err := q.registry.RunIDs(ctx, userID)
	if err != nil {
		return nil, errs.Wrapf(errs.Mark(err, errs.ErrDatabaseOperationFailed), "list reminder ids of user %s", userID)
	}

	found := make([]*shared.ReminderRecord, len(runIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(statusLookupConcurrency)
	for i, runID := range runIDs {
		g.Go(func() error {
			found[i] = q.resolve(gctx, userID, runID)
			return nil
		})
	}
	_ = g.Wait()

	now := q.clock.Now()
	items := make([]ReminderView, 0, len(found))
	for _, rec := range found {
		if rec == nil {
			continue
		}
		items = append(items, ReminderView{
			RunID:          rec.RunID,
			Message:        rec.Message,
			ScheduledFor:   rec.ScheduledFor,
			CreatedAt:      rec.CreatedAt,
			TimeRemaining:  timeexpr.Remaining(rec.ScheduledFor, now),
			Ephemeral:      rec.Ephemeral,
			MessageLink:    rec.MessageLink,
			MessagePreview: rec.MessagePreview,
		})
	}
	slices.SortStableFunc(items, func(a, b ReminderView) int {
		return a.ScheduledFor.Compare(b.ScheduledFor)
	})

	list := &ReminderList{Total: len(items), Items: items}
	if q.limit > 0 && len(items) > q.limit {
		list.Items = items[:q.limit]
	}
	return list, nil
}

// resolve returns nil for anything that should not be shown.
func (q *reminderQueriesImpl) resolve(ctx context.Context, userID string, runID uuid.UUID) *shared.ReminderRecord {
	status, err := q.runner.Status(ctx, runID)
	switch {
	case errs.Is(err, shared.ErrRunNotFound):
		q.reap(ctx, userID, runID, "unknown")
		return nil
	case err != nil:
		q.logger.Warn("failed to read run status", "run_id", runID.String(), "user_id", userID, "error", err)
		return nil
	case !status.Active():
		q.reap(ctx, userID, runID, string(status))
		return nil
	}

	rec, err := q.registry.Get(ctx, runID)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			q.logger.Warn("failed to read reminder metadata", "run_id", runID.String(), "user_id", userID, "error", err)
		}
		return nil
	}
	return rec
}

func (q *reminderQueriesImpl) reap(ctx context.Context, userID string, runID uuid.UUID, status string) {
	if err := q.registry.Remove(ctx, userID, runID); err != nil {
		q.logger.Warn("failed to reap inactive reminder", "run_id", runID.String(), "user_id", userID, "error", err)
		return
	}
	q.logger.Info("reaped inactive reminder", "run_id", runID.String(), "user_id", userID, "status", status)
	q.metrics.ReminderEvent(metrics.EventReaped)
}
