package workflow

import (
	"context"
	"log/slog"
	"time"

	"forget-bot/internal/pkg/clock"
	"forget-bot/internal/pkg/config"
	"forget-bot/internal/pkg/metrics"
	"forget-bot/internal/usecase/shared"
)

// Janitor removes expired cache rows and finished runs past retention.
type Janitor struct {
	store     shared.RunStore
	registry  shared.ReminderRegistry
	cache     shared.MessageCache
	clock     clock.Clock
	retention time.Duration
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewJanitor(
	store shared.RunStore,
	registry shared.ReminderRegistry,
	cache shared.MessageCache,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Janitor {
	return &Janitor{
		store:     store,
		registry:  registry,
		cache:     cache,
		clock:     clk,
		retention: cfg.Workflow.RunRetention,
		logger:    logger,
		metrics:   m,
	}
}

// Sweep runs every purge even when an earlier one fails.
func (j *Janitor) Sweep(ctx context.Context) {
	purges := []struct {
		table string
		fn    func(context.Context) (int64, error)
	}{
		{table: "reminders", fn: j.registry.PurgeExpired},
		{table: "message_cache", fn: j.cache.PurgeExpired},
		{table: "workflow_runs", fn: func(ctx context.Context) (int64, error) {
			return j.store.PurgeFinished(ctx, j.clock.Now().Add(-j.retention))
		}},
	}

	for _, p := range purges {
		n, err := p.fn(ctx)
		if err != nil {
			j.logger.Error("janitor purge failed", "table", p.table, "error", err)
			continue
		}
		j.metrics.Purged(p.table, n)
		if n > 0 {
			j.logger.Info("janitor purged rows", "table", p.table, "rows", n)
		}
	}
}
