package workflow

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"forget-bot/internal/pkg/config"
	"forget-bot/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// Worker drives the engine and the janitor from a cron scheduler.
type Worker struct {
	engine  *Engine
	janitor *Janitor
	cfg     config.WorkflowConfig
	logger  *slog.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	cancel  context.CancelFunc
	running bool
}

func NewWorker(engine *Engine, janitor *Janitor, cfg config.Config, logger *slog.Logger) *Worker {
	return &Worker{
		engine:  engine,
		janitor: janitor,
		cfg:     cfg.Workflow,
		logger:  logger,
	}
}

func (w *Worker) Start(_ context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	// overlapping ticks are skipped, not queued
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	ctx, cancel := context.WithCancel(context.Background())

	if _, err := c.AddFunc("@every "+w.cfg.PollInterval.String(), func() { w.poll(ctx) }); err != nil {
		cancel()
		return errs.Wrap(err, "register workflow poller")
	}
	if _, err := c.AddFunc(w.cfg.JanitorSchedule, func() { w.janitor.Sweep(ctx) }); err != nil {
		cancel()
		return errs.Wrapf(err, "register janitor schedule %q", w.cfg.JanitorSchedule)
	}

	c.Start()
	w.cron = c
	w.cancel = cancel
	w.running = true
	w.logger.Info("workflow worker started", "poll_interval", w.cfg.PollInterval.String(), "janitor", w.cfg.JanitorSchedule)
	return nil
}

// Stop waits for in-flight steps or until ctx is done.
func (w *Worker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	c, cancel := w.cron, w.cancel
	w.running = false
	w.mu.Unlock()

	stopped := c.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
	}
	cancel()
	w.logger.Info("workflow worker stopped")
	return nil
}

func (w *Worker) poll(ctx context.Context) {
	// drain the backlog without waiting for the next tick
	for ctx.Err() == nil {
		started := time.Now()
		n, err := w.engine.Poll(ctx)
		if err != nil {
			w.logger.Error("workflow poll failed", "error", err)
			return
		}
		if n > 0 {
			w.logger.Debug("workflow poll", "claimed", n, "took", time.Since(started).String())
		}
		if n < w.cfg.BatchSize {
			return
		}
	}
}
