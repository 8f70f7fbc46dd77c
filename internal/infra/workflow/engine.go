// Package workflow is the durable scheduling substrate. Runs are rows in
// workflow_runs; a run is claimed under a lease, one phase is executed, and
// the resulting transition is persisted before the lease is released. A
// crash between step and persist replays the step (at-least-once).
package workflow

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"forget-bot/internal/infra"
	sqlc "forget-bot/internal/infra/sqlc/generated"
	"forget-bot/internal/pkg/clock"
	"forget-bot/internal/pkg/config"
	"forget-bot/internal/pkg/errs"
	"forget-bot/internal/pkg/metrics"
	"forget-bot/internal/usecase/shared"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Engine struct {
	store    shared.RunStore
	uow      shared.UnitOfWork
	handlers map[string]shared.WorkflowHandler
	clock    clock.Clock
	cfg      config.WorkflowConfig
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewEngine(
	store shared.RunStore,
	uow shared.UnitOfWork,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Engine {
	return &Engine{
		store:    store,
		uow:      uow,
		handlers: make(map[string]shared.WorkflowHandler),
		clock:    clk,
		cfg:      cfg.Workflow,
		logger:   logger,
		metrics:  m,
	}
}

var _ shared.WorkflowRunner = (*Engine)(nil)

// Register must be called before the worker starts polling.
func (e *Engine) Register(handlers ...shared.WorkflowHandler) {
	for _, h := range handlers {
		e.handlers[h.Kind()] = h
	}
}

func (e *Engine) Start(ctx context.Context, kind string, input any) (uuid.UUID, error) {
	id, err := e.create(ctx, nil, kind, input)
	if err != nil {
		return uuid.Nil, err
	}
	e.metrics.RunStarted(kind)
	e.logger.Info("workflow run started", "run_id", id.String(), "kind", kind)
	return id, nil
}

func (e *Engine) Status(ctx context.Context, runID uuid.UUID) (shared.RunStatus, error) {
	status, err := e.store.Status(ctx, runID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", errs.Wrapf(shared.ErrRunNotFound, "run %s", runID)
		}
		return "", err
	}
	return status, nil
}

func (e *Engine) Cancel(ctx context.Context, runID uuid.UUID) error {
	ok, err := e.store.Cancel(ctx, runID)
	if err != nil {
		return err
	}
	if ok {
		e.logger.Info("workflow run cancelled", "run_id", runID.String())
		return nil
	}
	if _, err := e.Status(ctx, runID); err != nil {
		return err
	}
	return errs.Wrapf(shared.ErrRunNotActive, "run %s", runID)
}

// Poll claims due runs and executes one step of each. It returns the number
// of runs claimed.
func (e *Engine) Poll(ctx context.Context) (int, error) {
	now := e.clock.Now()
	runs, err := e.store.ClaimDue(ctx, now, now.Add(e.cfg.LeaseDuration), e.cfg.BatchSize)
	if err != nil {
		return 0, err
	}

	var g errgroup.Group
	g.SetLimit(max(1, e.cfg.Concurrency))
	for _, run := range runs {
		g.Go(func() error {
			e.execute(ctx, run)
			return nil
		})
	}
	_ = g.Wait()

	return len(runs), nil
}

func (e *Engine) execute(ctx context.Context, run shared.Run) {
	logger := e.logger.With("run_id", run.ID.String(), "kind", run.Kind, "phase", run.Phase)

	h, ok := e.handlers[run.Kind]
	if !ok {
		logger.Error("no handler for claimed run")
		e.persist(logger, e.complete(ctx, nil, run, shared.RunFailed, failureResult(shared.ErrUnknownKind.Error()), shared.ErrUnknownKind.Error()))
		return
	}

	stepCtx, cancel := context.WithTimeout(ctx, e.cfg.StepTimeout)
	started := time.Now()
	tr, err := h.Step(stepCtx, run)
	cancel()

	if err != nil {
		e.metrics.ObserveStep(run.Kind, run.Phase, "error", time.Since(started))
		e.retry(ctx, logger, run, err)
		return
	}
	e.metrics.ObserveStep(run.Kind, run.Phase, "ok", time.Since(started))

	e.persist(logger, e.apply(ctx, run, tr))
}

func (e *Engine) persist(logger *slog.Logger, err error) {
	switch {
	case err == nil:
	case infra.IsKind(err, infra.KindNotFound):
		logger.Warn("run left running state before its transition was stored")
	default:
		// the lease expires and the step is replayed
		logger.Error("failed to store transition", "error", err)
	}
}

func (e *Engine) apply(ctx context.Context, run shared.Run, tr shared.Transition) error {
	now := e.clock.Now()

	switch tr.Kind {
	case shared.TransitionSleep, shared.TransitionAdvance:
		state, err := json.Marshal(tr.State)
		if err != nil {
			return errs.Wrap(err, "encode run state")
		}
		wake := now
		if tr.Kind == shared.TransitionSleep {
			switch {
			case !tr.WakeAt.IsZero():
				if tr.WakeAt.After(now) {
					wake = tr.WakeAt
				}
			case tr.Delay > 0:
				wake = now.Add(tr.Delay)
			}
		}
		return e.store.Reschedule(ctx, nil, run.ID, tr.Phase, state, wake, 0, "")

	case shared.TransitionFinish:
		result, err := json.Marshal(tr.Result)
		if err != nil {
			return errs.Wrap(err, "encode run result")
		}
		err = e.uow.Within(ctx, func(ctx context.Context, tx sqlc.DBTX) error {
			for _, sp := range tr.Spawns {
				if _, err := e.create(ctx, tx, sp.Kind, sp.Input); err != nil {
					return err
				}
			}
			return e.complete(ctx, tx, run, shared.RunCompleted, result, "")
		})
		if err != nil {
			return err
		}
		for _, sp := range tr.Spawns {
			e.metrics.RunStarted(sp.Kind)
		}
		return nil

	case shared.TransitionFail:
		e.logger.Warn("workflow run failed", "run_id", run.ID.String(), "kind", run.Kind, "reason", tr.Reason)
		return e.complete(ctx, nil, run, shared.RunFailed, failureResult(tr.Reason), tr.Reason)

	default:
		return errs.Wrapf(errs.New("unknown transition"), "kind %d", tr.Kind)
	}
}

func (e *Engine) retry(ctx context.Context, logger *slog.Logger, run shared.Run, stepErr error) {
	attempt := run.Attempt + 1
	if attempt >= e.cfg.MaxAttempts {
		logger.Error("workflow step failed permanently", "attempts", attempt, "error", stepErr)
		e.persist(logger, e.complete(ctx, nil, run, shared.RunFailed, failureResult(stepErr.Error()), stepErr.Error()))
		return
	}

	delay := e.retryDelay(attempt)
	logger.Warn("workflow step failed, retrying", "attempt", attempt, "retry_in", delay.String(), "error", stepErr)
	e.metrics.StepRetried(run.Kind, run.Phase)
	e.persist(logger, e.store.Reschedule(ctx, nil, run.ID, run.Phase, run.State, e.clock.Now().Add(delay), attempt, stepErr.Error()))
}

// retryDelay is the attempt-th interval of a jittered exponential backoff.
func (e *Engine) retryDelay(attempt int) time.Duration {
	bo := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(e.cfg.RetryInitial),
		backoff.WithMaxInterval(e.cfg.RetryMax),
		backoff.WithMaxElapsedTime(0),
	)
	d := bo.NextBackOff()
	for i := 1; i < attempt; i++ {
		d = bo.NextBackOff()
	}
	return d
}

func (e *Engine) create(ctx context.Context, tx sqlc.DBTX, kind string, input any) (uuid.UUID, error) {
	if _, ok := e.handlers[kind]; !ok {
		return uuid.Nil, errs.Wrapf(shared.ErrUnknownKind, "kind %q", kind)
	}
	state, err := json.Marshal(input)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "encode run input")
	}

	id := uuid.New()
	run := shared.NewRun{
		ID:     id,
		Kind:   kind,
		Phase:  shared.PhaseStart,
		State:  state,
		WakeAt: e.clock.Now(),
	}
	if err := e.store.Create(ctx, tx, run); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (e *Engine) complete(ctx context.Context, tx sqlc.DBTX, run shared.Run, status shared.RunStatus, result []byte, lastErr string) error {
	if err := e.store.Complete(ctx, tx, run.ID, status, result, lastErr); err != nil {
		return err
	}
	e.metrics.RunFinished(run.Kind, string(status))
	return nil
}

func failureResult(reason string) []byte {
	b, _ := json.Marshal(map[string]string{"error": reason})
	return b
}
