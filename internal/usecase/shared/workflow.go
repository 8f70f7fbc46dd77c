package shared

import (
	"context"
	"encoding/json"
	"time"

	sqlc "forget-bot/internal/infra/sqlc/generated"
	"forget-bot/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrRunNotFound  = errs.New("workflow run not found")
	ErrRunNotActive = errs.New("workflow run is no longer active")
	ErrUnknownKind  = errs.New("no handler registered for workflow kind")
)

type RunStatus string

const (
	RunPending   RunStatus = "pending"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
	RunCancelled RunStatus = "cancelled"
)

// Active reports whether the run can still fire.
func (s RunStatus) Active() bool {
	return s == RunPending || s == RunRunning
}

// PhaseStart is the phase every run begins in.
const PhaseStart = "start"

// WorkflowRunner is the durable scheduling substrate.
type WorkflowRunner interface {
	Start(ctx context.Context, kind string, input any) (uuid.UUID, error)
	Status(ctx context.Context, runID uuid.UUID) (RunStatus, error)
	// A run still in its start phase is always cancellable.
	// Cancel fails with ErrRunNotFound or ErrRunNotActive when the run has
	// already fired, finished, or is executing a step right now.
	Cancel(ctx context.Context, runID uuid.UUID) error
}

// Run is the persisted checkpoint a handler resumes from.
type Run struct {
	ID      uuid.UUID
	Kind    string
	Phase   string
	State   json.RawMessage
	Attempt int
}

func (r Run) Decode(v any) error {
	if err := json.Unmarshal(r.State, v); err != nil {
		return errs.Wrapf(err, "decode state of run %s", r.ID)
	}
	return nil
}

type TransitionKind int

const (
	TransitionSleep TransitionKind = iota + 1
	TransitionAdvance
	TransitionFinish
	TransitionFail
)

// Spawn starts an independent run when the parent finishes.
type Spawn struct {
	Kind  string
	Input any
}

// Transition is what a step asks the substrate to persist next.
type Transition struct {
	Kind   TransitionKind
	Phase  string
	State  any
	Delay  time.Duration
	WakeAt time.Time
	Result any
	Reason string
	Spawns []Spawn
}

func Sleep(d time.Duration, phase string, state any) Transition {
	return Transition{Kind: TransitionSleep, Phase: phase, State: state, Delay: d}
}

// SleepUntil suspends until an absolute instant; a past instant is due now.
func SleepUntil(t time.Time, phase string, state any) Transition {
	return Transition{Kind: TransitionSleep, Phase: phase, State: state, WakeAt: t}
}

func Advance(phase string, state any) Transition {
	return Transition{Kind: TransitionAdvance, Phase: phase, State: state}
}

func Finish(result any, spawns ...Spawn) Transition {
	return Transition{Kind: TransitionFinish, Result: result, Spawns: spawns}
}

// Fail ends the run without retrying; reason is stored as its result.
func Fail(reason string) Transition {
	return Transition{Kind: TransitionFail, Reason: reason}
}

// WorkflowHandler executes one phase of a run. A returned error is retried
// by the substrate from the same checkpoint.
type WorkflowHandler interface {
	Kind() string
	Step(ctx context.Context, run Run) (Transition, error)
}

// NewRun is a run about to be persisted in its start phase.
type NewRun struct {
	ID     uuid.UUID
	Kind   string
	Phase  string
	State  []byte
	WakeAt time.Time
}

// RunStore persists workflow runs. Writes that belong to a transition take
// the transaction explicitly.
type RunStore interface {
	Create(ctx context.Context, tx sqlc.DBTX, run NewRun) error
	// Status returns a NOT_FOUND repository error for unknown runs.
	Status(ctx context.Context, runID uuid.UUID) (RunStatus, error)
	// Cancel reports false when the run is finished or unknown, or leased
	// past its start phase.
	Cancel(ctx context.Context, runID uuid.UUID) (bool, error)
	ClaimDue(ctx context.Context, now, lockedUntil time.Time, limit int) ([]Run, error)
	// Reschedule and Complete return a NOT_FOUND repository error when the
	// run is no longer running, e.g. it was cancelled while its lease expired.
	Reschedule(ctx context.Context, tx sqlc.DBTX, runID uuid.UUID, phase string, state []byte, wakeAt time.Time, attempts int, lastErr string) error
	Complete(ctx context.Context, tx sqlc.DBTX, runID uuid.UUID, status RunStatus, result []byte, lastErr string) error
	PurgeFinished(ctx context.Context, before time.Time) (int64, error)
}
