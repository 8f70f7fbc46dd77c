//go:build unit

package workflow_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"forget-bot/internal/infra"
	sqlc "forget-bot/internal/infra/sqlc/generated"
	"forget-bot/internal/infra/workflow"
	"forget-bot/internal/pkg/clock"
	"forget-bot/internal/pkg/config"
	"forget-bot/internal/usecase/shared"
	sharedmock "forget-bot/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type EngineTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	store   *sharedmock.MockRunStore
	uow     *sharedmock.MockUnitOfWork
	handler *sharedmock.MockWorkflowHandler
	clock   *clock.MockClock
	cfg     config.Config
	engine  *workflow.Engine
	ctx     context.Context
	now     time.Time
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = sharedmock.NewMockRunStore(s.ctrl)
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.handler = sharedmock.NewMockWorkflowHandler(s.ctrl)
	s.now = time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	s.clock = clock.NewMockClock(s.now)
	s.cfg = config.NewTestConfig()
	s.ctx = context.Background()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.engine = workflow.NewEngine(s.store, s.uow, s.clock, s.cfg, logger, nil)
	s.handler.EXPECT().Kind().Return("reminder").AnyTimes()
	s.engine.Register(s.handler)
}

func (s *EngineTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *EngineTestSuite) claim(run shared.Run) {
	s.store.EXPECT().
		ClaimDue(s.ctx, s.now, s.now.Add(s.cfg.Workflow.LeaseDuration), s.cfg.Workflow.BatchSize).
		Return([]shared.Run{run}, nil)
}

func (s *EngineTestSuite) TestStart() {
	s.Run("success: run persisted in start phase and due now", func() {
		s.store.EXPECT().Create(s.ctx, nil, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ sqlc.DBTX, run shared.NewRun) error {
				s.Equal("reminder", run.Kind)
				s.Equal(shared.PhaseStart, run.Phase)
				s.Equal(s.now, run.WakeAt)
				s.JSONEq(`{"userId":"42"}`, string(run.State))
				return nil
			})

		id, err := s.engine.Start(s.ctx, "reminder", map[string]string{"userId": "42"})

		s.Require().NoError(err)
		s.NotEqual(uuid.Nil, id)
	})

	s.Run("error: unknown kind never reaches the store", func() {
		id, err := s.engine.Start(s.ctx, "nope", nil)

		s.ErrorIs(err, shared.ErrUnknownKind)
		s.Equal(uuid.Nil, id)
	})
}

func (s *EngineTestSuite) TestCancel() {
	runID := uuid.New()
	notFound := infra.WrapRepoErr("workflow run not found", errors.New("no rows"), infra.KindNotFound)

	testCases := []struct {
		name        string
		setup       func()
		expectedErr error
	}{
		{
			name: "success: active run cancelled",
			setup: func() {
				s.store.EXPECT().Cancel(s.ctx, runID).Return(true, nil)
			},
		},
		{
			name: "error: run already finished",
			setup: func() {
				s.store.EXPECT().Cancel(s.ctx, runID).Return(false, nil)
				s.store.EXPECT().Status(s.ctx, runID).Return(shared.RunCompleted, nil)
			},
			expectedErr: shared.ErrRunNotActive,
		},
		{
			name: "error: run executing a step is not cancellable",
			setup: func() {
				s.store.EXPECT().Cancel(s.ctx, runID).Return(false, nil)
				s.store.EXPECT().Status(s.ctx, runID).Return(shared.RunRunning, nil)
			},
			expectedErr: shared.ErrRunNotActive,
		},
		{
			name: "error: unknown run",
			setup: func() {
				s.store.EXPECT().Cancel(s.ctx, runID).Return(false, nil)
				s.store.EXPECT().Status(s.ctx, runID).Return(shared.RunStatus(""), notFound)
			},
			expectedErr: shared.ErrRunNotFound,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			tc.setup()
			err := s.engine.Cancel(s.ctx, runID)
			if tc.expectedErr != nil {
				s.ErrorIs(err, tc.expectedErr)
			} else {
				s.NoError(err)
			}
		})
	}
}

func (s *EngineTestSuite) TestPoll_SleepPersistsWakeTime() {
	run := shared.Run{ID: uuid.New(), Kind: "reminder", Phase: shared.PhaseStart, State: []byte(`{}`)}
	s.claim(run)
	s.handler.EXPECT().Step(gomock.Any(), run).
		Return(shared.Sleep(5*time.Minute, "deliver", map[string]int{"n": 1}), nil)
	s.store.EXPECT().
		Reschedule(s.ctx, nil, run.ID, "deliver", []byte(`{"n":1}`), s.now.Add(5*time.Minute), 0, "").
		Return(nil)

	n, err := s.engine.Poll(s.ctx)

	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *EngineTestSuite) TestPoll_SleepUntilPersistsAbsoluteWakeTime() {
	testCases := []struct {
		name     string
		wakeAt   time.Time
		expected time.Time
	}{
		{name: "success: future instant kept as is", wakeAt: s.now.Add(3 * time.Minute), expected: s.now.Add(3 * time.Minute)},
		{name: "success: past instant is due now", wakeAt: s.now.Add(-time.Minute), expected: s.now},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			run := shared.Run{ID: uuid.New(), Kind: "reminder", Phase: shared.PhaseStart, State: []byte(`{}`)}
			s.claim(run)
			s.handler.EXPECT().Step(gomock.Any(), run).
				Return(shared.SleepUntil(tc.wakeAt, "deliver", struct{}{}), nil)
			s.store.EXPECT().
				Reschedule(s.ctx, nil, run.ID, "deliver", []byte(`{}`), tc.expected, 0, "").
				Return(nil)

			_, err := s.engine.Poll(s.ctx)

			s.NoError(err)
		})
	}
}

func (s *EngineTestSuite) TestPoll_StartStepCancelledWhileLeasedIsDropped() {
	run := shared.Run{ID: uuid.New(), Kind: "reminder", Phase: shared.PhaseStart, State: []byte(`{}`)}
	notRunning := infra.WrapRepoErr("workflow run not running", errors.New("no rows"), infra.KindNotFound)
	s.claim(run)
	s.handler.EXPECT().Step(gomock.Any(), run).
		Return(shared.Sleep(time.Minute, "deliver", struct{}{}), nil)
	s.store.EXPECT().
		Reschedule(s.ctx, nil, run.ID, "deliver", []byte(`{}`), s.now.Add(time.Minute), 0, "").
		Return(notRunning)

	n, err := s.engine.Poll(s.ctx)

	s.NoError(err)
	s.Equal(1, n)
}

func (s *EngineTestSuite) TestPoll_AdvanceIsDueImmediately() {
	run := shared.Run{ID: uuid.New(), Kind: "reminder", Phase: "deliver", State: []byte(`{}`), Attempt: 2}
	s.claim(run)
	s.handler.EXPECT().Step(gomock.Any(), run).Return(shared.Advance("acknowledge", struct{}{}), nil)
	s.store.EXPECT().Reschedule(s.ctx, nil, run.ID, "acknowledge", []byte(`{}`), s.now, 0, "").Return(nil)

	_, err := s.engine.Poll(s.ctx)

	s.NoError(err)
}

func (s *EngineTestSuite) TestPoll_FinishSpawnsChildInSameTransaction() {
	run := shared.Run{ID: uuid.New(), Kind: "reminder", Phase: "acknowledge", State: []byte(`{}`)}
	s.claim(run)
	s.handler.EXPECT().Step(gomock.Any(), run).Return(
		shared.Finish(map[string]bool{"ok": true}, shared.Spawn{Kind: "reminder", Input: map[string]string{"from": "parent"}}),
		nil,
	)

	s.uow.EXPECT().Within(s.ctx, gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, sqlc.DBTX) error) error {
			return fn(ctx, nil)
		})
	s.store.EXPECT().Create(s.ctx, nil, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ sqlc.DBTX, child shared.NewRun) error {
			s.Equal(shared.PhaseStart, child.Phase)
			s.JSONEq(`{"from":"parent"}`, string(child.State))
			s.NotEqual(run.ID, child.ID)
			return nil
		})
	s.store.EXPECT().Complete(s.ctx, nil, run.ID, shared.RunCompleted, []byte(`{"ok":true}`), "").Return(nil)

	_, err := s.engine.Poll(s.ctx)

	s.NoError(err)
}

func (s *EngineTestSuite) TestPoll_FailIsTerminal() {
	run := shared.Run{ID: uuid.New(), Kind: "reminder", Phase: shared.PhaseStart, State: []byte(`{}`)}
	s.claim(run)
	s.handler.EXPECT().Step(gomock.Any(), run).Return(shared.Fail("bad input"), nil)
	s.store.EXPECT().Complete(s.ctx, nil, run.ID, shared.RunFailed, gomock.Any(), "bad input").DoAndReturn(
		func(_ context.Context, _ sqlc.DBTX, _ uuid.UUID, _ shared.RunStatus, result []byte, _ string) error {
			s.JSONEq(`{"error":"bad input"}`, string(result))
			return nil
		})

	_, err := s.engine.Poll(s.ctx)

	s.NoError(err)
}

func (s *EngineTestSuite) TestPoll_StepErrorIsRetriedFromSameCheckpoint() {
	run := shared.Run{ID: uuid.New(), Kind: "reminder", Phase: "deliver", State: []byte(`{"userId":"42"}`), Attempt: 0}
	s.claim(run)
	s.handler.EXPECT().Step(gomock.Any(), run).Return(shared.Transition{}, errors.New("discord 503"))
	s.store.EXPECT().
		Reschedule(s.ctx, nil, run.ID, "deliver", run.State, gomock.Any(), 1, "discord 503").
		DoAndReturn(func(_ context.Context, _ sqlc.DBTX, _ uuid.UUID, _ string, _ []byte, wake time.Time, _ int, _ string) error {
			s.True(wake.After(s.now))
			s.False(wake.After(s.now.Add(s.cfg.Workflow.RetryMax)))
			return nil
		})

	_, err := s.engine.Poll(s.ctx)

	s.NoError(err)
}

func (s *EngineTestSuite) TestPoll_StepErrorAtMaxAttemptsFailsRun() {
	run := shared.Run{ID: uuid.New(), Kind: "reminder", Phase: "deliver", State: []byte(`{}`), Attempt: s.cfg.Workflow.MaxAttempts - 1}
	s.claim(run)
	s.handler.EXPECT().Step(gomock.Any(), run).Return(shared.Transition{}, errors.New("discord 403"))
	s.store.EXPECT().Complete(s.ctx, nil, run.ID, shared.RunFailed, gomock.Any(), "discord 403").Return(nil)

	_, err := s.engine.Poll(s.ctx)

	s.NoError(err)
}

func (s *EngineTestSuite) TestPoll_UnknownKindFailsRun() {
	run := shared.Run{ID: uuid.New(), Kind: "legacy", Phase: shared.PhaseStart, State: []byte(`{}`)}
	s.claim(run)
	s.store.EXPECT().Complete(s.ctx, nil, run.ID, shared.RunFailed, gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.engine.Poll(s.ctx)

	s.NoError(err)
}

func (s *EngineTestSuite) TestPoll_ClaimError() {
	s.store.EXPECT().ClaimDue(s.ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	n, err := s.engine.Poll(s.ctx)

	s.Error(err)
	s.Zero(n)
}

func TestRun_Decode(t *testing.T) {
	run := shared.Run{ID: uuid.New(), State: json.RawMessage(`{"round":3}`)}
	var st struct {
		Round int `json:"round"`
	}
	require.NoError(t, run.Decode(&st))
	assert.Equal(t, 3, st.Round)

	bad := shared.Run{ID: uuid.New(), State: json.RawMessage(`{`)}
	assert.Error(t, bad.Decode(&st))
}
