//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"forget-bot/internal/domain/timeexpr"
	"forget-bot/internal/infra"
	"forget-bot/internal/pkg/clock"
	"forget-bot/internal/pkg/config"
	"forget-bot/internal/pkg/errs"
	"forget-bot/internal/usecase/commands"
	"forget-bot/internal/usecase/shared"
	"forget-bot/internal/usecase/workflows"
	sharedmock "forget-bot/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type noNatural struct{}

func (noNatural) Parse(string, time.Time) (time.Time, error) {
	return time.Time{}, errors.New("not understood")
}

type ReminderCommandsTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	runner   *sharedmock.MockWorkflowRunner
	registry *sharedmock.MockReminderRegistry
	cache    *sharedmock.MockMessageCache
	cfg      config.Config
	uc       commands.ReminderCommands
	ctx      context.Context
	now      time.Time
}

func TestReminderCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(ReminderCommandsTestSuite))
}

func (s *ReminderCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.runner = sharedmock.NewMockWorkflowRunner(s.ctrl)
	s.registry = sharedmock.NewMockReminderRegistry(s.ctrl)
	s.cache = sharedmock.NewMockMessageCache(s.ctrl)
	s.cfg = config.NewTestConfig()
	s.ctx = context.Background()
	// 11:00 in Los Angeles
	s.now = time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	loc, err := timeexpr.LoadLocation(s.cfg.Reminder.TimeZone)
	s.Require().NoError(err)
	parser := timeexpr.NewParser(loc, timeexpr.WithNaturalParser(noNatural{}))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.uc = commands.NewReminderUseCase(s.runner, s.registry, s.cache, parser, clock.NewMockClock(s.now), s.cfg, logger, nil)
}

func (s *ReminderCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ReminderCommandsTestSuite) TestSchedule() {
	s.Run("success: starts a run and tracks it in the registry", func() {
		runID := uuid.New()
		s.runner.EXPECT().Start(s.ctx, workflows.KindReminder, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, input any) (uuid.UUID, error) {
				in, ok := input.(workflows.ReminderInput)
				s.Require().True(ok)
				s.Equal(int64(300000), in.DelayMs)
				s.Equal(s.now.Add(5*time.Minute).UnixMilli(), in.ScheduledForMs)
				s.Equal("stretch", in.Message)
				s.False(in.Ephemeral)
				s.Equal(config.EnvProduction, in.Environment)
				s.Empty(in.MessageLink)
				return runID, nil
			})
		s.registry.EXPECT().Track(s.ctx, shared.ReminderRecord{
			RunID:        runID,
			UserID:       "42",
			Message:      "stretch",
			ScheduledFor: s.now.Add(5 * time.Minute),
			CreatedAt:    s.now,
		}, 365*24*time.Hour).Return(nil)

		got, err := s.uc.Schedule(s.ctx, commands.ScheduleRequest{
			UserID:      "42",
			Time:        "5 minutes",
			Message:     "  stretch ",
			Environment: config.EnvProduction,
		})

		s.Require().NoError(err)
		s.Equal(runID, got.RunID)
		s.Equal(s.now.Add(5*time.Minute), got.ScheduledFor)
		s.Equal("Today at 11:05 AM", got.RelativeTime)
	})

	s.Run("success: registry failure does not fail an already durable run", func() {
		s.runner.EXPECT().Start(s.ctx, workflows.KindReminder, gomock.Any()).Return(uuid.New(), nil)
		s.registry.EXPECT().Track(s.ctx, gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		got, err := s.uc.Schedule(s.ctx, commands.ScheduleRequest{UserID: "42", Time: "2h", Message: "stretch"})

		s.Require().NoError(err)
		s.Equal(s.now.Add(2*time.Hour), got.ScheduledFor)
	})

	s.Run("success: explicit send time anchors the delay", func() {
		sentAt := s.now.Add(-time.Minute)
		s.runner.EXPECT().Start(s.ctx, workflows.KindReminder, gomock.Any()).Return(uuid.New(), nil)
		s.registry.EXPECT().Track(s.ctx, gomock.Any(), gomock.Any()).Return(nil)

		got, err := s.uc.Schedule(s.ctx, commands.ScheduleRequest{UserID: "42", Time: "10m", Message: "x", SentAt: sentAt})

		s.Require().NoError(err)
		s.Equal(sentAt, got.CreatedAt)
		s.Equal(sentAt.Add(10*time.Minute), got.ScheduledFor)
	})

	errorCases := []struct {
		name     string
		req      commands.ScheduleRequest
		expected error
	}{
		{name: "error: empty time", req: commands.ScheduleRequest{UserID: "42", Time: " ", Message: "x"}, expected: commands.ErrEmptyTime},
		{name: "error: unparseable time", req: commands.ScheduleRequest{UserID: "42", Time: "whenever", Message: "x"}, expected: commands.ErrUnparseableTime},
		{name: "error: zero amount", req: commands.ScheduleRequest{UserID: "42", Time: "0 minutes", Message: "x"}, expected: commands.ErrUnparseableTime},
		{name: "error: empty message", req: commands.ScheduleRequest{UserID: "42", Time: "5m", Message: "   "}, expected: errs.ErrDomainValidation},
		{name: "error: empty user", req: commands.ScheduleRequest{Time: "5m", Message: "x"}, expected: errs.ErrDomainValidation},
	}
	for _, tc := range errorCases {
		s.Run(tc.name, func() {
			got, err := s.uc.Schedule(s.ctx, tc.req)

			s.Nil(got)
			s.True(errs.Is(err, tc.expected), "got %v", err)
		})
	}

	s.Run("error: substrate rejects the run", func() {
		s.runner.EXPECT().Start(s.ctx, workflows.KindReminder, gomock.Any()).Return(uuid.Nil, errors.New("insert failed"))

		_, err := s.uc.Schedule(s.ctx, commands.ScheduleRequest{UserID: "42", Time: "5m", Message: "x"})

		s.True(errs.Is(err, errs.ErrDatabaseOperationFailed))
	})
}

func (s *ReminderCommandsTestSuite) TestCacheOrigin() {
	s.Run("success: content and guild cached with the origin ttl", func() {
		s.cache.EXPECT().Put(s.ctx, "msg_cache:m1", "look at this", 300*time.Second).Return(nil)
		s.cache.EXPECT().Put(s.ctx, "msg_guild:m1", "g1", 300*time.Second).Return(nil)

		err := s.uc.CacheOrigin(s.ctx, commands.OriginMessage{MessageID: "m1", ChannelID: "c1", GuildID: "g1", Content: "look at this"})

		s.NoError(err)
	})

	s.Run("success: direct message origin caches content only", func() {
		s.cache.EXPECT().Put(s.ctx, "msg_cache:m1", "", 300*time.Second).Return(nil)

		err := s.uc.CacheOrigin(s.ctx, commands.OriginMessage{MessageID: "m1", ChannelID: "c1"})

		s.NoError(err)
	})
}

func (s *ReminderCommandsTestSuite) TestScheduleFromOrigin() {
	s.Run("success: preset with cached guild builds a guild link", func() {
		s.cache.EXPECT().Get(s.ctx, "msg_cache:m1").Return("look at this", true, nil)
		s.cache.EXPECT().Get(s.ctx, "msg_guild:m1").Return("g1", true, nil)
		s.runner.EXPECT().Start(s.ctx, workflows.KindReminder, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, input any) (uuid.UUID, error) {
				in := input.(workflows.ReminderInput)
				s.Equal(int64(time.Hour/time.Millisecond), in.DelayMs)
				s.True(in.Ephemeral)
				s.Equal("look at this", in.Message)
				s.Equal("https://discord.com/channels/g1/c1/m1", in.MessageLink)
				s.Equal("look at this", in.MessagePreview)
				return uuid.New(), nil
			})
		s.registry.EXPECT().Track(s.ctx, gomock.Any(), gomock.Any()).Return(nil)

		got, err := s.uc.ScheduleFromOrigin(s.ctx, commands.OriginScheduleRequest{
			UserID: "42", MessageID: "m1", ChannelID: "c1", Preset: "1h",
		})

		s.Require().NoError(err)
		s.Equal("Today at 12:00 PM", got.RelativeTime)
	})

	s.Run("success: tomorrow preset lands on 9am local", func() {
		s.cache.EXPECT().Get(s.ctx, "msg_cache:m1").Return("", true, nil)
		s.cache.EXPECT().Get(s.ctx, "msg_guild:m1").Return("", false, nil)
		s.runner.EXPECT().Start(s.ctx, workflows.KindReminder, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, input any) (uuid.UUID, error) {
				in := input.(workflows.ReminderInput)
				s.Equal(int64(22*time.Hour/time.Millisecond), in.DelayMs)
				s.Equal("[No text content]", in.Message)
				s.Equal("https://discord.com/channels/@me/c1/m1", in.MessageLink)
				return uuid.New(), nil
			})
		s.registry.EXPECT().Track(s.ctx, gomock.Any(), gomock.Any()).Return(nil)

		got, err := s.uc.ScheduleFromOrigin(s.ctx, commands.OriginScheduleRequest{
			UserID: "42", MessageID: "m1", ChannelID: "c1", GuildID: "", Preset: "tomorrow",
		})

		s.Require().NoError(err)
		s.Equal("Tomorrow at 9:00 AM", got.RelativeTime)
	})

	s.Run("success: custom time with guild from the invocation", func() {
		s.cache.EXPECT().Get(s.ctx, "msg_cache:m1").Return("deploy", true, nil)
		s.runner.EXPECT().Start(s.ctx, workflows.KindReminder, gomock.Any()).Return(uuid.New(), nil)
		s.registry.EXPECT().Track(s.ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, rec shared.ReminderRecord, _ time.Duration) error {
				s.Equal("https://discord.com/channels/g9/c1/m1", rec.MessageLink)
				return nil
			})

		_, err := s.uc.ScheduleFromOrigin(s.ctx, commands.OriginScheduleRequest{
			UserID: "42", MessageID: "m1", ChannelID: "c1", GuildID: "g9", Time: "3pm",
		})

		s.NoError(err)
	})

	s.Run("error: unknown preset is rejected before the cache is read", func() {
		_, err := s.uc.ScheduleFromOrigin(s.ctx, commands.OriginScheduleRequest{UserID: "42", MessageID: "m1", ChannelID: "c1", Preset: "3y"})

		s.True(errs.Is(err, commands.ErrInvalidPreset))
	})

	s.Run("error: custom time not understood", func() {
		_, err := s.uc.ScheduleFromOrigin(s.ctx, commands.OriginScheduleRequest{UserID: "42", MessageID: "m1", ChannelID: "c1", Time: "someday"})

		s.True(errs.Is(err, commands.ErrUnparseableTime))
	})

	s.Run("error: origin cache expired", func() {
		s.cache.EXPECT().Get(s.ctx, "msg_cache:m1").Return("", false, nil)

		_, err := s.uc.ScheduleFromOrigin(s.ctx, commands.OriginScheduleRequest{UserID: "42", MessageID: "m1", ChannelID: "c1", Preset: "30m"})

		s.True(errs.Is(err, commands.ErrOriginExpired))
	})
}

func (s *ReminderCommandsTestSuite) TestCancel() {
	runID := uuid.New()
	notFound := infra.WrapRepoErr("reminder not found", errors.New("no rows"), infra.KindNotFound)

	testCases := []struct {
		name     string
		req      commands.CancelRequest
		setup    func()
		expected commands.CancelOutcome
	}{
		{
			name:     "success: owner cancels a pending run",
			req:      commands.CancelRequest{RunID: runID.String(), OwnerID: "42", RequesterID: "42"},
			expected: commands.CancelOK,
			setup: func() {
				s.runner.EXPECT().Cancel(s.ctx, runID).Return(nil)
				s.registry.EXPECT().Remove(s.ctx, "42", runID).Return(nil)
			},
		},
		{
			name:     "success: registry cleanup failure still reports ok",
			req:      commands.CancelRequest{RunID: runID.String(), OwnerID: "42", RequesterID: "42"},
			expected: commands.CancelOK,
			setup: func() {
				s.runner.EXPECT().Cancel(s.ctx, runID).Return(nil)
				s.registry.EXPECT().Remove(s.ctx, "42", runID).Return(errors.New("db down"))
			},
		},
		{
			name:     "success: owner looked up from the registry",
			req:      commands.CancelRequest{RunID: runID.String(), RequesterID: "42"},
			expected: commands.CancelOK,
			setup: func() {
				s.registry.EXPECT().Get(s.ctx, runID).Return(&shared.ReminderRecord{RunID: runID, UserID: "42"}, nil)
				s.runner.EXPECT().Cancel(s.ctx, runID).Return(nil)
				s.registry.EXPECT().Remove(s.ctx, "42", runID).Return(nil)
			},
		},
		{
			name:     "error: non-owner is denied without touching the run",
			req:      commands.CancelRequest{RunID: runID.String(), OwnerID: "42", RequesterID: "7"},
			expected: commands.CancelDenied,
		},
		{
			name:     "error: non-owner denied even for a malformed id",
			req:      commands.CancelRequest{RunID: "nope", OwnerID: "42", RequesterID: "7"},
			expected: commands.CancelDenied,
		},
		{
			name:     "error: registry owner differs from requester",
			req:      commands.CancelRequest{RunID: runID.String(), RequesterID: "7"},
			expected: commands.CancelDenied,
			setup: func() {
				s.registry.EXPECT().Get(s.ctx, runID).Return(&shared.ReminderRecord{RunID: runID, UserID: "42"}, nil)
			},
		},
		{
			name:     "error: malformed id is not found before any substrate call",
			req:      commands.CancelRequest{RunID: "not-a-uuid", OwnerID: "42", RequesterID: "42"},
			expected: commands.CancelNotFound,
		},
		{
			name:     "error: empty id",
			req:      commands.CancelRequest{OwnerID: "42", RequesterID: "42"},
			expected: commands.CancelNotFound,
		},
		{
			name:     "error: unknown run",
			req:      commands.CancelRequest{RunID: runID.String(), OwnerID: "42", RequesterID: "42"},
			expected: commands.CancelNotFound,
			setup: func() {
				s.runner.EXPECT().Cancel(s.ctx, runID).Return(errs.Wrapf(shared.ErrRunNotFound, "run %s", runID))
			},
		},
		{
			name:     "error: run already fired or cancelled",
			req:      commands.CancelRequest{RunID: runID.String(), OwnerID: "42", RequesterID: "42"},
			expected: commands.CancelAlreadyFired,
			setup: func() {
				s.runner.EXPECT().Cancel(s.ctx, runID).Return(errs.Wrapf(shared.ErrRunNotActive, "run %s", runID))
			},
		},
		{
			name:     "error: no registry entry when owner must be looked up",
			req:      commands.CancelRequest{RunID: runID.String(), RequesterID: "42"},
			expected: commands.CancelNotFound,
			setup: func() {
				s.registry.EXPECT().Get(s.ctx, runID).Return(nil, notFound)
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			if tc.setup != nil {
				tc.setup()
			}

			got, err := s.uc.Cancel(s.ctx, tc.req)

			s.NoError(err)
			s.Equal(tc.expected, got)
		})
	}

	s.Run("error: substrate failure propagates", func() {
		s.runner.EXPECT().Cancel(s.ctx, runID).Return(errors.New("connection reset"))

		_, err := s.uc.Cancel(s.ctx, commands.CancelRequest{RunID: runID.String(), OwnerID: "42", RequesterID: "42"})

		s.Error(err)
	})
}
