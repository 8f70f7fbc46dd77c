//go:build unit

package workflows_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"forget-bot/internal/domain/timeexpr"
	"forget-bot/internal/pkg/config"
	"forget-bot/internal/usecase/shared"
	"forget-bot/internal/usecase/workflows"
	sharedmock "forget-bot/tests/mock/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

// next feeds a Sleep/Advance transition back in as the persisted checkpoint.
func next(t *testing.T, run shared.Run, tr shared.Transition) shared.Run {
	t.Helper()
	run.Phase = tr.Phase
	run.State = mustJSON(t, tr.State)
	return run
}

type reminderFixture struct {
	ctrl      *gomock.Controller
	notifier  *sharedmock.MockNotifier
	registry  *sharedmock.MockReminderRegistry
	workflow  *workflows.ReminderWorkflow
	ctx       context.Context
	baseInput workflows.ReminderInput
}

func newReminderFixture(t *testing.T) *reminderFixture {
	ctrl := gomock.NewController(t)
	notifier := sharedmock.NewMockNotifier(ctrl)
	provider := sharedmock.NewMockNotifierProvider(ctrl)
	provider.EXPECT().For(config.EnvProduction).Return(notifier, nil).AnyTimes()
	registry := sharedmock.NewMockReminderRegistry(ctrl)

	return &reminderFixture{
		ctrl:     ctrl,
		notifier: notifier,
		registry: registry,
		workflow: workflows.NewReminderWorkflow(provider, registry, discardLogger(), nil),
		ctx:      context.Background(),
		baseInput: workflows.ReminderInput{
			DelayMs:        300000,
			ScheduledForMs: 1773165600000,
			Message:        "stretch",
			Ephemeral:      true,
			UserID:         "42",
			Environment:    config.EnvProduction,
		},
	}
}

func TestReminderWorkflow_Start(t *testing.T) {
	scheduledFor := time.UnixMilli(1773165600000)

	testCases := []struct {
		name           string
		delayMs        int64
		scheduledForMs int64
		expected       shared.Transition
	}{
		{
			name:           "success: sleeps until creation time plus delay",
			delayMs:        300000,
			scheduledForMs: scheduledFor.UnixMilli(),
			expected:       shared.Transition{Kind: shared.TransitionSleep, Phase: "deliver", WakeAt: scheduledFor},
		},
		{
			name:     "success: without a scheduled instant sleeps for the delay",
			delayMs:  300000,
			expected: shared.Transition{Kind: shared.TransitionSleep, Phase: "deliver", Delay: 5 * time.Minute},
		},
		{
			name:           "error: zero delay fails with the formats message",
			delayMs:        0,
			scheduledForMs: scheduledFor.UnixMilli(),
			expected:       shared.Transition{Kind: shared.TransitionFail, Reason: timeexpr.UnparseableMessage},
		},
		{
			name:           "error: negative delay fails",
			delayMs:        -1,
			scheduledForMs: scheduledFor.UnixMilli(),
			expected:       shared.Transition{Kind: shared.TransitionFail, Reason: timeexpr.UnparseableMessage},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newReminderFixture(t)
			input := f.baseInput
			input.DelayMs = tc.delayMs
			input.ScheduledForMs = tc.scheduledForMs
			run := shared.Run{ID: uuid.New(), Kind: workflows.KindReminder, Phase: shared.PhaseStart, State: mustJSON(t, input)}

			tr, err := f.workflow.Step(f.ctx, run)

			require.NoError(t, err)
			assert.Equal(t, tc.expected.Kind, tr.Kind)
			assert.Equal(t, tc.expected.Phase, tr.Phase)
			assert.Equal(t, tc.expected.Delay, tr.Delay)
			assert.True(t, tc.expected.WakeAt.Equal(tr.WakeAt), "wake at %s, got %s", tc.expected.WakeAt, tr.WakeAt)
			assert.Equal(t, tc.expected.Reason, tr.Reason)
		})
	}
}

func TestReminderWorkflow_DeliverThenAcknowledge(t *testing.T) {
	f := newReminderFixture(t)
	runID := uuid.New()
	input := f.baseInput
	input.MessageLink = "https://discord.com/channels/1/2/3"
	input.MessagePreview = "look at this"
	run := shared.Run{ID: runID, Kind: workflows.KindReminder, Phase: "deliver", State: mustJSON(t, input)}

	gomock.InOrder(
		f.notifier.EXPECT().OpenDirectChannel(f.ctx, "42").Return("dm-1", nil),
		f.notifier.EXPECT().PostMessage(f.ctx, "dm-1",
			"⏰ **Reminder about this message:**\n\n> look at this\n\n[Jump to message](https://discord.com/channels/1/2/3)",
		).Return("msg-1", nil),
		f.notifier.EXPECT().AddOwnReaction(f.ctx, "dm-1", "msg-1", "✅").Return(nil),
		f.registry.EXPECT().Remove(f.ctx, "42", runID).Return(nil),
	)

	tr, err := f.workflow.Step(f.ctx, run)
	require.NoError(t, err)
	require.Equal(t, shared.TransitionAdvance, tr.Kind)
	require.Equal(t, "acknowledge", tr.Phase)

	tr, err = f.workflow.Step(f.ctx, next(t, run, tr))
	require.NoError(t, err)
	require.Equal(t, shared.TransitionFinish, tr.Kind)
	assert.Equal(t, workflows.ReminderResult{Content: "stretch", Ephemeral: true}, tr.Result)

	require.Len(t, tr.Spawns, 1)
	assert.Equal(t, workflows.KindFollowUp, tr.Spawns[0].Kind)
	want := workflows.FollowUpInput{
		OriginalMessageID: "msg-1",
		ChannelID:         "dm-1",
		UserID:            "42",
		Message:           "stretch",
		Environment:       config.EnvProduction,
		MessageLink:       "https://discord.com/channels/1/2/3",
		MessagePreview:    "look at this",
	}
	if diff := cmp.Diff(want, tr.Spawns[0].Input); diff != "" {
		t.Errorf("follow-up input mismatch (-want +got):\n%s", diff)
	}
}

func TestReminderWorkflow_DeliveryFailurePropagates(t *testing.T) {
	f := newReminderFixture(t)
	run := shared.Run{ID: uuid.New(), Kind: workflows.KindReminder, Phase: "deliver", State: mustJSON(t, f.baseInput)}

	f.notifier.EXPECT().OpenDirectChannel(f.ctx, "42").Return("dm-1", nil)
	f.notifier.EXPECT().PostMessage(f.ctx, "dm-1", "⏰ **Reminder:** stretch").Return("", errors.New("50007: cannot send messages to this user"))

	_, err := f.workflow.Step(f.ctx, run)

	assert.Error(t, err)
}

func TestReminderWorkflow_RegistryCleanupFailureDoesNotBlockFollowUp(t *testing.T) {
	f := newReminderFixture(t)
	state := map[string]any{
		"delayMs": 1000, "message": "stretch", "userId": "42", "environment": "production",
		"channelId": "dm-1", "messageId": "msg-1",
	}
	run := shared.Run{ID: uuid.New(), Kind: workflows.KindReminder, Phase: "acknowledge", State: mustJSON(t, state)}

	f.notifier.EXPECT().AddOwnReaction(f.ctx, "dm-1", "msg-1", "✅").Return(nil)
	f.registry.EXPECT().Remove(f.ctx, "42", run.ID).Return(errors.New("db down"))

	tr, err := f.workflow.Step(f.ctx, run)

	require.NoError(t, err)
	assert.Equal(t, shared.TransitionFinish, tr.Kind)
	assert.Len(t, tr.Spawns, 1)
}

func TestReminderWorkflow_ReactionFailureRetriesWithoutResending(t *testing.T) {
	f := newReminderFixture(t)
	state := map[string]any{
		"delayMs": 1000, "message": "stretch", "userId": "42", "environment": "production",
		"channelId": "dm-1", "messageId": "msg-1",
	}
	run := shared.Run{ID: uuid.New(), Kind: workflows.KindReminder, Phase: "acknowledge", State: mustJSON(t, state)}

	// no PostMessage expectation: a retry of this phase must not send again
	f.notifier.EXPECT().AddOwnReaction(f.ctx, "dm-1", "msg-1", "✅").Return(errors.New("429"))

	_, err := f.workflow.Step(f.ctx, run)

	assert.Error(t, err)
}
