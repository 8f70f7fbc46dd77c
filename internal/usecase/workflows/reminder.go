// Package workflows holds the step handlers run by the scheduling substrate.
// Handlers are resumed from persisted state, so every field they need after
// a suspension lives in the JSON state, never in memory.
package workflows

import (
	"context"
	"log/slog"
	"time"

	"forget-bot/internal/domain/reminder"
	"forget-bot/internal/domain/timeexpr"
	"forget-bot/internal/pkg/config"
	"forget-bot/internal/pkg/errs"
	"forget-bot/internal/pkg/metrics"
	"forget-bot/internal/usecase/shared"
)

const KindReminder = "reminder"

const (
	phaseDeliver     = "deliver"
	phaseAcknowledge = "acknowledge"
)

// ReminderInput starts a reminder run.
type ReminderInput struct {
	DelayMs        int64              `json:"delayMs"`
	ScheduledForMs int64              `json:"scheduledForMs"`
	Message        string             `json:"message"`
	Ephemeral      bool               `json:"ephemeral"`
	UserID         string             `json:"userId"`
	Environment    config.Environment `json:"environment"`
	MessageLink    string             `json:"messageLink,omitempty"`
	MessagePreview string             `json:"messagePreview,omitempty"`
}

type reminderState struct {
	ReminderInput
	ChannelID string `json:"channelId,omitempty"`
	MessageID string `json:"messageId,omitempty"`
}

// ReminderResult is stored as the run result once delivery is done.
type ReminderResult struct {
	Content   string `json:"content"`
	Ephemeral bool   `json:"ephemeral"`
}

// ReminderWorkflow: start (validate, sleep) → deliver (DM) → acknowledge
// (reaction, registry cleanup, spawn follow-up). Posting and reacting are
// separate phases so a failed reaction never re-sends the message.
type ReminderWorkflow struct {
	notifiers shared.NotifierProvider
	registry  shared.ReminderRegistry
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewReminderWorkflow(notifiers shared.NotifierProvider, registry shared.ReminderRegistry, logger *slog.Logger, m *metrics.Metrics) *ReminderWorkflow {
	return &ReminderWorkflow{
		notifiers: notifiers,
		registry:  registry,
		logger:    logger,
		metrics:   m,
	}
}

func (w *ReminderWorkflow) Kind() string { return KindReminder }

func (w *ReminderWorkflow) Step(ctx context.Context, run shared.Run) (shared.Transition, error) {
	var st reminderState
	if err := run.Decode(&st); err != nil {
		return shared.Fail(err.Error()), nil
	}

	switch run.Phase {
	case shared.PhaseStart:
		if st.DelayMs <= 0 {
			return shared.Fail(timeexpr.UnparseableMessage), nil
		}
		// wake-at is creation time plus delay, whenever this step gets claimed
		if st.ScheduledForMs > 0 {
			return shared.SleepUntil(time.UnixMilli(st.ScheduledForMs), phaseDeliver, st), nil
		}
		return shared.Sleep(time.Duration(st.DelayMs)*time.Millisecond, phaseDeliver, st), nil
	case phaseDeliver:
		return w.deliver(ctx, st)
	case phaseAcknowledge:
		return w.acknowledge(ctx, run, st)
	default:
		return shared.Fail("unknown reminder phase " + run.Phase), nil
	}
}

func (w *ReminderWorkflow) deliver(ctx context.Context, st reminderState) (shared.Transition, error) {
	n, err := w.notifiers.For(st.Environment)
	if err != nil {
		return shared.Transition{}, err
	}

	channelID, err := n.OpenDirectChannel(ctx, st.UserID)
	if err != nil {
		return shared.Transition{}, errs.Wrapf(err, "open direct channel for user %s", st.UserID)
	}
	messageID, err := n.PostMessage(ctx, channelID, reminder.DeliveryContent(st.Message, st.MessageLink, st.MessagePreview))
	if err != nil {
		return shared.Transition{}, errs.Wrapf(err, "send reminder to user %s", st.UserID)
	}

	w.logger.Info("reminder delivered", "user_id", st.UserID, "environment", string(st.Environment), "message_id", messageID)
	w.metrics.ReminderEvent(metrics.EventDelivered)

	st.ChannelID = channelID
	st.MessageID = messageID
	return shared.Advance(phaseAcknowledge, st), nil
}

func (w *ReminderWorkflow) acknowledge(ctx context.Context, run shared.Run, st reminderState) (shared.Transition, error) {
	n, err := w.notifiers.For(st.Environment)
	if err != nil {
		return shared.Transition{}, err
	}
	if err := n.AddOwnReaction(ctx, st.ChannelID, st.MessageID, reminder.AckEmoji); err != nil {
		return shared.Transition{}, errs.Wrap(err, "add acknowledgment reaction")
	}

	// listing reaps whatever this misses
	if err := w.registry.Remove(ctx, st.UserID, run.ID); err != nil {
		w.logger.Warn("failed to remove delivered reminder from registry", "run_id", run.ID.String(), "user_id", st.UserID, "error", err)
	}

	followUp := FollowUpInput{
		OriginalMessageID: st.MessageID,
		ChannelID:         st.ChannelID,
		UserID:            st.UserID,
		Message:           st.Message,
		Environment:       st.Environment,
		MessageLink:       st.MessageLink,
		MessagePreview:    st.MessagePreview,
	}
	result := ReminderResult{Content: st.Message, Ephemeral: st.Ephemeral}
	return shared.Finish(result, shared.Spawn{Kind: KindFollowUp, Input: followUp}), nil
}
