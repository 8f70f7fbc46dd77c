package workflows

import (
	"context"
	"log/slog"
	"slices"

	"forget-bot/internal/domain/followup"
	"forget-bot/internal/domain/reminder"
	"forget-bot/internal/pkg/config"
	"forget-bot/internal/pkg/errs"
	"forget-bot/internal/pkg/metrics"
	"forget-bot/internal/usecase/shared"
)

const KindFollowUp = "follow_up"

const (
	phaseCheck = "check"
	phaseReact = "react"
)

// FollowUpInput starts an escalation for a delivered reminder.
type FollowUpInput struct {
	OriginalMessageID string             `json:"originalMessageId"`
	ChannelID         string             `json:"channelId"`
	UserID            string             `json:"userId"`
	Message           string             `json:"message"`
	Environment       config.Environment `json:"environment"`
	MessageLink       string             `json:"messageLink,omitempty"`
	MessagePreview    string             `json:"messagePreview,omitempty"`
}

type followUpState struct {
	FollowUpInput
	// CurrentMessageID is the latest message sent; acknowledgment is read from it.
	CurrentMessageID string `json:"currentMessageId"`
	Round            int    `json:"round"`
	PendingMessageID string `json:"pendingMessageId,omitempty"`
}

// FollowUpWorkflow loops Round(i): sleep Wait(i) → check → (finish | send →
// react) until acknowledged or the schedule is exhausted.
type FollowUpWorkflow struct {
	notifiers shared.NotifierProvider
	schedule  followup.Schedule
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewFollowUpWorkflow(notifiers shared.NotifierProvider, schedule followup.Schedule, logger *slog.Logger, m *metrics.Metrics) *FollowUpWorkflow {
	return &FollowUpWorkflow{
		notifiers: notifiers,
		schedule:  schedule,
		logger:    logger,
		metrics:   m,
	}
}

func (w *FollowUpWorkflow) Kind() string { return KindFollowUp }

func (w *FollowUpWorkflow) Step(ctx context.Context, run shared.Run) (shared.Transition, error) {
	var st followUpState
	if err := run.Decode(&st); err != nil {
		return shared.Fail(err.Error()), nil
	}

	switch run.Phase {
	case shared.PhaseStart:
		st.CurrentMessageID = st.OriginalMessageID
		st.Round = 0
		return shared.Sleep(w.schedule.Wait(0), phaseCheck, st), nil
	case phaseCheck:
		return w.check(ctx, st)
	case phaseReact:
		return w.react(ctx, st)
	default:
		return shared.Fail("unknown follow-up phase " + run.Phase), nil
	}
}

func (w *FollowUpWorkflow) check(ctx context.Context, st followUpState) (shared.Transition, error) {
	if st.Round >= w.schedule.Rounds() {
		return w.exhausted(st), nil
	}

	n, err := w.notifiers.For(st.Environment)
	if err != nil {
		return shared.Transition{}, err
	}

	if w.acknowledged(ctx, n, st) {
		w.logger.Info("reminder acknowledged, stopping follow-ups", "user_id", st.UserID, "follow_ups_sent", st.Round)
		w.metrics.ReminderEvent(metrics.EventAcknowledged)
		return shared.Finish(followup.Outcome{Acknowledged: true, FollowUpsSent: st.Round}), nil
	}

	remaining := w.schedule.Remaining(st.Round)
	content := reminder.FollowUpContent(st.Message, st.MessageLink, st.MessagePreview, remaining, w.schedule.NextLabel(st.Round))
	messageID, err := n.PostMessage(ctx, st.ChannelID, content)
	if err != nil {
		return shared.Transition{}, errs.Wrapf(err, "send follow-up %d to user %s", st.Round+1, st.UserID)
	}

	w.logger.Info("follow-up reminder sent", "user_id", st.UserID, "round", st.Round+1, "remaining", remaining)
	w.metrics.ReminderEvent(metrics.EventFollowUpSent)

	st.PendingMessageID = messageID
	return shared.Advance(phaseReact, st), nil
}

func (w *FollowUpWorkflow) react(ctx context.Context, st followUpState) (shared.Transition, error) {
	n, err := w.notifiers.For(st.Environment)
	if err != nil {
		return shared.Transition{}, err
	}
	if err := n.AddOwnReaction(ctx, st.ChannelID, st.PendingMessageID, reminder.AckEmoji); err != nil {
		return shared.Transition{}, errs.Wrap(err, "add acknowledgment reaction to follow-up")
	}

	st.CurrentMessageID = st.PendingMessageID
	st.PendingMessageID = ""
	st.Round++

	if st.Round >= w.schedule.Rounds() {
		return w.exhausted(st), nil
	}
	return shared.Sleep(w.schedule.Wait(st.Round), phaseCheck, st), nil
}

// acknowledged treats a failed lookup as not acknowledged.
func (w *FollowUpWorkflow) acknowledged(ctx context.Context, n shared.Notifier, st followUpState) bool {
	userIDs, err := n.ReactionUserIDs(ctx, st.ChannelID, st.CurrentMessageID, reminder.AckEmoji)
	if err != nil {
		w.logger.Warn("failed to check acknowledgment reaction", "user_id", st.UserID, "message_id", st.CurrentMessageID, "error", err)
		return false
	}
	return slices.Contains(userIDs, st.UserID)
}

func (w *FollowUpWorkflow) exhausted(st followUpState) shared.Transition {
	w.logger.Info("follow-up reminders exhausted", "user_id", st.UserID, "follow_ups_sent", w.schedule.Rounds())
	w.metrics.ReminderEvent(metrics.EventExhausted)
	return shared.Finish(followup.Outcome{Acknowledged: false, FollowUpsSent: w.schedule.Rounds()})
}
