package interaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"forget-bot/internal/domain/reminder"
	"forget-bot/internal/pkg/config"
	"forget-bot/internal/pkg/errs"
	"forget-bot/internal/pkg/metrics"
	"forget-bot/internal/usecase/commands"
	"forget-bot/internal/usecase/queries"

	"github.com/bwmarrin/discordgo"
)

// Command names registered with the platform.
const (
	CommandPing          = "ping"
	CommandRemindMe      = "remind-me"
	CommandRemindModal   = "remind-modal"
	CommandListReminders = "list-reminders"
	CommandRemindMessage = "Remind Me"
)

// Custom ids. Components and modals that carry state append ":"-separated parts.
const (
	customIDCancel      = "cancel_reminder"
	customIDRemindModal = "remind_modal"
	customIDCustomModal = "remind_custom_modal"
	customIDCustom      = "remind_custom"
	remindPrefix        = "remind_"

	fieldTime      = "time"
	fieldMessage   = "message"
	fieldEphemeral = "ephemeral"
)

const embedColor = 0x5865f2

const (
	msgAccessDenied    = "🚫 **Access denied**\nYou don’t have permission to forget."
	msgCommandFailed   = "There was an error executing this command!"
	msgMissingInput    = "Please provide a time AND message."
	msgNoReminders     = "You have no active reminders."
	msgListFailed      = "❌ Error listing reminders"
	msgScheduleFailed  = "❌ Failed to set reminder. Please try again."
	msgOriginExpired   = "❌ This reminder request has timed out. Please right-click the message again to create a new reminder."
	msgCancelOK        = "✅ Reminder cancelled successfully."
	msgCancelDenied    = "❌ You can only cancel your own reminders."
	msgCancelNotFound  = "❌ Invalid reminder ID."
	msgCancelFailed    = "❌ Failed to cancel reminder. It may have already been sent or cancelled."
	msgMissingTime     = "❌ Please provide a time"
	msgInvalidModal    = "❌ Invalid modal submission"
	msgUnknownModal    = "Unknown modal submission"
	msgUnknownControl  = "Unknown component interaction"
	msgOriginPrompt    = "⏰ When would you like to be reminded about this message?"
	msgUnparseableTime = `❌ Could not parse time "%s". Please use formats like "5 minutes", "2 hours", "tomorrow at 3pm", or "next Friday at noon".`
)

type preset struct {
	id    string
	label string
}

var originPresets = []preset{
	{id: "30m", label: "30 minutes"},
	{id: "1h", label: "1 hour"},
	{id: "2h", label: "2 hours"},
	{id: "6h", label: "6 hours"},
	{id: "tomorrow", label: "Tomorrow"},
}

// Dispatcher routes invocations to the reminder usecases and renders replies.
type Dispatcher struct {
	reminders commands.ReminderCommands
	queries   queries.ReminderQueries
	policy    AccessPolicy
	env       config.Environment
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewDispatcher(
	reminders commands.ReminderCommands,
	queries queries.ReminderQueries,
	policy AccessPolicy,
	cfg config.Config,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Dispatcher {
	return &Dispatcher{
		reminders: reminders,
		queries:   queries,
		policy:    policy,
		env:       cfg.Discord.Environment,
		logger:    logger,
		metrics:   m,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, inv Invocation) *discordgo.InteractionResponse {
	if inv.Kind == KindPing {
		return &discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong}
	}
	if d.policy != nil && !d.policy.Allowed(inv.UserID) {
		d.logger.Info("interaction denied by access policy", "user_id", inv.UserID, "name", inv.Name)
		d.metrics.InteractionHandled(metricName(inv), "denied")
		return reply(msgAccessDenied, true)
	}

	var resp *discordgo.InteractionResponse
	switch inv.Kind {
	case KindCommand:
		resp = d.command(ctx, inv)
	case KindComponent:
		resp = d.component(ctx, inv)
	case KindModal:
		resp = d.modal(ctx, inv)
	default:
		resp = reply(msgCommandFailed, true)
	}
	d.metrics.InteractionHandled(metricName(inv), "handled")
	return resp
}

func (d *Dispatcher) command(ctx context.Context, inv Invocation) *discordgo.InteractionResponse {
	switch inv.Name {
	case CommandPing:
		return reply("Hello World", false)
	case CommandRemindMe:
		return d.remindMe(ctx, inv)
	case CommandRemindModal:
		return remindModal()
	case CommandListReminders:
		return d.listReminders(ctx, inv)
	case CommandRemindMessage:
		return d.remindMessage(ctx, inv)
	default:
		d.logger.Warn("unknown command", "name", inv.Name)
		return reply(msgCommandFailed, true)
	}
}

func (d *Dispatcher) remindMe(ctx context.Context, inv Invocation) *discordgo.InteractionResponse {
	timeText, message := inv.String(fieldTime), inv.String(fieldMessage)
	if timeText == "" || message == "" {
		return reply(msgMissingInput, true)
	}
	return d.schedule(ctx, inv, timeText, message, inv.Bool(fieldEphemeral, true))
}

func (d *Dispatcher) schedule(ctx context.Context, inv Invocation, timeText, message string, ephemeral bool) *discordgo.InteractionResponse {
	scheduled, err := d.reminders.Schedule(ctx, commands.ScheduleRequest{
		UserID:      inv.UserID,
		Time:        timeText,
		Message:     message,
		Ephemeral:   ephemeral,
		Environment: d.env,
		SentAt:      inv.SentAt,
	})
	if err != nil {
		return d.scheduleFailed(err, timeText, "")
	}

	resp := reply(fmt.Sprintf("✅ Reminder set! I'll remind you about \"%s\" %s", scheduled.Message, scheduled.RelativeTime), scheduled.Ephemeral)
	resp.Data.Components = []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Cancel Reminder",
				Style:    discordgo.DangerButton,
				CustomID: joinID(customIDCancel, scheduled.RunID.String(), inv.UserID),
			},
		}},
	}
	return resp
}

func (d *Dispatcher) listReminders(ctx context.Context, inv Invocation) *discordgo.InteractionResponse {
	list, err := d.queries.List(ctx, inv.UserID)
	if err != nil {
		d.logger.Error("failed to list reminders", "user_id", inv.UserID, "error", err)
		return reply(msgListFailed, true)
	}
	if len(list.Items) == 0 {
		return reply(msgNoReminders, true)
	}

	header := fmt.Sprintf("📋 **Your Active Reminders** (%d total)", list.Total)
	if list.Truncated() {
		header = fmt.Sprintf("📋 **Your Active Reminders** (showing %d of %d)", len(list.Items), list.Total)
	}

	embeds := make([]*discordgo.MessageEmbed, 0, len(list.Items))
	for _, item := range list.Items {
		embeds = append(embeds, reminderEmbed(item))
	}
	resp := reply(header, true)
	resp.Data.Embeds = embeds
	return resp
}

func reminderEmbed(item queries.ReminderView) *discordgo.MessageEmbed {
	description := item.MessagePreview
	if description == "" {
		description = reminder.Truncate(item.Message, reminder.ListDisplayLength)
	}
	embed := &discordgo.MessageEmbed{
		Description: description,
		Color:       embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "⏳ Time Remaining", Value: fmt.Sprintf("In **%s**", item.TimeRemaining), Inline: true},
			{Name: "📅 Scheduled For", Value: fmt.Sprintf("<t:%d:F>", item.ScheduledFor.Unix()), Inline: true},
		},
	}
	if item.MessageLink != "" {
		embed.URL = item.MessageLink
		embed.Title = "Jump to Message 🔗"
	}
	return embed
}

func (d *Dispatcher) remindMessage(ctx context.Context, inv Invocation) *discordgo.InteractionResponse {
	if inv.Target == nil {
		return reply(msgCommandFailed, true)
	}
	err := d.reminders.CacheOrigin(ctx, commands.OriginMessage{
		MessageID: inv.Target.ID,
		ChannelID: inv.Target.ChannelID,
		GuildID:   inv.Target.GuildID,
		Content:   inv.Target.Content,
	})
	if err != nil {
		d.logger.Error("failed to cache origin message", "message_id", inv.Target.ID, "error", err)
		return reply(msgScheduleFailed, true)
	}

	presets := make([]discordgo.MessageComponent, 0, len(originPresets))
	for _, p := range originPresets {
		presets = append(presets, discordgo.Button{
			Label:    p.label,
			Style:    discordgo.PrimaryButton,
			CustomID: joinID(remindPrefix+p.id, inv.Target.ID, inv.Target.ChannelID),
		})
	}
	resp := reply(msgOriginPrompt, true)
	resp.Data.Components = []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: presets},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Custom time...",
				Style:    discordgo.SecondaryButton,
				CustomID: joinID(customIDCustom, inv.Target.ID, inv.Target.ChannelID),
			},
		}},
	}
	return resp
}

func (d *Dispatcher) component(ctx context.Context, inv Invocation) *discordgo.InteractionResponse {
	head, parts := splitID(inv.Name)
	switch {
	case head == customIDCancel:
		return d.cancel(ctx, inv, parts)
	case head == customIDCustom:
		if len(parts) != 2 {
			return reply(msgUnknownControl, true)
		}
		return customTimeModal(parts[0], parts[1])
	case strings.HasPrefix(head, remindPrefix):
		if len(parts) != 2 {
			return reply(msgUnknownControl, true)
		}
		return d.scheduleFromOrigin(ctx, inv, commands.OriginScheduleRequest{
			Preset:    strings.TrimPrefix(head, remindPrefix),
			MessageID: parts[0],
			ChannelID: parts[1],
		})
	default:
		return reply(msgUnknownControl, true)
	}
}

func (d *Dispatcher) cancel(ctx context.Context, inv Invocation, parts []string) *discordgo.InteractionResponse {
	if len(parts) != 2 {
		return reply(msgCancelNotFound, true)
	}
	// a button without a recorded owner cannot be checked, so nobody may use it
	if parts[1] == "" {
		return reply(msgCancelDenied, true)
	}

	outcome, err := d.reminders.Cancel(ctx, commands.CancelRequest{
		RunID:       parts[0],
		OwnerID:     parts[1],
		RequesterID: inv.UserID,
	})
	if err != nil {
		d.logger.Error("failed to cancel reminder", "run_id", parts[0], "user_id", inv.UserID, "error", err)
		return reply(msgCancelFailed, true)
	}
	switch outcome {
	case commands.CancelOK:
		return reply(msgCancelOK, true)
	case commands.CancelDenied:
		return reply(msgCancelDenied, true)
	case commands.CancelNotFound:
		return reply(msgCancelNotFound, true)
	default:
		return reply(msgCancelFailed, true)
	}
}

func (d *Dispatcher) modal(ctx context.Context, inv Invocation) *discordgo.InteractionResponse {
	head, parts := splitID(inv.Name)
	switch head {
	case customIDRemindModal:
		timeText, message := inv.String(fieldTime), inv.String(fieldMessage)
		if timeText == "" || message == "" {
			return reply(msgMissingInput, true)
		}
		return d.schedule(ctx, inv, timeText, message, parseEphemeral(inv.String(fieldEphemeral)))
	case customIDCustomModal:
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return reply(msgInvalidModal, true)
		}
		timeText := inv.String(fieldTime)
		if timeText == "" {
			return reply(msgMissingTime, true)
		}
		return d.scheduleFromOrigin(ctx, inv, commands.OriginScheduleRequest{
			Time:      timeText,
			MessageID: parts[0],
			ChannelID: parts[1],
		})
	default:
		return reply(msgUnknownModal, true)
	}
}

func (d *Dispatcher) scheduleFromOrigin(ctx context.Context, inv Invocation, req commands.OriginScheduleRequest) *discordgo.InteractionResponse {
	req.UserID = inv.UserID
	req.GuildID = inv.GuildID
	req.Environment = d.env
	req.SentAt = inv.SentAt

	scheduled, err := d.reminders.ScheduleFromOrigin(ctx, req)
	if err != nil {
		return d.scheduleFailed(err, req.Time, req.Preset)
	}
	return reply("✅ Reminder set! I'll remind you about this message "+scheduled.RelativeTime, true)
}

func (d *Dispatcher) scheduleFailed(err error, timeText, presetID string) *discordgo.InteractionResponse {
	switch {
	case errs.Is(err, commands.ErrUnparseableTime):
		return reply(fmt.Sprintf(msgUnparseableTime, timeText), true)
	case errs.Is(err, commands.ErrEmptyTime):
		return reply(msgMissingTime, true)
	case errs.Is(err, commands.ErrInvalidPreset):
		return reply("❌ Invalid time preset: "+presetID, true)
	case errs.Is(err, commands.ErrOriginExpired):
		return reply(msgOriginExpired, true)
	case errs.Is(err, errs.ErrDomainValidation):
		return reply("❌ "+domainReason(err), true)
	default:
		d.logger.Error("failed to schedule reminder", "error", err)
		return reply(msgScheduleFailed, true)
	}
}

func remindModal() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: customIDRemindModal,
			Title:    "Set a Reminder",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    fieldTime,
						Label:       "When should I remind you?",
						Style:       discordgo.TextInputShort,
						Placeholder: "e.g., 5 minutes, 2 hours, tomorrow at 3pm",
						Required:    true,
						MaxLength:   100,
					},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    fieldMessage,
						Label:       "What should I remind you about?",
						Style:       discordgo.TextInputParagraph,
						Placeholder: "Enter your reminder message...",
						Required:    true,
						MaxLength:   500,
					},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    fieldEphemeral,
						Label:       "Only visible to you? (true/false)",
						Style:       discordgo.TextInputShort,
						Value:       "true",
						Required:    false,
						MaxLength:   5,
					},
				}},
			},
		},
	}
}

func customTimeModal(messageID, channelID string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: joinID(customIDCustomModal, messageID, channelID),
			Title:    "Custom Reminder Time",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    fieldTime,
						Label:       "When should I remind you?",
						Style:       discordgo.TextInputShort,
						Placeholder: "e.g., 5 minutes, 2 hours, tomorrow at 3pm",
						Required:    true,
						MaxLength:   100,
					},
				}},
			},
		},
	}
}

func reply(content string, ephemeral bool) *discordgo.InteractionResponse {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}
}

// parseEphemeral defaults to private; only an explicit "false" opts out.
func parseEphemeral(v string) bool {
	return !strings.EqualFold(strings.TrimSpace(v), "false")
}

func joinID(head string, parts ...string) string {
	return strings.Join(append([]string{head}, parts...), ":")
}

func splitID(id string) (string, []string) {
	fields := strings.Split(id, ":")
	return fields[0], fields[1:]
}

func domainReason(err error) string {
	return errs.Cause(err).Error()
}

func metricName(inv Invocation) string {
	if inv.Kind == KindCommand {
		return inv.Name
	}
	head, _ := splitID(inv.Name)
	return head
}
