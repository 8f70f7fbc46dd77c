package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"forget-bot/internal/domain/reminder"
	"forget-bot/internal/domain/timeexpr"
	"forget-bot/internal/infra"
	"forget-bot/internal/pkg/clock"
	"forget-bot/internal/pkg/config"
	"forget-bot/internal/pkg/errs"
	"forget-bot/internal/pkg/metrics"
	"forget-bot/internal/usecase/shared"
	"forget-bot/internal/usecase/workflows"

	"github.com/google/uuid"
)

var (
	ErrEmptyTime       = errs.New("time expression is empty")
	ErrUnparseableTime = errs.New(timeexpr.UnparseableMessage)
	ErrOriginExpired   = errs.New("origin message is no longer cached")
	ErrInvalidPreset   = errs.New("invalid time preset")
)

const (
	messageCacheKeyPrefix = "msg_cache:"
	guildCacheKeyPrefix   = "msg_guild:"
)

// Presets offered on message-linked reminders. "tomorrow" goes through the
// parser so it lands on 9am in the reference zone.
var presetDurations = map[string]time.Duration{
	"30m": 30 * time.Minute,
	"1h":  time.Hour,
	"2h":  2 * time.Hour,
	"6h":  6 * time.Hour,
}

const tomorrowPresetExpression = "tomorrow 9am"

type ScheduleRequest struct {
	UserID      string
	Time        string
	Message     string
	Ephemeral   bool
	Environment config.Environment
	// SentAt is when the user asked; zero means now.
	SentAt time.Time
}

// OriginMessage is the chat message a context-menu reminder points at.
type OriginMessage struct {
	MessageID string
	ChannelID string
	GuildID   string
	Content   string
}

// OriginScheduleRequest schedules a reminder about a cached origin message,
// either from a preset button or a free-form time.
type OriginScheduleRequest struct {
	UserID      string
	MessageID   string
	ChannelID   string
	GuildID     string
	Preset      string
	Time        string
	Environment config.Environment
	SentAt      time.Time
}

type CancelRequest struct {
	RunID string
	// OwnerID is the identity recorded when the reminder was created. Empty
	// means it is looked up from the registry.
	OwnerID     string
	RequesterID string
}

type CancelOutcome int

const (
	CancelOK CancelOutcome = iota + 1
	CancelDenied
	CancelNotFound
	CancelAlreadyFired
)

func (o CancelOutcome) String() string {
	switch o {
	case CancelOK:
		return "ok"
	case CancelDenied:
		return "denied"
	case CancelNotFound:
		return "not_found"
	case CancelAlreadyFired:
		return "already_fired"
	default:
		return "unknown"
	}
}

// ScheduledReminder is returned to the transport that created the reminder.
type ScheduledReminder struct {
	RunID          uuid.UUID
	UserID         string
	Message        string
	Ephemeral      bool
	CreatedAt      time.Time
	ScheduledFor   time.Time
	RelativeTime   string
	MessageLink    string
	MessagePreview string
}

type ReminderCommands interface {
	Schedule(ctx context.Context, req ScheduleRequest) (*ScheduledReminder, error)
	CacheOrigin(ctx context.Context, msg OriginMessage) error
	ScheduleFromOrigin(ctx context.Context, req OriginScheduleRequest) (*ScheduledReminder, error)
	Cancel(ctx context.Context, req CancelRequest) (CancelOutcome, error)
}

type reminderUseCaseImpl struct {
	runner   shared.WorkflowRunner
	registry shared.ReminderRegistry
	cache    shared.MessageCache
	parser   *timeexpr.Parser
	clock    clock.Clock
	cfg      config.ReminderConfig
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewReminderUseCase(
	runner shared.WorkflowRunner,
	registry shared.ReminderRegistry,
	cache shared.MessageCache,
	parser *timeexpr.Parser,
	clock clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
	m *metrics.Metrics,
) ReminderCommands {
	return &reminderUseCaseImpl{
		runner:   runner,
		registry: registry,
		cache:    cache,
		parser:   parser,
		clock:    clock,
		cfg:      cfg.Reminder,
		logger:   logger,
		metrics:  m,
	}
}

func (r *reminderUseCaseImpl) Schedule(ctx context.Context, req ScheduleRequest) (*ScheduledReminder, error) {
	sentAt := r.sentAt(req.SentAt)

	if strings.TrimSpace(req.Time) == "" {
		return nil, ErrEmptyTime
	}
	message, err := reminder.NewMessage(req.Message)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	delay, ok := r.parser.Parse(req.Time, sentAt)
	if !ok {
		return nil, errs.Wrapf(ErrUnparseableTime, "parse %q", req.Time)
	}

	return r.start(ctx, req.UserID, message, nil, req.Ephemeral, req.Environment, sentAt, delay)
}

func (r *reminderUseCaseImpl) CacheOrigin(ctx context.Context, msg OriginMessage) error {
	if err := r.cache.Put(ctx, messageCacheKeyPrefix+msg.MessageID, msg.Content, r.cfg.OriginCacheTTL); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if msg.GuildID == "" {
		return nil
	}
	if err := r.cache.Put(ctx, guildCacheKeyPrefix+msg.MessageID, msg.GuildID, r.cfg.OriginCacheTTL); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (r *reminderUseCaseImpl) ScheduleFromOrigin(ctx context.Context, req OriginScheduleRequest) (*ScheduledReminder, error) {
	sentAt := r.sentAt(req.SentAt)

	delay, err := r.resolveOriginDelay(req, sentAt)
	if err != nil {
		return nil, err
	}

	content, ok, err := r.cache.Get(ctx, messageCacheKeyPrefix+req.MessageID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !ok {
		return nil, errs.Wrapf(ErrOriginExpired, "message %s", req.MessageID)
	}

	guildID := req.GuildID
	if guildID == "" {
		cached, found, err := r.cache.Get(ctx, guildCacheKeyPrefix+req.MessageID)
		if err != nil {
			r.logger.Warn("failed to read cached guild id", "message_id", req.MessageID, "error", err)
		} else if found {
			guildID = cached
		}
	}

	preview := reminder.Preview(content, r.cfg.PreviewLength)
	origin, err := reminder.NewOrigin(reminder.MessageLink(guildID, req.ChannelID, req.MessageID), preview)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	// an attachment-only message still gets a readable body
	text := content
	if strings.TrimSpace(text) == "" {
		text = preview
	}
	message, err := reminder.NewMessage(reminder.Truncate(strings.TrimSpace(text), reminder.MaxMessageLength))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	return r.start(ctx, req.UserID, message, origin, true, req.Environment, sentAt, delay)
}

func (r *reminderUseCaseImpl) resolveOriginDelay(req OriginScheduleRequest, sentAt time.Time) (time.Duration, error) {
	if req.Preset != "" {
		return r.presetDelay(req.Preset, sentAt)
	}
	if strings.TrimSpace(req.Time) == "" {
		return 0, ErrEmptyTime
	}
	delay, ok := r.parser.Parse(req.Time, sentAt)
	if !ok {
		return 0, errs.Wrapf(ErrUnparseableTime, "parse %q", req.Time)
	}
	return delay, nil
}

// presetDelay resolves one of the context-menu preset buttons.
func (r *reminderUseCaseImpl) presetDelay(preset string, sentAt time.Time) (time.Duration, error) {
	if d, ok := presetDurations[preset]; ok {
		return d, nil
	}
	if preset == "tomorrow" {
		if d, ok := r.parser.Parse(tomorrowPresetExpression, sentAt); ok {
			return d, nil
		}
	}
	return 0, errs.Wrapf(ErrInvalidPreset, "preset %q", preset)
}

func (r *reminderUseCaseImpl) start(
	ctx context.Context,
	userID string,
	message reminder.Message,
	origin *reminder.Origin,
	ephemeral bool,
	env config.Environment,
	sentAt time.Time,
	delay time.Duration,
) (*ScheduledReminder, error) {
	rem, err := reminder.NewReminder(uuid.Nil, userID, message, origin, ephemeral, sentAt, delay)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	input := workflows.ReminderInput{
		DelayMs:        rem.Delay().Milliseconds(),
		ScheduledForMs: rem.ScheduledFor().UnixMilli(),
		Message:        rem.Message().String(),
		Ephemeral:      rem.Ephemeral(),
		UserID:         rem.UserID(),
		Environment:    env,
		MessageLink:    rem.Link(),
		MessagePreview: rem.Preview(),
	}
	runID, err := r.runner.Start(ctx, workflows.KindReminder, input)
	if err != nil {
		return nil, errs.Wrap(errs.Mark(err, errs.ErrDatabaseOperationFailed), "start reminder run")
	}
	rem.AssignRun(runID)

	// the run is already durable; a registry miss only hides it from listings
	if err := r.registry.Track(ctx, toRecord(rem), r.cfg.MetadataTTL); err != nil {
		r.logger.Error("failed to track reminder in registry", "run_id", runID.String(), "user_id", userID, "error", err)
	}

	r.logger.Info("reminder scheduled",
		"run_id", runID.String(),
		"user_id", userID,
		"delay_ms", input.DelayMs,
		"environment", string(env),
		"message_linked", origin != nil,
	)
	r.metrics.ReminderEvent(metrics.EventScheduled)

	return &ScheduledReminder{
		RunID:          runID,
		UserID:         rem.UserID(),
		Message:        rem.Message().String(),
		Ephemeral:      rem.Ephemeral(),
		CreatedAt:      rem.CreatedAt(),
		ScheduledFor:   rem.ScheduledFor(),
		RelativeTime:   timeexpr.FormatRelative(rem.ScheduledFor(), sentAt, r.parser.Location()),
		MessageLink:    rem.Link(),
		MessagePreview: rem.Preview(),
	}, nil
}

func (r *reminderUseCaseImpl) Cancel(ctx context.Context, req CancelRequest) (CancelOutcome, error) {
	if req.OwnerID != "" && req.OwnerID != req.RequesterID {
		r.logger.Info("cancel denied for non-owner", "run_id", req.RunID, "owner_id", req.OwnerID, "requester_id", req.RequesterID)
		return r.cancelled(CancelDenied), nil
	}

	runID, err := uuid.Parse(strings.TrimSpace(req.RunID))
	if err != nil || runID == uuid.Nil {
		return r.cancelled(CancelNotFound), nil
	}

	if req.OwnerID == "" {
		rec, err := r.registry.Get(ctx, runID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return r.cancelled(CancelNotFound), nil
			}
			return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if rec.UserID != req.RequesterID {
			r.logger.Info("cancel denied for non-owner", "run_id", req.RunID, "owner_id", rec.UserID, "requester_id", req.RequesterID)
			return r.cancelled(CancelDenied), nil
		}
	}

	if err := r.runner.Cancel(ctx, runID); err != nil {
		switch {
		case errs.Is(err, shared.ErrRunNotFound):
			return r.cancelled(CancelNotFound), nil
		case errs.Is(err, shared.ErrRunNotActive):
			return r.cancelled(CancelAlreadyFired), nil
		default:
			return 0, errs.Wrap(err, "cancel reminder run")
		}
	}

	if err := r.registry.Remove(ctx, req.RequesterID, runID); err != nil {
		r.logger.Warn("failed to remove cancelled reminder from registry", "run_id", runID.String(), "user_id", req.RequesterID, "error", err)
	}
	r.metrics.ReminderEvent(metrics.EventCancelled)
	return r.cancelled(CancelOK), nil
}

func (r *reminderUseCaseImpl) cancelled(o CancelOutcome) CancelOutcome {
	r.metrics.InteractionHandled("cancel", o.String())
	return o
}

func (r *reminderUseCaseImpl) sentAt(t time.Time) time.Time {
	if t.IsZero() {
		return r.clock.Now()
	}
	return t
}

func toRecord(rem *reminder.Reminder) shared.ReminderRecord {
	return shared.ReminderRecord{
		RunID:          rem.RunID(),
		UserID:         rem.UserID(),
		Message:        rem.Message().String(),
		ScheduledFor:   rem.ScheduledFor(),
		CreatedAt:      rem.CreatedAt(),
		Ephemeral:      rem.Ephemeral(),
		MessageLink:    rem.Link(),
		MessagePreview: rem.Preview(),
	}
}
