package shared

import (
	"context"
	"time"

	"forget-bot/internal/pkg/config"

	"github.com/google/uuid"
)

// ReminderRecord is the display metadata kept for a scheduled reminder.
type ReminderRecord struct {
	RunID          uuid.UUID
	UserID         string
	Message        string
	ScheduledFor   time.Time
	CreatedAt      time.Time
	Ephemeral      bool
	MessageLink    string
	MessagePreview string
}

// ReminderRegistry is a cache over the substrate: a per-user index of run
// ids plus per-run metadata. It may diverge from the substrate and is
// reconciled by the listing path.
type ReminderRegistry interface {
	Track(ctx context.Context, rec ReminderRecord, ttl time.Duration) error
	RunIDs(ctx context.Context, userID string) ([]uuid.UUID, error)
	// Get returns a NOT_FOUND repository error for missing or expired metadata.
	Get(ctx context.Context, runID uuid.UUID) (*ReminderRecord, error)
	Remove(ctx context.Context, userID string, runID uuid.UUID) error
	PurgeExpired(ctx context.Context) (int64, error)
}

type MessageCache interface {
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

// Notifier is the outbound chat surface used by workflows.
type Notifier interface {
	OpenDirectChannel(ctx context.Context, userID string) (string, error)
	PostMessage(ctx context.Context, channelID, content string) (string, error)
	AddOwnReaction(ctx context.Context, channelID, messageID, emoji string) error
	ReactionUserIDs(ctx context.Context, channelID, messageID, emoji string) ([]string, error)
}

type NotifierProvider interface {
	For(env config.Environment) (Notifier, error)
}
