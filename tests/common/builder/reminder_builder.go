//go:build unit || e2e

package builder

import (
	"time"

	reqdto "forget-bot/internal/handler/dto/request"
	"forget-bot/internal/usecase/commands"
	"forget-bot/internal/usecase/queries"
	"forget-bot/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReminderBuilder struct {
	RunID          uuid.UUID
	UserID         string
	Time           string
	Message        string
	Ephemeral      bool
	CreatedAt      time.Time
	Delay          time.Duration
	MessageLink    string
	MessagePreview string
}

func NewReminderBuilder() *ReminderBuilder {
	return &ReminderBuilder{
		RunID:     uuid.New(),
		UserID:    "100000000000000001",
		Time:      "5 minutes",
		Message:   "Take a break",
		Ephemeral: true,
		CreatedAt: time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC),
		Delay:     5 * time.Minute,
	}
}

func (r *ReminderBuilder) With(mutate func(*ReminderBuilder)) *ReminderBuilder {
	mutate(r)
	return r
}

func (r *ReminderBuilder) WithUserID(userID string) *ReminderBuilder {
	r.UserID = userID
	return r
}

func (r *ReminderBuilder) WithOrigin(link, preview string) *ReminderBuilder {
	r.MessageLink = link
	r.MessagePreview = preview
	return r
}

func (r *ReminderBuilder) ScheduledFor() time.Time {
	return r.CreatedAt.Add(r.Delay)
}

// Build methods
func (r *ReminderBuilder) BuildCreateRequestDTO() reqdto.CreateReminderRequest {
	ephemeral := r.Ephemeral
	return reqdto.CreateReminderRequest{
		Time:      r.Time,
		Message:   r.Message,
		Ephemeral: &ephemeral,
	}
}

func (r *ReminderBuilder) BuildScheduled() *commands.ScheduledReminder {
	return &commands.ScheduledReminder{
		RunID:          r.RunID,
		UserID:         r.UserID,
		Message:        r.Message,
		Ephemeral:      r.Ephemeral,
		CreatedAt:      r.CreatedAt,
		ScheduledFor:   r.ScheduledFor(),
		RelativeTime:   "Today at 11:05 AM",
		MessageLink:    r.MessageLink,
		MessagePreview: r.MessagePreview,
	}
}

func (r *ReminderBuilder) BuildView() queries.ReminderView {
	return queries.ReminderView{
		RunID:          r.RunID,
		Message:        r.Message,
		ScheduledFor:   r.ScheduledFor(),
		CreatedAt:      r.CreatedAt,
		TimeRemaining:  "5 minutes",
		Ephemeral:      r.Ephemeral,
		MessageLink:    r.MessageLink,
		MessagePreview: r.MessagePreview,
	}
}

func (r *ReminderBuilder) BuildRecord() shared.ReminderRecord {
	return shared.ReminderRecord{
		RunID:          r.RunID,
		UserID:         r.UserID,
		Message:        r.Message,
		ScheduledFor:   r.ScheduledFor(),
		CreatedAt:      r.CreatedAt,
		Ephemeral:      r.Ephemeral,
		MessageLink:    r.MessageLink,
		MessagePreview: r.MessagePreview,
	}
}
