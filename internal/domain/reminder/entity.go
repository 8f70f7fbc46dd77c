package reminder

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Reminder struct {
	runID        uuid.UUID
	userID       string
	message      Message
	origin       *Origin
	ephemeral    bool
	createdAt    time.Time
	scheduledFor time.Time
}

func NewReminder(runID uuid.UUID, userID string, message Message, origin *Origin, ephemeral bool, sentAt time.Time, delay time.Duration) (*Reminder, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	if message.String() == "" {
		return nil, ErrEmptyMessage
	}
	if delay <= 0 {
		return nil, ErrNonPositiveDelay
	}

	return &Reminder{
		runID:        runID,
		userID:       userID,
		message:      message,
		origin:       origin,
		ephemeral:    ephemeral,
		createdAt:    sentAt,
		scheduledFor: sentAt.Add(delay),
	}, nil
}

func (r *Reminder) RunID() uuid.UUID        { return r.runID }
func (r *Reminder) UserID() string          { return r.userID }
func (r *Reminder) Message() Message        { return r.message }
func (r *Reminder) Origin() *Origin         { return r.origin }
func (r *Reminder) Ephemeral() bool         { return r.ephemeral }
func (r *Reminder) CreatedAt() time.Time    { return r.createdAt }
func (r *Reminder) ScheduledFor() time.Time { return r.scheduledFor }
func (r *Reminder) Delay() time.Duration    { return r.scheduledFor.Sub(r.createdAt) }

// AssignRun binds the reminder to the run that will deliver it.
func (r *Reminder) AssignRun(id uuid.UUID) { r.runID = id }

func (r *Reminder) Link() string {
	if r.origin == nil {
		return ""
	}
	return r.origin.link
}

func (r *Reminder) Preview() string {
	if r.origin == nil {
		return ""
	}
	return r.origin.preview
}
