package response

import (
	"time"

	"forget-bot/internal/usecase/commands"
	"forget-bot/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Timestamps are unix milliseconds.
type ReminderResponse struct {
	RunID          string `json:"run_id"`
	UserID         string `json:"user_id"`
	Message        string `json:"message"`
	Ephemeral      bool   `json:"ephemeral"`
	CreatedAt      int64  `json:"created_at"`
	ScheduledFor   int64  `json:"scheduled_for"`
	RelativeTime   string `json:"relative_time"`
	MessageLink    string `json:"message_link,omitempty"`
	MessagePreview string `json:"message_preview,omitempty"`
}

type ReminderItemResponse struct {
	RunID          string `json:"run_id"`
	Message        string `json:"message"`
	Ephemeral      bool   `json:"ephemeral"`
	CreatedAt      int64  `json:"created_at"`
	ScheduledFor   int64  `json:"scheduled_for"`
	TimeRemaining  string `json:"time_remaining"`
	MessageLink    string `json:"message_link,omitempty"`
	MessagePreview string `json:"message_preview,omitempty"`
}

type ReminderListResponse struct {
	Items     []ReminderItemResponse `json:"items"`
	Total     int                    `json:"total"`
	Truncated bool                   `json:"truncated"`
}

var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: uuid.UUID{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(uuid.UUID).String(), nil
			},
		},
		{
			SrcType: time.Time{},
			DstType: int64(0),
			Fn: func(src any) (any, error) {
				return src.(time.Time).UnixMilli(), nil
			},
		},
	},
}

func FromScheduledReminder(s *commands.ScheduledReminder) (*ReminderResponse, error) {
	var res ReminderResponse
	if err := copier.CopyWithOption(&res, s, copyOption); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromReminderList(l *queries.ReminderList) (*ReminderListResponse, error) {
	items := make([]ReminderItemResponse, 0, len(l.Items))
	if err := copier.CopyWithOption(&items, &l.Items, copyOption); err != nil {
		return nil, err
	}
	return &ReminderListResponse{Items: items, Total: l.Total, Truncated: l.Truncated()}, nil
}
