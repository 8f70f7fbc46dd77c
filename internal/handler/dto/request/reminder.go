package request

import (
	"forget-bot/internal/pkg/config"
	"forget-bot/internal/pkg/patch"
	"forget-bot/internal/usecase/commands"
)

type CreateReminderRequest struct {
	Time    string `json:"time" binding:"required,max=100"`
	Message string `json:"message" binding:"required,max=2000"`
	// Ephemeral defaults to true when omitted.
	Ephemeral *bool `json:"ephemeral"`
}

func (r *CreateReminderRequest) ToCommand(userID string, env config.Environment) commands.ScheduleRequest {
	return commands.ScheduleRequest{
		UserID:      userID,
		Time:        r.Time,
		Message:     r.Message,
		Ephemeral:   patch.Coalesce(r.Ephemeral, true),
		Environment: env,
	}
}
