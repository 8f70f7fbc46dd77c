package components

import (
	"forget-bot/internal/domain/followup"
	"forget-bot/internal/infra/discord"
	"forget-bot/internal/infra/workflow"
	"forget-bot/internal/pkg/config"
	"forget-bot/internal/usecase/shared"
	"forget-bot/internal/usecase/workflows"

	"go.uber.org/fx"
)

var WorkflowModule = fx.Module("workflow",
	fx.Provide(
		fx.Annotate(
			newNotifierProvider,
			fx.As(new(shared.NotifierProvider)),
		),
		newFollowUpSchedule,
		workflows.NewReminderWorkflow,
		workflows.NewFollowUpWorkflow,
		fx.Annotate(
			workflow.NewEngine,
			fx.As(fx.Self()),
			fx.As(new(shared.WorkflowRunner)),
		),
		workflow.NewJanitor,
		workflow.NewWorker,
	),
	fx.Invoke(
		registerWorkflows,
		runWorker,
	),
)

func newNotifierProvider(cfg config.Config) *discord.Provider {
	return discord.NewProvider(cfg)
}

func newFollowUpSchedule(cfg config.Config) (followup.Schedule, error) {
	return followup.NewSchedule(cfg.Reminder.FollowUpIntervals)
}

func registerWorkflows(engine *workflow.Engine, reminder *workflows.ReminderWorkflow, followUp *workflows.FollowUpWorkflow) {
	engine.Register(reminder, followUp)
}

// runWorker starts polling after every workflow is registered.
func runWorker(lc fx.Lifecycle, worker *workflow.Worker) {
	lc.Append(fx.Hook{
		OnStart: worker.Start,
		OnStop:  worker.Stop,
	})
}
