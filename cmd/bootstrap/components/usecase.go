package components

import (
	"forget-bot/internal/domain/timeexpr"
	"forget-bot/internal/pkg/clock"
	"forget-bot/internal/pkg/config"
	"forget-bot/internal/usecase"
	"forget-bot/internal/usecase/commands"
	"forget-bot/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	newTimeParser,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReminderUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReminderQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func newTimeParser(cfg config.Config) (*timeexpr.Parser, error) {
	loc, err := timeexpr.LoadLocation(cfg.Reminder.TimeZone)
	if err != nil {
		return nil, err
	}
	return timeexpr.NewParser(loc), nil
}
