package components

import (
	"forget-bot/internal/infra/repository"
	sqlc "forget-bot/internal/infra/sqlc/generated"
	"forget-bot/internal/infra/uow"
	"forget-bot/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		fx.Annotate(
			newUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// MessageCache
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(repository.MessageCacheQueries)),
		),
		fx.Annotate(
			repository.NewMessageCacheRepository,
			fx.As(new(shared.MessageCache)),
		),
		// Reminder registry
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(repository.ReminderQueries)),
		),
		fx.Annotate(
			repository.NewReminderRepository,
			fx.As(new(shared.ReminderRegistry)),
		),
		// Workflow runs
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(repository.WorkflowRunQueries)),
		),
		fx.Annotate(
			repository.NewWorkflowRunRepository,
			fx.As(new(shared.RunStore)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}

func newUoW(pool *pgxpool.Pool) *uow.PostgresUoW {
	return uow.NewPostgresUoW(pool)
}
