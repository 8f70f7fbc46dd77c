package shared

import (
	"context"

	sqlc "forget-bot/internal/infra/sqlc/generated"
)

type UnitOfWork interface {
	// Within: Full transaction with retry on serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx sqlc.DBTX) error) error
	// WithDB: Single statements using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
}
