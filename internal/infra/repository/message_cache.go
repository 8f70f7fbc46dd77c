package repository

import (
	"context"
	"time"

	"forget-bot/internal/infra"
	sqlc "forget-bot/internal/infra/sqlc/generated"
	"forget-bot/internal/pkg/clock"
	"forget-bot/internal/pkg/pgconv"
	"forget-bot/internal/usecase/shared"
)

type MessageCacheQueries interface {
	PutCachedMessage(ctx context.Context, db sqlc.DBTX, arg sqlc.PutCachedMessageParams) error
	GetCachedMessage(ctx context.Context, db sqlc.DBTX, cacheKey string) (string, error)
	DeleteExpiredCachedMessages(ctx context.Context, db sqlc.DBTX) (int64, error)
}

// MessageCacheRepository is a small expiring key/value table.
type MessageCacheRepository struct {
	queries MessageCacheQueries
	db      sqlc.DBTX
	clock   clock.Clock
}

func NewMessageCacheRepository(queries MessageCacheQueries, db sqlc.DBTX, clk clock.Clock) *MessageCacheRepository {
	return &MessageCacheRepository{
		queries: queries,
		db:      db,
		clock:   clk,
	}
}

var _ shared.MessageCache = (*MessageCacheRepository)(nil)

func (r *MessageCacheRepository) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	arg := sqlc.PutCachedMessageParams{
		CacheKey:  key,
		Value:     value,
		ExpiresAt: pgconv.TimeToPgtype(r.clock.Now().Add(ttl)),
	}
	if err := r.queries.PutCachedMessage(ctx, r.db, arg); err != nil {
		return infra.WrapRepoErr("failed to cache message", err)
	}
	return nil
}

// Get reports false for missing and expired keys.
func (r *MessageCacheRepository) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.queries.GetCachedMessage(ctx, r.db, key)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return "", false, nil
		}
		return "", false, infra.WrapRepoErr("failed to read cached message", err)
	}
	return value, true, nil
}

func (r *MessageCacheRepository) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := r.queries.DeleteExpiredCachedMessages(ctx, r.db)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to purge message cache", err)
	}
	return n, nil
}
