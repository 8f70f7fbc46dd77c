//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"forget-bot/internal/infra"
	"forget-bot/internal/infra/repository"
	sqlc "forget-bot/internal/infra/sqlc/generated"
	"forget-bot/internal/pkg/clock"

	"github.com/jackc/pgx/v5/pgtype"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageCacheRepository_Put(t *testing.T) {
	now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	pool := newPool(t)
	repo := repository.NewMessageCacheRepository(sqlc.New(), pool, clock.NewMockClock(now))

	pool.ExpectExec("INSERT INTO message_cache").
		WithArgs("msg_cache:1", "hello", pgtype.Timestamptz{Time: now.Add(5 * time.Minute), Valid: true}).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Put(context.Background(), "msg_cache:1", "hello", 5*time.Minute))
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestMessageCacheRepository_Get(t *testing.T) {
	testCases := []struct {
		name        string
		setupMock   func(pool pgxmock.PgxPoolIface)
		expectValue string
		expectFound bool
		expectErr   bool
	}{
		{
			name: "success: live entry",
			setupMock: func(pool pgxmock.PgxPoolIface) {
				pool.ExpectQuery("SELECT value").WithArgs("msg_cache:1").
					WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow("hello"))
			},
			expectValue: "hello",
			expectFound: true,
		},
		{
			name: "success: missing or expired entry is not an error",
			setupMock: func(pool pgxmock.PgxPoolIface) {
				pool.ExpectQuery("SELECT value").WithArgs("msg_cache:1").
					WillReturnRows(pgxmock.NewRows([]string{"value"}))
			},
		},
		{
			name: "error: query fails",
			setupMock: func(pool pgxmock.PgxPoolIface) {
				pool.ExpectQuery("SELECT value").WithArgs("msg_cache:1").
					WillReturnError(errors.New("timeout"))
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pool := newPool(t)
			tc.setupMock(pool)
			repo := repository.NewMessageCacheRepository(sqlc.New(), pool, clock.NewMockClock(time.Now()))

			value, found, err := repo.Get(context.Background(), "msg_cache:1")

			if tc.expectErr {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectFound, found)
			assert.Equal(t, tc.expectValue, value)
		})
	}
}
