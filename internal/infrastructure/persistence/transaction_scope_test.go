package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailbook/backend/internal/application/stock"
	"github.com/retailbook/backend/internal/domain/shared"
)

func TestGormTransactionScope_Execute_LockContention(t *testing.T) {
	lockCodes := map[string]string{
		"lock wait":     pgLockNotAvailable,
		"deadlock":      pgDeadlockDetected,
		"serialization": pgSerializationFail,
	}
	for name, code := range lockCodes {
		t.Run(name+" surfaces as the retryable error", func(t *testing.T) {
			db, mock, mockDB := newMockDB(t)
			defer mockDB.Close()
			scope := NewGormTransactionScope(db)

			mock.ExpectBegin()
			mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 .* FOR UPDATE`).
				WillReturnError(&pgconn.PgError{Code: code})
			mock.ExpectRollback()

			err := scope.Execute(context.Background(), func(repos stock.Repositories) error {
				_, err := repos.ProductRepo().FindByIDForUpdate(context.Background(), uuid.New())
				return err
			})

			assert.ErrorIs(t, err, shared.ErrLockTimeout)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("other database errors pass through untouched", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		scope := NewGormTransactionScope(db)

		dup := &pgconn.PgError{Code: "23505"}
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 .* FOR UPDATE`).
			WillReturnError(dup)
		mock.ExpectRollback()

		err := scope.Execute(context.Background(), func(repos stock.Repositories) error {
			_, err := repos.ProductRepo().FindByIDForUpdate(context.Background(), uuid.New())
			return err
		})

		require.Error(t, err)
		assert.NotErrorIs(t, err, shared.ErrLockTimeout)
		var pgErr *pgconn.PgError
		require.ErrorAs(t, err, &pgErr)
		assert.Equal(t, "23505", pgErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
