package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/retailbook/backend/internal/domain/shared"
)

// newMockDB creates a GORM connection backed by sqlmock.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func productColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "enterprise_id", "branch_id",
		"name", "uid", "cost_price", "selling_price", "count", "stock", "brand_id",
	}
}

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("finds existing product", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		productID := uuid.New()
		enterpriseID := uuid.New()
		brandID := uuid.New()

		rows := sqlmock.NewRows(productColumns()).AddRow(
			productID, nil, nil, enterpriseID, nil,
			"Gold Ring", "234567890123", decimal.NewFromInt(50), decimal.NewFromInt(100),
			4, decimal.NewFromInt(400), brandID,
		)
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		product, err := repo.FindByID(context.Background(), productID)

		require.NoError(t, err)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, "Gold Ring", product.Name)
		assert.Equal(t, 4, product.Count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		productID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByID(context.Background(), productID)

		assert.Nil(t, product)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindByIDForUpdate(t *testing.T) {
	t.Run("acquires row lock", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		productID := uuid.New()
		rows := sqlmock.NewRows(productColumns()).AddRow(
			productID, nil, nil, uuid.New(), nil,
			"Gold Ring", "234567890123", decimal.NewFromInt(50), decimal.NewFromInt(100),
			4, decimal.NewFromInt(400), uuid.New(),
		)
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 .* FOR UPDATE`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		product, err := repo.FindByIDForUpdate(context.Background(), productID)

		require.NoError(t, err)
		assert.Equal(t, productID, product.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindByUID(t *testing.T) {
	t.Run("scopes by enterprise and branch", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		enterpriseID := uuid.New()
		branchID := uuid.New()
		productID := uuid.New()

		rows := sqlmock.NewRows(productColumns()).AddRow(
			productID, nil, nil, enterpriseID, branchID,
			"Gold Ring", "234567890123", decimal.NewFromInt(50), decimal.NewFromInt(100),
			4, decimal.NewFromInt(400), uuid.New(),
		)
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE enterprise_id = \$1 AND branch_id = \$2 AND uid = \$3`).
			WithArgs(enterpriseID, branchID, "234567890123", 1).
			WillReturnRows(rows)

		product, err := repo.FindByUID(context.Background(), enterpriseID, &branchID, "234567890123")

		require.NoError(t, err)
		assert.Equal(t, productID, product.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("omits branch predicate for enterprise scope", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		enterpriseID := uuid.New()
		rows := sqlmock.NewRows(productColumns()).AddRow(
			uuid.New(), nil, nil, enterpriseID, nil,
			"Gold Ring", "234567890123", decimal.NewFromInt(50), decimal.NewFromInt(100),
			4, decimal.NewFromInt(400), uuid.New(),
		)
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE enterprise_id = \$1 AND uid = \$2`).
			WithArgs(enterpriseID, "234567890123", 1).
			WillReturnRows(rows)

		_, err := repo.FindByUID(context.Background(), enterpriseID, nil, "234567890123")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_ExistsByUID(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormProductRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE uid = \$1`).
		WithArgs("234567890123").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByUID(context.Background(), "234567890123")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProductRepository_Delete(t *testing.T) {
	t.Run("reports not found when nothing deleted", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		productID := uuid.New()
		mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1`).
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), productID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBrandRepository_FindByIDForUpdate(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormBrandRepository(db)

	brandID := uuid.New()
	rows := sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "enterprise_id", "branch_id",
		"name", "count", "stock",
	}).AddRow(brandID, nil, nil, uuid.New(), nil, "Gold", 4, decimal.NewFromInt(400))

	mock.ExpectQuery(`SELECT \* FROM "brands" WHERE id = \$1 .* FOR UPDATE`).
		WithArgs(brandID, 1).
		WillReturnRows(rows)

	brand, err := repo.FindByIDForUpdate(context.Background(), brandID)

	require.NoError(t, err)
	assert.Equal(t, brandID, brand.ID)
	assert.Equal(t, "Gold", brand.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
