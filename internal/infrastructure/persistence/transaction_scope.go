package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/retailbook/backend/internal/application/stock"
	"github.com/retailbook/backend/internal/domain/inventory"
	"github.com/retailbook/backend/internal/domain/ledger"
	"github.com/retailbook/backend/internal/domain/shared"
	"github.com/retailbook/backend/internal/domain/trade"
)

// GormTransactionScope implements stock.TransactionScope using GORM
// transactions. Every repository handed to the callback shares one database
// transaction, so a mutation's header, lines, aggregates and linked ledger
// entries commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos stock.Repositories) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
	return translateLockError(err)
}

// Postgres SQLSTATE codes for losing a row-lock fight.
const (
	pgLockNotAvailable  = "55P03"
	pgDeadlockDetected  = "40P01"
	pgSerializationFail = "40001"
)

// translateLockError maps driver-level lock failures onto the retryable
// domain error. The mutation itself was valid; the caller should retry.
func translateLockError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgLockNotAvailable, pgDeadlockDetected, pgSerializationFail:
			return shared.ErrLockTimeout
		}
	}
	return err
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ProductRepo returns the product repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ProductRepo() inventory.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// BrandRepo returns the brand repository scoped to the current transaction.
func (r *gormTransactionalRepositories) BrandRepo() inventory.BrandRepository {
	return NewGormBrandRepository(r.tx)
}

// ManufactureRepo returns the manufacture repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ManufactureRepo() inventory.ManufactureRepository {
	return NewGormManufactureRepository(r.tx)
}

// PurchaseTxRepo returns the purchase transaction repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PurchaseTxRepo() trade.PurchaseTransactionRepository {
	return NewGormPurchaseTransactionRepository(r.tx)
}

// SalesTxRepo returns the sales transaction repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SalesTxRepo() trade.SalesTransactionRepository {
	return NewGormSalesTransactionRepository(r.tx)
}

// PurchaseReturnRepo returns the purchase return repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PurchaseReturnRepo() trade.PurchaseReturnRepository {
	return NewGormPurchaseReturnRepository(r.tx)
}

// SalesReturnRepo returns the sales return repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SalesReturnRepo() trade.SalesReturnRepository {
	return NewGormSalesReturnRepository(r.tx)
}

// VendorTxRepo returns the vendor ledger repository scoped to the current transaction.
func (r *gormTransactionalRepositories) VendorTxRepo() ledger.VendorTransactionRepository {
	return NewGormVendorTransactionRepository(r.tx)
}

// DebtorTxRepo returns the debtor ledger repository scoped to the current transaction.
func (r *gormTransactionalRepositories) DebtorTxRepo() ledger.DebtorTransactionRepository {
	return NewGormDebtorTransactionRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ stock.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements Repositories
var _ stock.Repositories = (*gormTransactionalRepositories)(nil)
