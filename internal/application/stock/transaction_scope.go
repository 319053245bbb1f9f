package stock

import (
	"context"

	"github.com/retailbook/backend/internal/domain/inventory"
	"github.com/retailbook/backend/internal/domain/ledger"
	"github.com/retailbook/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories touched
// by stock mutation. When a function is executed within a transaction scope,
// all repository operations are part of the same database transaction and are
// committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories provides access to all repositories a stock mutation may
// touch. All repositories returned share the same underlying database
// transaction, so a bill header, its line items, the product and brand
// aggregates and any linked ledger entries move together or not at all.
type Repositories interface {
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() inventory.ProductRepository
	// BrandRepo returns the brand repository scoped to the current transaction
	BrandRepo() inventory.BrandRepository
	// ManufactureRepo returns the manufacture repository scoped to the current transaction
	ManufactureRepo() inventory.ManufactureRepository
	// PurchaseTxRepo returns the purchase transaction repository scoped to the current transaction
	PurchaseTxRepo() trade.PurchaseTransactionRepository
	// SalesTxRepo returns the sales transaction repository scoped to the current transaction
	SalesTxRepo() trade.SalesTransactionRepository
	// PurchaseReturnRepo returns the purchase return repository scoped to the current transaction
	PurchaseReturnRepo() trade.PurchaseReturnRepository
	// SalesReturnRepo returns the sales return repository scoped to the current transaction
	SalesReturnRepo() trade.SalesReturnRepository
	// VendorTxRepo returns the vendor ledger repository scoped to the current transaction
	VendorTxRepo() ledger.VendorTransactionRepository
	// DebtorTxRepo returns the debtor ledger repository scoped to the current transaction
	DebtorTxRepo() ledger.DebtorTransactionRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is not
// required.
type NoOpTransactionScope struct {
	productRepo        inventory.ProductRepository
	brandRepo          inventory.BrandRepository
	manufactureRepo    inventory.ManufactureRepository
	purchaseTxRepo     trade.PurchaseTransactionRepository
	salesTxRepo        trade.SalesTransactionRepository
	purchaseReturnRepo trade.PurchaseReturnRepository
	salesReturnRepo    trade.SalesReturnRepository
	vendorTxRepo       ledger.VendorTransactionRepository
	debtorTxRepo       ledger.DebtorTransactionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	productRepo inventory.ProductRepository,
	brandRepo inventory.BrandRepository,
	manufactureRepo inventory.ManufactureRepository,
	purchaseTxRepo trade.PurchaseTransactionRepository,
	salesTxRepo trade.SalesTransactionRepository,
	purchaseReturnRepo trade.PurchaseReturnRepository,
	salesReturnRepo trade.SalesReturnRepository,
	vendorTxRepo ledger.VendorTransactionRepository,
	debtorTxRepo ledger.DebtorTransactionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:        productRepo,
		brandRepo:          brandRepo,
		manufactureRepo:    manufactureRepo,
		purchaseTxRepo:     purchaseTxRepo,
		salesTxRepo:        salesTxRepo,
		purchaseReturnRepo: purchaseReturnRepo,
		salesReturnRepo:    salesReturnRepo,
		vendorTxRepo:       vendorTxRepo,
		debtorTxRepo:       debtorTxRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos Repositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() inventory.ProductRepository {
	return s.productRepo
}

// BrandRepo returns the brand repository.
func (s *NoOpTransactionScope) BrandRepo() inventory.BrandRepository {
	return s.brandRepo
}

// ManufactureRepo returns the manufacture repository.
func (s *NoOpTransactionScope) ManufactureRepo() inventory.ManufactureRepository {
	return s.manufactureRepo
}

// PurchaseTxRepo returns the purchase transaction repository.
func (s *NoOpTransactionScope) PurchaseTxRepo() trade.PurchaseTransactionRepository {
	return s.purchaseTxRepo
}

// SalesTxRepo returns the sales transaction repository.
func (s *NoOpTransactionScope) SalesTxRepo() trade.SalesTransactionRepository {
	return s.salesTxRepo
}

// PurchaseReturnRepo returns the purchase return repository.
func (s *NoOpTransactionScope) PurchaseReturnRepo() trade.PurchaseReturnRepository {
	return s.purchaseReturnRepo
}

// SalesReturnRepo returns the sales return repository.
func (s *NoOpTransactionScope) SalesReturnRepo() trade.SalesReturnRepository {
	return s.salesReturnRepo
}

// VendorTxRepo returns the vendor ledger repository.
func (s *NoOpTransactionScope) VendorTxRepo() ledger.VendorTransactionRepository {
	return s.vendorTxRepo
}

// DebtorTxRepo returns the debtor ledger repository.
func (s *NoOpTransactionScope) DebtorTxRepo() ledger.DebtorTransactionRepository {
	return s.debtorTxRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ Repositories = (*NoOpTransactionScope)(nil)
