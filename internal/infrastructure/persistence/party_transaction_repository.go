package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/retailbook/backend/internal/domain/ledger"
	"github.com/retailbook/backend/internal/domain/shared"
)

// gormPartyTxRepository is the shared GORM implementation over one party
// ledger table. partyColumn names the owning party's foreign key.
type gormPartyTxRepository[T any] struct {
	db          *gorm.DB
	partyColumn string
}

func (r *gormPartyTxRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entry T
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *gormPartyTxRepository[T]) FindForParty(ctx context.Context, partyID uuid.UUID, from, to *time.Time) ([]*T, error) {
	var model T
	var entries []*T
	q := r.db.WithContext(ctx).Model(&model).Where(r.partyColumn+" = ?", partyID)
	q = windowScope(q, from, to)
	if err := q.Order("date ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *gormPartyTxRepository[T]) SumAmountBefore(ctx context.Context, partyID uuid.UUID, before time.Time) (decimal.Decimal, error) {
	var model T
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&model).
		Select("COALESCE(SUM(amount), 0) as total").
		Where(r.partyColumn+" = ? AND date < ?", partyID, before).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

func (r *gormPartyTxRepository[T]) Save(ctx context.Context, entry *T) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *gormPartyTxRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	var model T
	result := r.db.WithContext(ctx).Delete(&model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormVendorTransactionRepository implements VendorTransactionRepository using GORM
type GormVendorTransactionRepository struct {
	gormPartyTxRepository[ledger.VendorTransaction]
}

// NewGormVendorTransactionRepository creates a new GormVendorTransactionRepository
func NewGormVendorTransactionRepository(db *gorm.DB) *GormVendorTransactionRepository {
	return &GormVendorTransactionRepository{gormPartyTxRepository[ledger.VendorTransaction]{db: db, partyColumn: "vendor_id"}}
}

// FindBySourceTransaction loads the entries a credit purchase generated
func (r *GormVendorTransactionRepository) FindBySourceTransaction(ctx context.Context, purchaseTransactionID uuid.UUID) ([]*ledger.VendorTransaction, error) {
	var entries []*ledger.VendorTransaction
	if err := r.db.WithContext(ctx).
		Where("purchase_transaction_id = ?", purchaseTransactionID).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteBySourceTransaction removes the entries a credit purchase generated
func (r *GormVendorTransactionRepository) DeleteBySourceTransaction(ctx context.Context, purchaseTransactionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&ledger.VendorTransaction{}, "purchase_transaction_id = ?", purchaseTransactionID).Error
}

// GormDebtorTransactionRepository implements DebtorTransactionRepository using GORM
type GormDebtorTransactionRepository struct {
	gormPartyTxRepository[ledger.DebtorTransaction]
}

// NewGormDebtorTransactionRepository creates a new GormDebtorTransactionRepository
func NewGormDebtorTransactionRepository(db *gorm.DB) *GormDebtorTransactionRepository {
	return &GormDebtorTransactionRepository{gormPartyTxRepository[ledger.DebtorTransaction]{db: db, partyColumn: "debtor_id"}}
}

// FindBySourceTransaction loads the entries a credit sale generated
func (r *GormDebtorTransactionRepository) FindBySourceTransaction(ctx context.Context, salesTransactionID uuid.UUID) ([]*ledger.DebtorTransaction, error) {
	var entries []*ledger.DebtorTransaction
	if err := r.db.WithContext(ctx).
		Where("sales_transaction_id = ?", salesTransactionID).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteBySourceTransaction removes the entries a credit sale generated
func (r *GormDebtorTransactionRepository) DeleteBySourceTransaction(ctx context.Context, salesTransactionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&ledger.DebtorTransaction{}, "sales_transaction_id = ?", salesTransactionID).Error
}

// SumSettlementsInWindow sums debtor settlements in the window. Credit
// entries record the debt itself and are excluded; the cash share is broken
// out because only it moves the drawer.
func (r *GormDebtorTransactionRepository) SumSettlementsInWindow(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, from, to time.Time) (ledger.SettlementSums, error) {
	var result struct {
		Total decimal.Decimal
		Cash  decimal.Decimal
	}
	q := tenantScope(r.db.WithContext(ctx).Model(&ledger.DebtorTransaction{}), enterpriseID, branchID)
	if err := q.
		Select("COALESCE(SUM(amount), 0) as total, COALESCE(SUM(CASE WHEN method = ? THEN amount ELSE 0 END), 0) as cash", shared.PaymentCash).
		Where("method <> ? AND date >= ? AND date <= ?", shared.PaymentCredit, from, to).
		Scan(&result).Error; err != nil {
		return ledger.SettlementSums{Total: decimal.Zero, Cash: decimal.Zero}, err
	}
	return ledger.SettlementSums{Total: result.Total, Cash: result.Cash}, nil
}

// GormStaffTransactionRepository implements StaffTransactionRepository using GORM
type GormStaffTransactionRepository struct {
	gormPartyTxRepository[ledger.StaffTransaction]
}

// NewGormStaffTransactionRepository creates a new GormStaffTransactionRepository
func NewGormStaffTransactionRepository(db *gorm.DB) *GormStaffTransactionRepository {
	return &GormStaffTransactionRepository{gormPartyTxRepository[ledger.StaffTransaction]{db: db, partyColumn: "staff_id"}}
}

// Ensure the repositories implement their interfaces
var _ ledger.VendorTransactionRepository = (*GormVendorTransactionRepository)(nil)
var _ ledger.DebtorTransactionRepository = (*GormDebtorTransactionRepository)(nil)
var _ ledger.StaffTransactionRepository = (*GormStaffTransactionRepository)(nil)
