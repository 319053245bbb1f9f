package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailbook/backend/internal/domain/shared"
	"github.com/retailbook/backend/internal/domain/trade"
)

// GormPurchaseTransactionRepository implements PurchaseTransactionRepository using GORM
type GormPurchaseTransactionRepository struct {
	db *gorm.DB
}

// NewGormPurchaseTransactionRepository creates a new GormPurchaseTransactionRepository
func NewGormPurchaseTransactionRepository(db *gorm.DB) *GormPurchaseTransactionRepository {
	return &GormPurchaseTransactionRepository{db: db}
}

// FindByID finds a purchase bill with its line items
func (r *GormPurchaseTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseTransaction, error) {
	var tx trade.PurchaseTransaction
	if err := r.db.WithContext(ctx).Preload("Items").First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindByIDForTenant finds a purchase bill by ID within a tenant
func (r *GormPurchaseTransactionRepository) FindByIDForTenant(ctx context.Context, id, enterpriseID uuid.UUID) (*trade.PurchaseTransaction, error) {
	var tx trade.PurchaseTransaction
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND enterprise_id = ?", id, enterpriseID).
		First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindAllForEnterprise lists purchase bills for a tenant with the total count
func (r *GormPurchaseTransactionRepository) FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]*trade.PurchaseTransaction, int64, error) {
	base := tenantScope(r.db.WithContext(ctx).Model(&trade.PurchaseTransaction{}), enterpriseID, branchID)
	if filter.Search != "" {
		base = base.Where("bill_no LIKE ?", "%"+filter.Search+"%")
	}
	base = windowScope(base, filter.StartDate, filter.EndDate)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txs []*trade.PurchaseTransaction
	listFilter := filter
	listFilter.StartDate = nil
	listFilter.EndDate = nil
	q := listScope(base, listFilter, "date DESC, created_at DESC")
	if err := q.Preload("Items").Find(&txs).Error; err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

// FindItemsByIDs loads purchase lines by their IDs
func (r *GormPurchaseTransactionRepository) FindItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]*trade.Purchase, error) {
	if len(ids) == 0 {
		return []*trade.Purchase{}, nil
	}
	var items []*trade.Purchase
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates a purchase bill with its line items
func (r *GormPurchaseTransactionRepository) Save(ctx context.Context, tx *trade.PurchaseTransaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

// SaveItems updates existing purchase lines, used to flag returns
func (r *GormPurchaseTransactionRepository) SaveItems(ctx context.Context, items []*trade.Purchase) error {
	for _, it := range items {
		if err := r.db.WithContext(ctx).Save(it).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeleteItems removes every line of a purchase bill
func (r *GormPurchaseTransactionRepository) DeleteItems(ctx context.Context, transactionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&trade.Purchase{}, "transaction_id = ?", transactionID).Error
}

// Delete deletes a purchase bill
func (r *GormPurchaseTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.PurchaseTransaction{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormPurchaseTransactionRepository implements PurchaseTransactionRepository
var _ trade.PurchaseTransactionRepository = (*GormPurchaseTransactionRepository)(nil)
