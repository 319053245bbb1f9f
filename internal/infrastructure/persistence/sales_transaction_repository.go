package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailbook/backend/internal/domain/shared"
	"github.com/retailbook/backend/internal/domain/trade"
)

// GormSalesTransactionRepository implements SalesTransactionRepository using GORM
type GormSalesTransactionRepository struct {
	db *gorm.DB
}

// NewGormSalesTransactionRepository creates a new GormSalesTransactionRepository
func NewGormSalesTransactionRepository(db *gorm.DB) *GormSalesTransactionRepository {
	return &GormSalesTransactionRepository{db: db}
}

// FindByID finds a customer bill with its line items
func (r *GormSalesTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesTransaction, error) {
	var tx trade.SalesTransaction
	if err := r.db.WithContext(ctx).Preload("Items").First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindByIDForTenant finds a customer bill by ID within a tenant
func (r *GormSalesTransactionRepository) FindByIDForTenant(ctx context.Context, id, enterpriseID uuid.UUID) (*trade.SalesTransaction, error) {
	var tx trade.SalesTransaction
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

// FindAllForEnterprise lists customer bills for a tenant with the total count
func (r *GormSalesTransactionRepository) FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]*trade.SalesTransaction, int64, error) {
	base := tenantScope(r.db.WithContext(ctx).Model(&trade.SalesTransaction{}), enterpriseID, branchID)
	if filter.Search != "" {
		base = base.Where("LOWER(customer_name) LIKE LOWER(?) OR phone_number LIKE ?",
			"%"+filter.Search+"%", filter.Search+"%")
	}
	base = windowScope(base, filter.StartDate, filter.EndDate)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txs []*trade.SalesTransaction
	listFilter := filter
	listFilter.StartDate = nil
	listFilter.EndDate = nil
	q := listScope(base, listFilter, "date DESC, bill_no DESC")
	if err := q.Preload("Items").Find(&txs).Error; err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

// FindItemsByIDs loads sale lines by their IDs
func (r *GormSalesTransactionRepository) FindItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]*trade.Sale, error) {
	if len(ids) == 0 {
		return []*trade.Sale{}, nil
	}
	var items []*trade.Sale
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// MaxBillNo returns the highest bill number issued for the branch. Callers
// resolve the next number inside the creating transaction so concurrent
// bills cannot share one.
func (r *GormSalesTransactionRepository) MaxBillNo(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID) (int, error) {
	var result struct {
		Max int
	}
	q := tenantScope(r.db.WithContext(ctx).Model(&trade.SalesTransaction{}), enterpriseID, branchID)
	if err := q.Select("COALESCE(MAX(bill_no), 0) as max").Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Max, nil
}

// Save creates or updates a customer bill with its line items
func (r *GormSalesTransactionRepository) Save(ctx context.Context, tx *trade.SalesTransaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

// SaveItems updates existing sale lines, used to flag returns
func (r *GormSalesTransactionRepository) SaveItems(ctx context.Context, items []*trade.Sale) error {
	for _, it := range items {
		if err := r.db.WithContext(ctx).Save(it).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeleteItems removes every line of a customer bill
func (r *GormSalesTransactionRepository) DeleteItems(ctx context.Context, transactionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&trade.Sale{}, "transaction_id = ?", transactionID).Error
}

// Delete deletes a customer bill
func (r *GormSalesTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.SalesTransaction{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormSalesTransactionRepository implements SalesTransactionRepository
var _ trade.SalesTransactionRepository = (*GormSalesTransactionRepository)(nil)
