package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailbook/backend/internal/domain/inventory"
	"github.com/retailbook/backend/internal/domain/shared"
)

// GormIncentiveProductRepository implements IncentiveProductRepository using GORM
type GormIncentiveProductRepository struct {
	db *gorm.DB
}

// NewGormIncentiveProductRepository creates a new GormIncentiveProductRepository
func NewGormIncentiveProductRepository(db *gorm.DB) *GormIncentiveProductRepository {
	return &GormIncentiveProductRepository{db: db}
}

// FindByID finds an incentive entry by its ID
func (r *GormIncentiveProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.IncentiveProduct, error) {
	var entry inventory.IncentiveProduct
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindAllForEnterprise lists incentive entries for a tenant, ordered by name
func (r *GormIncentiveProductRepository) FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID) ([]inventory.IncentiveProduct, error) {
	var entries []inventory.IncentiveProduct
	q := tenantScope(r.db.WithContext(ctx).Model(&inventory.IncentiveProduct{}), enterpriseID, branchID)
	if err := q.Order("name ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Save creates or updates an incentive entry
func (r *GormIncentiveProductRepository) Save(ctx context.Context, entry *inventory.IncentiveProduct) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Delete deletes an incentive entry
func (r *GormIncentiveProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.IncentiveProduct{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormIncentiveProductRepository implements IncentiveProductRepository
var _ inventory.IncentiveProductRepository = (*GormIncentiveProductRepository)(nil)
