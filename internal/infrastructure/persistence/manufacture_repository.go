package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailbook/backend/internal/domain/inventory"
	"github.com/retailbook/backend/internal/domain/shared"
)

// GormManufactureRepository implements ManufactureRepository using GORM
type GormManufactureRepository struct {
	db *gorm.DB
}

// NewGormManufactureRepository creates a new GormManufactureRepository
func NewGormManufactureRepository(db *gorm.DB) *GormManufactureRepository {
	return &GormManufactureRepository{db: db}
}

// FindByID finds a production event with its items
func (r *GormManufactureRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Manufacture, error) {
	var m inventory.Manufacture
	if err := r.db.WithContext(ctx).Preload("Items").First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindAllForEnterprise lists production events for a tenant
func (r *GormManufactureRepository) FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]inventory.Manufacture, error) {
	var ms []inventory.Manufacture
	q := tenantScope(r.db.WithContext(ctx).Model(&inventory.Manufacture{}), enterpriseID, branchID)
	q = listScope(q, filter, "date DESC")
	if err := q.Preload("Items").Find(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}

// Save creates or updates a production event with its items
func (r *GormManufactureRepository) Save(ctx context.Context, m *inventory.Manufacture) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// DeleteItems removes the items of a production event
func (r *GormManufactureRepository) DeleteItems(ctx context.Context, manufactureID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&inventory.ManufactureItem{}, "manufacture_id = ?", manufactureID).Error
}

// Delete deletes a production event
func (r *GormManufactureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Manufacture{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormManufactureRepository implements ManufactureRepository
var _ inventory.ManufactureRepository = (*GormManufactureRepository)(nil)
