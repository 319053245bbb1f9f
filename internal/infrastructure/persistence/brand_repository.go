package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retailbook/backend/internal/domain/inventory"
	"github.com/retailbook/backend/internal/domain/shared"
)

// GormBrandRepository implements BrandRepository using GORM
type GormBrandRepository struct {
	db *gorm.DB
}

// NewGormBrandRepository creates a new GormBrandRepository
func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// FindByID finds a brand by its ID
func (r *GormBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Brand, error) {
	var brand inventory.Brand
	if err := r.db.WithContext(ctx).First(&brand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &brand, nil
}

// FindByIDForUpdate finds a brand by ID holding an exclusive row lock until
// the enclosing transaction ends.
func (r *GormBrandRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Brand, error) {
	var brand inventory.Brand
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&brand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &brand, nil
}

// FindByName finds a brand by name within a tenant, case-insensitively
func (r *GormBrandRepository) FindByName(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, name string) (*inventory.Brand, error) {
	var brand inventory.Brand
	q := tenantScope(r.db.WithContext(ctx), enterpriseID, branchID).
		Where("LOWER(name) = LOWER(?)", name)
	if err := q.First(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &brand, nil
}

// FindAllForEnterprise lists brands for a tenant
func (r *GormBrandRepository) FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID) ([]inventory.Brand, error) {
	var brands []inventory.Brand
	q := tenantScope(r.db.WithContext(ctx).Model(&inventory.Brand{}), enterpriseID, branchID)
	if err := q.Order("name ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// CountForEnterprise counts brands for a tenant
func (r *GormBrandRepository) CountForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID) (int64, error) {
	var count int64
	q := tenantScope(r.db.WithContext(ctx).Model(&inventory.Brand{}), enterpriseID, branchID)
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a brand
func (r *GormBrandRepository) Save(ctx context.Context, brand *inventory.Brand) error {
	return r.db.WithContext(ctx).Save(brand).Error
}

// Delete deletes a brand
func (r *GormBrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Brand{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormBrandRepository implements BrandRepository
var _ inventory.BrandRepository = (*GormBrandRepository)(nil)
