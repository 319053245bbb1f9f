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

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Product, error) {
	var product inventory.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDForUpdate finds a product by ID holding an exclusive row lock until
// the enclosing transaction ends.
func (r *GormProductRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Product, error) {
	var product inventory.Product
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByUID finds a product by its barcode identifier within a tenant
func (r *GormProductRepository) FindByUID(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, uid string) (*inventory.Product, error) {
	var product inventory.Product
	q := tenantScope(r.db.WithContext(ctx), enterpriseID, branchID).Where("uid = ?", uid)
	if err := q.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAllForEnterprise lists products for a tenant
func (r *GormProductRepository) FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]inventory.Product, error) {
	var products []inventory.Product
	q := tenantScope(r.db.WithContext(ctx).Model(&inventory.Product{}), enterpriseID, branchID)
	if filter.Search != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?) OR uid LIKE ?", "%"+filter.Search+"%", filter.Search+"%")
	}
	q = listScope(q, filter, "name ASC")
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByBrand lists products under a brand
func (r *GormProductRepository) FindByBrand(ctx context.Context, brandID uuid.UUID) ([]inventory.Product, error) {
	var products []inventory.Product
	if err := r.db.WithContext(ctx).
		Where("brand_id = ?", brandID).
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ExistsByUID checks UID uniqueness across all tenants
func (r *GormProductRepository) ExistsByUID(ctx context.Context, uid string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Product{}).
		Where("uid = ?", uid).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountForEnterprise counts products for a tenant
func (r *GormProductRepository) CountForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID) (int64, error) {
	var count int64
	q := tenantScope(r.db.WithContext(ctx).Model(&inventory.Product{}), enterpriseID, branchID)
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *inventory.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormProductRepository implements ProductRepository
var _ inventory.ProductRepository = (*GormProductRepository)(nil)
