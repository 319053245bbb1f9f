package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailbook/backend/internal/domain/ledger"
	"github.com/retailbook/backend/internal/domain/shared"
)

// gormPartyRepository is the shared GORM implementation for the three party
// aggregates. Vendors, debtors and staff persist identically; only the table
// differs.
type gormPartyRepository[T any] struct {
	db *gorm.DB
}

func (r *gormPartyRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *gormPartyRepository[T]) FindByIDForTenant(ctx context.Context, id, enterpriseID uuid.UUID) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).
		Where("id = ? AND enterprise_id = ?", id, enterpriseID).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *gormPartyRepository[T]) FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]*T, int64, error) {
	var model T
	base := tenantScope(r.db.WithContext(ctx).Model(&model), enterpriseID, branchID)
	if filter.Search != "" {
		base = base.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entities []*T
	q := listScope(base, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
	}, "name ASC")
	if err := q.Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *gormPartyRepository[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *gormPartyRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
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

// GormVendorRepository implements VendorRepository using GORM
type GormVendorRepository struct {
	gormPartyRepository[ledger.Vendor]
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{gormPartyRepository[ledger.Vendor]{db: db}}
}

// GormDebtorRepository implements DebtorRepository using GORM
type GormDebtorRepository struct {
	gormPartyRepository[ledger.Debtor]
}

// NewGormDebtorRepository creates a new GormDebtorRepository
func NewGormDebtorRepository(db *gorm.DB) *GormDebtorRepository {
	return &GormDebtorRepository{gormPartyRepository[ledger.Debtor]{db: db}}
}

// GormStaffRepository implements StaffRepository using GORM
type GormStaffRepository struct {
	gormPartyRepository[ledger.Staff]
}

// NewGormStaffRepository creates a new GormStaffRepository
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{gormPartyRepository[ledger.Staff]{db: db}}
}

// Ensure the repositories implement their interfaces
var _ ledger.VendorRepository = (*GormVendorRepository)(nil)
var _ ledger.DebtorRepository = (*GormDebtorRepository)(nil)
var _ ledger.StaffRepository = (*GormStaffRepository)(nil)
