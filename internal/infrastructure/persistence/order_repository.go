package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailbook/backend/internal/domain/order"
	"github.com/retailbook/backend/internal/domain/shared"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByIDForTenant finds an order by ID within a tenant
func (r *GormOrderRepository) FindByIDForTenant(ctx context.Context, id, enterpriseID uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND enterprise_id = ?", id, enterpriseID).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAllForEnterprise lists orders for a tenant, optionally by status, with
// the total count
func (r *GormOrderRepository) FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, status *order.Status, filter shared.Filter) ([]*order.Order, int64, error) {
	base := tenantScope(r.db.WithContext(ctx).Model(&order.Order{}), enterpriseID, branchID)
	if status != nil {
		base = base.Where("status = ?", *status)
	}
	if filter.Search != "" {
		base = base.Where("LOWER(customer_name) LIKE LOWER(?) OR phone_number LIKE ?",
			"%"+filter.Search+"%", filter.Search+"%")
	}
	if filter.StartDate != nil {
		base = base.Where("order_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		base = base.Where("order_date <= ?", *filter.EndDate)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []*order.Order
	listFilter := filter
	listFilter.StartDate = nil
	listFilter.EndDate = nil
	if listFilter.OrderBy == "" {
		listFilter.OrderBy = "order_date"
		listFilter.OrderDir = "desc"
	}
	if err := listScope(base, listFilter, "").Preload("Items").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// FindInWindow lists orders whose order date falls inside the closed window
func (r *GormOrderRepository) FindInWindow(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, from, to time.Time) ([]*order.Order, error) {
	var orders []*order.Order
	q := tenantScope(r.db.WithContext(ctx).Model(&order.Order{}), enterpriseID, branchID).
		Where("order_date >= ? AND order_date <= ?", from, to)
	if err := q.Order("order_date ASC").Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order with its items
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

// DeleteItems removes every item of an order
func (r *GormOrderRepository) DeleteItems(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&order.OrderItem{}, "order_id = ?", orderID).Error
}

// Delete deletes an order
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&order.Order{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
