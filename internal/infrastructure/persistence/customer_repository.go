package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/retailbook/backend/internal/domain/ledger"
	"github.com/retailbook/backend/internal/domain/shared"
	"github.com/retailbook/backend/internal/domain/trade"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by their ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Customer, error) {
	var c ledger.Customer
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByPhone finds a customer by phone number within an enterprise
func (r *GormCustomerRepository) FindByPhone(ctx context.Context, enterpriseID uuid.UUID, phoneNumber string) (*ledger.Customer, error) {
	var c ledger.Customer
	if err := r.db.WithContext(ctx).
		Where("enterprise_id = ? AND phone_number = ?", enterpriseID, phoneNumber).
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindAllForEnterprise lists customers for a tenant with the total count
func (r *GormCustomerRepository) FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]*ledger.Customer, int64, error) {
	base := tenantScope(r.db.WithContext(ctx).Model(&ledger.Customer{}), enterpriseID, branchID)
	if filter.Search != "" {
		base = base.Where("LOWER(name) LIKE LOWER(?) OR phone_number LIKE ?",
			"%"+filter.Search+"%", filter.Search+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []*ledger.Customer
	if err := listScope(base, filter, "name ASC").Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// LifetimeSpend folds sale totals recorded under the customer's phone number
// across every branch of the enterprise.
func (r *GormCustomerRepository) LifetimeSpend(ctx context.Context, enterpriseID uuid.UUID, phoneNumber string) (decimal.Decimal, int, error) {
	var result struct {
		Total decimal.Decimal
		Bills int64
	}
	if err := r.db.WithContext(ctx).
		Model(&trade.SalesTransaction{}).
		Select("COALESCE(SUM(total_amount), 0) as total, COUNT(*) as bills").
		Where("enterprise_id = ? AND phone_number = ?", enterpriseID, phoneNumber).
		Scan(&result).Error; err != nil {
		return decimal.Zero, 0, err
	}
	return result.Total, int(result.Bills), nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, c *ledger.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete deletes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ ledger.CustomerRepository = (*GormCustomerRepository)(nil)
