package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailbook/backend/internal/domain/ledger"
	"github.com/retailbook/backend/internal/domain/shared"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Expense, error) {
	var e ledger.Expense
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// FindAllForEnterprise lists expenses for a tenant with the total count
func (r *GormExpenseRepository) FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]*ledger.Expense, int64, error) {
	base := tenantScope(r.db.WithContext(ctx).Model(&ledger.Expense{}), enterpriseID, branchID)
	if filter.Search != "" {
		base = base.Where("LOWER(description) LIKE LOWER(?)", "%"+filter.Search+"%")
	}
	base = windowScope(base, filter.StartDate, filter.EndDate)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var expenses []*ledger.Expense
	listFilter := filter
	listFilter.StartDate = nil
	listFilter.EndDate = nil
	if err := listScope(base, listFilter, "date DESC").Find(&expenses).Error; err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

// FindInWindow lists expenses inside a closed date window
func (r *GormExpenseRepository) FindInWindow(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, from, to time.Time) ([]*ledger.Expense, error) {
	var expenses []*ledger.Expense
	q := tenantScope(r.db.WithContext(ctx).Model(&ledger.Expense{}), enterpriseID, branchID).
		Where("date >= ? AND date <= ?", from, to)
	if err := q.Order("date ASC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, e *ledger.Expense) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// Delete deletes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.Expense{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormWithdrawalRepository implements WithdrawalRepository using GORM
type GormWithdrawalRepository struct {
	db *gorm.DB
}

// NewGormWithdrawalRepository creates a new GormWithdrawalRepository
func NewGormWithdrawalRepository(db *gorm.DB) *GormWithdrawalRepository {
	return &GormWithdrawalRepository{db: db}
}

// FindByID finds a withdrawal by its ID
func (r *GormWithdrawalRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Withdrawal, error) {
	var w ledger.Withdrawal
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

// FindAllForEnterprise lists withdrawals for a tenant with the total count
func (r *GormWithdrawalRepository) FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]*ledger.Withdrawal, int64, error) {
	base := tenantScope(r.db.WithContext(ctx).Model(&ledger.Withdrawal{}), enterpriseID, branchID)
	base = windowScope(base, filter.StartDate, filter.EndDate)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var withdrawals []*ledger.Withdrawal
	listFilter := filter
	listFilter.StartDate = nil
	listFilter.EndDate = nil
	if err := listScope(base, listFilter, "date DESC").Find(&withdrawals).Error; err != nil {
		return nil, 0, err
	}
	return withdrawals, total, nil
}

// FindInWindow lists withdrawals inside a closed date window
func (r *GormWithdrawalRepository) FindInWindow(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, from, to time.Time) ([]*ledger.Withdrawal, error) {
	var withdrawals []*ledger.Withdrawal
	q := tenantScope(r.db.WithContext(ctx).Model(&ledger.Withdrawal{}), enterpriseID, branchID).
		Where("date >= ? AND date <= ?", from, to)
	if err := q.Order("date ASC").Find(&withdrawals).Error; err != nil {
		return nil, err
	}
	return withdrawals, nil
}

// Save creates or updates a withdrawal
func (r *GormWithdrawalRepository) Save(ctx context.Context, w *ledger.Withdrawal) error {
	return r.db.WithContext(ctx).Save(w).Error
}

// Delete deletes a withdrawal
func (r *GormWithdrawalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.Withdrawal{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormClosingCashRepository implements ClosingCashRepository using GORM
type GormClosingCashRepository struct {
	db *gorm.DB
}

// NewGormClosingCashRepository creates a new GormClosingCashRepository
func NewGormClosingCashRepository(db *gorm.DB) *GormClosingCashRepository {
	return &GormClosingCashRepository{db: db}
}

// FindByDate finds the snapshot for one day
func (r *GormClosingCashRepository) FindByDate(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, date time.Time) (*ledger.ClosingCash, error) {
	var c ledger.ClosingCash
	q := tenantScope(r.db.WithContext(ctx), enterpriseID, branchID).Where("date = ?", date)
	if err := q.First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindLatestBefore returns the most recent snapshot with date <= the given
// date, or ErrNotFound when none exists
func (r *GormClosingCashRepository) FindLatestBefore(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, date time.Time) (*ledger.ClosingCash, error) {
	var c ledger.ClosingCash
	q := tenantScope(r.db.WithContext(ctx), enterpriseID, branchID).
		Where("date <= ?", date).
		Order("date DESC")
	if err := q.First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Upsert writes the snapshot for its day, replacing any existing one
func (r *GormClosingCashRepository) Upsert(ctx context.Context, c *ledger.ClosingCash) error {
	existing, err := r.FindByDate(ctx, c.EnterpriseID, c.BranchID, c.Date)
	if errors.Is(err, shared.ErrNotFound) {
		return r.db.WithContext(ctx).Create(c).Error
	}
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&ledger.ClosingCash{}).
		Where("id = ?", existing.ID).
		Update("amount", c.Amount).Error
}

// Ensure the repositories implement their interfaces
var _ ledger.ExpenseRepository = (*GormExpenseRepository)(nil)
var _ ledger.WithdrawalRepository = (*GormWithdrawalRepository)(nil)
var _ ledger.ClosingCashRepository = (*GormClosingCashRepository)(nil)
