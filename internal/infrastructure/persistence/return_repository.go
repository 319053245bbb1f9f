package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailbook/backend/internal/domain/shared"
	"github.com/retailbook/backend/internal/domain/trade"
)

// GormPurchaseReturnRepository implements PurchaseReturnRepository using GORM
type GormPurchaseReturnRepository struct {
	db *gorm.DB
}

// NewGormPurchaseReturnRepository creates a new GormPurchaseReturnRepository
func NewGormPurchaseReturnRepository(db *gorm.DB) *GormPurchaseReturnRepository {
	return &GormPurchaseReturnRepository{db: db}
}

// FindByID finds a purchase return with its lines
func (r *GormPurchaseReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseReturn, error) {
	var ret trade.PurchaseReturn
	if err := r.db.WithContext(ctx).Preload("Lines").First(&ret, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	hydratePurchaseIDs(&ret)
	return &ret, nil
}

// FindAllForEnterprise lists purchase returns in an optional date window
func (r *GormPurchaseReturnRepository) FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, from, to *time.Time) ([]*trade.PurchaseReturn, error) {
	var rets []*trade.PurchaseReturn
	q := tenantScope(r.db.WithContext(ctx).Model(&trade.PurchaseReturn{}), enterpriseID, branchID)
	q = windowScope(q, from, to)
	if err := q.Order("date DESC").Preload("Lines").Find(&rets).Error; err != nil {
		return nil, err
	}
	for _, ret := range rets {
		hydratePurchaseIDs(ret)
	}
	return rets, nil
}

// Save creates a purchase return with its lines
func (r *GormPurchaseReturnRepository) Save(ctx context.Context, ret *trade.PurchaseReturn) error {
	return r.db.WithContext(ctx).Save(ret).Error
}

// Delete deletes a purchase return
func (r *GormPurchaseReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.PurchaseReturn{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// hydratePurchaseIDs rebuilds the transient ID slice from the loaded lines.
func hydratePurchaseIDs(ret *trade.PurchaseReturn) {
	ret.PurchaseIDs = make([]uuid.UUID, 0, len(ret.Lines))
	for _, line := range ret.Lines {
		ret.PurchaseIDs = append(ret.PurchaseIDs, line.PurchaseID)
	}
}

// GormSalesReturnRepository implements SalesReturnRepository using GORM
type GormSalesReturnRepository struct {
	db *gorm.DB
}

// NewGormSalesReturnRepository creates a new GormSalesReturnRepository
func NewGormSalesReturnRepository(db *gorm.DB) *GormSalesReturnRepository {
	return &GormSalesReturnRepository{db: db}
}

// FindByID finds a sales return with its lines
func (r *GormSalesReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesReturn, error) {
	var ret trade.SalesReturn
	if err := r.db.WithContext(ctx).Preload("Lines").First(&ret, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	hydrateSaleIDs(&ret)
	return &ret, nil
}

// FindAllForEnterprise lists sales returns in an optional date window
func (r *GormSalesReturnRepository) FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, from, to *time.Time) ([]*trade.SalesReturn, error) {
	var rets []*trade.SalesReturn
	q := tenantScope(r.db.WithContext(ctx).Model(&trade.SalesReturn{}), enterpriseID, branchID)
	q = windowScope(q, from, to)
	if err := q.Order("date DESC").Preload("Lines").Find(&rets).Error; err != nil {
		return nil, err
	}
	for _, ret := range rets {
		hydrateSaleIDs(ret)
	}
	return rets, nil
}

// Save creates a sales return with its lines
func (r *GormSalesReturnRepository) Save(ctx context.Context, ret *trade.SalesReturn) error {
	return r.db.WithContext(ctx).Save(ret).Error
}

// Delete deletes a sales return
func (r *GormSalesReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.SalesReturn{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// hydrateSaleIDs rebuilds the transient ID slice from the loaded lines.
func hydrateSaleIDs(ret *trade.SalesReturn) {
	ret.SaleIDs = make([]uuid.UUID, 0, len(ret.Lines))
	for _, line := range ret.Lines {
		ret.SaleIDs = append(ret.SaleIDs, line.SaleID)
	}
}

// Ensure the repositories implement their interfaces
var _ trade.PurchaseReturnRepository = (*GormPurchaseReturnRepository)(nil)
var _ trade.SalesReturnRepository = (*GormSalesReturnRepository)(nil)
