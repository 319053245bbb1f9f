package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbook/backend/internal/domain/shared"
)

// IncentiveProduct names a product category that pays staff a sales
// incentive at the given rate.
type IncentiveProduct struct {
	shared.TenantEntity
	Name string          `gorm:"size:255;not null"`
	Rate decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (IncentiveProduct) TableName() string {
	return "incentive_products"
}

// NewIncentiveProduct creates an incentive entry.
func NewIncentiveProduct(enterpriseID uuid.UUID, branchID *uuid.UUID, name string, rate decimal.Decimal) (*IncentiveProduct, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Incentive name cannot be empty")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Incentive rate cannot be negative")
	}
	return &IncentiveProduct{
		TenantEntity: shared.NewTenantEntity(enterpriseID, branchID),
		Name:         name,
		Rate:         rate,
	}, nil
}

// SetRate changes the incentive rate.
func (i *IncentiveProduct) SetRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Incentive rate cannot be negative")
	}
	i.Rate = rate
	return nil
}
