package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbook/backend/internal/domain/shared"
)

// Manufacture records a production-in event: finished goods entering stock.
type Manufacture struct {
	shared.TenantEntity
	Date  time.Time         `gorm:"type:date;not null;index"`
	Items []ManufactureItem `gorm:"foreignKey:ManufactureID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Manufacture) TableName() string {
	return "manufactures"
}

// ManufactureItem adds Quantity units of a product. The stock monetary delta
// is taken from the product's current selling price, not from UnitPrice;
// UnitPrice records the production cost for reporting only.
type ManufactureItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	ManufactureID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity      int             `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (ManufactureItem) TableName() string {
	return "manufacture_items"
}

// NewManufacture creates a production event with its items.
func NewManufacture(enterpriseID uuid.UUID, branchID *uuid.UUID, date time.Time, items []ManufactureItem) (*Manufacture, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Manufacture requires at least one item")
	}
	m := &Manufacture{
		TenantEntity: shared.NewTenantEntity(enterpriseID, branchID),
		Date:         date,
	}
	for _, it := range items {
		if it.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Manufacture item product ID cannot be empty")
		}
		if it.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Manufacture item quantity must be positive")
		}
		it.ID = uuid.New()
		it.ManufactureID = m.ID
		m.Items = append(m.Items, it)
	}
	return m, nil
}

// ReplaceItems swaps the produced lines for a new set. The old lines must
// already be reversed and deleted by the caller.
func (m *Manufacture) ReplaceItems(items []ManufactureItem) error {
	if len(items) == 0 {
		return shared.NewDomainError("INVALID_ITEMS", "Manufacture requires at least one item")
	}
	replaced := make([]ManufactureItem, 0, len(items))
	for _, it := range items {
		if it.ProductID == uuid.Nil {
			return shared.NewDomainError("INVALID_PRODUCT", "Manufacture item product ID cannot be empty")
		}
		if it.Quantity <= 0 {
			return shared.NewDomainError("INVALID_QUANTITY", "Manufacture item quantity must be positive")
		}
		it.ID = uuid.New()
		it.ManufactureID = m.ID
		replaced = append(replaced, it)
	}
	m.Items = replaced
	return nil
}
