package trade

import (
	"time"

	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/domain/shared"
)

// PurchaseReturn sends purchased goods back to the vendor. It references the
// line items it reversed; those lines carry Returned=true from then on.
type PurchaseReturn struct {
	shared.TenantEntity
	TransactionID uuid.UUID            `gorm:"type:uuid;not null;index"`
	Date          time.Time            `gorm:"type:date;not null;index"`
	PurchaseIDs   []uuid.UUID          `gorm:"-"`
	Lines         []PurchaseReturnLine `gorm:"foreignKey:ReturnID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PurchaseReturn) TableName() string {
	return "purchase_returns"
}

// PurchaseReturnLine links a return to one reversed purchase line.
type PurchaseReturnLine struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	ReturnID   uuid.UUID `gorm:"type:uuid;not null;index"`
	PurchaseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (PurchaseReturnLine) TableName() string {
	return "purchase_return_lines"
}

// NewPurchaseReturn creates a return against the given purchase lines.
func NewPurchaseReturn(enterpriseID uuid.UUID, branchID *uuid.UUID, transactionID uuid.UUID, date time.Time, purchaseIDs []uuid.UUID) (*PurchaseReturn, error) {
	if transactionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TRANSACTION", "Return must reference a purchase transaction")
	}
	if len(purchaseIDs) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Return requires at least one line item")
	}
	r := &PurchaseReturn{
		TenantEntity:  shared.NewTenantEntity(enterpriseID, branchID),
		TransactionID: transactionID,
		Date:          date,
		PurchaseIDs:   purchaseIDs,
	}
	for _, pid := range purchaseIDs {
		r.Lines = append(r.Lines, PurchaseReturnLine{ID: uuid.New(), ReturnID: r.ID, PurchaseID: pid})
	}
	return r, nil
}

// SalesReturn takes sold goods back from a customer.
type SalesReturn struct {
	shared.TenantEntity
	TransactionID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Date          time.Time         `gorm:"type:date;not null;index"`
	SaleIDs       []uuid.UUID       `gorm:"-"`
	Lines         []SalesReturnLine `gorm:"foreignKey:ReturnID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SalesReturn) TableName() string {
	return "sales_returns"
}

// SalesReturnLine links a return to one reversed sale line.
type SalesReturnLine struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	ReturnID uuid.UUID `gorm:"type:uuid;not null;index"`
	SaleID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (SalesReturnLine) TableName() string {
	return "sales_return_lines"
}

// NewSalesReturn creates a return against the given sale lines.
func NewSalesReturn(enterpriseID uuid.UUID, branchID *uuid.UUID, transactionID uuid.UUID, date time.Time, saleIDs []uuid.UUID) (*SalesReturn, error) {
	if transactionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TRANSACTION", "Return must reference a sales transaction")
	}
	if len(saleIDs) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Return requires at least one line item")
	}
	r := &SalesReturn{
		TenantEntity:  shared.NewTenantEntity(enterpriseID, branchID),
		TransactionID: transactionID,
		Date:          date,
		SaleIDs:       saleIDs,
	}
	for _, sid := range saleIDs {
		r.Lines = append(r.Lines, SalesReturnLine{ID: uuid.New(), ReturnID: r.ID, SaleID: sid})
	}
	return r, nil
}
