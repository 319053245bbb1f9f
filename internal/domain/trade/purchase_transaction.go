package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbook/backend/internal/domain/shared"
)

// PurchaseTransaction is the aggregate root for one stock-in bill from a
// vendor. It owns its Purchase line items; the items cannot exist without it.
type PurchaseTransaction struct {
	shared.TenantEntity
	Date         time.Time            `gorm:"type:date;not null;index"`
	BillNo       string               `gorm:"type:varchar(50)"`
	VendorID     *uuid.UUID           `gorm:"type:uuid;index"`
	Method       shared.PaymentMethod `gorm:"type:varchar(20);not null"`
	CashAmount   decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	CardAmount   decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	OnlineAmount decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount  decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	AmountPaid   decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Items        []Purchase           `gorm:"foreignKey:TransactionID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PurchaseTransaction) TableName() string {
	return "purchase_transactions"
}

// Purchase is one line of a purchase bill. TotalPrice is snapshotted at
// creation and never recomputed.
type Purchase struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity      int             `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Returned      bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchaseTransaction creates a purchase bill with its line items.
func NewPurchaseTransaction(enterpriseID uuid.UUID, branchID *uuid.UUID, vendorID *uuid.UUID, date time.Time, billNo string, method shared.PaymentMethod, items []Purchase) (*PurchaseTransaction, error) {
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Purchase transaction requires at least one line item")
	}
	tx := &PurchaseTransaction{
		TenantEntity: shared.NewTenantEntity(enterpriseID, branchID),
		Date:         date,
		BillNo:       billNo,
		VendorID:     vendorID,
		Method:       method,
	}
	total := decimal.Zero
	for _, it := range items {
		line, err := newPurchaseLine(tx.ID, it)
		if err != nil {
			return nil, err
		}
		total = total.Add(line.TotalPrice)
		tx.Items = append(tx.Items, *line)
	}
	tx.TotalAmount = total
	tx.AmountPaid = total
	return tx, nil
}

func newPurchaseLine(txID uuid.UUID, it Purchase) (*Purchase, error) {
	if it.ProductID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Line item product ID cannot be empty")
	}
	if it.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Line item quantity must be positive")
	}
	if it.UnitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Line item unit price cannot be negative")
	}
	return &Purchase{
		ID:            uuid.New(),
		TransactionID: txID,
		ProductID:     it.ProductID,
		Quantity:      it.Quantity,
		UnitPrice:     it.UnitPrice,
		TotalPrice:    it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
	}, nil
}

// ReplaceItems swaps the line items for a new set and recomputes the total.
// The old items must already be reversed and deleted by the caller.
func (t *PurchaseTransaction) ReplaceItems(items []Purchase) error {
	if len(items) == 0 {
		return shared.NewDomainError("INVALID_ITEMS", "Purchase transaction requires at least one line item")
	}
	replaced := make([]Purchase, 0, len(items))
	total := decimal.Zero
	for _, it := range items {
		line, err := newPurchaseLine(t.ID, it)
		if err != nil {
			return err
		}
		total = total.Add(line.TotalPrice)
		replaced = append(replaced, *line)
	}
	t.Items = replaced
	t.TotalAmount = total
	return nil
}

// SetPayment records the method split and the amount actually paid.
func (t *PurchaseTransaction) SetPayment(cash, card, online, paid decimal.Decimal) {
	t.CashAmount = cash
	t.CardAmount = card
	t.OnlineAmount = online
	t.AmountPaid = paid
}

// ActiveItems returns the line items that have not been returned. Only these
// participate in stock reversal when the transaction is deleted.
func (t *PurchaseTransaction) ActiveItems() []Purchase {
	active := make([]Purchase, 0, len(t.Items))
	for _, it := range t.Items {
		if !it.Returned {
			active = append(active, it)
		}
	}
	return active
}

// HasReturnedItems reports whether any line item was already returned.
func (t *PurchaseTransaction) HasReturnedItems() bool {
	for _, it := range t.Items {
		if it.Returned {
			return true
		}
	}
	return false
}
