package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbook/backend/internal/domain/shared"
)

// SalesTransaction is the aggregate root for one customer bill. It owns its
// Sale line items.
type SalesTransaction struct {
	shared.TenantEntity
	Date         time.Time            `gorm:"type:date;not null;index"`
	BillNo       int                  `gorm:"not null;index"`
	CustomerName string               `gorm:"type:varchar(255)"`
	PhoneNumber  string               `gorm:"type:varchar(20);index"`
	Method       shared.PaymentMethod `gorm:"type:varchar(20);not null"`
	CashAmount   decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	CardAmount   decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	OnlineAmount decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount  decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	AmountPaid   decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Items        []Sale               `gorm:"foreignKey:TransactionID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SalesTransaction) TableName() string {
	return "sales_transactions"
}

// Sale is one line of a customer bill. TotalPrice = quantity x unit price
// minus discount, snapshotted at creation.
type Sale struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity      int             `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Returned      bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSalesTransaction creates a customer bill with its line items.
func NewSalesTransaction(enterpriseID uuid.UUID, branchID *uuid.UUID, date time.Time, billNo int, customerName, phoneNumber string, method shared.PaymentMethod, items []Sale) (*SalesTransaction, error) {
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Sales transaction requires at least one line item")
	}
	tx := &SalesTransaction{
		TenantEntity: shared.NewTenantEntity(enterpriseID, branchID),
		Date:         date,
		BillNo:       billNo,
		CustomerName: customerName,
		PhoneNumber:  phoneNumber,
		Method:       method,
	}
	total := decimal.Zero
	for _, it := range items {
		line, err := newSaleLine(tx.ID, it)
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

func newSaleLine(txID uuid.UUID, it Sale) (*Sale, error) {
	if it.ProductID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Line item product ID cannot be empty")
	}
	if it.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Line item quantity must be positive")
	}
	if it.UnitPrice.IsNegative() || it.Discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Line item unit price and discount cannot be negative")
	}
	gross := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
	return &Sale{
		ID:            uuid.New(),
		TransactionID: txID,
		ProductID:     it.ProductID,
		Quantity:      it.Quantity,
		UnitPrice:     it.UnitPrice,
		Discount:      it.Discount,
		TotalPrice:    gross.Sub(it.Discount),
	}, nil
}

// ReplaceItems swaps the line items for a new set and recomputes the total.
// The old items must already be reversed and deleted by the caller.
func (t *SalesTransaction) ReplaceItems(items []Sale) error {
	if len(items) == 0 {
		return shared.NewDomainError("INVALID_ITEMS", "Sales transaction requires at least one line item")
	}
	replaced := make([]Sale, 0, len(items))
	total := decimal.Zero
	for _, it := range items {
		line, err := newSaleLine(t.ID, it)
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

// SetPayment records the method split and the amount actually paid. The
// difference between TotalAmount and AmountPaid is the bill's write-off.
func (t *SalesTransaction) SetPayment(cash, card, online, paid decimal.Decimal) {
	t.CashAmount = cash
	t.CardAmount = card
	t.OnlineAmount = online
	t.AmountPaid = paid
}

// ActiveItems returns the line items that have not been returned.
func (t *SalesTransaction) ActiveItems() []Sale {
	active := make([]Sale, 0, len(t.Items))
	for _, it := range t.Items {
		if !it.Returned {
			active = append(active, it)
		}
	}
	return active
}

// HasReturnedItems reports whether any line item was already returned.
// A sales transaction with returned items refuses deletion outright: the
// return's reversal bookkeeping cannot be undone consistently.
func (t *SalesTransaction) HasReturnedItems() bool {
	for _, it := range t.Items {
		if it.Returned {
			return true
		}
	}
	return false
}

// Outstanding returns the unpaid remainder of the bill.
func (t *SalesTransaction) Outstanding() decimal.Decimal {
	return t.TotalAmount.Sub(t.AmountPaid)
}
