package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbook/backend/internal/domain/shared"
)

// Status is the lifecycle state of a custom order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusPrepared   Status = "prepared"
	StatusDispatched Status = "dispatched"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
)

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPrepared, StatusDispatched, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the order may move to the target status.
// Orders advance pending, prepared, dispatched, completed; any state before
// completed may be canceled. Completed and canceled are terminal.
func (s Status) CanTransitionTo(target Status) bool {
	if s == target {
		return false
	}
	switch s {
	case StatusPending:
		return target == StatusPrepared || target == StatusCanceled
	case StatusPrepared:
		return target == StatusDispatched || target == StatusCanceled
	case StatusDispatched:
		return target == StatusCompleted || target == StatusCanceled
	}
	return false
}

// Order is a made-to-order job for a customer. Items are free text and do
// not touch inventory; only the advance and remaining payments reach the
// cash-flow report.
type Order struct {
	shared.TenantEntity
	CustomerName    string               `gorm:"type:varchar(255);not null"`
	PhoneNumber     string               `gorm:"type:varchar(32);index"`
	OrderDate       time.Time            `gorm:"type:date;not null;index"`
	DeliveryDate    *time.Time           `gorm:"type:date"`
	Status          Status               `gorm:"type:varchar(20);not null;index"`
	TotalAmount     decimal.Decimal      `gorm:"type:decimal(14,2);not null"`
	AdvanceAmount   decimal.Decimal      `gorm:"type:decimal(14,2);not null"`
	AdvanceMethod   shared.PaymentMethod `gorm:"type:varchar(20)"`
	RemainingAmount decimal.Decimal      `gorm:"type:decimal(14,2);not null"`
	RemainingMethod shared.PaymentMethod `gorm:"type:varchar(20)"`
	Notes           string               `gorm:"type:varchar(1000)"`
	Items           []OrderItem          `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one free-text line of a custom order.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrder creates a pending order with validation
func NewOrder(enterpriseID uuid.UUID, branchID *uuid.UUID, customerName, phoneNumber string, orderDate time.Time, deliveryDate *time.Time, items []OrderItem) (*Order, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Order customer name cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Order requires at least one item")
	}
	o := &Order{
		TenantEntity:    shared.NewTenantEntity(enterpriseID, branchID),
		CustomerName:    customerName,
		PhoneNumber:     strings.TrimSpace(phoneNumber),
		OrderDate:       orderDate,
		DeliveryDate:    deliveryDate,
		Status:          StatusPending,
		TotalAmount:     decimal.Zero,
		AdvanceAmount:   decimal.Zero,
		RemainingAmount: decimal.Zero,
	}
	if err := o.ReplaceItems(items); err != nil {
		return nil, err
	}
	return o, nil
}

// ReplaceItems swaps the order's items and recomputes the total.
func (o *Order) ReplaceItems(items []OrderItem) error {
	total := decimal.Zero
	for i := range items {
		if strings.TrimSpace(items[i].Description) == "" {
			return shared.NewDomainError("INVALID_ITEM", "Order item description cannot be empty")
		}
		if items[i].Quantity <= 0 {
			return shared.NewDomainError("INVALID_QUANTITY", "Order item quantity must be positive")
		}
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].OrderID = o.ID
		total = total.Add(items[i].UnitPrice.Mul(decimal.NewFromInt(int64(items[i].Quantity))))
	}
	o.Items = items
	o.TotalAmount = total
	return nil
}

// RecordAdvance records the up-front payment taken when the order is placed.
func (o *Order) RecordAdvance(amount decimal.Decimal, method shared.PaymentMethod) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Advance cannot be negative")
	}
	if amount.IsPositive() && !method.IsValid() {
		return shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}
	o.AdvanceAmount = amount
	o.AdvanceMethod = method
	return nil
}

// RecordRemaining records the settlement payment taken on delivery.
func (o *Order) RecordRemaining(amount decimal.Decimal, method shared.PaymentMethod) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Remaining payment cannot be negative")
	}
	if amount.IsPositive() && !method.IsValid() {
		return shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}
	o.RemainingAmount = amount
	o.RemainingMethod = method
	return nil
}

// Transition moves the order to the target status, enforcing the lifecycle.
func (o *Order) Transition(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION", "Order cannot move from "+string(o.Status)+" to "+string(target))
	}
	o.Status = target
	return nil
}
