package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbook/backend/internal/domain/shared"
)

// Expense is money spent outside of purchases, settled by cash, cheque or
// bank transfer.
type Expense struct {
	shared.TenantEntity
	Date        time.Time            `gorm:"type:date;not null;index"`
	Amount      decimal.Decimal      `gorm:"type:decimal(14,2);not null"`
	Method      shared.PaymentMethod `gorm:"type:varchar(20);not null"`
	Description string               `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// NewExpense creates a new expense with validation
func NewExpense(enterpriseID uuid.UUID, branchID *uuid.UUID, date time.Time, amount decimal.Decimal, method shared.PaymentMethod, description string) (*Expense, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if method != shared.PaymentCash && method != shared.PaymentCheque && method != shared.PaymentTransfer {
		return nil, shared.NewDomainError("INVALID_METHOD", "Expenses are settled by cash, cheque or transfer")
	}
	return &Expense{
		TenantEntity: shared.NewTenantEntity(enterpriseID, branchID),
		Date:         date,
		Amount:       amount,
		Method:       method,
		Description:  strings.TrimSpace(description),
	}, nil
}

// Withdrawal is cash taken out of the drawer by an owner.
type Withdrawal struct {
	shared.TenantEntity
	Date        time.Time       `gorm:"type:date;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Description string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Withdrawal) TableName() string {
	return "withdrawals"
}

// NewWithdrawal creates a new withdrawal with validation
func NewWithdrawal(enterpriseID uuid.UUID, branchID *uuid.UUID, date time.Time, amount decimal.Decimal, description string) (*Withdrawal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Withdrawal amount must be positive")
	}
	return &Withdrawal{
		TenantEntity: shared.NewTenantEntity(enterpriseID, branchID),
		Date:         date,
		Amount:       amount,
		Description:  strings.TrimSpace(description),
	}, nil
}

// ClosingCash is the counted cash in the drawer at the end of one day.
// At most one snapshot exists per enterprise, branch and date.
type ClosingCash struct {
	shared.TenantEntity
	Date   time.Time       `gorm:"type:date;not null;index:idx_closing_cash_day"`
	Amount decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

// TableName returns the table name for GORM
func (ClosingCash) TableName() string {
	return "closing_cash"
}

// NewClosingCash creates a new closing cash snapshot with validation
func NewClosingCash(enterpriseID uuid.UUID, branchID *uuid.UUID, date time.Time, amount decimal.Decimal) (*ClosingCash, error) {
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Closing cash cannot be negative")
	}
	return &ClosingCash{
		TenantEntity: shared.NewTenantEntity(enterpriseID, branchID),
		Date:         date,
		Amount:       amount,
	}, nil
}
