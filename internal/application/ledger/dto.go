package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbook/backend/internal/domain/ledger"
)

// PartyRequest represents a request to create or update a vendor, debtor or
// staff member.
type PartyRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	PhoneNumber string `json:"phone_number" binding:"max=32"`
	Address     string `json:"address" binding:"max=500"`
	Role        string `json:"role" binding:"max=100"`
}

// PartyResponse represents a party in API responses
type PartyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Address     string    `json:"address,omitempty"`
	Role        string    `json:"role,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// PartyTransactionRequest represents a request to record a ledger entry
// against a party. Amount is signed: positive settles, negative grows the
// balance owed.
type PartyTransactionRequest struct {
	Date        time.Time       `json:"date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Method      string          `json:"method" binding:"required,payment_method"`
	Description string          `json:"description" binding:"max=500"`
}

// PartyTransactionResponse represents a ledger entry in API responses
type PartyTransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	PartyID     uuid.UUID       `json:"party_id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Description string          `json:"description,omitempty"`
	SourceID    *uuid.UUID      `json:"source_transaction_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// StatementResponse is one party's ledger over an optional window.
// OpeningBalance is only present when the window has a start date.
type StatementResponse struct {
	PartyID        uuid.UUID                  `json:"party_id"`
	OpeningBalance *decimal.Decimal           `json:"opening_balance,omitempty"`
	Transactions   []PartyTransactionResponse `json:"transactions"`
}

// ExpenseRequest represents a request to record an expense
type ExpenseRequest struct {
	Date        time.Time       `json:"date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Method      string          `json:"method" binding:"required,oneof=cash cheque transfer"`
	Description string          `json:"description" binding:"max=500"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToExpenseResponse converts a domain expense to a response DTO
func ToExpenseResponse(e *ledger.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Date:        e.Date,
		Amount:      e.Amount,
		Method:      e.Method.String(),
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

// WithdrawalRequest represents a request to record an owner withdrawal
type WithdrawalRequest struct {
	Date        time.Time       `json:"date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
}

// WithdrawalResponse represents a withdrawal in API responses
type WithdrawalResponse struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToWithdrawalResponse converts a domain withdrawal to a response DTO
func ToWithdrawalResponse(w *ledger.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:          w.ID,
		Date:        w.Date,
		Amount:      w.Amount,
		Description: w.Description,
		CreatedAt:   w.CreatedAt,
	}
}

// ClosingCashRequest represents the counted drawer cash for one day
type ClosingCashRequest struct {
	Date   time.Time       `json:"date" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ClosingCashResponse represents a closing cash snapshot in API responses
type ClosingCashResponse struct {
	ID     uuid.UUID       `json:"id"`
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// CustomerRequest represents a request to create or update a customer
type CustomerRequest struct {
	Name        string `json:"name" binding:"max=255"`
	PhoneNumber string `json:"phone_number" binding:"required,max=32"`
	Address     string `json:"address" binding:"max=500"`
}

// CustomerResponse represents a customer with derived lifetime figures
type CustomerResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	PhoneNumber   string          `json:"phone_number"`
	Address       string          `json:"address,omitempty"`
	LifetimeSpend decimal.Decimal `json:"lifetime_spend"`
	Purchases     int             `json:"purchases"`
}

// ListFilter represents common list query parameters for ledger listings
type ListFilter struct {
	Search    string     `form:"search"`
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
	Page      int        `form:"page,default=1" binding:"min=0"`
	PageSize  int        `form:"page_size,default=20" binding:"min=0,max=200"`
}
