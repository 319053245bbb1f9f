package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbook/backend/internal/domain/shared"
)

// VendorRepository defines the interface for vendor persistence
type VendorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Vendor, error)
	FindByIDForTenant(ctx context.Context, id, enterpriseID uuid.UUID) (*Vendor, error)
	FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]*Vendor, int64, error)
	Save(ctx context.Context, v *Vendor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DebtorRepository defines the interface for debtor persistence
type DebtorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Debtor, error)
	FindByIDForTenant(ctx context.Context, id, enterpriseID uuid.UUID) (*Debtor, error)
	FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]*Debtor, int64, error)
	Save(ctx context.Context, d *Debtor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StaffRepository defines the interface for staff persistence
type StaffRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Staff, error)
	FindByIDForTenant(ctx context.Context, id, enterpriseID uuid.UUID) (*Staff, error)
	FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]*Staff, int64, error)
	Save(ctx context.Context, s *Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PartyTransactionRepository is the shared statement surface over one party
// transaction table. Statement builders depend on it alone.
type PartyTransactionRepository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	// FindForParty lists entries with date >= from (when set) and date <= to
	// (when set), ordered by date then id ascending.
	FindForParty(ctx context.Context, partyID uuid.UUID, from, to *time.Time) ([]*T, error)
	// SumAmountBefore sums entry amounts strictly before the given date.
	SumAmountBefore(ctx context.Context, partyID uuid.UUID, before time.Time) (decimal.Decimal, error)
	Save(ctx context.Context, t *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// VendorTransactionRepository defines the interface for vendor ledger entries
type VendorTransactionRepository interface {
	PartyTransactionRepository[VendorTransaction]
	FindBySourceTransaction(ctx context.Context, purchaseTransactionID uuid.UUID) ([]*VendorTransaction, error)
	DeleteBySourceTransaction(ctx context.Context, purchaseTransactionID uuid.UUID) error
}

// SettlementSums aggregates debtor settlements over a window. Total covers
// every non-credit entry; Cash covers only those settled in cash.
type SettlementSums struct {
	Total decimal.Decimal
	Cash  decimal.Decimal
}

// DebtorTransactionRepository defines the interface for debtor ledger entries
type DebtorTransactionRepository interface {
	PartyTransactionRepository[DebtorTransaction]
	FindBySourceTransaction(ctx context.Context, salesTransactionID uuid.UUID) ([]*DebtorTransaction, error)
	DeleteBySourceTransaction(ctx context.Context, salesTransactionID uuid.UUID) error
	// SumSettlementsInWindow sums settlement entries (method != credit) in
	// the window for cash-flow reporting, with the cash share broken out.
	SumSettlementsInWindow(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, from, to time.Time) (SettlementSums, error)
}

// StaffTransactionRepository defines the interface for staff ledger entries
type StaffTransactionRepository interface {
	PartyTransactionRepository[StaffTransaction]
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]*Expense, int64, error)
	FindInWindow(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, from, to time.Time) ([]*Expense, error)
	Save(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// WithdrawalRepository defines the interface for withdrawal persistence
type WithdrawalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Withdrawal, error)
	FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]*Withdrawal, int64, error)
	FindInWindow(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, from, to time.Time) ([]*Withdrawal, error)
	Save(ctx context.Context, w *Withdrawal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClosingCashRepository defines the interface for closing cash snapshots
type ClosingCashRepository interface {
	FindByDate(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, date time.Time) (*ClosingCash, error)
	// FindLatestBefore returns the most recent snapshot with date <= the
	// given date, or ErrNotFound when none exists.
	FindLatestBefore(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, date time.Time) (*ClosingCash, error)
	// Upsert writes the snapshot for its day, replacing any existing one.
	Upsert(ctx context.Context, c *ClosingCash) error
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByPhone(ctx context.Context, enterpriseID uuid.UUID, phoneNumber string) (*Customer, error)
	FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]*Customer, int64, error)
	// LifetimeSpend sums sale totals recorded under the customer's phone.
	LifetimeSpend(ctx context.Context, enterpriseID uuid.UUID, phoneNumber string) (decimal.Decimal, int, error)
	Save(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
