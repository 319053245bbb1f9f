package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbook/backend/internal/domain/shared"
)

// VendorTransaction is one signed ledger entry against a vendor. Positive
// amounts are payments to the vendor, negative amounts are credit received.
// PurchaseTransactionID links entries generated by credit purchases; deleting
// that purchase removes the linked entries with it.
type VendorTransaction struct {
	shared.TenantEntity
	VendorID              uuid.UUID            `gorm:"type:uuid;not null;index"`
	PurchaseTransactionID *uuid.UUID           `gorm:"type:uuid;index"`
	Date                  time.Time            `gorm:"type:date;not null;index"`
	Amount                decimal.Decimal      `gorm:"type:decimal(14,2);not null"`
	Method                shared.PaymentMethod `gorm:"type:varchar(20);not null"`
	Description           string               `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (VendorTransaction) TableName() string {
	return "vendor_transactions"
}

// NewVendorTransaction creates a new vendor ledger entry with validation
func NewVendorTransaction(enterpriseID uuid.UUID, branchID *uuid.UUID, vendorID uuid.UUID, date time.Time, amount decimal.Decimal, method shared.PaymentMethod, description string) (*VendorTransaction, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor is required")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}
	return &VendorTransaction{
		TenantEntity: shared.NewTenantEntity(enterpriseID, branchID),
		VendorID:     vendorID,
		Date:         date,
		Amount:       amount,
		Method:       method,
		Description:  description,
	}, nil
}

// DebtorTransaction is one signed ledger entry against a debtor. Negative
// amounts grow the debt (credit sale), positive amounts settle it.
type DebtorTransaction struct {
	shared.TenantEntity
	DebtorID           uuid.UUID            `gorm:"type:uuid;not null;index"`
	SalesTransactionID *uuid.UUID           `gorm:"type:uuid;index"`
	Date               time.Time            `gorm:"type:date;not null;index"`
	Amount             decimal.Decimal      `gorm:"type:decimal(14,2);not null"`
	Method             shared.PaymentMethod `gorm:"type:varchar(20);not null"`
	Description        string               `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (DebtorTransaction) TableName() string {
	return "debtor_transactions"
}

// NewDebtorTransaction creates a new debtor ledger entry with validation
func NewDebtorTransaction(enterpriseID uuid.UUID, branchID *uuid.UUID, debtorID uuid.UUID, date time.Time, amount decimal.Decimal, method shared.PaymentMethod, description string) (*DebtorTransaction, error) {
	if debtorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEBTOR", "Debtor is required")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}
	return &DebtorTransaction{
		TenantEntity: shared.NewTenantEntity(enterpriseID, branchID),
		DebtorID:     debtorID,
		Date:         date,
		Amount:       amount,
		Method:       method,
		Description:  description,
	}, nil
}

// StaffTransaction is one signed ledger entry against a staff member.
type StaffTransaction struct {
	shared.TenantEntity
	StaffID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	Date        time.Time            `gorm:"type:date;not null;index"`
	Amount      decimal.Decimal      `gorm:"type:decimal(14,2);not null"`
	Method      shared.PaymentMethod `gorm:"type:varchar(20);not null"`
	Description string               `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (StaffTransaction) TableName() string {
	return "staff_transactions"
}

// NewStaffTransaction creates a new staff ledger entry with validation
func NewStaffTransaction(enterpriseID uuid.UUID, branchID *uuid.UUID, staffID uuid.UUID, date time.Time, amount decimal.Decimal, method shared.PaymentMethod, description string) (*StaffTransaction, error) {
	if staffID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STAFF", "Staff member is required")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}
	return &StaffTransaction{
		TenantEntity: shared.NewTenantEntity(enterpriseID, branchID),
		StaffID:      staffID,
		Date:         date,
		Amount:       amount,
		Method:       method,
		Description:  description,
	}, nil
}
