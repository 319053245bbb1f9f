package ledger

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbook/backend/internal/domain/shared"
)

// Customer is a walk-in buyer identified by phone number. Lifetime spend is
// derived from sales at read time, never stored.
type Customer struct {
	shared.TenantEntity
	Name        string `gorm:"type:varchar(255);not null"`
	PhoneNumber string `gorm:"type:varchar(32);not null;index"`
	Address     string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with validation
func NewCustomer(enterpriseID uuid.UUID, branchID *uuid.UUID, name, phoneNumber, address string) (*Customer, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Customer phone number cannot be empty")
	}
	return &Customer{
		TenantEntity: shared.NewTenantEntity(enterpriseID, branchID),
		Name:         strings.TrimSpace(name),
		PhoneNumber:  phoneNumber,
		Address:      strings.TrimSpace(address),
	}, nil
}

// CustomerProfile is a customer with their derived lifetime spend.
type CustomerProfile struct {
	Customer      *Customer
	LifetimeSpend decimal.Decimal
	Purchases     int
}
