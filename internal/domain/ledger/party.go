package ledger

import (
	"strings"

	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/domain/shared"
)

// Vendor is a supplier the enterprise purchases from.
type Vendor struct {
	shared.TenantEntity
	Name        string `gorm:"type:varchar(255);not null;index"`
	PhoneNumber string `gorm:"type:varchar(32)"`
	Address     string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates a new vendor with validation
func NewVendor(enterpriseID uuid.UUID, branchID *uuid.UUID, name, phoneNumber, address string) (*Vendor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Vendor name cannot be empty")
	}
	return &Vendor{
		TenantEntity: shared.NewTenantEntity(enterpriseID, branchID),
		Name:         name,
		PhoneNumber:  strings.TrimSpace(phoneNumber),
		Address:      strings.TrimSpace(address),
	}, nil
}

// Debtor is a customer that owes the enterprise money (credit sales).
type Debtor struct {
	shared.TenantEntity
	Name        string `gorm:"type:varchar(255);not null;index"`
	PhoneNumber string `gorm:"type:varchar(32)"`
	Address     string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Debtor) TableName() string {
	return "debtors"
}

// NewDebtor creates a new debtor with validation
func NewDebtor(enterpriseID uuid.UUID, branchID *uuid.UUID, name, phoneNumber, address string) (*Debtor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Debtor name cannot be empty")
	}
	return &Debtor{
		TenantEntity: shared.NewTenantEntity(enterpriseID, branchID),
		Name:         name,
		PhoneNumber:  strings.TrimSpace(phoneNumber),
		Address:      strings.TrimSpace(address),
	}, nil
}

// Staff is an employee whose salary advances and payments are tracked.
type Staff struct {
	shared.TenantEntity
	Name        string `gorm:"type:varchar(255);not null;index"`
	PhoneNumber string `gorm:"type:varchar(32)"`
	Role        string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Staff) TableName() string {
	return "staff"
}

// NewStaff creates a new staff member with validation
func NewStaff(enterpriseID uuid.UUID, branchID *uuid.UUID, name, phoneNumber, role string) (*Staff, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Staff name cannot be empty")
	}
	return &Staff{
		TenantEntity: shared.NewTenantEntity(enterpriseID, branchID),
		Name:         name,
		PhoneNumber:  strings.TrimSpace(phoneNumber),
		Role:         strings.TrimSpace(role),
	}, nil
}
