package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TenantEntity is a base entity scoped to one enterprise and optionally one branch.
// Every aggregate in the system carries this scoping for multi-tenancy.
type TenantEntity struct {
	BaseEntity
	EnterpriseID uuid.UUID  `gorm:"type:uuid;not null;index"`
	BranchID     *uuid.UUID `gorm:"type:uuid;index"`
}

// NewTenantEntity creates a new tenant-scoped entity
func NewTenantEntity(enterpriseID uuid.UUID, branchID *uuid.UUID) TenantEntity {
	return TenantEntity{
		BaseEntity:   NewBaseEntity(),
		EnterpriseID: enterpriseID,
		BranchID:     branchID,
	}
}
