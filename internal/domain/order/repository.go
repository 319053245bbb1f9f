package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/domain/shared"
)

// Repository defines the interface for order persistence
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByIDForTenant(ctx context.Context, id, enterpriseID uuid.UUID) (*Order, error)
	FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, status *Status, filter shared.Filter) ([]*Order, int64, error)
	// FindInWindow lists orders whose order date falls inside [from, to] for
	// cash-flow reporting.
	FindInWindow(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, from, to time.Time) ([]*Order, error)
	Save(ctx context.Context, o *Order) error
	DeleteItems(ctx context.Context, orderID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
