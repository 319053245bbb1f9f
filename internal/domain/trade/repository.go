package trade

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/domain/shared"
)

// PurchaseTransactionRepository defines the interface for purchase transaction persistence
type PurchaseTransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseTransaction, error)
	FindByIDForTenant(ctx context.Context, id, enterpriseID uuid.UUID) (*PurchaseTransaction, error)
	FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]*PurchaseTransaction, int64, error)
	FindItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]*Purchase, error)
	Save(ctx context.Context, tx *PurchaseTransaction) error
	SaveItems(ctx context.Context, items []*Purchase) error
	DeleteItems(ctx context.Context, transactionID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SalesTransactionRepository defines the interface for sales transaction persistence
type SalesTransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SalesTransaction, error)
	FindByIDForTenant(ctx context.Context, id, enterpriseID uuid.UUID) (*SalesTransaction, error)
	FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]*SalesTransaction, int64, error)
	FindItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]*Sale, error)
	// MaxBillNo returns the highest bill number issued for the branch, zero
	// when no sales exist yet.
	MaxBillNo(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID) (int, error)
	Save(ctx context.Context, tx *SalesTransaction) error
	SaveItems(ctx context.Context, items []*Sale) error
	DeleteItems(ctx context.Context, transactionID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PurchaseReturnRepository defines the interface for purchase return persistence
type PurchaseReturnRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseReturn, error)
	FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, from, to *time.Time) ([]*PurchaseReturn, error)
	Save(ctx context.Context, r *PurchaseReturn) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SalesReturnRepository defines the interface for sales return persistence
type SalesReturnRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SalesReturn, error)
	FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, from, to *time.Time) ([]*SalesReturn, error)
	Save(ctx context.Context, r *SalesReturn) error
	Delete(ctx context.Context, id uuid.UUID) error
}
