package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/domain/shared"
)

// ProductRepository persists products.
//
// FindByIDForUpdate acquires an exclusive row lock (SELECT ... FOR UPDATE)
// and must only be called inside a transaction scope. Stock mutation locks
// the Product row before its Brand row, always in that order.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByUID(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, uid string) (*Product, error)
	FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]Product, error)
	FindByBrand(ctx context.Context, brandID uuid.UUID) ([]Product, error)
	ExistsByUID(ctx context.Context, uid string) (bool, error)
	CountForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID) (int64, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BrandRepository persists brands.
type BrandRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Brand, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Brand, error)
	FindByName(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, name string) (*Brand, error)
	FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID) ([]Brand, error)
	CountForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID) (int64, error)
	Save(ctx context.Context, brand *Brand) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// IncentiveProductRepository persists incentive entries.
type IncentiveProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*IncentiveProduct, error)
	// FindAllForEnterprise lists entries ordered by name.
	FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID) ([]IncentiveProduct, error)
	Save(ctx context.Context, i *IncentiveProduct) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ManufactureRepository persists production events with their items.
type ManufactureRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Manufacture, error)
	FindAllForEnterprise(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]Manufacture, error)
	Save(ctx context.Context, m *Manufacture) error
	DeleteItems(ctx context.Context, manufactureID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
