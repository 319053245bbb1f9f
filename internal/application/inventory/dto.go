package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbook/backend/internal/domain/inventory"
)

// CreateProductRequest represents a request to create a product.
// The UID is always generated server side.
type CreateProductRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=255"`
	BrandID      uuid.UUID       `json:"brand_id" binding:"required"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// UpdateProductRequest represents a request to update a product. UID is
// immutable and absent here. A selling price change rescales the product's
// stock and adjusts its brand by the difference.
type UpdateProductRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=255"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	UID          string          `json:"uid"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Count        int             `json:"count"`
	Stock        decimal.Decimal `json:"stock"`
	BrandID      uuid.UUID       `json:"brand_id"`
	BranchID     *uuid.UUID      `json:"branch_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *inventory.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		UID:          p.UID,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		Count:        p.Count,
		Stock:        p.Stock,
		BrandID:      p.BrandID,
		BranchID:     p.BranchID,
		CreatedAt:    p.CreatedAt,
	}
}

// CreateBrandRequest represents a request to create a brand
type CreateBrandRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// UpdateBrandRequest represents a request to rename a brand
type UpdateBrandRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// BrandResponse represents a brand in API responses
type BrandResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Count     int             `json:"count"`
	Stock     decimal.Decimal `json:"stock"`
	BranchID  *uuid.UUID      `json:"branch_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToBrandResponse converts a domain brand to a response DTO
func ToBrandResponse(b *inventory.Brand) BrandResponse {
	return BrandResponse{
		ID:        b.ID,
		Name:      b.Name,
		Count:     b.Count,
		Stock:     b.Stock,
		BranchID:  b.BranchID,
		CreatedAt: b.CreatedAt,
	}
}

// ManufactureItemInput represents one line in a manufacture request
type ManufactureItemInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateManufactureRequest represents a request to record a production event
type CreateManufactureRequest struct {
	Date  time.Time              `json:"date" binding:"required"`
	Items []ManufactureItemInput `json:"items" binding:"required,min=1,dive"`
}

// UpdateManufactureRequest represents a request to rewrite a production event
type UpdateManufactureRequest struct {
	Date  time.Time              `json:"date" binding:"required"`
	Items []ManufactureItemInput `json:"items" binding:"required,min=1,dive"`
}

// ManufactureItemResponse represents one manufacture line in API responses
type ManufactureItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ManufactureResponse represents a production event in API responses
type ManufactureResponse struct {
	ID        uuid.UUID                 `json:"id"`
	Date      time.Time                 `json:"date"`
	Items     []ManufactureItemResponse `json:"items"`
	CreatedAt time.Time                 `json:"created_at"`
}

// ToManufactureResponse converts a domain manufacture to a response DTO
func ToManufactureResponse(m *inventory.Manufacture) ManufactureResponse {
	items := make([]ManufactureItemResponse, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, ManufactureItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return ManufactureResponse{
		ID:        m.ID,
		Date:      m.Date,
		Items:     items,
		CreatedAt: m.CreatedAt,
	}
}

// CreateIncentiveProductRequest represents a request to create an incentive entry
type CreateIncentiveProductRequest struct {
	Name string          `json:"name" binding:"required,min=1,max=255"`
	Rate decimal.Decimal `json:"rate"`
}

// UpdateIncentiveProductRequest represents a partial update of an incentive entry
type UpdateIncentiveProductRequest struct {
	Name *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Rate *decimal.Decimal `json:"rate"`
}

// IncentiveProductResponse represents an incentive entry in API responses
type IncentiveProductResponse struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Rate     decimal.Decimal `json:"rate"`
	BranchID *uuid.UUID      `json:"branch_id,omitempty"`
}

// ToIncentiveProductResponse converts a domain incentive entry to a response DTO
func ToIncentiveProductResponse(i *inventory.IncentiveProduct) IncentiveProductResponse {
	return IncentiveProductResponse{
		ID:       i.ID,
		Name:     i.Name,
		Rate:     i.Rate,
		BranchID: i.BranchID,
	}
}
