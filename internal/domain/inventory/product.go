package inventory

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbook/backend/internal/domain/shared"
)

// UIDLength is the length of the numeric product identifier printed on
// barcode labels.
const UIDLength = 12

// Product is a stock-keeping unit. Count and Stock are denormalized
// aggregates: they are mutated exclusively through ApplyDelta so that the
// paired Brand mutation can never be skipped by a call site.
type Product struct {
	shared.TenantEntity
	Name         string          `gorm:"type:varchar(255);not null"`
	UID          string          `gorm:"type:varchar(12);not null;uniqueIndex"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Count        int             `gorm:"not null;default:0"`
	Stock        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	BrandID      uuid.UUID       `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a product under a brand. The UID must already be unique;
// uniqueness is enforced by the caller against the repository and by the
// database index.
func NewProduct(enterpriseID uuid.UUID, branchID *uuid.UUID, brandID uuid.UUID, name, uid string, costPrice, sellingPrice decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if brandID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRAND", "Brand ID cannot be empty")
	}
	if !ValidUID(uid) {
		return nil, shared.NewDomainError("INVALID_UID", "Product UID must be 12 digits and not start with 0 or 1")
	}
	if costPrice.IsNegative() || sellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	return &Product{
		TenantEntity: shared.NewTenantEntity(enterpriseID, branchID),
		Name:         name,
		UID:          uid,
		CostPrice:    costPrice,
		SellingPrice: sellingPrice,
		Count:        0,
		Stock:        decimal.Zero,
		BrandID:      brandID,
	}, nil
}

// ApplyDelta adjusts the on-hand count and monetary stock by the signed
// quantity and value deltas of one transaction line.
func (p *Product) ApplyDelta(quantity int, value decimal.Decimal) {
	p.Count += quantity
	p.Stock = p.Stock.Add(value)
}

// ChangeSellingPrice sets a new selling price and rescales Stock to
// Count x price. It returns the stock difference so the owning brand can be
// adjusted by the same amount within the same unit of work.
func (p *Product) ChangeSellingPrice(price decimal.Decimal) (decimal.Decimal, error) {
	if price.IsNegative() {
		return decimal.Zero, shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	oldStock := p.Stock
	p.SellingPrice = price
	p.Stock = price.Mul(decimal.NewFromInt(int64(p.Count)))
	return p.Stock.Sub(oldStock), nil
}

// Brand aggregates Count and Stock across its products. It is mutated in
// lockstep with each product mutation, never recomputed from scratch.
type Brand struct {
	shared.TenantEntity
	Name  string          `gorm:"type:varchar(255);not null"`
	Count int             `gorm:"not null;default:0"`
	Stock decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Brand) TableName() string {
	return "brands"
}

// NewBrand creates an empty brand.
func NewBrand(enterpriseID uuid.UUID, branchID *uuid.UUID, name string) (*Brand, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Brand name cannot be empty")
	}
	return &Brand{
		TenantEntity: shared.NewTenantEntity(enterpriseID, branchID),
		Name:         name,
		Count:        0,
		Stock:        decimal.Zero,
	}, nil
}

// ApplyDelta adjusts the brand aggregates by the same quantity and value
// deltas applied to one of its products.
func (b *Brand) ApplyDelta(quantity int, value decimal.Decimal) {
	b.Count += quantity
	b.Stock = b.Stock.Add(value)
}

// GenerateUID returns a candidate 12-digit product identifier. The first
// digit is 2-9 so the UID survives leading-zero stripping in spreadsheet
// exports and stays a valid EAN payload. Global uniqueness is checked by the
// caller against the repository.
func GenerateUID() string {
	var sb strings.Builder
	sb.Grow(UIDLength)
	sb.WriteByte(byte('2' + rand.Intn(8)))
	for i := 1; i < UIDLength; i++ {
		sb.WriteByte(byte('0' + rand.Intn(10)))
	}
	return sb.String()
}

// ValidUID reports whether uid is a well-formed product identifier.
func ValidUID(uid string) bool {
	if len(uid) != UIDLength {
		return false
	}
	for i := 0; i < len(uid); i++ {
		if uid[i] < '0' || uid[i] > '9' {
			return false
		}
	}
	return uid[0] != '0' && uid[0] != '1'
}
