package inventory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/application/stock"
	"github.com/retailbook/backend/internal/domain/inventory"
	"github.com/retailbook/backend/internal/domain/shared"
)

// uidAttempts bounds the UID generation loop. The keyspace has 8x10^11
// candidates, so hitting the bound means something is badly wrong with the
// uniqueness check, not with luck.
const uidAttempts = 10

// ProductService handles product catalog operations
type ProductService struct {
	scope       stock.TransactionScope
	productRepo inventory.ProductRepository
	brandRepo   inventory.BrandRepository
}

// NewProductService creates a new ProductService
func NewProductService(scope stock.TransactionScope, productRepo inventory.ProductRepository, brandRepo inventory.BrandRepository) *ProductService {
	return &ProductService{
		scope:       scope,
		productRepo: productRepo,
		brandRepo:   brandRepo,
	}
}

// Create creates a product with a freshly generated, globally unique UID.
func (s *ProductService) Create(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.brandRepo.FindByID(ctx, req.BrandID); err != nil {
		return nil, err
	}

	uid, err := s.generateUniqueUID(ctx)
	if err != nil {
		return nil, err
	}

	product, err := inventory.NewProduct(enterpriseID, branchID, req.BrandID, req.Name, uid, req.CostPrice, req.SellingPrice)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

func (s *ProductService) generateUniqueUID(ctx context.Context) (string, error) {
	for i := 0; i < uidAttempts; i++ {
		uid := inventory.GenerateUID()
		exists, err := s.productRepo.ExistsByUID(ctx, uid)
		if err != nil {
			return "", err
		}
		if !exists {
			return uid, nil
		}
	}
	return "", shared.NewDomainError("UID_EXHAUSTED", "Could not generate a unique product UID")
}

// Update edits a product's name and prices. A selling price change rescales
// the product's stock to count x price and moves its brand by the same
// difference, under the usual product-then-brand locks.
func (s *ProductService) Update(ctx context.Context, enterpriseID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	var response ProductResponse
	err := s.scope.Execute(ctx, func(repos stock.Repositories) error {
		product, err := repos.ProductRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product.EnterpriseID != enterpriseID {
			return shared.ErrNotFound
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
			}
			product.Name = name
		}
		if req.CostPrice != nil {
			if req.CostPrice.IsNegative() {
				return shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
			}
			product.CostPrice = *req.CostPrice
		}
		if req.SellingPrice != nil && !req.SellingPrice.Equal(product.SellingPrice) {
			diff, err := product.ChangeSellingPrice(*req.SellingPrice)
			if err != nil {
				return err
			}
			brand, err := repos.BrandRepo().FindByIDForUpdate(ctx, product.BrandID)
			if err != nil {
				return err
			}
			brand.ApplyDelta(0, diff)
			if err := repos.BrandRepo().Save(ctx, brand); err != nil {
				return err
			}
		}

		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}
		response = ToProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete removes a product. Historical transactions keep their rows and the
// brand aggregates are left untouched; this mirrors how the books have
// always been kept.
func (s *ProductService) Delete(ctx context.Context, enterpriseID, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product.EnterpriseID != enterpriseID {
		return shared.ErrNotFound
	}
	return s.productRepo.Delete(ctx, id)
}

// GetByID retrieves a product by ID.
func (s *ProductService) GetByID(ctx context.Context, enterpriseID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.EnterpriseID != enterpriseID {
		return nil, shared.ErrNotFound
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetByUID resolves a product by its barcode UID within a branch.
func (s *ProductService) GetByUID(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, uid string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByUID(ctx, enterpriseID, branchID, uid)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with pagination and name search.
func (s *ProductService) List(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAllForEnterprise(ctx, enterpriseID, branchID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses, nil
}

// MergeProducts copies products of the named brand from another branch into
// this branch. Products whose name already exists under the target brand are
// skipped; copies start with empty stock and a fresh UID, since UIDs are
// globally unique.
func (s *ProductService) MergeProducts(ctx context.Context, enterpriseID, targetBranchID, sourceBranchID, brandID uuid.UUID) (int, error) {
	brand, err := s.brandRepo.FindByID(ctx, brandID)
	if err != nil {
		return 0, err
	}
	if brand.EnterpriseID != enterpriseID {
		return 0, shared.ErrNotFound
	}

	sourceBrand, err := s.brandRepo.FindByName(ctx, enterpriseID, &sourceBranchID, brand.Name)
	if err != nil {
		return 0, err
	}
	sourceProducts, err := s.productRepo.FindByBrand(ctx, sourceBrand.ID)
	if err != nil {
		return 0, err
	}
	existing, err := s.productRepo.FindByBrand(ctx, brand.ID)
	if err != nil {
		return 0, err
	}
	existingNames := make(map[string]bool, len(existing))
	for i := range existing {
		existingNames[strings.ToLower(existing[i].Name)] = true
	}

	copied := 0
	for i := range sourceProducts {
		src := &sourceProducts[i]
		if existingNames[strings.ToLower(src.Name)] {
			continue
		}
		uid, err := s.generateUniqueUID(ctx)
		if err != nil {
			return copied, err
		}
		product, err := inventory.NewProduct(enterpriseID, &targetBranchID, brand.ID, src.Name, uid, src.CostPrice, src.SellingPrice)
		if err != nil {
			return copied, err
		}
		if err := s.productRepo.Save(ctx, product); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}
