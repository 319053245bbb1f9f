package inventory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/domain/inventory"
	"github.com/retailbook/backend/internal/domain/shared"
)

// BrandService handles brand catalog operations
type BrandService struct {
	brandRepo   inventory.BrandRepository
	productRepo inventory.ProductRepository
}

// NewBrandService creates a new BrandService
func NewBrandService(brandRepo inventory.BrandRepository, productRepo inventory.ProductRepository) *BrandService {
	return &BrandService{
		brandRepo:   brandRepo,
		productRepo: productRepo,
	}
}

// Create creates an empty brand.
func (s *BrandService) Create(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, req CreateBrandRequest) (*BrandResponse, error) {
	brand, err := inventory.NewBrand(enterpriseID, branchID, strings.TrimSpace(req.Name))
	if err != nil {
		return nil, err
	}
	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}
	response := ToBrandResponse(brand)
	return &response, nil
}

// Update renames a brand.
func (s *BrandService) Update(ctx context.Context, enterpriseID, id uuid.UUID, req UpdateBrandRequest) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand.EnterpriseID != enterpriseID {
		return nil, shared.ErrNotFound
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Brand name cannot be empty")
	}
	brand.Name = name
	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}
	response := ToBrandResponse(brand)
	return &response, nil
}

// Delete removes a brand. Brands still holding products refuse deletion.
func (s *BrandService) Delete(ctx context.Context, enterpriseID, id uuid.UUID) error {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if brand.EnterpriseID != enterpriseID {
		return shared.ErrNotFound
	}
	products, err := s.productRepo.FindByBrand(ctx, id)
	if err != nil {
		return err
	}
	if len(products) > 0 {
		return shared.ErrConflict
	}
	return s.brandRepo.Delete(ctx, id)
}

// GetByID retrieves a brand by ID.
func (s *BrandService) GetByID(ctx context.Context, enterpriseID, id uuid.UUID) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand.EnterpriseID != enterpriseID {
		return nil, shared.ErrNotFound
	}
	response := ToBrandResponse(brand)
	return &response, nil
}

// List retrieves all brands of a branch.
func (s *BrandService) List(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID) ([]BrandResponse, error) {
	brands, err := s.brandRepo.FindAllForEnterprise(ctx, enterpriseID, branchID)
	if err != nil {
		return nil, err
	}
	responses := make([]BrandResponse, 0, len(brands))
	for i := range brands {
		responses = append(responses, ToBrandResponse(&brands[i]))
	}
	return responses, nil
}

// MergeBrands copies brand names from another branch into this branch.
// Names already present are skipped; copies start empty. Returns how many
// brands were created.
func (s *BrandService) MergeBrands(ctx context.Context, enterpriseID, targetBranchID, sourceBranchID uuid.UUID) (int, error) {
	sourceBrands, err := s.brandRepo.FindAllForEnterprise(ctx, enterpriseID, &sourceBranchID)
	if err != nil {
		return 0, err
	}
	targetBrands, err := s.brandRepo.FindAllForEnterprise(ctx, enterpriseID, &targetBranchID)
	if err != nil {
		return 0, err
	}
	existing := make(map[string]bool, len(targetBrands))
	for i := range targetBrands {
		existing[strings.ToLower(targetBrands[i].Name)] = true
	}

	copied := 0
	for i := range sourceBrands {
		src := &sourceBrands[i]
		if existing[strings.ToLower(src.Name)] {
			continue
		}
		brand, err := inventory.NewBrand(enterpriseID, &targetBranchID, src.Name)
		if err != nil {
			return copied, err
		}
		if err := s.brandRepo.Save(ctx, brand); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}
