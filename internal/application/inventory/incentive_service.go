package inventory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/domain/inventory"
	"github.com/retailbook/backend/internal/domain/shared"
)

// IncentiveService maintains the per-category staff incentive rates.
type IncentiveService struct {
	incentiveRepo inventory.IncentiveProductRepository
}

// NewIncentiveService creates a new IncentiveService
func NewIncentiveService(incentiveRepo inventory.IncentiveProductRepository) *IncentiveService {
	return &IncentiveService{incentiveRepo: incentiveRepo}
}

// Create creates an incentive entry.
func (s *IncentiveService) Create(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, req CreateIncentiveProductRequest) (*IncentiveProductResponse, error) {
	entry, err := inventory.NewIncentiveProduct(enterpriseID, branchID, strings.TrimSpace(req.Name), req.Rate)
	if err != nil {
		return nil, err
	}
	if err := s.incentiveRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	response := ToIncentiveProductResponse(entry)
	return &response, nil
}

// Update edits an incentive entry. Absent fields keep their value.
func (s *IncentiveService) Update(ctx context.Context, enterpriseID, id uuid.UUID, req UpdateIncentiveProductRequest) (*IncentiveProductResponse, error) {
	entry, err := s.incentiveRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.EnterpriseID != enterpriseID {
		return nil, shared.ErrNotFound
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Incentive name cannot be empty")
		}
		entry.Name = name
	}
	if req.Rate != nil {
		if err := entry.SetRate(*req.Rate); err != nil {
			return nil, err
		}
	}
	if err := s.incentiveRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	response := ToIncentiveProductResponse(entry)
	return &response, nil
}

// Delete removes an incentive entry.
func (s *IncentiveService) Delete(ctx context.Context, enterpriseID, id uuid.UUID) error {
	entry, err := s.incentiveRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.EnterpriseID != enterpriseID {
		return shared.ErrNotFound
	}
	return s.incentiveRepo.Delete(ctx, id)
}

// GetByID retrieves an incentive entry by ID.
func (s *IncentiveService) GetByID(ctx context.Context, enterpriseID, id uuid.UUID) (*IncentiveProductResponse, error) {
	entry, err := s.incentiveRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.EnterpriseID != enterpriseID {
		return nil, shared.ErrNotFound
	}
	response := ToIncentiveProductResponse(entry)
	return &response, nil
}

// List retrieves all incentive entries of a branch, ordered by name.
func (s *IncentiveService) List(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID) ([]IncentiveProductResponse, error) {
	entries, err := s.incentiveRepo.FindAllForEnterprise(ctx, enterpriseID, branchID)
	if err != nil {
		return nil, err
	}
	responses := make([]IncentiveProductResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToIncentiveProductResponse(&entries[i]))
	}
	return responses, nil
}
