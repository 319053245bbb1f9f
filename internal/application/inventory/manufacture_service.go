package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/application/stock"
	"github.com/retailbook/backend/internal/domain/inventory"
	"github.com/retailbook/backend/internal/domain/shared"
)

// ManufactureService records production events. A manufacture moves finished
// goods into stock exactly like a purchase does.
type ManufactureService struct {
	scope    stock.TransactionScope
	readRepo inventory.ManufactureRepository
}

// NewManufactureService creates a new ManufactureService
func NewManufactureService(scope stock.TransactionScope, readRepo inventory.ManufactureRepository) *ManufactureService {
	return &ManufactureService{
		scope:    scope,
		readRepo: readRepo,
	}
}

// Create records a production event and moves its goods into stock.
func (s *ManufactureService) Create(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, req CreateManufactureRequest) (*ManufactureResponse, error) {
	items := make([]inventory.ManufactureItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, inventory.ManufactureItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	m, err := inventory.NewManufacture(enterpriseID, branchID, req.Date, items)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos stock.Repositories) error {
		if err := stock.Apply(ctx, repos, stock.ManufactureDeltas(m.Items), stock.Forward); err != nil {
			return err
		}
		return repos.ManufactureRepo().Save(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	response := ToManufactureResponse(m)
	return &response, nil
}

// Update rewrites a production event: the old lines are reversed out of
// stock, the new ones applied, all inside one scope.
func (s *ManufactureService) Update(ctx context.Context, enterpriseID, id uuid.UUID, req UpdateManufactureRequest) (*ManufactureResponse, error) {
	var response ManufactureResponse
	err := s.scope.Execute(ctx, func(repos stock.Repositories) error {
		m, err := repos.ManufactureRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if m.EnterpriseID != enterpriseID {
			return shared.ErrNotFound
		}

		if err := stock.Apply(ctx, repos, stock.ManufactureDeltas(m.Items), stock.Reverse); err != nil {
			return err
		}
		if err := repos.ManufactureRepo().DeleteItems(ctx, m.ID); err != nil {
			return err
		}

		items := make([]inventory.ManufactureItem, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, inventory.ManufactureItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			})
		}
		if err := m.ReplaceItems(items); err != nil {
			return err
		}
		m.Date = req.Date

		if err := stock.Apply(ctx, repos, stock.ManufactureDeltas(m.Items), stock.Forward); err != nil {
			return err
		}
		if err := repos.ManufactureRepo().Save(ctx, m); err != nil {
			return err
		}
		response = ToManufactureResponse(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete reverses a production event and removes it.
func (s *ManufactureService) Delete(ctx context.Context, enterpriseID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos stock.Repositories) error {
		m, err := repos.ManufactureRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if m.EnterpriseID != enterpriseID {
			return shared.ErrNotFound
		}
		if err := stock.Apply(ctx, repos, stock.ManufactureDeltas(m.Items), stock.Reverse); err != nil {
			return err
		}
		return repos.ManufactureRepo().Delete(ctx, m.ID)
	})
}

// GetByID retrieves a production event by ID.
func (s *ManufactureService) GetByID(ctx context.Context, enterpriseID, id uuid.UUID) (*ManufactureResponse, error) {
	m, err := s.readRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.EnterpriseID != enterpriseID {
		return nil, shared.ErrNotFound
	}
	response := ToManufactureResponse(m)
	return &response, nil
}

// List retrieves production events with pagination and product name search.
func (s *ManufactureService) List(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]ManufactureResponse, error) {
	ms, err := s.readRepo.FindAllForEnterprise(ctx, enterpriseID, branchID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ManufactureResponse, 0, len(ms))
	for i := range ms {
		responses = append(responses, ToManufactureResponse(&ms[i]))
	}
	return responses, nil
}
