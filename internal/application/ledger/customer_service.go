package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/domain/ledger"
	"github.com/retailbook/backend/internal/domain/shared"
)

// CustomerService handles walk-in customer records. The interesting read is
// lookup by phone, which carries the customer's derived lifetime spend.
type CustomerService struct {
	customerRepo ledger.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo ledger.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Create creates a customer. Phone lookups presume one customer per number,
// so a number already on file is refused.
func (s *CustomerService) Create(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, req CustomerRequest) (*CustomerResponse, error) {
	if err := s.checkPhoneFree(ctx, enterpriseID, req.PhoneNumber, uuid.Nil); err != nil {
		return nil, err
	}
	c, err := ledger.NewCustomer(enterpriseID, branchID, req.Name, req.PhoneNumber, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return &CustomerResponse{ID: c.ID, Name: c.Name, PhoneNumber: c.PhoneNumber, Address: c.Address}, nil
}

// Update edits a customer's details.
func (s *CustomerService) Update(ctx context.Context, enterpriseID, id uuid.UUID, req CustomerRequest) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.EnterpriseID != enterpriseID {
		return nil, shared.ErrNotFound
	}
	if err := s.checkPhoneFree(ctx, enterpriseID, req.PhoneNumber, c.ID); err != nil {
		return nil, err
	}
	c.Name = req.Name
	c.PhoneNumber = req.PhoneNumber
	c.Address = req.Address
	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return &CustomerResponse{ID: c.ID, Name: c.Name, PhoneNumber: c.PhoneNumber, Address: c.Address}, nil
}

// checkPhoneFree refuses a phone number another customer already holds.
// selfID exempts the record being edited.
func (s *CustomerService) checkPhoneFree(ctx context.Context, enterpriseID uuid.UUID, phoneNumber string, selfID uuid.UUID) error {
	existing, err := s.customerRepo.FindByPhone(ctx, enterpriseID, phoneNumber)
	switch {
	case err == nil:
		if existing.ID != selfID {
			return shared.ErrAlreadyExists
		}
		return nil
	case errors.Is(err, shared.ErrNotFound):
		return nil
	default:
		return err
	}
}

// Delete removes a customer record. Their sales history stays.
func (s *CustomerService) Delete(ctx context.Context, enterpriseID, id uuid.UUID) error {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c.EnterpriseID != enterpriseID {
		return shared.ErrNotFound
	}
	return s.customerRepo.Delete(ctx, id)
}

// LookupByPhone finds a customer by phone number and folds in their lifetime
// spend across all recorded sales.
func (s *CustomerService) LookupByPhone(ctx context.Context, enterpriseID uuid.UUID, phoneNumber string) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByPhone(ctx, enterpriseID, phoneNumber)
	if err != nil {
		return nil, err
	}
	spend, purchases, err := s.customerRepo.LifetimeSpend(ctx, enterpriseID, phoneNumber)
	if err != nil {
		return nil, err
	}
	return &CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		PhoneNumber:   c.PhoneNumber,
		Address:       c.Address,
		LifetimeSpend: spend,
		Purchases:     purchases,
	}, nil
}

// List retrieves customers with pagination and search.
func (s *CustomerService) List(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter ListFilter) ([]CustomerResponse, int64, error) {
	customers, total, err := s.customerRepo.FindAllForEnterprise(ctx, enterpriseID, branchID, toSharedFilter(filter))
	if err != nil {
		return nil, 0, err
	}
	responses := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		responses = append(responses, CustomerResponse{
			ID:          c.ID,
			Name:        c.Name,
			PhoneNumber: c.PhoneNumber,
			Address:     c.Address,
		})
	}
	return responses, total, nil
}
