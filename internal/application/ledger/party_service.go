package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/domain/ledger"
	"github.com/retailbook/backend/internal/domain/shared"
)

// VendorService handles vendor records and their manual ledger entries.
// Entries generated by credit purchases belong to the purchase service and
// are not editable here.
type VendorService struct {
	vendorRepo ledger.VendorRepository
	txRepo     ledger.VendorTransactionRepository
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo ledger.VendorRepository, txRepo ledger.VendorTransactionRepository) *VendorService {
	return &VendorService{vendorRepo: vendorRepo, txRepo: txRepo}
}

// Create creates a vendor.
func (s *VendorService) Create(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, req PartyRequest) (*PartyResponse, error) {
	v, err := ledger.NewVendor(enterpriseID, branchID, req.Name, req.PhoneNumber, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.vendorRepo.Save(ctx, v); err != nil {
		return nil, err
	}
	return vendorResponse(v), nil
}

// Update edits a vendor's details.
func (s *VendorService) Update(ctx context.Context, enterpriseID, id uuid.UUID, req PartyRequest) (*PartyResponse, error) {
	v, err := s.vendorRepo.FindByIDForTenant(ctx, id, enterpriseID)
	if err != nil {
		return nil, err
	}
	v.Name = req.Name
	v.PhoneNumber = req.PhoneNumber
	v.Address = req.Address
	if err := s.vendorRepo.Save(ctx, v); err != nil {
		return nil, err
	}
	return vendorResponse(v), nil
}

// Delete removes a vendor.
func (s *VendorService) Delete(ctx context.Context, enterpriseID, id uuid.UUID) error {
	if _, err := s.vendorRepo.FindByIDForTenant(ctx, id, enterpriseID); err != nil {
		return err
	}
	return s.vendorRepo.Delete(ctx, id)
}

// GetByID retrieves a vendor by ID.
func (s *VendorService) GetByID(ctx context.Context, enterpriseID, id uuid.UUID) (*PartyResponse, error) {
	v, err := s.vendorRepo.FindByIDForTenant(ctx, id, enterpriseID)
	if err != nil {
		return nil, err
	}
	return vendorResponse(v), nil
}

// List retrieves vendors with pagination and name search.
func (s *VendorService) List(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter ListFilter) ([]PartyResponse, int64, error) {
	vendors, total, err := s.vendorRepo.FindAllForEnterprise(ctx, enterpriseID, branchID, toSharedFilter(filter))
	if err != nil {
		return nil, 0, err
	}
	responses := make([]PartyResponse, 0, len(vendors))
	for _, v := range vendors {
		responses = append(responses, *vendorResponse(v))
	}
	return responses, total, nil
}

// AddTransaction records a manual ledger entry against a vendor.
func (s *VendorService) AddTransaction(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, vendorID uuid.UUID, req PartyTransactionRequest) (*PartyTransactionResponse, error) {
	if _, err := s.vendorRepo.FindByIDForTenant(ctx, vendorID, enterpriseID); err != nil {
		return nil, err
	}
	entry, err := ledger.NewVendorTransaction(enterpriseID, branchID, vendorID, req.Date, req.Amount, shared.PaymentMethod(req.Method), req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.txRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	return vendorTxResponse(entry), nil
}

// DeleteTransaction removes a manual ledger entry. Entries linked to a
// purchase refuse deletion here; deleting the purchase removes them.
func (s *VendorService) DeleteTransaction(ctx context.Context, enterpriseID, id uuid.UUID) error {
	entry, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.EnterpriseID != enterpriseID {
		return shared.ErrNotFound
	}
	if entry.PurchaseTransactionID != nil {
		return shared.ErrConflict
	}
	return s.txRepo.Delete(ctx, id)
}

func vendorResponse(v *ledger.Vendor) *PartyResponse {
	return &PartyResponse{
		ID:          v.ID,
		Name:        v.Name,
		PhoneNumber: v.PhoneNumber,
		Address:     v.Address,
		CreatedAt:   v.CreatedAt,
	}
}

func vendorTxResponse(t *ledger.VendorTransaction) *PartyTransactionResponse {
	return &PartyTransactionResponse{
		ID:          t.ID,
		PartyID:     t.VendorID,
		Date:        t.Date,
		Amount:      t.Amount,
		Method:      t.Method.String(),
		Description: t.Description,
		SourceID:    t.PurchaseTransactionID,
		CreatedAt:   t.CreatedAt,
	}
}

// DebtorService handles debtor records and their manual ledger entries.
type DebtorService struct {
	debtorRepo ledger.DebtorRepository
	txRepo     ledger.DebtorTransactionRepository
}

// NewDebtorService creates a new DebtorService
func NewDebtorService(debtorRepo ledger.DebtorRepository, txRepo ledger.DebtorTransactionRepository) *DebtorService {
	return &DebtorService{debtorRepo: debtorRepo, txRepo: txRepo}
}

// Create creates a debtor.
func (s *DebtorService) Create(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, req PartyRequest) (*PartyResponse, error) {
	d, err := ledger.NewDebtor(enterpriseID, branchID, req.Name, req.PhoneNumber, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.debtorRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	return debtorResponse(d), nil
}

// Update edits a debtor's details.
func (s *DebtorService) Update(ctx context.Context, enterpriseID, id uuid.UUID, req PartyRequest) (*PartyResponse, error) {
	d, err := s.debtorRepo.FindByIDForTenant(ctx, id, enterpriseID)
	if err != nil {
		return nil, err
	}
	d.Name = req.Name
	d.PhoneNumber = req.PhoneNumber
	d.Address = req.Address
	if err := s.debtorRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	return debtorResponse(d), nil
}

// Delete removes a debtor.
func (s *DebtorService) Delete(ctx context.Context, enterpriseID, id uuid.UUID) error {
	if _, err := s.debtorRepo.FindByIDForTenant(ctx, id, enterpriseID); err != nil {
		return err
	}
	return s.debtorRepo.Delete(ctx, id)
}

// GetByID retrieves a debtor by ID.
func (s *DebtorService) GetByID(ctx context.Context, enterpriseID, id uuid.UUID) (*PartyResponse, error) {
	d, err := s.debtorRepo.FindByIDForTenant(ctx, id, enterpriseID)
	if err != nil {
		return nil, err
	}
	return debtorResponse(d), nil
}

// List retrieves debtors with pagination and name search.
func (s *DebtorService) List(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter ListFilter) ([]PartyResponse, int64, error) {
	debtors, total, err := s.debtorRepo.FindAllForEnterprise(ctx, enterpriseID, branchID, toSharedFilter(filter))
	if err != nil {
		return nil, 0, err
	}
	responses := make([]PartyResponse, 0, len(debtors))
	for _, d := range debtors {
		responses = append(responses, *debtorResponse(d))
	}
	return responses, total, nil
}

// AddTransaction records a manual ledger entry against a debtor, typically a
// repayment of an earlier credit sale.
func (s *DebtorService) AddTransaction(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, debtorID uuid.UUID, req PartyTransactionRequest) (*PartyTransactionResponse, error) {
	if _, err := s.debtorRepo.FindByIDForTenant(ctx, debtorID, enterpriseID); err != nil {
		return nil, err
	}
	entry, err := ledger.NewDebtorTransaction(enterpriseID, branchID, debtorID, req.Date, req.Amount, shared.PaymentMethod(req.Method), req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.txRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	return debtorTxResponse(entry), nil
}

// DeleteTransaction removes a manual ledger entry. Entries linked to a sale
// refuse deletion here; deleting the sale removes them.
func (s *DebtorService) DeleteTransaction(ctx context.Context, enterpriseID, id uuid.UUID) error {
	entry, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.EnterpriseID != enterpriseID {
		return shared.ErrNotFound
	}
	if entry.SalesTransactionID != nil {
		return shared.ErrConflict
	}
	return s.txRepo.Delete(ctx, id)
}

func debtorResponse(d *ledger.Debtor) *PartyResponse {
	return &PartyResponse{
		ID:          d.ID,
		Name:        d.Name,
		PhoneNumber: d.PhoneNumber,
		Address:     d.Address,
		CreatedAt:   d.CreatedAt,
	}
}

func debtorTxResponse(t *ledger.DebtorTransaction) *PartyTransactionResponse {
	return &PartyTransactionResponse{
		ID:          t.ID,
		PartyID:     t.DebtorID,
		Date:        t.Date,
		Amount:      t.Amount,
		Method:      t.Method.String(),
		Description: t.Description,
		SourceID:    t.SalesTransactionID,
		CreatedAt:   t.CreatedAt,
	}
}

// StaffService handles staff records and their ledger entries.
type StaffService struct {
	staffRepo ledger.StaffRepository
	txRepo    ledger.StaffTransactionRepository
}

// NewStaffService creates a new StaffService
func NewStaffService(staffRepo ledger.StaffRepository, txRepo ledger.StaffTransactionRepository) *StaffService {
	return &StaffService{staffRepo: staffRepo, txRepo: txRepo}
}

// Create creates a staff member.
func (s *StaffService) Create(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, req PartyRequest) (*PartyResponse, error) {
	m, err := ledger.NewStaff(enterpriseID, branchID, req.Name, req.PhoneNumber, req.Role)
	if err != nil {
		return nil, err
	}
	if err := s.staffRepo.Save(ctx, m); err != nil {
		return nil, err
	}
	return staffResponse(m), nil
}

// Update edits a staff member's details.
func (s *StaffService) Update(ctx context.Context, enterpriseID, id uuid.UUID, req PartyRequest) (*PartyResponse, error) {
	m, err := s.staffRepo.FindByIDForTenant(ctx, id, enterpriseID)
	if err != nil {
		return nil, err
	}
	m.Name = req.Name
	m.PhoneNumber = req.PhoneNumber
	m.Role = req.Role
	if err := s.staffRepo.Save(ctx, m); err != nil {
		return nil, err
	}
	return staffResponse(m), nil
}

// Delete removes a staff member.
func (s *StaffService) Delete(ctx context.Context, enterpriseID, id uuid.UUID) error {
	if _, err := s.staffRepo.FindByIDForTenant(ctx, id, enterpriseID); err != nil {
		return err
	}
	return s.staffRepo.Delete(ctx, id)
}

// GetByID retrieves a staff member by ID.
func (s *StaffService) GetByID(ctx context.Context, enterpriseID, id uuid.UUID) (*PartyResponse, error) {
	m, err := s.staffRepo.FindByIDForTenant(ctx, id, enterpriseID)
	if err != nil {
		return nil, err
	}
	return staffResponse(m), nil
}

// List retrieves staff with pagination and name search.
func (s *StaffService) List(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter ListFilter) ([]PartyResponse, int64, error) {
	staff, total, err := s.staffRepo.FindAllForEnterprise(ctx, enterpriseID, branchID, toSharedFilter(filter))
	if err != nil {
		return nil, 0, err
	}
	responses := make([]PartyResponse, 0, len(staff))
	for _, m := range staff {
		responses = append(responses, *staffResponse(m))
	}
	return responses, total, nil
}

// AddTransaction records a salary advance or payment against a staff member.
func (s *StaffService) AddTransaction(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, staffID uuid.UUID, req PartyTransactionRequest) (*PartyTransactionResponse, error) {
	if _, err := s.staffRepo.FindByIDForTenant(ctx, staffID, enterpriseID); err != nil {
		return nil, err
	}
	entry, err := ledger.NewStaffTransaction(enterpriseID, branchID, staffID, req.Date, req.Amount, shared.PaymentMethod(req.Method), req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.txRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	return staffTxResponse(entry), nil
}

// DeleteTransaction removes a staff ledger entry.
func (s *StaffService) DeleteTransaction(ctx context.Context, enterpriseID, id uuid.UUID) error {
	entry, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.EnterpriseID != enterpriseID {
		return shared.ErrNotFound
	}
	return s.txRepo.Delete(ctx, id)
}

func staffResponse(m *ledger.Staff) *PartyResponse {
	return &PartyResponse{
		ID:          m.ID,
		Name:        m.Name,
		PhoneNumber: m.PhoneNumber,
		Role:        m.Role,
		CreatedAt:   m.CreatedAt,
	}
}

func staffTxResponse(t *ledger.StaffTransaction) *PartyTransactionResponse {
	return &PartyTransactionResponse{
		ID:          t.ID,
		PartyID:     t.StaffID,
		Date:        t.Date,
		Amount:      t.Amount,
		Method:      t.Method.String(),
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

func toSharedFilter(filter ListFilter) shared.Filter {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	f.StartDate = filter.StartDate
	f.EndDate = filter.EndDate
	return f
}
