package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/domain/ledger"
	"github.com/retailbook/backend/internal/domain/shared"
)

// CashbookService handles expenses, withdrawals and the daily closing cash
// snapshot.
type CashbookService struct {
	expenseRepo     ledger.ExpenseRepository
	withdrawalRepo  ledger.WithdrawalRepository
	closingCashRepo ledger.ClosingCashRepository
}

// NewCashbookService creates a new CashbookService
func NewCashbookService(
	expenseRepo ledger.ExpenseRepository,
	withdrawalRepo ledger.WithdrawalRepository,
	closingCashRepo ledger.ClosingCashRepository,
) *CashbookService {
	return &CashbookService{
		expenseRepo:     expenseRepo,
		withdrawalRepo:  withdrawalRepo,
		closingCashRepo: closingCashRepo,
	}
}

// CreateExpense records an expense.
func (s *CashbookService) CreateExpense(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, req ExpenseRequest) (*ExpenseResponse, error) {
	e, err := ledger.NewExpense(enterpriseID, branchID, req.Date, req.Amount, shared.PaymentMethod(req.Method), req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, e); err != nil {
		return nil, err
	}
	response := ToExpenseResponse(e)
	return &response, nil
}

// DeleteExpense removes an expense.
func (s *CashbookService) DeleteExpense(ctx context.Context, enterpriseID, id uuid.UUID) error {
	e, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if e.EnterpriseID != enterpriseID {
		return shared.ErrNotFound
	}
	return s.expenseRepo.Delete(ctx, id)
}

// ListExpenses retrieves expenses with pagination and date filtering.
func (s *CashbookService) ListExpenses(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter ListFilter) ([]ExpenseResponse, int64, error) {
	expenses, total, err := s.expenseRepo.FindAllForEnterprise(ctx, enterpriseID, branchID, toSharedFilter(filter))
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, ToExpenseResponse(e))
	}
	return responses, total, nil
}

// CreateWithdrawal records an owner withdrawal.
func (s *CashbookService) CreateWithdrawal(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, req WithdrawalRequest) (*WithdrawalResponse, error) {
	w, err := ledger.NewWithdrawal(enterpriseID, branchID, req.Date, req.Amount, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.withdrawalRepo.Save(ctx, w); err != nil {
		return nil, err
	}
	response := ToWithdrawalResponse(w)
	return &response, nil
}

// DeleteWithdrawal removes a withdrawal.
func (s *CashbookService) DeleteWithdrawal(ctx context.Context, enterpriseID, id uuid.UUID) error {
	w, err := s.withdrawalRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if w.EnterpriseID != enterpriseID {
		return shared.ErrNotFound
	}
	return s.withdrawalRepo.Delete(ctx, id)
}

// ListWithdrawals retrieves withdrawals with pagination and date filtering.
func (s *CashbookService) ListWithdrawals(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter ListFilter) ([]WithdrawalResponse, int64, error) {
	withdrawals, total, err := s.withdrawalRepo.FindAllForEnterprise(ctx, enterpriseID, branchID, toSharedFilter(filter))
	if err != nil {
		return nil, 0, err
	}
	responses := make([]WithdrawalResponse, 0, len(withdrawals))
	for _, w := range withdrawals {
		responses = append(responses, ToWithdrawalResponse(w))
	}
	return responses, total, nil
}

// RecordClosingCash upserts the counted drawer cash for one day. Counting
// twice replaces the earlier figure for the same day.
func (s *CashbookService) RecordClosingCash(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, req ClosingCashRequest) (*ClosingCashResponse, error) {
	c, err := ledger.NewClosingCash(enterpriseID, branchID, req.Date, req.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.closingCashRepo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return &ClosingCashResponse{ID: c.ID, Date: c.Date, Amount: c.Amount}, nil
}

// GetClosingCash retrieves the snapshot for one day, if recorded.
func (s *CashbookService) GetClosingCash(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, req ClosingCashRequest) (*ClosingCashResponse, error) {
	c, err := s.closingCashRepo.FindByDate(ctx, enterpriseID, branchID, req.Date)
	if err != nil {
		return nil, err
	}
	return &ClosingCashResponse{ID: c.ID, Date: c.Date, Amount: c.Amount}, nil
}
