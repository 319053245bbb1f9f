package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/domain/ledger"
)

// StatementService builds party statements. A statement is a pure read:
// the opening balance is the negated sum of all entries strictly before the
// window start, and the listed entries come back in (date, id) order.
type StatementService struct {
	vendorTxRepo ledger.VendorTransactionRepository
	debtorTxRepo ledger.DebtorTransactionRepository
	staffTxRepo  ledger.StaffTransactionRepository
}

// NewStatementService creates a new StatementService
func NewStatementService(
	vendorTxRepo ledger.VendorTransactionRepository,
	debtorTxRepo ledger.DebtorTransactionRepository,
	staffTxRepo ledger.StaffTransactionRepository,
) *StatementService {
	return &StatementService{
		vendorTxRepo: vendorTxRepo,
		debtorTxRepo: debtorTxRepo,
		staffTxRepo:  staffTxRepo,
	}
}

// VendorStatement builds the statement for one vendor.
func (s *StatementService) VendorStatement(ctx context.Context, vendorID uuid.UUID, start, end *time.Time) (*StatementResponse, error) {
	return buildStatement(ctx, s.vendorTxRepo, vendorID, start, end, vendorTxResponse)
}

// DebtorStatement builds the statement for one debtor.
func (s *StatementService) DebtorStatement(ctx context.Context, debtorID uuid.UUID, start, end *time.Time) (*StatementResponse, error) {
	return buildStatement(ctx, s.debtorTxRepo, debtorID, start, end, debtorTxResponse)
}

// StaffStatement builds the statement for one staff member.
func (s *StatementService) StaffStatement(ctx context.Context, staffID uuid.UUID, start, end *time.Time) (*StatementResponse, error) {
	return buildStatement(ctx, s.staffTxRepo, staffID, start, end, staffTxResponse)
}

func buildStatement[T any](
	ctx context.Context,
	repo ledger.PartyTransactionRepository[T],
	partyID uuid.UUID,
	start, end *time.Time,
	toResponse func(*T) *PartyTransactionResponse,
) (*StatementResponse, error) {
	statement := &StatementResponse{PartyID: partyID}

	if start != nil {
		sum, err := repo.SumAmountBefore(ctx, partyID, *start)
		if err != nil {
			return nil, err
		}
		opening := sum.Neg()
		statement.OpeningBalance = &opening
	}

	entries, err := repo.FindForParty(ctx, partyID, start, end)
	if err != nil {
		return nil, err
	}
	statement.Transactions = make([]PartyTransactionResponse, 0, len(entries))
	for _, e := range entries {
		statement.Transactions = append(statement.Transactions, *toResponse(e))
	}
	return statement, nil
}
