package trade

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/application/stock"
	"github.com/retailbook/backend/internal/domain/ledger"
	"github.com/retailbook/backend/internal/domain/shared"
	"github.com/retailbook/backend/internal/domain/trade"
)

// SalesService handles customer bill operations. Bill numbers are issued
// inside the same transaction that persists the bill, so concurrent tills
// cannot race to the same number.
type SalesService struct {
	scope    stock.TransactionScope
	readRepo trade.SalesTransactionRepository
}

// NewSalesService creates a new SalesService
func NewSalesService(scope stock.TransactionScope, readRepo trade.SalesTransactionRepository) *SalesService {
	return &SalesService{
		scope:    scope,
		readRepo: readRepo,
	}
}

// Create records a customer bill and moves its goods out of stock.
func (s *SalesService) Create(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, req CreateSalesRequest) (*SalesTransactionResponse, error) {
	method := shared.PaymentMethod(req.Method)
	if method == shared.PaymentCredit && req.DebtorID == nil {
		return nil, shared.NewDomainError("INVALID_DEBTOR", "Credit sale requires a debtor")
	}

	items := make([]trade.Sale, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, trade.Sale{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
		})
	}

	var response SalesTransactionResponse
	err := s.scope.Execute(ctx, func(repos stock.Repositories) error {
		maxNo, err := repos.SalesTxRepo().MaxBillNo(ctx, enterpriseID, branchID)
		if err != nil {
			return err
		}

		tx, err := trade.NewSalesTransaction(enterpriseID, branchID, req.Date, maxNo+1, req.CustomerName, req.PhoneNumber, method, items)
		if err != nil {
			return err
		}
		tx.SetPayment(req.CashAmount, req.CardAmount, req.OnlineAmount, req.AmountPaid)

		if err := stock.Apply(ctx, repos, stock.SaleDeltas(tx.Items), stock.Forward); err != nil {
			return err
		}
		if err := repos.SalesTxRepo().Save(ctx, tx); err != nil {
			return err
		}
		if err := s.recordDebtorCredit(ctx, repos, tx, req.DebtorID); err != nil {
			return err
		}
		response = ToSalesTransactionResponse(tx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// recordDebtorCredit books the unpaid remainder of a credit sale against the
// debtor. Deleting the sale later removes this entry with it.
func (s *SalesService) recordDebtorCredit(ctx context.Context, repos stock.Repositories, tx *trade.SalesTransaction, debtorID *uuid.UUID) error {
	if tx.Method != shared.PaymentCredit || debtorID == nil {
		return nil
	}
	outstanding := tx.Outstanding()
	if outstanding.IsZero() {
		return nil
	}
	entry, err := ledger.NewDebtorTransaction(tx.EnterpriseID, tx.BranchID, *debtorID, tx.Date, outstanding.Neg(), tx.Method, "Credit sale bill "+strconv.Itoa(tx.BillNo))
	if err != nil {
		return err
	}
	entry.SalesTransactionID = &tx.ID
	return repos.DebtorTxRepo().Save(ctx, entry)
}

// Update replaces the bill wholesale: old items reversed and deleted, new
// items applied, linked debtor entries rebuilt, one transaction. Bills with
// returned lines refuse updates.
func (s *SalesService) Update(ctx context.Context, enterpriseID, id uuid.UUID, req UpdateSalesRequest) (*SalesTransactionResponse, error) {
	method := shared.PaymentMethod(req.Method)
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}
	if method == shared.PaymentCredit && req.DebtorID == nil {
		return nil, shared.NewDomainError("INVALID_DEBTOR", "Credit sale requires a debtor")
	}

	var response SalesTransactionResponse
	err := s.scope.Execute(ctx, func(repos stock.Repositories) error {
		tx, err := repos.SalesTxRepo().FindByIDForTenant(ctx, id, enterpriseID)
		if err != nil {
			return err
		}
		if tx.HasReturnedItems() {
			return shared.ErrConflict
		}

		if err := stock.Apply(ctx, repos, stock.SaleDeltas(tx.Items), stock.Reverse); err != nil {
			return err
		}
		if err := repos.SalesTxRepo().DeleteItems(ctx, tx.ID); err != nil {
			return err
		}
		if err := repos.DebtorTxRepo().DeleteBySourceTransaction(ctx, tx.ID); err != nil {
			return err
		}

		items := make([]trade.Sale, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, trade.Sale{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				Discount:  it.Discount,
			})
		}
		if err := tx.ReplaceItems(items); err != nil {
			return err
		}
		tx.Date = req.Date
		tx.CustomerName = req.CustomerName
		tx.PhoneNumber = req.PhoneNumber
		tx.Method = method
		tx.SetPayment(req.CashAmount, req.CardAmount, req.OnlineAmount, req.AmountPaid)

		if err := stock.Apply(ctx, repos, stock.SaleDeltas(tx.Items), stock.Forward); err != nil {
			return err
		}
		if err := repos.SalesTxRepo().Save(ctx, tx); err != nil {
			return err
		}
		if err := s.recordDebtorCredit(ctx, repos, tx, req.DebtorID); err != nil {
			return err
		}
		response = ToSalesTransactionResponse(tx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete reverses the bill and removes it, along with any linked debtor
// ledger entry. A bill with a returned line refuses deletion outright: the
// return already reversed part of it and the two reversals cannot be told
// apart afterwards.
func (s *SalesService) Delete(ctx context.Context, enterpriseID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos stock.Repositories) error {
		tx, err := repos.SalesTxRepo().FindByIDForTenant(ctx, id, enterpriseID)
		if err != nil {
			return err
		}
		if tx.HasReturnedItems() {
			return shared.ErrConflict
		}
		if err := stock.Apply(ctx, repos, stock.SaleDeltas(tx.Items), stock.Reverse); err != nil {
			return err
		}
		if err := repos.DebtorTxRepo().DeleteBySourceTransaction(ctx, tx.ID); err != nil {
			return err
		}
		return repos.SalesTxRepo().Delete(ctx, tx.ID)
	})
}

// GetByID retrieves a customer bill by ID.
func (s *SalesService) GetByID(ctx context.Context, enterpriseID, id uuid.UUID) (*SalesTransactionResponse, error) {
	tx, err := s.readRepo.FindByIDForTenant(ctx, id, enterpriseID)
	if err != nil {
		return nil, err
	}
	response := ToSalesTransactionResponse(tx)
	return &response, nil
}

// List retrieves customer bills with pagination and date filtering.
func (s *SalesService) List(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter ListFilter) ([]SalesTransactionResponse, int64, error) {
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

	txs, total, err := s.readRepo.FindAllForEnterprise(ctx, enterpriseID, branchID, f)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]SalesTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, ToSalesTransactionResponse(tx))
	}
	return responses, total, nil
}

// NextBillNo returns the bill number the next sale will take. Informational
// only; the number actually issued is resolved again inside the create
// transaction.
func (s *SalesService) NextBillNo(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID) (int, error) {
	maxNo, err := s.readRepo.MaxBillNo(ctx, enterpriseID, branchID)
	if err != nil {
		return 0, err
	}
	return maxNo + 1, nil
}
