package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/application/stock"
	"github.com/retailbook/backend/internal/domain/ledger"
	"github.com/retailbook/backend/internal/domain/shared"
	"github.com/retailbook/backend/internal/domain/trade"
)

// PurchaseService handles purchase bill operations. Every mutation runs the
// bill header, line items, stock aggregates and linked vendor ledger entries
// through one transaction scope.
type PurchaseService struct {
	scope    stock.TransactionScope
	readRepo trade.PurchaseTransactionRepository
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(scope stock.TransactionScope, readRepo trade.PurchaseTransactionRepository) *PurchaseService {
	return &PurchaseService{
		scope:    scope,
		readRepo: readRepo,
	}
}

// Create records a purchase bill and moves its goods into stock.
func (s *PurchaseService) Create(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, req CreatePurchaseRequest) (*PurchaseTransactionResponse, error) {
	method := shared.PaymentMethod(req.Method)

	items := make([]trade.Purchase, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, trade.Purchase{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	tx, err := trade.NewPurchaseTransaction(enterpriseID, branchID, req.VendorID, req.Date, req.BillNo, method, items)
	if err != nil {
		return nil, err
	}
	tx.SetPayment(req.CashAmount, req.CardAmount, req.OnlineAmount, req.AmountPaid)

	err = s.scope.Execute(ctx, func(repos stock.Repositories) error {
		if err := stock.Apply(ctx, repos, stock.PurchaseDeltas(tx.Items), stock.Forward); err != nil {
			return err
		}
		if err := repos.PurchaseTxRepo().Save(ctx, tx); err != nil {
			return err
		}
		return s.recordVendorCredit(ctx, repos, tx)
	})
	if err != nil {
		return nil, err
	}

	response := ToPurchaseTransactionResponse(tx)
	return &response, nil
}

// recordVendorCredit books the unpaid remainder of a credit purchase against
// the vendor so statements show the debt immediately.
func (s *PurchaseService) recordVendorCredit(ctx context.Context, repos stock.Repositories, tx *trade.PurchaseTransaction) error {
	if tx.Method != shared.PaymentCredit || tx.VendorID == nil {
		return nil
	}
	outstanding := tx.TotalAmount.Sub(tx.AmountPaid)
	if outstanding.IsZero() {
		return nil
	}
	entry, err := ledger.NewVendorTransaction(tx.EnterpriseID, tx.BranchID, *tx.VendorID, tx.Date, outstanding.Neg(), tx.Method, "Credit purchase "+tx.BillNo)
	if err != nil {
		return err
	}
	entry.PurchaseTransactionID = &tx.ID
	return repos.VendorTxRepo().Save(ctx, entry)
}

// Update replaces the bill wholesale: the old items are fully reversed and
// deleted, then the new items applied, all in one transaction. Bills with
// returned lines refuse updates; the return bookkeeping cannot survive an
// item replacement.
func (s *PurchaseService) Update(ctx context.Context, enterpriseID, id uuid.UUID, req UpdatePurchaseRequest) (*PurchaseTransactionResponse, error) {
	method := shared.PaymentMethod(req.Method)
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}

	var response PurchaseTransactionResponse
	err := s.scope.Execute(ctx, func(repos stock.Repositories) error {
		tx, err := repos.PurchaseTxRepo().FindByIDForTenant(ctx, id, enterpriseID)
		if err != nil {
			return err
		}
		if tx.HasReturnedItems() {
			return shared.ErrConflict
		}

		if err := stock.Apply(ctx, repos, stock.PurchaseDeltas(tx.Items), stock.Reverse); err != nil {
			return err
		}
		if err := repos.PurchaseTxRepo().DeleteItems(ctx, tx.ID); err != nil {
			return err
		}
		if err := repos.VendorTxRepo().DeleteBySourceTransaction(ctx, tx.ID); err != nil {
			return err
		}

		items := make([]trade.Purchase, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, trade.Purchase{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			})
		}
		if err := tx.ReplaceItems(items); err != nil {
			return err
		}
		tx.Date = req.Date
		tx.BillNo = req.BillNo
		tx.VendorID = req.VendorID
		tx.Method = method
		tx.SetPayment(req.CashAmount, req.CardAmount, req.OnlineAmount, req.AmountPaid)

		if err := stock.Apply(ctx, repos, stock.PurchaseDeltas(tx.Items), stock.Forward); err != nil {
			return err
		}
		if err := repos.PurchaseTxRepo().Save(ctx, tx); err != nil {
			return err
		}
		if err := s.recordVendorCredit(ctx, repos, tx); err != nil {
			return err
		}
		response = ToPurchaseTransactionResponse(tx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete reverses the bill's remaining stock effect and removes it. Lines
// already returned were reversed when the return was created, so they are
// skipped here. Linked vendor ledger entries go with the bill.
func (s *PurchaseService) Delete(ctx context.Context, enterpriseID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos stock.Repositories) error {
		tx, err := repos.PurchaseTxRepo().FindByIDForTenant(ctx, id, enterpriseID)
		if err != nil {
			return err
		}
		if err := stock.Apply(ctx, repos, stock.PurchaseDeltas(tx.ActiveItems()), stock.Reverse); err != nil {
			return err
		}
		if err := repos.VendorTxRepo().DeleteBySourceTransaction(ctx, tx.ID); err != nil {
			return err
		}
		return repos.PurchaseTxRepo().Delete(ctx, tx.ID)
	})
}

// GetByID retrieves a purchase bill by ID.
func (s *PurchaseService) GetByID(ctx context.Context, enterpriseID, id uuid.UUID) (*PurchaseTransactionResponse, error) {
	tx, err := s.readRepo.FindByIDForTenant(ctx, id, enterpriseID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseTransactionResponse(tx)
	return &response, nil
}

// List retrieves purchase bills with pagination and date filtering.
func (s *PurchaseService) List(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter ListFilter) ([]PurchaseTransactionResponse, int64, error) {
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
	responses := make([]PurchaseTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, ToPurchaseTransactionResponse(tx))
	}
	return responses, total, nil
}
