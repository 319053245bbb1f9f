package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/application/stock"
	"github.com/retailbook/backend/internal/domain/shared"
	"github.com/retailbook/backend/internal/domain/trade"
)

// ReturnService handles purchase and sales returns. A return is the single
// trigger for a line's stock reversal: it flips Returned and applies the
// reversal in one transaction, and from then on transaction deletion skips
// (purchases) or refuses (sales) that line.
type ReturnService struct {
	scope            stock.TransactionScope
	purchaseReadRepo trade.PurchaseReturnRepository
	salesReadRepo    trade.SalesReturnRepository
}

// NewReturnService creates a new ReturnService
func NewReturnService(scope stock.TransactionScope, purchaseReadRepo trade.PurchaseReturnRepository, salesReadRepo trade.SalesReturnRepository) *ReturnService {
	return &ReturnService{
		scope:            scope,
		purchaseReadRepo: purchaseReadRepo,
		salesReadRepo:    salesReadRepo,
	}
}

// CreatePurchaseReturn sends purchased lines back to the vendor, taking their
// goods out of stock.
func (s *ReturnService) CreatePurchaseReturn(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, req CreatePurchaseReturnRequest) (*ReturnResponse, error) {
	var response ReturnResponse
	err := s.scope.Execute(ctx, func(repos stock.Repositories) error {
		tx, err := repos.PurchaseTxRepo().FindByIDForTenant(ctx, req.TransactionID, enterpriseID)
		if err != nil {
			return err
		}

		items, err := repos.PurchaseTxRepo().FindItemsByIDs(ctx, req.PurchaseIDs)
		if err != nil {
			return err
		}
		if len(items) != len(req.PurchaseIDs) {
			return shared.ErrNotFound
		}
		lines := make([]trade.Purchase, 0, len(items))
		for _, it := range items {
			if it.TransactionID != tx.ID {
				return shared.NewDomainError("INVALID_ITEMS", "Line item does not belong to the transaction")
			}
			if it.Returned {
				return shared.ErrAlreadyReturned
			}
			it.Returned = true
			lines = append(lines, *it)
		}

		if err := stock.Apply(ctx, repos, stock.PurchaseDeltas(lines), stock.Reverse); err != nil {
			return err
		}
		if err := repos.PurchaseTxRepo().SaveItems(ctx, items); err != nil {
			return err
		}

		ret, err := trade.NewPurchaseReturn(enterpriseID, branchID, tx.ID, req.Date, req.PurchaseIDs)
		if err != nil {
			return err
		}
		if err := repos.PurchaseReturnRepo().Save(ctx, ret); err != nil {
			return err
		}
		response = ReturnResponse{
			ID:            ret.ID,
			TransactionID: ret.TransactionID,
			Date:          ret.Date,
			ItemIDs:       req.PurchaseIDs,
			CreatedAt:     ret.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// DeletePurchaseReturn undoes a purchase return: the goods come back into
// stock and the lines become deletable with their transaction again.
func (s *ReturnService) DeletePurchaseReturn(ctx context.Context, enterpriseID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos stock.Repositories) error {
		ret, err := repos.PurchaseReturnRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if ret.EnterpriseID != enterpriseID {
			return shared.ErrNotFound
		}

		ids := make([]uuid.UUID, 0, len(ret.Lines))
		for _, line := range ret.Lines {
			ids = append(ids, line.PurchaseID)
		}
		items, err := repos.PurchaseTxRepo().FindItemsByIDs(ctx, ids)
		if err != nil {
			return err
		}
		lines := make([]trade.Purchase, 0, len(items))
		for _, it := range items {
			it.Returned = false
			lines = append(lines, *it)
		}

		if err := stock.Apply(ctx, repos, stock.PurchaseDeltas(lines), stock.Forward); err != nil {
			return err
		}
		if err := repos.PurchaseTxRepo().SaveItems(ctx, items); err != nil {
			return err
		}
		return repos.PurchaseReturnRepo().Delete(ctx, ret.ID)
	})
}

// CreateSalesReturn takes sold lines back from the customer, putting their
// goods back into stock.
func (s *ReturnService) CreateSalesReturn(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, req CreateSalesReturnRequest) (*ReturnResponse, error) {
	var response ReturnResponse
	err := s.scope.Execute(ctx, func(repos stock.Repositories) error {
		tx, err := repos.SalesTxRepo().FindByIDForTenant(ctx, req.TransactionID, enterpriseID)
		if err != nil {
			return err
		}

		items, err := repos.SalesTxRepo().FindItemsByIDs(ctx, req.SaleIDs)
		if err != nil {
			return err
		}
		if len(items) != len(req.SaleIDs) {
			return shared.ErrNotFound
		}
		lines := make([]trade.Sale, 0, len(items))
		for _, it := range items {
			if it.TransactionID != tx.ID {
				return shared.NewDomainError("INVALID_ITEMS", "Line item does not belong to the transaction")
			}
			if it.Returned {
				return shared.ErrAlreadyReturned
			}
			it.Returned = true
			lines = append(lines, *it)
		}

		if err := stock.Apply(ctx, repos, stock.SaleDeltas(lines), stock.Reverse); err != nil {
			return err
		}
		if err := repos.SalesTxRepo().SaveItems(ctx, items); err != nil {
			return err
		}

		ret, err := trade.NewSalesReturn(enterpriseID, branchID, tx.ID, req.Date, req.SaleIDs)
		if err != nil {
			return err
		}
		if err := repos.SalesReturnRepo().Save(ctx, ret); err != nil {
			return err
		}
		response = ReturnResponse{
			ID:            ret.ID,
			TransactionID: ret.TransactionID,
			Date:          ret.Date,
			ItemIDs:       req.SaleIDs,
			CreatedAt:     ret.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// DeleteSalesReturn undoes a sales return: the goods leave stock again and
// the bill becomes deletable again.
func (s *ReturnService) DeleteSalesReturn(ctx context.Context, enterpriseID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos stock.Repositories) error {
		ret, err := repos.SalesReturnRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if ret.EnterpriseID != enterpriseID {
			return shared.ErrNotFound
		}

		ids := make([]uuid.UUID, 0, len(ret.Lines))
		for _, line := range ret.Lines {
			ids = append(ids, line.SaleID)
		}
		items, err := repos.SalesTxRepo().FindItemsByIDs(ctx, ids)
		if err != nil {
			return err
		}
		lines := make([]trade.Sale, 0, len(items))
		for _, it := range items {
			it.Returned = false
			lines = append(lines, *it)
		}

		if err := stock.Apply(ctx, repos, stock.SaleDeltas(lines), stock.Forward); err != nil {
			return err
		}
		if err := repos.SalesTxRepo().SaveItems(ctx, items); err != nil {
			return err
		}
		return repos.SalesReturnRepo().Delete(ctx, ret.ID)
	})
}

// ListPurchaseReturns lists purchase returns in an optional date window.
func (s *ReturnService) ListPurchaseReturns(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter ListFilter) ([]ReturnResponse, error) {
	rets, err := s.purchaseReadRepo.FindAllForEnterprise(ctx, enterpriseID, branchID, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}
	responses := make([]ReturnResponse, 0, len(rets))
	for _, ret := range rets {
		ids := make([]uuid.UUID, 0, len(ret.Lines))
		for _, line := range ret.Lines {
			ids = append(ids, line.PurchaseID)
		}
		responses = append(responses, ReturnResponse{
			ID:            ret.ID,
			TransactionID: ret.TransactionID,
			Date:          ret.Date,
			ItemIDs:       ids,
			CreatedAt:     ret.CreatedAt,
		})
	}
	return responses, nil
}

// ListSalesReturns lists sales returns in an optional date window.
func (s *ReturnService) ListSalesReturns(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter ListFilter) ([]ReturnResponse, error) {
	rets, err := s.salesReadRepo.FindAllForEnterprise(ctx, enterpriseID, branchID, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}
	responses := make([]ReturnResponse, 0, len(rets))
	for _, ret := range rets {
		ids := make([]uuid.UUID, 0, len(ret.Lines))
		for _, line := range ret.Lines {
			ids = append(ids, line.SaleID)
		}
		responses = append(responses, ReturnResponse{
			ID:            ret.ID,
			TransactionID: ret.TransactionID,
			Date:          ret.Date,
			ItemIDs:       ids,
			CreatedAt:     ret.CreatedAt,
		})
	}
	return responses, nil
}
