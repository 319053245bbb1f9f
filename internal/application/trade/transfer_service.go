package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/application/stock"
	"github.com/retailbook/backend/internal/domain/shared"
	"github.com/retailbook/backend/internal/domain/trade"
)

// TransferService moves stock between branches of one enterprise. A transfer
// is a transfer-method sale at the source branch paired with a
// transfer-method purchase at the destination, committed as one unit so the
// goods can never exist in both branches or in neither.
type TransferService struct {
	scope stock.TransactionScope
}

// NewTransferService creates a new TransferService
func NewTransferService(scope stock.TransactionScope) *TransferService {
	return &TransferService{scope: scope}
}

// Transfer executes an inter-branch stock movement. Each side resolves the
// moved products by UID within its own branch; a UID missing at either
// branch aborts the whole transfer.
func (s *TransferService) Transfer(ctx context.Context, enterpriseID uuid.UUID, req CreateTransferRequest) (*TransferResponse, error) {
	if req.SourceBranchID == req.DestinationBranchID {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Source and destination branches must differ")
	}

	var response TransferResponse
	err := s.scope.Execute(ctx, func(repos stock.Repositories) error {
		sourceBranch := req.SourceBranchID
		destBranch := req.DestinationBranchID

		saleItems := make([]trade.Sale, 0, len(req.Items))
		purchaseItems := make([]trade.Purchase, 0, len(req.Items))
		for _, it := range req.Items {
			src, err := repos.ProductRepo().FindByUID(ctx, enterpriseID, &sourceBranch, it.UID)
			if err != nil {
				return err
			}
			dst, err := repos.ProductRepo().FindByUID(ctx, enterpriseID, &destBranch, it.UID)
			if err != nil {
				return err
			}
			saleItems = append(saleItems, trade.Sale{
				ProductID: src.ID,
				Quantity:  it.Quantity,
				UnitPrice: src.SellingPrice,
			})
			purchaseItems = append(purchaseItems, trade.Purchase{
				ProductID: dst.ID,
				Quantity:  it.Quantity,
				UnitPrice: dst.SellingPrice,
			})
		}

		maxNo, err := repos.SalesTxRepo().MaxBillNo(ctx, enterpriseID, &sourceBranch)
		if err != nil {
			return err
		}
		saleTx, err := trade.NewSalesTransaction(enterpriseID, &sourceBranch, req.Date, maxNo+1, "Branch transfer", "", shared.PaymentTransfer, saleItems)
		if err != nil {
			return err
		}
		purchaseTx, err := trade.NewPurchaseTransaction(enterpriseID, &destBranch, nil, req.Date, "", shared.PaymentTransfer, purchaseItems)
		if err != nil {
			return err
		}

		if err := stock.Apply(ctx, repos, stock.SaleDeltas(saleTx.Items), stock.Forward); err != nil {
			return err
		}
		if err := stock.Apply(ctx, repos, stock.PurchaseDeltas(purchaseTx.Items), stock.Forward); err != nil {
			return err
		}
		if err := repos.SalesTxRepo().Save(ctx, saleTx); err != nil {
			return err
		}
		if err := repos.PurchaseTxRepo().Save(ctx, purchaseTx); err != nil {
			return err
		}
		response = TransferResponse{
			SalesTransactionID:    saleTx.ID,
			PurchaseTransactionID: purchaseTx.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}
