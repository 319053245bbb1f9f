package trade

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailbook/backend/internal/domain/inventory"
	"github.com/retailbook/backend/internal/domain/shared"
)

func TestTransferService_Transfer(t *testing.T) {
	f := newTradeFixture(t)
	svc := NewTransferService(f.scope)
	purchases := NewPurchaseService(f.scope, f.purchaseTxs)
	ctx := context.Background()

	sourceBranch := uuid.New()
	destBranch := uuid.New()
	uid := inventory.GenerateUID()

	src, err := inventory.NewProduct(f.enterpriseID, &sourceBranch, f.brand.ID, "Chain", uid,
		decimal.NewFromInt(50), decimal.NewFromInt(100))
	require.NoError(t, err)
	f.products.add(src)
	dst, err := inventory.NewProduct(f.enterpriseID, &destBranch, f.brand.ID, "Chain", uid,
		decimal.NewFromInt(50), decimal.NewFromInt(120))
	require.NoError(t, err)
	f.products.add(dst)

	_, err = purchases.Create(ctx, f.enterpriseID, &sourceBranch, CreatePurchaseRequest{
		Date:   time.Now(),
		Method: "cash",
		Items: []PurchaseItemInput{
			{ProductID: src.ID, Quantity: 8, UnitPrice: decimal.NewFromInt(60)},
		},
	})
	require.NoError(t, err)

	t.Run("moves goods from source to destination", func(t *testing.T) {
		resp, err := svc.Transfer(ctx, f.enterpriseID, CreateTransferRequest{
			SourceBranchID:      sourceBranch,
			DestinationBranchID: destBranch,
			Date:                time.Now(),
			Items: []TransferItemInput{
				{UID: uid, Quantity: 3},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, 5, f.productCount(t, src.ID))
		assert.Equal(t, "500", f.productStock(t, src.ID).String())
		assert.Equal(t, 3, f.productCount(t, dst.ID))
		assert.Equal(t, "360", f.productStock(t, dst.ID).String())

		sale, err := f.salesTxs.FindByID(ctx, resp.SalesTransactionID)
		require.NoError(t, err)
		assert.Equal(t, shared.PaymentTransfer, sale.Method)
		assert.Equal(t, "Branch transfer", sale.CustomerName)

		purchase, err := f.purchaseTxs.FindByID(ctx, resp.PurchaseTransactionID)
		require.NoError(t, err)
		assert.Equal(t, shared.PaymentTransfer, purchase.Method)
	})

	t.Run("same branch on both sides is refused", func(t *testing.T) {
		_, err := svc.Transfer(ctx, f.enterpriseID, CreateTransferRequest{
			SourceBranchID:      sourceBranch,
			DestinationBranchID: sourceBranch,
			Date:                time.Now(),
			Items:               []TransferItemInput{{UID: uid, Quantity: 1}},
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_BRANCH", domainErr.Code)
	})

	t.Run("UID missing at destination aborts both sides", func(t *testing.T) {
		loneUID := inventory.GenerateUID()
		lone, err := inventory.NewProduct(f.enterpriseID, &sourceBranch, f.brand.ID, "Bangle", loneUID,
			decimal.NewFromInt(10), decimal.NewFromInt(20))
		require.NoError(t, err)
		f.products.add(lone)

		_, err = svc.Transfer(ctx, f.enterpriseID, CreateTransferRequest{
			SourceBranchID:      sourceBranch,
			DestinationBranchID: destBranch,
			Date:                time.Now(),
			Items:               []TransferItemInput{{UID: loneUID, Quantity: 1}},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Equal(t, 5, f.productCount(t, src.ID))
		assert.Equal(t, 3, f.productCount(t, dst.ID))
	})
}
