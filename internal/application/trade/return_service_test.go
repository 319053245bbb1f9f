package trade

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailbook/backend/internal/domain/shared"
)

func TestReturnService_PurchaseReturns(t *testing.T) {
	f := newTradeFixture(t)
	purchases := NewPurchaseService(f.scope, f.purchaseTxs)
	svc := NewReturnService(f.scope, f.purchaseRets, f.salesRets)
	ctx := context.Background()
	p := f.newProduct(t, 100)

	bill, err := purchases.Create(ctx, f.enterpriseID, nil, CreatePurchaseRequest{
		Date:   time.Now(),
		Method: "cash",
		Items: []PurchaseItemInput{
			{ProductID: p.ID, Quantity: 6, UnitPrice: decimal.NewFromInt(40)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 6, f.productCount(t, p.ID))
	lineID := bill.Items[0].ID

	var returnID uuid.UUID

	t.Run("create takes the goods back out of stock", func(t *testing.T) {
		resp, err := svc.CreatePurchaseReturn(ctx, f.enterpriseID, nil, CreatePurchaseReturnRequest{
			TransactionID: bill.ID,
			Date:          time.Now(),
			PurchaseIDs:   []uuid.UUID{lineID},
		})
		require.NoError(t, err)
		returnID = resp.ID

		assert.Equal(t, 0, f.productCount(t, p.ID))
		assert.True(t, f.productStock(t, p.ID).IsZero())

		items, err := f.purchaseTxs.FindItemsByIDs(ctx, []uuid.UUID{lineID})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, items[0].Returned)
	})

	t.Run("a line returns at most once", func(t *testing.T) {
		_, err := svc.CreatePurchaseReturn(ctx, f.enterpriseID, nil, CreatePurchaseReturnRequest{
			TransactionID: bill.ID,
			Date:          time.Now(),
			PurchaseIDs:   []uuid.UUID{lineID},
		})
		assert.ErrorIs(t, err, shared.ErrAlreadyReturned)
	})

	t.Run("unknown line reads as not found", func(t *testing.T) {
		_, err := svc.CreatePurchaseReturn(ctx, f.enterpriseID, nil, CreatePurchaseReturnRequest{
			TransactionID: bill.ID,
			Date:          time.Now(),
			PurchaseIDs:   []uuid.UUID{uuid.New()},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("delete puts the goods back and clears the flag", func(t *testing.T) {
		require.NoError(t, svc.DeletePurchaseReturn(ctx, f.enterpriseID, returnID))

		assert.Equal(t, 6, f.productCount(t, p.ID))
		assert.Equal(t, "600", f.productStock(t, p.ID).String())

		items, err := f.purchaseTxs.FindItemsByIDs(ctx, []uuid.UUID{lineID})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.False(t, items[0].Returned)
	})
}

func TestReturnService_PurchaseReturnRejectsForeignLine(t *testing.T) {
	f := newTradeFixture(t)
	purchases := NewPurchaseService(f.scope, f.purchaseTxs)
	svc := NewReturnService(f.scope, f.purchaseRets, f.salesRets)
	ctx := context.Background()
	p := f.newProduct(t, 100)

	first, err := purchases.Create(ctx, f.enterpriseID, nil, CreatePurchaseRequest{
		Date:   time.Now(),
		Method: "cash",
		Items: []PurchaseItemInput{
			{ProductID: p.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(40)},
		},
	})
	require.NoError(t, err)
	second, err := purchases.Create(ctx, f.enterpriseID, nil, CreatePurchaseRequest{
		Date:   time.Now(),
		Method: "cash",
		Items: []PurchaseItemInput{
			{ProductID: p.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(40)},
		},
	})
	require.NoError(t, err)

	_, err = svc.CreatePurchaseReturn(ctx, f.enterpriseID, nil, CreatePurchaseReturnRequest{
		TransactionID: first.ID,
		Date:          time.Now(),
		PurchaseIDs:   []uuid.UUID{second.Items[0].ID},
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_ITEMS", domainErr.Code)
	assert.Equal(t, 5, f.productCount(t, p.ID))
}

func TestReturnService_SalesReturns(t *testing.T) {
	f := newTradeFixture(t)
	purchases := NewPurchaseService(f.scope, f.purchaseTxs)
	sales := NewSalesService(f.scope, f.salesTxs)
	svc := NewReturnService(f.scope, f.purchaseRets, f.salesRets)
	ctx := context.Background()
	p := f.newProduct(t, 100)

	_, err := purchases.Create(ctx, f.enterpriseID, nil, CreatePurchaseRequest{
		Date:   time.Now(),
		Method: "cash",
		Items: []PurchaseItemInput{
			{ProductID: p.ID, Quantity: 10, UnitPrice: decimal.NewFromInt(40)},
		},
	})
	require.NoError(t, err)

	bill, err := sales.Create(ctx, f.enterpriseID, nil, CreateSalesRequest{
		Date:   time.Now(),
		Method: "cash",
		Items: []SaleItemInput{
			{ProductID: p.ID, Quantity: 4, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 6, f.productCount(t, p.ID))
	lineID := bill.Items[0].ID

	var returnID uuid.UUID

	t.Run("create puts the goods back into stock", func(t *testing.T) {
		resp, err := svc.CreateSalesReturn(ctx, f.enterpriseID, nil, CreateSalesReturnRequest{
			TransactionID: bill.ID,
			Date:          time.Now(),
			SaleIDs:       []uuid.UUID{lineID},
		})
		require.NoError(t, err)
		returnID = resp.ID

		assert.Equal(t, 10, f.productCount(t, p.ID))
		assert.Equal(t, "1000", f.productStock(t, p.ID).String())
	})

	t.Run("a line returns at most once", func(t *testing.T) {
		_, err := svc.CreateSalesReturn(ctx, f.enterpriseID, nil, CreateSalesReturnRequest{
			TransactionID: bill.ID,
			Date:          time.Now(),
			SaleIDs:       []uuid.UUID{lineID},
		})
		assert.ErrorIs(t, err, shared.ErrAlreadyReturned)
	})

	t.Run("listing shows the return with its lines", func(t *testing.T) {
		rets, err := svc.ListSalesReturns(ctx, f.enterpriseID, nil, ListFilter{})
		require.NoError(t, err)
		require.Len(t, rets, 1)
		assert.Equal(t, bill.ID, rets[0].TransactionID)
		assert.Equal(t, []uuid.UUID{lineID}, rets[0].ItemIDs)
	})

	t.Run("delete moves the goods out again", func(t *testing.T) {
		require.NoError(t, svc.DeleteSalesReturn(ctx, f.enterpriseID, returnID))

		assert.Equal(t, 6, f.productCount(t, p.ID))
		assert.Equal(t, "600", f.productStock(t, p.ID).String())
	})
}
