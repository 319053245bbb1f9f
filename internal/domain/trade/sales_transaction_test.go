package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSalesTransaction(t *testing.T) {
	enterpriseID := uuid.New()

	t.Run("totals lines net of discount", func(t *testing.T) {
		tx, err := NewSalesTransaction(enterpriseID, nil, time.Now(), 7, "Aye Aye", "0911111111", "cash", []Sale{
			{ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.NewFromInt(100), Discount: decimal.NewFromInt(20)},
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
		})

		require.NoError(t, err)
		assert.Equal(t, "230", tx.TotalAmount.String())
		assert.Equal(t, "180", tx.Items[0].TotalPrice.String())
		assert.Equal(t, tx.ID, tx.Items[0].TransactionID)
		assert.Equal(t, tx.TotalAmount, tx.AmountPaid)
	})

	t.Run("fails without items", func(t *testing.T) {
		_, err := NewSalesTransaction(enterpriseID, nil, time.Now(), 7, "", "", "cash", nil)
		require.Error(t, err)
	})

	t.Run("fails with unknown method", func(t *testing.T) {
		_, err := NewSalesTransaction(enterpriseID, nil, time.Now(), 7, "", "", "barter", []Sale{
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		})
		require.Error(t, err)
	})

	t.Run("fails with non-positive quantity", func(t *testing.T) {
		_, err := NewSalesTransaction(enterpriseID, nil, time.Now(), 7, "", "", "cash", []Sale{
			{ProductID: uuid.New(), Quantity: 0, UnitPrice: decimal.NewFromInt(10)},
		})
		require.Error(t, err)
	})
}

func TestSalesTransaction_ReturnedItems(t *testing.T) {
	tx, err := NewSalesTransaction(uuid.New(), nil, time.Now(), 1, "", "", "cash", []Sale{
		{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		{ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.NewFromInt(20)},
	})
	require.NoError(t, err)

	assert.False(t, tx.HasReturnedItems())
	assert.Len(t, tx.ActiveItems(), 2)

	tx.Items[0].Returned = true

	assert.True(t, tx.HasReturnedItems())
	active := tx.ActiveItems()
	require.Len(t, active, 1)
	assert.Equal(t, tx.Items[1].ID, active[0].ID)
}

func TestSalesTransaction_Outstanding(t *testing.T) {
	tx, err := NewSalesTransaction(uuid.New(), nil, time.Now(), 1, "", "", "mixed", []Sale{
		{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(500)},
	})
	require.NoError(t, err)

	tx.SetPayment(decimal.NewFromInt(300), decimal.NewFromInt(150), decimal.Zero, decimal.NewFromInt(450))

	assert.Equal(t, "50", tx.Outstanding().String())
}

func TestNewPurchaseTransaction(t *testing.T) {
	t.Run("snapshots line totals", func(t *testing.T) {
		vendorID := uuid.New()
		tx, err := NewPurchaseTransaction(uuid.New(), nil, &vendorID, time.Now(), "INV-42", "credit", []Purchase{
			{ProductID: uuid.New(), Quantity: 3, UnitPrice: decimal.NewFromInt(40)},
		})

		require.NoError(t, err)
		assert.Equal(t, "120", tx.TotalAmount.String())
		assert.Equal(t, "120", tx.Items[0].TotalPrice.String())
	})

	t.Run("fails without items", func(t *testing.T) {
		_, err := NewPurchaseTransaction(uuid.New(), nil, nil, time.Now(), "", "cash", nil)
		require.Error(t, err)
	})
}

func TestPurchaseTransaction_ActiveItems(t *testing.T) {
	tx, err := NewPurchaseTransaction(uuid.New(), nil, nil, time.Now(), "", "cash", []Purchase{
		{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(20)},
	})
	require.NoError(t, err)

	tx.Items[1].Returned = true

	active := tx.ActiveItems()
	require.Len(t, active, 1)
	assert.Equal(t, tx.Items[0].ID, active[0].ID)
	assert.True(t, tx.HasReturnedItems())
}
