package order

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(uuid.New(), nil, "Thandar", "0912345678", time.Now(), nil, []OrderItem{
		{Description: "Engraved bangle", Quantity: 2, UnitPrice: decimal.NewFromInt(150)},
		{Description: "Name chain", Quantity: 1, UnitPrice: decimal.NewFromInt(300)},
	})
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order and totals items", func(t *testing.T) {
		o := createTestOrder(t)

		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, "600", o.TotalAmount.String())
		for _, item := range o.Items {
			assert.Equal(t, o.ID, item.OrderID)
			assert.NotEqual(t, uuid.Nil, item.ID)
		}
	})

	t.Run("fails without items", func(t *testing.T) {
		o, err := NewOrder(uuid.New(), nil, "Thandar", "", time.Now(), nil, nil)

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("fails with zero quantity item", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), nil, "Thandar", "", time.Now(), nil, []OrderItem{
			{Description: "Bangle", Quantity: 0, UnitPrice: decimal.NewFromInt(10)},
		})

		require.Error(t, err)
	})
}

func TestOrder_ReplaceItems(t *testing.T) {
	o := createTestOrder(t)

	err := o.ReplaceItems([]OrderItem{
		{Description: "Earrings", Quantity: 4, UnitPrice: decimal.NewFromInt(50)},
	})

	require.NoError(t, err)
	assert.Len(t, o.Items, 1)
	assert.Equal(t, "200", o.TotalAmount.String())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusPrepared, true},
		{StatusPending, StatusDispatched, false},
		{StatusPending, StatusCanceled, true},
		{StatusPrepared, StatusDispatched, true},
		{StatusPrepared, StatusCompleted, false},
		{StatusDispatched, StatusCompleted, true},
		{StatusDispatched, StatusCanceled, true},
		{StatusCompleted, StatusCanceled, false},
		{StatusCanceled, StatusPending, false},
		{StatusPending, StatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestOrder_Transition(t *testing.T) {
	t.Run("walks the full lifecycle", func(t *testing.T) {
		o := createTestOrder(t)

		require.NoError(t, o.Transition(StatusPrepared))
		require.NoError(t, o.Transition(StatusDispatched))
		require.NoError(t, o.Transition(StatusCompleted))
		assert.Equal(t, StatusCompleted, o.Status)
	})

	t.Run("rejects skipping states", func(t *testing.T) {
		o := createTestOrder(t)

		err := o.Transition(StatusCompleted)

		require.Error(t, err)
		assert.Equal(t, StatusPending, o.Status)
	})

	t.Run("terminal states are frozen", func(t *testing.T) {
		o := createTestOrder(t)
		require.NoError(t, o.Transition(StatusCanceled))

		err := o.Transition(StatusPrepared)

		require.Error(t, err)
	})
}

func TestOrder_RecordAdvance(t *testing.T) {
	o := createTestOrder(t)

	require.NoError(t, o.RecordAdvance(decimal.NewFromInt(200), "cash"))
	assert.Equal(t, "200", o.AdvanceAmount.String())

	err := o.RecordAdvance(decimal.NewFromInt(-1), "cash")
	require.Error(t, err)

	err = o.RecordAdvance(decimal.NewFromInt(10), "barter")
	require.Error(t, err)
}
