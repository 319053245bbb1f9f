package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailbook/backend/internal/domain/order"
	"github.com/retailbook/backend/internal/domain/shared"
)

type memOrderRepo struct {
	orders map[uuid.UUID]*order.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[uuid.UUID]*order.Order)}
}

func copyOrder(o *order.Order) *order.Order {
	cp := *o
	cp.Items = append([]order.OrderItem(nil), o.Items...)
	return &cp
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return copyOrder(o), nil
}

func (r *memOrderRepo) FindByIDForTenant(ctx context.Context, id, enterpriseID uuid.UUID) (*order.Order, error) {
	o, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.EnterpriseID != enterpriseID {
		return nil, shared.ErrNotFound
	}
	return o, nil
}

func (r *memOrderRepo) FindAllForEnterprise(_ context.Context, enterpriseID uuid.UUID, _ *uuid.UUID, status *order.Status, _ shared.Filter) ([]*order.Order, int64, error) {
	var out []*order.Order
	for _, o := range r.orders {
		if o.EnterpriseID != enterpriseID {
			continue
		}
		if status != nil && o.Status != *status {
			continue
		}
		out = append(out, copyOrder(o))
	}
	return out, int64(len(out)), nil
}

func (r *memOrderRepo) FindInWindow(_ context.Context, enterpriseID uuid.UUID, _ *uuid.UUID, from, to time.Time) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.orders {
		if o.EnterpriseID != enterpriseID || o.OrderDate.Before(from) || o.OrderDate.After(to) {
			continue
		}
		out = append(out, copyOrder(o))
	}
	return out, nil
}

func (r *memOrderRepo) Save(_ context.Context, o *order.Order) error {
	r.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *memOrderRepo) DeleteItems(_ context.Context, orderID uuid.UUID) error {
	if o, ok := r.orders[orderID]; ok {
		o.Items = nil
	}
	return nil
}

func (r *memOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func TestOrderService_Lifecycle(t *testing.T) {
	repo := newMemOrderRepo()
	svc := NewOrderService(repo)
	ctx := context.Background()
	enterpriseID := uuid.New()

	created, err := svc.Create(ctx, enterpriseID, nil, CreateOrderRequest{
		CustomerName:  "Meena",
		PhoneNumber:   "9800000000",
		OrderDate:     time.Now(),
		AdvanceAmount: decimal.NewFromInt(100),
		AdvanceMethod: "cash",
		Items: []OrderItemInput{
			{Description: "Engraved bangle", Quantity: 2, UnitPrice: decimal.NewFromInt(250)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "500", created.TotalAmount.String())
	assert.Equal(t, "100", created.AdvanceAmount.String())

	t.Run("update replaces the items and total", func(t *testing.T) {
		updated, err := svc.Update(ctx, enterpriseID, created.ID, UpdateOrderRequest{
			CustomerName:  "Meena",
			OrderDate:     time.Now(),
			AdvanceAmount: decimal.NewFromInt(100),
			AdvanceMethod: "cash",
			Items: []OrderItemInput{
				{Description: "Engraved bangle", Quantity: 1, UnitPrice: decimal.NewFromInt(250)},
				{Description: "Matching ring", Quantity: 1, UnitPrice: decimal.NewFromInt(150)},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "400", updated.TotalAmount.String())
		assert.Len(t, updated.Items, 2)
	})

	t.Run("transition walks the lifecycle in order", func(t *testing.T) {
		for _, target := range []string{"prepared", "dispatched"} {
			resp, err := svc.Transition(ctx, enterpriseID, created.ID, TransitionOrderRequest{Status: target})
			require.NoError(t, err)
			assert.Equal(t, target, resp.Status)
		}

		remaining := decimal.NewFromInt(300)
		resp, err := svc.Transition(ctx, enterpriseID, created.ID, TransitionOrderRequest{
			Status:          "completed",
			RemainingAmount: &remaining,
			RemainingMethod: "cash",
		})
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		assert.Equal(t, "300", resp.RemainingAmount.String())
	})

	t.Run("skipping a stage is refused", func(t *testing.T) {
		another, err := svc.Create(ctx, enterpriseID, nil, CreateOrderRequest{
			CustomerName: "Ram",
			OrderDate:    time.Now(),
			Items: []OrderItemInput{
				{Description: "Chain repair", Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
			},
		})
		require.NoError(t, err)

		_, err = svc.Transition(ctx, enterpriseID, another.ID, TransitionOrderRequest{Status: "completed"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	})

	t.Run("terminal orders refuse edits", func(t *testing.T) {
		_, err := svc.Update(ctx, enterpriseID, created.ID, UpdateOrderRequest{
			CustomerName: "Meena",
			OrderDate:    time.Now(),
			Items: []OrderItemInput{
				{Description: "Anything", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
			},
		})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("list filters by status", func(t *testing.T) {
		responses, total, err := svc.List(ctx, enterpriseID, nil, ListFilter{Status: "completed"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, responses, 1)
		assert.Equal(t, created.ID, responses[0].ID)

		_, _, err = svc.List(ctx, enterpriseID, nil, ListFilter{Status: "bogus"})
		require.Error(t, err)
	})
}
