package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/domain/order"
	"github.com/retailbook/backend/internal/domain/shared"
)

// OrderService handles custom made-to-order jobs. Orders never touch stock;
// only their advance and remaining payments show up in cash flow.
type OrderService struct {
	orderRepo order.Repository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.Repository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// Create places a pending order and records any advance taken.
func (s *OrderService) Create(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	items := make([]order.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, order.OrderItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	o, err := order.NewOrder(enterpriseID, branchID, req.CustomerName, req.PhoneNumber, req.OrderDate, req.DeliveryDate, items)
	if err != nil {
		return nil, err
	}
	if err := o.RecordAdvance(req.AdvanceAmount, shared.PaymentMethod(req.AdvanceMethod)); err != nil {
		return nil, err
	}
	o.Notes = req.Notes

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// Update replaces an order's details and items. Terminal orders refuse
// edits.
func (s *OrderService) Update(ctx context.Context, enterpriseID, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByIDForTenant(ctx, id, enterpriseID)
	if err != nil {
		return nil, err
	}
	if o.Status == order.StatusCompleted || o.Status == order.StatusCanceled {
		return nil, shared.ErrInvalidState
	}

	items := make([]order.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, order.OrderItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	if err := s.orderRepo.DeleteItems(ctx, o.ID); err != nil {
		return nil, err
	}
	if err := o.ReplaceItems(items); err != nil {
		return nil, err
	}
	if err := o.RecordAdvance(req.AdvanceAmount, shared.PaymentMethod(req.AdvanceMethod)); err != nil {
		return nil, err
	}
	o.CustomerName = req.CustomerName
	o.PhoneNumber = req.PhoneNumber
	o.OrderDate = req.OrderDate
	o.DeliveryDate = req.DeliveryDate
	o.Notes = req.Notes

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// Transition moves an order along its lifecycle, recording the remaining
// payment when one is taken.
func (s *OrderService) Transition(ctx context.Context, enterpriseID, id uuid.UUID, req TransitionOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByIDForTenant(ctx, id, enterpriseID)
	if err != nil {
		return nil, err
	}
	if req.RemainingAmount != nil {
		if err := o.RecordRemaining(*req.RemainingAmount, shared.PaymentMethod(req.RemainingMethod)); err != nil {
			return nil, err
		}
	}
	if err := o.Transition(order.Status(req.Status)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// Delete removes an order.
func (s *OrderService) Delete(ctx context.Context, enterpriseID, id uuid.UUID) error {
	if _, err := s.orderRepo.FindByIDForTenant(ctx, id, enterpriseID); err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, id)
}

// GetByID retrieves an order by ID.
func (s *OrderService) GetByID(ctx context.Context, enterpriseID, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByIDForTenant(ctx, id, enterpriseID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// List retrieves orders with an optional status filter.
func (s *OrderService) List(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter ListFilter) ([]OrderResponse, int64, error) {
	var status *order.Status
	if filter.Status != "" {
		st := order.Status(filter.Status)
		if !st.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
		}
		status = &st
	}

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

	orders, total, err := s.orderRepo.FindAllForEnterprise(ctx, enterpriseID, branchID, status, f)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, ToOrderResponse(o))
	}
	return responses, total, nil
}
