package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbook/backend/internal/domain/order"
)

// OrderItemInput represents one free-text line of an order request
type OrderItemInput struct {
	Description string          `json:"description" binding:"required,min=1,max=500"`
	Quantity    int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest represents a request to place a custom order
type CreateOrderRequest struct {
	CustomerName  string           `json:"customer_name" binding:"required,min=1,max=255"`
	PhoneNumber   string           `json:"phone_number" binding:"max=32"`
	OrderDate     time.Time        `json:"order_date" binding:"required"`
	DeliveryDate  *time.Time       `json:"delivery_date"`
	AdvanceAmount decimal.Decimal  `json:"advance_amount"`
	AdvanceMethod string           `json:"advance_method" binding:"omitempty,payment_method"`
	Notes         string           `json:"notes" binding:"max=1000"`
	Items         []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderRequest carries the replacement state of an order
type UpdateOrderRequest struct {
	CustomerName  string           `json:"customer_name" binding:"required,min=1,max=255"`
	PhoneNumber   string           `json:"phone_number" binding:"max=32"`
	OrderDate     time.Time        `json:"order_date" binding:"required"`
	DeliveryDate  *time.Time       `json:"delivery_date"`
	AdvanceAmount decimal.Decimal  `json:"advance_amount"`
	AdvanceMethod string           `json:"advance_method" binding:"omitempty,payment_method"`
	Notes         string           `json:"notes" binding:"max=1000"`
	Items         []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// TransitionOrderRequest moves an order along its lifecycle. A move to
// completed usually carries the remaining payment taken on delivery.
type TransitionOrderRequest struct {
	Status          string           `json:"status" binding:"required"`
	RemainingAmount *decimal.Decimal `json:"remaining_amount"`
	RemainingMethod string           `json:"remaining_method" binding:"omitempty,payment_method"`
}

// OrderItemResponse represents one order line in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	CustomerName    string              `json:"customer_name"`
	PhoneNumber     string              `json:"phone_number,omitempty"`
	OrderDate       time.Time           `json:"order_date"`
	DeliveryDate    *time.Time          `json:"delivery_date,omitempty"`
	Status          string              `json:"status"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	AdvanceAmount   decimal.Decimal     `json:"advance_amount"`
	AdvanceMethod   string              `json:"advance_method,omitempty"`
	RemainingAmount decimal.Decimal     `json:"remaining_amount"`
	RemainingMethod string              `json:"remaining_method,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return OrderResponse{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		PhoneNumber:     o.PhoneNumber,
		OrderDate:       o.OrderDate,
		DeliveryDate:    o.DeliveryDate,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		AdvanceAmount:   o.AdvanceAmount,
		AdvanceMethod:   o.AdvanceMethod.String(),
		RemainingAmount: o.RemainingAmount,
		RemainingMethod: o.RemainingMethod.String(),
		Notes:           o.Notes,
		Items:           items,
		CreatedAt:       o.CreatedAt,
	}
}

// ListFilter represents order list query parameters
type ListFilter struct {
	Status    string     `form:"status"`
	Search    string     `form:"search"`
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
	Page      int        `form:"page,default=1" binding:"min=0"`
	PageSize  int        `form:"page_size,default=20" binding:"min=0,max=200"`
}
