package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbook/backend/internal/domain/trade"
)

// ==================== Purchase DTOs ====================

// PurchaseItemInput represents one line in a purchase request
type PurchaseItemInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreatePurchaseRequest represents a request to record a purchase bill
type CreatePurchaseRequest struct {
	Date         time.Time           `json:"date" binding:"required"`
	BillNo       string              `json:"bill_no" binding:"max=50"`
	VendorID     *uuid.UUID          `json:"vendor_id"`
	Method       string              `json:"method" binding:"required,payment_method"`
	CashAmount   decimal.Decimal     `json:"cash_amount"`
	CardAmount   decimal.Decimal     `json:"card_amount"`
	OnlineAmount decimal.Decimal     `json:"online_amount"`
	AmountPaid   decimal.Decimal     `json:"amount_paid"`
	Items        []PurchaseItemInput `json:"items" binding:"required,min=1,dive"`
}

// UpdatePurchaseRequest carries the full replacement state of a purchase bill
type UpdatePurchaseRequest struct {
	Date         time.Time           `json:"date" binding:"required"`
	BillNo       string              `json:"bill_no" binding:"max=50"`
	VendorID     *uuid.UUID          `json:"vendor_id"`
	Method       string              `json:"method" binding:"required,payment_method"`
	CashAmount   decimal.Decimal     `json:"cash_amount"`
	CardAmount   decimal.Decimal     `json:"card_amount"`
	OnlineAmount decimal.Decimal     `json:"online_amount"`
	AmountPaid   decimal.Decimal     `json:"amount_paid"`
	Items        []PurchaseItemInput `json:"items" binding:"required,min=1,dive"`
}

// PurchaseItemResponse represents one purchase line in API responses
type PurchaseItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Returned   bool            `json:"returned"`
}

// PurchaseTransactionResponse represents a purchase bill in API responses
type PurchaseTransactionResponse struct {
	ID           uuid.UUID              `json:"id"`
	Date         time.Time              `json:"date"`
	BillNo       string                 `json:"bill_no"`
	VendorID     *uuid.UUID             `json:"vendor_id,omitempty"`
	Method       string                 `json:"method"`
	CashAmount   decimal.Decimal        `json:"cash_amount"`
	CardAmount   decimal.Decimal        `json:"card_amount"`
	OnlineAmount decimal.Decimal        `json:"online_amount"`
	TotalAmount  decimal.Decimal        `json:"total_amount"`
	AmountPaid   decimal.Decimal        `json:"amount_paid"`
	Items        []PurchaseItemResponse `json:"items"`
	CreatedAt    time.Time              `json:"created_at"`
}

// ToPurchaseTransactionResponse converts a domain purchase transaction to a response DTO
func ToPurchaseTransactionResponse(tx *trade.PurchaseTransaction) PurchaseTransactionResponse {
	items := make([]PurchaseItemResponse, 0, len(tx.Items))
	for _, it := range tx.Items {
		items = append(items, PurchaseItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
			Returned:   it.Returned,
		})
	}
	return PurchaseTransactionResponse{
		ID:           tx.ID,
		Date:         tx.Date,
		BillNo:       tx.BillNo,
		VendorID:     tx.VendorID,
		Method:       tx.Method.String(),
		CashAmount:   tx.CashAmount,
		CardAmount:   tx.CardAmount,
		OnlineAmount: tx.OnlineAmount,
		TotalAmount:  tx.TotalAmount,
		AmountPaid:   tx.AmountPaid,
		Items:        items,
		CreatedAt:    tx.CreatedAt,
	}
}

// ==================== Sales DTOs ====================

// SaleItemInput represents one line in a sales request
type SaleItemInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	Discount  decimal.Decimal `json:"discount"`
}

// CreateSalesRequest represents a request to record a customer bill
type CreateSalesRequest struct {
	Date         time.Time       `json:"date" binding:"required"`
	CustomerName string          `json:"customer_name" binding:"max=255"`
	PhoneNumber  string          `json:"phone_number" binding:"max=20"`
	Method       string          `json:"method" binding:"required,payment_method"`
	DebtorID     *uuid.UUID      `json:"debtor_id"`
	CashAmount   decimal.Decimal `json:"cash_amount"`
	CardAmount   decimal.Decimal `json:"card_amount"`
	OnlineAmount decimal.Decimal `json:"online_amount"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	Items        []SaleItemInput `json:"items" binding:"required,min=1,dive"`
}

// UpdateSalesRequest carries the full replacement state of a customer bill
type UpdateSalesRequest struct {
	Date         time.Time       `json:"date" binding:"required"`
	CustomerName string          `json:"customer_name" binding:"max=255"`
	PhoneNumber  string          `json:"phone_number" binding:"max=20"`
	Method       string          `json:"method" binding:"required,payment_method"`
	DebtorID     *uuid.UUID      `json:"debtor_id"`
	CashAmount   decimal.Decimal `json:"cash_amount"`
	CardAmount   decimal.Decimal `json:"card_amount"`
	OnlineAmount decimal.Decimal `json:"online_amount"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	Items        []SaleItemInput `json:"items" binding:"required,min=1,dive"`
}

// SaleItemResponse represents one sale line in API responses
type SaleItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Discount   decimal.Decimal `json:"discount"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Returned   bool            `json:"returned"`
}

// SalesTransactionResponse represents a customer bill in API responses
type SalesTransactionResponse struct {
	ID           uuid.UUID          `json:"id"`
	Date         time.Time          `json:"date"`
	BillNo       int                `json:"bill_no"`
	CustomerName string             `json:"customer_name"`
	PhoneNumber  string             `json:"phone_number"`
	Method       string             `json:"method"`
	CashAmount   decimal.Decimal    `json:"cash_amount"`
	CardAmount   decimal.Decimal    `json:"card_amount"`
	OnlineAmount decimal.Decimal    `json:"online_amount"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	AmountPaid   decimal.Decimal    `json:"amount_paid"`
	Items        []SaleItemResponse `json:"items"`
	CreatedAt    time.Time          `json:"created_at"`
}

// ToSalesTransactionResponse converts a domain sales transaction to a response DTO
func ToSalesTransactionResponse(tx *trade.SalesTransaction) SalesTransactionResponse {
	items := make([]SaleItemResponse, 0, len(tx.Items))
	for _, it := range tx.Items {
		items = append(items, SaleItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Discount:   it.Discount,
			TotalPrice: it.TotalPrice,
			Returned:   it.Returned,
		})
	}
	return SalesTransactionResponse{
		ID:           tx.ID,
		Date:         tx.Date,
		BillNo:       tx.BillNo,
		CustomerName: tx.CustomerName,
		PhoneNumber:  tx.PhoneNumber,
		Method:       tx.Method.String(),
		CashAmount:   tx.CashAmount,
		CardAmount:   tx.CardAmount,
		OnlineAmount: tx.OnlineAmount,
		TotalAmount:  tx.TotalAmount,
		AmountPaid:   tx.AmountPaid,
		Items:        items,
		CreatedAt:    tx.CreatedAt,
	}
}

// ==================== Return DTOs ====================

// CreatePurchaseReturnRequest represents a request to return purchased goods
type CreatePurchaseReturnRequest struct {
	TransactionID uuid.UUID   `json:"transaction_id" binding:"required"`
	Date          time.Time   `json:"date" binding:"required"`
	PurchaseIDs   []uuid.UUID `json:"purchase_ids" binding:"required,min=1"`
}

// CreateSalesReturnRequest represents a request to take sold goods back
type CreateSalesReturnRequest struct {
	TransactionID uuid.UUID   `json:"transaction_id" binding:"required"`
	Date          time.Time   `json:"date" binding:"required"`
	SaleIDs       []uuid.UUID `json:"sale_ids" binding:"required,min=1"`
}

// ReturnResponse represents a return in API responses
type ReturnResponse struct {
	ID            uuid.UUID   `json:"id"`
	TransactionID uuid.UUID   `json:"transaction_id"`
	Date          time.Time   `json:"date"`
	ItemIDs       []uuid.UUID `json:"item_ids"`
	CreatedAt     time.Time   `json:"created_at"`
}

// ==================== Transfer DTOs ====================

// TransferItemInput identifies moved goods by UID so each side of the
// transfer resolves its own branch-local product.
type TransferItemInput struct {
	UID      string `json:"uid" binding:"required,product_uid"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// CreateTransferRequest represents a request to move stock between branches
type CreateTransferRequest struct {
	SourceBranchID      uuid.UUID           `json:"source_branch_id" binding:"required"`
	DestinationBranchID uuid.UUID           `json:"destination_branch_id" binding:"required"`
	Date                time.Time           `json:"date" binding:"required"`
	Items               []TransferItemInput `json:"items" binding:"required,min=1,dive"`
}

// TransferResponse reports both halves of a completed transfer
type TransferResponse struct {
	SalesTransactionID    uuid.UUID `json:"sales_transaction_id"`
	PurchaseTransactionID uuid.UUID `json:"purchase_transaction_id"`
}

// ListFilter represents common list query parameters for trade listings
type ListFilter struct {
	Search    string     `form:"search"`
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
	Page      int        `form:"page,default=1" binding:"min=0"`
	PageSize  int        `form:"page_size,default=20" binding:"min=0,max=200"`
}
