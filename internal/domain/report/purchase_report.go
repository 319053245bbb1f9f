package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseRow is one purchased line item joined with its product and header.
type PurchaseRow struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	Date          time.Time       `json:"date"`
	BillNo        string          `json:"bill_no"`
	VendorName    string          `json:"vendor_name"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	ProductUID    string          `json:"product_uid"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Method        string          `json:"method"`
	Returned      bool            `json:"returned"`
}

// PurchaseHeader is one purchase transaction header inside the window.
type PurchaseHeader struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	Date          time.Time       `json:"date"`
	Method        string          `json:"method"`
	CashAmount    decimal.Decimal `json:"cash_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
}

// PurchaseSummary aggregates the window.
type PurchaseSummary struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	CashPurchases decimal.Decimal `json:"cash_purchases"`
}

// PurchaseReport is the full purchase report payload.
type PurchaseReport struct {
	Rows    []PurchaseRow   `json:"rows"`
	Summary PurchaseSummary `json:"summary"`
}

// PurchaseReportRepository defines the interface for purchase report queries
type PurchaseReportRepository interface {
	// PurchaseRows returns purchased line items in the window joined with
	// product name and vendor name, ordered by date then bill number.
	PurchaseRows(filter Filter) ([]PurchaseRow, error)

	// PurchaseHeaders returns the distinct transaction headers in the window.
	PurchaseHeaders(filter Filter) ([]PurchaseHeader, error)
}
