package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Filter defines the window and scope shared by all report queries.
type Filter struct {
	EnterpriseID uuid.UUID  `json:"-"`
	BranchID     *uuid.UUID `json:"-"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
}

// SalesRow is one sold line item joined with its product and header.
type SalesRow struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	Date          time.Time       `json:"date"`
	BillNo        int             `json:"bill_no"`
	CustomerName  string          `json:"customer_name"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	ProductUID    string          `json:"product_uid"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	Discount      decimal.Decimal `json:"discount"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Method        string          `json:"method"`
	Returned      bool            `json:"returned"`
}

// SalesHeader is one sales transaction header inside the window.
type SalesHeader struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	Date          time.Time       `json:"date"`
	Method        string          `json:"method"`
	CashAmount    decimal.Decimal `json:"cash_amount"`
	CardAmount    decimal.Decimal `json:"card_amount"`
	OnlineAmount  decimal.Decimal `json:"online_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
}

// SalesSummary aggregates the window. WriteOff counts the unpaid remainder
// once per transaction regardless of how many lines it has.
type SalesSummary struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	WriteOff     decimal.Decimal `json:"write_off"`
	Net          decimal.Decimal `json:"net"`
	CashAmount   decimal.Decimal `json:"cash_amount"`
	CardAmount   decimal.Decimal `json:"card_amount"`
	OnlineAmount decimal.Decimal `json:"online_amount"`
	Profit       decimal.Decimal `json:"profit"`
}

// SalesReport is the full sales report payload.
type SalesReport struct {
	Rows    []SalesRow   `json:"rows"`
	Summary SalesSummary `json:"summary"`
}

// SalesReportRepository defines the interface for sales report queries
type SalesReportRepository interface {
	// SalesRows returns sold line items in the window joined with product
	// name, UID and cost price, ordered by date then bill number.
	SalesRows(filter Filter) ([]SalesRow, error)

	// SalesHeaders returns the distinct transaction headers in the window.
	SalesHeaders(filter Filter) ([]SalesHeader, error)
}
