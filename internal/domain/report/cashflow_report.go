package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseReport totals expenses in the window by settlement method.
type ExpenseReport struct {
	CashTotal     decimal.Decimal `json:"cash_total"`
	ChequeTotal   decimal.Decimal `json:"cheque_total"`
	TransferTotal decimal.Decimal `json:"transfer_total"`
	Total         decimal.Decimal `json:"total"`
	Count         int             `json:"count"`
}

// WithdrawalReport totals withdrawals in the window.
type WithdrawalReport struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// CashFlowEntry is one labelled movement in the cash-flow report.
type CashFlowEntry struct {
	Label  string          `json:"label"`
	Method string          `json:"method,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

// CashFlowReport folds every cash movement in the window on top of the
// opening cash snapshot. Message carries the advisory when the report had to
// fall back to an older snapshot and narrow its window.
type CashFlowReport struct {
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	OpeningCash   decimal.Decimal `json:"opening_cash"`
	Income        []CashFlowEntry `json:"income"`
	Expense       []CashFlowEntry `json:"expense"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpense  decimal.Decimal `json:"total_expense"`
	NetCashInHand decimal.Decimal `json:"net_cash_in_hand"`
	Message       string          `json:"message,omitempty"`
}

// PeriodStat is purchase and sale activity folded over one day or month.
type PeriodStat struct {
	Period         string          `json:"period"`
	PurchaseCount  int64           `json:"purchase_count"`
	SaleCount      int64           `json:"sale_count"`
	PurchaseAmount decimal.Decimal `json:"purchase_amount"`
	SaleAmount     decimal.Decimal `json:"sale_amount"`
	Profit         decimal.Decimal `json:"profit"`
}

// StatsReport is the dashboard statistics payload.
type StatsReport struct {
	Daily        []PeriodStat `json:"daily"`
	Monthly      []PeriodStat `json:"monthly"`
	ProductCount int64        `json:"product_count"`
	BrandCount   int64        `json:"brand_count"`
}

// StatsRepository defines the interface for dashboard statistics queries
type StatsRepository interface {
	// DailyStats folds activity per day inside the window.
	DailyStats(filter Filter) ([]PeriodStat, error)

	// MonthlyStats folds activity per calendar month inside the window.
	MonthlyStats(filter Filter) ([]PeriodStat, error)
}
