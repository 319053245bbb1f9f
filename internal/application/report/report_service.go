package report

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/retailbook/backend/internal/domain/inventory"
	"github.com/retailbook/backend/internal/domain/ledger"
	"github.com/retailbook/backend/internal/domain/order"
	"github.com/retailbook/backend/internal/domain/report"
	"github.com/retailbook/backend/internal/domain/shared"
)

// ReportService aggregates the books into the read-side reports. Reports
// never mutate and never fail on missing optional data; at worst they
// degrade and say so in the payload's message.
type ReportService struct {
	salesRepo       report.SalesReportRepository
	purchaseRepo    report.PurchaseReportRepository
	statsRepo       report.StatsRepository
	expenseRepo     ledger.ExpenseRepository
	withdrawalRepo  ledger.WithdrawalRepository
	closingCashRepo ledger.ClosingCashRepository
	debtorTxRepo    ledger.DebtorTransactionRepository
	orderRepo       order.Repository
	productRepo     inventory.ProductRepository
	brandRepo       inventory.BrandRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	salesRepo report.SalesReportRepository,
	purchaseRepo report.PurchaseReportRepository,
	statsRepo report.StatsRepository,
	expenseRepo ledger.ExpenseRepository,
	withdrawalRepo ledger.WithdrawalRepository,
	closingCashRepo ledger.ClosingCashRepository,
	debtorTxRepo ledger.DebtorTransactionRepository,
	orderRepo order.Repository,
	productRepo inventory.ProductRepository,
	brandRepo inventory.BrandRepository,
) *ReportService {
	return &ReportService{
		salesRepo:       salesRepo,
		purchaseRepo:    purchaseRepo,
		statsRepo:       statsRepo,
		expenseRepo:     expenseRepo,
		withdrawalRepo:  withdrawalRepo,
		closingCashRepo: closingCashRepo,
		debtorTxRepo:    debtorTxRepo,
		orderRepo:       orderRepo,
		productRepo:     productRepo,
		brandRepo:       brandRepo,
	}
}

// SalesReport folds sold lines and their headers over the window. Returned
// lines appear in the rows but stay out of the money columns; the write-off
// is the unpaid remainder summed once per bill, however many lines it has.
func (s *ReportService) SalesReport(ctx context.Context, filter report.Filter) (*report.SalesReport, error) {
	rows, err := s.salesRepo.SalesRows(filter)
	if err != nil {
		return nil, err
	}
	headers, err := s.salesRepo.SalesHeaders(filter)
	if err != nil {
		return nil, err
	}

	summary := report.SalesSummary{
		Subtotal:     decimal.Zero,
		Discount:     decimal.Zero,
		WriteOff:     decimal.Zero,
		Net:          decimal.Zero,
		CashAmount:   decimal.Zero,
		CardAmount:   decimal.Zero,
		OnlineAmount: decimal.Zero,
		Profit:       decimal.Zero,
	}
	for _, row := range rows {
		if row.Returned {
			continue
		}
		summary.Subtotal = summary.Subtotal.Add(row.TotalPrice)
		summary.Discount = summary.Discount.Add(row.Discount)
		cost := row.CostPrice.Mul(decimal.NewFromInt(int64(row.Quantity)))
		summary.Profit = summary.Profit.Add(row.TotalPrice.Sub(cost))
	}
	for _, h := range headers {
		summary.WriteOff = summary.WriteOff.Add(h.TotalAmount.Sub(h.AmountPaid))
		summary.CashAmount = summary.CashAmount.Add(h.CashAmount)
		summary.CardAmount = summary.CardAmount.Add(h.CardAmount)
		summary.OnlineAmount = summary.OnlineAmount.Add(h.OnlineAmount)
	}
	summary.Net = summary.Subtotal.Sub(summary.WriteOff)

	return &report.SalesReport{Rows: rows, Summary: summary}, nil
}

// PurchaseReport folds purchased lines and their headers over the window.
func (s *ReportService) PurchaseReport(ctx context.Context, filter report.Filter) (*report.PurchaseReport, error) {
	rows, err := s.purchaseRepo.PurchaseRows(filter)
	if err != nil {
		return nil, err
	}
	headers, err := s.purchaseRepo.PurchaseHeaders(filter)
	if err != nil {
		return nil, err
	}

	summary := report.PurchaseSummary{Subtotal: decimal.Zero, CashPurchases: decimal.Zero}
	for _, row := range rows {
		if row.Returned {
			continue
		}
		summary.Subtotal = summary.Subtotal.Add(row.TotalPrice)
	}
	for _, h := range headers {
		summary.CashPurchases = summary.CashPurchases.Add(h.CashAmount)
	}

	return &report.PurchaseReport{Rows: rows, Summary: summary}, nil
}

// ExpenseReport totals expenses in the window by settlement method.
func (s *ReportService) ExpenseReport(ctx context.Context, filter report.Filter) (*report.ExpenseReport, error) {
	expenses, err := s.expenseRepo.FindInWindow(ctx, filter.EnterpriseID, filter.BranchID, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}
	r := &report.ExpenseReport{
		CashTotal:     decimal.Zero,
		ChequeTotal:   decimal.Zero,
		TransferTotal: decimal.Zero,
		Total:         decimal.Zero,
	}
	for _, e := range expenses {
		switch e.Method {
		case shared.PaymentCash:
			r.CashTotal = r.CashTotal.Add(e.Amount)
		case shared.PaymentCheque:
			r.ChequeTotal = r.ChequeTotal.Add(e.Amount)
		case shared.PaymentTransfer:
			r.TransferTotal = r.TransferTotal.Add(e.Amount)
		}
		r.Total = r.Total.Add(e.Amount)
		r.Count++
	}
	return r, nil
}

// WithdrawalReport counts and totals withdrawals in the window.
func (s *ReportService) WithdrawalReport(ctx context.Context, filter report.Filter) (*report.WithdrawalReport, error) {
	withdrawals, err := s.withdrawalRepo.FindInWindow(ctx, filter.EnterpriseID, filter.BranchID, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}
	r := &report.WithdrawalReport{Total: decimal.Zero}
	for _, w := range withdrawals {
		r.Count++
		r.Total = r.Total.Add(w.Amount)
	}
	return r, nil
}

// CashFlowReport folds every cash movement in the window on top of the
// closing cash counted the evening before the window starts. When that
// snapshot is missing, the report falls back to the most recent earlier one,
// narrows the window to the day after it, and says so in the message; the
// caller still gets a usable report.
func (s *ReportService) CashFlowReport(ctx context.Context, filter report.Filter) (*report.CashFlowReport, error) {
	start := filter.StartDate
	end := filter.EndDate
	openingCash := decimal.Zero
	message := ""

	prevDay := start.AddDate(0, 0, -1)
	snapshot, err := s.closingCashRepo.FindLatestBefore(ctx, filter.EnterpriseID, filter.BranchID, prevDay)
	switch {
	case err == nil && sameDay(snapshot.Date, prevDay):
		openingCash = snapshot.Amount
	case err == nil:
		openingCash = snapshot.Amount
		start = snapshot.Date.AddDate(0, 0, 1)
		message = "No closing cash was recorded for " + prevDay.Format("2006-01-02") +
			"; starting from the " + snapshot.Date.Format("2006-01-02") + " snapshot instead"
	case errors.Is(err, shared.ErrNotFound):
		message = "No closing cash snapshot found before " + start.Format("2006-01-02") + "; opening cash assumed zero"
	default:
		return nil, err
	}

	window := filter
	window.StartDate = start
	window.EndDate = end

	r := &report.CashFlowReport{
		StartDate:   start,
		EndDate:     end,
		OpeningCash: openingCash,
		Message:     message,
	}
	cashIn := decimal.Zero
	cashOut := decimal.Zero

	headers, err := s.salesRepo.SalesHeaders(window)
	if err != nil {
		return nil, err
	}
	salesCash, salesCard, salesOnline := decimal.Zero, decimal.Zero, decimal.Zero
	for _, h := range headers {
		salesCash = salesCash.Add(h.CashAmount)
		salesCard = salesCard.Add(h.CardAmount)
		salesOnline = salesOnline.Add(h.OnlineAmount)
	}
	r.Income = append(r.Income,
		report.CashFlowEntry{Label: "Sales", Method: "cash", Amount: salesCash},
		report.CashFlowEntry{Label: "Sales", Method: "card", Amount: salesCard},
		report.CashFlowEntry{Label: "Sales", Method: "online", Amount: salesOnline},
	)
	cashIn = cashIn.Add(salesCash)

	orders, err := s.orderRepo.FindInWindow(ctx, filter.EnterpriseID, filter.BranchID, start, end)
	if err != nil {
		return nil, err
	}
	advances, remaining := decimal.Zero, decimal.Zero
	advancesCash, remainingCash := decimal.Zero, decimal.Zero
	for _, o := range orders {
		advances = advances.Add(o.AdvanceAmount)
		if o.AdvanceMethod == shared.PaymentCash {
			advancesCash = advancesCash.Add(o.AdvanceAmount)
		}
		remaining = remaining.Add(o.RemainingAmount)
		if o.RemainingMethod == shared.PaymentCash {
			remainingCash = remainingCash.Add(o.RemainingAmount)
		}
	}
	r.Income = append(r.Income,
		report.CashFlowEntry{Label: "Order advances", Amount: advances},
		report.CashFlowEntry{Label: "Order settlements", Amount: remaining},
	)
	cashIn = cashIn.Add(advancesCash).Add(remainingCash)

	settlements, err := s.debtorTxRepo.SumSettlementsInWindow(ctx, filter.EnterpriseID, filter.BranchID, start, end)
	if err != nil {
		return nil, err
	}
	// card and online settlements count as income but never touch the drawer
	r.Income = append(r.Income, report.CashFlowEntry{Label: "Debtor payments", Amount: settlements.Total})
	cashIn = cashIn.Add(settlements.Cash)

	expenseReport, err := s.ExpenseReport(ctx, window)
	if err != nil {
		return nil, err
	}
	r.Expense = append(r.Expense,
		report.CashFlowEntry{Label: "Expenses", Method: "cash", Amount: expenseReport.CashTotal},
		report.CashFlowEntry{Label: "Expenses", Method: "cheque", Amount: expenseReport.ChequeTotal},
		report.CashFlowEntry{Label: "Expenses", Method: "transfer", Amount: expenseReport.TransferTotal},
	)
	cashOut = cashOut.Add(expenseReport.CashTotal)

	withdrawalReport, err := s.WithdrawalReport(ctx, window)
	if err != nil {
		return nil, err
	}
	r.Expense = append(r.Expense, report.CashFlowEntry{Label: "Withdrawals", Amount: withdrawalReport.Total})
	cashOut = cashOut.Add(withdrawalReport.Total)

	for _, e := range r.Income {
		r.TotalIncome = r.TotalIncome.Add(e.Amount)
	}
	for _, e := range r.Expense {
		r.TotalExpense = r.TotalExpense.Add(e.Amount)
	}
	r.NetCashInHand = openingCash.Add(cashIn).Sub(cashOut)
	return r, nil
}

// Stats builds the dashboard statistics: daily and monthly activity plus
// catalog counts.
func (s *ReportService) Stats(ctx context.Context, filter report.Filter) (*report.StatsReport, error) {
	daily, err := s.statsRepo.DailyStats(filter)
	if err != nil {
		return nil, err
	}
	monthly, err := s.statsRepo.MonthlyStats(filter)
	if err != nil {
		return nil, err
	}
	productCount, err := s.productRepo.CountForEnterprise(ctx, filter.EnterpriseID, filter.BranchID)
	if err != nil {
		return nil, err
	}
	brandCount, err := s.brandRepo.CountForEnterprise(ctx, filter.EnterpriseID, filter.BranchID)
	if err != nil {
		return nil, err
	}
	return &report.StatsReport{
		Daily:        daily,
		Monthly:      monthly,
		ProductCount: productCount,
		BrandCount:   brandCount,
	}, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

