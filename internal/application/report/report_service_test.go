package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailbook/backend/internal/domain/ledger"
	"github.com/retailbook/backend/internal/domain/order"
	"github.com/retailbook/backend/internal/domain/report"
	"github.com/retailbook/backend/internal/domain/shared"
)

// Canned-data fakes. Each returns whatever the test stuffed into it; the
// service under test only folds.

type fakeSalesReportRepo struct {
	rows    []report.SalesRow
	headers []report.SalesHeader
}

func (r *fakeSalesReportRepo) SalesRows(_ report.Filter) ([]report.SalesRow, error) {
	return r.rows, nil
}

func (r *fakeSalesReportRepo) SalesHeaders(_ report.Filter) ([]report.SalesHeader, error) {
	return r.headers, nil
}

type fakeExpenseRepo struct {
	expenses []*ledger.Expense
}

func (r *fakeExpenseRepo) FindByID(_ context.Context, _ uuid.UUID) (*ledger.Expense, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeExpenseRepo) FindAllForEnterprise(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _ shared.Filter) ([]*ledger.Expense, int64, error) {
	return r.expenses, int64(len(r.expenses)), nil
}

func (r *fakeExpenseRepo) FindInWindow(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _, _ time.Time) ([]*ledger.Expense, error) {
	return r.expenses, nil
}

func (r *fakeExpenseRepo) Save(_ context.Context, _ *ledger.Expense) error { return nil }

func (r *fakeExpenseRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type fakeWithdrawalRepo struct {
	withdrawals []*ledger.Withdrawal
}

func (r *fakeWithdrawalRepo) FindByID(_ context.Context, _ uuid.UUID) (*ledger.Withdrawal, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeWithdrawalRepo) FindAllForEnterprise(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _ shared.Filter) ([]*ledger.Withdrawal, int64, error) {
	return r.withdrawals, int64(len(r.withdrawals)), nil
}

func (r *fakeWithdrawalRepo) FindInWindow(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _, _ time.Time) ([]*ledger.Withdrawal, error) {
	return r.withdrawals, nil
}

func (r *fakeWithdrawalRepo) Save(_ context.Context, _ *ledger.Withdrawal) error { return nil }

func (r *fakeWithdrawalRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type fakeClosingCashRepo struct {
	snapshot *ledger.ClosingCash
}

func (r *fakeClosingCashRepo) FindByDate(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _ time.Time) (*ledger.ClosingCash, error) {
	if r.snapshot == nil {
		return nil, shared.ErrNotFound
	}
	return r.snapshot, nil
}

func (r *fakeClosingCashRepo) FindLatestBefore(_ context.Context, _ uuid.UUID, _ *uuid.UUID, date time.Time) (*ledger.ClosingCash, error) {
	if r.snapshot == nil || r.snapshot.Date.After(date) {
		return nil, shared.ErrNotFound
	}
	return r.snapshot, nil
}

func (r *fakeClosingCashRepo) Upsert(_ context.Context, _ *ledger.ClosingCash) error { return nil }

type fakeDebtorTxSums struct {
	settlements ledger.SettlementSums
}

func (r *fakeDebtorTxSums) FindByID(_ context.Context, _ uuid.UUID) (*ledger.DebtorTransaction, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeDebtorTxSums) FindForParty(_ context.Context, _ uuid.UUID, _, _ *time.Time) ([]*ledger.DebtorTransaction, error) {
	return nil, nil
}

func (r *fakeDebtorTxSums) SumAmountBefore(_ context.Context, _ uuid.UUID, _ time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *fakeDebtorTxSums) Save(_ context.Context, _ *ledger.DebtorTransaction) error { return nil }

func (r *fakeDebtorTxSums) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (r *fakeDebtorTxSums) FindBySourceTransaction(_ context.Context, _ uuid.UUID) ([]*ledger.DebtorTransaction, error) {
	return nil, nil
}

func (r *fakeDebtorTxSums) DeleteBySourceTransaction(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (r *fakeDebtorTxSums) SumSettlementsInWindow(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _, _ time.Time) (ledger.SettlementSums, error) {
	return r.settlements, nil
}

type fakeOrderRepo struct {
	orders []*order.Order
}

func (r *fakeOrderRepo) FindByID(_ context.Context, _ uuid.UUID) (*order.Order, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindByIDForTenant(_ context.Context, _, _ uuid.UUID) (*order.Order, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindAllForEnterprise(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _ *order.Status, _ shared.Filter) ([]*order.Order, int64, error) {
	return nil, 0, nil
}

func (r *fakeOrderRepo) FindInWindow(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _, _ time.Time) ([]*order.Order, error) {
	return r.orders, nil
}

func (r *fakeOrderRepo) Save(_ context.Context, _ *order.Order) error { return nil }

func (r *fakeOrderRepo) DeleteItems(_ context.Context, _ uuid.UUID) error { return nil }

func (r *fakeOrderRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestReportService_SalesReport(t *testing.T) {
	txA := uuid.New()
	txB := uuid.New()
	sales := &fakeSalesReportRepo{
		rows: []report.SalesRow{
			{TransactionID: txA, Quantity: 2, CostPrice: dec(40), Discount: dec(10), TotalPrice: dec(190)},
			{TransactionID: txA, Quantity: 1, CostPrice: dec(40), Discount: dec(0), TotalPrice: dec(100)},
			{TransactionID: txB, Quantity: 1, CostPrice: dec(40), Discount: dec(0), TotalPrice: dec(100), Returned: true},
		},
		headers: []report.SalesHeader{
			{TransactionID: txA, TotalAmount: dec(290), AmountPaid: dec(250), CashAmount: dec(250)},
			{TransactionID: txB, TotalAmount: dec(100), AmountPaid: dec(100), CardAmount: dec(100)},
		},
	}
	svc := NewReportService(sales, nil, nil, nil, nil, nil, nil, nil, nil, nil)

	got, err := svc.SalesReport(context.Background(), report.Filter{EnterpriseID: uuid.New()})
	require.NoError(t, err)

	assert.Len(t, got.Rows, 3)
	// returned row stays out of the money columns
	assert.Equal(t, "290", got.Summary.Subtotal.String())
	assert.Equal(t, "10", got.Summary.Discount.String())
	// write-off counted once per bill: (290-250) + (100-100)
	assert.Equal(t, "40", got.Summary.WriteOff.String())
	assert.Equal(t, "250", got.Summary.Net.String())
	assert.Equal(t, "250", got.Summary.CashAmount.String())
	assert.Equal(t, "100", got.Summary.CardAmount.String())
	// profit: (190 - 2x40) + (100 - 1x40)
	assert.Equal(t, "170", got.Summary.Profit.String())
}

func TestReportService_ExpenseReport(t *testing.T) {
	enterpriseID := uuid.New()
	mk := func(amount int64, method shared.PaymentMethod) *ledger.Expense {
		e, err := ledger.NewExpense(enterpriseID, nil, day(2026, 3, 1), decimal.NewFromInt(amount), method, "")
		require.NoError(t, err)
		return e
	}
	expenses := &fakeExpenseRepo{expenses: []*ledger.Expense{
		mk(100, shared.PaymentCash),
		mk(50, shared.PaymentCash),
		mk(200, shared.PaymentCheque),
		mk(30, shared.PaymentTransfer),
	}}
	svc := NewReportService(nil, nil, nil, expenses, nil, nil, nil, nil, nil, nil)

	got, err := svc.ExpenseReport(context.Background(), report.Filter{EnterpriseID: enterpriseID})
	require.NoError(t, err)

	assert.Equal(t, 4, got.Count)
	assert.Equal(t, "150", got.CashTotal.String())
	assert.Equal(t, "200", got.ChequeTotal.String())
	assert.Equal(t, "30", got.TransferTotal.String())
	assert.Equal(t, "380", got.Total.String())
}

func newCashFlowFixture(t *testing.T, snapshot *ledger.ClosingCash) (*ReportService, report.Filter) {
	t.Helper()
	enterpriseID := uuid.New()

	sales := &fakeSalesReportRepo{headers: []report.SalesHeader{
		{TransactionID: uuid.New(), CashAmount: dec(500), CardAmount: dec(200)},
	}}
	mkExpense, err := ledger.NewExpense(enterpriseID, nil, day(2026, 3, 12), dec(120), shared.PaymentCash, "Rent")
	require.NoError(t, err)
	mkWithdrawal, err := ledger.NewWithdrawal(enterpriseID, nil, day(2026, 3, 13), dec(80), "Owner draw")
	require.NoError(t, err)

	o, err := order.NewOrder(enterpriseID, nil, "Meena", "9800000000", day(2026, 3, 12), nil, []order.OrderItem{
		{Description: "Custom set", Quantity: 1, UnitPrice: dec(300)},
	})
	require.NoError(t, err)
	require.NoError(t, o.RecordAdvance(dec(100), shared.PaymentCash))

	svc := NewReportService(
		sales, nil, nil,
		&fakeExpenseRepo{expenses: []*ledger.Expense{mkExpense}},
		&fakeWithdrawalRepo{withdrawals: []*ledger.Withdrawal{mkWithdrawal}},
		&fakeClosingCashRepo{snapshot: snapshot},
		&fakeDebtorTxSums{settlements: ledger.SettlementSums{Total: dec(60), Cash: dec(35)}},
		&fakeOrderRepo{orders: []*order.Order{o}},
		nil, nil,
	)
	return svc, report.Filter{
		EnterpriseID: enterpriseID,
		StartDate:    day(2026, 3, 11),
		EndDate:      day(2026, 3, 15),
	}
}

func TestReportService_CashFlowReport(t *testing.T) {
	ctx := context.Background()

	t.Run("prior-day snapshot opens the window", func(t *testing.T) {
		snapshot := &ledger.ClosingCash{Date: day(2026, 3, 10), Amount: dec(1000)}
		svc, filter := newCashFlowFixture(t, snapshot)

		got, err := svc.CashFlowReport(ctx, filter)
		require.NoError(t, err)

		assert.Empty(t, got.Message)
		assert.Equal(t, day(2026, 3, 11), got.StartDate)
		assert.Equal(t, "1000", got.OpeningCash.String())
		// income: sales 500+200, advance 100, remaining 0, settlements 60
		assert.Equal(t, "860", got.TotalIncome.String())
		// expense: 120 expenses + 80 withdrawals
		assert.Equal(t, "200", got.TotalExpense.String())
		// cash in hand: 1000 + cash income (500+100+35) - cash out (120+80);
		// the 25 of card-settled debt stays out of the drawer
		assert.Equal(t, "1435", got.NetCashInHand.String())
	})

	t.Run("older snapshot narrows the window with an advisory", func(t *testing.T) {
		snapshot := &ledger.ClosingCash{Date: day(2026, 3, 5), Amount: dec(700)}
		svc, filter := newCashFlowFixture(t, snapshot)

		got, err := svc.CashFlowReport(ctx, filter)
		require.NoError(t, err)

		assert.Equal(t, "700", got.OpeningCash.String())
		assert.Equal(t, day(2026, 3, 6), got.StartDate)
		assert.Contains(t, got.Message, "2026-03-05")
	})

	t.Run("no snapshot at all degrades to zero opening cash", func(t *testing.T) {
		svc, filter := newCashFlowFixture(t, nil)

		got, err := svc.CashFlowReport(ctx, filter)
		require.NoError(t, err)

		assert.True(t, got.OpeningCash.IsZero())
		assert.Equal(t, day(2026, 3, 11), got.StartDate)
		assert.Contains(t, got.Message, "assumed zero")
		// 0 + cash income (500+100+35) - cash out (120+80)
		assert.Equal(t, "435", got.NetCashInHand.String())
	})
}
