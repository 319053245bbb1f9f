package persistence

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/retailbook/backend/internal/domain/report"
)

// GormSalesReportRepository implements SalesReportRepository using GORM
type GormSalesReportRepository struct {
	db *gorm.DB
}

// NewGormSalesReportRepository creates a new GormSalesReportRepository
func NewGormSalesReportRepository(db *gorm.DB) *GormSalesReportRepository {
	return &GormSalesReportRepository{db: db}
}

// SalesRows returns sold line items in the window joined with product name,
// UID and cost price
func (r *GormSalesReportRepository) SalesRows(filter report.Filter) ([]report.SalesRow, error) {
	var rows []report.SalesRow
	q := r.db.Table("sales s").
		Select(`st.id as transaction_id, st.date, st.bill_no, st.customer_name,
			p.id as product_id, p.name as product_name, p.uid as product_uid,
			s.quantity, s.unit_price, p.cost_price, s.discount, s.total_price,
			st.method, s.returned`).
		Joins("JOIN sales_transactions st ON st.id = s.transaction_id").
		Joins("JOIN products p ON p.id = s.product_id").
		Where("st.enterprise_id = ?", filter.EnterpriseID).
		Where("st.date BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
	if filter.BranchID != nil {
		q = q.Where("st.branch_id = ?", *filter.BranchID)
	}
	if err := q.Order("st.date ASC, st.bill_no ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SalesHeaders returns the distinct transaction headers in the window
func (r *GormSalesReportRepository) SalesHeaders(filter report.Filter) ([]report.SalesHeader, error) {
	var headers []report.SalesHeader
	q := r.db.Table("sales_transactions").
		Select(`id as transaction_id, date, method, cash_amount, card_amount,
			online_amount, total_amount, amount_paid`).
		Where("enterprise_id = ?", filter.EnterpriseID).
		Where("date BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
	if filter.BranchID != nil {
		q = q.Where("branch_id = ?", *filter.BranchID)
	}
	if err := q.Order("date ASC, bill_no ASC").Scan(&headers).Error; err != nil {
		return nil, err
	}
	return headers, nil
}

// GormPurchaseReportRepository implements PurchaseReportRepository using GORM
type GormPurchaseReportRepository struct {
	db *gorm.DB
}

// NewGormPurchaseReportRepository creates a new GormPurchaseReportRepository
func NewGormPurchaseReportRepository(db *gorm.DB) *GormPurchaseReportRepository {
	return &GormPurchaseReportRepository{db: db}
}

// PurchaseRows returns purchased line items in the window joined with product
// name and vendor name
func (r *GormPurchaseReportRepository) PurchaseRows(filter report.Filter) ([]report.PurchaseRow, error) {
	var rows []report.PurchaseRow
	q := r.db.Table("purchases pu").
		Select(`pt.id as transaction_id, pt.date, pt.bill_no,
			COALESCE(v.name, '') as vendor_name,
			p.id as product_id, p.name as product_name, p.uid as product_uid,
			pu.quantity, pu.unit_price, pu.total_price, pt.method, pu.returned`).
		Joins("JOIN purchase_transactions pt ON pt.id = pu.transaction_id").
		Joins("JOIN products p ON p.id = pu.product_id").
		Joins("LEFT JOIN vendors v ON v.id = pt.vendor_id").
		Where("pt.enterprise_id = ?", filter.EnterpriseID).
		Where("pt.date BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
	if filter.BranchID != nil {
		q = q.Where("pt.branch_id = ?", *filter.BranchID)
	}
	if err := q.Order("pt.date ASC, pt.bill_no ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// PurchaseHeaders returns the distinct transaction headers in the window
func (r *GormPurchaseReportRepository) PurchaseHeaders(filter report.Filter) ([]report.PurchaseHeader, error) {
	var headers []report.PurchaseHeader
	q := r.db.Table("purchase_transactions").
		Select(`id as transaction_id, date, method, cash_amount, total_amount, amount_paid`).
		Where("enterprise_id = ?", filter.EnterpriseID).
		Where("date BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
	if filter.BranchID != nil {
		q = q.Where("branch_id = ?", *filter.BranchID)
	}
	if err := q.Order("date ASC").Scan(&headers).Error; err != nil {
		return nil, err
	}
	return headers, nil
}

// GormStatsRepository implements StatsRepository using GORM
type GormStatsRepository struct {
	db *gorm.DB
}

// NewGormStatsRepository creates a new GormStatsRepository
func NewGormStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

// dayAgg is one day of folded activity before period formatting.
type dayAgg struct {
	purchaseCount  int64
	saleCount      int64
	purchaseAmount decimal.Decimal
	saleAmount     decimal.Decimal
	profit         decimal.Decimal
}

// DailyStats folds activity per day inside the window
func (r *GormStatsRepository) DailyStats(filter report.Filter) ([]report.PeriodStat, error) {
	return r.stats(filter, "2006-01-02")
}

// MonthlyStats folds activity per calendar month inside the window
func (r *GormStatsRepository) MonthlyStats(filter report.Filter) ([]report.PeriodStat, error) {
	return r.stats(filter, "2006-01")
}

// stats groups per-day aggregates in SQL and folds them into periods in Go,
// keeping the grouping portable across postgres and sqlite.
func (r *GormStatsRepository) stats(filter report.Filter, layout string) ([]report.PeriodStat, error) {
	aggs := map[string]*dayAgg{}
	get := func(day time.Time) *dayAgg {
		key := day.Format(layout)
		if a, ok := aggs[key]; ok {
			return a
		}
		a := &dayAgg{
			purchaseAmount: decimal.Zero,
			saleAmount:     decimal.Zero,
			profit:         decimal.Zero,
		}
		aggs[key] = a
		return a
	}

	type countRow struct {
		Date   time.Time
		Count  int64
		Amount decimal.Decimal
	}

	var purchaseRows []countRow
	q := r.scoped(r.db.Table("purchase_transactions"), filter).
		Select("date, COUNT(*) as count, COALESCE(SUM(total_amount), 0) as amount").
		Group("date")
	if err := q.Scan(&purchaseRows).Error; err != nil {
		return nil, err
	}
	for _, row := range purchaseRows {
		a := get(row.Date)
		a.purchaseCount += row.Count
		a.purchaseAmount = a.purchaseAmount.Add(row.Amount)
	}

	var saleRows []countRow
	q = r.scoped(r.db.Table("sales_transactions"), filter).
		Select("date, COUNT(*) as count, COALESCE(SUM(total_amount), 0) as amount").
		Group("date")
	if err := q.Scan(&saleRows).Error; err != nil {
		return nil, err
	}
	for _, row := range saleRows {
		a := get(row.Date)
		a.saleCount += row.Count
		a.saleAmount = a.saleAmount.Add(row.Amount)
	}

	type profitRow struct {
		Date   time.Time
		Amount decimal.Decimal
	}
	var profitRows []profitRow
	pq := r.db.Table("sales s").
		Select("st.date as date, COALESCE(SUM(s.total_price - p.cost_price * s.quantity), 0) as amount").
		Joins("JOIN sales_transactions st ON st.id = s.transaction_id").
		Joins("JOIN products p ON p.id = s.product_id").
		Where("st.enterprise_id = ?", filter.EnterpriseID).
		Where("st.date BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("s.returned = ?", false).
		Group("st.date")
	if filter.BranchID != nil {
		pq = pq.Where("st.branch_id = ?", *filter.BranchID)
	}
	if err := pq.Scan(&profitRows).Error; err != nil {
		return nil, err
	}
	for _, row := range profitRows {
		a := get(row.Date)
		a.profit = a.profit.Add(row.Amount)
	}

	stats := make([]report.PeriodStat, 0, len(aggs))
	for period, a := range aggs {
		stats = append(stats, report.PeriodStat{
			Period:         period,
			PurchaseCount:  a.purchaseCount,
			SaleCount:      a.saleCount,
			PurchaseAmount: a.purchaseAmount,
			SaleAmount:     a.saleAmount,
			Profit:         a.profit,
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Period < stats[j].Period })
	return stats, nil
}

func (r *GormStatsRepository) scoped(q *gorm.DB, filter report.Filter) *gorm.DB {
	q = q.Where("enterprise_id = ?", filter.EnterpriseID).
		Where("date BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
	if filter.BranchID != nil {
		q = q.Where("branch_id = ?", *filter.BranchID)
	}
	return q
}

// Ensure the repositories implement their interfaces
var _ report.SalesReportRepository = (*GormSalesReportRepository)(nil)
var _ report.PurchaseReportRepository = (*GormPurchaseReportRepository)(nil)
var _ report.StatsRepository = (*GormStatsRepository)(nil)
