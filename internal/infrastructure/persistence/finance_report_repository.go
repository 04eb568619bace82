package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/billing"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/report"
)

// GormFinanceReportRepository implements FinanceReportRepository using GORM
type GormFinanceReportRepository struct {
	db *gorm.DB
}

// NewGormFinanceReportRepository creates a new GormFinanceReportRepository
func NewGormFinanceReportRepository(db *gorm.DB) *GormFinanceReportRepository {
	return &GormFinanceReportRepository{db: db}
}

// GetCashFlowSummary returns receipts against expenses for the period.
// Receipts come from the payment records applied in the period, not
// from invoice totals.
func (r *GormFinanceReportRepository) GetCashFlowSummary(ctx context.Context, filter report.FinanceReportFilter) (*report.CashFlowSummary, error) {
	var invoiced decimal.Decimal
	query := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("invoice_date >= ? AND invoice_date < ?", filter.StartDate, filter.EndDate)
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if err := query.Scan(&invoiced).Error; err != nil {
		return nil, err
	}

	// Payments live as JSONB records on the invoice; unnest them to
	// count only amounts applied within the period.
	var receipts decimal.Decimal
	receiptsQuery := r.db.WithContext(ctx).
		Table("invoices i, jsonb_array_elements(i.payments) AS p").
		Select("COALESCE(SUM((p->>'amount')::numeric), 0)").
		Where("(p->>'applied_at')::timestamptz >= ? AND (p->>'applied_at')::timestamptz < ?", filter.StartDate, filter.EndDate)
	if filter.CustomerID != nil {
		receiptsQuery = receiptsQuery.Where("i.customer_id = ?", *filter.CustomerID)
	}
	if err := receiptsQuery.Scan(&receipts).Error; err != nil {
		return nil, err
	}

	var outstanding decimal.Decimal
	outstandingQuery := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Select("COALESCE(SUM(total_amount - amount_paid), 0)").
		Where("payment_status <> ?", billing.PaymentStatusPaid)
	if filter.CustomerID != nil {
		outstandingQuery = outstandingQuery.Where("customer_id = ?", *filter.CustomerID)
	}
	if err := outstandingQuery.Scan(&outstanding).Error; err != nil {
		return nil, err
	}

	var expensesIncurred decimal.Decimal
	if err := r.db.WithContext(ctx).
		Table("expenses").
		Select("COALESCE(SUM(amount), 0)").
		Where("incurred_at >= ? AND incurred_at < ?", filter.StartDate, filter.EndDate).
		Scan(&expensesIncurred).Error; err != nil {
		return nil, err
	}

	var expensesSettled decimal.Decimal
	if err := r.db.WithContext(ctx).
		Table("expense_splits").
		Select("COALESCE(SUM(amount), 0)").
		Where("settled = ? AND settled_at >= ? AND settled_at < ?", true, filter.StartDate, filter.EndDate).
		Scan(&expensesSettled).Error; err != nil {
		return nil, err
	}

	return &report.CashFlowSummary{
		PeriodStart:      filter.StartDate,
		PeriodEnd:        filter.EndDate,
		InvoicedAmount:   invoiced,
		ReceiptsReceived: receipts,
		OutstandingAR:    outstanding,
		ExpensesIncurred: expensesIncurred,
		ExpensesSettled:  expensesSettled,
		NetCashFlow:      receipts.Sub(expensesIncurred),
	}, nil
}

// GetARAgingReport buckets open invoice balances by days outstanding.
// Bucketing reuses the domain's day ranges so the report always agrees
// with per-invoice aging.
func (r *GormFinanceReportRepository) GetARAgingReport(ctx context.Context, filter report.FinanceReportFilter) (*report.ARAgingReport, error) {
	asOf := filter.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}

	type openInvoiceRow struct {
		InvoiceDate time.Time
		Balance     decimal.Decimal
	}

	var rows []openInvoiceRow
	query := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Select("invoice_date, total_amount - amount_paid AS balance").
		Where("payment_status <> ?", billing.PaymentStatusPaid)
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	byBucket := make(map[billing.AgingBucket]*report.AgingBucketLine, len(billing.AgingBuckets))
	buckets := make([]report.AgingBucketLine, len(billing.AgingBuckets))
	for i, bucket := range billing.AgingBuckets {
		buckets[i] = report.AgingBucketLine{Bucket: bucket, TotalBalance: decimal.Zero}
		byBucket[bucket] = &buckets[i]
	}

	totalBalance := decimal.Zero
	for _, row := range rows {
		days := int(asOf.Sub(row.InvoiceDate).Hours() / 24)
		line := byBucket[billing.BucketForDays(days)]
		line.InvoiceCount++
		line.TotalBalance = line.TotalBalance.Add(row.Balance)
		totalBalance = totalBalance.Add(row.Balance)
	}

	return &report.ARAgingReport{
		AsOf:         asOf,
		Buckets:      buckets,
		TotalBalance: totalBalance,
	}, nil
}

// GetCustomerStatements returns per-customer billing positions
func (r *GormFinanceReportRepository) GetCustomerStatements(ctx context.Context, filter report.FinanceReportFilter) ([]report.CustomerStatement, error) {
	asOf := filter.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}

	type statementRow struct {
		CustomerID       uuid.UUID
		CustomerName     string
		InvoiceCount     int64
		TotalInvoiced    decimal.Decimal
		TotalPaid        decimal.Decimal
		TotalOutstanding decimal.Decimal
		OldestOpenDate   *time.Time
	}

	// Invoiced and paid sums are windowed to the period, while the
	// outstanding balance and oldest open invoice span the customer's
	// entire history. The window therefore lives in the aggregates, not
	// in a WHERE clause, so a customer with old unpaid invoices still
	// surfaces in a quiet month.
	var rows []statementRow
	query := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Select(`customer_id,
			customer_name,
			COUNT(CASE WHEN invoice_date >= ? AND invoice_date < ? THEN id END) AS invoice_count,
			COALESCE(SUM(CASE WHEN invoice_date >= ? AND invoice_date < ? THEN total_amount END), 0) AS total_invoiced,
			COALESCE(SUM(CASE WHEN invoice_date >= ? AND invoice_date < ? THEN amount_paid END), 0) AS total_paid,
			COALESCE(SUM(total_amount - amount_paid), 0) AS total_outstanding,
			MIN(CASE WHEN payment_status <> 'PAID' THEN invoice_date END) AS oldest_open_date`,
			filter.StartDate, filter.EndDate,
			filter.StartDate, filter.EndDate,
			filter.StartDate, filter.EndDate).
		Group("customer_id, customer_name").
		Order("total_outstanding DESC")
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	statements := make([]report.CustomerStatement, len(rows))
	for i, row := range rows {
		statement := report.CustomerStatement{
			CustomerID:       row.CustomerID,
			CustomerName:     row.CustomerName,
			InvoiceCount:     row.InvoiceCount,
			TotalInvoiced:    row.TotalInvoiced,
			TotalPaid:        row.TotalPaid,
			TotalOutstanding: row.TotalOutstanding,
		}
		if row.OldestOpenDate != nil {
			days := int(asOf.Sub(*row.OldestOpenDate).Hours() / 24)
			if days > 0 {
				statement.OldestOpenDays = days
			}
		}
		statements[i] = statement
	}
	return statements, nil
}

// Ensure GormFinanceReportRepository implements FinanceReportRepository
var _ report.FinanceReportRepository = (*GormFinanceReportRepository)(nil)
