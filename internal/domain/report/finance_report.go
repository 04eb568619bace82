package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/billing"
)

// CashFlowSummary sets cash collected against shared expenses for a
// period. Receipts count actual payments, not invoice totals.
type CashFlowSummary struct {
	PeriodStart      time.Time       `json:"period_start"`
	PeriodEnd        time.Time       `json:"period_end"`
	InvoicedAmount   decimal.Decimal `json:"invoiced_amount"`   // invoices dated in the period
	ReceiptsReceived decimal.Decimal `json:"receipts_received"` // payments applied in the period
	OutstandingAR    decimal.Decimal `json:"outstanding_ar"`    // open balances as of period end
	ExpensesIncurred decimal.Decimal `json:"expenses_incurred"`
	ExpensesSettled  decimal.Decimal `json:"expenses_settled"` // splits settled in the period
	NetCashFlow      decimal.Decimal `json:"net_cash_flow"`    // receipts minus expenses incurred
}

// AgingBucketLine is one row of the receivables aging report
type AgingBucketLine struct {
	Bucket       billing.AgingBucket `json:"bucket"`
	InvoiceCount int64               `json:"invoice_count"`
	TotalBalance decimal.Decimal     `json:"total_balance"`
}

// ARAgingReport groups open invoice balances by days outstanding
type ARAgingReport struct {
	AsOf         time.Time         `json:"as_of"`
	Buckets      []AgingBucketLine `json:"buckets"`
	TotalBalance decimal.Decimal   `json:"total_balance"`
}

// CustomerStatement summarizes one customer's billing position
type CustomerStatement struct {
	CustomerID       uuid.UUID       `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	InvoiceCount     int64           `json:"invoice_count"`
	TotalInvoiced    decimal.Decimal `json:"total_invoiced"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	OldestOpenDays   int             `json:"oldest_open_days"`
}

// FinanceReportFilter defines filtering options for finance reports
type FinanceReportFilter struct {
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	AsOf       time.Time  `json:"as_of,omitempty"` // for aging, defaults to now
}

// FinanceReportRepository defines the interface for finance report queries
type FinanceReportRepository interface {
	// GetCashFlowSummary returns receipts against expenses for the period
	GetCashFlowSummary(ctx context.Context, filter FinanceReportFilter) (*CashFlowSummary, error)

	// GetARAgingReport buckets open invoice balances by days outstanding
	GetARAgingReport(ctx context.Context, filter FinanceReportFilter) (*ARAgingReport, error)

	// GetCustomerStatements returns per-customer billing positions
	GetCustomerStatements(ctx context.Context, filter FinanceReportFilter) ([]CustomerStatement, error)
}
