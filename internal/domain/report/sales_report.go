package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesSummary aggregates delivered and billed orders for a period.
// Pending, confirmed and cancelled orders are excluded so the figures
// reflect goods that actually went out.
type SalesSummary struct {
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	OrderCount    int64           `json:"order_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
	UnitsSold     int64           `json:"units_sold"`
}

// MonthlySales is one month's delivered sales, for trend charts
type MonthlySales struct {
	Month       time.Time       `json:"month"` // first day of the month
	OrderCount  int64           `json:"order_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// ProductSalesRanking ranks products by delivered quantity and amount
type ProductSalesRanking struct {
	Rank        int             `json:"rank"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int64           `json:"units_sold"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OrderCount  int64           `json:"order_count"`
}

// CustomerSalesRanking ranks customers by delivered order value
type CustomerSalesRanking struct {
	Rank         int             `json:"rank"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	OrderCount   int64           `json:"order_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// SalesReportFilter defines filtering options for sales reports
type SalesReportFilter struct {
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	BrandID    *uuid.UUID `json:"brand_id,omitempty"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	ProductID  *uuid.UUID `json:"product_id,omitempty"`
	TopN       int        `json:"top_n,omitempty"` // for rankings
}

// SalesReportRepository defines the interface for sales report queries
type SalesReportRepository interface {
	// GetSalesSummary returns aggregated delivered sales for the period
	GetSalesSummary(ctx context.Context, filter SalesReportFilter) (*SalesSummary, error)

	// GetMonthlySales returns per-month delivered sales for the period
	GetMonthlySales(ctx context.Context, filter SalesReportFilter) ([]MonthlySales, error)

	// GetProductSalesRanking returns top N products by delivered amount
	GetProductSalesRanking(ctx context.Context, filter SalesReportFilter) ([]ProductSalesRanking, error)

	// GetCustomerSalesRanking returns top N customers by delivered amount
	GetCustomerSalesRanking(ctx context.Context, filter SalesReportFilter) ([]CustomerSalesRanking, error)
}
