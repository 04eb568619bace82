package persistence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/order"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/report"
)

// deliveredStatuses are the order states counted as realized sales.
// Pending, confirmed and cancelled orders carry no delivered goods.
var deliveredStatuses = []order.Status{order.StatusDelivered, order.StatusBilled}

// GormSalesReportRepository implements SalesReportRepository using GORM
type GormSalesReportRepository struct {
	db *gorm.DB
}

// NewGormSalesReportRepository creates a new GormSalesReportRepository
func NewGormSalesReportRepository(db *gorm.DB) *GormSalesReportRepository {
	return &GormSalesReportRepository{db: db}
}

// GetSalesSummary returns aggregated delivered sales for the period
func (r *GormSalesReportRepository) GetSalesSummary(ctx context.Context, filter report.SalesReportFilter) (*report.SalesSummary, error) {
	type summaryResult struct {
		OrderCount  int64
		TotalAmount decimal.Decimal
	}

	var result summaryResult
	query := r.ordersInPeriod(ctx, filter).
		Select("COUNT(so.id) AS order_count, COALESCE(SUM(so.total_amount), 0) AS total_amount")
	if err := query.Scan(&result).Error; err != nil {
		return nil, err
	}

	var unitsSold int64
	unitsQuery := r.ordersInPeriod(ctx, filter).
		Joins("JOIN order_lines ol ON ol.order_id = so.id").
		Select("COALESCE(SUM(ol.quantity), 0)")
	if filter.ProductID != nil {
		unitsQuery = unitsQuery.Where("ol.product_id = ?", *filter.ProductID)
	}
	if err := unitsQuery.Scan(&unitsSold).Error; err != nil {
		return nil, err
	}

	var avgOrderValue decimal.Decimal
	if result.OrderCount > 0 {
		avgOrderValue = result.TotalAmount.Div(decimal.NewFromInt(result.OrderCount)).Round(2)
	}

	return &report.SalesSummary{
		PeriodStart:   filter.StartDate,
		PeriodEnd:     filter.EndDate,
		OrderCount:    result.OrderCount,
		TotalAmount:   result.TotalAmount,
		AvgOrderValue: avgOrderValue,
		UnitsSold:     unitsSold,
	}, nil
}

// GetMonthlySales returns per-month delivered sales for the period
func (r *GormSalesReportRepository) GetMonthlySales(ctx context.Context, filter report.SalesReportFilter) ([]report.MonthlySales, error) {
	type monthlyRow struct {
		Month       time.Time
		OrderCount  int64
		TotalAmount decimal.Decimal
	}

	var rows []monthlyRow
	query := r.ordersInPeriod(ctx, filter).
		Select(`DATE_TRUNC('month', so.delivered_at) AS month,
			COUNT(so.id) AS order_count,
			COALESCE(SUM(so.total_amount), 0) AS total_amount`).
		Group("DATE_TRUNC('month', so.delivered_at)").
		Order("month ASC")
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	months := make([]report.MonthlySales, len(rows))
	for i, row := range rows {
		months[i] = report.MonthlySales{
			Month:       row.Month,
			OrderCount:  row.OrderCount,
			TotalAmount: row.TotalAmount,
		}
	}
	return months, nil
}

// GetProductSalesRanking returns top N products by delivered amount
func (r *GormSalesReportRepository) GetProductSalesRanking(ctx context.Context, filter report.SalesReportFilter) ([]report.ProductSalesRanking, error) {
	var rankings []report.ProductSalesRanking
	query := r.ordersInPeriod(ctx, filter).
		Joins("JOIN order_lines ol ON ol.order_id = so.id").
		Select(`ol.product_id,
			ol.product_name,
			COALESCE(SUM(ol.quantity), 0) AS units_sold,
			COALESCE(SUM(ol.price), 0) AS total_amount,
			COUNT(DISTINCT so.id) AS order_count`).
		Group("ol.product_id, ol.product_name").
		Order("total_amount DESC").
		Limit(filter.TopN)
	if err := query.Scan(&rankings).Error; err != nil {
		return nil, err
	}

	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return rankings, nil
}

// GetCustomerSalesRanking returns top N customers by delivered amount
func (r *GormSalesReportRepository) GetCustomerSalesRanking(ctx context.Context, filter report.SalesReportFilter) ([]report.CustomerSalesRanking, error) {
	var rankings []report.CustomerSalesRanking
	query := r.ordersInPeriod(ctx, filter).
		Select(`so.customer_id,
			so.customer_name,
			COUNT(so.id) AS order_count,
			COALESCE(SUM(so.total_amount), 0) AS total_amount`).
		Group("so.customer_id, so.customer_name").
		Order("total_amount DESC").
		Limit(filter.TopN)
	if err := query.Scan(&rankings).Error; err != nil {
		return nil, err
	}

	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return rankings, nil
}

// ordersInPeriod scopes queries to delivered orders within the filter period
func (r *GormSalesReportRepository) ordersInPeriod(ctx context.Context, filter report.SalesReportFilter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Table("sales_orders so").
		Where("so.status IN ?", deliveredStatuses).
		Where("so.delivered_at >= ? AND so.delivered_at < ?", filter.StartDate, filter.EndDate)

	if filter.CustomerID != nil {
		query = query.Where("so.customer_id = ?", *filter.CustomerID)
	}
	// A brand filter keeps orders carrying at least one line of that
	// brand but still aggregates the full order amount. EXISTS avoids
	// the duplicate rows a join would feed into SUM.
	if filter.BrandID != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM order_lines bl JOIN products bp ON bp.id = bl.product_id WHERE bl.order_id = so.id AND bp.brand_id = ?)",
			*filter.BrandID)
	}
	return query
}

// Ensure GormSalesReportRepository implements SalesReportRepository
var _ report.SalesReportRepository = (*GormSalesReportRepository)(nil)
