package report

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/report"
)

const defaultRankingSize = 10

// ReportService serves read-only aggregations over orders, invoices,
// expenses and stock. It owns filter defaulting; the heavy lifting is
// SQL in the report repositories.
type ReportService struct {
	salesRepo     report.SalesReportRepository
	financeRepo   report.FinanceReportRepository
	inventoryRepo report.InventoryReportRepository
	logger        *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	salesRepo report.SalesReportRepository,
	financeRepo report.FinanceReportRepository,
	inventoryRepo report.InventoryReportRepository,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		salesRepo:     salesRepo,
		financeRepo:   financeRepo,
		inventoryRepo: inventoryRepo,
		logger:        logger,
	}
}

// normalizeSalesFilter fills an empty period with the current month
func normalizeSalesFilter(filter report.SalesReportFilter) report.SalesReportFilter {
	if filter.StartDate.IsZero() || filter.EndDate.IsZero() {
		now := time.Now()
		filter.StartDate = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		filter.EndDate = filter.StartDate.AddDate(0, 1, 0)
	}
	if filter.TopN <= 0 {
		filter.TopN = defaultRankingSize
	}
	return filter
}

func normalizeFinanceFilter(filter report.FinanceReportFilter) report.FinanceReportFilter {
	if filter.StartDate.IsZero() || filter.EndDate.IsZero() {
		now := time.Now()
		filter.StartDate = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		filter.EndDate = filter.StartDate.AddDate(0, 1, 0)
	}
	if filter.AsOf.IsZero() {
		filter.AsOf = time.Now()
	}
	return filter
}

// GetSalesSummary returns aggregated delivered sales for a period
func (s *ReportService) GetSalesSummary(ctx context.Context, filter report.SalesReportFilter) (*report.SalesSummary, error) {
	return s.salesRepo.GetSalesSummary(ctx, normalizeSalesFilter(filter))
}

// GetMonthlySales returns the per-month sales trend for a period
func (s *ReportService) GetMonthlySales(ctx context.Context, filter report.SalesReportFilter) ([]report.MonthlySales, error) {
	return s.salesRepo.GetMonthlySales(ctx, normalizeSalesFilter(filter))
}

// GetProductSalesRanking returns top products by delivered amount
func (s *ReportService) GetProductSalesRanking(ctx context.Context, filter report.SalesReportFilter) ([]report.ProductSalesRanking, error) {
	return s.salesRepo.GetProductSalesRanking(ctx, normalizeSalesFilter(filter))
}

// GetCustomerSalesRanking returns top customers by delivered amount
func (s *ReportService) GetCustomerSalesRanking(ctx context.Context, filter report.SalesReportFilter) ([]report.CustomerSalesRanking, error) {
	return s.salesRepo.GetCustomerSalesRanking(ctx, normalizeSalesFilter(filter))
}

// GetCashFlowSummary returns receipts against expenses for a period
func (s *ReportService) GetCashFlowSummary(ctx context.Context, filter report.FinanceReportFilter) (*report.CashFlowSummary, error) {
	return s.financeRepo.GetCashFlowSummary(ctx, normalizeFinanceFilter(filter))
}

// GetARAgingReport buckets open invoice balances by days outstanding
func (s *ReportService) GetARAgingReport(ctx context.Context, filter report.FinanceReportFilter) (*report.ARAgingReport, error) {
	return s.financeRepo.GetARAgingReport(ctx, normalizeFinanceFilter(filter))
}

// GetCustomerStatements returns per-customer billing positions
func (s *ReportService) GetCustomerStatements(ctx context.Context, filter report.FinanceReportFilter) ([]report.CustomerStatement, error) {
	return s.financeRepo.GetCustomerStatements(ctx, normalizeFinanceFilter(filter))
}

// GetStockSnapshot returns the current stock position across locations
func (s *ReportService) GetStockSnapshot(ctx context.Context, filter report.InventoryReportFilter) (*report.StockSnapshot, error) {
	return s.inventoryRepo.GetStockSnapshot(ctx, filter)
}

// GetMovementActivity summarizes stock movements for a period
func (s *ReportService) GetMovementActivity(ctx context.Context, filter report.InventoryReportFilter) (*report.MovementActivity, error) {
	if filter.StartDate.IsZero() || filter.EndDate.IsZero() {
		now := time.Now()
		filter.StartDate = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		filter.EndDate = filter.StartDate.AddDate(0, 1, 0)
	}
	return s.inventoryRepo.GetMovementActivity(ctx, filter)
}

// Dashboard bundles the headline figures for the landing screen
type Dashboard struct {
	Sales     *report.SalesSummary    `json:"sales"`
	CashFlow  *report.CashFlowSummary `json:"cash_flow"`
	ARAging   *report.ARAgingReport   `json:"ar_aging"`
	Stock     *report.StockSnapshot   `json:"stock"`
	Generated time.Time               `json:"generated"`
}

// GetDashboard assembles the current-month dashboard in one call
func (s *ReportService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	sales, err := s.GetSalesSummary(ctx, report.SalesReportFilter{})
	if err != nil {
		return nil, err
	}
	cashFlow, err := s.GetCashFlowSummary(ctx, report.FinanceReportFilter{})
	if err != nil {
		return nil, err
	}
	aging, err := s.GetARAgingReport(ctx, report.FinanceReportFilter{})
	if err != nil {
		return nil, err
	}
	stock, err := s.GetStockSnapshot(ctx, report.InventoryReportFilter{})
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Sales:     sales,
		CashFlow:  cashFlow,
		ARAging:   aging,
		Stock:     stock,
		Generated: time.Now(),
	}, nil
}
