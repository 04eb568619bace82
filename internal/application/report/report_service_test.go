package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/report"
)

// MockSalesReportRepository is a mock implementation of report.SalesReportRepository
type MockSalesReportRepository struct {
	mock.Mock
}

func (m *MockSalesReportRepository) GetSalesSummary(ctx context.Context, filter report.SalesReportFilter) (*report.SalesSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.SalesSummary), args.Error(1)
}

func (m *MockSalesReportRepository) GetMonthlySales(ctx context.Context, filter report.SalesReportFilter) ([]report.MonthlySales, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]report.MonthlySales), args.Error(1)
}

func (m *MockSalesReportRepository) GetProductSalesRanking(ctx context.Context, filter report.SalesReportFilter) ([]report.ProductSalesRanking, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]report.ProductSalesRanking), args.Error(1)
}

func (m *MockSalesReportRepository) GetCustomerSalesRanking(ctx context.Context, filter report.SalesReportFilter) ([]report.CustomerSalesRanking, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]report.CustomerSalesRanking), args.Error(1)
}

// MockFinanceReportRepository is a mock implementation of report.FinanceReportRepository
type MockFinanceReportRepository struct {
	mock.Mock
}

func (m *MockFinanceReportRepository) GetCashFlowSummary(ctx context.Context, filter report.FinanceReportFilter) (*report.CashFlowSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.CashFlowSummary), args.Error(1)
}

func (m *MockFinanceReportRepository) GetARAgingReport(ctx context.Context, filter report.FinanceReportFilter) (*report.ARAgingReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.ARAgingReport), args.Error(1)
}

func (m *MockFinanceReportRepository) GetCustomerStatements(ctx context.Context, filter report.FinanceReportFilter) ([]report.CustomerStatement, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]report.CustomerStatement), args.Error(1)
}

// MockInventoryReportRepository is a mock implementation of report.InventoryReportRepository
type MockInventoryReportRepository struct {
	mock.Mock
}

func (m *MockInventoryReportRepository) GetStockSnapshot(ctx context.Context, filter report.InventoryReportFilter) (*report.StockSnapshot, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.StockSnapshot), args.Error(1)
}

func (m *MockInventoryReportRepository) GetMovementActivity(ctx context.Context, filter report.InventoryReportFilter) (*report.MovementActivity, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.MovementActivity), args.Error(1)
}

type reportServiceFixture struct {
	service       *ReportService
	salesRepo     *MockSalesReportRepository
	financeRepo   *MockFinanceReportRepository
	inventoryRepo *MockInventoryReportRepository
}

func newReportServiceFixture(t *testing.T) *reportServiceFixture {
	t.Helper()
	f := &reportServiceFixture{
		salesRepo:     new(MockSalesReportRepository),
		financeRepo:   new(MockFinanceReportRepository),
		inventoryRepo: new(MockInventoryReportRepository),
	}
	f.service = NewReportService(f.salesRepo, f.financeRepo, f.inventoryRepo, zap.NewNop())
	return f
}

func TestReportService_GetSalesSummary(t *testing.T) {
	t.Run("defaults an empty period to the current month", func(t *testing.T) {
		f := newReportServiceFixture(t)

		var captured report.SalesReportFilter
		f.salesRepo.On("GetSalesSummary", mock.Anything, mock.AnythingOfType("report.SalesReportFilter")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(report.SalesReportFilter)
			}).
			Return(&report.SalesSummary{OrderCount: 12, TotalAmount: decimal.NewFromFloat(5400.00)}, nil)

		summary, err := f.service.GetSalesSummary(context.Background(), report.SalesReportFilter{})
		require.NoError(t, err)

		assert.Equal(t, int64(12), summary.OrderCount)
		assert.Equal(t, 1, captured.StartDate.Day())
		assert.True(t, captured.EndDate.Equal(captured.StartDate.AddDate(0, 1, 0)))
	})

	t.Run("passes an explicit period through unchanged", func(t *testing.T) {
		f := newReportServiceFixture(t)
		start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

		var captured report.SalesReportFilter
		f.salesRepo.On("GetSalesSummary", mock.Anything, mock.AnythingOfType("report.SalesReportFilter")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(report.SalesReportFilter)
			}).
			Return(&report.SalesSummary{}, nil)

		_, err := f.service.GetSalesSummary(context.Background(), report.SalesReportFilter{StartDate: start, EndDate: end})
		require.NoError(t, err)

		assert.True(t, captured.StartDate.Equal(start))
		assert.True(t, captured.EndDate.Equal(end))
	})
}

func TestReportService_GetProductSalesRanking(t *testing.T) {
	f := newReportServiceFixture(t)

	var captured report.SalesReportFilter
	f.salesRepo.On("GetProductSalesRanking", mock.Anything, mock.AnythingOfType("report.SalesReportFilter")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(report.SalesReportFilter)
		}).
		Return([]report.ProductSalesRanking{{Rank: 1, ProductName: "Banana Chips 200g"}}, nil)

	rankings, err := f.service.GetProductSalesRanking(context.Background(), report.SalesReportFilter{})
	require.NoError(t, err)

	assert.Equal(t, defaultRankingSize, captured.TopN)
	require.Len(t, rankings, 1)
	assert.Equal(t, "Banana Chips 200g", rankings[0].ProductName)
}

func TestReportService_GetARAgingReport(t *testing.T) {
	f := newReportServiceFixture(t)

	var captured report.FinanceReportFilter
	f.financeRepo.On("GetARAgingReport", mock.Anything, mock.AnythingOfType("report.FinanceReportFilter")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(report.FinanceReportFilter)
		}).
		Return(&report.ARAgingReport{TotalBalance: decimal.NewFromFloat(1200.00)}, nil)

	aging, err := f.service.GetARAgingReport(context.Background(), report.FinanceReportFilter{})
	require.NoError(t, err)

	assert.False(t, captured.AsOf.IsZero())
	assert.True(t, aging.TotalBalance.Equal(decimal.NewFromFloat(1200.00)))
}

func TestReportService_GetDashboard(t *testing.T) {
	f := newReportServiceFixture(t)

	f.salesRepo.On("GetSalesSummary", mock.Anything, mock.AnythingOfType("report.SalesReportFilter")).
		Return(&report.SalesSummary{OrderCount: 3}, nil)
	f.financeRepo.On("GetCashFlowSummary", mock.Anything, mock.AnythingOfType("report.FinanceReportFilter")).
		Return(&report.CashFlowSummary{NetCashFlow: decimal.NewFromFloat(150.00)}, nil)
	f.financeRepo.On("GetARAgingReport", mock.Anything, mock.AnythingOfType("report.FinanceReportFilter")).
		Return(&report.ARAgingReport{}, nil)
	f.inventoryRepo.On("GetStockSnapshot", mock.Anything, mock.AnythingOfType("report.InventoryReportFilter")).
		Return(&report.StockSnapshot{TotalUnits: 420}, nil)

	dashboard, err := f.service.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), dashboard.Sales.OrderCount)
	assert.Equal(t, int64(420), dashboard.Stock.TotalUnits)
	assert.False(t, dashboard.Generated.IsZero())
}
