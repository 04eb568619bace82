package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/report"
)

func newMockSalesReportRepository(t *testing.T) (*GormSalesReportRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSalesReportRepository(gormDB), mock, mockDB
}

func TestGormSalesReportRepository_GetMonthlySales(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("brand filter scopes orders through their lines", func(t *testing.T) {
		repo, mock, mockDB := newMockSalesReportRepository(t)
		defer mockDB.Close()

		brandID := uuid.New()

		// the brand narrows which orders count, the totals still cover
		// the whole order
		mock.ExpectQuery(`(?s)SELECT DATE_TRUNC\('month', so\.delivered_at\) AS month,.*` +
			`FROM sales_orders so WHERE so\.status IN \(\$\d+,\$\d+\) ` +
			`AND \(so\.delivered_at >= \$\d+ AND so\.delivered_at < \$\d+\) ` +
			`AND \(EXISTS \(SELECT 1 FROM order_lines bl JOIN products bp ON bp\.id = bl\.product_id ` +
			`WHERE bl\.order_id = so\.id AND bp\.brand_id = \$\d+\)\) ` +
			`GROUP BY DATE_TRUNC\('month', so\.delivered_at\) ORDER BY month ASC`).
			WithArgs("DELIVERED", "BILLED", start, end, brandID).
			WillReturnRows(sqlmock.NewRows([]string{"month", "order_count", "total_amount"}).
				AddRow(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), 3, decimal.NewFromFloat(1350.00)))

		months, err := repo.GetMonthlySales(context.Background(), report.SalesReportFilter{
			StartDate: start,
			EndDate:   end,
			BrandID:   &brandID,
		})

		assert.NoError(t, err)
		require.Len(t, months, 1)
		assert.Equal(t, int64(3), months[0].OrderCount)
		assert.True(t, months[0].TotalAmount.Equal(decimal.NewFromFloat(1350.00)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no brand clause without a brand filter", func(t *testing.T) {
		repo, mock, mockDB := newMockSalesReportRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`(?s)SELECT DATE_TRUNC\('month', so\.delivered_at\) AS month,.*` +
			`FROM sales_orders so WHERE so\.status IN \(\$\d+,\$\d+\) ` +
			`AND \(so\.delivered_at >= \$\d+ AND so\.delivered_at < \$\d+\) ` +
			`GROUP BY DATE_TRUNC\('month', so\.delivered_at\) ORDER BY month ASC`).
			WithArgs("DELIVERED", "BILLED", start, end).
			WillReturnRows(sqlmock.NewRows([]string{"month", "order_count", "total_amount"}))

		months, err := repo.GetMonthlySales(context.Background(), report.SalesReportFilter{
			StartDate: start,
			EndDate:   end,
		})

		assert.NoError(t, err)
		assert.Empty(t, months)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
