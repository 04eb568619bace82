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

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/billing"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared/valueobject"
)

// newMockInvoiceRepository creates a GormInvoiceRepository with a mocked SQL connection
func newMockInvoiceRepository(t *testing.T) (*GormInvoiceRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormInvoiceRepository(gormDB), mock, mockDB
}

func TestGormInvoiceRepository_FindByID(t *testing.T) {
	t.Run("finds existing invoice", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()
		orderID := uuid.New()
		customerID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "invoice_number", "order_id", "order_number", "customer_id", "customer_name",
			"total_amount", "amount_paid", "payment_status", "payments", "invoice_date",
		}).AddRow(
			invoiceID, "A1B2C3D4E5F6", orderID, "SO-2026-0042", customerID, "Panjim General Stores",
			decimal.NewFromFloat(450.00), decimal.Zero, "UNPAID", "[]", time.Now(),
		)

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoiceID, 1).
			WillReturnRows(rows)

		invoice, err := repo.FindByID(context.Background(), invoiceID)

		assert.NoError(t, err)
		require.NotNil(t, invoice)
		assert.Equal(t, invoiceID, invoice.ID)
		assert.Equal(t, "A1B2C3D4E5F6", invoice.InvoiceNumber)
		assert.Equal(t, billing.PaymentStatusUnpaid, invoice.PaymentStatus)
		assert.True(t, invoice.TotalAmount.Equal(decimal.NewFromFloat(450.00)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing invoice", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoiceID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		invoice, err := repo.FindByID(context.Background(), invoiceID)

		assert.Error(t, err)
		assert.Nil(t, invoice)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_FindByOrderID(t *testing.T) {
	t.Run("finds invoice by order", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "invoice_number", "order_id", "order_number",
			"total_amount", "amount_paid", "payment_status", "payments",
		}).AddRow(
			uuid.New(), "A1B2C3D4E5F6", orderID, "SO-2026-0042",
			decimal.NewFromFloat(450.00), decimal.Zero, "UNPAID", "[]",
		)

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE order_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnRows(rows)

		invoice, err := repo.FindByOrderID(context.Background(), orderID)

		assert.NoError(t, err)
		require.NotNil(t, invoice)
		assert.Equal(t, orderID, invoice.OrderID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_ExistsByOrderID(t *testing.T) {
	t.Run("reports existing invoice", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices" WHERE order_id = \$1`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByOrderID(context.Background(), orderID)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_SaveWithLock(t *testing.T) {
	newInvoiceWithPayment := func(t *testing.T) *billing.Invoice {
		invoice, err := billing.NewInvoice(uuid.New(), "SO-2026-0042", uuid.New(), "Panjim General Stores",
			valueobject.NewMoneyINRFromFloat(450.00), nil)
		require.NoError(t, err)
		require.NoError(t, invoice.RecordPayment(valueobject.NewMoneyINRFromFloat(200.00), "UPI", "TXN123", ""))
		return invoice
	}

	t.Run("updates row carrying the previous version", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoice := newInvoiceWithPayment(t)

		mock.ExpectExec(`UPDATE "invoices" SET .* WHERE \(id = \$\d+ AND version = \$\d+\) AND "id" = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), invoice)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects concurrent modification", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoice := newInvoiceWithPayment(t)

		mock.ExpectExec(`UPDATE "invoices" SET .* WHERE \(id = \$\d+ AND version = \$\d+\) AND "id" = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), invoice)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONCURRENCY_CONFLICT", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
