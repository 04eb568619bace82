package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByInvoiceNumber finds an invoice by its number
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)

	// FindByOrderID finds the invoice for an order. There is at most one.
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Invoice, error)

	// FindByCustomer finds invoices for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// FindByPaymentStatus finds invoices with a derived payment status
	FindByPaymentStatus(ctx context.Context, status PaymentStatus, filter shared.Filter) ([]Invoice, error)

	// FindOutstanding finds invoices with a non-zero balance
	FindOutstanding(ctx context.Context, filter shared.Filter) ([]Invoice, error)

	// FindInvoicedBetween finds invoices dated within a period
	FindInvoicedBetween(ctx context.Context, from, to time.Time, filter shared.Filter) ([]Invoice, error)

	// FindAll finds invoices with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)

	// Save creates or updates an invoice
	Save(ctx context.Context, invoice *Invoice) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, invoice *Invoice) error

	// Count counts invoices matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByOrderID checks whether an order already has an invoice
	ExistsByOrderID(ctx context.Context, orderID uuid.UUID) (bool, error)
}
