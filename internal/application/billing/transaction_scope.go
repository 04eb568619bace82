package billing

import (
	"context"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/billing"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/order"
)

// TransactionalRepositories exposes the repositories that participate
// in a single billing transaction. Invoice generation writes the
// invoice and the order's status together.
type TransactionalRepositories interface {
	InvoiceRepo() billing.InvoiceRepository
	OrderRepo() order.SalesOrderRepository
}

// TransactionScope runs a function within a database transaction
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// NoOpTransactionScope runs the function without a transaction.
// Used in tests.
type NoOpTransactionScope struct {
	invoiceRepo billing.InvoiceRepository
	orderRepo   order.SalesOrderRepository
}

// NewNoOpTransactionScope creates a scope that does not open a transaction
func NewNoOpTransactionScope(invoiceRepo billing.InvoiceRepository, orderRepo order.SalesOrderRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
	}
}

// Execute runs the function with the repositories as-is
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InvoiceRepo returns the invoice repository
func (s *NoOpTransactionScope) InvoiceRepo() billing.InvoiceRepository {
	return s.invoiceRepo
}

// OrderRepo returns the sales order repository
func (s *NoOpTransactionScope) OrderRepo() order.SalesOrderRepository {
	return s.orderRepo
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
