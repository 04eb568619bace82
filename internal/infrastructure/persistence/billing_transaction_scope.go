package persistence

import (
	"context"

	"gorm.io/gorm"

	appbilling "github.com/pranavkamat7/SusegadSnacks/internal/application/billing"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/billing"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/order"
)

// GormBillingTransactionScope implements the billing TransactionScope
// using GORM transactions. Invoice generation and the order's BILLED
// transition commit or roll back together.
type GormBillingTransactionScope struct {
	db *gorm.DB
}

// NewGormBillingTransactionScope creates a new GormBillingTransactionScope
func NewGormBillingTransactionScope(db *gorm.DB) *GormBillingTransactionScope {
	return &GormBillingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormBillingTransactionScope) Execute(ctx context.Context, fn func(repos appbilling.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormBillingTransactionalRepositories{tx: tx})
	})
}

type gormBillingTransactionalRepositories struct {
	tx *gorm.DB
}

// InvoiceRepo returns the invoice repository scoped to the current transaction
func (r *gormBillingTransactionalRepositories) InvoiceRepo() billing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

// OrderRepo returns the sales order repository scoped to the current transaction
func (r *gormBillingTransactionalRepositories) OrderRepo() order.SalesOrderRepository {
	return NewGormSalesOrderRepository(r.tx)
}

// Ensure GormBillingTransactionScope implements TransactionScope
var _ appbilling.TransactionScope = (*GormBillingTransactionScope)(nil)

// Ensure gormBillingTransactionalRepositories implements TransactionalRepositories
var _ appbilling.TransactionalRepositories = (*gormBillingTransactionalRepositories)(nil)
