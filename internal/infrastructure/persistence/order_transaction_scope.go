package persistence

import (
	"context"

	"gorm.io/gorm"

	apporder "github.com/pranavkamat7/SusegadSnacks/internal/application/order"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/inventory"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/order"
)

// GormOrderTransactionScope implements the order TransactionScope using
// GORM transactions. Order state transitions, stock decrements and
// draft materialization commit or roll back together.
type GormOrderTransactionScope struct {
	db *gorm.DB
}

// NewGormOrderTransactionScope creates a new GormOrderTransactionScope
func NewGormOrderTransactionScope(db *gorm.DB) *GormOrderTransactionScope {
	return &GormOrderTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormOrderTransactionScope) Execute(ctx context.Context, fn func(repos apporder.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormOrderTransactionalRepositories{tx: tx})
	})
}

type gormOrderTransactionalRepositories struct {
	tx *gorm.DB
}

// OrderRepo returns the sales order repository scoped to the current transaction
func (r *gormOrderTransactionalRepositories) OrderRepo() order.SalesOrderRepository {
	return NewGormSalesOrderRepository(r.tx)
}

// DraftRepo returns the draft order repository scoped to the current transaction
func (r *gormOrderTransactionalRepositories) DraftRepo() order.DraftOrderRepository {
	return NewGormDraftOrderRepository(r.tx)
}

// StockLevelRepo returns the stock level repository scoped to the current transaction
func (r *gormOrderTransactionalRepositories) StockLevelRepo() inventory.StockLevelRepository {
	return NewGormStockLevelRepository(r.tx)
}

// MovementRepo returns the stock movement repository scoped to the current transaction
func (r *gormOrderTransactionalRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// Ensure GormOrderTransactionScope implements TransactionScope
var _ apporder.TransactionScope = (*GormOrderTransactionScope)(nil)

// Ensure gormOrderTransactionalRepositories implements TransactionalRepositories
var _ apporder.TransactionalRepositories = (*gormOrderTransactionalRepositories)(nil)
