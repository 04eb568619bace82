package persistence

import (
	"context"

	"gorm.io/gorm"

	appinv "github.com/pranavkamat7/SusegadSnacks/internal/application/inventory"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/inventory"
)

// GormInventoryTransactionScope implements the inventory
// TransactionScope using GORM transactions. The stock level update and
// its movement log entry commit or roll back together.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryTransactionalRepositories{tx: tx})
	})
}

type gormInventoryTransactionalRepositories struct {
	tx *gorm.DB
}

// StockLevelRepo returns the stock level repository scoped to the current transaction
func (r *gormInventoryTransactionalRepositories) StockLevelRepo() inventory.StockLevelRepository {
	return NewGormStockLevelRepository(r.tx)
}

// MovementRepo returns the stock movement repository scoped to the current transaction
func (r *gormInventoryTransactionalRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// LocationRepo returns the stock location repository scoped to the current transaction
func (r *gormInventoryTransactionalRepositories) LocationRepo() inventory.StockLocationRepository {
	return NewGormStockLocationRepository(r.tx)
}

// Ensure GormInventoryTransactionScope implements TransactionScope
var _ appinv.TransactionScope = (*GormInventoryTransactionScope)(nil)

// Ensure gormInventoryTransactionalRepositories implements TransactionalRepositories
var _ appinv.TransactionalRepositories = (*gormInventoryTransactionalRepositories)(nil)
