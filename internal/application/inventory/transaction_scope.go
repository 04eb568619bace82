package inventory

import (
	"context"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/inventory"
)

// TransactionalRepositories exposes the repositories that participate
// in a single inventory transaction. The cached level and its movement
// row must commit together.
type TransactionalRepositories interface {
	StockLevelRepo() inventory.StockLevelRepository
	MovementRepo() inventory.StockMovementRepository
	LocationRepo() inventory.StockLocationRepository
}

// TransactionScope runs a function within a database transaction
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// NoOpTransactionScope runs the function without a transaction.
// Used in tests.
type NoOpTransactionScope struct {
	stockLevelRepo inventory.StockLevelRepository
	movementRepo   inventory.StockMovementRepository
	locationRepo   inventory.StockLocationRepository
}

// NewNoOpTransactionScope creates a scope that does not open a transaction
func NewNoOpTransactionScope(
	stockLevelRepo inventory.StockLevelRepository,
	movementRepo inventory.StockMovementRepository,
	locationRepo inventory.StockLocationRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stockLevelRepo: stockLevelRepo,
		movementRepo:   movementRepo,
		locationRepo:   locationRepo,
	}
}

// Execute runs the function with the repositories as-is
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// StockLevelRepo returns the stock level repository
func (s *NoOpTransactionScope) StockLevelRepo() inventory.StockLevelRepository {
	return s.stockLevelRepo
}

// MovementRepo returns the stock movement repository
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

// LocationRepo returns the stock location repository
func (s *NoOpTransactionScope) LocationRepo() inventory.StockLocationRepository {
	return s.locationRepo
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
