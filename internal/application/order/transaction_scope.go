package order

import (
	"context"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/inventory"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/order"
)

// TransactionScope provides transactional access to the repositories
// the order workflows touch. Delivery mutates the order and the stock
// level together, so both must commit or roll back as one.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the order-side
// repositories within a transaction
type TransactionalRepositories interface {
	// OrderRepo returns the sales order repository scoped to the current transaction
	OrderRepo() order.SalesOrderRepository
	// DraftRepo returns the draft order repository scoped to the current transaction
	DraftRepo() order.DraftOrderRepository
	// StockLevelRepo returns the stock level repository scoped to the current transaction
	StockLevelRepo() inventory.StockLevelRepository
	// MovementRepo returns the stock movement repository scoped to the current transaction
	MovementRepo() inventory.StockMovementRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually
// use transactions. Useful for testing.
type NoOpTransactionScope struct {
	orderRepo      order.SalesOrderRepository
	draftRepo      order.DraftOrderRepository
	stockLevelRepo inventory.StockLevelRepository
	movementRepo   inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	orderRepo order.SalesOrderRepository,
	draftRepo order.DraftOrderRepository,
	stockLevelRepo inventory.StockLevelRepository,
	movementRepo inventory.StockMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:      orderRepo,
		draftRepo:      draftRepo,
		stockLevelRepo: stockLevelRepo,
		movementRepo:   movementRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the sales order repository
func (s *NoOpTransactionScope) OrderRepo() order.SalesOrderRepository {
	return s.orderRepo
}

// DraftRepo returns the draft order repository
func (s *NoOpTransactionScope) DraftRepo() order.DraftOrderRepository {
	return s.draftRepo
}

// StockLevelRepo returns the stock level repository
func (s *NoOpTransactionScope) StockLevelRepo() inventory.StockLevelRepository {
	return s.stockLevelRepo
}

// MovementRepo returns the stock movement repository
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
