package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// SalesOrderRepository defines the interface for sales order persistence
type SalesOrderRepository interface {
	// FindByID finds a sales order by ID, lines included
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)

	// FindByOrderNumber finds a sales order by order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*SalesOrder, error)

	// FindAll finds sales orders with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]SalesOrder, error)

	// FindByCustomer finds sales orders for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]SalesOrder, error)

	// FindByStatus finds sales orders in a given status
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) ([]SalesOrder, error)

	// Save creates or updates a sales order with its lines
	Save(ctx context.Context, order *SalesOrder) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, order *SalesOrder) error

	// Delete deletes a sales order
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts sales orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts sales orders in a given status
	CountByStatus(ctx context.Context, status Status) (int64, error)

	// ExistsByOrderNumber checks if an order number is already taken
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)

	// GenerateOrderNumber generates the next unique order number
	GenerateOrderNumber(ctx context.Context) (string, error)
}

// DraftOrderRepository defines the interface for draft order persistence
type DraftOrderRepository interface {
	// FindByID finds a draft order by ID, lines included
	FindByID(ctx context.Context, id uuid.UUID) (*DraftOrder, error)

	// Save creates or updates a draft order with its lines
	Save(ctx context.Context, draft *DraftOrder) error

	// Delete deletes a draft order
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteExpired removes drafts whose expiry passed before the cutoff,
	// returning how many were removed
	DeleteExpired(ctx context.Context) (int64, error)
}
