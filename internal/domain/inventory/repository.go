package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// StockLevelRepository defines the interface for stock level persistence
type StockLevelRepository interface {
	// FindByID finds a stock level by ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockLevel, error)

	// FindByProductAndLocation finds the level for a product-location pair
	FindByProductAndLocation(ctx context.Context, productID, locationID uuid.UUID) (*StockLevel, error)

	// FindByProduct finds all levels for a product across locations
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]StockLevel, error)

	// FindByLocation finds all levels at a location
	FindByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]StockLevel, error)

	// FindAll finds stock levels with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]StockLevel, error)

	// Save creates or updates a stock level
	Save(ctx context.Context, level *StockLevel) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, level *StockLevel) error

	// Count counts stock levels matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// StockMovementRepository defines the interface for the append-only
// movement log. Movements are inserted, never updated or deleted.
type StockMovementRepository interface {
	// Append inserts a movement into the log
	Append(ctx context.Context, movement *StockMovement) error

	// FindByProductAndLocation lists movements for a product-location
	// pair, newest first
	FindByProductAndLocation(ctx context.Context, productID, locationID uuid.UUID, filter shared.Filter) ([]StockMovement, error)

	// FindByReference lists movements carrying a reference, such as an
	// order number
	FindByReference(ctx context.Context, reference string) ([]StockMovement, error)

	// FindSince lists movements recorded at or after the cutoff
	FindSince(ctx context.Context, since time.Time, filter shared.Filter) ([]StockMovement, error)

	// SumDeltas folds the signed deltas for a product-location pair.
	// Used to verify the cached level against the log.
	SumDeltas(ctx context.Context, productID, locationID uuid.UUID) (int64, error)
}

// StockLocationRepository defines the interface for location persistence
type StockLocationRepository interface {
	// FindByID finds a location by ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockLocation, error)

	// FindByName finds a location by its unique name
	FindByName(ctx context.Context, name string) (*StockLocation, error)

	// FindActive lists active locations
	FindActive(ctx context.Context) ([]StockLocation, error)

	// FindAll lists all locations
	FindAll(ctx context.Context, filter shared.Filter) ([]StockLocation, error)

	// Save creates or updates a location
	Save(ctx context.Context, location *StockLocation) error

	// Delete deletes a location
	Delete(ctx context.Context, id uuid.UUID) error
}
