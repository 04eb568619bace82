package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared/valueobject"
)

// StockLevel is the on-hand quantity of one product at one location.
// It is a cached projection of the movement log: every mutation appends
// a StockMovement and folds its delta into Quantity in the same
// operation, so the row always equals the sum of its movements.
// The composite identifier is ProductID + LocationID.
type StockLevel struct {
	shared.BaseAggregateRoot
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_levels_product_location,priority:1"`
	LocationID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_levels_product_location,priority:2"`
	ProductName string    `gorm:"type:varchar(100);not null"`
	Quantity    int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (StockLevel) TableName() string {
	return "stock_levels"
}

// NewStockLevel creates a zero-quantity stock level for a
// product-location combination
func NewStockLevel(productID, locationID uuid.UUID, productName string) (*StockLevel, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}

	return &StockLevel{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		LocationID:        locationID,
		ProductName:       productName,
		Quantity:          0,
	}, nil
}

// QuantityValue returns the on-hand quantity as a Quantity value object
func (s *StockLevel) QuantityValue() valueobject.Quantity {
	return valueobject.MustNewQuantity(s.Quantity)
}

// HasStock returns true if any stock is on hand
func (s *StockLevel) HasStock() bool {
	return s.Quantity > 0
}

// CanFulfill returns true if the on-hand quantity covers the request
func (s *StockLevel) CanFulfill(quantity valueobject.Quantity) bool {
	return s.Quantity >= quantity.Int64()
}

// AddStock records an inbound movement and increases the cached level.
// Returns the movement for the caller to persist alongside the level.
func (s *StockLevel) AddStock(quantity valueobject.Quantity, reference, remarks string) (*StockMovement, error) {
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	movement, err := newStockMovement(s.ProductID, s.LocationID, MovementTypeIn, quantity.Int64(), reference, remarks)
	if err != nil {
		return nil, err
	}

	s.Quantity += quantity.Int64()
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStockAddedEvent(s, movement))

	return movement, nil
}

// RemoveStock records an outbound movement and decreases the cached
// level. Rejects the whole operation if the level would go negative.
func (s *StockLevel) RemoveStock(quantity valueobject.Quantity, reference, remarks string) (*StockMovement, error) {
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if s.Quantity < quantity.Int64() {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	}

	movement, err := newStockMovement(s.ProductID, s.LocationID, MovementTypeOut, quantity.Int64(), reference, remarks)
	if err != nil {
		return nil, err
	}

	s.Quantity -= quantity.Int64()
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStockRemovedEvent(s, movement))

	return movement, nil
}

// Adjust records a correction bringing the level to the counted
// quantity. The movement carries the signed difference so the log
// still sums to the level. Requires a reason.
func (s *StockLevel) Adjust(countedQuantity valueobject.Quantity, reason string) (*StockMovement, error) {
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Adjustment reason is required")
	}

	delta := countedQuantity.Int64() - s.Quantity
	if delta == 0 {
		return nil, shared.NewDomainError("NO_CHANGE", "Counted quantity matches the recorded level")
	}

	movement, err := newStockMovement(s.ProductID, s.LocationID, MovementTypeAdjustment, delta, "", reason)
	if err != nil {
		return nil, err
	}

	oldQuantity := s.Quantity
	s.Quantity = countedQuantity.Int64()
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStockAdjustedEvent(s, movement, oldQuantity))

	return movement, nil
}
