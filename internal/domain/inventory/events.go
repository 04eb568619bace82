package inventory

import (
	"github.com/google/uuid"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeStockLevel = "StockLevel"

// Event type constants
const (
	EventTypeStockAdded    = "StockAdded"
	EventTypeStockRemoved  = "StockRemoved"
	EventTypeStockAdjusted = "StockAdjusted"
)

// StockAddedEvent is raised when stock is received at a location
type StockAddedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	LocationID  uuid.UUID `json:"location_id"`
	MovementID  uuid.UUID `json:"movement_id"`
	Quantity    int64     `json:"quantity"`
	NewQuantity int64     `json:"new_quantity"`
	Reference   string    `json:"reference"`
}

// NewStockAddedEvent creates a new StockAddedEvent
func NewStockAddedEvent(level *StockLevel, movement *StockMovement) *StockAddedEvent {
	return &StockAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAdded, AggregateTypeStockLevel, level.ID),
		ProductID:       level.ProductID,
		LocationID:      level.LocationID,
		MovementID:      movement.ID,
		Quantity:        movement.Quantity,
		NewQuantity:     level.Quantity,
		Reference:       movement.Reference,
	}
}

// EventType returns the event type name
func (e *StockAddedEvent) EventType() string {
	return EventTypeStockAdded
}

// StockRemovedEvent is raised when stock leaves a location
type StockRemovedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	LocationID  uuid.UUID `json:"location_id"`
	MovementID  uuid.UUID `json:"movement_id"`
	Quantity    int64     `json:"quantity"`
	NewQuantity int64     `json:"new_quantity"`
	Reference   string    `json:"reference"`
}

// NewStockRemovedEvent creates a new StockRemovedEvent
func NewStockRemovedEvent(level *StockLevel, movement *StockMovement) *StockRemovedEvent {
	return &StockRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockRemoved, AggregateTypeStockLevel, level.ID),
		ProductID:       level.ProductID,
		LocationID:      level.LocationID,
		MovementID:      movement.ID,
		Quantity:        movement.Quantity,
		NewQuantity:     level.Quantity,
		Reference:       movement.Reference,
	}
}

// EventType returns the event type name
func (e *StockRemovedEvent) EventType() string {
	return EventTypeStockRemoved
}

// StockAdjustedEvent is raised when a count correction is applied
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	LocationID  uuid.UUID `json:"location_id"`
	MovementID  uuid.UUID `json:"movement_id"`
	OldQuantity int64     `json:"old_quantity"`
	NewQuantity int64     `json:"new_quantity"`
	Delta       int64     `json:"delta"`
	Reason      string    `json:"reason"`
}

// NewStockAdjustedEvent creates a new StockAdjustedEvent
func NewStockAdjustedEvent(level *StockLevel, movement *StockMovement, oldQuantity int64) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAdjusted, AggregateTypeStockLevel, level.ID),
		ProductID:       level.ProductID,
		LocationID:      level.LocationID,
		MovementID:      movement.ID,
		OldQuantity:     oldQuantity,
		NewQuantity:     level.Quantity,
		Delta:           movement.Quantity,
		Reason:          movement.Remarks,
	}
}

// EventType returns the event type name
func (e *StockAdjustedEvent) EventType() string {
	return EventTypeStockAdjusted
}
