package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/inventory"
)

// AddStockRequest represents a request to receive stock
type AddStockRequest struct {
	ProductID  uuid.UUID `json:"product_id" binding:"required"`
	LocationID uuid.UUID `json:"location_id" binding:"required"`
	Quantity   int64     `json:"quantity" binding:"required,min=1"`
	Reference  string    `json:"reference" binding:"omitempty,max=120"`
	Remarks    string    `json:"remarks" binding:"omitempty,max=255"`
}

// RemoveStockRequest represents a request to remove stock
type RemoveStockRequest struct {
	ProductID  uuid.UUID `json:"product_id" binding:"required"`
	LocationID uuid.UUID `json:"location_id" binding:"required"`
	Quantity   int64     `json:"quantity" binding:"required,min=1"`
	Reference  string    `json:"reference" binding:"omitempty,max=120"`
	Remarks    string    `json:"remarks" binding:"omitempty,max=255"`
}

// AdjustStockRequest represents a stock count correction
type AdjustStockRequest struct {
	ProductID       uuid.UUID `json:"product_id" binding:"required"`
	LocationID      uuid.UUID `json:"location_id" binding:"required"`
	CountedQuantity int64     `json:"counted_quantity" binding:"min=0"`
	Reason          string    `json:"reason" binding:"required,max=255"`
}

// CreateLocationRequest represents a request to create a stock location
type CreateLocationRequest struct {
	Name        string `json:"name" binding:"required,max=80"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// MovementHistoryFilter filters the movement log listing
type MovementHistoryFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// StockLevelResponse represents a stock level in API responses
type StockLevelResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	LocationID  uuid.UUID `json:"location_id"`
	Quantity    int64     `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MovementResponse represents one movement log entry in API responses
type MovementResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	LocationID uuid.UUID `json:"location_id"`
	Type       string    `json:"type"`
	Quantity   int64     `json:"quantity"`
	Delta      int64     `json:"delta"`
	Reference  string    `json:"reference,omitempty"`
	Remarks    string    `json:"remarks,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// LocationResponse represents a stock location in API responses
type LocationResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
}

// StockCheckResponse reports whether the cached level matches the
// sum of its movement log
type StockCheckResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	LocationID  uuid.UUID `json:"location_id"`
	CachedLevel int64     `json:"cached_level"`
	MovementSum int64     `json:"movement_sum"`
	InAgreement bool      `json:"in_agreement"`
}

// ToStockLevelResponse converts a domain stock level to a response
func ToStockLevelResponse(level *inventory.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		ID:          level.ID,
		ProductID:   level.ProductID,
		ProductName: level.ProductName,
		LocationID:  level.LocationID,
		Quantity:    level.Quantity,
		UpdatedAt:   level.UpdatedAt,
	}
}

// ToStockLevelResponses converts a slice of stock levels
func ToStockLevelResponses(levels []inventory.StockLevel) []StockLevelResponse {
	responses := make([]StockLevelResponse, len(levels))
	for i := range levels {
		responses[i] = ToStockLevelResponse(&levels[i])
	}
	return responses
}

// ToMovementResponse converts a domain movement to a response
func ToMovementResponse(movement *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:         movement.ID,
		ProductID:  movement.ProductID,
		LocationID: movement.LocationID,
		Type:       movement.Type.String(),
		Quantity:   movement.Quantity,
		Delta:      movement.SignedDelta(),
		Reference:  movement.Reference,
		Remarks:    movement.Remarks,
		CreatedAt:  movement.CreatedAt,
	}
}

// ToMovementResponses converts a slice of movements
func ToMovementResponses(movements []inventory.StockMovement) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToMovementResponse(&movements[i])
	}
	return responses
}

// ToLocationResponse converts a domain location to a response
func ToLocationResponse(location *inventory.StockLocation) LocationResponse {
	return LocationResponse{
		ID:          location.ID,
		Name:        location.Name,
		Description: location.Description,
		Active:      location.Active,
	}
}
