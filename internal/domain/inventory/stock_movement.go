package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// MovementType classifies a stock movement
type MovementType string

const (
	MovementTypeIn         MovementType = "in"         // stock received
	MovementTypeOut        MovementType = "out"        // stock removed for delivery
	MovementTypeAdjustment MovementType = "adjustment" // count correction, signed
)

// IsValid checks if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment:
		return true
	}
	return false
}

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// StockMovement is one append-only entry in the movement log. Movements
// are never updated or deleted; the stock level is their running sum.
type StockMovement struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID    `gorm:"type:uuid;not null;index:idx_stock_movements_product_location"`
	LocationID uuid.UUID    `gorm:"type:uuid;not null;index:idx_stock_movements_product_location"`
	Type       MovementType `gorm:"type:varchar(16);not null"`
	Quantity   int64        `gorm:"not null"` // magnitude for in/out, signed for adjustment
	Reference  string       `gorm:"type:varchar(120)"`
	Remarks    string       `gorm:"type:varchar(255)"`
	CreatedAt  time.Time    `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

func newStockMovement(productID, locationID uuid.UUID, movementType MovementType, quantity int64, reference, remarks string) (*StockMovement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Unknown movement type")
	}

	return &StockMovement{
		ID:         uuid.New(),
		ProductID:  productID,
		LocationID: locationID,
		Type:       movementType,
		Quantity:   quantity,
		Reference:  reference,
		Remarks:    remarks,
		CreatedAt:  time.Now(),
	}, nil
}

// SignedDelta returns the movement's effect on the stock level:
// positive for in, negative for out, as-recorded for adjustments
func (m *StockMovement) SignedDelta() int64 {
	switch m.Type {
	case MovementTypeIn:
		return m.Quantity
	case MovementTypeOut:
		return -m.Quantity
	default:
		return m.Quantity
	}
}
