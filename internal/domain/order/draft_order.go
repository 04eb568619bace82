package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared/valueobject"
)

// DraftTTL is how long an unconfirmed draft stays usable
const DraftTTL = 30 * time.Minute

// DraftStatus represents the lifecycle state of a draft order
type DraftStatus string

const (
	DraftStatusOpen      DraftStatus = "OPEN"
	DraftStatusConfirmed DraftStatus = "CONFIRMED"
	DraftStatusDiscarded DraftStatus = "DISCARDED"
)

// DraftLine is a staged line selection inside a draft
type DraftLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DraftID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(100);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (DraftLine) TableName() string {
	return "draft_order_lines"
}

// DraftOrder is short-lived order-entry state. It carries its own
// identity and expiry instead of living in a web session, and it
// materializes a SalesOrder exactly once on Confirm.
type DraftOrder struct {
	shared.BaseAggregateRoot
	CustomerID   *uuid.UUID  `gorm:"type:uuid;index"`
	CustomerName string      `gorm:"type:varchar(120)"`
	Lines        []DraftLine `gorm:"foreignKey:DraftID;references:ID"`
	Status       DraftStatus `gorm:"type:varchar(16);not null;default:'OPEN'"`
	ExpiresAt    time.Time   `gorm:"not null;index"`
	OrderID      *uuid.UUID  `gorm:"type:uuid"` // set once confirmed
}

// TableName returns the table name for GORM
func (DraftOrder) TableName() string {
	return "draft_orders"
}

// NewDraftOrder creates an empty open draft with a fresh expiry window
func NewDraftOrder() *DraftOrder {
	return &DraftOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Lines:             make([]DraftLine, 0),
		Status:            DraftStatusOpen,
		ExpiresAt:         time.Now().Add(DraftTTL),
	}
}

// IsExpired reports whether the draft's entry window has passed
func (d *DraftOrder) IsExpired() bool {
	return time.Now().After(d.ExpiresAt)
}

func (d *DraftOrder) ensureOpen() error {
	if d.Status != DraftStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Draft is no longer open")
	}
	if d.IsExpired() {
		return shared.NewDomainError("INVALID_STATE", "Draft has expired")
	}
	return nil
}

// SelectCustomer sets the customer for the draft. May be called again
// to change the selection while the draft is open.
func (d *DraftOrder) SelectCustomer(customerID uuid.UUID, customerName string) error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	if customerID == uuid.Nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	d.CustomerID = &customerID
	d.CustomerName = customerName
	d.UpdatedAt = time.Now()
	return nil
}

// SetLine stages a product selection. A zero quantity removes the
// product from the draft; a positive quantity adds or replaces it.
func (d *DraftOrder) SetLine(productID uuid.UUID, productName string, quantity valueobject.Quantity, unitPrice valueobject.Money) error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()

	for idx := range d.Lines {
		if d.Lines[idx].ProductID == productID {
			if quantity.IsZero() {
				d.Lines = append(d.Lines[:idx], d.Lines[idx+1:]...)
			} else {
				d.Lines[idx].Quantity = quantity.Int64()
				d.Lines[idx].UnitPrice = unitPrice.Amount()
				d.Lines[idx].UpdatedAt = now
			}
			d.UpdatedAt = now
			return nil
		}
	}

	if quantity.IsZero() {
		return nil
	}

	d.Lines = append(d.Lines, DraftLine{
		ID:          uuid.New(),
		DraftID:     d.ID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity.Int64(),
		UnitPrice:   unitPrice.Amount(),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	d.UpdatedAt = now
	return nil
}

// EstimatedTotal sums the staged line amounts
func (d *DraftOrder) EstimatedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range d.Lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return total
}

// Confirm materializes a pending SalesOrder from the draft and closes
// the draft. Requires a selected customer and at least one line.
func (d *DraftOrder) Confirm(orderNumber string) (*SalesOrder, error) {
	if err := d.ensureOpen(); err != nil {
		return nil, err
	}
	if d.CustomerID == nil {
		return nil, shared.NewDomainError("NO_CUSTOMER", "Draft has no customer selected")
	}
	if len(d.Lines) == 0 {
		return nil, shared.NewDomainError("NO_LINES", "Draft has no lines")
	}

	salesOrder, err := NewSalesOrder(orderNumber, *d.CustomerID, d.CustomerName)
	if err != nil {
		return nil, err
	}

	for _, line := range d.Lines {
		qty, err := valueobject.NewQuantity(line.Quantity)
		if err != nil {
			return nil, err
		}
		if _, err := salesOrder.AddLine(line.ProductID, line.ProductName, qty, valueobject.NewMoneyINR(line.UnitPrice)); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	d.Status = DraftStatusConfirmed
	d.OrderID = &salesOrder.ID
	d.UpdatedAt = now

	return salesOrder, nil
}

// Discard abandons an open draft
func (d *DraftOrder) Discard() error {
	if d.Status != DraftStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Draft is no longer open")
	}
	d.Status = DraftStatusDiscarded
	d.UpdatedAt = time.Now()
	return nil
}
