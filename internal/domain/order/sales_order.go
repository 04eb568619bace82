package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared/valueobject"
)

// Status represents the lifecycle state of a sales order
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusDelivered Status = "DELIVERED"
	StatusBilled    Status = "BILLED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDelivered, StatusBilled, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if no further transitions are possible
func (s Status) IsTerminal() bool {
	return s == StatusBilled || s == StatusCancelled
}

// IsEditable returns true if order lines may still be changed
func (s Status) IsEditable() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransitionTo checks if the status can transition to the target status.
// The path is linear (pending → confirmed → delivered → billed) with
// cancellation reachable from any non-terminal state.
func (s Status) CanTransitionTo(target Status) bool {
	if target == StatusCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case StatusPending:
		return target == StatusConfirmed
	case StatusConfirmed:
		return target == StatusDelivered
	case StatusDelivered:
		return target == StatusBilled
	}
	return false
}

// OrderLine represents a line item in a sales order.
// Price is the unit price captured at line creation times the quantity;
// it is never recomputed from the product's current price.
type OrderLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(100);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(8,2);not null"` // UnitPrice * Quantity
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// NewOrderLine creates a new order line with the price captured from the unit price
func NewOrderLine(orderID, productID uuid.UUID, productName string, quantity valueobject.Quantity, unitPrice valueobject.Money) (*OrderLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &OrderLine{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity.Int64(),
		UnitPrice:   unitPrice.Amount(),
		Price:       unitPrice.MultiplyByInt(quantity.Int64()).Amount(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateQuantity updates the line quantity and recalculates the line price
// from the captured unit price
func (l *OrderLine) UpdateQuantity(quantity valueobject.Quantity) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	l.Quantity = quantity.Int64()
	l.Price = l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
	l.UpdatedAt = time.Now()
	return nil
}

// GetPriceMoney returns the line price as Money
func (l *OrderLine) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyINR(l.Price)
}

// SalesOrder represents a sales order aggregate root.
// TotalAmount is recomputed and written on every line mutation so the
// cached total can never diverge from the line set.
type SalesOrder struct {
	shared.BaseAggregateRoot
	OrderNumber  string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName string          `gorm:"type:varchar(120);not null"`
	Lines        []OrderLine     `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Status       Status          `gorm:"type:varchar(16);not null;default:'PENDING'"`
	Remarks      string          `gorm:"type:text"`
	// DeliveryLocationID records which stock location the order was
	// delivered from, so a later cancellation can return stock there.
	DeliveryLocationID *uuid.UUID `gorm:"type:uuid"`
	ConfirmedAt        *time.Time
	DeliveredAt        *time.Time
	BilledAt           *time.Time
	CancelledAt        *time.Time
	CancelReason       string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// NewSalesOrder creates a new sales order in PENDING status
func NewSalesOrder(orderNumber string, customerID uuid.UUID, customerName string) (*SalesOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	order := &SalesOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Lines:             make([]OrderLine, 0),
		TotalAmount:       decimal.Zero,
		Status:            StatusPending,
	}

	order.AddDomainEvent(NewSalesOrderCreatedEvent(order))

	return order, nil
}

// AddLine adds a new line to the order.
// Only allowed while the order is editable (pending/confirmed).
func (o *SalesOrder) AddLine(productID uuid.UUID, productName string, quantity valueobject.Quantity, unitPrice valueobject.Money) (*OrderLine, error) {
	if !o.Status.IsEditable() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot add lines to a %s order", o.Status))
	}

	for _, line := range o.Lines {
		if line.ProductID == productID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already exists in order, update quantity instead")
		}
	}

	line, err := NewOrderLine(o.ID, productID, productName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Lines = append(o.Lines, *line)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()

	return line, nil
}

// UpdateLineQuantity updates the quantity of an existing line and
// recomputes the order total in the same mutation
func (o *SalesOrder) UpdateLineQuantity(lineID uuid.UUID, quantity valueobject.Quantity) error {
	if !o.Status.IsEditable() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit lines of a %s order", o.Status))
	}

	for idx := range o.Lines {
		if o.Lines[idx].ID == lineID {
			if err := o.Lines[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			o.recalculateTotal()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Order line not found")
}

// RemoveLine removes a line from the order, subtracting it from the
// total atomically with the removal
func (o *SalesOrder) RemoveLine(lineID uuid.UUID) error {
	if !o.Status.IsEditable() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot remove lines from a %s order", o.Status))
	}

	for idx, line := range o.Lines {
		if line.ID == lineID {
			o.Lines = append(o.Lines[:idx], o.Lines[idx+1:]...)
			o.recalculateTotal()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Order line not found")
}

// recalculateTotal keeps TotalAmount equal to the sum of line prices
func (o *SalesOrder) recalculateTotal() {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Price)
	}
	o.TotalAmount = total
}

// SetRemarks sets the order remarks
func (o *SalesOrder) SetRemarks(remarks string) {
	o.Remarks = remarks
	o.UpdatedAt = time.Now()
}

// Confirm transitions the order from PENDING to CONFIRMED.
// Requires at least one line.
func (o *SalesOrder) Confirm() error {
	if !o.Status.CanTransitionTo(StatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm order in %s status", o.Status))
	}
	if len(o.Lines) == 0 {
		return shared.NewDomainError("NO_LINES", "Cannot confirm order without lines")
	}

	now := time.Now()
	o.Status = StatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewSalesOrderConfirmedEvent(o))

	return nil
}

// Deliver marks the order as delivered from the given stock location.
// This is the trigger point at which the caller may request invoice
// generation and stock decrement; neither happens as an internal side
// effect here.
func (o *SalesOrder) Deliver(locationID uuid.UUID) error {
	if !o.Status.CanTransitionTo(StatusDelivered) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deliver order in %s status", o.Status))
	}
	if locationID == uuid.Nil {
		return shared.NewDomainError("INVALID_LOCATION", "Delivery location is required")
	}

	now := time.Now()
	o.Status = StatusDelivered
	o.DeliveryLocationID = &locationID
	o.DeliveredAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewSalesOrderDeliveredEvent(o))

	return nil
}

// Bill marks the order as billed, the terminal success state
func (o *SalesOrder) Bill() error {
	if !o.Status.CanTransitionTo(StatusBilled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot bill order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = StatusBilled
	o.BilledAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewSalesOrderBilledEvent(o))

	return nil
}

// Cancel cancels the order from any non-terminal state
func (o *SalesOrder) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(StatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	o.Status = StatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now

	o.AddDomainEvent(NewSalesOrderCancelledEvent(o))

	return nil
}

// GetTotalAmountMoney returns the order total as Money
func (o *SalesOrder) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(o.TotalAmount)
}

// FindLine returns the line with the given ID, or nil
func (o *SalesOrder) FindLine(lineID uuid.UUID) *OrderLine {
	for idx := range o.Lines {
		if o.Lines[idx].ID == lineID {
			return &o.Lines[idx]
		}
	}
	return nil
}
