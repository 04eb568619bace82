package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeSalesOrder = "SalesOrder"

// Event type constants
const (
	EventTypeSalesOrderCreated   = "SalesOrderCreated"
	EventTypeSalesOrderConfirmed = "SalesOrderConfirmed"
	EventTypeSalesOrderDelivered = "SalesOrderDelivered"
	EventTypeSalesOrderBilled    = "SalesOrderBilled"
	EventTypeSalesOrderCancelled = "SalesOrderCancelled"
)

// SalesOrderCreatedEvent is raised when a new sales order is created
type SalesOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID `json:"order_id"`
	OrderNumber  string    `json:"order_number"`
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
}

// NewSalesOrderCreatedEvent creates a new SalesOrderCreatedEvent
func NewSalesOrderCreatedEvent(order *SalesOrder) *SalesOrderCreatedEvent {
	return &SalesOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderCreated, AggregateTypeSalesOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
	}
}

// EventType returns the event type name
func (e *SalesOrderCreatedEvent) EventType() string {
	return EventTypeSalesOrderCreated
}

// OrderLineInfo carries line information on order events
type OrderLineInfo struct {
	LineID      uuid.UUID       `json:"line_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Price       decimal.Decimal `json:"price"`
}

func lineInfos(order *SalesOrder) []OrderLineInfo {
	lines := make([]OrderLineInfo, len(order.Lines))
	for i, line := range order.Lines {
		lines[i] = OrderLineInfo{
			LineID:      line.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Price:       line.Price,
		}
	}
	return lines
}

// SalesOrderConfirmedEvent is raised when a sales order is confirmed
type SalesOrderConfirmedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID       `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Lines        []OrderLineInfo `json:"lines"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// NewSalesOrderConfirmedEvent creates a new SalesOrderConfirmedEvent
func NewSalesOrderConfirmedEvent(order *SalesOrder) *SalesOrderConfirmedEvent {
	return &SalesOrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderConfirmed, AggregateTypeSalesOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		Lines:           lineInfos(order),
		TotalAmount:     order.TotalAmount,
	}
}

// EventType returns the event type name
func (e *SalesOrderConfirmedEvent) EventType() string {
	return EventTypeSalesOrderConfirmed
}

// SalesOrderDeliveredEvent is raised when a sales order is delivered.
// Consumers use it to deduct stock and generate the invoice.
type SalesOrderDeliveredEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID       `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Lines        []OrderLineInfo `json:"lines"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	DeliveredAt  time.Time       `json:"delivered_at"`
}

// NewSalesOrderDeliveredEvent creates a new SalesOrderDeliveredEvent
func NewSalesOrderDeliveredEvent(order *SalesOrder) *SalesOrderDeliveredEvent {
	deliveredAt := time.Now()
	if order.DeliveredAt != nil {
		deliveredAt = *order.DeliveredAt
	}

	return &SalesOrderDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderDelivered, AggregateTypeSalesOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		Lines:           lineInfos(order),
		TotalAmount:     order.TotalAmount,
		DeliveredAt:     deliveredAt,
	}
}

// EventType returns the event type name
func (e *SalesOrderDeliveredEvent) EventType() string {
	return EventTypeSalesOrderDelivered
}

// SalesOrderBilledEvent is raised when a sales order reaches its
// terminal billed state
type SalesOrderBilledEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewSalesOrderBilledEvent creates a new SalesOrderBilledEvent
func NewSalesOrderBilledEvent(order *SalesOrder) *SalesOrderBilledEvent {
	return &SalesOrderBilledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderBilled, AggregateTypeSalesOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		TotalAmount:     order.TotalAmount,
	}
}

// EventType returns the event type name
func (e *SalesOrderBilledEvent) EventType() string {
	return EventTypeSalesOrderBilled
}

// SalesOrderCancelledEvent is raised when a sales order is cancelled
type SalesOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID       `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	Lines        []OrderLineInfo `json:"lines"`
	CancelReason string          `json:"cancel_reason"`
}

// NewSalesOrderCancelledEvent creates a new SalesOrderCancelledEvent
func NewSalesOrderCancelledEvent(order *SalesOrder) *SalesOrderCancelledEvent {
	return &SalesOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderCancelled, AggregateTypeSalesOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		Lines:           lineInfos(order),
		CancelReason:    order.CancelReason,
	}
}

// EventType returns the event type name
func (e *SalesOrderCancelledEvent) EventType() string {
	return EventTypeSalesOrderCancelled
}
