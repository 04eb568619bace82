package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeInvoice = "Invoice"

// Event type constants
const (
	EventTypeInvoiceGenerated       = "InvoiceGenerated"
	EventTypeInvoicePaymentRecorded = "InvoicePaymentRecorded"
	EventTypeInvoicePaid            = "InvoicePaid"
)

// InvoiceGeneratedEvent is raised when an invoice is generated for a
// delivered order
type InvoiceGeneratedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	InvoiceDate   time.Time       `json:"invoice_date"`
}

// NewInvoiceGeneratedEvent creates a new InvoiceGeneratedEvent
func NewInvoiceGeneratedEvent(invoice *Invoice) *InvoiceGeneratedEvent {
	return &InvoiceGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceGenerated, AggregateTypeInvoice, invoice.ID),
		InvoiceID:       invoice.ID,
		InvoiceNumber:   invoice.InvoiceNumber,
		OrderID:         invoice.OrderID,
		OrderNumber:     invoice.OrderNumber,
		CustomerID:      invoice.CustomerID,
		TotalAmount:     invoice.TotalAmount,
		InvoiceDate:     invoice.InvoiceDate,
	}
}

// EventType returns the event type name
func (e *InvoiceGeneratedEvent) EventType() string {
	return EventTypeInvoiceGenerated
}

// InvoicePaymentRecordedEvent is raised when a partial payment is
// applied to an invoice
type InvoicePaymentRecordedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	PaymentID     uuid.UUID       `json:"payment_id"`
	Amount        decimal.Decimal `json:"amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Balance       decimal.Decimal `json:"balance"`
}

// NewInvoicePaymentRecordedEvent creates a new InvoicePaymentRecordedEvent
func NewInvoicePaymentRecordedEvent(invoice *Invoice, record *PaymentRecord) *InvoicePaymentRecordedEvent {
	return &InvoicePaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaymentRecorded, AggregateTypeInvoice, invoice.ID),
		InvoiceID:       invoice.ID,
		InvoiceNumber:   invoice.InvoiceNumber,
		PaymentID:       record.ID,
		Amount:          record.Amount,
		AmountPaid:      invoice.AmountPaid,
		Balance:         invoice.Balance(),
	}
}

// EventType returns the event type name
func (e *InvoicePaymentRecordedEvent) EventType() string {
	return EventTypeInvoicePaymentRecorded
}

// InvoicePaidEvent is raised when the invoice reaches full settlement
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	OrderID       uuid.UUID       `json:"order_id"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(invoice *Invoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, AggregateTypeInvoice, invoice.ID),
		InvoiceID:       invoice.ID,
		InvoiceNumber:   invoice.InvoiceNumber,
		OrderID:         invoice.OrderID,
		CustomerID:      invoice.CustomerID,
		TotalAmount:     invoice.TotalAmount,
	}
}

// EventType returns the event type name
func (e *InvoicePaidEvent) EventType() string {
	return EventTypeInvoicePaid
}
