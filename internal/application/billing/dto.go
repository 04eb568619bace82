package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/billing"
)

// GenerateInvoiceRequest represents a request to invoice a delivered order
type GenerateInvoiceRequest struct {
	OrderID uuid.UUID  `json:"order_id" binding:"required"`
	DueDate *time.Time `json:"due_date" binding:"omitempty"`
	Remarks string     `json:"remarks" binding:"omitempty,max=500"`
}

// RecordPaymentRequest represents a payment against an invoice
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required,max=40"`
	Reference string          `json:"reference" binding:"omitempty,max=120"`
	Remark    string          `json:"remark" binding:"omitempty,max=255"`
}

// SettleInvoiceRequest represents a request to pay off the full balance
type SettleInvoiceRequest struct {
	Method    string `json:"method" binding:"required,max=40"`
	Reference string `json:"reference" binding:"omitempty,max=120"`
	Remark    string `json:"remark" binding:"omitempty,max=255"`
}

// InvoiceListFilter filters invoice listings
type InvoiceListFilter struct {
	CustomerID    *uuid.UUID `form:"customer_id"`
	PaymentStatus string     `form:"payment_status" binding:"omitempty,oneof=UNPAID PARTIAL PAID"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// PaymentResponse represents one payment record in API responses
type PaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	Remark    string          `json:"remark,omitempty"`
	AppliedAt time.Time       `json:"applied_at"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            uuid.UUID         `json:"id"`
	InvoiceNumber string            `json:"invoice_number"`
	OrderID       uuid.UUID         `json:"order_id"`
	OrderNumber   string            `json:"order_number"`
	CustomerID    uuid.UUID         `json:"customer_id"`
	CustomerName  string            `json:"customer_name"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	AmountPaid    decimal.Decimal   `json:"amount_paid"`
	Balance       decimal.Decimal   `json:"balance"`
	PaymentStatus string            `json:"payment_status"`
	Payments      []PaymentResponse `json:"payments"`
	InvoiceDate   time.Time         `json:"invoice_date"`
	DueDate       *time.Time        `json:"due_date,omitempty"`
	PaidAt        *time.Time        `json:"paid_at,omitempty"`
	Remarks       string            `json:"remarks,omitempty"`
}

// InvoiceListItemResponse is the compact invoice shape for listings
type InvoiceListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	OrderNumber   string          `json:"order_number"`
	CustomerName  string          `json:"customer_name"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Balance       decimal.Decimal `json:"balance"`
	PaymentStatus string          `json:"payment_status"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
}

// AgingLineResponse is one invoice placed in an aging bucket
type AgingLineResponse struct {
	InvoiceNumber   string          `json:"invoice_number"`
	CustomerName    string          `json:"customer_name"`
	Balance         decimal.Decimal `json:"balance"`
	DaysOutstanding int             `json:"days_outstanding"`
	Bucket          string          `json:"bucket"`
}

// ToInvoiceResponse converts a domain invoice to a response
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	payments := make([]PaymentResponse, len(inv.Payments))
	for i, p := range inv.Payments {
		payments[i] = PaymentResponse{
			ID:        p.ID,
			Amount:    p.Amount,
			Method:    p.Method,
			Reference: p.Reference,
			Remark:    p.Remark,
			AppliedAt: p.AppliedAt,
		}
	}

	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		OrderID:       inv.OrderID,
		OrderNumber:   inv.OrderNumber,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		TotalAmount:   inv.TotalAmount,
		AmountPaid:    inv.AmountPaid,
		Balance:       inv.Balance(),
		PaymentStatus: inv.PaymentStatus.String(),
		Payments:      payments,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		PaidAt:        inv.PaidAt,
		Remarks:       inv.Remarks,
	}
}

// ToInvoiceListItemResponses converts a slice of invoices for listings
func ToInvoiceListItemResponses(invoices []billing.Invoice) []InvoiceListItemResponse {
	responses := make([]InvoiceListItemResponse, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		responses[i] = InvoiceListItemResponse{
			ID:            inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			OrderNumber:   inv.OrderNumber,
			CustomerName:  inv.CustomerName,
			TotalAmount:   inv.TotalAmount,
			Balance:       inv.Balance(),
			PaymentStatus: inv.PaymentStatus.String(),
			InvoiceDate:   inv.InvoiceDate,
			DueDate:       inv.DueDate,
		}
	}
	return responses
}
