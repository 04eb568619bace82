package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/order"
)

// ==================== Sales Order DTOs ====================

// CreateOrderRequest represents a request to create a sales order
type CreateOrderRequest struct {
	CustomerID uuid.UUID              `json:"customer_id" binding:"required"`
	Lines      []CreateOrderLineInput `json:"lines"`
	Remarks    string                 `json:"remarks"`
}

// CreateOrderLineInput represents a line in the create order request
type CreateOrderLineInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// AddLineRequest represents a request to add a line to an order
type AddLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// UpdateLineQuantityRequest represents a request to change a line quantity
type UpdateLineQuantityRequest struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

// CancelOrderRequest represents a request to cancel an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=255"`
}

// DeliverOrderRequest represents a request to deliver an order.
// Delivery deducts stock at the given location.
type DeliverOrderRequest struct {
	LocationID uuid.UUID `json:"location_id" binding:"required"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Search     string        `form:"search"`
	CustomerID *uuid.UUID    `form:"customer_id"`
	Status     *order.Status `form:"status"`
	StartDate  *time.Time    `form:"start_date"`
	EndDate    *time.Time    `form:"end_date"`
	Page       int           `form:"page" binding:"omitempty,min=1"`
	PageSize   int           `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string        `form:"order_by"`
	OrderDir   string        `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderLineResponse represents an order line in API responses
type OrderLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Price       decimal.Decimal `json:"price"`
}

// OrderResponse represents a sales order in API responses
type OrderResponse struct {
	ID                 uuid.UUID           `json:"id"`
	OrderNumber        string              `json:"order_number"`
	CustomerID         uuid.UUID           `json:"customer_id"`
	CustomerName       string              `json:"customer_name"`
	Status             order.Status        `json:"status"`
	Lines              []OrderLineResponse `json:"lines"`
	TotalAmount        decimal.Decimal     `json:"total_amount"`
	Remarks            string              `json:"remarks,omitempty"`
	ConfirmedAt        *time.Time          `json:"confirmed_at,omitempty"`
	DeliveredAt        *time.Time          `json:"delivered_at,omitempty"`
	DeliveryLocationID *uuid.UUID          `json:"delivery_location_id,omitempty"`
	BilledAt           *time.Time          `json:"billed_at,omitempty"`
	CancelledAt        *time.Time          `json:"cancelled_at,omitempty"`
	CancelReason       string              `json:"cancel_reason,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	Version            int                 `json:"version"`
}

// OrderListItemResponse represents a sales order in list responses
type OrderListItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	OrderNumber  string          `json:"order_number"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Status       order.Status    `json:"status"`
	LineCount    int             `json:"line_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToOrderLineResponse converts a domain order line to a response
func ToOrderLineResponse(line *order.OrderLine) OrderLineResponse {
	return OrderLineResponse{
		ID:          line.ID,
		ProductID:   line.ProductID,
		ProductName: line.ProductName,
		Quantity:    line.Quantity,
		UnitPrice:   line.UnitPrice,
		Price:       line.Price,
	}
}

// ToOrderResponse converts a domain sales order to a response
func ToOrderResponse(o *order.SalesOrder) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i := range o.Lines {
		lines[i] = ToOrderLineResponse(&o.Lines[i])
	}

	return OrderResponse{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		CustomerID:         o.CustomerID,
		CustomerName:       o.CustomerName,
		Status:             o.Status,
		Lines:              lines,
		TotalAmount:        o.TotalAmount,
		Remarks:            o.Remarks,
		ConfirmedAt:        o.ConfirmedAt,
		DeliveredAt:        o.DeliveredAt,
		DeliveryLocationID: o.DeliveryLocationID,
		BilledAt:           o.BilledAt,
		CancelledAt:        o.CancelledAt,
		CancelReason:       o.CancelReason,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
		Version:            o.GetVersion(),
	}
}

// ToOrderListItemResponses converts domain sales orders to list responses
func ToOrderListItemResponses(orders []order.SalesOrder) []OrderListItemResponse {
	responses := make([]OrderListItemResponse, len(orders))
	for i := range orders {
		responses[i] = OrderListItemResponse{
			ID:           orders[i].ID,
			OrderNumber:  orders[i].OrderNumber,
			CustomerID:   orders[i].CustomerID,
			CustomerName: orders[i].CustomerName,
			Status:       orders[i].Status,
			LineCount:    len(orders[i].Lines),
			TotalAmount:  orders[i].TotalAmount,
			CreatedAt:    orders[i].CreatedAt,
		}
	}
	return responses
}

// ==================== Draft Order DTOs ====================

// SelectDraftCustomerRequest sets the customer on a draft
type SelectDraftCustomerRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
}

// SetDraftLineRequest stages a product quantity on a draft.
// Quantity zero removes the product.
type SetDraftLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"min=0"`
}

// DraftLineResponse represents a staged line in API responses
type DraftLineResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// DraftResponse represents a draft order in API responses
type DraftResponse struct {
	ID             uuid.UUID           `json:"id"`
	CustomerID     *uuid.UUID          `json:"customer_id,omitempty"`
	CustomerName   string              `json:"customer_name,omitempty"`
	Status         order.DraftStatus   `json:"status"`
	Lines          []DraftLineResponse `json:"lines"`
	EstimatedTotal decimal.Decimal     `json:"estimated_total"`
	ExpiresAt      time.Time           `json:"expires_at"`
	OrderID        *uuid.UUID          `json:"order_id,omitempty"`
}

// ToDraftResponse converts a domain draft order to a response
func ToDraftResponse(d *order.DraftOrder) DraftResponse {
	lines := make([]DraftLineResponse, len(d.Lines))
	for i, line := range d.Lines {
		lines[i] = DraftLineResponse{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		}
	}

	return DraftResponse{
		ID:             d.ID,
		CustomerID:     d.CustomerID,
		CustomerName:   d.CustomerName,
		Status:         d.Status,
		Lines:          lines,
		EstimatedTotal: d.EstimatedTotal(),
		ExpiresAt:      d.ExpiresAt,
		OrderID:        d.OrderID,
	}
}
