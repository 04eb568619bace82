package handler

import (
	"github.com/gin-gonic/gin"

	orderapp "github.com/pranavkamat7/SusegadSnacks/internal/application/order"
)

// OrderHandler handles sales order API endpoints
type OrderHandler struct {
	BaseHandler
	orders *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// RegisterRoutes registers sales order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.POST("", h.Create)
		orders.GET("/:id", h.GetByID)
		orders.GET("/number/:order_number", h.GetByOrderNumber)
		orders.POST("/:id/lines", h.AddLine)
		orders.PUT("/:id/lines/:line_id", h.UpdateLineQuantity)
		orders.DELETE("/:id/lines/:line_id", h.RemoveLine)
		orders.POST("/:id/confirm", h.Confirm)
		orders.POST("/:id/deliver", h.Deliver)
		orders.POST("/:id/cancel", h.Cancel)
	}
}

// Create creates a new sales order
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orders.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID retrieves a sales order by ID
func (h *OrderHandler) GetByID(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := h.orders.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetByOrderNumber retrieves a sales order by order number
func (h *OrderHandler) GetByOrderNumber(c *gin.Context) {
	orderNumber := c.Param("order_number")
	if orderNumber == "" {
		h.BadRequest(c, "Order number is required")
		return
	}

	resp, err := h.orders.GetByOrderNumber(c.Request.Context(), orderNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List lists sales orders with pagination and filters
func (h *OrderHandler) List(c *gin.Context) {
	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// AddLine adds a line to a pending order
func (h *OrderHandler) AddLine(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderapp.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orders.AddLine(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateLineQuantity changes the quantity of an order line
func (h *OrderHandler) UpdateLineQuantity(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}
	lineID, ok := parseUUIDParam(c, "line_id")
	if !ok {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	var req orderapp.UpdateLineQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orders.UpdateLineQuantity(c.Request.Context(), orderID, lineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RemoveLine removes a line from a pending order
func (h *OrderHandler) RemoveLine(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}
	lineID, ok := parseUUIDParam(c, "line_id")
	if !ok {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	resp, err := h.orders.RemoveLine(c.Request.Context(), orderID, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Confirm confirms a pending order
func (h *OrderHandler) Confirm(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := h.orders.Confirm(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Deliver marks a confirmed order delivered and deducts stock
func (h *OrderHandler) Deliver(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderapp.DeliverOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orders.Deliver(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Cancel cancels a non-terminal order; a delivered order is restocked
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderapp.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orders.Cancel(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
