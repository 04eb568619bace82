package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/pranavkamat7/SusegadSnacks/internal/application/billing"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// BillingHandler handles invoice API endpoints
type BillingHandler struct {
	BaseHandler
	billing *billingapp.BillingService
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(billing *billingapp.BillingService) *BillingHandler {
	return &BillingHandler{billing: billing}
}

// RegisterRoutes registers invoice routes
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.List)
		invoices.POST("", h.Generate)
		invoices.GET("/outstanding", h.ListOutstanding)
		invoices.GET("/:id", h.GetByID)
		invoices.GET("/number/:invoice_number", h.GetByInvoiceNumber)
		invoices.GET("/order/:order_id", h.GetByOrderID)
		invoices.POST("/:id/payments", h.RecordPayment)
		invoices.POST("/:id/settle", h.Settle)
	}
}

// Generate generates an invoice for a delivered order
func (h *BillingHandler) Generate(c *gin.Context) {
	var req billingapp.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.billing.GenerateInvoice(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID retrieves an invoice by ID
func (h *BillingHandler) GetByID(c *gin.Context) {
	invoiceID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	resp, err := h.billing.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetByInvoiceNumber retrieves an invoice by invoice number
func (h *BillingHandler) GetByInvoiceNumber(c *gin.Context) {
	invoiceNumber := c.Param("invoice_number")
	if invoiceNumber == "" {
		h.BadRequest(c, "Invoice number is required")
		return
	}

	resp, err := h.billing.GetByInvoiceNumber(c.Request.Context(), invoiceNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetByOrderID retrieves the invoice generated for an order
func (h *BillingHandler) GetByOrderID(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "order_id")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := h.billing.GetByOrderID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List lists invoices with pagination and filters
func (h *BillingHandler) List(c *gin.Context) {
	var filter billingapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.billing.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// ListOutstanding lists open invoices with their aging bucket
func (h *BillingHandler) ListOutstanding(c *gin.Context) {
	resp, err := h.billing.ListOutstanding(c.Request.Context(), shared.DefaultFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RecordPayment records a partial or full payment against an invoice
func (h *BillingHandler) RecordPayment(c *gin.Context) {
	invoiceID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req billingapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.billing.RecordPayment(c.Request.Context(), invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Settle pays off the remaining balance of an invoice in one step
func (h *BillingHandler) Settle(c *gin.Context) {
	invoiceID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req billingapp.SettleInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.billing.Settle(c.Request.Context(), invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
