package handler

import (
	"github.com/gin-gonic/gin"

	orderapp "github.com/pranavkamat7/SusegadSnacks/internal/application/order"
)

// DraftOrderHandler handles draft order API endpoints. A draft is a
// short-lived staging area for building up an order before confirmation.
type DraftOrderHandler struct {
	BaseHandler
	drafts *orderapp.DraftOrderService
}

// NewDraftOrderHandler creates a new DraftOrderHandler
func NewDraftOrderHandler(drafts *orderapp.DraftOrderService) *DraftOrderHandler {
	return &DraftOrderHandler{drafts: drafts}
}

// RegisterRoutes registers draft order routes
func (h *DraftOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	drafts := rg.Group("/order-drafts")
	{
		drafts.POST("", h.Open)
		drafts.GET("/:id", h.Get)
		drafts.PUT("/:id/customer", h.SelectCustomer)
		drafts.PUT("/:id/lines", h.SetLine)
		drafts.POST("/:id/confirm", h.Confirm)
		drafts.DELETE("/:id", h.Discard)
	}
}

// Open opens a new empty draft
func (h *DraftOrderHandler) Open(c *gin.Context) {
	resp, err := h.drafts.Open(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get retrieves a draft by ID
func (h *DraftOrderHandler) Get(c *gin.Context) {
	draftID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid draft ID format")
		return
	}

	resp, err := h.drafts.Get(c.Request.Context(), draftID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SelectCustomer sets the customer on a draft
func (h *DraftOrderHandler) SelectCustomer(c *gin.Context) {
	draftID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid draft ID format")
		return
	}

	var req orderapp.SelectDraftCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.drafts.SelectCustomer(c.Request.Context(), draftID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetLine stages a product quantity on a draft. Quantity zero removes
// the product from the draft.
func (h *DraftOrderHandler) SetLine(c *gin.Context) {
	draftID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid draft ID format")
		return
	}

	var req orderapp.SetDraftLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.drafts.SetLine(c.Request.Context(), draftID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Confirm materializes a draft into a sales order
func (h *DraftOrderHandler) Confirm(c *gin.Context) {
	draftID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid draft ID format")
		return
	}

	resp, err := h.drafts.Confirm(c.Request.Context(), draftID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Discard discards an open draft
func (h *DraftOrderHandler) Discard(c *gin.Context) {
	draftID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid draft ID format")
		return
	}

	if err := h.drafts.Discard(c.Request.Context(), draftID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
