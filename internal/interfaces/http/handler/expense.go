package handler

import (
	"github.com/gin-gonic/gin"

	expenseapp "github.com/pranavkamat7/SusegadSnacks/internal/application/expense"
)

// ExpenseHandler handles shared expense API endpoints
type ExpenseHandler struct {
	BaseHandler
	expenses *expenseapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenses *expenseapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// RegisterRoutes registers expense routes
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.GET("", h.List)
		expenses.POST("", h.Create)
		expenses.GET("/:id", h.GetByID)
		expenses.DELETE("/:id", h.Delete)
		expenses.POST("/:id/splits", h.AddSplit)
		expenses.PUT("/:id/splits", h.ReplaceSplits)
		expenses.POST("/:id/divide", h.DivideEqually)
		expenses.POST("/:id/splits/:split_id/settle", h.SettleSplit)
		expenses.DELETE("/:id/splits/:split_id", h.RemoveSplit)
	}
}

// Create records an expense, optionally with splits
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req expenseapp.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.expenses.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID retrieves an expense by ID
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	expenseID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	resp, err := h.expenses.GetByID(c.Request.Context(), expenseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List lists expenses with pagination and filters
func (h *ExpenseHandler) List(c *gin.Context) {
	var filter expenseapp.ExpenseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.expenses.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Delete deletes an expense with no settled splits
func (h *ExpenseHandler) Delete(c *gin.Context) {
	expenseID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	if err := h.expenses.Delete(c.Request.Context(), expenseID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddSplit adds a participant's share to an expense
func (h *ExpenseHandler) AddSplit(c *gin.Context) {
	expenseID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	var req expenseapp.AddSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.expenses.AddSplit(c.Request.Context(), expenseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ReplaceSplits swaps the full split set for the provided shares
func (h *ExpenseHandler) ReplaceSplits(c *gin.Context) {
	expenseID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	var req expenseapp.ReplaceSplitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.expenses.ReplaceSplits(c.Request.Context(), expenseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DivideEqually replaces the splits with an equal division across
// participants; the rounding remainder stays unassigned
func (h *ExpenseHandler) DivideEqually(c *gin.Context) {
	expenseID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	var req expenseapp.DivideEquallyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.expenses.DivideEqually(c.Request.Context(), expenseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SettleSplit marks a participant's share as settled
func (h *ExpenseHandler) SettleSplit(c *gin.Context) {
	expenseID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}
	splitID, ok := parseUUIDParam(c, "split_id")
	if !ok {
		h.BadRequest(c, "Invalid split ID format")
		return
	}

	resp, err := h.expenses.SettleSplit(c.Request.Context(), expenseID, splitID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RemoveSplit removes an unsettled split from an expense
func (h *ExpenseHandler) RemoveSplit(c *gin.Context) {
	expenseID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}
	splitID, ok := parseUUIDParam(c, "split_id")
	if !ok {
		h.BadRequest(c, "Invalid split ID format")
		return
	}

	resp, err := h.expenses.RemoveSplit(c.Request.Context(), expenseID, splitID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
