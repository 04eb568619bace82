package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	invapp "github.com/pranavkamat7/SusegadSnacks/internal/application/inventory"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// InventoryHandler handles stock level and movement API endpoints
type InventoryHandler struct {
	BaseHandler
	inventory *invapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventory *invapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inv := rg.Group("/inventory")
	{
		inv.POST("/receipts", h.AddStock)
		inv.POST("/issues", h.RemoveStock)
		inv.POST("/adjustments", h.Adjust)
		inv.GET("/levels", h.ListLevels)
		inv.GET("/levels/:product_id/:location_id", h.GetLevel)
		inv.GET("/levels/:product_id/:location_id/check", h.CheckLevel)
		inv.GET("/movements", h.MovementHistory)
		inv.GET("/locations", h.ListLocations)
		inv.POST("/locations", h.CreateLocation)
	}
}

// AddStock records an inbound stock movement
func (h *InventoryHandler) AddStock(c *gin.Context) {
	var req invapp.AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.inventory.AddStock(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RemoveStock records an outbound stock movement
func (h *InventoryHandler) RemoveStock(c *gin.Context) {
	var req invapp.RemoveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.inventory.RemoveStock(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Adjust reconciles a stock level against a physical count
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req invapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.inventory.Adjust(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// listLevelsQuery holds the query parameters for the level list
type listLevelsQuery struct {
	Search     string `form:"search"`
	ProductID  string `form:"product_id" binding:"omitempty,uuid"`
	LocationID string `form:"location_id" binding:"omitempty,uuid"`
	InStock    *bool  `form:"in_stock"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ListLevels lists stock levels with pagination and filters
func (h *InventoryHandler) ListLevels(c *gin.Context) {
	var q listLevelsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
		Search:   q.Search,
		Filters:  map[string]interface{}{},
	}
	if q.ProductID != "" {
		filter.Filters["product_id"] = uuid.MustParse(q.ProductID)
	}
	if q.LocationID != "" {
		filter.Filters["location_id"] = uuid.MustParse(q.LocationID)
	}
	if q.InStock != nil {
		filter.Filters["in_stock"] = *q.InStock
	}

	items, total, err := h.inventory.ListLevels(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// GetLevel retrieves the stock level for a product at a location
func (h *InventoryHandler) GetLevel(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "product_id")
	if !ok {
		h.BadRequest(c, "Invalid product ID format")
		return
	}
	locationID, ok := parseUUIDParam(c, "location_id")
	if !ok {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	resp, err := h.inventory.GetLevel(c.Request.Context(), productID, locationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CheckLevel compares the cached stock level against its movement log
func (h *InventoryHandler) CheckLevel(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "product_id")
	if !ok {
		h.BadRequest(c, "Invalid product ID format")
		return
	}
	locationID, ok := parseUUIDParam(c, "location_id")
	if !ok {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	resp, err := h.inventory.CheckLevel(c.Request.Context(), productID, locationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// movementHistoryQuery holds the query parameters for the movement log
type movementHistoryQuery struct {
	ProductID  string `form:"product_id" binding:"required,uuid"`
	LocationID string `form:"location_id" binding:"required,uuid"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// MovementHistory lists the movement log for a product-location pair
func (h *InventoryHandler) MovementHistory(c *gin.Context) {
	var q movementHistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.inventory.MovementHistory(c.Request.Context(),
		uuid.MustParse(q.ProductID), uuid.MustParse(q.LocationID),
		invapp.MovementHistoryFilter{Page: q.Page, PageSize: q.PageSize})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CreateLocation creates a stock location
func (h *InventoryHandler) CreateLocation(c *gin.Context) {
	var req invapp.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.inventory.CreateLocation(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListLocations lists active stock locations
func (h *InventoryHandler) ListLocations(c *gin.Context) {
	resp, err := h.inventory.ListLocations(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
