package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/pranavkamat7/SusegadSnacks/internal/application/catalog"
)

// CatalogHandler handles brand and product API endpoints
type CatalogHandler struct {
	BaseHandler
	catalog *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	brands := rg.Group("/brands")
	{
		brands.GET("", h.ListBrands)
		brands.POST("", h.CreateBrand)
	}

	products := rg.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id/pricing", h.UpdateProductPricing)
		products.POST("/:id/deactivate", h.DeactivateProduct)
		products.POST("/:id/activate", h.ActivateProduct)
	}
}

// CreateBrand creates a brand
func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var req catalogapp.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.catalog.CreateBrand(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListBrands lists all brands
func (h *CatalogHandler) ListBrands(c *gin.Context) {
	resp, err := h.catalog.ListBrands(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CreateProduct creates a product
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.catalog.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetProduct retrieves a product by ID
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	resp, err := h.catalog.GetProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListProducts lists products with pagination and filters
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.catalog.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateProductPricing changes the MRP and margin of a product
func (h *CatalogHandler) UpdateProductPricing(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req catalogapp.UpdateProductPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.catalog.UpdateProductPricing(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeactivateProduct removes a product from new orders
func (h *CatalogHandler) DeactivateProduct(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	resp, err := h.catalog.DeactivateProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ActivateProduct makes a product orderable again
func (h *CatalogHandler) ActivateProduct(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	resp, err := h.catalog.ActivateProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
