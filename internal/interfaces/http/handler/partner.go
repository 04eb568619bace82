package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/pranavkamat7/SusegadSnacks/internal/application/partner"
)

// PartnerHandler handles customer and customer type API endpoints
type PartnerHandler struct {
	BaseHandler
	partners *partnerapp.PartnerService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(partners *partnerapp.PartnerService) *PartnerHandler {
	return &PartnerHandler{partners: partners}
}

// RegisterRoutes registers partner routes
func (h *PartnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	types := rg.Group("/customer-types")
	{
		types.GET("", h.ListCustomerTypes)
		types.POST("", h.CreateCustomerType)
	}

	customers := rg.Group("/customers")
	{
		customers.GET("", h.ListCustomers)
		customers.POST("", h.CreateCustomer)
		customers.GET("/:id", h.GetCustomer)
		customers.PUT("/:id/contact", h.UpdateCustomerContact)
	}
}

// CreateCustomerType creates a customer type
func (h *PartnerHandler) CreateCustomerType(c *gin.Context) {
	var req partnerapp.CreateCustomerTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.partners.CreateCustomerType(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListCustomerTypes lists all customer types
func (h *PartnerHandler) ListCustomerTypes(c *gin.Context) {
	resp, err := h.partners.ListCustomerTypes(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CreateCustomer creates a customer
func (h *PartnerHandler) CreateCustomer(c *gin.Context) {
	var req partnerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.partners.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetCustomer retrieves a customer by ID
func (h *PartnerHandler) GetCustomer(c *gin.Context) {
	customerID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	resp, err := h.partners.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListCustomers lists customers with pagination and filters
func (h *PartnerHandler) ListCustomers(c *gin.Context) {
	var filter partnerapp.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.partners.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateCustomerContact updates a customer's phone and email
func (h *PartnerHandler) UpdateCustomerContact(c *gin.Context) {
	customerID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req partnerapp.UpdateCustomerContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.partners.UpdateCustomerContact(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
