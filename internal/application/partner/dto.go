package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/partner"
)

// CreateCustomerTypeRequest represents a request to create a customer type
type CreateCustomerTypeRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name   string    `json:"name" binding:"required,max=120"`
	Phone  string    `json:"phone" binding:"required,max=20"`
	Email  string    `json:"email" binding:"omitempty,email"`
	TypeID uuid.UUID `json:"type_id" binding:"required"`
}

// UpdateCustomerContactRequest represents a contact details change
type UpdateCustomerContactRequest struct {
	Phone string `json:"phone" binding:"required,max=20"`
	Email string `json:"email" binding:"omitempty,email"`
}

// CustomerListFilter represents filter options for the customer list
type CustomerListFilter struct {
	Search   string     `form:"search"`
	TypeID   *uuid.UUID `form:"type_id"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CustomerTypeResponse represents a customer type in API responses
type CustomerTypeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	TypeID    uuid.UUID `json:"type_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCustomerTypeResponse converts a domain customer type to a response
func ToCustomerTypeResponse(t *partner.CustomerType) CustomerTypeResponse {
	return CustomerTypeResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
	}
}

// ToCustomerResponse converts a domain customer to a response
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		TypeID:    c.TypeID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCustomerResponses converts domain customers to responses
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}
