package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// CustomerType categorizes customers (e.g. Retail, Wholesale, Distributor)
type CustomerType struct {
	shared.BaseEntity
	Name        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerType) TableName() string {
	return "customer_types"
}

// NewCustomerType creates a new customer type
func NewCustomerType(name, description string) (*CustomerType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_TYPE_NAME", "Customer type name cannot be empty")
	}
	return &CustomerType{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
	}, nil
}

// Customer represents a buyer that places sales orders
type Customer struct {
	shared.BaseAggregateRoot
	Name   string    `gorm:"type:varchar(120);not null"`
	Phone  string    `gorm:"type:varchar(20);not null"`
	Email  string    `gorm:"type:varchar(254)"`
	TypeID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(name, phone, email string, typeID uuid.UUID) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if len(name) > 120 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot exceed 120 characters")
	}
	if strings.TrimSpace(phone) == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Customer phone cannot be empty")
	}
	if typeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_TYPE", "Customer type cannot be empty")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		Email:             email,
		TypeID:            typeID,
	}, nil
}

// UpdateContact updates the customer's contact details
func (c *Customer) UpdateContact(phone, email string) error {
	if strings.TrimSpace(phone) == "" {
		return shared.NewDomainError("INVALID_PHONE", "Customer phone cannot be empty")
	}
	c.Phone = phone
	c.Email = email
	c.UpdatedAt = time.Now()
	return nil
}
