package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/partner"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// PartnerService handles customer and customer type management
type PartnerService struct {
	customerRepo partner.CustomerRepository
	typeRepo     partner.CustomerTypeRepository
	logger       *zap.Logger
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(customerRepo partner.CustomerRepository, typeRepo partner.CustomerTypeRepository, logger *zap.Logger) *PartnerService {
	return &PartnerService{
		customerRepo: customerRepo,
		typeRepo:     typeRepo,
		logger:       logger,
	}
}

// CreateCustomerType creates a customer type with a unique name
func (s *PartnerService) CreateCustomerType(ctx context.Context, req CreateCustomerTypeRequest) (*CustomerTypeResponse, error) {
	existing, err := s.typeRepo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A customer type with this name already exists")
	}

	customerType, err := partner.NewCustomerType(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.typeRepo.Save(ctx, customerType); err != nil {
		return nil, err
	}

	resp := ToCustomerTypeResponse(customerType)
	return &resp, nil
}

// ListCustomerTypes lists all customer types
func (s *PartnerService) ListCustomerTypes(ctx context.Context) ([]CustomerTypeResponse, error) {
	types, err := s.typeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]CustomerTypeResponse, len(types))
	for i := range types {
		responses[i] = ToCustomerTypeResponse(&types[i])
	}
	return responses, nil
}

// CreateCustomer creates a customer
func (s *PartnerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	if _, err := s.typeRepo.FindByID(ctx, req.TypeID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CUSTOMER_TYPE", "Customer type does not exist")
		}
		return nil, err
	}

	customer, err := partner.NewCustomer(req.Name, req.Phone, req.Email, req.TypeID)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("name", customer.Name))

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// GetCustomer retrieves a customer by ID
func (s *PartnerService) GetCustomer(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// ListCustomers lists customers with pagination and filters
func (s *PartnerService) ListCustomers(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	repoFilter.Search = filter.Search

	var customers []partner.Customer
	var err error
	if filter.TypeID != nil {
		customers, err = s.customerRepo.FindByType(ctx, *filter.TypeID, repoFilter)
	} else {
		customers, err = s.customerRepo.FindAll(ctx, repoFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.customerRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCustomerResponses(customers), total, nil
}

// UpdateCustomerContact updates a customer's phone and email
func (s *PartnerService) UpdateCustomerContact(ctx context.Context, customerID uuid.UUID, req UpdateCustomerContactRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := customer.UpdateContact(req.Phone, req.Email); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}
