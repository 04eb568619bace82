package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/partner"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var customer partner.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByIDs finds multiple customers by their IDs
func (r *GormCustomerRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]partner.Customer, error) {
	if len(ids) == 0 {
		return []partner.Customer{}, nil
	}

	var customers []partner.Customer
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// FindByType finds customers of a given type
func (r *GormCustomerRepository) FindByType(ctx context.Context, typeID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	var customers []partner.Customer
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&partner.Customer{}).
			Where("type_id = ?", typeID),
		filter,
	)

	if err := query.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// FindAll finds customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	var customers []partner.Customer
	query := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Customer{}), filter)

	if err := query.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// Delete deletes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&partner.Customer{})
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormCustomerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ?", searchPattern, searchPattern)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query.Order("name ASC")
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)

// GormCustomerTypeRepository implements CustomerTypeRepository using GORM
type GormCustomerTypeRepository struct {
	db *gorm.DB
}

// NewGormCustomerTypeRepository creates a new GormCustomerTypeRepository
func NewGormCustomerTypeRepository(db *gorm.DB) *GormCustomerTypeRepository {
	return &GormCustomerTypeRepository{db: db}
}

// FindByID finds a customer type by ID
func (r *GormCustomerTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.CustomerType, error) {
	var customerType partner.CustomerType
	if err := r.db.WithContext(ctx).First(&customerType, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customerType, nil
}

// FindByName finds a customer type by its unique name
func (r *GormCustomerTypeRepository) FindByName(ctx context.Context, name string) (*partner.CustomerType, error) {
	var customerType partner.CustomerType
	if err := r.db.WithContext(ctx).First(&customerType, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customerType, nil
}

// FindAll lists all customer types
func (r *GormCustomerTypeRepository) FindAll(ctx context.Context) ([]partner.CustomerType, error) {
	var types []partner.CustomerType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// Save creates or updates a customer type
func (r *GormCustomerTypeRepository) Save(ctx context.Context, customerType *partner.CustomerType) error {
	return r.db.WithContext(ctx).Save(customerType).Error
}

// Ensure GormCustomerTypeRepository implements CustomerTypeRepository
var _ partner.CustomerTypeRepository = (*GormCustomerTypeRepository)(nil)

// CustomerParticipantResolver resolves expense-split participants
// against the customer register
type CustomerParticipantResolver struct {
	customers partner.CustomerRepository
}

// NewCustomerParticipantResolver creates a new CustomerParticipantResolver
func NewCustomerParticipantResolver(customers partner.CustomerRepository) *CustomerParticipantResolver {
	return &CustomerParticipantResolver{customers: customers}
}

// Resolve looks up the participant as a customer
func (r *CustomerParticipantResolver) Resolve(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	return r.customers.FindByID(ctx, id)
}

// Ensure CustomerParticipantResolver implements ParticipantResolver
var _ partner.ParticipantResolver = (*CustomerParticipantResolver)(nil)
