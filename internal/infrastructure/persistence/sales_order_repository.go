package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/order"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// GormSalesOrderRepository implements SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

// FindByID finds a sales order by ID, lines included
func (r *GormSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.SalesOrder, error) {
	var salesOrder order.SalesOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&salesOrder, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &salesOrder, nil
}

// FindByOrderNumber finds a sales order by order number
func (r *GormSalesOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.SalesOrder, error) {
	var salesOrder order.SalesOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&salesOrder, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &salesOrder, nil
}

// FindAll finds sales orders matching the filter
func (r *GormSalesOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.SalesOrder, error) {
	var orders []order.SalesOrder
	query := r.applyFilter(r.db.WithContext(ctx).Model(&order.SalesOrder{}).Preload("Lines"), filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByCustomer finds sales orders for a customer
func (r *GormSalesOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]order.SalesOrder, error) {
	var orders []order.SalesOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&order.SalesOrder{}).Preload("Lines").
			Where("customer_id = ?", customerID),
		filter,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus finds sales orders in a given status
func (r *GormSalesOrderRepository) FindByStatus(ctx context.Context, status order.Status, filter shared.Filter) ([]order.SalesOrder, error) {
	var orders []order.SalesOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&order.SalesOrder{}).Preload("Lines").
			Where("status = ?", status),
		filter,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates a sales order with its lines
func (r *GormSalesOrderRepository) Save(ctx context.Context, salesOrder *order.SalesOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(salesOrder).Error; err != nil {
			return err
		}
		return r.saveLines(tx, salesOrder)
	})
}

// SaveWithLock saves a sales order with optimistic locking (version check)
func (r *GormSalesOrderRepository) SaveWithLock(ctx context.Context, salesOrder *order.SalesOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		if err := tx.Model(&order.SalesOrder{}).
			Where("id = ?", salesOrder.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			return err
		}

		if currentVersion != salesOrder.Version {
			return shared.NewDomainError("CONCURRENCY_CONFLICT", "The order has been modified by another transaction")
		}

		salesOrder.Version++

		result := tx.Model(&order.SalesOrder{}).
			Where("id = ? AND version = ?", salesOrder.ID, currentVersion).
			Omit("Lines").
			Updates(map[string]interface{}{
				"customer_id":   salesOrder.CustomerID,
				"customer_name": salesOrder.CustomerName,
				"total_amount":  salesOrder.TotalAmount,
				"status":        salesOrder.Status,
				"remarks":       salesOrder.Remarks,
				"confirmed_at":  salesOrder.ConfirmedAt,
				"delivered_at":  salesOrder.DeliveredAt,
				"billed_at":     salesOrder.BilledAt,
				"cancelled_at":  salesOrder.CancelledAt,
				"cancel_reason": salesOrder.CancelReason,
				"version":       salesOrder.Version,
				"updated_at":    time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENCY_CONFLICT", "The order has been modified by another transaction")
		}

		return r.saveLines(tx, salesOrder)
	})
}

// saveLines reconciles the persisted lines with the aggregate's lines:
// removed lines are deleted, the rest are upserted
func (r *GormSalesOrderRepository) saveLines(tx *gorm.DB, salesOrder *order.SalesOrder) error {
	currentLineIDs := make([]uuid.UUID, len(salesOrder.Lines))
	for i, line := range salesOrder.Lines {
		currentLineIDs[i] = line.ID
	}

	if len(currentLineIDs) > 0 {
		if err := tx.Where("order_id = ? AND id NOT IN ?", salesOrder.ID, currentLineIDs).
			Delete(&order.OrderLine{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("order_id = ?", salesOrder.ID).
			Delete(&order.OrderLine{}).Error; err != nil {
			return err
		}
	}

	for i := range salesOrder.Lines {
		if err := tx.Save(&salesOrder.Lines[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes a sales order and its lines
func (r *GormSalesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&order.OrderLine{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&order.SalesOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts sales orders matching the filter
func (r *GormSalesOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&order.SalesOrder{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts sales orders in a given status
func (r *GormSalesOrderRepository) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&order.SalesOrder{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByOrderNumber checks if an order number is already taken
func (r *GormSalesOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&order.SalesOrder{}).
		Where("order_number = ?", orderNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateOrderNumber generates the next unique order number.
// Format: SO-YYYY-NNNN (e.g., SO-2026-0042)
func (r *GormSalesOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("SO-%d-", year)

	var lastOrder order.SalesOrder
	err := r.db.WithContext(ctx).
		Model(&order.SalesOrder{}).
		Where("order_number LIKE ?", prefix+"%").
		Order("order_number DESC").
		First(&lastOrder).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastOrder.OrderNumber != "" {
		parts := strings.Split(lastOrder.OrderNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	orderNumber := fmt.Sprintf("%s%04d", prefix, nextNum)

	exists, err := r.ExistsByOrderNumber(ctx, orderNumber)
	if err != nil {
		return "", err
	}
	for i := 0; exists && i < 100; i++ {
		nextNum++
		orderNumber = fmt.Sprintf("%s%04d", prefix, nextNum)
		exists, err = r.ExistsByOrderNumber(ctx, orderNumber)
		if err != nil {
			return "", err
		}
	}

	return orderNumber, nil
}

// applyFilter applies filter options to the query
func (r *GormSalesOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, SalesOrderSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormSalesOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR customer_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		}
	}

	return query
}

// Ensure GormSalesOrderRepository implements SalesOrderRepository
var _ order.SalesOrderRepository = (*GormSalesOrderRepository)(nil)
