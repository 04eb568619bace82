package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/expense"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by ID, splits included
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	var exp expense.Expense
	if err := r.db.WithContext(ctx).
		Preload("Splits").
		First(&exp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &exp, nil
}

// FindByCategory finds expenses in a category
func (r *GormExpenseRepository) FindByCategory(ctx context.Context, category expense.Category, filter shared.Filter) ([]expense.Expense, error) {
	var expenses []expense.Expense
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&expense.Expense{}).Preload("Splits").
			Where("category = ?", category),
		filter,
	)

	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// FindByParticipant finds expenses carrying a split for a participant
func (r *GormExpenseRepository) FindByParticipant(ctx context.Context, participantID uuid.UUID, filter shared.Filter) ([]expense.Expense, error) {
	var expenses []expense.Expense
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&expense.Expense{}).Preload("Splits").
			Where("id IN (?)", r.db.Model(&expense.Split{}).
				Select("expense_id").
				Where("participant_id = ?", participantID)),
		filter,
	)

	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// FindIncurredBetween finds expenses incurred within a period
func (r *GormExpenseRepository) FindIncurredBetween(ctx context.Context, from, to time.Time, filter shared.Filter) ([]expense.Expense, error) {
	var expenses []expense.Expense
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&expense.Expense{}).Preload("Splits").
			Where("incurred_at >= ? AND incurred_at < ?", from, to),
		filter,
	)

	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// FindWithOpenSplits finds expenses that still have unsettled splits
func (r *GormExpenseRepository) FindWithOpenSplits(ctx context.Context, filter shared.Filter) ([]expense.Expense, error) {
	var expenses []expense.Expense
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&expense.Expense{}).Preload("Splits").
			Where("id IN (?)", r.db.Model(&expense.Split{}).
				Select("expense_id").
				Where("settled = ?", false)),
		filter,
	)

	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// FindAll finds expenses matching the filter
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]expense.Expense, error) {
	var expenses []expense.Expense
	query := r.applyFilter(r.db.WithContext(ctx).Model(&expense.Expense{}).Preload("Splits"), filter)

	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// Save creates or updates an expense with its splits
func (r *GormExpenseRepository) Save(ctx context.Context, exp *expense.Expense) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Splits").Save(exp).Error; err != nil {
			return err
		}
		return r.saveSplits(tx, exp)
	})
}

// SaveWithLock saves an expense with optimistic locking (version check)
func (r *GormExpenseRepository) SaveWithLock(ctx context.Context, exp *expense.Expense) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		if err := tx.Model(&expense.Expense{}).
			Where("id = ?", exp.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			return err
		}

		if currentVersion != exp.Version {
			return shared.NewDomainError("CONCURRENCY_CONFLICT", "The expense has been modified by another transaction")
		}

		exp.Version++

		result := tx.Model(&expense.Expense{}).
			Where("id = ? AND version = ?", exp.ID, currentVersion).
			Updates(map[string]interface{}{
				"description": exp.Description,
				"category":    exp.Category,
				"amount":      exp.Amount,
				"incurred_at": exp.IncurredAt,
				"remarks":     exp.Remarks,
				"version":     exp.Version,
				"updated_at":  time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENCY_CONFLICT", "The expense has been modified by another transaction")
		}

		return r.saveSplits(tx, exp)
	})
}

// saveSplits reconciles the persisted splits with the aggregate's splits
func (r *GormExpenseRepository) saveSplits(tx *gorm.DB, exp *expense.Expense) error {
	currentSplitIDs := make([]uuid.UUID, len(exp.Splits))
	for i, split := range exp.Splits {
		currentSplitIDs[i] = split.ID
	}

	if len(currentSplitIDs) > 0 {
		if err := tx.Where("expense_id = ? AND id NOT IN ?", exp.ID, currentSplitIDs).
			Delete(&expense.Split{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("expense_id = ?", exp.ID).
			Delete(&expense.Split{}).Error; err != nil {
			return err
		}
	}

	for i := range exp.Splits {
		if err := tx.Save(&exp.Splits[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes an expense and its splits
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expense_id = ?", id).Delete(&expense.Split{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&expense.Expense{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts expenses matching the filter
func (r *GormExpenseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&expense.Expense{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormExpenseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ExpenseSortFields, "incurred_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormExpenseRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		}
	}

	return query
}

// Ensure GormExpenseRepository implements ExpenseRepository
var _ expense.ExpenseRepository = (*GormExpenseRepository)(nil)
