package expense

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// FindByID finds an expense by ID, splits included
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)

	// FindByCategory finds expenses in a category
	FindByCategory(ctx context.Context, category Category, filter shared.Filter) ([]Expense, error)

	// FindByParticipant finds expenses carrying a split for a participant
	FindByParticipant(ctx context.Context, participantID uuid.UUID, filter shared.Filter) ([]Expense, error)

	// FindIncurredBetween finds expenses incurred within a period
	FindIncurredBetween(ctx context.Context, from, to time.Time, filter shared.Filter) ([]Expense, error)

	// FindWithOpenSplits finds expenses that still have unsettled splits
	FindWithOpenSplits(ctx context.Context, filter shared.Filter) ([]Expense, error)

	// FindAll finds expenses with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Expense, error)

	// Save creates or updates an expense with its splits
	Save(ctx context.Context, expense *Expense) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, expense *Expense) error

	// Delete deletes an expense
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts expenses matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
