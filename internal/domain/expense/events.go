package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeExpense = "Expense"

// Event type constants
const (
	EventTypeExpenseRecorded     = "ExpenseRecorded"
	EventTypeExpenseDivided      = "ExpenseDivided"
	EventTypeExpenseSplitAdded   = "ExpenseSplitAdded"
	EventTypeExpenseSplitSettled = "ExpenseSplitSettled"
	EventTypeExpenseSettled      = "ExpenseSettled"
)

// ExpenseRecordedEvent is raised when an expense is recorded
type ExpenseRecordedEvent struct {
	shared.BaseDomainEvent
	ExpenseID   uuid.UUID       `json:"expense_id"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	IncurredAt  time.Time       `json:"incurred_at"`
}

// NewExpenseRecordedEvent creates a new ExpenseRecordedEvent
func NewExpenseRecordedEvent(expense *Expense) *ExpenseRecordedEvent {
	return &ExpenseRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseRecorded, AggregateTypeExpense, expense.ID),
		ExpenseID:       expense.ID,
		Description:     expense.Description,
		Category:        expense.Category,
		Amount:          expense.Amount,
		IncurredAt:      expense.IncurredAt,
	}
}

// EventType returns the event type name
func (e *ExpenseRecordedEvent) EventType() string {
	return EventTypeExpenseRecorded
}

// ExpenseDividedEvent is raised when an expense is divided equally
// across participants
type ExpenseDividedEvent struct {
	shared.BaseDomainEvent
	ExpenseID        uuid.UUID       `json:"expense_id"`
	ParticipantCount int             `json:"participant_count"`
	ShareAmount      decimal.Decimal `json:"share_amount"`
	ResidualAmount   decimal.Decimal `json:"residual_amount"`
}

// NewExpenseDividedEvent creates a new ExpenseDividedEvent
func NewExpenseDividedEvent(expense *Expense, share decimal.Decimal) *ExpenseDividedEvent {
	return &ExpenseDividedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeExpenseDivided, AggregateTypeExpense, expense.ID),
		ExpenseID:        expense.ID,
		ParticipantCount: len(expense.Splits),
		ShareAmount:      share,
		ResidualAmount:   expense.ResidualAmount(),
	}
}

// EventType returns the event type name
func (e *ExpenseDividedEvent) EventType() string {
	return EventTypeExpenseDivided
}

// ExpenseSplitAddedEvent is raised when an explicit split is assigned
type ExpenseSplitAddedEvent struct {
	shared.BaseDomainEvent
	ExpenseID     uuid.UUID       `json:"expense_id"`
	SplitID       uuid.UUID       `json:"split_id"`
	ParticipantID uuid.UUID       `json:"participant_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewExpenseSplitAddedEvent creates a new ExpenseSplitAddedEvent
func NewExpenseSplitAddedEvent(expense *Expense, split *Split) *ExpenseSplitAddedEvent {
	return &ExpenseSplitAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseSplitAdded, AggregateTypeExpense, expense.ID),
		ExpenseID:       expense.ID,
		SplitID:         split.ID,
		ParticipantID:   split.ParticipantID,
		Amount:          split.Amount,
	}
}

// EventType returns the event type name
func (e *ExpenseSplitAddedEvent) EventType() string {
	return EventTypeExpenseSplitAdded
}

// ExpenseSplitSettledEvent is raised when a participant settles their
// share in full
type ExpenseSplitSettledEvent struct {
	shared.BaseDomainEvent
	ExpenseID     uuid.UUID       `json:"expense_id"`
	SplitID       uuid.UUID       `json:"split_id"`
	ParticipantID uuid.UUID       `json:"participant_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewExpenseSplitSettledEvent creates a new ExpenseSplitSettledEvent
func NewExpenseSplitSettledEvent(expense *Expense, split *Split) *ExpenseSplitSettledEvent {
	return &ExpenseSplitSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseSplitSettled, AggregateTypeExpense, expense.ID),
		ExpenseID:       expense.ID,
		SplitID:         split.ID,
		ParticipantID:   split.ParticipantID,
		Amount:          split.Amount,
	}
}

// EventType returns the event type name
func (e *ExpenseSplitSettledEvent) EventType() string {
	return EventTypeExpenseSplitSettled
}

// ExpenseSettledEvent is raised once every split on an expense has
// been settled
type ExpenseSettledEvent struct {
	shared.BaseDomainEvent
	ExpenseID uuid.UUID       `json:"expense_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// NewExpenseSettledEvent creates a new ExpenseSettledEvent
func NewExpenseSettledEvent(expense *Expense) *ExpenseSettledEvent {
	return &ExpenseSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseSettled, AggregateTypeExpense, expense.ID),
		ExpenseID:       expense.ID,
		Amount:          expense.Amount,
	}
}

// EventType returns the event type name
func (e *ExpenseSettledEvent) EventType() string {
	return EventTypeExpenseSettled
}
