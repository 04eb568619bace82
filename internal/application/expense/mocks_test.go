package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/expense"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/partner"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// MockExpenseRepository is a mock implementation of expense.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByCategory(ctx context.Context, category expense.Category, filter shared.Filter) ([]expense.Expense, error) {
	args := m.Called(ctx, category, filter)
	return args.Get(0).([]expense.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByParticipant(ctx context.Context, participantID uuid.UUID, filter shared.Filter) ([]expense.Expense, error) {
	args := m.Called(ctx, participantID, filter)
	return args.Get(0).([]expense.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindIncurredBetween(ctx context.Context, from, to time.Time, filter shared.Filter) ([]expense.Expense, error) {
	args := m.Called(ctx, from, to, filter)
	return args.Get(0).([]expense.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindWithOpenSplits(ctx context.Context, filter shared.Filter) ([]expense.Expense, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]expense.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]expense.Expense, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]expense.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, exp *expense.Expense) error {
	args := m.Called(ctx, exp)
	return args.Error(0)
}

func (m *MockExpenseRepository) SaveWithLock(ctx context.Context, exp *expense.Expense) error {
	args := m.Called(ctx, exp)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockParticipantResolver is a mock implementation of partner.ParticipantResolver
type MockParticipantResolver struct {
	mock.Mock
}

func (m *MockParticipantResolver) Resolve(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}
