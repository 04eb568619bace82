package expense

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/expense"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/partner"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared/valueobject"
)

type expenseServiceFixture struct {
	service      *ExpenseService
	expenseRepo  *MockExpenseRepository
	participants *MockParticipantResolver
}

func newExpenseServiceFixture(t *testing.T) *expenseServiceFixture {
	t.Helper()
	f := &expenseServiceFixture{
		expenseRepo:  new(MockExpenseRepository),
		participants: new(MockParticipantResolver),
	}
	f.service = NewExpenseService(f.expenseRepo, f.participants, zap.NewNop())
	return f
}

func testParticipant(t *testing.T, name string) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer(name, "9822012345", "", uuid.New())
	require.NoError(t, err)
	return customer
}

func openExpense(t *testing.T, amount float64) *expense.Expense {
	t.Helper()
	payer := expense.Participant{ID: uuid.New(), Name: "Savio Fernandes"}
	exp, err := expense.NewExpense("Diwali mela stall transport", expense.CategoryTransport, valueobject.NewMoneyINRFromFloat(amount), payer, time.Now())
	require.NoError(t, err)
	exp.ClearDomainEvents()
	return exp
}

// ============================================================================
// Create
// ============================================================================

func TestExpenseService_Create(t *testing.T) {
	t.Run("records an expense with explicit splits", func(t *testing.T) {
		f := newExpenseServiceFixture(t)
		savio := testParticipant(t, "Savio")
		anita := testParticipant(t, "Anita")
		rohan := testParticipant(t, "Rohan")

		f.participants.On("Resolve", mock.Anything, savio.ID).Return(savio, nil)
		f.participants.On("Resolve", mock.Anything, anita.ID).Return(anita, nil)
		f.participants.On("Resolve", mock.Anything, rohan.ID).Return(rohan, nil)
		f.expenseRepo.On("Save", mock.Anything, mock.AnythingOfType("*expense.Expense")).Return(nil)

		result, err := f.service.Create(context.Background(), CreateExpenseRequest{
			Description: "Shared tempo to Mapusa market",
			Category:    "TRANSPORT",
			Amount:      decimal.NewFromFloat(900.00),
			PayerID:     savio.ID,
			Splits: []SplitInput{
				{ParticipantID: anita.ID, Amount: decimal.NewFromFloat(500.00)},
				{ParticipantID: rohan.ID, Amount: decimal.NewFromFloat(400.00)},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, savio.ID, result.Expense.PayerID)
		assert.Equal(t, "Savio", result.Expense.PayerName)
		assert.Len(t, result.Expense.Splits, 2)
		assert.True(t, result.Expense.AllocatedAmount.Equal(decimal.NewFromFloat(900.00)))
		assert.True(t, result.Expense.ResidualAmount.IsZero())
		assert.Empty(t, result.SkippedParticipants)
	})

	t.Run("divides equally when explicit amounts do not cover the expense", func(t *testing.T) {
		f := newExpenseServiceFixture(t)
		savio := testParticipant(t, "Savio")
		anita := testParticipant(t, "Anita")
		rohan := testParticipant(t, "Rohan")

		f.participants.On("Resolve", mock.Anything, savio.ID).Return(savio, nil)
		f.participants.On("Resolve", mock.Anything, anita.ID).Return(anita, nil)
		f.participants.On("Resolve", mock.Anything, rohan.ID).Return(rohan, nil)
		f.expenseRepo.On("Save", mock.Anything, mock.AnythingOfType("*expense.Expense")).Return(nil)

		// 400 + 300 leaves 200 uncovered, well past the paisa tolerance
		result, err := f.service.Create(context.Background(), CreateExpenseRequest{
			Description: "Shared tempo to Mapusa market",
			Category:    "TRANSPORT",
			Amount:      decimal.NewFromFloat(900.00),
			PayerID:     savio.ID,
			Splits: []SplitInput{
				{ParticipantID: anita.ID, Amount: decimal.NewFromFloat(400.00)},
				{ParticipantID: rohan.ID, Amount: decimal.NewFromFloat(300.00)},
			},
		})
		require.NoError(t, err)

		require.Len(t, result.Expense.Splits, 2)
		for _, split := range result.Expense.Splits {
			assert.True(t, split.Amount.Equal(decimal.NewFromFloat(450.00)))
		}
		assert.True(t, result.Expense.ResidualAmount.IsZero())
	})

	t.Run("rejects an unresolvable payer", func(t *testing.T) {
		f := newExpenseServiceFixture(t)
		ghost := uuid.New()

		f.participants.On("Resolve", mock.Anything, ghost).Return(nil, shared.ErrNotFound)

		_, err := f.service.Create(context.Background(), CreateExpenseRequest{
			Description: "Fuel for delivery rounds",
			Category:    "FUEL",
			Amount:      decimal.NewFromFloat(600.00),
			PayerID:     ghost,
		})
		assert.Error(t, err)
		f.expenseRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("records with equal division", func(t *testing.T) {
		f := newExpenseServiceFixture(t)
		savio := testParticipant(t, "Savio")
		anita := testParticipant(t, "Anita")
		rohan := testParticipant(t, "Rohan")
		maria := testParticipant(t, "Maria")

		f.participants.On("Resolve", mock.Anything, savio.ID).Return(savio, nil)
		f.participants.On("Resolve", mock.Anything, anita.ID).Return(anita, nil)
		f.participants.On("Resolve", mock.Anything, rohan.ID).Return(rohan, nil)
		f.participants.On("Resolve", mock.Anything, maria.ID).Return(maria, nil)
		f.expenseRepo.On("Save", mock.Anything, mock.AnythingOfType("*expense.Expense")).Return(nil)

		result, err := f.service.Create(context.Background(), CreateExpenseRequest{
			Description:         "Packaging rolls bulk order",
			Category:            "PACKAGING",
			Amount:              decimal.NewFromFloat(100.00),
			PayerID:             savio.ID,
			EqualParticipantIDs: []uuid.UUID{anita.ID, rohan.ID, maria.ID},
		})
		require.NoError(t, err)

		require.Len(t, result.Expense.Splits, 3)
		for _, split := range result.Expense.Splits {
			assert.True(t, split.Amount.Equal(decimal.NewFromFloat(33.33)))
		}
		assert.True(t, result.Expense.ResidualAmount.Equal(decimal.NewFromFloat(0.01)))
	})

	t.Run("skips unresolvable participants and reports them", func(t *testing.T) {
		f := newExpenseServiceFixture(t)
		savio := testParticipant(t, "Savio")
		anita := testParticipant(t, "Anita")
		ghost := uuid.New()

		f.participants.On("Resolve", mock.Anything, savio.ID).Return(savio, nil)
		f.participants.On("Resolve", mock.Anything, anita.ID).Return(anita, nil)
		f.participants.On("Resolve", mock.Anything, ghost).Return(nil, shared.ErrNotFound)
		f.expenseRepo.On("Save", mock.Anything, mock.AnythingOfType("*expense.Expense")).Return(nil)

		result, err := f.service.Create(context.Background(), CreateExpenseRequest{
			Description:         "Fuel for delivery rounds",
			Category:            "FUEL",
			Amount:              decimal.NewFromFloat(600.00),
			PayerID:             savio.ID,
			EqualParticipantIDs: []uuid.UUID{anita.ID, ghost},
		})
		require.NoError(t, err)

		require.Len(t, result.Expense.Splits, 1)
		assert.Equal(t, []uuid.UUID{ghost}, result.SkippedParticipants)
		assert.True(t, result.Expense.Splits[0].Amount.Equal(decimal.NewFromFloat(600.00)))
	})

	t.Run("rejects mixing explicit splits and equal division", func(t *testing.T) {
		f := newExpenseServiceFixture(t)

		_, err := f.service.Create(context.Background(), CreateExpenseRequest{
			Description:         "Supplies",
			Category:            "SUPPLIES",
			Amount:              decimal.NewFromFloat(100.00),
			Splits:              []SplitInput{{ParticipantID: uuid.New(), Amount: decimal.NewFromFloat(50.00)}},
			EqualParticipantIDs: []uuid.UUID{uuid.New()},
		})
		assert.Error(t, err)
		f.expenseRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects splits that exceed the expense", func(t *testing.T) {
		f := newExpenseServiceFixture(t)
		savio := testParticipant(t, "Savio")
		anita := testParticipant(t, "Anita")

		f.participants.On("Resolve", mock.Anything, savio.ID).Return(savio, nil)
		f.participants.On("Resolve", mock.Anything, anita.ID).Return(anita, nil)

		// one paisa over sits inside the tolerance, so the explicit
		// amount reaches the aggregate and trips its cap
		_, err := f.service.Create(context.Background(), CreateExpenseRequest{
			Description: "Event stall rent",
			Category:    "EVENT",
			Amount:      decimal.NewFromFloat(500.00),
			PayerID:     savio.ID,
			Splits:      []SplitInput{{ParticipantID: anita.ID, Amount: decimal.NewFromFloat(500.01)}},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SPLITS_EXCEED_EXPENSE", domainErr.Code)
		f.expenseRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

// ============================================================================
// Settlement
// ============================================================================

func TestExpenseService_SettleSplit(t *testing.T) {
	t.Run("settles a split in full", func(t *testing.T) {
		f := newExpenseServiceFixture(t)
		exp := openExpense(t, 900.00)
		split, err := exp.AddSplit(uuid.New(), "Anita", valueobject.NewMoneyINRFromFloat(400.00))
		require.NoError(t, err)
		exp.ClearDomainEvents()

		f.expenseRepo.On("FindByID", mock.Anything, exp.ID).Return(exp, nil)
		f.expenseRepo.On("SaveWithLock", mock.Anything, exp).Return(nil)

		resp, err := f.service.SettleSplit(context.Background(), exp.ID, split.ID)
		require.NoError(t, err)

		require.Len(t, resp.Splits, 1)
		assert.True(t, resp.Splits[0].Settled)
		assert.NotNil(t, resp.Splits[0].SettledAt)
	})

	t.Run("rejects settling twice", func(t *testing.T) {
		f := newExpenseServiceFixture(t)
		exp := openExpense(t, 900.00)
		split, err := exp.AddSplit(uuid.New(), "Anita", valueobject.NewMoneyINRFromFloat(400.00))
		require.NoError(t, err)
		require.NoError(t, exp.SettleSplit(split.ID))
		exp.ClearDomainEvents()

		f.expenseRepo.On("FindByID", mock.Anything, exp.ID).Return(exp, nil)

		_, err = f.service.SettleSplit(context.Background(), exp.ID, split.ID)
		assert.Error(t, err)
		f.expenseRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestExpenseService_DivideEqually(t *testing.T) {
	f := newExpenseServiceFixture(t)
	exp := openExpense(t, 900.00)
	anita := testParticipant(t, "Anita")
	rohan := testParticipant(t, "Rohan")

	f.participants.On("Resolve", mock.Anything, anita.ID).Return(anita, nil)
	f.participants.On("Resolve", mock.Anything, rohan.ID).Return(rohan, nil)
	f.expenseRepo.On("FindByID", mock.Anything, exp.ID).Return(exp, nil)
	f.expenseRepo.On("SaveWithLock", mock.Anything, exp).Return(nil)

	result, err := f.service.DivideEqually(context.Background(), exp.ID, DivideEquallyRequest{
		ParticipantIDs: []uuid.UUID{anita.ID, rohan.ID},
	})
	require.NoError(t, err)

	require.Len(t, result.Expense.Splits, 2)
	assert.True(t, result.Expense.Splits[0].Amount.Equal(decimal.NewFromFloat(450.00)))
	assert.True(t, result.Expense.ResidualAmount.IsZero())
}

func TestExpenseService_ReplaceSplits(t *testing.T) {
	t.Run("replaces the full split set", func(t *testing.T) {
		f := newExpenseServiceFixture(t)
		exp := openExpense(t, 900.00)
		_, err := exp.AddSplit(uuid.New(), "Savio", valueobject.NewMoneyINRFromFloat(200.00))
		require.NoError(t, err)
		exp.ClearDomainEvents()
		anita := testParticipant(t, "Anita")

		f.participants.On("Resolve", mock.Anything, anita.ID).Return(anita, nil)
		f.expenseRepo.On("FindByID", mock.Anything, exp.ID).Return(exp, nil)
		f.expenseRepo.On("SaveWithLock", mock.Anything, exp).Return(nil)

		resp, err := f.service.ReplaceSplits(context.Background(), exp.ID, ReplaceSplitsRequest{
			Splits: []SplitInput{{ParticipantID: anita.ID, Amount: decimal.NewFromFloat(600.00)}},
		})
		require.NoError(t, err)

		require.Len(t, resp.Splits, 1)
		assert.Equal(t, anita.ID, resp.Splits[0].ParticipantID)
		assert.True(t, resp.ResidualAmount.Equal(decimal.NewFromFloat(300.00)))
	})

	t.Run("fails wholesale when a participant cannot be resolved", func(t *testing.T) {
		f := newExpenseServiceFixture(t)
		exp := openExpense(t, 900.00)
		anita := testParticipant(t, "Anita")
		missing := uuid.New()

		f.participants.On("Resolve", mock.Anything, anita.ID).Return(anita, nil)
		f.participants.On("Resolve", mock.Anything, missing).Return(nil, shared.ErrNotFound)

		_, err := f.service.ReplaceSplits(context.Background(), exp.ID, ReplaceSplitsRequest{
			Splits: []SplitInput{
				{ParticipantID: anita.ID, Amount: decimal.NewFromFloat(300.00)},
				{ParticipantID: missing, Amount: decimal.NewFromFloat(300.00)},
			},
		})
		require.Error(t, err)
		f.expenseRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestExpenseService_Delete(t *testing.T) {
	t.Run("rejects deleting an expense with settled splits", func(t *testing.T) {
		f := newExpenseServiceFixture(t)
		exp := openExpense(t, 900.00)
		split, err := exp.AddSplit(uuid.New(), "Anita", valueobject.NewMoneyINRFromFloat(400.00))
		require.NoError(t, err)
		require.NoError(t, exp.SettleSplit(split.ID))

		f.expenseRepo.On("FindByID", mock.Anything, exp.ID).Return(exp, nil)

		err = f.service.Delete(context.Background(), exp.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SETTLED_SPLITS", domainErr.Code)
		f.expenseRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
