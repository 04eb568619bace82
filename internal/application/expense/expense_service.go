package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/expense"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/partner"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared/valueobject"
)

// ExpenseService handles shared expense recording and split settlement
type ExpenseService struct {
	expenseRepo    expense.ExpenseRepository
	participants   partner.ParticipantResolver
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo expense.ExpenseRepository, participants partner.ParticipantResolver, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		participants: participants,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ExpenseService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ExpenseService) publishEvents(ctx context.Context, aggregate interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}) {
	if s.eventPublisher == nil {
		aggregate.ClearDomainEvents()
		return
	}
	if err := s.eventPublisher.Publish(ctx, aggregate.GetDomainEvents()...); err != nil {
		s.logger.Warn("failed to publish domain events", zap.Error(err))
	}
	aggregate.ClearDomainEvents()
}

// resolveParticipants resolves participant references to customers.
// Unresolvable references are skipped and reported, not fatal, so one
// deleted customer does not block recording the whole expense.
func (s *ExpenseService) resolveParticipants(ctx context.Context, ids []uuid.UUID) ([]expense.Participant, []uuid.UUID) {
	resolved := make([]expense.Participant, 0, len(ids))
	skipped := make([]uuid.UUID, 0)
	for _, id := range ids {
		customer, err := s.participants.Resolve(ctx, id)
		if err != nil {
			s.logger.Warn("skipping unresolvable expense participant", zap.String("participant_id", id.String()), zap.Error(err))
			skipped = append(skipped, id)
			continue
		}
		resolved = append(resolved, expense.Participant{ID: customer.ID, Name: customer.Name})
	}
	return resolved, skipped
}

// splitSumTolerance is the rounding slack allowed between explicit
// split amounts and the expense amount before the equal-division
// fallback takes over.
var splitSumTolerance = decimal.NewFromFloat(0.01)

// Create records a shared expense, optionally splitting it in the same
// operation. Explicit split amounts must sum to the expense amount
// within the rounding tolerance; when they do not, the expense is
// divided equally across the named participants instead.
func (s *ExpenseService) Create(ctx context.Context, req CreateExpenseRequest) (*CreateExpenseResult, error) {
	if len(req.Splits) > 0 && len(req.EqualParticipantIDs) > 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Provide explicit splits or equal participants, not both")
	}

	// the payer fronted the money, an unresolvable payer is fatal
	payer, err := s.participants.Resolve(ctx, req.PayerID)
	if err != nil {
		return nil, err
	}

	incurredAt := time.Now()
	if req.IncurredAt != nil {
		incurredAt = *req.IncurredAt
	}

	exp, err := expense.NewExpense(req.Description, expense.Category(req.Category), valueobject.NewMoneyINR(req.Amount),
		expense.Participant{ID: payer.ID, Name: payer.Name}, incurredAt)
	if err != nil {
		return nil, err
	}
	if req.Remarks != "" {
		exp.SetRemarks(req.Remarks)
	}

	var skipped []uuid.UUID

	switch {
	case len(req.Splits) > 0:
		type resolvedShare struct {
			participant expense.Participant
			amount      decimal.Decimal
		}
		resolved := make([]resolvedShare, 0, len(req.Splits))
		explicitTotal := decimal.Zero
		for _, input := range req.Splits {
			customer, rerr := s.participants.Resolve(ctx, input.ParticipantID)
			if rerr != nil {
				s.logger.Warn("skipping unresolvable expense participant", zap.String("participant_id", input.ParticipantID.String()), zap.Error(rerr))
				skipped = append(skipped, input.ParticipantID)
				continue
			}
			resolved = append(resolved, resolvedShare{
				participant: expense.Participant{ID: customer.ID, Name: customer.Name},
				amount:      input.Amount,
			})
			explicitTotal = explicitTotal.Add(input.Amount)
		}

		if len(resolved) > 0 && explicitTotal.Sub(req.Amount).Abs().GreaterThan(splitSumTolerance) {
			// amounts do not cover the expense, divide it equally
			// across the same participants
			participants := make([]expense.Participant, len(resolved))
			for i, share := range resolved {
				participants[i] = share.participant
			}
			if derr := exp.SplitEqually(participants); derr != nil {
				return nil, derr
			}
			break
		}
		for _, share := range resolved {
			if _, aerr := exp.AddSplit(share.participant.ID, share.participant.Name, valueobject.NewMoneyINR(share.amount)); aerr != nil {
				return nil, aerr
			}
		}
	case len(req.EqualParticipantIDs) > 0:
		var participants []expense.Participant
		participants, skipped = s.resolveParticipants(ctx, req.EqualParticipantIDs)
		if len(participants) > 0 {
			if derr := exp.SplitEqually(participants); derr != nil {
				return nil, derr
			}
		}
	}

	if err := s.expenseRepo.Save(ctx, exp); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, exp)

	s.logger.Info("expense recorded",
		zap.String("description", exp.Description),
		zap.String("category", exp.Category.String()),
		zap.String("amount", exp.Amount.StringFixed(2)),
		zap.Int("splits", len(exp.Splits)),
		zap.Int("skipped_participants", len(skipped)))

	return &CreateExpenseResult{
		Expense:             ToExpenseResponse(exp),
		SkippedParticipants: skipped,
	}, nil
}

// AddSplit assigns a share of an expense to a participant
func (s *ExpenseService) AddSplit(ctx context.Context, expenseID uuid.UUID, req AddSplitRequest) (*ExpenseResponse, error) {
	customer, err := s.participants.Resolve(ctx, req.ParticipantID)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, expenseID, func(exp *expense.Expense) error {
		_, err := exp.AddSplit(customer.ID, customer.Name, valueobject.NewMoneyINR(req.Amount))
		return err
	})
}

// DivideEqually replaces the expense's unsettled splits with an equal
// division across the given participants. Unresolvable participants
// are skipped.
func (s *ExpenseService) DivideEqually(ctx context.Context, expenseID uuid.UUID, req DivideEquallyRequest) (*CreateExpenseResult, error) {
	participants, skipped := s.resolveParticipants(ctx, req.ParticipantIDs)
	if len(participants) == 0 {
		return nil, shared.NewDomainError("INVALID_PARTICIPANTS", "No resolvable participants to divide across")
	}

	response, err := s.mutate(ctx, expenseID, func(exp *expense.Expense) error {
		return exp.SplitEqually(participants)
	})
	if err != nil {
		return nil, err
	}

	return &CreateExpenseResult{Expense: *response, SkippedParticipants: skipped}, nil
}

// ReplaceSplits swaps the expense's entire split set for the given
// shares. Unlike Create, an unresolvable participant fails the whole
// replacement because the caller named the exact set they want.
func (s *ExpenseService) ReplaceSplits(ctx context.Context, expenseID uuid.UUID, req ReplaceSplitsRequest) (*ExpenseResponse, error) {
	shares := make([]expense.SplitShare, 0, len(req.Splits))
	for _, input := range req.Splits {
		customer, err := s.participants.Resolve(ctx, input.ParticipantID)
		if err != nil {
			return nil, err
		}
		shares = append(shares, expense.SplitShare{
			ParticipantID: customer.ID,
			Participant:   customer.Name,
			Amount:        input.Amount,
		})
	}

	return s.mutate(ctx, expenseID, func(exp *expense.Expense) error {
		return exp.ReplaceSplits(shares)
	})
}

// SettleSplit marks one split paid in full. Partial settlement is not
// supported.
func (s *ExpenseService) SettleSplit(ctx context.Context, expenseID, splitID uuid.UUID) (*ExpenseResponse, error) {
	response, err := s.mutate(ctx, expenseID, func(exp *expense.Expense) error {
		return exp.SettleSplit(splitID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("expense split settled",
		zap.String("expense_id", expenseID.String()),
		zap.String("split_id", splitID.String()))

	return response, nil
}

// RemoveSplit removes an unsettled split, returning its share to the
// residual
func (s *ExpenseService) RemoveSplit(ctx context.Context, expenseID, splitID uuid.UUID) (*ExpenseResponse, error) {
	return s.mutate(ctx, expenseID, func(exp *expense.Expense) error {
		return exp.RemoveSplit(splitID)
	})
}

// GetByID retrieves an expense with its splits
func (s *ExpenseService) GetByID(ctx context.Context, expenseID uuid.UUID) (*ExpenseResponse, error) {
	exp, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	response := ToExpenseResponse(exp)
	return &response, nil
}

// List lists expenses with filtering and pagination
func (s *ExpenseService) List(ctx context.Context, filter ExpenseListFilter) ([]ExpenseResponse, int64, error) {
	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	repoFilter.OrderBy = "incurred_at"
	repoFilter.OrderDir = "desc"

	var expenses []expense.Expense
	var err error

	switch {
	case filter.ParticipantID != nil:
		expenses, err = s.expenseRepo.FindByParticipant(ctx, *filter.ParticipantID, repoFilter)
	case filter.OpenOnly:
		expenses, err = s.expenseRepo.FindWithOpenSplits(ctx, repoFilter)
	case filter.Category != "":
		expenses, err = s.expenseRepo.FindByCategory(ctx, expense.Category(filter.Category), repoFilter)
	default:
		expenses, err = s.expenseRepo.FindAll(ctx, repoFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.expenseRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToExpenseResponses(expenses), total, nil
}

// Delete deletes an expense. Expenses with settled splits cannot be
// deleted.
func (s *ExpenseService) Delete(ctx context.Context, expenseID uuid.UUID) error {
	exp, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return err
	}
	for i := range exp.Splits {
		if exp.Splits[i].Settled {
			return shared.NewDomainError("SETTLED_SPLITS", "Cannot delete an expense with settled splits")
		}
	}
	return s.expenseRepo.Delete(ctx, expenseID)
}

func (s *ExpenseService) mutate(ctx context.Context, expenseID uuid.UUID, fn func(*expense.Expense) error) (*ExpenseResponse, error) {
	exp, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if err := fn(exp); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.SaveWithLock(ctx, exp); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, exp)
	response := ToExpenseResponse(exp)
	return &response, nil
}
