package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/expense"
)

// SplitInput is one explicit split assignment in a create request
type SplitInput struct {
	ParticipantID uuid.UUID       `json:"participant_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

// CreateExpenseRequest represents a request to record a shared expense.
// Splits and EqualParticipantIDs are mutually exclusive; either may be
// empty to record the expense with no splits yet.
type CreateExpenseRequest struct {
	Description         string          `json:"description" binding:"required,max=255"`
	Category            string          `json:"category" binding:"required,oneof=FUEL TRANSPORT PACKAGING SUPPLIES EVENT OTHER"`
	Amount              decimal.Decimal `json:"amount" binding:"required"`
	PayerID             uuid.UUID       `json:"payer_id" binding:"required"`
	IncurredAt          *time.Time      `json:"incurred_at" binding:"omitempty"`
	Splits              []SplitInput    `json:"splits" binding:"omitempty,dive"`
	EqualParticipantIDs []uuid.UUID     `json:"equal_participant_ids" binding:"omitempty"`
	Remarks             string          `json:"remarks" binding:"omitempty,max=500"`
}

// AddSplitRequest assigns a share of an existing expense to a participant
type AddSplitRequest struct {
	ParticipantID uuid.UUID       `json:"participant_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

// ReplaceSplitsRequest swaps an expense's entire split set for the
// given shares. An empty list clears all splits.
type ReplaceSplitsRequest struct {
	Splits []SplitInput `json:"splits" binding:"dive"`
}

// DivideEquallyRequest replaces an expense's unsettled splits with an
// equal division across the given participants
type DivideEquallyRequest struct {
	ParticipantIDs []uuid.UUID `json:"participant_ids" binding:"required,min=1"`
}

// ExpenseListFilter filters expense listings
type ExpenseListFilter struct {
	Category      string     `form:"category" binding:"omitempty,oneof=FUEL TRANSPORT PACKAGING SUPPLIES EVENT OTHER"`
	ParticipantID *uuid.UUID `form:"participant_id"`
	OpenOnly      bool       `form:"open_only"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// SplitResponse represents one split in API responses
type SplitResponse struct {
	ID            uuid.UUID       `json:"id"`
	ParticipantID uuid.UUID       `json:"participant_id"`
	Participant   string          `json:"participant"`
	Amount        decimal.Decimal `json:"amount"`
	Settled       bool            `json:"settled"`
	SettledAt     *time.Time      `json:"settled_at,omitempty"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID              uuid.UUID       `json:"id"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	PayerID         uuid.UUID       `json:"payer_id"`
	PayerName       string          `json:"payer_name"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount"`
	ResidualAmount  decimal.Decimal `json:"residual_amount"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	FullySettled    bool            `json:"fully_settled"`
	IncurredAt      time.Time       `json:"incurred_at"`
	Splits          []SplitResponse `json:"splits"`
	Remarks         string          `json:"remarks,omitempty"`
}

// CreateExpenseResult carries the created expense plus any participant
// references that could not be resolved and were skipped
type CreateExpenseResult struct {
	Expense             ExpenseResponse `json:"expense"`
	SkippedParticipants []uuid.UUID     `json:"skipped_participants,omitempty"`
}

// ToExpenseResponse converts a domain expense to a response
func ToExpenseResponse(e *expense.Expense) ExpenseResponse {
	splits := make([]SplitResponse, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = SplitResponse{
			ID:            s.ID,
			ParticipantID: s.ParticipantID,
			Participant:   s.Participant,
			Amount:        s.Amount,
			Settled:       s.Settled,
			SettledAt:     s.SettledAt,
		}
	}

	return ExpenseResponse{
		ID:              e.ID,
		Description:     e.Description,
		Category:        e.Category.String(),
		Amount:          e.Amount,
		PayerID:         e.PayerID,
		PayerName:       e.PayerName,
		AllocatedAmount: e.AllocatedAmount(),
		ResidualAmount:  e.ResidualAmount(),
		Outstanding:     e.OutstandingAmount(),
		FullySettled:    e.IsFullySettled(),
		IncurredAt:      e.IncurredAt,
		Splits:          splits,
		Remarks:         e.Remarks,
	}
}

// ToExpenseResponses converts a slice of expenses
func ToExpenseResponses(expenses []expense.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}
