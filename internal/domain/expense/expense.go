package expense

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared/valueobject"
)

// Category classifies a shared expense
type Category string

const (
	CategoryFuel      Category = "FUEL"
	CategoryTransport Category = "TRANSPORT"
	CategoryPackaging Category = "PACKAGING"
	CategorySupplies  Category = "SUPPLIES"
	CategoryEvent     Category = "EVENT"
	CategoryOther     Category = "OTHER"
)

// IsValid checks if the category is a valid Category
func (c Category) IsValid() bool {
	switch c {
	case CategoryFuel, CategoryTransport, CategoryPackaging,
		CategorySupplies, CategoryEvent, CategoryOther:
		return true
	}
	return false
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// Split is one participant's share of an expense. Settlement is all or
// nothing: a split is either open or settled in full, there is no
// partial settlement the way invoice payments allow.
type Split struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ExpenseID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ParticipantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Participant   string          `gorm:"type:varchar(120);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Settled       bool            `gorm:"not null;default:false"`
	SettledAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (Split) TableName() string {
	return "expense_splits"
}

// GetAmountMoney returns the split amount as Money
func (s *Split) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(s.Amount)
}

// Expense is a shared cost split across participants. The sum of split
// amounts never exceeds the expense amount; any remainder stays with
// the business as the residual.
type Expense struct {
	shared.BaseAggregateRoot
	Description string          `gorm:"type:varchar(255);not null"`
	Category    Category        `gorm:"type:varchar(32);not null;default:'OTHER'"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PayerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	PayerName   string          `gorm:"type:varchar(120);not null"`
	IncurredAt  time.Time       `gorm:"not null;index"`
	Splits      []Split         `gorm:"foreignKey:ExpenseID;references:ID"`
	Remarks     string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// NewExpense creates a new expense with no splits. The payer is the
// identity that fronted the cost and must resolve; participants owing
// shares are attached afterwards as splits.
func NewExpense(description string, category Category, amount valueobject.Money, payer Participant, incurredAt time.Time) (*Expense, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(description) > 255 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 255 characters")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown expense category")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if payer.ID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYER", "Payer ID cannot be empty")
	}
	if payer.Name == "" {
		return nil, shared.NewDomainError("INVALID_PAYER_NAME", "Payer name cannot be empty")
	}
	if incurredAt.IsZero() {
		incurredAt = time.Now()
	}

	expense := &Expense{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Description:       description,
		Category:          category,
		Amount:            amount.Amount(),
		PayerID:           payer.ID,
		PayerName:         payer.Name,
		IncurredAt:        incurredAt,
		Splits:            make([]Split, 0),
	}

	expense.AddDomainEvent(NewExpenseRecordedEvent(expense))

	return expense, nil
}

// AllocatedAmount returns the sum of all split amounts
func (e *Expense) AllocatedAmount() decimal.Decimal {
	total := decimal.Zero
	for _, split := range e.Splits {
		total = total.Add(split.Amount)
	}
	return total
}

// ResidualAmount returns the portion of the expense not assigned to
// any participant. With equal division over n participants this is
// the rounding remainder, borne by the business.
func (e *Expense) ResidualAmount() decimal.Decimal {
	return e.Amount.Sub(e.AllocatedAmount())
}

// OutstandingAmount returns the sum of unsettled split amounts
func (e *Expense) OutstandingAmount() decimal.Decimal {
	total := decimal.Zero
	for _, split := range e.Splits {
		if !split.Settled {
			total = total.Add(split.Amount)
		}
	}
	return total
}

// IsFullySettled returns true if every split has been settled
func (e *Expense) IsFullySettled() bool {
	if len(e.Splits) == 0 {
		return false
	}
	for _, split := range e.Splits {
		if !split.Settled {
			return false
		}
	}
	return true
}

// AddSplit assigns an explicit share to a participant. The running
// total of splits may never exceed the expense amount.
func (e *Expense) AddSplit(participantID uuid.UUID, participantName string, amount valueobject.Money) (*Split, error) {
	if participantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTICIPANT", "Participant ID cannot be empty")
	}
	if participantName == "" {
		return nil, shared.NewDomainError("INVALID_PARTICIPANT_NAME", "Participant name cannot be empty")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Split amount must be positive")
	}

	for _, split := range e.Splits {
		if split.ParticipantID == participantID {
			return nil, shared.NewDomainError("DUPLICATE_PARTICIPANT", "Participant already has a split on this expense")
		}
	}

	if e.AllocatedAmount().Add(amount.Amount()).GreaterThan(e.Amount) {
		return nil, shared.NewDomainError("SPLITS_EXCEED_EXPENSE", fmt.Sprintf("Splits would total %s against an expense of %s", e.AllocatedAmount().Add(amount.Amount()).StringFixed(2), e.Amount.StringFixed(2)))
	}

	now := time.Now()
	split := Split{
		ID:            uuid.New(),
		ExpenseID:     e.ID,
		ParticipantID: participantID,
		Participant:   participantName,
		Amount:        amount.Amount(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	e.Splits = append(e.Splits, split)
	e.UpdatedAt = now

	e.AddDomainEvent(NewExpenseSplitAddedEvent(e, &split))

	return &e.Splits[len(e.Splits)-1], nil
}

// Participant names a participant for equal division
type Participant struct {
	ID   uuid.UUID
	Name string
}

// SplitEqually replaces any existing unsettled splits with an equal
// division across the given participants. Each share is the expense
// amount over n rounded to two places; the rounding remainder stays
// unassigned as the residual.
func (e *Expense) SplitEqually(participants []Participant) error {
	if len(participants) == 0 {
		return shared.NewDomainError("NO_PARTICIPANTS", "At least one participant is required")
	}
	for _, split := range e.Splits {
		if split.Settled {
			return shared.NewDomainError("INVALID_STATE", "Cannot redivide an expense with settled splits")
		}
	}

	seen := make(map[uuid.UUID]bool, len(participants))
	for _, p := range participants {
		if p.ID == uuid.Nil {
			return shared.NewDomainError("INVALID_PARTICIPANT", "Participant ID cannot be empty")
		}
		if seen[p.ID] {
			return shared.NewDomainError("DUPLICATE_PARTICIPANT", "Participants must be distinct")
		}
		seen[p.ID] = true
	}

	share := e.Amount.Div(decimal.NewFromInt(int64(len(participants)))).Round(2)
	if share.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Per-participant share rounds to zero")
	}
	if share.Mul(decimal.NewFromInt(int64(len(participants)))).GreaterThan(e.Amount) {
		// rounding pushed the total over, truncate instead
		share = e.Amount.Div(decimal.NewFromInt(int64(len(participants)))).Truncate(2)
	}

	now := time.Now()
	splits := make([]Split, 0, len(participants))
	for _, p := range participants {
		splits = append(splits, Split{
			ID:            uuid.New(),
			ExpenseID:     e.ID,
			ParticipantID: p.ID,
			Participant:   p.Name,
			Amount:        share,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	e.Splits = splits
	e.UpdatedAt = now

	e.AddDomainEvent(NewExpenseDividedEvent(e, share))

	return nil
}

// SplitShare names a participant and their explicit share for
// ReplaceSplits
type SplitShare struct {
	ParticipantID uuid.UUID
	Participant   string
	Amount        decimal.Decimal
}

// ReplaceSplits swaps the entire split set for the given shares in one
// step. Every share is validated before anything changes; a single bad
// share rejects the whole replacement.
func (e *Expense) ReplaceSplits(shares []SplitShare) error {
	for _, split := range e.Splits {
		if split.Settled {
			return shared.NewDomainError("INVALID_STATE", "Cannot replace splits on an expense with settled splits")
		}
	}

	seen := make(map[uuid.UUID]bool, len(shares))
	allocated := decimal.Zero
	for _, share := range shares {
		if share.ParticipantID == uuid.Nil {
			return shared.NewDomainError("INVALID_PARTICIPANT", "Participant ID cannot be empty")
		}
		if share.Participant == "" {
			return shared.NewDomainError("INVALID_PARTICIPANT_NAME", "Participant name cannot be empty")
		}
		if share.Amount.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_AMOUNT", "Split amount must be positive")
		}
		if seen[share.ParticipantID] {
			return shared.NewDomainError("DUPLICATE_PARTICIPANT", "Participants must be distinct")
		}
		seen[share.ParticipantID] = true
		allocated = allocated.Add(share.Amount)
	}
	if allocated.GreaterThan(e.Amount) {
		return shared.NewDomainError("SPLITS_EXCEED_EXPENSE", fmt.Sprintf("Splits would total %s against an expense of %s", allocated.StringFixed(2), e.Amount.StringFixed(2)))
	}

	now := time.Now()
	splits := make([]Split, 0, len(shares))
	for _, share := range shares {
		splits = append(splits, Split{
			ID:            uuid.New(),
			ExpenseID:     e.ID,
			ParticipantID: share.ParticipantID,
			Participant:   share.Participant,
			Amount:        share.Amount,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	e.Splits = splits
	e.UpdatedAt = now

	return nil
}

// SettleSplit marks a participant's split as settled in full
func (e *Expense) SettleSplit(splitID uuid.UUID) error {
	for idx := range e.Splits {
		if e.Splits[idx].ID == splitID {
			if e.Splits[idx].Settled {
				return shared.NewDomainError("INVALID_STATE", "Split is already settled")
			}
			now := time.Now()
			e.Splits[idx].Settled = true
			e.Splits[idx].SettledAt = &now
			e.Splits[idx].UpdatedAt = now
			e.UpdatedAt = now

			e.AddDomainEvent(NewExpenseSplitSettledEvent(e, &e.Splits[idx]))

			if e.IsFullySettled() {
				e.AddDomainEvent(NewExpenseSettledEvent(e))
			}
			return nil
		}
	}
	return shared.NewDomainError("SPLIT_NOT_FOUND", "Expense split not found")
}

// RemoveSplit removes an unsettled split
func (e *Expense) RemoveSplit(splitID uuid.UUID) error {
	for idx, split := range e.Splits {
		if split.ID == splitID {
			if split.Settled {
				return shared.NewDomainError("INVALID_STATE", "Cannot remove a settled split")
			}
			e.Splits = append(e.Splits[:idx], e.Splits[idx+1:]...)
			e.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("SPLIT_NOT_FOUND", "Expense split not found")
}

// FindSplit returns the split with the given ID, or nil
func (e *Expense) FindSplit(splitID uuid.UUID) *Split {
	for idx := range e.Splits {
		if e.Splits[idx].ID == splitID {
			return &e.Splits[idx]
		}
	}
	return nil
}

// FindSplitByParticipant returns the participant's split, or nil
func (e *Expense) FindSplitByParticipant(participantID uuid.UUID) *Split {
	for idx := range e.Splits {
		if e.Splits[idx].ParticipantID == participantID {
			return &e.Splits[idx]
		}
	}
	return nil
}

// GetAmountMoney returns the expense amount as Money
func (e *Expense) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(e.Amount)
}

// SetRemarks sets the expense remarks
func (e *Expense) SetRemarks(remarks string) {
	e.Remarks = remarks
	e.UpdatedAt = time.Now()
}
