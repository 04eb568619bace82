package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared/valueobject"
)

// PaymentStatus is derived from the paid amount against the total.
// It is never set directly.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"  // no payments applied
	PaymentStatusPartial PaymentStatus = "PARTIAL" // 0 < paid < total
	PaymentStatusPaid    PaymentStatus = "PAID"    // paid = total
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// AgingBucket classifies an invoice by how long it has been outstanding
type AgingBucket string

const (
	AgingBucketCurrent AgingBucket = "CURRENT" // not yet due or fully paid
	AgingBucket1To30   AgingBucket = "1-30"
	AgingBucket31To60  AgingBucket = "31-60"
	AgingBucket61To90  AgingBucket = "61-90"
	AgingBucket91Plus  AgingBucket = "91+"
)

// AgingBuckets lists the buckets in report order
var AgingBuckets = []AgingBucket{
	AgingBucketCurrent,
	AgingBucket1To30,
	AgingBucket31To60,
	AgingBucket61To90,
	AgingBucket91Plus,
}

// BucketForDays maps days outstanding to an aging bucket
func BucketForDays(days int) AgingBucket {
	switch {
	case days <= 0:
		return AgingBucketCurrent
	case days <= 30:
		return AgingBucket1To30
	case days <= 60:
		return AgingBucket31To60
	case days <= 90:
		return AgingBucket61To90
	default:
		return AgingBucket91Plus
	}
}

// PaymentRecord is one payment applied to an invoice. It is a value
// object within the Invoice aggregate, stored as JSONB.
type PaymentRecord struct {
	ID        uuid.UUID       `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method,omitempty"`
	Reference string          `json:"reference,omitempty"`
	AppliedAt time.Time       `json:"applied_at"`
	Remark    string          `json:"remark,omitempty"`
}

// PaymentRecords is a slice of PaymentRecord that implements GORM
// Scanner/Valuer for JSONB storage
type PaymentRecords []PaymentRecord

// Value implements driver.Valuer interface for GORM to store as JSONB
func (p PaymentRecords) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (p *PaymentRecords) Scan(value interface{}) error {
	if value == nil {
		*p = PaymentRecords{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan PaymentRecords: unsupported type")
	}

	if len(bytes) == 0 {
		*p = PaymentRecords{}
		return nil
	}

	return json.Unmarshal(bytes, p)
}

// NewPaymentRecord creates a new payment record
func NewPaymentRecord(amount valueobject.Money, method, reference, remark string) *PaymentRecord {
	return &PaymentRecord{
		ID:        uuid.New(),
		Amount:    amount.Amount(),
		Method:    method,
		Reference: reference,
		AppliedAt: time.Now(),
		Remark:    remark,
	}
}

// GetAmountMoney returns the amount as Money value object
func (p *PaymentRecord) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(p.Amount)
}

// NewInvoiceNumber generates a 12-character uppercase invoice number
func NewInvoiceNumber() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:12]
}

// Invoice is the billing record for exactly one delivered order.
// TotalAmount is copied from the order at generation and never changes
// afterward, even if the order's lines were somehow edited later.
// AmountPaid only ever grows.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string          `gorm:"type:varchar(12);not null;uniqueIndex"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	OrderNumber   string          `gorm:"type:varchar(50);not null"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName  string          `gorm:"type:varchar(120);not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(16);not null;default:'UNPAID'"`
	Payments      PaymentRecords  `gorm:"type:jsonb;not null;default:'[]'"`
	InvoiceDate   time.Time       `gorm:"not null;index"`
	DueDate       *time.Time
	PaidAt        *time.Time
	Remarks       string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates an invoice for a delivered order, freezing the
// order total as the invoice total
func NewInvoice(orderID uuid.UUID, orderNumber string, customerID uuid.UUID, customerName string, totalAmount valueobject.Money, dueDate *time.Time) (*Invoice, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if totalAmount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice total must be positive")
	}

	invoice := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     NewInvoiceNumber(),
		OrderID:           orderID,
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		TotalAmount:       totalAmount.Amount(),
		AmountPaid:        decimal.Zero,
		PaymentStatus:     PaymentStatusUnpaid,
		Payments:          PaymentRecords{},
		InvoiceDate:       time.Now(),
		DueDate:           dueDate,
	}

	invoice.AddDomainEvent(NewInvoiceGeneratedEvent(invoice))

	return invoice, nil
}

// Balance returns the outstanding amount (total minus paid)
func (inv *Invoice) Balance() decimal.Decimal {
	return inv.TotalAmount.Sub(inv.AmountPaid)
}

// GetBalanceMoney returns the outstanding amount as Money
func (inv *Invoice) GetBalanceMoney() valueobject.Money {
	return valueobject.NewMoneyINR(inv.Balance())
}

// GetTotalAmountMoney returns the frozen total as Money
func (inv *Invoice) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(inv.TotalAmount)
}

// GetAmountPaidMoney returns the paid amount as Money
func (inv *Invoice) GetAmountPaidMoney() valueobject.Money {
	return valueobject.NewMoneyINR(inv.AmountPaid)
}

// IsPaid returns true if the invoice is fully settled
func (inv *Invoice) IsPaid() bool {
	return inv.PaymentStatus == PaymentStatusPaid
}

// RecordPayment applies a payment to the invoice. The amount must be
// positive and must not exceed the balance; the derived status moves
// with the paid amount.
func (inv *Invoice) RecordPayment(amount valueobject.Money, method, reference, remark string) error {
	if inv.IsPaid() {
		return shared.NewDomainError("INVALID_STATE", "Invoice is already fully paid")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.Amount().GreaterThan(inv.Balance()) {
		return shared.NewDomainError("EXCEEDS_OUTSTANDING", fmt.Sprintf("Payment amount %s exceeds outstanding balance %s", amount.Amount().StringFixed(2), inv.Balance().StringFixed(2)))
	}

	record := NewPaymentRecord(amount, method, reference, remark)
	inv.Payments = append(inv.Payments, *record)
	inv.AmountPaid = inv.AmountPaid.Add(amount.Amount())

	inv.refreshPaymentStatus()
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	if inv.IsPaid() {
		inv.AddDomainEvent(NewInvoicePaidEvent(inv))
	} else {
		inv.AddDomainEvent(NewInvoicePaymentRecordedEvent(inv, record))
	}

	return nil
}

// MarkFullyPaid settles the remaining balance in a single payment
func (inv *Invoice) MarkFullyPaid(method, reference, remark string) error {
	if inv.IsPaid() {
		return shared.NewDomainError("INVALID_STATE", "Invoice is already fully paid")
	}
	return inv.RecordPayment(valueobject.NewMoneyINR(inv.Balance()), method, reference, remark)
}

func (inv *Invoice) refreshPaymentStatus() {
	switch {
	case inv.AmountPaid.IsZero():
		inv.PaymentStatus = PaymentStatusUnpaid
	case inv.AmountPaid.GreaterThanOrEqual(inv.TotalAmount):
		now := time.Now()
		inv.PaymentStatus = PaymentStatusPaid
		inv.PaidAt = &now
	default:
		inv.PaymentStatus = PaymentStatusPartial
	}
}

// SetRemarks sets the invoice remarks
func (inv *Invoice) SetRemarks(remarks string) {
	inv.Remarks = remarks
	inv.UpdatedAt = time.Now()
}

// DaysOutstanding returns whole days since the invoice date, 0 if the
// invoice is settled
func (inv *Invoice) DaysOutstanding(asOf time.Time) int {
	if inv.IsPaid() {
		return 0
	}
	days := int(asOf.Sub(inv.InvoiceDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// AgingBucket returns the bucket the invoice falls into as of the
// given time. Settled invoices are always CURRENT.
func (inv *Invoice) AgingBucket(asOf time.Time) AgingBucket {
	if inv.IsPaid() {
		return AgingBucketCurrent
	}
	return BucketForDays(inv.DaysOutstanding(asOf))
}

// PaymentCount returns the number of payments applied
func (inv *Invoice) PaymentCount() int {
	return len(inv.Payments)
}
