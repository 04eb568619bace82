package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/billing"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared/valueobject"
)

// BillingService handles invoice generation and payment tracking
type BillingService struct {
	scope          TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewBillingService creates a new BillingService
func NewBillingService(scope TransactionScope, logger *zap.Logger) *BillingService {
	return &BillingService{
		scope:  scope,
		logger: logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *BillingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *BillingService) publishEvents(ctx context.Context, aggregate interface {
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

// GenerateInvoice creates the invoice for a delivered order and moves
// the order to BILLED. The invoice total freezes the order total at
// this moment. Calling it again for the same order returns the
// existing invoice unchanged.
func (s *BillingService) GenerateInvoice(ctx context.Context, req GenerateInvoiceRequest) (*InvoiceResponse, error) {
	var response InvoiceResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.InvoiceRepo().FindByOrderID(ctx, req.OrderID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if existing != nil {
			response = ToInvoiceResponse(existing)
			return nil
		}

		salesOrder, err := repos.OrderRepo().FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}

		invoice, err := billing.NewInvoice(salesOrder.ID, salesOrder.OrderNumber, salesOrder.CustomerID, salesOrder.CustomerName, salesOrder.GetTotalAmountMoney(), req.DueDate)
		if err != nil {
			return err
		}
		if req.Remarks != "" {
			invoice.SetRemarks(req.Remarks)
		}

		if err := salesOrder.Bill(); err != nil {
			return err
		}

		// invoice numbers are short, regenerate on the rare collision
		for attempts := 0; attempts < 3; attempts++ {
			_, lookupErr := repos.InvoiceRepo().FindByInvoiceNumber(ctx, invoice.InvoiceNumber)
			if errors.Is(lookupErr, shared.ErrNotFound) {
				break
			}
			if lookupErr != nil {
				return lookupErr
			}
			invoice.InvoiceNumber = billing.NewInvoiceNumber()
		}

		if err := repos.OrderRepo().SaveWithLock(ctx, salesOrder); err != nil {
			return err
		}
		if err := repos.InvoiceRepo().Save(ctx, invoice); err != nil {
			return err
		}

		s.publishEvents(ctx, invoice)
		s.publishEvents(ctx, salesOrder)
		response = ToInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("invoice generated",
		zap.String("invoice_number", response.InvoiceNumber),
		zap.String("order_number", response.OrderNumber),
		zap.String("total", response.TotalAmount.StringFixed(2)))

	return &response, nil
}

// RecordPayment applies a payment to an invoice. Payments that exceed
// the outstanding balance are rejected whole.
func (s *BillingService) RecordPayment(ctx context.Context, invoiceID uuid.UUID, req RecordPaymentRequest) (*InvoiceResponse, error) {
	amount := valueobject.NewMoneyINR(req.Amount)

	response, err := s.mutate(ctx, invoiceID, func(invoice *billing.Invoice) error {
		return invoice.RecordPayment(amount, req.Method, req.Reference, req.Remark)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.String("invoice_number", response.InvoiceNumber),
		zap.String("amount", req.Amount.StringFixed(2)),
		zap.String("status", response.PaymentStatus))

	return response, nil
}

// Settle records a payment for the full outstanding balance
func (s *BillingService) Settle(ctx context.Context, invoiceID uuid.UUID, req SettleInvoiceRequest) (*InvoiceResponse, error) {
	response, err := s.mutate(ctx, invoiceID, func(invoice *billing.Invoice) error {
		return invoice.MarkFullyPaid(req.Method, req.Reference, req.Remark)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("invoice settled", zap.String("invoice_number", response.InvoiceNumber))
	return response, nil
}

// GetByID retrieves an invoice by ID
func (s *BillingService) GetByID(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	var response InvoiceResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		response = ToInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByInvoiceNumber retrieves an invoice by its number
func (s *BillingService) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*InvoiceResponse, error) {
	var response InvoiceResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByInvoiceNumber(ctx, invoiceNumber)
		if err != nil {
			return err
		}
		response = ToInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByOrderID retrieves the invoice for an order
func (s *BillingService) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*InvoiceResponse, error) {
	var response InvoiceResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		response = ToInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List lists invoices with filtering and pagination
func (s *BillingService) List(ctx context.Context, filter InvoiceListFilter) ([]InvoiceListItemResponse, int64, error) {
	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	repoFilter.OrderBy = "invoice_date"
	repoFilter.OrderDir = "desc"

	var responses []InvoiceListItemResponse
	var total int64
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var invoices []billing.Invoice
		var err error

		switch {
		case filter.CustomerID != nil:
			invoices, err = repos.InvoiceRepo().FindByCustomer(ctx, *filter.CustomerID, repoFilter)
		case filter.PaymentStatus != "":
			invoices, err = repos.InvoiceRepo().FindByPaymentStatus(ctx, billing.PaymentStatus(filter.PaymentStatus), repoFilter)
		default:
			invoices, err = repos.InvoiceRepo().FindAll(ctx, repoFilter)
		}
		if err != nil {
			return err
		}

		total, err = repos.InvoiceRepo().Count(ctx, repoFilter)
		if err != nil {
			return err
		}

		responses = ToInvoiceListItemResponses(invoices)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// ListOutstanding lists invoices with a non-zero balance, each placed
// in its aging bucket as of now
func (s *BillingService) ListOutstanding(ctx context.Context, filter shared.Filter) ([]AgingLineResponse, error) {
	asOf := time.Now()

	var responses []AgingLineResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoices, err := repos.InvoiceRepo().FindOutstanding(ctx, filter)
		if err != nil {
			return err
		}

		responses = make([]AgingLineResponse, len(invoices))
		for i := range invoices {
			inv := &invoices[i]
			responses[i] = AgingLineResponse{
				InvoiceNumber:   inv.InvoiceNumber,
				CustomerName:    inv.CustomerName,
				Balance:         inv.Balance(),
				DaysOutstanding: inv.DaysOutstanding(asOf),
				Bucket:          string(inv.AgingBucket(asOf)),
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (s *BillingService) mutate(ctx context.Context, invoiceID uuid.UUID, fn func(*billing.Invoice) error) (*InvoiceResponse, error) {
	var response InvoiceResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if err := fn(invoice); err != nil {
			return err
		}
		if err := repos.InvoiceRepo().SaveWithLock(ctx, invoice); err != nil {
			return err
		}
		s.publishEvents(ctx, invoice)
		response = ToInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}
