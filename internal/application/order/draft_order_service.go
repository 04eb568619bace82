package order

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/catalog"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/order"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/partner"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared/valueobject"
)

// DraftOrderService handles the staged order-entry flow: open a draft,
// pick a customer, set product quantities, confirm into a sales order
type DraftOrderService struct {
	scope          TransactionScope
	productRepo    catalog.ProductRepository
	customerRepo   partner.CustomerRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewDraftOrderService creates a new DraftOrderService
func NewDraftOrderService(scope TransactionScope, productRepo catalog.ProductRepository, customerRepo partner.CustomerRepository, logger *zap.Logger) *DraftOrderService {
	return &DraftOrderService{
		scope:        scope,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *DraftOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Open starts a new empty draft
func (s *DraftOrderService) Open(ctx context.Context) (*DraftResponse, error) {
	draft := order.NewDraftOrder()

	var response DraftResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.DraftRepo().Save(ctx, draft); err != nil {
			return err
		}
		response = ToDraftResponse(draft)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Get retrieves a draft by ID
func (s *DraftOrderService) Get(ctx context.Context, draftID uuid.UUID) (*DraftResponse, error) {
	var response DraftResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		draft, err := repos.DraftRepo().FindByID(ctx, draftID)
		if err != nil {
			return err
		}
		response = ToDraftResponse(draft)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// SelectCustomer sets the customer on an open draft
func (s *DraftOrderService) SelectCustomer(ctx context.Context, draftID uuid.UUID, req SelectDraftCustomerRequest) (*DraftResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, draftID, func(draft *order.DraftOrder) error {
		return draft.SelectCustomer(customer.ID, customer.Name)
	})
}

// SetLine stages a product quantity on an open draft. Quantity zero
// removes the product from the draft.
func (s *DraftOrderService) SetLine(ctx context.Context, draftID uuid.UUID, req SetDraftLineRequest) (*DraftResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	quantity, err := valueobject.NewQuantity(req.Quantity)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, draftID, func(draft *order.DraftOrder) error {
		return draft.SetLine(product.ID, product.Name, quantity, product.UnitPrice())
	})
}

// Confirm materializes the draft into a pending sales order
func (s *DraftOrderService) Confirm(ctx context.Context, draftID uuid.UUID) (*OrderResponse, error) {
	var response OrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		draft, err := repos.DraftRepo().FindByID(ctx, draftID)
		if err != nil {
			return err
		}

		orderNumber, err := repos.OrderRepo().GenerateOrderNumber(ctx)
		if err != nil {
			return err
		}

		salesOrder, err := draft.Confirm(orderNumber)
		if err != nil {
			return err
		}

		if err := repos.OrderRepo().Save(ctx, salesOrder); err != nil {
			return err
		}
		if err := repos.DraftRepo().Save(ctx, draft); err != nil {
			return err
		}

		if s.eventPublisher != nil {
			if err := s.eventPublisher.Publish(ctx, salesOrder.GetDomainEvents()...); err != nil {
				s.logger.Warn("failed to publish domain events", zap.Error(err))
			}
		}
		salesOrder.ClearDomainEvents()
		response = ToOrderResponse(salesOrder)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("draft confirmed into sales order",
		zap.String("draft_id", draftID.String()),
		zap.String("order_number", response.OrderNumber))

	return &response, nil
}

// Discard abandons an open draft
func (s *DraftOrderService) Discard(ctx context.Context, draftID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		draft, err := repos.DraftRepo().FindByID(ctx, draftID)
		if err != nil {
			return err
		}
		if err := draft.Discard(); err != nil {
			return err
		}
		return repos.DraftRepo().Save(ctx, draft)
	})
}

// PurgeExpired removes stale drafts, returning how many were deleted
func (s *DraftOrderService) PurgeExpired(ctx context.Context) (int64, error) {
	var purged int64
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		count, err := repos.DraftRepo().DeleteExpired(ctx)
		if err != nil {
			return err
		}
		purged = count
		return nil
	})
	if err != nil {
		return 0, err
	}
	if purged > 0 {
		s.logger.Info("purged expired drafts", zap.Int64("count", purged))
	}
	return purged, nil
}

func (s *DraftOrderService) mutate(ctx context.Context, draftID uuid.UUID, fn func(*order.DraftOrder) error) (*DraftResponse, error) {
	var response DraftResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		draft, err := repos.DraftRepo().FindByID(ctx, draftID)
		if err != nil {
			return err
		}
		if err := fn(draft); err != nil {
			return err
		}
		if err := repos.DraftRepo().Save(ctx, draft); err != nil {
			return err
		}
		response = ToDraftResponse(draft)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}
