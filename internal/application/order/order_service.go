package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/catalog"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/order"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/partner"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared/valueobject"
)

// OrderService handles sales order business operations
type OrderService struct {
	scope          TransactionScope
	productRepo    catalog.ProductRepository
	customerRepo   partner.CustomerRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(scope TransactionScope, productRepo catalog.ProductRepository, customerRepo partner.CustomerRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		scope:        scope,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *OrderService) publishEvents(ctx context.Context, aggregate interface {
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

// Create creates a new sales order in PENDING status. Line prices are
// captured from the product's current MRP.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	var response OrderResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		orderNumber, err := repos.OrderRepo().GenerateOrderNumber(ctx)
		if err != nil {
			return err
		}

		salesOrder, err := order.NewSalesOrder(orderNumber, customer.ID, customer.Name)
		if err != nil {
			return err
		}

		for _, line := range req.Lines {
			product, err := s.productRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			quantity, err := valueobject.NewQuantity(line.Quantity)
			if err != nil {
				return err
			}
			if _, err := salesOrder.AddLine(product.ID, product.Name, quantity, product.UnitPrice()); err != nil {
				return err
			}
		}

		if req.Remarks != "" {
			salesOrder.SetRemarks(req.Remarks)
		}

		if err := repos.OrderRepo().Save(ctx, salesOrder); err != nil {
			return err
		}

		s.publishEvents(ctx, salesOrder)
		response = ToOrderResponse(salesOrder)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sales order created",
		zap.String("order_number", response.OrderNumber),
		zap.String("customer", response.CustomerName))

	return &response, nil
}

// GetByID retrieves a sales order by ID
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	var response OrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		salesOrder, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		response = ToOrderResponse(salesOrder)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByOrderNumber retrieves a sales order by order number
func (s *OrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	var response OrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		salesOrder, err := repos.OrderRepo().FindByOrderNumber(ctx, orderNumber)
		if err != nil {
			return err
		}
		response = ToOrderResponse(salesOrder)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves sales orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	var items []OrderListItemResponse
	var total int64
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		orders, err := repos.OrderRepo().FindAll(ctx, domainFilter)
		if err != nil {
			return err
		}
		total, err = repos.OrderRepo().Count(ctx, domainFilter)
		if err != nil {
			return err
		}
		items = ToOrderListItemResponses(orders)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// AddLine adds a line to an editable order, pricing it at the
// product's current MRP
func (s *OrderService) AddLine(ctx context.Context, orderID uuid.UUID, req AddLineRequest) (*OrderResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	quantity, err := valueobject.NewQuantity(req.Quantity)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, orderID, func(salesOrder *order.SalesOrder) error {
		_, err := salesOrder.AddLine(product.ID, product.Name, quantity, product.UnitPrice())
		return err
	})
}

// UpdateLineQuantity changes a line quantity on an editable order
func (s *OrderService) UpdateLineQuantity(ctx context.Context, orderID, lineID uuid.UUID, req UpdateLineQuantityRequest) (*OrderResponse, error) {
	quantity, err := valueobject.NewQuantity(req.Quantity)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, orderID, func(salesOrder *order.SalesOrder) error {
		return salesOrder.UpdateLineQuantity(lineID, quantity)
	})
}

// RemoveLine removes a line from an editable order
func (s *OrderService) RemoveLine(ctx context.Context, orderID, lineID uuid.UUID) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, func(salesOrder *order.SalesOrder) error {
		return salesOrder.RemoveLine(lineID)
	})
}

// Confirm confirms a pending order
func (s *OrderService) Confirm(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, func(salesOrder *order.SalesOrder) error {
		return salesOrder.Confirm()
	})
}

// Cancel cancels an order from any non-terminal state. Cancelling a
// delivered order returns every line to the stock location it was
// delivered from, in the same transaction as the status change.
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	var response OrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		salesOrder, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		wasDelivered := salesOrder.Status == order.StatusDelivered

		if err := salesOrder.Cancel(req.Reason); err != nil {
			return err
		}

		if wasDelivered && salesOrder.DeliveryLocationID != nil {
			for _, line := range salesOrder.Lines {
				level, err := repos.StockLevelRepo().FindByProductAndLocation(ctx, line.ProductID, *salesOrder.DeliveryLocationID)
				if err != nil {
					return err
				}
				quantity, err := valueobject.NewQuantity(line.Quantity)
				if err != nil {
					return err
				}
				movement, err := level.AddStock(quantity, salesOrder.OrderNumber, "order cancellation restock")
				if err != nil {
					return err
				}
				if err := repos.StockLevelRepo().SaveWithLock(ctx, level); err != nil {
					return err
				}
				if err := repos.MovementRepo().Append(ctx, movement); err != nil {
					return err
				}
				s.publishEvents(ctx, level)
			}
		}

		if err := repos.OrderRepo().SaveWithLock(ctx, salesOrder); err != nil {
			return err
		}
		s.publishEvents(ctx, salesOrder)
		response = ToOrderResponse(salesOrder)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sales order cancelled",
		zap.String("order_number", response.OrderNumber))

	return &response, nil
}

// mutate loads an order, applies the change, and saves with the
// version check inside one transaction
func (s *OrderService) mutate(ctx context.Context, orderID uuid.UUID, fn func(*order.SalesOrder) error) (*OrderResponse, error) {
	var response OrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		salesOrder, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := fn(salesOrder); err != nil {
			return err
		}
		if err := repos.OrderRepo().SaveWithLock(ctx, salesOrder); err != nil {
			return err
		}
		s.publishEvents(ctx, salesOrder)
		response = ToOrderResponse(salesOrder)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Deliver marks a confirmed order as delivered and deducts stock for
// every line at the given location, all in one transaction. If any
// line lacks sufficient stock the whole delivery is rejected.
func (s *OrderService) Deliver(ctx context.Context, orderID uuid.UUID, req DeliverOrderRequest) (*OrderResponse, error) {
	var response OrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		salesOrder, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		if err := salesOrder.Deliver(req.LocationID); err != nil {
			return err
		}

		for _, line := range salesOrder.Lines {
			level, err := repos.StockLevelRepo().FindByProductAndLocation(ctx, line.ProductID, req.LocationID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("INSUFFICIENT_STOCK", "No stock recorded for "+line.ProductName)
				}
				return err
			}

			quantity, err := valueobject.NewQuantity(line.Quantity)
			if err != nil {
				return err
			}
			movement, err := level.RemoveStock(quantity, salesOrder.OrderNumber, "order delivery")
			if err != nil {
				return err
			}

			if err := repos.StockLevelRepo().SaveWithLock(ctx, level); err != nil {
				return err
			}
			if err := repos.MovementRepo().Append(ctx, movement); err != nil {
				return err
			}
			s.publishEvents(ctx, level)
		}

		if err := repos.OrderRepo().SaveWithLock(ctx, salesOrder); err != nil {
			return err
		}
		s.publishEvents(ctx, salesOrder)
		response = ToOrderResponse(salesOrder)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sales order delivered",
		zap.String("order_number", response.OrderNumber),
		zap.String("location_id", req.LocationID.String()))

	return &response, nil
}
