package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/catalog"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/inventory"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared/valueobject"
)

// InventoryService handles stock level and movement operations
type InventoryService struct {
	scope          TransactionScope
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(scope TransactionScope, productRepo catalog.ProductRepository, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		scope:       scope,
		productRepo: productRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *InventoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *InventoryService) publishEvents(ctx context.Context, aggregate interface {
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

// AddStock receives stock into a location. Creates the stock level row
// on first receipt for a product-location pair.
func (s *InventoryService) AddStock(ctx context.Context, req AddStockRequest) (*StockLevelResponse, error) {
	quantity, err := valueobject.NewQuantity(req.Quantity)
	if err != nil {
		return nil, err
	}

	var response StockLevelResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		level, err := repos.StockLevelRepo().FindByProductAndLocation(ctx, req.ProductID, req.LocationID)
		if errors.Is(err, shared.ErrNotFound) {
			product, perr := s.productRepo.FindByID(ctx, req.ProductID)
			if perr != nil {
				return perr
			}
			if _, lerr := repos.LocationRepo().FindByID(ctx, req.LocationID); lerr != nil {
				return lerr
			}
			level, err = inventory.NewStockLevel(req.ProductID, req.LocationID, product.Name)
		}
		if err != nil {
			return err
		}

		movement, err := level.AddStock(quantity, req.Reference, req.Remarks)
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
		response = ToStockLevelResponse(level)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock added",
		zap.String("product", response.ProductName),
		zap.Int64("quantity", req.Quantity),
		zap.Int64("level", response.Quantity))

	return &response, nil
}

// RemoveStock removes stock from a location. Rejects the whole request
// if the on-hand quantity does not cover it.
func (s *InventoryService) RemoveStock(ctx context.Context, req RemoveStockRequest) (*StockLevelResponse, error) {
	quantity, err := valueobject.NewQuantity(req.Quantity)
	if err != nil {
		return nil, err
	}

	var response StockLevelResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		level, err := repos.StockLevelRepo().FindByProductAndLocation(ctx, req.ProductID, req.LocationID)
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INSUFFICIENT_STOCK", "No stock recorded for this product at this location")
		}
		if err != nil {
			return err
		}

		movement, err := level.RemoveStock(quantity, req.Reference, req.Remarks)
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
		response = ToStockLevelResponse(level)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock removed",
		zap.String("product", response.ProductName),
		zap.Int64("quantity", req.Quantity),
		zap.Int64("level", response.Quantity))

	return &response, nil
}

// Adjust corrects a stock level to a counted quantity, recording the
// signed difference in the movement log
func (s *InventoryService) Adjust(ctx context.Context, req AdjustStockRequest) (*StockLevelResponse, error) {
	counted, err := valueobject.NewQuantity(req.CountedQuantity)
	if err != nil {
		return nil, err
	}

	var response StockLevelResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		level, err := repos.StockLevelRepo().FindByProductAndLocation(ctx, req.ProductID, req.LocationID)
		if errors.Is(err, shared.ErrNotFound) {
			product, perr := s.productRepo.FindByID(ctx, req.ProductID)
			if perr != nil {
				return perr
			}
			if _, lerr := repos.LocationRepo().FindByID(ctx, req.LocationID); lerr != nil {
				return lerr
			}
			level, err = inventory.NewStockLevel(req.ProductID, req.LocationID, product.Name)
		}
		if err != nil {
			return err
		}

		movement, err := level.Adjust(counted, req.Reason)
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
		response = ToStockLevelResponse(level)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.String("product", response.ProductName),
		zap.Int64("counted", req.CountedQuantity),
		zap.String("reason", req.Reason))

	return &response, nil
}

// GetLevel retrieves the stock level for a product-location pair.
// A pair with no recorded movements reads as zero.
func (s *InventoryService) GetLevel(ctx context.Context, productID, locationID uuid.UUID) (*StockLevelResponse, error) {
	var response StockLevelResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		level, err := repos.StockLevelRepo().FindByProductAndLocation(ctx, productID, locationID)
		if errors.Is(err, shared.ErrNotFound) {
			product, perr := s.productRepo.FindByID(ctx, productID)
			if perr != nil {
				return perr
			}
			response = StockLevelResponse{
				ProductID:   productID,
				ProductName: product.Name,
				LocationID:  locationID,
				Quantity:    0,
			}
			return nil
		}
		if err != nil {
			return err
		}
		response = ToStockLevelResponse(level)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ListLevels lists stock levels with pagination
func (s *InventoryService) ListLevels(ctx context.Context, filter shared.Filter) ([]StockLevelResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	var responses []StockLevelResponse
	var total int64
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		levels, err := repos.StockLevelRepo().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		total, err = repos.StockLevelRepo().Count(ctx, filter)
		if err != nil {
			return err
		}
		responses = ToStockLevelResponses(levels)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// ListLevelsByLocation lists stock levels at one location
func (s *InventoryService) ListLevelsByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]StockLevelResponse, error) {
	var responses []StockLevelResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		levels, err := repos.StockLevelRepo().FindByLocation(ctx, locationID, filter)
		if err != nil {
			return err
		}
		responses = ToStockLevelResponses(levels)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// MovementHistory lists the movement log for a product-location pair,
// newest first
func (s *InventoryService) MovementHistory(ctx context.Context, productID, locationID uuid.UUID, filter MovementHistoryFilter) ([]MovementResponse, error) {
	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}

	var responses []MovementResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		movements, err := repos.MovementRepo().FindByProductAndLocation(ctx, productID, locationID, repoFilter)
		if err != nil {
			return err
		}
		responses = ToMovementResponses(movements)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// CheckLevel compares the cached level against the sum of its movement
// log. A disagreement indicates a write that bypassed the ledger.
func (s *InventoryService) CheckLevel(ctx context.Context, productID, locationID uuid.UUID) (*StockCheckResponse, error) {
	var response StockCheckResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var cached int64
		level, err := repos.StockLevelRepo().FindByProductAndLocation(ctx, productID, locationID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if level != nil {
			cached = level.Quantity
		}

		sum, err := repos.MovementRepo().SumDeltas(ctx, productID, locationID)
		if err != nil {
			return err
		}

		response = StockCheckResponse{
			ProductID:   productID,
			LocationID:  locationID,
			CachedLevel: cached,
			MovementSum: sum,
			InAgreement: cached == sum,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !response.InAgreement {
		s.logger.Warn("stock level disagrees with movement log",
			zap.String("product_id", productID.String()),
			zap.Int64("cached", response.CachedLevel),
			zap.Int64("sum", response.MovementSum))
	}

	return &response, nil
}

// CreateLocation creates a stock location
func (s *InventoryService) CreateLocation(ctx context.Context, req CreateLocationRequest) (*LocationResponse, error) {
	var response LocationResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.LocationRepo().FindByName(ctx, req.Name)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if existing != nil {
			return shared.NewDomainError("DUPLICATE_LOCATION", "A location with this name already exists")
		}

		location, err := inventory.NewStockLocation(req.Name, req.Description)
		if err != nil {
			return err
		}
		if err := repos.LocationRepo().Save(ctx, location); err != nil {
			return err
		}
		response = ToLocationResponse(location)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock location created", zap.String("name", response.Name))
	return &response, nil
}

// ListLocations lists active stock locations
func (s *InventoryService) ListLocations(ctx context.Context) ([]LocationResponse, error) {
	var responses []LocationResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		locations, err := repos.LocationRepo().FindActive(ctx)
		if err != nil {
			return err
		}
		responses = make([]LocationResponse, len(locations))
		for i := range locations {
			responses[i] = ToLocationResponse(&locations[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}
