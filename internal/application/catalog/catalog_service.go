package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/catalog"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared/valueobject"
)

// CatalogService handles brand and product management
type CatalogService struct {
	brandRepo   catalog.BrandRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(brandRepo catalog.BrandRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		brandRepo:   brandRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// CreateBrand creates a brand with a unique name
func (s *CatalogService) CreateBrand(ctx context.Context, req CreateBrandRequest) (*BrandResponse, error) {
	existing, err := s.brandRepo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A brand with this name already exists")
	}

	brand, err := catalog.NewBrand(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}

	s.logger.Info("brand created",
		zap.String("brand_id", brand.ID.String()),
		zap.String("name", brand.Name))

	resp := ToBrandResponse(brand)
	return &resp, nil
}

// ListBrands lists all brands
func (s *CatalogService) ListBrands(ctx context.Context) ([]BrandResponse, error) {
	brands, err := s.brandRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	responses := make([]BrandResponse, len(brands))
	for i := range brands {
		responses[i] = ToBrandResponse(&brands[i])
	}
	return responses, nil
}

// CreateProduct creates a product under a brand
func (s *CatalogService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.brandRepo.FindByID(ctx, req.BrandID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_BRAND", "Brand does not exist")
		}
		return nil, err
	}

	product, err := catalog.NewProduct(req.BrandID, req.Name, valueobject.NewMoneyINR(req.MRP), req.Margin, req.WeightGms)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	if req.PTR.IsPositive() {
		if err := product.SetPTR(valueobject.NewMoneyINR(req.PTR)); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// ListProducts lists products with pagination and filters
func (s *CatalogService) ListProducts(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	repoFilter.Search = filter.Search

	var products []catalog.Product
	var err error
	switch {
	case filter.BrandID != nil:
		products, err = s.productRepo.FindByBrand(ctx, *filter.BrandID, repoFilter)
	case filter.ActiveOnly:
		products, err = s.productRepo.FindActive(ctx, repoFilter)
	default:
		products, err = s.productRepo.FindAll(ctx, repoFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// UpdateProductPricing changes the MRP and margin of a product.
// Existing order lines keep the price captured at line creation.
func (s *CatalogService) UpdateProductPricing(ctx context.Context, productID uuid.UUID, req UpdateProductPricingRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.UpdatePricing(valueobject.NewMoneyINR(req.MRP), req.Margin); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// DeactivateProduct removes a product from new orders without deleting it
func (s *CatalogService) DeactivateProduct(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.Deactivate()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// ActivateProduct makes a product orderable again
func (s *CatalogService) ActivateProduct(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.Activate()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}
