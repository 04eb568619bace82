package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// BrandRepository defines the interface for brand persistence
type BrandRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Brand, error)
	FindByName(ctx context.Context, name string) (*Brand, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Brand, error)
	Save(ctx context.Context, brand *Brand) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindByBrand(ctx context.Context, brandID uuid.UUID, filter shared.Filter) ([]Product, error)
	FindActive(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
