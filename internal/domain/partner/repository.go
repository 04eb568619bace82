package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Customer, error)
	FindByType(ctx context.Context, typeID uuid.UUID, filter shared.Filter) ([]Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// CustomerTypeRepository defines the interface for customer type persistence
type CustomerTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CustomerType, error)
	FindByName(ctx context.Context, name string) (*CustomerType, error)
	FindAll(ctx context.Context) ([]CustomerType, error)
	Save(ctx context.Context, customerType *CustomerType) error
}

// ParticipantResolver resolves expense-split participant references to
// customer identities. Unresolvable participants are reported, not fatal.
type ParticipantResolver interface {
	Resolve(ctx context.Context, id uuid.UUID) (*Customer, error)
}
