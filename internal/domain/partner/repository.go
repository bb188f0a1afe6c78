package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// CustomerRepository defines persistence for customers
type CustomerRepository interface {
	Save(ctx context.Context, customer *Customer) error
	Update(ctx context.Context, customer *Customer) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)
	FindByPhoneForTenant(ctx context.Context, tenantID uuid.UUID, phone string) (*Customer, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Customer, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
