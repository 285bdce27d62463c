package catalog

import (
	"context"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the persistence contract for products.
// Every read and write is tenant-scoped; there is no global query path.
type ProductRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*Product, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error)
	Save(ctx context.Context, product *Product) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// ReserveStock atomically decrements stock and rederives status in a single
	// statement, so two racing reservations cannot both observe pre-decrement
	// stock. Returns ErrInsufficientStock under OversellReject when the
	// decrement would go below zero, ErrNotFound when the product does not
	// exist within the tenant.
	ReserveStock(ctx context.Context, tenantID, productID uuid.UUID, quantity int64, policy OversellPolicy) error

	// ReleaseStock atomically increments stock and rederives status.
	ReleaseStock(ctx context.Context, tenantID, productID uuid.UUID, quantity int64) error
}
