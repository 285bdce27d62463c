package order

import (
	"context"
	"time"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter holds the order listing filters on top of shared pagination
type Filter struct {
	shared.Filter
	Status        SimpleStatus
	ReviewStatus  ReviewStatus
	PaymentStatus PaymentStatus
	CreatedBy     *uuid.UUID
	DateFrom      *time.Time
	DateTo        *time.Time
}

// Repository defines the persistence contract for orders. All reads and
// deletes are tenant scoped; there is no cross-tenant lookup path.
type Repository interface {
	// FindByIDForTenant loads an order with its items within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// FindByOrderNumberForTenant loads an order by its business number
	FindByOrderNumberForTenant(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*Order, error)

	// FindAllForTenant returns orders matching the filter
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) ([]*Order, error)

	// CountForTenant returns the number of orders matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) (int64, error)

	// Save persists an order and its items
	Save(ctx context.Context, o *Order) error

	// SaveWithLock persists an order using optimistic concurrency on Version
	SaveWithLock(ctx context.Context, o *Order) error

	// DeleteForTenant removes an order and its items within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// GenerateOrderNumber produces the next sequential order number for the
	// tenant and year, in the form ORD-YYYY-NNNNN
	GenerateOrderNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}
