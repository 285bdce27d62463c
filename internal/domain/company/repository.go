package company

import (
	"context"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyRepository defines the persistence contract for the tenant root
type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindByCode(ctx context.Context, code string) (*Company, error)
	Save(ctx context.Context, c *Company) error
}

// SalesJournalRepository is the append-only store for company sales entries.
// The contract deliberately exposes no update or delete operation.
type SalesJournalRepository interface {
	Append(ctx context.Context, entries []SalesEntry) error
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SalesEntry, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]SalesEntry, error)
}
