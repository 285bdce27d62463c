package company

import (
	"context"

	"github.com/bizgrid/backend/internal/domain/company"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// JournalService exposes read access to the append-only sales journal and
// the company credit standing. Journal rows are written only by the order
// workflow, inside the order transaction.
type JournalService struct {
	companyRepo company.CompanyRepository
	journalRepo company.SalesJournalRepository
}

// NewJournalService creates a new JournalService
func NewJournalService(companyRepo company.CompanyRepository, journalRepo company.SalesJournalRepository) *JournalService {
	return &JournalService{
		companyRepo: companyRepo,
		journalRepo: journalRepo,
	}
}

// GetCompany returns the tenant's company standing
func (s *JournalService) GetCompany(ctx context.Context, tenantID uuid.UUID) (*CompanyResponse, error) {
	c, err := s.companyRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	resp := ToCompanyResponse(c)
	return &resp, nil
}

// ListEntries retrieves journal rows with filtering and pagination
func (s *JournalService) ListEntries(ctx context.Context, tenantID uuid.UUID, filter JournalListFilter) ([]SalesEntryResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
	if filter.OrderID != nil {
		domainFilter.Filters["order_id"] = *filter.OrderID
	}
	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}
	if filter.PaymentType != "" {
		domainFilter.Filters["payment_type"] = filter.PaymentType
	}
	if filter.DateFrom != nil {
		domainFilter.Filters["date_from"] = *filter.DateFrom
	}
	if filter.DateTo != nil {
		domainFilter.Filters["date_to"] = *filter.DateTo
	}

	entries, err := s.journalRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.journalRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSalesEntryResponses(entries), total, nil
}

// EntriesForOrder retrieves the journal rows written for one order
func (s *JournalService) EntriesForOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]SalesEntryResponse, error) {
	entries, err := s.journalRepo.FindByOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	return ToSalesEntryResponses(entries), nil
}
