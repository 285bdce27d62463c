package persistence

import (
	"context"
	"time"

	"github.com/bizgrid/backend/internal/domain/company"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSalesJournalRepository implements company.SalesJournalRepository using
// GORM. The journal is append-only: this type exposes no update or delete
// path and uses Create rather than Save so an existing row can never be
// overwritten.
type GormSalesJournalRepository struct {
	db *gorm.DB
}

// NewGormSalesJournalRepository creates a new GormSalesJournalRepository
func NewGormSalesJournalRepository(db *gorm.DB) *GormSalesJournalRepository {
	return &GormSalesJournalRepository{db: db}
}

// Append writes new journal entries
func (r *GormSalesJournalRepository) Append(ctx context.Context, entries []company.SalesEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

// FindAllForTenant finds journal entries for a tenant
func (r *GormSalesJournalRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]company.SalesEntry, error) {
	var entries []company.SalesEntry
	query := r.applyFilter(r.db.WithContext(ctx).Model(&company.SalesEntry{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CountForTenant counts journal entries for a tenant
func (r *GormSalesJournalRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&company.SalesEntry{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByOrder finds all journal entries written for a specific order
func (r *GormSalesJournalRepository) FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]company.SalesEntry, error) {
	var entries []company.SalesEntry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// applyFilter applies filter options to the query
func (r *GormSalesJournalRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering
	orderBy := ValidateSortField(filter.OrderBy, SalesEntrySortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormSalesJournalRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("product_name ILIKE ?", searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "order_id":
			query = query.Where("order_id = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "payment_type":
			query = query.Where("payment_type = ?", value)
		case "date_from":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "date_to":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormSalesJournalRepository implements SalesJournalRepository
var _ company.SalesJournalRepository = (*GormSalesJournalRepository)(nil)
