package company

import (
	"time"

	"github.com/bizgrid/backend/internal/domain/company"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JournalListFilter represents filter options for the sales journal
type JournalListFilter struct {
	OrderID     *uuid.UUID `form:"order_id"`
	ProductID   *uuid.UUID `form:"product_id"`
	PaymentType string     `form:"payment_type"`
	DateFrom    *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo      *time.Time `form:"date_to" time_format:"2006-01-02"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// SalesEntryResponse represents one journal row in API responses
type SalesEntryResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	PaymentType string          `json:"payment_type"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CompanyResponse represents the company standing in API responses
type CompanyResponse struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	CreditLimit   decimal.Decimal `json:"credit_limit"`
	Balance       decimal.Decimal `json:"balance"`
	PaymentStatus string          `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToSalesEntryResponse converts a journal row to its API representation
func ToSalesEntryResponse(e *company.SalesEntry) SalesEntryResponse {
	return SalesEntryResponse{
		ID:          e.ID,
		OrderID:     e.OrderID,
		ProductID:   e.ProductID,
		ProductName: e.ProductName,
		Quantity:    e.Quantity,
		UnitPrice:   e.UnitPrice,
		Total:       e.Total,
		PaymentType: e.PaymentType,
		CreatedAt:   e.CreatedAt,
	}
}

// ToSalesEntryResponses converts a slice of journal rows
func ToSalesEntryResponses(entries []company.SalesEntry) []SalesEntryResponse {
	out := make([]SalesEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, ToSalesEntryResponse(&entries[i]))
	}
	return out
}

// ToCompanyResponse converts the company standing to its API representation
func ToCompanyResponse(c *company.Company) CompanyResponse {
	return CompanyResponse{
		ID:            c.ID,
		Code:          c.Code,
		Name:          c.Name,
		CreditLimit:   c.CreditLimit,
		Balance:       c.Balance,
		PaymentStatus: string(c.PaymentStatus),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
