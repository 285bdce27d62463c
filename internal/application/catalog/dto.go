package catalog

import (
	"time"

	"github.com/bizgrid/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	SKU      string          `json:"sku" binding:"required,min=1,max=50"`
	Name     string          `json:"name" binding:"required,min=1,max=200"`
	Brand    string          `json:"brand" binding:"omitempty,max=100"`
	Category string          `json:"category" binding:"omitempty,max=100"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Cost     decimal.Decimal `json:"cost"`
	Stock    *StockInput     `json:"stock"`
}

// StockInput represents stock levels in create/update requests
type StockInput struct {
	Current int64 `json:"current" binding:"min=0"`
	Minimum int64 `json:"minimum" binding:"min=0"`
	Maximum int64 `json:"maximum" binding:"min=0"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name     *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Brand    *string          `json:"brand" binding:"omitempty,max=100"`
	Category *string          `json:"category" binding:"omitempty,max=100"`
	Price    *decimal.Decimal `json:"price"`
	Cost     *decimal.Decimal `json:"cost"`
	Stock    *StockInput      `json:"stock"`
}

// AdjustStockRequest represents a manual stock adjustment. Positive
// quantity adds stock, negative removes it.
type AdjustStockRequest struct {
	Quantity int64 `json:"quantity" binding:"required"`
}

// ListFilter represents filter options for the product list
type ListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Brand    string `form:"brand"`
	Status   string `form:"status"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Brand        string          `json:"brand,omitempty"`
	Category     string          `json:"category,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	StockCurrent int64           `json:"stock_current"`
	StockMinimum int64           `json:"stock_minimum"`
	StockMaximum int64           `json:"stock_maximum"`
	Status       string          `json:"status"`
	BelowMinimum bool            `json:"below_minimum"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product to its API representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		TenantID:     p.TenantID,
		SKU:          p.SKU,
		Name:         p.Name,
		Brand:        p.Brand,
		Category:     p.Category,
		Price:        p.Price,
		Cost:         p.Cost,
		StockCurrent: p.StockCurrent,
		StockMinimum: p.StockMinimum,
		StockMaximum: p.StockMaximum,
		Status:       string(p.Status),
		BelowMinimum: p.BelowMinimum(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out
}
