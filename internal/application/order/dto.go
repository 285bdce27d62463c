package order

import (
	"time"

	"github.com/bizgrid/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest represents a request to create an order
type CreateOrderRequest struct {
	AccountID     *uuid.UUID             `json:"account_id"`
	CustomerName  string                 `json:"customer_name" binding:"omitempty,min=1,max=200"`
	Items         []CreateOrderItemInput `json:"items" binding:"required,min=1,dive"`
	PaymentMethod order.PaymentMethod    `json:"payment_method" binding:"required"`
}

// CreateOrderItemInput represents one line item in the create request.
// UnitPrice is optional and defaults to the catalog price.
type CreateOrderItemInput struct {
	ProductID   uuid.UUID        `json:"product_id" binding:"required"`
	ProductName string           `json:"product_name" binding:"omitempty,max=200"`
	Quantity    int64            `json:"quantity" binding:"required,min=1"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	VATRate     decimal.Decimal  `json:"vat_rate"`
}

// UpdateOrderRequest represents a request to update an order. A review
// decision requires a reviewer role; the tenant reference is immutable.
type UpdateOrderRequest struct {
	CustomerName  *string              `json:"customer_name" binding:"omitempty,min=1,max=200"`
	PaymentStatus *order.PaymentStatus `json:"payment_status"`
	ReviewStatus  *order.ReviewStatus  `json:"review_status"`
}

// UpdateOrderStatusRequest represents a status-only update
type UpdateOrderStatusRequest struct {
	ReviewStatus order.ReviewStatus `json:"review_status" binding:"required"`
}

// ListFilter represents filter options for the order list
type ListFilter struct {
	Search        string     `form:"search"`
	Status        string     `form:"status"`
	ReviewStatus  string     `form:"review_status"`
	PaymentStatus string     `form:"payment_status"`
	SalesmanID    *uuid.UUID `form:"salesman_id"`
	DateFrom      *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo        *time.Time `form:"date_to" time_format:"2006-01-02"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse represents an order line item in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Brand       string          `json:"brand,omitempty"`
	Category    string          `json:"category,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	VATAmount   decimal.Decimal `json:"vat_amount"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	TenantID      uuid.UUID           `json:"tenant_id"`
	OrderNumber   string              `json:"order_number"`
	AccountID     *uuid.UUID          `json:"account_id,omitempty"`
	CustomerName  string              `json:"customer_name"`
	Items         []OrderItemResponse `json:"items"`
	PaymentMethod string              `json:"payment_method"`
	PaymentStatus string              `json:"payment_status"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	DeliveryCost  decimal.Decimal     `json:"delivery_cost"`
	TotalVAT      decimal.Decimal     `json:"total_vat"`
	GrandTotal    decimal.Decimal     `json:"grand_total"`
	Currency      string              `json:"currency"`
	ReviewStatus  string              `json:"review_status"`
	Status        string              `json:"status"`
	CreatedBy     *uuid.UUID          `json:"created_by,omitempty"`
	PaidAt        *time.Time          `json:"paid_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// OrderListItemResponse is the compact order representation for lists
type OrderListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"order_number"`
	CustomerName  string          `json:"customer_name"`
	ItemCount     int             `json:"item_count"`
	TotalQuantity int64           `json:"total_quantity"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	Status        string          `json:"status"`
	ReviewStatus  string          `json:"review_status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToOrderResponse converts a domain order to its API representation
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Brand:       item.Brand,
			Category:    item.Category,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			VATRate:     item.VATRate,
			VATAmount:   item.VATAmount,
			LineTotal:   item.LineTotal,
		})
	}

	return OrderResponse{
		ID:            o.ID,
		TenantID:      o.TenantID,
		OrderNumber:   o.OrderNumber,
		AccountID:     o.AccountID,
		CustomerName:  o.CustomerName,
		Items:         items,
		PaymentMethod: string(o.PaymentMethod),
		PaymentStatus: string(o.PaymentStatus),
		Subtotal:      o.Subtotal,
		DeliveryCost:  o.DeliveryCost,
		TotalVAT:      o.TotalVAT,
		GrandTotal:    o.GrandTotal,
		Currency:      o.Currency,
		ReviewStatus:  string(o.ReviewStatus),
		Status:        string(o.Status),
		CreatedBy:     o.CreatedBy,
		PaidAt:        o.PaidAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// ToOrderListItemResponses converts domain orders to the list representation
func ToOrderListItemResponses(orders []*order.Order) []OrderListItemResponse {
	out := make([]OrderListItemResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderListItemResponse{
			ID:            o.ID,
			OrderNumber:   o.OrderNumber,
			CustomerName:  o.CustomerName,
			ItemCount:     len(o.Items),
			TotalQuantity: o.TotalQuantity(),
			GrandTotal:    o.GrandTotal,
			Currency:      o.Currency,
			PaymentMethod: string(o.PaymentMethod),
			PaymentStatus: string(o.PaymentStatus),
			Status:        string(o.Status),
			ReviewStatus:  string(o.ReviewStatus),
			CreatedAt:     o.CreatedAt,
		})
	}
	return out
}
