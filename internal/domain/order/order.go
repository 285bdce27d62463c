package order

import (
	"fmt"
	"time"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// OrderItem represents a line item in an order. Product display fields are
// snapshots taken at order creation and do not follow later catalog edits.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Brand       string          `gorm:"type:varchar(100)"`
	Category    string          `gorm:"type:varchar(100)"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	VATRate     decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"` // Percent
	VATAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity * UnitPrice, excluding VAT
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a new order line item with computed VAT and line total
func NewOrderItem(orderID, productID uuid.UUID, productName string, quantity int64, unitPrice valueobject.Money, vatRate decimal.Decimal) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if vatRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VAT_RATE", "VAT rate cannot be negative")
	}

	now := time.Now()
	qty := decimal.NewFromInt(quantity)
	lineTotal := unitPrice.Amount().Mul(qty)
	vatAmount := lineTotal.Mul(vatRate).Div(oneHundred).Round(4)

	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		VATRate:     vatRate,
		VATAmount:   vatAmount,
		LineTotal:   lineTotal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SetDisplayInfo sets the brand/category snapshots on the line item
func (i *OrderItem) SetDisplayInfo(brand, category string) {
	i.Brand = brand
	i.Category = category
	i.UpdatedAt = time.Now()
}

// PricingPolicy holds the configurable pricing rules applied at checkout
type PricingPolicy struct {
	FreeDeliveryThreshold decimal.Decimal
	DeliveryFee           decimal.Decimal
	Currency              valueobject.Currency
}

// DeliveryCostFor returns the delivery cost for a given subtotal:
// zero at or above the free-delivery threshold, the flat fee below it
func (p PricingPolicy) DeliveryCostFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.FreeDeliveryThreshold) {
		return decimal.Zero
	}
	return p.DeliveryFee
}

// Order represents one purchase transaction. It is the aggregate root for
// the order workflow: pricing is computed once from the line items and the
// review axis owns all subsequent status transitions.
type Order struct {
	shared.TenantAggregateRoot
	OrderNumber   string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_order_tenant_number,priority:2"`
	AccountID     *uuid.UUID      `gorm:"type:uuid;index"` // Stable reference to a registered account
	CustomerName  string          `gorm:"type:varchar(200);not null"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;references:ID"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DeliveryCost  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalVAT      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'USD'"`
	ReviewStatus  ReviewStatus    `gorm:"type:varchar(20);not null;default:'PENDING_REVIEW'"`
	Status        SimpleStatus    `gorm:"type:varchar(20);not null;default:'pending'"` // Derived from ReviewStatus
	PaidAt        *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in the initial review state
func NewOrder(tenantID uuid.UUID, orderNumber, customerName string, accountID *uuid.UUID, method PaymentMethod, createdBy uuid.UUID) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", fmt.Sprintf("Unknown payment method %q", method))
	}

	o := &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		OrderNumber:         orderNumber,
		AccountID:           accountID,
		CustomerName:        customerName,
		Items:               make([]OrderItem, 0),
		PaymentMethod:       method,
		PaymentStatus:       PaymentStatusPending,
		Subtotal:            decimal.Zero,
		DeliveryCost:        decimal.Zero,
		TotalVAT:            decimal.Zero,
		GrandTotal:          decimal.Zero,
		Currency:            string(valueobject.DefaultCurrency),
		ReviewStatus:        ReviewStatusPending,
	}
	o.Status = o.ReviewStatus.SimpleStatus()

	return o, nil
}

// AddItem appends a line item. Only allowed before pricing is finalized.
func (o *Order) AddItem(productID uuid.UUID, productName string, quantity int64, unitPrice valueobject.Money, vatRate decimal.Decimal) (*OrderItem, error) {
	if !o.GrandTotal.IsZero() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items after pricing is finalized")
	}

	item, err := NewOrderItem(o.ID, productID, productName, quantity, unitPrice, vatRate)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.UpdatedAt = time.Now()

	return &o.Items[len(o.Items)-1], nil
}

// FinalizePricing computes the pricing summary from the line items under the
// given policy. Grand total always equals subtotal + delivery cost + total VAT.
func (o *Order) FinalizePricing(policy PricingPolicy) error {
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot price an order without items")
	}

	subtotal := decimal.Zero
	totalVAT := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.LineTotal)
		totalVAT = totalVAT.Add(item.VATAmount)
	}

	o.Subtotal = subtotal
	o.TotalVAT = totalVAT
	o.DeliveryCost = policy.DeliveryCostFor(subtotal)
	o.GrandTotal = subtotal.Add(o.DeliveryCost).Add(totalVAT)
	if policy.Currency != "" {
		o.Currency = string(policy.Currency)
	}
	o.UpdatedAt = time.Now()

	return nil
}

// UpdateCustomerName changes the free-text customer snapshot
func (o *Order) UpdateCustomerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	o.CustomerName = name
	o.UpdatedAt = time.Now()
	return nil
}

// ApplyReviewDecision advances the review axis and rederives the simple
// status. The simple axis is never written by callers directly.
func (o *Order) ApplyReviewDecision(target ReviewStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_REVIEW_STATUS", fmt.Sprintf("Unknown review status %q", target))
	}
	if target == o.ReviewStatus {
		return nil // Idempotent
	}
	if !o.ReviewStatus.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move review status from %s to %s", o.ReviewStatus, target))
	}

	o.ReviewStatus = target
	o.Status = target.SimpleStatus()
	o.UpdatedAt = time.Now()

	return nil
}

// MarkPaid records payment settlement. Valid only once, from pending.
func (o *Order) MarkPaid() error {
	if o.PaymentStatus == PaymentStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Order is already paid")
	}

	now := time.Now()
	o.PaymentStatus = PaymentStatusPaid
	o.PaidAt = &now
	o.UpdatedAt = now

	return nil
}

// IsCreditOrder returns true when the order is paid on customer credit
func (o *Order) IsCreditOrder() bool {
	return o.PaymentMethod == PaymentMethodCredit
}

// IsCancelled returns true when the derived status is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == SimpleStatusCancelled
}

// WasCreatedBy returns true if the given user created this order
func (o *Order) WasCreatedBy(userID uuid.UUID) bool {
	return o.CreatedBy != nil && *o.CreatedBy == userID
}

// TotalQuantity returns the sum of all line quantities
func (o *Order) TotalQuantity() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// GetGrandTotalMoney returns the grand total as Money
func (o *Order) GetGrandTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.GrandTotal)
}
