package company

import (
	"strings"
	"time"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the company's aggregate credit standing
type PaymentStatus string

const (
	PaymentStatusActive    PaymentStatus = "active"
	PaymentStatusWarning   PaymentStatus = "warning"
	PaymentStatusOverLimit PaymentStatus = "over_limit"
)

// warningRatio is the fraction of the credit limit at which the company
// payment status turns to warning
var warningRatio = decimal.NewFromFloat(0.8)

// Company is the tenant root. Every core entity is owned by exactly one
// company, and the company carries the aggregate payment standing plus the
// append-only sales journal.
type Company struct {
	shared.BaseAggregateRoot
	Code          string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string          `gorm:"type:varchar(200);not null"`
	CreditLimit   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Balance       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a new company (tenant root)
func NewCompany(code, name string) (*Company, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Company code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Company code cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}

	return &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		CreditLimit:       decimal.Zero,
		Balance:           decimal.Zero,
		PaymentStatus:     PaymentStatusActive,
	}, nil
}

// SetCreditLimit sets the company-level credit limit and rederives status
func (c *Company) SetCreditLimit(limit valueobject.Money) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}
	c.CreditLimit = limit.Amount()
	c.derivePaymentStatus()
	c.UpdatedAt = time.Now()
	return nil
}

// AdjustBalance applies a signed delta to the company balance, clamped at
// zero, and rederives the payment status
func (c *Company) AdjustBalance(delta decimal.Decimal) {
	c.Balance = c.Balance.Add(delta)
	if c.Balance.IsNegative() {
		c.Balance = decimal.Zero
	}
	c.derivePaymentStatus()
	c.UpdatedAt = time.Now()
}

// derivePaymentStatus is a pure function of balance vs credit limit
func (c *Company) derivePaymentStatus() {
	if !c.CreditLimit.IsPositive() {
		c.PaymentStatus = PaymentStatusActive
		return
	}
	switch {
	case c.Balance.GreaterThan(c.CreditLimit):
		c.PaymentStatus = PaymentStatusOverLimit
	case c.Balance.GreaterThanOrEqual(c.CreditLimit.Mul(warningRatio)):
		c.PaymentStatus = PaymentStatusWarning
	default:
		c.PaymentStatus = PaymentStatusActive
	}
}

// SalesEntry is one append-only row in a company's sales journal.
// Entries are never mutated or deleted once written.
type SalesEntry struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Total       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentType string          `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesEntry) TableName() string {
	return "company_sales_entries"
}

// NewSalesEntry creates a journal row for one sold line item
func NewSalesEntry(tenantID, orderID, productID uuid.UUID, productName string, quantity int64, unitPrice decimal.Decimal, paymentType string) (*SalesEntry, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	return &SalesEntry{
		ID:          uuid.New(),
		TenantID:    tenantID,
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       unitPrice.Mul(decimal.NewFromInt(quantity)),
		PaymentType: paymentType,
		CreatedAt:   time.Now(),
	}, nil
}
