package catalog

import (
	"strings"
	"time"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product.
// It is derived from stock: out_of_stock exactly when stock reaches zero.
type ProductStatus string

const (
	ProductStatusActive     ProductStatus = "active"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
)

// OversellPolicy controls what happens when a reservation exceeds available stock
type OversellPolicy string

const (
	// OversellReject fails the reservation with INSUFFICIENT_STOCK
	OversellReject OversellPolicy = "reject"
	// OversellClamp decrements to zero and lets the order proceed
	OversellClamp OversellPolicy = "clamp"
)

// IsValid checks if the policy is a known OversellPolicy
func (p OversellPolicy) IsValid() bool {
	return p == OversellReject || p == OversellClamp
}

// Product represents a sellable SKU owned by a tenant.
// It is the aggregate root for catalog operations; stock mutations go through
// the inventory service, which uses Reserve/Release as the reference semantics.
type Product struct {
	shared.TenantAggregateRoot
	SKU          string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_product_tenant_sku,priority:2"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Brand        string          `gorm:"type:varchar(100)"`
	Category     string          `gorm:"type:varchar(100)"`
	Price        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Selling price
	Cost         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Purchase cost
	StockCurrent int64           `gorm:"not null;default:0"`
	StockMinimum int64           `gorm:"not null;default:0"`
	StockMaximum int64           `gorm:"not null;default:0"`
	Status       ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(tenantID uuid.UUID, sku, name string, price, cost valueobject.Money) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if cost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}

	product := &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SKU:                 strings.ToUpper(sku),
		Name:                name,
		Price:               price.Amount(),
		Cost:                cost.Amount(),
		Status:              ProductStatusOutOfStock,
	}

	return product, nil
}

// SetDisplayInfo sets the brand and category display fields
func (p *Product) SetDisplayInfo(brand, category string) {
	p.Brand = brand
	p.Category = category
	p.UpdatedAt = time.Now()
}

// Rename changes the product display name
func (p *Product) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	return nil
}

// SetPricing updates the selling price and purchase cost
func (p *Product) SetPricing(price, cost valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}
	p.Price = price.Amount()
	p.Cost = cost.Amount()
	p.UpdatedAt = time.Now()
	return nil
}

// SetStockLevels sets the stock thresholds and current quantity
func (p *Product) SetStockLevels(current, minimum, maximum int64) error {
	if current < 0 || minimum < 0 || maximum < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock levels cannot be negative")
	}
	if maximum > 0 && minimum > maximum {
		return shared.NewDomainError("INVALID_STOCK", "Minimum stock cannot exceed maximum")
	}

	p.StockCurrent = current
	p.StockMinimum = minimum
	p.StockMaximum = maximum
	p.deriveStatus()
	p.UpdatedAt = time.Now()

	return nil
}

// Reserve decrements current stock by quantity.
// Under OversellReject the reservation fails when quantity exceeds stock;
// under OversellClamp the stock is clamped at zero and the reservation succeeds.
// Stock never goes negative in either mode.
func (p *Product) Reserve(quantity int64, policy OversellPolicy) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if p.StockCurrent < quantity {
		if policy == OversellReject {
			return shared.ErrInsufficientStock
		}
		p.StockCurrent = 0
	} else {
		p.StockCurrent -= quantity
	}

	p.deriveStatus()
	p.UpdatedAt = time.Now()

	return nil
}

// Release increments current stock by quantity, used when an order is
// deleted or cancelled
func (p *Product) Release(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	p.StockCurrent += quantity
	p.deriveStatus()
	p.UpdatedAt = time.Now()

	return nil
}

// deriveStatus recomputes status as a pure function of current stock
func (p *Product) deriveStatus() {
	if p.StockCurrent == 0 {
		p.Status = ProductStatusOutOfStock
	} else {
		p.Status = ProductStatusActive
	}
}

// IsOutOfStock returns true if no stock is available
func (p *Product) IsOutOfStock() bool {
	return p.StockCurrent == 0
}

// BelowMinimum returns true if current stock is below the minimum threshold
func (p *Product) BelowMinimum() bool {
	return p.StockMinimum > 0 && p.StockCurrent < p.StockMinimum
}

// GetPriceMoney returns the selling price as Money
func (p *Product) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Price)
}

// GetCostMoney returns the purchase cost as Money
func (p *Product) GetCostMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Cost)
}

func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
