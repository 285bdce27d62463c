package partner

import (
	"time"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountStatus represents the status of a customer account
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusInactive  AccountStatus = "inactive"
	AccountStatusSuspended AccountStatus = "suspended" // Suspended due to credit issues
)

// Account represents a customer/client record owned by a tenant.
// It is the aggregate root for the credit ledger: Balance is the outstanding
// credit owed by the customer and only Debit/Credit may mutate it.
type Account struct {
	shared.TenantAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null;uniqueIndex:idx_account_tenant_name,priority:2"`
	ContactName string          `gorm:"type:varchar(100)"`
	Phone       string          `gorm:"type:varchar(50)"`
	Email       string          `gorm:"type:varchar(200);index"`
	Address     string          `gorm:"type:text"`
	CreditLimit decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Balance     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Outstanding credit owed
	Status      AccountStatus   `gorm:"type:varchar(20);not null;default:'active'"`
	Notes       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// NewAccount creates a new customer account
func NewAccount(tenantID uuid.UUID, name string) (*Account, error) {
	if err := validateAccountName(name); err != nil {
		return nil, err
	}

	return &Account{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		CreditLimit:         decimal.Zero,
		Balance:             decimal.Zero,
		Status:              AccountStatusActive,
	}, nil
}

// Update updates the account's contact information
func (a *Account) Update(contactName, phone, email, address string) {
	a.ContactName = contactName
	a.Phone = phone
	a.Email = email
	a.Address = address
	a.UpdatedAt = time.Now()
}

// SetCreditLimit sets the maximum outstanding credit allowed
func (a *Account) SetCreditLimit(limit valueobject.Money) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}
	a.CreditLimit = limit.Amount()
	a.UpdatedAt = time.Now()
	return nil
}

// Debit increases the outstanding balance by amount (customer owes more)
func (a *Account) Debit(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Debit amount must be positive")
	}
	a.Balance = a.Balance.Add(amount.Amount())
	a.UpdatedAt = time.Now()
	return nil
}

// Credit decreases the outstanding balance by amount, clamped at zero
// (customer paid back)
func (a *Account) Credit(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Credit amount must be positive")
	}
	a.Balance = a.Balance.Sub(amount.Amount())
	if a.Balance.IsNegative() {
		a.Balance = decimal.Zero
	}
	a.UpdatedAt = time.Now()
	return nil
}

// OverLimit returns true if the outstanding balance exceeds the credit limit
func (a *Account) OverLimit() bool {
	return a.CreditLimit.IsPositive() && a.Balance.GreaterThan(a.CreditLimit)
}

// AvailableCredit returns the remaining credit, clamped at zero
func (a *Account) AvailableCredit() decimal.Decimal {
	available := a.CreditLimit.Sub(a.Balance)
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}

// GetBalanceMoney returns the outstanding balance as Money
func (a *Account) GetBalanceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(a.Balance)
}

func validateAccountName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Account name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Account name cannot exceed 200 characters")
	}
	return nil
}
