package partner

import (
	"time"

	"github.com/bizgrid/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest represents a request to create a customer account
type CreateAccountRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	ContactName string           `json:"contact_name" binding:"omitempty,max=100"`
	Phone       string           `json:"phone" binding:"omitempty,max=50"`
	Email       string           `json:"email" binding:"omitempty,email,max=200"`
	Address     string           `json:"address"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
}

// UpdateAccountRequest represents a request to update a customer account
type UpdateAccountRequest struct {
	ContactName *string          `json:"contact_name" binding:"omitempty,max=100"`
	Phone       *string          `json:"phone" binding:"omitempty,max=50"`
	Email       *string          `json:"email" binding:"omitempty,email,max=200"`
	Address     *string          `json:"address"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
}

// ListFilter represents filter options for the account list
type ListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// AccountResponse represents a customer account in API responses
type AccountResponse struct {
	ID              uuid.UUID       `json:"id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	Name            string          `json:"name"`
	ContactName     string          `json:"contact_name,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Email           string          `json:"email,omitempty"`
	Address         string          `json:"address,omitempty"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
	Balance         decimal.Decimal `json:"balance"`
	AvailableCredit decimal.Decimal `json:"available_credit"`
	OverLimit       bool            `json:"over_limit"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToAccountResponse converts a domain account to its API representation
func ToAccountResponse(a *partner.Account) AccountResponse {
	return AccountResponse{
		ID:              a.ID,
		TenantID:        a.TenantID,
		Name:            a.Name,
		ContactName:     a.ContactName,
		Phone:           a.Phone,
		Email:           a.Email,
		Address:         a.Address,
		CreditLimit:     a.CreditLimit,
		Balance:         a.Balance,
		AvailableCredit: a.AvailableCredit(),
		OverLimit:       a.OverLimit(),
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts
func ToAccountResponses(accounts []partner.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, ToAccountResponse(&accounts[i]))
	}
	return out
}
