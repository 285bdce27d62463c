package partner

import (
	"context"

	"github.com/bizgrid/backend/internal/domain/partner"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// AccountService handles customer account operations. The outstanding
// balance itself is never written here: only the order workflow debits and
// credits it.
type AccountService struct {
	accountRepo partner.AccountRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo partner.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// Create creates a new customer account
func (s *AccountService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreateAccountRequest) (*AccountResponse, error) {
	exists, err := s.accountRepo.ExistsByName(ctx, tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Account with this name already exists")
	}

	account, err := partner.NewAccount(tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	account.SetCreatedBy(userID)

	if req.ContactName != "" || req.Phone != "" || req.Email != "" || req.Address != "" {
		account.Update(req.ContactName, req.Phone, req.Email, req.Address)
	}
	if req.CreditLimit != nil {
		if err := account.SetCreditLimit(valueobject.NewMoneyUSD(*req.CreditLimit)); err != nil {
			return nil, err
		}
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	resp := ToAccountResponse(account)
	return &resp, nil
}

// GetByID retrieves an account by ID within the tenant
func (s *AccountService) GetByID(ctx context.Context, tenantID, accountID uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}
	resp := ToAccountResponse(account)
	return &resp, nil
}

// List retrieves accounts with filtering and pagination
func (s *AccountService) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]AccountResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	accounts, err := s.accountRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.accountRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToAccountResponses(accounts), total, nil
}

// Update updates an account's contact details and credit limit
func (s *AccountService) Update(ctx context.Context, tenantID, userID, accountID uuid.UUID, req UpdateAccountRequest) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	contactName := account.ContactName
	phone := account.Phone
	email := account.Email
	address := account.Address
	if req.ContactName != nil {
		contactName = *req.ContactName
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Address != nil {
		address = *req.Address
	}
	account.Update(contactName, phone, email, address)

	if req.CreditLimit != nil {
		if err := account.SetCreditLimit(valueobject.NewMoneyUSD(*req.CreditLimit)); err != nil {
			return nil, err
		}
	}

	account.SetUpdatedBy(userID)
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	resp := ToAccountResponse(account)
	return &resp, nil
}

// Delete removes an account. Accounts with outstanding credit cannot be
// deleted; the balance has to be settled first.
func (s *AccountService) Delete(ctx context.Context, tenantID, accountID uuid.UUID) error {
	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, accountID)
	if err != nil {
		return err
	}
	if account.Balance.IsPositive() {
		return shared.NewDomainError("INVALID_STATE", "Account has outstanding credit balance")
	}
	return s.accountRepo.DeleteForTenant(ctx, tenantID, accountID)
}
