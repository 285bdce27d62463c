package order

import (
	"context"

	"github.com/bizgrid/backend/internal/domain/catalog"
	"github.com/bizgrid/backend/internal/domain/company"
	"github.com/bizgrid/backend/internal/domain/order"
	"github.com/bizgrid/backend/internal/domain/partner"
)

// TransactionScope provides transactional access to the repositories the
// order workflow touches. When a function is executed within a scope, all
// repository operations join the same database transaction and commit or
// roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories participating in an
// order transaction. All returned repositories share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() order.Repository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// AccountRepo returns the account repository scoped to the current transaction
	AccountRepo() partner.AccountRepository
	// CompanyRepo returns the company repository scoped to the current transaction
	CompanyRepo() company.CompanyRepository
	// JournalRepo returns the sales journal repository scoped to the current transaction
	JournalRepo() company.SalesJournalRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests where the repositories are mocks.
type NoOpTransactionScope struct {
	orderRepo   order.Repository
	productRepo catalog.ProductRepository
	accountRepo partner.AccountRepository
	companyRepo company.CompanyRepository
	journalRepo company.SalesJournalRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	orderRepo order.Repository,
	productRepo catalog.ProductRepository,
	accountRepo partner.AccountRepository,
	companyRepo company.CompanyRepository,
	journalRepo company.SalesJournalRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		accountRepo: accountRepo,
		companyRepo: companyRepo,
		journalRepo: journalRepo,
	}
}

// Execute runs the function directly, without transaction semantics.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() order.Repository {
	return s.orderRepo
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// AccountRepo returns the account repository.
func (s *NoOpTransactionScope) AccountRepo() partner.AccountRepository {
	return s.accountRepo
}

// CompanyRepo returns the company repository.
func (s *NoOpTransactionScope) CompanyRepo() company.CompanyRepository {
	return s.companyRepo
}

// JournalRepo returns the sales journal repository.
func (s *NoOpTransactionScope) JournalRepo() company.SalesJournalRepository {
	return s.journalRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
