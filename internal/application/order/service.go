package order

import (
	"context"
	"errors"

	"github.com/bizgrid/backend/internal/domain/catalog"
	"github.com/bizgrid/backend/internal/domain/company"
	"github.com/bizgrid/backend/internal/domain/identity"
	"github.com/bizgrid/backend/internal/domain/order"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service orchestrates the order workflow: creation with all-or-nothing
// stock reservation, review transitions, payment settlement with credit
// restore, and deletion with stock release. Every write runs inside a
// single database transaction so stock, credit, journal and order state
// commit or roll back together.
type Service struct {
	scope     TransactionScope
	orderRepo order.Repository
	pricing   order.PricingPolicy
	oversell  catalog.OversellPolicy
	logger    *zap.Logger
}

// NewService creates an order workflow service
func NewService(scope TransactionScope, orderRepo order.Repository, pricing order.PricingPolicy, oversell catalog.OversellPolicy, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		scope:     scope,
		orderRepo: orderRepo,
		pricing:   pricing,
		oversell:  oversell,
		logger:    logger,
	}
}

// Create creates an order. Product resolution, stock reservation, pricing,
// persistence, credit debit and journal append all happen in one
// transaction; any failure leaves no partial state behind.
func (s *Service) Create(ctx context.Context, actor identity.Actor, req CreateOrderRequest) (*OrderResponse, error) {
	var created *order.Order

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		orderNumber, err := repos.OrderRepo().GenerateOrderNumber(ctx, actor.TenantID)
		if err != nil {
			return err
		}

		customerName := req.CustomerName
		if req.AccountID != nil {
			account, err := repos.AccountRepo().FindByIDForTenant(ctx, actor.TenantID, *req.AccountID)
			if err != nil {
				return err
			}
			if customerName == "" {
				customerName = account.Name
			}
		}

		o, err := order.NewOrder(actor.TenantID, orderNumber, customerName, req.AccountID, req.PaymentMethod, actor.UserID)
		if err != nil {
			return err
		}

		for _, input := range req.Items {
			product, err := repos.ProductRepo().FindByIDForTenant(ctx, actor.TenantID, input.ProductID)
			if err != nil {
				// A product id that does not resolve within the tenant is
				// treated as a cross-tenant reference, not a missing row.
				if errors.Is(err, shared.ErrNotFound) {
					return shared.ErrAccessDenied
				}
				return err
			}

			if err := repos.ProductRepo().ReserveStock(ctx, actor.TenantID, product.ID, input.Quantity, s.oversell); err != nil {
				return err
			}

			unitPrice := product.GetPriceMoney()
			if input.UnitPrice != nil {
				unitPrice = valueobject.NewMoneyUSD(*input.UnitPrice)
			}
			productName := input.ProductName
			if productName == "" {
				productName = product.Name
			}

			item, err := o.AddItem(product.ID, productName, input.Quantity, unitPrice, input.VATRate)
			if err != nil {
				return err
			}
			item.SetDisplayInfo(product.Brand, product.Category)
		}

		if err := o.FinalizePricing(s.pricing); err != nil {
			return err
		}

		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			return err
		}

		if o.IsCreditOrder() {
			if err := s.debitCredit(ctx, repos, o); err != nil {
				return err
			}
		}

		if err := s.appendJournal(ctx, repos, o); err != nil {
			return err
		}

		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToOrderResponse(created)
	return &resp, nil
}

// GetByID retrieves one order within the actor's tenant. Salesman roles
// only see orders they created.
func (s *Service) GetByID(ctx context.Context, actor identity.Actor, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByIDForTenant(ctx, actor.TenantID, orderID)
	if err != nil {
		return nil, err
	}
	if actor.Role.SeesOwnOrdersOnly() && !o.WasCreatedBy(actor.UserID) {
		return nil, shared.ErrAccessDenied
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// List retrieves orders with filtering and pagination, tenant-scoped
func (s *Service) List(ctx context.Context, actor identity.Actor, filter ListFilter) ([]OrderListItemResponse, int64, error) {
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

	domainFilter := order.Filter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
		Status:        order.SimpleStatus(filter.Status),
		ReviewStatus:  order.ReviewStatus(filter.ReviewStatus),
		PaymentStatus: order.PaymentStatus(filter.PaymentStatus),
		CreatedBy:     filter.SalesmanID,
		DateFrom:      filter.DateFrom,
		DateTo:        filter.DateTo,
	}
	if actor.Role.SeesOwnOrdersOnly() {
		userID := actor.UserID
		domainFilter.CreatedBy = &userID
	}

	orders, err := s.orderRepo.FindAllForTenant(ctx, actor.TenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountForTenant(ctx, actor.TenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderListItemResponses(orders), total, nil
}

// Update applies customer, review and payment changes to an order. The
// tenant reference is immutable. Review decisions require a reviewer role,
// and salesman roles may only touch their own orders.
func (s *Service) Update(ctx context.Context, actor identity.Actor, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	var updated *order.Order

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByIDForTenant(ctx, actor.TenantID, orderID)
		if err != nil {
			return err
		}
		if actor.Role.SeesOwnOrdersOnly() && !o.WasCreatedBy(actor.UserID) {
			return shared.ErrAccessDenied
		}

		if req.CustomerName != nil {
			if err := o.UpdateCustomerName(*req.CustomerName); err != nil {
				return err
			}
		}

		if req.ReviewStatus != nil {
			if !actor.Role.CanReview() {
				return shared.ErrAccessDenied
			}
			if err := o.ApplyReviewDecision(*req.ReviewStatus); err != nil {
				return err
			}
		}

		if req.PaymentStatus != nil && *req.PaymentStatus != o.PaymentStatus {
			if *req.PaymentStatus != order.PaymentStatusPaid {
				return shared.NewDomainError("INVALID_STATE", "Payment status can only transition to paid")
			}
			if err := o.MarkPaid(); err != nil {
				return err
			}
			if o.IsCreditOrder() {
				if err := s.restoreCredit(ctx, repos, o); err != nil {
					return err
				}
			}
		}

		o.SetUpdatedBy(actor.UserID)
		if err := repos.OrderRepo().SaveWithLock(ctx, o); err != nil {
			return err
		}

		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToOrderResponse(updated)
	return &resp, nil
}

// UpdateStatus advances the review axis. The derived simple status is
// recomputed from the review status, never set directly.
func (s *Service) UpdateStatus(ctx context.Context, actor identity.Actor, orderID uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	if !actor.Role.CanReview() {
		return nil, shared.ErrAccessDenied
	}
	status := req.ReviewStatus
	return s.Update(ctx, actor, orderID, UpdateOrderRequest{ReviewStatus: &status})
}

// Delete removes an order and releases its reserved stock. Restricted to
// elevated roles.
func (s *Service) Delete(ctx context.Context, actor identity.Actor, orderID uuid.UUID) error {
	if !actor.Role.IsElevated() {
		return shared.ErrAccessDenied
	}

	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByIDForTenant(ctx, actor.TenantID, orderID)
		if err != nil {
			return err
		}

		for _, item := range o.Items {
			if err := repos.ProductRepo().ReleaseStock(ctx, actor.TenantID, item.ProductID, item.Quantity); err != nil {
				// The product may have been deleted since the order was
				// placed; there is no stock left to restore.
				if errors.Is(err, shared.ErrNotFound) {
					s.logger.Warn("skipping stock release for missing product",
						zap.String("order_id", o.ID.String()),
						zap.String("product_id", item.ProductID.String()))
					continue
				}
				return err
			}
		}

		return repos.OrderRepo().DeleteForTenant(ctx, actor.TenantID, o.ID)
	})
}

// debitCredit adds the order's grand total to the customer's outstanding
// balance and mirrors the exposure on the company standing. An order
// without a registered account carries no credit to track.
func (s *Service) debitCredit(ctx context.Context, repos TransactionalRepositories, o *order.Order) error {
	if o.AccountID == nil {
		s.logger.Info("credit order without account reference, skipping debit",
			zap.String("order_id", o.ID.String()))
		return nil
	}

	account, err := repos.AccountRepo().FindByIDForTenant(ctx, o.TenantID, *o.AccountID)
	if err != nil {
		return err
	}
	if err := account.Debit(o.GetGrandTotalMoney()); err != nil {
		return err
	}
	if err := repos.AccountRepo().Save(ctx, account); err != nil {
		return err
	}

	return s.adjustCompanyBalance(ctx, repos, o, o.GrandTotal)
}

// restoreCredit gives back the customer's available credit once a credit
// order is settled. A missing account is logged and skipped: payment
// settlement must not fail because the account was deleted in between.
func (s *Service) restoreCredit(ctx context.Context, repos TransactionalRepositories, o *order.Order) error {
	if o.AccountID == nil {
		return nil
	}

	account, err := repos.AccountRepo().FindByIDForTenant(ctx, o.TenantID, *o.AccountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("account missing on credit restore",
				zap.String("order_id", o.ID.String()),
				zap.String("account_id", o.AccountID.String()))
			return nil
		}
		return err
	}
	if err := account.Credit(o.GetGrandTotalMoney()); err != nil {
		return err
	}
	if err := repos.AccountRepo().Save(ctx, account); err != nil {
		return err
	}

	return s.adjustCompanyBalance(ctx, repos, o, o.GrandTotal.Neg())
}

func (s *Service) adjustCompanyBalance(ctx context.Context, repos TransactionalRepositories, o *order.Order, delta decimal.Decimal) error {
	c, err := repos.CompanyRepo().FindByID(ctx, o.TenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("company record missing, skipping balance adjustment",
				zap.String("tenant_id", o.TenantID.String()))
			return nil
		}
		return err
	}
	c.AdjustBalance(delta)
	return repos.CompanyRepo().Save(ctx, c)
}

// appendJournal writes one append-only journal row per line item
func (s *Service) appendJournal(ctx context.Context, repos TransactionalRepositories, o *order.Order) error {
	entries := make([]company.SalesEntry, 0, len(o.Items))
	for _, item := range o.Items {
		entry, err := company.NewSalesEntry(o.TenantID, o.ID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, string(o.PaymentMethod))
		if err != nil {
			return err
		}
		entries = append(entries, *entry)
	}
	return repos.JournalRepo().Append(ctx, entries)
}
