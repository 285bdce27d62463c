package order

import (
	"testing"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardPolicy() PricingPolicy {
	return PricingPolicy{
		FreeDeliveryThreshold: decimal.NewFromInt(50),
		DeliveryFee:           decimal.NewFromInt(2),
		Currency:              valueobject.USD,
	}
}

func TestNewOrder(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	accountID := uuid.New()

	tests := []struct {
		name         string
		orderNumber  string
		customerName string
		method       PaymentMethod
		wantErr      bool
		errCode      string
	}{
		{
			name:         "valid cash order",
			orderNumber:  "ORD-2026-00001",
			customerName: "Acme Retail",
			method:       PaymentMethodCash,
			wantErr:      false,
		},
		{
			name:         "valid credit order",
			orderNumber:  "ORD-2026-00002",
			customerName: "Acme Retail",
			method:       PaymentMethodCredit,
			wantErr:      false,
		},
		{
			name:         "empty order number",
			orderNumber:  "",
			customerName: "Acme Retail",
			method:       PaymentMethodCash,
			wantErr:      true,
			errCode:      "INVALID_ORDER_NUMBER",
		},
		{
			name:         "empty customer name",
			orderNumber:  "ORD-2026-00003",
			customerName: "",
			method:       PaymentMethodCash,
			wantErr:      true,
			errCode:      "INVALID_CUSTOMER_NAME",
		},
		{
			name:         "unknown payment method",
			orderNumber:  "ORD-2026-00004",
			customerName: "Acme Retail",
			method:       PaymentMethod("barter"),
			wantErr:      true,
			errCode:      "INVALID_PAYMENT_METHOD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewOrder(tenantID, tt.orderNumber, tt.customerName, &accountID, tt.method, userID)
			if tt.wantErr {
				require.Error(t, err)
				assertDomainErrorCode(t, err, tt.errCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tenantID, o.TenantID)
			assert.Equal(t, tt.orderNumber, o.OrderNumber)
			assert.Equal(t, ReviewStatusPending, o.ReviewStatus)
			assert.Equal(t, SimpleStatusPending, o.Status)
			assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
			assert.True(t, o.WasCreatedBy(userID))
		})
	}
}

func TestNewOrderItem(t *testing.T) {
	orderID := uuid.New()
	productID := uuid.New()
	price := valueobject.NewMoneyUSDFromFloat(10)

	t.Run("computes line total and vat", func(t *testing.T) {
		item, err := NewOrderItem(orderID, productID, "Widget", 3, price, decimal.NewFromInt(10))
		require.NoError(t, err)
		assert.True(t, item.LineTotal.Equal(decimal.NewFromInt(30)), "line total = %s", item.LineTotal)
		assert.True(t, item.VATAmount.Equal(decimal.NewFromInt(3)), "vat = %s", item.VATAmount)
	})

	t.Run("zero vat rate", func(t *testing.T) {
		item, err := NewOrderItem(orderID, productID, "Widget", 1, valueobject.NewMoneyUSDFromFloat(5), decimal.Zero)
		require.NoError(t, err)
		assert.True(t, item.VATAmount.IsZero())
		assert.True(t, item.LineTotal.Equal(decimal.NewFromInt(5)))
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewOrderItem(orderID, productID, "Widget", 0, price, decimal.Zero)
		assertDomainErrorCode(t, err, "INVALID_QUANTITY")
	})

	t.Run("rejects negative vat rate", func(t *testing.T) {
		_, err := NewOrderItem(orderID, productID, "Widget", 1, price, decimal.NewFromInt(-5))
		assertDomainErrorCode(t, err, "INVALID_VAT_RATE")
	})
}

func TestOrder_FinalizePricing(t *testing.T) {
	t.Run("delivery fee below threshold", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.AddItem(uuid.New(), "Widget", 3, valueobject.NewMoneyUSDFromFloat(10), decimal.NewFromInt(10))
		require.NoError(t, err)
		_, err = o.AddItem(uuid.New(), "Gadget", 1, valueobject.NewMoneyUSDFromFloat(5), decimal.Zero)
		require.NoError(t, err)

		require.NoError(t, o.FinalizePricing(standardPolicy()))

		assert.True(t, o.Subtotal.Equal(decimal.NewFromInt(35)), "subtotal = %s", o.Subtotal)
		assert.True(t, o.DeliveryCost.Equal(decimal.NewFromInt(2)), "delivery = %s", o.DeliveryCost)
		assert.True(t, o.TotalVAT.Equal(decimal.NewFromInt(3)), "vat = %s", o.TotalVAT)
		assert.True(t, o.GrandTotal.Equal(decimal.NewFromInt(40)), "grand total = %s", o.GrandTotal)
	})

	t.Run("free delivery at threshold", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.AddItem(uuid.New(), "Widget", 5, valueobject.NewMoneyUSDFromFloat(10), decimal.Zero)
		require.NoError(t, err)

		require.NoError(t, o.FinalizePricing(standardPolicy()))

		assert.True(t, o.Subtotal.Equal(decimal.NewFromInt(50)))
		assert.True(t, o.DeliveryCost.IsZero())
		assert.True(t, o.GrandTotal.Equal(decimal.NewFromInt(50)))
	})

	t.Run("grand total invariant holds", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.AddItem(uuid.New(), "Widget", 7, valueobject.NewMoneyUSDFromFloat(3.25), decimal.NewFromFloat(7.5))
		require.NoError(t, err)

		require.NoError(t, o.FinalizePricing(standardPolicy()))

		expected := o.Subtotal.Add(o.DeliveryCost).Add(o.TotalVAT)
		assert.True(t, o.GrandTotal.Equal(expected), "grand total %s != %s", o.GrandTotal, expected)
	})

	t.Run("rejects empty order", func(t *testing.T) {
		o := newTestOrder(t)
		err := o.FinalizePricing(standardPolicy())
		assertDomainErrorCode(t, err, "NO_ITEMS")
	})

	t.Run("rejects items added after finalization", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.AddItem(uuid.New(), "Widget", 1, valueobject.NewMoneyUSDFromFloat(10), decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, o.FinalizePricing(standardPolicy()))

		_, err = o.AddItem(uuid.New(), "Gadget", 1, valueobject.NewMoneyUSDFromFloat(5), decimal.Zero)
		assertDomainErrorCode(t, err, "INVALID_STATE")
	})
}

func TestOrder_ApplyReviewDecision(t *testing.T) {
	t.Run("approval path derives simple status", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.ApplyReviewDecision(ReviewStatusUnderReview))
		assert.Equal(t, SimpleStatusProcessing, o.Status)

		require.NoError(t, o.ApplyReviewDecision(ReviewStatusApproved))
		assert.Equal(t, SimpleStatusConfirmed, o.Status)
	})

	t.Run("rejection path", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.ApplyReviewDecision(ReviewStatusUnderReview))
		require.NoError(t, o.ApplyReviewDecision(ReviewStatusRejected))
		assert.Equal(t, SimpleStatusCancelled, o.Status)
		assert.True(t, o.IsCancelled())
	})

	t.Run("same status is idempotent", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ApplyReviewDecision(ReviewStatusPending))
		assert.Equal(t, ReviewStatusPending, o.ReviewStatus)
	})

	t.Run("illegal transition rejected", func(t *testing.T) {
		o := newTestOrder(t)
		err := o.ApplyReviewDecision(ReviewStatusApproved)
		assertDomainErrorCode(t, err, "INVALID_STATE")
		assert.Equal(t, ReviewStatusPending, o.ReviewStatus)
	})

	t.Run("terminal status is closed", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ApplyReviewDecision(ReviewStatusCancelled))
		err := o.ApplyReviewDecision(ReviewStatusUnderReview)
		assertDomainErrorCode(t, err, "INVALID_STATE")
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		o := newTestOrder(t)
		err := o.ApplyReviewDecision(ReviewStatus("SHIPPED"))
		assertDomainErrorCode(t, err, "INVALID_REVIEW_STATUS")
	})
}

func TestOrder_MarkPaid(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.MarkPaid())
	assert.Equal(t, PaymentStatusPaid, o.PaymentStatus)
	assert.NotNil(t, o.PaidAt)

	err := o.MarkPaid()
	assertDomainErrorCode(t, err, "INVALID_STATE")
}

func TestOrder_IsCreditOrder(t *testing.T) {
	cash, err := NewOrder(uuid.New(), "ORD-2026-00001", "Acme", nil, PaymentMethodCash, uuid.New())
	require.NoError(t, err)
	assert.False(t, cash.IsCreditOrder())

	credit, err := NewOrder(uuid.New(), "ORD-2026-00002", "Acme", nil, PaymentMethodCredit, uuid.New())
	require.NoError(t, err)
	assert.True(t, credit.IsCreditOrder())
}

func TestOrder_TotalQuantity(t *testing.T) {
	o := newTestOrder(t)
	_, err := o.AddItem(uuid.New(), "Widget", 3, valueobject.NewMoneyUSDFromFloat(10), decimal.Zero)
	require.NoError(t, err)
	_, err = o.AddItem(uuid.New(), "Gadget", 2, valueobject.NewMoneyUSDFromFloat(5), decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, int64(5), o.TotalQuantity())
}

func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, code, derr.Code)
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(uuid.New(), "ORD-2026-00001", "Acme Retail", nil, PaymentMethodCash, uuid.New())
	require.NoError(t, err)
	return o
}
