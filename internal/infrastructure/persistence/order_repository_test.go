package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bizgrid/backend/internal/domain/order"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockOrderRepository creates a GormOrderRepository with a mocked SQL connection
func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormOrderRepository(gormDB), mock, mockDB
}

func orderRows(orderID, tenantID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "tenant_id", "order_number", "customer_name",
		"payment_method", "payment_status", "review_status", "status", "version",
	}).AddRow(
		orderID, tenantID, "ORD-2026-00001", "Acme Retail",
		"cash", "pending", "PENDING_REVIEW", "pending", 1,
	)
}

func TestGormOrderRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds order owned by the tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
			WithArgs(orderID, 1).
			WillReturnRows(orderRows(orderID, tenantID))
		mock.ExpectQuery(`SELECT \* FROM "order_items"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id"}))

		found, err := repo.FindByIDForTenant(context.Background(), tenantID, orderID)

		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, orderID, found.ID)
		assert.Equal(t, "ORD-2026-00001", found.OrderNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("denies access to an order owned by another tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		ownerTenant := uuid.New()
		otherTenant := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
			WithArgs(orderID, 1).
			WillReturnRows(orderRows(orderID, ownerTenant))
		mock.ExpectQuery(`SELECT \* FROM "order_items"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id"}))

		found, err := repo.FindByIDForTenant(context.Background(), otherTenant, orderID)

		assert.ErrorIs(t, err, shared.ErrAccessDenied)
		assert.Nil(t, found)
	})

	t.Run("returns not found for missing order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "orders"`).
			WillReturnError(gorm.ErrRecordNotFound)

		found, err := repo.FindByIDForTenant(context.Background(), uuid.New(), uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Nil(t, found)
	})
}

func TestGormOrderRepository_GenerateOrderNumber(t *testing.T) {
	t.Run("starts at 00001 when no orders exist for the year", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE tenant_id = \$1 AND order_number LIKE \$2`).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		number, err := repo.GenerateOrderNumber(context.Background(), uuid.New())

		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("ORD-%d-00001", time.Now().Year()), number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("increments from the highest existing number", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		year := time.Now().Year()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE tenant_id = \$1 AND order_number LIKE \$2`).
			WillReturnRows(orderRowsWithNumber(tenantID, fmt.Sprintf("ORD-%d-00041", year)))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		number, err := repo.GenerateOrderNumber(context.Background(), tenantID)

		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("ORD-%d-00042", year), number)
	})
}

func orderRowsWithNumber(tenantID uuid.UUID, number string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "tenant_id", "order_number", "version"}).
		AddRow(uuid.New(), tenantID, number, 1)
}

func TestGormOrderRepository_SaveWithLock(t *testing.T) {
	t.Run("rejects save when version has moved", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		o, err := order.NewOrder(uuid.New(), "ORD-2026-00001", "Acme Retail", nil, order.PaymentMethodCash, uuid.New())
		require.NoError(t, err)
		o.Version = 1

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "orders"`).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(2))
		mock.ExpectRollback()

		err = repo.SaveWithLock(context.Background(), o)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_DeleteForTenant(t *testing.T) {
	t.Run("returns not found when the order is absent", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "orders"`).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectRollback()

		err := repo.DeleteForTenant(context.Background(), uuid.New(), uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("deletes items before the order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "orders"`).
			WillReturnRows(orderRows(orderID, tenantID))
		mock.ExpectExec(`DELETE FROM "order_items"`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "orders"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.DeleteForTenant(context.Background(), tenantID, orderID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
