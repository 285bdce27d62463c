package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "ASC", ValidateSortOrder(" ASC "))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
	assert.Equal(t, "DESC", ValidateSortOrder("ASC; DROP TABLE orders"))
}

func TestValidateSortField(t *testing.T) {
	t.Run("allows whitelisted field", func(t *testing.T) {
		got := ValidateSortField("order_number", OrderSortFields, "created_at")
		assert.Equal(t, "order_number", got)
	})

	t.Run("falls back on unknown field", func(t *testing.T) {
		got := ValidateSortField("password", OrderSortFields, "created_at")
		assert.Equal(t, "created_at", got)
	})

	t.Run("falls back on empty field", func(t *testing.T) {
		got := ValidateSortField("  ", ProductSortFields, "name")
		assert.Equal(t, "name", got)
	})

	t.Run("rejects injection attempt", func(t *testing.T) {
		got := ValidateSortField("name; DELETE FROM products", ProductSortFields, "name")
		assert.Equal(t, "name", got)
	})
}
