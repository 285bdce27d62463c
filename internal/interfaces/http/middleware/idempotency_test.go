package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bizgrid/backend/internal/domain/identity"
	"github.com/bizgrid/backend/internal/infrastructure/cache"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type failingIdempotencyStore struct{}

func (s *failingIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return false, errors.New("store unavailable")
}

func (s *failingIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	return false, errors.New("store unavailable")
}

func (s *failingIdempotencyStore) Close() error { return nil }

func newIdempotencyRouter(store cache.IdempotencyStore, tenantID uuid.UUID) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		SetActorForTest(c, uuid.New(), tenantID, identity.RoleSalesman)
		c.Next()
	})
	router.Use(Idempotency(store, time.Minute))
	router.POST("/orders", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return router
}

func TestIdempotency(t *testing.T) {
	t.Run("passes through without header", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()
		router := newIdempotencyRouter(store, uuid.New())

		for i := 0; i < 3; i++ {
			req := httptest.NewRequest("POST", "/orders", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusCreated, w.Code)
		}
	})

	t.Run("rejects duplicate key", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()
		router := newIdempotencyRouter(store, uuid.New())

		req := httptest.NewRequest("POST", "/orders", nil)
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)

		req = httptest.NewRequest("POST", "/orders", nil)
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "DUPLICATE_REQUEST")
	})

	t.Run("scopes keys per tenant", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()

		routerA := newIdempotencyRouter(store, uuid.New())
		routerB := newIdempotencyRouter(store, uuid.New())

		req := httptest.NewRequest("POST", "/orders", nil)
		req.Header.Set(IdempotencyKeyHeader, "shared-key")
		w := httptest.NewRecorder()
		routerA.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)

		req = httptest.NewRequest("POST", "/orders", nil)
		req.Header.Set(IdempotencyKeyHeader, "shared-key")
		w = httptest.NewRecorder()
		routerB.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("fails open when store errors", func(t *testing.T) {
		router := newIdempotencyRouter(&failingIdempotencyStore{}, uuid.New())

		req := httptest.NewRequest("POST", "/orders", nil)
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}
