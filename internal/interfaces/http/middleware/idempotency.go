package middleware

import (
	"net/http"
	"time"

	"github.com/bizgrid/backend/internal/infrastructure/cache"
	"github.com/bizgrid/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader is the request header carrying the idempotency key
const IdempotencyKeyHeader = "Idempotency-Key"

// DefaultIdempotencyTTL is how long an accepted key stays reserved
const DefaultIdempotencyTTL = 24 * time.Hour

// Idempotency rejects repeated mutating requests carrying an already-seen
// Idempotency-Key. The header is optional; requests without it pass through.
// The key is scoped per tenant so two tenants can use the same key safely.
func Idempotency(store cache.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		scopedKey := key
		if actor, ok := GetActor(c); ok {
			scopedKey = actor.TenantID.String() + ":" + key
		}

		fresh, err := store.MarkProcessed(c.Request.Context(), scopedKey, ttl)
		if err != nil {
			// The store being down must not block order intake
			c.Next()
			return
		}
		if !fresh {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse("DUPLICATE_REQUEST", "A request with this idempotency key was already processed"))
			return
		}

		c.Next()
	}
}
