package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bizgrid/backend/internal/domain/identity"
	"github.com/bizgrid/backend/internal/infrastructure/auth"
	"github.com/bizgrid/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-middleware",
		AccessTokenExpiration: time.Hour,
		Issuer:                "bizgrid-test",
	})
}

func issueToken(t *testing.T, svc *auth.JWTService, role identity.Role) (string, uuid.UUID, uuid.UUID) {
	t.Helper()
	tenantID := uuid.New()
	userID := uuid.New()
	token, _, err := svc.GenerateToken(auth.GenerateTokenInput{
		TenantID: tenantID,
		UserID:   userID,
		Username: "tester",
		Role:     role,
	})
	require.NoError(t, err)
	return token, tenantID, userID
}

func TestJWTAuthMiddleware(t *testing.T) {
	svc := newTestJWTService()

	newRouter := func() *gin.Engine {
		router := gin.New()
		router.Use(JWTAuthMiddleware(svc))
		router.GET("/protected", func(c *gin.Context) {
			actor, ok := GetActor(c)
			if !ok {
				c.String(http.StatusInternalServerError, "no actor")
				return
			}
			c.JSON(http.StatusOK, gin.H{"tenant_id": actor.TenantID, "role": actor.Role})
		})
		router.GET("/health", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		return router
	}

	t.Run("rejects missing authorization header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("rejects malformed authorization header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(AuthHeaderKey, "Basic abcdef")
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"not.a.token")
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expiredSvc := auth.NewJWTService(config.JWTConfig{
			Secret:                "test-secret-key-for-middleware",
			AccessTokenExpiration: -time.Hour,
			Issuer:                "bizgrid-test",
		})
		token, _, _ := issueToken(t, expiredSvc, identity.RoleSalesman)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("accepts valid token and resolves actor", func(t *testing.T) {
		token, tenantID, _ := issueToken(t, svc, identity.RoleSalesman)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), tenantID.String())
		assert.Contains(t, w.Body.String(), "salesman")
	})

	t.Run("skips configured paths", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireElevated(t *testing.T) {
	newRouter := func(role identity.Role, withActor bool) *gin.Engine {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			if withActor {
				SetActorForTest(c, uuid.New(), uuid.New(), role)
			}
			c.Next()
		})
		router.Use(RequireElevated())
		router.DELETE("/orders/:id", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		return router
	}

	t.Run("rejects unauthenticated request", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/orders/abc", nil)
		w := httptest.NewRecorder()
		newRouter(identity.RoleAdmin, false).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects salesman", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/orders/abc", nil)
		w := httptest.NewRecorder()
		newRouter(identity.RoleSalesman, true).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "ACCESS_DENIED")
	})

	t.Run("rejects accountant", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/orders/abc", nil)
		w := httptest.NewRecorder()
		newRouter(identity.RoleAccountant, true).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("allows admin", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/orders/abc", nil)
		w := httptest.NewRecorder()
		newRouter(identity.RoleAdmin, true).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("allows manager", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/orders/abc", nil)
		w := httptest.NewRecorder()
		newRouter(identity.RoleManager, true).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
