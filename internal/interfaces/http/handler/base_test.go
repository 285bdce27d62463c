package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"access denied", shared.ErrAccessDenied, http.StatusForbidden, "ACCESS_DENIED"},
		{"insufficient stock", shared.ErrInsufficientStock, http.StatusBadRequest, "INSUFFICIENT_STOCK"},
		{"concurrency conflict", shared.ErrConcurrencyConflict, http.StatusBadRequest, "CONCURRENCY_CONFLICT"},
		{"validation error", shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive"), http.StatusBadRequest, "INVALID_QUANTITY"},
		{"plain error hides details", errors.New("pq: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/test", func(c *gin.Context) {
				var h BaseHandler
				h.HandleError(c, tt.err)
			})

			req := httptest.NewRequest("GET", "/test", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
			if tt.wantCode == "INTERNAL_ERROR" {
				assert.NotContains(t, w.Body.String(), "connection refused")
			}
		})
	}
}
