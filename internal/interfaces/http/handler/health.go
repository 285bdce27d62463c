package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/bizgrid/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// HealthHandler handles health and readiness probes
type HealthHandler struct {
	BaseHandler
	startTime time.Time
	checkDB   func() error
}

// NewHealthHandler creates a new health handler. checkDB may be nil
// when no database check is wanted.
func NewHealthHandler(checkDB func() error) *HealthHandler {
	return &HealthHandler{
		startTime: time.Now(),
		checkDB:   checkDB,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
	Database  string `json:"database,omitempty"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	status := http.StatusOK
	if h.checkDB != nil {
		if err := h.checkDB(); err != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			resp.Database = "ok"
		}
	}

	c.JSON(status, dto.NewSuccessResponse(resp))
}
