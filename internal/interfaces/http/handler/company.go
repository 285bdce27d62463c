package handler

import (
	companyapp "github.com/bizgrid/backend/internal/application/company"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CompanyHandler handles company and sales journal HTTP requests
type CompanyHandler struct {
	BaseHandler
	service *companyapp.JournalService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(service *companyapp.JournalService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

// GetCompany handles GET /company
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.service.GetCompany(c.Request.Context(), actor.TenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListJournalEntries handles GET /company/journal
func (h *CompanyHandler) ListJournalEntries(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter companyapp.JournalListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	entries, total, err := h.service.ListEntries(c.Request.Context(), actor.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// JournalEntriesForOrder handles GET /company/journal/orders/:id
func (h *CompanyHandler) JournalEntriesForOrder(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	entries, err := h.service.EntriesForOrder(c.Request.Context(), actor.TenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}
