package handlers

import (
	"github.com/gin-gonic/gin"

	"posadmin/internal/core/apperror"
	"posadmin/internal/core/id"
	"posadmin/internal/infrastructure/storage/postgres"
)

// AuditHandler exposes the catalog change log.
type AuditHandler struct {
	*BaseHandler
	audit *postgres.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, audit *postgres.AuditService) *AuditHandler {
	return &AuditHandler{BaseHandler: base, audit: audit}
}

// EntityHistory returns change entries for one entity, newest first.
// GET /audit/:entityType/:id
func (h *AuditHandler) EntityHistory(c *gin.Context) {
	entityType := c.Param("entityType")

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)

	entries, err := h.audit.GetEntityHistory(c.Request.Context(), entityType, entityID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": entries})
}
