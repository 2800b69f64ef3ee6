package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/HammadCopilot/star-video-review/internal/errors"
	"github.com/HammadCopilot/star-video-review/internal/pagination"
	"github.com/HammadCopilot/star-video-review/internal/services"
)

// AuditHandler serves the audit trail. Admin only.
type AuditHandler struct {
	auditService services.AuditServicer
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditService services.AuditServicer) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListAuditLogsQuery represents the audit list filter parameters
type ListAuditLogsQuery struct {
	pagination.PageRequest
	UserID *string `form:"user_id" binding:"omitempty,uuid"`
	Action *string `form:"action"`
}

// ListAuditLogs returns a paginated audit trail, newest first.
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	var query ListAuditLogsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	logs, err := h.auditService.ListAuditLogs(services.AuditFilter{
		UserID: query.UserID,
		Action: query.Action,
	}, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}
