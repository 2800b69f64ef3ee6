package services

import (
	"encoding/json"

	"gorm.io/gorm"

	apperrors "github.com/HammadCopilot/star-video-review/internal/errors"
	"github.com/HammadCopilot/star-video-review/internal/logger"
	"github.com/HammadCopilot/star-video-review/internal/models"
	"github.com/HammadCopilot/star-video-review/internal/pagination"
)

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, details map[string]interface{}) {
	var detailsJSON string
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log details", "error", err, "action", action)
			detailsJSON = "{}"
		} else {
			detailsJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      detailsJSON,
		IPAddress:    ipAddress,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}

// ListAuditLogs retrieves a paginated list of audit entries, newest first,
// with optional user and action filters.
func (s *auditService) ListAuditLogs(filter AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error) {
	page.Defaults()

	base := s.db.Model(&models.AuditLog{})
	if filter.UserID != nil {
		base = base.Where("user_id = ?", *filter.UserID)
	}
	if filter.Action != nil {
		base = base.Where("action = ?", *filter.Action)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.AuditLog
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}
