package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/HammadCopilot/star-video-review/internal/errors"
	"github.com/HammadCopilot/star-video-review/internal/models"
	"github.com/HammadCopilot/star-video-review/internal/services"
)

// AnnotationHandler handles annotation CRUD requests.
type AnnotationHandler struct {
	annotationService services.AnnotationServicer
	auditService      services.AuditServicer
}

// NewAnnotationHandler creates a new AnnotationHandler.
func NewAnnotationHandler(annotationService services.AnnotationServicer, auditService services.AuditServicer) *AnnotationHandler {
	return &AnnotationHandler{annotationService: annotationService, auditService: auditService}
}

// CreateAnnotationRequest represents the annotation creation payload
type CreateAnnotationRequest struct {
	VideoID          string                  `json:"video_id" binding:"required,uuid"`
	StartTime        float64                 `json:"start_time" binding:"min=0"`
	EndTime          *float64                `json:"end_time"`
	PracticeCategory models.PracticeCategory `json:"practice_category" binding:"required,practice_category"`
	PracticeID       *string                 `json:"practice_id" binding:"omitempty,uuid"`
	Comment          string                  `json:"comment" binding:"max=5000"`
	Status           models.AnnotationStatus `json:"status" binding:"omitempty,annotation_status"`
}

// BulkAnnotationsRequest represents a batch of annotations for one video
type BulkAnnotationsRequest struct {
	Annotations []CreateAnnotationRequest `json:"annotations" binding:"required,min=1,dive"`
}

// UpdateAnnotationRequest represents the annotation update payload
type UpdateAnnotationRequest struct {
	StartTime        *float64                 `json:"start_time" binding:"omitempty,min=0"`
	EndTime          *float64                 `json:"end_time"`
	PracticeCategory *models.PracticeCategory `json:"practice_category" binding:"omitempty,practice_category"`
	PracticeID       *string                  `json:"practice_id" binding:"omitempty,uuid"`
	Comment          *string                  `json:"comment" binding:"omitempty,max=5000"`
	Status           *models.AnnotationStatus `json:"status" binding:"omitempty,annotation_status"`
}

// ListAnnotationsQuery represents the annotation list filter parameters
type ListAnnotationsQuery struct {
	VideoID    *string                  `form:"video_id" binding:"omitempty,uuid"`
	ReviewerID *string                  `form:"reviewer_id" binding:"omitempty,uuid"`
	Category   *models.PracticeCategory `form:"practice_category" binding:"omitempty,practice_category"`
	Status     *models.AnnotationStatus `form:"status" binding:"omitempty,annotation_status"`
	Type       *models.AnnotationType   `form:"annotation_type" binding:"omitempty,annotation_type"`
}

func annotationInput(reviewerTyped models.AnnotationType, req CreateAnnotationRequest) services.AnnotationInput {
	return services.AnnotationInput{
		VideoID:          req.VideoID,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		PracticeCategory: req.PracticeCategory,
		PracticeID:       req.PracticeID,
		Comment:          req.Comment,
		Type:             reviewerTyped,
		Status:           req.Status,
	}
}

// CreateAnnotation creates a manual annotation on a video.
func (h *AnnotationHandler) CreateAnnotation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAnnotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	annotation, err := h.annotationService.CreateAnnotation(userID, annotationInput(models.AnnotationManual, req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "annotation_created", "annotation", annotation.ID, c.ClientIP(),
		map[string]interface{}{"video_id": req.VideoID, "start_time": req.StartTime})

	c.JSON(http.StatusCreated, gin.H{"annotation": annotation})
}

// CreateBulkAnnotations creates a batch of annotations in one transaction.
func (h *AnnotationHandler) CreateBulkAnnotations(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BulkAnnotationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	inputs := make([]services.AnnotationInput, 0, len(req.Annotations))
	for _, a := range req.Annotations {
		inputs = append(inputs, annotationInput(models.AnnotationManual, a))
	}

	created, err := h.annotationService.CreateBulkAnnotations(userID, inputs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "annotations_bulk_created", "annotation", "", c.ClientIP(),
		map[string]interface{}{"count": len(created)})

	c.JSON(http.StatusCreated, gin.H{"annotations": created, "created": len(created)})
}

// ListAnnotations returns annotations matching the given filters, ordered by
// video and start time.
func (h *AnnotationHandler) ListAnnotations(c *gin.Context) {
	var query ListAnnotationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	annotations, err := h.annotationService.ListAnnotations(services.AnnotationFilter{
		VideoID:          query.VideoID,
		ReviewerID:       query.ReviewerID,
		PracticeCategory: query.Category,
		Status:           query.Status,
		Type:             query.Type,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"annotations": annotations})
}

// GetAnnotation returns a single annotation.
func (h *AnnotationHandler) GetAnnotation(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	annotation, err := h.annotationService.GetAnnotationByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"annotation": annotation})
}

// UpdateAnnotation edits an annotation. Owner or admin only.
func (h *AnnotationHandler) UpdateAnnotation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	role, err := getRole(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAnnotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	annotation, err := h.annotationService.UpdateAnnotation(userID, role, id, services.AnnotationUpdate{
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		PracticeCategory: req.PracticeCategory,
		PracticeID:       req.PracticeID,
		Comment:          req.Comment,
		Status:           req.Status,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "annotation_updated", "annotation", annotation.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"annotation": annotation})
}

// DeleteAnnotation removes an annotation. Owner or admin only.
func (h *AnnotationHandler) DeleteAnnotation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	role, err := getRole(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.annotationService.DeleteAnnotation(userID, role, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "annotation_deleted", "annotation", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Annotation deleted successfully"})
}

// VideoSummary returns the aggregate annotation counts for a video together
// with the annotation list.
func (h *AnnotationHandler) VideoSummary(c *gin.Context) {
	videoID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, annotations, err := h.annotationService.VideoSummary(videoID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":     summary,
		"annotations": annotations,
	})
}
