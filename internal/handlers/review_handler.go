package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/HammadCopilot/star-video-review/internal/errors"
	"github.com/HammadCopilot/star-video-review/internal/models"
	"github.com/HammadCopilot/star-video-review/internal/services"
)

// ReviewHandler handles review session requests.
type ReviewHandler struct {
	reviewService services.ReviewServicer
	auditService  services.AuditServicer
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService services.ReviewServicer, auditService services.AuditServicer) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, auditService: auditService}
}

// StartReviewRequest represents the payload for opening a review session
type StartReviewRequest struct {
	VideoID string `json:"video_id" binding:"required,uuid"`
	Notes   string `json:"notes" binding:"max=5000"`
}

// UpdateReviewRequest represents the review update payload
type UpdateReviewRequest struct {
	Status *models.ReviewStatus `json:"status" binding:"omitempty,review_status"`
	Notes  *string              `json:"notes" binding:"omitempty,max=5000"`
}

// StartReview opens a review session for a video, returning the existing
// in-progress session when one exists.
func (h *ReviewHandler) StartReview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req StartReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	review, err := h.reviewService.StartReview(userID, req.VideoID, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "review_started", "review", review.ID, c.ClientIP(),
		map[string]interface{}{"video_id": req.VideoID})

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// UpdateReview updates a review's status or notes.
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
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

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	review, err := h.reviewService.UpdateReview(userID, role, id, req.Status, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "review_updated", "review", review.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"review": review})
}

// ListVideoReviews returns all reviews of a video.
func (h *ReviewHandler) ListVideoReviews(c *gin.Context) {
	videoID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	reviews, err := h.reviewService.ListVideoReviews(videoID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// MyReviews returns the authenticated reviewer's sessions.
func (h *ReviewHandler) MyReviews(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	reviews, err := h.reviewService.ListReviewerReviews(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
