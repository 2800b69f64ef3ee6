package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/HammadCopilot/star-video-review/internal/errors"
	"github.com/HammadCopilot/star-video-review/internal/models"
)

// reviewService tracks reviewer passes over videos.
type reviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new ReviewServicer.
func NewReviewService(db *gorm.DB) ReviewServicer {
	return &reviewService{db: db}
}

// StartReview opens a review session for a video. If the reviewer already
// has an in-progress review for the video, it is returned instead of
// creating a duplicate.
func (s *reviewService) StartReview(reviewerID, videoID, notes string) (*models.Review, error) {
	var count int64
	if err := s.db.Model(&models.Video{}).Where("id = ?", videoID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrVideoNotFound
	}

	var existing models.Review
	err := s.db.Where("video_id = ? AND reviewer_id = ? AND status = ?",
		videoID, reviewerID, models.ReviewInProgress).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	review := &models.Review{
		VideoID:    videoID,
		ReviewerID: reviewerID,
		Status:     models.ReviewInProgress,
		Notes:      notes,
		StartedAt:  time.Now(),
	}
	if err := s.db.Create(review).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return review, nil
}

// UpdateReview updates a review's status or notes. Completing a review
// stamps completed_at. Only the owning reviewer or an admin may edit.
func (s *reviewService) UpdateReview(actorID string, actorRole models.Role, reviewID string, status *models.ReviewStatus, notes *string) (*models.Review, error) {
	var review models.Review
	if err := s.db.Where("id = ?", reviewID).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if actorRole != models.RoleAdmin && review.ReviewerID != actorID {
		return nil, apperrors.ErrForbidden
	}

	updates := make(map[string]interface{})
	if notes != nil {
		updates["notes"] = *notes
	}
	if status != nil {
		updates["status"] = *status
		if *status == models.ReviewCompleted && review.CompletedAt == nil {
			now := time.Now()
			updates["completed_at"] = now
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&review).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return &review, nil
}

// ListVideoReviews retrieves all reviews of a video, newest first.
func (s *reviewService) ListVideoReviews(videoID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Preload("Reviewer").Where("video_id = ?", videoID).
		Order("started_at DESC").Find(&reviews).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return reviews, nil
}

// ListReviewerReviews retrieves all reviews by a reviewer, newest first.
func (s *reviewService) ListReviewerReviews(reviewerID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Where("reviewer_id = ?", reviewerID).
		Order("started_at DESC").Find(&reviews).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return reviews, nil
}
