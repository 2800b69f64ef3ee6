package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/HammadCopilot/star-video-review/internal/errors"
	"github.com/HammadCopilot/star-video-review/internal/models"
)

// transcriptService serves stored transcripts. Writing happens in the
// analysis pipeline.
type transcriptService struct {
	db *gorm.DB
}

// NewTranscriptService creates a new TranscriptServicer.
func NewTranscriptService(db *gorm.DB) TranscriptServicer {
	return &transcriptService{db: db}
}

// GetVideoTranscript retrieves the transcript for a video.
func (s *transcriptService) GetVideoTranscript(videoID string) (*models.Transcript, error) {
	var count int64
	if err := s.db.Model(&models.Video{}).Where("id = ?", videoID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrVideoNotFound
	}

	var transcript models.Transcript
	if err := s.db.Where("video_id = ?", videoID).First(&transcript).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTranscriptNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transcript, nil
}
