package services

import (
	"errors"
	"os"

	"gorm.io/gorm"

	apperrors "github.com/HammadCopilot/star-video-review/internal/errors"
	"github.com/HammadCopilot/star-video-review/internal/logger"
	"github.com/HammadCopilot/star-video-review/internal/models"
	"github.com/HammadCopilot/star-video-review/internal/pagination"
)

// videoService handles video-related business logic.
type videoService struct {
	db        *gorm.DB
	uploadDir string
}

// NewVideoService creates a new VideoServicer. uploadDir is where local
// video files live; deletion removes them alongside the record.
func NewVideoService(db *gorm.DB, uploadDir string) VideoServicer {
	return &videoService{db: db, uploadDir: uploadDir}
}

// CreateLocalVideo records an uploaded video file. filePath is the full
// path of the stored file under the upload directory.
func (s *videoService) CreateLocalVideo(uploaderID, title, description string, category models.PracticeCategory, filePath string, duration float64) (*models.Video, error) {
	if title == "" {
		title = filePath
	}

	video := &models.Video{
		Title:          title,
		Description:    description,
		SourceType:     models.SourceLocal,
		FilePath:       filePath,
		Duration:       duration,
		UploaderID:     uploaderID,
		Category:       category,
		AnalysisStatus: models.AnalysisPending,
	}

	if err := s.db.Create(video).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return video, nil
}

// CreateURLVideo records a video hosted at an external URL.
func (s *videoService) CreateURLVideo(uploaderID, title, description string, category models.PracticeCategory, url string) (*models.Video, error) {
	if url == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "url is required")
	}
	if title == "" {
		title = "Untitled Video"
	}

	video := &models.Video{
		Title:          title,
		Description:    description,
		SourceType:     models.SourceURL,
		URL:            url,
		UploaderID:     uploaderID,
		Category:       category,
		AnalysisStatus: models.AnalysisPending,
	}

	if err := s.db.Create(video).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return video, nil
}

// ListVideos retrieves a paginated list of videos, newest first, with
// optional category, analysis-status, and uploader filters.
func (s *videoService) ListVideos(filter VideoFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Video], error) {
	page.Defaults()

	base := s.db.Model(&models.Video{})
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.Status != nil {
		base = base.Where("analysis_status = ?", *filter.Status)
	}
	if filter.UploaderID != nil {
		base = base.Where("uploader_id = ?", *filter.UploaderID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var videos []models.Video
	if err := base.Preload("Uploader").Order("created_at DESC").
		Scopes(pagination.Paginate(page)).Find(&videos).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(videos, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetVideoByID retrieves a video with its uploader.
func (s *videoService) GetVideoByID(id string) (*models.Video, error) {
	var video models.Video
	if err := s.db.Preload("Uploader").Where("id = ?", id).First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrVideoNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &video, nil
}

// UpdateVideo updates video metadata. Admins and reviewers may edit any
// video; others only their own uploads.
func (s *videoService) UpdateVideo(actorID string, actorRole models.Role, videoID string, update VideoUpdate) (*models.Video, error) {
	video, err := s.GetVideoByID(videoID)
	if err != nil {
		return nil, err
	}

	if actorRole != models.RoleAdmin && actorRole != models.RoleReviewer && video.UploaderID != actorID {
		return nil, apperrors.ErrForbidden
	}

	updates := make(map[string]interface{})
	if update.Title != nil {
		updates["title"] = *update.Title
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Category != nil {
		updates["category"] = *update.Category
	}

	if len(updates) > 0 {
		if err := s.db.Model(video).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return video, nil
}

// DeleteVideo removes a video and, for local sources, its file on disk.
// Only admins and the uploader may delete.
func (s *videoService) DeleteVideo(actorID string, actorRole models.Role, videoID string) error {
	video, err := s.GetVideoByID(videoID)
	if err != nil {
		return err
	}

	if actorRole != models.RoleAdmin && video.UploaderID != actorID {
		return apperrors.ErrForbidden
	}

	if video.SourceType == models.SourceLocal && video.FilePath != "" {
		if err := os.Remove(video.FilePath); err != nil && !os.IsNotExist(err) {
			// The record still goes away; orphaned files are cleaned up offline.
			logger.Get().Warnw("failed to remove video file", "path", video.FilePath, "error", err)
		}
	}

	if err := s.db.Delete(video).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
