package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/HammadCopilot/star-video-review/internal/config"
	apperrors "github.com/HammadCopilot/star-video-review/internal/errors"
	"github.com/HammadCopilot/star-video-review/internal/logger"
	"github.com/HammadCopilot/star-video-review/internal/media"
	"github.com/HammadCopilot/star-video-review/internal/models"
	"github.com/HammadCopilot/star-video-review/internal/pagination"
	"github.com/HammadCopilot/star-video-review/internal/services"
	"github.com/HammadCopilot/star-video-review/internal/uuid"
)

// VideoHandler handles video upload, listing, and streaming requests.
type VideoHandler struct {
	videoService services.VideoServicer
	auditService services.AuditServicer
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(videoService services.VideoServicer, auditService services.AuditServicer) *VideoHandler {
	return &VideoHandler{videoService: videoService, auditService: auditService}
}

// CreateURLVideoRequest represents the payload for registering an external video
type CreateURLVideoRequest struct {
	Title       string                  `json:"title" binding:"max=200"`
	Description string                  `json:"description" binding:"max=2000"`
	URL         string                  `json:"url" binding:"required,url"`
	Category    models.PracticeCategory `json:"category" binding:"required,practice_category"`
}

// UpdateVideoRequest represents the video update payload
type UpdateVideoRequest struct {
	Title       *string                  `json:"title" binding:"omitempty,max=200"`
	Description *string                  `json:"description" binding:"omitempty,max=2000"`
	Category    *models.PracticeCategory `json:"category" binding:"omitempty,practice_category"`
}

// ListVideosQuery represents the list filter parameters
type ListVideosQuery struct {
	pagination.PageRequest
	Category *models.PracticeCategory `form:"category" binding:"omitempty,practice_category"`
	Status   *models.AnalysisStatus   `form:"status" binding:"omitempty,analysis_status"`
	Uploader *string                  `form:"uploader_id"`
}

// Upload receives a multipart video upload, stores the file under the
// configured upload directory, and registers the video.
func (h *VideoHandler) Upload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "No video file provided"))
		return
	}

	cfg := config.Get()
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !cfg.AllowedExtensions[ext] {
		respondWithError(c, apperrors.ErrFileTypeNotAllowed)
		return
	}
	if file.Size > cfg.MaxUploadBytes {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("File exceeds the maximum upload size of %d bytes", cfg.MaxUploadBytes)))
		return
	}

	category := models.PracticeCategory(c.PostForm("category"))
	switch category {
	case models.CategoryDiscreteTrial, models.CategoryPivotalResponse, models.CategoryFunctionalRoutines:
	default:
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid category"))
		return
	}

	// Stored under a generated name; the original filename only seeds the title.
	storedName := uuid.New() + ext
	destPath := filepath.Join(cfg.UploadDir, storedName)
	if err := c.SaveUploadedFile(file, destPath); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	duration, err := media.ProbeDuration(c.Request.Context(), destPath)
	if err != nil {
		logger.Get().Warnw("duration probe failed on upload", "file", storedName, "error", err)
		duration = 0
	}

	title := c.PostForm("title")
	if title == "" {
		title = strings.TrimSuffix(file.Filename, ext)
	}

	video, err := h.videoService.CreateLocalVideo(userID, title, c.PostForm("description"), category, destPath, duration)
	if err != nil {
		os.Remove(destPath)
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "video_uploaded", "video", video.ID, c.ClientIP(),
		map[string]interface{}{"filename": file.Filename, "size": file.Size, "category": category})

	c.JSON(http.StatusCreated, gin.H{"video": video})
}

// CreateFromURL registers an externally hosted video.
func (h *VideoHandler) CreateFromURL(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateURLVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	video, err := h.videoService.CreateURLVideo(userID, req.Title, req.Description, req.Category, req.URL)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "video_registered", "video", video.ID, c.ClientIP(),
		map[string]interface{}{"url": req.URL, "category": req.Category})

	c.JSON(http.StatusCreated, gin.H{"video": video})
}

// ListVideos returns a paginated, filterable video list.
func (h *VideoHandler) ListVideos(c *gin.Context) {
	var query ListVideosQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	videos, err := h.videoService.ListVideos(services.VideoFilter{
		Category:   query.Category,
		Status:     query.Status,
		UploaderID: query.Uploader,
	}, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, videos)
}

// GetVideo returns a single video and records the view.
func (h *VideoHandler) GetVideo(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	video, err := h.videoService.GetVideoByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "video_viewed", "video", video.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"video": video})
}

// UpdateVideo updates a video's editable fields.
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
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

	var req UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	video, err := h.videoService.UpdateVideo(userID, role, id, services.VideoUpdate{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "video_updated", "video", video.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"video": video})
}

// DeleteVideo removes a video and its stored file.
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
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

	if err := h.videoService.DeleteVideo(userID, role, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "video_deleted", "video", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Video deleted successfully"})
}

// Stream serves a local video file, or redirects to the external source for
// URL-registered videos. Mounted behind StreamAuthMiddleware so the HTML5
// player can authenticate with ?token=.
func (h *VideoHandler) Stream(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	video, err := h.videoService.GetVideoByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	switch video.SourceType {
	case models.SourceLocal:
		if video.FilePath == "" {
			respondWithError(c, apperrors.ErrVideoFileMissing)
			return
		}
		if _, err := os.Stat(video.FilePath); err != nil {
			respondWithError(c, apperrors.ErrVideoFileMissing)
			return
		}
		// http.ServeFile underneath handles Range requests for seeking.
		c.File(video.FilePath)
	case models.SourceURL:
		if video.URL == "" {
			respondWithError(c, apperrors.ErrNotStreamable)
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, video.URL)
	default:
		respondWithError(c, apperrors.ErrNotStreamable)
	}
}
