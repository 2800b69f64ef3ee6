package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HammadCopilot/star-video-review/internal/analysis"
	"github.com/HammadCopilot/star-video-review/internal/services"
)

// AnalysisHandler handles AI analysis requests: starting jobs, polling
// progress, and fetching transcripts.
type AnalysisHandler struct {
	runner            *analysis.Runner
	transcriptService services.TranscriptServicer
	auditService      services.AuditServicer
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(runner *analysis.Runner, transcriptService services.TranscriptServicer, auditService services.AuditServicer) *AnalysisHandler {
	return &AnalysisHandler{
		runner:            runner,
		transcriptService: transcriptService,
		auditService:      auditService,
	}
}

// Analyze starts a background analysis job for the video and returns 202.
// Re-running analysis replaces the video's previous AI annotations.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	videoID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.runner.Analyze(videoID, userID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "analysis_started", "video", videoID, c.ClientIP(), nil)

	c.JSON(http.StatusAccepted, gin.H{
		"message":  "Analysis started",
		"video_id": videoID,
	})
}

// AnalysisStatus reports the progress of a video's analysis.
func (h *AnalysisHandler) AnalysisStatus(c *gin.Context) {
	videoID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.runner.Status(videoID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// GetTranscript returns the video's transcript.
func (h *AnalysisHandler) GetTranscript(c *gin.Context) {
	videoID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transcript, err := h.transcriptService.GetVideoTranscript(videoID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transcript": transcript})
}
