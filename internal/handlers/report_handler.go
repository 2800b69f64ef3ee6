package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/HammadCopilot/star-video-review/internal/errors"
	"github.com/HammadCopilot/star-video-review/internal/export"
	"github.com/HammadCopilot/star-video-review/internal/models"
	"github.com/HammadCopilot/star-video-review/internal/services"
)

// ReportHandler serves aggregate reports and their export formats.
type ReportHandler struct {
	reportService services.ReportServicer
	auditService  services.AuditServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer, auditService services.AuditServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService, auditService: auditService}
}

// VideoReport returns the full report for a video.
func (h *ReportHandler) VideoReport(c *gin.Context) {
	videoID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.VideoReport(videoID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// ExportVideoReport streams a video report as a CSV or JSON download.
// The format query parameter selects the output, defaulting to JSON.
func (h *ReportHandler) ExportVideoReport(c *gin.Context) {
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

	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.VideoReport(videoID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "report_exported", "video", videoID, c.ClientIP(),
		map[string]interface{}{"format": format})

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(videoID, format)+`"`)
	c.Header("Content-Type", format.ContentType())
	c.Status(http.StatusOK)
	if err := export.WriteReport(c.Writer, report, format); err != nil {
		// Headers are already written; log rather than emit a second body.
		_ = c.Error(err)
	}
}

// ReviewerReport returns the activity report for a reviewer. Reviewers may
// only fetch their own; admins may fetch anyone's.
func (h *ReportHandler) ReviewerReport(c *gin.Context) {
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
	reviewerID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if role != models.RoleAdmin && userID != reviewerID {
		respondWithError(c, apperrors.ErrForbidden)
		return
	}

	report, err := h.reportService.ReviewerReport(reviewerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// SystemSummary returns the admin overview, optionally bounded by
// start_date and end_date (RFC 3339 or YYYY-MM-DD).
func (h *ReportHandler) SystemSummary(c *gin.Context) {
	startDate, err := parseDateQuery(c.Query("start_date"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	endDate, err := parseDateQuery(c.Query("end_date"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.SystemSummary(startDate, endDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func parseDateQuery(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date "+value)
}
