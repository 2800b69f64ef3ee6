package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/HammadCopilot/star-video-review/internal/errors"
	"github.com/HammadCopilot/star-video-review/internal/models"
)

// reportService builds aggregate reports over videos, annotations, and reviews.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// VideoReport builds the full per-video report: headline counts, breakdowns
// along category/practice/status/type, practice coverage, and the strength
// and improvement listings derived from annotation comment markers.
func (s *reportService) VideoReport(videoID string) (*VideoReport, error) {
	var video models.Video
	if err := s.db.Preload("Uploader").Where("id = ?", videoID).First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrVideoNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var annotations []models.Annotation
	if err := s.db.Preload("Practice").Where("video_id = ?", videoID).
		Order("start_time").Find(&annotations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	report := &VideoReport{
		Video:       &video,
		GeneratedAt: time.Now().UTC(),
		Breakdown: VideoReportBreakdown{
			ByCategory: make(map[string]int),
			ByPractice: make(map[string]int),
			ByStatus:   make(map[string]int),
			ByType:     make(map[string]int),
		},
		Annotations:  annotations,
		Strengths:    []ReportEntry{},
		Improvements: []ReportEntry{},
	}
	report.Summary.TotalAnnotations = len(annotations)

	practicesFound := 0
	for _, ann := range annotations {
		report.Breakdown.ByCategory[string(ann.PracticeCategory)]++
		report.Breakdown.ByStatus[string(ann.Status)]++
		report.Breakdown.ByType[string(ann.Type)]++
		if ann.Practice != nil {
			report.Breakdown.ByPractice[ann.Practice.Title]++
		}
		if ann.PracticeID != nil {
			practicesFound++
		}

		entry := ReportEntry{
			Practice:  "General",
			Timestamp: fmt.Sprintf("%ds", int(ann.StartTime)),
			Comment:   ann.Comment,
		}
		if ann.Practice != nil {
			entry.Practice = ann.Practice.Title
		}

		switch {
		case strings.Contains(ann.Comment, models.StrengthMarker):
			report.Summary.PositiveIndicators++
			report.Strengths = append(report.Strengths, entry)
		case strings.Contains(ann.Comment, models.ImprovementMarker):
			report.Summary.AreasForImprovement++
			report.Improvements = append(report.Improvements, entry)
		}
	}

	// Coverage: share of the video's category catalog touched by annotations.
	if video.Category != "" {
		var catalogSize int64
		if err := s.db.Model(&models.BestPractice{}).
			Where("category = ?", video.Category).Count(&catalogSize).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if catalogSize > 0 {
			coverage := float64(practicesFound) / float64(catalogSize) * 100
			report.Summary.PracticesCoveragePercent = float64(int(coverage*100+0.5)) / 100
		}
	}

	return report, nil
}

// ReviewerReport summarizes a reviewer's annotation and review activity.
func (s *reportService) ReviewerReport(reviewerID string) (*ReviewerReport, error) {
	var reviewer models.User
	if err := s.db.Where("id = ?", reviewerID).First(&reviewer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var annotations []models.Annotation
	if err := s.db.Where("reviewer_id = ?", reviewerID).
		Order("created_at DESC").Find(&annotations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	videosSeen := make(map[string]bool)
	for _, ann := range annotations {
		videosSeen[ann.VideoID] = true
	}

	var reviews []models.Review
	if err := s.db.Where("reviewer_id = ?", reviewerID).Find(&reviews).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	report := &ReviewerReport{
		Reviewer:         &reviewer,
		GeneratedAt:      time.Now().UTC(),
		TotalAnnotations: len(annotations),
		VideosReviewed:   len(videosSeen),
		RecentActivity:   []ReviewerActivity{},
	}
	for _, r := range reviews {
		switch r.Status {
		case models.ReviewInProgress:
			report.ReviewsInProgress++
		case models.ReviewCompleted:
			report.ReviewsCompleted++
		}
	}

	// Last 10 annotations, newest first.
	recent := annotations
	if len(recent) > 10 {
		recent = recent[:10]
	}
	for _, ann := range recent {
		activity := ReviewerActivity{VideoID: ann.VideoID, Date: ann.CreatedAt}
		var video models.Video
		if err := s.db.Select("title").Where("id = ?", ann.VideoID).First(&video).Error; err == nil {
			activity.VideoTitle = video.Title
		} else {
			activity.VideoTitle = "Unknown"
		}
		report.RecentActivity = append(report.RecentActivity, activity)
	}

	return report, nil
}

// SystemSummary builds the admin-facing cross-system report, optionally
// restricted to a creation date range.
func (s *reportService) SystemSummary(startDate, endDate *time.Time) (*SystemSummary, error) {
	videosQuery := s.db.Model(&models.Video{})
	annotationsQuery := s.db.Model(&models.Annotation{})
	if startDate != nil {
		videosQuery = videosQuery.Where("created_at >= ?", *startDate)
		annotationsQuery = annotationsQuery.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		videosQuery = videosQuery.Where("created_at <= ?", *endDate)
		annotationsQuery = annotationsQuery.Where("created_at <= ?", *endDate)
	}

	summary := &SystemSummary{
		GeneratedAt:      time.Now().UTC(),
		StartDate:        startDate,
		EndDate:          endDate,
		VideosByCategory: make(map[string]int),
		TopReviewers:     []TopReviewer{},
	}

	if err := videosQuery.Count(&summary.TotalVideos).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := annotationsQuery.Count(&summary.TotalAnnotations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := videosQuery.Session(&gorm.Session{}).Where("is_analyzed = ?", true).
		Count(&summary.AnalyzedVideos).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var videos []models.Video
	if err := videosQuery.Session(&gorm.Session{}).Select("category").Find(&videos).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, v := range videos {
		if v.Category != "" {
			summary.VideosByCategory[string(v.Category)]++
		}
	}

	type reviewerRow struct {
		ID              string
		Email           string
		FirstName       string
		LastName        string
		AnnotationCount int64
	}
	var rows []reviewerRow
	if err := s.db.Model(&models.User{}).
		Select("users.id, users.email, users.first_name, users.last_name, COUNT(annotations.id) AS annotation_count").
		Joins("JOIN annotations ON annotations.reviewer_id = users.id").
		Group("users.id, users.email, users.first_name, users.last_name").
		Order("annotation_count DESC").
		Limit(5).
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary.ActiveReviewers = len(rows)
	for _, r := range rows {
		summary.TopReviewers = append(summary.TopReviewers, TopReviewer{
			ID:          r.ID,
			Email:       r.Email,
			Name:        strings.TrimSpace(r.FirstName + " " + r.LastName),
			Annotations: r.AnnotationCount,
		})
	}

	return summary, nil
}
