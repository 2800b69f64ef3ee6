package services

import (
	"time"

	"github.com/HammadCopilot/star-video-review/internal/models"
	"github.com/HammadCopilot/star-video-review/internal/pagination"
)

// UserUpdate holds optional fields for updating a user. Role and IsActive
// may only be changed by admins; the service enforces this.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Password  *string
	Role      *models.Role
	IsActive  *bool
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string, role models.Role) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	UpdateUser(actorID string, actorRole models.Role, targetID string, update UserUpdate) (*models.User, error)
	DeleteUser(actorID, targetID string) error
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// VideoFilter holds optional filter parameters for listing videos.
type VideoFilter struct {
	Category   *models.PracticeCategory
	Status     *models.AnalysisStatus
	UploaderID *string
}

// VideoUpdate holds optional fields for updating video metadata.
type VideoUpdate struct {
	Title       *string
	Description *string
	Category    *models.PracticeCategory
}

// VideoServicer defines the contract for video-related business logic.
type VideoServicer interface {
	CreateLocalVideo(uploaderID, title, description string, category models.PracticeCategory, filePath string, duration float64) (*models.Video, error)
	CreateURLVideo(uploaderID, title, description string, category models.PracticeCategory, url string) (*models.Video, error)
	ListVideos(filter VideoFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Video], error)
	GetVideoByID(id string) (*models.Video, error)
	UpdateVideo(actorID string, actorRole models.Role, videoID string, update VideoUpdate) (*models.Video, error)
	DeleteVideo(actorID string, actorRole models.Role, videoID string) error
}

// AnnotationInput holds the fields for creating an annotation.
type AnnotationInput struct {
	VideoID          string
	StartTime        float64
	EndTime          *float64
	PracticeCategory models.PracticeCategory
	PracticeID       *string
	Comment          string
	Type             models.AnnotationType
	Status           models.AnnotationStatus
	ConfidenceScore  *float64
}

// AnnotationUpdate holds optional fields for updating an annotation.
type AnnotationUpdate struct {
	StartTime        *float64
	EndTime          *float64
	PracticeCategory *models.PracticeCategory
	PracticeID       *string
	Comment          *string
	Status           *models.AnnotationStatus
	ConfidenceScore  *float64
}

// AnnotationFilter holds optional filter parameters for listing annotations.
type AnnotationFilter struct {
	VideoID          *string
	ReviewerID       *string
	PracticeCategory *models.PracticeCategory
	Status           *models.AnnotationStatus
	Type             *models.AnnotationType
}

// AnnotationSummary aggregates a video's annotations for the review screen.
type AnnotationSummary struct {
	TotalAnnotations int            `json:"total_annotations"`
	ByCategory       map[string]int `json:"by_category"`
	ByStatus         map[string]int `json:"by_status"`
	ByType           map[string]int `json:"by_type"`
}

// AnnotationServicer defines the contract for annotation-related business logic.
type AnnotationServicer interface {
	CreateAnnotation(reviewerID string, input AnnotationInput) (*models.Annotation, error)
	CreateBulkAnnotations(reviewerID string, inputs []AnnotationInput) ([]models.Annotation, error)
	ListAnnotations(filter AnnotationFilter) ([]models.Annotation, error)
	GetAnnotationByID(id string) (*models.Annotation, error)
	UpdateAnnotation(actorID string, actorRole models.Role, annotationID string, update AnnotationUpdate) (*models.Annotation, error)
	DeleteAnnotation(actorID string, actorRole models.Role, annotationID string) error
	VideoSummary(videoID string) (*AnnotationSummary, []models.Annotation, error)
}

// PracticeServicer defines the contract for the best-practice catalog.
type PracticeServicer interface {
	ListPractices(category *models.PracticeCategory, isPositive *bool) ([]models.BestPractice, error)
	GetPracticeByID(id string) (*models.BestPractice, error)
	Categories() ([]string, error)
	PracticesByCategory(category models.PracticeCategory) (positive, negative []models.BestPractice, err error)
}

// ReviewServicer defines the contract for review session tracking.
type ReviewServicer interface {
	StartReview(reviewerID, videoID, notes string) (*models.Review, error)
	UpdateReview(actorID string, actorRole models.Role, reviewID string, status *models.ReviewStatus, notes *string) (*models.Review, error)
	ListVideoReviews(videoID string) ([]models.Review, error)
	ListReviewerReviews(reviewerID string) ([]models.Review, error)
}

// ReportEntry is a single strength or improvement line in a video report.
type ReportEntry struct {
	Practice  string `json:"practice"`
	Timestamp string `json:"timestamp"`
	Comment   string `json:"comment"`
}

// VideoReport is the full per-video report.
type VideoReport struct {
	Video        *models.Video        `json:"video"`
	GeneratedAt  time.Time            `json:"generated_at"`
	Summary      VideoReportSummary   `json:"summary"`
	Breakdown    VideoReportBreakdown `json:"breakdown"`
	Annotations  []models.Annotation  `json:"annotations"`
	Strengths    []ReportEntry        `json:"strengths"`
	Improvements []ReportEntry        `json:"improvements"`
}

// VideoReportSummary holds headline numbers for a video report.
type VideoReportSummary struct {
	TotalAnnotations         int     `json:"total_annotations"`
	PositiveIndicators       int     `json:"positive_indicators"`
	AreasForImprovement      int     `json:"areas_for_improvement"`
	PracticesCoveragePercent float64 `json:"practices_coverage_percent"`
}

// VideoReportBreakdown groups annotation counts along several axes.
type VideoReportBreakdown struct {
	ByCategory map[string]int `json:"by_category"`
	ByPractice map[string]int `json:"by_practice"`
	ByStatus   map[string]int `json:"by_status"`
	ByType     map[string]int `json:"by_type"`
}

// ReviewerActivity is one recent-activity line in a reviewer report.
type ReviewerActivity struct {
	VideoID    string    `json:"video_id"`
	VideoTitle string    `json:"video_title"`
	Date       time.Time `json:"date"`
}

// ReviewerReport summarizes a single reviewer's output.
type ReviewerReport struct {
	Reviewer          *models.User       `json:"reviewer"`
	GeneratedAt       time.Time          `json:"generated_at"`
	TotalAnnotations  int                `json:"total_annotations"`
	VideosReviewed    int                `json:"videos_reviewed"`
	ReviewsInProgress int                `json:"reviews_in_progress"`
	ReviewsCompleted  int                `json:"reviews_completed"`
	RecentActivity    []ReviewerActivity `json:"recent_activity"`
}

// TopReviewer is one row of the system summary leaderboard.
type TopReviewer struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Annotations int64  `json:"annotations"`
}

// SystemSummary is the admin-facing cross-system report.
type SystemSummary struct {
	GeneratedAt      time.Time      `json:"generated_at"`
	StartDate        *time.Time     `json:"start_date,omitempty"`
	EndDate          *time.Time     `json:"end_date,omitempty"`
	TotalVideos      int64          `json:"total_videos"`
	AnalyzedVideos   int64          `json:"analyzed_videos"`
	TotalAnnotations int64          `json:"total_annotations"`
	ActiveReviewers  int            `json:"active_reviewers"`
	VideosByCategory map[string]int `json:"videos_by_category"`
	TopReviewers     []TopReviewer  `json:"top_reviewers"`
}

// ReportServicer defines the contract for report generation.
type ReportServicer interface {
	VideoReport(videoID string) (*VideoReport, error)
	ReviewerReport(reviewerID string) (*ReviewerReport, error)
	SystemSummary(startDate, endDate *time.Time) (*SystemSummary, error)
}

// TranscriptServicer defines the contract for transcript retrieval.
type TranscriptServicer interface {
	GetVideoTranscript(videoID string) (*models.Transcript, error)
}

// AuditFilter holds optional filter parameters for listing audit entries.
type AuditFilter struct {
	UserID *string
	Action *string
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, details map[string]interface{})
	ListAuditLogs(filter AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error)
}
