package models

// AnnotationType distinguishes human annotations from AI-generated ones.
type AnnotationType string

// Annotation types.
const (
	AnnotationManual AnnotationType = "manual"
	AnnotationAI     AnnotationType = "ai_generated"
)

// AnnotationStatus is the moderation state of an annotation.
type AnnotationStatus string

// Annotation statuses. AI-generated improvement findings land in
// needs_review so a human confirms them before they count.
const (
	StatusDraft       AnnotationStatus = "draft"
	StatusApproved    AnnotationStatus = "approved"
	StatusRejected    AnnotationStatus = "rejected"
	StatusNeedsReview AnnotationStatus = "needs_review"
)

// Comment markers the AI pipeline prefixes findings with. Reports use them
// to classify annotations as strengths or improvement areas.
const (
	StrengthMarker    = "✅ STRENGTH"
	ImprovementMarker = "⚠️ IMPROVEMENT"
)

// Annotation is a timestamped observation against a video, optionally tied
// to a best-practice criterion.
type Annotation struct {
	Base
	VideoID          string           `gorm:"type:uuid;not null;index" json:"video_id"`
	ReviewerID       string           `gorm:"type:uuid;not null;index" json:"reviewer_id"`
	StartTime        float64          `gorm:"not null" json:"start_time"`
	EndTime          *float64         `json:"end_time,omitempty"`
	PracticeCategory PracticeCategory `gorm:"not null;size:50" json:"practice_category"`
	PracticeID       *string          `gorm:"type:uuid" json:"practice_id,omitempty"`
	Comment          string           `gorm:"type:text" json:"comment"`
	Type             AnnotationType   `gorm:"column:annotation_type;default:manual;size:20" json:"annotation_type"`
	Status           AnnotationStatus `gorm:"default:approved;size:20" json:"status"`
	ConfidenceScore  *float64         `json:"confidence_score,omitempty"`

	Reviewer *User         `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Practice *BestPractice `gorm:"foreignKey:PracticeID" json:"practice,omitempty"`
}
