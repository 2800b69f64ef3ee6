package models

import "time"

// ReviewStatus is the lifecycle of a review session.
type ReviewStatus string

// Review statuses.
const (
	ReviewInProgress ReviewStatus = "in_progress"
	ReviewCompleted  ReviewStatus = "completed"
	ReviewArchived   ReviewStatus = "archived"
)

// Review tracks a reviewer's pass over a video.
type Review struct {
	Base
	VideoID     string       `gorm:"type:uuid;not null;index" json:"video_id"`
	ReviewerID  string       `gorm:"type:uuid;not null;index" json:"reviewer_id"`
	Status      ReviewStatus `gorm:"default:in_progress;size:20" json:"status"`
	Notes       string       `gorm:"type:text" json:"notes"`
	StartedAt   time.Time    `json:"started_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`

	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}
