package models

// SourceType identifies where a video's bytes live.
type SourceType string

// Video source types.
const (
	SourceLocal SourceType = "local"
	SourceURL   SourceType = "url"
)

// AnalysisStatus is the lifecycle of the AI analysis job for a video.
type AnalysisStatus string

// Analysis statuses.
const (
	AnalysisPending    AnalysisStatus = "pending"
	AnalysisProcessing AnalysisStatus = "processing"
	AnalysisCompleted  AnalysisStatus = "completed"
	AnalysisFailed     AnalysisStatus = "failed"
)

// PracticeCategory is a STAR teaching methodology taxonomy label.
type PracticeCategory string

// Teaching practice categories.
const (
	CategoryDiscreteTrial      PracticeCategory = "discrete_trial"
	CategoryPivotalResponse    PracticeCategory = "pivotal_response"
	CategoryFunctionalRoutines PracticeCategory = "functional_routines"
)

// Video stores metadata for an uploaded or externally linked training video.
type Video struct {
	Base
	Title          string           `gorm:"not null;size:255" json:"title"`
	Description    string           `gorm:"type:text" json:"description"`
	SourceType     SourceType       `gorm:"not null;size:20" json:"source_type"`
	FilePath       string           `gorm:"size:500" json:"file_path,omitempty"`
	URL            string           `gorm:"size:500" json:"url,omitempty"`
	Duration       float64          `json:"duration"`
	ThumbnailPath  string           `gorm:"size:500" json:"thumbnail_path,omitempty"`
	UploaderID     string           `gorm:"type:uuid;not null;index" json:"uploader_id"`
	Category       PracticeCategory `gorm:"size:50;index" json:"category"`
	IsAnalyzed     bool             `gorm:"default:false" json:"is_analyzed"`
	AnalysisStatus AnalysisStatus   `gorm:"default:pending;size:20;index" json:"analysis_status"`
	Metadata       string           `gorm:"type:text" json:"metadata,omitempty"`

	Uploader    *User        `gorm:"foreignKey:UploaderID" json:"uploader,omitempty"`
	Annotations []Annotation `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"annotations,omitempty"`
	Reviews     []Review     `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	Transcript  *Transcript  `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"transcript,omitempty"`
}
