package models

// TranscriptMethod identifies how a transcript was produced.
type TranscriptMethod string

// Transcript methods.
const (
	MethodLocalWhisper TranscriptMethod = "local_whisper"
	MethodOpenAIAPI    TranscriptMethod = "openai_api"
)

// Transcript holds the transcription of a video's audio track. At most one
// transcript exists per video; re-analysis updates it in place.
type Transcript struct {
	Base
	VideoID        string           `gorm:"type:uuid;not null;uniqueIndex" json:"video_id"`
	Content        string           `gorm:"type:text;not null" json:"content"`
	Method         TranscriptMethod `gorm:"not null;size:20" json:"method"`
	Language       string           `gorm:"default:en;size:10" json:"language"`
	Confidence     *float64         `json:"confidence,omitempty"`
	ProcessingTime float64          `json:"processing_time"`
}
