// Package ai defines the analysis contract for turning classroom videos
// into transcripts and best-practice findings.
package ai

import "context"

// Segment is a timestamped slice of a transcript.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptionResult is the output of speech-to-text over a video's audio.
type TranscriptionResult struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

// Finding is a single observation produced by transcript or frame analysis.
// Quote carries the transcript excerpt the finding is anchored to, used for
// timestamp mapping.
type Finding struct {
	PracticeTitle string  `json:"practice"`
	IsPositive    bool    `json:"is_positive"`
	Comment       string  `json:"comment"`
	Quote         string  `json:"quote"`
	Confidence    float64 `json:"confidence"`
}

// Analyzer produces transcripts and findings for teaching session videos.
type Analyzer interface {
	// Transcribe runs speech-to-text over an audio file.
	Transcribe(ctx context.Context, audioPath string) (*TranscriptionResult, error)

	// AnalyzeTranscript evaluates a session transcript against the
	// practice catalog for a teaching category.
	AnalyzeTranscript(ctx context.Context, transcript string, category string, positive, negative []string) ([]Finding, error)

	// AnalyzeFrames evaluates sampled video frames (base64-encoded JPEG)
	// for visual practice indicators.
	AnalyzeFrames(ctx context.Context, frames []string, category string, positive, negative []string) ([]Finding, error)
}
