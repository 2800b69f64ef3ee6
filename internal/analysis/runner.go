package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/HammadCopilot/star-video-review/internal/ai"
	apperrors "github.com/HammadCopilot/star-video-review/internal/errors"
	"github.com/HammadCopilot/star-video-review/internal/logger"
	"github.com/HammadCopilot/star-video-review/internal/media"
	"github.com/HammadCopilot/star-video-review/internal/models"
	"github.com/HammadCopilot/star-video-review/internal/services"
)

// jobTimeout bounds a single analysis run end to end.
const jobTimeout = 30 * time.Minute

// frameSampleCount frames are sampled for enhanced visual analysis.
const frameSampleCount = 6

// StatusInfo is the progress view returned to clients polling an analysis.
type StatusInfo struct {
	Status   models.AnalysisStatus `json:"status"`
	Progress int                   `json:"progress"`
	Stage    string                `json:"stage"`
}

// Runner launches and executes analysis jobs. One job per video at a time;
// the tracker enforces that.
type Runner struct {
	db       *gorm.DB
	analyzer ai.Analyzer
	tracker  *Tracker
	audit    services.AuditServicer
	enhanced bool
}

// NewRunner creates a Runner. analyzer may be nil when no API key is
// configured; Analyze then reports the analyzer as unavailable.
func NewRunner(db *gorm.DB, analyzer ai.Analyzer, tracker *Tracker, audit services.AuditServicer, enhanced bool) *Runner {
	return &Runner{
		db:       db,
		analyzer: analyzer,
		tracker:  tracker,
		audit:    audit,
		enhanced: enhanced,
	}
}

// Analyze starts a background analysis job for the video. It returns as
// soon as the job is accepted; clients poll Status for progress.
func (r *Runner) Analyze(videoID, actorID string) error {
	if r.analyzer == nil {
		return apperrors.ErrAnalyzerUnavailable
	}

	var video models.Video
	if err := r.db.Where("id = ?", videoID).First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrVideoNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if !r.tracker.Start(videoID) {
		return apperrors.ErrAnalysisInProgress
	}

	if err := r.db.Model(&video).Updates(map[string]interface{}{
		"analysis_status": models.AnalysisProcessing,
		"is_analyzed":     false,
	}).Error; err != nil {
		r.tracker.Finish(videoID)
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	go r.run(&video, actorID)
	return nil
}

// Status reports job progress. A running job answers from the tracker;
// otherwise the persisted video state is mapped to a terminal view.
func (r *Runner) Status(videoID string) (*StatusInfo, error) {
	if p, running := r.tracker.Get(videoID); running {
		return &StatusInfo{
			Status:   models.AnalysisProcessing,
			Progress: p.Percent,
			Stage:    p.Stage,
		}, nil
	}

	var video models.Video
	if err := r.db.Where("id = ?", videoID).First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrVideoNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	info := &StatusInfo{Status: video.AnalysisStatus}
	switch video.AnalysisStatus {
	case models.AnalysisCompleted:
		info.Progress = 100
		info.Stage = "Analysis complete"
	case models.AnalysisFailed:
		info.Stage = "Analysis failed"
		if msg := metadataError(video.Metadata); msg != "" {
			info.Stage = msg
		}
	case models.AnalysisProcessing:
		// Stale processing state from a crashed run.
		info.Stage = "Processing"
	default:
		info.Stage = "Not started"
	}
	return info, nil
}

func (r *Runner) run(video *models.Video, actorID string) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	defer r.tracker.Finish(video.ID)

	log := logger.Named("analysis").With("video_id", video.ID)
	r.progress(video, 5, "Initializing analysis")

	path, cleanup, err := r.resolvePath(ctx, video)
	if err != nil {
		r.fail(video, actorID, err)
		return
	}
	defer cleanup()

	duration := video.Duration
	if duration <= 0 {
		duration, err = media.ProbeDuration(ctx, path)
		if err != nil {
			r.fail(video, actorID, err)
			return
		}
		if err := r.db.Model(video).Update("duration", duration).Error; err != nil {
			log.Warnw("failed to persist probed duration", "error", err)
		}
	}

	r.progress(video, 15, "Transcribing audio")
	audioPath, err := media.ExtractAudio(ctx, path)
	if err != nil {
		r.fail(video, actorID, err)
		return
	}
	defer os.Remove(audioPath)

	transcribeStart := time.Now()
	transcription, err := r.analyzer.Transcribe(ctx, audioPath)
	if err != nil {
		r.fail(video, actorID, err)
		return
	}
	if err := r.saveTranscript(video.ID, transcription, time.Since(transcribeStart)); err != nil {
		r.fail(video, actorID, err)
		return
	}

	positive, negative, byTitle, err := r.loadCatalog(video.Category)
	if err != nil {
		r.fail(video, actorID, err)
		return
	}

	findings, err := r.analyzer.AnalyzeTranscript(ctx, transcription.Text, string(video.Category), positive, negative)
	if err != nil {
		r.fail(video, actorID, err)
		return
	}
	r.progress(video, 85, "Transcript analyzed")

	if r.enhanced {
		frames, err := media.ExtractFrames(ctx, path, frameSampleCount, duration)
		if err != nil {
			log.Warnw("frame extraction failed, continuing without visual analysis", "error", err)
		} else if len(frames) > 0 {
			visual, err := r.analyzer.AnalyzeFrames(ctx, frames, string(video.Category), positive, negative)
			if err != nil {
				log.Warnw("frame analysis failed, continuing without visual analysis", "error", err)
			} else {
				findings = append(findings, visual...)
			}
		}
	}

	r.progress(video, 90, "Generating annotations")
	annotations := buildAnnotations(video, findings, transcription.Segments, duration, byTitle)
	if err := r.replaceAIAnnotations(video.ID, annotations); err != nil {
		r.fail(video, actorID, err)
		return
	}

	metadata := marshalMetadata(map[string]interface{}{
		"annotations":  len(annotations),
		"completed_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err := r.db.Model(video).Updates(map[string]interface{}{
		"is_analyzed":     true,
		"analysis_status": models.AnalysisCompleted,
		"metadata":        metadata,
	}).Error; err != nil {
		r.fail(video, actorID, err)
		return
	}

	r.progress(video, 100, "Analysis complete")
	log.Infow("analysis completed", "annotations", len(annotations))
	r.audit.Log(actorID, "video_analyzed", "video", video.ID, "", map[string]interface{}{
		"annotations": len(annotations),
	})
}

func (r *Runner) progress(video *models.Video, percent int, stage string) {
	r.tracker.Set(video.ID, percent, stage)
}

func (r *Runner) fail(video *models.Video, actorID string, cause error) {
	log := logger.Named("analysis").With("video_id", video.ID)
	log.Errorw("analysis failed", "error", cause)

	metadata := marshalMetadata(map[string]interface{}{"error": cause.Error()})
	if err := r.db.Model(video).Updates(map[string]interface{}{
		"is_analyzed":     false,
		"analysis_status": models.AnalysisFailed,
		"metadata":        metadata,
	}).Error; err != nil {
		log.Errorw("failed to record analysis failure", "error", err)
	}

	r.audit.Log(actorID, "video_analysis_failed", "video", video.ID, "", map[string]interface{}{
		"error": cause.Error(),
	})
}

// resolvePath returns a local filesystem path for the video, downloading
// URL-sourced videos to a temp file first.
func (r *Runner) resolvePath(ctx context.Context, video *models.Video) (string, func(), error) {
	noop := func() {}

	if video.SourceType == models.SourceLocal {
		if video.FilePath == "" {
			return "", noop, apperrors.ErrVideoFileMissing
		}
		if _, err := os.Stat(video.FilePath); err != nil {
			return "", noop, apperrors.ErrVideoFileMissing
		}
		return video.FilePath, noop, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, video.URL, nil)
	if err != nil {
		return "", noop, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", noop, apperrors.Wrap(apperrors.ErrInternalServer,
			fmt.Errorf("video download: %w", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", noop, apperrors.WithMessage(apperrors.ErrInternalServer,
			fmt.Sprintf("Video download failed with status %d", resp.StatusCode))
	}

	tmp, err := os.CreateTemp("", "video-*.mp4")
	if err != nil {
		return "", noop, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", noop, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	tmp.Close()

	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}

// saveTranscript replaces any existing transcript for the video.
func (r *Runner) saveTranscript(videoID string, tr *ai.TranscriptionResult, took time.Duration) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", videoID).Delete(&models.Transcript{}).Error; err != nil {
			return err
		}
		transcript := &models.Transcript{
			VideoID:        videoID,
			Content:        tr.Text,
			Method:         models.MethodOpenAIAPI,
			Language:       tr.Language,
			ProcessingTime: took.Seconds(),
		}
		return tx.Create(transcript).Error
	})
}

// loadCatalog returns the category's practice titles split by polarity plus
// a lowercase title index for finding-to-practice mapping.
func (r *Runner) loadCatalog(category models.PracticeCategory) (positive, negative []string, byTitle map[string]*models.BestPractice, err error) {
	var practices []models.BestPractice
	if err := r.db.Where("category = ?", category).
		Order("display_order").Find(&practices).Error; err != nil {
		return nil, nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byTitle = make(map[string]*models.BestPractice, len(practices))
	for i := range practices {
		p := &practices[i]
		byTitle[strings.ToLower(p.Title)] = p
		if p.IsPositive {
			positive = append(positive, p.Title)
		} else {
			negative = append(negative, p.Title)
		}
	}
	return positive, negative, byTitle, nil
}

// replaceAIAnnotations swaps the video's AI-generated annotations for the
// new set atomically, so re-analysis never duplicates findings.
func (r *Runner) replaceAIAnnotations(videoID string, annotations []models.Annotation) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ? AND annotation_type = ?",
			videoID, models.AnnotationAI).Delete(&models.Annotation{}).Error; err != nil {
			return err
		}
		if len(annotations) == 0 {
			return nil
		}
		return tx.Create(&annotations).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// buildAnnotations converts findings into annotation rows. Timestamps come
// from quote matching against transcript segments, falling back to even
// distribution across the video when no quote matches.
func buildAnnotations(video *models.Video, findings []ai.Finding, segments []ai.Segment, duration float64, byTitle map[string]*models.BestPractice) []models.Annotation {
	annotations := make([]models.Annotation, 0, len(findings))
	for i, f := range findings {
		start, end, matched := matchQuote(segments, f.Quote)
		if !matched {
			start = evenTimestamp(duration, i, len(findings))
			end = start + 10
			if duration > 0 && end > duration {
				end = duration
			}
		}

		marker := models.StrengthMarker + ": "
		status := models.StatusApproved
		if !f.IsPositive {
			marker = models.ImprovementMarker + " NEEDED: "
			status = models.StatusNeedsReview
		}

		confidence := f.Confidence
		ann := models.Annotation{
			VideoID:          video.ID,
			ReviewerID:       video.UploaderID,
			StartTime:        start,
			EndTime:          &end,
			PracticeCategory: video.Category,
			Comment:          marker + f.Comment,
			Type:             models.AnnotationAI,
			Status:           status,
			ConfidenceScore:  &confidence,
		}
		if practice, ok := byTitle[strings.ToLower(f.PracticeTitle)]; ok {
			id := practice.ID
			ann.PracticeID = &id
		}
		annotations = append(annotations, ann)
	}
	return annotations
}

// matchQuote locates a finding's quote inside the transcript segments.
func matchQuote(segments []ai.Segment, quote string) (start, end float64, ok bool) {
	quote = strings.ToLower(strings.TrimSpace(quote))
	if quote == "" {
		return 0, 0, false
	}

	for _, seg := range segments {
		text := strings.ToLower(seg.Text)
		if strings.Contains(text, quote) || strings.Contains(quote, text) {
			return seg.Start, seg.End, true
		}
	}

	// Long quotes may span segments; retry with a shorter prefix.
	if len(quote) > 40 {
		prefix := quote[:40]
		for _, seg := range segments {
			if strings.Contains(strings.ToLower(seg.Text), prefix) {
				return seg.Start, seg.End, true
			}
		}
	}
	return 0, 0, false
}

// evenTimestamp spreads unmatched findings across the video in order.
func evenTimestamp(duration float64, index, total int) float64 {
	if duration <= 0 || total <= 0 {
		return 0
	}
	return duration * float64(index+1) / float64(total+1)
}

func marshalMetadata(analysis map[string]interface{}) string {
	data, err := json.Marshal(map[string]interface{}{"analysis": analysis})
	if err != nil {
		return "{}"
	}
	return string(data)
}

func metadataError(metadata string) string {
	if metadata == "" {
		return ""
	}
	var parsed struct {
		Analysis struct {
			Error string `json:"error"`
		} `json:"analysis"`
	}
	if err := json.Unmarshal([]byte(metadata), &parsed); err != nil {
		return ""
	}
	return parsed.Analysis.Error
}
