package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/HammadCopilot/star-video-review/internal/errors"
	"github.com/HammadCopilot/star-video-review/internal/models"
)

// annotationService handles annotation-related business logic.
type annotationService struct {
	db *gorm.DB
}

// NewAnnotationService creates a new AnnotationServicer.
func NewAnnotationService(db *gorm.DB) AnnotationServicer {
	return &annotationService{db: db}
}

func (s *annotationService) validateInput(input *AnnotationInput) error {
	if input.VideoID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "video_id is required")
	}
	if input.StartTime < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "start_time must not be negative")
	}
	if input.EndTime != nil && *input.EndTime < input.StartTime {
		return apperrors.ErrInvalidTimeRange
	}
	if input.PracticeCategory == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "practice_category is required")
	}
	if input.Type == "" {
		input.Type = models.AnnotationManual
	}
	if input.Status == "" {
		input.Status = models.StatusApproved
	}
	return nil
}

// CreateAnnotation creates a manual annotation against an existing video.
func (s *annotationService) CreateAnnotation(reviewerID string, input AnnotationInput) (*models.Annotation, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Video{}).Where("id = ?", input.VideoID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrVideoNotFound
	}

	annotation := &models.Annotation{
		VideoID:          input.VideoID,
		ReviewerID:       reviewerID,
		StartTime:        input.StartTime,
		EndTime:          input.EndTime,
		PracticeCategory: input.PracticeCategory,
		PracticeID:       input.PracticeID,
		Comment:          input.Comment,
		Type:             input.Type,
		Status:           input.Status,
		ConfidenceScore:  input.ConfidenceScore,
	}

	if err := s.db.Create(annotation).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return annotation, nil
}

// CreateBulkAnnotations creates many annotations in one call, as the AI
// pipeline does. Entries missing required fields are skipped, not failed.
func (s *annotationService) CreateBulkAnnotations(reviewerID string, inputs []AnnotationInput) ([]models.Annotation, error) {
	created := make([]models.Annotation, 0, len(inputs))

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, input := range inputs {
			if input.VideoID == "" || input.PracticeCategory == "" || input.StartTime < 0 {
				continue
			}
			if input.Type == "" {
				input.Type = models.AnnotationAI
			}
			if input.Status == "" {
				input.Status = models.StatusDraft
			}

			annotation := models.Annotation{
				VideoID:          input.VideoID,
				ReviewerID:       reviewerID,
				StartTime:        input.StartTime,
				EndTime:          input.EndTime,
				PracticeCategory: input.PracticeCategory,
				PracticeID:       input.PracticeID,
				Comment:          input.Comment,
				Type:             input.Type,
				Status:           input.Status,
				ConfidenceScore:  input.ConfidenceScore,
			}
			if err := tx.Create(&annotation).Error; err != nil {
				return err
			}
			created = append(created, annotation)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return created, nil
}

// ListAnnotations retrieves annotations ordered by video and start time.
func (s *annotationService) ListAnnotations(filter AnnotationFilter) ([]models.Annotation, error) {
	query := s.db.Model(&models.Annotation{})
	if filter.VideoID != nil {
		query = query.Where("video_id = ?", *filter.VideoID)
	}
	if filter.ReviewerID != nil {
		query = query.Where("reviewer_id = ?", *filter.ReviewerID)
	}
	if filter.PracticeCategory != nil {
		query = query.Where("practice_category = ?", *filter.PracticeCategory)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("annotation_type = ?", *filter.Type)
	}

	var annotations []models.Annotation
	if err := query.Preload("Reviewer").Preload("Practice").
		Order("video_id, start_time").Find(&annotations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return annotations, nil
}

// GetAnnotationByID retrieves one annotation with its practice and reviewer.
func (s *annotationService) GetAnnotationByID(id string) (*models.Annotation, error) {
	var annotation models.Annotation
	if err := s.db.Preload("Reviewer").Preload("Practice").
		Where("id = ?", id).First(&annotation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAnnotationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &annotation, nil
}

// UpdateAnnotation updates an annotation. Only the owning reviewer or an
// admin may edit.
func (s *annotationService) UpdateAnnotation(actorID string, actorRole models.Role, annotationID string, update AnnotationUpdate) (*models.Annotation, error) {
	annotation, err := s.GetAnnotationByID(annotationID)
	if err != nil {
		return nil, err
	}

	if actorRole != models.RoleAdmin && annotation.ReviewerID != actorID {
		return nil, apperrors.ErrForbidden
	}

	updates := make(map[string]interface{})
	if update.StartTime != nil {
		if *update.StartTime < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "start_time must not be negative")
		}
		updates["start_time"] = *update.StartTime
	}
	if update.EndTime != nil {
		start := annotation.StartTime
		if update.StartTime != nil {
			start = *update.StartTime
		}
		if *update.EndTime < start {
			return nil, apperrors.ErrInvalidTimeRange
		}
		updates["end_time"] = *update.EndTime
	}
	if update.PracticeCategory != nil {
		updates["practice_category"] = *update.PracticeCategory
	}
	if update.PracticeID != nil {
		updates["practice_id"] = *update.PracticeID
	}
	if update.Comment != nil {
		updates["comment"] = *update.Comment
	}
	if update.Status != nil {
		updates["status"] = *update.Status
	}
	if update.ConfidenceScore != nil {
		updates["confidence_score"] = *update.ConfidenceScore
	}

	if len(updates) > 0 {
		if err := s.db.Model(annotation).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return annotation, nil
}

// DeleteAnnotation removes an annotation. Only the owning reviewer or an
// admin may delete.
func (s *annotationService) DeleteAnnotation(actorID string, actorRole models.Role, annotationID string) error {
	annotation, err := s.GetAnnotationByID(annotationID)
	if err != nil {
		return err
	}

	if actorRole != models.RoleAdmin && annotation.ReviewerID != actorID {
		return apperrors.ErrForbidden
	}

	if err := s.db.Delete(annotation).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// VideoSummary aggregates a video's annotations by category, status, and type.
func (s *annotationService) VideoSummary(videoID string) (*AnnotationSummary, []models.Annotation, error) {
	var count int64
	if err := s.db.Model(&models.Video{}).Where("id = ?", videoID).Count(&count).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, nil, apperrors.ErrVideoNotFound
	}

	annotations, err := s.ListAnnotations(AnnotationFilter{VideoID: &videoID})
	if err != nil {
		return nil, nil, err
	}

	summary := &AnnotationSummary{
		TotalAnnotations: len(annotations),
		ByCategory:       make(map[string]int),
		ByStatus:         make(map[string]int),
		ByType:           make(map[string]int),
	}
	for _, ann := range annotations {
		summary.ByCategory[string(ann.PracticeCategory)]++
		summary.ByStatus[string(ann.Status)]++
		summary.ByType[string(ann.Type)]++
	}

	return summary, annotations, nil
}
