package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/HammadCopilot/star-video-review/internal/errors"
	"github.com/HammadCopilot/star-video-review/internal/models"
)

// practiceService serves the read-only best-practice catalog.
type practiceService struct {
	db *gorm.DB
}

// NewPracticeService creates a new PracticeServicer.
func NewPracticeService(db *gorm.DB) PracticeServicer {
	return &practiceService{db: db}
}

// ListPractices retrieves practices ordered by category and display order,
// optionally filtered by category and polarity.
func (s *practiceService) ListPractices(category *models.PracticeCategory, isPositive *bool) ([]models.BestPractice, error) {
	query := s.db.Model(&models.BestPractice{})
	if category != nil {
		query = query.Where("category = ?", *category)
	}
	if isPositive != nil {
		query = query.Where("is_positive = ?", *isPositive)
	}

	var practices []models.BestPractice
	if err := query.Order("category, display_order").Find(&practices).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return practices, nil
}

// GetPracticeByID retrieves a single best practice.
func (s *practiceService) GetPracticeByID(id string) (*models.BestPractice, error) {
	var practice models.BestPractice
	if err := s.db.Where("id = ?", id).First(&practice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPracticeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &practice, nil
}

// Categories returns the distinct practice categories in the catalog.
func (s *practiceService) Categories() ([]string, error) {
	var categories []string
	if err := s.db.Model(&models.BestPractice{}).Distinct("category").
		Order("category").Pluck("category", &categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// PracticesByCategory splits a category's practices into strengths and
// improvement areas. Returns PRACTICE_NOT_FOUND when the category is empty.
func (s *practiceService) PracticesByCategory(category models.PracticeCategory) (positive, negative []models.BestPractice, err error) {
	practices, err := s.ListPractices(&category, nil)
	if err != nil {
		return nil, nil, err
	}
	if len(practices) == 0 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrPracticeNotFound, "No practices found for this category")
	}

	for _, p := range practices {
		if p.IsPositive {
			positive = append(positive, p)
		} else {
			negative = append(negative, p)
		}
	}
	return positive, negative, nil
}
