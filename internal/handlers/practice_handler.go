package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/HammadCopilot/star-video-review/internal/errors"
	"github.com/HammadCopilot/star-video-review/internal/models"
	"github.com/HammadCopilot/star-video-review/internal/services"
)

// PracticeHandler serves the read-only best-practice catalog.
type PracticeHandler struct {
	practiceService services.PracticeServicer
}

// NewPracticeHandler creates a new PracticeHandler.
func NewPracticeHandler(practiceService services.PracticeServicer) *PracticeHandler {
	return &PracticeHandler{practiceService: practiceService}
}

// ListPracticesQuery represents the catalog filter parameters
type ListPracticesQuery struct {
	Category   *models.PracticeCategory `form:"category" binding:"omitempty,practice_category"`
	IsPositive *bool                    `form:"is_positive"`
}

// ListPractices returns the catalog, optionally filtered by category and
// polarity.
func (h *PracticeHandler) ListPractices(c *gin.Context) {
	var query ListPracticesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	practices, err := h.practiceService.ListPractices(query.Category, query.IsPositive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"practices": practices})
}

// GetPractice returns a single catalog entry.
func (h *PracticeHandler) GetPractice(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	practice, err := h.practiceService.GetPracticeByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"practice": practice})
}

// ListCategories returns the distinct practice categories.
func (h *PracticeHandler) ListCategories(c *gin.Context) {
	categories, err := h.practiceService.Categories()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategoryPractices returns a category's practices split into strengths
// and improvement areas, the shape the annotation editor consumes.
func (h *PracticeHandler) GetCategoryPractices(c *gin.Context) {
	category := models.PracticeCategory(c.Param("category"))

	positive, negative, err := h.practiceService.PracticesByCategory(category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"positive": positive,
		"negative": negative,
	})
}
