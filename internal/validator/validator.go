// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("user_role", validateUserRole)
		_ = v.RegisterValidation("source_type", validateSourceType)
		_ = v.RegisterValidation("practice_category", validatePracticeCategory)
		_ = v.RegisterValidation("annotation_type", validateAnnotationType)
		_ = v.RegisterValidation("annotation_status", validateAnnotationStatus)
		_ = v.RegisterValidation("analysis_status", validateAnalysisStatus)
		_ = v.RegisterValidation("review_status", validateReviewStatus)
	}
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "admin", "reviewer", "viewer":
		return true
	}
	return false
}

func validateSourceType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "local", "url":
		return true
	}
	return false
}

func validatePracticeCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "discrete_trial", "pivotal_response", "functional_routines":
		return true
	}
	return false
}

func validateAnnotationType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "manual", "ai_generated":
		return true
	}
	return false
}

func validateAnnotationStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "draft", "approved", "rejected", "needs_review":
		return true
	}
	return false
}

func validateAnalysisStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "processing", "completed", "failed":
		return true
	}
	return false
}

func validateReviewStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "in_progress", "completed", "archived":
		return true
	}
	return false
}
