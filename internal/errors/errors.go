// Package errors provides custom error types for the STAR Video Review API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Permission denied", StatusCode: http.StatusForbidden}
	ErrAccountDisabled    = &AppError{Code: "ACCOUNT_DISABLED", Message: "Account is disabled", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
	ErrSelfDelete     = &AppError{Code: "SELF_DELETE", Message: "Cannot delete your own account", StatusCode: http.StatusBadRequest}
)

// Video errors.
var (
	ErrVideoNotFound      = &AppError{Code: "VIDEO_NOT_FOUND", Message: "Video not found", StatusCode: http.StatusNotFound}
	ErrVideoFileMissing   = &AppError{Code: "VIDEO_FILE_MISSING", Message: "Video file not found on server", StatusCode: http.StatusNotFound}
	ErrFileTypeNotAllowed = &AppError{Code: "FILE_TYPE_NOT_ALLOWED", Message: "File type not allowed", StatusCode: http.StatusBadRequest}
	ErrNotStreamable      = &AppError{Code: "NOT_STREAMABLE", Message: "External URL videos cannot be streamed", StatusCode: http.StatusBadRequest}
)

// Annotation errors.
var (
	ErrAnnotationNotFound = &AppError{Code: "ANNOTATION_NOT_FOUND", Message: "Annotation not found", StatusCode: http.StatusNotFound}
	ErrInvalidTimeRange   = &AppError{Code: "INVALID_TIME_RANGE", Message: "End time must not precede start time", StatusCode: http.StatusBadRequest}
)

// Best practice errors.
var (
	ErrPracticeNotFound = &AppError{Code: "PRACTICE_NOT_FOUND", Message: "Best practice not found", StatusCode: http.StatusNotFound}
)

// Review errors.
var (
	ErrReviewNotFound = &AppError{Code: "REVIEW_NOT_FOUND", Message: "Review not found", StatusCode: http.StatusNotFound}
)

// Transcript & analysis errors.
var (
	ErrTranscriptNotFound  = &AppError{Code: "TRANSCRIPT_NOT_FOUND", Message: "Transcript not found. Run AI analysis first.", StatusCode: http.StatusNotFound}
	ErrAnalysisInProgress  = &AppError{Code: "ANALYSIS_IN_PROGRESS", Message: "Analysis is already running for this video", StatusCode: http.StatusConflict}
	ErrAnalyzerUnavailable = &AppError{Code: "ANALYZER_UNAVAILABLE", Message: "AI analysis is not configured", StatusCode: http.StatusServiceUnavailable}
)
