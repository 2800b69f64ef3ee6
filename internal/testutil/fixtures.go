package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/HammadCopilot/star-video-review/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active reviewer with a hashed password and
// unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithRole(t, db, email, models.RoleReviewer)
}

// CreateTestAdmin creates an active admin user.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("admin%d@test.com", nextID())
	return CreateTestUserWithRole(t, db, email, models.RoleAdmin)
}

// CreateTestViewer creates an active read-only user.
func CreateTestViewer(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("viewer%d@test.com", nextID())
	return CreateTestUserWithRole(t, db, email, models.RoleViewer)
}

// CreateTestUserWithRole creates a user with the given email and role.
func CreateTestUserWithRole(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestVideo creates a local discrete-trial video for the uploader.
func CreateTestVideo(t *testing.T, db *gorm.DB, uploaderID string) *models.Video {
	t.Helper()
	return CreateTestVideoInCategory(t, db, uploaderID, models.CategoryDiscreteTrial)
}

// CreateTestVideoInCategory creates a local video in the given category.
func CreateTestVideoInCategory(t *testing.T, db *gorm.DB, uploaderID string, category models.PracticeCategory) *models.Video {
	t.Helper()

	video := &models.Video{
		Title:          fmt.Sprintf("Test Video %d", nextID()),
		SourceType:     models.SourceLocal,
		FilePath:       fmt.Sprintf("/tmp/test-video-%d.mp4", nextID()),
		Duration:       120,
		UploaderID:     uploaderID,
		Category:       category,
		AnalysisStatus: models.AnalysisPending,
	}
	if err := db.Create(video).Error; err != nil {
		t.Fatalf("failed to create test video: %v", err)
	}
	return video
}

// CreateTestPractice creates a catalog entry in the given category.
func CreateTestPractice(t *testing.T, db *gorm.DB, category models.PracticeCategory, isPositive bool) *models.BestPractice {
	t.Helper()

	n := nextID()
	practice := &models.BestPractice{
		Category:     category,
		Title:        fmt.Sprintf("Test Practice %d", n),
		Description:  "Test practice description",
		Criteria:     "Test practice criteria",
		IsPositive:   isPositive,
		DisplayOrder: int(n),
	}
	if err := db.Create(practice).Error; err != nil {
		t.Fatalf("failed to create test practice: %v", err)
	}
	return practice
}

// CreateTestAnnotation creates a manual approved annotation at 10s.
func CreateTestAnnotation(t *testing.T, db *gorm.DB, videoID, reviewerID string) *models.Annotation {
	t.Helper()

	annotation := &models.Annotation{
		VideoID:          videoID,
		ReviewerID:       reviewerID,
		StartTime:        10,
		PracticeCategory: models.CategoryDiscreteTrial,
		Comment:          fmt.Sprintf("Test annotation %d", nextID()),
		Type:             models.AnnotationManual,
		Status:           models.StatusApproved,
	}
	if err := db.Create(annotation).Error; err != nil {
		t.Fatalf("failed to create test annotation: %v", err)
	}
	return annotation
}

// CreateTestReview creates an in-progress review session.
func CreateTestReview(t *testing.T, db *gorm.DB, videoID, reviewerID string) *models.Review {
	t.Helper()

	review := &models.Review{
		VideoID:    videoID,
		ReviewerID: reviewerID,
		Status:     models.ReviewInProgress,
		StartedAt:  time.Now(),
	}
	if err := db.Create(review).Error; err != nil {
		t.Fatalf("failed to create test review: %v", err)
	}
	return review
}

// CreateTestTranscript creates a transcript for the video.
func CreateTestTranscript(t *testing.T, db *gorm.DB, videoID string) *models.Transcript {
	t.Helper()

	transcript := &models.Transcript{
		VideoID:  videoID,
		Content:  "Sit down. Good sitting! Touch your nose.",
		Method:   models.MethodOpenAIAPI,
		Language: "en",
	}
	if err := db.Create(transcript).Error; err != nil {
		t.Fatalf("failed to create test transcript: %v", err)
	}
	return transcript
}
