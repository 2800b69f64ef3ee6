package services

import (
	"testing"

	"github.com/HammadCopilot/star-video-review/internal/models"
	"github.com/HammadCopilot/star-video-review/internal/testutil"
)

func TestCreateAnnotation(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnnotationService(db)
		user := testutil.CreateTestUser(t, db)
		video := testutil.CreateTestVideo(t, db, user.ID)

		end := 25.5
		annotation, err := svc.CreateAnnotation(user.ID, AnnotationInput{
			VideoID:          video.ID,
			StartTime:        12.0,
			EndTime:          &end,
			PracticeCategory: models.CategoryDiscreteTrial,
			Comment:          "Clear cue delivery",
		})
		testutil.AssertNoError(t, err)

		if annotation.Type != models.AnnotationManual {
			t.Errorf("expected manual type default, got %s", annotation.Type)
		}
		if annotation.Status != models.StatusApproved {
			t.Errorf("expected approved status default, got %s", annotation.Status)
		}
	})

	t.Run("missing_video", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnnotationService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateAnnotation(user.ID, AnnotationInput{
			VideoID:          "0198a5e0-0000-7000-8000-000000000000",
			StartTime:        5,
			PracticeCategory: models.CategoryDiscreteTrial,
		})
		testutil.AssertAppError(t, err, "VIDEO_NOT_FOUND")
	})

	t.Run("end_before_start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnnotationService(db)
		user := testutil.CreateTestUser(t, db)
		video := testutil.CreateTestVideo(t, db, user.ID)

		end := 3.0
		_, err := svc.CreateAnnotation(user.ID, AnnotationInput{
			VideoID:          video.ID,
			StartTime:        10,
			EndTime:          &end,
			PracticeCategory: models.CategoryDiscreteTrial,
		})
		testutil.AssertAppError(t, err, "INVALID_TIME_RANGE")
	})

	t.Run("negative_start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnnotationService(db)
		user := testutil.CreateTestUser(t, db)
		video := testutil.CreateTestVideo(t, db, user.ID)

		_, err := svc.CreateAnnotation(user.ID, AnnotationInput{
			VideoID:          video.ID,
			StartTime:        -1,
			PracticeCategory: models.CategoryDiscreteTrial,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestCreateBulkAnnotations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAnnotationService(db)
	user := testutil.CreateTestUser(t, db)
	video := testutil.CreateTestVideo(t, db, user.ID)

	created, err := svc.CreateBulkAnnotations(user.ID, []AnnotationInput{
		{VideoID: video.ID, StartTime: 5, PracticeCategory: models.CategoryDiscreteTrial},
		{VideoID: "", StartTime: 10, PracticeCategory: models.CategoryDiscreteTrial}, // skipped
		{VideoID: video.ID, StartTime: 15, PracticeCategory: models.CategoryDiscreteTrial},
	})
	testutil.AssertNoError(t, err)

	if len(created) != 2 {
		t.Fatalf("expected 2 created annotations, got %d", len(created))
	}
	for _, ann := range created {
		if ann.Type != models.AnnotationAI {
			t.Errorf("expected ai_generated type default in bulk create, got %s", ann.Type)
		}
		if ann.Status != models.StatusDraft {
			t.Errorf("expected draft status default in bulk create, got %s", ann.Status)
		}
	}
}

func TestListAnnotations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAnnotationService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	video := testutil.CreateTestVideo(t, db, user.ID)

	testutil.CreateTestAnnotation(t, db, video.ID, user.ID)
	testutil.CreateTestAnnotation(t, db, video.ID, other.ID)

	t.Run("by_video", func(t *testing.T) {
		annotations, err := svc.ListAnnotations(AnnotationFilter{VideoID: &video.ID})
		testutil.AssertNoError(t, err)
		if len(annotations) != 2 {
			t.Errorf("expected 2 annotations, got %d", len(annotations))
		}
	})

	t.Run("by_reviewer", func(t *testing.T) {
		annotations, err := svc.ListAnnotations(AnnotationFilter{ReviewerID: &other.ID})
		testutil.AssertNoError(t, err)
		if len(annotations) != 1 {
			t.Errorf("expected 1 annotation, got %d", len(annotations))
		}
	})
}

func TestUpdateAnnotation(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	floatPtr := func(f float64) *float64 { return &f }

	t.Run("owner_updates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnnotationService(db)
		user := testutil.CreateTestUser(t, db)
		video := testutil.CreateTestVideo(t, db, user.ID)
		annotation := testutil.CreateTestAnnotation(t, db, video.ID, user.ID)

		updated, err := svc.UpdateAnnotation(user.ID, models.RoleReviewer, annotation.ID, AnnotationUpdate{
			Comment: strPtr("Revised comment"),
		})
		testutil.AssertNoError(t, err)
		if updated.Comment != "Revised comment" {
			t.Errorf("expected revised comment, got %s", updated.Comment)
		}
	})

	t.Run("non_owner_forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnnotationService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		video := testutil.CreateTestVideo(t, db, user.ID)
		annotation := testutil.CreateTestAnnotation(t, db, video.ID, user.ID)

		_, err := svc.UpdateAnnotation(other.ID, models.RoleReviewer, annotation.ID, AnnotationUpdate{
			Comment: strPtr("Nope"),
		})
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("end_time_validated_against_new_start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnnotationService(db)
		user := testutil.CreateTestUser(t, db)
		video := testutil.CreateTestVideo(t, db, user.ID)
		annotation := testutil.CreateTestAnnotation(t, db, video.ID, user.ID)

		_, err := svc.UpdateAnnotation(user.ID, models.RoleReviewer, annotation.ID, AnnotationUpdate{
			StartTime: floatPtr(30),
			EndTime:   floatPtr(20),
		})
		testutil.AssertAppError(t, err, "INVALID_TIME_RANGE")
	})

	t.Run("admin_moderates_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnnotationService(db)
		user := testutil.CreateTestUser(t, db)
		admin := testutil.CreateTestAdmin(t, db)
		video := testutil.CreateTestVideo(t, db, user.ID)
		annotation := testutil.CreateTestAnnotation(t, db, video.ID, user.ID)

		rejected := models.StatusRejected
		updated, err := svc.UpdateAnnotation(admin.ID, models.RoleAdmin, annotation.ID, AnnotationUpdate{
			Status: &rejected,
		})
		testutil.AssertNoError(t, err)
		if updated.Status != models.StatusRejected {
			t.Errorf("expected rejected status, got %s", updated.Status)
		}
	})
}

func TestDeleteAnnotation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAnnotationService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	video := testutil.CreateTestVideo(t, db, user.ID)
	annotation := testutil.CreateTestAnnotation(t, db, video.ID, user.ID)

	err := svc.DeleteAnnotation(other.ID, models.RoleReviewer, annotation.ID)
	testutil.AssertAppError(t, err, "FORBIDDEN")

	testutil.AssertNoError(t, svc.DeleteAnnotation(user.ID, models.RoleReviewer, annotation.ID))

	_, err = svc.GetAnnotationByID(annotation.ID)
	testutil.AssertAppError(t, err, "ANNOTATION_NOT_FOUND")
}

func TestVideoSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAnnotationService(db)
	user := testutil.CreateTestUser(t, db)
	video := testutil.CreateTestVideo(t, db, user.ID)

	testutil.CreateTestAnnotation(t, db, video.ID, user.ID)
	testutil.CreateTestAnnotation(t, db, video.ID, user.ID)

	summary, annotations, err := svc.VideoSummary(video.ID)
	testutil.AssertNoError(t, err)

	if summary.TotalAnnotations != 2 {
		t.Errorf("expected 2 annotations in summary, got %d", summary.TotalAnnotations)
	}
	if len(annotations) != 2 {
		t.Errorf("expected 2 annotations returned, got %d", len(annotations))
	}
	if summary.ByType[string(models.AnnotationManual)] != 2 {
		t.Errorf("expected 2 manual annotations, got %d", summary.ByType[string(models.AnnotationManual)])
	}

	_, _, err = svc.VideoSummary("0198a5e0-0000-7000-8000-000000000000")
	testutil.AssertAppError(t, err, "VIDEO_NOT_FOUND")
}
