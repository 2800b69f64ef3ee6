package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/HammadCopilot/star-video-review/internal/models"
)

func TestReviewFlow_StartDedupeComplete(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "reviewer@test.com", "Password123!")
	videoID := app.createURLVideo(t, token, "Review Target", models.CategoryDiscreteTrial)

	// Step 1: Start a review session
	body := fmt.Sprintf(`{"video_id":%q,"notes":"First pass"}`, videoID)
	rec := app.request("POST", "/api/v1/reviews", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start failed: %d %s", rec.Code, rec.Body.String())
	}
	review := parseJSON(t, rec)["review"].(map[string]interface{})
	reviewID := review["id"].(string)
	if review["status"] != "in_progress" {
		t.Errorf("expected in_progress, got %v", review["status"])
	}

	// Step 2: Starting again returns the open session instead of a new one
	rec = app.request("POST", "/api/v1/reviews", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("second start failed: %d %s", rec.Code, rec.Body.String())
	}
	again := parseJSON(t, rec)["review"].(map[string]interface{})
	if again["id"] != reviewID {
		t.Errorf("expected the existing session %s, got %v", reviewID, again["id"])
	}

	// Step 3: Complete the review
	rec = app.request("PUT", "/api/v1/reviews/"+reviewID,
		`{"status":"completed","notes":"Looks solid overall"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete failed: %d %s", rec.Code, rec.Body.String())
	}
	review = parseJSON(t, rec)["review"].(map[string]interface{})
	if review["status"] != "completed" {
		t.Errorf("expected completed, got %v", review["status"])
	}

	// Step 4: Both listings see the session, now stamped
	rec = app.request("GET", "/api/v1/videos/"+videoID+"/reviews", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("video reviews failed: %d %s", rec.Code, rec.Body.String())
	}
	reviews := parseJSON(t, rec)["reviews"].([]interface{})
	if len(reviews) != 1 {
		t.Fatalf("expected 1 review on the video, got %d", len(reviews))
	}
	if reviews[0].(map[string]interface{})["completed_at"] == nil {
		t.Error("expected completed_at to be stamped")
	}

	rec = app.request("GET", "/api/v1/reviews/mine", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("my reviews failed: %d %s", rec.Code, rec.Body.String())
	}
	if reviews := parseJSON(t, rec)["reviews"].([]interface{}); len(reviews) != 1 {
		t.Errorf("expected 1 of my reviews, got %d", len(reviews))
	}

	// Step 5: Completing frees the video for a fresh session
	rec = app.request("POST", "/api/v1/reviews", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("restart failed: %d %s", rec.Code, rec.Body.String())
	}
	fresh := parseJSON(t, rec)["review"].(map[string]interface{})
	if fresh["id"] == reviewID {
		t.Error("expected a new session after completion")
	}
}

func TestReviewFlow_MissingVideo(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "ghost@test.com", "Password123!")

	rec := app.request("POST", "/api/v1/reviews",
		`{"video_id":"0198a5e0-0000-7000-8000-000000000000"}`, token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "VIDEO_NOT_FOUND" {
		t.Errorf("expected VIDEO_NOT_FOUND, got %v", code)
	}
}

func TestReviewFlow_NonOwnerCannotUpdate(t *testing.T) {
	app := setupApp(t)
	owner, _, _ := app.registerUser(t, "r-owner@test.com", "Password123!")
	other, _, _ := app.registerUser(t, "r-other@test.com", "Password123!")
	videoID := app.createURLVideo(t, owner, "Contested", models.CategoryDiscreteTrial)

	rec := app.request("POST", "/api/v1/reviews",
		fmt.Sprintf(`{"video_id":%q}`, videoID), owner)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start failed: %d %s", rec.Code, rec.Body.String())
	}
	reviewID := parseJSON(t, rec)["review"].(map[string]interface{})["id"].(string)

	rec = app.request("PUT", "/api/v1/reviews/"+reviewID, `{"status":"completed"}`, other)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
}
