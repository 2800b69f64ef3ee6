package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/HammadCopilot/star-video-review/internal/errors"
	"github.com/HammadCopilot/star-video-review/internal/models"
	"github.com/HammadCopilot/star-video-review/internal/pagination"
	"github.com/HammadCopilot/star-video-review/internal/services"
)

type mockVideoService struct {
	createLocalVideoFn func(uploaderID, title, description string, category models.PracticeCategory, filePath string, duration float64) (*models.Video, error)
	createURLVideoFn   func(uploaderID, title, description string, category models.PracticeCategory, url string) (*models.Video, error)
	listVideosFn       func(filter services.VideoFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Video], error)
	getVideoByIDFn     func(id string) (*models.Video, error)
	updateVideoFn      func(actorID string, actorRole models.Role, videoID string, update services.VideoUpdate) (*models.Video, error)
	deleteVideoFn      func(actorID string, actorRole models.Role, videoID string) error
}

var _ services.VideoServicer = (*mockVideoService)(nil)

func (m *mockVideoService) CreateLocalVideo(uploaderID, title, description string, category models.PracticeCategory, filePath string, duration float64) (*models.Video, error) {
	if m.createLocalVideoFn != nil {
		return m.createLocalVideoFn(uploaderID, title, description, category, filePath, duration)
	}
	return &models.Video{Base: models.Base{ID: testVideoID}}, nil
}

func (m *mockVideoService) CreateURLVideo(uploaderID, title, description string, category models.PracticeCategory, url string) (*models.Video, error) {
	if m.createURLVideoFn != nil {
		return m.createURLVideoFn(uploaderID, title, description, category, url)
	}
	return &models.Video{Base: models.Base{ID: testVideoID}}, nil
}

func (m *mockVideoService) ListVideos(filter services.VideoFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Video], error) {
	if m.listVideosFn != nil {
		return m.listVideosFn(filter, page)
	}
	result := pagination.NewPageResponse([]models.Video{}, 1, 20, 0)
	return &result, nil
}

func (m *mockVideoService) GetVideoByID(id string) (*models.Video, error) {
	if m.getVideoByIDFn != nil {
		return m.getVideoByIDFn(id)
	}
	return &models.Video{Base: models.Base{ID: id}}, nil
}

func (m *mockVideoService) UpdateVideo(actorID string, actorRole models.Role, videoID string, update services.VideoUpdate) (*models.Video, error) {
	if m.updateVideoFn != nil {
		return m.updateVideoFn(actorID, actorRole, videoID, update)
	}
	return &models.Video{Base: models.Base{ID: videoID}}, nil
}

func (m *mockVideoService) DeleteVideo(actorID string, actorRole models.Role, videoID string) error {
	if m.deleteVideoFn != nil {
		return m.deleteVideoFn(actorID, actorRole, videoID)
	}
	return nil
}

func setupVideoRouter(handler *VideoHandler) *gin.Engine {
	r := gin.New()
	auth := injectUser(testUserID, models.RoleReviewer)
	r.POST("/videos", auth, handler.Upload)
	r.POST("/videos/url", auth, handler.CreateFromURL)
	r.GET("/videos", auth, handler.ListVideos)
	r.GET("/videos/:id", auth, handler.GetVideo)
	r.PUT("/videos/:id", auth, handler.UpdateVideo)
	r.DELETE("/videos/:id", auth, handler.DeleteVideo)
	r.GET("/videos/:id/stream", handler.Stream)
	return r
}

func TestVideoHandler_Upload(t *testing.T) {
	t.Run("returns 400 without a file", func(t *testing.T) {
		handler := NewVideoHandler(&mockVideoService{}, &mockAuditService{})
		r := setupVideoRouter(handler)

		rec := doRequest(r, "POST", "/videos", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("rejects a disallowed extension", func(t *testing.T) {
		handler := NewVideoHandler(&mockVideoService{}, &mockAuditService{})
		r := setupVideoRouter(handler)

		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("file", "notes.txt")
		if err != nil {
			t.Fatalf("failed to build multipart body: %v", err)
		}
		part.Write([]byte("not a video"))
		w.WriteField("category", string(models.CategoryDiscreteTrial))
		w.Close()

		req := httptest.NewRequest("POST", "/videos", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "FILE_TYPE_NOT_ALLOWED")
	})
}

func TestVideoHandler_CreateFromURL(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		videoSvc := &mockVideoService{
			createURLVideoFn: func(uploaderID, title, _ string, category models.PracticeCategory, url string) (*models.Video, error) {
				return &models.Video{
					Base:       models.Base{ID: testVideoID},
					Title:      title,
					SourceType: models.SourceURL,
					URL:        url,
					UploaderID: uploaderID,
					Category:   category,
				}, nil
			},
		}
		handler := NewVideoHandler(videoSvc, &mockAuditService{})
		r := setupVideoRouter(handler)

		rec := doRequest(r, "POST", "/videos/url",
			`{"title":"PRT Session","url":"https://videos.example.com/prt.mp4","category":"pivotal_response"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		video := result["video"].(map[string]interface{})
		if video["url"] != "https://videos.example.com/prt.mp4" {
			t.Errorf("expected url to round-trip, got %v", video["url"])
		}
	})

	t.Run("returns 400 on missing url", func(t *testing.T) {
		handler := NewVideoHandler(&mockVideoService{}, &mockAuditService{})
		r := setupVideoRouter(handler)

		rec := doRequest(r, "POST", "/videos/url", `{"title":"No URL","category":"discrete_trial"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown category", func(t *testing.T) {
		handler := NewVideoHandler(&mockVideoService{}, &mockAuditService{})
		r := setupVideoRouter(handler)

		rec := doRequest(r, "POST", "/videos/url",
			`{"url":"https://videos.example.com/x.mp4","category":"interpretive_dance"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestVideoHandler_ListVideos(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		var gotFilter services.VideoFilter
		videoSvc := &mockVideoService{
			listVideosFn: func(filter services.VideoFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Video], error) {
				gotFilter = filter
				result := pagination.NewPageResponse([]models.Video{{Base: models.Base{ID: testVideoID}}}, page.Page, page.PageSize, 1)
				return &result, nil
			},
		}
		handler := NewVideoHandler(videoSvc, &mockAuditService{})
		r := setupVideoRouter(handler)

		rec := doRequest(r, "GET", "/videos?category=discrete_trial&status=completed", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.Category == nil || *gotFilter.Category != models.CategoryDiscreteTrial {
			t.Error("expected category filter to be forwarded")
		}
		if gotFilter.Status == nil || *gotFilter.Status != models.AnalysisCompleted {
			t.Error("expected status filter to be forwarded")
		}
	})

	t.Run("returns 400 on invalid status filter", func(t *testing.T) {
		handler := NewVideoHandler(&mockVideoService{}, &mockAuditService{})
		r := setupVideoRouter(handler)

		rec := doRequest(r, "GET", "/videos?status=exploded", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestVideoHandler_GetVideo(t *testing.T) {
	t.Run("returns the video", func(t *testing.T) {
		videoSvc := &mockVideoService{
			getVideoByIDFn: func(id string) (*models.Video, error) {
				return &models.Video{Base: models.Base{ID: id}, Title: "Morning Session"}, nil
			},
		}
		handler := NewVideoHandler(videoSvc, &mockAuditService{})
		r := setupVideoRouter(handler)

		rec := doRequest(r, "GET", "/videos/"+testVideoID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		video := result["video"].(map[string]interface{})
		if video["title"] != "Morning Session" {
			t.Errorf("expected Morning Session, got %v", video["title"])
		}
	})

	t.Run("returns 400 on malformed id", func(t *testing.T) {
		handler := NewVideoHandler(&mockVideoService{}, &mockAuditService{})
		r := setupVideoRouter(handler)

		rec := doRequest(r, "GET", "/videos/not-a-uuid", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		videoSvc := &mockVideoService{
			getVideoByIDFn: func(_ string) (*models.Video, error) {
				return nil, apperrors.ErrVideoNotFound
			},
		}
		handler := NewVideoHandler(videoSvc, &mockAuditService{})
		r := setupVideoRouter(handler)

		rec := doRequest(r, "GET", "/videos/"+testVideoID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "VIDEO_NOT_FOUND")
	})
}

func TestVideoHandler_UpdateVideo(t *testing.T) {
	t.Run("returns 403 when the service forbids", func(t *testing.T) {
		videoSvc := &mockVideoService{
			updateVideoFn: func(_ string, _ models.Role, _ string, _ services.VideoUpdate) (*models.Video, error) {
				return nil, apperrors.ErrForbidden
			},
		}
		handler := NewVideoHandler(videoSvc, &mockAuditService{})
		r := setupVideoRouter(handler)

		rec := doRequest(r, "PUT", "/videos/"+testVideoID, `{"title":"Renamed"}`)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("returns the updated video", func(t *testing.T) {
		videoSvc := &mockVideoService{
			updateVideoFn: func(_ string, _ models.Role, videoID string, update services.VideoUpdate) (*models.Video, error) {
				return &models.Video{Base: models.Base{ID: videoID}, Title: *update.Title}, nil
			},
		}
		handler := NewVideoHandler(videoSvc, &mockAuditService{})
		r := setupVideoRouter(handler)

		rec := doRequest(r, "PUT", "/videos/"+testVideoID, `{"title":"Renamed"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		video := result["video"].(map[string]interface{})
		if video["title"] != "Renamed" {
			t.Errorf("expected Renamed, got %v", video["title"])
		}
	})
}

func TestVideoHandler_DeleteVideo(t *testing.T) {
	videoSvc := &mockVideoService{
		deleteVideoFn: func(actorID string, _ models.Role, _ string) error {
			if actorID != testUserID {
				t.Errorf("expected actor %s, got %s", testUserID, actorID)
			}
			return nil
		},
	}
	handler := NewVideoHandler(videoSvc, &mockAuditService{})
	r := setupVideoRouter(handler)

	rec := doRequest(r, "DELETE", "/videos/"+testVideoID, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestVideoHandler_Stream(t *testing.T) {
	t.Run("serves a local file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "clip.mp4")
		if err := os.WriteFile(path, []byte("fake video bytes"), 0o644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}

		videoSvc := &mockVideoService{
			getVideoByIDFn: func(id string) (*models.Video, error) {
				return &models.Video{Base: models.Base{ID: id}, SourceType: models.SourceLocal, FilePath: path}, nil
			},
		}
		handler := NewVideoHandler(videoSvc, &mockAuditService{})
		r := setupVideoRouter(handler)

		rec := doRequest(r, "GET", "/videos/"+testVideoID+"/stream", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rec.Body.String() != "fake video bytes" {
			t.Error("expected file contents to be served")
		}
	})

	t.Run("returns 404 when the file is gone", func(t *testing.T) {
		videoSvc := &mockVideoService{
			getVideoByIDFn: func(id string) (*models.Video, error) {
				return &models.Video{Base: models.Base{ID: id}, SourceType: models.SourceLocal, FilePath: "/nonexistent/clip.mp4"}, nil
			},
		}
		handler := NewVideoHandler(videoSvc, &mockAuditService{})
		r := setupVideoRouter(handler)

		rec := doRequest(r, "GET", "/videos/"+testVideoID+"/stream", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "VIDEO_FILE_MISSING")
	})

	t.Run("redirects url videos to the source", func(t *testing.T) {
		videoSvc := &mockVideoService{
			getVideoByIDFn: func(id string) (*models.Video, error) {
				return &models.Video{Base: models.Base{ID: id}, SourceType: models.SourceURL, URL: "https://videos.example.com/prt.mp4"}, nil
			},
		}
		handler := NewVideoHandler(videoSvc, &mockAuditService{})
		r := setupVideoRouter(handler)

		rec := doRequest(r, "GET", "/videos/"+testVideoID+"/stream", "")

		if rec.Code != http.StatusTemporaryRedirect {
			t.Fatalf("expected 307, got %d", rec.Code)
		}
		if rec.Header().Get("Location") != "https://videos.example.com/prt.mp4" {
			t.Errorf("expected redirect to source url, got %s", rec.Header().Get("Location"))
		}
	})
}
