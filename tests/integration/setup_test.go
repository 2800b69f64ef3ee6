package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/HammadCopilot/star-video-review/internal/analysis"
	"github.com/HammadCopilot/star-video-review/internal/handlers"
	"github.com/HammadCopilot/star-video-review/internal/logger"
	"github.com/HammadCopilot/star-video-review/internal/middleware"
	"github.com/HammadCopilot/star-video-review/internal/models"
	"github.com/HammadCopilot/star-video-review/internal/services"
	"github.com/HammadCopilot/star-video-review/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Video{},
		&models.Annotation{},
		&models.BestPractice{},
		&models.Review{},
		&models.Transcript{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite. No analyzer is configured, so analysis endpoints report 503.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	uploadDir := t.TempDir()

	// Services
	userService := services.NewUserService(db)
	videoService := services.NewVideoService(db, uploadDir)
	annotationService := services.NewAnnotationService(db)
	practiceService := services.NewPracticeService(db)
	reviewService := services.NewReviewService(db)
	reportService := services.NewReportService(db)
	transcriptService := services.NewTranscriptService(db)
	auditService := services.NewAuditService(db)

	runner := analysis.NewRunner(db, nil, analysis.NewTracker(), auditService, false)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	userHandler := handlers.NewUserHandler(userService, auditService)
	videoHandler := handlers.NewVideoHandler(videoService, auditService)
	annotationHandler := handlers.NewAnnotationHandler(annotationService, auditService)
	practiceHandler := handlers.NewPracticeHandler(practiceService)
	reviewHandler := handlers.NewReviewHandler(reviewService, auditService)
	reportHandler := handlers.NewReportHandler(reportService, auditService)
	analysisHandler := handlers.NewAnalysisHandler(runner, transcriptService, auditService)
	auditHandler := handlers.NewAuditHandler(auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	stream := v1.Group("/")
	stream.Use(middleware.StreamAuthMiddleware())
	stream.GET("/videos/:id/stream", videoHandler.Stream)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/me", authHandler.Me)

	annotators := middleware.RequireRoles(models.RoleAdmin, models.RoleReviewer)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	videos := protected.Group("/videos")
	videos.GET("", videoHandler.ListVideos)
	videos.GET("/:id", videoHandler.GetVideo)
	videos.POST("", annotators, videoHandler.Upload)
	videos.POST("/url", annotators, videoHandler.CreateFromURL)
	videos.PUT("/:id", annotators, videoHandler.UpdateVideo)
	videos.DELETE("/:id", annotators, videoHandler.DeleteVideo)
	videos.GET("/:id/annotations/summary", annotationHandler.VideoSummary)
	videos.GET("/:id/reviews", reviewHandler.ListVideoReviews)
	videos.POST("/:id/analyze", annotators, analysisHandler.Analyze)
	videos.GET("/:id/analysis/status", analysisHandler.AnalysisStatus)
	videos.GET("/:id/transcript", analysisHandler.GetTranscript)

	annotations := protected.Group("/annotations")
	annotations.GET("", annotationHandler.ListAnnotations)
	annotations.GET("/:id", annotationHandler.GetAnnotation)
	annotations.POST("", annotators, annotationHandler.CreateAnnotation)
	annotations.POST("/bulk", annotators, annotationHandler.CreateBulkAnnotations)
	annotations.PUT("/:id", annotators, annotationHandler.UpdateAnnotation)
	annotations.DELETE("/:id", annotators, annotationHandler.DeleteAnnotation)

	practices := protected.Group("/practices")
	practices.GET("", practiceHandler.ListPractices)
	practices.GET("/categories", practiceHandler.ListCategories)
	practices.GET("/categories/:category", practiceHandler.GetCategoryPractices)
	practices.GET("/:id", practiceHandler.GetPractice)

	reviews := protected.Group("/reviews")
	reviews.POST("", annotators, reviewHandler.StartReview)
	reviews.PUT("/:id", annotators, reviewHandler.UpdateReview)
	reviews.GET("/mine", reviewHandler.MyReviews)

	reports := protected.Group("/reports")
	reports.GET("/videos/:id", reportHandler.VideoReport)
	reports.GET("/videos/:id/export", reportHandler.ExportVideoReport)
	reports.GET("/reviewers/:id", reportHandler.ReviewerReport)
	reports.GET("/summary", adminOnly, reportHandler.SystemSummary)

	admin := protected.Group("/admin")
	admin.Use(adminOnly)
	admin.POST("/users", userHandler.CreateUser)
	admin.GET("/users", userHandler.ListUsers)
	admin.GET("/users/:id", userHandler.GetUser)
	admin.GET("/audit-logs", auditHandler.ListAuditLogs)

	protected.PUT("/users/:id", userHandler.UpdateUser)
	protected.DELETE("/users/:id", adminOnly, userHandler.DeleteUser)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// registerAdmin registers a user, promotes it to admin directly in the
// database, and logs in again so the token carries the admin role.
func (app *testApp) registerAdmin(t *testing.T, email, password string) (accessToken, userID string) {
	t.Helper()
	_, _, userID = app.registerUser(t, email, password)
	if err := app.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("role", models.RoleAdmin).Error; err != nil {
		t.Fatalf("failed to promote user: %v", err)
	}
	accessToken, _ = app.loginUser(t, email, password)
	return accessToken, userID
}

// createURLVideo registers an external video and returns its ID.
func (app *testApp) createURLVideo(t *testing.T, token, title string, category models.PracticeCategory) string {
	t.Helper()
	body := fmt.Sprintf(`{"title":%q,"url":"https://videos.example.com/%s.mp4","category":%q}`,
		title, strings.ReplaceAll(strings.ToLower(title), " ", "-"), category)
	rec := app.request("POST", "/api/v1/videos/url", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("video registration failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	video := result["video"].(map[string]interface{})
	return video["id"].(string)
}

// errorCode extracts the error code from an error response body.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error envelope, got: %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}
