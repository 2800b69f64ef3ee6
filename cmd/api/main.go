package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/HammadCopilot/star-video-review/internal/ai"
	"github.com/HammadCopilot/star-video-review/internal/analysis"
	"github.com/HammadCopilot/star-video-review/internal/config"
	"github.com/HammadCopilot/star-video-review/internal/database"
	"github.com/HammadCopilot/star-video-review/internal/handlers"
	"github.com/HammadCopilot/star-video-review/internal/logger"
	"github.com/HammadCopilot/star-video-review/internal/middleware"
	"github.com/HammadCopilot/star-video-review/internal/models"
	"github.com/HammadCopilot/star-video-review/internal/seed"
	"github.com/HammadCopilot/star-video-review/internal/services"
	"github.com/HammadCopilot/star-video-review/internal/validator"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	if err := os.MkdirAll(appConfig.UploadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	if err := seed.Run(db); err != nil {
		return fmt.Errorf("failed to seed defaults: %w", err)
	}

	// Services
	userService := services.NewUserService(db)
	videoService := services.NewVideoService(db, appConfig.UploadDir)
	annotationService := services.NewAnnotationService(db)
	practiceService := services.NewPracticeService(db)
	reviewService := services.NewReviewService(db)
	reportService := services.NewReportService(db)
	transcriptService := services.NewTranscriptService(db)
	auditService := services.NewAuditService(db)

	// The analyzer is optional; without an API key analysis endpoints
	// report the capability as unavailable.
	var analyzer ai.Analyzer
	if appConfig.OpenAIAPIKey != "" {
		analyzer, err = ai.NewOpenAIAnalyzer(appConfig.OpenAIAPIKey, appConfig.WhisperModel)
		if err != nil {
			return fmt.Errorf("failed to create analyzer: %w", err)
		}
	} else {
		log.Warn("OPENAI_API_KEY not set, AI analysis is disabled")
	}
	runner := analysis.NewRunner(db, analyzer, analysis.NewTracker(), auditService, appConfig.UseEnhancedAI)

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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(appConfig.CORSOrigins))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Streaming authenticates via header or ?token= for the HTML5 player.
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

	// Profile edits stay open to the owner; the service enforces that
	// role and active-flag changes need admin.
	protected.PUT("/users/:id", userHandler.UpdateUser)
	protected.DELETE("/users/:id", adminOnly, userHandler.DeleteUser)

	log.Infof("Starting video review API on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
