package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBDriver   string // "mysql" or "sqlite"
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string

	// JWT
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration

	// Uploads
	UploadDir         string
	MaxUploadBytes    int64
	AllowedExtensions map[string]bool

	// AI
	OpenAIAPIKey  string
	UseEnhancedAI bool
	WhisperModel  string

	// CORS
	CORSOrigins []string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "star"),
		DBPassword: getEnv("DB_PASSWORD", "star"),
		DBName:     getEnv("DB_NAME", "star_video_review"),
		SQLitePath: getEnv("SQLITE_PATH", "star_video_review.db"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// Uploads
		UploadDir: getEnv("UPLOAD_DIR", filepath.Join(".", "uploads")),

		// AI
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		WhisperModel: getEnv("WHISPER_MODEL", "whisper-1"),
	}

	config.AccessTokenExpiry = parseDuration("JWT_ACCESS_EXPIRES_IN", 24*time.Hour)
	config.RefreshTokenExpiry = parseDuration("JWT_REFRESH_EXPIRES_IN", 30*24*time.Hour)

	maxBytes, err := strconv.ParseInt(getEnv("MAX_UPLOAD_BYTES", "2147483648"), 10, 64)
	if err != nil {
		log.Println("Warning: invalid MAX_UPLOAD_BYTES, falling back to 2GiB")
		maxBytes = 2 << 30
	}
	config.MaxUploadBytes = maxBytes

	config.AllowedExtensions = make(map[string]bool)
	for _, ext := range strings.Split(getEnv("ALLOWED_VIDEO_EXTENSIONS", "mp4,avi,mov,wmv,flv,webm,mkv"), ",") {
		if ext = strings.TrimSpace(strings.ToLower(ext)); ext != "" {
			// Keyed with the leading dot to match filepath.Ext output.
			config.AllowedExtensions["."+strings.TrimPrefix(ext, ".")] = true
		}
	}

	config.UseEnhancedAI = strings.EqualFold(getEnv("USE_ENHANCED_AI", "true"), "true")

	for _, origin := range strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			config.CORSOrigins = append(config.CORSOrigins, origin)
		}
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// parseDuration parses a duration env var or returns the fallback.
func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, fallback)
		return fallback
	}
	return d
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
