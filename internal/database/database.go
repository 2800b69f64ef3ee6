package database

import (
	"fmt"
	"time"

	"github.com/HammadCopilot/star-video-review/internal/config"
	"github.com/HammadCopilot/star-video-review/internal/logger"
	"github.com/HammadCopilot/star-video-review/internal/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// allModels is the list of GORM models auto-migrated on the SQLite path.
var allModels = []interface{}{
	&models.User{},
	&models.Video{},
	&models.Annotation{},
	&models.BestPractice{},
	&models.Review{},
	&models.Transcript{},
	&models.AuditLog{},
}

// Manager handles database connections and schema migrations.
type Manager struct {
	db     *gorm.DB
	driver string
	dsn    string
}

// NewManager opens a database connection for the configured driver.
// MySQL is the production store; SQLite serves development and tests.
func NewManager(cfg *config.Config) (*Manager, error) {
	var db *gorm.DB
	var err error
	var dsn string

	switch cfg.DBDriver {
	case "mysql":
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "sqlite":
		dsn = cfg.SQLitePath
		db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.DBDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Manager{db: db, driver: cfg.DBDriver, dsn: dsn}, nil
}

// Migrate brings the schema up to date. The MySQL path applies versioned SQL
// migrations from the migrations/ directory; SQLite uses GORM auto-migration.
func (m *Manager) Migrate() error {
	log := logger.Get()
	log.Info("Running database migrations...")

	if m.driver == "mysql" {
		mig, err := migrate.New("file://migrations", "mysql://"+m.dsn)
		if err != nil {
			return fmt.Errorf("failed to create migrate instance: %w", err)
		}
		defer func() {
			srcErr, dbErr := mig.Close()
			if srcErr != nil {
				log.Warnf("migrate source close error: %v", srcErr)
			}
			if dbErr != nil {
				log.Warnf("migrate database close error: %v", dbErr)
			}
		}()

		if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("migration failed: %w", err)
		}
	} else {
		if err := m.db.AutoMigrate(allModels...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	log.Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}
