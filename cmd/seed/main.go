package main

import (
	"fmt"
	"os"

	"github.com/HammadCopilot/star-video-review/internal/config"
	"github.com/HammadCopilot/star-video-review/internal/database"
	"github.com/HammadCopilot/star-video-review/internal/logger"
	"github.com/HammadCopilot/star-video-review/internal/seed"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Seed error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seed.Run(dbManager.DB()); err != nil {
		return fmt.Errorf("failed to seed: %w", err)
	}

	logger.Get().Info("Seed completed successfully")
	return nil
}
