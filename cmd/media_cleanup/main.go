package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"automarket/internal/config"
	"automarket/internal/database"
	"automarket/internal/logger"
	"automarket/internal/repository"
)

// media_cleanup deletes media and favorites whose advertisement no longer
// exists. Meant to run periodically from cron.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("media cleanup failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db, log) }()

	cleanup := repository.NewCleanupRepository(db)

	media, err := cleanup.DeleteOrphanedMedia(ctx)
	if err != nil {
		return fmt.Errorf("cleanup advertisement_media: %w", err)
	}
	favorites, err := cleanup.DeleteOrphanedFavorites(ctx)
	if err != nil {
		return fmt.Errorf("cleanup advertisement_favorites: %w", err)
	}

	log.Info("media cleanup completed",
		zap.Int64("advertisement_media", media),
		zap.Int64("advertisement_favorites", favorites),
	)
	return nil
}
