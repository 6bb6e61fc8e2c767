package database

import (
	"context"
	"fmt"
	"log/slog"

	"observatory/internal/middleware"
	"observatory/internal/models"

	"gorm.io/gorm"
)

// scoreColumns are the pipeline's write-back columns on actors. They are
// added here if missing so the pipeline can run against a store created by
// an older scraper revision.
var scoreColumns = []string{"network_score", "anomaly_score", "lexical_score", "burst_score"}

// ApplySchema brings the store schema up to date: table migration plus the
// score columns on actors.
func ApplySchema(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return EnsureScoreColumns(ctx, db)
}

// EnsureScoreColumns adds any missing score column to actors. Idempotent;
// existing values are never touched.
func EnsureScoreColumns(ctx context.Context, db *gorm.DB) error {
	migrator := db.WithContext(ctx).Migrator()
	for _, col := range scoreColumns {
		if migrator.HasColumn(&models.Actor{}, col) {
			continue
		}
		middleware.Logger.Info("Adding missing score column", slog.String("column", col))
		if err := migrator.AddColumn(&models.Actor{}, col); err != nil {
			return fmt.Errorf("add column %s: %w", col, err)
		}
	}
	return nil
}
