package repository

import (
	"context"

	"observatory/internal/cache"
	"observatory/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActorRepository is the write-back surface of the pipeline plus actor lookups
// for the API.
type ActorRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.Actor, error)
	// UpdateScores overwrites the score columns for one actor, creating the
	// actor row if the account only ever appeared in posts or comments.
	// Idempotent: repeated runs overwrite, never accumulate.
	UpdateScores(ctx context.Context, username string, scores models.ActorScores) error
	Count(ctx context.Context) (int64, error)
}

type actorRepository struct {
	db *gorm.DB
}

// NewActorRepository creates a new actor repository
func NewActorRepository(db *gorm.DB) ActorRepository {
	return &actorRepository{db: db}
}

func (r *actorRepository) GetByUsername(ctx context.Context, username string) (*models.Actor, error) {
	var actor models.Actor
	err := r.db.WithContext(ctx).First(&actor, "username = ?", username).Error
	if err != nil {
		return nil, err
	}
	return &actor, nil
}

func (r *actorRepository) UpdateScores(ctx context.Context, username string, scores models.ActorScores) error {
	actor := models.Actor{
		Username:     username,
		NetworkScore: scores.NetworkScore,
		AnomalyScore: scores.AnomalyScore,
		LexicalScore: scores.LexicalScore,
		BurstScore:   scores.BurstScore,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"network_score", "anomaly_score", "lexical_score", "burst_score",
		}),
	}).Create(&actor).Error
	if err == nil {
		cache.InvalidateActor(ctx, username)
	}
	return err
}

func (r *actorRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Actor{}).Count(&n).Error
	return n, err
}
