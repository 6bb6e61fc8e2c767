package repository

import (
	"context"

	"observatory/internal/models"

	"gorm.io/gorm"
)

// InteractionRepository reads the directed author interaction edges.
type InteractionRepository interface {
	// ListEdges returns all interaction edges. Self-loops are filtered out;
	// an author replying to themself is not social behavior.
	ListEdges(ctx context.Context) ([]models.Interaction, error)
	// CountByAuthor returns the total interaction weight touching each author,
	// in either direction.
	CountByAuthor(ctx context.Context) (map[string]int, error)
}

type interactionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new interaction repository
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) ListEdges(ctx context.Context) ([]models.Interaction, error) {
	var edges []models.Interaction
	err := r.db.WithContext(ctx).
		Where("author_from <> author_to").
		Find(&edges).Error
	return edges, err
}

type authorWeight struct {
	Author string
	Total  int
}

func (r *interactionRepository) CountByAuthor(ctx context.Context) (map[string]int, error) {
	var rows []authorWeight
	err := r.db.WithContext(ctx).Raw(`
		SELECT author, SUM(total) AS total FROM (
			SELECT author_from AS author, SUM(weight) AS total FROM interactions
			WHERE author_from <> author_to GROUP BY author_from
			UNION ALL
			SELECT author_to AS author, SUM(weight) AS total FROM interactions
			WHERE author_from <> author_to GROUP BY author_to
		) combined GROUP BY author`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Author] = row.Total
	}
	return counts, nil
}
