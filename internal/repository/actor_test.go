package repository

import (
	"context"
	"testing"

	"observatory/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestActorRepository_UpdateScores_CreatesAndOverwrites(t *testing.T) {
	db := newTestDB(t)
	repo := NewActorRepository(db)
	ctx := context.Background()

	// No actor row yet; write-back creates it.
	require.NoError(t, repo.UpdateScores(ctx, "alice", models.ActorScores{
		NetworkScore: 0.3, LexicalScore: 0.5,
	}))

	actor, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0.3, actor.NetworkScore)
	assert.Equal(t, 0.5, actor.LexicalScore)

	// Second run overwrites, never accumulates.
	require.NoError(t, repo.UpdateScores(ctx, "alice", models.ActorScores{
		NetworkScore: 0.1, BurstScore: 0.9,
	}))

	actor, err = repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0.1, actor.NetworkScore)
	assert.Equal(t, 0.9, actor.BurstScore)
	assert.Equal(t, 0.0, actor.LexicalScore)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestActorRepository_GetByUsername_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewActorRepository(db)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
