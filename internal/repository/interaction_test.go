package repository

import (
	"context"
	"testing"

	"observatory/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockDB wires gorm over a sqlmock connection for query-shape tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestInteractionRepository_ListEdges_FiltersSelfLoops(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewInteractionRepository(gdb)

	rows := sqlmock.NewRows([]string{"id", "author_from", "author_to", "weight", "interaction_type"}).
		AddRow(1, "alice", "bob", 3, "comment").
		AddRow(2, "bob", "carol", 1, "comment")

	mock.ExpectQuery(`SELECT \* FROM "interactions" WHERE author_from <> author_to`).
		WillReturnRows(rows)

	edges, err := repo.ListEdges(context.Background())
	require.NoError(t, err)
	assert.Len(t, edges, 2)
	assert.Equal(t, "alice", edges[0].AuthorFrom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInteractionRepository_CountByAuthor(t *testing.T) {
	db := newTestDB(t)
	repo := NewInteractionRepository(db)
	ctx := context.Background()

	edges := []models.Interaction{
		{AuthorFrom: "alice", AuthorTo: "bob", Weight: 3, InteractionType: "comment"},
		{AuthorFrom: "bob", AuthorTo: "alice", Weight: 2, InteractionType: "comment"},
		{AuthorFrom: "carol", AuthorTo: "carol", Weight: 9, InteractionType: "comment"},
	}
	require.NoError(t, db.Create(&edges).Error)

	counts, err := repo.CountByAuthor(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, counts["alice"])
	assert.Equal(t, 5, counts["bob"])
	// Self-loops are excluded entirely.
	assert.Zero(t, counts["carol"])
}
