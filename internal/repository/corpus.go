// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"time"

	"observatory/internal/models"

	"gorm.io/gorm"
)

// ResponsePair is one comment of an author on somebody else's post, with both
// timestamps parsed. Pairs with malformed timestamps are dropped before they
// reach the analyzers.
type ResponsePair struct {
	CommentAt  time.Time
	PostAt     time.Time
	PostAuthor string
}

// CommentEvent is one comment placed on a post, used by burst detection.
type CommentEvent struct {
	PostID string
	Author string
	At     time.Time
}

// CorpusRepository is the read-only view of the scraped corpus the analyzers
// consume. It never mutates posts, comments, or interactions.
type CorpusRepository interface {
	ListAuthors(ctx context.Context) ([]string, error)
	PostsByAuthor(ctx context.Context, author string) ([]models.Post, error)
	CommentsByAuthor(ctx context.Context, author string) ([]models.Comment, error)
	// ResponsePairs returns the author's comments on posts by other accounts,
	// self-replies excluded, ordered by comment time.
	ResponsePairs(ctx context.Context, author string) ([]ResponsePair, error)
	// ActivityTimestamps returns every parsed post and comment timestamp for
	// the author.
	ActivityTimestamps(ctx context.Context, author string) ([]time.Time, error)
	// AuthorTexts returns the author's post and comment bodies in corpus order.
	AuthorTexts(ctx context.Context, author string) ([]string, error)
	// AllCommentEvents returns every comment with a parsable timestamp, for
	// corpus-wide burst detection.
	AllCommentEvents(ctx context.Context) ([]CommentEvent, error)
}

type corpusRepository struct {
	db *gorm.DB
}

// NewCorpusRepository creates a new corpus repository
func NewCorpusRepository(db *gorm.DB) CorpusRepository {
	return &corpusRepository{db: db}
}

func (r *corpusRepository) ListAuthors(ctx context.Context) ([]string, error) {
	var authors []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT author FROM posts WHERE author <> ''
		UNION
		SELECT author FROM comments WHERE author <> ''
		ORDER BY author`).Scan(&authors).Error
	if err != nil {
		return nil, err
	}
	return authors, nil
}

func (r *corpusRepository) PostsByAuthor(ctx context.Context, author string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("author = ?", author).
		Order("created_at ASC").
		Find(&posts).Error
	return posts, err
}

func (r *corpusRepository) CommentsByAuthor(ctx context.Context, author string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("author = ?", author).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

type rawPair struct {
	CommentAt  string
	PostAt     string
	PostAuthor string
}

func (r *corpusRepository) ResponsePairs(ctx context.Context, author string) ([]ResponsePair, error) {
	var rows []rawPair
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.created_at AS comment_at, p.created_at AS post_at, p.author AS post_author
		FROM comments c
		JOIN posts p ON p.id = c.post_id
		WHERE c.author = ? AND p.author <> ?
		ORDER BY c.created_at ASC`, author, author).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	pairs := make([]ResponsePair, 0, len(rows))
	for _, row := range rows {
		cAt, ok := models.ParseTimestamp(row.CommentAt)
		if !ok {
			continue
		}
		pAt, ok := models.ParseTimestamp(row.PostAt)
		if !ok {
			continue
		}
		pairs = append(pairs, ResponsePair{CommentAt: cAt, PostAt: pAt, PostAuthor: row.PostAuthor})
	}
	return pairs, nil
}

func (r *corpusRepository) ActivityTimestamps(ctx context.Context, author string) ([]time.Time, error) {
	var raw []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT created_at FROM posts WHERE author = ?
		UNION ALL
		SELECT created_at FROM comments WHERE author = ?`, author, author).Scan(&raw).Error
	if err != nil {
		return nil, err
	}

	stamps := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		if t, ok := models.ParseTimestamp(s); ok {
			stamps = append(stamps, t)
		}
	}
	return stamps, nil
}

func (r *corpusRepository) AuthorTexts(ctx context.Context, author string) ([]string, error) {
	posts, err := r.PostsByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	comments, err := r.CommentsByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(posts)+len(comments))
	for _, p := range posts {
		if p.Title != "" {
			texts = append(texts, p.Title)
		}
		if p.Content != "" {
			texts = append(texts, p.Content)
		}
	}
	for _, c := range comments {
		if c.Content != "" {
			texts = append(texts, c.Content)
		}
	}
	return texts, nil
}

func (r *corpusRepository) AllCommentEvents(ctx context.Context) ([]CommentEvent, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Select("id", "post_id", "author", "created_at").
		Order("post_id, created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	events := make([]CommentEvent, 0, len(comments))
	for _, c := range comments {
		at, ok := models.ParseTimestamp(c.CreatedAt)
		if !ok {
			continue
		}
		events = append(events, CommentEvent{PostID: c.PostID, Author: c.Author, At: at})
	}
	return events, nil
}
