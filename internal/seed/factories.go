// Package seed generates a synthetic corpus with recognizable operator
// personas. It exists for development databases and end-to-end tests; the
// personas are deliberately exaggerated so each analyzer has something to
// find.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"observatory/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds corpus entities and persists them to the database.
type Factory struct {
	db    *gorm.DB
	faker *gofakeit.Faker
	rng   *rand.Rand
	start time.Time
	opts  Options

	nextPost    int
	nextComment int

	// posts eligible as reply targets, in creation order
	pool []models.Post
}

// NewFactory creates a Factory bound to the provided Gorm DB. The same seed
// always produces the same corpus.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	return &Factory{
		db:    db,
		faker: gofakeit.New(opts.Seed),
		rng:   rand.New(rand.NewSource(opts.Seed)),
		start: time.Now().UTC().AddDate(0, 0, -opts.Days).Truncate(time.Hour),
		opts:  opts,
	}
}

func (f *Factory) stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// CreateActor persists an actor row.
func (f *Factory) CreateActor(username string) (*models.Actor, error) {
	actor := &models.Actor{
		Username:    username,
		DisplayName: f.faker.Name(),
		FirstSeen:   f.start,
	}
	if err := f.db.Create(actor).Error; err != nil {
		return nil, err
	}
	return actor, nil
}

// CreatePost persists a post and adds it to the reply-target pool.
func (f *Factory) CreatePost(author, title, content string, at time.Time) (*models.Post, error) {
	f.nextPost++
	post := &models.Post{
		ID:        fmt.Sprintf("seed-post-%04d", f.nextPost),
		Author:    author,
		Title:     title,
		Content:   content,
		CreatedAt: f.stamp(at),
		Submolt:   f.faker.RandomString([]string{"general", "tech", "trading", "memes"}),
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	f.pool = append(f.pool, *post)
	return post, nil
}

// CreateComment persists a comment on the given post.
func (f *Factory) CreateComment(author string, post *models.Post, content string, at time.Time) (*models.Comment, error) {
	f.nextComment++
	comment := &models.Comment{
		ID:        fmt.Sprintf("seed-comment-%05d", f.nextComment),
		PostID:    post.ID,
		Author:    author,
		Content:   content,
		CreatedAt: f.stamp(at),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// randomTarget picks a reply target not authored by author. Returns nil when
// the pool has no foreign posts yet.
func (f *Factory) randomTarget(author string) *models.Post {
	for attempt := 0; attempt < 10 && len(f.pool) > 0; attempt++ {
		candidate := f.pool[f.rng.Intn(len(f.pool))]
		if candidate.Author != author {
			return &candidate
		}
	}
	return nil
}

// BuildInteractions derives the directed comment->post-author edge set from
// the seeded comments, the same shape the scraper produces.
func (f *Factory) BuildInteractions() error {
	type edge struct{ from, to string }
	weights := make(map[edge]int)

	var comments []models.Comment
	if err := f.db.Select("post_id", "author").Find(&comments).Error; err != nil {
		return err
	}
	postAuthors := make(map[string]string, len(f.pool))
	for _, p := range f.pool {
		postAuthors[p.ID] = p.Author
	}

	for _, c := range comments {
		to, ok := postAuthors[c.PostID]
		if !ok || to == c.Author {
			continue
		}
		weights[edge{c.Author, to}]++
	}

	for e, w := range weights {
		interaction := models.Interaction{
			AuthorFrom:      e.from,
			AuthorTo:        e.to,
			Weight:          w,
			InteractionType: "comment",
		}
		if err := f.db.Create(&interaction).Error; err != nil {
			return err
		}
	}
	return nil
}
