package server

import (
	"errors"
	"time"

	"observatory/internal/cache"
	"observatory/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const recentPostLimit = 5

// ActorActivity summarizes an account's observable footprint in the corpus.
type ActorActivity struct {
	PostCount         int64 `json:"post_count"`
	CommentCount      int64 `json:"comment_count"`
	InteractionWeight int64 `json:"interaction_weight"`
}

// ActorProfile is the combined per-account view served by the API: stored
// actor row, latest classification, activity counts, and recent posts.
type ActorProfile struct {
	Username       string                 `json:"username"`
	DisplayName    string                 `json:"display_name,omitempty"`
	FirstSeen      time.Time              `json:"first_seen"`
	Scores         models.ActorScores     `json:"scores"`
	Activity       ActorActivity          `json:"activity"`
	Classification *models.Classification `json:"classification,omitempty"`
	RecentPosts    []models.Post          `json:"recent_posts"`
}

// GetActorProfile handles GET /api/v1/actors/:username
func (s *Server) GetActorProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, models.NewValidationError("Username is required"))
	}

	key := cache.ActorProfileKey(username)
	var cached ActorProfile
	if s.readCached(ctx, key, &cached) {
		return c.JSON(cached)
	}

	actor, err := s.actorRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, models.NewNotFoundError("Actor not found"))
		}
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	profile := ActorProfile{
		Username:    actor.Username,
		DisplayName: actor.DisplayName,
		FirstSeen:   actor.FirstSeen,
		Scores: models.ActorScores{
			NetworkScore: actor.NetworkScore,
			AnomalyScore: actor.AnomalyScore,
			LexicalScore: actor.LexicalScore,
			BurstScore:   actor.BurstScore,
		},
	}

	if err := s.fillActivity(c, username, &profile.Activity); err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	posts, err := s.corpusRepo.PostsByAuthor(ctx, username)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	profile.RecentPosts = recentPosts(posts, recentPostLimit)

	// Classification rides on the latest run; an actor without a report entry
	// has simply never been through a completed run.
	if report, err := s.latestReport(ctx); err == nil {
		for i := range report.Results {
			if report.Results[i].Author == username {
				profile.Classification = &report.Results[i]
				break
			}
		}
	}

	s.writeCached(ctx, key, profile, cache.ActorProfileTTL)
	return c.JSON(profile)
}

func (s *Server) fillActivity(c *fiber.Ctx, username string, out *ActorActivity) error {
	ctx := c.Context()

	if err := s.db.WithContext(ctx).Model(&models.Post{}).
		Where("author = ?", username).Count(&out.PostCount).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Where("author = ?", username).Count(&out.CommentCount).Error; err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(weight), 0) FROM interactions
		WHERE author_from = ? OR author_to = ?`, username, username).
		Scan(&out.InteractionWeight).Error; err != nil {
		return err
	}
	return nil
}

// recentPosts returns the newest n posts, newest first. Input comes from the
// corpus repository in ascending corpus order.
func recentPosts(posts []models.Post, n int) []models.Post {
	if len(posts) > n {
		posts = posts[len(posts)-n:]
	}
	out := make([]models.Post, 0, len(posts))
	for i := len(posts) - 1; i >= 0; i-- {
		out = append(out, posts[i])
	}
	return out
}
