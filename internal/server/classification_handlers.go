package server

import (
	"strings"
	"time"

	"observatory/internal/cache"
	"observatory/internal/models"

	"github.com/gofiber/fiber/v2"
)

// StatsSummary is the aggregate view of the corpus and the latest run.
type StatsSummary struct {
	Actors    int64                  `json:"actors"`
	Posts     int64                  `json:"posts"`
	Comments  int64                  `json:"comments"`
	LastRunID string                 `json:"last_run_id,omitempty"`
	LastRunAt *time.Time             `json:"last_run_at,omitempty"`
	Verdicts  map[models.Verdict]int `json:"verdicts,omitempty"`
}

// GetStats handles GET /api/v1/stats
func (s *Server) GetStats(c *fiber.Ctx) error {
	ctx := c.Context()

	var cached StatsSummary
	if s.readCached(ctx, cache.StatsKey, &cached) {
		return c.JSON(cached)
	}

	var stats StatsSummary
	if err := s.db.WithContext(ctx).Model(&models.Actor{}).Count(&stats.Actors).Error; err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Count(&stats.Posts).Error; err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	if err := s.db.WithContext(ctx).Model(&models.Comment{}).Count(&stats.Comments).Error; err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	if report, err := s.latestReport(ctx); err == nil {
		stats.LastRunID = report.RunID
		at := report.GeneratedAt
		stats.LastRunAt = &at
		stats.Verdicts = report.Counts
	}

	s.writeCached(ctx, cache.StatsKey, stats, cache.StatsTTL)
	return c.JSON(stats)
}

// GetReport handles GET /api/v1/report
func (s *Server) GetReport(c *fiber.Ctx) error {
	report, err := s.latestReport(c.Context())
	if err != nil {
		return models.RespondWithError(c, models.NewNotFoundError("No completed run yet"))
	}
	return c.JSON(report)
}

// GetClassifications handles GET /api/v1/classifications?verdict=&model=
//
// Results come from the latest run report; classifications are a pure
// function of that snapshot and are not stored row-by-row.
func (s *Server) GetClassifications(c *fiber.Ctx) error {
	verdict := models.Verdict(c.Query("verdict"))
	if verdict != "" && !models.ValidVerdict(verdict) {
		return models.RespondWithError(c, models.NewValidationError("Unknown verdict"))
	}
	model := strings.ToUpper(c.Query("model"))
	page := parsePagination(c, 50)

	report, err := s.latestReport(c.Context())
	if err != nil {
		return c.JSON(fiber.Map{
			"total":   0,
			"limit":   page.Limit,
			"offset":  page.Offset,
			"results": []models.Classification{},
		})
	}

	filtered := make([]models.Classification, 0, len(report.Results))
	for _, result := range report.Results {
		if verdict != "" && result.Verdict != verdict {
			continue
		}
		if model != "" && result.ModelFamily != model {
			continue
		}
		filtered = append(filtered, result)
	}

	total := len(filtered)
	start := page.Offset
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	return c.JSON(fiber.Map{
		"total":   total,
		"limit":   page.Limit,
		"offset":  page.Offset,
		"run_id":  report.RunID,
		"results": filtered[start:end],
	})
}
