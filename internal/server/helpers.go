package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"observatory/internal/cache"
	"observatory/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const (
	maxPaginationLimit = 100
)

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// latestReport returns the most recent run report, preferring the Redis
// mirror and falling back to the report directory.
func (s *Server) latestReport(ctx context.Context) (*models.RunReport, error) {
	if s.redis != nil {
		data, err := s.redis.Get(ctx, cache.LatestReportKey).Bytes()
		if err == nil {
			var report models.RunReport
			if jerr := json.Unmarshal(data, &report); jerr == nil {
				return &report, nil
			}
			slog.WarnContext(ctx, "discarding unreadable report mirror")
		}
	}
	return s.reports.Latest()
}

// readCached fills dest from the cache. A miss or decode failure is just a
// miss; the caller recomputes.
func (s *Server) readCached(ctx context.Context, key string, dest any) bool {
	if s.redis == nil {
		return false
	}
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// writeCached stores v under key. Cache write failures are logged, never
// surfaced.
func (s *Server) writeCached(ctx context.Context, key string, v any, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		slog.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}
