package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ActorProfileKeyPrefix   = "actor:%s:profile"
	ClassificationKeyPrefix = "actor:%s:classification"
	LatestReportKey         = "report:latest"
	StatsKey                = "stats:summary"
)

const (
	ActorProfileTTL   = 10 * time.Minute
	ClassificationTTL = 30 * time.Minute
	StatsTTL          = 5 * time.Minute
	// The latest report has no TTL; it is replaced wholesale by the next run.
)

func ActorProfileKey(username string) string {
	return fmt.Sprintf(ActorProfileKeyPrefix, username)
}

func ClassificationKey(username string) string {
	return fmt.Sprintf(ClassificationKeyPrefix, username)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateActor(ctx context.Context, username string) {
	Invalidate(ctx, ActorProfileKey(username))
	Invalidate(ctx, ClassificationKey(username))
}

func InvalidateStats(ctx context.Context) {
	Invalidate(ctx, StatsKey)
}
