package cron

import (
	"context"
	"log/slog"
	"time"
)

// Purger is implemented by cache stores that need explicit eviction
type Purger interface {
	Purge(ctx context.Context) int
}

// RegisterCacheJanitor schedules periodic removal of expired cache entries
func RegisterCacheJanitor(scheduler *Scheduler, store Purger, interval time.Duration, logger *slog.Logger) {
	scheduler.AddJob("cache_janitor", interval, func(ctx context.Context) error {
		if removed := store.Purge(ctx); removed > 0 {
			logger.Debug("Cron: purged expired cache entries", "removed", removed)
		}
		return nil
	})
}
