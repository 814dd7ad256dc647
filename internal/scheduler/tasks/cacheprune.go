package tasks

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/slipstream/filmography/internal/scheduler"
)

const CachePruneTaskID = "cache-prune"

// CachePruner drops expired provider responses.
type CachePruner interface {
	PruneCache(ctx context.Context) int
}

// CachePruneTask removes expired entries from the response cache.
type CachePruneTask struct {
	cache  CachePruner
	logger zerolog.Logger
}

// NewCachePruneTask creates a new cache prune task.
func NewCachePruneTask(cache CachePruner, logger zerolog.Logger) *CachePruneTask {
	return &CachePruneTask{
		cache:  cache,
		logger: logger.With().Str("task", CachePruneTaskID).Logger(),
	}
}

// Run executes the prune.
func (t *CachePruneTask) Run(ctx context.Context) error {
	removed := t.cache.PruneCache(ctx)
	if removed > 0 {
		t.logger.Debug().Int("removed", removed).Msg("Pruned expired cache entries")
	}
	return nil
}

// RegisterCachePruneTask registers the cache prune task. An empty cron disables it.
func RegisterCachePruneTask(sched *scheduler.Scheduler, cache CachePruner, cron string, logger zerolog.Logger) error {
	if cron == "" {
		return nil
	}

	task := NewCachePruneTask(cache, logger)
	return sched.RegisterTask(&scheduler.TaskConfig{
		ID:          CachePruneTaskID,
		Name:        "Cache Prune",
		Description: "Removes expired TMDB responses from the in-memory cache",
		Cron:        cron,
		Func:        task.Run,
	})
}
