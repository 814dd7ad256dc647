package tasks

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/slipstream/filmography/internal/health"
	"github.com/slipstream/filmography/internal/scheduler"
)

const (
	ProviderCheckTaskID = "provider-check"
	ProviderHealthID    = health.ProviderItemID
)

// ProviderCheckTask tests TMDB connectivity and records the result.
type ProviderCheckTask struct {
	provider health.ProviderTester
	health   *health.Service
	logger   zerolog.Logger
}

// NewProviderCheckTask creates a new provider check task.
func NewProviderCheckTask(provider health.ProviderTester, healthSvc *health.Service, logger zerolog.Logger) *ProviderCheckTask {
	return &ProviderCheckTask{
		provider: provider,
		health:   healthSvc,
		logger:   logger.With().Str("task", ProviderCheckTaskID).Logger(),
	}
}

// Run executes the connectivity check.
func (t *ProviderCheckTask) Run(ctx context.Context) error {
	if err := health.CheckProvider(ctx, t.health, t.provider, ProviderHealthID); err != nil {
		t.logger.Warn().Err(err).Msg("TMDB connectivity check failed")
		return err
	}
	t.logger.Debug().Msg("TMDB connectivity check passed")
	return nil
}

// RegisterProviderCheckTask registers the provider check task, run once at startup.
// An empty cron disables it.
func RegisterProviderCheckTask(sched *scheduler.Scheduler, provider health.ProviderTester, healthSvc *health.Service, cron string, logger zerolog.Logger) error {
	if cron == "" {
		return nil
	}

	task := NewProviderCheckTask(provider, healthSvc, logger)
	return sched.RegisterTask(&scheduler.TaskConfig{
		ID:          ProviderCheckTaskID,
		Name:        "TMDB Connectivity Check",
		Description: "Tests that the TMDB API answers with the configured key",
		Cron:        cron,
		RunOnStart:  true,
		Func:        task.Run,
	})
}
