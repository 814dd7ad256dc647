package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slipstream/filmography/internal/health"
	"github.com/slipstream/filmography/internal/scheduler"
)

type countingPruner struct {
	calls atomic.Int32
}

func (p *countingPruner) PruneCache(ctx context.Context) int {
	p.calls.Add(1)
	return 3
}

type stubProvider struct {
	configured bool
	err        error
}

func (p stubProvider) IsConfigured() bool             { return p.configured }
func (p stubProvider) Test(ctx context.Context) error { return p.err }

func TestCachePruneTask(t *testing.T) {
	pruner := &countingPruner{}
	require.NoError(t, NewCachePruneTask(pruner, zerolog.Nop()).Run(context.Background()))
	assert.EqualValues(t, 1, pruner.calls.Load())
}

func TestProviderCheckTask(t *testing.T) {
	healthSvc := health.NewService("test", zerolog.Nop())
	healthSvc.RegisterItem(health.CategoryMetadata, ProviderHealthID, "TMDB")
	ctx := context.Background()

	err := NewProviderCheckTask(stubProvider{configured: true, err: errors.New("401")}, healthSvc, zerolog.Nop()).Run(ctx)
	assert.Error(t, err)
	assert.False(t, healthSvc.IsHealthy(health.CategoryMetadata, ProviderHealthID))

	err = NewProviderCheckTask(stubProvider{configured: true}, healthSvc, zerolog.Nop()).Run(ctx)
	require.NoError(t, err)
	assert.True(t, healthSvc.IsHealthy(health.CategoryMetadata, ProviderHealthID))
}

func TestRegisterTasks(t *testing.T) {
	healthSvc := health.NewService("test", zerolog.Nop())
	sched, err := scheduler.New(healthSvc, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sched.Stop() })

	require.NoError(t, RegisterCachePruneTask(sched, &countingPruner{}, "*/5 * * * *", zerolog.Nop()))
	require.NoError(t, RegisterProviderCheckTask(sched, stubProvider{configured: true}, healthSvc, "0 * * * *", zerolog.Nop()))

	// Empty expressions disable the task.
	require.NoError(t, RegisterCachePruneTask(sched, &countingPruner{}, "", zerolog.Nop()))

	tasks := sched.ListTasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, CachePruneTaskID, tasks[0].ID)
	assert.Equal(t, ProviderCheckTaskID, tasks[1].ID)
}
