package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slipstream/filmography/internal/health"
)

func newTestScheduler(t *testing.T) (*Scheduler, *health.Service) {
	t.Helper()
	healthSvc := health.NewService("test", zerolog.Nop())
	s, err := New(healthSvc, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop() })
	return s, healthSvc
}

func TestRegisterTask(t *testing.T) {
	s, healthSvc := newTestScheduler(t)

	cfg := &TaskConfig{
		ID:   "noop",
		Name: "Noop",
		Cron: "0 3 * * *",
		Func: func(ctx context.Context) error { return nil },
	}
	require.NoError(t, s.RegisterTask(cfg))
	assert.ErrorIs(t, s.RegisterTask(cfg), ErrTaskExists)
	assert.True(t, healthSvc.IsHealthy(health.CategoryScheduler, "noop"))

	err := s.RegisterTask(&TaskConfig{ID: "bad", Name: "Bad", Cron: "not a cron", Func: cfg.Func})
	assert.Error(t, err)

	tasks := s.ListTasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "noop", tasks[0].ID)
	assert.Equal(t, "0 3 * * *", tasks[0].Cron)
}

func TestRunNow(t *testing.T) {
	s, healthSvc := newTestScheduler(t)

	var runs atomic.Int32
	require.NoError(t, s.RegisterTask(&TaskConfig{
		ID:   "count",
		Name: "Count",
		Cron: "0 3 * * *",
		Func: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	}))
	require.NoError(t, s.RegisterTask(&TaskConfig{
		ID:   "fail",
		Name: "Fail",
		Cron: "0 3 * * *",
		Func: func(ctx context.Context) error { return errors.New("provider down") },
	}))

	require.NoError(t, s.RunNow("count"))
	require.NoError(t, s.RunNow("fail"))
	assert.ErrorIs(t, s.RunNow("missing"), ErrTaskUnknown)

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		info, err := s.GetTask("fail")
		return err == nil && info.LastRun != nil
	}, time.Second, 10*time.Millisecond)

	info, err := s.GetTask("fail")
	require.NoError(t, err)
	assert.Equal(t, "provider down", info.LastError)
	assert.False(t, healthSvc.IsHealthy(health.CategoryScheduler, "fail"))

	_, err = s.GetTask("missing")
	assert.ErrorIs(t, err, ErrTaskUnknown)
}

func TestStartRunsStartupTasks(t *testing.T) {
	s, _ := newTestScheduler(t)

	started := make(chan struct{}, 1)
	require.NoError(t, s.RegisterTask(&TaskConfig{
		ID:         "startup",
		Name:       "Startup",
		Cron:       "0 3 * * *",
		RunOnStart: true,
		Func: func(ctx context.Context) error {
			started <- struct{}{}
			return nil
		},
	}))

	s.Start()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("startup task did not run")
	}

	assert.Eventually(t, func() bool {
		info, err := s.GetTask("startup")
		return err == nil && info.NextRun != nil
	}, time.Second, 10*time.Millisecond)
}
