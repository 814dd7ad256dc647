package main

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slipstream/filmography/internal/config"
	"github.com/slipstream/filmography/internal/health"
	"github.com/slipstream/filmography/internal/metadata"
)

func TestBuildClient(t *testing.T) {
	cfg := config.Default()
	cfg.TMDB.APIKey = ""

	client := buildClient(cfg, zerolog.Nop())
	assert.Equal(t, "tmdb", client.Name())
	assert.False(t, client.IsConfigured())

	cfg.DeveloperMode = true
	client = buildClient(cfg, zerolog.Nop())
	assert.Equal(t, "tmdb-mock", client.Name())
	assert.True(t, client.IsConfigured())
}

func TestBuildStore(t *testing.T) {
	ctx := context.Background()
	healthSvc := health.NewService("test", zerolog.Nop())

	cfg := config.Default().Cache
	cfg.Enabled = false
	store, closeStore, err := buildStore(ctx, cfg, healthSvc, zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, store)
	closeStore()

	cfg.Enabled = true
	cfg.TTL = time.Minute
	store, closeStore, err = buildStore(ctx, cfg, healthSvc, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &metadata.Cache{}, store)
	assert.True(t, healthSvc.IsHealthy(health.CategoryCache, config.CacheBackendMemory))
	closeStore()

	cfg.Backend = config.CacheBackendRedis
	cfg.RedisURL = "redis://127.0.0.1:1/0"
	_, _, err = buildStore(ctx, cfg, healthSvc, zerolog.Nop())
	assert.ErrorContains(t, err, "connect redis cache")
}
