package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/slipstream/filmography/internal/api"
	"github.com/slipstream/filmography/internal/config"
	"github.com/slipstream/filmography/internal/filmography"
	"github.com/slipstream/filmography/internal/health"
	"github.com/slipstream/filmography/internal/logger"
	"github.com/slipstream/filmography/internal/metadata"
	"github.com/slipstream/filmography/internal/metadata/mock"
	"github.com/slipstream/filmography/internal/metadata/tmdb"
	"github.com/slipstream/filmography/internal/scheduler"
	"github.com/slipstream/filmography/internal/scheduler/tasks"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	printConfig := flag.Bool("print-config", false, "Print the effective configuration and exit")
	flag.Parse()

	// A missing .env file is fine; variables may come from the environment.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *printConfig {
		if err := writeConfig(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "failed to print config: %v\n", err)
			os.Exit(1)
		}
		return
	}

	log := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Path:       cfg.Logging.Path,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
	defer log.Close()

	log.Info().
		Str("version", config.Version).
		Str("profile", cfg.Addon.Profile).
		Bool("developerMode", cfg.DeveloperMode).
		Msg("starting filmography addon")

	if err := run(cfg, log.Logger); err != nil {
		log.Error().Err(err).Msg("addon stopped with error")
		log.Close()
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx := context.Background()

	healthSvc := health.NewService(config.Version, log)

	store, closeStore, err := buildStore(ctx, cfg.Cache, healthSvc, log)
	if err != nil {
		return err
	}
	defer closeStore()

	client := buildClient(cfg, log)
	meta := metadata.NewService(client, store, log)
	healthSvc.RegisterItem(health.CategoryMetadata, health.ProviderItemID, "TMDB ("+meta.ProviderName()+")")
	if !meta.IsConfigured() {
		log.Warn().Msg("TMDB API key not configured, catalogs will be empty")
		healthSvc.SetWarning(health.CategoryMetadata, health.ProviderItemID, "TMDB API key not configured")
	}

	films := filmography.NewService(meta, filmography.Options{
		CatalogLimit:          cfg.Addon.CatalogLimit,
		EagerEnrichment:       cfg.Addon.EagerEnrichment,
		EnrichmentConcurrency: cfg.Addon.EnrichmentConcurrency,
		Placeholders: filmography.Placeholders{
			Untitled:      cfg.Addon.Placeholders.Untitled,
			NoYear:        cfg.Addon.Placeholders.NoYear,
			NoDescription: cfg.Addon.Placeholders.NoDescription,
		},
	}, log)

	sched, err := scheduler.New(healthSvc, log)
	if err != nil {
		return err
	}
	if err := tasks.RegisterCachePruneTask(sched, meta, cfg.Scheduler.CachePruneCron, log); err != nil {
		return fmt.Errorf("register cache prune task: %w", err)
	}
	if err := tasks.RegisterProviderCheckTask(sched, meta, healthSvc, cfg.Scheduler.ProviderCheckCron, log); err != nil {
		return fmt.Errorf("register provider check task: %w", err)
	}

	server := api.NewServer(cfg, api.Services{
		Addon:     films,
		Health:    healthSvc,
		Provider:  meta,
		Scheduler: sched,
	}, log)

	sched.Start()

	errCh := make(chan error, 1)
	go func() {
		addr := cfg.Server.Address()
		log.Info().
			Str("address", addr).
			Str("manifest", fmt.Sprintf("http://localhost:%d/manifest.json", cfg.Server.Port)).
			Msg("HTTP server listening")
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case <-sigChan:
		log.Info().Msg("received shutdown signal")
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	if err := sched.Stop(); err != nil {
		log.Error().Err(err).Msg("scheduler shutdown error")
	}

	return serveErr
}

// buildClient returns the fixture client in developer mode and the TMDB client otherwise.
func buildClient(cfg *config.Config, log zerolog.Logger) metadata.TMDBClient {
	if cfg.DeveloperMode {
		log.Info().Msg("developer mode: using mock metadata provider")
		return mock.NewTMDBClient()
	}
	return tmdb.NewClient(cfg.TMDB, log)
}

// buildStore creates the configured response cache. A nil store disables caching.
func buildStore(ctx context.Context, cfg config.CacheConfig, healthSvc *health.Service, log zerolog.Logger) (metadata.Store, func(), error) {
	noop := func() {}

	if !cfg.Enabled {
		log.Info().Msg("response cache disabled")
		return nil, noop, nil
	}

	switch cfg.Backend {
	case config.CacheBackendRedis:
		store, err := metadata.NewRedisStore(ctx, cfg.RedisURL, cfg.KeyPrefix, cfg.TTL, log)
		if err != nil {
			return nil, noop, fmt.Errorf("connect redis cache: %w", err)
		}
		healthSvc.RegisterItem(health.CategoryCache, config.CacheBackendRedis, "Redis response cache")
		return store, func() { _ = store.Close() }, nil
	default:
		healthSvc.RegisterItem(health.CategoryCache, config.CacheBackendMemory, "In-memory response cache")
		return metadata.NewCache(metadata.CacheConfig{TTL: cfg.TTL, MaxItems: cfg.MaxItems}), noop, nil
	}
}

func writeConfig(cfg *config.Config) error {
	redacted := *cfg
	if redacted.TMDB.APIKey != "" {
		redacted.TMDB.APIKey = "********"
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(redacted)
}
