package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Capability profiles.
const (
	ProfileFull    = "full"
	ProfileCatalog = "catalog"
)

// Cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	TMDB      TMDBConfig      `mapstructure:"tmdb" yaml:"tmdb"`
	Cache     CacheConfig     `mapstructure:"cache" yaml:"cache"`
	Addon     AddonConfig     `mapstructure:"addon" yaml:"addon"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" yaml:"scheduler"`

	// DeveloperMode serves fixture metadata instead of calling TMDB.
	DeveloperMode bool `mapstructure:"developer_mode" yaml:"developer_mode"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	Path       string `mapstructure:"path" yaml:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// TMDBConfig holds TMDB API configuration.
type TMDBConfig struct {
	APIKey       string `mapstructure:"api_key" yaml:"api_key"`
	BaseURL      string `mapstructure:"base_url" yaml:"base_url"`
	ImageBaseURL string `mapstructure:"image_base_url" yaml:"image_base_url"`
	Language     string `mapstructure:"language" yaml:"language"`
	Timeout      int    `mapstructure:"timeout" yaml:"timeout"` // seconds
}

// CacheConfig holds provider response cache configuration.
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	Backend   string        `mapstructure:"backend" yaml:"backend"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
	MaxItems  int           `mapstructure:"max_items" yaml:"max_items"`
	RedisURL  string        `mapstructure:"redis_url" yaml:"redis_url"`
	KeyPrefix string        `mapstructure:"key_prefix" yaml:"key_prefix"`
}

// AddonConfig describes the addon identity and which resources it serves.
type AddonConfig struct {
	ID                    string            `mapstructure:"id" yaml:"id"`
	Name                  string            `mapstructure:"name" yaml:"name"`
	Version               string            `mapstructure:"version" yaml:"version"`
	Description           string            `mapstructure:"description" yaml:"description"`
	Profile               string            `mapstructure:"profile" yaml:"profile"`
	CatalogLimit          int               `mapstructure:"catalog_limit" yaml:"catalog_limit"`
	EagerEnrichment       bool              `mapstructure:"eager_enrichment" yaml:"eager_enrichment"`
	EnrichmentConcurrency int               `mapstructure:"enrichment_concurrency" yaml:"enrichment_concurrency"`
	CacheMaxAge           time.Duration     `mapstructure:"cache_max_age" yaml:"cache_max_age"`
	Placeholders          PlaceholderConfig `mapstructure:"placeholders" yaml:"placeholders"`
}

// PlaceholderConfig holds the texts used when the provider omits a field.
type PlaceholderConfig struct {
	Untitled      string `mapstructure:"untitled" yaml:"untitled"`
	NoYear        string `mapstructure:"no_year" yaml:"no_year"`
	NoDescription string `mapstructure:"no_description" yaml:"no_description"`
}

// SchedulerConfig holds cron expressions for background tasks.
// An empty expression disables the task.
type SchedulerConfig struct {
	CachePruneCron    string `mapstructure:"cache_prune_cron" yaml:"cache_prune_cron"`
	ProviderCheckCron string `mapstructure:"provider_check_cron" yaml:"provider_check_cron"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            7000,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		TMDB: TMDBConfig{
			APIKey:       EmbeddedTMDBKey,
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p",
			Language:     "es-ES",
			Timeout:      15,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Backend:   CacheBackendMemory,
			TTL:       15 * time.Minute,
			MaxItems:  1000,
			KeyPrefix: "filmography:",
		},
		Addon: AddonConfig{
			ID:                    "org.jfefe1709.actorfilmography",
			Name:                  "Filmografía por Persona",
			Version:               Version,
			Description:           "Busca un actor o director y muestra su filmografía separada en Películas y Series, ordenadas por puntuación.",
			Profile:               ProfileFull,
			CatalogLimit:          100,
			EnrichmentConcurrency: 8,
			CacheMaxAge:           time.Hour,
			Placeholders: PlaceholderConfig{
				Untitled:      "Sin nombre",
				NoYear:        "Sin año",
				NoDescription: "Sin descripción",
			},
		},
		Scheduler: SchedulerConfig{
			CachePruneCron:    "*/5 * * * *",
			ProviderCheckCron: "0 * * * *",
		},
	}
}

// Load reads configuration from file and environment variables.
// Priority: environment variables > config file > defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.filmography")
	}

	v.SetEnvPrefix("FILMOGRAPHY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bare variables understood by existing deployments.
	_ = v.BindEnv("tmdb.api_key", "FILMOGRAPHY_TMDB_API_KEY", "TMDB_API_KEY")
	_ = v.BindEnv("server.port", "FILMOGRAPHY_SERVER_PORT", "PORT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.TMDB.APIKey == "" {
		cfg.TMDB.APIKey = EmbeddedTMDBKey
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults mirrors Default into viper so env vars and files can override each key.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.path", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age_days", 30)
	v.SetDefault("logging.compress", true)

	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("tmdb.base_url", d.TMDB.BaseURL)
	v.SetDefault("tmdb.image_base_url", d.TMDB.ImageBaseURL)
	v.SetDefault("tmdb.language", d.TMDB.Language)
	v.SetDefault("tmdb.timeout", d.TMDB.Timeout)

	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.backend", d.Cache.Backend)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.max_items", d.Cache.MaxItems)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.key_prefix", d.Cache.KeyPrefix)

	v.SetDefault("addon.id", d.Addon.ID)
	v.SetDefault("addon.name", d.Addon.Name)
	v.SetDefault("addon.version", d.Addon.Version)
	v.SetDefault("addon.description", d.Addon.Description)
	v.SetDefault("addon.profile", d.Addon.Profile)
	v.SetDefault("addon.catalog_limit", d.Addon.CatalogLimit)
	v.SetDefault("addon.eager_enrichment", d.Addon.EagerEnrichment)
	v.SetDefault("addon.enrichment_concurrency", d.Addon.EnrichmentConcurrency)
	v.SetDefault("addon.cache_max_age", d.Addon.CacheMaxAge)
	v.SetDefault("addon.placeholders.untitled", d.Addon.Placeholders.Untitled)
	v.SetDefault("addon.placeholders.no_year", d.Addon.Placeholders.NoYear)
	v.SetDefault("addon.placeholders.no_description", d.Addon.Placeholders.NoDescription)

	v.SetDefault("scheduler.cache_prune_cron", d.Scheduler.CachePruneCron)
	v.SetDefault("scheduler.provider_check_cron", d.Scheduler.ProviderCheckCron)

	v.SetDefault("developer_mode", false)
}

// Validate checks values that have a closed set of options.
func (c *Config) Validate() error {
	switch c.Addon.Profile {
	case ProfileFull, ProfileCatalog:
	default:
		return fmt.Errorf("%w: unknown addon profile %q", ErrInvalidConfig, c.Addon.Profile)
	}

	switch c.Cache.Backend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if c.Cache.Enabled && c.Cache.RedisURL == "" {
			return fmt.Errorf("%w: cache.redis_url is required for the redis backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown cache backend %q", ErrInvalidConfig, c.Cache.Backend)
	}

	if c.Addon.CatalogLimit <= 0 {
		return fmt.Errorf("%w: addon.catalog_limit must be positive", ErrInvalidConfig)
	}

	return nil
}

// Address returns the server address string.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
