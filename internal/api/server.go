package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/slipstream/filmography/internal/addon"
	"github.com/slipstream/filmography/internal/api/handlers"
	apimw "github.com/slipstream/filmography/internal/api/middleware"
	"github.com/slipstream/filmography/internal/config"
	"github.com/slipstream/filmography/internal/health"
	"github.com/slipstream/filmography/internal/scheduler"
)

// Services holds what the server routes to. Scheduler may be nil.
type Services struct {
	Addon     addon.Service
	Health    *health.Service
	Provider  health.ProviderTester
	Scheduler *scheduler.Scheduler
}

// Server handles HTTP requests for the addon.
type Server struct {
	echo     *echo.Echo
	cfg      *config.Config
	services Services
	logger   zerolog.Logger
}

// NewServer creates a new server instance.
func NewServer(cfg *config.Config, services Services, logger zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:     e,
		cfg:      cfg,
		services: services,
		logger:   logger.With().Str("component", "http").Logger(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures Echo middleware.
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Request ID
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	s.echo.Use(apimw.SecurityHeaders())

	// Stremio clients run in browsers on other origins.
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Request logging
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogMethod:    true,
		LogError:     true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Str("method", v.Method).
					Str("uri", v.URI).
					Str("requestId", v.RequestID).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Err(v.Error).
					Msg("request error")
			} else {
				s.logger.Info().
					Str("method", v.Method).
					Str("uri", v.URI).
					Str("requestId", v.RequestID).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Msg("request")
			}
			return nil
		},
	}))

	// Gzip compression
	s.echo.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
}

// setupRoutes configures routes.
func (s *Server) setupRoutes() {
	s.echo.GET("/", s.ping)

	healthHandlers := health.NewHandlers(s.services.Health, s.services.Provider, health.ProviderItemID)
	healthHandlers.RegisterRoutes(s.echo.Group("/health"))

	if s.services.Scheduler != nil {
		schedulerHandler := handlers.NewSchedulerHandler(s.services.Scheduler)
		schedulerHandler.RegisterRoutes(s.echo.Group("/scheduler"))
	}

	caps := addon.CapabilitiesFor(s.cfg.Addon.Profile)
	addonHandlers := addon.NewHandlers(
		s.services.Addon,
		addon.NewManifest(s.cfg.Addon),
		caps,
		s.cfg.Addon.CacheMaxAge,
		s.logger,
	)
	addonHandlers.RegisterRoutes(s.echo.Group(""))

	s.logger.Debug().
		Str("profile", s.cfg.Addon.Profile).
		Strs("resources", caps.Resources()).
		Msg("Registered addon routes")
}

// Start begins listening for HTTP requests.
func (s *Server) Start(address string) error {
	s.logger.Info().Str("address", address).Msg("starting HTTP server")
	return s.echo.Start(address)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}

// Echo returns the underlying Echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) ping(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
