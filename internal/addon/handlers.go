package addon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/slipstream/filmography/internal/filmography"
)

const jsonSuffix = ".json"

// Service is the lookup surface the handlers serve.
type Service interface {
	Catalog(ctx context.Context, kind filmography.Kind, search string) ([]filmography.CatalogItem, error)
	Meta(ctx context.Context, kind filmography.Kind, id string) (*filmography.DetailRecord, error)
	Streams(ctx context.Context, kind filmography.Kind, id string) ([]filmography.Stream, error)
}

// MinimalItem is the catalog item shape of the catalog-only profile.
type MinimalItem struct {
	ID    string           `json:"id"`
	Type  filmography.Kind `json:"type"`
	Name  string           `json:"name"`
	Score float64          `json:"score"`
}

// CatalogResponse is the catalog resource payload.
type CatalogResponse[T any] struct {
	Metas []T `json:"metas"`
}

// MetaResponse is the meta resource payload. Meta is an empty object on failure.
type MetaResponse struct {
	Meta any `json:"meta"`
}

// StreamResponse is the stream resource payload.
type StreamResponse struct {
	Streams []filmography.Stream `json:"streams"`
}

// Handlers provides HTTP handlers for the addon resources.
// Every resource answers 200; failures degrade to empty payloads.
type Handlers struct {
	service  Service
	manifest Manifest
	caps     Capabilities
	maxAge   time.Duration
	logger   zerolog.Logger
}

// NewHandlers creates addon handlers.
func NewHandlers(service Service, manifest Manifest, caps Capabilities, maxAge time.Duration, logger zerolog.Logger) *Handlers {
	return &Handlers{
		service:  service,
		manifest: manifest,
		caps:     caps,
		maxAge:   maxAge,
		logger:   logger.With().Str("component", "addon").Logger(),
	}
}

// RegisterRoutes registers the manifest and the resources enabled by the capabilities.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/manifest.json", h.GetManifest)

	// ":id" also matches "<id>.json"; the suffix is stripped in the handlers.
	g.GET("/catalog/:type/:id", h.GetCatalog)
	g.GET("/catalog/:type/:id/:extra", h.GetCatalog)

	if h.caps.Meta {
		g.GET("/meta/:type/:id", h.GetMeta)
	}
	if h.caps.Stream {
		g.GET("/stream/:type/:id", h.GetStreams)
	}
}

// GetManifest returns the addon manifest.
// GET /manifest.json
func (h *Handlers) GetManifest(c echo.Context) error {
	h.setCacheHeader(c)
	return c.JSON(http.StatusOK, h.manifest)
}

// GetCatalog returns the ranked filmography of the person named by the search extra.
// GET /catalog/:type/:id.json
// GET /catalog/:type/:id/search=<name>.json
// GET /catalog/:type/:id?search=<name>
func (h *Handlers) GetCatalog(c echo.Context) error {
	kind, err := filmography.ParseKind(c.Param("type"))
	if err != nil {
		h.logFailure(err, "catalog", c.Param("type"))
		return h.emptyCatalog(c)
	}

	search := searchText(c)
	items, err := h.service.Catalog(c.Request().Context(), kind, search)
	if err != nil {
		h.logFailure(err, "catalog", search)
		return h.emptyCatalog(c)
	}

	h.setCacheHeader(c)
	if h.caps.MinimalSchema {
		return c.JSON(http.StatusOK, CatalogResponse[MinimalItem]{Metas: minimalItems(items)})
	}
	return c.JSON(http.StatusOK, CatalogResponse[filmography.CatalogItem]{Metas: items})
}

// GetMeta returns the detail record of one item.
// GET /meta/:type/:id.json
func (h *Handlers) GetMeta(c echo.Context) error {
	id := trimJSON(c.Param("id"))

	kind, err := filmography.ParseKind(c.Param("type"))
	if err != nil {
		h.logFailure(err, "meta", id)
		return c.JSON(http.StatusOK, MetaResponse{Meta: struct{}{}})
	}

	record, err := h.service.Meta(c.Request().Context(), kind, id)
	if err != nil {
		h.logFailure(err, "meta", id)
		return c.JSON(http.StatusOK, MetaResponse{Meta: struct{}{}})
	}

	h.setCacheHeader(c)
	return c.JSON(http.StatusOK, MetaResponse{Meta: record})
}

// GetStreams returns the trailer of one item as a stream.
// GET /stream/:type/:id.json
func (h *Handlers) GetStreams(c echo.Context) error {
	id := trimJSON(c.Param("id"))

	kind, err := filmography.ParseKind(c.Param("type"))
	if err != nil {
		h.logFailure(err, "stream", id)
		return c.JSON(http.StatusOK, StreamResponse{Streams: []filmography.Stream{}})
	}

	streams, err := h.service.Streams(c.Request().Context(), kind, id)
	if err != nil {
		h.logFailure(err, "stream", id)
		return c.JSON(http.StatusOK, StreamResponse{Streams: []filmography.Stream{}})
	}

	h.setCacheHeader(c)
	return c.JSON(http.StatusOK, StreamResponse{Streams: streams})
}

func (h *Handlers) emptyCatalog(c echo.Context) error {
	if h.caps.MinimalSchema {
		return c.JSON(http.StatusOK, CatalogResponse[MinimalItem]{Metas: []MinimalItem{}})
	}
	return c.JSON(http.StatusOK, CatalogResponse[filmography.CatalogItem]{Metas: []filmography.CatalogItem{}})
}

func (h *Handlers) setCacheHeader(c echo.Context) {
	if h.maxAge <= 0 {
		return
	}
	c.Response().Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(h.maxAge.Seconds())))
}

// logFailure logs expected misses at debug and provider failures at error.
func (h *Handlers) logFailure(err error, resource, subject string) {
	level := zerolog.ErrorLevel
	switch {
	case errors.Is(err, filmography.ErrInvalidQuery),
		errors.Is(err, filmography.ErrPersonNotFound),
		errors.Is(err, filmography.ErrInvalidID):
		level = zerolog.DebugLevel
	}
	h.logger.WithLevel(level).
		Err(err).
		Str("resource", resource).
		Str("subject", subject).
		Msg("Answering with empty payload")
}

// searchText reads the search extra from the path segment or the query string.
func searchText(c echo.Context) string {
	if extra := trimJSON(c.Param("extra")); extra != "" {
		if values, err := url.ParseQuery(extra); err == nil {
			if search := values.Get(extraSearch); search != "" {
				return search
			}
		}
	}
	return c.QueryParam(extraSearch)
}

func trimJSON(s string) string {
	return strings.TrimSuffix(s, jsonSuffix)
}

func minimalItems(items []filmography.CatalogItem) []MinimalItem {
	out := make([]MinimalItem, 0, len(items))
	for _, it := range items {
		out = append(out, MinimalItem{
			ID:    it.ID,
			Type:  it.Type,
			Name:  it.Name,
			Score: it.Score,
		})
	}
	return out
}
