package health

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ProviderTester checks connectivity of the metadata provider.
type ProviderTester interface {
	IsConfigured() bool
	Test(ctx context.Context) error
}

// Handlers provides HTTP handlers for health endpoints.
type Handlers struct {
	health   *Service
	provider ProviderTester
	itemID   string
}

// NewHandlers creates health handlers. itemID is the metadata item the provider is tracked under.
func NewHandlers(health *Service, provider ProviderTester, itemID string) *Handlers {
	return &Handlers{
		health:   health,
		provider: provider,
		itemID:   itemID,
	}
}

// RegisterRoutes registers health routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetAll)
	g.GET("/summary", h.GetSummary)
	g.POST("/metadata/test", h.TestProvider)
}

// GetAll returns all health items grouped by category.
// GET /health
func (h *Handlers) GetAll(c echo.Context) error {
	return c.JSON(http.StatusOK, h.health.GetAll())
}

// GetSummary returns summary counts per category.
// GET /health/summary
func (h *Handlers) GetSummary(c echo.Context) error {
	return c.JSON(http.StatusOK, h.health.GetSummary())
}

// TestProvider runs a provider connectivity check and records the result.
// POST /health/metadata/test
func (h *Handlers) TestProvider(c echo.Context) error {
	result := map[string]interface{}{
		"success": false,
		"message": "",
	}

	if h.provider == nil || !h.provider.IsConfigured() {
		result["message"] = "TMDB not configured"
		h.health.SetWarning(CategoryMetadata, h.itemID, "TMDB API key not configured")
		return c.JSON(http.StatusOK, result)
	}

	if err := CheckProvider(c.Request().Context(), h.health, h.provider, h.itemID); err != nil {
		result["message"] = err.Error()
		return c.JSON(http.StatusOK, result)
	}

	result["success"] = true
	result["message"] = "Connection successful"
	return c.JSON(http.StatusOK, result)
}

// CheckProvider tests the provider and updates its health item.
func CheckProvider(ctx context.Context, health *Service, provider ProviderTester, itemID string) error {
	if !provider.IsConfigured() {
		health.SetWarning(CategoryMetadata, itemID, "TMDB API key not configured")
		return nil
	}
	if err := provider.Test(ctx); err != nil {
		health.SetError(CategoryMetadata, itemID, err.Error())
		return err
	}
	health.ClearStatus(CategoryMetadata, itemID)
	return nil
}
