package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	configured bool
	err        error
}

func (p stubProvider) IsConfigured() bool             { return p.configured }
func (p stubProvider) Test(ctx context.Context) error { return p.err }

func TestService_StatusTransitions(t *testing.T) {
	svc := NewService("1.0.0", zerolog.Nop())
	svc.RegisterItem(CategoryMetadata, "tmdb", "TMDB")

	assert.True(t, svc.IsHealthy(CategoryMetadata, "tmdb"))
	assert.Equal(t, StatusOK, svc.GetAll().Status)

	svc.SetWarning(CategoryMetadata, "tmdb", "slow")
	assert.Equal(t, StatusWarning, svc.GetAll().Status)

	svc.SetError(CategoryMetadata, "tmdb", "unreachable")
	item := svc.GetItem(CategoryMetadata, "tmdb")
	require.NotNil(t, item)
	assert.Equal(t, StatusError, item.Status)
	assert.Equal(t, "unreachable", item.Message)
	assert.NotNil(t, item.Timestamp)
	assert.Equal(t, StatusError, svc.GetAll().Status)
	assert.True(t, svc.GetSummary().HasIssues)

	svc.ClearStatus(CategoryMetadata, "tmdb")
	item = svc.GetItem(CategoryMetadata, "tmdb")
	assert.Equal(t, StatusOK, item.Status)
	assert.Nil(t, item.Timestamp)
	assert.False(t, svc.GetSummary().HasIssues)
}

func TestService_UnregisteredItemsAreIgnored(t *testing.T) {
	svc := NewService("1.0.0", zerolog.Nop())
	svc.SetError(CategoryCache, "missing", "boom")
	svc.RegisterItem("unknown", "x", "X")

	assert.Nil(t, svc.GetItem(CategoryCache, "missing"))
	assert.False(t, svc.IsHealthy(CategoryCache, "missing"))
	assert.Equal(t, StatusOK, svc.GetAll().Status)
}

func TestHealthItem_MarshalOmitsMessageWhenOK(t *testing.T) {
	data, err := json.Marshal(HealthItem{ID: "a", Status: StatusOK, Message: "stale"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")

	data, err = json.Marshal(HealthItem{ID: "a", Status: StatusError, Message: "down"})
	require.NoError(t, err)
	assert.Contains(t, string(data), "down")
}

func TestCheckProvider(t *testing.T) {
	svc := NewService("1.0.0", zerolog.Nop())
	svc.RegisterItem(CategoryMetadata, "tmdb", "TMDB")
	ctx := context.Background()

	err := CheckProvider(ctx, svc, stubProvider{configured: true, err: errors.New("401")}, "tmdb")
	assert.Error(t, err)
	assert.Equal(t, StatusError, svc.GetItem(CategoryMetadata, "tmdb").Status)

	require.NoError(t, CheckProvider(ctx, svc, stubProvider{configured: true}, "tmdb"))
	assert.True(t, svc.IsHealthy(CategoryMetadata, "tmdb"))

	require.NoError(t, CheckProvider(ctx, svc, stubProvider{}, "tmdb"))
	assert.Equal(t, StatusWarning, svc.GetItem(CategoryMetadata, "tmdb").Status)
}

func TestHandlers(t *testing.T) {
	svc := NewService("1.2.3", zerolog.Nop())
	svc.RegisterItem(CategoryMetadata, "tmdb", "TMDB")
	svc.RegisterItem(CategoryScheduler, "cache-prune", "Cache prune")

	e := echo.New()
	NewHandlers(svc, stubProvider{configured: true}, "tmdb").RegisterRoutes(e.Group("/health"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, StatusOK, resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	require.Len(t, resp.Metadata, 1)
	assert.Equal(t, "TMDB", resp.Metadata[0].Name)
	assert.Len(t, resp.Scheduler, 1)
	assert.Empty(t, resp.Cache)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health/metadata/test", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Connection successful"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"hasIssues":false`)
}
