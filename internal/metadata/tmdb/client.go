package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/slipstream/filmography/internal/config"
)

var (
	ErrAPIKeyMissing = errors.New("TMDB API key is not configured")
	ErrNotFound      = errors.New("TMDB resource not found")
	ErrAPIError      = errors.New("TMDB API error")
	ErrRateLimited   = errors.New("TMDB API rate limited")
	ErrInvalidMedia  = errors.New("unsupported TMDB media type")
)

// Client is a TMDB API client.
type Client struct {
	httpClient *http.Client
	config     config.TMDBConfig
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client.
func NewClient(cfg config.TMDBConfig, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		config: cfg,
		logger: logger.With().Str("component", "tmdb").Logger(),
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "tmdb"
}

// Language returns the language requested from TMDB.
func (c *Client) Language() string {
	return c.config.Language
}

// IsConfigured returns true if the API key is set.
func (c *Client) IsConfigured() bool {
	return c.config.APIKey != ""
}

// Test verifies connectivity to the TMDB API by making a configuration request.
func (c *Client) Test(ctx context.Context) error {
	if !c.IsConfigured() {
		return ErrAPIKeyMissing
	}

	var result struct {
		Images struct {
			BaseURL string `json:"base_url"`
		} `json:"images"`
	}

	return c.doRequest(ctx, "/configuration", c.params(), &result)
}

// SearchPerson searches people by name. Results keep the provider's order.
func (c *Client) SearchPerson(ctx context.Context, query string) ([]PersonResult, error) {
	if !c.IsConfigured() {
		return nil, ErrAPIKeyMissing
	}

	params := c.params()
	params.Set("query", query)
	params.Set("include_adult", "false")

	var response SearchPersonResponse
	if err := c.doRequest(ctx, "/search/person", params, &response); err != nil {
		return nil, err
	}

	if response.Results == nil {
		response.Results = []PersonResult{}
	}

	c.logger.Debug().
		Str("query", query).
		Int("results", len(response.Results)).
		Msg("Person search completed")

	return response.Results, nil
}

// GetCombinedCredits gets the cast and crew credits of a person across movies and TV.
func (c *Client) GetCombinedCredits(ctx context.Context, personID int) (*CombinedCreditsResponse, error) {
	if !c.IsConfigured() {
		return nil, ErrAPIKeyMissing
	}

	var credits CombinedCreditsResponse
	endpoint := fmt.Sprintf("/person/%d/combined_credits", personID)
	if err := c.doRequest(ctx, endpoint, c.params(), &credits); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("personID", personID).
		Int("cast", len(credits.Cast)).
		Int("crew", len(credits.Crew)).
		Msg("Got combined credits")

	return &credits, nil
}

// GetDetails gets a movie or TV record with its videos appended in the same call.
func (c *Client) GetDetails(ctx context.Context, mediaType MediaType, id int) (*Details, error) {
	if !c.IsConfigured() {
		return nil, ErrAPIKeyMissing
	}
	if mediaType != MediaTypeMovie && mediaType != MediaTypeTV {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMedia, mediaType)
	}

	params := c.params()
	params.Set("append_to_response", "videos")

	var details Details
	endpoint := fmt.Sprintf("/%s/%d", mediaType, id)
	if err := c.doRequest(ctx, endpoint, params, &details); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("mediaType", string(mediaType)).
		Int("id", id).
		Bool("videos", details.Videos != nil).
		Msg("Got details")

	return &details, nil
}

// GetImageURL returns a full image URL for a given path and size.
// Size options: "w92", "w154", "w185", "w342", "w500", "w780", "w1280", "original"
func (c *Client) GetImageURL(path string, size string) string {
	if path == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s%s", strings.TrimRight(c.config.ImageBaseURL, "/"), size, path)
}

// params returns the query parameters shared by every call.
func (c *Client) params() url.Values {
	params := url.Values{}
	params.Set("api_key", c.config.APIKey)
	if c.config.Language != "" {
		params.Set("language", c.config.Language)
	}
	return params
}

// doRequest performs an HTTP GET request and decodes the JSON response.
func (c *Client) doRequest(ctx context.Context, path string, params url.Values, result interface{}) error {
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + path

	reqURL := endpoint
	if len(params) > 0 {
		reqURL = fmt.Sprintf("%s?%s", endpoint, params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", endpoint).Msg("HTTP request failed")
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			c.logger.Error().
				Int("status", resp.StatusCode).
				Str("url", endpoint).
				Str("message", errResp.StatusMessage).
				Msg("TMDB API error")
		}

		switch resp.StatusCode {
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: invalid API key", ErrAPIError)
		case http.StatusTooManyRequests:
			return ErrRateLimited
		default:
			return fmt.Errorf("%w: status %d", ErrAPIError, resp.StatusCode)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
