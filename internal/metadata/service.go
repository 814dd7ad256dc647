package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/slipstream/filmography/internal/metadata/tmdb"
)

var (
	ErrNoProvidersConfigured = errors.New("no metadata providers configured")
	ErrNotFound              = errors.New("metadata not found")
)

// Service fronts the TMDB client with an optional response cache.
// Every read decodes a fresh value, so callers may mutate what they receive.
type Service struct {
	tmdb   TMDBClient
	store  Store
	logger zerolog.Logger
}

// NewService creates a metadata service. A nil store disables caching.
func NewService(client TMDBClient, store Store, logger zerolog.Logger) *Service {
	return &Service{
		tmdb:   client,
		store:  store,
		logger: logger.With().Str("component", "metadata").Logger(),
	}
}

// ProviderName returns the name of the underlying provider.
func (s *Service) ProviderName() string {
	return s.tmdb.Name()
}

// IsConfigured returns true if the provider can serve requests.
func (s *Service) IsConfigured() bool {
	return s.tmdb.IsConfigured()
}

// Test checks provider connectivity, bypassing the cache.
func (s *Service) Test(ctx context.Context) error {
	if !s.tmdb.IsConfigured() {
		return ErrNoProvidersConfigured
	}
	return s.tmdb.Test(ctx)
}

// GetImageURL returns a full provider image URL, or "" for an empty path.
func (s *Service) GetImageURL(path, size string) string {
	return s.tmdb.GetImageURL(path, size)
}

// SearchPerson searches people by name, keeping the provider's result order.
func (s *Service) SearchPerson(ctx context.Context, query string) ([]tmdb.PersonResult, error) {
	if !s.tmdb.IsConfigured() {
		return nil, ErrNoProvidersConfigured
	}

	key := fmt.Sprintf("person:search:%s:%s", s.tmdb.Language(), query)
	results, err := cached(ctx, s, key, func() ([]tmdb.PersonResult, error) {
		return s.tmdb.SearchPerson(ctx, query)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("TMDB person search failed")
		return nil, fmt.Errorf("person search failed: %w", mapProviderError(err))
	}
	return results, nil
}

// GetCombinedCredits gets a person's cast and crew credits.
func (s *Service) GetCombinedCredits(ctx context.Context, personID int) (*tmdb.CombinedCreditsResponse, error) {
	if !s.tmdb.IsConfigured() {
		return nil, ErrNoProvidersConfigured
	}

	key := fmt.Sprintf("person:credits:%s:%d", s.tmdb.Language(), personID)
	credits, err := cached(ctx, s, key, func() (*tmdb.CombinedCreditsResponse, error) {
		return s.tmdb.GetCombinedCredits(ctx, personID)
	})
	if err != nil {
		s.logger.Error().Err(err).Int("personID", personID).Msg("TMDB combined credits failed")
		return nil, fmt.Errorf("combined credits failed: %w", mapProviderError(err))
	}
	return credits, nil
}

// GetDetails gets a movie or TV record including its videos.
func (s *Service) GetDetails(ctx context.Context, mediaType tmdb.MediaType, id int) (*tmdb.Details, error) {
	if !s.tmdb.IsConfigured() {
		return nil, ErrNoProvidersConfigured
	}

	key := fmt.Sprintf("details:%s:%s:%d", s.tmdb.Language(), mediaType, id)
	details, err := cached(ctx, s, key, func() (*tmdb.Details, error) {
		return s.tmdb.GetDetails(ctx, mediaType, id)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("mediaType", string(mediaType)).Int("id", id).Msg("TMDB details failed")
		return nil, fmt.Errorf("details failed: %w", mapProviderError(err))
	}
	return details, nil
}

// PruneCache drops expired cache entries.
func (s *Service) PruneCache(ctx context.Context) int {
	if s.store == nil {
		return 0
	}
	return s.store.Prune(ctx)
}

// ClearCache drops every cache entry.
func (s *Service) ClearCache(ctx context.Context) {
	if s.store != nil {
		s.store.Clear(ctx)
	}
}

// cached returns the decoded cache entry for key, or calls fetch and stores its result.
func cached[T any](ctx context.Context, s *Service, key string, fetch func() (T, error)) (T, error) {
	if s.store != nil {
		if data, ok := s.store.Get(ctx, key); ok {
			var v T
			if err := json.Unmarshal(data, &v); err == nil {
				s.logger.Debug().Str("key", key).Msg("Cache hit")
				return v, nil
			}
			s.logger.Warn().Str("key", key).Msg("Discarding undecodable cache entry")
		}
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}

	if s.store != nil {
		if data, err := json.Marshal(v); err == nil {
			s.store.Set(ctx, key, data)
		}
	}
	return v, nil
}

// mapProviderError keeps ErrNotFound recognisable across provider boundaries.
func mapProviderError(err error) error {
	if errors.Is(err, tmdb.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
