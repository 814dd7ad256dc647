// Package filmography resolves a person, ranks their credits and projects them
// into catalog and detail records.
package filmography

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultCatalogLimit is the maximum number of items a catalog returns.
const DefaultCatalogLimit = 100

// Options configures the filmography service.
type Options struct {
	CatalogLimit          int
	EagerEnrichment       bool
	EnrichmentConcurrency int
	Placeholders          Placeholders
}

// DefaultOptions returns the options the addon ships with.
func DefaultOptions() Options {
	return Options{
		CatalogLimit:          DefaultCatalogLimit,
		EnrichmentConcurrency: 8,
		Placeholders:          DefaultPlaceholders(),
	}
}

// Service answers catalog, meta and stream lookups.
type Service struct {
	resolver   *Resolver
	aggregator *Aggregator
	enricher   *Enricher
	projector  *Projector
	opts       Options
	logger     zerolog.Logger
}

// NewService wires the pipeline stages around a provider.
func NewService(provider Provider, opts Options, logger zerolog.Logger) *Service {
	if opts.CatalogLimit <= 0 {
		opts.CatalogLimit = DefaultCatalogLimit
	}
	if opts.EnrichmentConcurrency <= 0 {
		opts.EnrichmentConcurrency = 1
	}

	return &Service{
		resolver:   NewResolver(provider, logger),
		aggregator: NewAggregator(provider, logger),
		enricher:   NewEnricher(provider, opts.Placeholders, logger),
		projector:  NewProjector(provider, opts.Placeholders),
		opts:       opts,
		logger:     logger.With().Str("component", "filmography").Logger(),
	}
}

// Catalog returns the ranked items of one kind for the person best matching search.
func (s *Service) Catalog(ctx context.Context, kind Kind, search string) ([]CatalogItem, error) {
	person, err := s.resolver.Resolve(ctx, search)
	if err != nil {
		return nil, err
	}

	films, err := s.aggregator.Fetch(ctx, person.ID)
	if err != nil {
		return nil, err
	}

	records := Truncate(films.Partition(kind), s.opts.CatalogLimit)
	items := s.projector.ProjectAll(records)

	if s.opts.EagerEnrichment && len(items) > 0 {
		items = s.enrich(ctx, items)
	}

	s.logger.Info().
		Str("search", search).
		Str("person", person.Name).
		Str("type", string(kind)).
		Int("items", len(items)).
		Msg("Built catalog")

	return items, nil
}

// enrich fills genres and backgrounds from each item's detail record.
// Items whose lookup fails keep their list-view fields.
func (s *Service) enrich(ctx context.Context, items []CatalogItem) []CatalogItem {
	enriched := make([]CatalogItem, len(items))
	copy(enriched, items)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.EnrichmentConcurrency)

	for i := range enriched {
		g.Go(func() error {
			detail, err := s.enricher.Fetch(gctx, enriched[i].Ref())
			if err != nil {
				s.logger.Debug().Err(err).Str("id", enriched[i].ID).Msg("Enrichment skipped")
				return nil
			}
			enriched[i].Genres = detail.Genres
			enriched[i].Background = detail.Background
			return nil
		})
	}
	_ = g.Wait()

	slices.SortStableFunc(enriched, func(a, b CatalogItem) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return enriched
}

// Meta returns the detail record for a composite id of the given kind.
func (s *Service) Meta(ctx context.Context, kind Kind, id string) (*DetailRecord, error) {
	ref, err := refFor(kind, id)
	if err != nil {
		return nil, err
	}
	return s.enricher.Fetch(ctx, ref)
}

// Streams returns the trailer streams for a composite id of the given kind.
func (s *Service) Streams(ctx context.Context, kind Kind, id string) ([]Stream, error) {
	record, err := s.Meta(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return TrailerStreams(record), nil
}

func refFor(kind Kind, id string) (ItemRef, error) {
	ref, err := ParseCompositeID(id)
	if err != nil {
		return ItemRef{}, err
	}
	if ref.Kind != kind {
		return ItemRef{}, fmt.Errorf("%w: %q is not a %s", ErrInvalidID, id, kind)
	}
	return ref, nil
}
