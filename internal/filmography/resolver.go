package filmography

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/slipstream/filmography/internal/metadata/tmdb"
)

// Resolver turns a free-text name into a single person.
type Resolver struct {
	provider Provider
	logger   zerolog.Logger
}

// NewResolver creates a person resolver.
func NewResolver(provider Provider, logger zerolog.Logger) *Resolver {
	return &Resolver{
		provider: provider,
		logger:   logger.With().Str("component", "resolver").Logger(),
	}
}

// Resolve picks the most popular person matching query. Ties keep the provider's order.
func (r *Resolver) Resolve(ctx context.Context, query string) (*Person, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}

	candidates, err := r.provider.SearchPerson(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteFetch, err)
	}
	if len(candidates) == 0 {
		r.logger.Debug().Str("query", query).Msg("No person matched")
		return nil, ErrPersonNotFound
	}

	ranked := slices.Clone(candidates)
	slices.SortStableFunc(ranked, func(a, b tmdb.PersonResult) int {
		return cmp.Compare(b.Popularity, a.Popularity)
	})
	best := ranked[0]

	r.logger.Debug().
		Str("query", query).
		Int("candidates", len(candidates)).
		Int("personID", best.ID).
		Str("name", best.Name).
		Msg("Resolved person")

	return &Person{
		ID:                 best.ID,
		Name:               best.Name,
		Popularity:         best.Popularity,
		KnownCreditCount:   len(best.KnownFor),
		KnownForDepartment: best.KnownForDepartment,
	}, nil
}
