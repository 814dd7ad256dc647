package filmography

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/slipstream/filmography/internal/metadata/tmdb"
)

// Aggregator builds a person's ranked filmography from combined credits.
type Aggregator struct {
	provider Provider
	logger   zerolog.Logger
}

// NewAggregator creates a filmography aggregator.
func NewAggregator(provider Provider, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		provider: provider,
		logger:   logger.With().Str("component", "aggregator").Logger(),
	}
}

// Fetch retrieves the person's credits and returns them partitioned, deduplicated and ranked.
func (a *Aggregator) Fetch(ctx context.Context, personID int) (*Filmography, error) {
	credits, err := a.provider.GetCombinedCredits(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteFetch, err)
	}

	result := Aggregate(credits)

	a.logger.Debug().
		Int("personID", personID).
		Int("cast", len(credits.Cast)).
		Int("crew", len(credits.Crew)).
		Int("films", len(result.Films)).
		Int("series", len(result.Series)).
		Msg("Aggregated filmography")

	return result, nil
}

// Aggregate merges cast before crew, keeps movie and tv entries only,
// drops repeated remote ids per kind (first occurrence wins) and ranks each kind.
func Aggregate(credits *tmdb.CombinedCreditsResponse) *Filmography {
	result := &Filmography{
		Films:  []CreditRecord{},
		Series: []CreditRecord{},
	}
	if credits == nil {
		return result
	}

	seen := make(map[ItemRef]struct{})
	pool := make([]tmdb.Credit, 0, len(credits.Cast)+len(credits.Crew))
	pool = append(pool, credits.Cast...)
	pool = append(pool, credits.Crew...)

	for _, c := range pool {
		kind, ok := KindFromMediaType(c.MediaType)
		if !ok {
			continue
		}
		ref := ItemRef{Kind: kind, RemoteID: c.ID}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}

		record := toCreditRecord(kind, c)
		if kind == KindSeries {
			result.Series = append(result.Series, record)
		} else {
			result.Films = append(result.Films, record)
		}
	}

	Rank(result.Films)
	Rank(result.Series)
	return result
}

// Rank sorts records by rating, highest first. Equal ratings put rated records
// before unrated ones and otherwise keep their relative order.
func Rank(records []CreditRecord) {
	slices.SortStableFunc(records, func(a, b CreditRecord) int {
		if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
			return c
		}
		switch {
		case a.Rated && !b.Rated:
			return -1
		case !a.Rated && b.Rated:
			return 1
		}
		return 0
	})
}

// Truncate caps a ranked list at limit entries. Apply it after Rank.
func Truncate[T any](records []T, limit int) []T {
	if limit < 0 || len(records) <= limit {
		return records
	}
	return records[:limit]
}

func toCreditRecord(kind Kind, c tmdb.Credit) CreditRecord {
	record := CreditRecord{
		RemoteID:    c.ID,
		Kind:        kind,
		Title:       firstNonEmpty(c.Title, c.Name),
		ReleaseDate: firstNonEmpty(c.ReleaseDate, c.FirstAirDate),
		Rating:      c.VoteAverage.Or(0),
		Rated:       c.VoteAverage.Valid,
	}
	if c.PosterPath != nil {
		record.PosterPath = *c.PosterPath
	}
	return record
}
