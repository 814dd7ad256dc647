package filmography

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/slipstream/filmography/internal/metadata/tmdb"
)

const (
	trailerSite  = "YouTube"
	trailerType  = "Trailer"
	trailerTitle = "Trailer"
	youtubeWatch = "https://www.youtube.com/watch?v="
)

// Enricher loads the full record of a single item.
type Enricher struct {
	provider     Provider
	placeholders Placeholders
	logger       zerolog.Logger
}

// NewEnricher creates a detail enricher.
func NewEnricher(provider Provider, placeholders Placeholders, logger zerolog.Logger) *Enricher {
	return &Enricher{
		provider:     provider,
		placeholders: placeholders,
		logger:       logger.With().Str("component", "enricher").Logger(),
	}
}

// Fetch retrieves the item with its videos in a single provider call.
func (e *Enricher) Fetch(ctx context.Context, ref ItemRef) (*DetailRecord, error) {
	details, err := e.provider.GetDetails(ctx, ref.Kind.MediaType(), ref.RemoteID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteFetch, err)
	}

	record := e.project(ref, details)
	e.logger.Debug().
		Str("id", record.ID).
		Int("videos", len(record.Videos)).
		Msg("Loaded item detail")
	return record, nil
}

func (e *Enricher) project(ref ItemRef, d *tmdb.Details) *DetailRecord {
	record := &DetailRecord{
		ID:          ref.CompositeID(),
		Type:        ref.Kind,
		Name:        firstNonEmpty(d.Title, d.Name, e.placeholders.Untitled),
		ReleaseInfo: yearOf(firstNonEmpty(d.ReleaseDate, d.FirstAirDate)),
		Description: firstNonEmpty(d.Overview, e.placeholders.NoDescription),
		Poster:      e.imageURL(d.PosterPath, posterSize),
		Background:  e.imageURL(d.BackdropPath, backgroundSize),
		Genres:      genreNames(d.Genres),
		Videos:      []Video{},
	}

	if key, ok := FindTrailer(d.Videos); ok {
		record.Videos = append(record.Videos, Video{
			ID:    "yt:" + key,
			Title: trailerTitle,
			URL:   youtubeWatch + key,
		})
	}

	if d.VoteAverage.Valid {
		record.IMDbRating = strconv.FormatFloat(d.VoteAverage.Value, 'f', 1, 64)
	}

	return record
}

func (e *Enricher) imageURL(path *string, size string) *string {
	if path == nil || *path == "" {
		return nil
	}
	return stringPtr(e.provider.GetImageURL(*path, size))
}

// FindTrailer returns the key of the first YouTube trailer in videos.
func FindTrailer(videos *tmdb.VideosResponse) (string, bool) {
	if videos == nil {
		return "", false
	}
	for _, v := range videos.Results {
		if v.Site == trailerSite && v.Type == trailerType && v.Key != "" {
			return v.Key, true
		}
	}
	return "", false
}

// TrailerStreams turns a detail record's trailer into stream entries.
func TrailerStreams(record *DetailRecord) []Stream {
	streams := []Stream{}
	if record == nil {
		return streams
	}
	for _, v := range record.Videos {
		streams = append(streams, Stream{
			Name:  trailerSite,
			Title: v.Title,
			URL:   v.URL,
		})
	}
	return streams
}

func genreNames(genres []tmdb.Genre) []string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return names
}
