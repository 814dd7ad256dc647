package metadata

import (
	"context"

	"github.com/slipstream/filmography/internal/metadata/tmdb"
)

// TMDBClient defines the interface for TMDB API operations.
type TMDBClient interface {
	Name() string
	IsConfigured() bool
	Language() string
	Test(ctx context.Context) error
	SearchPerson(ctx context.Context, query string) ([]tmdb.PersonResult, error)
	GetCombinedCredits(ctx context.Context, personID int) (*tmdb.CombinedCreditsResponse, error)
	GetDetails(ctx context.Context, mediaType tmdb.MediaType, id int) (*tmdb.Details, error)
	GetImageURL(path string, size string) string
}

var _ TMDBClient = (*tmdb.Client)(nil)
