package filmography

import (
	"context"
	"errors"

	"github.com/slipstream/filmography/internal/metadata/tmdb"
)

var (
	ErrInvalidQuery   = errors.New("search text is empty")
	ErrPersonNotFound = errors.New("person not found")
	ErrRemoteFetch    = errors.New("remote metadata fetch failed")
	ErrInvalidID      = errors.New("invalid item id")
)

// Provider is the remote metadata source the pipeline reads from.
type Provider interface {
	SearchPerson(ctx context.Context, query string) ([]tmdb.PersonResult, error)
	GetCombinedCredits(ctx context.Context, personID int) (*tmdb.CombinedCreditsResponse, error)
	GetDetails(ctx context.Context, mediaType tmdb.MediaType, id int) (*tmdb.Details, error)
	GetImageURL(path string, size string) string
}

// Image sizes requested from the provider.
const (
	posterSize     = "w500"
	backgroundSize = "w1280"
)

// Person is the resolved person a catalog is built for.
type Person struct {
	ID                 int
	Name               string
	Popularity         float64
	KnownCreditCount   int
	KnownForDepartment string
}

// CreditRecord is one work a person is credited on.
type CreditRecord struct {
	RemoteID    int
	Kind        Kind
	Title       string
	ReleaseDate string
	PosterPath  string
	Rating      float64
	Rated       bool
}

// Ref returns the item reference of the credit.
func (c CreditRecord) Ref() ItemRef {
	return ItemRef{Kind: c.Kind, RemoteID: c.RemoteID}
}

// Filmography holds a person's ranked credits by kind.
type Filmography struct {
	Films  []CreditRecord
	Series []CreditRecord
}

// Partition returns the ranked credits of one kind.
func (f *Filmography) Partition(kind Kind) []CreditRecord {
	if f == nil {
		return nil
	}
	if kind == KindSeries {
		return f.Series
	}
	return f.Films
}

// CatalogItem is the list-view projection of a credit.
type CatalogItem struct {
	ID          string   `json:"id"`
	Type        Kind     `json:"type"`
	Name        string   `json:"name"`
	Poster      *string  `json:"poster"`
	PosterShape string   `json:"posterShape"`
	Description string   `json:"description"`
	Score       float64  `json:"score"`
	Background  *string  `json:"background,omitempty"`
	Genres      []string `json:"genres,omitempty"`

	ref ItemRef
}

// Ref returns the item reference the catalog item was built from.
func (c CatalogItem) Ref() ItemRef {
	return c.ref
}

// DetailRecord is the full projection of one item.
// Rating stays empty when the provider sent none.
type DetailRecord struct {
	ID          string   `json:"id"`
	Type        Kind     `json:"type"`
	Name        string   `json:"name"`
	ReleaseInfo string   `json:"releaseInfo"`
	Description string   `json:"description"`
	Poster      *string  `json:"poster"`
	Background  *string  `json:"background"`
	Genres      []string `json:"genres"`
	Videos      []Video  `json:"videos"`
	IMDbRating  string   `json:"imdbRating,omitempty"`
}

// Video is a trailer reference attached to a detail record.
type Video struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Stream is a playable link for the stream resource.
type Stream struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Placeholders are the texts used when the provider leaves a field empty.
type Placeholders struct {
	Untitled      string
	NoYear        string
	NoDescription string
}

// DefaultPlaceholders returns the Spanish placeholders the addon ships with.
func DefaultPlaceholders() Placeholders {
	return Placeholders{
		Untitled:      "Sin nombre",
		NoYear:        "Sin año",
		NoDescription: "Sin descripción",
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// yearOf returns the leading year of a provider date, or "" when absent.
func yearOf(date string) string {
	if len(date) > 4 {
		return date[:4]
	}
	return date
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
