// Package mock provides a fixture-backed TMDB client for developer mode.
package mock

import (
	"context"
	"strings"

	"github.com/slipstream/filmography/internal/metadata/tmdb"
)

// TMDBClient is a mock implementation of the TMDB client.
type TMDBClient struct{}

// NewTMDBClient creates a new mock TMDB client.
func NewTMDBClient() *TMDBClient {
	return &TMDBClient{}
}

func (c *TMDBClient) Name() string {
	return "tmdb-mock"
}

func (c *TMDBClient) Language() string {
	return "es-ES"
}

func (c *TMDBClient) IsConfigured() bool {
	return true
}

func (c *TMDBClient) Test(ctx context.Context) error {
	return nil
}

func (c *TMDBClient) GetImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/" + size + path
}

// SearchPerson returns every fixture person whose name contains the query.
func (c *TMDBClient) SearchPerson(ctx context.Context, query string) ([]tmdb.PersonResult, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	results := []tmdb.PersonResult{}
	for _, p := range mockPeople {
		if strings.Contains(strings.ToLower(p.Name), query) {
			results = append(results, p)
		}
	}
	return results, nil
}

func (c *TMDBClient) GetCombinedCredits(ctx context.Context, personID int) (*tmdb.CombinedCreditsResponse, error) {
	credits, ok := mockCredits[personID]
	if !ok {
		return nil, tmdb.ErrNotFound
	}
	out := tmdb.CombinedCreditsResponse{
		ID:   credits.ID,
		Cast: append([]tmdb.Credit(nil), credits.Cast...),
		Crew: append([]tmdb.Credit(nil), credits.Crew...),
	}
	return &out, nil
}

func (c *TMDBClient) GetDetails(ctx context.Context, mediaType tmdb.MediaType, id int) (*tmdb.Details, error) {
	details, ok := mockDetails[detailsKey{mediaType, id}]
	if !ok {
		return nil, tmdb.ErrNotFound
	}
	out := details
	out.Genres = append([]tmdb.Genre(nil), details.Genres...)
	if details.Videos != nil {
		out.Videos = &tmdb.VideosResponse{Results: append([]tmdb.Video(nil), details.Videos.Results...)}
	}
	return &out, nil
}

type detailsKey struct {
	mediaType tmdb.MediaType
	id        int
}

func strPtr(s string) *string { return &s }

var mockPeople = []tmdb.PersonResult{
	{ID: 31, Name: "Tom Hanks", Popularity: 64.2, KnownForDepartment: "Acting", ProfilePath: strPtr("/xndWFsBlClOJFRdhSt4NBwiPq2o.jpg")},
	{ID: 488, Name: "Steven Spielberg", Popularity: 21.7, KnownForDepartment: "Directing", ProfilePath: strPtr("/tZxcg19YQ3e8fJ0pOs7hjlnmmr6.jpg")},
	{ID: 1397778, Name: "Tom Hanks", Popularity: 0.6, KnownForDepartment: "Crew"},
}

var mockCredits = map[int]tmdb.CombinedCreditsResponse{
	31: {
		ID: 31,
		Cast: []tmdb.Credit{
			{ID: 13, MediaType: tmdb.MediaTypeMovie, Title: "Forrest Gump", ReleaseDate: "1994-06-23", PosterPath: strPtr("/arw2vcBveWOVZr6pxd9XTd1TdQa.jpg"), VoteAverage: tmdb.NewRating(8.5), Character: "Forrest Gump"},
			{ID: 857, MediaType: tmdb.MediaTypeMovie, Title: "Saving Private Ryan", ReleaseDate: "1998-07-24", PosterPath: strPtr("/uqx37cS8cpHg8U35f9U5IBlrCV3.jpg"), VoteAverage: tmdb.NewRating(8.2), Character: "Captain John H. Miller"},
			{ID: 862, MediaType: tmdb.MediaTypeMovie, Title: "Toy Story", ReleaseDate: "1995-11-22", PosterPath: strPtr("/uXDfjJbdP4ijW5hWSBrPrlKpxab.jpg"), VoteAverage: tmdb.NewRating(8.0), Character: "Woody (voice)"},
			{ID: 516486, MediaType: tmdb.MediaTypeMovie, Title: "Greyhound", ReleaseDate: "2020-06-19", VoteAverage: tmdb.NewRating(7.3), Character: "Commander Ernest Krause"},
			{ID: 4613, MediaType: tmdb.MediaTypeTV, Name: "Band of Brothers", FirstAirDate: "2001-09-09", PosterPath: strPtr("/8JMXquNmdMUy2n2RgW8gfOM0O3l.jpg"), VoteAverage: tmdb.NewRating(8.6), Character: "British Officer"},
			{ID: 1667, MediaType: tmdb.MediaTypeTV, Name: "Saturday Night Live", FirstAirDate: "1975-10-11", Character: "Self - Host"},
		},
		Crew: []tmdb.Credit{
			{ID: 516486, MediaType: tmdb.MediaTypeMovie, Title: "Greyhound", ReleaseDate: "2020-06-19", VoteAverage: tmdb.NewRating(7.3), Job: "Screenplay", Department: "Writing"},
			{ID: 4613, MediaType: tmdb.MediaTypeTV, Name: "Band of Brothers", FirstAirDate: "2001-09-09", VoteAverage: tmdb.NewRating(8.6), Job: "Executive Producer", Department: "Production"},
			{ID: 16997, MediaType: tmdb.MediaTypeTV, Name: "The Pacific", FirstAirDate: "2010-03-14", VoteAverage: tmdb.NewRating(8.0), Job: "Executive Producer", Department: "Production"},
		},
	},
	488: {
		ID: 488,
		Crew: []tmdb.Credit{
			{ID: 857, MediaType: tmdb.MediaTypeMovie, Title: "Saving Private Ryan", ReleaseDate: "1998-07-24", PosterPath: strPtr("/uqx37cS8cpHg8U35f9U5IBlrCV3.jpg"), VoteAverage: tmdb.NewRating(8.2), Job: "Director", Department: "Directing"},
			{ID: 329, MediaType: tmdb.MediaTypeMovie, Title: "Jurassic Park", ReleaseDate: "1993-06-11", PosterPath: strPtr("/oU7Oq2kFAAlGqbU4VoAE36g4hoI.jpg"), VoteAverage: tmdb.NewRating(7.9), Job: "Director", Department: "Directing"},
			{ID: 857, MediaType: tmdb.MediaTypeMovie, Title: "Saving Private Ryan", ReleaseDate: "1998-07-24", VoteAverage: tmdb.NewRating(8.2), Job: "Producer", Department: "Production"},
			{ID: 4613, MediaType: tmdb.MediaTypeTV, Name: "Band of Brothers", FirstAirDate: "2001-09-09", VoteAverage: tmdb.NewRating(8.6), Job: "Executive Producer", Department: "Production"},
		},
	},
	1397778: {ID: 1397778},
}

var mockDetails = map[detailsKey]tmdb.Details{
	{tmdb.MediaTypeMovie, 13}: {
		ID: 13, Title: "Forrest Gump", ReleaseDate: "1994-06-23",
		Overview:     "Un hombre con un coeficiente intelectual bajo vive acontecimientos extraordinarios.",
		PosterPath:   strPtr("/arw2vcBveWOVZr6pxd9XTd1TdQa.jpg"),
		BackdropPath: strPtr("/qdIMHd4sEfJSckfVJfKQvisL02a.jpg"),
		Genres:       []tmdb.Genre{{ID: 35, Name: "Comedia"}, {ID: 18, Name: "Drama"}, {ID: 10749, Name: "Romance"}},
		VoteAverage:  tmdb.NewRating(8.5),
		Videos: &tmdb.VideosResponse{Results: []tmdb.Video{
			{Key: "uPIEn0M8su0", Site: "YouTube", Type: "Teaser", Name: "Teaser"},
			{Key: "bLvqoHBptjg", Site: "YouTube", Type: "Trailer", Name: "Tráiler oficial"},
		}},
	},
	{tmdb.MediaTypeMovie, 857}: {
		ID: 857, Title: "Salvar al soldado Ryan", ReleaseDate: "1998-07-24",
		Overview:    "Durante la Segunda Guerra Mundial, un grupo de soldados busca a un paracaidista.",
		PosterPath:  strPtr("/uqx37cS8cpHg8U35f9U5IBlrCV3.jpg"),
		Genres:      []tmdb.Genre{{ID: 18, Name: "Drama"}, {ID: 36, Name: "Historia"}, {ID: 10752, Name: "Bélica"}},
		VoteAverage: tmdb.NewRating(8.2),
		Videos:      &tmdb.VideosResponse{Results: []tmdb.Video{{Key: "9CiW_DgxCnQ", Site: "YouTube", Type: "Trailer"}}},
	},
	{tmdb.MediaTypeMovie, 516486}: {
		ID: 516486, Title: "Greyhound", ReleaseDate: "2020-06-19",
		Genres:      []tmdb.Genre{{ID: 10752, Name: "Bélica"}},
		VoteAverage: tmdb.NewRating(7.3),
		Videos:      &tmdb.VideosResponse{Results: []tmdb.Video{{Key: "x1", Site: "Vimeo", Type: "Trailer"}}},
	},
	{tmdb.MediaTypeTV, 4613}: {
		ID: 4613, Name: "Hermanos de sangre", FirstAirDate: "2001-09-09",
		Overview:     "La historia de la Easy Company durante la Segunda Guerra Mundial.",
		PosterPath:   strPtr("/8JMXquNmdMUy2n2RgW8gfOM0O3l.jpg"),
		BackdropPath: strPtr("/2yDV0xLyqW88dn5qE7YCRnoYmfy.jpg"),
		Genres:       []tmdb.Genre{{ID: 18, Name: "Drama"}, {ID: 10768, Name: "War & Politics"}},
		VoteAverage:  tmdb.NewRating(8.6),
	},
	{tmdb.MediaTypeTV, 16997}: {
		ID: 16997, Name: "The Pacific", FirstAirDate: "2010-03-14",
	},
}
