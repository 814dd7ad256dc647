package filmography

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slipstream/filmography/internal/metadata/mock"
	"github.com/slipstream/filmography/internal/metadata/tmdb"
)

func tomHanksProvider() *fakeProvider {
	return &fakeProvider{
		people: []tmdb.PersonResult{{ID: 31, Name: "Tom Hanks", Popularity: 50}},
		credits: map[int]*tmdb.CombinedCreditsResponse{
			31: {
				ID: 31,
				Cast: []tmdb.Credit{
					movieCredit(569094, "Finch", 7.0),
					movieCredit(13, "Forrest Gump", 8.5),
				},
			},
		},
		details: map[ItemRef]*tmdb.Details{},
	}
}

func TestService_Catalog_TomHanks(t *testing.T) {
	svc := NewService(tomHanksProvider(), DefaultOptions(), zerolog.Nop())

	items, err := svc.Catalog(context.Background(), KindFilm, "Tom Hanks")
	require.NoError(t, err)
	assert.Equal(t, []string{"tmdb:movie:13", "tmdb:movie:569094"}, itemIDs(items))

	series, err := svc.Catalog(context.Background(), KindSeries, "Tom Hanks")
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestService_Catalog_TruncatesAfterRanking(t *testing.T) {
	cast := make([]tmdb.Credit, 0, 150)
	for i := 1; i <= 150; i++ {
		// Ascending ratings, so the best items come last in provider order.
		cast = append(cast, movieCredit(i, fmt.Sprintf("Film %d", i), float64(i)/20))
	}
	provider := &fakeProvider{
		people:  []tmdb.PersonResult{{ID: 1, Name: "Prolific"}},
		credits: map[int]*tmdb.CombinedCreditsResponse{1: {Cast: cast}},
	}
	svc := NewService(provider, DefaultOptions(), zerolog.Nop())

	items, err := svc.Catalog(context.Background(), KindFilm, "Prolific")
	require.NoError(t, err)
	require.Len(t, items, 100)
	assert.Equal(t, "tmdb:movie:150", items[0].ID)
	assert.Equal(t, "tmdb:movie:51", items[99].ID)
}

func TestService_Catalog_Errors(t *testing.T) {
	svc := NewService(&fakeProvider{}, DefaultOptions(), zerolog.Nop())

	_, err := svc.Catalog(context.Background(), KindFilm, "  ")
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = svc.Catalog(context.Background(), KindFilm, "ghost")
	assert.ErrorIs(t, err, ErrPersonNotFound)

	provider := tomHanksProvider()
	provider.creditsErr = errTransport
	_, err = NewService(provider, DefaultOptions(), zerolog.Nop()).Catalog(context.Background(), KindFilm, "Tom")
	assert.ErrorIs(t, err, ErrRemoteFetch)
}

func TestService_Catalog_EagerEnrichmentKeepsRankOrder(t *testing.T) {
	provider := tomHanksProvider()
	provider.credits[31].Cast = append(provider.credits[31].Cast, movieCredit(99, "Missing", 5.0))
	provider.details = map[ItemRef]*tmdb.Details{
		{Kind: KindFilm, RemoteID: 13}: {
			ID: 13, Title: "Forrest Gump",
			Genres:       []tmdb.Genre{{Name: "Drama"}},
			BackdropPath: strPtr("/gump-bg.jpg"),
		},
		{Kind: KindFilm, RemoteID: 569094}: {
			ID: 569094, Title: "Finch", Genres: []tmdb.Genre{{Name: "Ciencia ficción"}},
		},
	}
	// The top-ranked item finishes last.
	provider.delay = map[ItemRef]time.Duration{{Kind: KindFilm, RemoteID: 13}: 30 * time.Millisecond}

	opts := DefaultOptions()
	opts.EagerEnrichment = true
	opts.EnrichmentConcurrency = 3
	svc := NewService(provider, opts, zerolog.Nop())

	items, err := svc.Catalog(context.Background(), KindFilm, "Tom Hanks")
	require.NoError(t, err)
	assert.Equal(t, []string{"tmdb:movie:13", "tmdb:movie:569094", "tmdb:movie:99"}, itemIDs(items))

	assert.Equal(t, []string{"Drama"}, items[0].Genres)
	require.NotNil(t, items[0].Background)
	assert.Equal(t, "https://img.test/w1280/gump-bg.jpg", *items[0].Background)
	assert.Equal(t, []string{"Ciencia ficción"}, items[1].Genres)
	assert.Nil(t, items[2].Genres)
	assert.Equal(t, "Sin año", items[2].Description)
	assert.EqualValues(t, 3, provider.detailCalls.Load())
}

func TestService_Meta(t *testing.T) {
	svc := NewService(mock.NewTMDBClient(), DefaultOptions(), zerolog.Nop())

	record, err := svc.Meta(context.Background(), KindFilm, "tmdb:movie:13")
	require.NoError(t, err)
	assert.Equal(t, "tmdb:movie:13", record.ID)
	assert.Equal(t, KindFilm, record.Type)
	assert.Equal(t, "Forrest Gump", record.Name)
	assert.Equal(t, "1994", record.ReleaseInfo)
	assert.Equal(t, []string{"Comedia", "Drama", "Romance"}, record.Genres)
	assert.Equal(t, "8.5", record.IMDbRating)
	require.NotNil(t, record.Poster)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/arw2vcBveWOVZr6pxd9XTd1TdQa.jpg", *record.Poster)
	require.NotNil(t, record.Background)
	assert.Equal(t, "https://image.tmdb.org/t/p/w1280/qdIMHd4sEfJSckfVJfKQvisL02a.jpg", *record.Background)

	// The teaser is listed first but only trailers qualify.
	require.Len(t, record.Videos, 1)
	assert.Equal(t, Video{
		ID:    "yt:bLvqoHBptjg",
		Title: "Trailer",
		URL:   "https://www.youtube.com/watch?v=bLvqoHBptjg",
	}, record.Videos[0])
}

func TestService_Meta_SeriesWithoutVideos(t *testing.T) {
	svc := NewService(mock.NewTMDBClient(), DefaultOptions(), zerolog.Nop())

	record, err := svc.Meta(context.Background(), KindSeries, "tmdb:series:4613")
	require.NoError(t, err)
	require.NotNil(t, record.Videos)
	assert.Empty(t, record.Videos)

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"videos":[]`)
}

func TestService_Meta_Fallbacks(t *testing.T) {
	svc := NewService(mock.NewTMDBClient(), DefaultOptions(), zerolog.Nop())

	record, err := svc.Meta(context.Background(), KindSeries, "tmdb:series:16997")
	require.NoError(t, err)
	assert.Equal(t, "The Pacific", record.Name)
	assert.Equal(t, "2010", record.ReleaseInfo)
	assert.Equal(t, "Sin descripción", record.Description)
	assert.Nil(t, record.Poster)
	assert.Nil(t, record.Background)
	assert.NotNil(t, record.Genres)
	assert.Empty(t, record.Genres)
	assert.Empty(t, record.IMDbRating)

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "imdbRating")
	assert.Contains(t, string(data), `"genres":[]`)
}

func TestService_Meta_RatingFormatting(t *testing.T) {
	tests := []struct {
		rating tmdb.Rating
		want   string
	}{
		{tmdb.NewRating(7), "7.0"},
		{tmdb.NewRating(8.26), "8.3"},
		{tmdb.NewRating(0), "0.0"},
		{tmdb.Rating{}, ""},
	}

	for _, tt := range tests {
		provider := &fakeProvider{details: map[ItemRef]*tmdb.Details{
			{Kind: KindFilm, RemoteID: 1}: {ID: 1, Title: "Rated", VoteAverage: tt.rating},
		}}
		record, err := NewService(provider, DefaultOptions(), zerolog.Nop()).Meta(context.Background(), KindFilm, "tmdb:movie:1")
		require.NoError(t, err)
		assert.Equal(t, tt.want, record.IMDbRating)
	}
}

func TestService_Meta_InvalidIDs(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewService(provider, DefaultOptions(), zerolog.Nop())

	for _, tc := range []struct {
		kind Kind
		id   string
	}{
		{KindFilm, "tt0109830"},
		{KindFilm, "tmdb:series:4613"},
		{KindSeries, "tmdb:movie:13"},
		{KindFilm, "tmdb:movie:x"},
	} {
		_, err := svc.Meta(context.Background(), tc.kind, tc.id)
		assert.ErrorIs(t, err, ErrInvalidID, tc.id)
	}
	assert.Zero(t, provider.detailCalls.Load())
}

func TestService_Meta_RemoteFailure(t *testing.T) {
	svc := NewService(mock.NewTMDBClient(), DefaultOptions(), zerolog.Nop())

	_, err := svc.Meta(context.Background(), KindFilm, "tmdb:movie:424242")
	assert.ErrorIs(t, err, ErrRemoteFetch)
	assert.ErrorIs(t, err, tmdb.ErrNotFound)
}

func TestService_Streams(t *testing.T) {
	svc := NewService(mock.NewTMDBClient(), DefaultOptions(), zerolog.Nop())
	ctx := context.Background()

	streams, err := svc.Streams(ctx, KindFilm, "tmdb:movie:857")
	require.NoError(t, err)
	assert.Equal(t, []Stream{{
		Name:  "YouTube",
		Title: "Trailer",
		URL:   "https://www.youtube.com/watch?v=9CiW_DgxCnQ",
	}}, streams)

	// Vimeo trailers are not YouTube trailers.
	streams, err = svc.Streams(ctx, KindFilm, "tmdb:movie:516486")
	require.NoError(t, err)
	assert.NotNil(t, streams)
	assert.Empty(t, streams)

	_, err = svc.Streams(ctx, KindSeries, "bogus")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestFindTrailer(t *testing.T) {
	_, ok := FindTrailer(nil)
	assert.False(t, ok)

	key, ok := FindTrailer(&tmdb.VideosResponse{Results: []tmdb.Video{
		{Key: "a", Site: "Vimeo", Type: "Trailer"},
		{Key: "b", Site: "YouTube", Type: "Clip"},
		{Key: "c", Site: "YouTube", Type: "Trailer"},
		{Key: "d", Site: "YouTube", Type: "Trailer"},
	}})
	assert.True(t, ok)
	assert.Equal(t, "c", key)

	assert.Empty(t, TrailerStreams(nil))
}

func TestService_MockPipeline(t *testing.T) {
	svc := NewService(mock.NewTMDBClient(), DefaultOptions(), zerolog.Nop())
	ctx := context.Background()

	films, err := svc.Catalog(ctx, KindFilm, "tom hanks")
	require.NoError(t, err)
	assert.Equal(t, []string{"tmdb:movie:13", "tmdb:movie:857", "tmdb:movie:862", "tmdb:movie:516486"}, itemIDs(films))
	assert.Nil(t, films[3].Poster)

	series, err := svc.Catalog(ctx, KindSeries, "tom hanks")
	require.NoError(t, err)
	assert.Equal(t, []string{"tmdb:series:4613", "tmdb:series:16997", "tmdb:series:1667"}, itemIDs(series))
	assert.Equal(t, "Band of Brothers", series[0].Name)
	assert.Equal(t, "1975", series[2].Description)
	assert.Zero(t, series[2].Score)

	directed, err := svc.Catalog(ctx, KindFilm, "spielberg")
	require.NoError(t, err)
	assert.Equal(t, []string{"tmdb:movie:857", "tmdb:movie:329"}, itemIDs(directed))
}
