package filmography

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/slipstream/filmography/internal/metadata/tmdb"
)

var errTransport = errors.New("connection reset")

// fakeProvider is an in-memory provider with call counters.
type fakeProvider struct {
	people     []tmdb.PersonResult
	credits    map[int]*tmdb.CombinedCreditsResponse
	details    map[ItemRef]*tmdb.Details
	searchErr  error
	creditsErr error
	detailErr  map[ItemRef]error
	delay      map[ItemRef]time.Duration

	searchCalls  atomic.Int32
	creditsCalls atomic.Int32
	detailCalls  atomic.Int32

	mu        sync.Mutex
	lastQuery string
}

func (f *fakeProvider) SearchPerson(ctx context.Context, query string) ([]tmdb.PersonResult, error) {
	f.searchCalls.Add(1)
	f.mu.Lock()
	f.lastQuery = query
	f.mu.Unlock()
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.people, nil
}

func (f *fakeProvider) GetCombinedCredits(ctx context.Context, personID int) (*tmdb.CombinedCreditsResponse, error) {
	f.creditsCalls.Add(1)
	if f.creditsErr != nil {
		return nil, f.creditsErr
	}
	c, ok := f.credits[personID]
	if !ok {
		return nil, tmdb.ErrNotFound
	}
	return c, nil
}

func (f *fakeProvider) GetDetails(ctx context.Context, mediaType tmdb.MediaType, id int) (*tmdb.Details, error) {
	f.detailCalls.Add(1)
	kind, _ := KindFromMediaType(mediaType)
	ref := ItemRef{Kind: kind, RemoteID: id}
	if d, ok := f.delay[ref]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := f.detailErr[ref]; ok {
		return nil, err
	}
	d, ok := f.details[ref]
	if !ok {
		return nil, tmdb.ErrNotFound
	}
	return d, nil
}

func (f *fakeProvider) GetImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return "https://img.test/" + size + path
}

func strPtr(s string) *string { return &s }

func movieCredit(id int, title string, rating float64) tmdb.Credit {
	return tmdb.Credit{ID: id, MediaType: tmdb.MediaTypeMovie, Title: title, VoteAverage: tmdb.NewRating(rating)}
}

func tvCredit(id int, name string, rating float64) tmdb.Credit {
	return tmdb.Credit{ID: id, MediaType: tmdb.MediaTypeTV, Name: name, VoteAverage: tmdb.NewRating(rating)}
}

func remoteIDs(records []CreditRecord) []int {
	ids := make([]int, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.RemoteID)
	}
	return ids
}

func itemIDs(items []CatalogItem) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}
