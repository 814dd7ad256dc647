package tmdb

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// MediaType is the media type discriminant used by TMDB paths and credit records.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// SearchPersonResponse is the response from TMDB person search.
type SearchPersonResponse struct {
	Page         int            `json:"page"`
	Results      []PersonResult `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// PersonResult is a person from TMDB search results.
type PersonResult struct {
	ID                 int            `json:"id"`
	Name               string         `json:"name"`
	Popularity         float64        `json:"popularity"`
	KnownForDepartment string         `json:"known_for_department"`
	ProfilePath        *string        `json:"profile_path"`
	Adult              bool           `json:"adult"`
	KnownFor           []KnownForItem `json:"known_for"`
}

// KnownForItem is one of the highlighted works attached to a person search result.
type KnownForItem struct {
	ID        int       `json:"id"`
	MediaType MediaType `json:"media_type"`
}

// CombinedCreditsResponse is the response from /person/{id}/combined_credits.
type CombinedCreditsResponse struct {
	ID   int      `json:"id"`
	Cast []Credit `json:"cast"`
	Crew []Credit `json:"crew"`
}

// Credit is a single cast or crew entry. Movies fill Title/ReleaseDate,
// series fill Name/FirstAirDate.
type Credit struct {
	ID           int       `json:"id"`
	MediaType    MediaType `json:"media_type"`
	Title        string    `json:"title,omitempty"`
	Name         string    `json:"name,omitempty"`
	ReleaseDate  string    `json:"release_date,omitempty"`
	FirstAirDate string    `json:"first_air_date,omitempty"`
	Overview     string    `json:"overview,omitempty"`
	PosterPath   *string   `json:"poster_path"`
	BackdropPath *string   `json:"backdrop_path"`
	VoteAverage  Rating    `json:"vote_average"`
	VoteCount    int       `json:"vote_count"`
	Popularity   float64   `json:"popularity"`
	Character    string    `json:"character,omitempty"`
	Job          string    `json:"job,omitempty"`
	Department   string    `json:"department,omitempty"`
}

// Details is the movie or TV detail record with appended videos.
type Details struct {
	ID           int             `json:"id"`
	Title        string          `json:"title,omitempty"`
	Name         string          `json:"name,omitempty"`
	Overview     string          `json:"overview,omitempty"`
	ReleaseDate  string          `json:"release_date,omitempty"`
	FirstAirDate string          `json:"first_air_date,omitempty"`
	PosterPath   *string         `json:"poster_path"`
	BackdropPath *string         `json:"backdrop_path"`
	Genres       []Genre         `json:"genres"`
	VoteAverage  Rating          `json:"vote_average"`
	VoteCount    int             `json:"vote_count"`
	ImdbID       string          `json:"imdb_id,omitempty"`
	Videos       *VideosResponse `json:"videos,omitempty"`
}

// Genre represents a genre from TMDB.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// VideosResponse is the appended videos block of a detail record.
type VideosResponse struct {
	Results []Video `json:"results"`
}

// Video represents a video (trailer, teaser, etc.) from TMDB.
type Video struct {
	Key      string `json:"key"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Name     string `json:"name"`
	Official bool   `json:"official"`
}

// ErrorResponse is an error from the TMDB API.
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}

// Rating is an optional numeric score. Anything other than a JSON number
// decodes as an absent rating instead of failing the whole response.
type Rating struct {
	Value float64
	Valid bool
}

// NewRating returns a present rating.
func NewRating(v float64) Rating {
	return Rating{Value: v, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Rating) UnmarshalJSON(data []byte) error {
	*r = Rating{}
	v, err := strconv.ParseFloat(string(bytes.TrimSpace(data)), 64)
	if err != nil {
		return nil
	}
	*r = NewRating(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// Or returns the rating value, or fallback when absent.
func (r Rating) Or(fallback float64) float64 {
	if !r.Valid {
		return fallback
	}
	return r.Value
}
