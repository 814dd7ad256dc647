package filmography

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/slipstream/filmography/internal/metadata/tmdb"
)

// Namespace prefixes every item id this addon produces.
const Namespace = "tmdb"

// Kind is the addon-facing media type.
type Kind string

const (
	KindFilm   Kind = "movie"
	KindSeries Kind = "series"
)

// Kinds lists the supported kinds in manifest order.
func Kinds() []Kind {
	return []Kind{KindFilm, KindSeries}
}

// ParseKind validates an addon media type.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindFilm, KindSeries:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: unknown media type %q", ErrInvalidID, s)
	}
}

// MediaType maps the kind to the provider's media type.
func (k Kind) MediaType() tmdb.MediaType {
	if k == KindSeries {
		return tmdb.MediaTypeTV
	}
	return tmdb.MediaTypeMovie
}

// KindFromMediaType maps a provider media type to a kind.
// Media types outside movie and tv report false.
func KindFromMediaType(mt tmdb.MediaType) (Kind, bool) {
	switch mt {
	case tmdb.MediaTypeMovie:
		return KindFilm, true
	case tmdb.MediaTypeTV:
		return KindSeries, true
	default:
		return "", false
	}
}

// ItemRef identifies one provider item.
type ItemRef struct {
	Kind     Kind
	RemoteID int
}

// CompositeID renders "<namespace>:<kind>:<remoteId>".
func (r ItemRef) CompositeID() string {
	return Namespace + ":" + string(r.Kind) + ":" + strconv.Itoa(r.RemoteID)
}

// ParseCompositeID is the inverse of ItemRef.CompositeID.
func ParseCompositeID(id string) (ItemRef, error) {
	parts := strings.Split(id, ":")
	if len(parts) != 3 || parts[0] != Namespace {
		return ItemRef{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	kind, err := ParseKind(parts[1])
	if err != nil {
		return ItemRef{}, err
	}

	remoteID, err := strconv.Atoi(parts[2])
	if err != nil || remoteID <= 0 {
		return ItemRef{}, fmt.Errorf("%w: bad remote id in %q", ErrInvalidID, id)
	}

	return ItemRef{Kind: kind, RemoteID: remoteID}, nil
}
