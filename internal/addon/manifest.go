// Package addon serves the Stremio addon protocol on top of the filmography service.
package addon

import (
	"github.com/slipstream/filmography/internal/config"
	"github.com/slipstream/filmography/internal/filmography"
)

// Resource names advertised in the manifest.
const (
	ResourceCatalog = "catalog"
	ResourceMeta    = "meta"
	ResourceStream  = "stream"
)

const extraSearch = "search"

// Manifest describes the addon to Stremio clients.
type Manifest struct {
	ID          string              `json:"id"`
	Version     string              `json:"version"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Resources   []string            `json:"resources"`
	Types       []filmography.Kind  `json:"types"`
	IDPrefixes  []string            `json:"idPrefixes"`
	Catalogs    []CatalogDescriptor `json:"catalogs"`
}

// CatalogDescriptor declares one searchable catalog.
type CatalogDescriptor struct {
	Type           filmography.Kind `json:"type"`
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Extra          []CatalogExtra   `json:"extra"`
	ExtraSupported []string         `json:"extraSupported"`
}

// CatalogExtra declares an extra property a catalog accepts.
type CatalogExtra struct {
	Name       string `json:"name"`
	IsRequired bool   `json:"isRequired"`
}

// Capabilities selects which resources are served and how catalog items are shaped.
type Capabilities struct {
	Meta          bool
	Stream        bool
	MinimalSchema bool
}

// CapabilitiesFor maps a configured profile to its capabilities.
func CapabilitiesFor(profile string) Capabilities {
	if profile == config.ProfileCatalog {
		return Capabilities{MinimalSchema: true}
	}
	return Capabilities{Meta: true, Stream: true}
}

// Resources lists the manifest resources for the capabilities.
func (c Capabilities) Resources() []string {
	resources := []string{ResourceCatalog}
	if c.Meta {
		resources = append(resources, ResourceMeta)
	}
	if c.Stream {
		resources = append(resources, ResourceStream)
	}
	return resources
}

// NewManifest builds the manifest served for the configured addon.
func NewManifest(cfg config.AddonConfig) Manifest {
	caps := CapabilitiesFor(cfg.Profile)

	names := map[filmography.Kind]string{
		filmography.KindFilm:   "Películas",
		filmography.KindSeries: "Series",
	}

	catalogs := make([]CatalogDescriptor, 0, len(filmography.Kinds()))
	for _, kind := range filmography.Kinds() {
		catalogs = append(catalogs, CatalogDescriptor{
			Type:           kind,
			ID:             catalogID(caps, kind),
			Name:           names[kind],
			Extra:          []CatalogExtra{{Name: extraSearch}},
			ExtraSupported: []string{extraSearch},
		})
	}

	return Manifest{
		ID:          cfg.ID,
		Version:     cfg.Version,
		Name:        cfg.Name,
		Description: cfg.Description,
		Resources:   caps.Resources(),
		Types:       filmography.Kinds(),
		IDPrefixes:  []string{filmography.Namespace},
		Catalogs:    catalogs,
	}
}

// catalogID keeps the catalog ids existing installs were created with.
func catalogID(caps Capabilities, kind filmography.Kind) string {
	if !caps.MinimalSchema {
		return "people-filmography"
	}
	if kind == filmography.KindSeries {
		return "people-filter-series"
	}
	return "people-filter-movies"
}
