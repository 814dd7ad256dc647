package filmography

// PosterShape is the shape every catalog item is rendered with.
const PosterShape = "poster"

// Projector renders credit records as catalog items.
type Projector struct {
	provider     Provider
	placeholders Placeholders
}

// NewProjector creates a catalog projector.
func NewProjector(provider Provider, placeholders Placeholders) *Projector {
	return &Projector{provider: provider, placeholders: placeholders}
}

// Project renders one credit record.
func (p *Projector) Project(c CreditRecord) CatalogItem {
	ref := c.Ref()
	item := CatalogItem{
		ID:          ref.CompositeID(),
		Type:        c.Kind,
		Name:        firstNonEmpty(c.Title, p.placeholders.Untitled),
		PosterShape: PosterShape,
		Description: firstNonEmpty(yearOf(c.ReleaseDate), p.placeholders.NoYear),
		Score:       c.Rating,
		ref:         ref,
	}
	if c.PosterPath != "" {
		item.Poster = stringPtr(p.provider.GetImageURL(c.PosterPath, posterSize))
	}
	return item
}

// ProjectAll renders records in order.
func (p *Projector) ProjectAll(records []CreditRecord) []CatalogItem {
	items := make([]CatalogItem, 0, len(records))
	for _, c := range records {
		items = append(items, p.Project(c))
	}
	return items
}
