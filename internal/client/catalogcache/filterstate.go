package catalogcache

import (
	"github.com/hearthwood/site/internal/catalog"
	"github.com/hearthwood/site/internal/models"
)

// FilterState holds the catalog page's ephemeral UI filter selections.
// It is initialized to defaults on page mount, mutated by interaction, and
// reset by the explicit reset action; it is never persisted.
type FilterState struct {
	SelectedCategory   string
	SelectedCollection string
	SearchQuery        string
	Sort               catalog.SortOption
}

// NewFilterState returns the default filter state: everything visible,
// featured ordering.
func NewFilterState() FilterState {
	return FilterState{
		SelectedCategory:   catalog.All,
		SelectedCollection: catalog.All,
		SearchQuery:        "",
		Sort:               catalog.SortFeatured,
	}
}

// Reset restores the defaults in place.
func (f *FilterState) Reset() {
	*f = NewFilterState()
}

// Apply projects the visible subset from a cache snapshot. The result is
// always a pure function of (snapshot, state); it never mutates either.
func (f FilterState) Apply(snap Snapshot) []models.Product {
	return catalog.FilterAndSort(snap.Products, f.SelectedCategory, f.SelectedCollection, f.SearchQuery, f.Sort)
}
