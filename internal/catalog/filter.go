// Package catalog implements the pure product filter/sort engine and the
// derived filter facets. Nothing here performs I/O or mutates its input,
// so every function is safe to call on each render of the catalog page.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/hearthwood/site/internal/models"
)

// All is the sentinel filter value matching every category or collection.
const All = "all"

// SortOption selects the ordering applied after filtering.
type SortOption string

const (
	// SortFeatured orders by ascending product id. This stands in for a
	// curated order; see DESIGN.md before relying on it editorially.
	SortFeatured SortOption = "featured"
	// SortNameAsc orders by locale-aware ascending name.
	SortNameAsc SortOption = "name-a-z"
	// SortNameDesc orders by locale-aware descending name.
	SortNameDesc SortOption = "name-z-a"
)

// ParseSort maps a raw sort value to a SortOption, defaulting to
// SortFeatured for anything unrecognized.
func ParseSort(raw string) SortOption {
	switch SortOption(raw) {
	case SortNameAsc, SortNameDesc:
		return SortOption(raw)
	default:
		return SortFeatured
	}
}

// FilterAndSort returns the ordered subset of products matching the given
// category, collection and free-text query, sorted per the sort option.
// All predicates are AND-combined. The input slice is never modified; the
// result is a fresh slice, array-equal across calls with identical inputs.
func FilterAndSort(products []models.Product, category, collection, query string, sortOpt SortOption) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != All && p.Category != category {
			continue
		}
		if collection != All && p.Collection != collection {
			continue
		}
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		out = append(out, p)
	}

	switch sortOpt {
	case SortNameAsc:
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) < 0
		})
	case SortNameDesc:
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) > 0
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ID < out[j].ID
		})
	}

	return out
}

// matchesQuery reports whether the lowercased query is a substring of the
// product's name, description, category, or collection. The collection
// check is skipped when the product has no collection value.
func matchesQuery(p models.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Category), q) {
		return true
	}
	if p.Collection != "" && strings.Contains(strings.ToLower(p.Collection), q) {
		return true
	}
	return false
}

// Categories projects the de-duplicated category facet from the product
// list, in first-seen order.
func Categories(products []models.Product) []string {
	return facet(products, func(p models.Product) string { return p.Category })
}

// Collections projects the de-duplicated collection facet from the product
// list, in first-seen order. Products without a collection are skipped.
func Collections(products []models.Product) []string {
	return facet(products, func(p models.Product) string { return p.Collection })
}

// facet collects distinct non-empty values in first-seen order. Order is
// stable across renders as long as the input order is stable.
func facet(products []models.Product, value func(models.Product) string) []string {
	seen := make(map[string]bool, len(products))
	out := []string{}
	for _, p := range products {
		v := value(p)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
