package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hearthwood/site/internal/catalog"
	"github.com/hearthwood/site/internal/models"
	"github.com/hearthwood/site/internal/service"
)

// CatalogReader defines the read operations the public catalog handlers
// require.
type CatalogReader interface {
	Query(ctx context.Context, category, collection, query string, sort catalog.SortOption) ([]models.Product, error)
	Get(ctx context.Context, id string) (models.Product, error)
	Facets(ctx context.Context) (categories, collections []string, err error)
}

// CatalogHandler serves the public catalog read API.
type CatalogHandler struct {
	Catalog CatalogReader
}

// List handles GET /api/products. Filter and sort parameters are optional;
// with none present the full list is returned in featured order.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := h.Catalog.Query(
		r.Context(),
		q.Get("category"),
		q.Get("collection"),
		q.Get("q"),
		catalog.ParseSort(q.Get("sort")),
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id}.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.Catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Facets handles GET /api/facets, returning the derived category and
// collection lists for filter UI.
func (h *CatalogHandler) Facets(w http.ResponseWriter, r *http.Request) {
	categories, collections, err := h.Catalog.Facets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{
		"categories":  categories,
		"collections": collections,
	})
}
