package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hearthwood/site/internal/catalog"
	"github.com/hearthwood/site/internal/models"
	"github.com/hearthwood/site/internal/service"
)

type mockCatalogReader struct {
	QueryFunc  func(ctx context.Context, category, collection, query string, sort catalog.SortOption) ([]models.Product, error)
	GetFunc    func(ctx context.Context, id string) (models.Product, error)
	FacetsFunc func(ctx context.Context) ([]string, []string, error)
}

func (m *mockCatalogReader) Query(ctx context.Context, category, collection, query string, sort catalog.SortOption) ([]models.Product, error) {
	return m.QueryFunc(ctx, category, collection, query, sort)
}
func (m *mockCatalogReader) Get(ctx context.Context, id string) (models.Product, error) {
	return m.GetFunc(ctx, id)
}
func (m *mockCatalogReader) Facets(ctx context.Context) ([]string, []string, error) {
	return m.FacetsFunc(ctx)
}

func TestCatalogList_PassesQueryParams(t *testing.T) {
	var gotCategory, gotCollection, gotQuery string
	var gotSort catalog.SortOption
	h := &CatalogHandler{Catalog: &mockCatalogReader{
		QueryFunc: func(ctx context.Context, category, collection, query string, sort catalog.SortOption) ([]models.Product, error) {
			gotCategory, gotCollection, gotQuery, gotSort = category, collection, query, sort
			return []models.Product{{ID: "p1", Name: "Alder Bench"}}, nil
		},
	}}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/api/products?category=seating&collection=heritage&q=oak&sort=name-a-z", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotCategory != "seating" || gotCollection != "heritage" || gotQuery != "oak" {
		t.Errorf("filter params not forwarded: %q %q %q", gotCategory, gotCollection, gotQuery)
	}
	if gotSort != catalog.SortNameAsc {
		t.Errorf("sort = %q; want %q", gotSort, catalog.SortNameAsc)
	}

	var products []models.Product
	if err := json.NewDecoder(rec.Body).Decode(&products); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Errorf("unexpected products %+v", products)
	}
}

func TestCatalogList_UnknownSortFallsBackToFeatured(t *testing.T) {
	var gotSort catalog.SortOption
	h := &CatalogHandler{Catalog: &mockCatalogReader{
		QueryFunc: func(ctx context.Context, category, collection, query string, sort catalog.SortOption) ([]models.Product, error) {
			gotSort = sort
			return nil, nil
		},
	}}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/api/products?sort=price-low-high", nil))

	if gotSort != catalog.SortFeatured {
		t.Errorf("sort = %q; want %q", gotSort, catalog.SortFeatured)
	}
}

func TestCatalogGet_NotFound(t *testing.T) {
	h := &CatalogHandler{Catalog: &mockCatalogReader{
		GetFunc: func(ctx context.Context, id string) (models.Product, error) {
			return models.Product{}, service.ErrNotFound
		},
	}}

	r := chi.NewRouter()
	r.Get("/api/products/{id}", h.Get)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/products/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestCatalogFacets(t *testing.T) {
	h := &CatalogHandler{Catalog: &mockCatalogReader{
		FacetsFunc: func(ctx context.Context) ([]string, []string, error) {
			return []string{"seating", "tables"}, []string{"heritage"}, nil
		},
	}}

	rec := httptest.NewRecorder()
	h.Facets(rec, httptest.NewRequest("GET", "/api/facets", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var facets map[string][]string
	if err := json.NewDecoder(rec.Body).Decode(&facets); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(facets["categories"]) != 2 || facets["collections"][0] != "heritage" {
		t.Errorf("unexpected facets %v", facets)
	}
}
