package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hearthwood/site/internal/models"
	"github.com/hearthwood/site/internal/service"
)

// CatalogAdmin defines the write operations the admin product handlers
// require.
type CatalogAdmin interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, p models.Product) (models.Product, error)
	Update(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, id string) error
	SetFeatured(ctx context.Context, id string, featured bool) error
}

// AdminProductHandler serves the protected product CRUD API.
type AdminProductHandler struct {
	Catalog CatalogAdmin
}

// productInput is the schema-validated admin payload for creating or
// updating a product. Decoding produces a typed record before any business
// logic runs.
type productInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Collection  string   `json:"collection"`
	Images      []string `json:"images"`
	Features    []string `json:"features"`
	Colors      []string `json:"colors"`
	Featured    bool     `json:"featured"`
}

func (in productInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return errors.New("category is required")
	}
	if len(in.Images) == 0 {
		return errors.New("at least one image is required")
	}
	return nil
}

func (in productInput) toModel(id string) models.Product {
	return models.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Collection:  in.Collection,
		Images:      in.Images,
		Features:    in.Features,
		Colors:      in.Colors,
		Featured:    in.Featured,
	}
}

// mapServiceError translates service error kinds into HTTP responses.
func mapServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "too many requests")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// List handles GET /api/protected/products.
func (h *AdminProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.List(r.Context())
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Create handles POST /api/protected/products.
func (h *AdminProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := in.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.Catalog.Create(r.Context(), in.toModel(""))
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/protected/products/{id}.
func (h *AdminProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := in.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Catalog.Update(r.Context(), in.toModel(chi.URLParam(r, "id"))); err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Delete handles DELETE /api/protected/products/{id}.
func (h *AdminProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Feature handles PATCH /api/protected/products/{id}/featured with a body
// of {"featured": bool}.
func (h *AdminProductHandler) Feature(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Featured bool `json:"featured"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.Catalog.SetFeatured(r.Context(), chi.URLParam(r, "id"), in.Featured); err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
