package http

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hearthwood/site/internal/models"
)

// ContentService defines the content operations the handlers require.
type ContentService interface {
	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
	CreateTestimonial(ctx context.Context, t models.Testimonial) (models.Testimonial, error)
	UpdateTestimonial(ctx context.Context, t models.Testimonial) error
	DeleteTestimonial(ctx context.Context, id string) error

	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, p models.Project) (models.Project, error)
	UpdateProject(ctx context.Context, p models.Project) error
	DeleteProject(ctx context.Context, id string) error

	ListFAQs(ctx context.Context) ([]models.FAQ, error)
	CreateFAQ(ctx context.Context, f models.FAQ) (models.FAQ, error)
	UpdateFAQ(ctx context.Context, f models.FAQ) error
	DeleteFAQ(ctx context.Context, id string) error

	ListHeroAssets(ctx context.Context) ([]models.HeroAsset, error)
	CreateHeroAsset(ctx context.Context, h models.HeroAsset) (models.HeroAsset, error)
	DeleteHeroAsset(ctx context.Context, id string) error

	GetCompanyInfo(ctx context.Context) (models.CompanyInfo, error)
	SaveCompanyInfo(ctx context.Context, c models.CompanyInfo) error

	SubmitContact(ctx context.Context, remoteAddr string, m models.ContactMessage) error
}

// MediaStore uploads hero media and returns the public URL.
type MediaStore interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// ContentHandler serves the public content reads, the contact form, and
// the protected CMS content API.
type ContentHandler struct {
	Content ContentService
	Media   MediaStore
}

// --- public reads ---

// Testimonials handles GET /api/testimonials.
func (h *ContentHandler) Testimonials(w http.ResponseWriter, r *http.Request) {
	out, err := h.Content.ListTestimonials(r.Context())
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Projects handles GET /api/projects.
func (h *ContentHandler) Projects(w http.ResponseWriter, r *http.Request) {
	out, err := h.Content.ListProjects(r.Context())
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// FAQs handles GET /api/faqs.
func (h *ContentHandler) FAQs(w http.ResponseWriter, r *http.Request) {
	out, err := h.Content.ListFAQs(r.Context())
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Hero handles GET /api/hero.
func (h *ContentHandler) Hero(w http.ResponseWriter, r *http.Request) {
	out, err := h.Content.ListHeroAssets(r.Context())
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Company handles GET /api/company.
func (h *ContentHandler) Company(w http.ResponseWriter, r *http.Request) {
	out, err := h.Content.GetCompanyInfo(r.Context())
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Contact handles POST /api/contact, rate limited per remote address.
func (h *ContentHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	err = h.Content.SubmitContact(r.Context(), host, models.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
	})
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "received"})
}

// --- protected CMS writes ---

type testimonialInput struct {
	Author string `json:"author"`
	Role   string `json:"role"`
	Quote  string `json:"quote"`
	Rating int    `json:"rating"`
}

func (in testimonialInput) toModel(id string) models.Testimonial {
	return models.Testimonial{ID: id, Author: in.Author, Role: in.Role, Quote: in.Quote, Rating: in.Rating}
}

// CreateTestimonial handles POST /api/protected/testimonials.
func (h *ContentHandler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var in testimonialInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	created, err := h.Content.CreateTestimonial(r.Context(), in.toModel(""))
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateTestimonial handles PUT /api/protected/testimonials/{id}.
func (h *ContentHandler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	var in testimonialInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Content.UpdateTestimonial(r.Context(), in.toModel(chi.URLParam(r, "id"))); err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DeleteTestimonial handles DELETE /api/protected/testimonials/{id}.
func (h *ContentHandler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	if err := h.Content.DeleteTestimonial(r.Context(), chi.URLParam(r, "id")); err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type projectInput struct {
	Title       string   `json:"title"`
	Client      string   `json:"client"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Year        int      `json:"year"`
}

func (in projectInput) toModel(id string) models.Project {
	return models.Project{ID: id, Title: in.Title, Client: in.Client, Description: in.Description, Images: in.Images, Year: in.Year}
}

// CreateProject handles POST /api/protected/projects.
func (h *ContentHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var in projectInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	created, err := h.Content.CreateProject(r.Context(), in.toModel(""))
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateProject handles PUT /api/protected/projects/{id}.
func (h *ContentHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var in projectInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Content.UpdateProject(r.Context(), in.toModel(chi.URLParam(r, "id"))); err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DeleteProject handles DELETE /api/protected/projects/{id}.
func (h *ContentHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.Content.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type faqInput struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	SortOrder int    `json:"sortOrder"`
}

func (in faqInput) toModel(id string) models.FAQ {
	return models.FAQ{ID: id, Question: in.Question, Answer: in.Answer, SortOrder: in.SortOrder}
}

// CreateFAQ handles POST /api/protected/faqs.
func (h *ContentHandler) CreateFAQ(w http.ResponseWriter, r *http.Request) {
	var in faqInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	created, err := h.Content.CreateFAQ(r.Context(), in.toModel(""))
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateFAQ handles PUT /api/protected/faqs/{id}.
func (h *ContentHandler) UpdateFAQ(w http.ResponseWriter, r *http.Request) {
	var in faqInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Content.UpdateFAQ(r.Context(), in.toModel(chi.URLParam(r, "id"))); err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DeleteFAQ handles DELETE /api/protected/faqs/{id}.
func (h *ContentHandler) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	if err := h.Content.DeleteFAQ(r.Context(), chi.URLParam(r, "id")); err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// UploadHero handles POST /api/protected/hero/upload. The multipart file
// is streamed to object storage and the resulting asset row is recorded.
func (h *ContentHandler) UploadHero(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	kind := "image"
	if strings.HasPrefix(contentType, "video/") {
		kind = "video"
	}

	url, err := h.Media.Save(r.Context(), header.Filename, contentType, file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "upload failed")
		return
	}

	created, err := h.Content.CreateHeroAsset(r.Context(), models.HeroAsset{
		Title: r.FormValue("title"),
		Kind:  kind,
		URL:   url,
	})
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// DeleteHero handles DELETE /api/protected/hero/{id}.
func (h *ContentHandler) DeleteHero(w http.ResponseWriter, r *http.Request) {
	if err := h.Content.DeleteHeroAsset(r.Context(), chi.URLParam(r, "id")); err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SaveCompany handles PUT /api/protected/company.
func (h *ContentHandler) SaveCompany(w http.ResponseWriter, r *http.Request) {
	var in models.CompanyInfo
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Content.SaveCompanyInfo(r.Context(), in); err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
