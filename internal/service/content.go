package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hearthwood/site/internal/models"
)

// ContentRepository defines the persistence operations required by the
// content service.
type ContentRepository interface {
	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
	CreateTestimonial(ctx context.Context, t models.Testimonial) error
	UpdateTestimonial(ctx context.Context, t models.Testimonial) error
	DeleteTestimonial(ctx context.Context, id string) error

	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, p models.Project) error
	UpdateProject(ctx context.Context, p models.Project) error
	DeleteProject(ctx context.Context, id string) error

	ListFAQs(ctx context.Context) ([]models.FAQ, error)
	CreateFAQ(ctx context.Context, f models.FAQ) error
	UpdateFAQ(ctx context.Context, f models.FAQ) error
	DeleteFAQ(ctx context.Context, id string) error

	ListHeroAssets(ctx context.Context) ([]models.HeroAsset, error)
	CreateHeroAsset(ctx context.Context, h models.HeroAsset) error
	DeleteHeroAsset(ctx context.Context, id string) error

	GetCompanyInfo(ctx context.Context) (models.CompanyInfo, error)
	UpsertCompanyInfo(ctx context.Context, c models.CompanyInfo) error

	CreateContactMessage(ctx context.Context, m models.ContactMessage) error
}

// ContentService implements CMS content management and the public
// contact-form submission path.
type ContentService struct {
	repo    ContentRepository
	limiter WindowLimiter
}

// NewContentService constructs a ContentService. limiter gates contact-form
// submissions per remote address.
func NewContentService(repo ContentRepository, limiter WindowLimiter) *ContentService {
	return &ContentService{repo: repo, limiter: limiter}
}

func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// ListTestimonials returns all testimonials, newest first.
func (s *ContentService) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return s.repo.ListTestimonials(ctx)
}

// CreateTestimonial validates and inserts a testimonial.
func (s *ContentService) CreateTestimonial(ctx context.Context, t models.Testimonial) (models.Testimonial, error) {
	if strings.TrimSpace(t.Author) == "" || strings.TrimSpace(t.Quote) == "" {
		return models.Testimonial{}, fmt.Errorf("%w: author and quote are required", ErrInvalidInput)
	}
	if t.Rating < 1 || t.Rating > 5 {
		return models.Testimonial{}, fmt.Errorf("%w: rating must be 1-5", ErrInvalidInput)
	}
	t.ID = uuid.NewString()
	if err := s.repo.CreateTestimonial(ctx, t); err != nil {
		return models.Testimonial{}, fmt.Errorf("create testimonial: %w", err)
	}
	return t, nil
}

// UpdateTestimonial validates and replaces a testimonial.
func (s *ContentService) UpdateTestimonial(ctx context.Context, t models.Testimonial) error {
	if t.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if t.Rating < 1 || t.Rating > 5 {
		return fmt.Errorf("%w: rating must be 1-5", ErrInvalidInput)
	}
	return mapNoRows(s.repo.UpdateTestimonial(ctx, t))
}

// DeleteTestimonial removes a testimonial by id.
func (s *ContentService) DeleteTestimonial(ctx context.Context, id string) error {
	return mapNoRows(s.repo.DeleteTestimonial(ctx, id))
}

// ListProjects returns all portfolio projects.
func (s *ContentService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.repo.ListProjects(ctx)
}

// CreateProject validates and inserts a portfolio project.
func (s *ContentService) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	if strings.TrimSpace(p.Title) == "" {
		return models.Project{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	p.ID = uuid.NewString()
	if err := s.repo.CreateProject(ctx, p); err != nil {
		return models.Project{}, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

// UpdateProject validates and replaces a portfolio project.
func (s *ContentService) UpdateProject(ctx context.Context, p models.Project) error {
	if p.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return mapNoRows(s.repo.UpdateProject(ctx, p))
}

// DeleteProject removes a portfolio project by id.
func (s *ContentService) DeleteProject(ctx context.Context, id string) error {
	return mapNoRows(s.repo.DeleteProject(ctx, id))
}

// ListFAQs returns all FAQ entries in display order.
func (s *ContentService) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	return s.repo.ListFAQs(ctx)
}

// CreateFAQ validates and inserts an FAQ entry.
func (s *ContentService) CreateFAQ(ctx context.Context, f models.FAQ) (models.FAQ, error) {
	if strings.TrimSpace(f.Question) == "" || strings.TrimSpace(f.Answer) == "" {
		return models.FAQ{}, fmt.Errorf("%w: question and answer are required", ErrInvalidInput)
	}
	f.ID = uuid.NewString()
	if err := s.repo.CreateFAQ(ctx, f); err != nil {
		return models.FAQ{}, fmt.Errorf("create faq: %w", err)
	}
	return f, nil
}

// UpdateFAQ validates and replaces an FAQ entry.
func (s *ContentService) UpdateFAQ(ctx context.Context, f models.FAQ) error {
	if f.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return mapNoRows(s.repo.UpdateFAQ(ctx, f))
}

// DeleteFAQ removes an FAQ entry by id.
func (s *ContentService) DeleteFAQ(ctx context.Context, id string) error {
	return mapNoRows(s.repo.DeleteFAQ(ctx, id))
}

// ListHeroAssets returns all hero assets in display order.
func (s *ContentService) ListHeroAssets(ctx context.Context) ([]models.HeroAsset, error) {
	return s.repo.ListHeroAssets(ctx)
}

// CreateHeroAsset validates and records a hero asset.
func (s *ContentService) CreateHeroAsset(ctx context.Context, h models.HeroAsset) (models.HeroAsset, error) {
	if h.Kind != "image" && h.Kind != "video" {
		return models.HeroAsset{}, fmt.Errorf("%w: kind must be image or video", ErrInvalidInput)
	}
	if strings.TrimSpace(h.URL) == "" {
		return models.HeroAsset{}, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}
	h.ID = uuid.NewString()
	if err := s.repo.CreateHeroAsset(ctx, h); err != nil {
		return models.HeroAsset{}, fmt.Errorf("create hero asset: %w", err)
	}
	return h, nil
}

// DeleteHeroAsset removes a hero asset by id.
func (s *ContentService) DeleteHeroAsset(ctx context.Context, id string) error {
	return mapNoRows(s.repo.DeleteHeroAsset(ctx, id))
}

// GetCompanyInfo returns the company profile, or ErrNotFound when unset.
func (s *ContentService) GetCompanyInfo(ctx context.Context) (models.CompanyInfo, error) {
	c, err := s.repo.GetCompanyInfo(ctx)
	return c, mapNoRows(err)
}

// SaveCompanyInfo validates and upserts the single company profile record.
func (s *ContentService) SaveCompanyInfo(ctx context.Context, c models.CompanyInfo) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if c.ID == "" {
		c.ID = "company"
	}
	return s.repo.UpsertCompanyInfo(ctx, c)
}

// SubmitContact stores a contact-form message after rate limiting by the
// caller's remote address.
func (s *ContentService) SubmitContact(ctx context.Context, remoteAddr string, m models.ContactMessage) error {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Email) == "" || strings.TrimSpace(m.Message) == "" {
		return fmt.Errorf("%w: name, email, and message are required", ErrInvalidInput)
	}

	allowed, err := s.limiter.Allow(ctx, remoteAddr)
	if err != nil {
		return fmt.Errorf("rate limit check: %w", err)
	}
	if !allowed {
		return ErrRateLimited
	}

	m.ID = uuid.NewString()
	return s.repo.CreateContactMessage(ctx, m)
}
