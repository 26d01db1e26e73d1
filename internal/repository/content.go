package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/hearthwood/site/internal/models"
)

// PostgresContentRepository implements persistence for the CMS-managed
// content types: testimonials, portfolio projects, FAQs, hero assets,
// company info, and contact messages.
type PostgresContentRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresContentRepository creates a new PostgresContentRepository with
// the given database connection.
func NewPostgresContentRepository(db *sql.DB) *PostgresContentRepository {
	return &PostgresContentRepository{DB: db}
}

func rowsAffectedOrNoRows(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListTestimonials returns all testimonials, newest first.
func (r *PostgresContentRepository) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, author, role, quote, rating, created_at, updated_at
           FROM testimonials ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	out := []models.Testimonial{}
	for rows.Next() {
		var t models.Testimonial
		if err := rows.Scan(&t.ID, &t.Author, &t.Role, &t.Quote, &t.Rating, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan testimonial: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CreateTestimonial inserts a testimonial record.
func (r *PostgresContentRepository) CreateTestimonial(ctx context.Context, t models.Testimonial) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO testimonials (id, author, role, quote, rating) VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.Author, t.Role, t.Quote, t.Rating,
	)
	return err
}

// UpdateTestimonial replaces a testimonial's fields. Returns sql.ErrNoRows
// if absent.
func (r *PostgresContentRepository) UpdateTestimonial(ctx context.Context, t models.Testimonial) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE testimonials SET author = $2, role = $3, quote = $4, rating = $5, updated_at = now() WHERE id = $1`,
		t.ID, t.Author, t.Role, t.Quote, t.Rating,
	)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}

// DeleteTestimonial removes a testimonial. Returns sql.ErrNoRows if absent.
func (r *PostgresContentRepository) DeleteTestimonial(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}

// ListProjects returns all portfolio projects, newest year first.
func (r *PostgresContentRepository) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, title, client, description, images, year, created_at, updated_at
           FROM projects ORDER BY year DESC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := []models.Project{}
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Client, &p.Description, pq.Array(&p.Images), &p.Year, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CreateProject inserts a portfolio project record.
func (r *PostgresContentRepository) CreateProject(ctx context.Context, p models.Project) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO projects (id, title, client, description, images, year) VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Title, p.Client, p.Description, pq.Array(p.Images), p.Year,
	)
	return err
}

// UpdateProject replaces a project's fields. Returns sql.ErrNoRows if absent.
func (r *PostgresContentRepository) UpdateProject(ctx context.Context, p models.Project) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE projects SET title = $2, client = $3, description = $4, images = $5, year = $6, updated_at = now() WHERE id = $1`,
		p.ID, p.Title, p.Client, p.Description, pq.Array(p.Images), p.Year,
	)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}

// DeleteProject removes a project. Returns sql.ErrNoRows if absent.
func (r *PostgresContentRepository) DeleteProject(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}

// ListFAQs returns all FAQ entries in display order.
func (r *PostgresContentRepository) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, question, answer, sort_order, created_at, updated_at
           FROM faqs ORDER BY sort_order, created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("list faqs: %w", err)
	}
	defer rows.Close()

	out := []models.FAQ{}
	for rows.Next() {
		var f models.FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.SortOrder, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan faq: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// CreateFAQ inserts an FAQ entry.
func (r *PostgresContentRepository) CreateFAQ(ctx context.Context, f models.FAQ) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO faqs (id, question, answer, sort_order) VALUES ($1, $2, $3, $4)`,
		f.ID, f.Question, f.Answer, f.SortOrder,
	)
	return err
}

// UpdateFAQ replaces an FAQ's fields. Returns sql.ErrNoRows if absent.
func (r *PostgresContentRepository) UpdateFAQ(ctx context.Context, f models.FAQ) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE faqs SET question = $2, answer = $3, sort_order = $4, updated_at = now() WHERE id = $1`,
		f.ID, f.Question, f.Answer, f.SortOrder,
	)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}

// DeleteFAQ removes an FAQ entry. Returns sql.ErrNoRows if absent.
func (r *PostgresContentRepository) DeleteFAQ(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}

// ListHeroAssets returns all hero assets in display order.
func (r *PostgresContentRepository) ListHeroAssets(ctx context.Context) ([]models.HeroAsset, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, title, kind, url, sort_order, created_at, updated_at
           FROM hero_assets ORDER BY sort_order, created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("list hero assets: %w", err)
	}
	defer rows.Close()

	out := []models.HeroAsset{}
	for rows.Next() {
		var h models.HeroAsset
		if err := rows.Scan(&h.ID, &h.Title, &h.Kind, &h.URL, &h.SortOrder, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan hero asset: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// CreateHeroAsset inserts a hero asset record.
func (r *PostgresContentRepository) CreateHeroAsset(ctx context.Context, h models.HeroAsset) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO hero_assets (id, title, kind, url, sort_order) VALUES ($1, $2, $3, $4, $5)`,
		h.ID, h.Title, h.Kind, h.URL, h.SortOrder,
	)
	return err
}

// DeleteHeroAsset removes a hero asset. Returns sql.ErrNoRows if absent.
func (r *PostgresContentRepository) DeleteHeroAsset(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM hero_assets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}

// GetCompanyInfo returns the company profile, or sql.ErrNoRows when it has
// never been set.
func (r *PostgresContentRepository) GetCompanyInfo(ctx context.Context) (models.CompanyInfo, error) {
	var c models.CompanyInfo
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, tagline, about, email, phone, address, updated_at FROM company_info LIMIT 1`,
	).Scan(&c.ID, &c.Name, &c.Tagline, &c.About, &c.Email, &c.Phone, &c.Address, &c.UpdatedAt)
	return c, err
}

// UpsertCompanyInfo creates or replaces the single company profile row.
func (r *PostgresContentRepository) UpsertCompanyInfo(ctx context.Context, c models.CompanyInfo) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO company_info (id, name, tagline, about, email, phone, address)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
         ON CONFLICT (id) DO UPDATE
            SET name = $2, tagline = $3, about = $4, email = $5, phone = $6, address = $7, updated_at = now()`,
		c.ID, c.Name, c.Tagline, c.About, c.Email, c.Phone, c.Address,
	)
	return err
}

// CreateContactMessage stores a submitted contact-form entry.
func (r *PostgresContentRepository) CreateContactMessage(ctx context.Context, m models.ContactMessage) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO contact_messages (id, name, email, message) VALUES ($1, $2, $3, $4)`,
		m.ID, m.Name, m.Email, m.Message,
	)
	return err
}
