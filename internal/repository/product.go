// Package repository provides PostgreSQL persistence for the catalog and
// CMS content types.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/hearthwood/site/internal/models"
)

// PostgresProductRepository implements catalog persistence using PostgreSQL.
type PostgresProductRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresProductRepository creates a new PostgresProductRepository with
// the given database connection.
func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{DB: db}
}

const productColumns = `id, name, description, category, collection, images, features, colors, featured, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.Collection,
		pq.Array(&p.Images), pq.Array(&p.Features), pq.Array(&p.Colors),
		&p.Featured, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// List returns all products ordered by id.
func (r *PostgresProductRepository) List(ctx context.Context) ([]models.Product, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Get returns the product with the given id, or sql.ErrNoRows if absent.
func (r *PostgresProductRepository) Get(ctx context.Context, id string) (models.Product, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`,
		id,
	)
	return scanProduct(row)
}

// Create inserts a new product record.
func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO products (id, name, description, category, collection, images, features, colors, featured)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, p.Description, p.Category, p.Collection,
		pq.Array(p.Images), pq.Array(p.Features), pq.Array(p.Colors), p.Featured,
	)
	return err
}

// Update replaces the mutable fields of an existing product. Returns
// sql.ErrNoRows if no product has the given id.
func (r *PostgresProductRepository) Update(ctx context.Context, p models.Product) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE products
            SET name = $2, description = $3, category = $4, collection = $5,
                images = $6, features = $7, colors = $8, featured = $9,
                updated_at = now()
          WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Category, p.Collection,
		pq.Array(p.Images), pq.Array(p.Features), pq.Array(p.Colors), p.Featured,
	)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a product record. Returns sql.ErrNoRows if absent.
func (r *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetFeatured toggles the featured flag on a product. Returns
// sql.ErrNoRows if absent.
func (r *PostgresProductRepository) SetFeatured(ctx context.Context, id string, featured bool) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE products SET featured = $2, updated_at = now() WHERE id = $1`,
		id, featured,
	)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
