package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/hearthwood/site/internal/models"
)

func setupProductMock(t *testing.T) (*PostgresProductRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresProductRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func productRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "description", "category", "collection",
		"images", "features", "colors", "featured", "created_at", "updated_at",
	}).AddRow(
		"a", "Oak Desk", "Solid oak writing desk", "desks", "exec",
		pq.Array([]string{"/img/oak.jpg"}), pq.Array([]string{"drawer"}), pq.Array([]string{"natural"}),
		true, now, now,
	)
}

func TestProductList(t *testing.T) {
	repo, mock, cleanup := setupProductMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + productColumns + ` FROM products ORDER BY id`)).
		WillReturnRows(productRows())

	products, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 || products[0].ID != "a" {
		t.Errorf("unexpected products: %+v", products)
	}
	if products[0].Images[0] != "/img/oak.jpg" {
		t.Errorf("array column not scanned: %+v", products[0].Images)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestProductGet_NotFound(t *testing.T) {
	repo, mock, cleanup := setupProductMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + productColumns + ` FROM products WHERE id = $1`)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestProductCreate(t *testing.T) {
	repo, mock, cleanup := setupProductMock(t)
	defer cleanup()

	p := models.Product{
		ID: "b", Name: "Steel Chair", Category: "chairs",
		Images: []string{"/img/chair.jpg"},
	}
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO products`)).
		WithArgs(p.ID, p.Name, p.Description, p.Category, p.Collection,
			pq.Array(p.Images), pq.Array(p.Features), pq.Array(p.Colors), p.Featured).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestProductUpdate_NoRows(t *testing.T) {
	repo, mock, cleanup := setupProductMock(t)
	defer cleanup()

	p := models.Product{ID: "missing", Name: "Oak Desk", Category: "desks"}
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE products`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), p)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows for missing product, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestProductDelete(t *testing.T) {
	repo, mock, cleanup := setupProductMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM products WHERE id = $1`)).
		WithArgs("a").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestProductSetFeatured(t *testing.T) {
	repo, mock, cleanup := setupProductMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET featured = $2, updated_at = now() WHERE id = $1`)).
		WithArgs("a", true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetFeatured(context.Background(), "a", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
