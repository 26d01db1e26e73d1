package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/hearthwood/site/internal/models"
)

// UserRecord is a user row including the password hash. Only the auth
// service sees this shape; everything else works with models.Identity.
type UserRecord struct {
	Identity     models.Identity
	PasswordHash []byte
}

// PostgresUserRepository implements user persistence using PostgreSQL.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the
// given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// GetByEmail returns the user with the given email, or sql.ErrNoRows.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (UserRecord, error) {
	var rec UserRecord
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE email = $1`,
		email,
	).Scan(
		&rec.Identity.ID, &rec.Identity.Name, &rec.Identity.Email,
		&rec.PasswordHash, &rec.Identity.CreatedAt, &rec.Identity.UpdatedAt,
	)
	return rec, err
}

// GetByID returns the identity with the given id, or sql.ErrNoRows.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (models.Identity, error) {
	var identity models.Identity
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, email, created_at, updated_at FROM users WHERE id = $1`,
		id,
	).Scan(
		&identity.ID, &identity.Name, &identity.Email,
		&identity.CreatedAt, &identity.UpdatedAt,
	)
	return identity, err
}

// Create inserts a new user with the given password hash.
func (r *PostgresUserRepository) Create(ctx context.Context, identity models.Identity, passwordHash []byte) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash) VALUES ($1, $2, $3, $4)
         ON CONFLICT (email) DO NOTHING`,
		identity.ID, identity.Name, identity.Email, passwordHash,
	)
	return err
}

// RecordSession writes an audit row for an issued session. Best-effort;
// Redis remains the source of truth for liveness.
func (r *PostgresUserRepository) RecordSession(ctx context.Context, credential, userID string, expiresAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO session_audit (session_id, user_id, expires_at) VALUES ($1, $2, $3)
         ON CONFLICT (session_id) DO NOTHING`,
		credential, userID, expiresAt,
	)
	return err
}
