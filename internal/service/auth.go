package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hearthwood/site/internal/models"
	"github.com/hearthwood/site/internal/repository"
	"github.com/hearthwood/site/internal/session"
)

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (repository.UserRecord, error)
	GetByID(ctx context.Context, id string) (models.Identity, error)
	RecordSession(ctx context.Context, credential, userID string, expiresAt time.Time) error
}

// AuthService implements login, logout, and session-credential resolution.
type AuthService struct {
	users      UserRepository
	sessions   session.Store
	sessionTTL time.Duration
}

// NewAuthService constructs an AuthService over the given user repository
// and session store.
func NewAuthService(users UserRepository, sessions session.Store, sessionTTL time.Duration) *AuthService {
	return &AuthService{users: users, sessions: sessions, sessionTTL: sessionTTL}
}

// Login verifies the email/password pair and, on success, creates a new
// session. Both an unknown email and a wrong password return
// ErrBadCredentials so callers cannot probe which half failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (session.Session, models.Identity, error) {
	rec, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Session{}, models.Identity{}, ErrBadCredentials
	}
	if err != nil {
		return session.Session{}, models.Identity{}, fmt.Errorf("fetch user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(password)); err != nil {
		return session.Session{}, models.Identity{}, ErrBadCredentials
	}

	credential, err := session.GenerateCredential()
	if err != nil {
		return session.Session{}, models.Identity{}, fmt.Errorf("generate credential: %w", err)
	}

	sess := session.Session{
		Credential: credential,
		UserID:     rec.Identity.ID,
		ExpiresAt:  time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return session.Session{}, models.Identity{}, fmt.Errorf("create session: %w", err)
	}

	// Audit row is best-effort; the session is already live in Redis.
	_ = s.users.RecordSession(ctx, credential, rec.Identity.ID, sess.ExpiresAt)

	return sess, rec.Identity, nil
}

// Logout invalidates the session for the given credential. Unknown
// credentials are a no-op.
func (s *AuthService) Logout(ctx context.Context, credential string) error {
	if credential == "" {
		return nil
	}
	return s.sessions.Delete(ctx, credential)
}

// Resolve answers "who is this, if anyone?" for an opaque credential.
// Missing, expired, and unknown credentials all return (nil, nil); only a
// store or database failure returns an error, and callers must treat that
// the same as absence for access decisions.
func (s *AuthService) Resolve(ctx context.Context, credential string) (*models.Identity, error) {
	if credential == "" {
		return nil, nil
	}

	sess, err := s.sessions.Get(ctx, credential)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return nil, nil
	}
	if time.Now().After(sess.ExpiresAt) {
		// Redis TTL normally removes these; enforce expiry regardless.
		_ = s.sessions.Delete(ctx, credential)
		return nil, nil
	}

	identity, err := s.users.GetByID(ctx, sess.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch identity: %w", err)
	}
	return &identity, nil
}
