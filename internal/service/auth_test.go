package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hearthwood/site/internal/models"
	"github.com/hearthwood/site/internal/repository"
	"github.com/hearthwood/site/internal/session"
)

type mockUserRepo struct {
	GetByEmailFunc    func(ctx context.Context, email string) (repository.UserRecord, error)
	GetByIDFunc       func(ctx context.Context, id string) (models.Identity, error)
	RecordSessionFunc func(ctx context.Context, credential, userID string, expiresAt time.Time) error
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (repository.UserRecord, error) {
	return m.GetByEmailFunc(ctx, email)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id string) (models.Identity, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockUserRepo) RecordSession(ctx context.Context, credential, userID string, expiresAt time.Time) error {
	if m.RecordSessionFunc != nil {
		return m.RecordSessionFunc(ctx, credential, userID, expiresAt)
	}
	return nil
}

type mockSessionStore struct {
	CreateFunc func(ctx context.Context, s session.Session) error
	GetFunc    func(ctx context.Context, credential string) (*session.Session, error)
	DeleteFunc func(ctx context.Context, credential string) error
}

func (m *mockSessionStore) Create(ctx context.Context, s session.Session) error {
	return m.CreateFunc(ctx, s)
}
func (m *mockSessionStore) Get(ctx context.Context, credential string) (*session.Session, error) {
	return m.GetFunc(ctx, credential)
}
func (m *mockSessionStore) Delete(ctx context.Context, credential string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, credential)
	}
	return nil
}

func adminRecord(t *testing.T) repository.UserRecord {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return repository.UserRecord{
		Identity:     models.Identity{ID: "admin-1", Name: "Owner", Email: "owner@hearthwood.example"},
		PasswordHash: hash,
	}
}

func TestLogin_Success(t *testing.T) {
	var created session.Session
	users := &mockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (repository.UserRecord, error) {
			return adminRecord(t), nil
		},
	}
	sessions := &mockSessionStore{
		CreateFunc: func(ctx context.Context, s session.Session) error {
			created = s
			return nil
		},
	}
	svc := NewAuthService(users, sessions, time.Hour)

	sess, identity, err := svc.Login(context.Background(), "owner@hearthwood.example", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.ID != "admin-1" {
		t.Errorf("identity.ID = %q; want admin-1", identity.ID)
	}
	if sess.Credential == "" || sess.Credential != created.Credential {
		t.Errorf("session credential not stored: %q vs %q", sess.Credential, created.Credential)
	}
	if sess.UserID != "admin-1" {
		t.Errorf("session user = %q; want admin-1", sess.UserID)
	}
}

func TestLogin_WrongPasswordAndUnknownEmailAreIndistinguishable(t *testing.T) {
	users := &mockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (repository.UserRecord, error) {
			if email == "owner@hearthwood.example" {
				return adminRecord(t), nil
			}
			return repository.UserRecord{}, sql.ErrNoRows
		},
	}
	sessions := &mockSessionStore{
		CreateFunc: func(ctx context.Context, s session.Session) error { return nil },
	}
	svc := NewAuthService(users, sessions, time.Hour)

	_, _, errWrongPass := svc.Login(context.Background(), "owner@hearthwood.example", "nope")
	_, _, errUnknown := svc.Login(context.Background(), "ghost@hearthwood.example", "nope")

	if !errors.Is(errWrongPass, ErrBadCredentials) {
		t.Errorf("wrong password error = %v; want ErrBadCredentials", errWrongPass)
	}
	if !errors.Is(errUnknown, ErrBadCredentials) {
		t.Errorf("unknown email error = %v; want ErrBadCredentials", errUnknown)
	}
}

func TestResolve_EmptyCredentialIsAbsence(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockSessionStore{}, time.Hour)

	identity, err := svc.Resolve(context.Background(), "")
	if err != nil || identity != nil {
		t.Errorf("Resolve(\"\") = (%v, %v); want (nil, nil)", identity, err)
	}
}

func TestResolve_UnknownCredentialIsAbsence(t *testing.T) {
	sessions := &mockSessionStore{
		GetFunc: func(ctx context.Context, credential string) (*session.Session, error) {
			return nil, nil
		},
	}
	svc := NewAuthService(&mockUserRepo{}, sessions, time.Hour)

	identity, err := svc.Resolve(context.Background(), "bogus")
	if err != nil || identity != nil {
		t.Errorf("unknown credential = (%v, %v); want (nil, nil)", identity, err)
	}
}

func TestResolve_ExpiredSessionIsAbsenceAndDeleted(t *testing.T) {
	deleted := false
	sessions := &mockSessionStore{
		GetFunc: func(ctx context.Context, credential string) (*session.Session, error) {
			return &session.Session{Credential: credential, UserID: "admin-1", ExpiresAt: time.Now().Add(-time.Minute)}, nil
		},
		DeleteFunc: func(ctx context.Context, credential string) error {
			deleted = true
			return nil
		},
	}
	svc := NewAuthService(&mockUserRepo{}, sessions, time.Hour)

	identity, err := svc.Resolve(context.Background(), "stale")
	if err != nil || identity != nil {
		t.Errorf("expired session = (%v, %v); want (nil, nil)", identity, err)
	}
	if !deleted {
		t.Error("expected expired session to be deleted")
	}
}

func TestResolve_LiveSession(t *testing.T) {
	users := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (models.Identity, error) {
			return models.Identity{ID: id, Name: "Owner"}, nil
		},
	}
	sessions := &mockSessionStore{
		GetFunc: func(ctx context.Context, credential string) (*session.Session, error) {
			return &session.Session{Credential: credential, UserID: "admin-1", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	svc := NewAuthService(users, sessions, time.Hour)

	identity, err := svc.Resolve(context.Background(), "live")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity == nil || identity.ID != "admin-1" {
		t.Errorf("identity = %v; want admin-1", identity)
	}
}

func TestResolve_StoreErrorPropagates(t *testing.T) {
	sessions := &mockSessionStore{
		GetFunc: func(ctx context.Context, credential string) (*session.Session, error) {
			return nil, errors.New("redis down")
		},
	}
	svc := NewAuthService(&mockUserRepo{}, sessions, time.Hour)

	_, err := svc.Resolve(context.Background(), "any")
	if err == nil {
		t.Error("expected store error to propagate for the gate to absorb")
	}
}

func TestLogout_EmptyCredentialIsNoOp(t *testing.T) {
	sessions := &mockSessionStore{
		DeleteFunc: func(ctx context.Context, credential string) error {
			t.Error("delete should not be called for empty credential")
			return nil
		},
	}
	svc := NewAuthService(&mockUserRepo{}, sessions, time.Hour)

	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
