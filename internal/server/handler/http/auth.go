// Package http provides the HTTP handlers and routing for the site
// backend: public catalog reads, authentication, and the protected admin
// CMS API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/hearthwood/site/internal/models"
	"github.com/hearthwood/site/internal/service"
	"github.com/hearthwood/site/internal/session"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Login verifies credentials and creates a session on success.
	Login(ctx context.Context, email, password string) (session.Session, models.Identity, error)
	// Logout invalidates the session for the credential.
	Logout(ctx context.Context, credential string) error
	// Resolve returns the identity for a credential, or nil.
	Resolve(ctx context.Context, credential string) (*models.Identity, error)
}

// AuthHandler handles login, logout, and current-identity requests.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// CookieSecure controls the Secure attribute on issued cookies;
	// disabled only for local plain-HTTP development.
	CookieSecure bool
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return errors.New("email and password are required")
	}
	return nil
}

// Login handles POST /auth/login. On success it issues the session cookie
// and returns the identity. Bad credentials yield a generic 401 with no
// hint about which half failed.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, identity, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrBadCredentials) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	session.SetCookie(w, sess.Credential, sess.ExpiresAt, session.CookieOptions{
		Secure: h.CookieSecure,
	})
	writeJSON(w, http.StatusOK, identity)
}

// Logout handles POST /auth/logout. It invalidates the session and clears
// the cookie regardless of whether a session existed.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		_ = h.AuthService.Logout(r.Context(), cookie.Value)
	}

	session.ClearCookie(w, session.CookieOptions{Secure: h.CookieSecure})
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Me handles GET /auth/me, returning the identity for the current session
// cookie or a generic 401.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	identity, err := h.AuthService.Resolve(r.Context(), cookie.Value)
	if err != nil || identity == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, identity)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
