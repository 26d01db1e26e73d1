package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hearthwood/site/internal/models"
	"github.com/hearthwood/site/internal/session"
)

const adminID = "admin-1"

// stubResolver returns a fixed identity or error and counts calls.
type stubResolver struct {
	identity *models.Identity
	err      error
	calls    atomic.Int64
}

func (s *stubResolver) Resolve(ctx context.Context, credential string) (*models.Identity, error) {
	s.calls.Add(1)
	return s.identity, s.err
}

// dummyHandler records whether it was called and the request it received.
type dummyHandler struct {
	called bool
	req    *http.Request
}

func (d *dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.called = true
	d.req = r
	w.WriteHeader(http.StatusOK)
}

func newGate(resolver *stubResolver) *Gate {
	return NewGate(NewIdentityCache(resolver, 3*time.Second), adminID)
}

func withCredential(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "cred-123"})
	return req
}

func TestGate_PublicPathSkipsIdentityLookup(t *testing.T) {
	resolver := &stubResolver{identity: &models.Identity{ID: adminID}}
	dummy := &dummyHandler{}
	h := newGate(resolver).Handler(dummy)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, withCredential(httptest.NewRequest("GET", "/products", nil)))

	if !dummy.called {
		t.Error("expected next handler to be called for public path")
	}
	if got := resolver.calls.Load(); got != 0 {
		t.Errorf("expected zero identity lookups for public path, got %d", got)
	}
}

func TestGate_ProtectedAPI_NoCredential(t *testing.T) {
	resolver := &stubResolver{}
	dummy := &dummyHandler{}
	h := newGate(resolver).Handler(dummy)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/protected/products", nil))

	if dummy.called {
		t.Error("did not expect next handler to be called without a credential")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "Unauthorized" {
		t.Errorf("expected body error %q, got %q", "Unauthorized", body["error"])
	}
}

func TestGate_ProtectedAPI_UnresolvableCredential(t *testing.T) {
	resolver := &stubResolver{identity: nil}
	dummy := &dummyHandler{}
	h := newGate(resolver).Handler(dummy)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, withCredential(httptest.NewRequest("GET", "/api/protected/products", nil)))

	if dummy.called {
		t.Error("did not expect next handler to be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestGate_ProtectedAPI_ForwardsIdentityHeader(t *testing.T) {
	resolver := &stubResolver{identity: &models.Identity{ID: "user-7"}}
	dummy := &dummyHandler{}
	h := newGate(resolver).Handler(dummy)

	req := withCredential(httptest.NewRequest("GET", "/api/protected/products", nil))
	req.Header.Set("Accept", "application/json")
	// Spoofed value must never pass through.
	req.Header.Set(ForwardedIdentityHeader, "admin-1")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !dummy.called {
		t.Fatal("expected next handler to be called")
	}
	if got := dummy.req.Header.Get(ForwardedIdentityHeader); got != "user-7" {
		t.Errorf("forwarded identity header = %q; want %q", got, "user-7")
	}
	if got := dummy.req.Header.Get("Accept"); got != "application/json" {
		t.Errorf("unrelated header was modified: Accept = %q", got)
	}
	if id := GetIdentityFromContext(dummy.req.Context()); id == nil || id.ID != "user-7" {
		t.Errorf("expected context identity user-7, got %v", id)
	}
}

func TestGate_AuthPage_AdminRedirectsToDashboard(t *testing.T) {
	resolver := &stubResolver{identity: &models.Identity{ID: adminID}}
	dummy := &dummyHandler{}
	h := newGate(resolver).Handler(dummy)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, withCredential(httptest.NewRequest("GET", "/auth", nil)))

	if dummy.called {
		t.Error("did not expect the login page to render for the admin")
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected 303, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/admin/dashboard" {
		t.Errorf("redirect target = %q; want /admin/dashboard", got)
	}
}

func TestGate_AuthPage_NonAdminPassesThrough(t *testing.T) {
	resolver := &stubResolver{identity: &models.Identity{ID: "user-7"}}
	dummy := &dummyHandler{}
	h := newGate(resolver).Handler(dummy)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, withCredential(httptest.NewRequest("GET", "/auth", nil)))

	if !dummy.called {
		t.Error("expected login page to render for a non-admin identity")
	}
}

func TestGate_AuthPage_NoIdentityPassesThrough(t *testing.T) {
	resolver := &stubResolver{}
	dummy := &dummyHandler{}
	h := newGate(resolver).Handler(dummy)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/auth", nil))

	if !dummy.called {
		t.Error("expected login page to render without an identity")
	}
}

func TestGate_AdminPage_NoIdentityRedirectsToLogin(t *testing.T) {
	resolver := &stubResolver{}
	dummy := &dummyHandler{}
	h := newGate(resolver).Handler(dummy)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/admin/dashboard", nil))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected 303, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/auth" {
		t.Errorf("redirect target = %q; want /auth", got)
	}
}

func TestGate_AdminPage_WrongIdentityRedirectsWithMarker(t *testing.T) {
	resolver := &stubResolver{identity: &models.Identity{ID: "user-7"}}
	dummy := &dummyHandler{}
	h := newGate(resolver).Handler(dummy)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, withCredential(httptest.NewRequest("GET", "/admin/dashboard", nil)))

	if dummy.called {
		t.Error("did not expect the admin page to render for a non-admin")
	}
	if got := rec.Header().Get("Location"); got != "/auth?error=unauthorized" {
		t.Errorf("redirect target = %q; want /auth?error=unauthorized", got)
	}
}

func TestGate_AdminPage_AdminPassesThrough(t *testing.T) {
	resolver := &stubResolver{identity: &models.Identity{ID: adminID}}
	dummy := &dummyHandler{}
	h := newGate(resolver).Handler(dummy)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, withCredential(httptest.NewRequest("GET", "/admin/dashboard", nil)))

	if !dummy.called {
		t.Error("expected the admin page to render for the admin identity")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestGate_ResolverErrorFailsClosed(t *testing.T) {
	resolver := &stubResolver{err: errors.New("upstream down")}

	// Admin page: error is treated as no identity.
	dummy := &dummyHandler{}
	h := newGate(resolver).Handler(dummy)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, withCredential(httptest.NewRequest("GET", "/admin/dashboard", nil)))
	if dummy.called {
		t.Error("resolver error must not open the admin page")
	}
	if got := rec.Header().Get("Location"); got != "/auth" {
		t.Errorf("redirect target = %q; want /auth", got)
	}

	// Protected API: same error becomes a generic 401.
	dummy = &dummyHandler{}
	h = newGate(resolver).Handler(dummy)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, withCredential(httptest.NewRequest("GET", "/api/protected/products", nil)))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
