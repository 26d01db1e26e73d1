package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hearthwood/site/internal/models"
	"github.com/hearthwood/site/internal/session"
)

type ctxKey string

const identityKey ctxKey = "identity"

// ForwardedIdentityHeader carries the authenticated identity id to
// downstream protected-API handlers. Establishing this header is the gate's
// exclusive responsibility; any inbound value is discarded before the
// decision is made.
const ForwardedIdentityHeader = "X-Identity-ID"

const (
	loginTarget        = "/auth"
	unauthorizedTarget = "/auth?error=unauthorized"
	dashboardTarget    = "/admin/dashboard"
)

// Gate is the access decision engine. It classifies the request path,
// resolves the caller's identity through the per-request cache when the
// class requires one, and produces exactly one of: pass-through, redirect,
// or a JSON 401. Resolution errors are indistinguishable from "no
// identity" — authentication fails closed, never open.
type Gate struct {
	// Cache deduplicates identity resolutions within a request chain.
	Cache *IdentityCache
	// AdminID is the identity id granted admin-page access.
	AdminID string
}

// NewGate constructs a Gate over the given identity cache and admin id.
func NewGate(cache *IdentityCache, adminID string) *Gate {
	return &Gate{Cache: cache, AdminID: adminID}
}

// Handler returns the gate as a chi-compatible middleware.
func (g *Gate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Never trust an externally supplied identity header.
		r.Header.Del(ForwardedIdentityHeader)

		class := Classify(r.URL.Path)
		if class == RoutePublic {
			// Public paths perform zero identity lookups.
			next.ServeHTTP(w, r)
			return
		}

		identity := g.resolveIdentity(r)

		switch class {
		case RouteProtectedAPI:
			if identity == nil {
				writeUnauthorized(w)
				return
			}
			r.Header.Set(ForwardedIdentityHeader, identity.ID)
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))

		case RouteAuthPage:
			if identity != nil && identity.ID == g.AdminID {
				// Already logged in as the admin; no point showing login.
				http.Redirect(w, r, dashboardTarget, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)

		case RouteAdminPage:
			if identity == nil {
				http.Redirect(w, r, loginTarget, http.StatusSeeOther)
				return
			}
			if identity.ID != g.AdminID {
				http.Redirect(w, r, unauthorizedTarget, http.StatusSeeOther)
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	})
}

// resolveIdentity reads the session cookie and asks the cache for the
// identity. Any failure collapses to nil so callers cannot distinguish
// error from absence.
func (g *Gate) resolveIdentity(r *http.Request) *models.Identity {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	// The key pairs the request URL with the credential so duplicate checks
	// within one request chain dedupe, while distinct sessions never share
	// an entry.
	key := r.URL.String() + "|" + cookie.Value
	identity, err := g.Cache.GetOrResolve(r.Context(), key, cookie.Value)
	if err != nil {
		return nil
	}
	return identity
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}

// GetIdentityFromContext extracts the resolved identity from the request
// context. Returns nil if the gate did not attach one.
func GetIdentityFromContext(ctx context.Context) *models.Identity {
	val := ctx.Value(identityKey)
	if id, ok := val.(*models.Identity); ok {
		return id
	}
	return nil
}
