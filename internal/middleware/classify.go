// Package middleware provides HTTP middlewares for access control,
// request logging, and metrics.
package middleware

import "strings"

// RouteClass is the access-control category of a request path.
type RouteClass int

const (
	// RoutePublic is any path outside the gated surface; it never incurs
	// an identity lookup.
	RoutePublic RouteClass = iota
	// RouteProtectedAPI is the authenticated JSON API surface.
	RouteProtectedAPI
	// RouteAuthPage is the login page.
	RouteAuthPage
	// RouteAdminPage is the admin dashboard surface.
	RouteAdminPage
)

const (
	protectedAPIPrefix = "/api/protected/"
	authPath           = "/auth"
	adminPrefix        = "/admin/"
	adminDashboardPath = "/admin/dashboard"
	// authDashboardAlias is a legacy alias that still resolves to the
	// admin surface.
	authDashboardAlias = "/auth/dashboard"
)

// Classify categorizes a request path. Classification is first-match:
// protected API is checked before the auth page, which is checked before
// the admin surface, so overlapping prefixes cannot produce a union.
func Classify(path string) RouteClass {
	switch {
	case strings.HasPrefix(path, protectedAPIPrefix):
		return RouteProtectedAPI
	case path == authPath:
		return RouteAuthPage
	case strings.HasPrefix(path, adminPrefix) || path == "/admin" || path == authDashboardAlias:
		return RouteAdminPage
	default:
		return RoutePublic
	}
}
