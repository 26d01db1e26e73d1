package http

import "net/http"

// The page handlers below are deliberately minimal: the public site and
// admin dashboard are rendered by the frontend build, which is deployed
// separately. They exist so the gated page routes resolve to something
// meaningful when the backend runs standalone.

// LoginPage handles GET /auth.
func LoginPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(`<!doctype html><title>Sign in — Hearthwood</title><h1>Sign in</h1>`))
}

// DashboardPage handles GET /admin/dashboard.
func DashboardPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(`<!doctype html><title>Dashboard — Hearthwood</title><h1>Dashboard</h1>`))
}
