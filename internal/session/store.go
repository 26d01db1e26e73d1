// Package session manages server-side sessions: opaque credentials,
// Redis-backed storage, and the session cookie.
package session

import (
	"context"
	"time"
)

// Session represents an authenticated user session. It stores only an
// identity pointer, never auth state.
type Session struct {
	// Credential is the opaque session identifier handed to the client.
	Credential string
	// UserID references the user owning the session.
	UserID string
	// ExpiresAt is the absolute expiry time of the session.
	ExpiresAt time.Time
}

// Store defines how sessions are stored and retrieved. Implementations must
// return (nil, nil) for unknown credentials rather than an error.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, credential string) (*Session, error)
	Delete(ctx context.Context, credential string) error
}
