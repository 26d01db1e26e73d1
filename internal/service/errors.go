// Package service implements the business logic between HTTP handlers and
// the persistence layer: authentication, catalog operations, and CMS
// content management.
package service

import "errors"

// Sentinel error kinds. Callers discriminate outcomes with errors.Is
// instead of probing optional fields on an ad-hoc result shape.
var (
	// ErrNotFound indicates the referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates the request failed structural validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrBadCredentials indicates the email/password pair did not match.
	// Deliberately carries no detail about which half failed.
	ErrBadCredentials = errors.New("bad credentials")
	// ErrRateLimited indicates the caller exceeded a fixed-window quota.
	ErrRateLimited = errors.New("rate limited")
)
