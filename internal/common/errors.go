// Package common defines shared constants and sentinel errors used across
// client and server layers of gophrecords. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrInvalidScope      = errors.New("invalid scope")
	ErrInvalidCollection = errors.New("invalid collection")
	ErrInvalidDocument   = errors.New("invalid document")
	ErrInvalidPageToken  = errors.New("invalid page token")
	ErrInvalidWorkspace  = errors.New("invalid workspace")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrPermissionDenied = errors.New("permission denied")

	// Remote store reachability.
	ErrUnavailable = errors.New("remote store unavailable")
	ErrTimeout     = errors.New("remote store timeout")

	// Sync orchestration.
	ErrSyncInProgress = errors.New("sync already in progress")
)
