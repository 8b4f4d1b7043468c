// Package common defines shared constants and sentinel errors used across
// the LifeVault layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// A document with the same content hash is already in the vault.
	ErrorAlreadyExists = errors.New("already exists")

	// Remote API transport errors.
	ErrorUnavailable = errors.New("service unavailable")

	// Singleton record types reject a second insert when the caller asks
	// for reject-instead-of-replace semantics.
	ErrorSingletonViolation = errors.New("record type admits a single record per profile")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
