// Package common defines shared constants and sentinel errors used across
// the promptmart client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Gateway-level errors.
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrUnavailable  = errors.New("server unavailable")

	// Session errors. ErrUnexpected marks transport-class failures that the
	// UI reports generically, as opposed to a server-rejected credential.
	ErrUnexpected         = errors.New("unexpected error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginRequired      = errors.New("login required")

	// Validation / gating errors caught before any network call.
	ErrValidation      = errors.New("validation error")
	ErrPremiumRequired = errors.New("premium plan required")
)
