package common

import "errors"

// Sentinel errors shared by the gateway, session and service layers.
// Callers should use errors.Is to match these values.
var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Gateway / auth errors.
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Generic internal failure.
	ErrorInternal = errors.New("internal error")
)
