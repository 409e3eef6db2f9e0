// Package common contains shared constants and sentinel errors used across
// snipcli components.
package common

const (
	// AuthHeaderName is the HTTP header used to carry the bearer token on
	// outbound requests.
	AuthHeaderName = "Authorization"

	// AuthScheme prefixes the credential token in the auth header.
	AuthScheme = "Bearer"

	// RequestIDHeaderName carries the per-request correlation id.
	RequestIDHeaderName = "X-Request-Id"

	// TokenSlotKey and ProfileSlotKey are the fixed names of the two records
	// in the persisted credential slot. Absence of the token record is the
	// sole signal for "logged out".
	TokenSlotKey   = "auth_token"
	ProfileSlotKey = "user_profile"
)
