package keycloak

import "errors"

var (
	// ErrTokenExchange is returned when the IdP rejects an
	// authorization-code exchange.
	ErrTokenExchange = errors.New("token exchange failed")

	// ErrTokenRefresh is returned when the IdP rejects a refresh grant.
	ErrTokenRefresh = errors.New("token refresh failed")

	// ErrTokenValidation is returned for any token that fails signature,
	// issuer, audience or expiry checks.
	ErrTokenValidation = errors.New("token validation failed")
)
