package config

import "strings"

type SecurityConfig interface {
	GetFlowCookieMaxAge() int
	GetRefreshTokenMaxAge() int
	GetBypassRoles() []string
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetFlowCookieMaxAge is the lifetime in seconds of the short-lived cookies
// that carry PKCE material between the login redirect and the callback.
func (Security) GetFlowCookieMaxAge() int {
	return 600
}

// GetRefreshTokenMaxAge is the lifetime in seconds of the refresh token
// cookie. Keycloak offline/refresh tokens for the POS realm live 30 days.
func (Security) GetRefreshTokenMaxAge() int {
	return 30 * 24 * 3600
}

// GetBypassRoles returns the roles for the injected end-to-end test
// identity. The bypass is only honoured when ENV=TEST; an empty value
// disables it entirely.
func (Security) GetBypassRoles() []string {
	return strings.Fields(GetEnv("E2E_BYPASS_ROLES", ""))
}
