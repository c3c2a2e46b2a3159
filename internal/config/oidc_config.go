package config

import (
	"strings"
	"time"
)

type OIDCConfig interface {
	GetIssuer() string
	GetClientID() string
	GetClientSecret() string
	GetScopes() []string
	GetIdPTimeout() time.Duration
}

type OIDC struct{}

var _ OIDCConfig = OIDC{}

// GetIssuer returns the Keycloak realm issuer URL,
// e.g. "https://auth.example.com/realms/pos"
func (OIDC) GetIssuer() string {
	return GetEnv("OIDC_ISSUER", "http://localhost:8180/realms/pos")
}

func (OIDC) GetClientID() string {
	return GetEnv("OIDC_CLIENT_ID", "pos-web")
}

func (OIDC) GetClientSecret() string {
	return GetEnv("OIDC_CLIENT_SECRET", "")
}

func (OIDC) GetScopes() []string {
	return strings.Fields(GetEnv("OIDC_SCOPES", "openid profile email"))
}

// GetIdPTimeout bounds every outbound call to the identity provider.
// A call that exceeds it is treated like any other validation failure.
func (OIDC) GetIdPTimeout() time.Duration {
	d, err := time.ParseDuration(GetEnv("IDP_TIMEOUT", "10s"))
	if err != nil {
		return 10 * time.Second
	}
	return d
}
