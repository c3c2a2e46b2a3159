package server

import (
	"context"

	"github.com/tableside/pos-auth/keycloak"
)

// Credentials is the credential-service surface the HTTP layer depends on.
// *keycloak.Service satisfies it; tests substitute a fake.
type Credentials interface {
	GenerateCodeVerifier() string
	AuthorizationURL(redirectURI, state, verifier string) string
	ExchangeCode(ctx context.Context, code, redirectURI, verifier string) (*keycloak.TokenSet, error)
	Refresh(ctx context.Context, refreshToken string) (*keycloak.TokenSet, error)
	ValidateToken(ctx context.Context, accessToken string) (*keycloak.TokenClaims, error)
	Logout(ctx context.Context, refreshToken string)
	UserInfo(ctx context.Context, accessToken string) (*keycloak.UserInfo, error)
}

var _ Credentials = (*keycloak.Service)(nil)
