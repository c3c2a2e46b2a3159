// Package keycloak talks to the Keycloak identity provider on behalf of the
// POS gateway: it builds authorization URLs, exchanges and refreshes tokens,
// validates access tokens against the realm's JWKS and revokes refresh
// tokens on logout.
package keycloak

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

type Config struct {
	// Issuer is the realm issuer URL, e.g. "https://idp.example.com/realms/pos".
	Issuer       string
	ClientID     string
	ClientSecret string
	Scopes       []string
	// Timeout bounds every outbound IdP call. Zero means 10 seconds.
	Timeout time.Duration
}

// Service is the credential service. Construct one with New and inject it
// into the HTTP layer; it is safe for concurrent use.
type Service struct {
	cfg                Config
	provider           *oidc.Provider
	verifier           *oidc.IDTokenVerifier
	oauth              oauth2.Config
	httpClient         *http.Client
	endSessionEndpoint string
}

// New discovers the realm's OIDC configuration and prepares the verifier
// backed by the realm's JWKS. The key set is fetched lazily and cached by
// the provider.
func New(ctx context.Context, cfg Config) (*Service, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}

	provider, err := oidc.NewProvider(oidc.ClientContext(ctx, httpClient), cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("[keycloak New] failed to discover issuer %q: %w", cfg.Issuer, err)
	}

	// Keycloak publishes end_session_endpoint in the discovery document.
	var extra struct {
		EndSessionEndpoint string `json:"end_session_endpoint"`
	}
	if err := provider.Claims(&extra); err != nil || extra.EndSessionEndpoint == "" {
		extra.EndSessionEndpoint = strings.TrimRight(cfg.Issuer, "/") + "/protocol/openid-connect/logout"
	}

	return &Service{
		cfg:      cfg,
		provider: provider,
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     provider.Endpoint(),
			Scopes:       cfg.Scopes,
		},
		httpClient:         httpClient,
		endSessionEndpoint: extra.EndSessionEndpoint,
	}, nil
}

// AuthorizationURL builds the IdP authorization endpoint URL for the given
// CSRF state and PKCE verifier. The S256 challenge is derived from the
// verifier before the URL is assembled.
func (s *Service) AuthorizationURL(redirectURI, state, verifier string) string {
	return s.oauth.AuthCodeURL(state,
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam("redirect_uri", redirectURI),
	)
}

// ExchangeCode trades an authorization code plus its PKCE verifier for a
// token set. The redirect URI must match the one sent on the authorization
// request.
func (s *Service) ExchangeCode(ctx context.Context, code, redirectURI, verifier string) (*TokenSet, error) {
	ctx, cancel := s.idpContext(ctx)
	defer cancel()

	tok, err := s.oauth.Exchange(ctx, code,
		oauth2.VerifierOption(verifier),
		oauth2.SetAuthURLParam("redirect_uri", redirectURI),
	)
	if err != nil {
		return nil, idpError(ErrTokenExchange, err)
	}
	return newTokenSet(tok), nil
}

// Refresh trades a refresh token for a fresh token set. The returned set
// carries the rotated refresh token when the IdP issued one, otherwise the
// original.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenSet, error) {
	ctx, cancel := s.idpContext(ctx)
	defer cancel()

	tok, err := s.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, idpError(ErrTokenRefresh, err)
	}
	return newTokenSet(tok), nil
}

// ValidateToken verifies the access token's signature against the realm
// JWKS together with its issuer, audience and expiry, and returns the
// decoded claims.
func (s *Service) ValidateToken(ctx context.Context, accessToken string) (*TokenClaims, error) {
	ctx, cancel := s.idpContext(ctx)
	defer cancel()

	verified, err := s.verifier.Verify(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenValidation, err)
	}

	claims := new(TokenClaims)
	if err := verified.Claims(claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenValidation, err)
	}
	return claims, nil
}

// Logout revokes the refresh token at the IdP's end-session endpoint.
// Failures are logged and swallowed: the caller clears the local session
// regardless of IdP reachability.
func (s *Service) Logout(ctx context.Context, refreshToken string) {
	ctx, cancel := s.idpContext(ctx)
	defer cancel()

	form := url.Values{}
	form.Set("client_id", s.cfg.ClientID)
	form.Set("client_secret", s.cfg.ClientSecret)
	form.Set("refresh_token", refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endSessionEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		log.Err(err).Msg("Logout: failed to build revocation request")
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("Logout: token revocation failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		log.Warn().Int("status", resp.StatusCode).Msg("Logout: IdP rejected token revocation")
	}
}

// UserInfo calls the userinfo endpoint with the access token as bearer
// credential.
func (s *Service) UserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	ctx, cancel := s.idpContext(ctx)
	defer cancel()

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	raw, err := s.provider.UserInfo(oidc.ClientContext(ctx, s.httpClient), src)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}

	info := new(UserInfo)
	if err := raw.Claims(info); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo claims: %w", err)
	}
	return info, nil
}

// idpContext derives the per-call context every IdP operation runs under:
// the configured timeout plus the shared HTTP client.
func (s *Service) idpContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	return context.WithTimeout(ctx, s.cfg.Timeout)
}

// idpError wraps a token-endpoint failure, surfacing the IdP's HTTP status
// when one was received.
func idpError(sentinel, err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil {
		return fmt.Errorf("%w: identity provider responded with status %d", sentinel, re.Response.StatusCode)
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
