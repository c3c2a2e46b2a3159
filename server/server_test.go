package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tableside/pos-auth/internal/config"
	"github.com/tableside/pos-auth/keycloak"
	"github.com/tableside/pos-auth/server"
)

const (
	testAuthURL      = "https://idp.example.com/realms/pos/protocol/openid-connect/auth?fake=1"
	testVerifier     = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	testAccessToken  = "access-token-1"
	testRefreshToken = "refresh-token-1"
)

// fakeCreds substitutes the Keycloak credential service. Each behavior is
// a swappable function field; call counters support interaction asserts.
type fakeCreds struct {
	generateFn func() string
	authURLFn  func(redirectURI, state, verifier string) string
	exchangeFn func(ctx context.Context, code, redirectURI, verifier string) (*keycloak.TokenSet, error)
	refreshFn  func(ctx context.Context, refreshToken string) (*keycloak.TokenSet, error)
	validateFn func(ctx context.Context, accessToken string) (*keycloak.TokenClaims, error)
	userInfoFn func(ctx context.Context, accessToken string) (*keycloak.UserInfo, error)

	exchangeCalls []string
	refreshCalls  []string
	validateCalls []string
	logoutCalls   []string
}

func newFakeCreds() *fakeCreds {
	return &fakeCreds{
		generateFn: func() string { return testVerifier },
		authURLFn: func(redirectURI, state, verifier string) string {
			return testAuthURL
		},
		exchangeFn: func(ctx context.Context, code, redirectURI, verifier string) (*keycloak.TokenSet, error) {
			return &keycloak.TokenSet{AccessToken: testAccessToken, RefreshToken: testRefreshToken, ExpiresIn: 3600}, nil
		},
		refreshFn: func(ctx context.Context, refreshToken string) (*keycloak.TokenSet, error) {
			return &keycloak.TokenSet{AccessToken: testAccessToken, RefreshToken: testRefreshToken, ExpiresIn: 3600}, nil
		},
		validateFn: func(ctx context.Context, accessToken string) (*keycloak.TokenClaims, error) {
			return nil, keycloak.ErrTokenValidation
		},
		userInfoFn: func(ctx context.Context, accessToken string) (*keycloak.UserInfo, error) {
			return &keycloak.UserInfo{Subject: "user-1", Email: "sam.waiter@example.com"}, nil
		},
	}
}

func (f *fakeCreds) GenerateCodeVerifier() string { return f.generateFn() }

func (f *fakeCreds) AuthorizationURL(redirectURI, state, verifier string) string {
	return f.authURLFn(redirectURI, state, verifier)
}

func (f *fakeCreds) ExchangeCode(ctx context.Context, code, redirectURI, verifier string) (*keycloak.TokenSet, error) {
	f.exchangeCalls = append(f.exchangeCalls, code)
	return f.exchangeFn(ctx, code, redirectURI, verifier)
}

func (f *fakeCreds) Refresh(ctx context.Context, refreshToken string) (*keycloak.TokenSet, error) {
	f.refreshCalls = append(f.refreshCalls, refreshToken)
	return f.refreshFn(ctx, refreshToken)
}

func (f *fakeCreds) ValidateToken(ctx context.Context, accessToken string) (*keycloak.TokenClaims, error) {
	f.validateCalls = append(f.validateCalls, accessToken)
	return f.validateFn(ctx, accessToken)
}

func (f *fakeCreds) Logout(ctx context.Context, refreshToken string) {
	f.logoutCalls = append(f.logoutCalls, refreshToken)
}

func (f *fakeCreds) UserInfo(ctx context.Context, accessToken string) (*keycloak.UserInfo, error) {
	return f.userInfoFn(ctx, accessToken)
}

var _ server.Credentials = (*fakeCreds)(nil)

type serverFixture struct {
	creds *fakeCreds
	srv   *server.Server
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()
	t.Setenv("ENV", "STAGE") // keep route/request logging quiet

	creds := newFakeCreds()
	return &serverFixture{creds: creds, srv: server.New(config.New(), creds)}
}

// validClaims makes the fake accept the given access token and resolve it
// to a fixed identity with the given roles.
func (f *serverFixture) validClaims(acceptToken string, roles ...string) {
	f.creds.validateFn = func(ctx context.Context, accessToken string) (*keycloak.TokenClaims, error) {
		if accessToken != acceptToken {
			return nil, keycloak.ErrTokenValidation
		}
		claims := &keycloak.TokenClaims{
			Email:       "sam.waiter@example.com",
			GivenName:   "Sam",
			FamilyName:  "Waiter",
			VenueID:     "venue-9",
			RealmAccess: keycloak.RealmAccess{Roles: roles},
		}
		claims.Subject = "user-1"
		return claims, nil
	}
}

func (f *serverFixture) do(r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.srv.ServeHTTP(rec, r)
	return rec
}

// responseCookie finds a Set-Cookie entry by name, or nil.
func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func requireDeletedCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) {
	t.Helper()
	cookie := responseCookie(rec, name)
	require.NotNil(t, cookie, "expected %s to be deleted via Set-Cookie", name)
	require.Empty(t, cookie.Value)
	require.Negative(t, cookie.MaxAge)
}
