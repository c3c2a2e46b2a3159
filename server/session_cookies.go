package server

import (
	"net/http"

	"github.com/tableside/pos-auth/keycloak"
)

const (
	// accessTokenCookie holds the IdP access token; its lifetime tracks
	// the token's expires_in.
	accessTokenCookie = "access_token"
	// refreshTokenCookie holds the IdP refresh token for 30 days.
	refreshTokenCookie = "refresh_token"

	// Short-lived cookies that carry the login flow across the IdP
	// round-trip; consumed and deleted by the callback handler.
	codeVerifierCookie      = "oauth_code_verifier"
	stateCookie             = "oauth_state"
	postLoginRedirectCookie = "post_login_redirect"

	// fallbackAccessTokenMaxAge caps the access token cookie when the IdP
	// response carries no usable expires_in; MaxAge 0 would make it a
	// browser-session cookie with no bound at all.
	fallbackAccessTokenMaxAge = 300
)

func (s *Server) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookies(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func (s *Server) deleteCookie(w http.ResponseWriter, name string) {
	s.setCookie(w, name, "", -1)
}

// secureCookies is true only in production: local DEV and CI run over
// plain HTTP.
func (s *Server) secureCookies() bool {
	return s.env == "PROD"
}

func (s *Server) setTokenCookies(w http.ResponseWriter, tokens *keycloak.TokenSet) {
	maxAge := tokens.ExpiresIn
	if maxAge <= 0 {
		maxAge = fallbackAccessTokenMaxAge
	}
	s.setCookie(w, accessTokenCookie, tokens.AccessToken, maxAge)
	if tokens.RefreshToken != "" {
		s.setCookie(w, refreshTokenCookie, tokens.RefreshToken, s.config.GetRefreshTokenMaxAge())
	}
}

func (s *Server) clearTokenCookies(w http.ResponseWriter) {
	s.deleteCookie(w, accessTokenCookie)
	s.deleteCookie(w, refreshTokenCookie)
}

// cookieValue returns the named cookie's value, or "" when absent.
func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
