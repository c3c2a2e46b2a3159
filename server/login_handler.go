package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// LoginHandler starts the authorization-code flow: it generates the PKCE
// verifier and an independent CSRF state, persists them with the post-login
// redirect target as short-lived cookies, and sends the user agent to the
// IdP (GET /auth/login?redirect=/orders).
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		verifier := s.creds.GenerateCodeVerifier()
		state := uuid.NewString()
		target := sanitizeRedirect(r.URL.Query().Get("redirect"))

		maxAge := s.config.GetFlowCookieMaxAge()
		s.setCookie(w, codeVerifierCookie, verifier, maxAge)
		s.setCookie(w, stateCookie, state, maxAge)
		s.setCookie(w, postLoginRedirectCookie, target, maxAge)

		authURL := s.creds.AuthorizationURL(s.callbackURL(r), state, verifier)
		http.Redirect(w, r, authURL, http.StatusFound)
	}
}

// sanitizeRedirect confines the post-login target to a local path so the
// login route cannot be used as an open redirector. Backslashes are
// rejected outright: browsers normalize them to forward slashes in the
// Location header, which would turn "/\host" into a protocol-relative URL.
func sanitizeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") ||
		strings.HasPrefix(target, "//") || strings.ContainsRune(target, '\\') {
		return "/"
	}
	return target
}

func (s *Server) callbackURL(r *http.Request) string {
	return fmt.Sprintf("%s://%s%s", getScheme(r), r.Host, RouteCallback)
}
