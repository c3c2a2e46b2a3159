package server

import "net/http"

// LogoutHandler revokes the refresh token at the IdP when one is present
// (best effort, the credential service swallows failures), clears both
// token cookies and sends the user back to login. Cookie clearing and the
// redirect are unconditional.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if refreshToken := cookieValue(r, refreshTokenCookie); refreshToken != "" {
			s.creds.Logout(r.Context(), refreshToken)
		}

		s.clearTokenCookies(w)
		http.Redirect(w, r, RouteLogin, http.StatusFound)
	}
}
