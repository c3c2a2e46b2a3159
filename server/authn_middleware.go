package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/tableside/pos-auth/identity"
)

// AuthenticationMiddleware establishes the per-request identity from the
// access token cookie, refreshing the token once when validation fails and
// a refresh token is available. It never rejects a request: an
// unauthenticated request simply carries no identity, and the authorization
// middleware decides what that means for the route.
func (s *Server) AuthenticationMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id := s.authenticate(w, r); id != nil {
			r = r.WithContext(identity.NewContext(r.Context(), id))
		}
		next(w, r)
	}
}

// authenticate resolves the request's identity. Each IdP call is a single
// shot bounded by the credential service's timeout; any failure is terminal
// for this request.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) *identity.Identity {
	accessToken := cookieValue(r, accessTokenCookie)
	if accessToken == "" {
		return nil
	}

	claims, err := s.creds.ValidateToken(r.Context(), accessToken)
	if err == nil {
		return identity.FromClaims(claims)
	}

	refreshToken := cookieValue(r, refreshTokenCookie)
	if refreshToken == "" {
		return nil
	}

	tokens, refreshErr := s.creds.Refresh(r.Context(), refreshToken)
	if refreshErr != nil {
		// The session is beyond recovery; drop it so the next request
		// skips straight to login.
		log.Debug().Err(refreshErr).Msg("Authentication: refresh failed, clearing session")
		s.clearTokenCookies(w)
		return nil
	}
	s.setTokenCookies(w, tokens)

	claims, err = s.creds.ValidateToken(r.Context(), tokens.AccessToken)
	if err != nil {
		log.Warn().Err(err).Msg("Authentication: refreshed access token failed validation")
		return nil
	}
	return identity.FromClaims(claims)
}
