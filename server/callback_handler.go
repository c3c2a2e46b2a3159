package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/tableside/pos-auth/internal/errors"
)

// CallbackHandler completes the authorization-code flow. Every gate fails
// closed in order: IdP error, missing parameters, CSRF state, code
// verifier, then the exchange itself.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		// Check for authorization errors relayed by the IdP
		if errParam := query.Get("error"); errParam != "" {
			description := query.Get("error_description")
			if description == "" {
				description = errParam
			}
			http.Error(w, "Authentication failed: "+description, http.StatusBadRequest)
			return
		}

		code := query.Get("code")
		state := query.Get("state")
		if code == "" || state == "" {
			http.Error(w, errors.ErrMissingParameters.Error(), http.StatusBadRequest)
			return
		}

		// CSRF protection: exact match against the state we set at login,
		// no normalization.
		if stored := cookieValue(r, stateCookie); stored == "" || stored != state {
			http.Error(w, errors.ErrStateMismatch.Error(), http.StatusBadRequest)
			return
		}

		verifier := cookieValue(r, codeVerifierCookie)
		if verifier == "" {
			http.Error(w, errors.ErrMissingVerifier.Error(), http.StatusBadRequest)
			return
		}

		tokens, err := s.creds.ExchangeCode(r.Context(), code, s.callbackURL(r), verifier)
		if err != nil {
			log.Err(err).Msg("Callback: code exchange failed")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		s.setTokenCookies(w, tokens)
		s.deleteCookie(w, codeVerifierCookie)
		s.deleteCookie(w, stateCookie)

		target := cookieValue(r, postLoginRedirectCookie)
		if target == "" {
			target = "/"
		}
		s.deleteCookie(w, postLoginRedirectCookie)

		http.Redirect(w, r, target, http.StatusFound)
	}
}
