package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/tableside/pos-auth/identity"
	"github.com/tableside/pos-auth/internal/errors"
)

// Placeholder section handlers sitting behind the policy table. The real
// POS screens (orders, menu, payments) are served by the web front end;
// these endpoints exist so the guards protect live routes and so operators
// can probe the gateway.

func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"service": s.config.GetAppName(),
			"status":  "ok",
			"login":   RouteLogin,
		}
		if id := identity.FromContext(r.Context()); id != nil {
			body["user"] = id.Email
		}
		writeJSON(w, http.StatusOK, body)
	}
}

func (s *Server) UnauthorizedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]any{
			"error": "You do not have permission to access this section",
		})
	}
}

// UserInfoHandler proxies the IdP userinfo endpoint for the current
// session (GET /auth/userinfo).
func (s *Server) UserInfoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessToken := cookieValue(r, accessTokenCookie)
		if accessToken == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": errors.ErrUnauthenticated.Error()})
			return
		}

		info, err := s.creds.UserInfo(r.Context(), accessToken)
		if err != nil {
			log.Err(err).Msg("UserInfo: request to IdP failed")
			writeJSON(w, http.StatusBadGateway, map[string]any{"error": "userinfo request failed"})
			return
		}
		writeJSON(w, http.StatusOK, info)
	}
}

func (s *Server) OrdersHandler() http.HandlerFunc {
	return s.sectionHandler("orders")
}

func (s *Server) InventoryHandler() http.HandlerFunc {
	return s.sectionHandler("inventory")
}

func (s *Server) AdminHandler() http.HandlerFunc {
	return s.sectionHandler("admin")
}

func (s *Server) ManagerHandler() http.HandlerFunc {
	return s.sectionHandler("manager")
}

func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": errors.ErrNotFound.Error()})
	}
}

// sectionHandler echoes the authenticated identity for a guarded POS
// section. The authorization middleware guarantees an identity is present
// by the time this runs.
func (s *Server) sectionHandler(section string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := identity.FromContext(r.Context())
		if id == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": errors.ErrUnauthenticated.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"section": section,
			"user": map[string]any{
				"id":        id.ID,
				"email":     id.Email,
				"firstName": id.FirstName,
				"lastName":  id.LastName,
				"venueId":   id.VenueID,
				"roles":     id.Roles,
			},
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("failed to encode response body")
	}
}
