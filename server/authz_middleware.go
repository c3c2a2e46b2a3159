package server

import (
	"net/http"
	"net/url"

	"github.com/tableside/pos-auth/identity"
)

// AuthorizationMiddleware enforces the protected-route policy table. It
// must run after AuthenticationMiddleware so the identity, including any
// transparent refresh, is settled before the check.
func (s *Server) AuthorizationMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := identity.FromContext(r.Context())

		if id == nil {
			if bypass := s.bypassIdentity(); bypass != nil {
				id = bypass
				r = r.WithContext(identity.NewContext(r.Context(), id))
			}
		}

		policy := matchPolicy(s.policies, r.URL.Path)
		if policy == nil {
			next(w, r)
			return
		}

		if id == nil {
			http.Redirect(w, r, RouteLogin+"?redirect="+url.QueryEscape(r.URL.Path), http.StatusFound)
			return
		}

		if !id.HasAnyRole(policy.AllowedRoles...) {
			http.Redirect(w, r, RouteUnauthorized, http.StatusFound)
			return
		}

		next(w, r)
	}
}

// bypassIdentity returns the injected end-to-end test identity, or nil.
// Both ENV=TEST and a non-empty E2E_BYPASS_ROLES are required, so a
// deployed environment can never satisfy the bypass by accident.
func (s *Server) bypassIdentity() *identity.Identity {
	if s.env != "TEST" {
		return nil
	}
	roles := s.config.GetBypassRoles()
	if len(roles) == 0 {
		return nil
	}
	return &identity.Identity{
		ID:        "e2e-test-user",
		Email:     "e2e@test.local",
		FirstName: "E2E",
		LastName:  "Test",
		VenueID:   "test-venue",
		Roles:     roles,
	}
}
