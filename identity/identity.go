// Package identity holds the per-request identity derived from a validated
// access token. Values are built fresh on every request and never cached, so
// a revoked session disappears as soon as its token stops validating.
package identity

import (
	"context"
	"slices"

	"github.com/tableside/pos-auth/keycloak"
)

// Identity describes the authenticated staff member for one request.
type Identity struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	VenueID   string
	Roles     []string
}

// FromClaims maps validated token claims onto an Identity. Missing string
// claims become empty strings; a missing realm_access becomes an empty role
// set.
func FromClaims(claims *keycloak.TokenClaims) *Identity {
	roles := claims.RealmAccess.Roles
	if roles == nil {
		roles = []string{}
	}
	return &Identity{
		ID:        claims.Subject,
		Email:     claims.Email,
		FirstName: claims.GivenName,
		LastName:  claims.FamilyName,
		VenueID:   claims.VenueID,
		Roles:     roles,
	}
}

// HasAnyRole reports whether the identity holds at least one of the given
// roles.
func (id *Identity) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if slices.Contains(id.Roles, role) {
			return true
		}
	}
	return false
}

type contextKey struct{}

// NewContext returns a context carrying the identity.
func NewContext(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored in the context, or nil for an
// unauthenticated request.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(contextKey{}).(*Identity)
	return id
}
