package keycloak

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// TokenSet is the pair of credentials returned by the token endpoint.
// RefreshToken is empty when the IdP did not issue one.
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int
}

func newTokenSet(tok *oauth2.Token) *TokenSet {
	return &TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresIn:    expiresIn(tok),
	}
}

// expiresIn recovers the expires_in value the IdP sent. The raw field is
// preferred because the Expiry timestamp has already been skewed by the
// client clock delta when we read it back.
func expiresIn(tok *oauth2.Token) int {
	if v, ok := tok.Extra("expires_in").(float64); ok && v > 0 {
		return int(v)
	}
	if tok.Expiry.IsZero() {
		return 0
	}
	return int(time.Until(tok.Expiry).Seconds())
}

// RealmAccess carries the realm-level role list of a Keycloak access token.
type RealmAccess struct {
	Roles []string `json:"roles"`
}

// TokenClaims are the decoded claims of a validated access token.
type TokenClaims struct {
	jwt.RegisteredClaims
	Email       string      `json:"email"`
	GivenName   string      `json:"given_name"`
	FamilyName  string      `json:"family_name"`
	VenueID     string      `json:"venue_id"`
	RealmAccess RealmAccess `json:"realm_access"`
}

// HasRole reports whether the claims carry the given realm role.
// Absent or empty realm_access yields false, never an error.
func HasRole(claims *TokenClaims, role string) bool {
	if claims == nil {
		return false
	}
	return slices.Contains(claims.RealmAccess.Roles, role)
}

// UserInfo is the subset of the userinfo response the POS cares about.
type UserInfo struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	VenueID       string `json:"venue_id"`
}
