package keycloak

import "golang.org/x/oauth2"

// GenerateCodeVerifier returns a fresh PKCE code verifier: 32 bytes from a
// secure random source, base64url-encoded without padding (43 characters,
// within the RFC 7636 bounds of 43-128).
func (s *Service) GenerateCodeVerifier() string {
	return oauth2.GenerateVerifier()
}

// CodeChallenge derives the S256 code challenge for a verifier:
// base64url(SHA-256(verifier)) without padding.
func CodeChallenge(verifier string) string {
	return oauth2.S256ChallengeFromVerifier(verifier)
}
