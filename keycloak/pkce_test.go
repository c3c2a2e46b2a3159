package keycloak_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tableside/pos-auth/keycloak"
)

// RFC 7636 appendix B test vector
const (
	rfcVerifier  = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	rfcChallenge = "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"
)

var verifierCharset = regexp.MustCompile(`^[A-Za-z0-9\-._~]+$`)

func TestGenerateCodeVerifier(t *testing.T) {
	f := newIDPFixture(t)
	svc := f.service(t)

	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		verifier := svc.GenerateCodeVerifier()
		require.GreaterOrEqual(t, len(verifier), 43)
		require.LessOrEqual(t, len(verifier), 128)
		require.Regexp(t, verifierCharset, verifier)
		require.False(t, seen[verifier], "verifier repeated: %s", verifier)
		seen[verifier] = true
	}
}

func TestCodeChallenge(t *testing.T) {
	t.Run("matches the RFC 7636 test vector", func(t *testing.T) {
		require.Equal(t, rfcChallenge, keycloak.CodeChallenge(rfcVerifier))
	})

	t.Run("deterministic", func(t *testing.T) {
		require.Equal(t, keycloak.CodeChallenge("some-verifier-some-verifier-some-verifier-1"),
			keycloak.CodeChallenge("some-verifier-some-verifier-some-verifier-1"))
	})

	t.Run("43 base64url characters without padding", func(t *testing.T) {
		challenge := keycloak.CodeChallenge(rfcVerifier)
		require.Len(t, challenge, 43)
		require.NotContains(t, challenge, "+")
		require.NotContains(t, challenge, "/")
		require.NotContains(t, challenge, "=")
	})

	t.Run("distinct verifiers yield distinct challenges", func(t *testing.T) {
		require.NotEqual(t,
			keycloak.CodeChallenge("verifier-a-verifier-a-verifier-a-verifier-a"),
			keycloak.CodeChallenge("verifier-b-verifier-b-verifier-b-verifier-b"))
	})
}
