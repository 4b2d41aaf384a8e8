package testutil

import (
	"crypto/rsa"
	"testing"

	"github.com/aicare-lung/monitoring-service/internal/auth"
)

// CreateTestVerifier creates a verifier that accepts tokens signed with the
// returned private key.
func CreateTestVerifier(t *testing.T) (*auth.Verifier, *rsa.PrivateKey) {
	t.Helper()

	privateKey, publicKey := GenerateTestKeyPair(t)

	testJWKS := auth.NewTestJWKS(publicKey)

	cfg := auth.Config{
		Issuer: TestIssuer,
	}

	return auth.NewVerifier(cfg, testJWKS), privateKey
}
