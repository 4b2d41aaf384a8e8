package auth

import (
	"context"
	"crypto/rsa"
	"time"
)

// ContextWithPrincipal adds a principal to the context for testing purposes.
// Exported so other packages can build authenticated test requests.
func ContextWithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// NewTestJWKS builds a JWKS preloaded with a single key under kid
// "test-key-id". It never fetches and never refreshes.
func NewTestJWKS(pub *rsa.PublicKey) *JWKS {
	j := &JWKS{
		keys:   map[string]*rsa.PublicKey{"test-key-id": pub},
		ticker: time.NewTicker(time.Hour),
		quit:   make(chan struct{}),
	}
	j.ticker.Stop()
	return j
}
