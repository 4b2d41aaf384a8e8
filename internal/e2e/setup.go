//go:build integration

package e2e

import (
	"crypto/rsa"
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/aicare-lung/monitoring-service/internal/auth"
	httpserver "github.com/aicare-lung/monitoring-service/internal/http"
	"github.com/aicare-lung/monitoring-service/internal/testutil"
)

// TestServer represents a complete E2E test environment
type TestServer struct {
	Server        *httptest.Server
	DB            *sql.DB
	MockPublisher *testutil.MockPublisher
	Verifier      *auth.Verifier
	PrivateKey    *rsa.PrivateKey
}

// SetupE2ETest creates a complete test environment:
// real PostgreSQL, real HTTP server with all routes, in-memory
// RabbitMQ publisher and a test JWT verifier with a signing key.
func SetupE2ETest(t *testing.T) *TestServer {
	t.Helper()

	db := testutil.SetupTestDB(t)

	mockPublisher := testutil.NewMockPublisher()

	perms, err := auth.LoadPermissions("../../permissions.yml")
	if err != nil {
		t.Fatalf("Failed to load permissions: %v", err)
	}

	verifier, privateKey := testutil.CreateTestVerifier(t)

	// Metrics stay nil here; the services skip recording when unset.
	router := httpserver.SetupRouter(db, verifier, perms, mockPublisher, nil)

	server := httptest.NewServer(router)

	return &TestServer{
		Server:        server,
		DB:            db,
		MockPublisher: mockPublisher,
		Verifier:      verifier,
		PrivateKey:    privateKey,
	}
}

// Cleanup cleans up all test resources
func (ts *TestServer) Cleanup(t *testing.T) {
	t.Helper()

	ts.Server.Close()
	testutil.CleanupTestDB(t, ts.DB)
	ts.DB.Close()
}

// GenerateAdminToken generates an ADMIN token for this test server
func (ts *TestServer) GenerateAdminToken(t *testing.T) string {
	t.Helper()
	return testutil.GenerateAdminToken(t, ts.PrivateKey)
}

// GenerateNurseToken generates a NURSE token for this test server
func (ts *TestServer) GenerateNurseToken(t *testing.T) string {
	t.Helper()
	return testutil.GenerateNurseToken(t, ts.PrivateKey)
}

// GenerateResearcherToken generates a RESEARCHER token for this test server
func (ts *TestServer) GenerateResearcherToken(t *testing.T) string {
	t.Helper()
	return testutil.GenerateResearcherToken(t, ts.PrivateKey)
}

// NewClient creates a new HTTP test client for this server with the given token
func (ts *TestServer) NewClient(token string) *testutil.HTTPTestClient {
	return testutil.NewHTTPTestClient(ts.Server.URL, token)
}
