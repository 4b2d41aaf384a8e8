package testutil

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
)

// SetupTestDB connects to the local aicare_test database. Override the
// connection string with TEST_DATABASE_URL.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		connStr = "host=localhost port=5432 user=localadmin password=localadmin dbname=aicare_test sslmode=disable"
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	return db
}

// CleanupTestDB truncates all monitoring tables between tests
func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()

	// Reports, interventions, schedules, education pushes and problems
	// all reference patients, so one cascading truncate from the parent
	// table clears everything.
	_, err := db.Exec("TRUNCATE TABLE aicare.patients CASCADE")
	if err != nil {
		t.Logf("Warning: Failed to clean up patients: %v", err)
	}
}
