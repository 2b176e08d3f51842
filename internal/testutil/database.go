package testutil

import (
	"database/sql"
	"testing"

	"github.com/ndewijer/RemitWise-Backend/internal/database"
	_ "modernc.org/sqlite" // Test Package
)

// TestNamespace is the record namespace used by the service helpers.
const TestNamespace = "test"

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// CountRecords returns the number of stored records in namespace.
func CountRecords(t *testing.T, db *sql.DB, namespace string) int {
	t.Helper()

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM record WHERE namespace = ?", namespace).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count records: %v", err)
	}
	return count
}

// RawRecord returns the stored value for key in namespace, failing the test if it is missing.
func RawRecord(t *testing.T, db *sql.DB, namespace, key string) string {
	t.Helper()

	var value string
	err := db.QueryRow("SELECT value FROM record WHERE namespace = ? AND key = ?", namespace, key).Scan(&value)
	if err != nil {
		t.Fatalf("Failed to read record %s/%s: %v", namespace, key, err)
	}
	return value
}

// PutRawRecord stores value directly, bypassing the repositories.
// Useful for seeding corrupt data.
func PutRawRecord(t *testing.T, db *sql.DB, namespace, key, value string) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO record (namespace, key, value) VALUES (?, ?, ?)
		ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value
	`, namespace, key, value)
	if err != nil {
		t.Fatalf("Failed to write record %s/%s: %v", namespace, key, err)
	}
}
