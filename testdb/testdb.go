// Package testdb opens throwaway SQLite databases for tests. The production
// store runs on MySQL; the SQL in this repo sticks to the portable subset so
// tests can run against an in-memory database instead.
package testdb

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE event_configuration (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	event_name TEXT NOT NULL,
	event_category TEXT NOT NULL,
	event_date TEXT NOT NULL,
	registration_start_date TEXT NOT NULL,
	registration_end_date TEXT NOT NULL,
	created INTEGER NOT NULL
);

CREATE TABLE event_registration (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	full_name TEXT NOT NULL,
	email TEXT NOT NULL,
	college_name TEXT NOT NULL,
	department TEXT NOT NULL,
	event_category TEXT NOT NULL,
	event_date TEXT NOT NULL,
	event_id INTEGER NOT NULL,
	created INTEGER NOT NULL,
	UNIQUE (email, event_date)
);
`

// New returns an isolated in-memory database with the schema applied. It is
// closed automatically when the test finishes.
func New(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// A single connection keeps the in-memory database alive and serializes
	// writes the same way the production pool does per request.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}
