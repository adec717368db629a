// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Use setupTestDB() and the seed* helpers instead of
// declaring tables in test files.
package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/demonlist/internal/adapters/sqlite"
	coreplayer "github.com/example/demonlist/internal/core/player"
	"github.com/example/demonlist/internal/db"
	"github.com/example/demonlist/internal/ports/secondary"
)

// setupTestDB creates a file-backed database with the authoritative schema.
// A temp file is used rather than :memory: so every pooled connection sees
// the same database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", db.SQLiteDSN(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// beginTx opens a transaction that is rolled back when the test ends.
func beginTx(t *testing.T, testDB *sql.DB) secondary.Tx {
	t.Helper()
	tx, err := sqlite.NewTransactor(testDB).Begin(context.Background())
	if err != nil {
		t.Fatalf("failed to begin tx: %v", err)
	}
	t.Cleanup(func() {
		tx.Rollback()
	})
	return tx
}

// seedPlayer inserts a player and returns its ID.
func seedPlayer(t *testing.T, testDB *sql.DB, name string) int64 {
	t.Helper()
	result, err := testDB.Exec("INSERT INTO players (name, name_key) VALUES (?, ?)", name, coreplayer.NameKey(name))
	if err != nil {
		t.Fatalf("failed to seed player: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// seedDemon inserts a demon at position, verified and published by playerID.
func seedDemon(t *testing.T, testDB *sql.DB, name string, position int, playerID int64) int64 {
	t.Helper()
	result, err := testDB.Exec(
		"INSERT INTO demons (name, position, verifier, publisher) VALUES (?, ?, ?, ?)",
		name, position, playerID, playerID,
	)
	if err != nil {
		t.Fatalf("failed to seed demon: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// seedList inserts demons named after their initial positions 1..n.
func seedList(t *testing.T, testDB *sql.DB, names ...string) map[string]int64 {
	t.Helper()
	owner := seedPlayer(t, testDB, "Owner")
	ids := make(map[string]int64, len(names))
	for i, name := range names {
		ids[name] = seedDemon(t, testDB, name, i+1, owner)
	}
	return ids
}

// positions returns demon names keyed by position.
func positions(t *testing.T, testDB *sql.DB) map[int]string {
	t.Helper()
	rows, err := testDB.Query("SELECT position, name FROM demons")
	if err != nil {
		t.Fatalf("failed to read positions: %v", err)
	}
	defer rows.Close()
	got := map[int]string{}
	for rows.Next() {
		var pos int
		var name string
		if err := rows.Scan(&pos, &name); err != nil {
			t.Fatalf("failed to scan position: %v", err)
		}
		got[pos] = name
	}
	return got
}
