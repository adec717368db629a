package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/demonlist/internal/config"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(context.Context, *sql.Tx) error
}

// migrations upgrade SQLite databases created before schema versioning.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_level_id_to_demons",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_case_insensitive_player_name_index",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "create_records_table",
		Up:      migrationV3,
	},
	{
		Version: 4,
		Name:    "key_players_by_folded_name",
		Up:      migrationV4,
	},
}

func createVersionTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// RunMigrations executes all pending migrations, each in its own transaction.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	if err := createVersionTable(ctx, db); err != nil {
		return err
	}

	var currentVersion int
	err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		fmt.Printf("Running migration %d: %s\n", migration.Version, migration.Name)

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(ctx, tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		_, err = tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		fmt.Printf("✓ Migration %d completed\n", migration.Version)
	}

	return nil
}

// migrationV1 adds the optional in-game level reference to demons
func migrationV1(ctx context.Context, tx *sql.Tx) error {
	exists, err := columnExists(ctx, tx, "demons", "level_id")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if _, err := tx.ExecContext(ctx, "ALTER TABLE demons ADD COLUMN level_id INTEGER"); err != nil {
		return fmt.Errorf("failed to add level_id: %w", err)
	}
	return nil
}

// migrationV2 enforces case-insensitive player name uniqueness.
// Fails if the existing data already holds names differing only in case.
func migrationV2(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "CREATE UNIQUE INDEX IF NOT EXISTS idx_players_name_nocase ON players(name COLLATE NOCASE)")
	if err != nil {
		return fmt.Errorf("failed to create player name index: %w", err)
	}
	return nil
}

// migrationV3 creates the records table
func migrationV3(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			progress INTEGER NOT NULL CHECK(progress BETWEEN 0 AND 100),
			video TEXT,
			status TEXT NOT NULL CHECK(status IN ('approved', 'submitted', 'rejected', 'under_consideration')) DEFAULT 'submitted',
			player INTEGER NOT NULL,
			demon INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (player) REFERENCES players(id),
			FOREIGN KEY (demon) REFERENCES demons(id) ON DELETE CASCADE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create records table: %w", err)
	}
	_, err = tx.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_records_demon ON records(demon)")
	return err
}

// migrationV4 replaces the NOCASE index, which folds ASCII only, with a unique
// index on a Unicode case-folded name_key column.
// Fails if the existing data already holds names that fold to the same key.
func migrationV4(ctx context.Context, tx *sql.Tx) error {
	exists, err := columnExists(ctx, tx, "players", "name_key")
	if err != nil {
		return err
	}
	if !exists {
		if _, err := tx.ExecContext(ctx, "ALTER TABLE players ADD COLUMN name_key TEXT NOT NULL DEFAULT ''"); err != nil {
			return fmt.Errorf("failed to add name_key: %w", err)
		}
	}
	if err := backfillNameKeys(ctx, tx, config.DriverSQLite); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DROP INDEX IF EXISTS idx_players_name_nocase"); err != nil {
		return fmt.Errorf("failed to drop player name index: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "CREATE UNIQUE INDEX IF NOT EXISTS idx_players_name_key ON players(name_key)"); err != nil {
		return fmt.Errorf("failed to create player name key index: %w", err)
	}
	return nil
}

func columnExists(ctx context.Context, tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
