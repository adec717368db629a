package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/demonlist/internal/config"
	"github.com/example/demonlist/internal/core/player"
)

// SchemaSQL is the complete SQLite schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// Tests load it through GetSchemaSQL() instead of declaring their own tables,
// so repository code referencing a missing column fails at test time.
//
// Position uniqueness is checked per row by SQLite; the demon repository
// renumbers through negative positions to stay clear of it. Players are unique
// on name_key, the Unicode case fold of the name computed by player.NameKey,
// which is what makes resolve-or-create race safe.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS players (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	name_key TEXT NOT NULL,
	banned INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_players_name_key ON players(name_key);

CREATE TABLE IF NOT EXISTS demons (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL COLLATE NOCASE,
	position INTEGER NOT NULL UNIQUE,
	requirement INTEGER NOT NULL DEFAULT 100 CHECK(requirement BETWEEN 0 AND 100),
	video TEXT,
	fps TEXT,
	verifier INTEGER NOT NULL,
	publisher INTEGER NOT NULL,
	level_id INTEGER,
	hidden INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (verifier) REFERENCES players(id),
	FOREIGN KEY (publisher) REFERENCES players(id)
);

CREATE TABLE IF NOT EXISTS creators (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	demon INTEGER NOT NULL,
	creator INTEGER NOT NULL,
	FOREIGN KEY (demon) REFERENCES demons(id) ON DELETE CASCADE,
	FOREIGN KEY (creator) REFERENCES players(id)
);

CREATE INDEX IF NOT EXISTS idx_creators_demon ON creators(demon);

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
);

CREATE INDEX IF NOT EXISTS idx_records_demon ON records(demon);
`

// PostgresSchemaSQL is the Postgres counterpart of SchemaSQL.
// The position constraint is deferrable so a single UPDATE can renumber a range.
// The unique index on players.name_key is created by upgradePostgresNameKeys
// once every row has a key.
const PostgresSchemaSQL = `
CREATE TABLE IF NOT EXISTS players (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	name_key TEXT NOT NULL,
	banned BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS demons (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	position INTEGER NOT NULL,
	requirement SMALLINT NOT NULL DEFAULT 100 CHECK (requirement BETWEEN 0 AND 100),
	video TEXT,
	fps TEXT,
	verifier BIGINT NOT NULL REFERENCES players(id),
	publisher BIGINT NOT NULL REFERENCES players(id),
	level_id BIGINT,
	hidden BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT demons_position_key UNIQUE (position) DEFERRABLE INITIALLY IMMEDIATE
);

CREATE TABLE IF NOT EXISTS creators (
	id BIGSERIAL PRIMARY KEY,
	demon BIGINT NOT NULL REFERENCES demons(id) ON DELETE CASCADE,
	creator BIGINT NOT NULL REFERENCES players(id)
);

CREATE INDEX IF NOT EXISTS idx_creators_demon ON creators (demon);

CREATE TABLE IF NOT EXISTS records (
	id BIGSERIAL PRIMARY KEY,
	progress SMALLINT NOT NULL CHECK (progress BETWEEN 0 AND 100),
	video TEXT,
	status TEXT NOT NULL DEFAULT 'submitted' CHECK (status IN ('approved', 'submitted', 'rejected', 'under_consideration')),
	player BIGINT NOT NULL REFERENCES players(id),
	demon BIGINT NOT NULL REFERENCES demons(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_records_demon ON records (demon);
`

// InitSchema creates or upgrades the schema for the given driver.
func InitSchema(ctx context.Context, db *sql.DB, driver string) error {
	if driver == config.DriverPostgres {
		return initPostgres(ctx, db)
	}

	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		var legacyCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='demons'").Scan(&legacyCount)
		if err != nil {
			return err
		}

		if legacyCount > 0 {
			// Tables from before versioning - upgrade in place
			return RunMigrations(ctx, db)
		}

		// Completely fresh install - create modern schema directly and mark
		// every migration as applied
		if _, err := db.ExecContext(ctx, SchemaSQL); err != nil {
			return err
		}
		if err := createVersionTable(ctx, db); err != nil {
			return err
		}
		for _, m := range migrations {
			if _, err := db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return err
			}
		}
		return nil
	}

	// schema_version table exists - run any pending migrations
	return RunMigrations(ctx, db)
}

func initPostgres(ctx context.Context, db *sql.DB) error {
	for _, stmt := range splitStatements(PostgresSchemaSQL) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply postgres schema: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin name key upgrade: %w", err)
	}
	defer tx.Rollback()

	if err := upgradePostgresNameKeys(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

// upgradePostgresNameKeys brings players tables created before name_key existed
// up to date. Every statement is a no-op on a current schema.
func upgradePostgresNameKeys(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "ALTER TABLE players ADD COLUMN IF NOT EXISTS name_key TEXT"); err != nil {
		return fmt.Errorf("failed to add name_key: %w", err)
	}
	if err := backfillNameKeys(ctx, tx, config.DriverPostgres); err != nil {
		return err
	}
	stmts := []string{
		"ALTER TABLE players ALTER COLUMN name_key SET NOT NULL",
		"DROP INDEX IF EXISTS idx_players_name_lower",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_players_name_key ON players (name_key)",
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to index player name keys: %w", err)
		}
	}
	return nil
}

// backfillNameKeys fills name_key for every player that lacks one.
func backfillNameKeys(ctx context.Context, tx *sql.Tx, driver string) error {
	rows, err := tx.QueryContext(ctx, "SELECT id, name FROM players WHERE name_key IS NULL OR name_key = ''")
	if err != nil {
		return fmt.Errorf("failed to read players without name key: %w", err)
	}

	type pending struct {
		id   int64
		name string
	}
	var todo []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.id, &p.name); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan player: %w", err)
		}
		todo = append(todo, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	update := rebind(driver, "UPDATE players SET name_key = ? WHERE id = ?")
	for _, p := range todo {
		if _, err := tx.ExecContext(ctx, update, player.NameKey(p.name), p.id); err != nil {
			return fmt.Errorf("failed to set name key of player %d: %w", p.id, err)
		}
	}
	return nil
}

func splitStatements(script string) []string {
	var stmts []string
	for _, part := range strings.Split(script, ";") {
		if s := strings.TrimSpace(part); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}

// GetPostgresSchemaStatements returns the Postgres schema split into statements.
func GetPostgresSchemaStatements() []string {
	return splitStatements(PostgresSchemaSQL)
}
