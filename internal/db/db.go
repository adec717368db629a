package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/example/demonlist/internal/config"
)

// Open connects to the configured store and brings its schema up to date.
func Open(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	dsn := cfg.DBDSN
	if cfg.DBDriver == config.DriverSQLite {
		path := dsn
		if path == "" {
			var err error
			path, err = config.DefaultSQLitePath()
			if err != nil {
				return nil, err
			}
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = SQLiteDSN(path)
	}

	conn, err := sql.Open(cfg.DBDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	if err := InitSchema(ctx, conn, cfg.DBDriver); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return conn, nil
}

// SQLiteDSN builds a go-sqlite3 DSN for path. Transactions start with
// BEGIN IMMEDIATE so each one holds the write lock from its first statement;
// foreign keys are enforced and lock waits are bounded.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_txlock=immediate&_foreign_keys=on&_busy_timeout=5000", path)
}
