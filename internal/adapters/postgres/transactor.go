// Package postgres implements the secondary ports on Postgres through the
// pgx database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/example/demonlist/internal/adapters/sqlutil"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// listLockKey identifies the advisory lock serialising list mutations.
const listLockKey int64 = 0x64656d6f6e

// NewTransactor creates a transactor whose transactions take the list-wide
// advisory lock right after BEGIN. The lock is released at commit or rollback.
func NewTransactor(db *sql.DB) *sqlutil.Transactor {
	return sqlutil.NewTransactor(db, lockList)
}

func lockList(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", listLockKey); err != nil {
		return fmt.Errorf("failed to take list lock: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
