package sqlite

import (
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/example/demonlist/internal/adapters/sqlutil"
)

// NewTransactor creates a transactor for a database opened with db.SQLiteDSN.
// The DSN makes every transaction BEGIN IMMEDIATE, so the write lock is taken
// before the first read.
func NewTransactor(db *sql.DB) *sqlutil.Transactor {
	return sqlutil.NewTransactor(db, nil)
}

// isUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
