// Package sqlutil holds the database/sql plumbing shared by the SQL adapters:
// the transaction handle they exchange through secondary.Tx, savepoints, and
// nullable column conversions.
package sqlutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/demonlist/internal/ports/secondary"
)

// ErrForeignTx is returned when a repository receives a transaction it did not produce.
var ErrForeignTx = errors.New("transaction was not opened by this adapter")

// BeginHook runs right after BEGIN, inside the new transaction.
type BeginHook func(ctx context.Context, tx *sql.Tx) error

// Transactor implements secondary.Transactor over a *sql.DB.
type Transactor struct {
	db      *sql.DB
	onBegin BeginHook
}

var _ secondary.Transactor = (*Transactor)(nil)

// NewTransactor creates a Transactor. onBegin may be nil.
func NewTransactor(db *sql.DB, onBegin BeginHook) *Transactor {
	return &Transactor{db: db, onBegin: onBegin}
}

// Begin opens a transaction and runs the begin hook in it.
func (t *Transactor) Begin(ctx context.Context) (secondary.Tx, error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	if t.onBegin != nil {
		if err := t.onBegin(ctx, tx); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to prepare transaction: %w", err)
		}
	}
	return &Tx{tx: tx}, nil
}

// Tx wraps a *sql.Tx as a secondary.Tx.
type Tx struct {
	tx *sql.Tx
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction. Rolling back a finished transaction is a no-op.
func (t *Tx) Rollback() error {
	err := t.tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}

// Unwrap returns the *sql.Tx behind tx.
func Unwrap(tx secondary.Tx) (*sql.Tx, error) {
	t, ok := tx.(*Tx)
	if !ok || t == nil || t.tx == nil {
		return nil, ErrForeignTx
	}
	return t.tx, nil
}

// Savepoint runs fn inside a named savepoint. When fn fails, the work it did
// is rolled back and the surrounding transaction stays usable.
func Savepoint(ctx context.Context, tx *sql.Tx, name string, fn func() error) error {
	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("failed to open savepoint %s: %w", name, err)
	}
	if err := fn(); err != nil {
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); rbErr != nil {
			return errors.Join(err, fmt.Errorf("failed to roll back savepoint %s: %w", name, rbErr))
		}
		if _, relErr := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name); relErr != nil {
			return errors.Join(err, relErr)
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name); err != nil {
		return fmt.Errorf("failed to release savepoint %s: %w", name, err)
	}
	return nil
}

// NullString maps the empty string to NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// NullInt64 maps zero to NULL.
func NullInt64(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: n != 0}
}
