package app

import (
	"context"
	"fmt"

	"github.com/example/demonlist/internal/ports/secondary"
)

// runInTx runs fn in a fresh transaction and commits when it succeeds.
// Errors and panics in fn roll the transaction back.
func runInTx[T any](ctx context.Context, transactor secondary.Transactor, fn func(tx secondary.Tx) (T, error)) (T, error) {
	var zero T

	tx, err := transactor.Begin(ctx)
	if err != nil {
		return zero, err
	}

	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	result, err := fn(tx)
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return result, nil
}
