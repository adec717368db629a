package postgres

import (
	"context"
	"fmt"

	"github.com/example/demonlist/internal/adapters/sqlutil"
	"github.com/example/demonlist/internal/ports/secondary"
)

// CreatorRepository implements secondary.CreatorRepository using Postgres.
type CreatorRepository struct{}

// NewCreatorRepository creates a new CreatorRepository.
func NewCreatorRepository() *CreatorRepository {
	return &CreatorRepository{}
}

// Add links a player to a demon as creator.
func (r *CreatorRepository) Add(ctx context.Context, tx secondary.Tx, demonID, playerID int64) error {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return err
	}
	if _, err := sqlTx.ExecContext(ctx, "INSERT INTO creators (demon, creator) VALUES ($1, $2)", demonID, playerID); err != nil {
		return fmt.Errorf("failed to add creator: %w", err)
	}
	return nil
}

// Remove deletes every link between the demon and the player.
func (r *CreatorRepository) Remove(ctx context.Context, tx secondary.Tx, demonID, playerID int64) (int, error) {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return 0, err
	}
	result, err := sqlTx.ExecContext(ctx, "DELETE FROM creators WHERE demon = $1 AND creator = $2", demonID, playerID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove creator: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(n), nil
}

// ListByDemon returns the creators of a demon in link order.
func (r *CreatorRepository) ListByDemon(ctx context.Context, tx secondary.Tx, demonID int64) ([]*secondary.PlayerRecord, error) {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return nil, err
	}

	rows, err := sqlTx.QueryContext(ctx,
		`SELECT p.id, p.name, p.banned FROM creators c
		JOIN players p ON p.id = c.creator
		WHERE c.demon = $1
		ORDER BY c.id`, demonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list creators: %w", err)
	}
	defer rows.Close()

	var creators []*secondary.PlayerRecord
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan creator: %w", err)
		}
		creators = append(creators, player)
	}
	return creators, rows.Err()
}

var _ secondary.CreatorRepository = (*CreatorRepository)(nil)
