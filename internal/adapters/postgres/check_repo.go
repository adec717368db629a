package postgres

import (
	"context"
	"fmt"

	"github.com/example/demonlist/internal/adapters/sqlutil"
	"github.com/example/demonlist/internal/ports/secondary"
)

// CheckRepository implements secondary.CheckRepository using Postgres.
type CheckRepository struct{}

// NewCheckRepository creates a new CheckRepository.
func NewCheckRepository() *CheckRepository {
	return &CheckRepository{}
}

// Integrity reads the position range of the list and every player's
// stored name key.
func (r *CheckRepository) Integrity(ctx context.Context, tx secondary.Tx) (*secondary.IntegrityReport, error) {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return nil, err
	}

	report := &secondary.IntegrityReport{}
	err = sqlTx.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(MIN(position), 0), COALESCE(MAX(position), 0), COUNT(DISTINCT position) FROM demons",
	).Scan(&report.DemonCount, &report.MinPosition, &report.MaxPosition, &report.DistinctPositions)
	if err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}

	rows, err := sqlTx.QueryContext(ctx,
		"SELECT id, name, COALESCE(name_key, '') FROM players ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to read player names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		player := &secondary.PlayerRecord{}
		if err := rows.Scan(&player.ID, &player.Name, &player.NameKey); err != nil {
			return nil, fmt.Errorf("failed to scan player name: %w", err)
		}
		report.Players = append(report.Players, player)
	}
	return report, rows.Err()
}

var _ secondary.CheckRepository = (*CheckRepository)(nil)
