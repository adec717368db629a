package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/example/demonlist/internal/adapters/sqlutil"
	coreplayer "github.com/example/demonlist/internal/core/player"
	"github.com/example/demonlist/internal/ports/secondary"
)

// PlayerRepository implements secondary.PlayerRepository using Postgres.
// Lookups go through name_key, the case fold computed by coreplayer.NameKey,
// matching the unique index.
type PlayerRepository struct{}

// NewPlayerRepository creates a new PlayerRepository.
func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{}
}

// GetByID retrieves a player by its ID.
func (r *PlayerRepository) GetByID(ctx context.Context, tx secondary.Tx, id int64) (*secondary.PlayerRecord, error) {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return nil, err
	}
	player, err := scanPlayer(sqlTx.QueryRowContext(ctx, "SELECT id, name, banned FROM players WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %d: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// GetByName retrieves a player by name, compared case-insensitively.
func (r *PlayerRepository) GetByName(ctx context.Context, tx secondary.Tx, name string) (*secondary.PlayerRecord, error) {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return nil, err
	}
	player, err := scanPlayer(sqlTx.QueryRowContext(ctx, "SELECT id, name, banned FROM players WHERE name_key = $1", coreplayer.NameKey(name)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %q: %w", name, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// Create inserts a player. A name collision rolls back to a savepoint so the
// transaction is not left aborted, and returns ErrConflict.
func (r *PlayerRepository) Create(ctx context.Context, tx secondary.Tx, name string) (*secondary.PlayerRecord, error) {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return nil, err
	}

	var id int64
	err = sqlutil.Savepoint(ctx, sqlTx, "player_insert", func() error {
		return sqlTx.QueryRowContext(ctx, "INSERT INTO players (name, name_key) VALUES ($1, $2) RETURNING id", name, coreplayer.NameKey(name)).Scan(&id)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("player %q already exists: %w", name, secondary.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return &secondary.PlayerRecord{ID: id, Name: name}, nil
}

// List retrieves players ordered by ID.
func (r *PlayerRepository) List(ctx context.Context, tx secondary.Tx, filters secondary.PlayerFilters) ([]*secondary.PlayerRecord, error) {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return nil, err
	}

	query := "SELECT id, name, banned FROM players WHERE TRUE"
	args := []any{}

	if filters.NameContains != "" {
		args = append(args, coreplayer.NameKey(filters.NameContains))
		query += " AND strpos(name_key, $" + strconv.Itoa(len(args)) + ") > 0"
	}

	query += " ORDER BY id"

	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}

	rows, err := sqlTx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []*secondary.PlayerRecord
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

func scanPlayer(row scanner) (*secondary.PlayerRecord, error) {
	player := &secondary.PlayerRecord{}
	if err := row.Scan(&player.ID, &player.Name, &player.Banned); err != nil {
		return nil, err
	}
	return player, nil
}

var _ secondary.PlayerRepository = (*PlayerRepository)(nil)
