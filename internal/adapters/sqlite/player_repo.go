package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/demonlist/internal/adapters/sqlutil"
	coreplayer "github.com/example/demonlist/internal/core/player"
	"github.com/example/demonlist/internal/ports/secondary"
)

// PlayerRepository implements secondary.PlayerRepository using SQLite.
// Names compare through players.name_key, the case fold computed by
// coreplayer.NameKey, which carries the unique index.
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
	player, err := scanPlayer(sqlTx.QueryRowContext(ctx, "SELECT id, name, banned FROM players WHERE id = ?", id))
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
	player, err := scanPlayer(sqlTx.QueryRowContext(ctx, "SELECT id, name, banned FROM players WHERE name_key = ?", coreplayer.NameKey(name)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %q: %w", name, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// Create inserts a player. A name collision rolls back to a savepoint and
// returns ErrConflict, leaving tx usable.
func (r *PlayerRepository) Create(ctx context.Context, tx secondary.Tx, name string) (*secondary.PlayerRecord, error) {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return nil, err
	}

	var id int64
	err = sqlutil.Savepoint(ctx, sqlTx, "player_insert", func() error {
		result, err := sqlTx.ExecContext(ctx, "INSERT INTO players (name, name_key) VALUES (?, ?)", name, coreplayer.NameKey(name))
		if err != nil {
			return err
		}
		id, err = result.LastInsertId()
		return err
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

	query := "SELECT id, name, banned FROM players WHERE 1=1"
	args := []any{}

	if filters.NameContains != "" {
		query += " AND instr(name_key, ?) > 0"
		args = append(args, coreplayer.NameKey(filters.NameContains))
	}

	query += " ORDER BY id"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
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
