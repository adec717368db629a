package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/demonlist/internal/adapters/sqlutil"
	"github.com/example/demonlist/internal/ports/secondary"
)

// DemonRepository implements secondary.DemonRepository using SQLite.
type DemonRepository struct{}

// NewDemonRepository creates a new DemonRepository.
func NewDemonRepository() *DemonRepository {
	return &DemonRepository{}
}

const demonColumns = `d.id, d.position, d.name, d.requirement, d.video, d.fps,
	d.verifier, v.name, d.publisher, p.name, d.level_id, d.hidden`

const demonFrom = ` FROM demons d
	JOIN players v ON v.id = d.verifier
	JOIN players p ON p.id = d.publisher`

// Count returns the number of demons on the list.
func (r *DemonRepository) Count(ctx context.Context, tx secondary.Tx) (int, error) {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return 0, err
	}
	var count int
	if err := sqlTx.QueryRowContext(ctx, "SELECT COUNT(*) FROM demons").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count demons: %w", err)
	}
	return count, nil
}

// ShiftOpen moves every demon at position >= from down by one.
// SQLite checks UNIQUE per row, so the range is first parked on negative
// positions and then flipped back.
func (r *DemonRepository) ShiftOpen(ctx context.Context, tx secondary.Tx, from int) error {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return err
	}
	if _, err := sqlTx.ExecContext(ctx, "UPDATE demons SET position = -(position + 1) WHERE position >= ?", from); err != nil {
		return fmt.Errorf("failed to shift demons from %d: %w", from, err)
	}
	if _, err := sqlTx.ExecContext(ctx, "UPDATE demons SET position = -position WHERE position < 0"); err != nil {
		return fmt.Errorf("failed to shift demons from %d: %w", from, err)
	}
	return nil
}

// ShiftClose moves every demon at position > removed up by one.
func (r *DemonRepository) ShiftClose(ctx context.Context, tx secondary.Tx, removed int) error {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return err
	}
	if _, err := sqlTx.ExecContext(ctx, "UPDATE demons SET position = -(position - 1) WHERE position > ?", removed); err != nil {
		return fmt.Errorf("failed to close gap at %d: %w", removed, err)
	}
	if _, err := sqlTx.ExecContext(ctx, "UPDATE demons SET position = -position WHERE position < 0"); err != nil {
		return fmt.Errorf("failed to close gap at %d: %w", removed, err)
	}
	return nil
}

// Create persists a new demon and sets its ID.
func (r *DemonRepository) Create(ctx context.Context, tx secondary.Tx, demon *secondary.DemonRecord) error {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return err
	}

	result, err := sqlTx.ExecContext(ctx,
		`INSERT INTO demons (name, position, requirement, video, fps, verifier, publisher, level_id, hidden)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		demon.Name,
		demon.Position,
		demon.Requirement,
		sqlutil.NullString(demon.Video),
		sqlutil.NullString(demon.FPS),
		demon.VerifierID,
		demon.PublisherID,
		sqlutil.NullInt64(demon.LevelID),
		demon.Hidden,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("position %d is taken: %w", demon.Position, secondary.ErrConflict)
		}
		return fmt.Errorf("failed to create demon: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get demon id: %w", err)
	}
	demon.ID = id
	return nil
}

// GetByID retrieves a demon by its ID.
func (r *DemonRepository) GetByID(ctx context.Context, tx secondary.Tx, id int64) (*secondary.DemonRecord, error) {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return nil, err
	}
	demon, err := scanDemon(sqlTx.QueryRowContext(ctx, "SELECT "+demonColumns+demonFrom+" WHERE d.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("demon %d: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get demon: %w", err)
	}
	return demon, nil
}

// GetByPosition retrieves the demon at the given position.
func (r *DemonRepository) GetByPosition(ctx context.Context, tx secondary.Tx, position int) (*secondary.DemonRecord, error) {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return nil, err
	}
	demon, err := scanDemon(sqlTx.QueryRowContext(ctx, "SELECT "+demonColumns+demonFrom+" WHERE d.position = ?", position))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no demon at position %d: %w", position, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get demon: %w", err)
	}
	return demon, nil
}

// List retrieves demons ordered by position.
func (r *DemonRepository) List(ctx context.Context, tx secondary.Tx, filters secondary.DemonFilters) ([]*secondary.DemonRecord, error) {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + demonColumns + demonFrom + " WHERE d.position > ?"
	args := []any{filters.After}

	if !filters.IncludeHidden {
		query += " AND d.hidden = 0"
	}

	if filters.NameContains != "" {
		query += " AND instr(lower(d.name), lower(?)) > 0"
		args = append(args, filters.NameContains)
	}

	query += " ORDER BY d.position"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := sqlTx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list demons: %w", err)
	}
	defer rows.Close()

	var demons []*secondary.DemonRecord
	for rows.Next() {
		demon, err := scanDemon(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan demon: %w", err)
		}
		demons = append(demons, demon)
	}
	return demons, rows.Err()
}

// Update writes every column of the demon except its position.
func (r *DemonRepository) Update(ctx context.Context, tx secondary.Tx, demon *secondary.DemonRecord) error {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return err
	}

	result, err := sqlTx.ExecContext(ctx,
		`UPDATE demons SET name = ?, requirement = ?, video = ?, fps = ?,
			verifier = ?, publisher = ?, level_id = ?, hidden = ?
		WHERE id = ?`,
		demon.Name,
		demon.Requirement,
		sqlutil.NullString(demon.Video),
		sqlutil.NullString(demon.FPS),
		demon.VerifierID,
		demon.PublisherID,
		sqlutil.NullInt64(demon.LevelID),
		demon.Hidden,
		demon.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update demon: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("demon %d: %w", demon.ID, secondary.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDemon(row scanner) (*secondary.DemonRecord, error) {
	var (
		video   sql.NullString
		fps     sql.NullString
		levelID sql.NullInt64
	)
	demon := &secondary.DemonRecord{}
	err := row.Scan(
		&demon.ID,
		&demon.Position,
		&demon.Name,
		&demon.Requirement,
		&video,
		&fps,
		&demon.VerifierID,
		&demon.VerifierName,
		&demon.PublisherID,
		&demon.PublisherName,
		&levelID,
		&demon.Hidden,
	)
	if err != nil {
		return nil, err
	}
	demon.Video = video.String
	demon.FPS = fps.String
	demon.LevelID = levelID.Int64
	return demon, nil
}

var _ secondary.DemonRepository = (*DemonRepository)(nil)
