package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/example/demonlist/internal/adapters/sqlutil"
	"github.com/example/demonlist/internal/ports/secondary"
)

// DemonRepository implements secondary.DemonRepository using Postgres.
type DemonRepository struct{}

// NewDemonRepository creates a new DemonRepository.
func NewDemonRepository() *DemonRepository {
	return &DemonRepository{}
}

const demonSelect = `SELECT d.id, d.position, d.name, d.requirement, d.video, d.fps,
	d.verifier, v.name, d.publisher, p.name, d.level_id, d.hidden
	FROM demons d
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
func (r *DemonRepository) ShiftOpen(ctx context.Context, tx secondary.Tx, from int) error {
	return r.shift(ctx, tx, "UPDATE demons SET position = position + 1 WHERE position >= $1", from)
}

// ShiftClose moves every demon at position > removed up by one.
func (r *DemonRepository) ShiftClose(ctx context.Context, tx secondary.Tx, removed int) error {
	return r.shift(ctx, tx, "UPDATE demons SET position = position - 1 WHERE position > $1", removed)
}

// shift runs a renumbering UPDATE with the position constraint deferred to
// the end of the statement batch.
func (r *DemonRepository) shift(ctx context.Context, tx secondary.Tx, query string, pivot int) error {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return err
	}
	if _, err := sqlTx.ExecContext(ctx, "SET CONSTRAINTS demons_position_key DEFERRED"); err != nil {
		return fmt.Errorf("failed to defer position constraint: %w", err)
	}
	if _, err := sqlTx.ExecContext(ctx, query, pivot); err != nil {
		return fmt.Errorf("failed to shift demons at %d: %w", pivot, err)
	}
	if _, err := sqlTx.ExecContext(ctx, "SET CONSTRAINTS demons_position_key IMMEDIATE"); err != nil {
		return fmt.Errorf("positions not unique after shift at %d: %w", pivot, err)
	}
	return nil
}

// Create persists a new demon and sets its ID.
func (r *DemonRepository) Create(ctx context.Context, tx secondary.Tx, demon *secondary.DemonRecord) error {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return err
	}

	err = sqlTx.QueryRowContext(ctx,
		`INSERT INTO demons (name, position, requirement, video, fps, verifier, publisher, level_id, hidden)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		demon.Name,
		demon.Position,
		demon.Requirement,
		sqlutil.NullString(demon.Video),
		sqlutil.NullString(demon.FPS),
		demon.VerifierID,
		demon.PublisherID,
		sqlutil.NullInt64(demon.LevelID),
		demon.Hidden,
	).Scan(&demon.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("position %d is taken: %w", demon.Position, secondary.ErrConflict)
		}
		return fmt.Errorf("failed to create demon: %w", err)
	}
	return nil
}

// GetByID retrieves a demon by its ID.
func (r *DemonRepository) GetByID(ctx context.Context, tx secondary.Tx, id int64) (*secondary.DemonRecord, error) {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return nil, err
	}
	demon, err := scanDemon(sqlTx.QueryRowContext(ctx, demonSelect+" WHERE d.id = $1", id))
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
	demon, err := scanDemon(sqlTx.QueryRowContext(ctx, demonSelect+" WHERE d.position = $1", position))
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

	query := demonSelect + " WHERE d.position > $1"
	args := []any{filters.After}

	if !filters.IncludeHidden {
		query += " AND NOT d.hidden"
	}

	if filters.NameContains != "" {
		args = append(args, filters.NameContains)
		query += " AND strpos(lower(d.name), lower($" + strconv.Itoa(len(args)) + ")) > 0"
	}

	query += " ORDER BY d.position"

	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
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
		`UPDATE demons SET name = $1, requirement = $2, video = $3, fps = $4,
			verifier = $5, publisher = $6, level_id = $7, hidden = $8
		WHERE id = $9`,
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
