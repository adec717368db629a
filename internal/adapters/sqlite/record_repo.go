package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/demonlist/internal/adapters/sqlutil"
	"github.com/example/demonlist/internal/ports/secondary"
)

// RecordRepository implements secondary.RecordRepository using SQLite.
type RecordRepository struct{}

// NewRecordRepository creates a new RecordRepository.
func NewRecordRepository() *RecordRepository {
	return &RecordRepository{}
}

// ListByDemon returns records on a demon, best progress first.
func (r *RecordRepository) ListByDemon(ctx context.Context, tx secondary.Tx, demonID int64, status string) ([]*secondary.CompletionRecord, error) {
	sqlTx, err := sqlutil.Unwrap(tx)
	if err != nil {
		return nil, err
	}

	query := `SELECT r.id, r.progress, r.video, r.status, r.player, p.name, r.demon
		FROM records r JOIN players p ON p.id = r.player
		WHERE r.demon = ?`
	args := []any{demonID}

	if status != "" {
		query += " AND r.status = ?"
		args = append(args, status)
	}

	query += " ORDER BY r.progress DESC, r.id"

	rows, err := sqlTx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []*secondary.CompletionRecord
	for rows.Next() {
		var video sql.NullString
		record := &secondary.CompletionRecord{}
		if err := rows.Scan(&record.ID, &record.Progress, &video, &record.Status, &record.PlayerID, &record.PlayerName, &record.DemonID); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		record.Video = video.String
		records = append(records, record)
	}
	return records, rows.Err()
}

var _ secondary.RecordRepository = (*RecordRepository)(nil)
