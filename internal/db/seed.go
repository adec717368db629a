package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/demonlist/internal/config"
	"github.com/example/demonlist/internal/core/player"
)

// SeedFixtures populates an empty database with a small development list.
// Demons get contiguous positions starting at 1.
func SeedFixtures(ctx context.Context, database *sql.DB, driver string) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer tx.Rollback()

	var existing int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM demons").Scan(&existing); err != nil {
		return fmt.Errorf("seed: count demons: %w", err)
	}
	if existing > 0 {
		return fmt.Errorf("seed: database already has %d demons", existing)
	}

	players := []string{"Riot", "Cyclic", "Zoink", "Npesta", "Trick", "SrGuillester"}
	playerIDs := make(map[string]int64, len(players))
	for _, name := range players {
		var id int64
		err := tx.QueryRowContext(ctx, rebind(driver, "INSERT INTO players (name, name_key) VALUES (?, ?) RETURNING id"), name, player.NameKey(name)).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed players: %w", err)
		}
		playerIDs[name] = id
	}

	demons := []struct {
		name                string
		verifier, publisher string
		creators            []string
		video               string
	}{
		{"Tidal Wave", "Zoink", "OniLinkGD", nil, "https://www.youtube.com/watch?v=9fsZ014qB3s"},
		{"Silent clubstep", "Trick", "Trick", []string{"Trick"}, ""},
		{"Abyss of Darkness", "SrGuillester", "Exen", nil, "https://www.youtube.com/watch?v=2SsrE7rUQ9Q"},
		{"Bloodlust", "Knobbelboy", "Manix648", []string{"Manix648", "Knobbelboy"}, ""},
		{"Sonic Wave", "Cyclic", "Cyclic", []string{"Cyclic"}, "https://www.youtube.com/watch?v=eIUQ5VDKWmY"},
	}

	for i, d := range demons {
		verifierID, err := seedPlayer(ctx, tx, driver, playerIDs, d.verifier)
		if err != nil {
			return err
		}
		publisherID, err := seedPlayer(ctx, tx, driver, playerIDs, d.publisher)
		if err != nil {
			return err
		}

		var video sql.NullString
		if d.video != "" {
			video = sql.NullString{String: d.video, Valid: true}
		}

		var demonID int64
		err = tx.QueryRowContext(ctx,
			rebind(driver, "INSERT INTO demons (name, position, requirement, video, verifier, publisher) VALUES (?, ?, 100, ?, ?, ?) RETURNING id"),
			d.name, i+1, video, verifierID, publisherID,
		).Scan(&demonID)
		if err != nil {
			return fmt.Errorf("seed demons: %w", err)
		}

		for _, c := range d.creators {
			creatorID, err := seedPlayer(ctx, tx, driver, playerIDs, c)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, rebind(driver, "INSERT INTO creators (demon, creator) VALUES (?, ?)"), demonID, creatorID); err != nil {
				return fmt.Errorf("seed creators: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			rebind(driver, "INSERT INTO records (progress, video, status, player, demon) VALUES (100, ?, 'approved', ?, ?)"),
			video, verifierID, demonID,
		); err != nil {
			return fmt.Errorf("seed records: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	return nil
}

func seedPlayer(ctx context.Context, tx *sql.Tx, driver string, ids map[string]int64, name string) (int64, error) {
	if id, ok := ids[name]; ok {
		return id, nil
	}
	var id int64
	if err := tx.QueryRowContext(ctx, rebind(driver, "INSERT INTO players (name, name_key) VALUES (?, ?) RETURNING id"), name, player.NameKey(name)).Scan(&id); err != nil {
		return 0, fmt.Errorf("seed players: %w", err)
	}
	ids[name] = id
	return id, nil
}

// rebind rewrites ? placeholders into $n for Postgres.
func rebind(driver, query string) string {
	if driver != config.DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
