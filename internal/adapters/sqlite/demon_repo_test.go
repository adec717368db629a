package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/demonlist/internal/adapters/sqlite"
	"github.com/example/demonlist/internal/ports/secondary"
)

func TestDemonRepository_Count(t *testing.T) {
	testDB := setupTestDB(t)
	seedList(t, testDB, "A", "B", "C")
	repo := sqlite.NewDemonRepository()
	tx := beginTx(t, testDB)

	count, err := repo.Count(context.Background(), tx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3, got %d", count)
	}
}

func TestDemonRepository_ShiftOpen(t *testing.T) {
	tests := []struct {
		name string
		from int
		want map[int]string
	}{
		{"middle", 2, map[int]string{1: "A", 3: "B", 4: "C"}},
		{"top", 1, map[int]string{2: "A", 3: "B", 4: "C"}},
		{"append", 4, map[int]string{1: "A", 2: "B", 3: "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB := setupTestDB(t)
			seedList(t, testDB, "A", "B", "C")
			repo := sqlite.NewDemonRepository()
			tx := beginTx(t, testDB)

			if err := repo.ShiftOpen(context.Background(), tx, tt.from); err != nil {
				t.Fatalf("ShiftOpen failed: %v", err)
			}
			if err := tx.Commit(); err != nil {
				t.Fatalf("Commit failed: %v", err)
			}

			got := positions(t, testDB)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for pos, name := range tt.want {
				if got[pos] != name {
					t.Errorf("position %d: expected %q, got %q", pos, name, got[pos])
				}
			}
		})
	}
}

func TestDemonRepository_ShiftClose(t *testing.T) {
	testDB := setupTestDB(t)
	seedList(t, testDB, "A", "B", "C", "D")
	if _, err := testDB.Exec("DELETE FROM demons WHERE position = 2"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	repo := sqlite.NewDemonRepository()
	tx := beginTx(t, testDB)
	if err := repo.ShiftClose(context.Background(), tx, 2); err != nil {
		t.Fatalf("ShiftClose failed: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	got := positions(t, testDB)
	want := map[int]string{1: "A", 2: "C", 3: "D"}
	for pos, name := range want {
		if got[pos] != name {
			t.Errorf("position %d: expected %q, got %q", pos, name, got[pos])
		}
	}
	if len(got) != 3 {
		t.Errorf("expected 3 demons, got %d", len(got))
	}
}

func TestDemonRepository_CreateAndGet(t *testing.T) {
	testDB := setupTestDB(t)
	verifier := seedPlayer(t, testDB, "Verifier")
	publisher := seedPlayer(t, testDB, "Publisher")
	repo := sqlite.NewDemonRepository()
	ctx := context.Background()
	tx := beginTx(t, testDB)

	demon := &secondary.DemonRecord{
		Name:        "Bloodbath",
		Position:    1,
		Requirement: 100,
		Video:       "https://www.youtube.com/watch?v=abc",
		FPS:         "60",
		VerifierID:  verifier,
		PublisherID: publisher,
	}
	if err := repo.Create(ctx, tx, demon); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if demon.ID == 0 {
		t.Fatal("expected ID to be set")
	}

	got, err := repo.GetByID(ctx, tx, demon.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Bloodbath" || got.Position != 1 || got.FPS != "60" {
		t.Errorf("unexpected demon: %+v", got)
	}
	if got.VerifierName != "Verifier" || got.PublisherName != "Publisher" {
		t.Errorf("expected joined names, got %q/%q", got.VerifierName, got.PublisherName)
	}
	if got.LevelID != 0 || got.Hidden {
		t.Errorf("expected null level and visible, got %d/%v", got.LevelID, got.Hidden)
	}

	byPos, err := repo.GetByPosition(ctx, tx, 1)
	if err != nil {
		t.Fatalf("GetByPosition failed: %v", err)
	}
	if byPos.ID != demon.ID {
		t.Errorf("expected ID %d, got %d", demon.ID, byPos.ID)
	}
}

func TestDemonRepository_CreateTakenPosition(t *testing.T) {
	testDB := setupTestDB(t)
	seedList(t, testDB, "A")
	owner := seedPlayer(t, testDB, "Someone")
	repo := sqlite.NewDemonRepository()
	tx := beginTx(t, testDB)

	err := repo.Create(context.Background(), tx, &secondary.DemonRecord{
		Name: "B", Position: 1, Requirement: 100, VerifierID: owner, PublisherID: owner,
	})
	if !errors.Is(err, secondary.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestDemonRepository_NotFound(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewDemonRepository()
	ctx := context.Background()
	tx := beginTx(t, testDB)

	if _, err := repo.GetByID(ctx, tx, 42); !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("GetByID: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByPosition(ctx, tx, 1); !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("GetByPosition: expected ErrNotFound, got %v", err)
	}
	err := repo.Update(ctx, tx, &secondary.DemonRecord{ID: 42, Name: "x", Requirement: 50, VerifierID: 1, PublisherID: 1})
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("Update: expected ErrNotFound, got %v", err)
	}
}

func TestDemonRepository_List(t *testing.T) {
	testDB := setupTestDB(t)
	ids := seedList(t, testDB, "Sonic Wave", "Bloodlust", "Tidal Wave", "Zodiac")
	if _, err := testDB.Exec("UPDATE demons SET hidden = 1 WHERE id = ?", ids["Zodiac"]); err != nil {
		t.Fatalf("hide failed: %v", err)
	}
	repo := sqlite.NewDemonRepository()
	ctx := context.Background()
	tx := beginTx(t, testDB)

	tests := []struct {
		name    string
		filters secondary.DemonFilters
		want    []string
	}{
		{"visible only", secondary.DemonFilters{}, []string{"Sonic Wave", "Bloodlust", "Tidal Wave"}},
		{"with hidden", secondary.DemonFilters{IncludeHidden: true}, []string{"Sonic Wave", "Bloodlust", "Tidal Wave", "Zodiac"}},
		{"name filter", secondary.DemonFilters{NameContains: "WAVE"}, []string{"Sonic Wave", "Tidal Wave"}},
		{"after", secondary.DemonFilters{After: 1, Limit: 1}, []string{"Bloodlust"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tx, tt.filters)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d demons, got %d", len(tt.want), len(got))
			}
			for i, name := range tt.want {
				if got[i].Name != name {
					t.Errorf("index %d: expected %q, got %q", i, name, got[i].Name)
				}
			}
		})
	}
}

func TestDemonRepository_UpdateKeepsPosition(t *testing.T) {
	testDB := setupTestDB(t)
	ids := seedList(t, testDB, "A", "B")
	repo := sqlite.NewDemonRepository()
	ctx := context.Background()
	tx := beginTx(t, testDB)

	demon, err := repo.GetByID(ctx, tx, ids["B"])
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	demon.Name = "B (renamed)"
	demon.Requirement = 55
	demon.Hidden = true
	demon.LevelID = 1234
	demon.Position = 1 // ignored
	if err := repo.Update(ctx, tx, demon); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, ids["B"])
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Position != 2 {
		t.Errorf("expected position to stay 2, got %d", got.Position)
	}
	if got.Name != "B (renamed)" || got.Requirement != 55 || !got.Hidden || got.LevelID != 1234 {
		t.Errorf("unexpected demon after update: %+v", got)
	}
}

type foreignTx struct{}

func (foreignTx) Commit() error   { return nil }
func (foreignTx) Rollback() error { return nil }

func TestDemonRepository_RejectsForeignTx(t *testing.T) {
	repo := sqlite.NewDemonRepository()
	if _, err := repo.Count(context.Background(), foreignTx{}); err == nil {
		t.Error("expected error for foreign transaction")
	}
}
