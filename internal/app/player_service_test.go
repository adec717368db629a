package app

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	coreplayer "github.com/example/demonlist/internal/core/player"
	"github.com/example/demonlist/internal/ports/primary"
	"github.com/example/demonlist/internal/ports/secondary"
)

func newTestPlayerService(names ...string) (*PlayerServiceImpl, *mockTransactor, *mockPlayerRepository) {
	transactor := &mockTransactor{}
	players := newMockPlayerRepository(names...)
	return NewPlayerService(transactor, players, NewPlayerResolver(players, zap.NewNop())), transactor, players
}

func TestPlayerService_ResolvePlayerIsIdempotentIgnoringCase(t *testing.T) {
	service, transactor, players := newTestPlayerService()
	ctx := context.Background()

	first, err := service.ResolvePlayer(ctx, "Alice")
	if err != nil {
		t.Fatalf("ResolvePlayer failed: %v", err)
	}
	second, err := service.ResolvePlayer(ctx, "ALICE")
	if err != nil {
		t.Fatalf("ResolvePlayer failed: %v", err)
	}
	if first.ID != second.ID || second.Name != "Alice" {
		t.Errorf("expected the same player, got %+v and %+v", first, second)
	}
	if len(players.players) != 1 {
		t.Errorf("expected 1 player, got %d", len(players.players))
	}
	for _, tx := range transactor.txs {
		if !tx.committed {
			t.Error("expected every resolution to commit")
		}
	}
}

func TestPlayerService_GetPlayerByName(t *testing.T) {
	service, _, _ := newTestPlayerService("Cyclic")
	ctx := context.Background()

	got, err := service.GetPlayerByName(ctx, "cyclic")
	if err != nil {
		t.Fatalf("GetPlayerByName failed: %v", err)
	}
	if got.Name != "Cyclic" {
		t.Errorf("expected Cyclic, got %q", got.Name)
	}

	if _, err := service.GetPlayerByName(ctx, "nobody"); !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.GetPlayerByName(ctx, ""); !errors.Is(err, coreplayer.ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
}

func TestPlayerService_GetAndList(t *testing.T) {
	service, _, _ := newTestPlayerService("Cyclic", "Zoink", "cyclone")
	ctx := context.Background()

	got, err := service.GetPlayer(ctx, 2)
	if err != nil {
		t.Fatalf("GetPlayer failed: %v", err)
	}
	if got.Name != "Zoink" {
		t.Errorf("expected Zoink, got %q", got.Name)
	}

	listed, err := service.ListPlayers(ctx, primary.PlayerFilters{Name: " CYC "})
	if err != nil {
		t.Fatalf("ListPlayers failed: %v", err)
	}
	if len(listed) != 2 {
		t.Errorf("expected 2 players, got %d", len(listed))
	}
}
