package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/demonlist/internal/ports/primary"
)

// PlayerAdapter translates CLI operations to PlayerService calls.
type PlayerAdapter struct {
	service primary.PlayerService
	out     io.Writer
}

// NewPlayerAdapter creates a new PlayerAdapter with the given service.
func NewPlayerAdapter(service primary.PlayerService, out io.Writer) *PlayerAdapter {
	return &PlayerAdapter{
		service: service,
		out:     out,
	}
}

// Resolve finds or creates a player and prints its identity.
func (a *PlayerAdapter) Resolve(ctx context.Context, name string) (*primary.Player, error) {
	player, err := a.service.ResolvePlayer(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve player: %w", err)
	}
	fmt.Fprintf(a.out, "%s (ID %d)\n", player.Name, player.ID)
	return player, nil
}

// Show prints a player looked up by ID, or by name when id is zero.
func (a *PlayerAdapter) Show(ctx context.Context, id int64, name string) (*primary.Player, error) {
	var (
		player *primary.Player
		err    error
	)
	if id != 0 {
		player, err = a.service.GetPlayer(ctx, id)
	} else {
		player, err = a.service.GetPlayerByName(ctx, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	fmt.Fprintf(a.out, "Player: %s\n", player.Name)
	fmt.Fprintf(a.out, "ID:     %d\n", player.ID)
	if player.Banned {
		fmt.Fprintln(a.out, color.New(color.FgRed).Sprint("Banned"))
	}
	return player, nil
}

// List prints players matching the filters.
func (a *PlayerAdapter) List(ctx context.Context, filters primary.PlayerFilters) ([]*primary.Player, error) {
	players, err := a.service.ListPlayers(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	if len(players) == 0 {
		fmt.Fprintln(a.out, "No players found.")
		return players, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBANNED")
	fmt.Fprintln(w, "--\t----\t------")
	for _, p := range players {
		banned := ""
		if p.Banned {
			banned = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", p.ID, p.Name, banned)
	}
	w.Flush()
	return players, nil
}
