package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	coredemon "github.com/example/demonlist/internal/core/demon"
	"github.com/example/demonlist/internal/ports/primary"
)

// DemonAdapter translates CLI operations to DemonService calls.
type DemonAdapter struct {
	service primary.DemonService
	out     io.Writer
}

// NewDemonAdapter creates a new DemonAdapter with the given service.
func NewDemonAdapter(service primary.DemonService, out io.Writer) *DemonAdapter {
	return &DemonAdapter{
		service: service,
		out:     out,
	}
}

// Add places a demon on the list and prints where it landed.
func (a *DemonAdapter) Add(ctx context.Context, sub primary.DemonSubmission) (*primary.FullDemon, error) {
	demon, err := a.service.CreateDemon(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("failed to add demon: %w", err)
	}

	fmt.Fprintf(a.out, "✓ Added %s at #%d (ID %d)\n", demon.Demon.Name, demon.Demon.Position, demon.Demon.ID)
	if len(demon.Creators) > 0 {
		fmt.Fprintf(a.out, "  Creators: %s\n", joinPlayers(demon.Creators))
	}
	return demon, nil
}

// List prints the list, one row per demon, with section headers.
func (a *DemonAdapter) List(ctx context.Context, filters primary.DemonFilters) ([]*primary.ListedDemon, error) {
	demons, err := a.service.ListDemons(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list demons: %w", err)
	}

	if len(demons) == 0 {
		fmt.Fprintln(a.out, "No demons found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Add the first one:")
		fmt.Fprintln(a.out, `  demonlist demon add "Bloodbath" --position 1 --verifier Riot --publisher Riot`)
		return demons, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	section := ""
	for _, d := range demons {
		if d.Section != section {
			section = d.Section
			fmt.Fprintf(w, "%s\n", sectionHeader(section))
		}
		name := d.Name
		if d.Hidden {
			name += color.New(color.FgHiBlack).Sprint(" [hidden]")
		}
		fmt.Fprintf(w, "#%d\t%s\t%s\t(ID %d)\n", d.Position, name, d.Publisher.Name, d.ID)
	}
	w.Flush()
	return demons, nil
}

// Show prints a demon with its creators and records. ref is a demon ID,
// or a position when byPosition is set.
func (a *DemonAdapter) Show(ctx context.Context, ref int64, byPosition bool) (*primary.FullDemon, error) {
	var (
		demon *primary.FullDemon
		err   error
	)
	if byPosition {
		demon, err = a.service.GetDemonByPosition(ctx, int(ref))
	} else {
		demon, err = a.service.GetDemon(ctx, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get demon: %w", err)
	}

	a.printDemon(demon)
	return demon, nil
}

// Edit applies an update and prints the result.
func (a *DemonAdapter) Edit(ctx context.Context, req primary.UpdateDemonRequest) (*primary.FullDemon, error) {
	demon, err := a.service.UpdateDemon(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update demon: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Updated demon %d\n", demon.Demon.ID)
	a.printDemon(demon)
	return demon, nil
}

// AddCreator links a player to a demon.
func (a *DemonAdapter) AddCreator(ctx context.Context, demonID int64, playerName string) error {
	player, err := a.service.AddCreator(ctx, demonID, playerName)
	if err != nil {
		return fmt.Errorf("failed to add creator: %w", err)
	}
	fmt.Fprintf(a.out, "✓ %s (ID %d) added as creator of demon %d\n", player.Name, player.ID, demonID)
	return nil
}

// RemoveCreator unlinks a player from a demon.
func (a *DemonAdapter) RemoveCreator(ctx context.Context, demonID, playerID int64) error {
	if err := a.service.RemoveCreator(ctx, demonID, playerID); err != nil {
		return fmt.Errorf("failed to remove creator: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Player %d removed from creators of demon %d\n", playerID, demonID)
	return nil
}

func (a *DemonAdapter) printDemon(full *primary.FullDemon) {
	d := full.Demon
	fmt.Fprintf(a.out, "\n#%d %s (ID %d)\n", d.Position, d.Name, d.ID)
	fmt.Fprintf(a.out, "Requirement: %d%%\n", d.Requirement)
	fmt.Fprintf(a.out, "Publisher:   %s\n", d.Publisher.Name)
	fmt.Fprintf(a.out, "Verifier:    %s\n", d.Verifier.Name)
	if d.Video != nil {
		fmt.Fprintf(a.out, "Video:       %s\n", *d.Video)
	}
	if d.FPS != nil {
		fmt.Fprintf(a.out, "FPS:         %s\n", *d.FPS)
	}
	if d.LevelID != nil {
		fmt.Fprintf(a.out, "Level ID:    %d\n", *d.LevelID)
	}
	if d.Hidden {
		fmt.Fprintln(a.out, color.New(color.FgHiBlack).Sprint("Hidden"))
	}
	if len(full.Creators) > 0 {
		fmt.Fprintf(a.out, "Creators:    %s\n", joinPlayers(full.Creators))
	}
	if len(full.Records) > 0 {
		fmt.Fprintln(a.out, "Records:")
		for _, r := range full.Records {
			fmt.Fprintf(a.out, "  %3d%%  %s\n", r.Progress, r.Player.Name)
		}
	}
	fmt.Fprintln(a.out)
}

func sectionHeader(section string) string {
	switch section {
	case coredemon.SectionMain:
		return color.New(color.FgHiYellow, color.Bold).Sprint("Main List")
	case coredemon.SectionExtended:
		return color.New(color.FgHiCyan, color.Bold).Sprint("Extended List")
	default:
		return color.New(color.FgHiBlack, color.Bold).Sprint("Legacy List")
	}
}

func joinPlayers(players []*primary.Player) string {
	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}
