package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/demonlist/internal/ports/primary"
	"github.com/example/demonlist/internal/wire"
)

var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "Look up and register players",
}

var playerResolveCmd = &cobra.Command{
	Use:   "resolve [name]",
	Short: "Find a player by name, registering it when missing",
	Long: `Find a player by name ignoring case. A missing player is created with
the name exactly as given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := wire.PlayerAdapter()
		if err != nil {
			return err
		}
		_, err = adapter.Resolve(cmd.Context(), args[0])
		return err
	},
}

var playerShowCmd = &cobra.Command{
	Use:   "show [player-id]",
	Short: "Show a player by ID, or by name with --name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")

		var id int64
		if len(args) == 1 {
			parsed, err := parseID(args[0], "player")
			if err != nil {
				return err
			}
			id = parsed
		} else if name == "" {
			return fmt.Errorf("a player ID or --name is required")
		}

		adapter, err := wire.PlayerAdapter()
		if err != nil {
			return err
		}
		_, err = adapter.Show(cmd.Context(), id, name)
		return err
	},
}

var playerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List players",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		limit, _ := cmd.Flags().GetInt("limit")

		adapter, err := wire.PlayerAdapter()
		if err != nil {
			return err
		}
		_, err = adapter.List(cmd.Context(), primary.PlayerFilters{Name: name, Limit: limit})
		return err
	},
}

// PlayerCmd returns the player command
func PlayerCmd() *cobra.Command {
	playerShowCmd.Flags().StringP("name", "n", "", "Look the player up by name instead of ID")
	playerListCmd.Flags().StringP("name", "n", "", "Only players whose name contains this text")
	playerListCmd.Flags().IntP("limit", "l", 50, "Maximum number of players")

	playerCmd.AddCommand(playerResolveCmd)
	playerCmd.AddCommand(playerShowCmd)
	playerCmd.AddCommand(playerListCmd)

	return playerCmd
}
