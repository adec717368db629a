package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/demonlist/internal/db"
	"github.com/example/demonlist/internal/wire"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty database with a small development list",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.Default()
			if err != nil {
				return err
			}
			if err := db.SeedFixtures(cmd.Context(), c.DB, c.Config.DBDriver); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Seeded development list")
			return nil
		},
	}
}
