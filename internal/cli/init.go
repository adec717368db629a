package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/demonlist/internal/config"
	"github.com/example/demonlist/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var driver, dsn string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize demonlist in the current directory",
		Long: `Write .demonlist/config.json in the current directory and create the
database schema. SQLite is used unless --driver pgx is given.

Examples:
  demonlist init
  demonlist init --driver pgx --dsn postgres://localhost/demonlist`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initRunE(cmd.Context(), os.Getwd, cmd.OutOrStdout(), driver, dsn)
		},
	}

	cmd.Flags().StringVar(&driver, "driver", config.DriverSQLite, "Database driver (sqlite3 or pgx)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "Database DSN (default: ~/.demonlist/demonlist.db for sqlite3)")

	return cmd
}

func initRunE(ctx context.Context, getwd func() (string, error), out io.Writer, driver, dsn string) error {
	dir, err := getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg := config.Default()
	cfg.DBDriver = driver
	cfg.DBDSN = dsn
	if err := cfg.Validate(); err != nil {
		return err
	}

	database, err := db.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()
	fmt.Fprintln(out, "✓ Database initialized successfully")

	if err := config.SaveConfig(dir, cfg); err != nil {
		return err
	}
	fmt.Fprintln(out, "✓ Config written to .demonlist/config.json")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, `  demonlist demon add "Bloodbath" --position 1 --verifier Riot --publisher Riot`)
	fmt.Fprintln(out, "  demonlist demon list")

	return nil
}
