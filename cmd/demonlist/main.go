package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/demonlist/internal/cli"
	"github.com/example/demonlist/internal/config"
	"github.com/example/demonlist/internal/ctxutil"
	"github.com/example/demonlist/internal/version"
	"github.com/example/demonlist/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "demonlist",
		Short:   "demonlist - ranked list of the hardest demons",
		Version: version.String(),
		Long: `demonlist maintains a ranked list of demons. Placing a demon shifts every
demon below it down by one; players are matched by name ignoring case.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.DemonCmd())
	rootCmd.AddCommand(cli.PlayerCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.ServeCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx = ctxutil.WithRequestID(ctxutil.WithActorID(ctx, actor()), "")

	err := rootCmd.ExecuteContext(ctx)
	stop()
	wire.Shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// actor names who is running the command: the configured actor, then $USER.
func actor() string {
	if dir, err := os.Getwd(); err == nil {
		if cfg, err := config.Load(dir); err == nil && cfg.Actor != "" {
			return cfg.Actor
		}
	}
	return os.Getenv("USER")
}
