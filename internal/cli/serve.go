package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/demonlist/internal/adapters/httpapi"
	"github.com/example/demonlist/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Long: `Serve the demon list API over HTTP until interrupted.

Examples:
  demonlist serve
  demonlist serve --addr 127.0.0.1:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.Default()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = c.Config.HTTPAddr
			}
			return httpapi.Serve(cmd.Context(), addr, c.HTTPHandler(), c.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: http_addr from config)")

	return cmd
}
