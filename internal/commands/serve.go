package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/balkashynov/tally/internal/api"
	"github.com/balkashynov/tally/internal/db"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API until interrupted.

Examples:
  tally serve
  tally serve --addr :9090
  tally serve --config /etc/tally/tally.yaml`,
	Args: cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		gin.SetMode(cfg.Server.Mode)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("starting server",
			"addr", cfg.Server.Addr,
			"driver", cfg.Database.Driver,
			"version", version,
		)
		return api.Serve(ctx, cfg.Server, api.NewRouter(store, logger), logger)
	}),
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema and exit",
	Args:  cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		// db.Open already migrated
		fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date ("+cfg.Database.Driver+")")
		return nil
	}),
}
