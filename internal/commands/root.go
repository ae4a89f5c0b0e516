package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/balkashynov/tally/internal/config"
	"github.com/balkashynov/tally/internal/db"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile string
	dbPath  string
	addr    string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Time tracking and remittance service",
	Long: `tally records the time workers spend on tasks and turns it into
remittances at an hourly rate.

Run 'tally serve' for the HTTP API, or manage users, tasks and pay runs
directly from the terminal.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// loadConfig resolves configuration for every subcommand and installs the logger
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if dbPath != "" {
		loaded.Database.Driver = config.DriverSQLite
		loaded.Database.Path = dbPath
		loaded.Database.DSN = ""
	}
	if addr != "" {
		loaded.Server.Addr = addr
	}

	cfg = loaded
	logger = newLogger(cfg.Log, os.Stderr)
	slog.SetDefault(logger)
	return nil
}

// newLogger builds a text handler for terminals and JSON for everything else
func newLogger(c config.Log, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.Level))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	format := c.Format
	if format == "auto" {
		format = "json"
		if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			format = "text"
		}
	}

	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// withStore opens the database for the duration of one command
func withStore(fn func(*cobra.Command, []string, *db.Store) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		gdb, err := db.Open(cfg.Database)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(gdb); err != nil {
				logger.Warn("failed to close database", "error", err)
			}
		}()
		return fn(cmd, args, db.NewStore(gdb, logger))
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	// version needs no configuration
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tally %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./tally.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "sqlite database path, overrides the configured database")
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "", "listen address for serve")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(remitCmd)
	rootCmd.AddCommand(versionCmd)
}
