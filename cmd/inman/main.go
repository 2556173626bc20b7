package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/saltyorg/inman/internal/config"
	"github.com/saltyorg/inman/internal/database"
	"github.com/saltyorg/inman/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	verbosity int
	envFile   string
	dsn       string
	driver    string
	logFile   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		_ = logging.Close()
		os.Exit(1)
	}
	_ = logging.Close()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "inman",
		Short:         "inman - invoicing and inventory data access",
		Long:          `inman manages customers, products and invoices stored in MySQL or PostgreSQL through stored procedures.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&verbosity, "verbose", "v", "Increase console verbosity (-v debug, -vv trace)")
	flags.StringVar(&envFile, "env-file", "", "Load environment variables from this file instead of ./.env")
	flags.StringVar(&dsn, "dsn", "", "Database DSN (overrides INMAN_DATABASE__DSN)")
	flags.StringVar(&driver, "driver", "", "Database driver: mysql or postgres (overrides INMAN_DATABASE__DRIVER)")
	flags.StringVar(&logFile, "log-file", "", "Log file path (overrides INMAN_LOG__FILE)")

	rootCmd.AddCommand(
		newMigrateCmd(),
		newAnalyzeCmd(),
		newCustomersCmd(),
		newInvoicesCmd(),
		newProductTypesCmd(),
		newProductsCmd(),
		newInvoiceProductsCmd(),
		newServeCmd(),
		newHashPasswordCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Show version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "inman %s (commit: %s, built: %s)\n", version, commit, date)
			},
		},
	)

	return rootCmd
}

// loadConfig reads the configuration, applies flag overrides and configures logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	if dsn != "" {
		cfg.Database.DSN = dsn
	}
	if driver != "" {
		cfg.Database.Driver = driver
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Apply(consoleLevel(cfg.Log.Level, verbosity), cfg.Loader(), cfg.Log.File)

	timeouts := config.DefaultTimeoutConfig()
	if cfg.HTTP.Timeout > 0 {
		timeouts.HTTPRequest = cfg.HTTP.Timeout
	}
	config.SetGlobalTimeouts(timeouts)

	return cfg, nil
}

// consoleLevel raises the configured level by the -v count.
func consoleLevel(configured string, verbosity int) string {
	switch {
	case verbosity >= 2:
		return "trace"
	case verbosity == 1:
		return "debug"
	default:
		return configured
	}
}

// withStore opens the database for the duration of fn.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, store *database.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	}()

	return fn(ctx, store)
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Install or upgrade the tables and stored procedures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store *database.Store) error {
				return store.Migrate(ctx)
			})
		},
	}
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Refresh table statistics once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store *database.Store) error {
				start := time.Now()
				if err := store.Analyze(ctx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Statistics refreshed in %s\n", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
}
