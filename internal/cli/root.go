// Package cli implements the trivia command line.
package cli

import (
	"github.com/fxola/trivia-api/internal/config"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands. Empty values keep the
// environment configuration.
type RootOptions struct {
	Driver     string
	SQLitePath string
	LogLevel   string
}

// NewRootCommand creates the root command for the trivia CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "trivia",
		Short:         "Trivia question bank API",
		Long:          "Serves a trivia question bank over HTTP: listing, search, question management and quiz play.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", "", "store driver (memory|postgres|sqlite), overrides STORE_DRIVER")
	cmd.PersistentFlags().StringVar(&opts.SQLitePath, "sqlite-path", "", "sqlite database file, overrides SQLITE_PATH")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error), overrides LOG_LEVEL")

	// Add subcommands
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

// config loads the environment configuration and applies the flag overrides
func (o *RootOptions) config() (*config.Config, error) {
	cfg := config.Load()
	if o.Driver != "" {
		cfg.StoreDriver = o.Driver
	}
	if o.SQLitePath != "" {
		cfg.SQLitePath = o.SQLitePath
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
