// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"library-catalog/internal/config"
	"library-catalog/internal/dispatch"
	"library-catalog/internal/logger"
	"library-catalog/internal/prompt"
	"library-catalog/internal/repository"
	"library-catalog/internal/store"
	"library-catalog/internal/ui"
)

// version is overridden at build time with -ldflags "-X library-catalog/cmd/cli.version=..."
var version = "dev"

var (
	statusColor     = color.New(color.FgCyan)
	errorColor      = color.New(color.FgRed)
	successColor    = color.New(color.FgGreen)
	identifierColor = color.New(color.FgBlue)
	dimColor        = color.New(color.Faint)
)

// cfg is the effective configuration, loaded before every command runs.
var cfg config.Config

var (
	flagDB     string
	flagDSN    string
	flagDriver string
)

const interactiveAnnotation = "interactive"

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Library catalog manager",
	Long: `Manage a catalog of authors, publishers and books.

Without a subcommand an interactive menu session is started. The catalog is
stored in SQLite (~/.local/share/library-catalog/library.db by default) or in
PostgreSQL, as configured in ~/.config/library-catalog/config.yaml.`,
	Version:      version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	Annotations:  map[string]string{interactiveAnnotation: "true"},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.EnsureConfigDir(); err != nil {
			return fmt.Errorf("failed to ensure config directory: %w", err)
		}
		loaded, err := loadEffectiveConfig(cmd)
		if err != nil {
			return err
		}
		cfg = loaded

		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger.InitLogger(cmd.Annotations[interactiveAnnotation] == "true", level)
		logger.Debug("command_started", "command", cmd.CommandPath(), "driver", cfg.Database.Driver)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd.Context(), cfg.Interface)
	},
}

func RunCLI() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database file (overrides configuration)")
	rootCmd.PersistentFlags().StringVar(&flagDSN, "dsn", "", "PostgreSQL connection string (overrides configuration)")
	rootCmd.PersistentFlags().StringVar(&flagDriver, "driver", "", "database driver: sqlite or postgres")
	_ = rootCmd.RegisterFlagCompletionFunc("driver", fixedCompletion(config.DriverSQLite, config.DriverPostgres))

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(configCmd)
}

// loadEffectiveConfig applies command-line flags over the loaded configuration.
func loadEffectiveConfig(cmd *cobra.Command) (config.Config, error) {
	loaded, err := config.LoadConfig()
	if err != nil {
		return loaded, err
	}

	flags := cmd.Flags()
	if flags.Changed("driver") {
		loaded.Database.Driver = flagDriver
	}
	if flags.Changed("db") {
		loaded.Database.Driver = config.DriverSQLite
		loaded.Database.Path = flagDB
	}
	if flags.Changed("dsn") {
		loaded.Database.Driver = config.DriverPostgres
		loaded.Database.DSN = flagDSN
	}
	if err := loaded.Resolve(); err != nil {
		return loaded, err
	}
	return loaded, loaded.Validate()
}

func storeConfig(c config.Config) store.Config {
	return store.Config{
		Driver: store.Driver(c.Database.Driver),
		Path:   c.Database.Path,
		DSN:    c.Database.DSN,
	}
}

// withService opens the configured store for the duration of fn.
func withService(ctx context.Context, fn func(svc *repository.Service) error) error {
	st, err := store.Open(ctx, storeConfig(cfg))
	if err != nil {
		logger.Error("store_open_failed", "driver", cfg.Database.Driver, "error", err)
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("store_close_failed", "error", err)
		}
	}()

	return fn(repository.New(st, logger.Get()))
}

// runSession starts the interactive menu with the given front end.
func runSession(ctx context.Context, iface string) error {
	return withService(ctx, func(svc *repository.Service) error {
		var p dispatch.Prompter
		if iface == config.InterfaceTUI {
			p = ui.NewPrompter(os.Stdin, os.Stdout)
		} else {
			p = prompt.New(os.Stdin, os.Stdout)
		}
		return dispatch.New(svc, p, os.Stdout, logger.Get()).Run(ctx)
	})
}

var tuiCmd = &cobra.Command{
	Use:         "tui",
	Short:       "Start an interactive session with the full-screen interface",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{interactiveAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd.Context(), config.InterfaceTUI)
	},
}
