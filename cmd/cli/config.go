// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"library-catalog/internal/config"
	"library-catalog/internal/logger"
)

// configCmd is the parent command for all configuration-related subcommands.
// It skips the root's configuration loading so that an invalid file can be
// repaired.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage library-catalog configuration",
	Long: `Provides subcommands to inspect and change the library-catalog configuration:
the database driver and location, the interactive interface and the log level.
Environment variables (CATALOG_DB_DRIVER, CATALOG_DB_PATH, CATALOG_DB_DSN,
CATALOG_INTERFACE, CATALOG_LOG_LEVEL) override the file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.InitLogger(false, slog.LevelWarn)
		return config.EnsureConfigDir()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		effective, err := config.LoadConfig()
		if err != nil {
			return err
		}
		logPath, err := logger.LogFilePath()
		if err != nil {
			return err
		}

		shown := effective
		if shown.Database.DSN != "" {
			shown.Database.DSN = "[set]"
		}
		data, err := yaml.Marshal(shown)
		if err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}

		statusColor.Printf("Configuration file: %s\n", identifierColor.Sprint(path))
		statusColor.Printf("Log file:           %s\n\n", identifierColor.Sprint(logPath))
		fmt.Print(string(data))
		return nil
	},
}

// updateConfig loads the file, applies fn, validates and saves.
func updateConfig(fn func(c *config.Config)) error {
	c, err := config.LoadFile()
	if err != nil {
		return err
	}
	fn(&c)

	check := c
	if err := check.Resolve(); err != nil {
		return err
	}
	if err := check.Validate(); err != nil {
		return err
	}
	if err := config.SaveConfig(c); err != nil {
		return fmt.Errorf("error saving configuration: %w", err)
	}
	return nil
}

var configSetDBCmd = &cobra.Command{
	Use:   "set-db <path>",
	Short: "Store the catalog in the given SQLite file",
	Long: `Selects the SQLite driver and sets the database file.
Use an absolute path or a path starting with '~/'. To revert to the default
location, pass an empty string: catalog config set-db ""`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := updateConfig(func(c *config.Config) {
			c.Database.Driver = config.DriverSQLite
			c.Database.Path = args[0]
		})
		if err != nil {
			return err
		}
		if args[0] == "" {
			successColor.Println("Database reset to the default location.")
		} else {
			successColor.Printf("Database set to: %s\n", args[0])
		}
		return nil
	},
}

var configSetDSNCmd = &cobra.Command{
	Use:   "set-dsn <dsn>",
	Short: "Store the catalog in PostgreSQL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := updateConfig(func(c *config.Config) {
			c.Database.Driver = config.DriverPostgres
			c.Database.DSN = args[0]
		})
		if err != nil {
			return err
		}
		successColor.Println("Database set to PostgreSQL.")
		return nil
	},
}

var configSetDriverCmd = &cobra.Command{
	Use:               "set-driver <sqlite|postgres>",
	Short:             "Select the database driver",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: fixedCompletion(config.DriverSQLite, config.DriverPostgres),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := updateConfig(func(c *config.Config) { c.Database.Driver = args[0] }); err != nil {
			return err
		}
		successColor.Printf("Database driver set to: %s\n", args[0])
		return nil
	},
}

var configSetInterfaceCmd = &cobra.Command{
	Use:               "set-interface <prompt|tui>",
	Short:             "Select the interface started by 'catalog' without a subcommand",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: fixedCompletion(config.InterfacePrompt, config.InterfaceTUI),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := updateConfig(func(c *config.Config) { c.Interface = args[0] }); err != nil {
			return err
		}
		successColor.Printf("Interface set to: %s\n", args[0])
		return nil
	},
}

var configSetLogLevelCmd = &cobra.Command{
	Use:               "set-log-level <debug|info|warn|error>",
	Short:             "Set the minimum level written to the log",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: fixedCompletion("debug", "info", "warn", "error"),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := updateConfig(func(c *config.Config) { c.LogLevel = args[0] }); err != nil {
			return err
		}
		successColor.Printf("Log level set to: %s\n", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetDBCmd)
	configCmd.AddCommand(configSetDSNCmd)
	configCmd.AddCommand(configSetDriverCmd)
	configCmd.AddCommand(configSetInterfaceCmd)
	configCmd.AddCommand(configSetLogLevelCmd)
}
