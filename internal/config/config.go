// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package config handles application configuration: reading and writing the
// configuration file, applying environment overrides and providing the
// default locations of the catalog database.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const appName = "library-catalog"

// Supported values of Database.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Supported values of Config.Interface.
const (
	InterfacePrompt = "prompt"
	InterfaceTUI    = "tui"
)

var (
	drivers    = []string{DriverSQLite, DriverPostgres}
	interfaces = []string{InterfacePrompt, InterfaceTUI}
	logLevels  = []string{"debug", "info", "warn", "error"}
)

// Database selects where the catalog is stored.
type Database struct {
	// Driver is "sqlite" (default) or "postgres"
	Driver string `yaml:"driver" env:"CATALOG_DB_DRIVER"`

	// Path is the SQLite database file; "~/" is expanded
	Path string `yaml:"path,omitempty" env:"CATALOG_DB_PATH"`

	// DSN is the PostgreSQL connection string
	DSN string `yaml:"dsn,omitempty" env:"CATALOG_DB_DSN"`
}

// Config represents the top-level application configuration
type Config struct {
	Database Database `yaml:"database"`

	// Interface is the interactive front end: "prompt" or "tui"
	Interface string `yaml:"interface" env:"CATALOG_INTERFACE"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level" env:"CATALOG_LOG_LEVEL"`
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, appName, "config.yaml"), nil
}

// DefaultDatabasePath returns $XDG_DATA_HOME/library-catalog/library.db,
// falling back to ~/.local/share.
func DefaultDatabasePath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, appName, "library.db"), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Database:  Database{Driver: DriverSQLite},
		Interface: InterfacePrompt,
		LogLevel:  "info",
	}
}

// LoadFile reads the configuration file over the defaults. A missing file is
// not an error. Environment overrides are not applied, so the result is
// safe to modify and pass to SaveConfig.
func LoadFile() (Config, error) {
	cfg := Default()

	configPath, err := DefaultConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	return cfg, nil
}

// LoadConfig returns the effective configuration: defaults, then the
// configuration file, then CATALOG_* environment variables. The database
// path is resolved and the result validated.
func LoadConfig() (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return cfg, err
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.Resolve(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Resolve fills in the default database path and expands "~/".
func (c *Config) Resolve() error {
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.Database.Driver != DriverSQLite {
		return nil
	}
	if c.Database.Path == "" {
		path, err := DefaultDatabasePath()
		if err != nil {
			return err
		}
		c.Database.Path = path
		return nil
	}
	path, err := ResolvePath(c.Database.Path)
	if err != nil {
		return err
	}
	c.Database.Path = path
	return nil
}

// Validate rejects unknown drivers, interfaces and log levels.
func (c Config) Validate() error {
	if !slices.Contains(drivers, c.Database.Driver) {
		return fmt.Errorf("invalid database driver %q (expected one of %s)", c.Database.Driver, strings.Join(drivers, ", "))
	}
	if c.Database.Driver == DriverPostgres && c.Database.DSN == "" {
		return fmt.Errorf("database driver %q requires a dsn", DriverPostgres)
	}
	if !slices.Contains(interfaces, c.Interface) {
		return fmt.Errorf("invalid interface %q (expected one of %s)", c.Interface, strings.Join(interfaces, ", "))
	}
	if !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level %q (expected one of %s)", c.LogLevel, strings.Join(logLevels, ", "))
	}
	return nil
}

func EnsureConfigDir() error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(configPath)
	err = os.MkdirAll(configDir, 0750) // rwxr-x---
	if err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}
	return nil
}

func SaveConfig(cfg Config) error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}

	err = EnsureConfigDir()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// The DSN may hold a password: rw------- (0600)
	err = os.WriteFile(configPath, data, 0600)
	if err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}

	return nil
}

// ResolvePath expands a leading "~/" to the user's home directory.
func ResolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path, fmt.Errorf("could not get user home directory to resolve path '%s': %w", path, err)
	}

	return filepath.Join(homeDir, path[2:]), nil
}
