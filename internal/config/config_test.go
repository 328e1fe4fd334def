// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("HOME", dir)
	for _, name := range []string{"CATALOG_DB_DRIVER", "CATALOG_DB_PATH", "CATALOG_DB_DSN", "CATALOG_INTERFACE", "CATALOG_LOG_LEVEL"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, filepath.Join(dir, "data", "library-catalog", "library.db"), cfg.Database.Path)
	assert.Equal(t, InterfacePrompt, cfg.Interface)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestSaveAndLoad(t *testing.T) {
	dir := isolate(t)

	cfg := Default()
	cfg.Database.Path = "~/books/catalog.db"
	cfg.Interface = InterfaceTUI
	require.NoError(t, SaveConfig(cfg))

	path, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config", "library-catalog", "config.yaml"), path)

	fileCfg, err := LoadFile()
	require.NoError(t, err)
	assert.Equal(t, "~/books/catalog.db", fileCfg.Database.Path, "LoadFile keeps the raw value")

	effective, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "books", "catalog.db"), effective.Database.Path)
	assert.Equal(t, InterfaceTUI, effective.Interface)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	isolate(t)
	require.NoError(t, SaveConfig(Default()))

	t.Setenv("CATALOG_DB_DRIVER", "postgres")
	t.Setenv("CATALOG_DB_DSN", "postgres://localhost/catalog")
	t.Setenv("CATALOG_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/catalog", cfg.Database.DSN)
	assert.Empty(t, cfg.Database.Path)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Database.Path = "/tmp/x.db"
	assert.NoError(t, cfg.Validate())

	bad := cfg
	bad.Database.Driver = "mysql"
	assert.ErrorContains(t, bad.Validate(), "invalid database driver")

	bad = cfg
	bad.Database.Driver = DriverPostgres
	assert.ErrorContains(t, bad.Validate(), "requires a dsn")

	bad = cfg
	bad.Interface = "gui"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.LogLevel = "verbose"
	assert.Error(t, bad.Validate())
}

func TestLoadFile_Malformed(t *testing.T) {
	isolate(t)
	require.NoError(t, EnsureConfigDir())
	path, err := DefaultConfigPath()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("database: [oops"), 0600))

	_, err = LoadFile()
	assert.Error(t, err)
}
