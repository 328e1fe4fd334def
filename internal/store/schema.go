// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package store

import (
	"context"
	"embed"
	"fmt"
	"strings"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// schemaFile returns the DDL for the store's driver.
func (s *Store) schemaFile() string {
	if s.driver == DriverPostgres {
		return "schema/postgres.sql"
	}
	return "schema/sqlite.sql"
}

// createSchema creates any missing tables and indexes. Existing tables are
// left as they are.
func (s *Store) createSchema(ctx context.Context) error {
	ddl, err := schemaFS.ReadFile(s.schemaFile())
	if err != nil {
		return fmt.Errorf("failed to read embedded schema: %w", err)
	}

	// Statements are executed one at a time; not every driver accepts a
	// multi-statement Exec.
	for _, stmt := range strings.Split(string(ddl), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
