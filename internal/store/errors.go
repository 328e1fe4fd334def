// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"library-catalog/internal/catalog"
)

// constraintKind classifies a driver error raised by a violated constraint.
type constraintKind int

const (
	constraintNone constraintKind = iota
	constraintUnique
	constraintForeignKey
)

func classify(err error) constraintKind {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return constraintUnique
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return constraintForeignKey
		}
		// Primary result code only; fall back to the message.
		if sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			msg := sqliteErr.Error()
			switch {
			case strings.Contains(msg, "UNIQUE"):
				return constraintUnique
			case strings.Contains(msg, "FOREIGN KEY"):
				return constraintForeignKey
			}
		}
		return constraintNone
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return constraintUnique
		case pgerrcode.ForeignKeyViolation:
			return constraintForeignKey
		}
	}
	return constraintNone
}

// translate wraps constraint violations in the matching catalog sentinel so
// callers can test them with errors.Is. Other errors are wrapped with op.
func translate(op string, err error) error {
	switch classify(err) {
	case constraintUnique:
		return fmt.Errorf("%s: %w: %v", op, catalog.ErrDuplicate, err)
	case constraintForeignKey:
		return fmt.Errorf("%s: %w: %v", op, catalog.ErrUnknownReference, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
