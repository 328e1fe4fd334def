// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"library-catalog/internal/catalog"
)

const authorColumns = "id, first_name, last_name, birth_year, nationality"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuthor(row rowScanner) (*catalog.Author, error) {
	a := &catalog.Author{}
	if err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.BirthYear, &a.Nationality); err != nil {
		return nil, err
	}
	return a, nil
}

// InsertAuthor stores a and sets its ID.
func (s *Store) InsertAuthor(ctx context.Context, a *catalog.Author) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, s.rebind(
			`INSERT INTO authors (first_name, last_name, birth_year, nationality)
			 VALUES (?, ?, ?, ?) RETURNING id`),
			a.FirstName, a.LastName, a.BirthYear, a.Nationality,
		).Scan(&a.ID)
		if err != nil {
			return translate("insert author", err)
		}
		return nil
	})
}

// UpdateAuthor overwrites every column of the author with a.ID.
func (s *Store) UpdateAuthor(ctx context.Context, a *catalog.Author) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, s.rebind(
			`UPDATE authors SET first_name = ?, last_name = ?, birth_year = ?, nationality = ?
			 WHERE id = ?`),
			a.FirstName, a.LastName, a.BirthYear, a.Nationality, a.ID,
		)
		if err != nil {
			return translate("update author", err)
		}
		return requireAffected(res, "author", a.ID)
	})
}

// DeleteAuthor removes the author and all of their books. It reports false
// when no author has the id.
func (s *Store) DeleteAuthor(ctx context.Context, id int64) (bool, error) {
	return s.deleteWithBooks(ctx, "authors", "author_id", id)
}

// Author returns the author with id, or catalog.ErrNotFound.
func (s *Store) Author(ctx context.Context, id int64) (*catalog.Author, error) {
	a, err := scanAuthor(s.db.QueryRowContext(ctx,
		s.rebind("SELECT "+authorColumns+" FROM authors WHERE id = ?"), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("author %d: %w", id, catalog.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get author %d: %w", id, err)
	}
	return a, nil
}

// AuthorByName returns the lowest-id author with exactly this first and last
// name, or catalog.ErrNotFound.
func (s *Store) AuthorByName(ctx context.Context, first, last string) (*catalog.Author, error) {
	a, err := scanAuthor(s.db.QueryRowContext(ctx, s.rebind(
		"SELECT "+authorColumns+" FROM authors WHERE first_name = ? AND last_name = ? ORDER BY id LIMIT 1"),
		first, last))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("author %q: %w", catalog.FullName(first, last), catalog.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find author by name: %w", err)
	}
	return a, nil
}

// ListAuthors returns every author in id order.
func (s *Store) ListAuthors(ctx context.Context) ([]*catalog.Author, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+authorColumns+" FROM authors ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	var authors []*catalog.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

// BooksByAuthor returns the author's books in id order.
func (s *Store) BooksByAuthor(ctx context.Context, authorID int64) ([]*catalog.Book, error) {
	return s.queryBooks(ctx, "WHERE author_id = ?", authorID)
}

// deleteWithBooks removes the dependent books and then the parent row in one
// transaction. The schema cascades as well; the explicit delete keeps the
// behaviour independent of the foreign_keys pragma.
func (s *Store) deleteWithBooks(ctx context.Context, table, fkColumn string, id int64) (bool, error) {
	var deleted bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		found, err := s.exists(ctx, tx, table, id)
		if err != nil || !found {
			return err
		}
		if _, err := tx.ExecContext(ctx, s.rebind("DELETE FROM books WHERE "+fkColumn+" = ?"), id); err != nil {
			return fmt.Errorf("failed to delete books of %s %d: %w", table, id, err)
		}
		if _, err := tx.ExecContext(ctx, s.rebind("DELETE FROM "+table+" WHERE id = ?"), id); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
		deleted = true
		return nil
	})
	return deleted, err
}

func requireAffected(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, catalog.ErrNotFound)
	}
	return nil
}
