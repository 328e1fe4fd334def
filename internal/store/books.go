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

const bookColumns = "id, title, publication_year, genre, author_id, publisher_id"

func scanBook(row rowScanner) (*catalog.Book, error) {
	b := &catalog.Book{}
	if err := row.Scan(&b.ID, &b.Title, &b.PublicationYear, &b.Genre, &b.AuthorID, &b.PublisherID); err != nil {
		return nil, err
	}
	return b, nil
}

// checkBookRefs verifies inside tx that the book's author and publisher exist.
func (s *Store) checkBookRefs(ctx context.Context, tx *sql.Tx, b *catalog.Book) error {
	ok, err := s.exists(ctx, tx, "authors", b.AuthorID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("author %d: %w", b.AuthorID, catalog.ErrUnknownReference)
	}
	ok, err = s.exists(ctx, tx, "publishers", b.PublisherID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("publisher %d: %w", b.PublisherID, catalog.ErrUnknownReference)
	}
	return nil
}

// InsertBook stores b and sets its ID. Unresolved references wrap
// catalog.ErrUnknownReference and a taken title wraps catalog.ErrDuplicate.
func (s *Store) InsertBook(ctx context.Context, b *catalog.Book) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.checkBookRefs(ctx, tx, b); err != nil {
			return err
		}
		err := tx.QueryRowContext(ctx, s.rebind(
			`INSERT INTO books (title, publication_year, genre, author_id, publisher_id)
			 VALUES (?, ?, ?, ?, ?) RETURNING id`),
			b.Title, b.PublicationYear, b.Genre, b.AuthorID, b.PublisherID,
		).Scan(&b.ID)
		if err != nil {
			return translate("insert book", err)
		}
		return nil
	})
}

// UpdateBook overwrites every column of the book with b.ID.
func (s *Store) UpdateBook(ctx context.Context, b *catalog.Book) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.checkBookRefs(ctx, tx, b); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, s.rebind(
			`UPDATE books SET title = ?, publication_year = ?, genre = ?, author_id = ?, publisher_id = ?
			 WHERE id = ?`),
			b.Title, b.PublicationYear, b.Genre, b.AuthorID, b.PublisherID, b.ID,
		)
		if err != nil {
			return translate("update book", err)
		}
		return requireAffected(res, "book", b.ID)
	})
}

// DeleteBook removes the book with id, reporting false when there is none.
func (s *Store) DeleteBook(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, s.rebind("DELETE FROM books WHERE id = ?"), id)
		if err != nil {
			return fmt.Errorf("failed to delete book %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		deleted = n > 0
		return nil
	})
	return deleted, err
}

// Book returns the book with id, or catalog.ErrNotFound.
func (s *Store) Book(ctx context.Context, id int64) (*catalog.Book, error) {
	b, err := scanBook(s.db.QueryRowContext(ctx,
		s.rebind("SELECT "+bookColumns+" FROM books WHERE id = ?"), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("book %d: %w", id, catalog.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book %d: %w", id, err)
	}
	return b, nil
}

// BookByTitle returns the book with exactly this title, or catalog.ErrNotFound.
func (s *Store) BookByTitle(ctx context.Context, title string) (*catalog.Book, error) {
	b, err := scanBook(s.db.QueryRowContext(ctx,
		s.rebind("SELECT "+bookColumns+" FROM books WHERE title = ?"), title))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("book %q: %w", title, catalog.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find book by title: %w", err)
	}
	return b, nil
}

// ListBooks returns every book in id order.
func (s *Store) ListBooks(ctx context.Context) ([]*catalog.Book, error) {
	return s.queryBooks(ctx, "")
}

func (s *Store) queryBooks(ctx context.Context, where string, args ...any) ([]*catalog.Book, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind("SELECT "+bookColumns+" FROM books "+where+" ORDER BY id"), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []*catalog.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
