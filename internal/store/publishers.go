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

const publisherColumns = "id, name, founded_year, location, website"

func scanPublisher(row rowScanner) (*catalog.Publisher, error) {
	p := &catalog.Publisher{}
	var website sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.FoundedYear, &p.Location, &website); err != nil {
		return nil, err
	}
	p.Website = nullToPtr(website)
	return p, nil
}

// InsertPublisher stores p and sets its ID. A taken name yields an error
// wrapping catalog.ErrDuplicate.
func (s *Store) InsertPublisher(ctx context.Context, p *catalog.Publisher) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, s.rebind(
			`INSERT INTO publishers (name, founded_year, location, website)
			 VALUES (?, ?, ?, ?) RETURNING id`),
			p.Name, p.FoundedYear, p.Location, ptrToNull(p.Website),
		).Scan(&p.ID)
		if err != nil {
			return translate("insert publisher", err)
		}
		return nil
	})
}

// UpdatePublisher overwrites every column of the publisher with p.ID.
func (s *Store) UpdatePublisher(ctx context.Context, p *catalog.Publisher) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, s.rebind(
			`UPDATE publishers SET name = ?, founded_year = ?, location = ?, website = ?
			 WHERE id = ?`),
			p.Name, p.FoundedYear, p.Location, ptrToNull(p.Website), p.ID,
		)
		if err != nil {
			return translate("update publisher", err)
		}
		return requireAffected(res, "publisher", p.ID)
	})
}

// DeletePublisher removes the publisher and all of its books.
func (s *Store) DeletePublisher(ctx context.Context, id int64) (bool, error) {
	return s.deleteWithBooks(ctx, "publishers", "publisher_id", id)
}

// Publisher returns the publisher with id, or catalog.ErrNotFound.
func (s *Store) Publisher(ctx context.Context, id int64) (*catalog.Publisher, error) {
	p, err := scanPublisher(s.db.QueryRowContext(ctx,
		s.rebind("SELECT "+publisherColumns+" FROM publishers WHERE id = ?"), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("publisher %d: %w", id, catalog.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get publisher %d: %w", id, err)
	}
	return p, nil
}

// PublisherByName returns the publisher with exactly this name, or catalog.ErrNotFound.
func (s *Store) PublisherByName(ctx context.Context, name string) (*catalog.Publisher, error) {
	p, err := scanPublisher(s.db.QueryRowContext(ctx,
		s.rebind("SELECT "+publisherColumns+" FROM publishers WHERE name = ?"), name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("publisher %q: %w", name, catalog.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find publisher by name: %w", err)
	}
	return p, nil
}

// ListPublishers returns every publisher in id order.
func (s *Store) ListPublishers(ctx context.Context) ([]*catalog.Publisher, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+publisherColumns+" FROM publishers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list publishers: %w", err)
	}
	defer rows.Close()

	var publishers []*catalog.Publisher
	for rows.Next() {
		p, err := scanPublisher(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan publisher: %w", err)
		}
		publishers = append(publishers, p)
	}
	return publishers, rows.Err()
}

// BooksByPublisher returns the publisher's books in id order.
func (s *Store) BooksByPublisher(ctx context.Context, publisherID int64) ([]*catalog.Book, error) {
	return s.queryBooks(ctx, "WHERE publisher_id = ?", publisherID)
}
