// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"library-catalog/internal/catalog"
)

// CreateBook validates b, checks that its author and publisher exist and
// stores it. A title already in use is reported as a validation error
// wrapping catalog.ErrDuplicate.
func (s *Service) CreateBook(ctx context.Context, b catalog.Book) (*catalog.Book, error) {
	b.ID = 0
	if err := s.validateBook(ctx, &b); err != nil {
		return nil, err
	}
	if err := s.store.InsertBook(ctx, &b); err != nil {
		return nil, s.bookStoreError(fmt.Errorf("failed to create book: %w", err), &b)
	}

	s.logger.Info("book_created",
		slog.Int64("book_id", b.ID),
		slog.String("title", b.Title),
		slog.Int64("author_id", b.AuthorID),
		slog.Int64("publisher_id", b.PublisherID),
	)
	return &b, nil
}

func (s *Service) UpdateBook(ctx context.Context, b *catalog.Book) error {
	if err := s.validateBook(ctx, b); err != nil {
		return err
	}
	if err := s.store.UpdateBook(ctx, b); err != nil {
		return s.bookStoreError(fmt.Errorf("failed to update book: %w", err), b)
	}

	s.logger.Info("book_updated", slog.Int64("book_id", b.ID))
	return nil
}

func (s *Service) DeleteBook(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.store.DeleteBook(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete book: %w", err)
	}
	if deleted {
		s.logger.Warn("book_deleted", slog.Int64("book_id", id))
	}
	return deleted, nil
}

func (s *Service) ListBooks(ctx context.Context) ([]*catalog.Book, error) {
	return s.store.ListBooks(ctx)
}

func (s *Service) FindBookByID(ctx context.Context, id int64) (*catalog.Book, bool, error) {
	b, err := s.store.Book(ctx, id)
	ok, err := found(err)
	return b, ok, err
}

func (s *Service) FindBookByTitle(ctx context.Context, title string) (*catalog.Book, bool, error) {
	b, err := s.store.BookByTitle(ctx, title)
	ok, err := found(err)
	return b, ok, err
}

// BookRelations resolves the author and publisher of the book with id. Either
// may be nil when its row no longer exists. An unknown book yields
// catalog.ErrNotFound.
func (s *Service) BookRelations(ctx context.Context, id int64) (catalog.Related, error) {
	b, err := s.store.Book(ctx, id)
	if err != nil {
		return catalog.Related{}, err
	}
	return s.resolveBook(ctx, b)
}

func (s *Service) resolveBook(ctx context.Context, b *catalog.Book) (catalog.Related, error) {
	var rel catalog.Related

	a, ok, err := s.FindAuthorByID(ctx, b.AuthorID)
	if err != nil {
		return rel, err
	}
	if ok {
		rel.Author = a
	}

	p, ok, err := s.FindPublisherByID(ctx, b.PublisherID)
	if err != nil {
		return rel, err
	}
	if ok {
		rel.Publisher = p
	}
	return rel, nil
}

// validateBook runs the field rules and then the reference checks, reporting
// both kinds of failure in a single validation error.
func (s *Service) validateBook(ctx context.Context, b *catalog.Book) error {
	if err := b.Validate(); err != nil {
		return err
	}

	var details []catalog.FieldError
	if _, ok, err := s.FindAuthorByID(ctx, b.AuthorID); err != nil {
		return err
	} else if !ok {
		details = append(details, catalog.FieldError{
			Field:   catalog.FieldAuthorID,
			Message: fmt.Sprintf("author %d does not exist", b.AuthorID),
		})
	}
	if _, ok, err := s.FindPublisherByID(ctx, b.PublisherID); err != nil {
		return err
	} else if !ok {
		details = append(details, catalog.FieldError{
			Field:   catalog.FieldPublisherID,
			Message: fmt.Sprintf("publisher %d does not exist", b.PublisherID),
		})
	}
	if len(details) > 0 {
		return &catalog.ValidationError{
			Message: "book references a missing record",
			Details: details,
			Cause:   catalog.ErrUnknownReference,
		}
	}
	return nil
}

func (s *Service) bookStoreError(err error, b *catalog.Book) error {
	if errors.Is(err, catalog.ErrUnknownReference) {
		return &catalog.ValidationError{
			Message: "book references a missing record",
			Cause:   catalog.ErrUnknownReference,
		}
	}
	return duplicate(err, "a book titled %q already exists", b.Title)
}
