// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package repository

import (
	"context"
	"fmt"
	"log/slog"

	"library-catalog/internal/catalog"
)

// CreateAuthor validates and stores a new author, returning it with its id.
func (s *Service) CreateAuthor(ctx context.Context, a catalog.Author) (*catalog.Author, error) {
	a.ID = 0
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.InsertAuthor(ctx, &a); err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	s.logger.Info("author_created", slog.Int64("author_id", a.ID), slog.String("name", a.FullName()))
	return &a, nil
}

// UpdateAuthor validates a and overwrites the stored author with the same id.
func (s *Service) UpdateAuthor(ctx context.Context, a *catalog.Author) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := s.store.UpdateAuthor(ctx, a); err != nil {
		return fmt.Errorf("failed to update author: %w", err)
	}

	s.logger.Info("author_updated", slog.Int64("author_id", a.ID))
	return nil
}

// DeleteAuthor removes the author and their books. It returns false when
// there is no author with id.
func (s *Service) DeleteAuthor(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.store.DeleteAuthor(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete author: %w", err)
	}
	if deleted {
		s.logger.Warn("author_deleted", slog.Int64("author_id", id))
	}
	return deleted, nil
}

func (s *Service) ListAuthors(ctx context.Context) ([]*catalog.Author, error) {
	return s.store.ListAuthors(ctx)
}

func (s *Service) FindAuthorByID(ctx context.Context, id int64) (*catalog.Author, bool, error) {
	a, err := s.store.Author(ctx, id)
	ok, err := found(err)
	return a, ok, err
}

// FindAuthorByName matches the first token of fullName against the first name
// and the remaining tokens against the last name, exactly. A single token
// therefore only matches an author whose last name is empty.
func (s *Service) FindAuthorByName(ctx context.Context, fullName string) (*catalog.Author, bool, error) {
	first, last, ok := catalog.SplitNameKey(fullName)
	if !ok {
		return nil, false, nil
	}
	a, err := s.store.AuthorByName(ctx, first, last)
	ok, err = found(err)
	return a, ok, err
}

// BooksByAuthor returns the author's books; an unknown author has none.
func (s *Service) BooksByAuthor(ctx context.Context, authorID int64) ([]*catalog.Book, error) {
	return s.store.BooksByAuthor(ctx, authorID)
}
