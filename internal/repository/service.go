// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package repository implements the validated catalog operations on top of the
// store: create, update, delete, list, lookups and relationship traversal for
// authors, publishers and books.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"library-catalog/internal/catalog"
)

// Store is the persistence the service needs. *store.Store implements it.
type Store interface {
	InsertAuthor(ctx context.Context, a *catalog.Author) error
	UpdateAuthor(ctx context.Context, a *catalog.Author) error
	DeleteAuthor(ctx context.Context, id int64) (bool, error)
	Author(ctx context.Context, id int64) (*catalog.Author, error)
	AuthorByName(ctx context.Context, first, last string) (*catalog.Author, error)
	ListAuthors(ctx context.Context) ([]*catalog.Author, error)
	BooksByAuthor(ctx context.Context, authorID int64) ([]*catalog.Book, error)

	InsertPublisher(ctx context.Context, p *catalog.Publisher) error
	UpdatePublisher(ctx context.Context, p *catalog.Publisher) error
	DeletePublisher(ctx context.Context, id int64) (bool, error)
	Publisher(ctx context.Context, id int64) (*catalog.Publisher, error)
	PublisherByName(ctx context.Context, name string) (*catalog.Publisher, error)
	ListPublishers(ctx context.Context) ([]*catalog.Publisher, error)
	BooksByPublisher(ctx context.Context, publisherID int64) ([]*catalog.Book, error)

	InsertBook(ctx context.Context, b *catalog.Book) error
	UpdateBook(ctx context.Context, b *catalog.Book) error
	DeleteBook(ctx context.Context, id int64) (bool, error)
	Book(ctx context.Context, id int64) (*catalog.Book, error)
	BookByTitle(ctx context.Context, title string) (*catalog.Book, error)
	ListBooks(ctx context.Context) ([]*catalog.Book, error)
}

// Service runs catalog operations against a single store handle.
type Service struct {
	store  Store
	logger *slog.Logger
}

// New creates a Service. A nil logger discards log output.
func New(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		store:  store,
		logger: logger,
	}
}

// found maps catalog.ErrNotFound to an absent result.
func found(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, catalog.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// duplicate turns a uniqueness breach reported by the store into a
// validation error with an operator-facing message.
func duplicate(err error, format string, args ...any) error {
	if errors.Is(err, catalog.ErrDuplicate) {
		return &catalog.ValidationError{
			Message: fmt.Sprintf(format, args...),
			Cause:   catalog.ErrDuplicate,
		}
	}
	return err
}
