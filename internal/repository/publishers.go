// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package repository

import (
	"context"
	"fmt"
	"log/slog"

	"library-catalog/internal/catalog"
)

// CreatePublisher validates and stores a new publisher. A name already in use
// is reported as a validation error wrapping catalog.ErrDuplicate.
func (s *Service) CreatePublisher(ctx context.Context, p catalog.Publisher) (*catalog.Publisher, error) {
	p.ID = 0
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.InsertPublisher(ctx, &p); err != nil {
		return nil, duplicate(fmt.Errorf("failed to create publisher: %w", err),
			"a publisher named %q already exists", p.Name)
	}

	s.logger.Info("publisher_created", slog.Int64("publisher_id", p.ID), slog.String("name", p.Name))
	return &p, nil
}

func (s *Service) UpdatePublisher(ctx context.Context, p *catalog.Publisher) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.store.UpdatePublisher(ctx, p); err != nil {
		return duplicate(fmt.Errorf("failed to update publisher: %w", err),
			"a publisher named %q already exists", p.Name)
	}

	s.logger.Info("publisher_updated", slog.Int64("publisher_id", p.ID))
	return nil
}

// DeletePublisher removes the publisher and its books.
func (s *Service) DeletePublisher(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.store.DeletePublisher(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete publisher: %w", err)
	}
	if deleted {
		s.logger.Warn("publisher_deleted", slog.Int64("publisher_id", id))
	}
	return deleted, nil
}

func (s *Service) ListPublishers(ctx context.Context) ([]*catalog.Publisher, error) {
	return s.store.ListPublishers(ctx)
}

func (s *Service) FindPublisherByID(ctx context.Context, id int64) (*catalog.Publisher, bool, error) {
	p, err := s.store.Publisher(ctx, id)
	ok, err := found(err)
	return p, ok, err
}

func (s *Service) FindPublisherByName(ctx context.Context, name string) (*catalog.Publisher, bool, error) {
	p, err := s.store.PublisherByName(ctx, name)
	ok, err := found(err)
	return p, ok, err
}

func (s *Service) BooksByPublisher(ctx context.Context, publisherID int64) ([]*catalog.Book, error) {
	return s.store.BooksByPublisher(ctx, publisherID)
}
