// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package dispatch is the interactive front end of the catalog: a generic
// menu engine bound to the per-kind repository operations, with plain-text
// rendering of the results.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"library-catalog/internal/catalog"
	"library-catalog/internal/repository"
)

// Catalog is the repository surface the session drives.
type Catalog interface {
	Entities() []repository.Entity
	Entity(k catalog.Kind) repository.Entity
}

// Session is one interactive run over a catalog.
type Session struct {
	catalog  Catalog
	prompter Prompter
	out      io.Writer
	logger   *slog.Logger
}

// New creates a session writing its output to out. A nil logger discards
// log output.
func New(cat Catalog, p Prompter, out io.Writer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		catalog:  cat,
		prompter: p,
		out:      out,
		logger:   logger,
	}
}

// Run shows the main menu until the operator exits or input ends.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("session_started")
	err := s.runMenu(ctx, s.mainMenu())
	if err != nil && !IsAbort(err) {
		return err
	}
	fmt.Fprintln(s.out, "Goodbye.")
	s.logger.Info("session_ended")
	return nil
}

func (s *Session) mainMenu() Menu {
	m := Menu{Title: "Library Catalog"}
	for _, e := range s.catalog.Entities() {
		sub := s.entityMenu(e)
		m.Options = append(m.Options, Option{
			Label: "Manage " + e.Kind().Title() + "s",
			Action: func(ctx context.Context) error {
				return s.runMenu(ctx, sub)
			},
		})
	}
	m.Options = append(m.Options, Option{Label: "Exit"})
	return m
}

func (s *Session) entityMenu(e repository.Entity) Menu {
	k := e.Kind()
	return Menu{
		Title: "Manage " + k.Title() + "s",
		Options: []Option{
			{Label: "Add new " + k.String(), Action: s.bind(e, s.add)},
			{Label: "List all " + k.Plural(), Action: s.bind(e, s.list)},
			{Label: "Update " + k.String(), Action: s.bind(e, s.update)},
			{Label: "Delete " + k.String(), Action: s.bind(e, s.remove)},
			{Label: "Find " + k.String() + " by ID", Action: s.bind(e, s.findByID)},
			{Label: "Find " + k.String() + " by " + searchLabel(k), Action: s.bind(e, s.findByName)},
			{Label: relatedLabel(k), Action: s.bind(e, s.related)},
			{Label: "Back"},
		},
	}
}

func (s *Session) bind(e repository.Entity, fn func(context.Context, repository.Entity) error) Action {
	return func(ctx context.Context) error {
		return fn(ctx, e)
	}
}

func searchLabel(k catalog.Kind) string {
	if k == catalog.KindBook {
		return "title"
	}
	return "name"
}

func relatedLabel(k catalog.Kind) string {
	switch k {
	case catalog.KindAuthor:
		return "List books by author"
	case catalog.KindPublisher:
		return "List books by publisher"
	default:
		return "View author and publisher"
	}
}
