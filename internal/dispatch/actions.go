// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"library-catalog/internal/catalog"
	"library-catalog/internal/repository"
)

// ask collects every field, offering defaults where given.
func (s *Session) ask(fields []catalog.Field, defaults catalog.Values) (catalog.Values, error) {
	vals := make(catalog.Values, len(fields))
	for _, f := range fields {
		answer, err := s.prompter.Ask(QuestionFor(f, defaults))
		if err != nil {
			return nil, err
		}
		vals[f.Name] = answer
	}
	return vals, nil
}

func (s *Session) askID(k catalog.Kind) (int64, error) {
	answer, err := s.prompter.Ask(Question{Label: k.Title() + " ID", Type: catalog.FieldInt})
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(answer, 10, 64)
	if err != nil {
		return 0, catalog.Invalid(fmt.Sprintf("'%s' is not a valid id", answer))
	}
	return id, nil
}

func (s *Session) notFound(k catalog.Kind, id int64) {
	fmt.Fprintf(s.out, "%s %d not found.\n", k.Title(), id)
}

// lookup asks for an id and fetches the record, printing a message and
// returning nil when there is none.
func (s *Session) lookup(ctx context.Context, e repository.Entity) (catalog.Record, error) {
	id, err := s.askID(e.Kind())
	if err != nil {
		return nil, err
	}
	rec, ok, err := e.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.notFound(e.Kind(), id)
		return nil, nil
	}
	return rec, nil
}

func (s *Session) add(ctx context.Context, e repository.Entity) error {
	if e.Kind() == catalog.KindBook {
		// Show what the new book can refer to.
		for _, k := range []catalog.Kind{catalog.KindAuthor, catalog.KindPublisher} {
			ref := s.catalog.Entity(k)
			recs, err := ref.ListAll(ctx)
			if err != nil {
				return err
			}
			s.printHeading("%ss:", k.Title())
			if err := s.printRecords(ctx, ref, recs); err != nil {
				return err
			}
		}
	}

	vals, err := s.ask(e.Fields(), nil)
	if err != nil {
		return err
	}
	rec, err := e.Create(ctx, vals)
	if err != nil {
		return err
	}

	rel, err := s.relations(ctx, rec)
	if err != nil {
		return err
	}
	s.printSuccess("Added %s %s", e.Kind(), FormatRecord(rec, rel))
	return nil
}

func (s *Session) list(ctx context.Context, e repository.Entity) error {
	recs, err := e.ListAll(ctx)
	if err != nil {
		return err
	}
	s.printHeading("All %s:", e.Kind().Plural())
	return s.printRecords(ctx, e, recs)
}

func (s *Session) update(ctx context.Context, e repository.Entity) error {
	if err := s.list(ctx, e); err != nil {
		return err
	}
	rec, err := s.lookup(ctx, e)
	if err != nil || rec == nil {
		return err
	}

	fmt.Fprintf(s.out, "Editing %s %s. Press Enter to keep the current value.\n",
		e.Kind(), identifierColor.Sprint(catalog.Label(rec)))
	vals, err := s.ask(e.UpdateFields(), e.Values(rec))
	if err != nil {
		return err
	}

	updated, err := e.Update(ctx, rec.RecordID(), vals)
	if err != nil {
		s.logger.Debug("update_rejected", slog.String("kind", e.Kind().String()), slog.Int64("id", rec.RecordID()))
		return fmt.Errorf("update failed: %w", err)
	}
	rel, err := s.relations(ctx, updated)
	if err != nil {
		return err
	}
	s.printSuccess("Updated %s %s", e.Kind(), FormatRecord(updated, rel))
	return nil
}

func (s *Session) remove(ctx context.Context, e repository.Entity) error {
	if err := s.list(ctx, e); err != nil {
		return err
	}
	id, err := s.askID(e.Kind())
	if err != nil {
		return err
	}

	var dependents int
	if e.Kind() != catalog.KindBook {
		rel, err := e.ListRelated(ctx, id)
		if err != nil {
			return err
		}
		dependents = len(rel.Books)
	}

	deleted, err := e.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		s.notFound(e.Kind(), id)
		return nil
	}
	if dependents > 0 {
		s.printSuccess("Deleted %s %d and %d book(s).", e.Kind(), id, dependents)
		return nil
	}
	s.printSuccess("Deleted %s %d.", e.Kind(), id)
	return nil
}

func (s *Session) findByID(ctx context.Context, e repository.Entity) error {
	rec, err := s.lookup(ctx, e)
	if err != nil || rec == nil {
		return err
	}
	return s.showDetail(ctx, e, rec)
}

func (s *Session) findByName(ctx context.Context, e repository.Entity) error {
	k := e.Kind()
	key, err := s.prompter.Ask(Question{Label: k.Title() + " " + k.SearchField()})
	if err != nil {
		return err
	}
	rec, ok, err := e.FindByName(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(s.out, "No %s with %s '%s'.\n", k, k.SearchField(), key)
		return nil
	}
	return s.showDetail(ctx, e, rec)
}

func (s *Session) showDetail(ctx context.Context, e repository.Entity, rec catalog.Record) error {
	rel, err := s.relations(ctx, rec)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, FormatDetail(e, rec, rel))
	return nil
}

func (s *Session) related(ctx context.Context, e repository.Entity) error {
	rec, err := s.lookup(ctx, e)
	if err != nil || rec == nil {
		return err
	}
	rel, err := e.ListRelated(ctx, rec.RecordID())
	if err != nil {
		return err
	}

	if e.Kind() == catalog.KindBook {
		s.printHeading("%s", catalog.Label(rec))
		fmt.Fprintf(s.out, "  Author: %s\n", authorName(rel.Author))
		fmt.Fprintf(s.out, "  Publisher: %s\n", publisherName(rel.Publisher))
		return nil
	}

	s.printHeading("Books for %s %s:", e.Kind(), catalog.Label(rec))
	books := make([]catalog.Record, len(rel.Books))
	for i, b := range rel.Books {
		books[i] = b
	}
	return s.printRecords(ctx, s.catalog.Entity(catalog.KindBook), books)
}
