// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package dispatch

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"library-catalog/internal/catalog"
	"library-catalog/internal/repository"
)

var (
	headingColor    = color.New(color.FgCyan, color.Bold)
	errorColor      = color.New(color.FgRed)
	successColor    = color.New(color.FgGreen)
	identifierColor = color.New(color.FgBlue)
	dimColor        = color.New(color.Faint)
)

const unknown = "unknown"

// FormatRecord renders rec on one line. For books, rel supplies the author and
// publisher names; a nil reference renders as "unknown".
func FormatRecord(rec catalog.Record, rel catalog.Related) string {
	id := identifierColor.Sprintf("[%d]", rec.RecordID())
	switch r := rec.(type) {
	case *catalog.Author:
		return fmt.Sprintf("%s %s (born %d, %s)", id, r.FullName(), r.BirthYear, r.Nationality)
	case *catalog.Publisher:
		line := fmt.Sprintf("%s %s (founded %d, %s)", id, r.Name, r.FoundedYear, r.Location)
		if r.Website != nil {
			line += " " + dimColor.Sprint(*r.Website)
		}
		return line
	case *catalog.Book:
		author, publisher := unknown, unknown
		if rel.Author != nil {
			author = rel.Author.FullName()
		}
		if rel.Publisher != nil {
			publisher = rel.Publisher.Name
		}
		return fmt.Sprintf("%s %s (%d, %s) by %s, published by %s",
			id, r.Title, r.PublicationYear, r.Genre, author, publisher)
	default:
		return fmt.Sprintf("%s %s", id, catalog.Label(rec))
	}
}

// FormatDetail renders rec as a labelled block, one field per line.
func FormatDetail(e repository.Entity, rec catalog.Record, rel catalog.Related) string {
	var b strings.Builder
	vals := e.Values(rec)

	headingColor.Fprintf(&b, "%s #%d\n", e.Kind().Title(), rec.RecordID())
	for _, f := range e.Fields() {
		v := vals[f.Name]
		if v == "" && f.Optional {
			v = dimColor.Sprint("(none)")
		}
		fmt.Fprintf(&b, "  %s: %s\n", strings.TrimSuffix(f.Label, " (optional)"), v)
	}
	if _, ok := rec.(*catalog.Book); ok {
		fmt.Fprintf(&b, "  Author: %s\n", authorName(rel.Author))
		fmt.Fprintf(&b, "  Publisher: %s\n", publisherName(rel.Publisher))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func authorName(a *catalog.Author) string {
	if a == nil {
		return unknown
	}
	return a.FullName()
}

func publisherName(p *catalog.Publisher) string {
	if p == nil {
		return unknown
	}
	return p.Name
}

// relations resolves a book's references for display. Other kinds need none.
func relations(ctx context.Context, cat Catalog, rec catalog.Record) (catalog.Related, error) {
	if _, ok := rec.(*catalog.Book); !ok {
		return catalog.Related{}, nil
	}
	return cat.Entity(catalog.KindBook).ListRelated(ctx, rec.RecordID())
}

func (s *Session) relations(ctx context.Context, rec catalog.Record) (catalog.Related, error) {
	return relations(ctx, s.catalog, rec)
}

func writeRecords(ctx context.Context, cat Catalog, k catalog.Kind, recs []catalog.Record, w io.Writer) error {
	if len(recs) == 0 {
		fmt.Fprintf(w, "No %s found.\n", k.Plural())
		return nil
	}
	for _, rec := range recs {
		rel, err := relations(ctx, cat, rec)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, FormatRecord(rec, rel))
	}
	return nil
}

// WriteList writes every record of kind k to w, one per line.
func WriteList(ctx context.Context, cat Catalog, k catalog.Kind, w io.Writer) error {
	recs, err := cat.Entity(k).ListAll(ctx)
	if err != nil {
		return err
	}
	return writeRecords(ctx, cat, k, recs, w)
}

func (s *Session) printRecords(ctx context.Context, e repository.Entity, recs []catalog.Record) error {
	return writeRecords(ctx, s.catalog, e.Kind(), recs, s.out)
}

func (s *Session) printHeading(format string, args ...any) {
	headingColor.Fprintf(s.out, format+"\n", args...)
}

func (s *Session) printSuccess(format string, args ...any) {
	successColor.Fprintf(s.out, format+"\n", args...)
}

func (s *Session) printError(msg string) {
	errorColor.Fprintf(s.out, "Error: %s\n", msg)
}
