// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package repository

import (
	"context"
	"fmt"
	"strconv"

	"library-catalog/internal/catalog"
)

// Entity is the uniform per-kind contract the interactive dispatcher drives.
// Input arrives as raw prompted text (catalog.Values) and is parsed and
// validated here, so every kind fails the same way on malformed input.
type Entity interface {
	Kind() catalog.Kind
	// Fields lists the inputs collected when creating a record.
	Fields() []catalog.Field
	// UpdateFields lists the inputs collected when editing a record.
	UpdateFields() []catalog.Field
	// Values renders rec as prompt defaults for both field lists.
	Values(rec catalog.Record) catalog.Values

	Create(ctx context.Context, vals catalog.Values) (catalog.Record, error)
	// Update applies every value to the record with id and persists it. Any
	// failing assignment fails the whole update. An unknown id yields
	// catalog.ErrNotFound.
	Update(ctx context.Context, id int64, vals catalog.Values) (catalog.Record, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ListAll(ctx context.Context) ([]catalog.Record, error)
	FindByID(ctx context.Context, id int64) (catalog.Record, bool, error)
	FindByName(ctx context.Context, key string) (catalog.Record, bool, error)
	ListRelated(ctx context.Context, id int64) (catalog.Related, error)
}

// Entities returns the adapters for every kind in menu order.
func (s *Service) Entities() []Entity {
	entities := make([]Entity, 0, len(catalog.Kinds))
	for _, k := range catalog.Kinds {
		entities = append(entities, s.Entity(k))
	}
	return entities
}

// Entity returns the adapter for kind k.
func (s *Service) Entity(k catalog.Kind) Entity {
	switch k {
	case catalog.KindAuthor:
		return authorEntity{s}
	case catalog.KindPublisher:
		return publisherEntity{s}
	case catalog.KindBook:
		return bookEntity{s}
	default:
		panic(fmt.Sprintf("repository: no entity for %v", k))
	}
}

func records[T catalog.Record](items []T, err error) ([]catalog.Record, error) {
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Record, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out, nil
}

// record avoids returning a typed nil pointer inside the interface.
func record[T catalog.Record](item T, ok bool, err error) (catalog.Record, bool, error) {
	if err != nil || !ok {
		return nil, false, err
	}
	return item, true, nil
}

func itoa(n int) string { return strconv.Itoa(n) }

func idtoa(n int64) string { return strconv.FormatInt(n, 10) }

// ============================================================================
// Authors
// ============================================================================

type authorEntity struct{ s *Service }

func (authorEntity) Kind() catalog.Kind            { return catalog.KindAuthor }
func (authorEntity) Fields() []catalog.Field       { return catalog.AuthorFields }
func (authorEntity) UpdateFields() []catalog.Field { return catalog.AuthorUpdateFields }

func (authorEntity) Values(rec catalog.Record) catalog.Values {
	a := rec.(*catalog.Author)
	return catalog.Values{
		catalog.FieldFirstName:   a.FirstName,
		catalog.FieldLastName:    a.LastName,
		catalog.FieldFullName:    a.FullName(),
		catalog.FieldBirthYear:   itoa(a.BirthYear),
		catalog.FieldNationality: a.Nationality,
	}
}

func (e authorEntity) Create(ctx context.Context, vals catalog.Values) (catalog.Record, error) {
	v := &catalog.Validator{}
	a := catalog.Author{
		FirstName:   vals.Text(catalog.FieldFirstName),
		LastName:    vals.Text(catalog.FieldLastName),
		BirthYear:   vals.Int(v, catalog.FieldBirthYear),
		Nationality: vals.Text(catalog.FieldNationality),
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	return nilOnError(e.s.CreateAuthor(ctx, a))
}

func (e authorEntity) Update(ctx context.Context, id int64, vals catalog.Values) (catalog.Record, error) {
	a, ok, err := e.s.FindAuthorByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("author %d: %w", id, catalog.ErrNotFound)
	}

	if err := a.SetFullName(vals.Text(catalog.FieldFullName)); err != nil {
		return nil, err
	}
	v := &catalog.Validator{}
	a.BirthYear = vals.Int(v, catalog.FieldBirthYear)
	a.Nationality = vals.Text(catalog.FieldNationality)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := e.s.UpdateAuthor(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (e authorEntity) Delete(ctx context.Context, id int64) (bool, error) {
	return e.s.DeleteAuthor(ctx, id)
}

func (e authorEntity) ListAll(ctx context.Context) ([]catalog.Record, error) {
	return records(e.s.ListAuthors(ctx))
}

func (e authorEntity) FindByID(ctx context.Context, id int64) (catalog.Record, bool, error) {
	return record(e.s.FindAuthorByID(ctx, id))
}

func (e authorEntity) FindByName(ctx context.Context, key string) (catalog.Record, bool, error) {
	return record(e.s.FindAuthorByName(ctx, key))
}

func (e authorEntity) ListRelated(ctx context.Context, id int64) (catalog.Related, error) {
	books, err := e.s.BooksByAuthor(ctx, id)
	return catalog.Related{Books: books}, err
}

// ============================================================================
// Publishers
// ============================================================================

type publisherEntity struct{ s *Service }

func (publisherEntity) Kind() catalog.Kind            { return catalog.KindPublisher }
func (publisherEntity) Fields() []catalog.Field       { return catalog.PublisherFields }
func (publisherEntity) UpdateFields() []catalog.Field { return catalog.PublisherFields }

func (publisherEntity) Values(rec catalog.Record) catalog.Values {
	p := rec.(*catalog.Publisher)
	return catalog.Values{
		catalog.FieldName:        p.Name,
		catalog.FieldFoundedYear: itoa(p.FoundedYear),
		catalog.FieldLocation:    p.Location,
		catalog.FieldWebsite:     p.WebsiteOrEmpty(),
	}
}

func parsePublisher(vals catalog.Values, p *catalog.Publisher) error {
	v := &catalog.Validator{}
	p.Name = vals.Text(catalog.FieldName)
	p.FoundedYear = vals.Int(v, catalog.FieldFoundedYear)
	p.Location = vals.Text(catalog.FieldLocation)
	p.Website = vals.OptionalText(catalog.FieldWebsite)
	return v.Err()
}

func (e publisherEntity) Create(ctx context.Context, vals catalog.Values) (catalog.Record, error) {
	var p catalog.Publisher
	if err := parsePublisher(vals, &p); err != nil {
		return nil, err
	}
	return nilOnError(e.s.CreatePublisher(ctx, p))
}

func (e publisherEntity) Update(ctx context.Context, id int64, vals catalog.Values) (catalog.Record, error) {
	p, ok, err := e.s.FindPublisherByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("publisher %d: %w", id, catalog.ErrNotFound)
	}
	if err := parsePublisher(vals, p); err != nil {
		return nil, err
	}
	if err := e.s.UpdatePublisher(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (e publisherEntity) Delete(ctx context.Context, id int64) (bool, error) {
	return e.s.DeletePublisher(ctx, id)
}

func (e publisherEntity) ListAll(ctx context.Context) ([]catalog.Record, error) {
	return records(e.s.ListPublishers(ctx))
}

func (e publisherEntity) FindByID(ctx context.Context, id int64) (catalog.Record, bool, error) {
	return record(e.s.FindPublisherByID(ctx, id))
}

func (e publisherEntity) FindByName(ctx context.Context, key string) (catalog.Record, bool, error) {
	return record(e.s.FindPublisherByName(ctx, key))
}

func (e publisherEntity) ListRelated(ctx context.Context, id int64) (catalog.Related, error) {
	books, err := e.s.BooksByPublisher(ctx, id)
	return catalog.Related{Books: books}, err
}

// ============================================================================
// Books
// ============================================================================

type bookEntity struct{ s *Service }

func (bookEntity) Kind() catalog.Kind            { return catalog.KindBook }
func (bookEntity) Fields() []catalog.Field       { return catalog.BookFields }
func (bookEntity) UpdateFields() []catalog.Field { return catalog.BookFields }

func (bookEntity) Values(rec catalog.Record) catalog.Values {
	b := rec.(*catalog.Book)
	return catalog.Values{
		catalog.FieldTitle:           b.Title,
		catalog.FieldPublicationYear: itoa(b.PublicationYear),
		catalog.FieldGenre:           b.Genre,
		catalog.FieldAuthorID:        idtoa(b.AuthorID),
		catalog.FieldPublisherID:     idtoa(b.PublisherID),
	}
}

func parseBook(vals catalog.Values, b *catalog.Book) error {
	v := &catalog.Validator{}
	b.Title = vals.Text(catalog.FieldTitle)
	b.PublicationYear = vals.Int(v, catalog.FieldPublicationYear)
	b.Genre = vals.Text(catalog.FieldGenre)
	b.AuthorID = vals.ID(v, catalog.FieldAuthorID)
	b.PublisherID = vals.ID(v, catalog.FieldPublisherID)
	return v.Err()
}

func (e bookEntity) Create(ctx context.Context, vals catalog.Values) (catalog.Record, error) {
	var b catalog.Book
	if err := parseBook(vals, &b); err != nil {
		return nil, err
	}
	return nilOnError(e.s.CreateBook(ctx, b))
}

func (e bookEntity) Update(ctx context.Context, id int64, vals catalog.Values) (catalog.Record, error) {
	b, ok, err := e.s.FindBookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("book %d: %w", id, catalog.ErrNotFound)
	}
	if err := parseBook(vals, b); err != nil {
		return nil, err
	}
	if err := e.s.UpdateBook(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (e bookEntity) Delete(ctx context.Context, id int64) (bool, error) {
	return e.s.DeleteBook(ctx, id)
}

func (e bookEntity) ListAll(ctx context.Context) ([]catalog.Record, error) {
	return records(e.s.ListBooks(ctx))
}

func (e bookEntity) FindByID(ctx context.Context, id int64) (catalog.Record, bool, error) {
	return record(e.s.FindBookByID(ctx, id))
}

func (e bookEntity) FindByName(ctx context.Context, key string) (catalog.Record, bool, error) {
	return record(e.s.FindBookByTitle(ctx, key))
}

func (e bookEntity) ListRelated(ctx context.Context, id int64) (catalog.Related, error) {
	return e.s.BookRelations(ctx, id)
}

func nilOnError[T catalog.Record](item T, err error) (catalog.Record, error) {
	if err != nil {
		return nil, err
	}
	return item, nil
}
