// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/catalog"
)

func TestEntities_Order(t *testing.T) {
	svc := newService(t)

	entities := svc.Entities()
	require.Len(t, entities, 3)
	assert.Equal(t, catalog.KindAuthor, entities[0].Kind())
	assert.Equal(t, catalog.KindPublisher, entities[1].Kind())
	assert.Equal(t, catalog.KindBook, entities[2].Kind())
}

func TestEntity_CreateFromValues(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	rec, err := svc.Entity(catalog.KindAuthor).Create(ctx, catalog.Values{
		catalog.FieldFirstName:   "Jane",
		catalog.FieldLastName:    "Austen",
		catalog.FieldBirthYear:   "1775",
		catalog.FieldNationality: "British",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.RecordID())

	rec, err = svc.Entity(catalog.KindPublisher).Create(ctx, catalog.Values{
		catalog.FieldName:        "Penguin",
		catalog.FieldFoundedYear: "1935",
		catalog.FieldLocation:    "London",
		catalog.FieldWebsite:     "",
	})
	require.NoError(t, err)
	assert.Nil(t, rec.(*catalog.Publisher).Website)

	_, err = svc.Entity(catalog.KindBook).Create(ctx, catalog.Values{
		catalog.FieldTitle:           "Emma",
		catalog.FieldPublicationYear: "eighteen",
		catalog.FieldGenre:           "Novel",
		catalog.FieldAuthorID:        "1",
		catalog.FieldPublisherID:     "1",
	})
	require.Error(t, err)
	assert.True(t, catalog.IsValidation(err))

	rec, err = svc.Entity(catalog.KindBook).Create(ctx, catalog.Values{
		catalog.FieldTitle:           "Emma",
		catalog.FieldPublicationYear: "1815",
		catalog.FieldGenre:           "Novel",
		catalog.FieldAuthorID:        "1",
		catalog.FieldPublisherID:     "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Emma", catalog.Label(rec))
}

func TestEntity_UpdateAuthorFullName(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	authors := svc.Entity(catalog.KindAuthor)

	a, err := svc.CreateAuthor(ctx, austen())
	require.NoError(t, err)

	vals := authors.Values(a)
	assert.Equal(t, "Jane Austen", vals[catalog.FieldFullName])
	assert.Equal(t, "1775", vals[catalog.FieldBirthYear])

	vals[catalog.FieldFullName] = "Austen"
	vals[catalog.FieldNationality] = "English"
	_, err = authors.Update(ctx, a.ID, vals)
	require.Error(t, err)
	assert.True(t, catalog.IsValidation(err))

	got, _, err := svc.FindAuthorByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Austen", got.FullName())
	assert.Equal(t, "British", got.Nationality, "a failed update must not change the row")

	vals[catalog.FieldFullName] = "Jane  Austen Leigh"
	rec, err := authors.Update(ctx, a.ID, vals)
	require.NoError(t, err)
	updated := rec.(*catalog.Author)
	assert.Equal(t, "Jane", updated.FirstName)
	assert.Equal(t, "Austen Leigh", updated.LastName)
	assert.Equal(t, "English", updated.Nationality)

	_, err = authors.Update(ctx, 404, vals)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestEntity_UpdateBookDuplicateTitle(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	books := svc.Entity(catalog.KindBook)

	a, err := svc.CreateAuthor(ctx, austen())
	require.NoError(t, err)
	p, err := svc.CreatePublisher(ctx, penguin())
	require.NoError(t, err)
	_, err = svc.CreateBook(ctx, catalog.Book{Title: "Emma", PublicationYear: 1815, Genre: "Novel", AuthorID: a.ID, PublisherID: p.ID})
	require.NoError(t, err)
	other, err := svc.CreateBook(ctx, catalog.Book{Title: "Persuasion", PublicationYear: 1817, Genre: "Novel", AuthorID: a.ID, PublisherID: p.ID})
	require.NoError(t, err)

	vals := books.Values(other)
	vals[catalog.FieldTitle] = "Emma"
	_, err = books.Update(ctx, other.ID, vals)
	assert.ErrorIs(t, err, catalog.ErrDuplicate)

	rec, ok, err := books.FindByID(ctx, other.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Persuasion", catalog.Label(rec))
}

func TestEntity_LookupsAndRelations(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	rec, ok, err := svc.Entity(catalog.KindPublisher).FindByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, rec, "absent results carry no typed nil")

	a, err := svc.CreateAuthor(ctx, austen())
	require.NoError(t, err)
	p, err := svc.CreatePublisher(ctx, penguin())
	require.NoError(t, err)
	b, err := svc.CreateBook(ctx, catalog.Book{Title: "Emma", PublicationYear: 1815, Genre: "Novel", AuthorID: a.ID, PublisherID: p.ID})
	require.NoError(t, err)

	rec, ok, err = svc.Entity(catalog.KindAuthor).FindByName(ctx, "Jane Austen")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, a.ID, rec.RecordID())

	rel, err := svc.Entity(catalog.KindPublisher).ListRelated(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, rel.Books, 1)
	assert.Equal(t, b.ID, rel.Books[0].ID)

	rel, err = svc.Entity(catalog.KindAuthor).ListRelated(ctx, 500)
	require.NoError(t, err)
	assert.Empty(t, rel.Books)

	rel, err = svc.Entity(catalog.KindBook).ListRelated(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, rel.Author.ID)
	assert.Equal(t, p.ID, rel.Publisher.ID)
}
