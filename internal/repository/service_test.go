// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/catalog"
	"library-catalog/internal/repository"
	"library-catalog/internal/store"
)

func newService(t *testing.T) *repository.Service {
	t.Helper()
	st, err := store.Open(context.Background(), store.Config{Driver: store.DriverSQLite, Path: store.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return repository.New(st, nil)
}

func austen() catalog.Author {
	return catalog.Author{FirstName: "Jane", LastName: "Austen", BirthYear: 1775, Nationality: "British"}
}

func penguin() catalog.Publisher {
	return catalog.Publisher{Name: "Penguin", FoundedYear: 1935, Location: "London"}
}

func count(t *testing.T, svc *repository.Service, k catalog.Kind) int {
	t.Helper()
	recs, err := svc.Entity(k).ListAll(context.Background())
	require.NoError(t, err)
	return len(recs)
}

func TestScenario_AustenPenguinEmma(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	a, err := svc.CreateAuthor(ctx, austen())
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)

	p, err := svc.CreatePublisher(ctx, penguin())
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Nil(t, p.Website)

	b, err := svc.CreateBook(ctx, catalog.Book{Title: "Emma", PublicationYear: 1815, Genre: "Novel", AuthorID: 1, PublisherID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.ID)

	books, err := svc.BooksByAuthor(ctx, 1)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Emma", books[0].Title)

	deleted, err := svc.DeleteAuthor(ctx, 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	all, err := svc.ListBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateThenFindByID(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	site := "https://www.penguin.co.uk"
	in := penguin()
	in.Website = &site

	created, err := svc.CreatePublisher(ctx, in)
	require.NoError(t, err)

	got, ok, err := svc.FindPublisherByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created, got)

	a, err := svc.CreateAuthor(ctx, austen())
	require.NoError(t, err)
	gotA, ok, err := svc.FindAuthorByID(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, a, gotA)
}

func TestCreate_ValidationLeavesStoreUnchanged(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	bad := austen()
	bad.BirthYear = -1
	_, err := svc.CreateAuthor(ctx, bad)
	require.Error(t, err)
	assert.True(t, catalog.IsValidation(err))

	bad = austen()
	bad.Nationality = "  "
	_, err = svc.CreateAuthor(ctx, bad)
	assert.True(t, catalog.IsValidation(err))

	badP := penguin()
	badP.Location = ""
	_, err = svc.CreatePublisher(ctx, badP)
	assert.True(t, catalog.IsValidation(err))

	assert.Zero(t, count(t, svc, catalog.KindAuthor))
	assert.Zero(t, count(t, svc, catalog.KindPublisher))
}

func TestCreate_Duplicates(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	a, err := svc.CreateAuthor(ctx, austen())
	require.NoError(t, err)
	p, err := svc.CreatePublisher(ctx, penguin())
	require.NoError(t, err)
	_, err = svc.CreateBook(ctx, catalog.Book{Title: "Emma", PublicationYear: 1815, Genre: "Novel", AuthorID: a.ID, PublisherID: p.ID})
	require.NoError(t, err)

	_, err = svc.CreatePublisher(ctx, penguin())
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrDuplicate)
	assert.Equal(t, `a publisher named "Penguin" already exists`, err.Error())

	_, err = svc.CreateBook(ctx, catalog.Book{Title: "Emma", PublicationYear: 2000, Genre: "Remake", AuthorID: a.ID, PublisherID: p.ID})
	assert.ErrorIs(t, err, catalog.ErrDuplicate)
	assert.True(t, catalog.IsValidation(err))

	assert.Equal(t, 1, count(t, svc, catalog.KindPublisher))
	assert.Equal(t, 1, count(t, svc, catalog.KindBook))
}

func TestCreateBook_UnknownReferences(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	a, err := svc.CreateAuthor(ctx, austen())
	require.NoError(t, err)

	_, err = svc.CreateBook(ctx, catalog.Book{Title: "Emma", PublicationYear: 1815, Genre: "Novel", AuthorID: a.ID, PublisherID: 7})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrUnknownReference)
	ve := catalog.AsValidation(err)
	require.NotNil(t, ve)
	require.Len(t, ve.Details, 1)
	assert.Equal(t, catalog.FieldPublisherID, ve.Details[0].Field)

	_, err = svc.CreateBook(ctx, catalog.Book{Title: "Emma", PublicationYear: 1815, Genre: "Novel", AuthorID: 99, PublisherID: 7})
	ve = catalog.AsValidation(err)
	require.NotNil(t, ve)
	assert.Len(t, ve.Details, 2)

	assert.Zero(t, count(t, svc, catalog.KindBook))
}

func TestDelete(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	deleted, err := svc.DeletePublisher(ctx, 42)
	require.NoError(t, err)
	assert.False(t, deleted)

	a, err := svc.CreateAuthor(ctx, austen())
	require.NoError(t, err)
	p, err := svc.CreatePublisher(ctx, penguin())
	require.NoError(t, err)
	for _, title := range []string{"Emma", "Persuasion"} {
		_, err := svc.CreateBook(ctx, catalog.Book{Title: title, PublicationYear: 1815, Genre: "Novel", AuthorID: a.ID, PublisherID: p.ID})
		require.NoError(t, err)
	}

	deleted, err = svc.DeletePublisher(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	books, err := svc.BooksByPublisher(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, books)
	assert.Zero(t, count(t, svc, catalog.KindBook))
	assert.Equal(t, 1, count(t, svc, catalog.KindAuthor))
}

func TestFindAuthorByName(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	doe, err := svc.CreateAuthor(ctx, catalog.Author{FirstName: "Jane", LastName: "Doe", BirthYear: 1950, Nationality: "American"})
	require.NoError(t, err)

	got, ok, err := svc.FindAuthorByName(ctx, "Jane Doe")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, doe.ID, got.ID)

	_, ok, err = svc.FindAuthorByName(ctx, "Jane")
	require.NoError(t, err)
	assert.False(t, ok, "single token only matches an empty last name")

	_, ok, err = svc.FindAuthorByName(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)

	le, err := svc.CreateAuthor(ctx, catalog.Author{FirstName: "Ursula", LastName: "K. Le Guin", BirthYear: 1929, Nationality: "American"})
	require.NoError(t, err)
	got, ok, err = svc.FindAuthorByName(ctx, "Ursula  K. Le Guin")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, le.ID, got.ID)
}

func TestFindByName_PublisherAndBook(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	a, err := svc.CreateAuthor(ctx, austen())
	require.NoError(t, err)
	p, err := svc.CreatePublisher(ctx, penguin())
	require.NoError(t, err)
	_, err = svc.CreateBook(ctx, catalog.Book{Title: "Emma", PublicationYear: 1815, Genre: "Novel", AuthorID: a.ID, PublisherID: p.ID})
	require.NoError(t, err)

	_, ok, err := svc.FindPublisherByName(ctx, "Penguin")
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = svc.FindPublisherByName(ctx, "penguin")
	require.NoError(t, err)
	assert.False(t, ok)

	b, ok, err := svc.FindBookByTitle(ctx, "Emma")
	require.NoError(t, err)
	require.True(t, ok)

	rel, err := svc.BookRelations(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, rel.Author)
	require.NotNil(t, rel.Publisher)
	assert.Equal(t, "Jane Austen", rel.Author.FullName())
	assert.Equal(t, "Penguin", rel.Publisher.Name)

	_, err = svc.BookRelations(ctx, 999)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	a, err := svc.CreateAuthor(ctx, austen())
	require.NoError(t, err)
	p, err := svc.CreatePublisher(ctx, penguin())
	require.NoError(t, err)
	other, err := svc.CreatePublisher(ctx, catalog.Publisher{Name: "Faber", FoundedYear: 1929, Location: "London"})
	require.NoError(t, err)

	other.Name = "Penguin"
	err = svc.UpdatePublisher(ctx, other)
	assert.ErrorIs(t, err, catalog.ErrDuplicate)

	got, _, err := svc.FindPublisherByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Faber", got.Name)

	a.BirthYear = -3
	assert.True(t, catalog.IsValidation(svc.UpdateAuthor(ctx, a)))

	err = svc.UpdateBook(ctx, &catalog.Book{ID: 77, Title: "Ghost", Genre: "Novel", AuthorID: a.ID, PublisherID: p.ID})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}
