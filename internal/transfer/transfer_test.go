// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package transfer_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/catalog"
	"library-catalog/internal/repository"
	"library-catalog/internal/store"
	"library-catalog/internal/transfer"
)

func newService(t *testing.T) *repository.Service {
	t.Helper()
	st, err := store.Open(context.Background(), store.Config{Path: store.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return repository.New(st, nil)
}

func seed(t *testing.T, svc *repository.Service) {
	t.Helper()
	ctx := context.Background()

	a, err := svc.CreateAuthor(ctx, catalog.Author{FirstName: "Jane", LastName: "Austen", BirthYear: 1775, Nationality: "British"})
	require.NoError(t, err)
	site := "https://www.penguin.co.uk"
	p, err := svc.CreatePublisher(ctx, catalog.Publisher{Name: "Penguin", FoundedYear: 1935, Location: "London", Website: &site})
	require.NoError(t, err)
	for _, title := range []string{"Emma", "Persuasion"} {
		_, err := svc.CreateBook(ctx, catalog.Book{Title: title, PublicationYear: 1815, Genre: "Novel", AuthorID: a.ID, PublisherID: p.ID})
		require.NoError(t, err)
	}
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := newService(t)
	seed(t, src)

	var buf bytes.Buffer
	require.NoError(t, transfer.Export(ctx, src, &buf))
	assert.Contains(t, buf.String(), "author: Jane Austen")
	assert.Contains(t, buf.String(), "author_id: 1")
	assert.Contains(t, buf.String(), "website: https://www.penguin.co.uk")

	dst := newService(t)
	var calls, lastTotal int
	sum, err := transfer.Import(ctx, dst, bytes.NewReader(buf.Bytes()), func(done, total int) {
		calls++
		lastTotal = total
	}, nil)
	require.NoError(t, err)
	assert.Empty(t, sum.Errors)
	assert.Equal(t, 1, sum.AuthorsCreated)
	assert.Equal(t, 1, sum.PublishersCreated)
	assert.Equal(t, 2, sum.BooksCreated)
	assert.Equal(t, 4, calls)
	assert.Equal(t, 4, lastTotal)

	books, err := dst.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)
	rel, err := dst.BookRelations(ctx, books[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Austen", rel.Author.FullName())
	require.NotNil(t, rel.Publisher.Website)

	// Importing again changes nothing.
	sum, err = transfer.Import(ctx, dst, bytes.NewReader(buf.Bytes()), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Skipped)
	assert.Zero(t, sum.AuthorsCreated+sum.PublishersCreated+sum.BooksCreated)
}

func TestImport_ReportsBadRecords(t *testing.T) {
	ctx := context.Background()
	dst := newService(t)
	seed(t, dst)

	doc := `
authors:
  - first_name: Charlotte
    last_name: Bronte
    birth_year: -1
    nationality: British
publishers:
  - name: Faber
    founded_year: 1929
    location: London
books:
  - title: Jane Eyre
    publication_year: 1847
    genre: Novel
    author: Charlotte Bronte
    publisher: Faber
  - title: Sanditon
    publication_year: 1817
    genre: Novel
    author: Jane Austen
    publisher: Faber
`
	sum, err := transfer.Import(ctx, dst, strings.NewReader(doc), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.PublishersCreated)
	assert.Equal(t, 1, sum.BooksCreated, "books may refer to authors already in the catalog")
	require.Len(t, sum.Errors, 2)
	assert.True(t, catalog.IsValidation(sum.Errors[0]))
	assert.Contains(t, sum.Errors[1].Error(), `unknown author "Charlotte Bronte"`)

	_, ok, err := dst.FindBookByTitle(ctx, "Sanditon")
	require.NoError(t, err)
	assert.True(t, ok)
}

// authorOf returns the author of the book with the given title.
func authorOf(t *testing.T, svc *repository.Service, title string) *catalog.Author {
	t.Helper()
	ctx := context.Background()
	b, ok, err := svc.FindBookByTitle(ctx, title)
	require.NoError(t, err)
	require.True(t, ok, "book %q", title)
	rel, err := svc.BookRelations(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, rel.Author)
	return rel.Author
}

func TestExportImport_KeepsNamesakesApart(t *testing.T) {
	ctx := context.Background()
	src := newService(t)

	p, err := src.CreatePublisher(ctx, catalog.Publisher{Name: "Faber", FoundedYear: 1929, Location: "London"})
	require.NoError(t, err)
	authors := []catalog.Author{
		{FirstName: "John", LastName: "Smith", BirthYear: 1900, Nationality: "British"},
		{FirstName: "John", LastName: "Smith", BirthYear: 1950, Nationality: "British"},
		// Different names that join to the same full name.
		{FirstName: "Mary", LastName: "Ann Evans", BirthYear: 1819, Nationality: "British"},
		{FirstName: "Mary Ann", LastName: "Evans", BirthYear: 1820, Nationality: "British"},
	}
	titles := []string{"Old", "New", "Middlemarch", "Silas Marner"}
	for i, a := range authors {
		created, err := src.CreateAuthor(ctx, a)
		require.NoError(t, err)
		_, err = src.CreateBook(ctx, catalog.Book{Title: titles[i], PublicationYear: 1871, Genre: "Novel", AuthorID: created.ID, PublisherID: p.ID})
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	require.NoError(t, transfer.Export(ctx, src, &buf))

	dst := newService(t)
	sum, err := transfer.Import(ctx, dst, bytes.NewReader(buf.Bytes()), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, sum.Errors)
	assert.Equal(t, 4, sum.AuthorsCreated)
	assert.Equal(t, 4, sum.BooksCreated)
	assert.Zero(t, sum.Skipped)

	got, err := dst.ListAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)

	for i, title := range titles {
		a := authorOf(t, dst, title)
		assert.Equal(t, authors[i].FirstName, a.FirstName, title)
		assert.Equal(t, authors[i].LastName, a.LastName, title)
		assert.Equal(t, authors[i].BirthYear, a.BirthYear, title)
	}

	// A second import matches every author to its own row.
	sum, err = transfer.Import(ctx, dst, bytes.NewReader(buf.Bytes()), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, sum.Errors)
	assert.Equal(t, 9, sum.Skipped)
	assert.Zero(t, sum.AuthorsCreated)
}

func TestImport_AmbiguousAuthorName(t *testing.T) {
	ctx := context.Background()
	dst := newService(t)
	for _, year := range []int{1900, 1950} {
		_, err := dst.CreateAuthor(ctx, catalog.Author{FirstName: "John", LastName: "Smith", BirthYear: year, Nationality: "British"})
		require.NoError(t, err)
	}

	doc := `
publishers:
  - id: 7
    name: Faber
    founded_year: 1929
    location: London
books:
  - title: Whose
    publication_year: 1960
    genre: Novel
    author: John Smith
    publisher_id: 7
  - title: Dangling
    publication_year: 1961
    genre: Novel
    author_id: 42
    publisher: Faber
`
	sum, err := transfer.Import(ctx, dst, strings.NewReader(doc), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.PublishersCreated)
	assert.Zero(t, sum.BooksCreated)
	require.Len(t, sum.Errors, 2)
	assert.Contains(t, sum.Errors[0].Error(), `author "John Smith" is ambiguous`)
	assert.Contains(t, sum.Errors[1].Error(), "unknown author id 42")
}

func TestImport_RejectsMalformedYAML(t *testing.T) {
	_, err := transfer.Import(context.Background(), newService(t), strings.NewReader("authors: [unclosed"), nil, nil)
	assert.Error(t, err)
}

func TestImport_EmptyDocument(t *testing.T) {
	sum, err := transfer.Import(context.Background(), newService(t), strings.NewReader(""), nil, nil)
	require.NoError(t, err)
	assert.Zero(t, sum.Skipped)
	assert.Empty(t, sum.Errors)
}
