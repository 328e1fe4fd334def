// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package transfer exports the whole catalog to YAML and imports such a
// document back through the validated repository operations.
package transfer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"gopkg.in/yaml.v3"

	"library-catalog/internal/catalog"
)

// document is the YAML layout. Authors and publishers carry a document-local
// id that books refer to, so records with equal names stay distinct. Books
// also repeat the author's full name and the publisher's name; a document
// written by hand may use those instead of ids.
type document struct {
	Authors    []yamlAuthor    `yaml:"authors"`
	Publishers []yamlPublisher `yaml:"publishers"`
	Books      []yamlBook      `yaml:"books"`
}

type yamlAuthor struct {
	Key         int64  `yaml:"id,omitempty"`
	FirstName   string `yaml:"first_name"`
	LastName    string `yaml:"last_name"`
	BirthYear   int    `yaml:"birth_year"`
	Nationality string `yaml:"nationality"`
}

type yamlPublisher struct {
	Key         int64   `yaml:"id,omitempty"`
	Name        string  `yaml:"name"`
	FoundedYear int     `yaml:"founded_year"`
	Location    string  `yaml:"location"`
	Website     *string `yaml:"website,omitempty"`
}

type yamlBook struct {
	Title           string `yaml:"title"`
	PublicationYear int    `yaml:"publication_year"`
	Genre           string `yaml:"genre"`
	AuthorKey       int64  `yaml:"author_id,omitempty"`
	Author          string `yaml:"author,omitempty"`
	PublisherKey    int64  `yaml:"publisher_id,omitempty"`
	Publisher       string `yaml:"publisher,omitempty"`
}

// Source is what Export reads from.
type Source interface {
	ListAuthors(ctx context.Context) ([]*catalog.Author, error)
	ListPublishers(ctx context.Context) ([]*catalog.Publisher, error)
	ListBooks(ctx context.Context) ([]*catalog.Book, error)
}

// Target is what Import writes to.
type Target interface {
	Source
	CreateAuthor(ctx context.Context, a catalog.Author) (*catalog.Author, error)
	CreatePublisher(ctx context.Context, p catalog.Publisher) (*catalog.Publisher, error)
	CreateBook(ctx context.Context, b catalog.Book) (*catalog.Book, error)
}

// Export writes every author, publisher and book to w as YAML.
func Export(ctx context.Context, src Source, w io.Writer) error {
	authors, err := src.ListAuthors(ctx)
	if err != nil {
		return err
	}
	publishers, err := src.ListPublishers(ctx)
	if err != nil {
		return err
	}
	books, err := src.ListBooks(ctx)
	if err != nil {
		return err
	}

	doc := document{
		Authors:    make([]yamlAuthor, 0, len(authors)),
		Publishers: make([]yamlPublisher, 0, len(publishers)),
		Books:      make([]yamlBook, 0, len(books)),
	}

	authorNames := make(map[int64]string, len(authors))
	for _, a := range authors {
		authorNames[a.ID] = a.FullName()
		doc.Authors = append(doc.Authors, yamlAuthor{
			Key:         a.ID,
			FirstName:   a.FirstName,
			LastName:    a.LastName,
			BirthYear:   a.BirthYear,
			Nationality: a.Nationality,
		})
	}

	publisherNames := make(map[int64]string, len(publishers))
	for _, p := range publishers {
		publisherNames[p.ID] = p.Name
		doc.Publishers = append(doc.Publishers, yamlPublisher{
			Key:         p.ID,
			Name:        p.Name,
			FoundedYear: p.FoundedYear,
			Location:    p.Location,
			Website:     p.Website,
		})
	}

	for _, b := range books {
		doc.Books = append(doc.Books, yamlBook{
			Title:           b.Title,
			PublicationYear: b.PublicationYear,
			Genre:           b.Genre,
			AuthorKey:       b.AuthorID,
			Author:          authorNames[b.AuthorID],
			PublisherKey:    b.PublisherID,
			Publisher:       publisherNames[b.PublisherID],
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}

// Summary reports what an Import did.
type Summary struct {
	AuthorsCreated    int
	PublishersCreated int
	BooksCreated      int
	// Skipped counts records that already existed.
	Skipped int
	// Errors holds one entry per record that could not be imported.
	Errors []error
}

// Progress is called after each record with the number handled so far and
// the total in the document.
type Progress func(done, total int)

// authorRecord identifies an author by every stored field, which is as
// close to identity as a record without a unique key gets.
type authorRecord struct {
	firstName   string
	lastName    string
	birthYear   int
	nationality string
}

// index resolves document references to row ids during an Import.
type index struct {
	// spare holds existing authors not yet matched by a document author.
	spare map[authorRecord][]int64
	// authorsByName holds every distinct row id per full name.
	authorsByName    map[string][]int64
	publishersByName map[string]int64
	titles           map[string]bool

	authorKeys    map[int64]int64
	publisherKeys map[int64]int64
}

func (ix *index) addAuthorName(fullName string, id int64) {
	if !slices.Contains(ix.authorsByName[fullName], id) {
		ix.authorsByName[fullName] = append(ix.authorsByName[fullName], id)
	}
}

// author resolves a book's author: by document id when present, otherwise by
// full name as long as exactly one author carries it.
func (ix *index) author(yb yamlBook) (int64, error) {
	if yb.AuthorKey != 0 {
		id, ok := ix.authorKeys[yb.AuthorKey]
		if !ok {
			return 0, fmt.Errorf("unknown author id %d", yb.AuthorKey)
		}
		return id, nil
	}
	ids := ix.authorsByName[yb.Author]
	switch len(ids) {
	case 0:
		return 0, fmt.Errorf("unknown author %q", yb.Author)
	case 1:
		return ids[0], nil
	default:
		return 0, fmt.Errorf("author %q is ambiguous (%d authors share the name); refer to it by id", yb.Author, len(ids))
	}
}

func (ix *index) publisher(yb yamlBook) (int64, error) {
	if yb.PublisherKey != 0 {
		id, ok := ix.publisherKeys[yb.PublisherKey]
		if !ok {
			return 0, fmt.Errorf("unknown publisher id %d", yb.PublisherKey)
		}
		return id, nil
	}
	id, ok := ix.publishersByName[yb.Publisher]
	if !ok {
		return 0, fmt.Errorf("unknown publisher %q", yb.Publisher)
	}
	return id, nil
}

// Import reads a document produced by Export and adds its records to dst.
// A document author is matched to an existing author with identical fields,
// each existing author at most once, so importing the same document twice
// adds nothing while namesakes stay separate. Publishers are matched by
// name and books whose title exists are skipped. A record that fails
// validation is reported in Summary.Errors and does not stop the import.
func Import(ctx context.Context, dst Target, r io.Reader, progress Progress, logger *slog.Logger) (Summary, error) {
	var sum Summary
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return sum, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ix, err := existing(ctx, dst)
	if err != nil {
		return sum, err
	}

	total := len(doc.Authors) + len(doc.Publishers) + len(doc.Books)
	done := 0
	step := func() {
		done++
		if progress != nil {
			progress(done, total)
		}
	}

	for _, ya := range doc.Authors {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if err := importAuthor(ctx, dst, ya, ix, &sum); err != nil {
			sum.Errors = append(sum.Errors, fmt.Errorf("author %q: %w", catalog.FullName(ya.FirstName, ya.LastName), err))
		}
		step()
	}

	for _, yp := range doc.Publishers {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if err := importPublisher(ctx, dst, yp, ix, &sum); err != nil {
			sum.Errors = append(sum.Errors, fmt.Errorf("publisher %q: %w", yp.Name, err))
		}
		step()
	}

	for _, yb := range doc.Books {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if err := importBook(ctx, dst, yb, ix, &sum); err != nil {
			sum.Errors = append(sum.Errors, fmt.Errorf("book %q: %w", yb.Title, err))
		}
		step()
	}

	logger.Info("catalog_imported",
		slog.Int("authors", sum.AuthorsCreated),
		slog.Int("publishers", sum.PublishersCreated),
		slog.Int("books", sum.BooksCreated),
		slog.Int("skipped", sum.Skipped),
		slog.Int("errors", len(sum.Errors)),
	)
	return sum, nil
}

func importAuthor(ctx context.Context, dst Target, ya yamlAuthor, ix *index, sum *Summary) error {
	if ya.Key != 0 {
		if _, dup := ix.authorKeys[ya.Key]; dup {
			return fmt.Errorf("duplicate author id %d", ya.Key)
		}
	}

	rec := authorRecord{
		firstName:   ya.FirstName,
		lastName:    ya.LastName,
		birthYear:   ya.BirthYear,
		nationality: ya.Nationality,
	}
	var id int64
	if spare := ix.spare[rec]; len(spare) > 0 {
		id = spare[0]
		ix.spare[rec] = spare[1:]
		sum.Skipped++
	} else {
		a, err := dst.CreateAuthor(ctx, catalog.Author{
			FirstName:   ya.FirstName,
			LastName:    ya.LastName,
			BirthYear:   ya.BirthYear,
			Nationality: ya.Nationality,
		})
		if err != nil {
			return err
		}
		id = a.ID
		ix.addAuthorName(a.FullName(), id)
		sum.AuthorsCreated++
	}

	if ya.Key != 0 {
		ix.authorKeys[ya.Key] = id
	}
	return nil
}

func importPublisher(ctx context.Context, dst Target, yp yamlPublisher, ix *index, sum *Summary) error {
	if yp.Key != 0 {
		if _, dup := ix.publisherKeys[yp.Key]; dup {
			return fmt.Errorf("duplicate publisher id %d", yp.Key)
		}
	}

	id, ok := ix.publishersByName[yp.Name]
	if ok {
		sum.Skipped++
	} else {
		p, err := dst.CreatePublisher(ctx, catalog.Publisher{
			Name:        yp.Name,
			FoundedYear: yp.FoundedYear,
			Location:    yp.Location,
			Website:     yp.Website,
		})
		if err != nil {
			return err
		}
		id = p.ID
		ix.publishersByName[p.Name] = id
		sum.PublishersCreated++
	}

	if yp.Key != 0 {
		ix.publisherKeys[yp.Key] = id
	}
	return nil
}

func importBook(ctx context.Context, dst Target, yb yamlBook, ix *index, sum *Summary) error {
	if ix.titles[yb.Title] {
		sum.Skipped++
		return nil
	}
	authorID, err := ix.author(yb)
	if err != nil {
		return err
	}
	publisherID, err := ix.publisher(yb)
	if err != nil {
		return err
	}

	_, err = dst.CreateBook(ctx, catalog.Book{
		Title:           yb.Title,
		PublicationYear: yb.PublicationYear,
		Genre:           yb.Genre,
		AuthorID:        authorID,
		PublisherID:     publisherID,
	})
	if err != nil {
		return err
	}
	ix.titles[yb.Title] = true
	sum.BooksCreated++
	return nil
}

// existing indexes the records already in dst.
func existing(ctx context.Context, dst Source) (*index, error) {
	as, err := dst.ListAuthors(ctx)
	if err != nil {
		return nil, err
	}
	ps, err := dst.ListPublishers(ctx)
	if err != nil {
		return nil, err
	}
	bs, err := dst.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	ix := &index{
		spare:            make(map[authorRecord][]int64, len(as)),
		authorsByName:    make(map[string][]int64, len(as)),
		publishersByName: make(map[string]int64, len(ps)),
		titles:           make(map[string]bool, len(bs)),
		authorKeys:       make(map[int64]int64),
		publisherKeys:    make(map[int64]int64),
	}
	for _, a := range as {
		rec := authorRecord{
			firstName:   a.FirstName,
			lastName:    a.LastName,
			birthYear:   a.BirthYear,
			nationality: a.Nationality,
		}
		ix.spare[rec] = append(ix.spare[rec], a.ID)
		ix.addAuthorName(a.FullName(), a.ID)
	}
	for _, p := range ps {
		ix.publishersByName[p.Name] = p.ID
	}
	for _, b := range bs {
		ix.titles[b.Title] = true
	}
	return ix, nil
}
