// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package catalog

// Book is a title written by one author and issued by one publisher. Title is
// unique across all books.
type Book struct {
	ID              int64
	Title           string
	PublicationYear int
	Genre           string
	AuthorID        int64
	PublisherID     int64
}

func (b *Book) Kind() Kind      { return KindBook }
func (b *Book) RecordID() int64 { return b.ID }

// Validate checks the book's own fields. Whether AuthorID and PublisherID
// resolve is checked against the store by the repository.
func (b *Book) Validate() error {
	v := &Validator{}
	v.Required(FieldTitle, b.Title).
		NonNegative(FieldPublicationYear, b.PublicationYear).
		Required(FieldGenre, b.Genre)
	return v.Err()
}
