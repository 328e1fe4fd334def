// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package catalog defines the library data model: authors, publishers and books,
// the field lists used to collect them interactively, validation rules and the
// error taxonomy shared by the store, repository and dispatcher layers.
package catalog

import "fmt"

// Kind identifies one of the three entity types managed by the catalog.
type Kind int

const (
	KindAuthor Kind = iota
	KindPublisher
	KindBook
)

// Kinds lists every entity kind in menu order.
var Kinds = []Kind{KindAuthor, KindPublisher, KindBook}

// String returns the lowercase singular name ("author").
func (k Kind) String() string {
	switch k {
	case KindAuthor:
		return "author"
	case KindPublisher:
		return "publisher"
	case KindBook:
		return "book"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Plural returns the lowercase plural name, which is also the table name.
func (k Kind) Plural() string {
	return k.String() + "s"
}

// Title returns the capitalised singular name ("Author").
func (k Kind) Title() string {
	switch k {
	case KindAuthor:
		return "Author"
	case KindPublisher:
		return "Publisher"
	case KindBook:
		return "Book"
	default:
		return k.String()
	}
}

// SearchField names the value used to look a record up by name.
func (k Kind) SearchField() string {
	switch k {
	case KindAuthor:
		return "full name"
	case KindBook:
		return "title"
	default:
		return "name"
	}
}

// ParseKind accepts singular or plural kind names as typed on the command line.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if s == k.String() || s == k.Plural() {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown record type %q (expected authors, publishers or books)", s)
}

// Record is implemented by every entity type.
type Record interface {
	Kind() Kind
	RecordID() int64
}

// Label returns the human-readable name of a record: the full name of an
// author, the name of a publisher or the title of a book.
func Label(r Record) string {
	switch v := r.(type) {
	case *Author:
		return v.FullName()
	case *Publisher:
		return v.Name
	case *Book:
		return v.Title
	default:
		return fmt.Sprintf("record %d", r.RecordID())
	}
}

// Related is the result of following a record's relationships. Authors and
// publishers fill Books; books fill Author and Publisher, either of which may
// be nil when the reference no longer resolves.
type Related struct {
	Books     []*Book
	Author    *Author
	Publisher *Publisher
}
