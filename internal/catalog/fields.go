// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package catalog

import (
	"strconv"
	"strings"
)

// Field names, shared by validation messages, prompts and the store columns.
const (
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldFullName        = "full_name"
	FieldBirthYear       = "birth_year"
	FieldNationality     = "nationality"
	FieldName            = "name"
	FieldFoundedYear     = "founded_year"
	FieldLocation        = "location"
	FieldWebsite         = "website"
	FieldTitle           = "title"
	FieldPublicationYear = "publication_year"
	FieldGenre           = "genre"
	FieldAuthorID        = "author_id"
	FieldPublisherID     = "publisher_id"
)

// FieldType tells a prompt how to read a value.
type FieldType int

const (
	FieldText FieldType = iota
	FieldInt
)

// Field describes one prompted input.
type Field struct {
	Name     string
	Label    string
	Type     FieldType
	Optional bool
}

var (
	AuthorFields = []Field{
		{Name: FieldFirstName, Label: "First name"},
		{Name: FieldLastName, Label: "Last name"},
		{Name: FieldBirthYear, Label: "Birth year", Type: FieldInt},
		{Name: FieldNationality, Label: "Nationality"},
	}

	// AuthorUpdateFields edits the name as a whole so it goes through SetFullName.
	AuthorUpdateFields = []Field{
		{Name: FieldFullName, Label: "Full name"},
		{Name: FieldBirthYear, Label: "Birth year", Type: FieldInt},
		{Name: FieldNationality, Label: "Nationality"},
	}

	PublisherFields = []Field{
		{Name: FieldName, Label: "Name"},
		{Name: FieldFoundedYear, Label: "Founded year", Type: FieldInt},
		{Name: FieldLocation, Label: "Location"},
		{Name: FieldWebsite, Label: "Website (optional)", Optional: true},
	}

	BookFields = []Field{
		{Name: FieldTitle, Label: "Title"},
		{Name: FieldPublicationYear, Label: "Publication year", Type: FieldInt},
		{Name: FieldGenre, Label: "Genre"},
		{Name: FieldAuthorID, Label: "Author ID", Type: FieldInt},
		{Name: FieldPublisherID, Label: "Publisher ID", Type: FieldInt},
	}
)

// Values holds raw prompted input keyed by field name.
type Values map[string]string

// Text returns the trimmed value of name.
func (vals Values) Text(name string) string {
	return strings.TrimSpace(vals[name])
}

// OptionalText returns nil when name is missing or blank.
func (vals Values) OptionalText(name string) *string {
	s := vals.Text(name)
	if s == "" {
		return nil
	}
	return &s
}

// Int parses name as a whole number, recording a field error on v otherwise.
func (vals Values) Int(v *Validator, name string) int {
	n, err := strconv.Atoi(vals.Text(name))
	v.Custom(name, err != nil, "must be a whole number")
	return n
}

// ID parses name as a record id, recording a field error on v otherwise.
func (vals Values) ID(v *Validator, name string) int64 {
	n, err := strconv.ParseInt(vals.Text(name), 10, 64)
	v.Custom(name, err != nil, "must be a whole number")
	return n
}
