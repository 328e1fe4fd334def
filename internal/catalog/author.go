// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package catalog

import "strings"

// Author is a person who has written one or more books.
type Author struct {
	ID          int64
	FirstName   string
	LastName    string
	BirthYear   int
	Nationality string
}

func (a *Author) Kind() Kind      { return KindAuthor }
func (a *Author) RecordID() int64 { return a.ID }

// FullName returns the first and last name joined by a space.
func (a *Author) FullName() string {
	return FullName(a.FirstName, a.LastName)
}

// SetFullName splits full into first and last name and assigns both. The
// author is left untouched when full has fewer than two tokens.
func (a *Author) SetFullName(full string) error {
	first, last, err := SplitFullName(full)
	if err != nil {
		return err
	}
	a.FirstName, a.LastName = first, last
	return nil
}

// Validate checks the author's required fields and birth year.
func (a *Author) Validate() error {
	v := &Validator{}
	v.Required(FieldFirstName, a.FirstName).
		Required(FieldLastName, a.LastName).
		NonNegative(FieldBirthYear, a.BirthYear).
		Required(FieldNationality, a.Nationality)
	return v.Err()
}

// FullName derives the display name of an author.
func FullName(first, last string) string {
	return first + " " + last
}

// SplitFullName is the validating inverse of FullName. The first token becomes
// the first name and the remaining tokens, joined by single spaces, the last name.
func SplitFullName(full string) (first, last string, err error) {
	parts := strings.Fields(full)
	if len(parts) < 2 {
		return "", "", Invalid("full name must include first and last name",
			FieldError{Field: FieldFullName, Message: "needs at least two words"})
	}
	return parts[0], strings.Join(parts[1:], " "), nil
}

// SplitNameKey splits a search key the way author lookups expect it. Unlike
// SplitFullName it accepts a single token, which yields an empty last name.
// ok is false for a key with no tokens at all.
func SplitNameKey(key string) (first, last string, ok bool) {
	parts := strings.Fields(key)
	if len(parts) == 0 {
		return "", "", false
	}
	return parts[0], strings.Join(parts[1:], " "), true
}
