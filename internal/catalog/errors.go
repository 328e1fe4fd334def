// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package catalog

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned by lookups and updates that match no row.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate marks a uniqueness constraint breach (publisher name, book title).
	ErrDuplicate = errors.New("duplicate value")

	// ErrUnknownReference marks a foreign key that does not resolve to a row.
	ErrUnknownReference = errors.New("unknown reference")
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError reports input that cannot be persisted. Message is safe to
// show to the operator; Cause, when set, links the error to one of the
// sentinels above so callers can use errors.Is.
type ValidationError struct {
	Message string
	Details []FieldError
	Cause   error
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Field+": "+d.Message)
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// Invalid creates a ValidationError with optional field details.
func Invalid(msg string, details ...FieldError) *ValidationError {
	return &ValidationError{Message: msg, Details: details}
}

// IsValidation reports whether err, or any error in its chain, is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AsValidation extracts the *ValidationError from err's chain, or nil.
func AsValidation(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
