// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package dispatch

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"library-catalog/internal/catalog"
)

// ErrAborted is returned by a Prompter when the operator ends the session
// (ctrl+c in the TUI). End of input has the same effect.
var ErrAborted = errors.New("session aborted")

// IsAbort reports whether err ends the interactive session.
func IsAbort(err error) bool {
	return errors.Is(err, ErrAborted) || errors.Is(err, io.EOF)
}

// Prompter is the terminal facility the dispatcher reads input through.
type Prompter interface {
	// Choose presents options under title and returns the index of the one
	// selected. Implementations only accept valid ordinals.
	Choose(title string, options []string) (int, error)
	// Ask reads one value. The answer has already passed q.Check.
	Ask(q Question) (string, error)
}

// ClearAnswer empties an optional value that currently has a default.
const ClearAnswer = "-"

// Question describes a single typed input.
type Question struct {
	Label      string
	Type       catalog.FieldType
	Default    string
	HasDefault bool
	Optional   bool
}

// QuestionFor builds the question for f. When defaults holds a non-empty
// value for f it is offered as the default answer.
func QuestionFor(f catalog.Field, defaults catalog.Values) Question {
	q := Question{Label: f.Label, Type: f.Type, Optional: f.Optional}
	if d, ok := defaults[f.Name]; ok && d != "" {
		q.Default = d
		q.HasDefault = true
	}
	return q
}

// Check normalises raw input: surrounding space is trimmed, a blank answer
// takes the default, ClearAnswer empties an optional question, and integer
// questions must hold a whole number. An error means the answer should be
// asked again.
func (q Question) Check(input string) (string, error) {
	s := strings.TrimSpace(input)
	if q.Optional && s == ClearAnswer {
		return "", nil
	}
	if s == "" && q.HasDefault {
		s = q.Default
	}
	if q.Type != catalog.FieldInt {
		return s, nil
	}
	if s == "" {
		if q.Optional {
			return "", nil
		}
		return "", errors.New("a whole number is required")
	}
	if _, err := strconv.Atoi(s); err != nil {
		return "", fmt.Errorf("'%s' is not a whole number", s)
	}
	return s, nil
}

// Hint renders the prompt text with its default, e.g. "Birth year [1775]".
func (q Question) Hint() string {
	if q.HasDefault && q.Optional {
		return fmt.Sprintf("%s [%s, %s clears]", q.Label, q.Default, ClearAnswer)
	}
	if q.HasDefault {
		return fmt.Sprintf("%s [%s]", q.Label, q.Default)
	}
	return q.Label
}
