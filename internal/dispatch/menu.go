// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package dispatch

import (
	"context"
	"errors"
	"log/slog"

	"library-catalog/internal/catalog"
)

// Action runs one menu choice.
type Action func(ctx context.Context) error

// Option is one numbered entry of a menu. A nil Action leaves the menu.
type Option struct {
	Label  string
	Action Action
}

// Menu maps ordinal choices to actions.
type Menu struct {
	Title   string
	Options []Option
}

func (m Menu) labels() []string {
	labels := make([]string, len(m.Options))
	for i, o := range m.Options {
		labels[i] = o.Label
	}
	return labels
}

// runMenu presents m until an option without an action is chosen. Action
// errors are reported and the menu is shown again; only an abort from the
// prompter ends the loop early.
func (s *Session) runMenu(ctx context.Context, m Menu) error {
	labels := m.labels()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		idx, err := s.prompter.Choose(m.Title, labels)
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(m.Options) {
			s.printError("choice out of range")
			continue
		}

		opt := m.Options[idx]
		if opt.Action == nil {
			return nil
		}
		if err := opt.Action(ctx); err != nil {
			if IsAbort(err) || errors.Is(err, context.Canceled) {
				return err
			}
			s.report(opt.Label, err)
		}
	}
}

// report renders an action failure. Validation failures are expected and
// only shown; anything else is also logged.
func (s *Session) report(action string, err error) {
	if catalog.IsValidation(err) {
		s.printError(err.Error())
		return
	}
	if errors.Is(err, catalog.ErrNotFound) {
		s.printError("record not found")
		return
	}
	s.logger.Error("action_failed", slog.String("action", action), slog.Any("error", err))
	s.printError("unexpected failure: " + err.Error())
}
