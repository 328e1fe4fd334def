// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui is the full-screen terminal front end. Each menu and each input
// of an interactive session runs as a short Bubble Tea program, so the
// dispatcher drives it exactly like the line prompter.
package ui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"library-catalog/internal/dispatch"
)

// Prompter implements dispatch.Prompter with Bubble Tea.
type Prompter struct {
	in     io.Reader
	out    io.Writer
	keymap KeyMap
}

var _ dispatch.Prompter = (*Prompter)(nil)

// NewPrompter creates a prompter reading keys from in and drawing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:     in,
		out:    out,
		keymap: DefaultKeyMap,
	}
}

func (p *Prompter) run(model tea.Model) (tea.Model, error) {
	prog := tea.NewProgram(model, tea.WithInput(p.in), tea.WithOutput(p.out))
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("error running TUI: %w", err)
	}
	return final, nil
}

// Choose shows a menu and returns the selected index.
func (p *Prompter) Choose(title string, options []string) (int, error) {
	final, err := p.run(newMenuModel(title, options, p.keymap))
	if err != nil {
		return 0, err
	}
	m := final.(*menuModel)
	if m.aborted || m.chosen < 0 {
		return 0, dispatch.ErrAborted
	}
	return m.chosen, nil
}

// Ask reads a single answer to q.
func (p *Prompter) Ask(q dispatch.Question) (string, error) {
	final, err := p.run(newInputModel(q, p.keymap))
	if err != nil {
		return "", err
	}
	m := final.(*inputModel)
	if m.aborted || !m.answered {
		return "", dispatch.ErrAborted
	}
	return m.answer, nil
}
