// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"library-catalog/internal/catalog"
	"library-catalog/internal/dispatch"
)

// inputModel reads one answer to a dispatch.Question. Enter submits the
// value once it passes the question's check.
type inputModel struct {
	question dispatch.Question
	input    textinput.Model
	keymap   KeyMap

	err      error
	answer   string
	answered bool
	aborted  bool
}

func newInputModel(q dispatch.Question, keymap KeyMap) *inputModel {
	t := textinput.New()
	t.Prompt = "> "
	t.Placeholder = q.Default
	t.CharLimit = 200
	t.Width = 50
	if q.Type == catalog.FieldInt {
		t.CharLimit = 12
		t.Width = 20
		t.Validate = func(s string) error {
			s = strings.TrimSpace(s)
			if s == "" || s == "-" {
				return nil
			}
			_, err := strconv.Atoi(s)
			return err
		}
	}
	t.Focus()

	return &inputModel{
		question: q,
		input:    t,
		keymap:   keymap,
	}
}

func (m *inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.answered || m.aborted {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		m.err = nil
		switch {
		case key.Matches(msg, m.keymap.Interrupt):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Enter):
			answer, err := m.question.Check(m.input.Value())
			if err != nil {
				m.err = err
				return m, nil
			}
			m.answer = answer
			m.answered = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *inputModel) View() string {
	label := titleStyle.Render(m.question.Hint() + ":")
	if m.answered {
		return label + " " + answerStyle.Render(m.answer) + "\n"
	}
	if m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(label + "\n")
	b.WriteString(m.input.View() + "\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	} else if m.input.Err != nil {
		b.WriteString(errorStyle.Render("Error: not a whole number") + "\n")
	}
	b.WriteString(helpLine(m.keymap.Enter, m.keymap.Interrupt) + "\n")
	return b.String()
}
