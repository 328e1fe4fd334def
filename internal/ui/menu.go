// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// menuModel selects one option of a numbered menu. Only listed ordinals are
// accepted as digit shortcuts; other keys are ignored.
type menuModel struct {
	title   string
	options []string
	keymap  KeyMap

	cursor  int
	chosen  int
	aborted bool
}

func newMenuModel(title string, options []string, keymap KeyMap) *menuModel {
	return &menuModel{
		title:   title,
		options: options,
		keymap:  keymap,
		chosen:  -1,
	}
}

func (m *menuModel) Init() tea.Cmd {
	return nil
}

func (m *menuModel) done() bool {
	return m.chosen >= 0 || m.aborted
}

func (m *menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.done() {
			return m, nil
		}
		last := len(m.options) - 1

		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Up):
			if m.cursor > 0 {
				m.cursor--
			} else {
				m.cursor = last
			}
		case key.Matches(msg, m.keymap.Down):
			if m.cursor < last {
				m.cursor++
			} else {
				m.cursor = 0
			}
		case key.Matches(msg, m.keymap.Home):
			m.cursor = 0
		case key.Matches(msg, m.keymap.End):
			m.cursor = last
		case key.Matches(msg, m.keymap.Enter):
			m.chosen = m.cursor
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Back):
			m.chosen = last
			return m, tea.Quit
		case msg.Type == tea.KeyRunes:
			if n, err := strconv.Atoi(string(msg.Runes)); err == nil && n >= 1 && n <= len(m.options) {
				m.cursor = n - 1
				m.chosen = n - 1
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m *menuModel) View() string {
	// Once answered only the choice stays on screen.
	if m.chosen >= 0 {
		return fmt.Sprintf("%s %s\n", titleStyle.Render(m.title+":"), answerStyle.Render(m.options[m.chosen]))
	}
	if m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	for i, opt := range m.options {
		ordinal := ordinalStyle.Render(fmt.Sprintf("%d.", i+1))
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> ") + ordinal + " " + selectedStyle.Render(opt))
		} else {
			b.WriteString("  " + ordinal + " " + opt)
		}
		b.WriteString("\n")
	}

	body := frameStyle.Render(strings.TrimSuffix(b.String(), "\n"))
	help := helpLine(m.keymap.Up, m.keymap.Down, m.keymap.Enter, m.keymap.Back, m.keymap.Quit)
	hint := dimStyle.Render(fmt.Sprintf("or press 1-%d", len(m.options)))
	return body + "\n" + help + "  " + hint + "\n"
}
