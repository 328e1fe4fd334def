// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/catalog"
	"library-catalog/internal/dispatch"
)

func newPrompter(input string) (*LinePrompter, *bytes.Buffer) {
	color.NoColor = true
	out := &bytes.Buffer{}
	return New(strings.NewReader(input), out), out
}

func TestChoose(t *testing.T) {
	p, out := newPrompter("0\nfive\n3\n")

	idx, err := p.Choose("Library Catalog", []string{"Manage Authors", "Manage Publishers", "Manage Books", "Exit"})
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	got := out.String()
	assert.Contains(t, got, "Library Catalog\n  1. Manage Authors\n  2. Manage Publishers\n")
	assert.Contains(t, got, "Error: '0' is not one of 1, 2, 3, 4.")
	assert.Contains(t, got, "Error: 'five' is not one of 1, 2, 3, 4.")
}

func TestChoose_EOF(t *testing.T) {
	p, _ := newPrompter("9\n")

	_, err := p.Choose("Menu", []string{"A", "B"})
	assert.ErrorIs(t, err, io.EOF)
	assert.True(t, dispatch.IsAbort(err))
}

func TestAsk(t *testing.T) {
	p, out := newPrompter("soon\n\n  Penguin  \n2001")

	year, err := p.Ask(dispatch.Question{Label: "Founded year", Type: catalog.FieldInt, Default: "1935", HasDefault: true})
	require.NoError(t, err)
	assert.Equal(t, "1935", year)
	assert.Contains(t, out.String(), "Founded year [1935]: ")
	assert.Contains(t, out.String(), "Error: 'soon' is not a whole number")

	name, err := p.Ask(dispatch.Question{Label: "Name"})
	require.NoError(t, err)
	assert.Equal(t, "Penguin", name)

	last, err := p.Ask(dispatch.Question{Label: "Year", Type: catalog.FieldInt})
	require.NoError(t, err)
	assert.Equal(t, "2001", last, "a final line without newline is still read")

	_, err = p.Ask(dispatch.Question{Label: "Anything"})
	assert.ErrorIs(t, err, io.EOF)
}

func TestAsk_EmptyTextIsAccepted(t *testing.T) {
	p, _ := newPrompter("\n")

	v, err := p.Ask(dispatch.Question{Label: "Website (optional)", Optional: true})
	require.NoError(t, err)
	assert.Empty(t, v)
}
