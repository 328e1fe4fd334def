// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package prompt reads menu choices and field values line by line from a
// terminal or any other reader.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"library-catalog/internal/dispatch"
)

var (
	titleColor  = color.New(color.FgCyan, color.Bold)
	numberColor = color.New(color.FgBlue)
	errorColor  = color.New(color.FgRed)
	dimColor    = color.New(color.Faint)
)

// LinePrompter implements dispatch.Prompter over plain text lines.
type LinePrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

var _ dispatch.Prompter = (*LinePrompter)(nil)

func New(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// readLine returns the next line without its terminator. A final line
// without a newline is still returned; io.EOF is only reported once no
// input is left.
func (p *LinePrompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		fmt.Fprintln(p.out)
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Choose prints a numbered menu and reads until a listed number is entered.
func (p *LinePrompter) Choose(title string, options []string) (int, error) {
	fmt.Fprintln(p.out)
	titleColor.Fprintln(p.out, title)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %s %s\n", numberColor.Sprintf("%d.", i+1), opt)
	}

	for {
		fmt.Fprintf(p.out, "Enter choice %s: ", dimColor.Sprintf("[1-%d]", len(options)))
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		input := strings.TrimSpace(line)
		n, err := strconv.Atoi(input)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		errorColor.Fprintf(p.out, "Error: '%s' is not one of %s.\n", input, ordinals(len(options)))
	}
}

// Ask prints the question with its default and reads until the answer
// passes q.Check.
func (p *LinePrompter) Ask(q dispatch.Question) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", q.Hint())
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		answer, err := q.Check(line)
		if err != nil {
			errorColor.Fprintf(p.out, "Error: %v\n", err)
			continue
		}
		return answer, nil
	}
}

func ordinals(n int) string {
	nums := make([]string, n)
	for i := range nums {
		nums[i] = strconv.Itoa(i + 1)
	}
	return strings.Join(nums, ", ")
}
