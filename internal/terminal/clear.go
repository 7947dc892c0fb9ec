// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package terminal provides utilities for terminal operations such as clearing text.
package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const defaultWidth = 80

// Width returns the width of the terminal behind f, or 80 when f is not a terminal.
func Width(f *os.File) int {
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return width
	}
	return defaultWidth
}

// linesFor returns how many rows a prompt of textLength characters occupied,
// plus the empty row the cursor lands on after Enter.
func linesFor(textLength, width int) int {
	if width <= 0 {
		width = defaultWidth
	}
	rows := (textLength + width - 1) / width
	if rows < 1 {
		rows = 1
	}
	return rows + 1
}

// ClearLines moves up over a prompt of textLength characters written to w and
// erases it, so entered secrets do not stay on screen.
func ClearLines(w io.Writer, textLength, width int) {
	n := linesFor(textLength, width)
	for i := 0; i < n; i++ {
		fmt.Fprint(w, "\r\x1b[2K")
		if i < n-1 {
			fmt.Fprint(w, "\x1b[1A")
		}
	}
}

// ClearPreviousLines clears a prompt and its input from standard output.
func ClearPreviousLines(textLength int) {
	ClearLines(os.Stdout, textLength, Width(os.Stdout))
}
