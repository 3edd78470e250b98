// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

// Package console reads line based answers from the user and draws the
// queue on the terminal.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

var (
	// ErrInputParse is returned by ParseUint for text that is not a number
	// in range. Prompts recover from it by asking again.
	ErrInputParse = errors.New("invalid numeric input")
	// ErrAborted means the user cancelled a selection
	ErrAborted = errors.New("selection cancelled")
)

const clearSequence = "\033[H\033[2J"

// Console is a line oriented terminal
type Console struct {
	in    *bufio.Reader
	out   io.Writer
	clear bool
}

// New returns a console reading from in and writing to out. The screen is
// only cleared when out is a terminal.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:    bufio.NewReader(in),
		out:   out,
		clear: IsTerminal(out),
	}
}

// IsTerminal reports whether stream is a terminal file
func IsTerminal(stream interface{}) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Clear wipes the screen and moves the cursor home
func (c *Console) Clear() {
	if c.clear {
		fmt.Fprint(c.out, clearSequence)
	}
}

// Println writes one line
func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

// Printf writes formatted text
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

// Prompt prints message and returns the next line with surrounding
// whitespace removed. io.EOF is returned only when no text was left.
func (c *Console) Prompt(message string) (string, error) {
	fmt.Fprint(c.out, message)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ParseUint parses an unsigned decimal that fits in bits
func ParseUint(text string, bits int) (uint64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(text), 10, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInputParse, text)
	}
	return n, nil
}

// PromptUint asks until the answer parses as an unsigned number of the
// given bit size
func (c *Console) PromptUint(message string, bits int) (uint64, error) {
	for {
		text, err := c.Prompt(message)
		if err != nil {
			return 0, err
		}
		n, err := ParseUint(text, bits)
		if errors.Is(err, ErrInputParse) {
			c.Println("Invalid input...")
			continue
		}
		return n, err
	}
}

// Select asks for an index in [0, n) until one is given. Typing q returns
// ErrAborted.
func (c *Console) Select(message string, n int) (int, error) {
	if n <= 0 {
		return 0, ErrAborted
	}
	for {
		text, err := c.Prompt(message)
		if err != nil {
			return 0, err
		}
		if strings.EqualFold(text, "q") {
			return 0, ErrAborted
		}
		i, err := ParseUint(text, strconv.IntSize-1)
		if err != nil {
			c.Println("Invalid input...")
			continue
		}
		if i >= uint64(n) {
			c.Printf("Selection out of range, choose 0-%d...\n", n-1)
			continue
		}
		return int(i), nil
	}
}
