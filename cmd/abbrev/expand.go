package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dshills/abbrev/internal/app"
	"github.com/dshills/abbrev/internal/engine/buffer"
	"github.com/dshills/abbrev/internal/engine/cursor"
)

// runExpand types one character into a text at the given cursors and
// prints the result. It runs the same path as a keystroke in the editor.
func runExpand(a *app.App, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("expand", flag.ContinueOnError)
	fs.SetOutput(stderr)
	text := fs.String("text", "", "Document text")
	cursors := fs.String("cursor", "", "Comma-separated byte offsets of the cursors (default: end of text)")
	char := fs.String("char", " ", "Character to type")
	showTx := fs.Bool("tx", false, "Also print the transaction to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ch, err := parseChar(*char)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	offsets, err := parseCursors(*cursors, len(*text))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	session := a.NewSession(buffer.NewBufferFromString(*text))
	session.SetSelection(cursor.Cursors(offsets...))
	if err := session.InsertChar(ch); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if *showTx {
		if e, ok := session.History().Last(); ok {
			fmt.Fprintln(stderr, e.Forward)
		}
	}
	fmt.Fprint(stdout, session.Text())
	return 0
}

// parseChar accepts exactly one character. A few escapes are allowed so
// newlines and tabs can be given on a command line.
func parseChar(s string) (rune, error) {
	switch s {
	case `\n`:
		return '\n', nil
	case `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("-char must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// parseCursors parses "3,7,11". An empty list means one cursor at textLen.
func parseCursors(s string, textLen int) ([]buffer.ByteOffset, error) {
	if strings.TrimSpace(s) == "" {
		return []buffer.ByteOffset{buffer.ByteOffset(textLen)}, nil
	}
	var out []buffer.ByteOffset
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad cursor %q: %w", part, err)
		}
		if n < 0 || n > textLen {
			return nil, fmt.Errorf("cursor %d: %w", n, errCursorRange)
		}
		out = append(out, buffer.ByteOffset(n))
	}
	return out, nil
}

var errCursorRange = errors.New("outside the text")
