package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// suffix selects what display emits per line.
type suffix int

const (
	suffixPrint suffix = 1 << iota
	suffixEnumerate
)

// exec dispatches one parsed command. The variant set is closed and
// every kind is handled here; errors are recoverable diagnostics for
// the REPL loop.
func (ed *Editor) exec(cmd command) error {
	switch cmd.kind {
	case cmdQuit:
		ed.done = true
		return nil
	case cmdPrint:
		return ed.display(cmd.rng.start, cmd.rng.end, suffixPrint)
	case cmdNumber:
		return ed.display(cmd.rng.start, cmd.rng.end, suffixPrint|suffixEnumerate)
	case cmdMove:
		return ed.move(cmd.line)
	case cmdChange:
		return ed.change()
	case cmdWrite:
		return ed.write(ed.path)
	default:
		if cmd.reason != nil {
			return cmd.reason
		}
		return ErrUnknownCmd
	}
}

// validate rejects spans that reach outside the buffer before any
// iteration or mutation happens.
func (ed *Editor) validate(start, end int) error {
	if start > end || start < 1 || end > ed.buf.LineCount() {
		return ErrInvalidAddress
	}
	return nil
}

// display emits lines start through end (1-based, inclusive). With
// suffixEnumerate each line gets a gutter: its number right-aligned to
// the width of the largest line number, recomputed per command. Lines
// pass through the highlight filter right before emission.
func (ed *Editor) display(start, end int, flags suffix) error {
	if err := ed.validate(start, end); err != nil {
		return err
	}
	width := len(strconv.Itoa(ed.buf.LineCount()))
	for i := start - 1; i < end; i++ {
		var ln string
		if flags&suffixEnumerate != 0 {
			ln = ed.gutter.Render(fmt.Sprintf("%*d │", width, i+1)) + " "
		}
		ln += ed.hl.Line(ed.buf.Line(i))
		fmt.Fprintln(ed.stdout, ln)
	}
	if ed.hl.enabled() {
		fmt.Fprint(ed.stdout, ansiReset)
	}
	return nil
}

// move sets the current line. Out of range destinations are rejected
// rather than stored, so dot stays a valid address.
func (ed *Editor) move(n int) error {
	if n < 1 || n > ed.buf.LineCount() {
		return ErrInvalidAddress
	}
	ed.dot = n
	return nil
}

// change reads replacement text until a line holding a single "." and
// swaps it for the content of the current line. The line's byte span
// keeps its newline; the replacement may hold any number of lines.
// Dot is clamped to the new line count afterwards.
func (ed *Editor) change() error {
	if err := ed.validate(ed.dot, ed.dot); err != nil {
		return err
	}
	var lines []string
	for {
		if !ed.in.Scan() {
			return ErrUnexpectedEOF
		}
		ln := ed.in.Text()
		if ln == "." {
			break
		}
		lines = append(lines, ln)
	}
	start := ed.buf.OffsetOfLine(ed.dot - 1)
	end := start + ed.buf.LineLen(ed.dot - 1)
	ed.buf.Replace(start, end, strings.Join(lines, "\n"))
	if n := ed.buf.LineCount(); ed.dot > n {
		ed.dot = n
	}
	return nil
}

// write serializes the whole buffer to path, truncating it. The file
// handle only lives for the duration of the command. Failures leave
// the buffer untouched and the session running.
func (ed *Editor) write(path string) error {
	if path == "" {
		return ErrNoFileName
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrCannotWriteFile, path)
	}
	defer file.Close()
	siz, err := ed.buf.WriteTo(file)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrCannotWriteFile, path)
	}
	if !ed.silent {
		fmt.Fprintln(ed.stderr, siz)
	}
	return nil
}
