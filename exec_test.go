package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bed/buffer"
)

// withText seeds the editor with a buffer and puts dot on the last
// line, mirroring what open does.
func withText(text string) Option {
	return func(ed *Editor) {
		ed.buf = buffer.New(text)
		ed.dot = ed.buf.LineCount()
	}
}

func withDot(n int) Option {
	return func(ed *Editor) { ed.dot = n }
}

func TestEditor(t *testing.T) {
	const text = "A\nB\nC\nD\nE\n"
	tests := []struct {
		name   string
		input  string // command stream fed to the editor
		opts   []Option
		dot    int
		output string
		buf    string
		err    error
	}{
		{name: "print current", input: "p", dot: 5, output: "E\n", buf: text},
		{name: "print whole", input: ",p", dot: 5, output: "A\nB\nC\nD\nE\n", buf: text},
		{name: "print explicit", input: "2,4p", dot: 5, output: "B\nC\nD\n", buf: text},
		{name: "print open end", input: "3,p", dot: 5, output: "C\nD\nE\n", buf: text},
		{name: "print open start", input: ",3p", dot: 5, output: "A\nB\nC\n", buf: text},
		{name: "print single", input: "1p", dot: 5, output: "A\n", buf: text},
		{name: "print does not move dot", input: "2p", opts: []Option{withDot(4)}, dot: 4, output: "B\n", buf: text},

		{name: "numbered current", input: "n", dot: 5, output: "5 │ E\n", buf: text},
		{name: "numbered range", input: "1,2n", dot: 5, output: "1 │ A\n2 │ B\n", buf: text},

		{name: "move", input: "3", dot: 3, buf: text},
		{name: "move to first", input: "1", dot: 1, buf: text},
		{name: "move out of range", input: "9", dot: 5, buf: text, err: ErrInvalidAddress},
		{name: "move to zero", input: "0", dot: 5, buf: text, err: ErrInvalidAddress},

		{name: "change single for single", input: "c\nX\n.", opts: []Option{withDot(2)}, dot: 2, buf: "A\nX\nC\nD\nE\n"},
		{name: "change single for multi", input: "c\nx\ny\n.", opts: []Option{withDot(3)}, dot: 3, buf: "A\nB\nx\ny\nD\nE\n"},
		{name: "change to empty", input: "c\n.", dot: 5, buf: "A\nB\nC\nD\n\n"},
		{name: "change unterminated", input: "c\nX", dot: 5, buf: text, err: ErrUnexpectedEOF},

		{name: "range exceeds buffer", input: "4,9p", dot: 5, buf: text, err: ErrInvalidAddress},
		{name: "reversed range", input: "4,2p", dot: 5, buf: text, err: ErrInvalidAddress},
		{name: "unknown input", input: "zzz", dot: 5, buf: text, err: ErrUnknownCmd},
		{name: "overflowing address", input: "99999999999999999999", dot: 5, buf: text, err: ErrNumberOutOfRange},
		{name: "write without filename", input: "w", dot: 5, buf: text, err: ErrNoFileName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			opts := append([]Option{
				WithStdin(strings.NewReader(tt.input)),
				WithStdout(&stdout),
				WithStderr(io.Discard),
				withText(text),
			}, tt.opts...)
			ed := NewEditor(opts...)
			if err := ed.run(); !errors.Is(err, tt.err) {
				t.Fatalf("want error %v, got %v", tt.err, err)
			}
			if ed.dot != tt.dot {
				t.Errorf("want dot %d, got %d", tt.dot, ed.dot)
			}
			if got := ed.buf.String(); got != tt.buf {
				t.Errorf("want buffer %q, got %q", tt.buf, got)
			}
			if stdout.String() != tt.output {
				t.Errorf("want stdout %q, got %q", tt.output, stdout.String())
			}
		})
	}
}

func TestEditorGutterWidth(t *testing.T) {
	// Ten lines: the gutter right-aligns to two digits.
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = string(rune('a' + i))
	}
	var stdout bytes.Buffer
	ed := NewEditor(
		WithStdin(strings.NewReader("9,n")),
		WithStdout(&stdout),
		WithStderr(io.Discard),
		withText(strings.Join(lines, "\n")+"\n"),
	)
	if err := ed.run(); err != nil {
		t.Fatal(err)
	}
	want := " 9 │ i\n10 │ j\n"
	if stdout.String() != want {
		t.Errorf("want %q, got %q", want, stdout.String())
	}
}

func TestEditorQuit(t *testing.T) {
	for _, input := range []string{"q", "quit"} {
		ed := NewEditor(
			WithStdin(strings.NewReader(input)),
			WithStdout(io.Discard),
			WithStderr(io.Discard),
			withText("A\n"),
		)
		if err := ed.run(); err != nil {
			t.Fatal(err)
		}
		if !ed.done {
			t.Errorf("%q did not terminate the editor", input)
		}
	}
}

func TestEditorEndOfInput(t *testing.T) {
	ed := NewEditor(
		WithStdin(strings.NewReader("")),
		WithStdout(io.Discard),
		WithStderr(io.Discard),
	)
	if err := ed.run(); err != nil {
		t.Fatal(err)
	}
	if !ed.done {
		t.Error("end of input did not terminate the editor")
	}
}

func TestEditorKeepsRunningAfterErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	ed := NewEditor(
		WithStdin(strings.NewReader("zzz\n0\n4,2p\n1p\nq\n")),
		WithStdout(&stdout),
		WithStderr(&stderr),
		withText("A\nB\n"),
	)
	ed.Run()
	if stdout.String() != "A\n" {
		t.Errorf("want stdout %q, got %q", "A\n", stdout.String())
	}
	if !ed.done {
		t.Error("editor did not reach the quit command")
	}
	if stderr.Len() == 0 {
		t.Error("expected diagnostics on stderr")
	}
}

func TestEditorEmptyBuffer(t *testing.T) {
	for _, input := range []string{"p", "n", "c", "1"} {
		ed := NewEditor(
			WithStdin(strings.NewReader(input)),
			WithStdout(io.Discard),
			WithStderr(io.Discard),
		)
		if err := ed.run(); !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("%q on empty buffer: want %v, got %v", input, ErrInvalidAddress, err)
		}
	}
}

func TestEditorWrite(t *testing.T) {
	tests := []struct {
		name string
		text string
		size string
	}{
		{name: "terminated", text: "A\nB\nC\n", size: "6"},
		{name: "unterminated", text: "A\nB\nC", size: "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.txt")
			var stderr bytes.Buffer
			ed := NewEditor(
				WithStdin(strings.NewReader("w")),
				WithStdout(io.Discard),
				WithStderr(&stderr),
				withText(tt.text),
			)
			ed.path = path
			if err := ed.run(); err != nil {
				t.Fatal(err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.text {
				t.Errorf("round trip: want %q, got %q", tt.text, string(data))
			}
			if got := strings.TrimSpace(stderr.String()); got != tt.size {
				t.Errorf("want byte count %s, got %q", tt.size, got)
			}
		})
	}
}

func TestEditorWriteSilent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	var stderr bytes.Buffer
	ed := NewEditor(
		WithStdin(strings.NewReader("w")),
		WithStdout(io.Discard),
		WithStderr(&stderr),
		WithSilent(true),
		withText("A\n"),
	)
	ed.path = path
	if err := ed.run(); err != nil {
		t.Fatal(err)
	}
	if stderr.Len() != 0 {
		t.Errorf("silent write still reported: %q", stderr.String())
	}
}

func TestEditorChangeThenWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	ed := NewEditor(
		WithStdin(strings.NewReader("2\nc\nx\ny\n.\nw\nq\n")),
		WithStdout(io.Discard),
		WithStderr(io.Discard),
		WithSilent(true),
		withText("A\nB\nC\n"),
	)
	ed.path = path
	ed.Run()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "A\nx\ny\nC\n"; string(data) != want {
		t.Errorf("want %q, got %q", want, string(data))
	}
}

func TestEditorOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(path, []byte("A\nB\nC\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ed := NewEditor(WithStdout(io.Discard), WithStderr(io.Discard))
	if err := ed.open(path); err != nil {
		t.Fatal(err)
	}
	if ed.dot != 3 {
		t.Errorf("want dot on last line 3, got %d", ed.dot)
	}
	if ed.path != path {
		t.Errorf("want path %q, got %q", path, ed.path)
	}

	if err := ed.open(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrCannotOpenFile) {
		t.Errorf("want %v, got %v", ErrCannotOpenFile, err)
	}
}
