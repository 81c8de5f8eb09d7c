package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"bed/buffer"
)

const defaultPrompt = ":"

var (
	ErrCannotOpenFile   = errors.New("cannot open input file")
	ErrCannotWriteFile  = errors.New("cannot write file")
	ErrInvalidAddress   = errors.New("invalid address")
	ErrNoFileName       = errors.New("no current filename")
	ErrNumberOutOfRange = errors.New("number out of range")
	ErrUnexpectedEOF    = errors.New("unexpected end-of-file")
	ErrUnknownCmd       = errors.New("unknown command")
)

// Editor holds the whole session: the rope buffer, the current line
// and the streams commands are read from and answered on. It is the
// only mutable state in the program and is owned by the REPL loop.
type Editor struct {
	buf  *buffer.Rope
	path string
	dot  int // current line, 1-based; 0 while the buffer is empty

	prompt string
	silent bool
	done   bool

	hl     *Highlighter
	gutter lipgloss.Style

	in     *bufio.Scanner
	stdout io.Writer
	stderr io.Writer
}

type Option func(*Editor)

func WithStdin(r io.Reader) Option {
	return func(ed *Editor) { ed.in = bufio.NewScanner(r) }
}

func WithStdout(w io.Writer) Option {
	return func(ed *Editor) { ed.stdout = w }
}

func WithStderr(w io.Writer) Option {
	return func(ed *Editor) { ed.stderr = w }
}

func WithPrompt(prompt string) Option {
	return func(ed *Editor) { ed.prompt = prompt }
}

func WithSilent(t bool) Option {
	return func(ed *Editor) { ed.silent = t }
}

func WithHighlighter(hl *Highlighter) Option {
	return func(ed *Editor) { ed.hl = hl }
}

func NewEditor(opts ...Option) *Editor {
	ed := &Editor{
		buf:    buffer.New(""),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	WithStdin(os.Stdin)(ed)
	for _, opt := range opts {
		opt(ed)
	}
	// The style degrades to plain text when stdout is not a terminal.
	ed.gutter = lipgloss.NewRenderer(ed.stdout).NewStyle().Faint(true)
	return ed
}

// open reads path into a fresh buffer and moves the current line to
// the end of the file. The byte count is reported like a write is.
func (ed *Editor) open(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrCannotOpenFile, path)
	}
	ed.buf = buffer.New(string(data))
	ed.path = path
	ed.dot = ed.buf.LineCount()
	if !ed.silent {
		fmt.Fprintln(ed.stderr, len(data))
	}
	return nil
}

// run reads, parses and executes a single command.
func (ed *Editor) run() error {
	ed.doPrompt()
	if !ed.in.Scan() {
		ed.done = true
		return ed.in.Err()
	}
	cmd := parseCommand(ed.in.Text(), ed.dot, ed.buf.LineCount())
	return ed.exec(cmd)
}

// Run drives the REPL until a quit command or end of input. Every
// error is a one-line diagnostic; none of them end the session.
func (ed *Editor) Run() {
	for !ed.done {
		if err := ed.run(); err != nil {
			ed.errorln(err)
		}
	}
}

func (ed *Editor) doPrompt() {
	if ed.prompt != "" {
		fmt.Fprint(ed.stdout, ed.prompt)
	}
}

func (ed *Editor) errorln(err error) {
	fmt.Fprintln(ed.stderr, err)
}
