package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// kind enumerates the closed set of command variants.
type kind int

const (
	cmdInvalid kind = iota // malformed input, reason attached
	cmdQuit
	cmdPrint
	cmdNumber // print with a line number gutter
	cmdMove
	cmdChange
	cmdWrite
)

// lineRange is an inclusive 1-based line span.
type lineRange struct {
	start, end int
}

// command is one classified input line. The print family carries rng,
// cmdMove carries line and cmdInvalid carries the rejection reason.
type command struct {
	kind   kind
	rng    lineRange
	line   int
	reason error
}

var (
	quitRe   = regexp.MustCompile(`^(q|quit)$`)
	printRe  = regexp.MustCompile(`^(\d+)?(,)?\s?(\d+)?\s?([pn])$`)
	moveRe   = regexp.MustCompile(`^\d+$`)
	changeRe = regexp.MustCompile(`^c\s*$`)
	writeRe  = regexp.MustCompile(`^w\s*$`)
)

// parseCommand classifies one raw input line. dot is the current line
// and max the buffer's line count; both feed the addressing defaults.
// Malformed input never panics or kills the loop, it becomes a
// cmdInvalid carrying the reason.
func parseCommand(input string, dot, max int) command {
	input = strings.TrimSpace(input)
	switch {
	case quitRe.MatchString(input):
		return command{kind: cmdQuit}
	case printRe.MatchString(input):
		m := printRe.FindStringSubmatch(input)
		rng, err := resolveRange(m, dot, max)
		if err != nil {
			return command{reason: err}
		}
		if m[4] == "n" {
			return command{kind: cmdNumber, rng: rng}
		}
		return command{kind: cmdPrint, rng: rng}
	case changeRe.MatchString(input):
		return command{kind: cmdChange}
	case moveRe.MatchString(input):
		n, err := strconv.Atoi(input)
		if err != nil {
			return command{reason: fmt.Errorf("%w: %q", ErrNumberOutOfRange, input)}
		}
		return command{kind: cmdMove, line: n}
	case writeRe.MatchString(input):
		return command{kind: cmdWrite}
	default:
		return command{reason: fmt.Errorf("%w: %q", ErrUnknownCmd, input)}
	}
}

// resolveRange turns the submatches of printRe into a concrete line
// span. The comma's presence, not whether both sides are filled, picks
// the defaults: with a comma the span falls back to the whole buffer,
// without one to the current line alone. A second number without a
// comma is ignored, as in `3 7p`.
func resolveRange(m []string, dot, max int) (lineRange, error) {
	start := dot
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return lineRange{}, fmt.Errorf("%w: %q", ErrNumberOutOfRange, m[1])
		}
		start = n
	}
	if m[2] != "," {
		return lineRange{start: start, end: start}, nil
	}
	if m[1] == "" {
		start = 1
	}
	end := max
	if m[3] != "" {
		n, err := strconv.Atoi(m[3])
		if err != nil {
			return lineRange{}, fmt.Errorf("%w: %q", ErrNumberOutOfRange, m[3])
		}
		end = n
	}
	return lineRange{start: start, end: end}, nil
}
