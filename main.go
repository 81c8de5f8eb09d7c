// bed is a line editor in the spirit of ed, driven by a compact
// command language at a ":" prompt and backed by a rope buffer.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"
)

var (
	promptFlag = flag.String("p", defaultPrompt, "command prompt")
	silentFlag = flag.Bool("s", false, "suppress byte count diagnostics")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-p prompt] [-s] file\n", os.Args[0])
		os.Exit(1)
	}
	path := flag.Arg(0)

	opts := []Option{
		WithPrompt(*promptFlag),
		WithSilent(*silentFlag),
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		opts = append(opts, WithHighlighter(NewHighlighter(path, defaultStyle)))
	}

	ed := NewEditor(opts...)
	if err := ed.open(path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ed.Run()
}
