package main

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	ansiReset    = "\x1b[0m"
	defaultStyle = "monokai"
)

// Highlighter colourises buffer lines with terminal escapes, keyed by
// the name of the file being edited. A nil Highlighter is the identity
// filter: lines pass through untouched and no reset is emitted.
type Highlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter
}

// NewHighlighter picks a lexer from the file name. It returns nil when
// chroma has no lexer for it, which callers treat as "no highlighting".
func NewHighlighter(path, styleName string) *Highlighter {
	lexer := lexers.Match(path)
	if lexer == nil {
		return nil
	}
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	return &Highlighter{
		lexer:     chroma.Coalesce(lexer),
		style:     style,
		formatter: formatter,
	}
}

// Line renders one line of text. Any tokenising or formatting error
// falls back to the raw line.
func (h *Highlighter) Line(text string) string {
	if h == nil {
		return text
	}
	it, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}
	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, it); err != nil {
		return text
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (h *Highlighter) enabled() bool { return h != nil }
