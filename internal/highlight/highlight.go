// Package highlight renders source code as syntax-highlighted HTML using chroma.
package highlight

import (
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// LineNumbers selects how line numbers are rendered.
type LineNumbers string

// Line number modes.
const (
	LineNumbersNone   LineNumbers = "no"
	LineNumbersInline LineNumbers = "inline"
	LineNumbersTable  LineNumbers = "table"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// ParseLineNumbers validates a line number mode. Empty means LineNumbersNone.
func ParseLineNumbers(s string) (LineNumbers, error) {
	switch LineNumbers(strings.ToLower(s)) {
	case "", LineNumbersNone:
		return LineNumbersNone, nil
	case LineNumbersInline:
		return LineNumbersInline, nil
	case LineNumbersTable:
		return LineNumbersTable, nil
	}
	return "", fmt.Errorf("invalid line numbers mode %q (must be no, inline, or table)", s)
}

// Highlighter turns code in a given language into HTML.
// Unknown languages are rendered as escaped plain text, never as an error.
type Highlighter interface {
	Highlight(lang, code string) string
}

// LineHighlighter renders code one line at a time, leaving the surrounding
// markup and any gutter to the caller.
type LineHighlighter interface {
	HighlightLines(lang string, lines []string) []string
}

// Chroma is a Highlighter backed by chroma with CSS classes.
type Chroma struct {
	style       *chroma.Style
	lineNumbers LineNumbers
}

// Option configures a Chroma highlighter.
type Option func(*Chroma)

// WithStyle selects a chroma style by name. Unknown names fall back to
// chroma's default style.
func WithStyle(name string) Option {
	return func(c *Chroma) {
		c.style = styles.Get(name)
	}
}

// WithLineNumbers selects the line number mode.
func WithLineNumbers(mode LineNumbers) Option {
	return func(c *Chroma) {
		c.lineNumbers = mode
	}
}

// New creates a Chroma highlighter.
func New(opts ...Option) *Chroma {
	c := &Chroma{
		style:       styles.Get(DefaultStyle),
		lineNumbers: LineNumbersNone,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile-time interface checks.
var (
	_ Highlighter     = (*Chroma)(nil)
	_ LineHighlighter = (*Chroma)(nil)
)

// Highlight renders code wrapped in <div class="highlight">.
func (c *Chroma) Highlight(lang, code string) string {
	lexer := lexerFor(lang)

	var buf strings.Builder
	buf.WriteString(`<div class="highlight">`)

	iterator, err := lexer.Tokenise(nil, code)
	if err == nil {
		err = c.formatter().Format(&buf, c.style, iterator)
	}
	if err != nil {
		buf.Reset()
		buf.WriteString(`<div class="highlight"><pre>`)
		buf.WriteString(html.EscapeString(code))
		buf.WriteString(`</pre>`)
	}

	buf.WriteString(`</div>`)
	return buf.String()
}

// HighlightLines returns the token markup of each line with no <pre> or
// per-line wrapper. The result has one entry per input line; lines the lexer
// cannot split cleanly fall back to escaped plain text.
func (c *Chroma) HighlightLines(lang string, lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = html.EscapeString(l)
	}
	if len(lines) == 0 {
		return out
	}

	iterator, err := lexerFor(lang).Tokenise(nil, strings.Join(lines, "\n")+"\n")
	if err != nil {
		return out
	}
	split := chroma.SplitTokensIntoLines(iterator.Tokens())
	if len(split) != len(lines) {
		return out
	}

	f := chromahtml.New(chromahtml.WithClasses(true), chromahtml.PreventSurroundingPre(true))
	for i, tokens := range split {
		var buf strings.Builder
		if err := f.Format(&buf, c.style, chroma.Literator(trimNewline(tokens)...)); err == nil {
			out[i] = buf.String()
		}
	}
	return out
}

// CSS returns the stylesheet matching the classes emitted by Highlight.
func (c *Chroma) CSS() (string, error) {
	var buf strings.Builder
	if err := c.formatter().WriteCSS(&buf, c.style); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}

// FormatOptions returns the chroma HTML options in use, so that other
// renderers (such as fenced code blocks) produce matching markup.
func (c *Chroma) FormatOptions() []chromahtml.Option {
	return []chromahtml.Option{
		chromahtml.WithClasses(true),
		chromahtml.WithLineNumbers(c.lineNumbers != LineNumbersNone),
		chromahtml.LineNumbersInTable(c.lineNumbers == LineNumbersTable),
	}
}

// StyleName returns the name of the active chroma style.
func (c *Chroma) StyleName() string {
	return c.style.Name
}

func lexerFor(lang string) chroma.Lexer {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// trimNewline drops the line terminator carried by the last token.
func trimNewline(tokens []chroma.Token) []chroma.Token {
	if len(tokens) == 0 {
		return tokens
	}
	last := &tokens[len(tokens)-1]
	last.Value = strings.TrimSuffix(last.Value, "\n")
	if last.Value == "" {
		return tokens[:len(tokens)-1]
	}
	return tokens
}

func (c *Chroma) formatter() *chromahtml.Formatter {
	return chromahtml.New(c.FormatOptions()...)
}
