package macro

import (
	"errors"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/alnah/go-slidedeck/internal/fileslice"
	"github.com/alnah/go-slidedeck/internal/highlight"
	"github.com/alnah/go-slidedeck/internal/lineselect"
)

// ErrMissingPath is returned for a .code directive without a file name.
var ErrMissingPath = errors.New("missing file path")

// includeDirective matches a paragraph holding a .code or .coden directive.
// Only the numbered form takes a tab width.
// Groups: numbered flag, tab width, arguments.
var includeDirective = regexp.MustCompile(`<p>\.code(?:(n)(\d*))?:\s*(.*?)\s*</p>`)

// IncludeOptions configures IncludeMacro.
type IncludeOptions struct {
	IncludePaths []string // searched after the document directory
	ExpandTabs   int      // default tab width, overridden by .codenN

	// Highlighter renders the extracted lines. Nil selects the default
	// chroma highlighter.
	Highlighter highlight.LineHighlighter
}

// IncludeMacro replaces .code directives with highlighted lines read from a
// file. The language is taken from the file extension.
//
//	.code: path [spec]      plain listing
//	.coden: path [spec]     listing with a line-number gutter starting at 1
//	.coden4: path [spec]    same, tabs expanded to 4 spaces for this listing
//
// path and spec are separated by any run of whitespace. spec uses the line
// selection grammar of package lineselect.
type IncludeMacro struct {
	opts IncludeOptions
}

// NewIncludeMacro returns an IncludeMacro. opts is copied; later changes to
// the caller's slice have no effect.
func NewIncludeMacro(opts IncludeOptions) *IncludeMacro {
	opts.IncludePaths = append([]string(nil), opts.IncludePaths...)
	if opts.Highlighter == nil {
		opts.Highlighter = highlight.New()
	}
	return &IncludeMacro{opts: opts}
}

// Process implements Macro.
func (m *IncludeMacro) Process(content, baseDir string) (string, []string, error) {
	matches := includeDirective.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, nil, nil
	}

	var b strings.Builder
	last := 0
	for _, loc := range matches {
		directive := content[loc[0]:loc[1]]
		numbered := loc[3] > loc[2]
		args := html.UnescapeString(content[loc[6]:loc[7]])

		tabs := m.opts.ExpandTabs
		if loc[5] > loc[4] {
			n, err := strconv.Atoi(content[loc[4]:loc[5]])
			if err != nil {
				return "", nil, m.warn(directive, fmt.Errorf("%w: %v", fileslice.ErrInvalidTabWidth, err))
			}
			tabs = n
		}

		block, err := m.include(args, baseDir, numbered, tabs)
		if err != nil {
			return "", nil, m.warn(directive, err)
		}

		b.WriteString(content[last:loc[0]])
		b.WriteString(block)
		last = loc[1]
	}
	b.WriteString(content[last:])

	return b.String(), []string{ClassHasCode}, nil
}

func (m *IncludeMacro) include(args, baseDir string, numbered bool, tabs int) (string, error) {
	path, rest := splitArgs(args)
	if path == "" {
		return "", ErrMissingPath
	}

	spec, err := lineselect.Parse(rest)
	if err != nil {
		return "", err
	}

	lines, err := fileslice.Extract(path, baseDir, spec, fileslice.Options{
		IncludePaths: m.opts.IncludePaths,
		ExpandTabs:   tabs,
	})
	if err != nil {
		return "", err
	}

	return m.render(lines, numbered, strings.TrimPrefix(filepath.Ext(path), ".")), nil
}

// splitArgs separates the file path from the line spec at the first run of
// whitespace.
func splitArgs(args string) (path, spec string) {
	args = strings.TrimSpace(args)
	i := strings.IndexFunc(args, unicode.IsSpace)
	if i < 0 {
		return args, ""
	}
	return args[:i], strings.TrimSpace(args[i:])
}

func (m *IncludeMacro) warn(directive string, err error) *Warning {
	return &Warning{Macro: "include", Directive: html.UnescapeString(directive), Err: err}
}

// render writes lines as a highlighted <pre> block. Each line is wrapped in
// a span whose data-line holds its number in the source file; gutter
// numbers count from 1 within the listing.
func (m *IncludeMacro) render(lines []fileslice.Line, numbered bool, lang string) string {
	raw := make([]string, len(lines))
	for i, l := range lines {
		raw[i] = l.Raw
	}
	code := m.opts.Highlighter.HighlightLines(lang, raw)

	var b strings.Builder
	b.WriteString(`<div class="highlight"><pre class="chroma code"><code`)
	if lang != "" {
		b.WriteString(` class="language-`)
		b.WriteString(html.EscapeString(lang))
		b.WriteString(`"`)
	}
	b.WriteString(">")

	width := len(strconv.Itoa(len(lines)))
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, `<span data-line="%d">`, l.Number)
		if numbered {
			fmt.Fprintf(&b, `<span class="lineno">%*d</span> `, width, i+1)
		}
		if i < len(code) {
			b.WriteString(code[i])
		} else {
			b.WriteString(l.Text)
		}
		b.WriteString("</span>")
	}
	b.WriteString("</code></pre></div>")
	return b.String()
}
