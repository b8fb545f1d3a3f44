package macro

import (
	"html"
	"regexp"
	"strings"

	"github.com/alnah/go-slidedeck/internal/highlight"
)

// bangedBlock matches a preformatted block whose first line names a language
// with a leading "!" (escaped code) or "!!" (verbatim code).
// Groups: second bang, language, code.
var bangedBlock = regexp.MustCompile(`(?s)<pre[^>]*>(?:<code[^>]*>)?\s?!(!?)(\S+?)\n(.*?)(?:</code>)?</pre>`)

// CodeHighlightingMacro syntax-highlights code blocks that start with !lang.
//
// With a single bang the block content is HTML-unescaped before
// highlighting, since the markup converter escaped it. A double bang keeps
// the content exactly as written.
type CodeHighlightingMacro struct {
	highlighter highlight.Highlighter
}

// NewCodeHighlightingMacro returns a macro using h. A nil h selects the
// default chroma highlighter.
func NewCodeHighlightingMacro(h highlight.Highlighter) *CodeHighlightingMacro {
	if h == nil {
		h = highlight.New()
	}
	return &CodeHighlightingMacro{highlighter: h}
}

// Process implements Macro.
func (m *CodeHighlightingMacro) Process(content, _ string) (string, []string, error) {
	matches := bangedBlock.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, nil, nil
	}

	var b strings.Builder
	last := 0
	for _, loc := range matches {
		verbatim := loc[3] > loc[2]
		lang := content[loc[4]:loc[5]]
		code := content[loc[6]:loc[7]]
		if !verbatim {
			code = Descape(code)
		}

		b.WriteString(content[last:loc[0]])
		b.WriteString(m.highlighter.Highlight(lang, code))
		last = loc[1]
	}
	b.WriteString(content[last:])

	return b.String(), []string{ClassHasCode}, nil
}

// Descape reverses one level of HTML escaping.
func Descape(s string) string {
	return html.UnescapeString(s)
}
