package macro

import (
	"regexp"
	"strings"
)

var (
	notesDirective = regexp.MustCompile(`<p>\.notes:\s?(.*?)</p>`)
	fxDirective    = regexp.MustCompile(`<p>\.fx:\s?(.*?)</p>\n?`)
)

// NotesMacro turns ".notes: text" paragraphs into notes paragraphs.
type NotesMacro struct{}

// Process implements Macro.
func (NotesMacro) Process(content, _ string) (string, []string, error) {
	if !notesDirective.MatchString(content) {
		return content, nil, nil
	}
	out := notesDirective.ReplaceAllString(content, `<p class="notes">$1</p>`)
	return out, []string{ClassHasNotes}, nil
}

// FxMacro removes ".fx: a b" paragraphs and returns their tokens as classes.
type FxMacro struct{}

// Process implements Macro.
func (FxMacro) Process(content, _ string) (string, []string, error) {
	matches := fxDirective.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return content, nil, nil
	}

	var classes []string
	for _, m := range matches {
		classes = append(classes, strings.Fields(m[1])...)
	}
	return fxDirective.ReplaceAllString(content, ""), classes, nil
}
