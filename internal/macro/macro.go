// Package macro implements the content macros applied to every slide.
//
// A macro receives a slide's rendered HTML and the directory of the source
// document, and returns the rewritten HTML plus the CSS classes it wants on
// the slide. Macros run in registration order inside a Pipeline; classes are
// accumulated in that order and never deduplicated.
//
// Built-in macros and the directives they recognize:
//
//	CodeHighlightingMacro   <pre><code>!lang ...   (or !!lang, kept verbatim)
//	IncludeMacro            .code: path [spec]   /   .coden[N]: path [spec]
//	NotesMacro              .notes: text
//	FxMacro                 .fx: class class ...
//	EmbedImagesMacro        <img src="local"> -> data URI
//	FixImagePathsMacro      <img src="relative"> -> file:// or relative URL
//
// A directive that cannot be honored fails the macro with a *Warning. The
// slide's output is then discarded as a whole; no partial substitution is
// ever returned.
package macro

import (
	"errors"
	"fmt"
)

// CSS classes emitted by the built-in macros.
const (
	ClassHasCode  = "has_code"
	ClassHasNotes = "has_notes"
)

// ErrNotAMacro is returned when registering a value that cannot process content.
var ErrNotAMacro = errors.New("value does not implement Macro")

// Macro rewrites one slide's content.
type Macro interface {
	Process(content, baseDir string) (string, []string, error)
}

// Func adapts an ordinary function to the Macro interface.
type Func func(content, baseDir string) (string, []string, error)

// Process calls f.
func (f Func) Process(content, baseDir string) (string, []string, error) {
	return f(content, baseDir)
}

// Warning reports a directive that could not be processed. It is scoped to
// one slide: callers are expected to log it and keep rendering the rest of
// the document.
type Warning struct {
	Macro     string // name of the failing macro
	Directive string // directive text as found in the content
	Err       error
}

func (w *Warning) Error() string {
	return fmt.Sprintf("%s macro: %s: %v", w.Macro, w.Directive, w.Err)
}

func (w *Warning) Unwrap() error {
	return w.Err
}

// IsWarning reports whether err carries a *Warning.
func IsWarning(err error) bool {
	var w *Warning
	return errors.As(err, &w)
}
