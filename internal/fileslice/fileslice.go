// Package fileslice extracts a selected range of lines from a source file,
// ready to be embedded in HTML.
package fileslice

import (
	"errors"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/alnah/go-slidedeck/internal/fileutil"
	"github.com/alnah/go-slidedeck/internal/lineselect"
)

// Sentinel errors for file extraction.
var (
	ErrFileNotFound    = errors.New("file not found")
	ErrFileRead        = errors.New("failed to read file")
	ErrInvalidTabWidth = errors.New("invalid tab width")
)

// MaxTabWidth is the widest tab expansion accepted.
const MaxTabWidth = 16

// Line is one extracted line, numbered as in the source file.
type Line struct {
	Number int
	Text   string // tab-expanded and HTML-escaped
	Raw    string // tab-expanded only
}

// Options controls how lines are located and formatted.
type Options struct {
	IncludePaths []string // searched after the base directory, in order
	ExpandTabs   int      // spaces per tab, 0 keeps tabs
}

// Extract reads path and returns the lines selected by spec.
//
// path is looked up in baseDir first, then in each of opts.IncludePaths.
// Relative include paths are resolved against the working directory.
// Line numbers are the original ones, not rebased to the selection.
// opts.ExpandTabs outside [0, MaxTabWidth] fails with ErrInvalidTabWidth.
func Extract(path, baseDir string, spec lineselect.Spec, opts Options) ([]Line, error) {
	if opts.ExpandTabs < 0 || opts.ExpandTabs > MaxTabWidth {
		return nil, fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidTabWidth, opts.ExpandTabs, MaxTabWidth)
	}

	found, err := Locate(path, baseDir, opts.IncludePaths)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(found) // #nosec G304 -- path comes from the presentation author
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileRead, found, err)
	}

	lines := SplitLines(string(data))
	start, end, err := lineselect.Resolve(spec, lines)
	if err != nil {
		return nil, err
	}

	out := make([]Line, 0, end-start+1)
	for n := start; n <= end; n++ {
		raw := ExpandTabs(lines[n-1], opts.ExpandTabs)
		out = append(out, Line{
			Number: n,
			Text:   html.EscapeString(raw),
			Raw:    raw,
		})
	}
	return out, nil
}

// Locate returns the first existing file named path, looking in baseDir and
// then in includePaths.
func Locate(path, baseDir string, includePaths []string) (string, error) {
	dirs := make([]string, 0, len(includePaths)+1)
	dirs = append(dirs, baseDir)
	dirs = append(dirs, includePaths...)

	found, tried, ok := fileutil.FindFile(path, dirs...)
	if !ok {
		return "", fmt.Errorf("%w: %s (tried %s)", ErrFileNotFound, path, strings.Join(tried, ", "))
	}
	return found, nil
}

// SplitLines splits text into lines. CRLF is normalized and a trailing
// newline does not produce an extra empty line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// ExpandTabs replaces every tab with n spaces. n <= 0 leaves s unchanged.
func ExpandTabs(s string, n int) string {
	if n <= 0 {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", n))
}
