// Package lineselect parses and resolves line selections over a file's lines.
//
// A selection is written as zero, one or two whitespace-separated selectors:
//
//	(empty)         whole file
//	8               line 8
//	-1              last line (negative counts from the end)
//	$               last line
//	/re/            the only line matching re
//	/re/+2  8-  $+  a selector shifted by an offset (bare sign = 1)
//	8 10            lines 8 through 10
//
// Resolution never clamps: an out-of-range line, a pattern that matches zero
// or several lines, or an inverted range is reported as a *SelectionError.
package lineselect

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies the shape of a Spec.
type Kind int

// Spec kinds.
const (
	Whole  Kind = iota // the whole file
	Single             // one anchored line
	Range              // two anchors, inclusive
)

// Anchor identifies how a Selector locates its line.
type Anchor int

// Selector anchors.
const (
	AbsoluteLine  Anchor = iota // numeric line, possibly counted from the end
	PatternAnchor               // sole line matching a regular expression
	LastLine                    // "$"
)

// Selector locates one line before its offset is applied.
type Selector struct {
	Anchor  Anchor
	Line    int    // AbsoluteLine only, always positive
	FromEnd bool   // AbsoluteLine only, set for negative literals
	Pattern string // PatternAnchor only, without the slashes
	Offset  int
	Text    string // selector as written

	re *regexp.Regexp
}

// Spec is a parsed line selection.
type Spec struct {
	Kind  Kind
	Start Selector // Single and Range
	End   Selector // Range only
	Text  string
}

// String returns the selection as it was written.
func (s Spec) String() string {
	return s.Text
}

// String returns the selector as it was written.
func (s Selector) String() string {
	if s.Text != "" {
		return s.Text
	}
	var b strings.Builder
	switch s.Anchor {
	case LastLine:
		b.WriteString("$")
	case PatternAnchor:
		b.WriteString("/" + s.Pattern + "/")
	default:
		if s.FromEnd {
			b.WriteString("-")
		}
		b.WriteString(strconv.Itoa(s.Line))
	}
	if s.Offset > 0 {
		b.WriteString("+" + strconv.Itoa(s.Offset))
	} else if s.Offset < 0 {
		b.WriteString(strconv.Itoa(s.Offset))
	}
	return b.String()
}

// Resolve maps spec onto lines and returns the 1-based inclusive range it
// selects. The result always satisfies 1 <= start <= end <= len(lines).
func Resolve(spec Spec, lines []string) (start, end int, err error) {
	total := len(lines)

	switch spec.Kind {
	case Whole:
		if total == 0 {
			return 0, 0, &SelectionError{Spec: spec.Text, Err: fmt.Errorf("%w: file is empty", ErrLineOutOfRange)}
		}
		return 1, total, nil

	case Single:
		line, err := resolveSelector(spec.Start, lines)
		if err != nil {
			return 0, 0, err
		}
		return line, line, nil

	case Range:
		start, err = resolveSelector(spec.Start, lines)
		if err != nil {
			return 0, 0, err
		}
		end, err = resolveSelector(spec.End, lines)
		if err != nil {
			return 0, 0, err
		}
		if start > end {
			return 0, 0, &SelectionError{
				Spec: spec.Text,
				Err:  fmt.Errorf("%w: line %d is after line %d", ErrInvertedRange, start, end),
			}
		}
		return start, end, nil
	}

	return 0, 0, &SelectionError{Spec: spec.Text, Err: fmt.Errorf("%w: unknown kind %d", ErrInvalidSpec, spec.Kind)}
}

// resolveSelector returns the 1-based line sel designates, offset included.
func resolveSelector(sel Selector, lines []string) (int, error) {
	total := len(lines)
	var line int

	switch sel.Anchor {
	case AbsoluteLine:
		if sel.Line < 1 || sel.Line > total {
			return 0, selectorError(sel, fmt.Errorf("%w: line %s of %d", ErrLineOutOfRange, lineLiteral(sel), total))
		}
		line = sel.Line
		if sel.FromEnd {
			line = total - sel.Line + 1
		}

	case LastLine:
		if total == 0 {
			return 0, selectorError(sel, fmt.Errorf("%w: file is empty", ErrLineOutOfRange))
		}
		line = total

	case PatternAnchor:
		re := sel.re
		if re == nil {
			var err error
			re, err = regexp.Compile(sel.Pattern)
			if err != nil {
				return 0, selectorError(sel, fmt.Errorf("%w: %v", ErrInvalidPattern, err))
			}
		}
		matches := 0
		for i, l := range lines {
			if re.MatchString(l) {
				matches++
				line = i + 1
			}
		}
		switch {
		case matches == 0:
			return 0, selectorError(sel, ErrNoMatch)
		case matches > 1:
			return 0, selectorError(sel, fmt.Errorf("%w: %d lines match", ErrAmbiguousMatch, matches))
		}

	default:
		return 0, selectorError(sel, fmt.Errorf("%w: unknown anchor %d", ErrInvalidSpec, sel.Anchor))
	}

	shifted := line + sel.Offset
	if shifted < 1 || shifted > total {
		return 0, selectorError(sel, fmt.Errorf("%w: line %d%+d is outside 1..%d", ErrLineOutOfRange, line, sel.Offset, total))
	}
	return shifted, nil
}

func lineLiteral(sel Selector) string {
	if sel.FromEnd {
		return "-" + strconv.Itoa(sel.Line)
	}
	return strconv.Itoa(sel.Line)
}

func selectorError(sel Selector, err error) *SelectionError {
	return &SelectionError{Spec: sel.String(), Err: err}
}
