package lineselect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// selectorNode is the grammar of a single selector token.
type selectorNode struct {
	Line    *lineNode   `(  @@`
	Pattern *string     ` | @Pattern`
	Last    bool        ` | @Dollar )`
	Offset  *offsetNode `@@?`
}

type lineNode struct {
	Negative bool `@Minus?`
	Number   int  `@Int`
}

type offsetNode struct {
	Sign   string `@( Plus | Minus )`
	Amount *int   `@Int?`
}

// selectorLexer tokenizes one selector. Whitespace is not a token: the
// selection is split into selectors before lexing, so "-15 -13" cannot be
// read as "-15" followed by an offset of -13.
var selectorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Pattern", Pattern: `/(?:\\.|[^/\\])+/`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Plus", Pattern: `\+`},
	{Name: "Minus", Pattern: `-`},
	{Name: "Dollar", Pattern: `\$`},
})

var selectorParser = participle.MustBuild[selectorNode](
	participle.Lexer(selectorLexer),
)

// Parse parses a line selection made of zero, one or two selectors.
func Parse(text string) (Spec, error) {
	text = strings.TrimSpace(text)
	fields := strings.Fields(text)

	switch len(fields) {
	case 0:
		return Spec{Kind: Whole}, nil

	case 1:
		sel, err := ParseSelector(fields[0])
		if err != nil {
			return Spec{}, err
		}
		return Spec{Kind: Single, Start: sel, Text: text}, nil

	case 2:
		start, err := ParseSelector(fields[0])
		if err != nil {
			return Spec{}, err
		}
		end, err := ParseSelector(fields[1])
		if err != nil {
			return Spec{}, err
		}
		return Spec{Kind: Range, Start: start, End: end, Text: text}, nil
	}

	return Spec{}, &SelectionError{
		Spec: text,
		Err:  fmt.Errorf("%w: expected at most 2 selectors, got %d", ErrInvalidSpec, len(fields)),
	}
}

// ParseSelector parses one selector token such as "-1", "/main/+2" or "$".
// Patterns are compiled here so that a bad expression fails before any file
// is read.
func ParseSelector(token string) (Selector, error) {
	node, err := selectorParser.ParseString("", token)
	if err != nil {
		return Selector{}, &SelectionError{Spec: token, Err: fmt.Errorf("%w: %v", ErrInvalidSpec, err)}
	}

	sel := Selector{Text: token}
	switch {
	case node.Line != nil:
		if node.Line.Number == 0 {
			return Selector{}, &SelectionError{Spec: token, Err: fmt.Errorf("%w: line numbers start at 1", ErrLineOutOfRange)}
		}
		sel.Anchor = AbsoluteLine
		sel.Line = node.Line.Number
		sel.FromEnd = node.Line.Negative

	case node.Pattern != nil:
		pattern := strings.TrimSuffix(strings.TrimPrefix(*node.Pattern, "/"), "/")
		re, err := regexp.Compile(pattern)
		if err != nil {
			return Selector{}, &SelectionError{Spec: token, Err: fmt.Errorf("%w: %v", ErrInvalidPattern, err)}
		}
		sel.Anchor = PatternAnchor
		sel.Pattern = pattern
		sel.re = re

	case node.Last:
		sel.Anchor = LastLine
	}

	if node.Offset != nil {
		amount := 1
		if node.Offset.Amount != nil {
			amount = *node.Offset.Amount
		}
		if node.Offset.Sign == "-" {
			amount = -amount
		}
		sel.Offset = amount
	}

	return sel, nil
}
