// Package markup converts presentation sources to HTML fragments.
package markup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Sentinel errors for conversion.
var (
	ErrHTMLConversion   = errors.New("HTML conversion failed")
	ErrUnknownExtension = errors.New("unknown markdown extension")
)

// optionalExtensions are the goldmark extensions enabled by name.
// GFM and footnotes are always on.
var optionalExtensions = map[string]goldmark.Extender{
	"cjk":             extension.CJK,
	"definition_list": extension.DefinitionList,
	"typographer":     extension.Typographer,
}

// Extensions returns the names accepted by WithExtensions, sorted.
func Extensions() []string {
	names := make([]string, 0, len(optionalExtensions))
	for name := range optionalExtensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Converter abstracts source to HTML conversion.
type Converter interface {
	ToHTML(ctx context.Context, source string) (string, error)
}

type converterConfig struct {
	extensions    []string
	formatOptions []chromahtml.Option
}

// ConverterOption configures a GoldmarkConverter.
type ConverterOption func(*converterConfig)

// WithExtensions enables optional extensions by name. Names are
// case-insensitive and "-" is accepted for "_".
func WithExtensions(names ...string) ConverterOption {
	return func(c *converterConfig) {
		c.extensions = append(c.extensions, names...)
	}
}

// WithFormatOptions sets the chroma options used for fenced code blocks
// carrying a language.
func WithFormatOptions(opts ...chromahtml.Option) ConverterOption {
	return func(c *converterConfig) {
		c.formatOptions = append(c.formatOptions, opts...)
	}
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a converter with GFM, footnotes and the
// requested optional extensions.
//
// Output is XHTML so that thematic breaks render as <hr />, the slide
// separator. Raw HTML in the source is kept.
func NewGoldmarkConverter(opts ...ConverterOption) (*GoldmarkConverter, error) {
	cfg := converterConfig{
		formatOptions: []chromahtml.Option{chromahtml.WithClasses(true)},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	exts := []goldmark.Extender{
		extension.GFM,
		extension.Footnote,
		highlighting.NewHighlighting(
			highlighting.WithFormatOptions(cfg.formatOptions...),
		),
	}
	for _, name := range cfg.extensions {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
		if key == "" {
			continue
		}
		ext, ok := optionalExtensions[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownExtension, name, strings.Join(Extensions(), ", "))
		}
		exts = append(exts, ext)
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			html.WithUnsafe(),
		),
	)
	return &GoldmarkConverter{md: md}, nil
}

// ToHTML converts Markdown source to an HTML fragment.
// Goldmark has no context support, so conversion runs in a goroutine and
// the caller stops waiting on cancellation.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(source), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
