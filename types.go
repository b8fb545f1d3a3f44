package slidedeck

import (
	"html/template"
	"io"
	"log/slog"
	"time"

	"github.com/alnah/go-slidedeck/internal/macro"
	"github.com/alnah/go-slidedeck/internal/toc"
)

// Output modes, chosen from the destination extension.
const (
	ExtHTML = ".html"
	ExtPDF  = ".pdf"
)

// Line number modes for highlighted code.
const (
	LineNumbersNone   = "no"
	LineNumbersInline = "inline"
	LineNumbersTable  = "table"
)

// DefaultDestination is written when no destination is configured.
const DefaultDestination = "presentation.html"

// defaultTimeout bounds PDF printing when no timeout is specified.
const defaultTimeout = 30 * time.Second

// Slide is one rendered slide.
type Slide struct {
	Number         int    // 1-based position in the deck
	Header         string // heading markup, empty for untitled slides
	Title          string // heading text without markup
	Level          int    // heading level, 0 when the slide has no heading
	Content        string // HTML after macro processing
	PresenterNotes string
	Classes        []string          // in macro order, not deduplicated
	Source         map[string]string // rel_path / abs_path when debugging
}

// TOCEntry is a table of contents node.
type TOCEntry struct {
	Title    string
	Level    int // depth in the tree, 1 for top-level entries
	Slide    int
	Children []TOCEntry
}

// Result holds a rendered presentation.
type Result struct {
	HTML   []byte
	Slides []Slide
	TOC    []TOCEntry
}

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds the settings applied by options.
type generatorConfig struct {
	destination    string
	direct         io.Writer
	theme          string
	embed          bool
	relative       bool
	lineNumbers    string
	presenterNotes bool
	mathOutput     bool
	extensions     []string
	encoding       string
	includePaths   []string
	expandTabs     int
	debug          bool
	workers        int
	timeout        time.Duration
	userCSS        []string
	userJS         []string
	macros         []macro.Macro
}

// WithDestination sets the output file. The extension selects HTML or PDF.
func WithDestination(path string) Option {
	return func(g *Generator) {
		g.cfg.destination = path
	}
}

// WithDirect makes Execute write the HTML to w instead of a file.
func WithDirect(w io.Writer) Option {
	return func(g *Generator) {
		g.cfg.direct = w
	}
}

// WithTheme selects a built-in theme by name or a theme directory by path.
func WithTheme(nameOrPath string) Option {
	return func(g *Generator) {
		g.cfg.theme = nameOrPath
	}
}

// WithEmbed inlines local images as data URIs.
func WithEmbed(embed bool) Option {
	return func(g *Generator) {
		g.cfg.embed = embed
	}
}

// WithRelative keeps image paths relative to the destination directory
// instead of rewriting them to file:// URLs.
func WithRelative(relative bool) Option {
	return func(g *Generator) {
		g.cfg.relative = relative
	}
}

// WithLineNumbers selects the line number mode of highlighted code:
// "no", "inline" or "table".
func WithLineNumbers(mode string) Option {
	return func(g *Generator) {
		g.cfg.lineNumbers = mode
	}
}

// WithPresenterNotes keeps or drops "Presenter Notes" sections.
func WithPresenterNotes(enabled bool) Option {
	return func(g *Generator) {
		g.cfg.presenterNotes = enabled
	}
}

// WithMathOutput loads MathJax in the generated page.
func WithMathOutput(enabled bool) Option {
	return func(g *Generator) {
		g.cfg.mathOutput = enabled
	}
}

// WithExtensions enables optional markdown extensions by name.
func WithExtensions(names ...string) Option {
	return func(g *Generator) {
		g.cfg.extensions = append(g.cfg.extensions, names...)
	}
}

// WithEncoding sets the character encoding of the source. Empty means UTF-8.
func WithEncoding(name string) Option {
	return func(g *Generator) {
		g.cfg.encoding = name
	}
}

// WithIncludePaths adds directories searched by .code directives after the
// source directory.
func WithIncludePaths(paths ...string) Option {
	return func(g *Generator) {
		g.cfg.includePaths = append(g.cfg.includePaths, paths...)
	}
}

// WithExpandTabs replaces tabs in included code with n spaces. Zero keeps tabs;
// n must not exceed 16.
func WithExpandTabs(n int) Option {
	return func(g *Generator) {
		g.cfg.expandTabs = n
	}
}

// WithDebug fills Slide.Source with the origin of each slide.
func WithDebug(debug bool) Option {
	return func(g *Generator) {
		g.cfg.debug = debug
	}
}

// WithWorkers bounds the number of slides processed in parallel.
// Zero selects a value from GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		g.cfg.workers = n
	}
}

// WithTimeout sets the PDF printing timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("slidedeck: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithLogger sets the logger receiving macro warnings and progress.
// A nil logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithUserCSS adds stylesheets, as local paths or URLs, after the theme's.
func WithUserCSS(paths ...string) Option {
	return func(g *Generator) {
		g.cfg.userCSS = append(g.cfg.userCSS, paths...)
	}
}

// WithUserJS adds scripts, as local paths or URLs, after the theme's.
func WithUserJS(paths ...string) Option {
	return func(g *Generator) {
		g.cfg.userJS = append(g.cfg.userJS, paths...)
	}
}

// WithMacros replaces the default macro chain.
func WithMacros(macros ...macro.Macro) Option {
	return func(g *Generator) {
		g.cfg.macros = append([]macro.Macro{}, macros...)
	}
}

// templateCSS is a stylesheet as seen by the theme template.
type templateCSS struct {
	Media    string
	URL      string
	Contents template.CSS
}

// templateJS is a script as seen by the theme template.
type templateJS struct {
	URL      string
	Contents template.JS
}

// templateSlide is a Slide with its markup marked safe for html/template.
type templateSlide struct {
	Number         int
	Header         template.HTML
	Title          string
	Level          int
	Content        template.HTML
	PresenterNotes template.HTML
	Classes        []string
	Source         map[string]string
}

// templateVars is the data passed to a theme's base.html.
type templateVars struct {
	HeadTitle    string
	Slides       []templateSlide
	NumSlides    int
	TOC          []TOCEntry
	CSS          []templateCSS
	JS           []templateJS
	UserCSS      []templateCSS
	UserJS       []templateJS
	HighlightCSS template.CSS
	Embed        bool
	MathOutput   bool
}

func toTOCEntries(entries []toc.Entry) []TOCEntry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]TOCEntry, len(entries))
	for i, e := range entries {
		out[i] = TOCEntry{
			Title:    e.Title,
			Level:    e.Level,
			Slide:    e.Slide,
			Children: toTOCEntries(e.Children),
		}
	}
	return out
}
