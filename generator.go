package slidedeck

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-slidedeck/internal/assets"
	"github.com/alnah/go-slidedeck/internal/fileslice"
	"github.com/alnah/go-slidedeck/internal/fileutil"
	"github.com/alnah/go-slidedeck/internal/highlight"
	"github.com/alnah/go-slidedeck/internal/macro"
	"github.com/alnah/go-slidedeck/internal/markup"
	"github.com/alnah/go-slidedeck/internal/toc"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Compile-time interface implementation checks.
var (
	_ markup.Converter      = (*markup.GoldmarkConverter)(nil)
	_ highlight.Highlighter = (*highlight.Chroma)(nil)
	_ macro.Macro           = (*macro.IncludeMacro)(nil)
	_ macro.Macro           = (*macro.CodeHighlightingMacro)(nil)
	_ macro.Macro           = (*macro.EmbedImagesMacro)(nil)
	_ macro.Macro           = (*macro.FixImagePathsMacro)(nil)
	_ macro.Macro           = macro.NotesMacro{}
	_ macro.Macro           = macro.FxMacro{}
)

// Generator turns one source document into a presentation.
// Create with NewGenerator, then call Render or Execute.
//
// Slides are processed in parallel: macros added with RegisterMacro or
// WithMacros must be safe for concurrent use unless WithWorkers(1) is set.
type Generator struct {
	cfg         generatorConfig
	source      string // absolute
	sourceDir   string
	relSource   string // as shown in debug output
	destination string // absolute, empty in direct mode
	logger      *slog.Logger

	highlighter *highlight.Chroma
	converter   markup.Converter
	pipeline    *macro.Pipeline

	tmpl     *template.Template
	themeCSS []templateCSS
	themeJS  []templateJS
	userCSS  []templateCSS
	userJS   []templateJS

	pdf pdfPrinter // nil until a PDF is printed, injected by tests
}

// NewGenerator creates a Generator for the markdown file at source.
// A missing source is reported as ErrSourceNotFound; invalid options,
// themes and user assets are reported before any rendering starts.
func NewGenerator(source string, opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg: generatorConfig{
			destination:    DefaultDestination,
			lineNumbers:    LineNumbersNone,
			presenterNotes: true,
			timeout:        defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = slog.New(slog.DiscardHandler)
	}

	if err := g.resolveSource(source); err != nil {
		return nil, err
	}
	if err := g.resolveDestination(); err != nil {
		return nil, err
	}
	if g.cfg.expandTabs < 0 || g.cfg.expandTabs > fileslice.MaxTabWidth {
		return nil, fmt.Errorf("%w: %d", ErrInvalidExpandTabs, g.cfg.expandTabs)
	}

	mode, err := highlight.ParseLineNumbers(g.cfg.lineNumbers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLineNumbers, err)
	}
	g.highlighter = highlight.New(highlight.WithLineNumbers(mode))

	g.converter, err = markup.NewGoldmarkConverter(
		markup.WithExtensions(g.cfg.extensions...),
		markup.WithFormatOptions(g.highlighter.FormatOptions()...),
	)
	if err != nil {
		return nil, err
	}

	if err := g.loadTheme(); err != nil {
		return nil, err
	}

	if g.cfg.macros != nil {
		g.pipeline = macro.NewPipeline(g.cfg.macros...)
	} else {
		g.pipeline = macro.NewPipeline(g.defaultMacros()...)
	}

	if err := g.AddUserCSS(g.cfg.userCSS...); err != nil {
		return nil, err
	}
	if err := g.AddUserJS(g.cfg.userJS...); err != nil {
		return nil, err
	}

	return g, nil
}

// resolveSource checks that source is a readable markdown file.
func (g *Generator) resolveSource(source string) error {
	if source == "" {
		return fmt.Errorf("%w: no source given", ErrSourceNotFound)
	}

	info, err := os.Stat(source)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, source)
	}

	if _, err := markup.FormatFor(source); err != nil {
		return err
	}

	abs, err := filepath.Abs(source)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceNotFound, err)
	}
	g.source = abs
	g.sourceDir = filepath.Dir(abs)
	g.relSource = source
	if wd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(wd, abs); err == nil {
			g.relSource = rel
		}
	}
	return nil
}

// resolveDestination validates the destination extension. Direct mode
// ignores the destination.
func (g *Generator) resolveDestination() error {
	if g.cfg.direct != nil {
		return nil
	}
	if g.cfg.destination == "" {
		g.cfg.destination = DefaultDestination
	}

	switch strings.ToLower(filepath.Ext(g.cfg.destination)) {
	case ExtHTML:
	case ExtPDF:
		if g.cfg.relative {
			// The PDF is printed from a temporary copy of the HTML.
			g.logger.Warn("relative image paths are not supported for PDF output, using file:// URLs")
			g.cfg.relative = false
		}
	default:
		return fmt.Errorf("%w: %q must end in %s or %s", ErrInvalidDestination, g.cfg.destination, ExtHTML, ExtPDF)
	}

	abs, err := filepath.Abs(g.cfg.destination)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDestination, err)
	}
	g.destination = abs
	return nil
}

// loadTheme resolves the theme and parses its template.
func (g *Generator) loadTheme() error {
	resolver, name, err := assets.ResolveTheme(g.cfg.theme)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrThemeLoad, err)
	}
	theme, err := resolver.LoadTheme(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrThemeLoad, err)
	}

	tmpl, err := template.New(theme.Name).Parse(theme.Template)
	if err != nil {
		return fmt.Errorf("%w: parsing %s/base.html: %v", ErrTemplateRender, theme.Name, err)
	}

	g.tmpl = tmpl
	g.themeCSS = g.themeCSS[:0]
	for _, f := range theme.CSS {
		media := "all"
		if strings.HasPrefix(f.Name, "print") {
			media = "print"
		}
		g.themeCSS = append(g.themeCSS, templateCSS{Media: media, Contents: template.CSS(f.Contents)}) // #nosec G203 -- theme files are trusted
	}
	g.themeJS = g.themeJS[:0]
	for _, f := range theme.JS {
		g.themeJS = append(g.themeJS, templateJS{Contents: template.JS(f.Contents)}) // #nosec G203 -- theme files are trusted
	}
	return nil
}

// defaultMacros returns the built-in chain in processing order.
func (g *Generator) defaultMacros() []macro.Macro {
	destDir := "."
	if g.destination != "" {
		destDir = filepath.Dir(g.destination)
	}

	return []macro.Macro{
		macro.NewCodeHighlightingMacro(g.highlighter),
		macro.NewEmbedImagesMacro(g.cfg.embed),
		macro.NewFixImagePathsMacro(macro.FixImagePathsOptions{
			Relative: g.cfg.relative,
			DestDir:  destDir,
		}),
		macro.FxMacro{},
		macro.NotesMacro{},
		macro.NewIncludeMacro(macro.IncludeOptions{
			IncludePaths: g.cfg.includePaths,
			ExpandTabs:   g.cfg.expandTabs,
			Highlighter:  g.highlighter,
		}),
	}
}

// RegisterMacro appends a macro to the chain. v must be a macro.Macro or a
// func(content, baseDir string) (string, []string, error); anything else is
// rejected with macro.ErrNotAMacro.
func (g *Generator) RegisterMacro(v any) error {
	return g.pipeline.Register(v)
}

// Macros returns the macro chain in processing order.
func (g *Generator) Macros() []macro.Macro {
	return g.pipeline.Macros()
}

// AddUserCSS adds stylesheets after the theme's. Local files are inlined,
// URLs are linked.
func (g *Generator) AddUserCSS(paths ...string) error {
	for _, p := range paths {
		url, contents, err := loadUserAsset(p)
		if err != nil {
			return err
		}
		g.userCSS = append(g.userCSS, templateCSS{URL: url, Contents: template.CSS(contents)}) // #nosec G203 -- user-provided stylesheet
	}
	return nil
}

// AddUserJS adds scripts after the theme's. Local files are inlined, URLs
// are linked.
func (g *Generator) AddUserJS(paths ...string) error {
	for _, p := range paths {
		url, contents, err := loadUserAsset(p)
		if err != nil {
			return err
		}
		g.userJS = append(g.userJS, templateJS{URL: url, Contents: template.JS(contents)}) // #nosec G203 -- user-provided script
	}
	return nil
}

func loadUserAsset(path string) (url, contents string, err error) {
	if fileutil.IsURL(path) {
		return path, "", nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUserAssetRead, err)
	}
	return "", string(data), nil
}

// Render converts the source, runs the macro chain on every slide and
// renders the theme template.
//
// A macro warning leaves the slide with its unprocessed content and no
// macro classes; it is logged and rendering continues. Any other macro
// error aborts the render.
func (g *Generator) Render(ctx context.Context) (*Result, error) {
	data, err := os.ReadFile(g.source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}

	text, err := markup.Decode(data, g.cfg.encoding)
	if err != nil {
		return nil, err
	}

	document, err := g.converter.ToHTML(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	chunks := splitSlides(document)
	g.logger.Debug("converted source", "source", g.relSource, "slides", len(chunks))

	jobs, err := processSlides(ctx, chunks, g.cfg.workers, g.processSlide)
	if err != nil {
		return nil, err
	}

	slides := make([]Slide, len(jobs))
	builder := toc.NewBuilder()
	for i, job := range jobs {
		if job.err != nil {
			if !macro.IsWarning(job.err) {
				return nil, fmt.Errorf("slide %d: %w", i+1, job.err)
			}
			g.logger.Warn("slide left unprocessed", "slide", i+1, "error", job.err)
		}
		slides[i] = job.slide
		if s := job.slide; s.Title != "" {
			builder.Add(s.Title, s.Level, s.Number)
		}
	}

	entries := toTOCEntries(builder.Entries())

	html, err := g.renderTemplate(slides, entries)
	if err != nil {
		return nil, err
	}

	return &Result{HTML: html, Slides: slides, TOC: entries}, nil
}

// processSlide splits one chunk into slide variables and runs the macros.
func (g *Generator) processSlide(i int, chunk string) slideJob {
	s := slideVars(chunk, g.cfg.presenterNotes)
	s.Number = i + 1
	if g.cfg.debug {
		s.Source = map[string]string{
			"rel_path": g.relSource,
			"abs_path": g.source,
		}
	}

	content, classes, err := g.pipeline.Process(s.Content, g.sourceDir)
	if err != nil {
		return slideJob{slide: s, err: err}
	}
	s.Content = content
	s.Classes = classes
	return slideJob{slide: s}
}

// renderTemplate executes the theme's base.html.
func (g *Generator) renderTemplate(slides []Slide, entries []TOCEntry) ([]byte, error) {
	highlightCSS, err := g.highlighter.CSS()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	vars := templateVars{
		HeadTitle:    headTitle(slides),
		Slides:       make([]templateSlide, len(slides)),
		NumSlides:    len(slides),
		TOC:          entries,
		CSS:          g.themeCSS,
		JS:           g.themeJS,
		UserCSS:      g.userCSS,
		UserJS:       g.userJS,
		HighlightCSS: template.CSS(highlightCSS), // #nosec G203 -- generated by chroma
		Embed:        g.cfg.embed,
		MathOutput:   g.cfg.mathOutput,
	}
	for i, s := range slides {
		vars.Slides[i] = templateSlide{
			Number:         s.Number,
			Header:         template.HTML(s.Header), // #nosec G203 -- converter output
			Title:          s.Title,
			Level:          s.Level,
			Content:        template.HTML(s.Content),
			PresenterNotes: template.HTML(s.PresenterNotes),
			Classes:        s.Classes,
			Source:         s.Source,
		}
	}

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, vars); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.Bytes(), nil
}

// headTitle is the first slide title, used as the page title.
func headTitle(slides []Slide) string {
	for _, s := range slides {
		if s.Title != "" {
			return s.Title
		}
	}
	return ""
}

// Execute renders the presentation and writes it to the destination: HTML
// as is, PDF through headless Chrome, or HTML to the direct writer.
func (g *Generator) Execute(ctx context.Context) error {
	res, err := g.Render(ctx)
	if err != nil {
		return err
	}

	if g.cfg.direct != nil {
		if _, err := g.cfg.direct.Write(res.HTML); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}

	out := res.HTML
	if strings.EqualFold(filepath.Ext(g.destination), ExtPDF) {
		out, err = g.printPDF(ctx, res.HTML)
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(g.destination), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err)
	}
	// #nosec G306 -- presentations are meant to be readable
	if err := os.WriteFile(g.destination, out, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	g.logger.Info("presentation written", "destination", g.destination, "slides", len(res.Slides))
	return nil
}

// printPDF prints HTML with the injected printer or a fresh browser.
func (g *Generator) printPDF(ctx context.Context, html []byte) ([]byte, error) {
	printer := g.pdf
	if printer == nil {
		rp := newRodPrinter(g.cfg.timeout)
		defer func() {
			if err := rp.Close(); err != nil {
				g.logger.Debug("closing browser", "error", err)
			}
		}()
		printer = rp
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.timeout)
	defer cancel()

	pdf, err := printer.ToPDF(ctx, string(html))
	if err != nil {
		return nil, fmt.Errorf("printing PDF: %w", err)
	}
	return pdf, nil
}

// Destination returns the absolute output path, empty in direct mode.
func (g *Generator) Destination() string {
	return g.destination
}
