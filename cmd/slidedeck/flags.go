package main

import (
	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags holds destination flags.
type outputFlags struct {
	destination string
	direct      bool
	embed       bool
	relative    bool
	timeout     string
}

// renderFlags holds flags changing how slides are rendered.
type renderFlags struct {
	theme            string
	lineNumbers      string
	noPresenterNotes bool
	mathOutput       bool
	extensions       []string
	encoding         string
	debug            bool
	workers          int
}

// includeFlags holds .code directive flags.
type includeFlags struct {
	paths      []string
	expandTabs int
}

// assetFlags holds user stylesheets and scripts.
type assetFlags struct {
	css []string
	js  []string
}

// buildFlags holds all flags for building a presentation.
type buildFlags struct {
	common  commonFlags
	output  outputFlags
	render  renderFlags
	include includeFlags
	assets  assetFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
}

// addOutputFlags adds destination flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.destination, "destination", "d", "", "output file, .html or .pdf (default \"presentation.html\")")
	fs.BoolVarP(&f.direct, "direct-output", "o", false, "write HTML to stdout")
	fs.BoolVarP(&f.embed, "embed", "i", false, "embed images as data URIs")
	fs.BoolVarP(&f.relative, "relative", "r", false, "make image paths relative to the destination")
	fs.StringVar(&f.timeout, "timeout", "", "PDF generation timeout (e.g., 30s, 2m)")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.theme, "theme", "t", "", "theme name or directory path")
	fs.StringVarP(&f.lineNumbers, "linenos", "l", "", "code line numbers: no, inline, table")
	fs.BoolVarP(&f.noPresenterNotes, "no-presenter-notes", "P", false, "drop presenter notes")
	fs.BoolVarP(&f.mathOutput, "math-output", "m", false, "load MathJax for TeX math")
	fs.StringSliceVarP(&f.extensions, "extensions", "x", nil, "markdown extensions, comma separated")
	fs.StringVarP(&f.encoding, "encoding", "e", "", "source encoding (default utf-8)")
	fs.BoolVarP(&f.debug, "debug", "b", false, "expose source paths to the template")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel slide workers (0 = auto)")
}

// addIncludeFlags adds .code directive flags to a FlagSet.
func addIncludeFlags(fs *flag.FlagSet, f *includeFlags) {
	fs.StringArrayVarP(&f.paths, "include-path", "I", nil, "extra directory searched by .code (repeatable)")
	fs.IntVar(&f.expandTabs, "expand-tabs", 0, "replace tabs in included files with N spaces")
}

// addAssetFlags adds user asset flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringArrayVar(&f.css, "css", nil, "extra stylesheet path or URL (repeatable)")
	fs.StringArrayVar(&f.js, "js", nil, "extra script path or URL (repeatable)")
}

// addBuildFlags registers every build flag group on fs.
func addBuildFlags(fs *flag.FlagSet, f *buildFlags) {
	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addRenderFlags(fs, &f.render)
	addIncludeFlags(fs, &f.include)
	addAssetFlags(fs, &f.assets)
}
