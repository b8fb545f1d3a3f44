// Package slidedeck turns a Markdown document into a single-file HTML slide
// presentation, optionally printed to PDF with headless Chrome.
//
// # Quick Start
//
//	g, err := slidedeck.NewGenerator("slides.md",
//	    slidedeck.WithDestination("presentation.html"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := g.Execute(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Use Render instead of Execute to get the HTML and the slides without
// writing anything.
//
// # Slides
//
// The document is split on thematic breaks (---). The first heading of a
// slide becomes its title, and everything after a "Presenter Notes" heading
// becomes its presenter notes:
//
//	# Title
//
//	Content
//
//	# Presenter Notes
//
//	Only visible in presenter mode.
//
//	---
//
//	# Next slide
//
// # Macros
//
// Each slide's HTML goes through a chain of macros, in order:
//
//  1. Code highlighting: code blocks whose first line is !lang or !!lang
//  2. Image embedding (WithEmbed): local images become data URIs
//  3. Image paths: relative images are rewritten to resolve from the output
//  4. Effects: ".fx: class class" adds classes to the slide
//  5. Notes: ".notes: text" becomes a notes paragraph
//  6. Includes: ".code: file [spec]" and ".coden: file [spec]" insert source
//     files, whole or by line selection ("8", "-1", "$", "/re/+2 /re2/-")
//
// A macro that cannot honor a directive leaves the slide unprocessed and
// logs a warning through the logger given to WithLogger.
//
// # Themes
//
// A theme is a directory holding base.html (an html/template), css/*.css
// and js/*.js. The "default" theme is built in; WithTheme also accepts the
// path of a theme directory.
package slidedeck
