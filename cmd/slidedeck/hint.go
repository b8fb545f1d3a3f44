package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	slidedeck "github.com/alnah/go-slidedeck"
	"github.com/alnah/go-slidedeck/internal/assets"
	"github.com/alnah/go-slidedeck/internal/config"
	"github.com/alnah/go-slidedeck/internal/fileslice"
	"github.com/alnah/go-slidedeck/internal/hints"
	"github.com/alnah/go-slidedeck/internal/markup"
)

// hintFor returns an actionable hint for err, or "" when none applies.
// configName is the --config value, used to list the searched locations.
func hintFor(err error, configName string) string {
	switch {
	case errors.Is(err, slidedeck.ErrBrowserConnect),
		errors.Is(err, slidedeck.ErrPageCreate),
		errors.Is(err, slidedeck.ErrPageLoad):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(configName))
	case errors.Is(err, assets.ErrThemeNotFound):
		return hints.ForThemeNotFound(assets.NewEmbeddedLoader().Names())
	case errors.Is(err, markup.ErrUnknownFormat),
		errors.Is(err, markup.ErrUnsupportedFormat):
		return hints.ForUnsupportedFormat()
	case errors.Is(err, markup.ErrDecode),
		errors.Is(err, markup.ErrUnknownEncoding):
		return hints.ForEncoding()
	case errors.Is(err, slidedeck.ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// printError writes err and its hint to w.
func printError(w io.Writer, err error, configName string) {
	fmt.Fprintf(w, "error: %v%s\n", err, hintFor(err, configName))
}

// hintHandler adds a hint attribute to log records whose error is a
// missing include file.
type hintHandler struct {
	slog.Handler
}

func (h hintHandler) Handle(ctx context.Context, r slog.Record) error {
	var hint string
	r.Attrs(func(a slog.Attr) bool {
		if err, ok := a.Value.Any().(error); ok && errors.Is(err, fileslice.ErrFileNotFound) {
			hint = hints.ForIncludeNotFound()
			return false
		}
		return true
	})
	if hint != "" {
		r = r.Clone()
		r.AddAttrs(slog.String("hint", trimHint(hint)))
	}
	return h.Handler.Handle(ctx, r)
}

func (h hintHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return hintHandler{h.Handler.WithAttrs(attrs)}
}

func (h hintHandler) WithGroup(name string) slog.Handler {
	return hintHandler{h.Handler.WithGroup(name)}
}

// trimHint drops the "\n  hint: " prefix used in error messages.
func trimHint(hint string) string {
	return strings.TrimPrefix(hint, "\n  hint: ")
}
