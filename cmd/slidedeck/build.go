package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	flag "github.com/spf13/pflag"

	slidedeck "github.com/alnah/go-slidedeck"
	"github.com/alnah/go-slidedeck/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoSource = errors.New("no source specified")
	errUsage    = errors.New("usage error")
)

// runBuild generates the presentation described by args, flags, env vars
// and the optional config file.
func runBuild(ctx context.Context, args []string, fs *flag.FlagSet, f *buildFlags, env *Environment) error {
	logger := newLogger(env.Stderr, f.common.quiet, f.common.verbose)

	if env.MaxProcs != nil {
		env.MaxProcs(func(format string, a ...any) {
			logger.Debug(fmt.Sprintf(format, a...))
		})
	}
	if !f.common.quiet && env.Environ != nil {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	cfg, err := resolveConfig(args, fs, f, env)
	if err != nil {
		return err
	}
	if cfg.Source == "" {
		return ErrNoSource
	}

	opts, err := generatorOptions(cfg, logger)
	if err != nil {
		return err
	}
	if f.output.direct {
		opts = append(opts, slidedeck.WithDirect(env.Stdout))
	}

	g, err := slidedeck.NewGenerator(cfg.Source, opts...)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := g.Execute(ctx); err != nil {
		return err
	}
	logger.Debug("generated", "source", cfg.Source, "elapsed", time.Since(start).Round(time.Millisecond))

	if !f.common.quiet && !f.output.direct {
		fmt.Fprintf(env.Stdout, "Generated %s\n", g.Destination())
	}
	return nil
}

// resolveConfig loads the config file, then layers env vars, flags and the
// positional source on top of it.
func resolveConfig(args []string, fs *flag.FlagSet, f *buildFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)

	name := f.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(fs, f, cfg)
	if len(args) > 0 {
		cfg.Source = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values;
// booleans and numbers only when given explicitly.
func mergeFlags(fs *flag.FlagSet, f *buildFlags, cfg *config.Config) {
	// Output flags
	if f.output.destination != "" {
		cfg.Destination = f.output.destination
	}
	if fs.Changed("embed") {
		cfg.Embed = f.output.embed
	}
	if fs.Changed("relative") {
		cfg.Relative = f.output.relative
	}
	if f.output.timeout != "" {
		cfg.Timeout = f.output.timeout
	}

	// Render flags
	if f.render.theme != "" {
		cfg.Theme = f.render.theme
	}
	if f.render.lineNumbers != "" {
		cfg.LineNumbers = f.render.lineNumbers
	}
	if fs.Changed("no-presenter-notes") {
		enabled := !f.render.noPresenterNotes
		cfg.PresenterNotes = &enabled
	}
	if fs.Changed("math-output") {
		cfg.MathOutput = f.render.mathOutput
	}
	if len(f.render.extensions) > 0 {
		cfg.Extensions = f.render.extensions
	}
	if f.render.encoding != "" {
		cfg.Encoding = f.render.encoding
	}
	if fs.Changed("debug") {
		cfg.Debug = f.render.debug
	}
	if fs.Changed("workers") {
		cfg.Workers = f.render.workers
	}

	// Include flags: directories given on the command line are searched first.
	if len(f.include.paths) > 0 {
		cfg.Include.Paths = append(append([]string{}, f.include.paths...), cfg.Include.Paths...)
	}
	if fs.Changed("expand-tabs") {
		cfg.Include.ExpandTabs = f.include.expandTabs
	}

	// Asset flags add to the configured ones.
	cfg.CSS = append(cfg.CSS, f.assets.css...)
	cfg.JS = append(cfg.JS, f.assets.js...)
}

// generatorOptions translates a validated config into generator options.
func generatorOptions(cfg *config.Config, logger *slog.Logger) ([]slidedeck.Option, error) {
	opts := []slidedeck.Option{
		slidedeck.WithDestination(cfg.Destination),
		slidedeck.WithTheme(cfg.Theme),
		slidedeck.WithEmbed(cfg.Embed),
		slidedeck.WithRelative(cfg.Relative),
		slidedeck.WithLineNumbers(cfg.LineNumbers),
		slidedeck.WithPresenterNotes(cfg.PresenterNotesEnabled()),
		slidedeck.WithMathOutput(cfg.MathOutput),
		slidedeck.WithEncoding(cfg.Encoding),
		slidedeck.WithIncludePaths(cfg.Include.Paths...),
		slidedeck.WithExpandTabs(cfg.Include.ExpandTabs),
		slidedeck.WithDebug(cfg.Debug),
		slidedeck.WithWorkers(cfg.Workers),
		slidedeck.WithLogger(logger),
		slidedeck.WithUserCSS(cfg.CSS...),
		slidedeck.WithUserJS(cfg.JS...),
	}
	if len(cfg.Extensions) > 0 {
		opts = append(opts, slidedeck.WithExtensions(cfg.Extensions...))
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, slidedeck.WithTimeout(timeout))
	}

	return opts, nil
}

// newLogger returns a text logger on w: warnings by default, everything
// with verbose, errors only with quiet.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(hintHandler{slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})})
}
