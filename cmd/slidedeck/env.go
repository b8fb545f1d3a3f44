package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-slidedeck/internal/config"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string

	// MaxProcs adjusts GOMAXPROCS before a build; nil leaves it alone.
	MaxProcs func(printf func(string, ...any))
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Getenv:   os.Getenv,
		Environ:  os.Environ,
		MaxProcs: setMaxProcs,
	}
}

const envPrefix = "SLIDEDECK_"

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath   string        // SLIDEDECK_CONFIG
	Theme        string        // SLIDEDECK_THEME
	Destination  string        // SLIDEDECK_DESTINATION
	IncludePaths []string      // SLIDEDECK_INCLUDE_PATH, list separated like PATH
	Timeout      time.Duration // SLIDEDECK_TIMEOUT
	Workers      int           // SLIDEDECK_WORKERS
}

// knownEnvVars lists the recognized SLIDEDECK_* variables.
var knownEnvVars = map[string]bool{
	"SLIDEDECK_CONFIG":       true,
	"SLIDEDECK_THEME":        true,
	"SLIDEDECK_DESTINATION":  true,
	"SLIDEDECK_INCLUDE_PATH": true,
	"SLIDEDECK_TIMEOUT":      true,
	"SLIDEDECK_WORKERS":      true,
}

// loadEnvConfig reads the SLIDEDECK_* variables. Unparsable numbers and
// durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:  getenv("SLIDEDECK_CONFIG"),
		Theme:       getenv("SLIDEDECK_THEME"),
		Destination: getenv("SLIDEDECK_DESTINATION"),
	}

	if list := getenv("SLIDEDECK_INCLUDE_PATH"); list != "" {
		for _, p := range filepath.SplitList(list) {
			if p != "" {
				cfg.IncludePaths = append(cfg.IncludePaths, p)
			}
		}
	}
	if timeout := getenv("SLIDEDECK_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if workers := getenv("SLIDEDECK_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars reports SLIDEDECK_* variables nobody reads.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig fills config values the file left at their defaults.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	def := config.DefaultConfig()

	if env.Theme != "" && cfg.Theme == def.Theme {
		cfg.Theme = env.Theme
	}
	if env.Destination != "" && cfg.Destination == def.Destination {
		cfg.Destination = env.Destination
	}
	if len(env.IncludePaths) > 0 {
		cfg.Include.Paths = append(cfg.Include.Paths, env.IncludePaths...)
	}
	if env.Timeout > 0 && cfg.Timeout == "" {
		cfg.Timeout = env.Timeout.String()
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
}
