package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-slidedeck/internal/fileslice"
	"github.com/alnah/go-slidedeck/internal/fileutil"
	"github.com/alnah/go-slidedeck/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound      = errors.New("config file not found")
	ErrEmptyConfigName     = errors.New("config name cannot be empty")
	ErrConfigParse         = errors.New("failed to parse config")
	ErrFieldTooLong        = errors.New("field exceeds maximum length")
	ErrInvalidLineNumbers  = errors.New("invalid line numbers mode")
	ErrInvalidExpandTabs   = errors.New("invalid tab width")
	ErrInvalidDestination  = errors.New("invalid destination")
	ErrInvalidWorkers      = errors.New("invalid worker count")
	ErrInvalidTimeout      = errors.New("invalid timeout")
	ErrInvalidExtensionSet = errors.New("invalid extension list")
)

// Field length limits.
const (
	MaxPathLength      = 4096 // source, destination, theme, include paths
	MaxURLLength       = 2048 // user CSS / JS
	MaxEncodingLength  = 40   // "koi8-r", "windows-1252"
	MaxExtensionLength = 40   // "definition_list"
	MaxExpandTabs      = fileslice.MaxTabWidth
	MaxWorkers         = 64
)

// Config holds all configuration for deck generation.
type Config struct {
	Source         string        `yaml:"source"`
	Destination    string        `yaml:"destination"`
	Theme          string        `yaml:"theme"`
	Embed          bool          `yaml:"embed"`
	Relative       bool          `yaml:"relative"`
	LineNumbers    string        `yaml:"lineNumbers"`    // "no", "inline", "table"
	PresenterNotes *bool         `yaml:"presenterNotes"` // nil = enabled
	MathOutput     bool          `yaml:"mathOutput"`
	Extensions     []string      `yaml:"extensions"`
	Encoding       string        `yaml:"encoding"` // empty = UTF-8
	Include        IncludeConfig `yaml:"include"`
	CSS            []string      `yaml:"css"` // user stylesheets, paths or URLs
	JS             []string      `yaml:"js"`  // user scripts, paths or URLs
	Debug          bool          `yaml:"debug"`
	Workers        int           `yaml:"workers"` // 0 = automatic
	Timeout        string        `yaml:"timeout"` // Go duration, e.g. "90s"
}

// IncludeConfig defines options of the .code directive.
type IncludeConfig struct {
	Paths      []string `yaml:"paths"`      // searched after the source directory
	ExpandTabs int      `yaml:"expandTabs"` // 0 keeps tabs
}

// PresenterNotesEnabled reports whether presenter notes are kept.
func (c *Config) PresenterNotesEnabled() bool {
	return c.PresenterNotes == nil || *c.PresenterNotes
}

// TimeoutDuration parses Timeout. An empty value yields zero.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidTimeout, c.Timeout)
	}
	return d, nil
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("source", c.Source, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("destination", c.Destination, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("theme", c.Theme, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("encoding", c.Encoding, MaxEncodingLength); err != nil {
		return err
	}
	for i, p := range c.Include.Paths {
		if err := validateFieldLength(fmt.Sprintf("include.paths[%d]", i), p, MaxPathLength); err != nil {
			return err
		}
	}
	for i, ext := range c.Extensions {
		if err := validateFieldLength(fmt.Sprintf("extensions[%d]", i), ext, MaxExtensionLength); err != nil {
			return err
		}
		if strings.TrimSpace(ext) == "" {
			return fmt.Errorf("%w: extensions[%d] is empty", ErrInvalidExtensionSet, i)
		}
	}
	for i, css := range c.CSS {
		if err := validateFieldLength(fmt.Sprintf("css[%d]", i), css, MaxURLLength); err != nil {
			return err
		}
	}
	for i, js := range c.JS {
		if err := validateFieldLength(fmt.Sprintf("js[%d]", i), js, MaxURLLength); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.LineNumbers) {
	case "", "no", "inline", "table":
	default:
		return fmt.Errorf("%w: %q (must be no, inline, or table)", ErrInvalidLineNumbers, c.LineNumbers)
	}

	if c.Include.ExpandTabs < 0 || c.Include.ExpandTabs > MaxExpandTabs {
		return fmt.Errorf("%w: include.expandTabs must be between 0 and %d, got %d", ErrInvalidExpandTabs, MaxExpandTabs, c.Include.ExpandTabs)
	}

	if c.Destination != "" {
		switch strings.ToLower(filepath.Ext(c.Destination)) {
		case ".html", ".pdf":
		default:
			return fmt.Errorf("%w: %q must end in .html or .pdf", ErrInvalidDestination, c.Destination)
		}
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: must be between 0 and %d, got %d", ErrInvalidWorkers, MaxWorkers, c.Workers)
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Destination: "presentation.html",
		Theme:       "default",
		LineNumbers: "no",
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Relative paths in a config file are relative to the file itself.
	cfg.resolvePaths(filepath.Dir(configPath))

	return cfg, nil
}

// resolvePaths makes local paths relative to dir. URLs and absolute paths
// are kept.
func (c *Config) resolvePaths(dir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) || fileutil.IsURL(p) {
			return p
		}
		return filepath.Join(dir, p)
	}

	c.Source = resolve(c.Source)
	c.Destination = resolve(c.Destination)
	if fileutil.IsFilePath(c.Theme) {
		c.Theme = resolve(c.Theme)
	}
	for i := range c.Include.Paths {
		c.Include.Paths[i] = resolve(c.Include.Paths[i])
	}
	for i := range c.CSS {
		c.CSS[i] = resolve(c.CSS[i])
	}
	for i := range c.JS {
		c.JS[i] = resolve(c.JS[i])
	}
}

// SearchPaths lists the files tried for a config name, in lookup order:
// name.yaml and name.yml in the current directory, then in the user config
// directory under slidedeck/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "slidedeck", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
