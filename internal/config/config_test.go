package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Destination != "presentation.html" {
		t.Errorf("Destination = %q, want presentation.html", cfg.Destination)
	}
	if cfg.Theme != "default" {
		t.Errorf("Theme = %q, want default", cfg.Theme)
	}
	if !cfg.PresenterNotesEnabled() {
		t.Error("presenter notes should be enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit is invalid", "12345678901", 10, true},
		{"multibyte counted in bytes", "ééééé", 9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("field", tt.value, tt.maxLength)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFieldLength() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrFieldTooLong) {
				t.Errorf("error should wrap ErrFieldTooLong, got %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"pdf destination", func(c *Config) { c.Destination = "deck.PDF" }, nil},
		{"empty destination", func(c *Config) { c.Destination = "" }, nil},
		{"bad destination", func(c *Config) { c.Destination = "deck.txt" }, ErrInvalidDestination},
		{"inline line numbers", func(c *Config) { c.LineNumbers = "Inline" }, nil},
		{"bad line numbers", func(c *Config) { c.LineNumbers = "yes" }, ErrInvalidLineNumbers},
		{"tab width at max", func(c *Config) { c.Include.ExpandTabs = MaxExpandTabs }, nil},
		{"negative tab width", func(c *Config) { c.Include.ExpandTabs = -1 }, ErrInvalidExpandTabs},
		{"tab width over max", func(c *Config) { c.Include.ExpandTabs = MaxExpandTabs + 1 }, ErrInvalidExpandTabs},
		{"negative workers", func(c *Config) { c.Workers = -1 }, ErrInvalidWorkers},
		{"too many workers", func(c *Config) { c.Workers = MaxWorkers + 1 }, ErrInvalidWorkers},
		{"timeout", func(c *Config) { c.Timeout = "90s" }, nil},
		{"bad timeout", func(c *Config) { c.Timeout = "soon" }, ErrInvalidTimeout},
		{"negative timeout", func(c *Config) { c.Timeout = "-1s" }, ErrInvalidTimeout},
		{"blank extension", func(c *Config) { c.Extensions = []string{"typographer", " "} }, ErrInvalidExtensionSet},
		{"long source", func(c *Config) { c.Source = strings.Repeat("a", MaxPathLength+1) }, ErrFieldTooLong},
		{"long encoding", func(c *Config) { c.Encoding = strings.Repeat("a", MaxEncodingLength+1) }, ErrFieldTooLong},
		{"long include path", func(c *Config) { c.Include.Paths = []string{strings.Repeat("a", MaxPathLength+1)} }, ErrFieldTooLong},
		{"long css url", func(c *Config) { c.CSS = []string{strings.Repeat("a", MaxURLLength+1)} }, ErrFieldTooLong},
		{"long js url", func(c *Config) { c.JS = []string{strings.Repeat("a", MaxURLLength+1)} }, ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_TimeoutDuration(t *testing.T) {
	t.Parallel()

	cfg := &Config{Timeout: "2m"}
	d, err := cfg.TimeoutDuration()
	if err != nil || d != 2*time.Minute {
		t.Errorf("TimeoutDuration() = %v, %v; want 2m", d, err)
	}

	if d, err := (&Config{}).TimeoutDuration(); err != nil || d != 0 {
		t.Errorf("empty TimeoutDuration() = %v, %v; want 0", d, err)
	}
}

func TestConfig_PresenterNotesEnabled(t *testing.T) {
	t.Parallel()

	off, on := false, true
	if (&Config{PresenterNotes: &off}).PresenterNotesEnabled() {
		t.Error("explicit false should disable presenter notes")
	}
	if !(&Config{PresenterNotes: &on}).PresenterNotesEnabled() {
		t.Error("explicit true should enable presenter notes")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("full file with paths relative to the file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "deck.yaml")
		content := `source: slides.md
destination: out/deck.pdf
theme: ./themes/light
embed: true
lineNumbers: table
presenterNotes: false
extensions:
  - typographer
encoding: koi8-r
include:
  paths:
    - src
    - /abs/include
  expandTabs: 4
css:
  - custom.css
  - https://example.com/a.css
js:
  - extra.js
workers: 2
timeout: 45s
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		checks := []struct {
			field, got, want string
		}{
			{"source", cfg.Source, filepath.Join(dir, "slides.md")},
			{"destination", cfg.Destination, filepath.Join(dir, "out/deck.pdf")},
			{"theme", cfg.Theme, filepath.Join(dir, "themes/light")},
			{"lineNumbers", cfg.LineNumbers, "table"},
			{"encoding", cfg.Encoding, "koi8-r"},
			{"include.paths[0]", cfg.Include.Paths[0], filepath.Join(dir, "src")},
			{"include.paths[1]", cfg.Include.Paths[1], "/abs/include"},
			{"css[0]", cfg.CSS[0], filepath.Join(dir, "custom.css")},
			{"css[1]", cfg.CSS[1], "https://example.com/a.css"},
			{"js[0]", cfg.JS[0], filepath.Join(dir, "extra.js")},
		}
		for _, c := range checks {
			if c.got != c.want {
				t.Errorf("%s = %q, want %q", c.field, c.got, c.want)
			}
		}
		if !cfg.Embed || cfg.PresenterNotesEnabled() || cfg.Include.ExpandTabs != 4 || cfg.Workers != 2 {
			t.Errorf("unexpected config: %+v", cfg)
		}
	})

	t.Run("missing fields keep defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "min.yaml")
		if err := os.WriteFile(path, []byte("embed: true\n"), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Theme != "default" || cfg.LineNumbers != "no" {
			t.Errorf("defaults lost: %+v", cfg)
		}
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		write := func(name, content string) string {
			p := filepath.Join(dir, name)
			if err := os.WriteFile(p, []byte(content), 0644); err != nil {
				t.Fatal(err)
			}
			return p
		}

		tests := []struct {
			name    string
			arg     string
			wantErr error
		}{
			{"empty name", "", ErrEmptyConfigName},
			{"missing file", filepath.Join(dir, "nope.yaml"), ErrConfigNotFound},
			{"missing name", "no-such-config-name-xyz", ErrConfigNotFound},
			{"unknown field", write("unknown.yaml", "sauce: slides.md\n"), ErrConfigParse},
			{"invalid value", write("invalid.yaml", "lineNumbers: sometimes\n"), ErrInvalidLineNumbers},
		}
		for _, tt := range tests {
			if _, err := LoadConfig(tt.arg); !errors.Is(err, tt.wantErr) {
				t.Errorf("%s: LoadConfig(%q) error = %v, want %v", tt.name, tt.arg, err, tt.wantErr)
			}
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("deck")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least the local files", paths)
	}
	if paths[0] != "deck.yaml" || paths[1] != "deck.yml" {
		t.Errorf("local paths = %v, want deck.yaml then deck.yml", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(filepath.ToSlash(p), "/slidedeck/deck.") {
			t.Errorf("user path %q not under slidedeck/", p)
		}
	}
}
