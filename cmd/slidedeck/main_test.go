package main

// Notes:
// - run: we drive the full command tree with injected writers and a fake
//   environment. PDF output needs Chrome and is covered by the root package
//   with a fake printer, so only HTML destinations are built here.
// - MaxProcs is left nil: GOMAXPROCS is process-wide and tests run in
//   parallel.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-slidedeck/internal/config"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(vars map[string]string) *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	environ := make([]string, 0, len(vars))
	for k, v := range vars {
		environ = append(environ, k+"="+v)
	}
	return &testEnv{
		Environment: &Environment{
			Stdout:  stdout,
			Stderr:  stderr,
			Getenv:  getenvFrom(vars),
			Environ: func() []string { return environ },
		},
		stdout: stdout,
		stderr: stderr,
	}
}

const testDeck = `# Opening

.fx: centered

---

## Code

.code: days.py 2

# Presenter Notes

Pause here.
`

// writeDeck writes testDeck and the file it includes into a temp dir and
// returns the source path.
func writeDeck(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"slides.md": testDeck,
		"days.py":   "DAYS = [\n    \"monday\",\n]\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return filepath.Join(dir, "slides.md")
}

// ---------------------------------------------------------------------------
// TestRun - Exit codes and output of the command tree
// ---------------------------------------------------------------------------

func TestRun_HTMLDestination(t *testing.T) {
	t.Parallel()

	source := writeDeck(t)
	dest := filepath.Join(t.TempDir(), "out", "deck.html")
	env := newTestEnv(nil)

	code := run(context.Background(), []string{"-d", dest, source}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("run() = %d, stderr: %s", code, env.stderr.String())
	}

	html, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	for _, want := range []string{"<title>Opening</title>", "centered", "&#34;monday&#34;", "Pause here."} {
		if !strings.Contains(string(html), want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !strings.Contains(env.stdout.String(), "Generated "+dest) {
		t.Errorf("stdout = %q, want the destination", env.stdout.String())
	}
}

func TestRun_DirectOutput(t *testing.T) {
	t.Parallel()

	source := writeDeck(t)
	env := newTestEnv(nil)

	code := run(context.Background(), []string{"--direct-output", "--no-presenter-notes", source}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("run() = %d, stderr: %s", code, env.stderr.String())
	}

	out := env.stdout.String()
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Errorf("stdout should hold the HTML, got %.60q", out)
	}
	if strings.Contains(out, "Pause here.") {
		t.Error("presenter notes kept with --no-presenter-notes")
	}
	if strings.Contains(out, "Generated") {
		t.Error("status line mixed into direct output")
	}
}

func TestRun_QuietSuppressesStatus(t *testing.T) {
	t.Parallel()

	source := writeDeck(t)
	env := newTestEnv(nil)
	dest := filepath.Join(t.TempDir(), "deck.html")

	if code := run(context.Background(), []string{"-q", "-d", dest, source}, env.Environment); code != ExitSuccess {
		t.Fatalf("run() = %d, stderr: %s", code, env.stderr.String())
	}
	if env.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing with --quiet", env.stdout.String())
	}
}

func TestRun_IncludeWarningLogged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "slides.md")
	if err := os.WriteFile(source, []byte("# Broken\n\n.code: missing.py\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	env := newTestEnv(nil)

	code := run(context.Background(), []string{"-o", source}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("run() = %d, want success with a warning; stderr: %s", code, env.stderr.String())
	}
	logged := env.stderr.String()
	if !strings.Contains(logged, "level=WARN") || !strings.Contains(logged, "--include-path") {
		t.Errorf("stderr = %q, want a warning with an include hint", logged)
	}
	if !strings.Contains(env.stdout.String(), ".code: missing.py") {
		t.Error("slide should keep its unprocessed content")
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	source := writeDeck(t)
	rst := strings.TrimSuffix(source, ".md") + ".rst"
	if err := os.WriteFile(rst, []byte("Title\n=====\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		vars     map[string]string
		wantCode int
		wantErr  string
	}{
		{
			name:     "no source",
			args:     []string{},
			wantCode: ExitIO,
			wantErr:  "no source specified",
		},
		{
			name:     "missing source",
			args:     []string{filepath.Join(t.TempDir(), "nope.md")},
			wantCode: ExitIO,
			wantErr:  "source file not found",
		},
		{
			name:     "unsupported format",
			args:     []string{rst},
			wantCode: ExitUsage,
			wantErr:  "unsupported source format",
		},
		{
			name:     "too many arguments",
			args:     []string{source, source},
			wantCode: ExitUsage,
			wantErr:  "expected one source file",
		},
		{
			name:     "unknown flag",
			args:     []string{"--nope", source},
			wantCode: ExitUsage,
			wantErr:  "unknown flag",
		},
		{
			name:     "bad destination",
			args:     []string{"-d", "deck.txt", source},
			wantCode: ExitUsage,
			wantErr:  "invalid destination",
		},
		{
			name:     "bad line numbers",
			args:     []string{"-l", "sideways", source},
			wantCode: ExitUsage,
			wantErr:  "invalid line numbers mode",
		},
		{
			name:     "unknown theme",
			args:     []string{"-t", "nonexistent", source},
			wantCode: ExitUsage,
			wantErr:  "theme not found",
		},
		{
			name:     "config from env not found",
			args:     []string{source},
			vars:     map[string]string{"SLIDEDECK_CONFIG": "no-such-deck-config"},
			wantCode: ExitUsage,
			wantErr:  "config file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(tt.vars)
			code := run(context.Background(), tt.args, env.Environment)
			if code != tt.wantCode {
				t.Errorf("run() = %d, want %d; stderr: %s", code, tt.wantCode, env.stderr.String())
			}
			if !strings.Contains(env.stderr.String(), tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", env.stderr.String(), tt.wantErr)
			}
		})
	}
}

func TestRun_ConfigFile(t *testing.T) {
	t.Parallel()

	source := writeDeck(t)
	dir := filepath.Dir(source)
	cfgPath := filepath.Join(dir, "deck.yaml")
	content := "source: slides.md\ndestination: build/from-config.html\nlineNumbers: inline\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	env := newTestEnv(nil)

	code := run(context.Background(), []string{"-c", cfgPath}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("run() = %d, stderr: %s", code, env.stderr.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "build", "from-config.html")); err != nil {
		t.Errorf("config destination not written: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestSubcommands - version, themes, config
// ---------------------------------------------------------------------------

func TestSubcommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"version", []string{"version"}, []string{"slidedeck " + Version}},
		{"themes", []string{"themes"}, []string{"default\n"}},
		{"config", []string{"config", "-t", "./mytheme", "-w", "3", "-P"}, []string{
			"theme: ./mytheme",
			"workers: 3",
			"presenterNotes: false",
			"destination: presentation.html",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(nil)
			if code := run(context.Background(), tt.args, env.Environment); code != ExitSuccess {
				t.Fatalf("run() = %d, stderr: %s", code, env.stderr.String())
			}
			for _, want := range tt.want {
				if !strings.Contains(env.stdout.String(), want) {
					t.Errorf("stdout = %q, want it to contain %q", env.stdout.String(), want)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI wins over config
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	parse := func(t *testing.T, args ...string) (*flag.FlagSet, *buildFlags) {
		t.Helper()
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		f := &buildFlags{}
		addBuildFlags(fs, f)
		if err := fs.Parse(args); err != nil {
			t.Fatal(err)
		}
		return fs, f
	}

	fileConfig := func() *config.Config {
		cfg := config.DefaultConfig()
		cfg.Destination = "file.html"
		cfg.Embed = true
		cfg.Workers = 4
		cfg.Include.Paths = []string{"file-src"}
		cfg.CSS = []string{"file.css"}
		return cfg
	}

	t.Run("no flags keeps config", func(t *testing.T) {
		t.Parallel()

		fs, f := parse(t)
		cfg := fileConfig()
		mergeFlags(fs, f, cfg)

		if cfg.Destination != "file.html" || !cfg.Embed || cfg.Workers != 4 {
			t.Errorf("config changed without flags: %+v", cfg)
		}
		if !cfg.PresenterNotesEnabled() {
			t.Error("presenter notes disabled without flag")
		}
	})

	t.Run("flags override", func(t *testing.T) {
		t.Parallel()

		fs, f := parse(t,
			"-d", "cli.pdf",
			"--embed=false",
			"-w", "0",
			"-P",
			"-I", "cli-src",
			"--css", "cli.css",
			"-x", "footnotes,typographer",
			"--expand-tabs", "4",
		)
		cfg := fileConfig()
		mergeFlags(fs, f, cfg)

		if cfg.Destination != "cli.pdf" || cfg.Embed || cfg.Workers != 0 {
			t.Errorf("flags not applied: %+v", cfg)
		}
		if cfg.PresenterNotesEnabled() {
			t.Error("-P should disable presenter notes")
		}
		if got := strings.Join(cfg.Include.Paths, ","); got != "cli-src,file-src" {
			t.Errorf("include paths = %s, want CLI first", got)
		}
		if got := strings.Join(cfg.CSS, ","); got != "file.css,cli.css" {
			t.Errorf("css = %s", got)
		}
		if got := strings.Join(cfg.Extensions, ","); got != "footnotes,typographer" {
			t.Errorf("extensions = %s", got)
		}
		if cfg.Include.ExpandTabs != 4 {
			t.Errorf("expandTabs = %d, want 4", cfg.Include.ExpandTabs)
		}
	})
}

// ---------------------------------------------------------------------------
// TestNewLogger - Verbosity levels
// ---------------------------------------------------------------------------

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		quiet, verbose bool
		wantDebug      bool
		wantWarn       bool
	}{
		{"default", false, false, false, true},
		{"verbose", false, true, true, true},
		{"quiet", true, false, false, false},
		{"quiet wins", true, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := newLogger(&buf, tt.quiet, tt.verbose)
			logger.Debug("debug line")
			logger.Warn("warn line")

			if got := strings.Contains(buf.String(), "debug line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(buf.String(), "warn line"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}
