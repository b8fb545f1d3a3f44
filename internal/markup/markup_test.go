package markup

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// GoldmarkConverter
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	conv, err := NewGoldmarkConverter()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		source   string
		contains []string
		excludes []string
	}{
		{
			name:     "thematic break is the slide separator",
			source:   "# One\n\n---\n\n# Two\n",
			contains: []string{"<hr />", `<h1 id="one">One</h1>`},
		},
		{
			name:     "fragment only",
			source:   "text",
			contains: []string{"<p>text</p>"},
			excludes: []string{"<html", "<body"},
		},
		{
			name:     "indented code keeps bang line for highlighting macro",
			source:   "    !php\n    $a = \"b\";\n",
			contains: []string{"<pre><code>!php\n$a = &quot;b&quot;;\n</code></pre>"},
		},
		{
			name:     "fenced code without language is left plain",
			source:   "```\n!python\nx = 1\n```\n",
			contains: []string{"<pre><code>!python\nx = 1\n</code></pre>"},
		},
		{
			name:     "fenced code with language is highlighted",
			source:   "```go\nfunc main() {}\n```\n",
			contains: []string{`class="chroma"`},
		},
		{
			name:     "raw html is kept",
			source:   "<div class=\"box\">hi</div>\n",
			contains: []string{`<div class="box">hi</div>`},
		},
		{
			name:     "directives survive as paragraphs",
			source:   ".notes: remember\n\n.code: src/day.c /main/ $\n",
			contains: []string{"<p>.notes: remember</p>", "<p>.code: src/day.c /main/ $</p>"},
		},
		{
			name:     "gfm table",
			source:   "| a | b |\n|---|---|\n| 1 | 2 |\n",
			contains: []string{"<table>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), tt.source)
			if err != nil {
				t.Fatalf("ToHTML() unexpected error: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("output should not contain %q:\n%s", bad, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_Extensions(t *testing.T) {
	t.Parallel()

	conv, err := NewGoldmarkConverter(WithExtensions("Typographer", "definition-list", ""))
	if err != nil {
		t.Fatalf("NewGoldmarkConverter() unexpected error: %v", err)
	}
	got, err := conv.ToHTML(context.Background(), "Term\n: Definition\n\n\"quoted\"\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "<dl>") {
		t.Errorf("definition list not rendered:\n%s", got)
	}
	if !strings.Contains(got, "&ldquo;quoted&rdquo;") {
		t.Errorf("typographer quotes not rendered:\n%s", got)
	}

	_, err = NewGoldmarkConverter(WithExtensions("nope"))
	if !errors.Is(err, ErrUnknownExtension) {
		t.Errorf("unknown extension error = %v, want ErrUnknownExtension", err)
	}
}

func TestGoldmarkConverter_CanceledContext(t *testing.T) {
	t.Parallel()

	conv, err := NewGoldmarkConverter()
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := conv.ToHTML(ctx, "# x"); !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// FormatFor / Decode
// ---------------------------------------------------------------------------

func TestFormatFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    Format
		wantErr error
	}{
		{"slides.md", Markdown, nil},
		{"slides.MARKDOWN", Markdown, nil},
		{"dir/slides.mkd", Markdown, nil},
		{"slides.rst", RestructuredText, ErrUnsupportedFormat},
		{"slides.textile", Textile, ErrUnsupportedFormat},
		{"slides.txt", "", ErrUnknownFormat},
		{"slides", "", ErrUnknownFormat},
	}

	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("FormatFor(%q) error = %v, want %v", tt.path, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("FormatFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}

	if !IsSource("a.rst") || IsSource("a.txt") {
		t.Error("IsSource should recognize every known extension and nothing else")
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	privet := []byte{240, 210, 201, 215, 197, 212}

	tests := []struct {
		name     string
		data     []byte
		encoding string
		want     string
		wantErr  error
	}{
		{"utf-8 default", []byte("héllo"), "", "héllo", nil},
		{"bom dropped", []byte("\xef\xbb\xbfhi"), "utf-8", "hi", nil},
		{"koi8-r", privet, "koi8-r", "Привет", nil},
		{"python style name", privet, "koi8_r", "Привет", nil},
		{"latin1", []byte{'c', 0xe9}, "latin1", "cé", nil},
		{"invalid utf-8", []byte{0xff, 0xfe, 0xfd}, "", "", ErrDecode},
		{"unknown encoding", []byte("x"), "klingon", "", ErrUnknownEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode(tt.data, tt.encoding)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Decode() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}
}
