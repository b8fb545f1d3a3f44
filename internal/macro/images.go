package macro

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrImageRead is returned when an image to embed cannot be read.
var ErrImageRead = errors.New("failed to read image")

// EmbedImagesMacro inlines local images as base64 data URIs. When disabled
// it leaves content untouched.
type EmbedImagesMacro struct {
	enabled bool
}

// NewEmbedImagesMacro returns the macro; embed mirrors the generator's
// embed setting.
func NewEmbedImagesMacro(embed bool) *EmbedImagesMacro {
	return &EmbedImagesMacro{enabled: embed}
}

// Process implements Macro.
func (m *EmbedImagesMacro) Process(content, baseDir string) (string, []string, error) {
	if !m.enabled || !strings.Contains(content, "<img") {
		return content, nil, nil
	}

	var firstErr error
	out, err := rewriteImages(content, func(src string) string {
		if firstErr != nil || !isLocalPath(src) {
			return src
		}
		path := src
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		uri, err := dataURI(path)
		if err != nil {
			firstErr = &Warning{Macro: "embed_images", Directive: src, Err: err}
			return src
		}
		return uri
	})
	if err != nil {
		return "", nil, err
	}
	if firstErr != nil {
		return "", nil, firstErr
	}
	return out, nil, nil
}

func dataURI(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- image referenced by the presentation
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageRead, err)
	}
	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	// Parameters such as charset are irrelevant for images.
	mediaType, _, _ = strings.Cut(mediaType, ";")
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// FixImagePathsOptions configures FixImagePathsMacro.
type FixImagePathsOptions struct {
	Relative bool   // rewrite relative to DestDir instead of as file:// URLs
	DestDir  string // directory of the generated file
}

// FixImagePathsMacro rewrites relative image sources so they still resolve
// from the generated file.
type FixImagePathsMacro struct {
	opts FixImagePathsOptions
}

// NewFixImagePathsMacro returns the macro.
func NewFixImagePathsMacro(opts FixImagePathsOptions) *FixImagePathsMacro {
	return &FixImagePathsMacro{opts: opts}
}

// Process implements Macro. Absolute paths, URLs and data URIs are kept.
func (m *FixImagePathsMacro) Process(content, baseDir string) (string, []string, error) {
	if !strings.Contains(content, "<img") {
		return content, nil, nil
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", nil, err
	}
	absDest := ""
	if m.opts.Relative {
		if absDest, err = filepath.Abs(m.opts.DestDir); err != nil {
			return "", nil, err
		}
	}

	out, err := rewriteImages(content, func(src string) string {
		if !isRelativePath(src) {
			return src
		}
		abs := filepath.Join(absBase, src)
		if m.opts.Relative {
			if rel, err := filepath.Rel(absDest, abs); err == nil {
				return filepath.ToSlash(rel)
			}
		}
		return pathToFileURL(abs)
	})
	if err != nil {
		return "", nil, err
	}
	return out, nil, nil
}

// rewriteImages parses content as a body fragment, maps every img[src]
// through fn and renders the fragment back.
func rewriteImages(content string, fn func(src string) string) (string, error) {
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return "", err
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Img {
			for i, attr := range n.Attr {
				if attr.Key == "src" {
					n.Attr[i].Val = fn(attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	var buf strings.Builder
	for _, n := range nodes {
		walk(n)
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// isLocalPath reports whether src names a file on disk.
func isLocalPath(src string) bool {
	if src == "" || strings.HasPrefix(src, "#") || strings.HasPrefix(src, "//") {
		return false
	}
	if filepath.IsAbs(src) {
		return true
	}
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	// Single-letter schemes are Windows drive letters.
	return u.Scheme == "" || len(u.Scheme) == 1
}

// isRelativePath reports whether src is a local path relative to the
// document.
func isRelativePath(src string) bool {
	return isLocalPath(src) && !filepath.IsAbs(src)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
