package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// DefaultThemeName is the name of the built-in theme.
const DefaultThemeName = "default"

// Theme file layout.
const (
	templateFile = "base.html"
	cssDir       = "css"
	jsDir        = "js"
)

// File is a named theme file.
type File struct {
	Name     string // base name, e.g. screen.css
	Contents string
}

// Theme holds everything needed to render a deck.
type Theme struct {
	Name     string
	Template string // html/template source of base.html
	CSS      []File
	JS       []File
}

// CSSFile returns the stylesheet named name.
func (t *Theme) CSSFile(name string) (File, bool) {
	return findFile(t.CSS, name)
}

// JSFile returns the script named name.
func (t *Theme) JSFile(name string) (File, bool) {
	return findFile(t.JS, name)
}

func findFile(files []File, name string) (File, bool) {
	for _, f := range files {
		if f.Name == name {
			return f, true
		}
	}
	return File{}, false
}

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadTheme loads a built-in theme by name.
func LoadTheme(name string) (*Theme, error) {
	return defaultLoader.LoadTheme(name)
}

// loadTheme reads theme dir from fsys. A missing base.html yields a theme
// with an empty Template together with ErrIncompleteTheme.
func loadTheme(fsys fs.FS, dir, name string) (*Theme, error) {
	info, err := fs.Stat(fsys, dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}

	theme := &Theme{Name: name}

	if theme.CSS, err = readDir(fsys, path.Join(dir, cssDir), ".css"); err != nil {
		return nil, err
	}
	if theme.JS, err = readDir(fsys, path.Join(dir, jsDir), ".js"); err != nil {
		return nil, err
	}

	tmpl, err := fs.ReadFile(fsys, path.Join(dir, templateFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return theme, fmt.Errorf("%w: %q", ErrIncompleteTheme, name)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, templateFile, err)
	}
	theme.Template = string(tmpl)

	return theme, nil
}

// readDir returns the files of dir with the given extension, sorted by name.
// A missing directory is not an error.
func readDir(fsys fs.FS, dir, ext string) ([]File, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	var files []File
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(path.Ext(e.Name()), ext) {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
		}
		files = append(files, File{Name: e.Name(), Contents: string(data)})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
