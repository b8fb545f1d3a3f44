package assets

import (
	"embed"
	"io/fs"
)

//go:embed themes
var themes embed.FS

// EmbeddedLoader loads themes from the embedded filesystem.
// Implements ThemeLoader interface.
type EmbeddedLoader struct {
	fsys fs.FS
}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	sub, err := fs.Sub(themes, "themes")
	if err != nil {
		// themes is a literal directory of this package.
		panic(err)
	}
	return &EmbeddedLoader{fsys: sub}
}

// LoadTheme loads a built-in theme by name.
func (e *EmbeddedLoader) LoadTheme(name string) (*Theme, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	return loadTheme(e.fsys, name, name)
}

// Names lists the built-in themes.
func (e *EmbeddedLoader) Names() []string {
	entries, err := fs.ReadDir(e.fsys, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}

// Compile-time interface check.
var _ ThemeLoader = (*EmbeddedLoader)(nil)
