package assets

import (
	"errors"
	"os"
	"path/filepath"
)

// ThemeResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the theme is not found in the custom location.
type ThemeResolver struct {
	custom   ThemeLoader // nil if no custom path configured
	embedded ThemeLoader
}

// NewThemeResolver creates a ThemeResolver.
// If customBasePath is empty, only embedded themes are used.
// Returns error if customBasePath is set but invalid.
func NewThemeResolver(customBasePath string) (*ThemeResolver, error) {
	resolver := &ThemeResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// ResolveTheme accepts either the path of a theme directory or a built-in
// theme name, and returns a resolver together with the name to load. An
// existing directory wins over a built-in theme of the same name.
func ResolveTheme(theme string) (*ThemeResolver, string, error) {
	if theme == "" {
		theme = DefaultThemeName
	}
	info, statErr := os.Stat(theme)
	isDir := statErr == nil && info.IsDir()
	if !isDir && ValidateAssetName(theme) == nil {
		r, err := NewThemeResolver("")
		return r, theme, err
	}

	abs, err := filepath.Abs(theme)
	if err != nil {
		return nil, "", err
	}
	r, err := NewThemeResolver(filepath.Dir(abs))
	return r, filepath.Base(abs), err
}

// LoadTheme loads a theme, trying the custom loader first if available.
// A custom theme lacking base.html uses the default theme's template.
func (r *ThemeResolver) LoadTheme(name string) (*Theme, error) {
	// If no custom loader, use embedded directly
	if r.custom == nil {
		return r.embedded.LoadTheme(name)
	}

	theme, err := r.custom.LoadTheme(name)
	switch {
	case err == nil:
		return theme, nil

	case errors.Is(err, ErrIncompleteTheme):
		base, baseErr := r.embedded.LoadTheme(DefaultThemeName)
		if baseErr != nil {
			return nil, baseErr
		}
		theme.Template = base.Template
		return theme, nil

	case errors.Is(err, ErrThemeNotFound):
		return r.embedded.LoadTheme(name)
	}

	// Validation and I/O errors are not retried
	return nil, err
}

// HasCustomLoader returns true if a custom theme loader is configured.
func (r *ThemeResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ ThemeLoader = (*ThemeResolver)(nil)
