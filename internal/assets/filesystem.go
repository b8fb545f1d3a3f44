package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader loads themes from a directory on the filesystem.
// Implements ThemeLoader interface.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader rooted at basePath, which
// must be a readable directory. Symlinks in basePath are resolved so the
// containment check compares real paths.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	dir, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if real, err := filepath.EvalSymlinks(dir); err == nil {
		dir = real
	}

	switch info, err := os.Stat(dir); {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: no such directory: %s", ErrInvalidBasePath, dir)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: %s is a file", ErrInvalidBasePath, dir)
	}
	if _, err := os.ReadDir(dir); err != nil {
		return nil, fmt.Errorf("%w: unreadable: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: dir}, nil
}

// LoadTheme loads a theme from the filesystem.
// Looks for {basePath}/{name}/base.html, css/*.css and js/*.js
func (f *FilesystemLoader) LoadTheme(name string) (*Theme, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dirPath := filepath.Join(f.basePath, name)

	if err := f.verifyPathContainment(dirPath + string(filepath.Separator)); err != nil {
		return nil, err
	}

	return loadTheme(os.DirFS(f.basePath), name, name)
}

// BasePath returns the resolved directory themes are loaded from.
func (f *FilesystemLoader) BasePath() string {
	return f.basePath
}

// verifyPathContainment rejects paths resolving outside basePath, symlinks
// included. A path that does not exist yet is checked as written.
func (f *FilesystemLoader) verifyPathContainment(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}

	// The trailing separator keeps /themes/dark from matching /themes/darker.
	if !strings.HasPrefix(abs, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s is outside %s", ErrPathTraversal, path, f.basePath)
	}
	return nil
}

// Compile-time interface check.
var _ ThemeLoader = (*FilesystemLoader)(nil)
