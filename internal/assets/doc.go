// Package assets provides the themes used to render slide decks.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	ThemeLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in themes)
//	    ├── FilesystemLoader  - loads from a directory of themes on disk
//	    └── ThemeResolver     - combines both with custom-first fallback
//
// ThemeResolver is the loader used by the generator. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the theme is
// not found there. A custom theme without its own base.html borrows the
// template of the default theme, so a theme may consist of stylesheets only.
//
// # Directory Structure
//
//	{basePath}/
//	└── {name}/
//	    ├── base.html            # html/template for the whole deck
//	    ├── css/
//	    │   ├── screen.css
//	    │   └── print.css
//	    └── js/
//	        └── slides.js
//
// Stylesheets and scripts are returned sorted by file name.
//
// # Security
//
// Theme names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
