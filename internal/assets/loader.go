package assets

// ThemeLoader defines the contract for loading themes.
type ThemeLoader interface {
	// LoadTheme loads a theme by name.
	// Returns ErrThemeNotFound if the theme doesn't exist.
	// Returns ErrIncompleteTheme if the theme has no base.html.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTheme(name string) (*Theme, error)
}
