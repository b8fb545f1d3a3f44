package slidedeck

import "errors"

// Sentinel errors for library operations.
var (
	ErrSourceNotFound     = errors.New("source file not found")
	ErrSourceRead         = errors.New("failed to read source")
	ErrHTMLConversion     = errors.New("HTML conversion failed")
	ErrTemplateRender     = errors.New("template rendering failed")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrUserAssetRead      = errors.New("failed to read user asset")
	ErrThemeLoad          = errors.New("failed to load theme")
	ErrInvalidDestination = errors.New("invalid destination")
	ErrInvalidLineNumbers = errors.New("invalid line numbers mode")
	ErrInvalidExpandTabs  = errors.New("invalid tab width")

	// PDF output errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
)
