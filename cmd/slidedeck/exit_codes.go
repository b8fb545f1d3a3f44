package main

import (
	"errors"
	"os"

	slidedeck "github.com/alnah/go-slidedeck"
	"github.com/alnah/go-slidedeck/internal/assets"
	"github.com/alnah/go-slidedeck/internal/config"
	"github.com/alnah/go-slidedeck/internal/markup"
)

// Exit codes for the slidedeck CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Presentation written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, theme or source format
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, slidedeck.ErrBrowserConnect) ||
		errors.Is(err, slidedeck.ErrPageCreate) ||
		errors.Is(err, slidedeck.ErrPageLoad) ||
		errors.Is(err, slidedeck.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2). Checked before I/O because a
	// missing theme directory also wraps os.ErrNotExist.
	if errors.Is(err, errUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidLineNumbers) ||
		errors.Is(err, config.ErrInvalidExpandTabs) ||
		errors.Is(err, config.ErrInvalidDestination) ||
		errors.Is(err, config.ErrInvalidWorkers) ||
		errors.Is(err, config.ErrInvalidTimeout) ||
		errors.Is(err, config.ErrInvalidExtensionSet) ||
		errors.Is(err, slidedeck.ErrInvalidDestination) ||
		errors.Is(err, slidedeck.ErrInvalidLineNumbers) ||
		errors.Is(err, slidedeck.ErrInvalidExpandTabs) ||
		errors.Is(err, slidedeck.ErrThemeLoad) ||
		errors.Is(err, assets.ErrThemeNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, markup.ErrUnknownFormat) ||
		errors.Is(err, markup.ErrUnsupportedFormat) ||
		errors.Is(err, markup.ErrUnknownEncoding) ||
		errors.Is(err, markup.ErrUnknownExtension) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoSource) ||
		errors.Is(err, slidedeck.ErrSourceNotFound) ||
		errors.Is(err, slidedeck.ErrSourceRead) ||
		errors.Is(err, slidedeck.ErrUserAssetRead) ||
		errors.Is(err, slidedeck.ErrWriteOutput) ||
		errors.Is(err, markup.ErrDecode) {
		return ExitIO
	}

	return ExitGeneral
}
