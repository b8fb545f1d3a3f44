package assets

import (
	"fmt"
	"strings"
	"unicode"
)

// maxAssetNameLength bounds theme names.
const maxAssetNameLength = 64

// ValidateAssetName checks that a theme name is safe for use as a directory
// name. Returns ErrInvalidAssetName if the name is empty, too long, or holds
// path separators, dots, a drive colon, spaces or control characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxAssetNameLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidAssetName, maxAssetNameLength)
	}
	if strings.ContainsAny(name, "/\\.:") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	if strings.IndexFunc(name, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
