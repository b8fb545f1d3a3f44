package markup

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

// Sentinel errors for source detection and decoding.
var (
	ErrUnknownFormat     = errors.New("unknown source format")
	ErrUnsupportedFormat = errors.New("unsupported source format")
	ErrUnknownEncoding   = errors.New("unknown encoding")
	ErrDecode            = errors.New("failed to decode source")
)

// Format identifies a markup language.
type Format string

// Known formats. Only Markdown can be converted.
const (
	Markdown         Format = "markdown"
	RestructuredText Format = "restructuredtext"
	Textile          Format = "textile"
)

var formatsByExt = map[string]Format{
	".md":       Markdown,
	".markdown": Markdown,
	".mdown":    Markdown,
	".mkdn":     Markdown,
	".mkd":      Markdown,
	".rst":      RestructuredText,
	".textile":  Textile,
}

// FormatFor returns the format of a file from its extension.
func FormatFor(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := formatsByExt[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
	if f != Markdown {
		return f, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	return f, nil
}

// IsSource reports whether path has an extension FormatFor recognizes.
func IsSource(path string) bool {
	_, ok := formatsByExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Decode converts data in the named encoding to a UTF-8 string. Names follow
// the WHATWG encoding labels ("koi8-r", "latin1", "shift_jis", ...). An empty
// name means UTF-8; a leading byte order mark is dropped.
func Decode(data []byte, encoding string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(encoding))
	if name == "" || name == "utf-8" || name == "utf8" || name == "utf_8" {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: input is not valid UTF-8", ErrDecode)
		}
		return strings.TrimPrefix(string(data), "\ufeff"), nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		// Python-style names such as koi8_r.
		if enc, err = htmlindex.Get(strings.ReplaceAll(name, "_", "-")); err != nil {
			return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, encoding)
		}
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return strings.TrimPrefix(string(out), "\ufeff"), nil
}
