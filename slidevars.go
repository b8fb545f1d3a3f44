package slidedeck

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

var (
	// Thematic breaks as rendered by goldmark (XHTML) or written as raw HTML.
	slideSeparatorRe = regexp.MustCompile(`<hr\s*/?>`)

	// Leading heading of a slide. Attributes such as id="..." are allowed.
	headerRe = regexp.MustCompile(`(?s)^\s*(<h([1-6])(?:\s[^>]*)?>(.*?)</h[1-6]>)`)

	presenterNotesRe = regexp.MustCompile(`(?is)<h[1-6](?:\s[^>]*)?>\s*presenter notes\s*</h[1-6]>`)

	tagRe = regexp.MustCompile(`<[^>]*>`)
)

// splitSlides cuts a document fragment on thematic breaks. Chunks holding
// only whitespace are skipped.
func splitSlides(document string) []string {
	parts := slideSeparatorRe.Split(document, -1)
	slides := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		slides = append(slides, p)
	}
	return slides
}

// slideVars extracts the heading and presenter notes of one slide chunk.
// With notes disabled the notes section is dropped from the content.
func slideVars(chunk string, presenterNotes bool) Slide {
	var s Slide

	content := chunk
	if m := headerRe.FindStringSubmatchIndex(chunk); m != nil {
		s.Header = chunk[m[2]:m[3]]
		s.Level, _ = strconv.Atoi(chunk[m[4]:m[5]])
		s.Title = plainText(chunk[m[6]:m[7]])
		content = chunk[m[1]:]
	}

	if loc := presenterNotesRe.FindStringIndex(content); loc != nil {
		if presenterNotes {
			s.PresenterNotes = strings.TrimSpace(content[loc[1]:])
		}
		content = content[:loc[0]]
	}

	s.Content = strings.TrimSpace(content)
	return s
}

// plainText strips tags from heading markup and decodes entities.
func plainText(markup string) string {
	return strings.TrimSpace(html.UnescapeString(tagRe.ReplaceAllString(markup, "")))
}
