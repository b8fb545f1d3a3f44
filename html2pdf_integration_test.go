//go:build integration

package slidedeck

// Notes:
// - Needs a local Chrome or network access: rod downloads Chromium on first
//   run when ROD_BROWSER_BIN is unset.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const integrationTimeout = 60 * time.Second

func assertValidPDF(t *testing.T, data []byte) {
	t.Helper()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}
	if len(data) < 100 {
		t.Errorf("PDF data suspiciously small: %d bytes", len(data))
	}
}

func TestRodPrinter_ToPDF_Integration(t *testing.T) {
	t.Parallel()

	printer := newRodPrinter(integrationTimeout)
	defer printer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), integrationTimeout)
	defer cancel()

	html := `<!DOCTYPE html>
<html><head><title>Deck</title></head>
<body><section class="slide"><h1>Hello</h1></section></body>
</html>`

	data, err := printer.ToPDF(ctx, html)
	if err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}
	assertValidPDF(t, data)
}

func TestGenerator_Execute_PDF_Integration(t *testing.T) {
	t.Parallel()

	dest := filepath.Join(t.TempDir(), "deck.pdf")
	g, err := NewGenerator(filepath.Join("testdata", "example1", "slides.md"),
		WithDestination(dest),
		WithTimeout(integrationTimeout),
	)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}

	if err := g.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading PDF: %v", err)
	}
	assertValidPDF(t, data)
}
