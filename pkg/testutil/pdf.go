package testutil

import (
	"bytes"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/require"
)

// BuildPDF renders one page per entry in pages, one Helvetica line per element.
// An empty page slice produces a page with no text layer.
func BuildPDF(t *testing.T, pages ...[]string) []byte {
	t.Helper()

	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetFont("Helvetica", "", 12)

	for _, lines := range pages {
		doc.AddPage()
		for _, line := range lines {
			doc.Cell(0, 14, line)
			doc.Ln(14)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}
