package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMinimalPDF produces a structurally valid PDF with the given number of
// empty pages, computing the cross-reference table offsets as it goes.
func buildMinimalPDF(t *testing.T, pages int) string {
	t.Helper()

	var buf bytes.Buffer
	offsets := make([]int, 0, pages+3)

	write := func(s string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(s)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := ""
	for i := 0; i < pages; i++ {
		if i > 0 {
			kids += " "
		}
		kids += fmt.Sprintf("%d 0 R", i+3)
	}

	write("1 0 obj<</Type/Catalog/Pages 2 0 R>>endobj\n")
	write(fmt.Sprintf("2 0 obj<</Type/Pages/Kids[%s]/Count %d>>endobj\n", kids, pages))
	for i := 0; i < pages; i++ {
		write(fmt.Sprintf("%d 0 obj<</Type/Page/Parent 2 0 R/MediaBox[0 0 612 792]/Resources<<>>>>endobj\n", i+3))
	}

	xrefOffset := buf.Len()
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)+1))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer<</Size %d/Root 1 0 R>>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefOffset))

	path := filepath.Join(t.TempDir(), "test.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestExtractText_NoExtractableText(t *testing.T) {
	p := NewProcessor(nil)

	path := buildMinimalPDF(t, 1)
	_, err := p.ExtractText(path, nil)
	require.ErrorIs(t, err, ErrNoText)
}

func TestExtractText_ReportsProgressPerPage(t *testing.T) {
	p := NewProcessor(nil)

	path := buildMinimalPDF(t, 4)
	var reported []int
	_, err := p.ExtractText(path, func(pct int) { reported = append(reported, pct) })
	require.ErrorIs(t, err, ErrNoText)

	require.Len(t, reported, 4)
	assert.Equal(t, []int{25, 50, 75, 100}, reported)
}

func TestExtractText_InvalidFile(t *testing.T) {
	p := NewProcessor(nil)

	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0644))

	_, err := p.ExtractText(path, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoText)
}

func TestExtractText_MissingFile(t *testing.T) {
	p := NewProcessor(nil)
	_, err := p.ExtractText(filepath.Join(t.TempDir(), "absent.pdf"), nil)
	require.Error(t, err)
}
