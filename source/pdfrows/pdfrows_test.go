package pdfrows

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SchmidtDSE/ocr-extract-nps-tables/internal/pdftest"
	"github.com/SchmidtDSE/ocr-extract-nps-tables/source"
)

// glyphs lays s out one 5pt-wide glyph per byte from x.
func glyphs(s string, x, y float64) []pdf.Text {
	out := make([]pdf.Text, 0, len(s))
	for i := 0; i < len(s); i++ {
		out = append(out, pdf.Text{S: s[i : i+1], X: x + 5*float64(i), Y: y, W: 5, FontSize: 10})
	}
	return out
}

func TestRows(t *testing.T) {
	var texts []pdf.Text
	// Numbers first and slightly off the name's baseline.
	texts = append(texts, glyphs("12.5", 300, 680.8)...)
	texts = append(texts, glyphs("45.0", 360, 680.8)...)
	texts = append(texts, glyphs("Pinus ponderosa", 72, 680)...)
	texts = append(texts, glyphs("Tree", 72, 700)...)
	texts = append(texts, glyphs("A - 6", 72, 600)...)

	got := Rows(texts, DefaultTolerance)
	assert.Equal(t, []string{
		"Tree",
		"Pinus ponderosa 12.5 45.0",
		"A - 6",
	}, got)
}

func TestRowsTolerance(t *testing.T) {
	texts := append(glyphs("a", 72, 700), glyphs("b", 200, 697)...)

	assert.Equal(t, []string{"a", "b"}, Rows(texts, DefaultTolerance))
	assert.Equal(t, []string{"a b"}, Rows(texts, 5))
}

func TestRowsDropsBlank(t *testing.T) {
	texts := append(glyphs("   ", 72, 700), pdf.Text{S: "", X: 72, Y: 650})
	assert.Empty(t, Rows(texts, DefaultTolerance))
	assert.Empty(t, Rows(nil, DefaultTolerance))
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func TestDocument(t *testing.T) {
	path := pdftest.WriteFile(t,
		append(pdftest.Row(700, "Tree"),
			pdftest.Row(680, "Pinus ponderosa", "12.5", "45.0", "1.0", "90.0")...),
		pdftest.Row(700, "A - 6"),
	)

	doc, err := source.Open(Name, path)
	require.NoError(t, err)
	defer doc.Close()

	n, err := doc.PageCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lines, err := doc.Lines(1)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Tree", squash(lines[0]))
	assert.Equal(t, "Pinusponderosa12.545.01.090.0", squash(lines[1]))

	_, err = doc.Lines(3)
	assert.ErrorIs(t, err, source.ErrPageOutOfRange)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestCloseTwice(t *testing.T) {
	doc, err := Open(pdftest.WriteFile(t, pdftest.Row(700, "Herb")))
	require.NoError(t, err)
	assert.NoError(t, doc.Close())
	assert.NoError(t, doc.Close())
}
