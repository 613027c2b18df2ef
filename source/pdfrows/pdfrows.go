// Package pdfrows reads line documents from PDF files by grouping the
// positioned glyphs of github.com/ledongthuc/pdf into rows of equal
// baseline.
//
// It is a second PDF text backend for reports whose text layer the "pdf"
// source assembles poorly. Glyphs whose baselines lie within Tolerance
// points share a row; a row's glyphs are ordered left to right, with a
// space wherever the horizontal gap exceeds a quarter of the font size.
package pdfrows

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/SchmidtDSE/ocr-extract-nps-tables/source"
)

// Name is the registry name of this source.
const Name = "rows"

// DefaultTolerance is the baseline distance, in points, within which glyphs
// share a row.
const DefaultTolerance = 2.0

func init() {
	source.Register(Name, func(path string) (source.Document, error) {
		return Open(path)
	})
}

// Document is an opened PDF.
type Document struct {
	f *os.File
	r *pdf.Reader

	// Tolerance overrides DefaultTolerance when positive.
	Tolerance float64
}

// Open opens the PDF at path.
func Open(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return &Document{f: f, r: r}, nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() (int, error) {
	return d.r.NumPage(), nil
}

// Lines returns the rows of a 1-based page, top to bottom.
func (d *Document) Lines(page int) (lines []string, err error) {
	if err := source.CheckPage(page, d.r.NumPage()); err != nil {
		return nil, err
	}

	// The reader panics on malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			lines, err = nil, fmt.Errorf("page %d: malformed content: %v", page, r)
		}
	}()

	p := d.r.Page(page)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d: missing page object", page)
	}

	tol := d.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	return Rows(p.Content().Text, tol), nil
}

// Close closes the underlying file.
func (d *Document) Close() error {
	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	return err
}

type row struct {
	y      float64
	glyphs []pdf.Text
}

// Rows groups glyphs into text rows, ordered top to bottom. Empty rows are
// dropped and runs of whitespace collapse to a single space.
func Rows(texts []pdf.Text, tolerance float64) []string {
	var rows []*row
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		var dst *row
		for _, r := range rows {
			if math.Abs(r.y-t.Y) < tolerance {
				dst = r
				break
			}
		}
		if dst == nil {
			dst = &row{y: t.Y}
			rows = append(rows, dst)
		}
		dst.glyphs = append(dst.glyphs, t)
	}

	// PDF y grows upwards.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		if line := r.text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func (r *row) text() string {
	sort.SliceStable(r.glyphs, func(i, j int) bool { return r.glyphs[i].X < r.glyphs[j].X })

	var sb strings.Builder
	end := math.Inf(-1)
	for _, g := range r.glyphs {
		if sb.Len() > 0 && g.X-end > g.FontSize/4 {
			sb.WriteByte(' ')
		}
		sb.WriteString(g.S)
		if e := g.X + g.W; e > end {
			end = e
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
