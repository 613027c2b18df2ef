// Package pdflines reads line documents from PDF files with embedded text.
//
// Text fragments come from the tabula PDF reader and are grouped into
// visual lines by its layout.LineDetector, so a stand-table row printed as
// separately positioned column cells reads back as one line:
//
//	Pinus ponderosa 12.5 45.0 1.0 90.0
//
// Scanned reports carry no text layer. With an OCR recognizer configured
// (see [Options]), a page without text fragments is recognised from its
// largest embedded image instead.
package pdflines

import (
	"errors"
	"fmt"

	"github.com/tsawler/tabula/layout"
	"github.com/tsawler/tabula/pages"
	"github.com/tsawler/tabula/reader"

	"github.com/SchmidtDSE/ocr-extract-nps-tables/ocr"
	"github.com/SchmidtDSE/ocr-extract-nps-tables/source"
)

// Name is the registry name of this source.
const Name = "pdf"

// OCRName is the registry name of the variant with OCR fallback.
const OCRName = "pdf+ocr"

func init() {
	source.Register(Name, func(path string) (source.Document, error) {
		return Open(path)
	})
	source.Register(OCRName, func(path string) (source.Document, error) {
		return OpenWith(path, Options{NewRecognizer: ocr.NewRecognizer})
	})
}

// ErrNoText is returned for a page with neither text nor a usable image.
var ErrNoText = errors.New("page has no text layer")

// Options configures a Document.
type Options struct {
	// NewRecognizer creates the OCR engine for pages without text. Nil
	// disables the fallback; such pages then have no lines.
	NewRecognizer func() (ocr.Recognizer, error)

	// Prepare controls image preprocessing before recognition. The zero
	// value means ocr.DefaultPrepareOptions.
	Prepare ocr.PrepareOptions
}

// Document is an opened PDF.
type Document struct {
	r     *reader.Reader
	count int
	opts  Options

	rec     ocr.Recognizer
	recErr  error
	started bool
}

// Open opens a PDF without OCR fallback.
func Open(path string) (*Document, error) {
	return OpenWith(path, Options{})
}

// OpenWith opens a PDF with the given options.
func OpenWith(path string, opts Options) (*Document, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	count, err := r.PageCount()
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("failed to count pages: %w", err)
	}
	if opts.Prepare == (ocr.PrepareOptions{}) {
		opts.Prepare = ocr.DefaultPrepareOptions()
	}
	return &Document{r: r, count: count, opts: opts}, nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() (int, error) {
	return d.count, nil
}

// Lines returns the visual lines of a 1-based page, top to bottom.
func (d *Document) Lines(page int) ([]string, error) {
	if err := source.CheckPage(page, d.count); err != nil {
		return nil, err
	}

	p, err := d.r.GetPage(page - 1)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", page, err)
	}
	fragments, err := d.r.ExtractTextFragments(p)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", page, err)
	}

	if len(fragments) == 0 {
		if d.opts.NewRecognizer == nil {
			return nil, nil
		}
		return d.recognizePage(page, p)
	}

	width, _ := p.Width()
	height, _ := p.Height()
	detected := layout.NewLineDetector().Detect(fragments, width, height)

	lines := make([]string, 0, len(detected.Lines))
	for _, line := range detected.Lines {
		lines = append(lines, line.Text)
	}
	return lines, nil
}

func (d *Document) recognizePage(page int, p *pages.Page) ([]string, error) {
	images, err := d.r.ExtractPageImages(p)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", page, err)
	}
	img := largest(images)
	if img == nil {
		return nil, fmt.Errorf("page %d: %w", page, ErrNoText)
	}

	rec, err := d.recognizer()
	if err != nil {
		return nil, err
	}

	data, err := img.ToPNG()
	if err != nil {
		return nil, fmt.Errorf("page %d: image %s: %w", page, img.Name, err)
	}
	prepared, err := ocr.Prepare(data, d.opts.Prepare)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", page, err)
	}
	lines, err := rec.RecognizeLines(prepared)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", page, err)
	}
	return lines, nil
}

func (d *Document) recognizer() (ocr.Recognizer, error) {
	if !d.started {
		d.started = true
		d.rec, d.recErr = d.opts.NewRecognizer()
	}
	return d.rec, d.recErr
}

// largest returns the image with the most pixels, or nil.
func largest(images []reader.PageImage) *reader.PageImage {
	var best *reader.PageImage
	for i := range images {
		img := &images[i]
		if best == nil || img.Width*img.Height > best.Width*best.Height {
			best = img
		}
	}
	return best
}

// Close closes the PDF and the OCR engine, if one was started.
func (d *Document) Close() error {
	var errs []error
	if d.rec != nil {
		errs = append(errs, d.rec.Close())
		d.rec = nil
	}
	if d.r != nil {
		errs = append(errs, d.r.Close())
		d.r = nil
	}
	return errors.Join(errs...)
}
