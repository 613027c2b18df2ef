// Package scan reads line documents from a directory of scanned page
// images, one image per page, recognising each page with Tesseract.
//
// Pages are the directory's image files (.png, .jpg, .jpeg, .gif, .tif,
// .tiff, .bmp) in natural name order, so "page-2.png" precedes
// "page-10.png". OCR runs lazily, once per requested page.
//
// Recognition needs a binary built with the "ocr" tag; otherwise Lines
// returns ocr.ErrOCRNotEnabled.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/SchmidtDSE/ocr-extract-nps-tables/ocr"
	"github.com/SchmidtDSE/ocr-extract-nps-tables/source"
)

// Name is the registry name of this source.
const Name = "scan"

func init() {
	source.Register(Name, func(path string) (source.Document, error) {
		return Open(path)
	})
}

// Recognizer turns a prepared page image into text lines.
type Recognizer = ocr.Recognizer

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".tif": true, ".tiff": true, ".bmp": true,
}

// Document is a directory of page images.
type Document struct {
	files   []string
	opts    ocr.PrepareOptions
	rec     Recognizer
	newRec  func() (Recognizer, error)
	recErr  error
	started bool
}

// Open lists the page images in dir. The Tesseract client is created on
// the first call to Lines.
func Open(dir string) (*Document, error) {
	return OpenWith(dir, ocr.NewRecognizer)
}

// OpenWith is Open with a custom recognizer factory.
func OpenWith(dir string, newRec func() (Recognizer, error)) (*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scan directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.SliceStable(files, func(i, j int) bool {
		return naturalLess(filepath.Base(files[i]), filepath.Base(files[j]))
	})

	return &Document{
		files:  files,
		opts:   ocr.DefaultPrepareOptions(),
		newRec: newRec,
	}, nil
}

// SetPrepareOptions changes image preprocessing for pages read afterwards.
func (d *Document) SetPrepareOptions(opts ocr.PrepareOptions) {
	d.opts = opts
}

// Files returns the page image paths in page order.
func (d *Document) Files() []string {
	return append([]string(nil), d.files...)
}

// PageCount returns the number of page images.
func (d *Document) PageCount() (int, error) {
	return len(d.files), nil
}

// Lines recognises a 1-based page.
func (d *Document) Lines(page int) ([]string, error) {
	if err := source.CheckPage(page, len(d.files)); err != nil {
		return nil, err
	}

	rec, err := d.recognizer()
	if err != nil {
		return nil, err
	}

	path := d.files[page-1]
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading page image: %w", err)
	}
	prepared, err := ocr.Prepare(data, d.opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	lines, err := rec.RecognizeLines(prepared)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return lines, nil
}

func (d *Document) recognizer() (Recognizer, error) {
	if !d.started {
		d.started = true
		d.rec, d.recErr = d.newRec()
	}
	return d.rec, d.recErr
}

// Close releases the OCR engine.
func (d *Document) Close() error {
	if d.rec != nil {
		err := d.rec.Close()
		d.rec = nil
		return err
	}
	return nil
}

// naturalLess compares names with embedded numbers by numeric value.
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		ad, bd := isDigit(a[0]), isDigit(b[0])
		switch {
		case ad && bd:
			an, arest := splitDigits(a)
			bn, brest := splitDigits(b)
			at, bt := strings.TrimLeft(an, "0"), strings.TrimLeft(bn, "0")
			if len(at) != len(bt) {
				return len(at) < len(bt)
			}
			if at != bt {
				return at < bt
			}
			a, b = arest, brest
		case a[0] != b[0]:
			return a[0] < b[0]
		default:
			a, b = a[1:], b[1:]
		}
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func splitDigits(s string) (digits, rest string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}
