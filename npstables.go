// Package npstables extracts species-composition stand tables from printed
// vegetation survey reports.
//
// A report page lists, per lifeform class, one row per species with four
// statistics:
//
//	Tree
//	Pinus ponderosa 12.5 45.0 1.0 90.0
//	Shrub
//	Purshia tridentata 3 1.5 0.5 4
//	A - 6
//
// The extractor reads the configured pages, classifies and segments their
// lines, copies every row to each map unit the page stands for, and returns
// one table sorted by (Class, Species).
//
// Basic usage:
//
//	m, err := mapping.Load("pages.json")
//	if err != nil {
//	    // handle error
//	}
//	tbl, warnings, err := npstables.Open("report.pdf").Mapping(m).Table()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", npstables.FormatWarnings(warnings))
//	}
//	err = tbl.WriteFile("stand_tables.csv")
//
// Without a mapping, each selected page is its own map unit, identified by
// its page number:
//
//	tbl, _, err := npstables.Open("report.pdf").Pages(5, 7).Table()
//
// The input format is detected from the path; Source overrides it with any
// name in the source registry.
package npstables

import (
	"github.com/SchmidtDSE/ocr-extract-nps-tables/source"

	// Built-in line sources.
	_ "github.com/SchmidtDSE/ocr-extract-nps-tables/source/hocr"
	_ "github.com/SchmidtDSE/ocr-extract-nps-tables/source/pdflines"
	_ "github.com/SchmidtDSE/ocr-extract-nps-tables/source/pdfrows"
	_ "github.com/SchmidtDSE/ocr-extract-nps-tables/source/plaintext"
	_ "github.com/SchmidtDSE/ocr-extract-nps-tables/source/scan"
)

// Open returns an Extractor for the report at path. The document is opened
// by the first terminal operation and closed when it returns.
//
// Example:
//
//	tbl, warnings, err := npstables.Open("report.pdf").Pages(5).Table()
func Open(path string) *Extractor {
	return &Extractor{
		path:    path,
		options: defaultOptions(),
	}
}

// FromDocument creates an Extractor over an already-opened document.
// The caller is responsible for closing the document.
//
// Example:
//
//	doc := source.Pages{{"Tree", "Pinus ponderosa 12.5 45.0 1.0 90.0"}}
//	tbl, _, err := npstables.FromDocument(doc).Table()
func FromDocument(doc source.Document) *Extractor {
	return &Extractor{
		doc:       doc,
		ownsDoc:   false,
		docOpened: true,
		options:   defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := npstables.Must(npstables.Open("report.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustTable is a helper that wraps a call to Table() or Lines() and panics
// if the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	tbl := npstables.MustTable(npstables.Open("report.pdf").Pages(5).Table())
func MustTable[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
