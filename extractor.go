package npstables

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/SchmidtDSE/ocr-extract-nps-tables/classify"
	"github.com/SchmidtDSE/ocr-extract-nps-tables/format"
	"github.com/SchmidtDSE/ocr-extract-nps-tables/internal/textnorm"
	"github.com/SchmidtDSE/ocr-extract-nps-tables/mapping"
	"github.com/SchmidtDSE/ocr-extract-nps-tables/ocr"
	"github.com/SchmidtDSE/ocr-extract-nps-tables/source"
	"github.com/SchmidtDSE/ocr-extract-nps-tables/standtable"
	"github.com/SchmidtDSE/ocr-extract-nps-tables/table"
)

// Extractor provides a fluent interface for extracting stand tables.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	path string

	// Document (opened lazily for path-based extractors)
	doc source.Document

	// Lifecycle
	ownsDoc   bool // true if we opened the document and should close it
	docOpened bool // true if the document has been opened

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		path:      e.path,
		doc:       e.doc,
		ownsDoc:   e.ownsDoc,
		docOpened: e.docOpened,
		options:   e.options.clone(),
		err:       e.err,
	}
}

// ensureDocument opens the document if not already open.
func (e *Extractor) ensureDocument() error {
	if e.docOpened {
		return nil
	}
	if e.path == "" {
		return fmt.Errorf("no input path specified")
	}

	name := e.options.source
	if name == "" {
		f, err := format.DetectPath(e.path)
		if err != nil {
			return fmt.Errorf("failed to detect input format: %w", err)
		}
		if f == format.Unknown {
			return fmt.Errorf("unsupported input format: %s", e.path)
		}
		name = f.Source()
	}

	doc, err := source.Open(name, e.path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", e.path, err)
	}
	e.doc = doc
	e.ownsDoc = true
	e.docOpened = true
	return nil
}

// Close releases the document if the Extractor opened it.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsDoc && e.doc != nil {
		err := e.doc.Close()
		e.doc = nil
		e.ownsDoc = false
		e.docOpened = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Source selects the line source by registry name, overriding format
// detection.
//
// Example:
//
//	tbl, _, err := npstables.Open("report.pdf").Source("rows").Pages(5).Table()
func (e *Extractor) Source(name string) *Extractor {
	newExt := e.clone()
	newExt.options.source = name
	return newExt
}

// Mapping adds page to map-unit assignments. Multiple calls are cumulative.
// An invalid mapping fails the terminal operation.
//
// Example:
//
//	m := mapping.Mapping{{Page: 5, MapUnits: []string{"1001", "1002"}}}
//	tbl, _, err := npstables.Open("report.pdf").Mapping(m).Table()
func (e *Extractor) Mapping(m mapping.Mapping) *Extractor {
	newExt := e.clone()
	for _, entry := range m {
		newExt.options.mapping = append(newExt.options.mapping, mapping.Entry{
			Page:     entry.Page,
			MapUnits: append([]string(nil), entry.MapUnits...),
		})
	}
	if len(m) == 0 {
		return newExt
	}
	if err := m.Validate(); err != nil && newExt.err == nil {
		newExt.err = err
	}
	return newExt
}

// Pages adds pages that map to themselves: page 5 feeds map unit "5".
// Multiple calls are cumulative.
//
// Example:
//
//	tbl, _, err := npstables.Open("report.pdf").Pages(5, 7).Table()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	if len(pages) == 0 {
		return newExt
	}
	if err := mapping.FromPages(pages...).Validate(); err != nil && newExt.err == nil {
		newExt.err = err
	}
	return newExt
}

// StrictPages makes a missing or unreadable page fail the run instead of
// producing a warning.
func (e *Extractor) StrictPages() *Extractor {
	newExt := e.clone()
	newExt.options.strict = true
	return newExt
}

// Workers sets how many pages are built concurrently. Values below 1 mean 1.
// The result does not depend on the worker count.
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	if n < 1 {
		n = 1
	}
	newExt.options.workers = n
	return newExt
}

// Classifier replaces the noise lines, noise substrings and class names
// used to classify lines.
//
// Example:
//
//	cfg := classify.DefaultConfig()
//	cfg.NoiseLines = append(cfg.NoiseLines, "February 2013")
//	tbl, _, err := npstables.Open("report.pdf").Classifier(cfg).Table()
func (e *Extractor) Classifier(cfg classify.Config) *Extractor {
	newExt := e.clone()
	newExt.options.classify = &cfg
	newExt.options = newExt.options.clone()
	return newExt
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// PageCount returns the number of pages in the document.
// This is a terminal operation that closes the underlying document.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureDocument(); err != nil {
		return 0, err
	}
	defer e.Close()
	return e.doc.PageCount()
}

// pageResult is the outcome of one mapping entry.
type pageResult struct {
	records  []table.Record
	warnings []Warning
}

// Table runs the extraction and returns the aggregated stand table.
// This is a terminal operation that closes the underlying document.
//
// Unparseable rows, missing pages and unreadable pages are reported as
// warnings; with StrictPages the latter two fail the run. An empty result
// is a warning, not an error.
//
// Example:
//
//	tbl, warnings, err := npstables.Open("report.pdf").Pages(5).Table()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", npstables.FormatWarnings(warnings))
//	}
func (e *Extractor) Table() (*table.Table, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureDocument(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	count, err := e.doc.PageCount()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count pages: %w", err)
	}
	plan := e.options.plan(count)
	if len(plan) > 0 {
		if err := plan.Validate(); err != nil {
			return nil, nil, err
		}
	}

	classifier := e.options.classifier()
	results := make([]pageResult, len(plan))

	var mu sync.Mutex
	readLines := func(page int) ([]string, error) {
		mu.Lock()
		defer mu.Unlock()
		return e.doc.Lines(page)
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(e.options.workers)
	for i, entry := range plan {
		i, entry := i, entry
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			res, err := e.buildEntry(entry, count, classifier, readLines)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	batches := make([][]table.Record, len(results))
	for i, res := range results {
		batches[i] = res.records
		warnings = append(warnings, res.warnings...)
	}

	tbl := table.Aggregate(batches...)
	if tbl.Empty() {
		warnings = append(warnings, Warning{
			Kind: WarnEmptyResult,
			Err:  fmt.Errorf("no stand table rows found on %d mapped page(s)", len(plan)),
		})
	}
	return tbl, warnings, nil
}

// buildEntry reads, builds and fans out one mapped page.
func (e *Extractor) buildEntry(entry mapping.Entry, count int, c *classify.Classifier, readLines func(int) ([]string, error)) (pageResult, error) {
	var res pageResult

	if err := entry.Resolve(count); err != nil {
		if e.options.strict {
			return res, err
		}
		res.warnings = append(res.warnings, Warning{
			Kind:     WarnMissingPage,
			Page:     entry.Page,
			MapUnits: entry.MapUnits,
			Err:      err,
		})
		return res, nil
	}

	lines, err := readLines(entry.Page)
	if err != nil {
		err = fmt.Errorf("page %d: %w", entry.Page, err)
		if e.options.strict || errors.Is(err, ocr.ErrOCRNotEnabled) {
			return res, err
		}
		res.warnings = append(res.warnings, Warning{
			Kind:     WarnPageRead,
			Page:     entry.Page,
			MapUnits: entry.MapUnits,
			Err:      err,
		})
		return res, nil
	}

	page := standtable.Build(lines, c)
	for _, f := range page.Failures {
		res.warnings = append(res.warnings, Warning{
			Kind:     WarnRowParse,
			Page:     entry.Page,
			MapUnits: entry.MapUnits,
			Line:     f.Line,
			Text:     f.Text,
			Err:      f.Err,
		})
	}
	res.records = mapping.Expand(page.Rows, entry.MapUnits)
	return res, nil
}

// ClassifiedLine is one normalised page line and its classification.
type ClassifiedLine struct {
	Page int
	Line int
	Text string
	Tag  classify.Tag
}

// Lines returns every line of the selected pages (mapping pages, then bare
// pages, or all pages) with its classification, including lines after a
// section end. It is meant for tuning noise and class lists.
// This is a terminal operation that closes the underlying document.
func (e *Extractor) Lines() ([]ClassifiedLine, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureDocument(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	count, err := e.doc.PageCount()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count pages: %w", err)
	}

	c := e.options.classifier()
	var out []ClassifiedLine
	var warnings []Warning
	seen := make(map[int]bool)
	for _, entry := range e.options.plan(count) {
		if seen[entry.Page] {
			continue
		}
		seen[entry.Page] = true

		if err := entry.Resolve(count); err != nil {
			if e.options.strict {
				return nil, nil, err
			}
			warnings = append(warnings, Warning{Kind: WarnMissingPage, Page: entry.Page, MapUnits: entry.MapUnits, Err: err})
			continue
		}
		lines, err := e.doc.Lines(entry.Page)
		if err != nil {
			err = fmt.Errorf("page %d: %w", entry.Page, err)
			if e.options.strict || errors.Is(err, ocr.ErrOCRNotEnabled) {
				return nil, nil, err
			}
			warnings = append(warnings, Warning{Kind: WarnPageRead, Page: entry.Page, MapUnits: entry.MapUnits, Err: err})
			continue
		}
		for i, text := range textnorm.Lines(lines) {
			out = append(out, ClassifiedLine{
				Page: entry.Page,
				Line: i + 1,
				Text: text,
				Tag:  c.Classify(text),
			})
		}
	}
	return out, warnings, nil
}
