// Package mapping associates report pages with the map units whose stand
// tables they carry, and replicates each page's rows once per map unit.
package mapping

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingPage is matched by MissingPageError.
var ErrMissingPage = errors.New("page not in document")

// ErrInvalid is matched by every mapping validation error.
var ErrInvalid = errors.New("invalid page mapping")

// MissingPageError reports a mapped page outside the document.
type MissingPageError struct {
	Page      int
	PageCount int
	MapUnits  []string
}

func (e *MissingPageError) Error() string {
	return fmt.Sprintf("page %d (map units %s) not in document of %d pages",
		e.Page, strings.Join(e.MapUnits, ", "), e.PageCount)
}

// Is reports ErrMissingPage.
func (e *MissingPageError) Is(target error) bool { return target == ErrMissingPage }

// Entry maps one 1-based page to the map units described on it.
type Entry struct {
	Page     int
	MapUnits []string
}

// Resolve checks that the entry's page exists in a document of pageCount
// pages.
func (e Entry) Resolve(pageCount int) error {
	if e.Page < 1 || e.Page > pageCount {
		return &MissingPageError{Page: e.Page, PageCount: pageCount, MapUnits: e.MapUnits}
	}
	return nil
}

// Mapping is the ordered list of pages to scan. Pages are processed, and
// their rows concatenated, in this order.
type Mapping []Entry

// Validate checks that every page is positive and every entry names at
// least one non-blank map unit.
func (m Mapping) Validate() error {
	if len(m) == 0 {
		return fmt.Errorf("%w: no pages", ErrInvalid)
	}
	for i, e := range m {
		if e.Page < 1 {
			return fmt.Errorf("%w: entry %d: page %d is not 1-based", ErrInvalid, i, e.Page)
		}
		if len(e.MapUnits) == 0 {
			return fmt.Errorf("%w: page %d: no map units", ErrInvalid, e.Page)
		}
		for _, id := range e.MapUnits {
			if strings.TrimSpace(id) == "" {
				return fmt.Errorf("%w: page %d: blank map unit", ErrInvalid, e.Page)
			}
		}
	}
	return nil
}

// Pages returns the mapped page numbers in order.
func (m Mapping) Pages() []int {
	pages := make([]int, len(m))
	for i, e := range m {
		pages[i] = e.Page
	}
	return pages
}

// MapUnitCount returns the total number of (page, map unit) pairs.
func (m Mapping) MapUnitCount() int {
	n := 0
	for _, e := range m {
		n += len(e.MapUnits)
	}
	return n
}

// Add appends mapUnits to page, merging with an existing entry for the same
// page so a page is scanned once.
func (m Mapping) Add(page int, mapUnits ...string) Mapping {
	for i := range m {
		if m[i].Page == page {
			m[i].MapUnits = append(m[i].MapUnits, mapUnits...)
			return m
		}
	}
	return append(m, Entry{Page: page, MapUnits: append([]string(nil), mapUnits...)})
}

// FromPages builds a mapping in which each page is its own map unit, named
// by the page number.
func FromPages(pages ...int) Mapping {
	var m Mapping
	for _, p := range pages {
		m = m.Add(p, fmt.Sprint(p))
	}
	return m
}
