// Package source defines the paginated line documents the extractor reads
// and a registry of the formats that produce them.
//
// A [Document] yields, for each 1-based page, the page's text lines in
// top-to-bottom reading order. How the lines were obtained (embedded PDF
// text, OCR, a pre-computed hOCR file) is invisible to the extractor.
//
// Line sources register themselves by name in their package init, so a
// program selects the ones it supports with blank imports:
//
//	import _ "github.com/SchmidtDSE/ocr-extract-nps-tables/source/pdflines"
//
//	doc, err := source.Open("pdf", "report.pdf")
package source

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrPageOutOfRange is returned by Lines for a page outside 1..PageCount.
var ErrPageOutOfRange = errors.New("page out of range")

// Document is an opened paginated document. Implementations need not be
// safe for concurrent use.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() (int, error)

	// Lines returns the text lines of a 1-based page in reading order.
	Lines(page int) ([]string, error)

	// Close releases the document's resources.
	Close() error
}

// Opener opens the document at path.
type Opener func(path string) (Document, error)

// Registry holds named openers.
type Registry struct {
	mu      sync.RWMutex
	openers map[string]Opener
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{openers: make(map[string]Opener)}
}

// Register adds or replaces the opener for name.
func (r *Registry) Register(name string, open Opener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.openers[name] = open
}

// Get returns the opener for name, or nil.
func (r *Registry) Get(name string) Opener {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.openers[name]
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.openers))
	for name := range r.openers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open opens path with the opener registered as name.
func (r *Registry) Open(name, path string) (Document, error) {
	open := r.Get(name)
	if open == nil {
		return nil, fmt.Errorf("unknown line source %q (have %v)", name, r.List())
	}
	return open(path)
}

var globalRegistry = NewRegistry()

// Register registers an opener globally.
func Register(name string, open Opener) {
	globalRegistry.Register(name, open)
}

// Get retrieves a globally registered opener.
func Get(name string) Opener {
	return globalRegistry.Get(name)
}

// List returns the globally registered names.
func List() []string {
	return globalRegistry.List()
}

// Open opens path with a globally registered opener.
func Open(name, path string) (Document, error) {
	return globalRegistry.Open(name, path)
}

// CheckPage returns ErrPageOutOfRange unless 1 <= page <= count.
func CheckPage(page, count int) error {
	if page < 1 || page > count {
		return fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, count)
	}
	return nil
}
