package npstables

import (
	"github.com/SchmidtDSE/ocr-extract-nps-tables/classify"
	"github.com/SchmidtDSE/ocr-extract-nps-tables/mapping"
)

// ExtractOptions holds configuration for table extraction.
type ExtractOptions struct {
	// Line source name; empty means detect from the path
	source string

	// Page selection. Mapping entries come first, then bare pages, which
	// map to themselves. Both empty means every page.
	mapping mapping.Mapping
	pages   []int

	// Page failures abort the run instead of becoming warnings
	strict bool

	// Number of pages built concurrently
	workers int

	// Line classification; nil means classify.DefaultConfig
	classify *classify.Config
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		workers: 1,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		source:  o.source,
		strict:  o.strict,
		workers: o.workers,
	}

	if o.mapping != nil {
		newOpts.mapping = make(mapping.Mapping, len(o.mapping))
		for i, e := range o.mapping {
			newOpts.mapping[i] = mapping.Entry{
				Page:     e.Page,
				MapUnits: append([]string(nil), e.MapUnits...),
			}
		}
	}
	if o.pages != nil {
		newOpts.pages = append([]int(nil), o.pages...)
	}
	if o.classify != nil {
		cfg := classify.Config{
			NoiseLines:      append([]string(nil), o.classify.NoiseLines...),
			NoiseSubstrings: append([]string(nil), o.classify.NoiseSubstrings...),
			Classes:         append([]string(nil), o.classify.Classes...),
		}
		newOpts.classify = &cfg
	}

	return newOpts
}

// classifier builds the configured classifier.
func (o ExtractOptions) classifier() *classify.Classifier {
	if o.classify == nil {
		return classify.Default()
	}
	return classify.New(*o.classify)
}

// plan returns the page mapping to run against a document of pageCount
// pages.
func (o ExtractOptions) plan(pageCount int) mapping.Mapping {
	if len(o.mapping) == 0 && len(o.pages) == 0 {
		all := make([]int, pageCount)
		for i := range all {
			all[i] = i + 1
		}
		return mapping.FromPages(all...)
	}

	m := append(mapping.Mapping(nil), o.mapping...)
	return append(m, mapping.FromPages(o.pages...)...)
}
