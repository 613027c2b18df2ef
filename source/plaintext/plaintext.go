// Package plaintext reads line documents from UTF-8 text in which pages are
// separated by form feeds, the layout `pdftotext -layout` and most OCR
// command-line tools write.
package plaintext

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/SchmidtDSE/ocr-extract-nps-tables/source"
)

// Name is the registry name of this source.
const Name = "text"

func init() {
	source.Register(Name, func(path string) (source.Document, error) {
		return Open(path)
	})
}

// Open reads the text file at path.
func Open(path string) (source.Pages, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening text: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read splits r into pages at form feeds and pages into lines. A form feed
// at the very end does not start an empty final page.
func Read(r io.Reader) (source.Pages, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading text: %w", err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\f")
	if text == "" {
		return source.Pages{}, nil
	}

	chunks := strings.Split(text, "\f")
	pages := make(source.Pages, len(chunks))
	for i, chunk := range chunks {
		chunk = strings.TrimSuffix(chunk, "\n")
		if chunk == "" {
			pages[i] = []string{}
			continue
		}
		pages[i] = strings.Split(chunk, "\n")
	}
	return pages, nil
}
