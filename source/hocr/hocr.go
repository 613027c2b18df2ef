// Package hocr reads line documents from hOCR, the HTML format Tesseract
// and other OCR engines write (`tesseract page.png out hocr`).
//
// Each element of class ocr_page is a page; documents without one are a
// single page. Line elements (ocr_line, ocrx_line, ocr_header, ocr_caption,
// ocr_textfloat) become text lines, their words joined by single spaces and
// ordered by bounding box so that a row split across OCR blocks is joined
// again.
package hocr

import (
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/SchmidtDSE/ocr-extract-nps-tables/ocr"
	"github.com/SchmidtDSE/ocr-extract-nps-tables/source"
)

// Name is the registry name of this source.
const Name = "hocr"

func init() {
	source.Register(Name, func(path string) (source.Document, error) {
		return Open(path)
	})
}

var lineClasses = map[string]bool{
	"ocr_line":      true,
	"ocrx_line":     true,
	"ocr_header":    true,
	"ocr_caption":   true,
	"ocr_textfloat": true,
}

// Open parses the hOCR file at path.
func Open(path string) (source.Pages, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening hOCR: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses hOCR from r.
func Read(r io.Reader) (source.Pages, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR: %w", err)
	}

	var pageNodes []*html.Node
	findByClass(doc, "ocr_page", &pageNodes)
	if len(pageNodes) == 0 {
		pageNodes = []*html.Node{doc}
	}

	pages := make(source.Pages, len(pageNodes))
	for i, p := range pageNodes {
		var boxes []ocr.Box
		collectLines(p, &boxes)
		pages[i] = ocr.OrderLines(boxes)
	}
	return pages, nil
}

// findByClass appends the outermost elements carrying class.
func findByClass(n *html.Node, class string, out *[]*html.Node) {
	if n.Type == html.ElementNode && hasClass(n, class) {
		*out = append(*out, n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		findByClass(c, class, out)
	}
}

func collectLines(n *html.Node, out *[]ocr.Box) {
	if n.Type == html.ElementNode && isLine(n) {
		*out = append(*out, ocr.Box{Rect: bbox(n), Text: lineText(n)})
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectLines(c, out)
	}
}

func isLine(n *html.Node) bool {
	for _, c := range classes(n) {
		if lineClasses[c] {
			return true
		}
	}
	return false
}

// lineText joins the line's ocrx_word elements, or falls back to all of the
// line's text when it has none.
func lineText(n *html.Node) string {
	var words []*html.Node
	findByClass(n, "ocrx_word", &words)
	if len(words) == 0 {
		return strings.Join(strings.Fields(textContent(n)), " ")
	}

	parts := make([]string, 0, len(words))
	for _, w := range words {
		if t := strings.TrimSpace(textContent(w)); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && n.Data == "br" {
			sb.WriteString(" ")
		}
	}
	walk(n)
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func classes(n *html.Node) []string {
	return strings.Fields(attr(n, "class"))
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

// bbox reads the "bbox x0 y0 x1 y1" property of an hOCR title attribute.
// Elements without one get the zero rectangle.
func bbox(n *html.Node) image.Rectangle {
	for _, prop := range strings.Split(attr(n, "title"), ";") {
		fields := strings.Fields(prop)
		if len(fields) != 5 || fields[0] != "bbox" {
			continue
		}
		var v [4]int
		ok := true
		for i, f := range fields[1:] {
			x, err := strconv.Atoi(f)
			if err != nil {
				ok = false
				break
			}
			v[i] = x
		}
		if ok {
			return image.Rect(v[0], v[1], v[2], v[3])
		}
	}
	return image.Rectangle{}
}
