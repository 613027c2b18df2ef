// Package textnorm cleans extracted and recognised text lines before they
// reach the line classifier.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Line returns s in NFKC form with surrounding whitespace removed and every
// internal run of whitespace collapsed to a single ASCII space.
//
// NFKC folds the compatibility characters that OCR engines and PDF fonts
// emit (ligatures such as "ﬁ", full-width digits, no-break spaces) into the
// plain forms the classifier and segmenter match against.
func Line(s string) string {
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// Lines applies Line to every element of lines and returns a new slice.
func Lines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = Line(l)
	}
	return out
}
