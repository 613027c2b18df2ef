// Package standtable turns the ordered text lines of one report page into
// stand-table rows.
//
// A page is a fold over its lines. The accumulator carries the current
// lifeform class, which starts as [UnknownClass] on every page and changes
// only when a lifeform marker line is seen. Reading stops at the first
// section-end line: nothing after it on the page can produce a row.
package standtable

import (
	"errors"
	"fmt"

	"github.com/SchmidtDSE/ocr-extract-nps-tables/classify"
	"github.com/SchmidtDSE/ocr-extract-nps-tables/internal/textnorm"
	"github.com/SchmidtDSE/ocr-extract-nps-tables/segment"
)

// UnknownClass is the lifeform class of rows that precede every marker on
// their page.
const UnknownClass = ""

// Row is a species row before a map unit has been attached.
type Row struct {
	// Line is the 1-based position of the source line on its page.
	Line    int
	Species string
	Class   string
	Con     float64
	Avg     float64
	Min     float64
	Max     float64
}

// Failure records a data line that could not be segmented.
type Failure struct {
	Line int
	Text string
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("line %d %q: %v", f.Line, f.Text, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// Page is the result of building one page.
type Page struct {
	// Rows are in source line order.
	Rows []Row

	// Failures are data candidates that were dropped, in source line order.
	Failures []Failure

	// Closed is set when a section-end line stopped the page; ClosedAt is
	// that line's position.
	Closed   bool
	ClosedAt int
}

// state is the per-page accumulator.
type state struct {
	class string
	page  Page
}

// Build classifies and segments lines and returns the page's rows. A nil
// classifier uses classify.Default.
func Build(lines []string, c *classify.Classifier) Page {
	if c == nil {
		c = classify.Default()
	}

	st := state{class: UnknownClass}
	for i, raw := range lines {
		lineNo := i + 1
		line := textnorm.Line(raw)

		tag := c.Classify(line)
		switch tag.Kind {
		case classify.SectionEnd:
			st.page.Closed = true
			st.page.ClosedAt = lineNo
			return st.page
		case classify.Noise:
			continue
		case classify.LifeformMarker:
			st.class = tag.Value
		case classify.DataCandidate:
			st.addRow(lineNo, line)
		}
	}
	return st.page
}

func (st *state) addRow(lineNo int, line string) {
	f, err := segment.Segment(line)
	if err != nil {
		// Short lines without numbers are stray prose, not broken rows.
		if errors.Is(err, segment.ErrTooFewTokens) && !segment.HasNumeric(line) {
			return
		}
		st.page.Failures = append(st.page.Failures, Failure{Line: lineNo, Text: line, Err: err})
		return
	}

	st.page.Rows = append(st.page.Rows, Row{
		Line:    lineNo,
		Species: f.Species,
		Class:   st.class,
		Con:     f.Con,
		Avg:     f.Avg,
		Min:     f.Min,
		Max:     f.Max,
	})
}
