package npstables

import (
	"fmt"
	"strings"
)

// WarningKind identifies the category of a non-fatal extraction issue.
type WarningKind int

const (
	// WarnRowParse means a data line could not be segmented into a species
	// name and four statistics. The line is skipped.
	WarnRowParse WarningKind = iota
	// WarnMissingPage means a mapped page is outside the document. The page
	// contributes no records.
	WarnMissingPage
	// WarnPageRead means the line source failed to read an existing page.
	// The page contributes no records.
	WarnPageRead
	// WarnEmptyResult means the run produced no records at all.
	WarnEmptyResult
)

// String returns the string representation of the warning kind.
func (k WarningKind) String() string {
	switch k {
	case WarnRowParse:
		return "row parse"
	case WarnMissingPage:
		return "missing page"
	case WarnPageRead:
		return "page read"
	case WarnEmptyResult:
		return "empty result"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal issue encountered during extraction. Extraction
// continues past it, but the table may be missing records.
type Warning struct {
	Kind WarningKind

	// Page is the 1-based page concerned, or 0.
	Page int

	// MapUnits are the map units the page feeds.
	MapUnits []string

	// Line is the 1-based line on the page, or 0.
	Line int

	// Text is the offending line, for row parse warnings.
	Text string

	Err error
}

// String formats the warning on one line.
func (w Warning) String() string {
	var sb strings.Builder
	sb.WriteString(w.Kind.String())
	if w.Page > 0 {
		fmt.Fprintf(&sb, ": page %d", w.Page)
		if len(w.MapUnits) > 0 {
			fmt.Fprintf(&sb, " (map units %s)", strings.Join(w.MapUnits, ", "))
		}
	}
	if w.Line > 0 {
		fmt.Fprintf(&sb, ", line %d", w.Line)
	}
	if w.Text != "" {
		fmt.Fprintf(&sb, " %q", w.Text)
	}
	if w.Err != nil {
		fmt.Fprintf(&sb, ": %v", w.Err)
	}
	return sb.String()
}

// FormatWarnings joins warnings into a human-readable list, one per line.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = "- " + w.String()
	}
	return strings.Join(lines, "\n")
}
