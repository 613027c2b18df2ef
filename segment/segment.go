// Package segment splits a stand-table data line into a species name and
// its four numeric statistics.
//
// Columns are not found by offset. The name ends where the first strictly
// numeric token starts, so multi-word names ("Pinus ponderosa var.
// scopulorum") need no fixed column boundary. A name token that is itself
// numeric ends the name early; that is the expected behaviour for the
// reports this package reads.
package segment

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MinTokens is the smallest token count of a data row: a one-word name
// followed by the four statistics.
const MinTokens = 5

// StatCount is the number of numeric fields taken after the name.
const StatCount = 4

// fieldNames are the statistic columns in positional order.
var fieldNames = [StatCount]string{"Con", "Avg", "Min", "Max"}

// numericToken is an unsigned integer or decimal without separators.
var numericToken = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

var (
	// ErrTooFewTokens reports a line too short to be a data row. It is not
	// a parse failure and does not match ErrParse.
	ErrTooFewTokens = errors.New("fewer than 5 tokens")

	// ErrParse is matched by every failure of a line that is long enough to
	// be a data row.
	ErrParse = errors.New("row parse failure")

	// ErrNoNumeric reports a line without any numeric token.
	ErrNoNumeric = fmt.Errorf("%w: no numeric token", ErrParse)

	// ErrNoSpecies reports a line whose first token is already numeric.
	ErrNoSpecies = fmt.Errorf("%w: no species name before the numbers", ErrParse)

	// ErrTruncated reports fewer than four tokens after the first number.
	ErrTruncated = fmt.Errorf("%w: fewer than 4 tokens after the species name", ErrParse)
)

// NumberError reports a statistic token that is not a number.
type NumberError struct {
	Field string
	Token string
	Err   error
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("row parse failure: %s %q is not a number", e.Field, e.Token)
}

// Unwrap returns the underlying strconv error.
func (e *NumberError) Unwrap() error { return e.Err }

// Is reports ErrParse so callers can test any row failure with errors.Is.
func (e *NumberError) Is(target error) bool { return target == ErrParse }

// Fields is a successfully segmented data row.
type Fields struct {
	Species string
	Con     float64
	Avg     float64
	Min     float64
	Max     float64
}

// Values returns the statistics in column order.
func (f Fields) Values() [StatCount]float64 {
	return [StatCount]float64{f.Con, f.Avg, f.Min, f.Max}
}

// Segment splits line into a species name and four statistics.
//
// Tokens after the fourth statistic (indicator columns, OCR debris) are
// ignored. Values are not range-checked.
func Segment(line string) (Fields, error) {
	tokens := strings.Fields(line)
	if len(tokens) < MinTokens {
		return Fields{}, ErrTooFewTokens
	}

	start := NumericStart(tokens)
	switch {
	case start < 0:
		return Fields{}, ErrNoNumeric
	case start == 0:
		return Fields{}, ErrNoSpecies
	case len(tokens)-start < StatCount:
		return Fields{}, ErrTruncated
	}

	var vals [StatCount]float64
	for i, tok := range tokens[start : start+StatCount] {
		v, err := parseNumber(tok)
		if err != nil {
			return Fields{}, &NumberError{Field: fieldNames[i], Token: tok, Err: err}
		}
		vals[i] = v
	}

	return Fields{
		Species: strings.Join(tokens[:start], " "),
		Con:     vals[0],
		Avg:     vals[1],
		Min:     vals[2],
		Max:     vals[3],
	}, nil
}

// NumericStart returns the index of the first strictly numeric token, or -1.
func NumericStart(tokens []string) int {
	for i, tok := range tokens {
		if IsNumeric(tok) {
			return i
		}
	}
	return -1
}

// IsNumeric reports whether tok is an unsigned integer or decimal such as
// "12" or "12.5".
func IsNumeric(tok string) bool {
	return numericToken.MatchString(tok)
}

// HasNumeric reports whether line contains a numeric token.
func HasNumeric(line string) bool {
	return NumericStart(strings.Fields(line)) >= 0
}

// parseNumber parses a decimal floating-point token. Hexadecimal forms and
// digit separators, which strconv accepts, are rejected.
func parseNumber(tok string) (float64, error) {
	if strings.ContainsAny(tok, "_xXpP") {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(tok, 64)
}
