// Package table holds the aggregated stand-table output: one record per
// (map unit, species row), sorted by lifeform class and species.
package table

import (
	"math"
	"strconv"
)

// Stat is one numeric statistic. Valid is false when the value is absent.
type Stat struct {
	Value float64
	Valid bool
}

// Float returns a present statistic.
func Float(v float64) Stat {
	return Stat{Value: v, Valid: true}
}

// Absent returns a missing statistic.
func Absent() Stat {
	return Stat{}
}

// normalize folds the values a float64 can hold but a table cell cannot
// represent: NaN and infinities become absent, negative zero becomes zero.
func (s Stat) normalize() Stat {
	if !s.Valid || math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		return Absent()
	}
	if s.Value == 0 {
		return Float(0)
	}
	return s
}

// String formats the statistic with the fewest digits that round-trip, or
// the empty string when absent.
func (s Stat) String() string {
	if !s.Valid {
		return ""
	}
	return strconv.FormatFloat(s.Value, 'f', -1, 64)
}

// Record is a single row of the output table.
type Record struct {
	MapUnitID string
	Species   string
	Class     string
	Con       Stat
	Avg       Stat
	Min       Stat
	Max       Stat
}

// Header is the column order used by Fields and the CSV writer.
var Header = []string{"MapUnitId", "Species", "Class", "Con", "Avg", "Min", "Max"}

// Fields returns the record's cells in Header order.
func (r Record) Fields() []string {
	return []string{
		r.MapUnitID,
		r.Species,
		r.Class,
		r.Con.String(),
		r.Avg.String(),
		r.Min.String(),
		r.Max.String(),
	}
}

func (r Record) normalize() Record {
	r.Con = r.Con.normalize()
	r.Avg = r.Avg.normalize()
	r.Min = r.Min.normalize()
	r.Max = r.Max.normalize()
	return r
}
