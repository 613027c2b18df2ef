package table

import (
	"sort"
)

// Table is the aggregated, sorted result of an extraction run.
type Table struct {
	Records []Record
}

// Aggregate concatenates the per-page batches in the order given, normalises
// their statistics and sorts the result by (Class, Species).
//
// The sort is stable, so records sharing a class and species keep their
// batch order; fan-out copies of one row stay in map-unit order. Rows with
// an unknown (empty) class sort after every named class. With no records the
// result is an empty table, never nil.
func Aggregate(batches ...[]Record) *Table {
	n := 0
	for _, b := range batches {
		n += len(b)
	}

	records := make([]Record, 0, n)
	for _, b := range batches {
		for _, r := range b {
			records = append(records, r.normalize())
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return less(records[i], records[j])
	})

	return &Table{Records: records}
}

func less(a, b Record) bool {
	if a.Class != b.Class {
		if a.Class == "" {
			return false
		}
		if b.Class == "" {
			return true
		}
		return a.Class < b.Class
	}
	return a.Species < b.Species
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Empty reports whether the table has no records.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// MapUnits returns the distinct map unit IDs in first-appearance order.
func (t *Table) MapUnits() []string {
	return t.distinct(func(r Record) string { return r.MapUnitID })
}

// Classes returns the distinct lifeform classes in table order.
func (t *Table) Classes() []string {
	return t.distinct(func(r Record) string { return r.Class })
}

// ForMapUnit returns the records of one map unit, in table order.
func (t *Table) ForMapUnit(id string) []Record {
	if t == nil {
		return nil
	}
	var out []Record
	for _, r := range t.Records {
		if r.MapUnitID == id {
			out = append(out, r)
		}
	}
	return out
}

func (t *Table) distinct(key func(Record) string) []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t.Records {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
