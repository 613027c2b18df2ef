package mapping

import (
	"github.com/SchmidtDSE/ocr-extract-nps-tables/standtable"
	"github.com/SchmidtDSE/ocr-extract-nps-tables/table"
)

// Expand produces one record per (row, map unit) pair: rows in order, and
// for each row the map units in the order given. A page with k rows mapped
// to m units yields k*m records.
func Expand(rows []standtable.Row, mapUnits []string) []table.Record {
	if len(rows) == 0 || len(mapUnits) == 0 {
		return nil
	}

	out := make([]table.Record, 0, len(rows)*len(mapUnits))
	for _, r := range rows {
		for _, id := range mapUnits {
			out = append(out, table.Record{
				MapUnitID: id,
				Species:   r.Species,
				Class:     r.Class,
				Con:       table.Float(r.Con),
				Avg:       table.Float(r.Avg),
				Min:       table.Float(r.Min),
				Max:       table.Float(r.Max),
			})
		}
	}
	return out
}
