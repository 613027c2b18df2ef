package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SchmidtDSE/ocr-extract-nps-tables/mapping"
)

func newExtractCmd(log *logrus.Logger, g *globalFlags) *cobra.Command {
	var (
		mappingFile string
		maps        []string
		output      string
		workers     int
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Write the stand tables of the selected pages as CSV",
		Long: `Write the stand tables of the selected pages as CSV.

Pages are selected by a JSON mapping file, by --map flags, or by --pages,
in which case each page is its own map unit named by its page number. With
no selection every page is read.

The mapping file is either page-keyed or map-unit-keyed:

  {"5": ["1001", "1002"], "7": "1003"}
  {"1001": 5, "1002": 5, "1003": 7}

Output ending in .gz or .zst is compressed.

Examples:
  npstables extract -i report.pdf --map 5=1001,1002
  npstables extract -i report.pdf -m pages.json -o stand_tables.csv.gz
  npstables extract -i scans/ --source scan --pages 5,7 --workers 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := g.extractor()
			if err != nil {
				return err
			}

			if mappingFile != "" {
				m, err := mapping.Load(mappingFile)
				if err != nil {
					return err
				}
				log.WithFields(logrus.Fields{
					"file":      mappingFile,
					"pages":     len(m),
					"map_units": m.MapUnitCount(),
				}).Debug("loaded page mapping")
				ext = ext.Mapping(m)
			}
			var flagged mapping.Mapping
			for _, s := range maps {
				e, err := mapping.ParseFlag(s)
				if err != nil {
					return err
				}
				flagged = flagged.Add(e.Page, e.MapUnits...)
			}
			if len(flagged) > 0 {
				log.WithFields(logrus.Fields{
					"pages":     flagged.Pages(),
					"map_units": flagged.MapUnitCount(),
				}).Debug("page mapping from flags")
			}
			ext = ext.Mapping(flagged).Workers(workers)

			log.WithField("input", g.input).Debug("extracting stand tables")
			tbl, warnings, err := ext.Table()
			if err != nil {
				return err
			}
			logWarnings(log, warnings)

			if output == "" || output == "-" {
				if err := tbl.WriteCSV(cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("writing CSV: %w", err)
				}
			} else if err := tbl.WriteFile(output); err != nil {
				return err
			}

			log.WithFields(logrus.Fields{
				"records":   tbl.Len(),
				"map_units": len(tbl.MapUnits()),
				"output":    output,
			}).Info("stand tables extracted")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&mappingFile, "mapping", "m", "", "JSON file mapping pages to map unit IDs")
	f.StringArrayVar(&maps, "map", nil, "page mapping PAGE=MAPUNIT[,MAPUNIT...] (repeatable)")
	f.StringVarP(&output, "output", "o", "", "CSV output path (default stdout)")
	f.IntVarP(&workers, "workers", "w", 1, "pages processed concurrently")
	return cmd
}
