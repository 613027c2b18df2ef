package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	npstables "github.com/SchmidtDSE/ocr-extract-nps-tables"
	"github.com/SchmidtDSE/ocr-extract-nps-tables/classify"
	"github.com/SchmidtDSE/ocr-extract-nps-tables/source"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	logLevel       string
	input          string
	source         string
	strict         bool
	pages          []int
	noise          []string
	noiseSubstring []string
	classes        []string
}

func newRootCmd(log *logrus.Logger) *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "npstables",
		Short: "Extract stand tables from vegetation survey reports",
		Long: `Extract species-composition stand tables from vegetation survey reports.

Each selected page is read as text lines, classified into noise, lifeform
markers, section ends and species rows, and every row is copied to each map
unit the page describes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(g.logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVarP(&g.input, "input", "i", "", "report to read: PDF, hOCR, text, or a directory of page images")
	pf.StringVar(&g.source, "source", "", fmt.Sprintf("line source, overriding format detection (one of %v)", source.List()))
	pf.BoolVar(&g.strict, "strict", false, "fail on missing or unreadable pages instead of warning")
	pf.IntSliceVar(&g.pages, "pages", nil, "pages to read; each page is its own map unit unless mapped")
	pf.StringSliceVar(&g.noise, "noise", nil, "additional noise line (exact match, repeatable)")
	pf.StringSliceVar(&g.noiseSubstring, "noise-substring", nil, "additional noise substring (repeatable)")
	pf.StringSliceVar(&g.classes, "class", nil, "additional lifeform class name (repeatable)")

	root.AddCommand(newExtractCmd(log, g))
	root.AddCommand(newLinesCmd(log, g))
	return root
}

// extractor builds the Extractor the global flags describe.
func (g *globalFlags) extractor() (*npstables.Extractor, error) {
	if g.input == "" {
		return nil, fmt.Errorf("--input is required")
	}

	ext := npstables.Open(g.input)
	if g.source != "" {
		ext = ext.Source(g.source)
	}
	if g.strict {
		ext = ext.StrictPages()
	}
	if len(g.pages) > 0 {
		ext = ext.Pages(g.pages...)
	}

	cfg := classify.DefaultConfig()
	cfg.NoiseLines = append(cfg.NoiseLines, g.noise...)
	cfg.NoiseSubstrings = append(cfg.NoiseSubstrings, g.noiseSubstring...)
	cfg.Classes = append(cfg.Classes, g.classes...)
	return ext.Classifier(cfg), nil
}

// logWarnings writes one log entry per warning.
func logWarnings(log logrus.FieldLogger, warnings []npstables.Warning) {
	for _, w := range warnings {
		entry := log.WithField("kind", w.Kind.String())
		if w.Page > 0 {
			entry = entry.WithField("page", w.Page)
		}
		if len(w.MapUnits) > 0 {
			entry = entry.WithField("map_units", w.MapUnits)
		}
		if w.Line > 0 {
			entry = entry.WithField("line", w.Line)
		}
		if w.Text != "" {
			entry = entry.WithField("text", w.Text)
		}
		if w.Err != nil {
			entry = entry.WithError(w.Err)
		}
		entry.Warn("skipped")
	}
}
