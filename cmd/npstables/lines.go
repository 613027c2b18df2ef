package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newLinesCmd(log *logrus.Logger, g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lines",
		Short: "Print the lines of the selected pages with their classification",
		Long: `Print every line of the selected pages, normalised, with the tag the
classifier gives it. Use it to tune --noise, --noise-substring and --class
for a new report.

Example:
  npstables lines -i report.pdf --pages 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := g.extractor()
			if err != nil {
				return err
			}

			lines, warnings, err := ext.Lines()
			if err != nil {
				return err
			}
			logWarnings(log, warnings)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PAGE\tLINE\tTAG\tTEXT")
			for _, l := range lines {
				fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", l.Page, l.Line, l.Tag, l.Text)
			}
			return tw.Flush()
		},
	}
}
