// Command npstables extracts stand tables from vegetation survey reports
// into CSV.
//
//	npstables extract -i report.pdf --map 5=1001,1002 -o stand_tables.csv
//	npstables extract -i report.pdf -m pages.json -o stand_tables.csv.zst
//	npstables lines -i report.pdf --pages 5
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if err := newRootCmd(log).Execute(); err != nil {
		log.WithError(err).Error("npstables failed")
		os.Exit(1)
	}
}
