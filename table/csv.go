package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression selects the codec WriteFile wraps the CSV stream in.
type Compression int

const (
	// None writes plain CSV.
	None Compression = iota
	// Gzip writes gzip-compressed CSV.
	Gzip
	// Zstd writes zstd-compressed CSV.
	Zstd
)

// String returns the codec name.
func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	default:
		return "none"
	}
}

// CompressionFor picks the codec from a file name: ".gz" and ".zst" select
// gzip and zstd, anything else plain text.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	default:
		return None
	}
}

// WriteCSV writes the header row followed by one row per record. Absent
// statistics are written as empty cells.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if t != nil {
		for i, r := range t.Records {
			if err := cw.Write(r.Fields()); err != nil {
				return fmt.Errorf("writing record %d: %w", i, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCompressed writes the CSV through the given codec.
func (t *Table) WriteCompressed(w io.Writer, c Compression) error {
	switch c {
	case None:
		return t.WriteCSV(w)
	case Gzip:
		zw := gzip.NewWriter(w)
		if err := t.WriteCSV(zw); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	case Zstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("creating zstd encoder: %w", err)
		}
		if err := t.WriteCSV(zw); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	default:
		return fmt.Errorf("unknown compression %d", int(c))
	}
}

// WriteFile writes the table to path, compressed according to its
// extension.
func (t *Table) WriteFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", cerr)
		}
	}()

	return t.WriteCompressed(f, CompressionFor(path))
}
