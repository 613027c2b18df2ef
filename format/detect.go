// Package format detects which line source reads an input path.
package format

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// HOCR indicates an hOCR file written by an OCR engine.
	HOCR
	// ScanDir indicates a directory of scanned page images.
	ScanDir
	// Text indicates plain text with form-feed page breaks.
	Text
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case HOCR:
		return "hOCR"
	case ScanDir:
		return "scan directory"
	case Text:
		return "text"
	default:
		return "Unknown"
	}
}

// Source returns the registry name of the line source that reads the
// format, or "" for Unknown.
func (f Format) Source() string {
	switch f {
	case PDF:
		return "pdf"
	case HOCR:
		return "hocr"
	case ScanDir:
		return "scan"
	case Text:
		return "text"
	default:
		return ""
	}
}

// Detect determines format from the filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return PDF
	case ".hocr", ".html", ".htm", ".xhtml":
		return HOCR
	case ".txt", ".text":
		return Text
	default:
		return Unknown
	}
}

// DetectFromMagic checks the leading bytes of a file. It returns Unknown if
// the format cannot be determined from them.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return PDF
	}
	if detectHTMLMagic(data) {
		return HOCR
	}
	if len(data) > 0 && utf8.Valid(trimIncompleteRune(data)) && !bytes.ContainsRune(data, 0) {
		return Text
	}
	return Unknown
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	upper := strings.ToUpper(strings.TrimLeft(string(data), " \t\r\n"))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") || strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML
	return strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML")
}

// trimIncompleteRune drops a multi-byte rune cut off at the end of a sniffed
// prefix.
func trimIncompleteRune(data []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(data); i++ {
		if utf8.RuneStart(data[len(data)-i]) {
			if !utf8.FullRune(data[len(data)-i:]) {
				return data[:len(data)-i]
			}
			break
		}
	}
	return data
}

// DetectFromReader inspects up to 512 leading bytes of r.
func DetectFromReader(r io.Reader) (Format, error) {
	magic := make([]byte, 512)
	n, err := io.ReadFull(r, magic)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}

// DetectPath determines the format of path: directories are scan
// directories, known extensions win, and anything else is sniffed.
func DetectPath(path string) (Format, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Unknown, err
	}
	if info.IsDir() {
		return ScanDir, nil
	}
	if f := Detect(path); f != Unknown {
		return f, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer file.Close()
	return DetectFromReader(file)
}
