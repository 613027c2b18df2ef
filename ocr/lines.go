package ocr

import (
	"errors"
	"image"
	"sort"
	"strings"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// PageSegMode represents Tesseract page segmentation modes.
type PageSegMode int

// Page segmentation modes, numbered as in Tesseract.
const (
	PSM_OSD_ONLY               PageSegMode = 0  // Orientation and script detection only
	PSM_AUTO_OSD               PageSegMode = 1  // Automatic with OSD
	PSM_AUTO_ONLY              PageSegMode = 2  // Automatic, no OSD or OCR
	PSM_AUTO                   PageSegMode = 3  // Fully automatic (default)
	PSM_SINGLE_COLUMN          PageSegMode = 4  // Single column of variable sizes
	PSM_SINGLE_BLOCK_VERT_TEXT PageSegMode = 5  // Single uniform block of vertically aligned text
	PSM_SINGLE_BLOCK           PageSegMode = 6  // Single uniform block of text
	PSM_SINGLE_LINE            PageSegMode = 7  // Single text line
	PSM_SINGLE_WORD            PageSegMode = 8  // Single word
	PSM_CIRCLE_WORD            PageSegMode = 9  // Single word in a circle
	PSM_SINGLE_CHAR            PageSegMode = 10 // Single character
	PSM_SPARSE_TEXT            PageSegMode = 11 // Find as much text as possible
	PSM_SPARSE_TEXT_OSD        PageSegMode = 12 // Sparse text with OSD
	PSM_RAW_LINE               PageSegMode = 13 // Treat image as single text line
)

// Recognizer turns a prepared page image into text lines. *Client
// implements it.
type Recognizer interface {
	RecognizeLines(imageData []byte) ([]string, error)
	Close() error
}

// NewRecognizer returns a Tesseract client as a Recognizer.
func NewRecognizer() (Recognizer, error) {
	c, err := New()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Box is one recognised text line with its pixel bounds.
type Box struct {
	Rect       image.Rectangle
	Text       string
	Confidence float64
}

// OrderLines arranges recognised boxes into page lines, top to bottom.
//
// Tesseract reports lines block by block. On a stand-table page the species
// names and the numeric columns are often found as separate blocks, so one
// printed row comes back as several boxes. A box whose vertical centre falls
// inside the first box of the current row joins that row; a row's boxes are
// joined left to right with a space. Boxes with no text are dropped.
func OrderLines(boxes []Box) []string {
	sorted := make([]Box, 0, len(boxes))
	for _, b := range boxes {
		b.Text = strings.TrimSpace(b.Text)
		if b.Text != "" {
			sorted = append(sorted, b)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Rect, sorted[j].Rect
		if a.Min.Y != b.Min.Y {
			return a.Min.Y < b.Min.Y
		}
		return a.Min.X < b.Min.X
	})

	var rows [][]Box
	var span image.Rectangle
	for _, b := range sorted {
		centre := (b.Rect.Min.Y + b.Rect.Max.Y) / 2
		if len(rows) > 0 && centre >= span.Min.Y && centre < span.Max.Y {
			rows[len(rows)-1] = append(rows[len(rows)-1], b)
			continue
		}
		rows = append(rows, []Box{b})
		span = b.Rect
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		sort.SliceStable(row, func(a, b int) bool { return row[a].Rect.Min.X < row[b].Rect.Min.X })
		parts := make([]string, len(row))
		for j, b := range row {
			parts[j] = b.Text
		}
		lines[i] = strings.Join(parts, " ")
	}
	return lines
}
