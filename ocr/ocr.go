//go:build ocr

// Package ocr recognises the text lines of scanned report pages.
//
// This build wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract and its development headers to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr libtesseract-dev
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps a Tesseract instance. It is not safe for concurrent use.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client. The client must be closed when no longer
// needed.
func New() (*Client, error) {
	client := gosseract.NewClient()
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c != nil && c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeImage performs OCR on image data (PNG, TIFF, JPEG, etc.) and
// returns the recognised text with surrounding whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// RecognizeLines performs OCR on image data and returns one string per
// recognised text line, top to bottom.
func (c *Client) RecognizeLines(imageData []byte) ([]string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	lines := make([]Box, len(boxes))
	for i, b := range boxes {
		lines[i] = Box{Rect: b.Box, Text: b.Word, Confidence: b.Confidence}
	}
	return OrderLines(lines), nil
}

// SetLanguage sets the language(s) for recognition, e.g. "eng" or
// "eng+lat". The default is English.
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(strings.Split(lang, "+")...)
}

// SetPageSegMode sets the Tesseract page segmentation mode.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return c.client.SetPageSegMode(gosseract.PageSegMode(mode))
}

// Enabled reports whether this build can run OCR.
func Enabled() bool { return true }
