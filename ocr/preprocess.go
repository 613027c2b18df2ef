package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	"image/png"
	"math"

	_ "golang.org/x/image/bmp" // register BMP decoding
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoding, including CCITT group 3/4 scans
)

// PrepareOptions controls image preprocessing before recognition.
type PrepareOptions struct {
	// MinWidth upscales narrower images to this width, keeping the aspect
	// ratio. Zero disables scaling.
	MinWidth int

	// Grayscale converts the image to 8-bit gray.
	Grayscale bool
}

// DefaultPrepareOptions returns options suited to letter-size report pages:
// at least 2400 pixels wide (about 280 DPI) and gray.
func DefaultPrepareOptions() PrepareOptions {
	return PrepareOptions{
		MinWidth:  2400,
		Grayscale: true,
	}
}

// Prepare decodes a page image in any registered format (PNG, JPEG, GIF,
// TIFF, BMP), applies opts and returns it PNG-encoded for Tesseract.
func Prepare(data []byte, opts PrepareOptions) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	img := PrepareImage(src, opts)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}

// PrepareImage applies opts to src.
func PrepareImage(src image.Image, opts PrepareOptions) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return src
	}

	scale := 1.0
	if opts.MinWidth > 0 && w < opts.MinWidth {
		scale = float64(opts.MinWidth) / float64(w)
	}
	if scale == 1 && !opts.Grayscale {
		return src
	}

	r := image.Rect(0, 0, int(math.Round(float64(w)*scale)), int(math.Round(float64(h)*scale)))
	var dst draw.Image
	if opts.Grayscale {
		dst = image.NewGray(r)
	} else {
		dst = image.NewRGBA(r)
	}

	if scale == 1 {
		draw.Draw(dst, r, src, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, r, src, b, draw.Src, nil)
	}
	return dst
}
