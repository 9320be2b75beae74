// Package ocr provides the OCR collaborator boundary: recognizers that turn a
// raster image into positioned text detections.
//
// The default engine wraps Tesseract via gosseract and requires Tesseract to
// be installed on the system. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr libtesseract-dev
package ocr

import (
	"context"
	"math"
)

// Point is an image coordinate in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Detection is one OCR output unit: a text string, a confidence score in
// [0,1], and the four corners of its bounding polygon. The shape is fixed and
// validated once at ingestion; downstream code never re-checks arity.
type Detection struct {
	Text       string   `json:"text"`
	Confidence float64  `json:"confidence"`
	Box        [4]Point `json:"box"`
}

// Valid reports whether the detection is well formed: a finite confidence
// within [0,1]. Malformed detections are dropped at the recognizer boundary.
func (d Detection) Valid() bool {
	if math.IsNaN(d.Confidence) || math.IsInf(d.Confidence, 0) {
		return false
	}
	return d.Confidence >= 0 && d.Confidence <= 1
}

// Page is the result of recognizing a single image.
type Page struct {
	Detections []Detection `json:"detections"`
	// Width is the source image width in pixels. It feeds the evenly spaced
	// day-anchor fallback when header digits are not detected.
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Recognizer turns image bytes into a Page of detections.
// Implementations own their engine lifecycle; callers construct and inject
// them explicitly rather than sharing process-global state.
type Recognizer interface {
	// Name returns the engine identifier (e.g. "tesseract", "vision").
	Name() string

	// Recognize performs OCR on image data (PNG, JPEG, TIFF).
	Recognize(ctx context.Context, image []byte) (*Page, error)
}

// sanitize drops malformed detections in place and returns the page.
func sanitize(p *Page) *Page {
	kept := p.Detections[:0]
	for _, d := range p.Detections {
		if d.Valid() {
			kept = append(kept, d)
		}
	}
	p.Detections = kept
	return p
}
