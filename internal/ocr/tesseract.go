package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/otiai10/gosseract/v2"
)

const TesseractName = "tesseract"

// TesseractConfig configures the tesseract recognizer.
type TesseractConfig struct {
	// Language is the tesseract language pack. Multiple languages can be
	// given as a "+" separated string (e.g. "eng+spa"). Default "eng".
	Language string
	// PageSegMode is the tesseract page segmentation mode. Default 6
	// (single uniform block), which suits dense schedule tables.
	PageSegMode int
}

// Tesseract recognizes text with word-level bounding boxes via gosseract.
// A fresh gosseract client is created per call; the recognizer itself is
// stateless and safe for concurrent use.
type Tesseract struct {
	language    string
	pageSegMode gosseract.PageSegMode
}

// NewTesseract creates a tesseract-backed recognizer.
func NewTesseract(cfg TesseractConfig) *Tesseract {
	lang := cfg.Language
	if lang == "" {
		lang = "eng"
	}
	psm := cfg.PageSegMode
	if psm <= 0 {
		psm = int(gosseract.PSM_SINGLE_BLOCK)
	}
	return &Tesseract{
		language:    lang,
		pageSegMode: gosseract.PageSegMode(psm),
	}
}

// Name returns "tesseract".
func (t *Tesseract) Name() string { return TesseractName }

// Recognize performs OCR and returns word-level detections.
// Tesseract reports axis-aligned rectangles; they are converted to the
// four-corner polygon form, and confidences are normalized from 0-100 to [0,1].
func (t *Tesseract) Recognize(ctx context.Context, img []byte) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfgImg, _, err := image.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image dimensions: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(t.pageSegMode); err != nil {
		return nil, fmt.Errorf("failed to set page seg mode: %w", err)
	}
	if err := client.SetImageFromBytes(img); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("tesseract OCR failed: %w", err)
	}

	page := &Page{
		Detections: make([]Detection, 0, len(boxes)),
		Width:      cfgImg.Width,
		Height:     cfgImg.Height,
	}
	for _, b := range boxes {
		r := b.Box
		page.Detections = append(page.Detections, Detection{
			Text:       b.Word,
			Confidence: b.Confidence / 100.0,
			Box: [4]Point{
				{X: float64(r.Min.X), Y: float64(r.Min.Y)},
				{X: float64(r.Max.X), Y: float64(r.Min.Y)},
				{X: float64(r.Max.X), Y: float64(r.Max.Y)},
				{X: float64(r.Min.X), Y: float64(r.Max.Y)},
			},
		})
	}

	return sanitize(page), nil
}
