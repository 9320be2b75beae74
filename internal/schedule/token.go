package schedule

import (
	"strings"

	"github.com/shiftscan/shiftscan/internal/ocr"
)

// Token is the normalized in-core form of one OCR detection: trimmed text,
// confidence, and the centroid of the detection's bounding polygon.
// Index is the position of the source detection in the recognizer output and
// serves as the stable secondary key for every tie-break in the pipeline.
type Token struct {
	Text       string
	Confidence float64
	CX         float64
	CY         float64
	Index      int
}

// tokenize converts detections into tokens, dropping any below the minimum
// confidence. The centroid is the mean of the polygon's four corners.
func tokenize(page *ocr.Page, minConfidence float64) []Token {
	tokens := make([]Token, 0, len(page.Detections))
	for i, d := range page.Detections {
		if d.Confidence < minConfidence {
			continue
		}
		var sx, sy float64
		for _, pt := range d.Box {
			sx += pt.X
			sy += pt.Y
		}
		tokens = append(tokens, Token{
			Text:       strings.TrimSpace(d.Text),
			Confidence: d.Confidence,
			CX:         sx / 4.0,
			CY:         sy / 4.0,
			Index:      i,
		})
	}
	return tokens
}
