package schedule

import (
	"sort"
	"unicode"
)

// buildDayAnchors maps every configured day to a horizontal position.
//
// Header tokens are those strictly above the target row's band that contain
// at least one digit, ordered left to right. Day i takes the i-th header's
// position when one exists; otherwise it gets a synthetic anchor evenly
// spaced across the image width. OCR rarely recovers every header digit of a
// low-contrast table, so the positional fallback guarantees total coverage at
// the cost of accuracy for undetected columns.
func buildDayAnchors(tokens []Token, targetY, tolerance float64, days []int, imageWidth int) map[int]float64 {
	var headers []Token
	for _, t := range tokens {
		if t.CY < targetY-tolerance && containsDigit(t.Text) {
			headers = append(headers, t)
		}
	}
	sort.Slice(headers, func(i, j int) bool {
		if headers[i].CX != headers[j].CX {
			return headers[i].CX < headers[j].CX
		}
		return headers[i].Index < headers[j].Index
	})

	anchors := make(map[int]float64, len(days))
	for i, day := range days {
		if i < len(headers) {
			anchors[day] = headers[i].CX
		} else {
			anchors[day] = (float64(i) + 0.5) * float64(imageWidth) / float64(len(days))
		}
	}
	return anchors
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
