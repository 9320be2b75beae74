package schedule

import (
	"math"
	"strings"
)

// Assignment is one recovered cell: a shift code and the confidence of the
// token that produced it.
type Assignment struct {
	Code       string
	Confidence float64
}

// assignCells maps shift-code tokens inside the target row's vertical band to
// the day whose anchor is horizontally nearest.
//
// A token's code is the first character of its uppercased text that appears
// in the alphabet. When several tokens land on the same day, the highest
// confidence wins and the rest are dropped; equal confidences keep the
// earlier detection. Tokens are visited in detection order and days in
// ascending order, so the result is deterministic for a given input.
func assignCells(tokens []Token, targetY, tolerance float64, anchors map[int]float64, days []int, alphabet []string) map[int]Assignment {
	codes := make(map[rune]string, len(alphabet))
	for _, code := range alphabet {
		for _, r := range strings.ToUpper(code) {
			codes[r] = code
			break
		}
	}

	assignments := make(map[int]Assignment)
	for _, t := range tokens {
		if math.Abs(t.CY-targetY) >= tolerance {
			continue
		}
		code, ok := extractCode(t.Text, codes)
		if !ok {
			continue
		}

		day, found := nearestDay(t.CX, anchors, days)
		if !found {
			continue
		}

		if existing, ok := assignments[day]; !ok || t.Confidence > existing.Confidence {
			assignments[day] = Assignment{Code: code, Confidence: t.Confidence}
		}
	}
	return assignments
}

// extractCode returns the alphabet code for the first matching character of
// the uppercased text, in original text order.
func extractCode(text string, codes map[rune]string) (string, bool) {
	for _, r := range strings.ToUpper(text) {
		if code, ok := codes[r]; ok {
			return code, true
		}
	}
	return "", false
}

// nearestDay returns the day whose anchor is closest to x. Days are scanned
// in ascending order, so an equidistant token resolves to the earlier day.
func nearestDay(x float64, anchors map[int]float64, days []int) (int, bool) {
	best := 0
	bestDist := math.Inf(1)
	found := false
	for _, day := range days {
		anchor, ok := anchors[day]
		if !ok {
			continue
		}
		if dist := math.Abs(x - anchor); dist < bestDist {
			best = day
			bestDist = dist
			found = true
		}
	}
	return best, found
}
