package schedule

import (
	"math"
	"sort"
)

// Tolerance holds the row-tolerance estimator tuning.
// Floor and Factor are empirically tuned guards: the tolerance must absorb
// OCR jitter without bleeding into adjacent rows.
type Tolerance struct {
	// Floor is the minimum tolerance in source units.
	Floor int
	// Fallback is used when fewer than 2 distinct row centers exist.
	Fallback int
	// Factor scales the median gap between adjacent row centers.
	Factor float64
}

// DefaultTolerance matches the tuning the pipeline was calibrated with.
func DefaultTolerance() Tolerance {
	return Tolerance{Floor: 25, Fallback: 35, Factor: 0.8}
}

// estimateRowTolerance derives the vertical distance that defines "same row"
// from the distribution of token center rows. Scanned tables have roughly
// regular row pitch, so the median gap between distinct (rounded) row centers
// is a good estimate of that pitch.
func estimateRowTolerance(tokens []Token, tol Tolerance) float64 {
	seen := make(map[int]struct{}, len(tokens))
	centers := make([]int, 0, len(tokens))
	for _, t := range tokens {
		c := int(math.Round(t.CY))
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		centers = append(centers, c)
	}

	if len(centers) < 2 {
		return float64(tol.Fallback)
	}
	sort.Ints(centers)

	gaps := make([]int, len(centers)-1)
	for i := 1; i < len(centers); i++ {
		gaps[i-1] = centers[i] - centers[i-1]
	}
	sort.Ints(gaps)

	// Lower-middle element for even counts.
	median := gaps[(len(gaps)-1)/2]

	estimate := int(math.Round(tol.Factor * float64(median)))
	if estimate < tol.Floor {
		return float64(tol.Floor)
	}
	return float64(estimate)
}
