// Package schedule reconstructs a tabular work schedule from unstructured OCR
// detections and converts it into time-stamped shift records.
//
// The table has one row per employee and one column per day of month, with
// single-letter shift codes in the cells. No grid or ruling-line information
// is used: the structure is recovered purely from token geometry and fuzzy
// text matching. The pipeline is linear:
//
//	detections -> tokens -> row tolerance -> target row -> day anchors ->
//	cell assignment -> shift records
//
// Parsing is synchronous and side-effect free apart from an optional
// diagnostics trace; a Parser is safe to use concurrently across pages.
package schedule
