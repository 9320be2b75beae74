// Package diag writes the parse pipeline's side-channel debug artifacts: a
// plain-text trace of the token stream plus the parsed result, and a raw dump
// of recognizer output. Both are troubleshooting aids for scans that parse
// badly; nothing in the pipeline reads them back.
package diag

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shiftscan/shiftscan/internal/ocr"
	"github.com/shiftscan/shiftscan/internal/schedule"
)

// tokenSampleLimit caps the token listing so traces of dense scans stay
// readable.
const tokenSampleLimit = 200

// FileTrace writes a parse trace to a fixed path, overwriting the previous
// trace. It implements the schedule parser's Diagnostics interface.
type FileTrace struct {
	path          string
	minConfidence float64
	log           *slog.Logger
}

// NewFileTrace returns a trace sink writing to path. minConfidence is echoed
// into the trace header so a reader knows which cutoff produced the sample.
func NewFileTrace(path string, minConfidence float64, log *slog.Logger) *FileTrace {
	if log == nil {
		log = slog.Default()
	}
	return &FileTrace{path: path, minConfidence: minConfidence, log: log}
}

// WriteTrace renders tokens and the parsed result to the trace file. Failures
// are logged and swallowed; a missing trace must never fail a parse.
func (t *FileTrace) WriteTrace(tokens []schedule.Token, result *schedule.Result) {
	var b strings.Builder
	fmt.Fprintf(&b, "tokens_total=%d | records_found=%d\n", len(tokens), len(result.Records))

	fmt.Fprintf(&b, "=== TOKENS SAMPLE (min_conf=%g) ===\n", t.minConfidence)
	sample := tokens
	if len(sample) > tokenSampleLimit {
		sample = sample[:tokenSampleLimit]
	}
	for _, tk := range sample {
		fmt.Fprintf(&b, "%s (conf=%.2f) cx=%.1f cy=%.1f\n", tk.Text, tk.Confidence, tk.CX, tk.CY)
	}

	b.WriteString("\n=== PARSED ===\n")
	parsed, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		t.log.Warn("failed to marshal parse result for trace", "error", err)
		return
	}
	b.Write(parsed)

	if err := writeFile(t.path, []byte(b.String())); err != nil {
		t.log.Warn("failed to write parse trace", "path", t.path, "error", err)
	}
}

// FormatRaw renders a recognized page as one line per detection with its
// confidence, the shape of the raw OCR dump.
func FormatRaw(page *ocr.Page) string {
	var b strings.Builder
	for _, d := range page.Detections {
		fmt.Fprintf(&b, "%s (conf=%.2f)\n", d.Text, d.Confidence)
	}
	return b.String()
}

// WriteRaw saves the raw recognizer output for a page to path.
func WriteRaw(path string, page *ocr.Page) error {
	if err := writeFile(path, []byte(FormatRaw(page))); err != nil {
		return fmt.Errorf("failed to write raw ocr dump: %w", err)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
