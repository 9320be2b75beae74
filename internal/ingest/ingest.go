// Package ingest turns an uploaded schedule scan into raster pages ready for
// OCR. Images pass through untouched; PDFs are rendered one PNG per page.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// imageExtensions are the raster formats accepted as-is.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
}

// Supported reports whether the file extension is an accepted upload format.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".pdf" || imageExtensions[ext]
}

// Pages loads the scan at path and returns its raster pages in order. A
// raster image yields a single page; a PDF yields one rendered PNG per page.
func Pages(ctx context.Context, path string, log *slog.Logger) ([][]byte, error) {
	if log == nil {
		log = slog.Default()
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("scan not found: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case imageExtensions[ext]:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read scan: %w", err)
		}
		return [][]byte{data}, nil
	case ext == ".pdf":
		return renderPDF(ctx, path, log)
	default:
		return nil, fmt.Errorf("unsupported scan format: %s", ext)
	}
}

// renderPDF renders every page of the PDF to PNG bytes, in page order.
func renderPDF(ctx context.Context, pdfPath string, log *slog.Logger) ([][]byte, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	pageCount, err := api.PageCount(f, nil)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to get page count: %w", err)
	}
	if pageCount == 0 {
		return nil, fmt.Errorf("PDF has no pages: %s", pdfPath)
	}
	log.Debug("rendering PDF", "file", filepath.Base(pdfPath), "pages", pageCount)

	type result struct {
		page int
		data []byte
		err  error
	}

	results := make(chan result, pageCount)
	sem := make(chan struct{}, runtime.NumCPU())

	for page := 1; page <= pageCount; page++ {
		sem <- struct{}{} // acquire
		go func(page int) {
			defer func() { <-sem }() // release

			if err := ctx.Err(); err != nil {
				results <- result{page: page, err: err}
				return
			}
			data, err := renderPage(pdfPath, page)
			results <- result{page: page, data: data, err: err}
		}(page)
	}

	pages := make([][]byte, pageCount)
	for i := 0; i < pageCount; i++ {
		r := <-results
		if r.err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", r.page, r.err)
		}
		pages[r.page-1] = r.data
	}
	return pages, nil
}

// renderPage renders a single PDF page to PNG using pdftoppm (poppler-utils).
func renderPage(pdfPath string, page int) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "shiftscan-page-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	outputPrefix := filepath.Join(tmpDir, "page")

	// -r 300: schedule tables carry small single letters, so render at a
	// resolution OCR can work with.
	pageStr := fmt.Sprintf("%d", page)
	cmd := exec.Command("pdftoppm",
		"-png",
		"-f", pageStr,
		"-l", pageStr,
		"-r", "300",
		"-singlefile",
		pdfPath,
		outputPrefix,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w (output: %s)", err, string(output))
	}

	data, err := os.ReadFile(outputPrefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("pdftoppm did not create expected output: %w", err)
	}
	return data, nil
}
