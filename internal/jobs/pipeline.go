package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftscan/shiftscan/internal/config"
	"github.com/shiftscan/shiftscan/internal/diag"
	"github.com/shiftscan/shiftscan/internal/export"
	"github.com/shiftscan/shiftscan/internal/home"
	"github.com/shiftscan/shiftscan/internal/ingest"
	"github.com/shiftscan/shiftscan/internal/ocr"
	"github.com/shiftscan/shiftscan/internal/schedule"
	"github.com/shiftscan/shiftscan/internal/store"
)

// Pipeline holds the collaborators a parse job needs. One Pipeline is shared
// by all workers; every field must be safe for concurrent use.
type Pipeline struct {
	Recognizer ocr.Recognizer
	Config     *config.Manager
	Home       *home.Dir
	Store      *store.Store
	Logger     *slog.Logger
}

// Outcome is what one pipeline run produced.
type Outcome struct {
	Saved *store.SavedResult
	// Exports are the files written to the userdata directory.
	Exports []string
}

// Run executes the full parse pipeline for one uploaded scan: render pages,
// recognize, parse, persist and export. A multi-page scan is parsed page by
// page and the first page that yields records wins; when no page does, the
// last attempt's (empty) result is still saved so the failure is inspectable.
func (p *Pipeline) Run(ctx context.Context, source, path string, year int, month time.Month) (*Outcome, error) {
	log := p.Logger
	if log == nil {
		log = slog.Default()
	}

	pages, err := ingest.Pages(ctx, path, log)
	if err != nil {
		return nil, err
	}

	cfg := p.Config.Get()
	parser := schedule.NewParser(cfg.ToParserConfig(nil),
		schedule.WithLogger(log),
		schedule.WithDiagnostics(diag.NewFileTrace(p.Home.TracePath(), cfg.MinTokenConfidence, log)))

	var (
		result  *schedule.Result
		lastErr error
	)
	for i, data := range pages {
		page, err := p.Recognizer.Recognize(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("recognition failed on page %d: %w", i+1, err)
		}
		if i == 0 {
			if err := diag.WriteRaw(p.Home.RawOCRPath(), page); err != nil {
				log.Warn("failed to write raw ocr dump", "error", err)
			}
		}

		parsed, err := parser.Parse(page, year, month)
		if err != nil && !errors.Is(err, schedule.ErrNoDetections) && !errors.Is(err, schedule.ErrPersonNotFound) {
			return nil, fmt.Errorf("parse failed on page %d: %w", i+1, err)
		}
		result, lastErr = parsed, err
		if len(parsed.Records) > 0 {
			break
		}
	}

	if lastErr != nil {
		log.Warn("no shifts recovered", "source", source, "reason", lastErr)
	}

	saved, err := p.Store.Save(ctx, source, p.Recognizer.Name(), result)
	if err != nil {
		return nil, err
	}

	exports, err := export.WriteAll(p.Home.UserdataPath(), result)
	if err != nil {
		return nil, err
	}

	return &Outcome{Saved: saved, Exports: exports}, nil
}
