package schedule

import (
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/shiftscan/shiftscan/internal/ocr"
)

// Sentinel errors for the two recoverable parse failures. Both come back with
// a usable (empty) Result so callers can still persist or trace the attempt.
var (
	// ErrNoDetections means the recognizer produced zero detections.
	ErrNoDetections = errors.New("no detections on page")

	// ErrPersonNotFound means no token matched the target name, even after
	// the first-name fallback.
	ErrPersonNotFound = errors.New("target person not found")
)

// Config carries the tuning a Parser needs. It is a plain data struct so the
// config package can build it without the schedule package depending back on
// viper.
type Config struct {
	// TargetName is the employee whose row is reconstructed.
	TargetName string

	// Shifts maps shift codes (cell letters) to their definitions. The map
	// keys are the cell alphabet.
	Shifts map[string]ShiftDef

	// MinConfidence drops detections below this confidence before any
	// geometry runs.
	MinConfidence float64

	// Days lists the day-of-month columns, in the order the table lays them
	// out left to right.
	Days []int

	// Tolerance tunes the row-tolerance estimator.
	Tolerance Tolerance
}

// Diagnostics receives the intermediate token stream and the final result for
// out-of-band inspection. Implementations must not mutate their arguments.
type Diagnostics interface {
	WriteTrace(tokens []Token, result *Result)
}

// Parser reconstructs one person's schedule row from OCR pages.
type Parser struct {
	cfg      Config
	alphabet []string
	log      *slog.Logger
	diag     Diagnostics
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the parser's logger. The default discards nothing; it is
// slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(p *Parser) { p.log = log }
}

// WithDiagnostics attaches a trace sink called once per successful or failed
// parse that got far enough to tokenize.
func WithDiagnostics(d Diagnostics) Option {
	return func(p *Parser) { p.diag = d }
}

// NewParser builds a Parser from cfg. The cell alphabet is derived from the
// shift table's keys, sorted for determinism.
func NewParser(cfg Config, opts ...Option) *Parser {
	p := &Parser{
		cfg:      cfg,
		alphabet: sortedCodes(cfg.Shifts),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the outcome of parsing one page.
type Result struct {
	Person  string        `json:"person"`
	Year    int           `json:"year"`
	Month   int           `json:"month"`
	Days    []int         `json:"days"`
	Records []ShiftRecord `json:"records"`
}

// Parse reconstructs the target person's schedule for the given month from
// one recognized page. Records come back sorted by day.
//
// On ErrNoDetections and ErrPersonNotFound the returned Result is non-nil and
// empty apart from the identifying fields, so callers can store the failed
// attempt alongside successes.
func (p *Parser) Parse(page *ocr.Page, year int, month time.Month) (*Result, error) {
	result := &Result{
		Person:  p.cfg.TargetName,
		Year:    year,
		Month:   int(month),
		Days:    p.cfg.Days,
		Records: []ShiftRecord{},
	}

	if page == nil || len(page.Detections) == 0 {
		return result, ErrNoDetections
	}

	tokens := tokenize(page, p.cfg.MinConfidence)
	p.log.Debug("tokenized page",
		"detections", len(page.Detections),
		"tokens", len(tokens),
		"min_confidence", p.cfg.MinConfidence)

	target, found := locateRow(tokens, p.cfg.TargetName)
	if !found {
		p.trace(tokens, result)
		return result, ErrPersonNotFound
	}

	tolerance := estimateRowTolerance(tokens, p.cfg.Tolerance)
	p.log.Debug("located target row",
		"person", p.cfg.TargetName,
		"row_y", target.CY,
		"tolerance", tolerance)

	anchors := buildDayAnchors(tokens, target.CY, tolerance, p.cfg.Days, page.Width)
	assignments := assignCells(tokens, target.CY, tolerance, anchors, p.cfg.Days, p.alphabet)
	result.Records = buildRecords(assignments, p.cfg.Days, year, month, p.cfg.Shifts, p.cfg.TargetName)

	p.log.Info("parsed schedule",
		"person", p.cfg.TargetName,
		"year", year,
		"month", int(month),
		"cells", len(assignments),
		"records", len(result.Records))

	p.trace(tokens, result)
	return result, nil
}

func (p *Parser) trace(tokens []Token, result *Result) {
	if p.diag != nil {
		p.diag.WriteTrace(tokens, result)
	}
}

func sortedCodes(shifts map[string]ShiftDef) []string {
	codes := make([]string, 0, len(shifts))
	for code := range shifts {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
