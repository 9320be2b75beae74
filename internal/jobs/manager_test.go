package jobs

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shiftscan/shiftscan/internal/config"
	"github.com/shiftscan/shiftscan/internal/home"
	"github.com/shiftscan/shiftscan/internal/ocr"
	"github.com/shiftscan/shiftscan/internal/store"
)

func det(text string, conf, cx, cy float64) ocr.Detection {
	return ocr.Detection{
		Text:       text,
		Confidence: conf,
		Box: [4]ocr.Point{
			{X: cx - 10, Y: cy - 5}, {X: cx + 10, Y: cy - 5},
			{X: cx + 10, Y: cy + 5}, {X: cx - 10, Y: cy + 5},
		},
	}
}

// testPage lays out a digit header row, the target row with M/T/N on days
// 1-3, and a second employee row that must not leak into the result.
func testPage() *ocr.Page {
	return &ocr.Page{
		Width:  500,
		Height: 400,
		Detections: []ocr.Detection{
			det("1", 0.92, 50, 50),
			det("2", 0.92, 150, 50),
			det("3", 0.92, 250, 50),
			det("4", 0.92, 350, 50),
			det("5", 0.92, 450, 50),
			det("NINA ARONOVA", 0.80, 20, 200),
			det("M", 0.95, 52, 200),
			det("T", 0.91, 148, 200),
			det("N", 0.88, 255, 200),
			det("IVAN PETROV", 0.85, 20, 300),
			det("T", 0.90, 50, 300),
		},
	}
}

func writeTestScan(t *testing.T, dir string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "december.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testPipeline(t *testing.T, page *ocr.Page) (*Pipeline, *home.Dir) {
	t.Helper()

	homeDir, err := home.New(filepath.Join(t.TempDir(), ".shiftscan"))
	if err != nil {
		t.Fatal(err)
	}
	if err := homeDir.EnsureExists(); err != nil {
		t.Fatal(err)
	}

	st, err := store.Open(homeDir.DatabasePath())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	cfgMgr, err := config.NewManager("")
	if err != nil {
		t.Fatal(err)
	}

	return &Pipeline{
		Recognizer: &ocr.Stub{NameValue: "stub", Page: page},
		Config:     cfgMgr,
		Home:       homeDir,
		Store:      st,
	}, homeDir
}

func waitTerminal(t *testing.T, m *Manager, id string) *Record {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		rec, ok := m.Get(id)
		if !ok {
			t.Fatalf("job %s disappeared", id)
		}
		if rec.Status.Terminal() {
			return rec
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %s did not finish", id)
	return nil
}

func TestManager_SubmitAndComplete(t *testing.T) {
	pipeline, homeDir := testPipeline(t, testPage())
	scan := writeTestScan(t, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager(pipeline, 2)
	m.Start(ctx)

	rec, err := m.Submit("december.png", scan, 2025, time.December)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.Status != StatusQueued || rec.ID == "" {
		t.Fatalf("unexpected record: %+v", rec)
	}

	done := waitTerminal(t, m, rec.ID)
	if done.Status != StatusCompleted {
		t.Fatalf("job failed: %+v", done)
	}
	if done.Records != 3 || done.ResultID == "" {
		t.Errorf("job outcome wrong: %+v", done)
	}

	// The persisted result must match the job outcome.
	saved, err := pipeline.Store.Get(ctx, done.ResultID)
	if err != nil {
		t.Fatalf("stored result missing: %v", err)
	}
	if saved.Engine != "stub" || len(saved.Result.Records) != 3 {
		t.Errorf("stored result wrong: %+v", saved)
	}
	if saved.Result.Records[0].ShiftCode != "M" || saved.Result.Records[2].End != "2025-12-04 06:00" {
		t.Errorf("records wrong: %+v", saved.Result.Records)
	}

	// Exports and diagnostics land in userdata.
	for _, name := range []string{"shifts.csv", "shifts.json", "shifts.xlsx", "raw_ocr.txt", "parsed_debug.txt"} {
		if _, err := os.Stat(filepath.Join(homeDir.UserdataPath(), name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
}

func TestManager_PersonNotFoundStillCompletes(t *testing.T) {
	page := &ocr.Page{Width: 500, Height: 400, Detections: []ocr.Detection{
		det("IVAN PETROV", 0.9, 20, 200),
		det("M", 0.9, 50, 200),
	}}
	pipeline, _ := testPipeline(t, page)
	scan := writeTestScan(t, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager(pipeline, 1)
	m.Start(ctx)

	rec, err := m.Submit("december.png", scan, 2025, time.December)
	if err != nil {
		t.Fatal(err)
	}
	done := waitTerminal(t, m, rec.ID)
	if done.Status != StatusCompleted {
		t.Fatalf("expected completion with empty result, got %+v", done)
	}
	if done.Records != 0 || done.ResultID == "" {
		t.Errorf("expected saved empty result: %+v", done)
	}
}

func TestManager_FailedJob(t *testing.T) {
	pipeline, _ := testPipeline(t, testPage())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager(pipeline, 1)
	m.Start(ctx)

	rec, err := m.Submit("missing.png", "/nonexistent/missing.png", 2025, time.December)
	if err != nil {
		t.Fatal(err)
	}
	done := waitTerminal(t, m, rec.ID)
	if done.Status != StatusFailed || done.Error == "" {
		t.Fatalf("expected failure, got %+v", done)
	}
}

func TestManager_GetMissing(t *testing.T) {
	m := NewManager(&Pipeline{}, 1)
	if _, ok := m.Get("nope"); ok {
		t.Fatal("expected miss")
	}
}

func TestManager_ListNewestFirst(t *testing.T) {
	pipeline, _ := testPipeline(t, testPage())
	m := NewManager(pipeline, 1)
	// Not started: records stay queued so ordering is observable.
	scan := writeTestScan(t, t.TempDir())

	first, err := m.Submit("a.png", scan, 2025, time.December)
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := m.Submit("b.png", scan, 2025, time.December)
	if err != nil {
		t.Fatal(err)
	}

	all := m.List()
	if len(all) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(all))
	}
	if all[0].ID != second.ID || all[1].ID != first.ID {
		t.Errorf("list not newest first: %v then %v", all[0].Source, all[1].Source)
	}
}
