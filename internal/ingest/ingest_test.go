package ingest

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"scan.png", true},
		{"scan.PNG", true},
		{"scan.jpg", true},
		{"scan.jpeg", true},
		{"scan.tiff", true},
		{"schedule.pdf", true},
		{"notes.txt", false},
		{"archive.zip", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := Supported(tt.path); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestPages_Image(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "scan.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	pages, err := Pages(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if !bytes.Equal(pages[0], buf.Bytes()) {
		t.Error("image page should pass through unmodified")
	}
}

func TestPages_MissingFile(t *testing.T) {
	if _, err := Pages(context.Background(), "/nonexistent/scan.png", nil); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPages_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.txt")
	if err := os.WriteFile(path, []byte("not a scan"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Pages(context.Background(), path, nil); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestRenderPDF(t *testing.T) {
	testPDF := filepath.Join("..", "..", "testdata", "schedule.pdf")
	if _, err := os.Stat(testPDF); os.IsNotExist(err) {
		t.Skip("test fixture not found")
	}

	pages, err := Pages(context.Background(), testPDF, nil)
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	if len(pages) == 0 {
		t.Fatal("expected at least one rendered page")
	}
	for i, data := range pages {
		if _, err := png.Decode(bytes.NewReader(data)); err != nil {
			t.Errorf("page %d is not valid PNG: %v", i+1, err)
		}
	}
}
