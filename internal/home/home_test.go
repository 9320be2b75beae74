package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_DefaultPath(t *testing.T) {
	d, err := New("")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no user home dir: %v", err)
	}
	want := filepath.Join(userHome, DefaultDirName)
	if d.Path() != want {
		t.Errorf("expected %s, got %s", want, d.Path())
	}
}

func TestNew_CustomPath(t *testing.T) {
	d, err := New("/tmp/custom-shiftscan")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if d.Path() != "/tmp/custom-shiftscan" {
		t.Errorf("expected custom path, got %s", d.Path())
	}
}

func TestDir_Paths(t *testing.T) {
	d, _ := New("/base")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"userdata", d.UserdataPath(), "/base/userdata"},
		{"uploads", d.UploadsPath(), "/base/uploads"},
		{"config", d.ConfigPath(), "/base/config.yaml"},
		{"database", d.DatabasePath(), "/base/shiftscan.db"},
		{"raw ocr", d.RawOCRPath(), "/base/userdata/raw_ocr.txt"},
		{"trace", d.TracePath(), "/base/userdata/parsed_debug.txt"},
		{"export", d.ExportPath("shifts.csv"), "/base/userdata/shifts.csv"},
		{"upload", d.UploadPath("abc", ".png"), "/base/uploads/abc.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, tt.got)
			}
		})
	}
}

func TestDir_EnsureExists(t *testing.T) {
	base := filepath.Join(t.TempDir(), "newhome")
	d, _ := New(base)

	if d.Exists() {
		t.Fatal("home should not exist yet")
	}
	if err := d.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}
	if !d.Exists() {
		t.Error("home should exist after EnsureExists")
	}

	for _, p := range []string{d.UserdataPath(), d.UploadsPath()} {
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("expected %s to exist: %v", p, err)
		}
		if !info.IsDir() {
			t.Errorf("expected %s to be a directory", p)
		}
	}

	// Idempotent.
	if err := d.EnsureExists(); err != nil {
		t.Errorf("second EnsureExists failed: %v", err)
	}
}

func TestDir_ConfigExists(t *testing.T) {
	base := t.TempDir()
	d, _ := New(base)

	if d.ConfigExists() {
		t.Fatal("config should not exist yet")
	}
	if err := os.WriteFile(d.ConfigPath(), []byte("target_name: X\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if !d.ConfigExists() {
		t.Error("config should exist")
	}
}
