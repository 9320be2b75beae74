package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.TargetName == "" {
		t.Error("expected default target name")
	}
	if cfg.MinTokenConfidence != 0.15 {
		t.Errorf("expected min confidence 0.15, got %v", cfg.MinTokenConfidence)
	}
	if cfg.DayCount != 31 {
		t.Errorf("expected 31 days, got %d", cfg.DayCount)
	}

	m, ok := cfg.Shifts["M"]
	if !ok {
		t.Fatal("expected M shift in defaults")
	}
	if m.Label != "Morning" || m.StartHour != 6 || m.EndHour != 14 {
		t.Errorf("unexpected M shift: %+v", m)
	}

	n := cfg.Shifts["N"]
	if n.EndHour >= n.StartHour {
		t.Error("night shift should wrap past midnight")
	}

	if cfg.Tolerance.Floor != 25 || cfg.Tolerance.Fallback != 35 || cfg.Tolerance.Factor != 0.8 {
		t.Errorf("unexpected tolerance defaults: %+v", cfg.Tolerance)
	}
}

func TestConfig_ShiftCodes(t *testing.T) {
	cfg := DefaultConfig()
	codes := cfg.ShiftCodes()
	if len(codes) != 3 {
		t.Fatalf("expected 3 codes, got %d", len(codes))
	}
	// Sorted for deterministic iteration.
	if codes[0] != "M" || codes[1] != "N" || codes[2] != "T" {
		t.Errorf("expected [M N T], got %v", codes)
	}
}

func TestConfig_Days(t *testing.T) {
	cfg := DefaultConfig()
	days := cfg.Days()
	if len(days) != 31 {
		t.Fatalf("expected 31 days, got %d", len(days))
	}
	if days[0] != 1 || days[30] != 31 {
		t.Errorf("unexpected day range: %d..%d", days[0], days[len(days)-1])
	}

	cfg.DayCount = 0
	if got := len(cfg.Days()); got != 31 {
		t.Errorf("zero day count should fall back to 31, got %d", got)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		t.Setenv("TEST_API_KEY", "secret123")

		result := ResolveEnvVars("${TEST_API_KEY}")
		if result != "secret123" {
			t.Errorf("expected secret123, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("literal-value")
		if result != "literal-value" {
			t.Errorf("expected literal-value, got %s", result)
		}
	})
}

func TestNewManager(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
target_name: "ELVIRA JIMENEZ"
min_token_confidence: 0.25
`
	if err := os.WriteFile(configFile, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	cfg := mgr.Get()
	if cfg.TargetName != "ELVIRA JIMENEZ" {
		t.Errorf("expected ELVIRA JIMENEZ, got %s", cfg.TargetName)
	}
	if cfg.MinTokenConfidence != 0.25 {
		t.Errorf("expected 0.25, got %v", cfg.MinTokenConfidence)
	}
	// Unspecified keys keep defaults.
	if cfg.DayCount != 31 {
		t.Errorf("expected default day count, got %d", cfg.DayCount)
	}
}

func TestManager_SetTargetName(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configFile, []byte("target_name: FIRST\n"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	var notified string
	mgr.OnChange(func(cfg *Config) {
		notified = cfg.TargetName
	})

	mgr.SetTargetName("SECOND")

	if mgr.Get().TargetName != "SECOND" {
		t.Errorf("expected SECOND, got %s", mgr.Get().TargetName)
	}
	if notified != "SECOND" {
		t.Errorf("callback not notified with new name, got %q", notified)
	}
}

func TestManager_OnChange_Multiple(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configFile, []byte("target_name: X\n"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})

	mgr.mu.RLock()
	if len(mgr.callbacks) != 3 {
		t.Errorf("expected 3 callbacks, got %d", len(mgr.callbacks))
	}
	mgr.mu.RUnlock()
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}
	content := string(data)
	for _, key := range []string{"target_name", "shifts", "tolerance", "ocr"} {
		if !strings.Contains(content, key) {
			t.Errorf("written config missing %q:\n%s", key, content)
		}
	}
}
