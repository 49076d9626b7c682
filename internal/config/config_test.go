package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q, want default", cfg.Model)
	}
	if cfg.HistoryCap != 50 {
		t.Errorf("HistoryCap = %d, want 50", cfg.HistoryCap)
	}
	if cfg.TTSSampleRate != 24000 {
		t.Errorf("TTSSampleRate = %d, want 24000", cfg.TTSSampleRate)
	}
	if cfg.SourceLang != "auto" {
		t.Errorf("SourceLang = %q, want auto", cfg.SourceLang)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	content := `{"history_cap": 10, "voice": "Puck", "disabled_tools": ["translate"]}`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HistoryCap != 10 {
		t.Errorf("HistoryCap = %d, want 10", cfg.HistoryCap)
	}
	if cfg.Voice != "Puck" {
		t.Errorf("Voice = %q, want Puck", cfg.Voice)
	}
	// Untouched fields keep defaults
	if cfg.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q, want default", cfg.Model)
	}
	if len(cfg.DisabledTools) != 1 || cfg.DisabledTools[0] != "translate" {
		t.Errorf("DisabledTools = %v, want [translate]", cfg.DisabledTools)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `{"model": "gemini-from-file"}`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("NIHONGO_MODEL", "gemini-from-env")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Model != "gemini-from-env" {
		t.Errorf("Model = %q, want env value", cfg.Model)
	}
	if cfg.APIKey != "test-key" {
		t.Errorf("APIKey = %q, want env value", cfg.APIKey)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Error("Load should fail on invalid JSON")
	}
}

func TestMerge_Slices(t *testing.T) {
	base := &Config{DisabledTools: []string{"a", "b"}}
	overlay := &Config{DisabledTools: []string{" b ", "c"}}

	got := Merge(base, overlay)
	want := []string{"a", "b", "c"}
	if len(got.DisabledTools) != len(want) {
		t.Fatalf("DisabledTools = %v, want %v", got.DisabledTools, want)
	}
	for i := range want {
		if got.DisabledTools[i] != want[i] {
			t.Errorf("DisabledTools[%d] = %q, want %q", i, got.DisabledTools[i], want[i])
		}
	}
}
