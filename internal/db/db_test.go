package db

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInit_CreatesDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	version, err := GetUserVersion(database)
	if err != nil {
		t.Fatalf("GetUserVersion failed: %v", err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, CurrentSchemaVersion)
	}
}

func TestInit_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	db1, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	if err := SetSlot(db1, "probe", "value"); err != nil {
		t.Fatalf("SetSlot failed: %v", err)
	}
	db1.Close()

	db2, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	defer db2.Close()

	value, ok, err := GetSlot(db2, "probe")
	if err != nil {
		t.Fatalf("GetSlot failed: %v", err)
	}
	if !ok || value != "value" {
		t.Errorf("slot survived reopen = (%q, %v), want (value, true)", value, ok)
	}
}

func TestGetSlot_Missing(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	_, ok, err := GetSlot(database, "nope")
	if err != nil {
		t.Fatalf("GetSlot failed: %v", err)
	}
	if ok {
		t.Error("missing slot should report ok=false")
	}
}

func TestSetSlot_Replaces(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	if err := SetSlot(database, SlotTheme, "dark"); err != nil {
		t.Fatalf("SetSlot failed: %v", err)
	}
	if err := SetSlot(database, SlotTheme, "light"); err != nil {
		t.Fatalf("SetSlot replace failed: %v", err)
	}

	value, ok, err := GetSlot(database, SlotTheme)
	if err != nil {
		t.Fatalf("GetSlot failed: %v", err)
	}
	if !ok || value != "light" {
		t.Errorf("slot = (%q, %v), want (light, true)", value, ok)
	}
}

func TestDeleteSlot(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	if err := SetSlot(database, "gone", "x"); err != nil {
		t.Fatalf("SetSlot failed: %v", err)
	}
	if err := DeleteSlot(database, "gone"); err != nil {
		t.Fatalf("DeleteSlot failed: %v", err)
	}
	if _, ok, _ := GetSlot(database, "gone"); ok {
		t.Error("slot should be gone after DeleteSlot")
	}

	// Deleting a missing slot is fine
	if err := DeleteSlot(database, "never-existed"); err != nil {
		t.Errorf("DeleteSlot on missing slot: %v", err)
	}
}

func TestInit_CreatesExportsDir(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	exportsDir := filepath.Join(tmpDir, "exports")
	info, err := os.Stat(exportsDir)
	if err != nil {
		t.Fatalf("exports dir missing: %v", err)
	}
	if !info.IsDir() {
		t.Error("exports path is not a directory")
	}
}
