package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/gogohany109-lgtm/NihonGo-Master/internal/errors"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/phrase"
)

func TestExportFileName(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	got := ExportFileName(CollectionSaved, now)
	if got != "nihongo-saved-2026-03-14.json" {
		t.Errorf("name = %q", got)
	}
	got = ExportFileName(CollectionRecent, now)
	if got != "nihongo-recent-2026-03-14.json" {
		t.Errorf("name = %q", got)
	}
}

func TestExport_EmptyCollectionIsArray(t *testing.T) {
	store := testStore(t, 50)

	data, err := store.Export(CollectionSaved)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty export = %q, want []", data)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	store := testStore(t, 50)

	a, _ := store.Record("hello", result("こんにちは"))
	b, _ := store.Record("thanks", result("ありがとう"))
	store.ToggleSaved(*a)
	store.ToggleSaved(*b)

	data, err := store.Export(CollectionSaved)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	// Import into a fresh store reproduces the collection.
	other := testStore(t, 50)
	n, err := other.Import(data)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d records, want 2", n)
	}

	want, _ := store.Saved()
	got, _ := other.Saved()
	wantJSON, _ := json.Marshal(want)
	gotJSON, _ := json.Marshal(got)
	if string(wantJSON) != string(gotJSON) {
		t.Errorf("round trip mismatch:\n got %s\nwant %s", gotJSON, wantJSON)
	}
}

func TestImport_MalformedLeavesStateUntouched(t *testing.T) {
	store := testStore(t, 50)
	item, _ := store.Record("hello", result("こんにちは"))
	store.ToggleSaved(*item)

	bad := [][]byte{
		[]byte(`{"not": "an array"}`),
		[]byte(`[{"id": "x"}]`),
		[]byte(`[{`),
		[]byte(`"just a string"`),
	}
	for _, doc := range bad {
		_, err := store.Import(doc)
		if !apperrors.Is(err, apperrors.ErrImportParse) {
			t.Errorf("Import(%s) error = %v, want IMPORT_PARSE", doc, err)
		}
	}

	saved, _ := store.Saved()
	if len(saved) != 1 {
		t.Errorf("saved len = %d after failed imports, want 1 (atomicity)", len(saved))
	}
}

func TestImport_ImportedWinsOnCollision(t *testing.T) {
	store := testStore(t, 50)

	local, _ := store.Record("hello", result("こんにちは"))
	store.ToggleSaved(*local)

	incoming := phrase.HistoryItem{
		ID:           "01IMPORTED0000000000000000",
		OriginalText: "hello again",
		Result:       result("こんにちは"),
		Timestamp:    time.Now().UTC(),
	}
	doc, _ := json.Marshal([]phrase.HistoryItem{incoming})

	if _, err := store.Import(doc); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	saved, _ := store.Saved()
	if len(saved) != 1 {
		t.Fatalf("saved len = %d, want 1 (collision merged)", len(saved))
	}
	if saved[0].ID != incoming.ID {
		t.Errorf("survivor = %q, want imported record", saved[0].ID)
	}
}

func TestImport_MergesDistinctEntries(t *testing.T) {
	store := testStore(t, 50)

	local, _ := store.Record("hello", result("こんにちは"))
	store.ToggleSaved(*local)

	incoming := phrase.HistoryItem{
		ID:           "01IMPORTED0000000000000001",
		OriginalText: "thanks",
		Result:       result("ありがとう"),
		Timestamp:    time.Now().UTC(),
	}
	doc, _ := json.Marshal([]phrase.HistoryItem{incoming})

	if _, err := store.Import(doc); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	saved, _ := store.Saved()
	if len(saved) != 2 {
		t.Errorf("saved len = %d, want 2", len(saved))
	}
	// Imported entries come first, then surviving local entries.
	if saved[0].ID != incoming.ID {
		t.Errorf("front = %q, want imported entry", saved[0].ID)
	}
}

func TestExportToFile_WritesNamedFile(t *testing.T) {
	store := testStore(t, 50)
	item, _ := store.Record("hello", result("こんにちは"))
	store.ToggleSaved(*item)

	dir := t.TempDir()
	path, err := store.ExportToFile(dir, CollectionSaved)
	if err != nil {
		t.Fatalf("ExportToFile failed: %v", err)
	}
	if filepath.Base(path) != ExportFileName(CollectionSaved, time.Now()) {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	var items []phrase.HistoryItem
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("exported %d items, want 1", len(items))
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want only the export", len(entries))
	}
}
