package history

import (
	"strconv"
	"testing"

	"github.com/gogohany109-lgtm/NihonGo-Master/internal/db"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/phrase"
)

func testStore(t *testing.T, cap int) *Store {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database, cap, nil)
}

func result(japanese string) phrase.TranslationResult {
	return phrase.TranslationResult{
		Japanese:       japanese,
		Romaji:         "romaji",
		Pronunciation:  "pron",
		EnglishMeaning: "meaning",
		Tone:           phrase.TonePolite,
		Breakdown:      []phrase.WordBreakdown{},
	}
}

func TestRecord_PrependsNewestFirst(t *testing.T) {
	store := testStore(t, 50)

	store.Record("hello", result("こんにちは"))
	store.Record("thanks", result("ありがとう"))

	items, err := store.Recent()
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].OriginalText != "thanks" {
		t.Errorf("newest item = %q, want %q", items[0].OriginalText, "thanks")
	}
}

func TestRecord_DedupByNormalizedText(t *testing.T) {
	store := testStore(t, 50)

	store.Record("Hello", result("こんにちは"))
	store.Record("other", result("ほか"))
	// Same phrase after normalization: moves to front, no duplicate.
	store.Record("  hello  ", result("こんにちは"))

	items, _ := store.Recent()
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2 (dedup failed)", len(items))
	}
	if items[0].OriginalText != "  hello  " {
		t.Errorf("front = %q, want re-recorded phrase", items[0].OriginalText)
	}
}

func TestRecord_EvictsBeyondCap(t *testing.T) {
	store := testStore(t, 3)

	for i := 0; i < 5; i++ {
		store.Record("phrase "+strconv.Itoa(i), result("日本語"+strconv.Itoa(i)))
	}

	items, _ := store.Recent()
	if len(items) != 3 {
		t.Fatalf("len = %d, want cap 3", len(items))
	}
	if items[0].OriginalText != "phrase 4" {
		t.Errorf("front = %q, want newest", items[0].OriginalText)
	}
	if items[2].OriginalText != "phrase 2" {
		t.Errorf("back = %q, want oldest survivor", items[2].OriginalText)
	}
}

func TestToggleSaved_Involution(t *testing.T) {
	store := testStore(t, 50)

	item, err := store.Record("hello", result("こんにちは"))
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	saved, err := store.ToggleSaved(*item)
	if err != nil || !saved {
		t.Fatalf("first toggle: saved=%v err=%v, want true", saved, err)
	}
	if ok, _ := store.IsSaved("こんにちは"); !ok {
		t.Error("IsSaved = false after save")
	}

	saved, err = store.ToggleSaved(*item)
	if err != nil || saved {
		t.Fatalf("second toggle: saved=%v err=%v, want false", saved, err)
	}
	items, _ := store.Saved()
	if len(items) != 0 {
		t.Errorf("saved len = %d after toggle back, want 0", len(items))
	}
}

func TestToggleSaved_MatchesByJapaneseText(t *testing.T) {
	store := testStore(t, 50)

	a, _ := store.Record("hello", result("こんにちは"))
	store.ToggleSaved(*a)

	// Different history entry, same Japanese rendering: toggling it
	// removes the existing saved entry.
	b, _ := store.Record("hi there", result("こんにちは"))
	saved, err := store.ToggleSaved(*b)
	if err != nil {
		t.Fatalf("ToggleSaved failed: %v", err)
	}
	if saved {
		t.Error("toggle of equal Japanese text should unsave, not duplicate")
	}
}

func TestDelete_RemovesOnlyTarget(t *testing.T) {
	store := testStore(t, 50)

	a, _ := store.Record("one", result("一"))
	store.Record("two", result("二"))

	if err := store.Delete(CollectionRecent, a.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	items, _ := store.Recent()
	if len(items) != 1 || items[0].OriginalText != "two" {
		t.Errorf("after delete: %+v", items)
	}

	// Unknown ID is a no-op.
	if err := store.Delete(CollectionRecent, "nope"); err != nil {
		t.Errorf("delete of unknown id errored: %v", err)
	}
}

func TestClearRecent_LeavesSavedAlone(t *testing.T) {
	store := testStore(t, 50)

	item, _ := store.Record("hello", result("こんにちは"))
	store.ToggleSaved(*item)

	if err := store.ClearRecent(); err != nil {
		t.Fatalf("ClearRecent failed: %v", err)
	}

	recent, _ := store.Recent()
	if len(recent) != 0 {
		t.Errorf("recent len = %d after clear, want 0", len(recent))
	}
	saved, _ := store.Saved()
	if len(saved) != 1 {
		t.Errorf("saved len = %d after clear, want 1", len(saved))
	}
}

func TestTheme_DefaultAndRoundTrip(t *testing.T) {
	store := testStore(t, 50)

	theme, err := store.Theme()
	if err != nil || theme != "dark" {
		t.Errorf("default theme = %q err=%v, want dark", theme, err)
	}

	if err := store.SetTheme("light"); err != nil {
		t.Fatalf("SetTheme failed: %v", err)
	}
	theme, _ = store.Theme()
	if theme != "light" {
		t.Errorf("theme = %q, want light", theme)
	}

	if err := store.SetTheme("neon"); err == nil {
		t.Error("invalid theme accepted")
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	database, err := db.Init(dir)
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	store := NewStore(database, 50, nil)
	store.Record("hello", result("こんにちは"))
	database.Close()

	database, err = db.Init(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer database.Close()

	store = NewStore(database, 50, nil)
	items, err := store.Recent()
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(items) != 1 || items[0].OriginalText != "hello" {
		t.Errorf("items after reopen = %+v", items)
	}
}
