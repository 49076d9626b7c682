// Package history persists translation history: a capped recent list with
// normalized-text dedup, an uncapped saved list keyed by the Japanese
// rendering, and the UI theme preference. Collections are stored as whole
// JSON documents in the slot store and rewritten on every mutation.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/gogohany109-lgtm/NihonGo-Master/internal/db"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/errors"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/phrase"
)

// Collection names a persisted history list.
type Collection string

const (
	CollectionRecent Collection = "recent"
	CollectionSaved  Collection = "saved"
)

// slotFor maps a collection to its storage slot.
func slotFor(c Collection) (string, error) {
	switch c {
	case CollectionRecent:
		return db.SlotRecentHistory, nil
	case CollectionSaved:
		return db.SlotSavedItems, nil
	}
	return "", errors.NewInvalidRequest(fmt.Sprintf("unknown collection %q", c))
}

// Store is the persistence layer for history, saved items, and theme.
// All mutations serialize through a single mutex; reads return copies.
type Store struct {
	db  *sql.DB
	log *slog.Logger
	cap int

	mu sync.Mutex
}

// NewStore creates a store over an initialized database. cap bounds the
// recent collection; values below 1 fall back to 50.
func NewStore(database *sql.DB, cap int, log *slog.Logger) *Store {
	if cap < 1 {
		cap = 50
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Store{db: database, log: log, cap: cap}
}

// load reads a collection; a missing slot is an empty list.
func (s *Store) load(c Collection) ([]phrase.HistoryItem, error) {
	slot, err := slotFor(c)
	if err != nil {
		return nil, err
	}
	value, ok, err := db.GetSlot(s.db, slot)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if !ok {
		return []phrase.HistoryItem{}, nil
	}
	var items []phrase.HistoryItem
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		// A corrupt slot would otherwise brick every operation. Log and
		// start over rather than failing forever.
		s.log.Warn("discarding unreadable history slot", "slot", slot, "error", err)
		return []phrase.HistoryItem{}, nil
	}
	return items, nil
}

// save rewrites a collection wholesale.
func (s *Store) save(c Collection, items []phrase.HistoryItem) error {
	slot, err := slotFor(c)
	if err != nil {
		return err
	}
	data, err := json.Marshal(items)
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := db.SetSlot(s.db, slot, string(data)); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// Record adds a successful translation to recent history. If an entry with
// the same normalized original text already exists it is removed first, so
// re-translating a phrase moves it to the front instead of duplicating it.
// The list is truncated to the configured cap after insertion.
func (s *Store) Record(originalText string, result phrase.TranslationResult) (*phrase.HistoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(CollectionRecent)
	if err != nil {
		return nil, err
	}

	key := phrase.Normalize(originalText)
	kept := items[:0]
	for _, it := range items {
		if phrase.Normalize(it.OriginalText) != key {
			kept = append(kept, it)
		}
	}

	item := phrase.HistoryItem{
		ID:           ulid.Make().String(),
		OriginalText: originalText,
		Result:       result,
		Timestamp:    time.Now().UTC(),
	}

	items = append([]phrase.HistoryItem{item}, kept...)
	if len(items) > s.cap {
		items = items[:s.cap]
	}

	if err := s.save(CollectionRecent, items); err != nil {
		return nil, err
	}
	s.log.Debug("recorded translation", "id", item.ID, "total", len(items))
	return &item, nil
}

// Recent returns recent history, newest first.
func (s *Store) Recent() ([]phrase.HistoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(CollectionRecent)
}

// Saved returns saved items, newest first.
func (s *Store) Saved() ([]phrase.HistoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(CollectionSaved)
}

// ToggleSaved saves or unsaves an item. Saved identity is the exact Japanese
// text of the result: toggling any item whose result matches an existing
// saved entry removes that entry. Returns true when the item is saved after
// the call.
func (s *Store) ToggleSaved(item phrase.HistoryItem) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(CollectionSaved)
	if err != nil {
		return false, err
	}

	kept := items[:0]
	removed := false
	for _, it := range items {
		if it.Result.Japanese == item.Result.Japanese {
			removed = true
			continue
		}
		kept = append(kept, it)
	}

	if removed {
		if err := s.save(CollectionSaved, kept); err != nil {
			return false, err
		}
		return false, nil
	}

	items = append([]phrase.HistoryItem{item}, kept...)
	if err := s.save(CollectionSaved, items); err != nil {
		return false, err
	}
	return true, nil
}

// IsSaved reports whether a result's Japanese text is in the saved list.
func (s *Store) IsSaved(japanese string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(CollectionSaved)
	if err != nil {
		return false, err
	}
	for _, it := range items {
		if it.Result.Japanese == japanese {
			return true, nil
		}
	}
	return false, nil
}

// Delete removes one item by ID from a collection. Deleting an unknown ID is
// a no-op.
func (s *Store) Delete(c Collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(c)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return s.save(c, kept)
}

// ClearRecent empties recent history. Saved items are untouched.
func (s *Store) ClearRecent() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(CollectionRecent, []phrase.HistoryItem{})
}

// Theme returns the persisted UI theme, defaulting to "dark".
func (s *Store) Theme() (string, error) {
	value, ok, err := db.GetSlot(s.db, db.SlotTheme)
	if err != nil {
		return "", errors.NewInternal(err)
	}
	if !ok || value == "" {
		return "dark", nil
	}
	return value, nil
}

// SetTheme persists the UI theme. Only "dark" and "light" are accepted.
func (s *Store) SetTheme(theme string) error {
	if theme != "dark" && theme != "light" {
		return errors.NewInvalidRequest(fmt.Sprintf("theme must be dark or light, got %q", theme))
	}
	if err := db.SetSlot(s.db, db.SlotTheme, theme); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}
