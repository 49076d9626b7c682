package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gogohany109-lgtm/NihonGo-Master/internal/errors"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/phrase"
)

// Export serializes a collection as an indented JSON array. An empty
// collection exports as "[]", which round-trips through Import.
func (s *Store) Export(c Collection) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(c)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return data, nil
}

// ExportFileName builds the canonical export name for a collection:
// nihongo-<collection>-<yyyy-mm-dd>.json.
func ExportFileName(c Collection, now time.Time) string {
	return fmt.Sprintf("nihongo-%s-%s.json", c, now.Format("2006-01-02"))
}

// ExportToFile writes a collection export into dir and returns the full
// path. The file is written to a temp name and renamed into place so a
// partial write never leaves a truncated export behind.
func (s *Store) ExportToFile(dir string, c Collection) (string, error) {
	data, err := s.Export(c)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, ExportFileName(c, time.Now()))
	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return "", errors.NewInternal(err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", errors.NewInternal(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", errors.NewInternal(err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", errors.NewInternal(err)
	}
	return path, nil
}

// Import merges an exported document into the saved collection. The whole
// document is validated before anything is applied: a document that is not a
// JSON array of well-formed history items fails with IMPORT_PARSE and leaves
// prior state untouched. On a Japanese-text collision the imported record
// replaces the existing one. Returns the number of records in the document.
func (s *Store) Import(data []byte) (int, error) {
	var items []phrase.HistoryItem
	if err := json.Unmarshal(data, &items); err != nil {
		return 0, errors.NewImportParse(err)
	}
	for i := range items {
		if err := phrase.ValidateHistoryItem(&items[i]); err != nil {
			return 0, errors.NewImportParse(fmt.Errorf("record %d: %w", i, err))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load(CollectionSaved)
	if err != nil {
		return 0, err
	}

	// Imported records win on collision with existing entries and keep
	// their document order. Within the document the first occurrence wins,
	// so an export re-imports byte-for-byte.
	imported := make(map[string]bool, len(items))
	merged := make([]phrase.HistoryItem, 0, len(items)+len(existing))
	for _, it := range items {
		if imported[it.Result.Japanese] {
			continue
		}
		imported[it.Result.Japanese] = true
		merged = append(merged, it)
	}
	for _, it := range existing {
		if imported[it.Result.Japanese] {
			continue
		}
		merged = append(merged, it)
	}

	if err := s.save(CollectionSaved, merged); err != nil {
		return 0, err
	}
	s.log.Info("imported saved items", "records", len(items), "total", len(merged))
	return len(items), nil
}
