package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Well-known slot names.
const (
	SlotRecentHistory = "recent_history"
	SlotSavedItems    = "saved_items"
	SlotTheme         = "theme"
)

// GetSlot reads the value stored under slot.
// The second return value reports whether the slot exists.
func GetSlot(db *sql.DB, slot string) (string, bool, error) {
	var value string
	err := db.QueryRow("SELECT value FROM slots WHERE slot = ?", slot).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read slot %q: %w", slot, err)
	}
	return value, true, nil
}

// SetSlot writes value under slot, replacing any existing value.
func SetSlot(db *sql.DB, slot, value string) error {
	_, err := db.Exec(`
		INSERT INTO slots (slot, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		slot, value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write slot %q: %w", slot, err)
	}
	return nil
}

// DeleteSlot removes a slot. Deleting a missing slot is not an error.
func DeleteSlot(db *sql.DB, slot string) error {
	if _, err := db.Exec("DELETE FROM slots WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("failed to delete slot %q: %w", slot, err)
	}
	return nil
}
