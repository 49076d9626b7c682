// Package phrase defines the domain types shared by the AI client, the
// history store, and the serving surfaces: translation results, dictionary
// entries, pronunciation scores, and persisted history items.
package phrase

import "time"

// Tone classifies a translated phrase's register.
type Tone string

const (
	ToneCasual Tone = "Casual"
	TonePolite Tone = "Polite"
	ToneFormal Tone = "Formal"
)

// IsValid reports whether t is one of the three enumerated tones.
func (t Tone) IsValid() bool {
	switch t {
	case ToneCasual, TonePolite, ToneFormal:
		return true
	}
	return false
}

// WordBreakdown is one word or phrase extracted from a translation with its
// own gloss and part of speech. ExampleSentence is optional and may be
// backfilled lazily after the result is first displayed.
type WordBreakdown struct {
	Word            string `json:"word"`
	Romaji          string `json:"romaji"`
	Meaning         string `json:"meaning"`
	PartOfSpeech    string `json:"partOfSpeech"`
	ExampleSentence string `json:"exampleSentence,omitempty"`
}

// TranslationResult is the complete outcome of one translate call.
// Immutable once returned; identified for dedup purposes by the
// (original text, Japanese) pair rather than a stable ID.
type TranslationResult struct {
	Japanese       string          `json:"japanese"`
	Romaji         string          `json:"romaji"`
	Pronunciation  string          `json:"pronunciation"`
	EnglishMeaning string          `json:"englishMeaning"`
	Tone           Tone            `json:"tone"`
	CulturalNote   string          `json:"culturalNote,omitempty"`
	Breakdown      []WordBreakdown `json:"breakdown"`
}

// KanjiDetail describes a single kanji character inside a dictionary entry.
type KanjiDetail struct {
	Character string `json:"character"`
	Onyomi    string `json:"onyomi"`
	Kunyomi   string `json:"kunyomi"`
	Meaning   string `json:"meaning"`
}

// ExampleSentence is one usage example with its translation.
type ExampleSentence struct {
	Ja string `json:"ja"`
	En string `json:"en"`
}

// DictionaryEntry is the result of a dictionary lookup.
type DictionaryEntry struct {
	Word             string            `json:"word"`
	Reading          string            `json:"reading"`
	Romaji           string            `json:"romaji"`
	Meanings         []string          `json:"meanings"`
	PartOfSpeech     string            `json:"partOfSpeech"`
	JLPTLevel        string            `json:"jlptLevel,omitempty"`
	KanjiBreakdown   []KanjiDetail     `json:"kanjiBreakdown,omitempty"`
	UsageNotes       string            `json:"usageNotes,omitempty"`
	ExampleSentences []ExampleSentence `json:"exampleSentences"`
}

// PronunciationResult is the backend's judgment of a recorded attempt.
// Score is clamped to [0, 100] before it reaches callers.
type PronunciationResult struct {
	Score      int    `json:"score"`
	Transcript string `json:"transcript"`
	Feedback   string `json:"feedback"`
}

// HistoryItem is one persisted translation. Created only when the
// orchestration layer receives a successful result; destroyed by explicit
// clear/delete or capacity eviction (recent history only).
type HistoryItem struct {
	ID           string            `json:"id"`
	OriginalText string            `json:"originalText"`
	Result       TranslationResult `json:"result"`
	Timestamp    time.Time         `json:"timestamp"`
}
