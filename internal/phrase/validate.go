package phrase

import "fmt"

// Validators for documents deserialized from the AI boundary and the import
// boundary. Backends can return syntactically valid but semantically
// incomplete JSON, so every parsed document is checked here before use.

// ValidateTranslation checks that a TranslationResult has all required
// fields with valid values. An empty breakdown is allowed; a nil one is not
// (the field must have been present in the document).
func ValidateTranslation(r *TranslationResult) error {
	if r.Japanese == "" {
		return fmt.Errorf("japanese is empty")
	}
	if r.Romaji == "" {
		return fmt.Errorf("romaji is empty")
	}
	if r.Pronunciation == "" {
		return fmt.Errorf("pronunciation is empty")
	}
	if r.EnglishMeaning == "" {
		return fmt.Errorf("englishMeaning is empty")
	}
	if !r.Tone.IsValid() {
		return fmt.Errorf("tone %q is not one of Casual, Polite, Formal", r.Tone)
	}
	if r.Breakdown == nil {
		return fmt.Errorf("breakdown is missing")
	}
	for i, w := range r.Breakdown {
		if w.Word == "" {
			return fmt.Errorf("breakdown[%d]: word is empty", i)
		}
		if w.Meaning == "" {
			return fmt.Errorf("breakdown[%d] (%s): meaning is empty", i, w.Word)
		}
		if w.PartOfSpeech == "" {
			return fmt.Errorf("breakdown[%d] (%s): partOfSpeech is empty", i, w.Word)
		}
	}
	return nil
}

// ValidateDictionaryEntry checks the minimum required fields of a lookup
// result: word, reading, romaji, meanings, partOfSpeech, exampleSentences.
func ValidateDictionaryEntry(e *DictionaryEntry) error {
	if e.Word == "" {
		return fmt.Errorf("word is empty")
	}
	if e.Reading == "" {
		return fmt.Errorf("reading is empty")
	}
	if e.Romaji == "" {
		return fmt.Errorf("romaji is empty")
	}
	if len(e.Meanings) == 0 {
		return fmt.Errorf("entry for %q has no meanings", e.Word)
	}
	for i, m := range e.Meanings {
		if m == "" {
			return fmt.Errorf("meanings[%d] of %q is empty", i, e.Word)
		}
	}
	if e.PartOfSpeech == "" {
		return fmt.Errorf("entry for %q has no partOfSpeech", e.Word)
	}
	if e.ExampleSentences == nil {
		return fmt.Errorf("entry for %q is missing exampleSentences", e.Word)
	}
	for i, ex := range e.ExampleSentences {
		if ex.Ja == "" || ex.En == "" {
			return fmt.Errorf("exampleSentences[%d] of %q is incomplete", i, e.Word)
		}
	}
	for i, k := range e.KanjiBreakdown {
		if k.Character == "" {
			return fmt.Errorf("kanjiBreakdown[%d] of %q has no character", i, e.Word)
		}
	}
	return nil
}

// ValidatePronunciation checks that score, transcript, and feedback were all
// present. Range errors are not rejected here; callers clamp defensively.
func ValidatePronunciation(p *PronunciationResult) error {
	if p.Transcript == "" {
		return fmt.Errorf("transcript is empty")
	}
	if p.Feedback == "" {
		return fmt.Errorf("feedback is empty")
	}
	return nil
}

// ValidateHistoryItem checks an imported record: id, original text, and a
// result carrying at least the Japanese text and a valid tone.
func ValidateHistoryItem(item *HistoryItem) error {
	if item.ID == "" {
		return fmt.Errorf("id is missing")
	}
	if item.OriginalText == "" {
		return fmt.Errorf("originalText is missing")
	}
	if item.Result.Japanese == "" {
		return fmt.Errorf("result.japanese is missing")
	}
	if !item.Result.Tone.IsValid() {
		return fmt.Errorf("result.tone %q is invalid", item.Result.Tone)
	}
	if item.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is missing")
	}
	return nil
}

// ClampScore forces a pronunciation score into [0, 100]. Backend-assigned
// values outside the range are never trusted.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
