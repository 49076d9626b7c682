package phrase

import (
	"strings"
	"testing"
	"time"
)

func validTranslation() *TranslationResult {
	return &TranslationResult{
		Japanese:       "おはようございます",
		Romaji:         "ohayou gozaimasu",
		Pronunciation:  "oh-ha-yoh go-zai-mas",
		EnglishMeaning: "Good morning",
		Tone:           TonePolite,
		Breakdown: []WordBreakdown{
			{Word: "おはよう", Romaji: "ohayou", Meaning: "good morning", PartOfSpeech: "interjection"},
			{Word: "ございます", Romaji: "gozaimasu", Meaning: "polite copula", PartOfSpeech: "auxiliary verb"},
		},
	}
}

func TestValidateTranslation_Valid(t *testing.T) {
	if err := ValidateTranslation(validTranslation()); err != nil {
		t.Errorf("valid translation rejected: %v", err)
	}
}

func TestValidateTranslation_EmptyBreakdownAllowed(t *testing.T) {
	r := validTranslation()
	r.Breakdown = []WordBreakdown{}
	if err := ValidateTranslation(r); err != nil {
		t.Errorf("empty breakdown should be allowed: %v", err)
	}
}

func TestValidateTranslation_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TranslationResult)
		wantSub string
	}{
		{"missing japanese", func(r *TranslationResult) { r.Japanese = "" }, "japanese"},
		{"missing romaji", func(r *TranslationResult) { r.Romaji = "" }, "romaji"},
		{"missing pronunciation", func(r *TranslationResult) { r.Pronunciation = "" }, "pronunciation"},
		{"missing meaning", func(r *TranslationResult) { r.EnglishMeaning = "" }, "englishMeaning"},
		{"bad tone", func(r *TranslationResult) { r.Tone = "Sarcastic" }, "tone"},
		{"nil breakdown", func(r *TranslationResult) { r.Breakdown = nil }, "breakdown"},
		{"breakdown item missing word", func(r *TranslationResult) { r.Breakdown[0].Word = "" }, "word"},
		{"breakdown item missing pos", func(r *TranslationResult) { r.Breakdown[1].PartOfSpeech = "" }, "partOfSpeech"},
	}

	for _, tt := range tests {
		r := validTranslation()
		tt.mutate(r)
		err := ValidateTranslation(r)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantSub) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.wantSub)
		}
	}
}

func validEntry() *DictionaryEntry {
	return &DictionaryEntry{
		Word:         "水",
		Reading:      "みず",
		Romaji:       "mizu",
		Meanings:     []string{"water"},
		PartOfSpeech: "noun",
		ExampleSentences: []ExampleSentence{
			{Ja: "水を飲みます。", En: "I drink water."},
		},
	}
}

func TestValidateDictionaryEntry_Valid(t *testing.T) {
	if err := ValidateDictionaryEntry(validEntry()); err != nil {
		t.Errorf("valid entry rejected: %v", err)
	}
}

func TestValidateDictionaryEntry_OptionalFields(t *testing.T) {
	e := validEntry()
	e.JLPTLevel = "N5"
	e.UsageNotes = "Everyday word."
	e.KanjiBreakdown = []KanjiDetail{{Character: "水", Onyomi: "スイ", Kunyomi: "みず", Meaning: "water"}}
	if err := ValidateDictionaryEntry(e); err != nil {
		t.Errorf("entry with optional fields rejected: %v", err)
	}
}

func TestValidateDictionaryEntry_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DictionaryEntry)
	}{
		{"missing word", func(e *DictionaryEntry) { e.Word = "" }},
		{"missing reading", func(e *DictionaryEntry) { e.Reading = "" }},
		{"no meanings", func(e *DictionaryEntry) { e.Meanings = nil }},
		{"empty meaning", func(e *DictionaryEntry) { e.Meanings = []string{""} }},
		{"missing pos", func(e *DictionaryEntry) { e.PartOfSpeech = "" }},
		{"nil examples", func(e *DictionaryEntry) { e.ExampleSentences = nil }},
		{"half example", func(e *DictionaryEntry) { e.ExampleSentences[0].En = "" }},
		{"kanji without character", func(e *DictionaryEntry) {
			e.KanjiBreakdown = []KanjiDetail{{Meaning: "water"}}
		}},
	}

	for _, tt := range tests {
		e := validEntry()
		tt.mutate(e)
		if err := ValidateDictionaryEntry(e); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestValidateHistoryItem(t *testing.T) {
	item := &HistoryItem{
		ID:           "01HYAAAAAAAAAAAAAAAAAAAAAA",
		OriginalText: "Good morning",
		Result:       *validTranslation(),
		Timestamp:    time.Now(),
	}
	if err := ValidateHistoryItem(item); err != nil {
		t.Errorf("valid item rejected: %v", err)
	}

	broken := *item
	broken.Result.Japanese = ""
	if err := ValidateHistoryItem(&broken); err == nil {
		t.Error("item without japanese should be rejected")
	}

	noStamp := *item
	noStamp.Timestamp = time.Time{}
	if err := ValidateHistoryItem(&noStamp); err == nil {
		t.Error("item without timestamp should be rejected")
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct{ in, want int }{
		{-5, 0}, {0, 0}, {57, 57}, {100, 100}, {140, 100},
	}
	for _, tt := range tests {
		if got := ClampScore(tt.in); got != tt.want {
			t.Errorf("ClampScore(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
