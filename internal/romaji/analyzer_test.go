package romaji

import (
	"testing"
)

// The analyzer loads the bundled IPA dictionary, which is slow; share one
// instance across tests.
var testAnalyzer *Analyzer

func getAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	if testAnalyzer == nil {
		a, err := NewAnalyzer()
		if err != nil {
			t.Fatalf("NewAnalyzer failed: %v", err)
		}
		testAnalyzer = a
	}
	return testAnalyzer
}

func TestAnalyzer_Tokens(t *testing.T) {
	a := getAnalyzer(t)

	tokens := a.Tokens("学校に行きます")
	if len(tokens) == 0 {
		t.Fatal("no tokens produced")
	}

	if tokens[0].Surface != "学校" {
		t.Errorf("first surface = %q, want 学校", tokens[0].Surface)
	}
	if tokens[0].Reading != "ガッコウ" {
		t.Errorf("first reading = %q, want ガッコウ", tokens[0].Reading)
	}
	if tokens[0].PrimaryPOS == "" {
		t.Error("first token has no part of speech")
	}
}

func TestAnalyzer_Tokens_BaseForm(t *testing.T) {
	a := getAnalyzer(t)

	tokens := a.Tokens("行きます")
	if len(tokens) == 0 {
		t.Fatal("no tokens produced")
	}
	if tokens[0].BaseForm != "行く" {
		t.Errorf("base form = %q, want 行く", tokens[0].BaseForm)
	}
}

func TestAnalyzer_Reading(t *testing.T) {
	a := getAnalyzer(t)

	if got := a.Reading("水"); got != "ミズ" {
		t.Errorf("Reading(水) = %q, want ミズ", got)
	}
}

func TestAnalyzer_Romaji(t *testing.T) {
	a := getAnalyzer(t)

	if got := a.Romaji("水"); got != "mizu" {
		t.Errorf("Romaji(水) = %q, want mizu", got)
	}

	got := a.Romaji("学校に行きます")
	if got == "" {
		t.Fatal("empty romaji for a full sentence")
	}
}

func TestAnalyzer_Tokens_SkipsWhitespace(t *testing.T) {
	a := getAnalyzer(t)

	for _, tok := range a.Tokens("水 を 飲む") {
		if tok.Surface == " " {
			t.Error("whitespace token should be filtered")
		}
	}
}
