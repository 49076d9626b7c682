// Package romaji provides local Japanese text analysis: tokenization with
// readings via the kagome IPA dictionary, katakana-to-Hepburn
// transliteration, and script detection. It backfills romaji the AI service
// omits and renders readings on study sheets; it performs no translation.
package romaji

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Token represents a single analyzed unit of text.
type Token struct {
	Surface    string // the text as it appears (e.g. "行っ")
	BaseForm   string // the dictionary form (e.g. "行く")
	Reading    string // katakana reading (e.g. "イッ")
	PrimaryPOS string // first part-of-speech label
}

// Analyzer segments Japanese text into tokens with readings.
type Analyzer struct {
	t *tokenizer.Tokenizer
}

// NewAnalyzer creates a tokenizer backed by the bundled IPA dictionary.
func NewAnalyzer() (*Analyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Analyzer{t: t}, nil
}

// Tokens breaks text into tokens with readings and base forms.
func (a *Analyzer) Tokens(text string) []Token {
	var result []Token

	for _, token := range a.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(token.Surface) == "" {
			continue
		}

		features := token.Features()

		// IPA feature layout: 0 POS, 6 base form, 7 reading.
		base := token.Surface
		if len(features) > 6 && features[6] != "*" {
			base = features[6]
		}

		reading := ""
		if len(features) > 7 && features[7] != "*" {
			reading = features[7]
		}

		pos := ""
		if len(features) > 0 && features[0] != "*" {
			pos = features[0]
		}

		result = append(result, Token{
			Surface:    token.Surface,
			BaseForm:   base,
			Reading:    reading,
			PrimaryPOS: pos,
		})
	}

	return result
}

// Reading returns the katakana reading of text. Tokens without a dictionary
// reading (latin words, numbers) pass through as their surface form.
func (a *Analyzer) Reading(text string) string {
	var b strings.Builder
	for _, tok := range a.Tokens(text) {
		if tok.Reading != "" {
			b.WriteString(tok.Reading)
		} else {
			b.WriteString(tok.Surface)
		}
	}
	return b.String()
}

// Romaji returns a Hepburn transliteration of text, word-spaced by token.
func (a *Analyzer) Romaji(text string) string {
	var parts []string
	for _, tok := range a.Tokens(text) {
		reading := tok.Reading
		if reading == "" {
			reading = tok.Surface
		}
		if r := KatakanaToRomaji(reading); r != "" {
			parts = append(parts, r)
		}
	}
	return strings.Join(parts, " ")
}
