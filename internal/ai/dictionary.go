package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/gogohany109-lgtm/NihonGo-Master/internal/errors"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/phrase"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/romaji"
)

// dictionaryDocument is the wire shape of a lookup response. The found flag
// distinguishes "term unrecognized" from a malformed payload.
type dictionaryDocument struct {
	Found bool `json:"found"`
	phrase.DictionaryEntry
}

// LookupDictionary fetches a dictionary entry for a Japanese word or phrase.
// An unrecognized term fails with NOT_FOUND; a payload that does not satisfy
// the minimum entry shape fails with MALFORMED_RESPONSE.
func (c *Client) LookupDictionary(ctx context.Context, query string) (*phrase.DictionaryEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.NewInvalidRequest("dictionary query must not be empty")
	}

	prompt := fmt.Sprintf(`You are a Japanese-English dictionary. Look up the word or phrase %q.

Provide the word, its kana reading, romaji, English meanings in order of
frequency, part of speech, JLPT level if known, a per-kanji breakdown with
onyomi and kunyomi readings, usage notes, and two or three natural example
sentences with English translations.

If the term is not a recognized Japanese word or phrase, set "found" to
false and leave the other fields empty.`, query)

	resp, err := c.gen.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   dictionarySchema,
	})
	if err != nil {
		return nil, classify("dictionary lookup", err)
	}

	raw := responseText(resp)
	if raw == "" {
		return nil, errors.NewEmptyResponse("dictionary lookup")
	}

	var doc dictionaryDocument
	if err := json.Unmarshal([]byte(extractJSON(raw)), &doc); err != nil {
		return nil, errors.NewMalformedResponse("dictionary lookup", err)
	}

	if !doc.Found {
		return nil, errors.NewNotFound(query)
	}

	entry := doc.DictionaryEntry
	if entry.Romaji == "" && entry.Reading != "" {
		// The reading is kana, so the local table covers it.
		entry.Romaji = romaji.KatakanaToRomaji(entry.Reading)
	}

	if err := phrase.ValidateDictionaryEntry(&entry); err != nil {
		return nil, errors.NewMalformedResponse("dictionary lookup", err)
	}

	return &entry, nil
}
