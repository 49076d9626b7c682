package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/gogohany109-lgtm/NihonGo-Master/internal/errors"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/phrase"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/romaji"
)

// Translate translates text into Japanese with tone classification, a
// cultural note, and a per-word breakdown. sourceLang is an opaque locale
// hint; "auto" lets the backend detect the source language.
func (c *Client) Translate(ctx context.Context, text, sourceLang string) (*phrase.TranslationResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.NewInvalidRequest("text to translate must not be empty")
	}
	if sourceLang == "" {
		sourceLang = c.cfg.SourceLang
	}

	prompt := buildTranslatePrompt(text, sourceLang)

	resp, err := c.gen.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   translationSchema,
	})
	if err != nil {
		return nil, classify("translate", err)
	}

	raw := responseText(resp)
	if raw == "" {
		return nil, errors.NewEmptyResponse("translate")
	}

	var result phrase.TranslationResult
	if err := json.Unmarshal([]byte(extractJSON(raw)), &result); err != nil {
		return nil, errors.NewMalformedResponse("translate", err)
	}

	c.backfillRomaji(&result)

	if err := phrase.ValidateTranslation(&result); err != nil {
		return nil, errors.NewMalformedResponse("translate", err)
	}
	if !romaji.IsJapanese(result.Japanese) {
		return nil, errors.NewMalformedResponse("translate",
			fmt.Errorf("translation %q contains no Japanese script", result.Japanese))
	}

	c.log.Debug("translated",
		slog.String("source", text),
		slog.String("japanese", result.Japanese),
		slog.String("tone", string(result.Tone)))

	return &result, nil
}

// backfillRomaji fills romaji fields the backend left empty using the local
// analyzer. Validation still rejects the result if the field stays empty.
func (c *Client) backfillRomaji(r *phrase.TranslationResult) {
	if c.analyzer == nil {
		return
	}
	if r.Romaji == "" && r.Japanese != "" {
		r.Romaji = c.analyzer.Romaji(r.Japanese)
	}
	for i := range r.Breakdown {
		if r.Breakdown[i].Romaji == "" && r.Breakdown[i].Word != "" {
			r.Breakdown[i].Romaji = c.analyzer.Romaji(r.Breakdown[i].Word)
		}
	}
}

// buildTranslatePrompt creates the translate instruction.
func buildTranslatePrompt(text, sourceLang string) string {
	langClause := "Detect the source language automatically."
	if sourceLang != "" && sourceLang != "auto" {
		langClause = fmt.Sprintf("The source language is %q.", sourceLang)
	}

	return fmt.Sprintf(`You are a Japanese language teacher. Translate the following text into natural Japanese.

%s

Text:
%s

Provide:
- the Japanese translation
- romaji transliteration
- a phonetic pronunciation guide for English speakers
- the literal English meaning
- the tone register (Casual, Polite, or Formal)
- a short cultural note when relevant
- a word-by-word breakdown with romaji, meaning, and part of speech for each word`, langClause, text)
}

// extractJSON finds the first complete JSON object in a string. Backends
// occasionally wrap schema output in markdown fences despite instructions.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return s
	}
	return s[start : end+1]
}
