// Package ai implements the client contracts against the Gemini backend:
// translate, dictionary lookup, transcription, pronunciation evaluation, and
// speech synthesis. Every operation is a single stateless round trip; no
// retry is attempted here and failures propagate classified for user-facing
// handling.
package ai

import (
	"context"
	"log/slog"

	"google.golang.org/genai"

	"github.com/gogohany109-lgtm/NihonGo-Master/internal/config"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/errors"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/romaji"
)

// generator is the slice of the Gemini SDK the client consumes.
// Tests substitute a deterministic stub.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client talks to the Gemini backend. All methods are safe for concurrent
// use; no conversation state is carried between calls.
type Client struct {
	gen      generator
	cfg      *config.Config
	log      *slog.Logger
	analyzer *romaji.Analyzer // optional local romaji backfill
}

// NewClient creates a Client from configuration. The analyzer is optional;
// when present it backfills romaji fields the backend omits.
func NewClient(ctx context.Context, cfg *config.Config, log *slog.Logger, analyzer *romaji.Analyzer) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewInvalidRequest("GEMINI_API_KEY is not set")
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.NewServiceError("client init", err)
	}

	if log == nil {
		log = slog.Default()
	}

	return &Client{
		gen:      gc.Models,
		cfg:      cfg,
		log:      log,
		analyzer: analyzer,
	}, nil
}

// newClientWithGenerator wires a custom generator; used by tests.
func newClientWithGenerator(gen generator, cfg *config.Config, analyzer *romaji.Analyzer) *Client {
	return &Client{
		gen:      gen,
		cfg:      cfg,
		log:      slog.Default(),
		analyzer: analyzer,
	}
}

// responseText extracts the concatenated text of the first candidate, or ""
// when the response carries no text parts.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	return resp.Text()
}
