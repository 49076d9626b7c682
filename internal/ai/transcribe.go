package ai

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/gogohany109-lgtm/NihonGo-Master/internal/audio"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/errors"
)

// Transcribe converts a base64-encoded audio payload to text.
// An empty result is "nothing detected", not an error; callers must treat
// it as distinct from a failure.
func (c *Client) Transcribe(ctx context.Context, audioB64, mimeType string) (string, error) {
	if audioB64 == "" {
		return "", errors.NewInvalidRequest("audio payload must not be empty")
	}
	if mimeType == "" {
		return "", errors.NewInvalidRequest("audio MIME type must not be empty")
	}

	data, err := audio.DecodeTransferable(audioB64)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText("Transcribe this audio exactly as spoken. Return only the transcription with no commentary. If no speech is audible, return nothing."),
			genai.NewPartFromBytes(data, mimeType),
		}, genai.RoleUser),
	}

	resp, err := c.gen.GenerateContent(ctx, c.cfg.Model, contents, nil)
	if err != nil {
		return "", classify("transcribe", err)
	}

	return strings.TrimSpace(responseText(resp)), nil
}
