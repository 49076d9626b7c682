package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/gogohany109-lgtm/NihonGo-Master/internal/audio"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/errors"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/phrase"
)

// EvaluatePronunciation scores a recorded pronunciation attempt against the
// expected reference phrase. The backend-assigned score is clamped to
// [0, 100] before it reaches callers.
func (c *Client) EvaluatePronunciation(ctx context.Context, audioB64, mimeType, reference string) (*phrase.PronunciationResult, error) {
	if audioB64 == "" {
		return nil, errors.NewInvalidRequest("audio payload must not be empty")
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, errors.NewInvalidRequest("reference text must not be empty")
	}

	data, err := audio.DecodeTransferable(audioB64)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`You are a Japanese pronunciation coach. The student attempted to say:

%s

Listen to the recording and rate the pronunciation accuracy from 0 to 100.
Report what you actually heard and give one or two sentences of concrete
feedback on how to improve.`, reference)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(data, mimeType),
		}, genai.RoleUser),
	}

	resp, err := c.gen.GenerateContent(ctx, c.cfg.Model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   pronunciationSchema,
	})
	if err != nil {
		return nil, classify("pronunciation evaluation", err)
	}

	raw := responseText(resp)
	if raw == "" {
		return nil, errors.NewEmptyResponse("pronunciation evaluation")
	}

	var result phrase.PronunciationResult
	if err := json.Unmarshal([]byte(extractJSON(raw)), &result); err != nil {
		return nil, errors.NewMalformedResponse("pronunciation evaluation", err)
	}
	if err := phrase.ValidatePronunciation(&result); err != nil {
		return nil, errors.NewMalformedResponse("pronunciation evaluation", err)
	}

	result.Score = phrase.ClampScore(result.Score)
	return &result, nil
}
