package ai

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/gogohany109-lgtm/NihonGo-Master/internal/audio"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/errors"
)

// SpeechResult is one synthesized utterance. PCM holds the raw signed
// 16-bit little-endian bytes as returned by the backend; Buffer holds the
// decoded normalized samples. Speed is the requested playback multiplier —
// it is applied at playback time by the consumer, never by resampling.
type SpeechResult struct {
	PCM        []byte
	Buffer     *audio.Buffer
	SampleRate int
	Channels   int
	Speed      float64
}

// SynthesizeSpeech generates spoken audio for text with the fixed
// configured voice. Empty input is a silent no-op: no backend call is
// issued and (nil, nil) is returned. A text-only answer from the backend is
// a content-filtering refusal, reported as SYNTHESIS_REFUSED.
func (c *Client) SynthesizeSpeech(ctx context.Context, text string, speed float64) (*SpeechResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if speed <= 0 {
		speed = 1.0
	}

	resp, err := c.gen.GenerateContent(ctx, c.cfg.TTSModel, genai.Text(text), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: c.cfg.Voice,
				},
			},
		},
	})
	if err != nil {
		return nil, classify("speech synthesis", err)
	}

	pcm := inlineAudioData(resp)
	if len(pcm) == 0 {
		// Text instead of audio means the request was refused.
		if refusal := responseText(resp); refusal != "" {
			return nil, errors.NewSynthesisRefused(refusal)
		}
		return nil, errors.NewEmptyResponse("speech synthesis")
	}

	// The TTS backend produces mono PCM at the configured rate (24 kHz).
	const channels = 1
	buf, err := audio.DecodePCM(pcm, c.cfg.TTSSampleRate, channels)
	if err != nil {
		return nil, err
	}

	return &SpeechResult{
		PCM:        pcm,
		Buffer:     buf,
		SampleRate: c.cfg.TTSSampleRate,
		Channels:   channels,
		Speed:      speed,
	}, nil
}

// inlineAudioData extracts the first inline audio payload from a response.
func inlineAudioData(resp *genai.GenerateContentResponse) []byte {
	if resp == nil {
		return nil
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.InlineData == nil {
				continue
			}
			if len(part.InlineData.Data) > 0 {
				return part.InlineData.Data
			}
		}
	}
	return nil
}
