// Package audio converts between the transfer encoding used on the AI
// boundary (base64) and playable PCM buffers. Recorded capture output is
// encoded for transmission; synthesized speech comes back as raw signed
// 16-bit little-endian PCM and is decoded into normalized float samples.
package audio

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/gogohany109-lgtm/NihonGo-Master/internal/errors"
)

// Buffer holds decoded audio as normalized float samples in [-1.0, 1.0].
type Buffer struct {
	SampleRate int
	Channels   int
	Samples    []float32
}

// Duration returns the playback length of the buffer at speed 1.0.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 || b.Channels <= 0 {
		return 0
	}
	frames := len(b.Samples) / b.Channels
	return time.Duration(float64(frames) / float64(b.SampleRate) * float64(time.Second))
}

// EncodeToTransferable reads the entirety of r and returns it
// base64-encoded. The reader is always consumed fully before returning;
// a partial encode is never produced.
func EncodeToTransferable(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to read audio: %w", err))
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeTransferable is the inverse of EncodeToTransferable.
func DecodeTransferable(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid base64 audio payload: %v", err))
	}
	return data, nil
}

// DecodePCM interprets data as signed 16-bit little-endian PCM at the given
// rate and channel count and converts it to normalized float samples.
// A byte length that is not a whole number of sample frames is rejected,
// never truncated.
func DecodePCM(data []byte, sampleRate, channels int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("sample rate must be positive, got %d", sampleRate))
	}
	if channels <= 0 {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("channel count must be positive, got %d", channels))
	}

	frameSize := 2 * channels
	if len(data)%frameSize != 0 {
		return nil, errors.NewAlignment(len(data), frameSize)
	}

	samples := make([]float32, len(data)/2)
	for i := range samples {
		raw := int16(binary.LittleEndian.Uint16(data[i*2:]))
		samples[i] = float32(raw) / 32768.0
	}

	return &Buffer{
		SampleRate: sampleRate,
		Channels:   channels,
		Samples:    samples,
	}, nil
}
